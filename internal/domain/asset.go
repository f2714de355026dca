package domain

import "time"

// Asset is an inventory item (laptop, monitor, printer...) optionally
// assigned to a user.
type Asset struct {
	ID           string
	Type         string
	Brand        string
	Model        string
	SerialNumber string
	AssignedToID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
