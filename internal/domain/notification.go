package domain

import "time"

// Notification is an in-app message produced as a side effect of a
// lifecycle event. Only the read flag is ever mutated after creation.
type Notification struct {
	ID          string
	RecipientID string
	TicketID    *string
	Message     string
	Read        bool
	CreatedAt   time.Time
}
