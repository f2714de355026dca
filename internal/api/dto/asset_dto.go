package dto

import "time"

// AssetRequest payload for create/update.
type AssetRequest struct {
	Type         string  `json:"type"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	SerialNumber string  `json:"serial_number"`
	AssignedToID *string `json:"assigned_to_id"`
}

// AssetResponse is the public inventory shape.
type AssetResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	SerialNumber string    `json:"serial_number"`
	AssignedToID *string   `json:"assigned_to_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
