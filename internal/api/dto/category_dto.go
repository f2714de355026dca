package dto

import "time"

// CategoryRequest payload for create/update.
type CategoryRequest struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	ResponseSLAHours   int    `json:"response_sla_hours"`
	ResolutionSLAHours int    `json:"resolution_sla_hours"`
}

// CategoryResponse is the public category shape.
type CategoryResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	ResponseSLAHours   int       `json:"response_sla_hours"`
	ResolutionSLAHours int       `json:"resolution_sla_hours"`
	CreatedAt          time.Time `json:"created_at"`
}
