package dto

import "time"

// NotificationResponse is the public notification shape.
type NotificationResponse struct {
	ID        string    `json:"id"`
	TicketID  *string   `json:"ticket_id,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportResponse carries the SLA compliance summary.
type ReportResponse struct {
	CompliancePercent int            `json:"compliance_percent"`
	OpenCount         int            `json:"open_count"`
	InProgressCount   int            `json:"in_progress_count"`
	ClosedCount       int            `json:"closed_count"`
	CountsByStatus    map[string]int `json:"counts_by_status"`
	CountsByCategory  map[string]int `json:"counts_by_category"`
}
