package domain

import "time"

// Category groups tickets and carries the SLA thresholds applied at creation.
type Category struct {
	ID                 string
	Name               string
	Description        string
	ResponseSLAHours   int
	ResolutionSLAHours int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ResolutionDeadline computes the SLA due timestamp for a ticket created at t.
func (c *Category) ResolutionDeadline(t time.Time) time.Time {
	return t.Add(time.Duration(c.ResolutionSLAHours) * time.Hour)
}
