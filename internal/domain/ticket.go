package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

// ValidPriority reports whether p is a known priority.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests.
// Invariant: ClosedAt is non-nil iff Status is CLOSED.
type Ticket struct {
	ID           string
	ExternalKey  string
	RequesterID  string
	TechnicianID *string
	CategoryID   string
	Subject      string
	Description  string
	Status       TicketStatus
	Priority     TicketPriority
	CreatedAt    time.Time
	UpdatedAt    time.Time
	SLADueAt     time.Time
	ClosedAt     *time.Time
}

// SLACompliant reports whether a closed ticket met its resolution deadline.
// Closed tickets missing either timestamp count as non-compliant.
func (t *Ticket) SLACompliant() bool {
	if t.ClosedAt == nil || t.SLADueAt.IsZero() {
		return false
	}
	return !t.ClosedAt.After(t.SLADueAt)
}
