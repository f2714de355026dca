package domain

import "time"

// Attachment stores metadata for a file associated with a ticket.
// The bytes themselves live in external storage under StorageKey.
type Attachment struct {
	ID         string
	TicketID   string
	FileName   string
	StorageKey string
	SizeBytes  int64
	CreatedAt  time.Time
}
