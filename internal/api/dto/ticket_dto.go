package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	CategoryID  string                 `json:"category_id"`
	Subject     string                 `json:"subject"`
	Description string                 `json:"description"`
	Priority    domain.TicketPriority  `json:"priority"`
	Attachment  *AttachmentUploadInput `json:"attachment,omitempty"`
}

// AttachmentUploadInput defines attachment metadata.
type AttachmentUploadInput struct {
	FileName  string `json:"file_name"`
	SizeBytes int64  `json:"size_bytes"`
}

// ChangeStatusRequest payload.
type ChangeStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// ReassignRequest payload.
type ReassignRequest struct {
	TechnicianID string `json:"technician_id"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// TicketSummary response.
type TicketSummary struct {
	ID           string                `json:"id"`
	ExternalKey  string                `json:"external_key"`
	CategoryID   string                `json:"category_id"`
	TechnicianID *string               `json:"technician_id,omitempty"`
	Subject      string                `json:"subject"`
	Status       domain.TicketStatus   `json:"status"`
	Priority     domain.TicketPriority `json:"priority"`
	CreatedAt    time.Time             `json:"created_at"`
	SLADueAt     time.Time             `json:"sla_due_at"`
	ClosedAt     *time.Time            `json:"closed_at,omitempty"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	ID           string                `json:"id"`
	ExternalKey  string                `json:"external_key"`
	RequesterID  string                `json:"requester_id"`
	CategoryID   string                `json:"category_id"`
	TechnicianID *string               `json:"technician_id,omitempty"`
	Subject      string                `json:"subject"`
	Description  string                `json:"description"`
	Status       domain.TicketStatus   `json:"status"`
	Priority     domain.TicketPriority `json:"priority"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	SLADueAt     time.Time             `json:"sla_due_at"`
	ClosedAt     *time.Time            `json:"closed_at,omitempty"`
	Comments     []CommentResponse     `json:"comments"`
	Attachments  []AttachmentResponse  `json:"attachments"`
}

// CommentResponse represents a thread entry.
type CommentResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachmentResponse represents stored file metadata.
type AttachmentResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}
