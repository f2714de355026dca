package service

import (
	"context"
	"fmt"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// Notifier builds and persists notification records for lifecycle events.
// It is stateless and always called inside the transaction of the
// operation that triggered it, so a ticket mutation and its notifications
// commit as one unit.
type Notifier struct {
	notifications repository.NotificationRepository
}

// NewNotifier constructs the emitter.
func NewNotifier(notifications repository.NotificationRepository) *Notifier {
	return &Notifier{notifications: notifications}
}

func (n *Notifier) emit(ctx context.Context, recipientID string, ticket *domain.Ticket, message string) error {
	notification := &domain.Notification{
		RecipientID: recipientID,
		Message:     message,
	}
	if ticket != nil {
		ticketID := ticket.ID
		notification.TicketID = &ticketID
	}
	return n.notifications.Create(ctx, notification)
}

// TicketAssigned tells a technician a new ticket landed on their queue.
func (n *Notifier) TicketAssigned(ctx context.Context, ticket *domain.Ticket, technicianID string) error {
	message := fmt.Sprintf("Ticket %s (%s) has been assigned to you.", ticket.ExternalKey, ticket.Subject)
	return n.emit(ctx, technicianID, ticket, message)
}

// StatusChanged tells the requester their ticket moved to a new state.
func (n *Notifier) StatusChanged(ctx context.Context, ticket *domain.Ticket, newStatus domain.TicketStatus) error {
	message := fmt.Sprintf("Your ticket %s is now %s.", ticket.ExternalKey, newStatus)
	return n.emit(ctx, ticket.RequesterID, ticket, message)
}

// TakenBy tells the requester which technician picked up their ticket.
func (n *Notifier) TakenBy(ctx context.Context, ticket *domain.Ticket, technicianName string) error {
	message := fmt.Sprintf("Technician %s is now handling your ticket %s.", technicianName, ticket.ExternalKey)
	return n.emit(ctx, ticket.RequesterID, ticket, message)
}

// ReassignedAway tells the previous technician the ticket moved on.
func (n *Notifier) ReassignedAway(ctx context.Context, ticket *domain.Ticket, previousTechnicianID string) error {
	message := fmt.Sprintf("Ticket %s has been reassigned to another technician.", ticket.ExternalKey)
	return n.emit(ctx, previousTechnicianID, ticket, message)
}

// CommentAdded routes a new-comment notification: requester comments go
// to the assigned technician, technician comments go to the requester.
// A requester comment on an unassigned ticket notifies nobody.
func (n *Notifier) CommentAdded(ctx context.Context, ticket *domain.Ticket, author *domain.User) error {
	if author.Role.IsTechnician() {
		message := fmt.Sprintf("New reply on your ticket %s.", ticket.ExternalKey)
		return n.emit(ctx, ticket.RequesterID, ticket, message)
	}
	if ticket.TechnicianID == nil {
		return nil
	}
	message := fmt.Sprintf("New comment from the requester on ticket %s.", ticket.ExternalKey)
	return n.emit(ctx, *ticket.TechnicianID, ticket, message)
}
