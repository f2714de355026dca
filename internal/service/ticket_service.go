package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService is the lifecycle engine: creation, state transitions,
// assignment and the comment thread. Every mutation is applied together
// with the notifications it emits in one transaction.
type TicketService struct {
	tickets     repository.TicketRepository
	categories  repository.CategoryRepository
	users       repository.UserRepository
	comments    repository.CommentRepository
	attachments repository.AttachmentRepository
	notifier    *Notifier
	rotator     TechnicianRotator
	uow         persistence.UnitOfWork
	dispatcher  events.Dispatcher
	allowedExts map[string]struct{}
	now         func() time.Time
}

// TicketDependencies bundles collaborators for the lifecycle engine.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	CategoryRepo   repository.CategoryRepository
	UserRepo       repository.UserRepository
	CommentRepo    repository.CommentRepository
	AttachmentRepo repository.AttachmentRepository
	Notifier       *Notifier
	Rotator        TechnicianRotator
	UnitOfWork     persistence.UnitOfWork
	Dispatcher     events.Dispatcher
	AllowedExts    []string
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	CategoryID  string
	Subject     string
	Description string
	Priority    domain.TicketPriority
	Attachment  *AttachmentInput
}

// AttachmentInput defines attachment metadata supplied at creation.
type AttachmentInput struct {
	FileName  string
	SizeBytes int64
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	allowed := make(map[string]struct{}, len(deps.AllowedExts))
	for _, ext := range deps.AllowedExts {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &TicketService{
		tickets:     deps.TicketRepo,
		categories:  deps.CategoryRepo,
		users:       deps.UserRepo,
		comments:    deps.CommentRepo,
		attachments: deps.AttachmentRepo,
		notifier:    deps.Notifier,
		rotator:     deps.Rotator,
		uow:         deps.UnitOfWork,
		dispatcher:  deps.Dispatcher,
		allowedExts: allowed,
		now:         time.Now,
	}
}

// CreateTicket opens a ticket for a requester: computes the SLA deadline
// from the category, picks a Tier-1 technician via round-robin (the pool
// may be empty) and notifies the technician when one was assigned.
func (s *TicketService) CreateTicket(ctx context.Context, requester *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	subject := strings.TrimSpace(input.Subject)
	if subject == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("subject and description required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority})
	}
	if input.Attachment != nil {
		if err := s.checkAttachment(input.Attachment); err != nil {
			return nil, err
		}
	}

	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("category does not exist", map[string]any{"category_id": input.CategoryID})
		}
		return nil, apperrors.MapError(err)
	}

	createdAt := s.now()
	ticket := &domain.Ticket{
		ExternalKey: generateTicketKey(),
		RequesterID: requester.ID,
		CategoryID:  category.ID,
		Subject:     subject,
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		SLADueAt:    category.ResolutionDeadline(createdAt),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		technician, err := s.rotator.NextTier1Technician(ctx)
		if err != nil {
			return err
		}
		if technician != nil {
			ticket.TechnicianID = &technician.ID
		}
		if err := s.tickets.Create(ctx, ticket); err != nil {
			return err
		}
		if input.Attachment != nil {
			record := &domain.Attachment{
				TicketID:   ticket.ID,
				FileName:   input.Attachment.FileName,
				StorageKey: ticket.ID + "/" + input.Attachment.FileName,
				SizeBytes:  input.Attachment.SizeBytes,
			}
			if err := s.attachments.Create(ctx, record); err != nil {
				return err
			}
		}
		if technician != nil {
			return s.notifier.TicketAssigned(ctx, ticket, technician.ID)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actorFor(requester),
		Payload: events.TicketCreatedPayload{
			CategoryID:   ticket.CategoryID,
			TechnicianID: ticket.TechnicianID,
			Priority:     ticket.Priority,
			Subject:      ticket.Subject,
			SLADueAt:     ticket.SLADueAt,
		},
	})
	return ticket, nil
}

// ChangeStatus moves a ticket to a new state. Any state may move to any
// other, which is how closed tickets are reopened. Transitioning to
// CLOSED stamps the closure time; leaving CLOSED clears it. The
// requester is always notified, except when nothing changed.
func (s *TicketService) ChangeStatus(ctx context.Context, actor *domain.User, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !actor.Role.Can(domain.CapabilityActOnTickets) {
		return nil, apperrors.NewForbidden("only technicians may change ticket state")
	}
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == newStatus {
		return ticket, nil
	}

	oldStatus := ticket.Status
	if newStatus == domain.TicketStatusClosed {
		closedAt := s.now()
		ticket.ClosedAt = &closedAt
	} else {
		ticket.ClosedAt = nil
	}
	ticket.Status = newStatus

	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return err
		}
		return s.notifier.StatusChanged(ctx, ticket, newStatus)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    actorFor(actor),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// SelfAssign lets a technician take a ticket; the requester is told who
// now handles it.
func (s *TicketService) SelfAssign(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	if !actor.Role.Can(domain.CapabilityActOnTickets) {
		return nil, apperrors.NewForbidden("only technicians may take tickets")
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	previous := ticket.TechnicianID
	ticket.TechnicianID = &actor.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return err
		}
		return s.notifier.TakenBy(ctx, ticket, actor.Name)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    actorFor(actor),
		Payload: events.TicketAssignedPayload{
			TechnicianID:         actor.ID,
			PreviousTechnicianID: previous,
		},
	})
	return ticket, nil
}

// Reassign hands a ticket to another technician. The target is notified;
// the previous technician is notified too unless they are the target.
func (s *TicketService) Reassign(ctx context.Context, actor *domain.User, ticketID, toTechnicianID string) (*domain.Ticket, error) {
	if !actor.Role.Can(domain.CapabilityActOnTickets) {
		return nil, apperrors.NewForbidden("only technicians may reassign tickets")
	}
	if strings.TrimSpace(toTechnicianID) == "" {
		return nil, apperrors.NewValidationError("target technician required", nil)
	}
	target, err := s.users.GetByID(ctx, toTechnicianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": toTechnicianID})
		}
		return nil, apperrors.MapError(err)
	}
	if !target.Role.IsTechnician() {
		return nil, apperrors.NewValidationError("target is not a technician", map[string]any{"technician_id": toTechnicianID})
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	previous := ticket.TechnicianID
	ticket.TechnicianID = &target.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return err
		}
		if err := s.notifier.TicketAssigned(ctx, ticket, target.ID); err != nil {
			return err
		}
		if previous != nil && *previous != target.ID {
			return s.notifier.ReassignedAway(ctx, ticket, *previous)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketReassigned,
		TicketID: ticket.ID,
		Actor:    actorFor(actor),
		Payload: events.TicketAssignedPayload{
			TechnicianID:         target.ID,
			PreviousTechnicianID: previous,
		},
	})
	return ticket, nil
}

// AddComment appends to the ticket thread. Closed tickets reject new
// comments.
func (s *TicketService) AddComment(ctx context.Context, author *domain.User, ticketID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(author, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewStateError("ticket is closed", map[string]any{"ticket_id": ticket.ID})
	}

	comment := &domain.Comment{
		TicketID: ticket.ID,
		AuthorID: author.ID,
		Content:  strings.TrimSpace(content),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.comments.Create(ctx, comment); err != nil {
			return err
		}
		return s.notifier.CommentAdded(ctx, ticket, author)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticket.ID,
		Actor:    actorFor(author),
		Payload: events.TicketCommentAddedPayload{
			CommentID:   comment.ID,
			AuthorID:    author.ID,
			BodyPreview: stringPreview(comment.Content, 120),
		},
	})
	return comment, nil
}

// GetTicket fetches a ticket with its thread and attachments, enforcing
// visibility: requesters see only their own tickets, technicians see all.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, []domain.Comment, []domain.Attachment, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !s.canAccess(actor, ticket) {
		return nil, nil, nil, apperrors.NewForbidden("access denied")
	}
	comments, err := s.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, nil, apperrors.MapError(err)
	}
	attachments, err := s.attachments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, nil, apperrors.MapError(err)
	}
	return ticket, comments, attachments, nil
}

// ListTickets applies the actor's visibility scope to the filter.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if !actor.Role.Can(domain.CapabilityViewAllTickets) {
		filter.RequesterID = &actor.ID
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// DeleteTicket removes a ticket administratively; comments and
// attachments cascade with it.
func (s *TicketService) DeleteTicket(ctx context.Context, actor *domain.User, ticketID string) error {
	if !actor.Role.Can(domain.CapabilityManageRoster) {
		return apperrors.NewForbidden("only Tier-2 technicians may delete tickets")
	}
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) canAccess(actor *domain.User, ticket *domain.Ticket) bool {
	if actor.Role.Can(domain.CapabilityViewAllTickets) {
		return true
	}
	return ticket.RequesterID == actor.ID
}

func (s *TicketService) checkAttachment(input *AttachmentInput) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	if ext == "" {
		return apperrors.NewValidationError("attachment has no extension", map[string]any{"file_name": input.FileName})
	}
	if _, ok := s.allowedExts[ext]; !ok {
		return apperrors.NewValidationError("attachment extension not allowed", map[string]any{"extension": ext})
	}
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFor(user *domain.User) events.Actor {
	return events.Actor{UserID: user.ID, Role: user.Role}
}

func generateTicketKey() string {
	return "HD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
