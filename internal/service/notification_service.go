package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// NotificationService serves the in-app notification list and relays
// post-commit events to external channels (email/webhook stubs).
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
		cfg:           cfg,
	}
}

// ListForRecipient returns the caller's notifications, unread first, and
// marks them all read: viewing the list is what flips the flag.
func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, error) {
	notifications, err := s.notifications.ListByRecipient(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.notifications.MarkAllRead(ctx, recipientID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return notifications, nil
}

// CountUnread returns the recipient's unread badge count.
func (s *NotificationService) CountUnread(ctx context.Context, recipientID string) (int, error) {
	count, err := s.notifications.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

// RegisterHandlers subscribes the external-channel relays to lifecycle
// events. These run after commit; the persisted notification records are
// written transactionally by the lifecycle engine.
func (s *NotificationService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventTicketCreated, s.relay)
	s.dispatcher.Subscribe(events.EventTicketStatusChanged, s.relay)
	s.dispatcher.Subscribe(events.EventTicketAssigned, s.relay)
	s.dispatcher.Subscribe(events.EventTicketReassigned, s.relay)
	s.dispatcher.Subscribe(events.EventTicketCommentAdded, s.relay)
}

func (s *NotificationService) relay(ctx context.Context, event events.Event) error {
	s.logger.Info("lifecycle event",
		zap.String("event_type", string(event.Type)),
		zap.String("ticket_id", event.TicketID),
		zap.String("actor_id", event.Actor.UserID))
	s.sendEmailStub(ctx, event)
	s.sendWebhookStub(ctx, event)
	return nil
}

func (s *NotificationService) sendEmailStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(s.cfg.EmailFrom) == "" {
		return
	}
	s.logger.Debug("email notification stub",
		zap.String("from", s.cfg.EmailFrom),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}

func (s *NotificationService) sendWebhookStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(s.cfg.WebhookURL) == "" {
		return
	}
	s.logger.Debug("webhook notification stub",
		zap.String("url", s.cfg.WebhookURL),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}
