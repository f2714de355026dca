package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/service"
)

// StartNotificationWorker subscribes the outbound notification relay to
// ticket events. Handlers run synchronously on publish; this only needs
// to register them once at startup.
func StartNotificationWorker(ctx context.Context, notifications *service.NotificationService, logger *zap.Logger) {
	notifications.RegisterHandlers()
	logger.Info("notification worker registered")

	go func() {
		<-ctx.Done()
		logger.Info("notification worker stopped")
	}()
}
