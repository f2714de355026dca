package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apihttp "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer postgres.Close()
	pool := postgres.PoolHandle()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	assetRepo := repository.NewAssetRepository(pool)

	var cursorRepo repository.RotationCursorRepository
	switch cfg.Rotation.Backend {
	case config.RotationBackendRedis:
		cursorRepo = repository.NewRedisRotationRepository(redis.Client)
	default:
		cursorRepo = repository.NewPostgresRotationRepository(pool)
	}
	logger.Info("rotation cursor backend selected", zap.String("backend", string(cfg.Rotation.Backend)))

	uow := persistence.NewUnitOfWork(pool)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	notifier := service.NewNotifier(notificationRepo)
	rotator := service.NewRotationService(userRepo, cursorRepo)
	authService := service.NewAuthService(*cfg, userRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		CategoryRepo:   categoryRepo,
		UserRepo:       userRepo,
		CommentRepo:    commentRepo,
		AttachmentRepo: attachmentRepo,
		Notifier:       notifier,
		Rotator:        rotator,
		UnitOfWork:     uow,
		Dispatcher:     dispatcher,
		AllowedExts:    cfg.Attachments.AllowedExtensions,
	})
	categoryService := service.NewCategoryService(categoryRepo)
	assetService := service.NewAssetService(assetRepo, userRepo)
	rosterService := service.NewRosterService(userRepo, cfg.Auth.BcryptCost)
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger, cfg.Notification)
	reportService := service.NewReportService(ticketRepo)

	worker.StartNotificationWorker(ctx, notificationService, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	apihttp.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Auth:          auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
		Users:         handlers.NewUsersHandler(authService),
		Tickets:       handlers.NewTicketsHandler(ticketService),
		Categories:    handlers.NewCategoriesHandler(categoryService),
		Assets:        handlers.NewAssetsHandler(assetService),
		Roster:        handlers.NewRosterHandler(rosterService),
		Notifications: handlers.NewNotificationsHandler(notificationService),
		Reports:       handlers.NewReportsHandler(reportService),
		Health:        handlers.NewHealthHandler(pool, redis),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("addr", cfg.App.Addr()), zap.String("version", cfg.App.Version))

	<-ctx.Done()
	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
