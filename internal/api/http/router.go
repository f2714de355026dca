package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles everything RegisterRoutes needs.
type RouteConfig struct {
	Auth          *auth.AuthMiddleware
	Users         *handlers.UsersHandler
	Tickets       *handlers.TicketsHandler
	Categories    *handlers.CategoriesHandler
	Assets        *handlers.AssetsHandler
	Roster        *handlers.RosterHandler
	Notifications *handlers.NotificationsHandler
	Reports       *handlers.ReportsHandler
	Health        *handlers.HealthHandler
}

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	protected := v1.Use(cfg.Auth.Handle)

	tickets := protected.Group("/tickets")
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Patch("/:id/status", auth.RequireTechnician(), cfg.Tickets.ChangeStatus)
	tickets.Post("/:id/self-assign", auth.RequireTechnician(), cfg.Tickets.SelfAssign)
	tickets.Post("/:id/reassign", auth.RequireTechnician(), cfg.Tickets.Reassign)
	tickets.Delete("/:id", auth.RequireCapability(domain.CapabilityManageRoster), cfg.Tickets.Delete)

	categories := protected.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Post("/", auth.RequireCapability(domain.CapabilityManageCategories), cfg.Categories.Create)
	categories.Put("/:id", auth.RequireCapability(domain.CapabilityManageCategories), cfg.Categories.Update)

	assets := protected.Group("/assets", auth.RequireCapability(domain.CapabilityManageAssets))
	assets.Get("/", cfg.Assets.List)
	assets.Post("/", cfg.Assets.Create)
	assets.Put("/:id", cfg.Assets.Update)
	assets.Delete("/:id", cfg.Assets.Delete)

	roster := protected.Group("/roster", auth.RequireCapability(domain.CapabilityManageRoster))
	roster.Get("/", cfg.Roster.List)
	roster.Post("/", cfg.Roster.Create)
	roster.Patch("/:id", cfg.Roster.Update)

	notifications := protected.Group("/notifications")
	notifications.Get("/", cfg.Notifications.List)
	notifications.Get("/unread-count", cfg.Notifications.UnreadCount)

	reports := protected.Group("/reports", auth.RequireCapability(domain.CapabilityViewReports))
	reports.Get("/summary", cfg.Reports.Summary)
}
