package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// RequireCapability guards a route behind a role capability.
func RequireCapability(capability domain.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !user.Role.Can(capability) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireTechnician ensures the caller is Tier-1 or Tier-2 support.
func RequireTechnician() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !user.Role.IsTechnician() {
			return apperrors.NewForbidden("technician role required")
		}
		return c.Next()
	}
}
