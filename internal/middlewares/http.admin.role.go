package middlewares

import (
	"github.com/gofiber/fiber/v3"

	"github.com/notehive/payout-ledger-api/internal/domain"
)

// NewHTTPAdminRoleMiddleware gates a route group on the JWT role claim.
// Runs after the JWT middleware, which deposits the role in Locals.
func NewHTTPAdminRoleMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role != domain.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "administrator role required",
			})
		}
		return c.Next()
	}
}
