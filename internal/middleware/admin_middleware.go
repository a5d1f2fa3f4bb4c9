package middleware

import (
	"invest-portal/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware requires one of roles; with none given it requires admin or superadmin.
func AdminMiddleware(roles ...string) fiber.Handler {
	if len(roles) == 0 {
		roles = []string{models.RoleAdmin, models.RoleSuperAdmin}
	}

	return func(c *fiber.Ctx) error {
		claims, ok := Claims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if len(claims.Roles) == 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied: No roles assigned",
			})
		}

		if !claims.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied: Insufficient role",
			})
		}

		return c.Next()
	}
}
