package middleware

import (
	"context"
	"strings"

	"invest-portal/internal/common/models"
	"invest-portal/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// DevUserID is the subject injected when SKIP_AUTH is on.
const DevUserID = "dev-admin-id"

// AuthMiddleware validates JWT tokens and injects user claims into context
func AuthMiddleware(skipAuth bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			setClaims(c, &utils.UserClaims{
				UserID: DevUserID,
				Roles:  []string{models.RoleSuperAdmin, models.RoleAdmin},
			})
			return c.Next()
		}

		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No token, authorization denied",
			})
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token is not valid",
			})
		}

		setClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present and never rejects.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if claims, err := utils.ValidateToken(token); err == nil {
				setClaims(c, claims)
			}
		}
		return c.Next()
	}
}

// bearerToken reads "Authorization: Bearer <token>" or the x-auth-token header.
func bearerToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
			return strings.TrimSpace(h[7:])
		}
		return ""
	}
	return strings.TrimSpace(c.Get("x-auth-token"))
}

func setClaims(c *fiber.Ctx, claims *utils.UserClaims) {
	c.Locals(utils.UserClaimsKey, claims)
	c.SetUserContext(context.WithValue(c.UserContext(), utils.UserClaimsKey, claims))
}

// Claims returns the claims set by AuthMiddleware.
func Claims(c *fiber.Ctx) (*utils.UserClaims, bool) {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return claims, ok && claims != nil
}
