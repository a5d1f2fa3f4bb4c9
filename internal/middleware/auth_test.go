package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"invest-portal/internal/common/models"
	"invest-portal/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newApp(skipAuth bool, roles ...string) *fiber.App {
	app := fiber.New()
	app.Use(RequestID(), RequestLogger(zap.NewNop()))
	app.Get("/admin", AuthMiddleware(skipAuth), AdminMiddleware(roles...), func(c *fiber.Ctx) error {
		claims, ok := utils.ClaimsFromContext(c.UserContext())
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(claims.UserID)
	})
	return app
}

func token(t *testing.T, roles ...string) string {
	t.Helper()
	utils.SetSecret("mw-secret")
	tok, err := utils.GenerateToken(primitive.NewObjectID(), roles)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	admin := token(t, models.RoleAdmin)
	company := token(t, models.RoleCompany)

	tests := []struct {
		name   string
		header string
		value  string
		status int
	}{
		{"missing token", "", "", fiber.StatusUnauthorized},
		{"garbage token", fiber.HeaderAuthorization, "Bearer nope", fiber.StatusUnauthorized},
		{"wrong scheme", fiber.HeaderAuthorization, "Basic abc", fiber.StatusUnauthorized},
		{"bearer admin", fiber.HeaderAuthorization, "Bearer " + admin, fiber.StatusOK},
		{"x-auth-token admin", "x-auth-token", admin, fiber.StatusOK},
		{"company role", fiber.HeaderAuthorization, "Bearer " + company, fiber.StatusForbidden},
	}

	app := newApp(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
		})
	}
}

func TestAuthMiddlewareSkipAuth(t *testing.T) {
	resp, err := newApp(true).Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, DevUserID, string(body))
}

func TestAdminMiddlewareCustomRoles(t *testing.T) {
	app := newApp(false, models.RoleStartup)
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token(t, models.RoleStartup))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := newApp(true).Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
}
