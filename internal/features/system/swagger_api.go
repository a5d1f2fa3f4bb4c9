package system

import (
	"invest-portal/internal/common/api"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

type SwaggerApi struct{}

func NewSwaggerApi() api.Route {
	return &SwaggerApi{}
}

// Setup serves the generated OpenAPI document and its UI under /swagger.
func (h *SwaggerApi) Setup(app *fiber.App) {
	app.Get("/swagger", func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/index.html", fiber.StatusMovedPermanently)
	})
	app.Get("/swagger/*", swagger.New(swagger.Config{
		Title:        "Investment Portal API",
		DeepLinking:  true,
		DocExpansion: "list",
	}))
}
