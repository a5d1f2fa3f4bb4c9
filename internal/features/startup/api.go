package startup

import (
	"invest-portal/internal/config"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type StartupApi struct {
	controller *StartupController
	config     *config.Config
}

func NewStartupApi(controller *StartupController, config *config.Config) *StartupApi {
	return &StartupApi{
		controller: controller,
		config:     config,
	}
}

func (h *StartupApi) Setup(app *fiber.App) {
	startups := app.Group("/api/startups")
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	startups.Post("/register", h.controller.Register)
	startups.Get("/me", auth, h.controller.GetMe)
	startups.Put("/me", auth, h.controller.UpdateMe)
	startups.Delete("/me", auth, h.controller.DeleteMe)
	startups.Put("/verify/:id", auth, middleware.AdminMiddleware(), h.controller.VerifyStartup)
	startups.Get("/", h.controller.ListStartups)
	startups.Get("/:id", h.controller.GetStartup)
}
