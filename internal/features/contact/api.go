package contact

import (
	"invest-portal/internal/config"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ContactApi struct {
	controller *ContactController
	config     *config.Config
}

func NewContactApi(controller *ContactController, config *config.Config) *ContactApi {
	return &ContactApi{
		controller: controller,
		config:     config,
	}
}

func (h *ContactApi) Setup(app *fiber.App) {
	contact := app.Group("/api/contact")
	contact.Post("/submit", h.controller.Submit)

	admin := contact.Group("/", middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware())
	admin.Get("/", h.controller.GetSubmissions)
	admin.Get("/admin/submissions", h.controller.GetAdminSubmissions)
	admin.Get("/admin/export", h.controller.ExportSubmissions)
}
