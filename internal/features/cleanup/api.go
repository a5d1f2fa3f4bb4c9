package cleanup

import (
	"invest-portal/internal/config"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CleanupApi struct {
	controller *CleanupController
	config     *config.Config
}

func NewCleanupApi(controller *CleanupController, config *config.Config) *CleanupApi {
	return &CleanupApi{
		controller: controller,
		config:     config,
	}
}

func (h *CleanupApi) Setup(app *fiber.App) {
	attachments := app.Group("/api/admin/attachments",
		middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware())

	attachments.Get("/orphans", h.controller.ListOrphans)
	attachments.Post("/sweep", h.controller.Sweep)
}
