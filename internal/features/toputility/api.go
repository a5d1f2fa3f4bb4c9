package toputility

import (
	"invest-portal/internal/config"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TopUtilityApi struct {
	controller *TopUtilityController
	config     *config.Config
}

func NewTopUtilityApi(controller *TopUtilityController, config *config.Config) *TopUtilityApi {
	return &TopUtilityApi{
		controller: controller,
		config:     config,
	}
}

func (h *TopUtilityApi) Setup(app *fiber.App) {
	group := app.Group("/api/top-utility")
	admin := []fiber.Handler{middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware()}

	group.Get("/config", h.controller.GetConfig)
	group.Put("/config", append(admin, h.controller.UpdateConfig)...)

	group.Get("/announcements", h.controller.GetAnnouncements)
	group.Post("/announcements", append(admin, h.controller.CreateAnnouncement)...)
	// reorder must stay ahead of /:id
	group.Put("/announcements/reorder", append(admin, h.controller.ReorderAnnouncements)...)
	group.Put("/announcements/:id", append(admin, h.controller.UpdateAnnouncement)...)
	group.Delete("/announcements/:id", append(admin, h.controller.DeleteAnnouncement)...)
}
