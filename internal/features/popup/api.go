package popup

import (
	"invest-portal/internal/config"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PopupApi struct {
	controller *PopupController
	config     *config.Config
}

func NewPopupApi(controller *PopupController, config *config.Config) *PopupApi {
	return &PopupApi{
		controller: controller,
		config:     config,
	}
}

func (h *PopupApi) Setup(app *fiber.App) {
	popups := app.Group("/api/popups")
	admin := []fiber.Handler{middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware()}

	popups.Get("/", h.controller.GetPopups)
	popups.Get("/active", h.controller.GetActivePopups)
	popups.Get("/:id", h.controller.GetPopup)
	popups.Post("/", append(admin, h.controller.CreatePopup)...)
	popups.Put("/:id", append(admin, h.controller.UpdatePopup)...)
	popups.Patch("/:id/toggle", append(admin, h.controller.TogglePopup)...)
	popups.Delete("/:id", append(admin, h.controller.DeletePopup)...)
}
