package gallery

import (
	"invest-portal/internal/config"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type GalleryApi struct {
	controller *GalleryController
	config     *config.Config
}

func NewGalleryApi(controller *GalleryController, config *config.Config) *GalleryApi {
	return &GalleryApi{
		controller: controller,
		config:     config,
	}
}

func (h *GalleryApi) Setup(app *fiber.App) {
	gallery := app.Group("/api/gallery")
	gallery.Get("/active", h.controller.GetActiveImages)
	gallery.Get("/:id", h.controller.GetImage)

	admin := gallery.Group("/", middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware())
	admin.Get("/", h.controller.GetImages)
	admin.Post("/", h.controller.CreateImage)
	admin.Put("/:id", h.controller.UpdateImage)
	admin.Delete("/:id", h.controller.DeleteImage)
	admin.Patch("/:id/status", h.controller.ToggleStatus)
}
