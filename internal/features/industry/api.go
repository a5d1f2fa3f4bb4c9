package industry

import (
	"invest-portal/internal/config"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type IndustryApi struct {
	controller *IndustryController
	config     *config.Config
}

func NewIndustryApi(controller *IndustryController, config *config.Config) *IndustryApi {
	return &IndustryApi{
		controller: controller,
		config:     config,
	}
}

func (h *IndustryApi) Setup(app *fiber.App) {
	industries := app.Group("/api/industries")

	industries.Get("/", h.controller.ListIndustries)
	industries.Get("/metadata/categories", h.controller.GetCategories)
	industries.Get("/:id", h.controller.GetIndustry)

	admin := industries.Group("/", middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware())
	admin.Post("/", h.controller.CreateIndustry)
	admin.Put("/:id", h.controller.UpdateIndustry)
	admin.Delete("/:id", h.controller.DeleteIndustry)
}
