package district

import (
	"invest-portal/internal/config"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DistrictApi struct {
	controller *DistrictController
	config     *config.Config
}

func NewDistrictApi(controller *DistrictController, config *config.Config) *DistrictApi {
	return &DistrictApi{
		controller: controller,
		config:     config,
	}
}

func (h *DistrictApi) Setup(app *fiber.App) {
	districts := app.Group("/api/districts")
	admin := []fiber.Handler{middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware()}

	districts.Post("/", h.controller.CreateDistrict)
	districts.Get("/", h.controller.ListDistricts)
	districts.Get("/:districtName", h.controller.GetDistrict)
	districts.Put("/:id", append(admin, h.controller.UpdateDistrict)...)
	districts.Delete("/:id", append(admin, h.controller.DeleteDistrict)...)
}
