package lookup

import (
	"github.com/gofiber/fiber/v2"
)

type LookupApi struct {
	controller *LookupController
}

func NewLookupApi(controller *LookupController) *LookupApi {
	return &LookupApi{controller: controller}
}

func (h *LookupApi) Setup(app *fiber.App) {
	app.Get("/api/states", h.controller.GetStates)

	common := app.Group("/api/common")
	common.Get("/industries", h.controller.GetIndustries)
	common.Get("/districts", h.controller.GetDistricts)
}
