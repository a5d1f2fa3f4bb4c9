package company

import (
	"invest-portal/internal/config"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CompanyApi struct {
	controller *CompanyController
	config     *config.Config
}

func NewCompanyApi(controller *CompanyController, config *config.Config) *CompanyApi {
	return &CompanyApi{
		controller: controller,
		config:     config,
	}
}

func (h *CompanyApi) Setup(app *fiber.App) {
	companies := app.Group("/api/companies")
	companies.Post("/", h.controller.CreateCompany)
	companies.Get("/", h.controller.ListCompanies)
	companies.Get("/industries", h.controller.ListIndustries)

	admin := companies.Group("/", middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware())
	admin.Get("/:id", h.controller.GetCompany)
	admin.Put("/:id", h.controller.UpdateCompany)
	admin.Patch("/:id/verify", h.controller.VerifyCompany)
	admin.Delete("/:id", h.controller.DeleteCompany)
}
