package policy

import (
	"invest-portal/internal/config"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PolicyApi struct {
	controller *PolicyController
	config     *config.Config
}

func NewPolicyApi(controller *PolicyController, config *config.Config) *PolicyApi {
	return &PolicyApi{
		controller: controller,
		config:     config,
	}
}

func (h *PolicyApi) Setup(app *fiber.App) {
	policies := app.Group("/api/policies")
	admin := []fiber.Handler{middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware()}

	policies.Get("/published", h.controller.GetPublishedPolicies)
	policies.Get("/", append(admin, h.controller.GetPolicies)...)
	policies.Post("/", append(admin, h.controller.CreatePolicy)...)
	policies.Get("/:id", h.controller.GetPolicy)
	policies.Put("/:id", append(admin, h.controller.UpdatePolicy)...)
	policies.Delete("/:id", append(admin, h.controller.DeletePolicy)...)
}
