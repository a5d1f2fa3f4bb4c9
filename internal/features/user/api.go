package user

import (
	"invest-portal/internal/config"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
}

func NewUserApi(controller *UserController, config *config.Config) *UserApi {
	return &UserApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the admin user routes
func (h *UserApi) Setup(app *fiber.App) {
	users := app.Group("/api/users", middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware())

	users.Get("/", h.controller.ListUsers)
	users.Get("/:id", h.controller.GetUser)
	users.Put("/:id/status", h.controller.UpdateUserStatus)
}
