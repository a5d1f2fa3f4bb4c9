package member

import (
	"invest-portal/internal/config"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MemberApi struct {
	controller *MemberController
	config     *config.Config
}

func NewMemberApi(controller *MemberController, config *config.Config) *MemberApi {
	return &MemberApi{
		controller: controller,
		config:     config,
	}
}

func (h *MemberApi) Setup(app *fiber.App) {
	members := app.Group("/api/members")
	members.Get("/public", h.controller.GetPublicMembers)

	admin := members.Group("/", middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware())
	admin.Get("/", h.controller.GetMembers)
	admin.Post("/", h.controller.CreateMember)
	admin.Get("/export", h.controller.ExportMembers)
	admin.Get("/:id", h.controller.GetMember)
	admin.Put("/:id", h.controller.UpdateMember)
	admin.Put("/:id/priority", h.controller.UpdatePriority)
	admin.Delete("/:id", h.controller.DeleteMember)
}
