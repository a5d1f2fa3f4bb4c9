package toputility

import (
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/formdata"

	"github.com/gofiber/fiber/v2"
)

type TopUtilityController struct {
	Service TopUtilityService
}

func NewTopUtilityController(service TopUtilityService) *TopUtilityController {
	return &TopUtilityController{Service: service}
}

// GetConfig godoc
// @Summary Get the top utility bar configuration
// @Tags top-utility
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/top-utility/config [get]
func (ctrl *TopUtilityController) GetConfig(c *fiber.Ctx) error {
	cfg, err := ctrl.Service.GetConfig(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": cfg})
}

// UpdateConfig godoc
// @Summary Update the top utility bar configuration
// @Tags top-utility
// @Accept json
// @Produce json
// @Param input body ConfigInput true "Configuration"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/top-utility/config [put]
func (ctrl *TopUtilityController) UpdateConfig(c *fiber.Ctx) error {
	var input ConfigInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	cfg, err := ctrl.Service.UpdateConfig(c.UserContext(), input)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": cfg, "message": "Configuration updated successfully"})
}

// GetAnnouncements godoc
// @Summary List active announcements
// @Tags top-utility
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/top-utility/announcements [get]
func (ctrl *TopUtilityController) GetAnnouncements(c *fiber.Ctx) error {
	items, err := ctrl.Service.ListAnnouncements(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// CreateAnnouncement godoc
// @Summary Create an announcement
// @Tags top-utility
// @Accept json
// @Produce json
// @Param input body AnnouncementInput true "Announcement"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/top-utility/announcements [post]
func (ctrl *TopUtilityController) CreateAnnouncement(c *fiber.Ctx) error {
	var input AnnouncementInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	a, err := ctrl.Service.CreateAnnouncement(c.UserContext(), input)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": a, "message": "Announcement created successfully"})
}

// ReorderAnnouncements godoc
// @Summary Set the display order of announcements
// @Tags top-utility
// @Accept json
// @Produce json
// @Param input body ReorderInput true "New order"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/top-utility/announcements/reorder [put]
func (ctrl *TopUtilityController) ReorderAnnouncements(c *fiber.Ctx) error {
	var input ReorderInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	if err := ctrl.Service.Reorder(c.UserContext(), input); err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Announcements reordered successfully"})
}

// UpdateAnnouncement godoc
// @Summary Update an announcement
// @Tags top-utility
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param input body AnnouncementInput true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/top-utility/announcements/{id} [put]
func (ctrl *TopUtilityController) UpdateAnnouncement(c *fiber.Ctx) error {
	var input AnnouncementInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	a, err := ctrl.Service.UpdateAnnouncement(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": a, "message": "Announcement updated successfully"})
}

// DeleteAnnouncement godoc
// @Summary Delete an announcement
// @Tags top-utility
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/top-utility/announcements/{id} [delete]
func (ctrl *TopUtilityController) DeleteAnnouncement(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteAnnouncement(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Announcement deleted successfully"})
}
