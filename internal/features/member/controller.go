package member

import (
	"fmt"
	"time"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/export"
	"invest-portal/internal/common/formdata"

	"github.com/gofiber/fiber/v2"
)

type MemberController struct {
	Service MemberService
}

func NewMemberController(service MemberService) *MemberController {
	return &MemberController{Service: service}
}

func parseInput(c *fiber.Ctx) (MemberInput, attachment.Uploads, error) {
	var input MemberInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return input, nil, err
	}
	if formdata.IsMultipart(c) {
		if _, err := formdata.JSONField(c, "social", &input.Social); err != nil {
			return input, nil, err
		}
	}
	uploads, err := formdata.Files(c)
	return input, uploads, err
}

// GetPublicMembers godoc
// @Summary List active members for the public site
// @Tags members
// @Produce json
// @Success 200 {array} PublicMember
// @Router /api/members/public [get]
func (ctrl *MemberController) GetPublicMembers(c *fiber.Ctx) error {
	members, err := ctrl.Service.ListPublic(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(members)
}

// GetMembers godoc
// @Summary List all members
// @Tags members
// @Produce json
// @Success 200 {array} Member
// @Security BearerAuth
// @Router /api/members [get]
func (ctrl *MemberController) GetMembers(c *fiber.Ctx) error {
	members, err := ctrl.Service.List(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(members)
}

// GetMember godoc
// @Summary Get a member
// @Tags members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} Member
// @Security BearerAuth
// @Router /api/members/{id} [get]
func (ctrl *MemberController) GetMember(c *fiber.Ctx) error {
	m, err := ctrl.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(m)
}

// CreateMember godoc
// @Summary Create a member
// @Tags members
// @Accept multipart/form-data
// @Produce json
// @Param fullName formData string true "Full name"
// @Param social formData string false "Social links as JSON"
// @Param profileImage formData file false "Profile image"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/members [post]
func (ctrl *MemberController) CreateMember(c *fiber.Ctx) error {
	input, uploads, err := parseInput(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	m, err := ctrl.Service.Create(c.UserContext(), input, uploads)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": m})
}

// UpdateMember godoc
// @Summary Update a member
// @Tags members
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/members/{id} [put]
func (ctrl *MemberController) UpdateMember(c *fiber.Ctx) error {
	input, uploads, err := parseInput(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	var clears []string
	if formdata.Cleared(c, "profileImage") {
		clears = append(clears, "profileImage")
	}

	m, err := ctrl.Service.Update(c.UserContext(), c.Params("id"), input, uploads, clears)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": m})
}

// UpdatePriority godoc
// @Summary Set a member's display priority
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param input body PriorityInput true "Priority"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/members/{id}/priority [put]
func (ctrl *MemberController) UpdatePriority(c *fiber.Ctx) error {
	var input PriorityInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	if input.Priority == nil {
		return apperrors.Respond(c, apperrors.ValidationFields(map[string]string{"priority": "Priority is required"}))
	}

	m, err := ctrl.Service.SetPriority(c.UserContext(), c.Params("id"), *input.Priority)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": m})
}

// DeleteMember godoc
// @Summary Delete a member and the profile image
// @Tags members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/members/{id} [delete]
func (ctrl *MemberController) DeleteMember(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Member removed"})
}

// ExportMembers godoc
// @Summary Download members as a spreadsheet
// @Tags members
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /api/members/export [get]
func (ctrl *MemberController) ExportMembers(c *fiber.Ctx) error {
	data, err := ctrl.Service.Export(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return export.Send(c, data, fmt.Sprintf("members-%s", time.Now().Format("2006-01-02")))
}
