package contact

import (
	"fmt"
	"time"

	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/export"
	"invest-portal/internal/common/formdata"
	"invest-portal/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type ContactController struct {
	Service ContactService
}

func NewContactController(service ContactService) *ContactController {
	return &ContactController{Service: service}
}

func listQuery(c *fiber.Ctx, fields ...string) (ListQuery, models.PageQuery) {
	lq := ListQuery{
		Search:    c.Query("search"),
		Fields:    fields,
		SortBy:    c.Query("sortBy", "createdAt"),
		Ascending: c.Query("sortOrder") == "asc",
	}
	return lq, models.NewPageQuery(c.QueryInt("page", 1), c.QueryInt("limit", 10))
}

// Submit godoc
// @Summary Submit the public contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param input body SubmitInput true "Contact form"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/contact/submit [post]
func (ctrl *ContactController) Submit(c *fiber.Ctx) error {
	var input SubmitInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	if _, err := ctrl.Service.Submit(c.UserContext(), input); err != nil {
		return apperrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Contact form submitted successfully",
	})
}

// GetSubmissions godoc
// @Summary List contact form submissions
// @Tags contact
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param search query string false "Name, email or message"
// @Param sortBy query string false "createdAt, fullName or email"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/contact [get]
func (ctrl *ContactController) GetSubmissions(c *fiber.Ctx) error {
	lq, q := listQuery(c, "fullName", "email", "message")
	subs, total, err := ctrl.Service.List(c.UserContext(), lq, q)
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	p := models.NewPagination(q.Page, q.Limit, total)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    subs,
		"pagination": fiber.Map{
			"total": p.TotalItems,
			"page":  p.CurrentPage,
			"pages": p.TotalPages,
			"limit": p.ItemsPerPage,
		},
	})
}

// GetAdminSubmissions godoc
// @Summary List contact form submissions for the admin table
// @Tags contact
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param search query string false "Name or email"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/contact/admin/submissions [get]
func (ctrl *ContactController) GetAdminSubmissions(c *fiber.Ctx) error {
	lq, q := listQuery(c, "fullName", "email")
	subs, total, err := ctrl.Service.List(c.UserContext(), lq, q)
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       subs,
		"pagination": models.NewPagination(q.Page, q.Limit, total),
	})
}

// ExportSubmissions godoc
// @Summary Download contact form submissions as a spreadsheet
// @Tags contact
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /api/contact/admin/export [get]
func (ctrl *ContactController) ExportSubmissions(c *fiber.Ctx) error {
	data, err := ctrl.Service.Export(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return export.Send(c, data, fmt.Sprintf("contact-submissions-%s", time.Now().Format("2006-01-02")))
}
