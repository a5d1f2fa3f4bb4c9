package popup

import (
	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/formdata"
	"invest-portal/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type PopupController struct {
	Service PopupService
}

func NewPopupController(service PopupService) *PopupController {
	return &PopupController{Service: service}
}

func parseInput(c *fiber.Ctx) (PopupInput, attachment.Uploads, error) {
	var input PopupInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return input, nil, err
	}
	if formdata.IsMultipart(c) {
		if _, err := formdata.JSONField(c, "ctas", &input.CTAs); err != nil {
			return input, nil, err
		}
		if _, err := formdata.JSONField(c, "dailySchedule", &input.DailySchedule); err != nil {
			return input, nil, err
		}
	}
	uploads, err := formdata.Files(c)
	return input, uploads, err
}

// GetPopups godoc
// @Summary List popups
// @Tags popups
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param enabled query bool false "Enabled filter"
// @Param search query string false "Title or description"
// @Success 200 {object} map[string]interface{}
// @Router /api/popups [get]
func (ctrl *PopupController) GetPopups(c *fiber.Ctx) error {
	q := models.NewPageQuery(c.QueryInt("page", 1), c.QueryInt("limit", 10))
	f := ListFilter{Search: c.Query("search")}
	if raw := c.Query("enabled"); raw != "" {
		enabled, err := formdata.ParseBool(raw)
		if err != nil {
			return apperrors.Respond(c, apperrors.ValidationFields(map[string]string{"enabled": "Invalid boolean"}))
		}
		f.Enabled = &enabled
	}

	popups, total, err := ctrl.Service.List(c.UserContext(), f, q)
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	p := models.NewPagination(q.Page, q.Limit, total)
	return c.JSON(fiber.Map{
		"popups":      popups,
		"totalPages":  p.TotalPages,
		"currentPage": p.CurrentPage,
		"totalItems":  p.TotalItems,
	})
}

// GetActivePopups godoc
// @Summary List popups to display now
// @Tags popups
// @Produce json
// @Success 200 {array} Popup
// @Router /api/popups/active [get]
func (ctrl *PopupController) GetActivePopups(c *fiber.Ctx) error {
	popups, err := ctrl.Service.Active(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(popups)
}

// GetPopup godoc
// @Summary Get a popup
// @Tags popups
// @Produce json
// @Param id path string true "Popup ID"
// @Success 200 {object} Popup
// @Router /api/popups/{id} [get]
func (ctrl *PopupController) GetPopup(c *fiber.Ctx) error {
	p, err := ctrl.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(p)
}

// CreatePopup godoc
// @Summary Create a popup
// @Tags popups
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param startDate formData string true "Start date"
// @Param endDate formData string true "End date"
// @Param ctas formData string false "Calls to action as JSON"
// @Param dailySchedule formData string false "Daily schedule as JSON"
// @Param backgroundImage formData file false "Background image"
// @Success 201 {object} Popup
// @Security BearerAuth
// @Router /api/popups [post]
func (ctrl *PopupController) CreatePopup(c *fiber.Ctx) error {
	input, uploads, err := parseInput(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	p, err := ctrl.Service.Create(c.UserContext(), input, uploads)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// UpdatePopup godoc
// @Summary Update a popup
// @Description Send backgroundImage as an empty value to remove the current image.
// @Tags popups
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Popup ID"
// @Success 200 {object} Popup
// @Security BearerAuth
// @Router /api/popups/{id} [put]
func (ctrl *PopupController) UpdatePopup(c *fiber.Ctx) error {
	input, uploads, err := parseInput(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	var clears []string
	if len(uploads["backgroundImage"]) == 0 && formdata.Cleared(c, "backgroundImage") {
		clears = append(clears, "backgroundImage")
	}

	p, err := ctrl.Service.Update(c.UserContext(), c.Params("id"), input, uploads, clears)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(p)
}

// TogglePopup godoc
// @Summary Flip a popup's enabled flag
// @Tags popups
// @Produce json
// @Param id path string true "Popup ID"
// @Success 200 {object} Popup
// @Security BearerAuth
// @Router /api/popups/{id}/toggle [patch]
func (ctrl *PopupController) TogglePopup(c *fiber.Ctx) error {
	p, err := ctrl.Service.Toggle(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(p)
}

// DeletePopup godoc
// @Summary Delete a popup and its background image
// @Tags popups
// @Produce json
// @Param id path string true "Popup ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/popups/{id} [delete]
func (ctrl *PopupController) DeletePopup(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Popup deleted successfully"})
}
