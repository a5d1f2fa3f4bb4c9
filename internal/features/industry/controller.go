package industry

import (
	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/formdata"
	"invest-portal/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type IndustryController struct {
	Service IndustryService
}

func NewIndustryController(service IndustryService) *IndustryController {
	return &IndustryController{Service: service}
}

func parseInput(c *fiber.Ctx) (IndustryInput, attachment.Uploads, error) {
	var input IndustryInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return input, nil, err
	}

	if formdata.IsMultipart(c) {
		nested := map[string]interface{}{
			"leadership":       &input.Leadership,
			"pressReleases":    &input.PressReleases,
			"mediaCoverage":    &input.MediaCoverage,
			"governmentPapers": &input.GovernmentPapers,
		}
		for key, dst := range nested {
			if _, err := formdata.JSONField(c, key, dst); err != nil {
				return input, nil, err
			}
		}
		gallery, ok, err := formdata.Strings(c, "gallery")
		if err != nil {
			return input, nil, err
		}
		if ok {
			input.Gallery = &gallery
		}
	}

	uploads, err := formdata.Files(c)
	return input, uploads, err
}

func clears(c *fiber.Ctx) []string {
	var out []string
	for _, field := range []string{"logo", "coverImage"} {
		if formdata.Cleared(c, field) {
			out = append(out, field)
		}
	}
	return out
}

// ListIndustries godoc
// @Summary List industries
// @Tags industries
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param search query string false "Full-text search"
// @Param status query string false "active or inactive"
// @Param category query string false "Category"
// @Success 200 {object} map[string]interface{}
// @Router /api/industries [get]
func (ctrl *IndustryController) ListIndustries(c *fiber.Ctx) error {
	q := models.NewPageQuery(c.QueryInt("page", 1), c.QueryInt("limit", 10))
	f := ListFilter{Search: c.Query("search"), Status: c.Query("status"), Category: c.Query("category")}

	industries, total, err := ctrl.Service.List(c.UserContext(), f, q)
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	p := models.NewPagination(q.Page, q.Limit, total)
	return c.JSON(fiber.Map{
		"industries":  industries,
		"totalPages":  p.TotalPages,
		"currentPage": p.CurrentPage,
		"totalItems":  p.TotalItems,
	})
}

// GetCategories godoc
// @Summary Industry categories and their sectors
// @Tags industries
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/industries/metadata/categories [get]
func (ctrl *IndustryController) GetCategories(c *fiber.Ctx) error {
	return c.JSON(Categories)
}

// GetIndustry godoc
// @Summary Get an industry
// @Tags industries
// @Produce json
// @Param id path string true "Industry ID"
// @Success 200 {object} Industry
// @Router /api/industries/{id} [get]
func (ctrl *IndustryController) GetIndustry(c *fiber.Ctx) error {
	ind, err := ctrl.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(ind)
}

// CreateIndustry godoc
// @Summary Create an industry
// @Description Nested lists (leadership, pressReleases, mediaCoverage, governmentPapers) are JSON form values; their files are matched by position.
// @Tags industries
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param description formData string true "Description"
// @Param overview formData string true "Overview"
// @Param logo formData file false "Logo"
// @Param coverImage formData file false "Cover image"
// @Param gallery formData file false "Gallery images"
// @Success 201 {object} Industry
// @Security BearerAuth
// @Router /api/industries [post]
func (ctrl *IndustryController) CreateIndustry(c *fiber.Ctx) error {
	input, uploads, err := parseInput(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	ind, err := ctrl.Service.Create(c.UserContext(), input, uploads)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ind)
}

// UpdateIndustry godoc
// @Summary Update an industry
// @Tags industries
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Industry ID"
// @Success 200 {object} Industry
// @Security BearerAuth
// @Router /api/industries/{id} [put]
func (ctrl *IndustryController) UpdateIndustry(c *fiber.Ctx) error {
	input, uploads, err := parseInput(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	ind, err := ctrl.Service.Update(c.UserContext(), c.Params("id"), input, uploads, clears(c))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(ind)
}

// DeleteIndustry godoc
// @Summary Delete an industry and its files
// @Tags industries
// @Produce json
// @Param id path string true "Industry ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/industries/{id} [delete]
func (ctrl *IndustryController) DeleteIndustry(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Industry deleted successfully"})
}
