package company

import (
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/formdata"

	"github.com/gofiber/fiber/v2"
)

type CompanyController struct {
	Service CompanyService
}

func NewCompanyController(service CompanyService) *CompanyController {
	return &CompanyController{Service: service}
}

// attachmentClears lists the attachment fields the client emptied explicitly.
func attachmentClears(c *fiber.Ctx) []string {
	var clears []string
	for _, field := range []string{"logo", "banner"} {
		if formdata.Cleared(c, field) {
			clears = append(clears, field)
		}
	}
	return clears
}

// CreateCompany godoc
// @Summary Register a company
// @Tags companies
// @Accept multipart/form-data
// @Produce json
// @Param companyName formData string true "Company name"
// @Param directorCeo formData string true "Director / CEO"
// @Param email formData string true "Email"
// @Param phone formData string true "Phone"
// @Param logo formData file false "Logo"
// @Param banner formData file false "Banner"
// @Success 201 {object} map[string]interface{}
// @Router /api/companies [post]
func (ctrl *CompanyController) CreateCompany(c *fiber.Ctx) error {
	var input CompanyInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	uploads, err := formdata.Files(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	company, err := ctrl.Service.Create(c.UserContext(), input, uploads)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Company registered successfully",
		"data":    company,
	})
}

// ListCompanies godoc
// @Summary List companies
// @Tags companies
// @Produce json
// @Param industry query string false "Industry filter (case-insensitive)"
// @Success 200 {object} map[string]interface{}
// @Router /api/companies [get]
func (ctrl *CompanyController) ListCompanies(c *fiber.Ctx) error {
	companies, err := ctrl.Service.List(c.UserContext(), c.Query("industry"))
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(companies),
		"data":    companies,
	})
}

// ListIndustries godoc
// @Summary List industry names for the company form
// @Tags companies
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/companies/industries [get]
func (ctrl *CompanyController) ListIndustries(c *fiber.Ctx) error {
	names, err := ctrl.Service.IndustryNames(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    names,
	})
}

// GetCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/companies/{id} [get]
func (ctrl *CompanyController) GetCompany(c *fiber.Ctx) error {
	company, err := ctrl.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": company})
}

// UpdateCompany godoc
// @Summary Update a company
// @Tags companies
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/companies/{id} [put]
func (ctrl *CompanyController) UpdateCompany(c *fiber.Ctx) error {
	var input CompanyInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	uploads, err := formdata.Files(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	company, err := ctrl.Service.Update(c.UserContext(), c.Params("id"), input, uploads, attachmentClears(c))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Company updated successfully",
		"data":    company,
	})
}

// VerifyCompany godoc
// @Summary Set the verified flag of a company
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/companies/{id}/verify [patch]
func (ctrl *CompanyController) VerifyCompany(c *fiber.Ctx) error {
	var input VerifyInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	verified := true
	if input.IsVerified != nil {
		verified = *input.IsVerified
	}

	company, err := ctrl.Service.Verify(c.UserContext(), c.Params("id"), verified)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": company})
}

// DeleteCompany godoc
// @Summary Delete a company and its files
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/companies/{id} [delete]
func (ctrl *CompanyController) DeleteCompany(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Company deleted successfully",
	})
}
