package district

import (
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/formdata"

	"github.com/gofiber/fiber/v2"
)

type DistrictController struct {
	Service DistrictService
}

func NewDistrictController(service DistrictService) *DistrictController {
	return &DistrictController{Service: service}
}

// parseInput reads districtData from a multipart form, or the JSON body itself.
func parseInput(c *fiber.Ctx) (DistrictInput, error) {
	var input DistrictInput
	if formdata.IsMultipart(c) {
		_, err := formdata.JSONField(c, "districtData", &input)
		return input, err
	}
	return input, formdata.ParseBody(c, &input)
}

// CreateDistrict godoc
// @Summary Create a district
// @Tags districts
// @Accept multipart/form-data
// @Produce json
// @Param districtData formData string true "District document as JSON"
// @Param awardsPhotos formData file false "Award photos (up to 10)"
// @Success 201 {object} map[string]interface{}
// @Router /api/districts [post]
func (ctrl *DistrictController) CreateDistrict(c *fiber.Ctx) error {
	input, err := parseInput(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	uploads, err := formdata.Files(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	d, err := ctrl.Service.Create(c.UserContext(), input, uploads)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "District created successfully",
		"data":    d,
	})
}

// ListDistricts godoc
// @Summary List districts
// @Tags districts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/districts [get]
func (ctrl *DistrictController) ListDistricts(c *fiber.Ctx) error {
	districts, err := ctrl.Service.List(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(districts),
		"data":    districts,
	})
}

// GetDistrict godoc
// @Summary Get a district by name
// @Tags districts
// @Produce json
// @Param districtName path string true "District name, case-insensitive"
// @Success 200 {object} map[string]interface{}
// @Router /api/districts/{districtName} [get]
func (ctrl *DistrictController) GetDistrict(c *fiber.Ctx) error {
	d, err := ctrl.Service.GetByName(c.UserContext(), c.Params("districtName"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": d})
}

// UpdateDistrict godoc
// @Summary Update a district
// @Description New awardsPhotos uploads are appended; an awardsPhotos list in districtData replaces the stored one.
// @Tags districts
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "District ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/districts/{id} [put]
func (ctrl *DistrictController) UpdateDistrict(c *fiber.Ctx) error {
	input, err := parseInput(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	uploads, err := formdata.Files(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	d, err := ctrl.Service.Update(c.UserContext(), c.Params("id"), input, uploads)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "District updated successfully",
		"data":    d,
	})
}

// DeleteDistrict godoc
// @Summary Delete a district and its photos
// @Tags districts
// @Produce json
// @Param id path string true "District ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/districts/{id} [delete]
func (ctrl *DistrictController) DeleteDistrict(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "District deleted successfully",
	})
}
