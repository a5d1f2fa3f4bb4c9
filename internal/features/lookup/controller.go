package lookup

import (
	"invest-portal/internal/common/apperrors"

	"github.com/gofiber/fiber/v2"
)

type LookupController struct {
	Service LookupService
}

func NewLookupController(service LookupService) *LookupController {
	return &LookupController{Service: service}
}

// GetStates godoc
// @Summary List Indian states and union territories
// @Tags lookups
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/states [get]
func (ctrl *LookupController) GetStates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": ctrl.Service.States()})
}

// GetIndustries godoc
// @Summary List industry names
// @Tags lookups
// @Produce json
// @Success 200 {array} industry.Ref
// @Router /api/common/industries [get]
func (ctrl *LookupController) GetIndustries(c *fiber.Ctx) error {
	items, err := ctrl.Service.Industries(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(items)
}

// GetDistricts godoc
// @Summary List district names with their state
// @Tags lookups
// @Produce json
// @Success 200 {array} district.Ref
// @Router /api/common/districts [get]
func (ctrl *LookupController) GetDistricts(c *fiber.Ctx) error {
	items, err := ctrl.Service.Districts(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(items)
}
