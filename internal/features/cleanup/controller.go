package cleanup

import (
	"invest-portal/internal/common/apperrors"

	"github.com/gofiber/fiber/v2"
)

type CleanupController struct {
	Service CleanupService
}

func NewCleanupController(service CleanupService) *CleanupController {
	return &CleanupController{Service: service}
}

// ListOrphans godoc
// @Summary List orphaned upload blobs (dry run)
// @Tags attachments
// @Produce json
// @Success 200 {object} SweepResult
// @Security BearerAuth
// @Router /api/admin/attachments/orphans [get]
func (ctrl *CleanupController) ListOrphans(c *fiber.Ctx) error {
	result, err := ctrl.Service.SweepOrphans(c.UserContext(), false)
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(result)
}

// Sweep godoc
// @Summary Delete orphaned upload blobs
// @Tags attachments
// @Produce json
// @Success 200 {object} SweepResult
// @Security BearerAuth
// @Router /api/admin/attachments/sweep [post]
func (ctrl *CleanupController) Sweep(c *fiber.Ctx) error {
	result, err := ctrl.Service.SweepOrphans(c.UserContext(), true)
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(result)
}
