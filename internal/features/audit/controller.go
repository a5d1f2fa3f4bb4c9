package audit

import (
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

// ListLogs godoc
// @Summary List audit logs
// @Tags audit
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param module query string false "Collection name"
// @Param record_id query string false "Record id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/audit-logs [get]
func (ctrl *AuditController) ListLogs(c *fiber.Ctx) error {
	q := models.NewPageQuery(c.QueryInt("page", 1), c.QueryInt("limit", 20))

	filters := make(map[string]interface{})
	if module := c.Query("module"); module != "" {
		filters["module"] = module
	}
	if recordID := c.Query("record_id"); recordID != "" {
		filters["record_id"] = recordID
	}
	if action := c.Query("action"); action != "" {
		filters["action"] = action
	}

	logs, total, err := ctrl.Service.ListLogs(c.UserContext(), filters, q)
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}

	return c.JSON(fiber.Map{
		"logs":       logs,
		"pagination": models.NewPagination(q.Page, q.Limit, total),
	})
}
