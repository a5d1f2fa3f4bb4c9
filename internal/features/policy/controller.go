package policy

import (
	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/formdata"
	"invest-portal/internal/common/models"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PolicyController struct {
	Service PolicyService
}

func NewPolicyController(service PolicyService) *PolicyController {
	return &PolicyController{Service: service}
}

func parseInput(c *fiber.Ctx) (PolicyInput, attachment.Uploads, error) {
	var input PolicyInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return input, nil, err
	}
	if formdata.IsMultipart(c) {
		tags, ok, err := formdata.Strings(c, "tags")
		if err != nil {
			return input, nil, err
		}
		if ok {
			input.Tags = &tags
		}
	}
	uploads, err := formdata.Files(c)
	return input, uploads, err
}

func listResponse(c *fiber.Ctx, policies []Policy, total int64, q models.PageQuery) error {
	return c.JSON(fiber.Map{
		"policies":   policies,
		"pagination": models.NewPagination(q.Page, q.Limit, total),
	})
}

// GetPublishedPolicies godoc
// @Summary List published policies
// @Tags policies
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param search query string false "Full-text search"
// @Param category query string false "Category, or all"
// @Success 200 {object} map[string]interface{}
// @Router /api/policies/published [get]
func (ctrl *PolicyController) GetPublishedPolicies(c *fiber.Ctx) error {
	q := models.NewPageQuery(c.QueryInt("page", 1), c.QueryInt("limit", 10))
	f := ListFilter{Search: c.Query("search"), Category: c.Query("category")}

	policies, total, err := ctrl.Service.Published(c.UserContext(), f, q)
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return listResponse(c, policies, total, q)
}

// GetPolicies godoc
// @Summary List all policies
// @Tags policies
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param search query string false "Full-text search"
// @Param status query string false "Draft or Published"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/policies [get]
func (ctrl *PolicyController) GetPolicies(c *fiber.Ctx) error {
	q := models.NewPageQuery(c.QueryInt("page", 1), c.QueryInt("limit", 10))
	f := ListFilter{Search: c.Query("search"), Status: c.Query("status")}

	policies, total, err := ctrl.Service.List(c.UserContext(), f, q)
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return listResponse(c, policies, total, q)
}

// GetPolicy godoc
// @Summary Get a policy
// @Tags policies
// @Produce json
// @Param id path string true "Policy ID"
// @Success 200 {object} Policy
// @Router /api/policies/{id} [get]
func (ctrl *PolicyController) GetPolicy(c *fiber.Ctx) error {
	p, err := ctrl.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(p)
}

// CreatePolicy godoc
// @Summary Create a policy
// @Tags policies
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param category formData string true "Category"
// @Param description formData string true "Description"
// @Param tags formData string false "Tags as JSON array or comma list"
// @Param status formData string false "Draft or Published"
// @Param documentFile formData file true "Policy document"
// @Success 201 {object} Policy
// @Security BearerAuth
// @Router /api/policies [post]
func (ctrl *PolicyController) CreatePolicy(c *fiber.Ctx) error {
	input, uploads, err := parseInput(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	createdBy := primitive.NilObjectID
	if claims, ok := middleware.Claims(c); ok {
		createdBy = claims.ObjectID()
	}

	p, err := ctrl.Service.Create(c.UserContext(), input, uploads, createdBy)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// UpdatePolicy godoc
// @Summary Update a policy, optionally replacing the document
// @Tags policies
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Policy ID"
// @Param documentFile formData file false "Replacement document"
// @Success 200 {object} Policy
// @Security BearerAuth
// @Router /api/policies/{id} [put]
func (ctrl *PolicyController) UpdatePolicy(c *fiber.Ctx) error {
	input, uploads, err := parseInput(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	p, err := ctrl.Service.Update(c.UserContext(), c.Params("id"), input, uploads)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(p)
}

// DeletePolicy godoc
// @Summary Delete a policy and its document
// @Tags policies
// @Produce json
// @Param id path string true "Policy ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/policies/{id} [delete]
func (ctrl *PolicyController) DeletePolicy(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Policy deleted successfully"})
}
