package user

import (
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/formdata"
	"invest-portal/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Service UserService
}

func NewUserController(service UserService) *UserController {
	return &UserController{Service: service}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param role query string false "Role"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/users [get]
func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	q := models.NewPageQuery(c.QueryInt("page", 1), c.QueryInt("limit", 20))
	filter := map[string]interface{}{}
	if role := c.Query("role"); role != "" {
		filter["role"] = role
	}

	users, total, err := ctrl.Service.ListUsers(c.UserContext(), filter, q)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"users":      users,
		"pagination": models.NewPagination(q.Page, q.Limit, total),
	})
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Security BearerAuth
// @Router /api/users/{id} [get]
func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	u, err := ctrl.Service.GetUserByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(u)
}

type statusInput struct {
	IsActive formdata.Bool `json:"isActive" form:"isActive"`
}

// UpdateUserStatus godoc
// @Summary Activate or deactivate a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/users/{id}/status [put]
func (ctrl *UserController) UpdateUserStatus(c *fiber.Ctx) error {
	var input statusInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	if err := ctrl.Service.SetStatus(c.UserContext(), c.Params("id"), bool(input.IsActive)); err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "User status updated"})
}
