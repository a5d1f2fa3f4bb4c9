package auth

import (
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/formdata"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	AuthService AuthService
}

func NewAuthController(authService AuthService) *AuthController {
	return &AuthController{
		AuthService: authService,
	}
}

// Register godoc
// @Summary      Register a company account
// @Description  Creates the login and the company profile in one request
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        companyName formData string true "Company name"
// @Param        directorCeo formData string true "Director or CEO"
// @Param        email formData string true "Email"
// @Param        phone formData string true "Phone"
// @Param        password formData string true "Password"
// @Param        password2 formData string true "Password confirmation"
// @Param        logo formData file false "Logo"
// @Param        banner formData file false "Banner"
// @Success      200  {object} user.Session
// @Failure      400  {object} map[string]interface{}
// @Router       /api/auth/register [post]
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	uploads, err := formdata.Files(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	session, err := ctrl.AuthService.RegisterCompany(c.UserContext(), input, uploads)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(session)
}

// Login godoc
// @Summary      Login
// @Description  Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Credentials"
// @Success      200  {object} user.Session
// @Failure      400  {object} map[string]interface{}
// @Failure      403  {object} map[string]interface{}
// @Router       /api/auth/login [post]
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return apperrors.Respond(c, apperrors.Validation("Invalid request body"))
	}

	session, err := ctrl.AuthService.Login(c.UserContext(), input)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(session)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object} models.User
// @Failure      401  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/auth/me [get]
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return apperrors.Respond(c, apperrors.Unauthorized("No token, authorization denied"))
	}

	u, err := ctrl.AuthService.Me(c.UserContext(), claims.UserID)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(u)
}
