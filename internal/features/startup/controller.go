package startup

import (
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/formdata"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StartupController struct {
	Service StartupService
}

func NewStartupController(service StartupService) *StartupController {
	return &StartupController{Service: service}
}

func currentUser(c *fiber.Ctx) (primitive.ObjectID, error) {
	claims, ok := middleware.Claims(c)
	if !ok || claims.ObjectID().IsZero() {
		return primitive.NilObjectID, apperrors.Unauthorized("No token, authorization denied")
	}
	return claims.ObjectID(), nil
}

// Register godoc
// @Summary Register a startup and its founder account
// @Tags startups
// @Accept multipart/form-data
// @Produce json
// @Param startupName formData string true "Startup name"
// @Param founderName formData string true "Founder name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param password2 formData string true "Password confirmation"
// @Param logo formData file true "Logo"
// @Param pitchDeck formData file false "Pitch deck"
// @Success 200 {object} user.Session
// @Router /api/startups/register [post]
func (ctrl *StartupController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	uploads, err := formdata.Files(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	session, err := ctrl.Service.Register(c.UserContext(), input, uploads)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(session)
}

// GetMe godoc
// @Summary Get the current user's startup profile
// @Tags startups
// @Produce json
// @Success 200 {object} Startup
// @Security BearerAuth
// @Router /api/startups/me [get]
func (ctrl *StartupController) GetMe(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	st, err := ctrl.Service.Me(c.UserContext(), userID)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(st)
}

// UpdateMe godoc
// @Summary Update the current user's startup profile
// @Tags startups
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} Startup
// @Security BearerAuth
// @Router /api/startups/me [put]
func (ctrl *StartupController) UpdateMe(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	var input StartupInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	uploads, err := formdata.Files(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	st, err := ctrl.Service.UpdateMe(c.UserContext(), userID, input, uploads)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(st)
}

// DeleteMe godoc
// @Summary Delete the current user's startup profile and account
// @Tags startups
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/startups/me [delete]
func (ctrl *StartupController) DeleteMe(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	if err := ctrl.Service.DeleteMe(c.UserContext(), userID); err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Startup profile and user removed"})
}

// ListStartups godoc
// @Summary List verified, active startups
// @Tags startups
// @Produce json
// @Success 200 {array} Startup
// @Router /api/startups [get]
func (ctrl *StartupController) ListStartups(c *fiber.Ctx) error {
	startups, err := ctrl.Service.List(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(startups)
}

// GetStartup godoc
// @Summary Get a startup
// @Tags startups
// @Produce json
// @Param id path string true "Startup ID"
// @Success 200 {object} Startup
// @Router /api/startups/{id} [get]
func (ctrl *StartupController) GetStartup(c *fiber.Ctx) error {
	st, err := ctrl.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(st)
}

// VerifyStartup godoc
// @Summary Mark a startup as verified
// @Tags startups
// @Produce json
// @Param id path string true "Startup ID"
// @Success 200 {object} Startup
// @Security BearerAuth
// @Router /api/startups/verify/{id} [put]
func (ctrl *StartupController) VerifyStartup(c *fiber.Ctx) error {
	st, err := ctrl.Service.Verify(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(st)
}
