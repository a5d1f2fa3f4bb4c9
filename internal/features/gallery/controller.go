package gallery

import (
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/formdata"
	"invest-portal/internal/common/models"
	"invest-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GalleryController struct {
	Service GalleryService
}

func NewGalleryController(service GalleryService) *GalleryController {
	return &GalleryController{Service: service}
}

// GetActiveImages godoc
// @Summary List active gallery images
// @Tags gallery
// @Produce json
// @Success 200 {array} Image
// @Router /api/gallery/active [get]
func (ctrl *GalleryController) GetActiveImages(c *fiber.Ctx) error {
	images, err := ctrl.Service.Active(c.UserContext())
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	return c.JSON(images)
}

// GetImages godoc
// @Summary List gallery images
// @Tags gallery
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param search query string false "Title or description"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/gallery [get]
func (ctrl *GalleryController) GetImages(c *fiber.Ctx) error {
	q := models.NewPageQuery(c.QueryInt("page", 1), c.QueryInt("limit", 10))
	images, total, err := ctrl.Service.List(c.UserContext(), c.Query("search"), q)
	if err != nil {
		return apperrors.Respond(c, apperrors.Internal(err))
	}
	p := models.NewPagination(q.Page, q.Limit, total)
	return c.JSON(fiber.Map{
		"images":      images,
		"totalPages":  p.TotalPages,
		"currentPage": p.CurrentPage,
	})
}

// GetImage godoc
// @Summary Get a gallery image
// @Tags gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} Image
// @Router /api/gallery/{id} [get]
func (ctrl *GalleryController) GetImage(c *fiber.Ctx) error {
	img, err := ctrl.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(img)
}

// CreateImage godoc
// @Summary Upload a gallery image
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param image formData file true "Image"
// @Success 201 {object} Image
// @Security BearerAuth
// @Router /api/gallery [post]
func (ctrl *GalleryController) CreateImage(c *fiber.Ctx) error {
	var input ImageInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	uploads, err := formdata.Files(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	uploadedBy := primitive.NilObjectID
	if claims, ok := middleware.Claims(c); ok {
		uploadedBy = claims.ObjectID()
	}

	img, err := ctrl.Service.Create(c.UserContext(), input, uploads, uploadedBy)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(img)
}

// UpdateImage godoc
// @Summary Update a gallery image
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Image ID"
// @Param image formData file false "Replacement image"
// @Success 200 {object} Image
// @Security BearerAuth
// @Router /api/gallery/{id} [put]
func (ctrl *GalleryController) UpdateImage(c *fiber.Ctx) error {
	var input ImageInput
	if err := formdata.ParseBody(c, &input); err != nil {
		return apperrors.Respond(c, err)
	}
	uploads, err := formdata.Files(c)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	img, err := ctrl.Service.Update(c.UserContext(), c.Params("id"), input, uploads)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(img)
}

// ToggleStatus godoc
// @Summary Flip a gallery image's active flag
// @Tags gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} StatusResult
// @Security BearerAuth
// @Router /api/gallery/{id}/status [patch]
func (ctrl *GalleryController) ToggleStatus(c *fiber.Ctx) error {
	res, err := ctrl.Service.ToggleStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(res)
}

// DeleteImage godoc
// @Summary Delete a gallery image and its file
// @Tags gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/gallery/{id} [delete]
func (ctrl *GalleryController) DeleteImage(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Image removed"})
}
