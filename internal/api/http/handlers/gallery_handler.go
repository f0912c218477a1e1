package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aegis-security/site-service/internal/api/dto"
	"github.com/aegis-security/site-service/internal/domain"
	"github.com/aegis-security/site-service/internal/service"
	apperrors "github.com/aegis-security/site-service/pkg/util/errorutil"
)

// GalleryHandler exposes the public gallery and its back-office management.
type GalleryHandler struct {
	content *service.ContentService
}

// NewGalleryHandler constructs handler.
func NewGalleryHandler(content *service.ContentService) *GalleryHandler {
	return &GalleryHandler{content: content}
}

// List handles GET /api/gallery.
func (h *GalleryHandler) List(c *fiber.Ctx) error {
	images, err := h.content.ListGallery(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": images})
}

// Create handles POST /api/admin/gallery.
func (h *GalleryHandler) Create(c *fiber.Ctx) error {
	var req dto.GalleryImageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ImageURL == "" {
		return apperrors.NewValidationError("image_url required", nil)
	}

	image := &domain.GalleryImage{
		Title:    req.Title,
		Caption:  req.Caption,
		ImageURL: req.ImageURL,
		Position: req.Position,
	}
	if err := h.content.AddGalleryImage(c.UserContext(), image); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": image})
}

// Delete handles DELETE /api/admin/gallery/:id.
func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	if err := h.content.RemoveGalleryImage(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
