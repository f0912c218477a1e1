package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aegis-security/site-service/internal/api/dto"
	"github.com/aegis-security/site-service/internal/domain"
	"github.com/aegis-security/site-service/internal/service"
	apperrors "github.com/aegis-security/site-service/pkg/util/errorutil"
)

// ContactsHandler exposes the public contact form and the admin inbox.
type ContactsHandler struct {
	contacts *service.ContactService
}

// NewContactsHandler constructs handler.
func NewContactsHandler(contacts *service.ContactService) *ContactsHandler {
	return &ContactsHandler{contacts: contacts}
}

// Submit handles POST /api/contact.
func (h *ContactsHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Body == "" {
		return apperrors.NewValidationError("name, email and body required", nil)
	}

	msg := &domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := h.contacts.Submit(c.UserContext(), msg); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"id": msg.ID}})
}

// List handles GET /api/admin/contacts.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	msgs, err := h.contacts.List(c.UserContext(), c.QueryBool("unread"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": msgs})
}

// Get handles GET /api/admin/contacts/:id.
func (h *ContactsHandler) Get(c *fiber.Ctx) error {
	msg, err := h.contacts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": msg})
}

// MarkRead handles POST /api/admin/contacts/:id/read.
func (h *ContactsHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.contacts.MarkRead(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete handles DELETE /api/admin/contacts/:id.
func (h *ContactsHandler) Delete(c *fiber.Ctx) error {
	if err := h.contacts.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
