package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aegis-security/site-service/internal/api/dto"
	"github.com/aegis-security/site-service/internal/domain"
	"github.com/aegis-security/site-service/internal/service"
	apperrors "github.com/aegis-security/site-service/pkg/util/errorutil"
)

// ApplicationsHandler exposes job application submission and review.
type ApplicationsHandler struct {
	applications *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applications *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications}
}

// Submit handles POST /api/jobs/:id/apply.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	var req dto.ApplicationSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ApplicantName == "" || req.Email == "" {
		return apperrors.NewValidationError("applicant_name and email required", nil)
	}

	app := &domain.Application{
		JobID:         c.Params("id"),
		ApplicantName: req.ApplicantName,
		Email:         req.Email,
		Phone:         req.Phone,
		CoverLetter:   req.CoverLetter,
		ResumeURL:     req.ResumeURL,
	}
	if err := h.applications.Submit(c.UserContext(), app); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"id":     app.ID,
		"status": app.Status,
	}})
}

// List handles GET /api/admin/applications.
func (h *ApplicationsHandler) List(c *fiber.Ctx) error {
	apps, err := h.applications.List(c.UserContext(), c.Query("job_id"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": apps})
}

// Get handles GET /api/admin/applications/:id.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	app, err := h.applications.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": app})
}

// UpdateStatus handles PUT /api/admin/applications/:id/status.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.ApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.applications.UpdateStatus(c.UserContext(), c.Params("id"), domain.ApplicationStatus(req.Status)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
