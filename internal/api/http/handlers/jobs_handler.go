package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aegis-security/site-service/internal/api/dto"
	"github.com/aegis-security/site-service/internal/domain"
	"github.com/aegis-security/site-service/internal/service"
	apperrors "github.com/aegis-security/site-service/pkg/util/errorutil"
)

// JobsHandler exposes job postings: public careers listing and the
// back-office CRUD.
type JobsHandler struct {
	content *service.ContentService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(content *service.ContentService) *JobsHandler {
	return &JobsHandler{content: content}
}

// ListOpen handles GET /api/jobs.
func (h *JobsHandler) ListOpen(c *fiber.Ctx) error {
	jobs, err := h.content.ListOpenJobs(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": jobs})
}

// Get handles GET /api/jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	job, err := h.content.GetJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": job})
}

// ListAll handles GET /api/admin/jobs.
func (h *JobsHandler) ListAll(c *fiber.Ctx) error {
	jobs, err := h.content.ListJobs(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": jobs})
}

// Create handles POST /api/admin/jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	var req dto.JobCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Title == "" {
		return apperrors.NewValidationError("title required", nil)
	}

	job := &domain.Job{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Employment:  domain.EmploymentType(req.Employment),
	}
	if err := h.content.CreateJob(c.UserContext(), job); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": job})
}

// Update handles PUT /api/admin/jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	var req dto.JobUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	job, err := h.content.GetJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	if req.Title != "" {
		job.Title = req.Title
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.Location != "" {
		job.Location = req.Location
	}
	if req.Employment != "" {
		job.Employment = domain.EmploymentType(req.Employment)
	}
	if err := h.content.UpdateJob(c.UserContext(), job); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": job})
}

// Close handles POST /api/admin/jobs/:id/close.
func (h *JobsHandler) Close(c *fiber.Ctx) error {
	job, err := h.content.CloseJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": job})
}

// Delete handles DELETE /api/admin/jobs/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	if err := h.content.DeleteJob(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
