package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aegis-security/site-service/internal/domain"
	"github.com/aegis-security/site-service/internal/events"
	"github.com/aegis-security/site-service/internal/repository"
	apperrors "github.com/aegis-security/site-service/pkg/util/errorutil"
)

// ApplicationService coordinates job application submission and review.
type ApplicationService struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	dispatcher   events.Dispatcher
}

// NewApplicationService builds the service.
func NewApplicationService(jobs repository.JobRepository, applications repository.ApplicationRepository, dispatcher events.Dispatcher) *ApplicationService {
	return &ApplicationService{jobs: jobs, applications: applications, dispatcher: dispatcher}
}

// Submit records an application against an open posting and publishes the
// submission event for notification.
func (s *ApplicationService) Submit(ctx context.Context, app *domain.Application) error {
	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return apperrors.NewNotFound("job", map[string]any{"job_id": app.JobID})
	}
	if job.Status != domain.JobStatusOpen {
		return apperrors.NewValidationError("job is no longer accepting applications", nil)
	}

	app.Status = domain.ApplicationStatusSubmitted
	if err := s.applications.Create(ctx, app); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventApplicationSubmitted,
			Timestamp: time.Now(),
			Payload: events.ApplicationSubmittedPayload{
				ApplicationID: app.ID,
				JobID:         job.ID,
				JobTitle:      job.Title,
				ApplicantName: app.ApplicantName,
				Email:         app.Email,
			},
		})
	}
	return nil
}

// Get fetches one application for review.
func (s *ApplicationService) Get(ctx context.Context, id string) (*domain.Application, error) {
	return s.applications.GetByID(ctx, id)
}

// List returns applications, optionally filtered by job.
func (s *ApplicationService) List(ctx context.Context, jobID string, limit, offset int) ([]domain.Application, error) {
	return s.applications.ListByJob(ctx, jobID, limit, offset)
}

// UpdateStatus moves an application through review states.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	switch status {
	case domain.ApplicationStatusSubmitted, domain.ApplicationStatusInReview,
		domain.ApplicationStatusAccepted, domain.ApplicationStatusRejected:
	default:
		return apperrors.NewValidationError("unknown application status", map[string]any{"status": string(status)})
	}
	return s.applications.UpdateStatus(ctx, id, status)
}
