package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aegis-security/site-service/internal/domain"
	"github.com/aegis-security/site-service/internal/repository"
)

const (
	galleryCacheKey = "content:gallery"
	galleryCacheTTL = 5 * time.Minute
)

// GalleryCache is the slice of the redis client the gallery listing
// uses. *redis.Client satisfies it.
type GalleryCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ContentService manages the public site content: job postings and the
// project gallery. The public gallery listing is cached in Redis; cache
// failures degrade to the repository.
type ContentService struct {
	jobs    repository.JobRepository
	gallery repository.GalleryRepository
	cache   GalleryCache
	logger  *zap.Logger
}

// NewContentService builds the service. cache may be nil.
func NewContentService(jobs repository.JobRepository, gallery repository.GalleryRepository, cache GalleryCache, logger *zap.Logger) *ContentService {
	return &ContentService{jobs: jobs, gallery: gallery, cache: cache, logger: logger}
}

// ListOpenJobs returns postings shown on the public careers page.
func (s *ContentService) ListOpenJobs(ctx context.Context, limit, offset int) ([]domain.Job, error) {
	return s.jobs.List(ctx, true, limit, offset)
}

// ListJobs returns all postings for the back office.
func (s *ContentService) ListJobs(ctx context.Context, limit, offset int) ([]domain.Job, error) {
	return s.jobs.List(ctx, false, limit, offset)
}

// GetJob fetches a single posting.
func (s *ContentService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// CreateJob adds a posting in the open state.
func (s *ContentService) CreateJob(ctx context.Context, job *domain.Job) error {
	if job.Employment == "" {
		job.Employment = domain.EmploymentFullTime
	}
	job.Status = domain.JobStatusOpen
	return s.jobs.Create(ctx, job)
}

// UpdateJob persists edits to a posting.
func (s *ContentService) UpdateJob(ctx context.Context, job *domain.Job) error {
	return s.jobs.Update(ctx, job)
}

// CloseJob transitions a posting out of the applicant-visible state.
func (s *ContentService) CloseJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status == domain.JobStatusClosed {
		return job, nil
	}
	now := time.Now()
	job.Status = domain.JobStatusClosed
	job.ClosedAt = &now
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob removes a posting and its applications.
func (s *ContentService) DeleteJob(ctx context.Context, id string) error {
	return s.jobs.Delete(ctx, id)
}

// ListGallery returns the gallery, served from cache when possible.
func (s *ContentService) ListGallery(ctx context.Context) ([]domain.GalleryImage, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, galleryCacheKey).Bytes()
		switch {
		case err == nil:
			var images []domain.GalleryImage
			if err := json.Unmarshal(raw, &images); err == nil {
				return images, nil
			}
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("gallery cache read failed", zap.Error(err))
		}
	}

	images, err := s.gallery.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(images); err == nil {
			if err := s.cache.Set(ctx, galleryCacheKey, raw, galleryCacheTTL).Err(); err != nil {
				s.logger.Warn("gallery cache write failed", zap.Error(err))
			}
		}
	}
	return images, nil
}

// AddGalleryImage stores a new image and invalidates the cache.
func (s *ContentService) AddGalleryImage(ctx context.Context, image *domain.GalleryImage) error {
	if err := s.gallery.Create(ctx, image); err != nil {
		return err
	}
	s.invalidateGalleryCache(ctx)
	return nil
}

// RemoveGalleryImage deletes an image and invalidates the cache.
func (s *ContentService) RemoveGalleryImage(ctx context.Context, id string) error {
	if err := s.gallery.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateGalleryCache(ctx)
	return nil
}

func (s *ContentService) invalidateGalleryCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, galleryCacheKey).Err(); err != nil {
		s.logger.Warn("gallery cache invalidation failed", zap.Error(err))
	}
}
