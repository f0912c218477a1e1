package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aegis-security/site-service/internal/domain"
	"github.com/aegis-security/site-service/internal/events"
	"github.com/aegis-security/site-service/internal/repository"
)

// ContactService handles the public contact form and its back-office inbox.
type ContactService struct {
	contacts   repository.ContactRepository
	dispatcher events.Dispatcher
}

// NewContactService builds the service.
func NewContactService(contacts repository.ContactRepository, dispatcher events.Dispatcher) *ContactService {
	return &ContactService{contacts: contacts, dispatcher: dispatcher}
}

// Submit stores an inbound message and publishes the received event.
func (s *ContactService) Submit(ctx context.Context, msg *domain.ContactMessage) error {
	if err := s.contacts.Create(ctx, msg); err != nil {
		return err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventContactReceived,
			Timestamp: time.Now(),
			Payload: events.ContactReceivedPayload{
				MessageID: msg.ID,
				Name:      msg.Name,
				Email:     msg.Email,
				Subject:   msg.Subject,
			},
		})
	}
	return nil
}

// List returns messages for the back office.
func (s *ContactService) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.ContactMessage, error) {
	return s.contacts.List(ctx, unreadOnly, limit, offset)
}

// Get fetches a single message.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.ContactMessage, error) {
	return s.contacts.GetByID(ctx, id)
}

// MarkRead flags a message as handled.
func (s *ContactService) MarkRead(ctx context.Context, id string) error {
	return s.contacts.MarkRead(ctx, id)
}

// Delete removes a message.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id)
}
