package service

import (
	"context"
	"strings"
	"time"

	"kenkai/internal/domain"
	"kenkai/internal/events"
	"kenkai/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type LeadService struct {
	store    domain.LeadStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewLeadService(store domain.LeadStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *LeadService {
	return &LeadService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *LeadService) SubmitContact(ctx context.Context, msg *models.ContactMessage) error {
	required := []struct {
		name  string
		value string
	}{
		{"name", msg.Name},
		{"email", msg.Email},
		{"subject", msg.Subject},
		{"message", msg.Message},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return missingField(f.name)
		}
	}
	if !validEmail(msg.Email) {
		return ErrInvalidEmail
	}

	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now().UTC()
	if err := s.store.CreateContactMessage(ctx, msg); err != nil {
		return err
	}

	s.publish(events.EventContactReceived, events.ContactEventPayload{
		Name:    msg.Name,
		Email:   msg.Email,
		Company: msg.Company,
		Subject: msg.Subject,
		Message: msg.Message,
	})
	return nil
}

func (s *LeadService) RequestResource(ctx context.Context, email, resourceType string) error {
	email = strings.TrimSpace(email)
	if email == "" || !validEmail(email) {
		return ErrInvalidEmail
	}

	lead := &models.ResourceLead{
		ID:           uuid.NewString(),
		Email:        email,
		ResourceType: resourceType,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateResourceLead(ctx, lead); err != nil {
		return err
	}

	s.publish(events.EventResourceLead, events.LeadEventPayload{
		Email:        email,
		ResourceType: resourceType,
	})
	return nil
}

// SubmitTalentInterest persists the email once; a repeat submission succeeds
// without a second record and without a second notification.
func (s *LeadService) SubmitTalentInterest(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !validEmail(email) {
		return ErrInvalidEmail
	}

	interest := &models.TalentInterest{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.store.CreateTalentInterest(ctx, interest)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	s.publish(events.EventTalentInterest, events.LeadEventPayload{Email: email})
	return nil
}

func (s *LeadService) publish(eventType string, payload interface{}) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event", eventType).Msg("publish lead event")
	}
}
