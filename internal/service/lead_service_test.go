package service

import (
	"context"
	"testing"

	"kenkai/internal/events"
	"kenkai/internal/models"
	"kenkai/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeadService(bus *capturingPublisher) *LeadService {
	logger := zerolog.New(zerolog.NewConsoleWriter())
	return NewLeadService(storage.NewMemoryStore(), bus, &logger)
}

func validContact() *models.ContactMessage {
	return &models.ContactMessage{
		Name:    "Sam Lee",
		Email:   "sam@example.com",
		Company: "Beta LLC",
		Subject: "Consulting inquiry",
		Message: "We need help with our platform.",
	}
}

func TestSubmitContact(t *testing.T) {
	bus := &capturingPublisher{}
	svc := newLeadService(bus)
	ctx := context.Background()

	msg := validContact()
	require.NoError(t, svc.SubmitContact(ctx, msg))
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, []string{events.EventContactReceived}, bus.types)

	t.Run("CompanyOptional", func(t *testing.T) {
		msg := validContact()
		msg.Company = ""
		assert.NoError(t, svc.SubmitContact(ctx, msg))
	})

	mutations := map[string]func(*models.ContactMessage){
		"name":    func(m *models.ContactMessage) { m.Name = "" },
		"email":   func(m *models.ContactMessage) { m.Email = "" },
		"subject": func(m *models.ContactMessage) { m.Subject = "" },
		"message": func(m *models.ContactMessage) { m.Message = "" },
	}
	for field, mutate := range mutations {
		t.Run("Missing_"+field, func(t *testing.T) {
			msg := validContact()
			mutate(msg)
			assert.ErrorIs(t, svc.SubmitContact(ctx, msg), ErrValidation)
		})
	}

	t.Run("BadEmail", func(t *testing.T) {
		msg := validContact()
		msg.Email = "nope"
		assert.ErrorIs(t, svc.SubmitContact(ctx, msg), ErrInvalidEmail)
	})
}

func TestRequestResource(t *testing.T) {
	bus := &capturingPublisher{}
	svc := newLeadService(bus)
	ctx := context.Background()

	require.NoError(t, svc.RequestResource(ctx, "sam@example.com", "tech-guide"))
	assert.Equal(t, []string{events.EventResourceLead}, bus.types)

	t.Run("EmptyResourceTypeAllowed", func(t *testing.T) {
		assert.NoError(t, svc.RequestResource(ctx, "sam@example.com", ""))
	})

	t.Run("BadEmail", func(t *testing.T) {
		assert.ErrorIs(t, svc.RequestResource(ctx, "sam@", "guide"), ErrInvalidEmail)
	})

	t.Run("EmptyEmail", func(t *testing.T) {
		assert.ErrorIs(t, svc.RequestResource(ctx, "  ", "guide"), ErrInvalidEmail)
	})
}

func TestSubmitTalentInterest(t *testing.T) {
	bus := &capturingPublisher{}
	svc := newLeadService(bus)
	ctx := context.Background()

	require.NoError(t, svc.SubmitTalentInterest(ctx, "dev@example.com"))
	assert.Equal(t, []string{events.EventTalentInterest}, bus.types)

	t.Run("DuplicateSucceedsWithoutSecondEvent", func(t *testing.T) {
		require.NoError(t, svc.SubmitTalentInterest(ctx, "dev@example.com"))
		assert.Len(t, bus.types, 1)
	})

	t.Run("BadEmail", func(t *testing.T) {
		assert.ErrorIs(t, svc.SubmitTalentInterest(ctx, "dev"), ErrInvalidEmail)
	})
}
