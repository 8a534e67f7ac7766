package domain

import (
	"context"

	"kenkai/internal/models"
)

// BookingStore is the persistence adapter for bookings. Implementations must
// make the conflict check and the insert atomic as a unit: either via a
// storage-level unique constraint or a mutex around check+append.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	BookedSlots(ctx context.Context, date string) ([]string, error)
	ListBookings(ctx context.Context) ([]*models.Booking, error)
}

type LeadStore interface {
	CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error
	CreateResourceLead(ctx context.Context, lead *models.ResourceLead) error
	// CreateTalentInterest reports created=false when the email is already
	// stored; a duplicate is not an error.
	CreateTalentInterest(ctx context.Context, interest *models.TalentInterest) (created bool, err error)
}

type ChatStateRepository interface {
	GetState(ctx context.Context, sessionID string) (*models.ChatState, error)
	SetState(ctx context.Context, state *models.ChatState) error
	ClearState(ctx context.Context, sessionID string) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
