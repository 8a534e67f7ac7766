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

type BookingService struct {
	store    domain.BookingStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(store domain.BookingStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

// BookedSlots returns the taken time labels for a date. Callers compute the
// complement against the full slot enumeration.
func (s *BookingService) BookedSlots(ctx context.Context, date string) ([]string, error) {
	if strings.TrimSpace(date) == "" {
		return nil, missingField("date")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	return s.store.BookedSlots(ctx, date)
}

// CreateBooking validates the request, re-checks availability and persists a
// new booking. The store makes check+insert atomic, so the pre-check here is
// only an early exit; the losing side of a race still gets ErrSlotTaken from
// the insert.
func (s *BookingService) CreateBooking(ctx context.Context, req *models.Booking) (*models.Booking, error) {
	if err := validateBooking(req); err != nil {
		return nil, err
	}

	taken, err := s.store.BookedSlots(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	for _, t := range taken {
		if t == req.Time {
			return nil, domain.ErrSlotTaken
		}
	}

	booking := *req
	booking.ID = uuid.NewString()
	booking.CreatedAt = time.Now().UTC()

	if err := s.store.CreateBooking(ctx, &booking); err != nil {
		return nil, err
	}

	s.publishCreated(&booking)
	return &booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return s.store.ListBookings(ctx)
}

func (s *BookingService) publishCreated(booking *models.Booking) {
	if s.eventBus == nil {
		return
	}
	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		Date:      booking.Date,
		Time:      booking.Time,
		Name:      booking.Name,
		Email:     booking.Email,
		Company:   booking.Company,
		Service:   booking.Service,
		Role:      booking.Role,
		Challenge: booking.Challenge,
		Timeline:  booking.Timeline,
		Budget:    booking.Budget,
		CreatedAt: booking.CreatedAt,
	}
	if err := s.eventBus.PublishJSON(events.EventBookingCreated, payload); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID).Msg("publish booking event")
	}
}

func validateBooking(req *models.Booking) error {
	required := []struct {
		name  string
		value string
	}{
		{"date", req.Date},
		{"time", req.Time},
		{"name", req.Name},
		{"email", req.Email},
		{"company", req.Company},
		{"service", req.Service},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return missingField(f.name)
		}
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return ErrInvalidDate
	}
	if !validEmail(req.Email) {
		return ErrInvalidEmail
	}
	return nil
}
