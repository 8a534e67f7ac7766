package storage

import (
	"context"
	"sort"
	"sync"

	"kenkai/internal/domain"
	"kenkai/internal/models"
)

// MemoryStore keeps bookings and leads in process memory. A single mutex
// makes the conflict check and the append atomic as a unit; state is lost on
// restart and is not shared across instances.
type MemoryStore struct {
	mu            sync.Mutex
	slots         []string
	bookings      []*models.Booking
	contacts      []*models.ContactMessage
	resourceLeads []*models.ResourceLead
	talent        map[string]*models.TalentInterest
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots:  models.DefaultTimeSlots(),
		talent: make(map[string]*models.TalentInterest),
	}
}

func (s *MemoryStore) SetSlots(slots []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(slots) > 0 {
		s.slots = slots
	}
}

func (s *MemoryStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.Date == booking.Date && b.Time == booking.Time {
			return domain.ErrSlotTaken
		}
	}

	copied := *booking
	s.bookings = append(s.bookings, &copied)
	return nil
}

func (s *MemoryStore) BookedSlots(ctx context.Context, date string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var taken []string
	for _, b := range s.bookings {
		if b.Date == date {
			taken = append(taken, b.Time)
		}
	}
	sortSlots(taken, s.slots)
	return taken, nil
}

func (s *MemoryStore) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		copied := *b
		out = append(out, &copied)
	}
	sortBookings(out, s.slots)
	return out, nil
}

func (s *MemoryStore) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *msg
	s.contacts = append(s.contacts, &copied)
	return nil
}

func (s *MemoryStore) CreateResourceLead(ctx context.Context, lead *models.ResourceLead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *lead
	s.resourceLeads = append(s.resourceLeads, &copied)
	return nil
}

func (s *MemoryStore) CreateTalentInterest(ctx context.Context, interest *models.TalentInterest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.talent[interest.Email]; ok {
		return false, nil
	}
	copied := *interest
	s.talent[interest.Email] = &copied
	return true, nil
}

func sortSlots(taken []string, slots []string) {
	sort.Slice(taken, func(i, j int) bool {
		return models.SlotOrder(slots, taken[i]) < models.SlotOrder(slots, taken[j])
	})
}

func sortBookings(bookings []*models.Booking, slots []string) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return models.SlotOrder(slots, bookings[i].Time) < models.SlotOrder(slots, bookings[j].Time)
	})
}
