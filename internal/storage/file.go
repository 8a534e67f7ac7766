package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"kenkai/internal/domain"
	"kenkai/internal/models"
)

const (
	bookingsFile = "bookings.json"
	contactsFile = "contact_messages.json"
	resourceFile = "resource_leads.json"
	talentFile   = "talent_interests.json"
)

// FileStore persists records as pretty-printed JSON arrays, one file per
// collection, rewritten whole on every change. The mutex serializes
// read-modify-write cycles within this process; the format is not safe for
// concurrent writers across processes.
type FileStore struct {
	mu    sync.Mutex
	dir   string
	slots []string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir, slots: models.DefaultTimeSlots()}, nil
}

func (s *FileStore) SetSlots(slots []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(slots) > 0 {
		s.slots = slots
	}
}

func (s *FileStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bookings []*models.Booking
	if err := s.load(bookingsFile, &bookings); err != nil {
		return err
	}

	for _, b := range bookings {
		if b.Date == booking.Date && b.Time == booking.Time {
			return domain.ErrSlotTaken
		}
	}

	bookings = append(bookings, booking)
	return s.save(bookingsFile, bookings)
}

func (s *FileStore) BookedSlots(ctx context.Context, date string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bookings []*models.Booking
	if err := s.load(bookingsFile, &bookings); err != nil {
		return nil, err
	}

	var taken []string
	for _, b := range bookings {
		if b.Date == date {
			taken = append(taken, b.Time)
		}
	}
	sortSlots(taken, s.slots)
	return taken, nil
}

func (s *FileStore) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bookings []*models.Booking
	if err := s.load(bookingsFile, &bookings); err != nil {
		return nil, err
	}
	sortBookings(bookings, s.slots)
	return bookings, nil
}

func (s *FileStore) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var contacts []*models.ContactMessage
	if err := s.load(contactsFile, &contacts); err != nil {
		return err
	}
	contacts = append(contacts, msg)
	return s.save(contactsFile, contacts)
}

func (s *FileStore) CreateResourceLead(ctx context.Context, lead *models.ResourceLead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var leads []*models.ResourceLead
	if err := s.load(resourceFile, &leads); err != nil {
		return err
	}
	leads = append(leads, lead)
	return s.save(resourceFile, leads)
}

func (s *FileStore) CreateTalentInterest(ctx context.Context, interest *models.TalentInterest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var interests []*models.TalentInterest
	if err := s.load(talentFile, &interests); err != nil {
		return false, err
	}

	for _, existing := range interests {
		if existing.Email == interest.Email {
			return false, nil
		}
	}

	interests = append(interests, interest)
	if err := s.save(talentFile, interests); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) load(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) save(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
