package database

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"kenkai/internal/domain"
	"kenkai/internal/models"

	"github.com/mattn/go-sqlite3"
)

// CreateBooking inserts a booking. The UNIQUE(slot_date, slot_time)
// constraint closes the check-then-act race at the storage layer: the losing
// concurrent insert fails here and is surfaced as domain.ErrSlotTaken.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (
				id, slot_date, slot_time, name, email, company, service,
				role, challenge, timeline, budget, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		booking.ID,
		booking.Date,
		booking.Time,
		booking.Name,
		booking.Email,
		booking.Company,
		booking.Service,
		booking.Role,
		booking.Challenge,
		booking.Timeline,
		booking.Budget,
		booking.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// BookedSlots returns the time labels already reserved for a date.
func (db *DB) BookedSlots(ctx context.Context, date string) ([]string, error) {
	query := `SELECT slot_time FROM bookings WHERE slot_date = ?`

	rows, err := db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get booked slots: %w", err)
	}
	defer rows.Close()

	var taken []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan booked slot: %w", err)
		}
		taken = append(taken, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booked slots: %w", err)
	}

	slots := db.slots
	sort.Slice(taken, func(i, j int) bool {
		return models.SlotOrder(slots, taken[i]) < models.SlotOrder(slots, taken[j])
	})
	return taken, nil
}

// ListBookings returns all bookings ordered by date, then by the position of
// the time label in the configured slot enumeration.
func (db *DB) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	query := `SELECT id, slot_date, slot_time, name, email, company, service,
	                 role, challenge, timeline, budget, created_at
              FROM bookings ORDER BY slot_date ASC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		err := rows.Scan(
			&b.ID, &b.Date, &b.Time, &b.Name, &b.Email, &b.Company, &b.Service,
			&b.Role, &b.Challenge, &b.Timeline, &b.Budget, &b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}

	slots := db.slots
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return models.SlotOrder(slots, bookings[i].Time) < models.SlotOrder(slots, bookings[j].Time)
	})
	return bookings, nil
}
