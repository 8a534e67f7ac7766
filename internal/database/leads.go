package database

import (
	"context"
	"fmt"

	"kenkai/internal/models"
)

func (db *DB) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	query := `INSERT INTO contact_messages (id, name, email, company, subject, message, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Company, msg.Subject, msg.Message, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

func (db *DB) CreateResourceLead(ctx context.Context, lead *models.ResourceLead) error {
	query := `INSERT INTO resource_leads (id, email, resource_type, created_at)
              VALUES (?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query, lead.ID, lead.Email, lead.ResourceType, lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create resource lead: %w", err)
	}
	return nil
}

// CreateTalentInterest stores an email once; a repeated submission is
// reported as created=false, not an error.
func (db *DB) CreateTalentInterest(ctx context.Context, interest *models.TalentInterest) (bool, error) {
	query := `INSERT OR IGNORE INTO talent_interests (id, email, created_at)
              VALUES (?, ?, ?)`

	result, err := db.ExecContext(ctx, query, interest.ID, interest.Email, interest.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to create talent interest: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
