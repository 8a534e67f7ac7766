package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"kenkai/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

type DB struct {
	*sql.DB
	slots []string
	log   zerolog.Logger
}

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	if path != ":memory:" {
		// Создаем директорию для БД, если её нет
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	var dbLogger zerolog.Logger
	if logger != nil {
		dbLogger = logger.With().Str("component", "database").Logger()
	}
	dbLogger.Info().Str("path", path).Msg("database initialized")

	return &DB{DB: db, slots: models.DefaultTimeSlots(), log: dbLogger}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		// Таблица бронирований
		`CREATE TABLE IF NOT EXISTS bookings (
            id TEXT PRIMARY KEY,
            slot_date TEXT NOT NULL,
            slot_time TEXT NOT NULL,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            company TEXT NOT NULL,
            service TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT '',
            challenge TEXT NOT NULL DEFAULT '',
            timeline TEXT NOT NULL DEFAULT '',
            budget TEXT NOT NULL DEFAULT '',
            created_at DATETIME NOT NULL,
            UNIQUE(slot_date, slot_time)
        )`,
		// Таблица сообщений с формы обратной связи
		`CREATE TABLE IF NOT EXISTS contact_messages (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            company TEXT NOT NULL DEFAULT '',
            subject TEXT NOT NULL,
            message TEXT NOT NULL,
            created_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS resource_leads (
            id TEXT PRIMARY KEY,
            email TEXT NOT NULL,
            resource_type TEXT NOT NULL DEFAULT '',
            created_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS talent_interests (
            id TEXT PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            created_at DATETIME NOT NULL
        )`,

		`CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings(slot_date)`,
		`CREATE INDEX IF NOT EXISTS idx_resource_leads_email ON resource_leads(email)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

// SetSlots устанавливает порядок слотов для сортировки выдачи
func (db *DB) SetSlots(slots []string) {
	if len(slots) > 0 {
		db.slots = slots
	}
}
