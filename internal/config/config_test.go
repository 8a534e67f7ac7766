package config

import (
	"os"
	"path/filepath"
	"testing"

	"kenkai/internal/models"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "kenkai-api"
server:
  port: 9000
database:
  driver: "sqlite"
  path: "test.db"
admin:
  password_hash: "${TEST_ADMIN_HASH}"
booking:
  time_slots:
    - "9:00 AM"
    - "10:00 AM"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	t.Setenv("TEST_ADMIN_HASH", "abc123")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "test.db" {
		t.Errorf("expected path test.db, got %s", cfg.Database.Path)
	}
	// Environment variables are substituted before parsing.
	if cfg.Admin.PasswordHash != "abc123" {
		t.Errorf("expected expanded hash abc123, got %s", cfg.Admin.PasswordHash)
	}
	if len(cfg.Booking.TimeSlots) != 2 {
		t.Errorf("expected 2 time slots, got %d", len(cfg.Booking.TimeSlots))
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected error for missing config file")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid sqlite config",
			cfg: Config{
				Database: DatabaseConfig{Driver: DriverSQLite, Path: "db.sqlite"},
				Booking:  BookingConfig{TimeSlots: models.DefaultTimeSlots()},
			},
			wantErr: false,
		},
		{
			name: "sqlite without path",
			cfg: Config{
				Database: DatabaseConfig{Driver: DriverSQLite},
				Booking:  BookingConfig{TimeSlots: models.DefaultTimeSlots()},
			},
			wantErr: true,
		},
		{
			name: "file without dir",
			cfg: Config{
				Database: DatabaseConfig{Driver: DriverFile},
				Booking:  BookingConfig{TimeSlots: models.DefaultTimeSlots()},
			},
			wantErr: true,
		},
		{
			name: "memory driver needs nothing",
			cfg: Config{
				Database: DatabaseConfig{Driver: DriverMemory},
				Booking:  BookingConfig{TimeSlots: models.DefaultTimeSlots()},
			},
			wantErr: false,
		},
		{
			name: "unknown driver",
			cfg: Config{
				Database: DatabaseConfig{Driver: "postgres"},
				Booking:  BookingConfig{TimeSlots: models.DefaultTimeSlots()},
			},
			wantErr: true,
		},
		{
			name: "duplicate slots",
			cfg: Config{
				Database: DatabaseConfig{Driver: DriverMemory},
				Booking:  BookingConfig{TimeSlots: []string{"9:00 AM", "9:00 AM"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("expected default driver sqlite, got %s", cfg.Database.Driver)
	}
	if len(cfg.Booking.TimeSlots) != len(models.DefaultTimeSlots()) {
		t.Errorf("expected default slot enumeration, got %d slots", len(cfg.Booking.TimeSlots))
	}
	if cfg.Admin.TokenTTLHours != 12 {
		t.Errorf("expected default token TTL 12h, got %d", cfg.Admin.TokenTTLHours)
	}
	if cfg.Chat.StateTTLHours != 24 {
		t.Errorf("expected default chat TTL 24h, got %d", cfg.Chat.StateTTLHours)
	}
	if cfg.RateLimit.Burst != 5 {
		t.Errorf("expected default burst 5, got %d", cfg.RateLimit.Burst)
	}
}

func TestValidateSlots(t *testing.T) {
	tests := []struct {
		name    string
		slots   []string
		wantErr bool
	}{
		{name: "valid", slots: []string{"9:00 AM", "10:00 AM"}, wantErr: false},
		{name: "empty list", slots: nil, wantErr: true},
		{name: "empty label", slots: []string{"9:00 AM", ""}, wantErr: true},
		{name: "duplicate", slots: []string{"9:00 AM", "9:00 AM"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlots(tt.slots)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlots() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
