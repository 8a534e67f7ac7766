package config

import (
	"errors"
	"fmt"
	"os"

	"kenkai/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Admin      AdminConfig      `yaml:"admin"`
	Booking    BookingConfig    `yaml:"booking"`
	Chat       ChatConfig       `yaml:"chat"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig selects exactly one persistence backend per deployment.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite | file | memory
	Path   string `yaml:"path"`   // sqlite database file
	Dir    string `yaml:"dir"`    // directory for the json-file backend
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"` // admin notification address
}

type AdminConfig struct {
	// PasswordHash is the hex SHA-256 of the admin password. Empty means the
	// gate fails closed; there is no fallback credential.
	PasswordHash  string `yaml:"password_hash"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

type BookingConfig struct {
	TimeSlots []string `yaml:"time_slots"`
}

type ChatConfig struct {
	StateTTLHours int `yaml:"state_ttl_hours"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

func Load(configPath string) (*Config, error) {
	// .env, если он есть, подгружается до подстановки переменных
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database path is required for the sqlite driver")
		}
	case DriverFile:
		if c.Database.Dir == "" {
			return errors.New("database dir is required for the file driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver: %q", c.Database.Driver)
	}

	return ValidateSlots(c.Booking.TimeSlots)
}

// ValidateSlots rejects empty enumerations and duplicate labels.
func ValidateSlots(slots []string) error {
	if len(slots) == 0 {
		return errors.New("at least one time slot is required")
	}
	seen := make(map[string]bool, len(slots))
	for _, s := range slots {
		if s == "" {
			return errors.New("time slot label must not be empty")
		}
		if seen[s] {
			return fmt.Errorf("duplicate time slot: %s", s)
		}
		seen[s] = true
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if len(c.Booking.TimeSlots) == 0 {
		c.Booking.TimeSlots = models.DefaultTimeSlots()
	}
	if c.Admin.TokenTTLHours == 0 {
		c.Admin.TokenTTLHours = models.DefaultAdminTokenTTL / 3600
	}
	if c.Chat.StateTTLHours == 0 {
		c.Chat.StateTTLHours = models.DefaultChatTTL / 3600
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
}
