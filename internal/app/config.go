package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Constants
const (
	DefaultListen  = ":8080"
	DefaultColumns = 20
	DefaultYear    = 2025
	TotalDays      = 365
	UpcomingCount  = 3

	DateLayout = "2006-01-02"
	NowLayout  = "Monday, Jan 2 15:04"

	// Error messages
	ErrInvalidDateFormat = "Invalid date format"
	ErrInvalidFormat     = "Invalid format"
	ErrInternalServer    = "Internal server error"
	ErrFailedToInit      = "Failed to initialize table"
	ErrFailedToFetch     = "Failed to fetch events"
	ErrFailedToAdd       = "Failed to add event"

	// Response messages
	MsgTableInitialized = "Table initialized successfully"
	MsgEventAdded       = "Event added successfully"

	// ICS constants
	ICSProductID = "-//wb-services//Year-Countdown//EN"
	ICSTimezone  = "Europe/Berlin"
)

// DBConfig holds the PostgreSQL connection parameters.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// Config is the top-level application configuration. It can be loaded from
// a YAML file; environment variables always win over file values.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// Columns is the number of grid columns; cells are square.
	Columns int `yaml:"columns"`

	// Year selects the grid year; the grid starts on January 1st.
	Year int `yaml:"year"`

	// DB holds individual connection parameters. DatabaseURL, if set,
	// replaces them wholesale.
	DB          DBConfig `yaml:"db"`
	DatabaseURL string   `yaml:"database_url"`

	// SecretFile is the path to the hashed add-event secret.
	SecretFile string `yaml:"secret_file"`

	// ClientSecret is the client-visible secret used by the browser for its
	// optimistic pre-check. The server never trusts it; empty disables the
	// client-side check.
	ClientSecret string `yaml:"client_secret"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:  DefaultListen,
		Columns: DefaultColumns,
		Year:    DefaultYear,
		DB: DBConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "countdown",
			SSLMode: "disable",
		},
	}
}

// Normalize fills in missing values so partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Columns <= 0 {
		c.Columns = DefaultColumns
	}
	if c.Year <= 0 {
		c.Year = DefaultYear
	}
	if c.DB.Host == "" {
		c.DB.Host = "localhost"
	}
	if c.DB.Port == "" {
		c.DB.Port = "5432"
	}
	if c.DB.User == "" {
		c.DB.User = "postgres"
	}
	if c.DB.Name == "" {
		c.DB.Name = "countdown"
	}
	if c.DB.SSLMode == "" {
		c.DB.SSLMode = "disable"
	}
}

// ApplyEnv overrides config values from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.DB.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		c.DB.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.DB.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.DB.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.DB.Name = v
	}
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		c.DB.SSLMode = v
	}
	if v := os.Getenv("SECRET_FILE"); v != "" {
		c.SecretFile = v
	}
	if v := os.Getenv("EVENT_CLIENT_SECRET"); v != "" {
		c.ClientSecret = v
	}
}

// DSN builds the pgx connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode)
}

// LoadConfig loads configuration. With an empty path only defaults and
// environment variables apply. With a path, a missing file is created with
// defaults on first run (0600), matching the usual first-start flow.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if err := writeDefaultConfig(path, cfg); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, err
		default:
			cfg = &Config{}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	cfg.ApplyEnv()
	cfg.Normalize()
	return cfg, nil
}

func writeDefaultConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
