package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"aisolutions/internal/util"
)

// Config holds application configuration. It is built once at startup and
// handed to components by value or pointer; nothing mutates it afterwards.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Email    EmailConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name         string `env:"APP_NAME" envDefault:"AI Solutions Backend API"`
	Version      string `env:"APP_VERSION" envDefault:"1.0.0"`
	Debug        bool   `env:"DEBUG" envDefault:"false"`
	Port         string `env:"PORT" envDefault:"5000"`
	Host         string `env:"HOST" envDefault:"0.0.0.0"`
	DashboardURL string `env:"DASHBOARD_URL" envDefault:"/admin"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string `env:"DATABASE_URL,required,notEmpty"`
}

// AuthConfig holds the token secret and the single admin credential pair
type AuthConfig struct {
	SecretKey         string `env:"SECRET_KEY,required,notEmpty"`
	AdminUsername     string `env:"ADMIN_USERNAME,required,notEmpty"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods []string `env:"ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS" envSeparator:"," envDefault:"Accept,Authorization,Content-Type,X-Request-ID"`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"86400"`
}

// EmailConfig holds the notification mail settings
type EmailConfig struct {
	Enabled     bool   `env:"EMAIL_ENABLED" envDefault:"false"`
	SMTPHost    string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort    int    `env:"SMTP_PORT" envDefault:"587"`
	Username    string `env:"SMTP_USERNAME"`
	Password    string `env:"SMTP_PASSWORD"`
	FromEmail   string `env:"EMAIL_FROM" envDefault:"noreply@example.com"`
	FromName    string `env:"EMAIL_FROM_NAME" envDefault:"AI Solutions"`
	NotifyEmail string `env:"NOTIFY_EMAIL"`
}

// Load loads configuration from the process environment, reading a .env
// file first when one exists.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()
	return parse(env.Options{})
}

// LoadFrom builds configuration from an explicit variable set instead of
// the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Auth.AdminPassword == "" && cfg.Auth.AdminPasswordHash == "" {
		return errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")
	}
	if cfg.Auth.AdminPasswordHash != "" && !util.IsBcryptHash(cfg.Auth.AdminPasswordHash) {
		return errors.New("ADMIN_PASSWORD_HASH must be a bcrypt hash")
	}
	if cfg.App.Port == "" {
		return errors.New("PORT must be set")
	}
	if cfg.Email.Enabled && cfg.Email.NotifyEmail == "" {
		return errors.New("NOTIFY_EMAIL must be set when EMAIL_ENABLED is true")
	}
	return nil
}

// WeakSecret reports whether the signing secret is shorter than recommended.
func (c *AuthConfig) WeakSecret() bool {
	return len(c.SecretKey) < 32
}

// Addr returns the listen address
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsPostgres checks if the database URL is for PostgreSQL
func (c *DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://") ||
		strings.Contains(c.URL, "host=")
}

// GetSQLitePath extracts the SQLite database path from URL. Both
// sqlite:///relative.db and sqlite:////abs/path.db are accepted; an empty
// path selects an in-memory database.
func (c *DatabaseConfig) GetSQLitePath() string {
	url := c.URL
	switch {
	case strings.HasPrefix(url, "sqlite:///"):
		url = url[len("sqlite:///"):]
	case strings.HasPrefix(url, "sqlite://"):
		url = url[len("sqlite://"):]
	}
	if url == "" {
		return ":memory:"
	}
	return url
}

// IsMemory reports whether the URL selects an in-memory SQLite database.
func (c *DatabaseConfig) IsMemory() bool {
	return !c.IsPostgres() && c.GetSQLitePath() == ":memory:"
}
