package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/gr1d99/shopping-list-api-sub000/pkg/config"
)

// Auth header schemes. "bearer" reads Authorization: Bearer <token>;
// "header" reads the raw header named by AuthHeaderName.
const (
	SchemeBearer = "bearer"
	SchemeHeader = "header"
)

const defaultJWTSecret = "change-this-to-a-secure-secret"

// Config holds all configuration for the shopping list API.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"shoplist"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"shoplist_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"shoplist_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Redis (revocation store)
	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tokens
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"6h"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"30m"`

	// Auth header contract
	AuthHeaderScheme string `env:"AUTH_HEADER_SCHEME" envDefault:"bearer"`
	AuthHeaderName   string `env:"AUTH_HEADER_NAME" envDefault:"x-access-token"`

	// Pagination and presentation
	MaxPageLimit int    `env:"MAX_PAGE_LIMIT" envDefault:"20"`
	Timezone     string `env:"TIMEZONE" envDefault:"UTC"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}

	if cfg.AuthHeaderScheme != SchemeBearer && cfg.AuthHeaderScheme != SchemeHeader {
		return nil, fmt.Errorf("invalid AUTH_HEADER_SCHEME %q: must be %q or %q", cfg.AuthHeaderScheme, SchemeBearer, SchemeHeader)
	}

	if cfg.MaxPageLimit < 1 {
		return nil, fmt.Errorf("MAX_PAGE_LIMIT must be at least 1, got %d", cfg.MaxPageLimit)
	}

	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 || cfg.ResetTokenTTL <= 0 {
		return nil, fmt.Errorf("token TTLs must be positive")
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	// In non-development environments, require an explicitly set, strong JWT secret.
	if cfg.Environment != "development" {
		if cfg.JWTSecret == defaultJWTSecret {
			return nil, fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(cfg.JWTSecret))
		}
	}

	return cfg, nil
}

// Location returns the configured display timezone. Load validates the name,
// so resolution cannot fail afterwards.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
