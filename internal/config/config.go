// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"FOLIO_DB_PATH" envDefault:"./data/folio.db"`
	ServerHost string `env:"FOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"FOLIO_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"FOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`

	// BaseURL is the externally reachable URL of this service. When set, the
	// scheduler pings <BaseURL>/api/health every 10 minutes to keep free-tier
	// hosting from idling the instance.
	BaseURL string `env:"FOLIO_BASE_URL"`

	// AdminToken protects the contact inbox, upload and mail-test endpoints.
	// Endpoints behind it return 503 when the token is not configured.
	AdminToken string `env:"FOLIO_ADMIN_TOKEN"`

	// AllowedOrigins is the CORS allowlist for browser clients.
	AllowedOrigins []string `env:"FOLIO_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Cache configuration
	RedisURL    string `env:"FOLIO_REDIS_URL"`                        // Optional Redis URL for distributed caching
	CachePrefix string `env:"FOLIO_CACHE_PREFIX" envDefault:"folio:"` // Redis key prefix
	StatsTTL    int    `env:"FOLIO_STATS_TTL" envDefault:"30"`        // Visitor stats cache TTL in seconds

	// Rate limiting for /api/
	RateLimit  int `env:"FOLIO_RATE_LIMIT" envDefault:"100"`   // Requests per window per IP
	RateWindow int `env:"FOLIO_RATE_WINDOW" envDefault:"900"`  // Window length in seconds

	// AI configuration (Gemini via its OpenAI-compatible endpoint)
	GeminiAPIKey  string `env:"FOLIO_GEMINI_API_KEY"`
	GeminiBaseURL string `env:"FOLIO_GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai"`

	// SMTP configuration for contact notifications
	SMTPHost string `env:"FOLIO_SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort int    `env:"FOLIO_SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"FOLIO_SMTP_USER"`
	SMTPPass string `env:"FOLIO_SMTP_PASS"`
	MailTo   string `env:"FOLIO_MAIL_TO"` // Defaults to SMTPUser when empty

	// Cloudinary configuration for the upload proxy
	CloudinaryCloudName string `env:"FOLIO_CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"FOLIO_CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"FOLIO_CLOUDINARY_API_SECRET"`

	// GeoIP configuration
	GeoIPDBPath string `env:"FOLIO_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Seeding configuration
	DoSeed bool `env:"FOLIO_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// AIEnabled returns true if a Gemini API key is configured.
func (c Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

// MailEnabled returns true if SMTP credentials are configured.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

// CloudinaryEnabled returns true if all Cloudinary credentials are configured.
func (c Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// MailRecipient returns the notification recipient, falling back to the SMTP user.
func (c Config) MailRecipient() string {
	if c.MailTo != "" {
		return c.MailTo
	}
	return c.SMTPUser
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DBPath == "" {
		return nil, fmt.Errorf("FOLIO_DB_PATH must not be empty")
	}
	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("FOLIO_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.RateLimit < 1 {
		return nil, fmt.Errorf("FOLIO_RATE_LIMIT must be positive, got %d", cfg.RateLimit)
	}
	if cfg.RateWindow < 1 {
		return nil, fmt.Errorf("FOLIO_RATE_WINDOW must be positive, got %d", cfg.RateWindow)
	}
	if cfg.BaseURL != "" && !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return nil, fmt.Errorf("FOLIO_BASE_URL must start with http:// or https://, got %q", cfg.BaseURL)
	}

	return cfg, nil
}
