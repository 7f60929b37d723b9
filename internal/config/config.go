// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// ContentURL is the base URL of the spreadsheet-backed content API.
	// Empty means "not configured": reads resolve to compiled-in defaults
	// and contact submissions run in demo mode.
	ContentURL        string `env:"AUXILITY_CONTENT_URL"`
	ContactCollection string `env:"AUXILITY_CONTACT_COLLECTION" envDefault:"Contacts"`
	FetchTimeout      int    `env:"AUXILITY_FETCH_TIMEOUT" envDefault:"10"` // Seconds per remote request

	DBPath     string `env:"AUXILITY_DB_PATH" envDefault:"./data/auxility.db"`
	ServerHost string `env:"AUXILITY_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"AUXILITY_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"AUXILITY_ENV" envDefault:"development"`
	LogLevel   string `env:"AUXILITY_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"AUXILITY_REDIS_URL"`                           // Optional Redis URL for a shared collection cache
	CachePrefix  string `env:"AUXILITY_CACHE_PREFIX" envDefault:"auxility:"` // Redis key prefix
	CacheTTL     int    `env:"AUXILITY_CACHE_TTL" envDefault:"300"`          // Collection TTL in seconds
	CacheMaxSize int    `env:"AUXILITY_CACHE_MAX_SIZE" envDefault:"1000"`    // Max memory cache entries

	// RefreshSchedule is a cron expression for re-fetching every watched collection.
	RefreshSchedule string `env:"AUXILITY_REFRESH_SCHEDULE" envDefault:"*/5 * * * *"`

	// SiteURL is the public landing page URL used in sitemap.xml.
	SiteURL string `env:"AUXILITY_SITE_URL"`

	// HTTP surface
	AllowedOrigins []string `env:"AUXILITY_ALLOWED_ORIGINS" envSeparator:","`
	ContactRate    float64  `env:"AUXILITY_CONTACT_RATE" envDefault:"0.1"` // Submissions per second per IP
	ContactBurst   int      `env:"AUXILITY_CONTACT_BURST" envDefault:"3"`
	RequestTimeout int      `env:"AUXILITY_REQUEST_TIMEOUT" envDefault:"30"` // Seconds
	TrustProxy     bool     `env:"AUXILITY_TRUST_PROXY" envDefault:"false"`
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

// ContentConfigured reports whether a remote content endpoint is set.
func (c Config) ContentConfigured() bool {
	return strings.TrimSpace(c.ContentURL) != ""
}

// FetchTimeoutDuration returns the per-request timeout for the content API.
func (c Config) FetchTimeoutDuration() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

// CacheTTLDuration returns the collection cache TTL.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// RequestTimeoutDuration returns the HTTP handler timeout.
func (c Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	c.ContentURL = strings.TrimSpace(c.ContentURL)
	if c.ContentURL != "" {
		u, err := url.Parse(c.ContentURL)
		if err != nil {
			return fmt.Errorf("AUXILITY_CONTENT_URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("AUXILITY_CONTENT_URL must be an http(s) URL, got scheme %q", u.Scheme)
		}
	}

	c.SiteURL = strings.TrimSpace(c.SiteURL)
	if c.SiteURL != "" {
		u, err := url.Parse(c.SiteURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("AUXILITY_SITE_URL must be an absolute http(s) URL, got %q", c.SiteURL)
		}
	}

	if strings.TrimSpace(c.ContactCollection) == "" {
		return fmt.Errorf("AUXILITY_CONTACT_COLLECTION must not be empty")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("AUXILITY_FETCH_TIMEOUT must be positive, got %d", c.FetchTimeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("AUXILITY_CACHE_TTL must not be negative, got %d", c.CacheTTL)
	}
	if c.ContactBurst < 1 {
		return fmt.Errorf("AUXILITY_CONTACT_BURST must be at least 1, got %d", c.ContactBurst)
	}

	if c.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.RefreshSchedule); err != nil {
			return fmt.Errorf("AUXILITY_REFRESH_SCHEDULE: %w", err)
		}
	}

	return nil
}
