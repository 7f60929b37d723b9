// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"
)

// Config selects and tunes the cache backend.
type Config struct {
	RedisURL   string // Empty selects the memory backend
	Prefix     string
	DefaultTTL time.Duration
	MaxEntries int
}

// New creates the configured cache. When Redis is configured but cannot be
// reached, New logs a warning and falls back to memory.
func New(ctx context.Context, cfg Config, logger *slog.Logger) Cacher {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.RedisURL != "" {
		rc, err := NewRedisCache(ctx, RedisOptions{
			URL:         cfg.RedisURL,
			Prefix:      cfg.Prefix,
			DefaultTTL:  cfg.DefaultTTL,
			DialTimeout: 5 * time.Second,
		})
		if err == nil {
			logger.Info("using redis cache", "prefix", cfg.Prefix)
			return rc
		}
		logger.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	logger.Info("using memory cache", "max_entries", cfg.MaxEntries)
	return NewMemoryCache(MemoryOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxEntries:      cfg.MaxEntries,
		CleanupInterval: time.Minute,
	})
}
