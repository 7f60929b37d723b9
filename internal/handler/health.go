// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/auxility/site/internal/cache"
	"github.com/auxility/site/internal/sections"
	"github.com/auxility/site/internal/version"
)

// Check statuses.
const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// checkTimeout bounds a single dependency check.
const checkTimeout = 2 * time.Second

// ContentStatus reports the fetch state of the watched collections.
// *sections.Site satisfies it.
type ContentStatus interface {
	Status() []sections.Status
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	cache     cache.Cacher
	content   ContentStatus
	version   version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler. cache and content may be nil.
func NewHealthHandler(db *sql.DB, c cache.Cacher, content ContentStatus, info version.Info) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     c,
		content:   content,
		version:   info,
		startTime: time.Now(),
	}
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
}

// Health handles GET /health. The database is required; a failing cache or
// content collection only degrades the service, since defaults cover it.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"database": h.checkDatabase(r.Context()),
		"cache":    h.checkCache(r.Context()),
		"content":  h.checkContent(),
	}

	overall := statusHealthy
	code := http.StatusOK
	for name, c := range checks {
		switch {
		case c.Status == statusUnhealthy && name == "database":
			overall = statusUnhealthy
			code = http.StatusServiceUnavailable
		case c.Status != statusHealthy && overall == statusHealthy:
			overall = statusDegraded
		}
	}

	status := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.Version,
		Checks:    checks,
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = systemInfo()
	}
	writeJSON(w, code, status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready. The service is ready once the
// database answers and no collection is still on its first fetch.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if c := h.checkDatabase(r.Context()); c.Status != statusHealthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready", "message": c.Message})
		return
	}
	if h.content != nil {
		for _, st := range h.content.Status() {
			if st.Loading && st.Rows == 0 {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready", "message": "content loading"})
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)
	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Message: "connected", Latency: latency.String()}
}

func (h *HealthHandler) checkCache(ctx context.Context) Check {
	if h.cache == nil {
		return Check{Status: statusHealthy, Message: "disabled"}
	}
	backend := "memory"
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		backend = sp.Stats().Backend
	}
	p, ok := h.cache.(cache.Pinger)
	if !ok {
		return Check{Status: statusHealthy, Message: backend}
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		return Check{Status: statusDegraded, Message: err.Error(), Latency: time.Since(start).String()}
	}
	return Check{Status: statusHealthy, Message: backend, Latency: time.Since(start).String()}
}

func (h *HealthHandler) checkContent() Check {
	if h.content == nil {
		return Check{Status: statusHealthy, Message: "defaults only"}
	}
	failed := 0
	for _, st := range h.content.Status() {
		if st.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return Check{Status: statusDegraded, Message: plural(failed, "collection") + " failing, serving defaults"}
	}
	return Check{Status: statusHealthy, Message: "all collections fetched"}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAllocMB:   m.Alloc / (1 << 20),
	}
}
