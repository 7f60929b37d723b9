// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auxility/site/internal/cache"
	"github.com/auxility/site/internal/sections"
	"github.com/auxility/site/internal/version"
)

type fakeContentStatus []sections.Status

func (f fakeContentStatus) Status() []sections.Status { return f }

type pingCache struct {
	cache.Cacher
	err error
}

func (p pingCache) Ping(context.Context) error { return p.err }

func decodeHealth(t *testing.T, w *httptest.ResponseRecorder) HealthStatus {
	t.Helper()
	var resp HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp
}

func TestHealthHandler_Health(t *testing.T) {
	db := testDB(t)
	mem := cache.NewMemoryCache(cache.MemoryOptions{})
	t.Cleanup(func() { _ = mem.Close() })

	tests := []struct {
		name       string
		cache      cache.Cacher
		content    ContentStatus
		wantStatus string
	}{
		{"all healthy", mem, fakeContentStatus{{Collection: "Hero", Rows: 1}}, statusHealthy},
		{"no optional deps", nil, nil, statusHealthy},
		{"failing collection degrades", mem, fakeContentStatus{{Collection: "Cases", Error: "HTTP 500"}}, statusDegraded},
		{"unreachable redis degrades", pingCache{Cacher: mem, err: errors.New("connection refused")}, nil, statusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(db, tt.cache, tt.content, version.Info{Version: "v1.2.3"})
			w := httptest.NewRecorder()
			h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != http.StatusOK {
				t.Errorf("status code = %d; want 200", w.Code)
			}
			resp := decodeHealth(t, w)
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %q; want %q (checks %+v)", resp.Status, tt.wantStatus, resp.Checks)
			}
			if resp.Version != "v1.2.3" {
				t.Errorf("version = %q", resp.Version)
			}
			if resp.System != nil {
				t.Error("system info should only be present when verbose")
			}
		})
	}
}

func TestHealthHandler_Health_Verbose(t *testing.T) {
	h := NewHealthHandler(testDB(t), nil, nil, version.Current())
	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health?verbose=true", nil))

	resp := decodeHealth(t, w)
	if resp.System == nil || resp.System.GoVersion == "" {
		t.Errorf("system = %+v; want populated", resp.System)
	}
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	db := testDB(t)
	_ = db.Close()
	h := NewHealthHandler(db, nil, nil, version.Current())

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status code = %d; want 503", w.Code)
	}
	if resp := decodeHealth(t, w); resp.Status != statusUnhealthy {
		t.Errorf("status = %q; want unhealthy", resp.Status)
	}

	w = httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness code = %d; want 503", w.Code)
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler(testDB(t), nil, nil, version.Current())
	w := httptest.NewRecorder()
	h.Liveness(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assertJSONResponseStatus(t, w, http.StatusOK, "alive")
}

func TestHealthHandler_Readiness(t *testing.T) {
	db := testDB(t)

	tests := []struct {
		name     string
		content  ContentStatus
		wantCode int
		want     string
	}{
		{"ready", fakeContentStatus{{Collection: "Hero", Rows: 1}}, http.StatusOK, "ready"},
		{"first fetch pending", fakeContentStatus{{Collection: "Hero", Loading: true}}, http.StatusServiceUnavailable, "not_ready"},
		{"refreshing with data", fakeContentStatus{{Collection: "Hero", Loading: true, Rows: 2}}, http.StatusOK, "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(db, nil, tt.content, version.Current())
			w := httptest.NewRecorder()
			h.Readiness(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			assertJSONResponseStatus(t, w, tt.wantCode, tt.want)
		})
	}
}

func assertJSONResponseStatus(t *testing.T, w *httptest.ResponseRecorder, wantCode int, want string) {
	t.Helper()
	if w.Code != wantCode {
		t.Errorf("status code = %d; want %d", w.Code, wantCode)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["status"] != want {
		t.Errorf("status = %q; want %q", resp["status"], want)
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "collection"); got != "1 collection" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(3, "collection"); got != "3 collections" {
		t.Errorf("plural(3) = %q", got)
	}
}
