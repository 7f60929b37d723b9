// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/auxility/site/internal/content"
	"github.com/auxility/site/internal/diagnostics"
	"github.com/auxility/site/internal/scheduler"
	"github.com/auxility/site/internal/store"
)

const (
	diagnosticsTimeout = 30 * time.Second
	defaultEventsLimit = 50
	maxEventsLimit     = 500
)

// JobLister lists scheduled jobs. *scheduler.Scheduler satisfies it.
type JobLister interface {
	List() []scheduler.JobInfo
}

// ContactCounter counts outbox submissions by status.
// *contact.Service satisfies it.
type ContactCounter interface {
	Counts(ctx context.Context) (map[string]int64, error)
}

// DiagnosticsHandler reports on the content endpoint, the scheduler and the
// event log.
type DiagnosticsHandler struct {
	source  content.Source
	jobs    JobLister
	queries *store.Queries
	outbox  ContactCounter
	logger  *slog.Logger
}

// NewDiagnosticsHandler creates a diagnostics handler. source should be the
// uncached client so probes reach the endpoint. jobs and queries may be nil.
func NewDiagnosticsHandler(source content.Source, jobs JobLister, queries *store.Queries, logger *slog.Logger) *DiagnosticsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiagnosticsHandler{source: source, jobs: jobs, queries: queries, logger: logger}
}

// WithOutbox adds contact outbox counts to the diagnostics report.
func (h *DiagnosticsHandler) WithOutbox(c ContactCounter) *DiagnosticsHandler {
	h.outbox = c
	return h
}

// Check handles GET /api/diagnostics.
func (h *DiagnosticsHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), diagnosticsTimeout)
	defer cancel()

	report := diagnostics.Check(ctx, h.source, diagnostics.DefaultProbes())
	resp := map[string]any{
		"ok":     report.OK(),
		"report": report,
	}
	if h.jobs != nil {
		resp["jobs"] = h.jobs.List()
	}
	if h.outbox != nil {
		counts, err := h.outbox.Counts(ctx)
		if err != nil {
			h.logger.Warn("failed to count contact submissions", "error", err)
		} else {
			resp["contact_outbox"] = counts
		}
	}
	writeJSONSuccess(w, resp)
}

// Events handles GET /api/diagnostics/events?limit=N.
func (h *DiagnosticsHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.queries == nil {
		writeJSONError(w, http.StatusNotFound, "event log not available")
		return
	}

	limit := defaultEventsLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxEventsLimit)
	}

	events, err := h.queries.ListEvents(r.Context(), int64(limit))
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if events == nil {
		events = []store.Event{}
	}
	writeJSONSuccess(w, map[string]any{"events": events})
}
