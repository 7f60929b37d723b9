// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package diagnostics probes every collection of the content endpoint and
// reports which ones answer, which are empty and which fail.
package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/auxility/site/internal/content"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusEmpty   = "empty"
	StatusError   = "error"
)

// maxParallel bounds concurrent probes against the endpoint.
const maxParallel = 4

// Probe is one collection to check.
type Probe struct {
	Collection string
	Filter     content.Filter
}

// DefaultProbes lists the collections the site reads.
func DefaultProbes() []Probe {
	return []Probe{
		{Collection: content.CollectionHero, Filter: content.Filter{"field": content.HeroField}},
		{Collection: content.CollectionServices},
		{Collection: content.CollectionTestimonials},
		{Collection: content.CollectionCases},
		{Collection: content.CollectionStats},
		{Collection: content.CollectionOfferings},
		{Collection: content.CollectionWhyUs},
		{Collection: content.CollectionContact},
		{Collection: content.CollectionCopy},
	}
}

// Result is the outcome of one probe.
type Result struct {
	Collection string        `json:"collection"`
	Status     string        `json:"status"`
	Message    string        `json:"message"`
	Rows       int           `json:"rows"`
	FirstRow   content.Row   `json:"first_row,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
}

// Report is the outcome of a sweep.
type Report struct {
	Configured bool      `json:"configured"`
	CheckedAt  time.Time `json:"checked_at"`
	Results    []Result  `json:"results"`
}

// OK reports whether the endpoint is configured and no probe failed.
func (r Report) OK() bool {
	if !r.Configured {
		return false
	}
	for _, res := range r.Results {
		if res.Status == StatusError {
			return false
		}
	}
	return true
}

// Count returns how many results have status.
func (r Report) Count(status string) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Check runs probes against src. Results keep the order of probes. An
// unconfigured endpoint yields a report with Configured unset and no
// results.
func Check(ctx context.Context, src content.Source, probes []Probe) Report {
	report := Report{Configured: true, CheckedAt: time.Now().UTC()}
	if src == nil {
		report.Configured = false
		return report
	}

	results := make([]Result, len(probes))
	errs := make([]error, len(probes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, p := range probes {
		g.Go(func() error {
			results[i], errs[i] = probe(gctx, src, p)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if errors.Is(err, content.ErrNotConfigured) {
			report.Configured = false
			return report
		}
	}
	report.Results = results
	return report
}

func probe(ctx context.Context, src content.Source, p Probe) (Result, error) {
	start := time.Now()
	rows, err := src.Collection(ctx, p.Collection, p.Filter)
	res := Result{Collection: p.Collection, Duration: time.Since(start)}

	switch {
	case err != nil:
		res.Status = StatusError
		res.Message = describe(err)
	case len(rows) == 0:
		res.Status = StatusEmpty
		res.Message = fmt.Sprintf("collection %q is empty", p.Collection)
	default:
		res.Status = StatusSuccess
		res.Rows = len(rows)
		res.FirstRow = rows[0]
		res.Message = fmt.Sprintf("found %d rows", len(rows))
	}
	return res, err
}

func describe(err error) string {
	var httpErr *content.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("HTTP %d: %s", httpErr.StatusCode, httpErr.Status)
	}
	var remote *content.RemoteError
	if errors.As(err, &remote) {
		return remote.Message
	}
	return err.Error()
}
