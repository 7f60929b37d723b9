// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/auxility/site/internal/content"
	"github.com/auxility/site/internal/store"
)

// Retry policy for failed deliveries.
const (
	MaxAttempts = 5
	RetryAfter  = time.Minute // minimum gap between attempts
	RetryBatch  = 50
)

// Writer forwards a payload to a write-only collection.
// *content.Client satisfies it.
type Writer interface {
	Write(ctx context.Context, name string, payload any) (content.WriteResult, error)
}

// Result is the outcome of a submission.
type Result struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	// Demo is set when no content endpoint is configured. The submission is
	// stored locally and reported as successful.
	Demo bool `json:"demo,omitempty"`
	// Opaque is set when the endpoint accepted the write but its response
	// could not be read.
	Opaque bool `json:"opaque,omitempty"`
}

// RetryReport summarises one RetryFailed sweep.
type RetryReport struct {
	Attempted int
	Delivered int
	Failed    int
}

// Service stores submissions in the outbox and forwards them.
type Service struct {
	queries    *store.Queries
	writer     Writer
	collection string
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a service writing to collection through w.
func NewService(db *sql.DB, w Writer, collection string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if collection == "" {
		collection = content.CollectionContacts
	}
	return &Service{
		queries:    store.New(db),
		writer:     w,
		collection: collection,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Submit cleans and validates form, stores it and forwards it.
//
// An invalid form returns ValidationErrors and is not stored. A delivery
// failure is reported in the Result and left in the outbox for RetryFailed.
// Only storage errors are returned as errors.
func (s *Service) Submit(ctx context.Context, form Form) (Result, error) {
	form = form.Clean()
	if errs := form.Validate(); errs != nil {
		return Result{}, errs
	}

	now := s.now()
	sub, err := s.queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		ID:        uuid.NewString(),
		Name:      form.Name,
		Email:     form.Email,
		Company:   form.Company,
		Message:   form.Message,
		Language:  string(form.Language),
		Status:    store.SubmissionPending,
		CreatedAt: now,
	})
	if err != nil {
		return Result{}, fmt.Errorf("storing submission: %w", err)
	}

	return s.deliver(ctx, sub)
}

// RetryFailed re-forwards pending and failed submissions that have not used
// up their attempts.
func (s *Service) RetryFailed(ctx context.Context) (RetryReport, error) {
	var report RetryReport

	subs, err := s.queries.ListRetryableSubmissions(ctx, MaxAttempts, s.now().Add(-RetryAfter), RetryBatch)
	if err != nil {
		return report, fmt.Errorf("listing retryable submissions: %w", err)
	}

	for _, sub := range subs {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		res, err := s.deliver(ctx, sub)
		if err != nil {
			return report, err
		}
		if res.Demo {
			continue
		}
		report.Attempted++
		if res.Success {
			report.Delivered++
		} else {
			report.Failed++
		}
	}

	if report.Attempted > 0 {
		s.logger.Info("contact retry sweep", "attempted", report.Attempted,
			"delivered", report.Delivered, "failed", report.Failed)
	}
	return report, nil
}

// Counts returns the number of submissions per status.
func (s *Service) Counts(ctx context.Context) (map[string]int64, error) {
	statuses := []string{store.SubmissionPending, store.SubmissionDelivered, store.SubmissionFailed, store.SubmissionDemo}
	out := make(map[string]int64, len(statuses))
	for _, st := range statuses {
		n, err := s.queries.CountContactSubmissionsByStatus(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("counting %s submissions: %w", st, err)
		}
		out[st] = n
	}
	return out, nil
}

// deliver forwards sub and records the outcome.
func (s *Service) deliver(ctx context.Context, sub store.ContactSubmission) (Result, error) {
	res := Result{ID: sub.ID}

	var wr content.WriteResult
	werr := content.ErrNotConfigured
	if s.writer != nil {
		wr, werr = s.writer.Write(ctx, s.collection, payload(sub))
	}

	now := s.now()
	switch {
	case errors.Is(werr, content.ErrNotConfigured):
		if err := s.queries.MarkContactDemo(ctx, sub.ID, now); err != nil {
			return Result{}, fmt.Errorf("updating submission: %w", err)
		}
		s.logger.Info("contact endpoint not configured, submission kept locally", "id", sub.ID)
		res.Success, res.Demo = true, true

	case werr != nil:
		if err := s.queries.MarkContactFailed(ctx, sub.ID, werr.Error(), now); err != nil {
			return Result{}, fmt.Errorf("updating submission: %w", err)
		}
		s.logger.Warn("contact delivery failed", "id", sub.ID, "attempt", sub.Attempts+1, "error", werr)
		res.Error = deliveryMessage(werr)

	default:
		if err := s.queries.MarkContactDelivered(ctx, sub.ID, now); err != nil {
			return Result{}, fmt.Errorf("updating submission: %w", err)
		}
		res.Success, res.Opaque = true, wr.Opaque
	}
	return res, nil
}

// deliveryMessage is the error shown to the submitter. Remote messages are
// passed through; transport details are not.
func deliveryMessage(err error) string {
	var remote *content.RemoteError
	if errors.As(err, &remote) {
		return remote.Message
	}
	var httpErr *content.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	return ErrKeyFailed
}

func payload(sub store.ContactSubmission) map[string]string {
	return map[string]string{
		"id":        sub.ID,
		"name":      sub.Name,
		"email":     sub.Email,
		"company":   sub.Company,
		"message":   sub.Message,
		"language":  sub.Language,
		"timestamp": sub.CreatedAt.UTC().Format(time.RFC3339),
		"source":    "website",
	}
}
