// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/auxility/site/internal/contact"
	"github.com/auxility/site/internal/store"
)

// Job names.
const (
	JobContentRefresh = "content-refresh"
	JobContactRetry   = "contact-retry"
	JobEventsPrune    = "events-prune"
)

// Refresher re-fetches watched collections. The channel closes once every
// collection has settled.
type Refresher interface {
	Refresh() <-chan struct{}
}

// Invalidator drops cached collections.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// ContentRefreshJob drops the collection cache, when there is one, and
// re-fetches every watched collection.
func ContentRefreshJob(schedule string, site Refresher, cache Invalidator) Job {
	return Job{
		Name:        JobContentRefresh,
		Description: "Re-fetch every content collection",
		Schedule:    schedule,
		Run: func(ctx context.Context) error {
			if cache != nil {
				if err := cache.Invalidate(ctx); err != nil {
					return fmt.Errorf("invalidating content cache: %w", err)
				}
			}
			select {
			case <-site.Refresh():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
}

// Retrier re-delivers failed contact submissions.
type Retrier interface {
	RetryFailed(ctx context.Context) (contact.RetryReport, error)
}

// ContactRetryJob retries failed contact deliveries.
func ContactRetryJob(schedule string, svc Retrier) Job {
	return Job{
		Name:        JobContactRetry,
		Description: "Retry failed contact form deliveries",
		Schedule:    schedule,
		Run: func(ctx context.Context) error {
			_, err := svc.RetryFailed(ctx)
			return err
		},
	}
}

// EventsPruneJob deletes event log entries older than retention.
func EventsPruneJob(schedule string, q *store.Queries, retention time.Duration) Job {
	return Job{
		Name:        JobEventsPrune,
		Description: "Delete old event log entries",
		Schedule:    schedule,
		Run: func(ctx context.Context) error {
			_, err := q.DeleteEventsBefore(ctx, time.Now().UTC().Add(-retention))
			return err
		},
	}
}
