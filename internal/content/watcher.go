// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"log/slog"
	"sync"
)

// Keyed is implemented by fetch parameters that can be compared by value.
type Keyed interface {
	Key() string
}

// Watcher owns the fetch state of one consumer. Callers push parameters
// through Update; a request is issued only when the parameter key changes.
//
// Starting a request cancels the one in flight and a response that arrives
// after a newer request has started is discarded, so State always reflects
// the latest parameters.
type Watcher[P Keyed, T any] struct {
	fetch  func(ctx context.Context, p P) State[T]
	logger *slog.Logger

	root   context.Context
	stop   context.CancelFunc
	mu     sync.Mutex
	params P
	key    string
	issued bool
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
	state  State[T]
	subs   map[int]func(State[T])
	nextID int
}

// CollectionWatcher tracks a collection fetch.
type CollectionWatcher = Watcher[Params, []Row]

// ItemWatcher tracks a single-row fetch.
type ItemWatcher = Watcher[ItemParams, Row]

// FieldWatcher tracks a first-row-by-field fetch.
type FieldWatcher = Watcher[FieldParams, Row]

// NewWatcher creates a watcher around fetch. The watcher starts in the
// loading state holding empty.
func NewWatcher[P Keyed, T any](fetch func(ctx context.Context, p P) State[T], empty T, logger *slog.Logger) *Watcher[P, T] {
	if logger == nil {
		logger = slog.Default()
	}
	root, stop := context.WithCancel(context.Background())
	return &Watcher[P, T]{
		fetch:  fetch,
		logger: logger,
		root:   root,
		stop:   stop,
		state:  State[T]{Data: empty, Loading: true},
		subs:   make(map[int]func(State[T])),
	}
}

// NewCollectionWatcher watches collection fetches against src.
func NewCollectionWatcher(src Source, logger *slog.Logger) *CollectionWatcher {
	return NewWatcher(func(ctx context.Context, p Params) State[[]Row] {
		return FetchCollection(ctx, src, p)
	}, []Row{}, logger)
}

// NewItemWatcher watches single-row fetches against src.
func NewItemWatcher(src Source, logger *slog.Logger) *ItemWatcher {
	return NewWatcher(func(ctx context.Context, p ItemParams) State[Row] {
		return FetchItem(ctx, src, p)
	}, nil, logger)
}

// NewFieldWatcher watches first-row-by-field fetches against src.
func NewFieldWatcher(src Source, logger *slog.Logger) *FieldWatcher {
	return NewWatcher(func(ctx context.Context, p FieldParams) State[Row] {
		return FetchByField(ctx, src, p)
	}, nil, logger)
}

// Update records the latest parameters. When their key differs from the
// previous call a new request starts. The returned channel is closed once
// the request serving these parameters has settled or been superseded.
func (w *Watcher[P, T]) Update(p P) <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := p.Key()
	if w.issued && key == w.key {
		return w.done
	}
	w.params = p
	w.key = key
	w.issued = true
	return w.startLocked()
}

// Refresh re-issues the request for the current parameters.
// It returns nil when Update has never been called.
func (w *Watcher[P, T]) Refresh() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.issued {
		return nil
	}
	return w.startLocked()
}

func (w *Watcher[P, T]) startLocked() <-chan struct{} {
	if w.cancel != nil {
		w.cancel()
	}

	w.gen++
	gen := w.gen
	ctx, cancel := context.WithCancel(w.root)
	done := make(chan struct{})

	w.cancel = cancel
	w.done = done
	w.state.Loading = true
	w.state.Error = ""

	params := w.params
	go w.run(ctx, gen, params, done)
	return done
}

func (w *Watcher[P, T]) run(ctx context.Context, gen uint64, p P, done chan struct{}) {
	st := w.fetch(ctx, p)
	st.Loading = false

	w.mu.Lock()
	if gen != w.gen {
		w.mu.Unlock()
		close(done)
		w.logger.Debug("discarding stale fetch result", "key", p.Key())
		return
	}
	w.state = st
	w.cancel()
	w.cancel = nil
	subs := make([]func(State[T]), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	if st.Error != "" {
		w.logger.Warn("content fetch failed", "key", p.Key(), "error", st.Error)
	}
	for _, fn := range subs {
		fn(st)
	}
	close(done)
}

// State returns the latest state.
func (w *Watcher[P, T]) State() State[T] {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Params returns the parameters of the latest Update.
func (w *Watcher[P, T]) Params() P {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.params
}

// Subscribe registers fn to be called after every settlement, before the
// settlement's done channel closes.
// The returned function removes the subscription.
func (w *Watcher[P, T]) Subscribe(fn func(State[T])) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

// Close aborts any request in flight. Later results are discarded.
func (w *Watcher[P, T]) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	w.stop()
}
