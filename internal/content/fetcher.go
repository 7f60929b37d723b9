// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"strconv"
)

// State describes one fetch: loading until it settles, then either data
// or an error message. Data is always a usable value, empty on failure.
type State[T any] struct {
	Data    T      `json:"data"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Failed reports whether the fetch settled with an error.
func (s State[T]) Failed() bool {
	return !s.Loading && s.Error != ""
}

// Params selects a collection fetch.
type Params struct {
	Collection string
	Filter     Filter
	// Disabled suppresses the request; the fetch settles empty without error.
	Disabled bool
}

// Key identifies the request by value. Equal keys never trigger a refetch.
func (p Params) Key() string {
	return p.Collection + "|" + strconv.FormatBool(!p.Disabled) + "|" + p.Filter.Key()
}

// ItemParams selects a single-row fetch.
type ItemParams struct {
	Collection string
	ID         string
}

// Key identifies the request by value.
func (p ItemParams) Key() string {
	return p.Collection + "|" + p.ID
}

// FieldParams selects the first row whose "field" column equals Value.
type FieldParams struct {
	Collection string
	Value      string
}

// Key identifies the request by value.
func (p FieldParams) Key() string {
	return p.Collection + "|field=" + p.Value
}

// FetchCollection performs one collection fetch and returns its settled state.
// It never returns a loading state and never panics on remote failures.
func FetchCollection(ctx context.Context, src Source, p Params) State[[]Row] {
	if p.Disabled || p.Collection == "" || src == nil {
		return State[[]Row]{Data: []Row{}}
	}

	rows, err := src.Collection(ctx, p.Collection, p.Filter)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return State[[]Row]{Data: []Row{}}
		}
		return State[[]Row]{Data: []Row{}, Error: errorMessage(err)}
	}
	if rows == nil {
		rows = []Row{}
	}
	return State[[]Row]{Data: rows}
}

// FetchItem fetches one row by identifier. Data is nil when nothing matched.
func FetchItem(ctx context.Context, src Source, p ItemParams) State[Row] {
	if p.Collection == "" || p.ID == "" || src == nil {
		return State[Row]{}
	}

	row, err := src.Item(ctx, p.Collection, p.ID)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return State[Row]{}
		}
		return State[Row]{Error: errorMessage(err)}
	}
	return State[Row]{Data: row}
}

// FetchByField fetches a collection filtered by {field: value} and keeps
// only the first row. Data is nil for an empty collection.
func FetchByField(ctx context.Context, src Source, p FieldParams) State[Row] {
	st := FetchCollection(ctx, src, Params{
		Collection: p.Collection,
		Filter:     Filter{"field": p.Value},
	})

	out := State[Row]{Error: st.Error}
	if len(st.Data) > 0 {
		out.Data = st.Data[0]
	}
	return out
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown error"
}
