// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"time"

	"github.com/auxility/site/internal/cache"
)

// Cache key prefixes.
const (
	rowsKeyPrefix = "rows:"
	itemKeyPrefix = "item:"
)

// CachedSource serves collections from a shared cache and falls through to
// the wrapped source on a miss. Failed fetches are never cached.
type CachedSource struct {
	src   Source
	rows  *cache.TypedCache[[]Row]
	items *cache.TypedCache[Row]
}

// NewCachedSource wraps src with c.
func NewCachedSource(src Source, c cache.Cacher, ttl time.Duration) *CachedSource {
	return &CachedSource{
		src:   src,
		rows:  cache.NewTypedCache[[]Row](c, ttl),
		items: cache.NewTypedCache[Row](c, ttl),
	}
}

// Collection implements Source.
func (s *CachedSource) Collection(ctx context.Context, name string, filter Filter) ([]Row, error) {
	key := rowsKeyPrefix + name + "?" + filter.Key()
	return s.rows.GetOrLoad(ctx, key, func(ctx context.Context) ([]Row, error) {
		return s.src.Collection(ctx, name, filter)
	})
}

// Item implements Source.
func (s *CachedSource) Item(ctx context.Context, name, id string) (Row, error) {
	key := itemKeyPrefix + name + "/" + id
	return s.items.GetOrLoad(ctx, key, func(ctx context.Context) (Row, error) {
		return s.src.Item(ctx, name, id)
	})
}

// Invalidate drops every cached collection and item.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return errors.Join(
		s.rows.Invalidate(ctx, rowsKeyPrefix),
		s.items.Invalidate(ctx, itemKeyPrefix),
	)
}

var _ Source = (*CachedSource)(nil)
