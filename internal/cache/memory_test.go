// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestMemoryCache(maxEntries int) (*MemoryCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute, MaxEntries: maxEntries})
	c.now = clock.Now
	return c, clock
}

func TestMemoryCache_BasicOperations(t *testing.T) {
	cache, _ := newTestMemoryCache(0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if err := cache.Set(ctx, "Copy", []byte(`[{"key":"nav_cases"}]`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "Copy")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != `[{"key":"nav_cases"}]` {
		t.Errorf("unexpected value %s", val)
	}

	has, err := cache.Has(ctx, "Copy")
	if err != nil || !has {
		t.Errorf("Has = (%v, %v), want (true, nil)", has, err)
	}

	if err := cache.Delete(ctx, "Copy"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cache.Get(ctx, "Copy"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_ValueIsCopied(t *testing.T) {
	cache, _ := newTestMemoryCache(0)
	ctx := context.Background()

	in := []byte("abc")
	_ = cache.Set(ctx, "k", in, 0)
	in[0] = 'x'

	out, _ := cache.Get(ctx, "k")
	if string(out) != "abc" {
		t.Errorf("stored value mutated through input slice: %s", out)
	}
	out[1] = 'y'
	again, _ := cache.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %s", again)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache, clock := newTestMemoryCache(0)
	ctx := context.Background()

	_ = cache.Set(ctx, "short", []byte("1"), 10*time.Second)
	_ = cache.Set(ctx, "default", []byte("2"), 0)

	clock.Advance(11 * time.Second)
	if _, err := cache.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("short: expected miss after expiry, got %v", err)
	}
	if _, err := cache.Get(ctx, "default"); err != nil {
		t.Errorf("default: expected hit, got %v", err)
	}

	clock.Advance(time.Minute)
	if has, _ := cache.Has(ctx, "default"); has {
		t.Error("default: expected expiry after default TTL")
	}
}

func TestMemoryCache_DeleteByPrefix(t *testing.T) {
	cache, _ := newTestMemoryCache(0)
	ctx := context.Background()

	for _, k := range []string{"rows:Hero", "rows:Copy", "item:Cases/1"} {
		_ = cache.Set(ctx, k, []byte("x"), 0)
	}

	if err := cache.DeleteByPrefix(ctx, "rows:"); err != nil {
		t.Fatalf("DeleteByPrefix failed: %v", err)
	}

	for _, k := range []string{"rows:Hero", "rows:Copy"} {
		if has, _ := cache.Has(ctx, k); has {
			t.Errorf("%s should have been removed", k)
		}
	}
	if has, _ := cache.Has(ctx, "item:Cases/1"); !has {
		t.Error("item:Cases/1 should remain")
	}
}

func TestMemoryCache_MaxEntriesEvictsSoonestExpiring(t *testing.T) {
	cache, _ := newTestMemoryCache(2)
	ctx := context.Background()

	_ = cache.Set(ctx, "a", []byte("a"), 10*time.Second)
	_ = cache.Set(ctx, "b", []byte("b"), time.Hour)
	_ = cache.Set(ctx, "c", []byte("c"), time.Hour)

	if has, _ := cache.Has(ctx, "a"); has {
		t.Error("a should have been evicted")
	}
	for _, k := range []string{"b", "c"} {
		if has, _ := cache.Has(ctx, k); !has {
			t.Errorf("%s should remain", k)
		}
	}

	// Overwriting an existing key never evicts.
	_ = cache.Set(ctx, "b", []byte("b2"), time.Hour)
	if cache.Stats().Items != 2 {
		t.Errorf("Items = %d, want 2", cache.Stats().Items)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	cache, _ := newTestMemoryCache(0)
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("v"), 0)
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "missing")

	s := cache.Stats()
	if s.Backend != "memory" || s.Hits != 1 || s.Misses != 1 || s.Sets != 1 || s.Items != 1 {
		t.Errorf("unexpected stats %+v", s)
	}
	if s.HitRate != 50 {
		t.Errorf("HitRate = %v, want 50", s.HitRate)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	cache, _ := newTestMemoryCache(0)
	ctx := context.Background()
	_ = cache.Close()
	_ = cache.Close()

	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get: expected ErrCacheClosed, got %v", err)
	}
	if err := cache.Set(ctx, "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set: expected ErrCacheClosed, got %v", err)
	}
	if err := cache.DeleteByPrefix(ctx, ""); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("DeleteByPrefix: expected ErrCacheClosed, got %v", err)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache, _ := newTestMemoryCache(50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			for j := 0; j < 100; j++ {
				_ = cache.Set(ctx, key, []byte{byte(j)}, 0)
				_, _ = cache.Get(ctx, key)
				_ = cache.DeleteByPrefix(ctx, "zz")
			}
		}(i)
	}
	wg.Wait()
}
