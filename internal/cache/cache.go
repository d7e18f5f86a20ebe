// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache holds the most recent scan snapshot for a bounded time.
package cache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pdiddy/strategy-dashboard/internal/metrics"
	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

// DefaultTTL is how long a snapshot is served before the next rescan.
const DefaultTTL = 5 * time.Second

// RefreshFunc produces a fresh snapshot, typically by rescanning all projects.
type RefreshFunc func() types.Snapshot

// Cache serves the last snapshot until it is older than its TTL or has been
// invalidated, then refreshes it on the next Get. Refreshes are serialized,
// so concurrent callers never run overlapping scans.
type Cache struct {
	ttl     time.Duration
	refresh RefreshFunc
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu        sync.Mutex
	snapshot  types.Snapshot
	fetchedAt time.Time
	valid     bool
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger sets the logger used for refresh and invalidation events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// WithMetrics records scans and lookups in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// New creates a Cache that calls refresh when its snapshot is missing or
// stale. A non-positive ttl uses DefaultTTL.
func New(ttl time.Duration, refresh RefreshFunc, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		ttl:     ttl,
		refresh: refresh,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached snapshot, refreshing it first when it is stale.
func (c *Cache) Get() types.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.valid && now.Sub(c.fetchedAt) <= c.ttl {
		c.metrics.CacheHit()
		return c.snapshot
	}

	c.metrics.CacheMiss()
	start := time.Now()
	snap := c.refresh()
	elapsed := time.Since(start)
	c.metrics.ObserveScan(elapsed, snap)

	c.snapshot = snap
	c.fetchedAt = now
	c.valid = true

	c.logger.Debug("Scan refreshed",
		"projects", len(snap.Projects),
		"epics", len(snap.Epics),
		"tasks", len(snap.Tasks),
		"duration", elapsed)

	return snap
}

// Invalidate drops the cached snapshot so the next Get rescans.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid {
		return
	}
	c.valid = false
	c.metrics.Invalidated()
	c.logger.Debug("Scan cache invalidated")
}

// FetchedAt reports when the current snapshot was produced. ok is false when
// nothing is cached.
func (c *Cache) FetchedAt() (t time.Time, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt, c.valid
}
