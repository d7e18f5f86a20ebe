// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes Prometheus collectors for scans and the scan cache.
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

const namespace = "strategy_dashboard"

// Metrics groups the dashboard's collectors.
type Metrics struct {
	scans         prometheus.Counter
	scanDuration  prometheus.Histogram
	cacheRequests *prometheus.CounterVec
	invalidations prometheus.Counter
	entities      *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		scans: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Number of full project scans.",
		}),
		scanDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Wall time of a full project scan.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}),
		cacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Snapshot cache lookups by result (hit or miss).",
		}, []string{"result"}),
		invalidations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidations_total",
			Help:      "Cache entries dropped because strategy files changed.",
		}),
		entities: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities",
			Help:      "Entities found by the most recent scan, by kind.",
		}, []string{"kind"}),
	}
}

// ObserveScan records one scan and the entity counts it produced.
func (m *Metrics) ObserveScan(d time.Duration, snap types.Snapshot) {
	if m == nil {
		return
	}
	m.scans.Inc()
	m.scanDuration.Observe(d.Seconds())
	m.entities.WithLabelValues("project").Set(float64(len(snap.Projects)))
	m.entities.WithLabelValues("epic").Set(float64(len(snap.Epics)))
	m.entities.WithLabelValues("task").Set(float64(len(snap.Tasks)))
}

// CacheHit records a lookup served from the cache.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues("hit").Inc()
}

// CacheMiss records a lookup that triggered a scan.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues("miss").Inc()
}

// Invalidated records a dropped cache entry.
func (m *Metrics) Invalidated() {
	if m == nil {
		return
	}
	m.invalidations.Inc()
}
