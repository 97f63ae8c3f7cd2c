// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tile serving

	TileRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tile_requests_total",
			Help: "Total number of tile requests",
		},
		[]string{"scheme", "kind", "status"},
	)

	TileResolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tile_resolve_duration_seconds",
			Help:    "Duration of backing-store tile resolution in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"kind"},
	)

	TileBytesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tile_bytes_served_total",
			Help: "Total tile payload bytes served",
		},
		[]string{"kind"},
	)

	UpstreamBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tile_upstream_breaker_open",
			Help: "1 when the remote-proxy circuit breaker is open",
		},
	)

	// Feature-collection cache

	FeatureCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feature_cache_hits_total",
			Help: "Feature collection cache hits",
		},
	)

	FeatureCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feature_cache_misses_total",
			Help: "Feature collection cache misses (loads)",
		},
	)

	FeatureSourceLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feature_source_load_duration_seconds",
			Help:    "Time to read and parse a GeoJSON feature source",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Style synthesis

	StyleBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "style_builds_total",
			Help: "Total number of style documents synthesized",
		},
		[]string{"source_kind"},
	)

	// HTTP boundary

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of HTTP requests currently in flight",
		},
	)

	// Registry

	RegistryOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_operations_total",
			Help: "Registry store operations by type and outcome",
		},
		[]string{"operation", "outcome"},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordTileRequest records one tile request outcome.
func RecordTileRequest(scheme, kind string, statusCode int) {
	TileRequestsTotal.WithLabelValues(scheme, kind, strconv.Itoa(statusCode)).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
