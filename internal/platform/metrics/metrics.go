// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

// Package metrics provides Prometheus metrics for the manga-translate API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheEventsTotal counts resolution cache hits and misses.
	CacheEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mangatl",
			Name:      "cache_events_total",
			Help:      "Total number of resolution cache hits and misses",
		},
		[]string{"cache", "event"},
	)

	// ProviderRequestsTotal counts upstream content provider calls.
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mangatl",
			Name:      "provider_requests_total",
			Help:      "Total number of upstream provider requests",
		},
		[]string{"provider", "operation", "status"},
	)

	// ProviderDuration measures upstream provider latency.
	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mangatl",
			Name:      "provider_duration_seconds",
			Help:      "Duration of upstream provider requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)

	// BridgeInvocationsTotal counts OCR/translation bridge subprocess runs.
	BridgeInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mangatl",
			Name:      "bridge_invocations_total",
			Help:      "Total number of bridge subprocess invocations",
		},
		[]string{"mode", "status"},
	)

	// BridgeDuration measures bridge subprocess wall time.
	BridgeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mangatl",
			Name:      "bridge_duration_seconds",
			Help:      "Duration of bridge subprocess invocations in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"mode"},
	)

	// BlocksPerPage observes how many text blocks the clusterer produced per page.
	BlocksPerPage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mangatl",
			Name:      "blocks_per_page",
			Help:      "Distribution of clustered text blocks per page",
			Buckets:   []float64{0, 1, 2, 5, 10, 15, 25, 50},
		},
	)

	// ProgressWritesTotal counts reading-progress flushes to the database.
	ProgressWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mangatl",
			Name:      "progress_writes_total",
			Help:      "Total number of reading-progress upserts",
		},
		[]string{"status"},
	)

	// ProgressCollapsedTotal counts progress events absorbed by the debounce window.
	ProgressCollapsedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mangatl",
			Name:      "progress_collapsed_total",
			Help:      "Total number of progress events collapsed before writing",
		},
	)
)

// RecordCacheEvent records a cache hit or miss for the named cache.
func RecordCacheEvent(cache, event string) {
	CacheEventsTotal.WithLabelValues(cache, event).Inc()
}

// RecordProviderRequest records one upstream provider call.
func RecordProviderRequest(provider, operation, status string, seconds float64) {
	ProviderRequestsTotal.WithLabelValues(provider, operation, status).Inc()
	ProviderDuration.WithLabelValues(provider, operation).Observe(seconds)
}

// RecordBridge records one bridge subprocess invocation.
func RecordBridge(mode, status string, seconds float64) {
	BridgeInvocationsTotal.WithLabelValues(mode, status).Inc()
	BridgeDuration.WithLabelValues(mode).Observe(seconds)
}

// ObserveBlocks records the number of clustered blocks on a processed page.
func ObserveBlocks(count int) {
	BlocksPerPage.Observe(float64(count))
}

// RecordProgressWrite records a reading-progress flush outcome.
func RecordProgressWrite(status string) {
	ProgressWritesTotal.WithLabelValues(status).Inc()
}

// RecordProgressCollapsed records a progress event absorbed by debouncing.
func RecordProgressCollapsed() {
	ProgressCollapsedTotal.Inc()
}
