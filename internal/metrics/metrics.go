// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - API endpoint latency and throughput
// - Recommendation serving (per source, candidate set sizes)
// - Model artifact state (item/edge/genre counts, readiness)
// - Session store health

var (
	// API Endpoint Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curatus_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}, // In-memory lookups are fast
		},
		[]string{"method", "path"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curatus_http_requests_active",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	// Recommendation Serving Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_recommendations_total",
			Help: "Total number of recommendation responses served",
		},
		[]string{"source"}, // "history", "genre"
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curatus_recommendation_candidates",
			Help:    "Number of candidate items scored per recommendation request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
	)

	RecommendationEmptyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_recommendation_empty_total",
			Help: "Total number of empty recommendation responses",
		},
		[]string{"source"},
	)

	// Model Artifact Metrics
	ModelItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curatus_model_items",
			Help: "Number of catalog items in the loaded model",
		},
	)

	ModelEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curatus_model_edges",
			Help: "Number of similarity edges in the loaded model",
		},
	)

	ModelGenres = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curatus_model_genres",
			Help: "Number of distinct genres in the loaded model",
		},
	)

	ModelLoadSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curatus_model_load_seconds",
			Help: "Wall-clock duration of the last model load in seconds",
		},
	)

	ModelReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curatus_model_ready",
			Help: "Whether the model is loaded and serving (1) or degraded (0)",
		},
	)

	// Session Store Metrics
	SessionStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_session_store_errors_total",
			Help: "Total number of session store operation failures",
		},
		[]string{"operation"}, // "get", "push", "clear"
	)

	SessionHistoryLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curatus_session_history_length",
			Help:    "Choice history length observed when serving recommendations",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "curatus_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// RecordRecommendation records a served recommendation response and the size
// of the candidate set that produced it. An empty result additionally counts
// toward the empty-response series.
func RecordRecommendation(source string, candidates int) {
	RecommendationsTotal.WithLabelValues(source).Inc()
	RecommendationCandidates.Observe(float64(candidates))
	if candidates == 0 {
		RecommendationEmptyTotal.WithLabelValues(source).Inc()
	}
}

// SetModelStats publishes the loaded model dimensions
func SetModelStats(items, edges, genres int, loadDuration time.Duration) {
	ModelItems.Set(float64(items))
	ModelEdges.Set(float64(edges))
	ModelGenres.Set(float64(genres))
	ModelLoadSeconds.Set(loadDuration.Seconds())
}

// SetModelReady publishes model readiness (1 ready, 0 degraded)
func SetModelReady(ready bool) {
	if ready {
		ModelReady.Set(1)
	} else {
		ModelReady.Set(0)
	}
}

// RecordSessionError records a session store operation failure
func RecordSessionError(operation string) {
	SessionStoreErrors.WithLabelValues(operation).Inc()
}

// ObserveHistoryLength records the history length used for a recommendation
func ObserveHistoryLength(length int) {
	SessionHistoryLength.Observe(float64(length))
}

// SetAppInfo publishes version and Go runtime information
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
