// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements application instrumentation using the Prometheus client
library, exposing metrics for monitoring performance, errors, and model health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Recommendation serving per source (history vs genre sampling)
  - Model artifact state (item/edge/genre counts, load time, readiness)
  - Session store failures and history lengths

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

HTTP Metrics:
  - curatus_http_requests_total: Total HTTP requests (counter)
    Labels: method, path, status
  - curatus_http_request_duration_seconds: Request latency (histogram)
    Labels: method, path
  - curatus_http_requests_active: In-flight requests (gauge)

Recommendation Metrics:
  - curatus_recommendations_total: Responses served (counter)
    Labels: source (history, genre)
  - curatus_recommendation_candidates: Candidate set sizes (histogram)
  - curatus_recommendation_empty_total: Empty responses (counter)
    Labels: source

Model Metrics:
  - curatus_model_items: Catalog items in the loaded model (gauge)
  - curatus_model_edges: Similarity edges in the loaded model (gauge)
  - curatus_model_genres: Distinct genres in the loaded model (gauge)
  - curatus_model_load_seconds: Duration of the last model load (gauge)
  - curatus_model_ready: 1 when serving, 0 when degraded (gauge)

Session Metrics:
  - curatus_session_store_errors_total: Store operation failures (counter)
    Labels: operation (get, push, clear)
  - curatus_session_history_length: History length at serve time (histogram)

System Metrics:
  - curatus_app_info: Version and Go runtime labels (gauge, always 1)

# Label Cardinality

Path labels use the chi route pattern, not the raw URL, so cardinality stays
bounded by the route table. The recommendation source label has exactly two
values. No label carries user input.

# Usage Example

Recording from a handler:

	start := time.Now()
	// ... serve request ...
	metrics.RecordAPIRequest(r.Method, pattern, strconv.Itoa(status), time.Since(start))

Publishing model state after a successful load:

	metrics.SetModelStats(stats.Items, stats.Edges, stats.Genres, loadDuration)
	metrics.SetModelReady(true)
*/
package metrics
