// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

/*
Package api provides the HTTP REST API layer for Curatus.

This package implements the recommendation endpoints backed by the in-memory
model, the session-scoped choice flow, and the operational endpoints. It is
the only interface between clients and the recommendation engine.

Key Components:

  - Router: HTTP route configuration and middleware stack integration
  - Handler: Request handlers for all API endpoints
  - Response formatting: Standardized JSON responses with metadata
  - Session middleware: Anonymous cookie sessions for the choice flow
  - Rate limiting: Per-IP limiting via go-chi/httprate
  - CORS: Cross-Origin Resource Sharing for frontend compatibility

API Surface:

1. Recommendation Endpoints (/api/v1/):
  - GET  /genres              Sorted list of catalog genres
  - GET  /random              Random sample from a genre (genre, count params)
  - POST /choice              Record a movie choice, return neighbor recommendations
  - POST /reset               Clear the session's choice history

2. Operational Endpoints:
  - GET /api/v1/health        Overall health including model and session store state
  - GET /api/v1/health/live   Kubernetes liveness probe
  - GET /api/v1/health/ready  Kubernetes readiness probe (503 until model loads)
  - GET /metrics              Prometheus metrics
  - GET /swagger/*            Interactive API documentation

Degraded Mode:

The process keeps serving when the model fails to load or the session store
is unavailable. Model-dependent endpoints then return errors or empty
results and session reads fall back to empty history, so a broken artifact
never takes the HTTP surface down with it.

Usage Example:

	import (
	    "github.com/tomtom215/curatus/internal/api"
	    "github.com/tomtom215/curatus/internal/recommend"
	    "github.com/tomtom215/curatus/internal/session"
	)

	handler := api.NewHandler(engine, store, cfg)
	router := api.NewRouter(handler, cfg)

	http.ListenAndServe(":8000", router.SetupChi())

Thread Safety:

All handlers are thread-safe and designed for concurrent request handling.
The engine publishes its model through an atomic snapshot and the session
store serializes access through BadgerDB transactions.
*/
package api
