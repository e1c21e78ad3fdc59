// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"time"

	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/recommend"
	"github.com/tomtom215/curatus/internal/session"
)

// Version is the API version reported by the health endpoint and the
// app info metric.
const Version = "1.0.0"

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: Shared helper functions
//   - handlers_catalog.go: Genre listing and random sampling endpoints
//   - handlers_choice.go: Choice recording and session reset endpoints
//   - handlers_health.go: Health/monitoring endpoints
type Handler struct {
	engine    *recommend.Engine
	store     *session.Store
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler with all required dependencies.
//
// Dependencies:
//   - engine: Recommendation engine holding the in-memory model snapshot
//   - store: Session store for per-session choice history (may be degraded)
//   - cfg: Application configuration
//
// Example:
//
//	handler := api.NewHandler(engine, store, cfg)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":8000", router.SetupChi())
func NewHandler(engine *recommend.Engine, store *session.Store, cfg *config.Config) *Handler {
	return &Handler{
		engine:    engine,
		store:     store,
		config:    cfg,
		startTime: time.Now(),
	}
}

// defaultCount returns the configured recommendation count for requests
// that do not ask for a specific count.
func (h *Handler) defaultCount() int {
	if h.config != nil && h.config.Recommend.DefaultCount > 0 {
		return h.config.Recommend.DefaultCount
	}
	return 20
}

// maxCount returns the per-request count cap.
func (h *Handler) maxCount() int {
	if h.config != nil && h.config.Recommend.MaxCount > 0 {
		return h.config.Recommend.MaxCount
	}
	return 100
}
