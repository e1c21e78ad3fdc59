// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/curatus/internal/models"
)

// Health handles health check requests
//
// @Summary Get system health status
// @Description Returns comprehensive health status including model readiness, load failure reason, session store availability, model counts, and uptime
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	stats := h.engine.Stats()
	sessionsAvailable := h.store != nil && h.store.Available()

	// A degraded process keeps serving; health just makes it visible
	status := "healthy"
	if !stats.Ready || !sessionsAvailable {
		status = "degraded"
	}

	var modelErr string
	if err := h.engine.LoadError(); err != nil {
		modelErr = err.Error()
	}

	var loadedAtPtr *time.Time
	if !stats.LoadedAt.IsZero() {
		loadedAt := stats.LoadedAt
		loadedAtPtr = &loadedAt
	}

	health := models.HealthStatus{
		Status:            status,
		Version:           Version,
		ModelReady:        stats.Ready,
		ModelError:        modelErr,
		SessionsAvailable: sessionsAvailable,
		Items:             stats.Items,
		Edges:             stats.Edges,
		Genres:            stats.Genres,
		ModelLoadedAt:     loadedAtPtr,
		Uptime:            time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive, regardless of model or session store state. Used for Kubernetes liveness probes.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only once the recommendation model is loaded
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK only if the recommendation model is loaded and serving. Returns 503 while the model is loading or after a load failure. Session store degradation does not fail readiness because requests still work with empty history.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	ready := h.engine.Ready()
	sessionsAvailable := h.store != nil && h.store.Available()

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"model_ready":        ready,
			"sessions_available": sessionsAvailable,
			"ready_to_serve":     ready,
			"uptime":             time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
