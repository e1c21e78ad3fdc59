// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/metrics"
	"github.com/tomtom215/curatus/internal/models"
)

// Choice handles movie choice submissions
//
// Records the choice in the session's rolling history and returns
// recommendations aggregated over the updated history. A failing session
// store degrades to an empty history so the endpoint keeps answering.
//
// @Summary Record a movie choice and get recommendations
// @Description Adds the movie to the session's choice history (most recent first, capped) and returns movies ranked by similarity to the whole history. History items are excluded from the results.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param choice body models.ChoiceRequest true "Chosen movie"
// @Success 200 {object} models.APIResponse{data=models.RecommendationList} "Recommendations retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 404 {object} models.APIResponse "Movie ID not found"
// @Router /choice [post]
func (h *Handler) Choice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	var req models.ChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if !h.engine.KnownMovie(req.MovieID) {
		respondError(w, http.StatusNotFound, "MOVIE_NOT_FOUND", fmt.Sprintf("Movie ID %d not found.", req.MovieID), nil)
		return
	}

	sessionID := SessionIDFromContext(r.Context())

	start := time.Now()
	history := h.recordChoice(r.Context(), sessionID, req.MovieID)

	movies := h.engine.RecommendFromHistory(history, h.defaultCount())

	metrics.ObserveHistoryLength(len(history))
	metrics.RecordRecommendation("history", len(movies))

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   models.RecommendationList{Recommendations: movies},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// recordChoice pushes the choice into the session history and returns the
// updated history, most recent first. Store failures are logged and
// counted but never surface as request errors; the caller proceeds with
// whatever history could be read, possibly none.
func (h *Handler) recordChoice(ctx context.Context, sessionID string, movieID int64) []int64 {
	if h.store == nil || sessionID == "" {
		logging.CtxWarn(ctx).Msg("Session store not available, cannot record choice")
		return nil
	}

	if err := h.store.PushChoice(sessionID, movieID); err != nil {
		metrics.RecordSessionError("push")
		logging.CtxWarn(ctx).
			Err(err).
			Str("session_id", logging.SanitizeSessionID(sessionID)).
			Msg("Failed to record choice")
	}

	history, err := h.store.GetHistory(sessionID)
	if err != nil {
		metrics.RecordSessionError("get")
		logging.CtxWarn(ctx).
			Err(err).
			Str("session_id", logging.SanitizeSessionID(sessionID)).
			Msg("Failed to read session history, using empty history")
		return nil
	}
	return history
}

// Reset handles session reset requests
//
// @Summary Clear the session's choice history
// @Description Removes all recorded choices for the current session. Resetting a session with no history succeeds.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.MessageResponse} "History cleared successfully"
// @Router /reset [post]
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	sessionID := SessionIDFromContext(r.Context())

	if h.store == nil || sessionID == "" {
		logging.CtxWarn(r.Context()).Msg("Session store not available, cannot clear session")
	} else if err := h.store.ClearHistory(sessionID); err != nil {
		metrics.RecordSessionError("clear")
		logging.CtxWarn(r.Context()).
			Err(err).
			Str("session_id", logging.SanitizeSessionID(sessionID)).
			Msg("Failed to clear session history")
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   models.MessageResponse{Message: "Session history cleared successfully."},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
