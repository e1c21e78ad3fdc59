// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/metrics"
	"github.com/tomtom215/curatus/internal/models"
)

// Genres handles genre list requests
//
// @Summary List catalog genres
// @Description Returns the sorted list of all genres present in the loaded catalog
// @Tags Recommendations
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.GenreList} "Genres retrieved successfully"
// @Failure 500 {object} models.APIResponse "Model failed to load"
// @Router /genres [get]
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	genres := h.engine.Genres()
	if len(genres) == 0 {
		logging.CtxError(r.Context()).
			AnErr("load_error", h.engine.LoadError()).
			Msg("Genre list is empty, model load likely failed")
		respondError(w, http.StatusInternalServerError, "MODEL_UNAVAILABLE", "Failed to load genre data.", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   models.GenreList{Genres: genres},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Random handles random-by-genre sampling requests
//
// @Summary Sample random movies from a genre
// @Description Returns up to count random movies tagged with the given genre, without replacement. A known genre with no sampleable members yields an empty list.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param genre query string true "Genre name, e.g. Comedy"
// @Param count query int false "Number of movies to return (default 20, max 100)"
// @Success 200 {object} models.APIResponse{data=models.RecommendationList} "Random movies retrieved successfully"
// @Failure 400 {object} models.APIResponse "Genre parameter missing"
// @Failure 404 {object} models.APIResponse "Genre not found"
// @Router /random [get]
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	genre := strings.TrimSpace(r.URL.Query().Get("genre"))
	if genre == "" {
		respondError(w, http.StatusBadRequest, "GENRE_REQUIRED", "Genre parameter is required.", nil)
		return
	}

	count := clampCount(getIntParam(r, "count", h.defaultCount()), h.defaultCount(), h.maxCount())

	start := time.Now()
	movies := h.engine.SampleByGenre(genre, count)
	if len(movies) == 0 && !h.engine.KnownGenre(genre) {
		respondError(w, http.StatusNotFound, "GENRE_NOT_FOUND", fmt.Sprintf("Genre '%s' not found.", genre), nil)
		return
	}

	metrics.RecordRecommendation("genre", len(movies))

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   models.RecommendationList{Recommendations: movies},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
