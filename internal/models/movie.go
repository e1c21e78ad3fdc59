// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package models

import "time"

// Movie is a catalog entry resolved for API responses.
//
// MovieID is the stable external identifier from the source catalog
// (MovieLens ids in the reference data). Title is the display title
// including the release year, e.g. "Toy Story (1995)".
type Movie struct {
	MovieID int64  `json:"movieId"`
	Title   string `json:"title"`
}

// ChoiceRequest is the body of POST /api/v1/choice.
type ChoiceRequest struct {
	MovieID int64 `json:"movieId" validate:"required,gt=0"`
}

// RecommendationList wraps a ranked list of recommended movies.
// Used by both the random-by-genre and history-based endpoints.
type RecommendationList struct {
	Recommendations []Movie `json:"recommendations"`
}

// GenreList wraps the sorted list of catalog genres.
type GenreList struct {
	Genres []string `json:"genres"`
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthStatus describes overall service health.
//
// Status is "healthy" when the model is loaded and the session store
// answers pings, "degraded" otherwise. A degraded process keeps serving:
// model-dependent endpoints return empty results and session-dependent
// endpoints fall back to empty history.
type HealthStatus struct {
	Status            string     `json:"status"`
	Version           string     `json:"version"`
	ModelReady        bool       `json:"model_ready"`
	ModelError        string     `json:"model_error,omitempty"`
	SessionsAvailable bool       `json:"sessions_available"`
	Items             int        `json:"items"`
	Edges             int        `json:"edges"`
	Genres            int        `json:"genres"`
	ModelLoadedAt     *time.Time `json:"model_loaded_at,omitempty"`
	Uptime            float64    `json:"uptime_seconds"`
}
