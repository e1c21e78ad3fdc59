// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. It integrates
// with the application's API error format for consistent error responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Error translation to human-readable messages
//   - APIError conversion matching the application's error format
//
// # Quick Start
//
//	type ChoiceRequest struct {
//	    MovieID int64 `json:"movieId" validate:"required,gt=0"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req ChoiceRequest
//	    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
//	        // handle decode error
//	    }
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	        return
//	    }
//	}
//
// # Error Format
//
// Validation failures translate to the VALIDATION_ERROR code used across the
// API. A single failed field produces a direct message ("MovieID is required");
// multiple failures are joined and reported per field in the details map.
package validation
