// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

/*
Package models defines the data structures shared across Curatus.

This package contains the API request/response structures and the catalog
entry type returned by the recommendation engine. It serves as the single
source of truth for the wire format.

Key Components:

  - APIResponse: Standardized response wrapper used by every endpoint
  - APIError: Structured error with a stable machine-readable code
  - Movie: Catalog entry (MovieLens id plus display title)
  - ChoiceRequest: Body of POST /choice with validation tags
  - HealthStatus: Degraded-mode aware health report

Every response, success or error, is wrapped in APIResponse so clients can
switch on the status field without sniffing the payload shape. Error codes
are part of the API contract and are never renamed casually.

The structs carry go-playground/validator tags where they accept client
input; validation happens in the api package before a handler touches the
values.
*/
package models
