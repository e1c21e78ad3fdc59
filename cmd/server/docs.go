// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

// Package main provides the Curatus HTTP server
//
// Curatus serves session-based movie recommendations from a precomputed
// item-item collaborative filtering model.
//
// @title Curatus API
// @version 1.0
// @description Session-based movie recommendations over a precomputed item-item collaborative filtering model.
// @description
// @description ## Sessions
// @description
// @description An anonymous HTTP-only session cookie tracks recent movie choices.
// @description `POST /api/v1/choice` records a choice and returns titles ranked by similarity to the whole history.
// @description `POST /api/v1/reset` clears the history.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description Rate limit headers are included in responses: `X-RateLimit-Limit`, `X-RateLimit-Remaining`, `X-RateLimit-Reset`.
// @description
// @description ## Degraded Mode
// @description
// @description The service starts even when the model artifacts or the session store
// @description fail to load. Model-dependent endpoints then report their specific error
// @description and `/api/v1/health` reports `degraded` with the failure reason.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message"
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-08-25T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/curatus/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health probes and service status
//
// @tag.name Recommendations
// @tag.description Genre discovery, random sampling, and session history recommendations
package main
