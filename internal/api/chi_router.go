// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/curatus/internal/config"
)

// Router configures HTTP routes and the middleware stack.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	config        *config.Config
}

// NewRouter creates a router wiring the handler to the middleware stack
// derived from the runtime configuration.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	chiMw := NewChiMiddlewareFromConfig(
		cfg.Security.CORSOrigins,
		cfg.RateLimit.Requests,
		cfg.RateLimit.Window,
		!cfg.RateLimit.Enabled,
	)

	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
		config:        cfg,
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())      // Add X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting (1000/min) so monitoring probes are never throttled
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Recommendation Endpoints
	// ========================
	// The session cookie is issued here so choice history follows the browser.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Metrics())
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(EnsureSession(router.config.Session.CookieName, router.config.Session.CookieSecure))

		r.Get("/genres", router.handler.Genres)
		r.Get("/random", router.handler.Random)
		r.Post("/choice", router.handler.Choice)
		r.Post("/reset", router.handler.Reset)
	})

	// ========================
	// Observability
	// ========================
	if router.config.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
