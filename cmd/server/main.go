// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

// Package main is the entry point for the Curatus server application.
//
// Curatus serves movie recommendations from a precomputed item-item
// collaborative filtering model. The model is trained offline and shipped
// as two Parquet artifacts; the server loads them once at startup and
// serves genre sampling and history-based recommendations from memory.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Logging: zerolog with JSON or console output
//  3. Model: Read Parquet artifacts through DuckDB, build in-memory indices
//  4. Session Store: BadgerDB-backed choice history with circuit breaker
//  5. Supervisor Tree: Suture v4 process supervision
//  6. HTTP Server: Chi router with Swagger documentation
//
// # Degraded Mode
//
// A failed model load or session store open is not fatal. The server starts
// anyway: /health reports the failure, recommendation endpoints return
// MODEL_UNAVAILABLE, and history endpoints proceed with empty history when
// sessions are down. This keeps liveness probes and diagnostics reachable
// while the operator fixes the artifacts.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (shutdown timeout)
//   - Stops session garbage collection and closes the session store
//
// # Example Usage
//
// Development with bundled artifacts:
//
//	export CURATUS_MODEL_DIR=./data/model
//	export CURATUS_SESSION_DIR=""  # in-memory sessions
//	./curatus
//
// Production:
//
//	export CURATUS_MODEL_DIR=/data/model
//	export CURATUS_SESSION_DIR=/data/sessions
//	export CURATUS_LOG_FORMAT=json
//	./curatus
//
// Docker:
//
//	docker run -d \
//	  -v ./model:/data/model:ro \
//	  -v sessions:/data/sessions \
//	  -p 8000:8000 \
//	  ghcr.io/tomtom215/curatus
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/curatus/docs" // Import generated swagger docs
	"github.com/tomtom215/curatus/internal/api"
	"github.com/tomtom215/curatus/internal/catalog"
	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/database"
	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/metrics"
	"github.com/tomtom215/curatus/internal/recommend"
	"github.com/tomtom215/curatus/internal/session"
	"github.com/tomtom215/curatus/internal/similarity"
	"github.com/tomtom215/curatus/internal/supervisor"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: cfg.Logging.Timestamp,
	})

	logging.Info().Str("version", api.Version).Msg("Starting Curatus with supervisor tree")

	logging.Info().
		Str("model_dir", cfg.Model.Dir).
		Str("session_dir", cfg.Session.Dir).
		Str("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Msg("Configuration loaded")

	metrics.SetAppInfo(api.Version)

	// The engine exists before the model loads so a failed load leaves a
	// degraded engine rather than no engine at all.
	engine, err := recommend.NewEngine(&recommend.Config{Seed: cfg.Recommend.Seed}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	loadModel(engine, cfg)

	store := openSessionStore(cfg)
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing session store")
			}
		}()
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	handler := api.NewHandler(engine, store, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Data layer services
	if store != nil {
		tree.AddDataService(session.NewGCService(store, logging.Logger()))
		logging.Info().Dur("interval", cfg.Session.GCInterval).Msg("Session GC service added")
	}

	// API layer services
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// loadModel reads the Parquet artifacts through DuckDB, builds the catalog
// and similarity indices, and publishes them to the engine as one snapshot.
//
// Returns without publishing if any step fails (non-fatal - the server
// starts degraded and reports the load error through /health).
func loadModel(engine *recommend.Engine, cfg *config.Config) {
	start := time.Now()

	db, err := database.New(&cfg.Model)
	if err != nil {
		engine.MarkFailed(err)
		logging.Error().Err(err).Msg("Failed to open model database - starting degraded")
		return
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing model database")
		}
	}()

	// One deadline covers both artifact scans
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Model.LoadTimeout)
	defer cancel()

	rows, err := db.LoadCatalog(ctx)
	if err != nil {
		engine.MarkFailed(err)
		logging.Error().Err(err).Str("path", db.CatalogPath()).Msg("Failed to load catalog artifact - starting degraded")
		return
	}

	edges, err := db.LoadSimilarity(ctx)
	if err != nil {
		engine.MarkFailed(err)
		logging.Error().Err(err).Str("path", db.SimilarityPath()).Msg("Failed to load similarity artifact - starting degraded")
		return
	}

	cat, err := catalog.Build(rows, logging.Logger())
	if err != nil {
		engine.MarkFailed(err)
		logging.Error().Err(err).Msg("Failed to build catalog index - starting degraded")
		return
	}

	sim, err := similarity.Build(edges, logging.Logger())
	if err != nil {
		engine.MarkFailed(err)
		logging.Error().Err(err).Msg("Failed to build similarity index - starting degraded")
		return
	}

	engine.SetModel(&recommend.Model{
		Catalog:    cat,
		Similarity: sim,
		LoadedAt:   time.Now(),
	})

	stats := engine.Stats()
	loadDuration := time.Since(start)
	metrics.SetModelStats(stats.Items, stats.Edges, stats.Genres, loadDuration)
	metrics.SetModelReady(true)

	logging.Info().
		Int("items", stats.Items).
		Int("edges", stats.Edges).
		Int("genres", stats.Genres).
		Dur("duration", loadDuration).
		Msg("Model loaded successfully")
}

// openSessionStore opens the BadgerDB session store from configuration.
//
// Returns nil if the store cannot be opened (non-fatal - the handler treats
// a nil store as sessions unavailable and keeps stateless endpoints up).
func openSessionStore(cfg *config.Config) *session.Store {
	storeCfg := session.DefaultConfig()
	storeCfg.Path = cfg.Session.Dir
	storeCfg.TTL = cfg.Session.TTL
	storeCfg.MaxHistory = cfg.Recommend.MaxHistory
	storeCfg.GCInterval = cfg.Session.GCInterval

	store, err := session.NewStore(storeCfg, logging.Logger())
	if err != nil {
		metrics.RecordSessionError("open")
		logging.Error().Err(err).Str("dir", cfg.Session.Dir).Msg("Failed to open session store - history endpoints degraded")
		return nil
	}

	if cfg.Session.Dir == "" {
		logging.Warn().Msg("Session directory not configured - sessions will not survive restarts")
	} else {
		logging.Info().Str("dir", cfg.Session.Dir).Dur("ttl", cfg.Session.TTL).Msg("Session store opened")
	}
	return store
}
