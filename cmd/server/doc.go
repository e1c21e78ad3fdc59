// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

/*
Package main is the entry point for the Curatus server application.

Curatus is a self-hosted movie recommendation service backed by a
precomputed item-item collaborative filtering model. It serves genre
discovery, random genre sampling, and session-history recommendations
over a small JSON API with cookie-based anonymous sessions.

# Application Architecture

The server implements a layered architecture with Suture v4 process supervision:

	RootSupervisor ("curatus")
	├── DataSupervisor ("data-layer")
	│   └── Session GC (BadgerDB value-log garbage collection)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (7 REST endpoints)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Model: DuckDB read_parquet() over the catalog and similarity artifacts
 4. Session Store: BadgerDB with gobreaker circuit breaker
 5. Supervisor Tree: Suture v4 process supervision
 6. HTTP Server: Chi router with middleware stack

The recommendation engine itself is not supervised: its model is an
immutable in-memory snapshot with no background work, so there is nothing
to restart. A failed model load means broken artifacts, which a restart
loop cannot fix.

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	CURATUS_SERVER_PORT=8000        # HTTP server port
	CURATUS_LOG_LEVEL=info          # trace, debug, info, warn, error
	CURATUS_LOG_FORMAT=json         # json or console

	# Model artifacts (produced by the offline pipeline)
	CURATUS_MODEL_DIR=/data/model
	CURATUS_MODEL_CATALOG_FILE=genre_map.parquet
	CURATUS_MODEL_SIMILARITY_FILE=sim.parquet

	# Sessions
	CURATUS_SESSION_DIR=/data/sessions   # empty = in-memory
	CURATUS_SESSION_TTL=720h
	CURATUS_SESSION_COOKIE_SECURE=false

	# Transport
	CURATUS_CORS_ORIGINS=*
	CURATUS_RATE_LIMIT_ENABLED=true
	CURATUS_RATE_LIMIT_REQUESTS=100

The config file is searched as config.yaml, config.yml,
/etc/curatus/config.yaml, /etc/curatus/config.yml, or wherever
CONFIG_PATH points.

# Degraded Mode

Curatus starts even when its dependencies fail:

  - Model load failure: the server runs with no model. /health reports the
    load error, readiness stays down, and recommendation endpoints return
    MODEL_UNAVAILABLE until the artifacts are fixed and the server restarted.
  - Session store failure: stateless endpoints keep working. Choices are
    not recorded, so history recommendations come back empty until the
    store recovers.

This keeps probes and diagnostics reachable instead of crash-looping on a
bad volume mount.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (configurable shutdown timeout)
 3. Stops session garbage collection
 4. Closes the session store
 5. Reports any services that failed to stop

# Usage Examples

Development (in-memory sessions):

	export CURATUS_MODEL_DIR=./data/model
	go run ./cmd/server

Production:

	export CURATUS_MODEL_DIR=/data/model
	export CURATUS_SESSION_DIR=/data/sessions
	export CURATUS_LOG_FORMAT=json
	export CURATUS_CORS_ORIGINS=https://app.example.com
	./curatus

Docker:

	docker run -d \
	  -v ./model:/data/model:ro \
	  -v sessions:/data/sessions \
	  -p 8000:8000 \
	  ghcr.io/tomtom215/curatus

# API Documentation

Swagger documentation is available at /swagger/index.html when the server
is running. The API provides endpoints organized into categories:

  - Core: Health checks and Kubernetes-style liveness/readiness probes
  - Recommendations: Genre list, random sampling, choice-based
    recommendations, session reset

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/recommend: Recommendation engine
  - internal/database: Model artifact loading
*/
package main
