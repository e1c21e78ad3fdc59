// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

// Package config provides centralized configuration management for Curatus.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via CURATUS_* variables
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	// cfg.Model.Dir, cfg.Server.Port, etc. are now populated
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
package config

import (
	"time"
)

// Config holds all application configuration loaded from environment
// variables and an optional config file.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Model     ModelConfig     `koanf:"model"`
	Recommend RecommendConfig `koanf:"recommend"`
	Session   SessionConfig   `koanf:"session"`
	Security  SecurityConfig  `koanf:"security"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port. Default: 8000
	Port int `koanf:"port"`

	// ReadTimeout bounds reading the request including the body.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// IdleTimeout bounds keep-alive connections between requests.
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// ShutdownTimeout is the grace period for in-flight requests on shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ModelConfig holds model artifact settings.
//
// The model is produced by an offline pipeline as two parquet files: a
// catalog mapping (movieId, item_idx, title, genres) and a similarity edge
// list (item_idx_from, item_idx_to, similarity). Curatus only reads them.
type ModelConfig struct {
	// Dir is the directory holding the model artifacts. Default: /data/model
	Dir string `koanf:"dir"`

	// CatalogFile is the catalog artifact file name. Default: genre_map.parquet
	CatalogFile string `koanf:"catalog_file"`

	// SimilarityFile is the similarity artifact file name. Default: sim.parquet
	SimilarityFile string `koanf:"similarity_file"`

	// TopK is the neighbor list length the offline pipeline was run with.
	// Informational; the artifact is trusted as-is. Default: 50
	TopK int `koanf:"top_k"`

	// Threads is the DuckDB thread count for artifact loading (0 = NumCPU).
	Threads int `koanf:"threads"`

	// MaxMemory is the DuckDB memory limit for artifact loading. Default: 512MB
	MaxMemory string `koanf:"max_memory"`

	// LoadTimeout bounds the whole artifact load at startup. Default: 5m
	LoadTimeout time.Duration `koanf:"load_timeout"`
}

// RecommendConfig holds recommendation behavior settings.
type RecommendConfig struct {
	// DefaultCount is the number of items returned when the client does not
	// ask for a specific count. Default: 20
	DefaultCount int `koanf:"default_count"`

	// MaxCount caps the per-request count. Default: 100
	MaxCount int `koanf:"max_count"`

	// MaxHistory caps the per-session choice history used for
	// recommendations. Default: 5
	MaxHistory int `koanf:"max_history"`

	// Seed pins the sampling RNG for reproduction. 0 selects a
	// time-based seed. Default: 0
	Seed int64 `koanf:"seed"`
}

// SessionConfig holds session store and session cookie settings.
type SessionConfig struct {
	// Dir is the BadgerDB directory for session history. Empty selects an
	// in-memory store that does not survive restarts. Default: /data/sessions
	Dir string `koanf:"dir"`

	// TTL is how long idle session history is retained. Default: 720h (30 days)
	TTL time.Duration `koanf:"ttl"`

	// CookieName is the session cookie name. Default: reco_session_id
	CookieName string `koanf:"cookie_name"`

	// CookieSecure marks the session cookie Secure (HTTPS only).
	// Default: false, matching plain-HTTP deployments behind a proxy.
	CookieSecure bool `koanf:"cookie_secure"`

	// GCInterval is how often Badger value-log GC runs. Default: 10m
	GCInterval time.Duration `koanf:"gc_interval"`
}

// SecurityConfig holds transport security settings.
type SecurityConfig struct {
	// CORSOrigins lists allowed CORS origins. Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`
}

// RateLimitConfig holds API rate limiting settings.
type RateLimitConfig struct {
	// Enabled toggles per-IP rate limiting. Default: true
	Enabled bool `koanf:"enabled"`

	// Requests is the number of requests allowed per Window. Default: 100
	Requests int `koanf:"requests"`

	// Window is the rate limiting window. Default: 1m
	Window time.Duration `koanf:"window"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	// Enabled toggles the /metrics endpoint. Default: true
	Enabled bool `koanf:"enabled"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - CURATUS_LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - CURATUS_LOG_FORMAT: json, console (default: json)
//   - CURATUS_LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`

	// Timestamp enables timestamps in log output. Default: true
	Timestamp bool `koanf:"timestamp"`
}

// Load reads configuration from built-in defaults, an optional config file,
// and CURATUS_* environment variables, in that order of precedence
// (later sources override earlier ones).
func Load() (*Config, error) {
	return loadWithKoanf()
}
