// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/curatus/config.yaml",
	"/etc/curatus/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config
// file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Model: ModelConfig{
			Dir:            "/data/model",
			CatalogFile:    "genre_map.parquet",
			SimilarityFile: "sim.parquet",
			TopK:           50,
			Threads:        0, // 0 = use runtime.NumCPU()
			MaxMemory:      "512MB",
			LoadTimeout:    5 * time.Minute,
		},
		Recommend: RecommendConfig{
			DefaultCount: 20,
			MaxCount:     100,
			MaxHistory:   5,
			Seed:         0, // 0 = time-based seed
		},
		Session: SessionConfig{
			Dir:          "/data/sessions",
			TTL:          30 * 24 * time.Hour,
			CookieName:   "reco_session_id",
			CookieSecure: false,
			GCInterval:   10 * time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: 100,
			Window:   1 * time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			Caller:    false,
			Timestamp: true,
		},
	}
}

// loadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func loadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// CURATUS_SERVER_PORT -> server.port
	// CURATUS_MODEL_DIR -> model.dir
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as
// comma-separated slices when set via environment variables.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. This is necessary because env vars come in as strings,
// but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Only explicitly mapped CURATUS_* variables are honored; everything else is
// skipped so random environment variables cannot pollute the config.
//
// Examples:
//   - CURATUS_SERVER_PORT -> server.port
//   - CURATUS_MODEL_DIR -> model.dir
//   - CURATUS_SESSION_TTL -> session.ttl
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"curatus_server_host":             "server.host",
		"curatus_server_port":             "server.port",
		"curatus_server_read_timeout":     "server.read_timeout",
		"curatus_server_write_timeout":    "server.write_timeout",
		"curatus_server_idle_timeout":     "server.idle_timeout",
		"curatus_server_shutdown_timeout": "server.shutdown_timeout",

		// Model artifact mappings
		"curatus_model_dir":             "model.dir",
		"curatus_model_catalog_file":    "model.catalog_file",
		"curatus_model_similarity_file": "model.similarity_file",
		"curatus_model_top_k":           "model.top_k",
		"curatus_model_threads":         "model.threads",
		"curatus_model_max_memory":      "model.max_memory",
		"curatus_model_load_timeout":    "model.load_timeout",

		// Recommendation mappings
		"curatus_recommend_default_count": "recommend.default_count",
		"curatus_recommend_max_count":     "recommend.max_count",
		"curatus_recommend_max_history":   "recommend.max_history",
		"curatus_recommend_seed":          "recommend.seed",

		// Session mappings
		"curatus_session_dir":           "session.dir",
		"curatus_session_ttl":           "session.ttl",
		"curatus_session_cookie_name":   "session.cookie_name",
		"curatus_session_cookie_secure": "session.cookie_secure",
		"curatus_session_gc_interval":   "session.gc_interval",

		// Security mappings
		"curatus_cors_origins": "security.cors_origins",

		// Rate limit mappings
		"curatus_rate_limit_enabled":  "rate_limit.enabled",
		"curatus_rate_limit_requests": "rate_limit.requests",
		"curatus_rate_limit_window":   "rate_limit.window",

		// Metrics mappings
		"curatus_metrics_enabled": "metrics.enabled",

		// Logging mappings
		"curatus_log_level":     "logging.level",
		"curatus_log_format":    "logging.format",
		"curatus_log_caller":    "logging.caller",
		"curatus_log_timestamp": "logging.timestamp",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	return ""
}
