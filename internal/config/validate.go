// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package config

import (
	"fmt"
)

// Validate checks that the configuration is internally consistent and within
// supported ranges. It is called by Load() after all layers are merged.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	if err := c.validateRateLimit(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("CURATUS_SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("CURATUS_SERVER_READ_TIMEOUT must be positive, got %v", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("CURATUS_SERVER_WRITE_TIMEOUT must be positive, got %v", c.Server.WriteTimeout)
	}
	if c.Server.IdleTimeout <= 0 {
		return fmt.Errorf("CURATUS_SERVER_IDLE_TIMEOUT must be positive, got %v", c.Server.IdleTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("CURATUS_SERVER_SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateModel() error {
	if c.Model.Dir == "" {
		return fmt.Errorf("CURATUS_MODEL_DIR is required")
	}
	if c.Model.CatalogFile == "" {
		return fmt.Errorf("CURATUS_MODEL_CATALOG_FILE is required")
	}
	if c.Model.SimilarityFile == "" {
		return fmt.Errorf("CURATUS_MODEL_SIMILARITY_FILE is required")
	}
	if c.Model.TopK <= 0 {
		return fmt.Errorf("CURATUS_MODEL_TOP_K must be positive, got %d", c.Model.TopK)
	}
	if c.Model.Threads < 0 {
		return fmt.Errorf("CURATUS_MODEL_THREADS must not be negative, got %d", c.Model.Threads)
	}
	if c.Model.LoadTimeout <= 0 {
		return fmt.Errorf("CURATUS_MODEL_LOAD_TIMEOUT must be positive, got %v", c.Model.LoadTimeout)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultCount <= 0 {
		return fmt.Errorf("CURATUS_RECOMMEND_DEFAULT_COUNT must be positive, got %d", c.Recommend.DefaultCount)
	}
	if c.Recommend.MaxCount < c.Recommend.DefaultCount {
		return fmt.Errorf("CURATUS_RECOMMEND_MAX_COUNT (%d) must not be below the default count (%d)",
			c.Recommend.MaxCount, c.Recommend.DefaultCount)
	}
	if c.Recommend.MaxHistory <= 0 {
		return fmt.Errorf("CURATUS_RECOMMEND_MAX_HISTORY must be positive, got %d", c.Recommend.MaxHistory)
	}
	if c.Recommend.Seed < 0 {
		return fmt.Errorf("CURATUS_RECOMMEND_SEED must not be negative, got %d", c.Recommend.Seed)
	}
	return nil
}

func (c *Config) validateSession() error {
	if c.Session.TTL <= 0 {
		return fmt.Errorf("CURATUS_SESSION_TTL must be positive, got %v", c.Session.TTL)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("CURATUS_SESSION_COOKIE_NAME is required")
	}
	if c.Session.GCInterval <= 0 {
		return fmt.Errorf("CURATUS_SESSION_GC_INTERVAL must be positive, got %v", c.Session.GCInterval)
	}
	return nil
}

func (c *Config) validateRateLimit() error {
	if !c.RateLimit.Enabled {
		return nil
	}
	if c.RateLimit.Requests <= 0 {
		return fmt.Errorf("CURATUS_RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimit.Requests)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("CURATUS_RATE_LIMIT_WINDOW must be positive, got %v", c.RateLimit.Window)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("CURATUS_LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled; got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("CURATUS_LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}

	return nil
}
