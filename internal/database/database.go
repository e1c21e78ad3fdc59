// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

// Package database reads the precomputed model artifacts through DuckDB.
//
// The recommendation model is trained offline and shipped as two Parquet
// files (catalog and item-item similarity). DuckDB reads them with
// read_parquet() through an in-memory database, so nothing is persisted
// and the files themselves stay read-only.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/curatus/internal/config"
)

// DB wraps the DuckDB connection used to load model artifacts
type DB struct {
	conn *sql.DB
	cfg  *config.ModelConfig
}

// New opens an in-memory DuckDB instance tuned from the model configuration.
// No database file is created; the connection exists only to run
// read_parquet() over the artifact directory.
func New(cfg *config.ModelConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// preserve_insertion_order=true keeps Parquet row order in query results.
	// The similarity artifact encodes neighbor ranking partly through row
	// order, so it must survive the scan.
	//
	// Disable auto-install/auto-load to prevent hangs in restricted network
	// environments; read_parquet is built in and needs no extensions.
	connStr := fmt.Sprintf("?threads=%d&max_memory=%s&preserve_insertion_order=true&autoinstall_known_extensions=false&autoload_known_extensions=false",
		numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection before handing it out
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := conn.PingContext(pingCtx); err != nil {
		pingCancel()
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping: %w", err)
	}
	pingCancel()

	db := &DB{
		conn: conn,
		cfg:  cfg,
	}
	db.configureConnectionPool()

	return db, nil
}

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// ensureContext creates a context with 30-second timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}
