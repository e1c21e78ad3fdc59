// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

/*
artifacts.go - Model Artifact Loading

This file reads the two Parquet artifacts produced by the offline training
pipeline:

Catalog (catalog_file):
  - movieId:  stable external identifier (BIGINT)
  - item_idx: dense model index, 0..N-1 (INTEGER)
  - title:    display title (VARCHAR)
  - genres:   pipe-delimited genre labels (VARCHAR)

Similarity (similarity_file):
  - item_idx_from: source item index (INTEGER)
  - item_idx_to:   neighbor item index (INTEGER)
  - similarity:    cosine similarity score (DOUBLE)

Both loaders return plain row slices; shaping them into lookup structures
is the job of the catalog and similarity packages. Row order is preserved
as written by the pipeline, which matters for the similarity artifact where
equal scores rank by file order.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/tomtom215/curatus/internal/catalog"
	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/similarity"
)

// CatalogPath returns the resolved path of the catalog artifact
func (db *DB) CatalogPath() string {
	return filepath.Join(db.cfg.Dir, db.cfg.CatalogFile)
}

// SimilarityPath returns the resolved path of the similarity artifact
func (db *DB) SimilarityPath() string {
	return filepath.Join(db.cfg.Dir, db.cfg.SimilarityFile)
}

// LoadCatalog reads the catalog artifact and returns its rows.
//
// Returns an error if the file is missing, unreadable, or does not match
// the expected schema. An empty artifact yields an empty slice; rejecting
// it is left to catalog.Build so the error carries model semantics.
func (db *DB) LoadCatalog(ctx context.Context) ([]catalog.Row, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	path := db.CatalogPath()
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT movieId, item_idx, title, genres FROM read_parquet(?)`, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog artifact %s: %w", path, err)
	}
	defer rows.Close()

	result := []catalog.Row{}
	for rows.Next() {
		var r catalog.Row
		if err := rows.Scan(&r.MovieID, &r.Idx, &r.Title, &r.Genres); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog rows: %w", err)
	}

	logging.Info().
		Str("path", path).
		Int("rows", len(result)).
		Dur("duration", time.Since(start)).
		Msg("Catalog artifact loaded")

	return result, nil
}

// LoadSimilarity reads the similarity artifact and returns its edges in
// file order.
func (db *DB) LoadSimilarity(ctx context.Context) ([]similarity.Edge, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	path := db.SimilarityPath()
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT item_idx_from, item_idx_to, similarity FROM read_parquet(?)`, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read similarity artifact %s: %w", path, err)
	}
	defer rows.Close()

	result := []similarity.Edge{}
	for rows.Next() {
		var e similarity.Edge
		if err := rows.Scan(&e.From, &e.To, &e.Score); err != nil {
			return nil, fmt.Errorf("failed to scan similarity row: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate similarity rows: %w", err)
	}

	logging.Info().
		Str("path", path).
		Int("rows", len(result)).
		Dur("duration", time.Since(start)).
		Msg("Similarity artifact loaded")

	return result, nil
}
