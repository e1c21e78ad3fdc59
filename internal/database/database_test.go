// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/curatus/internal/catalog"
	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/similarity"
)

func testModelConfig(dir string) *config.ModelConfig {
	return &config.ModelConfig{
		Dir:            dir,
		CatalogFile:    "genre_map.parquet",
		SimilarityFile: "sim.parquet",
		TopK:           50,
		Threads:        2,
		MaxMemory:      "256MB",
		LoadTimeout:    time.Minute,
	}
}

// writeCatalogArtifact generates a catalog Parquet file via a scratch
// DuckDB connection, mimicking the offline pipeline output.
func writeCatalogArtifact(t *testing.T, path string, rows []catalog.Row) {
	t.Helper()

	conn, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("Failed to open scratch database: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Exec(`CREATE TABLE artifact (movieId BIGINT, item_idx INTEGER, title VARCHAR, genres VARCHAR)`); err != nil {
		t.Fatalf("Failed to create artifact table: %v", err)
	}
	for _, r := range rows {
		if _, err := conn.Exec(`INSERT INTO artifact VALUES (?, ?, ?, ?)`, r.MovieID, r.Idx, r.Title, r.Genres); err != nil {
			t.Fatalf("Failed to insert artifact row: %v", err)
		}
	}
	if _, err := conn.Exec(fmt.Sprintf("COPY artifact TO '%s' (FORMAT PARQUET)", path)); err != nil {
		t.Fatalf("Failed to write catalog artifact: %v", err)
	}
}

// writeSimilarityArtifact generates a similarity Parquet file preserving
// the given edge order.
func writeSimilarityArtifact(t *testing.T, path string, edges []similarity.Edge) {
	t.Helper()

	conn, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("Failed to open scratch database: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Exec(`CREATE TABLE artifact (item_idx_from INTEGER, item_idx_to INTEGER, similarity DOUBLE)`); err != nil {
		t.Fatalf("Failed to create artifact table: %v", err)
	}
	for _, e := range edges {
		if _, err := conn.Exec(`INSERT INTO artifact VALUES (?, ?, ?)`, e.From, e.To, e.Score); err != nil {
			t.Fatalf("Failed to insert artifact row: %v", err)
		}
	}
	if _, err := conn.Exec(fmt.Sprintf("COPY artifact TO '%s' (FORMAT PARQUET)", path)); err != nil {
		t.Fatalf("Failed to write similarity artifact: %v", err)
	}
}

func TestNew(t *testing.T) {
	cfg := testModelConfig(t.TempDir())

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestNew_DefaultThreads(t *testing.T) {
	cfg := testModelConfig(t.TempDir())
	cfg.Threads = 0

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()
}

func TestArtifactPaths(t *testing.T) {
	cfg := testModelConfig("/data/model")

	db := &DB{cfg: cfg}
	if got := db.CatalogPath(); got != filepath.Join("/data/model", "genre_map.parquet") {
		t.Errorf("CatalogPath() = %q", got)
	}
	if got := db.SimilarityPath(); got != filepath.Join("/data/model", "sim.parquet") {
		t.Errorf("SimilarityPath() = %q", got)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	cfg := testModelConfig(dir)

	want := []catalog.Row{
		{MovieID: 1, Idx: 0, Title: "Toy Story (1995)", Genres: "Adventure|Animation|Children|Comedy|Fantasy"},
		{MovieID: 2, Idx: 1, Title: "Jumanji (1995)", Genres: "Adventure|Children|Fantasy"},
		{MovieID: 148626, Idx: 2, Title: "Big Short, The (2015)", Genres: "Drama"},
	}
	writeCatalogArtifact(t, filepath.Join(dir, cfg.CatalogFile), want)

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	got, err := db.LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("LoadCatalog() returned %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadCatalog_MissingArtifact(t *testing.T) {
	cfg := testModelConfig(t.TempDir())

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	if _, err := db.LoadCatalog(context.Background()); err == nil {
		t.Error("LoadCatalog() = nil error, want error for missing artifact")
	}
}

func TestLoadCatalog_SchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	cfg := testModelConfig(dir)

	// Artifact missing the genres column
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("Failed to open scratch database: %v", err)
	}
	defer conn.Close()
	if _, err := conn.Exec(`CREATE TABLE artifact (movieId BIGINT, title VARCHAR)`); err != nil {
		t.Fatalf("Failed to create artifact table: %v", err)
	}
	if _, err := conn.Exec(fmt.Sprintf("COPY artifact TO '%s' (FORMAT PARQUET)", filepath.Join(dir, cfg.CatalogFile))); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	if _, err := db.LoadCatalog(context.Background()); err == nil {
		t.Error("LoadCatalog() = nil error, want error for schema mismatch")
	}
}

func TestLoadSimilarity(t *testing.T) {
	dir := t.TempDir()
	cfg := testModelConfig(dir)

	// Includes a self-edge and a score tie; file order must be preserved
	want := []similarity.Edge{
		{From: 0, To: 0, Score: 1.0},
		{From: 0, To: 2, Score: 0.5},
		{From: 0, To: 1, Score: 0.5},
		{From: 1, To: 0, Score: 0.25},
	}
	writeSimilarityArtifact(t, filepath.Join(dir, cfg.SimilarityFile), want)

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	got, err := db.LoadSimilarity(context.Background())
	if err != nil {
		t.Fatalf("LoadSimilarity() error = %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("LoadSimilarity() returned %d edges, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("edge %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadSimilarity_EmptyArtifact(t *testing.T) {
	dir := t.TempDir()
	cfg := testModelConfig(dir)

	writeSimilarityArtifact(t, filepath.Join(dir, cfg.SimilarityFile), nil)

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	got, err := db.LoadSimilarity(context.Background())
	if err != nil {
		t.Fatalf("LoadSimilarity() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("LoadSimilarity() returned %d edges, want 0", len(got))
	}
}

func TestClose_NilSafe(t *testing.T) {
	db := &DB{}
	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := db.Ping(context.Background()); err == nil {
		t.Error("Ping() = nil error, want error for closed connection")
	}
}
