// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

// Package similarity builds the in-memory neighbor index from the
// precomputed item-to-item similarity artifact.
//
// The build is two-phase: edges are partitioned by their from-index,
// then each partition is stable-sorted by descending score exactly once.
// Retrieval is an ordered scan; nothing is re-sorted per request. The
// artifact is expected to carry at most a fixed K neighbors per item
// (K=50 in the reference pipeline); that is a property of the upstream
// job, not validated here.
package similarity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
)

// Build failure modes.
var (
	ErrNoEdges = errors.New("similarity: no edges")
)

// Edge is one record of the similarity source table: directed evidence
// that To is relevant when the user has shown interest in From.
type Edge struct {
	From  int
	To    int
	Score float64
}

// Neighbor is a scored neighbor in an item's precomputed ranking.
type Neighbor struct {
	To    int
	Score float64
}

// Index is the immutable per-item neighbor table.
type Index struct {
	neighbors map[int][]Neighbor
	edges     int
}

// Build constructs the neighbor index. Edges with negative indices or a
// score that is negative or not finite abort the whole build.
//
// Ties within one from-partition keep their input order (stable sort), so
// a given artifact always builds the same ranking. Self-edges are kept;
// only the engine's history-exclusion rule can filter them out.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Build(edges []Edge, logger zerolog.Logger) (*Index, error) {
	if len(edges) == 0 {
		return nil, ErrNoEdges
	}

	neighbors := make(map[int][]Neighbor)
	for i, e := range edges {
		if e.From < 0 || e.To < 0 {
			return nil, fmt.Errorf("similarity: edge %d: negative index (%d -> %d)", i, e.From, e.To)
		}
		if e.Score < 0 || math.IsNaN(e.Score) || math.IsInf(e.Score, 0) {
			return nil, fmt.Errorf("similarity: edge %d: invalid score %f (%d -> %d)", i, e.Score, e.From, e.To)
		}
		neighbors[e.From] = append(neighbors[e.From], Neighbor{To: e.To, Score: e.Score})
	}

	for _, ns := range neighbors {
		sort.SliceStable(ns, func(a, b int) bool {
			return ns[a].Score > ns[b].Score
		})
	}

	simLogger := logger.With().Str("component", "similarity").Logger()
	simLogger.Info().
		Int("items", len(neighbors)).
		Int("edges", len(edges)).
		Msg("Similarity index built")

	return &Index{neighbors: neighbors, edges: len(edges)}, nil
}

// NeighborsOf returns the precomputed descending-score neighbor sequence
// for an item, or nil when the item has no recorded neighbors. The
// returned slice is shared and must not be modified.
func (x *Index) NeighborsOf(fromIdx int) []Neighbor {
	return x.neighbors[fromIdx]
}

// Items returns the number of items with at least one neighbor.
func (x *Index) Items() int {
	return len(x.neighbors)
}

// Edges returns the total edge count.
func (x *Index) Edges() int {
	return x.edges
}
