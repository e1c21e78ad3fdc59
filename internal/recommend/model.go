// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package recommend

import (
	"time"

	"github.com/tomtom215/curatus/internal/catalog"
	"github.com/tomtom215/curatus/internal/similarity"
)

// Model is a fully built catalog/similarity index pair. It is assembled
// once by the composition root and published to the engine as a unit, so
// readers never see a catalog without its matching similarity table.
type Model struct {
	// Catalog resolves ids, titles, and genre membership.
	Catalog *catalog.Index
	// Similarity holds the per-item ranked neighbor lists.
	Similarity *similarity.Index
	// LoadedAt records when the artifacts finished loading.
	LoadedAt time.Time
}

// complete reports whether both indices are present.
func (m *Model) complete() bool {
	return m != nil && m.Catalog != nil && m.Similarity != nil
}

// Stats is a point-in-time summary of the engine's model state, used by
// health reporting and startup logs.
type Stats struct {
	// Ready is true when a complete model is published.
	Ready bool
	// Items is the catalog entry count.
	Items int
	// Edges is the similarity edge count.
	Edges int
	// Genres is the distinct genre count.
	Genres int
	// LoadedAt is when the current model was published (zero when unready).
	LoadedAt time.Time
}
