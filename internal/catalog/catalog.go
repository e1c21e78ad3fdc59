// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

// Package catalog builds the in-memory movie catalog index from the
// genre_map artifact: the movieId<->idx bijection, idx->title lookup,
// and genre membership sets.
//
// The index is constructed once by Build and is immutable afterwards,
// so concurrent readers need no locking. A malformed row fails the
// whole build; a half-built catalog is never served.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curatus/internal/models"
)

const (
	// GenreDelimiter joins genre labels in the source table.
	GenreDelimiter = "|"

	// NoGenresSentinel is the reserved label meaning "no genres". It is
	// dropped at build time and never materializes as a genre.
	NoGenresSentinel = "(no genres listed)"
)

// Build failure modes.
var (
	ErrNoRows = errors.New("catalog: no rows")
)

// Row is one record of the catalog source table.
type Row struct {
	// MovieID is the stable external identifier from the source catalog.
	MovieID int64
	// Idx is the dense internal index assigned by the model pipeline.
	Idx int
	// Title is the display title.
	Title string
	// Genres is the delimiter-joined genre label list.
	Genres string
}

// Index is the immutable catalog lookup structure.
type Index struct {
	idToIdx    map[int64]int
	idxToID    map[int]int64
	titles     map[int]string
	members    map[string][]int
	genreNames []string
	logger     zerolog.Logger
}

// Build constructs the catalog index from source rows. Any malformed row
// (duplicate movieId or idx, negative idx, empty title) aborts the build.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Build(rows []Row, logger zerolog.Logger) (*Index, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	idx := &Index{
		idToIdx: make(map[int64]int, len(rows)),
		idxToID: make(map[int]int64, len(rows)),
		titles:  make(map[int]string, len(rows)),
		members: make(map[string][]int),
		logger:  logger.With().Str("component", "catalog").Logger(),
	}

	for i, row := range rows {
		if row.Idx < 0 {
			return nil, fmt.Errorf("catalog: row %d: negative index %d for movie %d", i, row.Idx, row.MovieID)
		}
		if row.Title == "" {
			return nil, fmt.Errorf("catalog: row %d: empty title for movie %d", i, row.MovieID)
		}
		if _, dup := idx.idToIdx[row.MovieID]; dup {
			return nil, fmt.Errorf("catalog: row %d: duplicate movie id %d", i, row.MovieID)
		}
		if _, dup := idx.idxToID[row.Idx]; dup {
			return nil, fmt.Errorf("catalog: row %d: duplicate index %d", i, row.Idx)
		}

		idx.idToIdx[row.MovieID] = row.Idx
		idx.idxToID[row.Idx] = row.MovieID
		idx.titles[row.Idx] = row.Title

		for _, genre := range splitGenres(row.Genres) {
			idx.members[genre] = append(idx.members[genre], row.Idx)
		}
	}

	// Sorted member slices give deterministic iteration for sampling and
	// tests; sorted names back ListGenres without a per-call sort.
	idx.genreNames = make([]string, 0, len(idx.members))
	for genre, ms := range idx.members {
		sort.Ints(ms)
		idx.genreNames = append(idx.genreNames, genre)
	}
	sort.Strings(idx.genreNames)

	idx.logger.Info().
		Int("items", len(idx.titles)).
		Int("genres", len(idx.genreNames)).
		Msg("Catalog index built")

	return idx, nil
}

// splitGenres splits a delimiter-joined label list, dropping empty labels,
// the no-genres sentinel, and duplicates within one row.
func splitGenres(raw string) []string {
	if raw == "" || raw == NoGenresSentinel {
		return nil
	}

	parts := strings.Split(raw, GenreDelimiter)
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if p == "" || p == NoGenresSentinel {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// ListGenres returns the lexicographically sorted, deduplicated genre names.
// The returned slice is a copy and safe to retain.
func (x *Index) ListGenres() []string {
	out := make([]string, len(x.genreNames))
	copy(out, x.genreNames)
	return out
}

// Members returns the sorted member indices of a genre and whether the
// genre exists. The returned slice is shared and must not be modified.
func (x *Index) Members(genre string) ([]int, bool) {
	ms, ok := x.members[genre]
	return ms, ok
}

// IdxOf maps an external movie id to its internal index.
func (x *Index) IdxOf(movieID int64) (int, bool) {
	i, ok := x.idToIdx[movieID]
	return i, ok
}

// Contains reports whether the external movie id exists in the catalog.
func (x *Index) Contains(movieID int64) bool {
	_, ok := x.idToIdx[movieID]
	return ok
}

// ResolveDetails maps internal indices to resolved movies. Indices without
// a catalog entry are skipped with a warning; stale references from an
// out-of-date similarity table must not fail a request.
func (x *Index) ResolveDetails(indices []int) []models.Movie {
	out := make([]models.Movie, 0, len(indices))
	for _, i := range indices {
		id, okID := x.idxToID[i]
		title, okTitle := x.titles[i]
		if !okID || !okTitle {
			x.logger.Warn().Int("idx", i).Msg("Skipping unresolvable item index")
			continue
		}
		out = append(out, models.Movie{MovieID: id, Title: title})
	}
	return out
}

// Items returns the number of catalog entries.
func (x *Index) Items() int {
	return len(x.titles)
}

// GenreCount returns the number of distinct genres.
func (x *Index) GenreCount() int {
	return len(x.genreNames)
}
