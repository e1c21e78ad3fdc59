// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package recommend

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/curatus/internal/models"
)

// Config holds engine tuning parameters.
type Config struct {
	// Seed pins the sampling RNG for reproducible runs. 0 selects a
	// time-based seed; randomness is not part of the API contract.
	Seed int64 `koanf:"seed" json:"seed"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Seed: 0,
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Seed < 0 {
		return fmt.Errorf("seed must be non-negative, got %d", c.Seed)
	}
	return nil
}

// Engine serves genre sampling and history-based recommendations over an
// immutable model snapshot. See the package documentation for the
// concurrency and degraded-mode contracts.
type Engine struct {
	logger zerolog.Logger

	// mu guards the model pointer and load error. Reads take the pointer
	// once and operate on the snapshot without further locking.
	mu      sync.RWMutex
	model   *Model
	loadErr error

	// Random source for sampling (protected by rngMu for concurrent access)
	rng   *rand.Rand
	rngMu sync.Mutex

	// notReady throttles degraded-mode warnings so a dead model does not
	// flood the log under traffic.
	notReady rate.Sometimes
}

// NewEngine creates a recommendation engine with no model published yet.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine{
		logger:   logger.With().Str("component", "recommend").Logger(),
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation shuffling
		notReady: rate.Sometimes{First: 1, Interval: 30 * time.Second},
	}, nil
}

// SetModel publishes a fully built model. In-flight readers keep the
// snapshot they already took; new calls see the new model.
func (e *Engine) SetModel(m *Model) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.model = m
	e.loadErr = nil
	e.logger.Info().
		Int("items", m.Catalog.Items()).
		Int("edges", m.Similarity.Edges()).
		Int("genres", m.Catalog.GenreCount()).
		Msg("Model published")
}

// MarkFailed records a model load failure. Operations return empty
// results until a model is published; the reason is kept for health
// reporting.
func (e *Engine) MarkFailed(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.model = nil
	e.loadErr = err
}

// snapshot returns the current model, or nil when unready.
func (e *Engine) snapshot() *Model {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.model.complete() {
		return nil
	}
	return e.model
}

// Ready reports whether a complete model is published.
func (e *Engine) Ready() bool {
	return e.snapshot() != nil
}

// LoadError returns the recorded load failure, or nil.
func (e *Engine) LoadError() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loadErr
}

// Stats returns a point-in-time model summary.
func (e *Engine) Stats() Stats {
	m := e.snapshot()
	if m == nil {
		return Stats{}
	}
	return Stats{
		Ready:    true,
		Items:    m.Catalog.Items(),
		Edges:    m.Similarity.Edges(),
		Genres:   m.Catalog.GenreCount(),
		LoadedAt: m.LoadedAt,
	}
}

// Genres returns the sorted catalog genre list, or empty when unready.
func (e *Engine) Genres() []string {
	m := e.snapshot()
	if m == nil {
		e.warnNotReady("genres")
		return []string{}
	}
	return m.Catalog.ListGenres()
}

// KnownMovie reports whether the external movie id exists in the model.
// Always false when the model is unready.
func (e *Engine) KnownMovie(movieID int64) bool {
	m := e.snapshot()
	return m != nil && m.Catalog.Contains(movieID)
}

// KnownGenre reports whether the genre exists in the model.
// Always false when the model is unready.
func (e *Engine) KnownGenre(genre string) bool {
	m := e.snapshot()
	if m == nil {
		return false
	}
	_, ok := m.Catalog.Members(genre)
	return ok
}

// SampleByGenre returns up to count distinct movies tagged with the genre,
// in randomized order. When the genre's member count does not exceed
// count, all members are returned shuffled; otherwise a uniform sample
// without replacement is drawn.
//
// An unknown genre and an unready model both yield an empty list; callers
// that need to distinguish "unknown genre" consult Genres separately.
func (e *Engine) SampleByGenre(genre string, count int) []models.Movie {
	if count <= 0 {
		return []models.Movie{}
	}

	m := e.snapshot()
	if m == nil {
		e.warnNotReady("sample_by_genre")
		return []models.Movie{}
	}

	members, ok := m.Catalog.Members(genre)
	if !ok {
		e.logger.Debug().Str("genre", genre).Msg("Unknown genre requested")
		return []models.Movie{}
	}

	e.rngMu.Lock()
	picked := sampleIndices(e.rng, members, count)
	e.rngMu.Unlock()

	return m.Catalog.ResolveDetails(picked)
}

// sampleIndices draws up to count distinct values from members in random
// order. The input slice is never modified. When count >= len(members)
// the result is a full shuffle; otherwise a partial Fisher-Yates stops
// after count draws, which keeps the sample uniform without shuffling the
// whole set.
func sampleIndices(rng *rand.Rand, members []int, count int) []int {
	cp := make([]int, len(members))
	copy(cp, members)

	if len(cp) <= count {
		rng.Shuffle(len(cp), func(i, j int) {
			cp[i], cp[j] = cp[j], cp[i]
		})
		return cp
	}

	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:count]
}

// scoredCandidate pairs a candidate index with its aggregated score.
type scoredCandidate struct {
	idx   int
	score float64
}

// RecommendFromHistory aggregates neighbor scores across the choice
// history (most-recent-first, already bounded by the session store) and
// returns the top count movies by total score.
//
// Unknown ids are dropped; an empty resolved history is a defined,
// non-error outcome returning an empty list. History items themselves are
// excluded from the candidate set. A movie similar to several history
// entries accumulates every contribution, biasing toward items close to
// the whole history rather than just the latest choice.
func (e *Engine) RecommendFromHistory(historyIDs []int64, count int) []models.Movie {
	if count <= 0 {
		return []models.Movie{}
	}

	m := e.snapshot()
	if m == nil {
		e.warnNotReady("recommend_from_history")
		return []models.Movie{}
	}

	resolved := make([]int, 0, len(historyIDs))
	exclude := make(map[int]struct{}, len(historyIDs))
	for _, id := range historyIDs {
		idx, ok := m.Catalog.IdxOf(id)
		if !ok {
			e.logger.Debug().Int64("movie_id", id).Msg("Dropping unknown history id")
			continue
		}
		resolved = append(resolved, idx)
		exclude[idx] = struct{}{}
	}
	if len(resolved) == 0 {
		return []models.Movie{}
	}

	// Additive aggregation: iteration order over the history cannot
	// change the totals, only which edges get summed, and that set is
	// fixed by the history itself.
	scores := make(map[int]float64)
	for _, idx := range resolved {
		for _, nb := range m.Similarity.NeighborsOf(idx) {
			if _, inHistory := exclude[nb.To]; inHistory {
				continue
			}
			scores[nb.To] += nb.Score
		}
	}
	if len(scores) == 0 {
		return []models.Movie{}
	}

	candidates := make([]scoredCandidate, 0, len(scores))
	for idx, score := range scores {
		candidates = append(candidates, scoredCandidate{idx: idx, score: score})
	}
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].score != candidates[b].score {
			return candidates[a].score > candidates[b].score
		}
		// Ascending index on ties keeps the ranking deterministic
		// across runs regardless of map iteration order.
		return candidates[a].idx < candidates[b].idx
	})

	if len(candidates) > count {
		candidates = candidates[:count]
	}

	picked := make([]int, len(candidates))
	for i, c := range candidates {
		picked[i] = c.idx
	}
	return m.Catalog.ResolveDetails(picked)
}

// warnNotReady logs a throttled degraded-mode warning.
func (e *Engine) warnNotReady(op string) {
	e.notReady.Do(func() {
		e.mu.RLock()
		err := e.loadErr
		e.mu.RUnlock()

		e.logger.Warn().
			Str("operation", op).
			AnErr("load_error", err).
			Msg("Model not ready, returning empty result")
	})
}
