// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

// Package recommend implements the item-to-item recommendation engine.
//
// # Architecture
//
// The engine operates over an immutable model snapshot built at startup
// from two columnar artifacts:
//
//   - Catalog index: movieId<->idx bijection, titles, genre membership
//   - Similarity index: per-item neighbor lists ranked by descending score
//
// Two operations are exposed:
//
//   - SampleByGenre: uniform random sampling from a genre's member set,
//     for cold-start discovery
//   - RecommendFromHistory: additive aggregation of neighbor scores
//     across a short choice history, excluding the history itself,
//     ranked by total score
//
// # Degraded Mode
//
// When the model fails to load, MarkFailed records the reason and every
// operation returns empty results instead of erroring. The process keeps
// serving so health checks can report the state. Ready and LoadError
// expose the explicit ready/failed distinction; empty results from a
// ready model mean a legitimately empty answer.
//
// # Thread Safety
//
// The engine is safe for concurrent use. The model snapshot is published
// by pointer swap under a mutex, so in-flight reads never observe a
// partially built model. Operations are pure in-memory lookups with no
// blocking I/O; any timeout policy belongs to the transport layer. The
// sampling RNG is guarded by its own mutex.
package recommend
