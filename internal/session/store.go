// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

// Package session persists per-visitor choice history in BadgerDB.
//
// Each visitor is identified by an opaque session ID issued as a cookie by
// the API layer. The store keeps one key per session holding a JSON-encoded
// list of movie IDs, most recent first, capped at MaxHistory entries. Every
// write refreshes the key's TTL, so idle sessions age out without an
// external sweeper.
//
// History operations pass through a circuit breaker so a misbehaving disk
// cannot stall request handling. While the breaker is open, operations fail
// fast with gobreaker.ErrOpenState and callers degrade to empty history.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// keyPrefix namespaces session history keys in BadgerDB.
const keyPrefix = "session:"

// Config holds session store configuration.
type Config struct {
	// Path is the BadgerDB directory. Empty selects an in-memory store
	// whose contents are lost on restart.
	Path string `koanf:"path" json:"path"`

	// TTL is how long an idle session's history is retained.
	// Each PushChoice resets the clock.
	TTL time.Duration `koanf:"ttl" json:"ttl"`

	// MaxHistory caps the number of choices kept per session.
	// Pushing beyond the cap drops the oldest entries.
	MaxHistory int `koanf:"max_history" json:"max_history"`

	// GCInterval is how often value-log garbage collection runs.
	GCInterval time.Duration `koanf:"gc_interval" json:"gc_interval"`

	// BreakerThreshold is the consecutive failure count that opens the
	// circuit breaker.
	BreakerThreshold uint32 `koanf:"breaker_threshold" json:"breaker_threshold"`

	// BreakerTimeout is how long the breaker stays open before allowing
	// a probe request through.
	BreakerTimeout time.Duration `koanf:"breaker_timeout" json:"breaker_timeout"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() Config {
	return Config{
		TTL:              30 * 24 * time.Hour,
		MaxHistory:       5,
		GCInterval:       10 * time.Minute,
		BreakerThreshold: 5,
		BreakerTimeout:   30 * time.Second,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %v", c.TTL)
	}
	if c.MaxHistory <= 0 {
		return fmt.Errorf("session max history must be positive, got %d", c.MaxHistory)
	}
	if c.GCInterval <= 0 {
		return fmt.Errorf("session GC interval must be positive, got %v", c.GCInterval)
	}
	if c.BreakerThreshold == 0 {
		return fmt.Errorf("session breaker threshold must be positive")
	}
	if c.BreakerTimeout <= 0 {
		return fmt.Errorf("session breaker timeout must be positive, got %v", c.BreakerTimeout)
	}
	return nil
}

// Store is a BadgerDB-backed session history store.
// It is safe for concurrent use by multiple goroutines.
type Store struct {
	db      *badger.DB
	breaker *gobreaker.CircuitBreaker[[]int64]
	cfg     Config
	logger  zerolog.Logger
}

// NewStore opens (or creates) the BadgerDB database at cfg.Path and wraps
// it with a circuit breaker. The caller owns the returned store and must
// Close it.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStore(cfg Config, logger zerolog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}
	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	storeLogger := logger.With().Str("component", "session").Logger()

	settings := gobreaker.Settings{
		Name:    "session-store",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			storeLogger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Session store circuit breaker state changed")
		},
	}

	store := &Store{
		db:      db,
		breaker: gobreaker.NewCircuitBreaker[[]int64](settings),
		cfg:     cfg,
		logger:  storeLogger,
	}

	storeLogger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.Path == "").
		Dur("ttl", cfg.TTL).
		Int("max_history", cfg.MaxHistory).
		Msg("Session store opened")

	return store, nil
}

// GetHistory returns the choice history for a session, most recent first.
// A session with no recorded choices yields an empty history, not an error.
func (s *Store) GetHistory(sessionID string) ([]int64, error) {
	return s.breaker.Execute(func() ([]int64, error) {
		var history []int64
		err := s.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get(storeKey(sessionID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("get history: %w", err)
			}
			return item.Value(func(val []byte) error {
				return json.Unmarshal(val, &history)
			})
		})
		if err != nil {
			return nil, err
		}
		return history, nil
	})
}

// PushChoice prepends a movie ID to the session's history, truncates to
// MaxHistory entries, and refreshes the TTL. Repeat choices are kept as
// separate entries. The read-modify-write runs in a single transaction.
func (s *Store) PushChoice(sessionID string, movieID int64) error {
	_, err := s.breaker.Execute(func() ([]int64, error) {
		return nil, s.db.Update(func(txn *badger.Txn) error {
			key := storeKey(sessionID)

			var history []int64
			item, err := txn.Get(key)
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
				// First choice for this session.
			case err != nil:
				return fmt.Errorf("get history: %w", err)
			default:
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &history)
				}); err != nil {
					return fmt.Errorf("unmarshal history: %w", err)
				}
			}

			history = append([]int64{movieID}, history...)
			if len(history) > s.cfg.MaxHistory {
				history = history[:s.cfg.MaxHistory]
			}

			data, err := json.Marshal(history)
			if err != nil {
				return fmt.Errorf("marshal history: %w", err)
			}

			entry := badger.NewEntry(key, data).WithTTL(s.cfg.TTL)
			if err := txn.SetEntry(entry); err != nil {
				return fmt.Errorf("set history: %w", err)
			}
			return nil
		})
	})
	return err
}

// ClearHistory removes the session's history. Clearing a session that has
// no history is not an error.
func (s *Store) ClearHistory(sessionID string) error {
	_, err := s.breaker.Execute(func() ([]int64, error) {
		return nil, s.db.Update(func(txn *badger.Txn) error {
			if err := txn.Delete(storeKey(sessionID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete history: %w", err)
			}
			return nil
		})
	})
	return err
}

// Count returns the number of sessions with recorded history. It bypasses
// the circuit breaker since it only serves diagnostics, never requests.
func (s *Store) Count() (int, error) {
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}

// Available reports whether the circuit breaker is admitting requests.
func (s *Store) Available() bool {
	return s.breaker.State() != gobreaker.StateOpen
}

// Close releases the underlying BadgerDB database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close session store: %w", err)
	}
	s.logger.Info().Msg("Session store closed")
	return nil
}

func storeKey(sessionID string) []byte {
	return []byte(keyPrefix + sessionID)
}
