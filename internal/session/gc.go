// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// gcDiscardRatio is the fraction of reclaimable space a value-log file
// must exceed before Badger rewrites it.
const gcDiscardRatio = 0.5

// RunGC reclaims value-log space, rewriting files until Badger reports
// nothing left to do. The in-memory store has no value log, so GC is a
// no-op there.
func (s *Store) RunGC() error {
	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("session store GC: %w", err)
		}
	}
}

// GCService runs periodic value-log garbage collection for a session store.
// It implements suture.Service and belongs under the data-layer supervisor.
type GCService struct {
	store    *Store
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewGCService creates a GC service ticking at the store's configured
// GC interval.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewGCService(store *Store, logger zerolog.Logger) *GCService {
	return &GCService{
		store:    store,
		interval: store.cfg.GCInterval,
		logger:   logger.With().Str("service", "session-gc").Logger(),
		name:     "session-gc",
	}
}

// Serve implements the suture.Service interface. It blocks until the
// context is canceled, running one GC pass per tick.
func (g *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	g.logger.Debug().Dur("interval", g.interval).Msg("Session GC service running")

	for {
		select {
		case <-ctx.Done():
			g.logger.Debug().Msg("Session GC service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := g.store.RunGC(); err != nil {
				g.logger.Warn().Err(err).Msg("Session store GC failed")
			}
		}
	}
}

// String returns the service name for supervisor logging.
func (g *GCService) String() string {
	return g.name
}
