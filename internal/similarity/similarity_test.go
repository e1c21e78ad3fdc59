// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package similarity

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
)

// --- Test: Build ---

func TestBuild(t *testing.T) {
	t.Parallel()

	edges := []Edge{
		{From: 0, To: 1, Score: 0.9},
		{From: 0, To: 2, Score: 0.1},
		{From: 1, To: 2, Score: 0.5},
		{From: 3, To: 0, Score: 0.7},
	}

	idx, err := Build(edges, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build() error = %v, want nil", err)
	}

	if got := idx.Edges(); got != 4 {
		t.Errorf("Edges() = %d, want 4", got)
	}
	if got := idx.Items(); got != 3 {
		t.Errorf("Items() = %d, want 3", got)
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edges []Edge
	}{
		{name: "no edges", edges: nil},
		{name: "negative from", edges: []Edge{{From: -1, To: 0, Score: 0.5}}},
		{name: "negative to", edges: []Edge{{From: 0, To: -1, Score: 0.5}}},
		{name: "negative score", edges: []Edge{{From: 0, To: 1, Score: -0.5}}},
		{name: "nan score", edges: []Edge{{From: 0, To: 1, Score: math.NaN()}}},
		{name: "inf score", edges: []Edge{{From: 0, To: 1, Score: math.Inf(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Build(tt.edges, zerolog.Nop()); err == nil {
				t.Error("Build() = nil error, want error")
			}
		})
	}
}

// --- Test: NeighborsOf ordering ---

func TestIndex_NeighborsOf(t *testing.T) {
	t.Parallel()

	edges := []Edge{
		{From: 0, To: 3, Score: 0.2},
		{From: 0, To: 1, Score: 0.9},
		{From: 0, To: 2, Score: 0.5},
	}

	idx, err := Build(edges, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	ns := idx.NeighborsOf(0)
	if len(ns) != 3 {
		t.Fatalf("NeighborsOf(0) returned %d neighbors, want 3", len(ns))
	}

	wantOrder := []int{1, 2, 3}
	for i, want := range wantOrder {
		if ns[i].To != want {
			t.Errorf("NeighborsOf(0)[%d].To = %d, want %d (descending score order)", i, ns[i].To, want)
		}
	}
	for i := 1; i < len(ns); i++ {
		if ns[i].Score > ns[i-1].Score {
			t.Errorf("NeighborsOf(0) not sorted descending at %d: %f > %f", i, ns[i].Score, ns[i-1].Score)
		}
	}
}

func TestIndex_NeighborsOf_Missing(t *testing.T) {
	t.Parallel()

	idx, err := Build([]Edge{{From: 0, To: 1, Score: 1}}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// An item with no recorded neighbors is not an error.
	if ns := idx.NeighborsOf(42); len(ns) != 0 {
		t.Errorf("NeighborsOf(42) = %v, want empty", ns)
	}
}

// --- Test: stable tie order ---

func TestBuild_TiesKeepInputOrder(t *testing.T) {
	t.Parallel()

	edges := []Edge{
		{From: 0, To: 5, Score: 0.5},
		{From: 0, To: 3, Score: 0.5},
		{From: 0, To: 9, Score: 0.5},
	}

	idx, err := Build(edges, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	ns := idx.NeighborsOf(0)
	wantOrder := []int{5, 3, 9}
	for i, want := range wantOrder {
		if ns[i].To != want {
			t.Errorf("tie order[%d] = %d, want %d (input order preserved)", i, ns[i].To, want)
		}
	}
}

// --- Test: self-edges survive the build ---

func TestBuild_SelfEdgeKept(t *testing.T) {
	t.Parallel()

	idx, err := Build([]Edge{{From: 2, To: 2, Score: 1.0}}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	ns := idx.NeighborsOf(2)
	if len(ns) != 1 || ns[0].To != 2 {
		t.Errorf("NeighborsOf(2) = %v, want the self-edge kept", ns)
	}
}
