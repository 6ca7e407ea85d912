// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical graphs.
//   - Constructors never panic; they return sentinel errors wrapped with the method name.
//
// Hints:
//   - Compose constructors in BuildGraph; each one appends variables after the
//     ones already present, so names from a NameFn are offset by the current
//     variable count and stay unique.
//   - Use WithSeed(...) to freeze stochastic paths (RandomSparse, random couplings).

package builder

import (
	"fmt"

	"github.com/katalvlaran/loopy/core"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig. Constructors validate parameters before touching g and
// preserve determinism for the same config and call order.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph with graph options gopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// Any constructor error is wrapped with "BuildGraph: %w" and returned
// immediately; the partially built graph is discarded.
//
// Complexity:
//   - Resolving options: O(len(bopts)).
//   - Applying K constructors: Σ cost of each constructor.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// Apply runs constructors against an existing graph with freshly resolved
// options. It is the incremental counterpart of BuildGraph.
func Apply(g *core.Graph, bopts []BuilderOption, cons ...Constructor) error {
	if g == nil {
		return fmt.Errorf("Apply: nil graph: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("Apply: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return fmt.Errorf("Apply: %w", err)
		}
	}

	return nil
}

// =============================================================================
// Topology factories - implemented in impl_*.go
// =============================================================================
//
// Every factory adds card-state variables (WithCardinality) and one pairwise
// coupling factor per edge, with a table built by couplingTable from a
// strength drawn with the configured CouplingFn.
//
//	Chain(n)                 x0 - x1 - ... - x(n-1)                  (n ≥ 2)
//	Cycle(n)                 chain closed into a ring                 (n ≥ 3)
//	Star(n)                  hub x0 coupled to n-1 leaves             (n ≥ 2)
//	Grid(rows, cols)         4-neighbour lattice, variables "r,c"     (rows, cols ≥ 1)
//	Complete(n)              every pair coupled                       (n ≥ 1)
//	CompleteBipartite(m, k)  every left/right pair coupled            (m, k ≥ 1)
//	RandomSparse(n, p)       each pair coupled with probability p     (n ≥ 1, 0 ≤ p ≤ 1)
//
// Evidence generators (evidence.go) draw unary log-weights for a compiled
// wiring: GumbelEvidence, GumbelBatch.
