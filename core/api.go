// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Thin, deterministic public facade exposing read-only summaries.
// Policy:
//   - No algorithms or hidden state here.
//   - Concurrency model and invariants are defined in types.go/doc.go.
//   - Every exported function documents complexity and locking strategy.

package core

// GraphStats is a read-only snapshot of catalog sizes.
type GraphStats struct {
	// Variables is the number of variables.
	Variables int

	// Factors is the number of factors.
	Factors int

	// Edges is the number of (factor, position) pairs.
	Edges int

	// VariableStates is the sum of all domain sizes.
	VariableStates int

	// EdgeStates is the sum over edges of the target domain size, i.e. the
	// length of one flat message array.
	EdgeStates int

	// ByKind counts factors per kind.
	ByKind map[Kind]int

	// Isolated counts variables that appear in no factor.
	Isolated int
}

// Stats produces a deterministic, read-only snapshot of catalog sizes.
//
// Implementation:
//   - Stage 1: Acquire the read lock.
//   - Stage 2: One pass over variables, one pass over factors.
//
// Complexity:
//   - Time O(V + E), Space O(number of distinct kinds).
//
// Notes:
//   - EdgeStates equals the message buffer length the wiring compiler will allocate.
func (g *Graph) Stats() *GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	stats := GraphStats{
		Variables: len(g.variables),
		Factors:   len(g.factors),
		Edges:     g.numEdges,
		ByKind:    make(map[Kind]int),
	}
	for i, v := range g.variables {
		stats.VariableStates += v.Card
		if len(g.incident[i]) == 0 {
			stats.Isolated++
		}
	}
	for _, f := range g.factors {
		stats.ByKind[f.Kind]++
		for _, v := range f.Scope {
			stats.EdgeStates += g.variables[v].Card
		}
	}

	return &stats
}

// MaxTableSize reports the dense-table cap configured with WithMaxTableSize.
// Complexity: O(1).
func (g *Graph) MaxTableSize() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.maxTable
}

// Snapshot returns consistent copies of all variables and factors taken
// under a single read lock, in insertion order.
//
// Complexity: O(V + F + total params).
func (g *Graph) Snapshot() ([]Variable, []Factor) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	vars := append([]Variable(nil), g.variables...)
	facs := make([]Factor, len(g.factors))
	for i, f := range g.factors {
		facs[i] = f.clone()
	}

	return vars, facs
}
