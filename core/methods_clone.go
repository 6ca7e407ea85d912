// File: methods_clone.go
// Role: Cloning graph instances.
// Determinism:
//   - Clone preserves insertion order, so handles are identical on the clone.
// Concurrency:
//   - Read lock for snapshotting; no mutation of the source graph.

package core

// Clone returns a deep copy of the Graph: configuration, variables, factors
// and incidence. Handles issued by g are valid on the clone.
//
// Complexity: O(V + F + total params).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	clone := NewGraph(WithMaxTableSize(g.maxTable))
	clone.variables = append([]Variable(nil), g.variables...)
	clone.factors = make([]Factor, len(g.factors))
	for i, f := range g.factors {
		clone.factors[i] = f.clone()
	}
	clone.incident = make([][]FactorRef, len(g.incident))
	for i, fs := range g.incident {
		clone.incident[i] = append([]FactorRef(nil), fs...)
	}
	for name, ref := range g.byName {
		clone.byName[name] = ref
	}
	clone.numEdges = g.numEdges

	return clone
}

// CloneEmpty returns a new Graph with the same configuration and variables
// but no factors.
//
// Complexity: O(V).
func (g *Graph) CloneEmpty() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	clone := NewGraph(WithMaxTableSize(g.maxTable))
	clone.variables = append([]Variable(nil), g.variables...)
	clone.incident = make([][]FactorRef, len(g.variables))
	for name, ref := range g.byName {
		clone.byName[name] = ref
	}

	return clone
}
