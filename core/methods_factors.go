// File: methods_factors.go
// Role: Factor lifecycle & queries.
//
// Determinism:
//   - Factors() returns factors in insertion order (Ref ascending).
//
// Concurrency:
//   - Validation reads the variable arena under the same write lock that
//     appends the factor, so a call is all-or-nothing.
package core

import "fmt"

// AddFactor appends a factor of the given kind over scope and returns its handle.
//
// Implementation:
//   - Stage 1: Under the write lock, resolve every scope entry to its domain size,
//     rejecting unknown or repeated variables.
//   - Stage 2: Validate params against the kind and the scope's domain sizes.
//   - Stage 3: Store deep copies of scope and params; register incidence.
//
// Errors:
//   - ErrInvalidScope: empty scope, unknown variable, duplicate entry, kind arity.
//   - ErrShapeMismatch: params disagree with the scope's domain sizes.
//   - ErrBadPotential: NaN/+Inf entries or no admissible configuration.
//   - ErrTableTooLarge: dense table above the graph cap.
//   - ErrUnknownKind: kind is neither built-in nor ≥ KindCustom.
//
// Nothing is mutated when an error is returned.
//
// Complexity:
//   - Time O(|scope| + |params|), Space O(|scope| + |params|).
func (g *Graph) AddFactor(kind Kind, scope []VariableRef, params Params, opts ...FactorOption) (FactorRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cards, err := g.scopeCards(scope)
	if err != nil {
		return NoFactor, fmt.Errorf("AddFactor(%s): %w", kind, err)
	}
	if err = validateParams(kind, cards, params, g.maxTable); err != nil {
		return NoFactor, fmt.Errorf("AddFactor(%s): %w", kind, err)
	}

	f := Factor{
		Ref:    FactorRef(len(g.factors)),
		Kind:   kind,
		Scope:  append([]VariableRef(nil), scope...),
		Params: params.clone(),
	}
	for _, opt := range opts {
		opt(&f)
	}

	g.factors = append(g.factors, f)
	for _, v := range f.Scope {
		g.incident[v] = append(g.incident[v], f.Ref)
	}
	g.numEdges += len(f.Scope)

	return f.Ref, nil
}

// scopeCards resolves scope to domain sizes. Caller holds g.mu.
func (g *Graph) scopeCards(scope []VariableRef) ([]int, error) {
	if len(scope) == 0 {
		return nil, fmt.Errorf("empty scope: %w", ErrInvalidScope)
	}
	cards := make([]int, len(scope))
	seen := make(map[VariableRef]int, len(scope))
	for i, v := range scope {
		if v < 0 || int(v) >= len(g.variables) {
			return nil, fmt.Errorf("scope[%d]=%d unknown: %w", i, int(v), ErrInvalidScope)
		}
		if j, dup := seen[v]; dup {
			return nil, fmt.Errorf("scope[%d]=scope[%d]=%d: %w", i, j, int(v), ErrInvalidScope)
		}
		seen[v] = i
		cards[i] = g.variables[v].Card
	}

	return cards, nil
}

// Factor returns a deep copy of the factor behind ref.
// Complexity: O(|scope| + |params|).
func (g *Graph) Factor(ref FactorRef) (Factor, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if ref < 0 || int(ref) >= len(g.factors) {
		return Factor{}, fmt.Errorf("Factor(%d): %w", int(ref), ErrUnknownFactor)
	}

	return g.factors[ref].clone(), nil
}

// Factors returns deep copies of all factors in insertion order.
// Complexity: O(F + total params).
func (g *Graph) Factors() []Factor {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Factor, len(g.factors))
	for i, f := range g.factors {
		out[i] = f.clone()
	}

	return out
}

// NumFactors returns the number of factors.
// Complexity: O(1).
func (g *Graph) NumFactors() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.factors)
}

// NumEdges returns the number of (factor, position) pairs.
// Complexity: O(1).
func (g *Graph) NumEdges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.numEdges
}
