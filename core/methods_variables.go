// File: methods_variables.go
// Role: Variable lifecycle & queries.
//
// Determinism:
//   - Variables() returns variables in insertion order (Ref ascending).
//
// Concurrency:
//   - Arena and name index protected by g.mu.
package core

import (
	"fmt"
	"strconv"
)

// AddVariable appends a variable with card states and returns its handle.
//
// Implementation:
//   - Stage 1: Validate card ≥ 1 and apply options to a local Variable.
//   - Stage 2: Under the write lock, reject duplicate names, then append.
//
// Errors:
//   - ErrBadDomain: card < 1.
//   - ErrDuplicateName: WithName(name) names an existing variable, or has the
//     form "v<n>" of another variable's default label.
//
// Complexity:
//   - Time O(1) amortized, Space O(1) amortized.
func (g *Graph) AddVariable(card int, opts ...VariableOption) (VariableRef, error) {
	if card < 1 {
		return NoVariable, fmt.Errorf("AddVariable: card=%d: %w", card, ErrBadDomain)
	}
	v := Variable{Card: card}
	for _, opt := range opts {
		opt(&v)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	v.Ref = VariableRef(len(g.variables))
	if v.Name != "" {
		if _, taken := g.byName[v.Name]; taken {
			return NoVariable, fmt.Errorf("AddVariable: %q: %w", v.Name, ErrDuplicateName)
		}
		if ref, ok := defaultLabelRef(v.Name); ok && ref != v.Ref {
			return NoVariable, fmt.Errorf("AddVariable: %q is the label of variable %d: %w", v.Name, int(ref), ErrDuplicateName)
		}
	}

	g.variables = append(g.variables, v)
	g.incident = append(g.incident, nil)
	if v.Name != "" {
		g.byName[v.Name] = v.Ref
	}

	return v.Ref, nil
}

// HasVariable reports whether ref names a variable of g.
// Complexity: O(1).
func (g *Graph) HasVariable(ref VariableRef) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return ref >= 0 && int(ref) < len(g.variables)
}

// Variable returns the variable behind ref.
// Complexity: O(1).
func (g *Graph) Variable(ref VariableRef) (Variable, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if ref < 0 || int(ref) >= len(g.variables) {
		return Variable{}, fmt.Errorf("Variable(%d): %w", int(ref), ErrUnknownVariable)
	}

	return g.variables[ref], nil
}

// Lookup resolves a variable by name.
// Complexity: O(1).
func (g *Graph) Lookup(name string) (VariableRef, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ref, ok := g.byName[name]
	if !ok {
		return NoVariable, fmt.Errorf("Lookup(%q): %w", name, ErrUnknownVariable)
	}

	return ref, nil
}

// Variables returns a snapshot of all variables in insertion order.
// Complexity: O(V).
func (g *Graph) Variables() []Variable {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]Variable(nil), g.variables...)
}

// NumVariables returns the number of variables.
// Complexity: O(1).
func (g *Graph) NumVariables() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.variables)
}

// FactorsOf returns the factors whose scope contains ref, in insertion order.
// Complexity: O(deg(ref)).
func (g *Graph) FactorsOf(ref VariableRef) ([]FactorRef, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if ref < 0 || int(ref) >= len(g.variables) {
		return nil, fmt.Errorf("FactorsOf(%d): %w", int(ref), ErrUnknownVariable)
	}

	return append([]FactorRef(nil), g.incident[ref]...), nil
}

// defaultLabelRef reports whether name is exactly the label Label gives an
// unnamed variable ("v" followed by a canonical decimal), and for which ref.
func defaultLabelRef(name string) (VariableRef, bool) {
	if len(name) < 2 || name[0] != 'v' {
		return NoVariable, false
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 0 || strconv.Itoa(n) != name[1:] {
		return NoVariable, false
	}

	return VariableRef(n), true
}
