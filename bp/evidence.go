// SPDX-License-Identifier: MIT
// Package: bp
//
// evidence.go - per-variable additive log-weights supplied at run time.
//
// Evidence lives in the flat variable-state layout of one wiring, so the
// engine adds it to beliefs with a single vector add. A nil *Evidence is
// equivalent to all zeros.

package bp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/loopy/core"
	"github.com/katalvlaran/loopy/wiring"
)

// Evidence holds unary log-weights for every variable of a wiring.
type Evidence struct {
	varStart []int
	vars     []core.Variable
	values   []float64
}

// NewEvidence returns zero evidence shaped for w.
func NewEvidence(w *wiring.Wiring) *Evidence {
	return &Evidence{
		varStart: w.VarStart,
		vars:     w.Variables,
		values:   make([]float64, w.NumVarStates),
	}
}

// EvidenceFromMap builds evidence for w from per-variable vectors keyed by
// variable label (name, or "v<ref>" for unnamed variables).
func EvidenceFromMap(w *wiring.Wiring, m map[string][]float64) (*Evidence, error) {
	ev := NewEvidence(w)
	byLabel := make(map[string]core.VariableRef, len(w.Variables))
	for _, v := range w.Variables {
		byLabel[v.Label()] = v.Ref
	}
	for label, weights := range m {
		ref, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("EvidenceFromMap: %q: %w", label, core.ErrUnknownVariable)
		}
		if err := ev.Set(ref, weights); err != nil {
			return nil, fmt.Errorf("EvidenceFromMap: %w", err)
		}
	}

	return ev, nil
}

// Set replaces the log-weights of v. len(weights) must equal the domain size;
// -Inf entries clamp states out.
func (e *Evidence) Set(v core.VariableRef, weights []float64) error {
	if v < 0 || int(v) >= len(e.vars) {
		return fmt.Errorf("Set(%d): %w", int(v), core.ErrUnknownVariable)
	}
	lo, hi := e.varStart[v], e.varStart[v+1]
	if len(weights) != hi-lo {
		return fmt.Errorf("Set(%s): %d weights for %d states: %w", e.vars[v].Label(), len(weights), hi-lo, ErrShapeMismatch)
	}
	if err := checkWeights(weights); err != nil {
		return fmt.Errorf("Set(%s): %w", e.vars[v].Label(), err)
	}
	copy(e.values[lo:hi], weights)

	return nil
}

// Clamp sets hard evidence: every state of v except state gets -Inf.
func (e *Evidence) Clamp(v core.VariableRef, state int) error {
	if v < 0 || int(v) >= len(e.vars) {
		return fmt.Errorf("Clamp(%d): %w", int(v), core.ErrUnknownVariable)
	}
	card := e.vars[v].Card
	if state < 0 || state >= card {
		return fmt.Errorf("Clamp(%s): state %d of %d: %w", e.vars[v].Label(), state, card, ErrShapeMismatch)
	}
	w := make([]float64, card)
	for i := range w {
		if i != state {
			w[i] = math.Inf(-1)
		}
	}

	return e.Set(v, w)
}

// Of returns a copy of the log-weights of v.
func (e *Evidence) Of(v core.VariableRef) []float64 {
	if e == nil || v < 0 || int(v) >= len(e.vars) {
		return nil
	}

	return append([]float64(nil), e.values[e.varStart[v]:e.varStart[v+1]]...)
}

// Values returns the flat log-weights in variable-state layout.
// The slice is owned by e.
func (e *Evidence) Values() []float64 { return e.values }

// Clone returns a deep copy.
func (e *Evidence) Clone() *Evidence {
	if e == nil {
		return nil
	}
	c := *e
	c.values = append([]float64(nil), e.values...)

	return &c
}

// check validates e against w: same layout, admissible per variable.
func (e *Evidence) check(w *wiring.Wiring) error {
	if e == nil {
		return nil
	}
	if len(e.values) != w.NumVarStates || len(e.varStart) != len(w.VarStart) {
		return fmt.Errorf("evidence has %d states, wiring %d: %w", len(e.values), w.NumVarStates, ErrShapeMismatch)
	}
	for v := 0; v+1 < len(w.VarStart); v++ {
		if e.varStart[v+1] != w.VarStart[v+1] {
			return fmt.Errorf("evidence layout differs at variable %d: %w", v, ErrShapeMismatch)
		}
		if err := checkWeights(e.values[w.VarStart[v]:w.VarStart[v+1]]); err != nil {
			return fmt.Errorf("variable %s: %w", w.Variables[v].Label(), err)
		}
	}

	return nil
}

// checkWeights rejects NaN/+Inf and all -Inf vectors.
func checkWeights(weights []float64) error {
	admissible := false
	for i, x := range weights {
		if math.IsNaN(x) || math.IsInf(x, 1) {
			return fmt.Errorf("state %d = %v: %w", i, x, ErrInvalidEvidence)
		}
		if !math.IsInf(x, -1) {
			admissible = true
		}
	}
	if !admissible {
		return fmt.Errorf("every state is -Inf: %w", ErrInvalidEvidence)
	}

	return nil
}
