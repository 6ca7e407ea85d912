// SPDX-License-Identifier: MIT
// Package: belief
//
// belief.go - readout of beliefs from a message state.
//
// Policy:
//   - Pure functions: messages and evidence are never modified.
//   - Log beliefs are evidence plus the sum of incoming factor-to-variable
//     messages; marginals are their per-variable softmax; MAP is the
//     per-variable argmax (lowest state on ties).
//   - Numeric work runs on backend.Default() unless WithBackend is given.

package belief

import (
	"fmt"

	"github.com/katalvlaran/loopy/backend"
	"github.com/katalvlaran/loopy/bp"
	"github.com/katalvlaran/loopy/core"
	"github.com/katalvlaran/loopy/wiring"
)

// logBeliefs returns the flat log beliefs in variable-state layout.
func logBeliefs(be backend.Backend, w *wiring.Wiring, msgs *bp.Messages, ev *bp.Evidence) ([]float64, error) {
	if w == nil {
		return nil, fmt.Errorf("nil wiring: %w", bp.ErrNilWiring)
	}
	if err := msgs.Check(w); err != nil {
		return nil, err
	}
	out := make([]float64, w.NumVarStates)
	be.SegmentSum(out, msgs.F2V, w.StateVarState)
	if ev != nil {
		vals := ev.Values()
		if len(vals) != len(out) {
			return nil, fmt.Errorf("evidence has %d states, wiring %d: %w", len(vals), len(out), bp.ErrShapeMismatch)
		}
		be.Add(out, out, vals)
	}

	return out, nil
}

// split cuts a flat variable-state vector into per-variable copies.
func split(w *wiring.Wiring, flat []float64) [][]float64 {
	out := make([][]float64, w.NumVariables())
	for v := range out {
		lo, hi := w.VarStart[v], w.VarStart[v+1]
		out[v] = append([]float64(nil), flat[lo:hi]...)
	}

	return out
}

// LogBeliefs returns, per variable (indexed by VariableRef), the unnormalized
// log belief: evidence plus the sum of incoming factor-to-variable messages.
func LogBeliefs(w *wiring.Wiring, msgs *bp.Messages, ev *bp.Evidence, opts ...Option) ([][]float64, error) {
	flat, err := logBeliefs(newConfig(opts).backend, w, msgs, ev)
	if err != nil {
		return nil, fmt.Errorf("LogBeliefs: %w", err)
	}

	return split(w, flat), nil
}

// Distributions holds one normalized marginal per variable.
type Distributions struct {
	vars  []core.Variable
	start []int
	probs []float64
}

// Marginals returns the per-variable softmax of the log beliefs.
func Marginals(w *wiring.Wiring, msgs *bp.Messages, ev *bp.Evidence, opts ...Option) (*Distributions, error) {
	be := newConfig(opts).backend
	flat, err := logBeliefs(be, w, msgs, ev)
	if err != nil {
		return nil, fmt.Errorf("Marginals: %w", err)
	}
	probs := make([]float64, len(flat))
	be.SoftmaxRanges(probs, flat, w.VarStart)

	return &Distributions{vars: w.Variables, start: w.VarStart, probs: probs}, nil
}

// Of returns a copy of the marginal of v, or nil for an unknown handle.
func (d *Distributions) Of(v core.VariableRef) []float64 {
	if v < 0 || int(v)+1 >= len(d.start) {
		return nil
	}

	return append([]float64(nil), d.probs[d.start[v]:d.start[v+1]]...)
}

// ByLabel returns the marginal of the variable with the given label
// (name, or "v<ref>" for unnamed variables).
func (d *Distributions) ByLabel(label string) ([]float64, error) {
	for _, v := range d.vars {
		if v.Label() == label {
			return d.Of(v.Ref), nil
		}
	}

	return nil, fmt.Errorf("ByLabel(%q): %w", label, core.ErrUnknownVariable)
}

// All returns every marginal, indexed by VariableRef.
func (d *Distributions) All() [][]float64 {
	out := make([][]float64, len(d.vars))
	for v := range out {
		out[v] = d.Of(core.VariableRef(v))
	}

	return out
}

// Len returns the number of variables.
func (d *Distributions) Len() int { return len(d.vars) }

// Assignment maps every VariableRef (the index) to a state.
type Assignment []int

// Labeled returns the assignment keyed by variable label.
func (a Assignment) Labeled(w *wiring.Wiring) map[string]int {
	out := make(map[string]int, len(a))
	for v, x := range a {
		out[w.Variables[v].Label()] = x
	}

	return out
}

// MAP returns the per-variable argmax of the log beliefs. Ties resolve to
// the lowest state index.
func MAP(w *wiring.Wiring, msgs *bp.Messages, ev *bp.Evidence, opts ...Option) (Assignment, error) {
	be := newConfig(opts).backend
	flat, err := logBeliefs(be, w, msgs, ev)
	if err != nil {
		return nil, fmt.Errorf("MAP: %w", err)
	}
	out := make([]int, w.NumVariables())
	be.ArgmaxRanges(out, flat, w.VarStart)

	return Assignment(out), nil
}
