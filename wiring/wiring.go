// SPDX-License-Identifier: MIT
// Package: wiring
//
// wiring.go - the immutable flat layout of a compiled factor graph.
//
// Layout (all arrays are indexed by integers, no maps):
//
//	variable v          states VarStart[v] .. VarStart[v+1]-1 of the belief buffer
//	edge e              states EdgeStart[e] .. EdgeStart[e+1]-1 of each message buffer
//	edge-state s        belongs to edge StateEdge[s], reads belief StateVarState[s]
//	message slot        SlotV2F(e) = 2e, SlotF2V(e) = 2e+1
//
// Edges are grouped by kind (ascending), factors keep insertion order inside
// a kind and positions keep scope order inside a factor, so the layout is a
// pure function of the graph structure.

package wiring

import (
	"github.com/katalvlaran/loopy/core"
	"github.com/katalvlaran/loopy/kernel"
)

// Direction of a message slot.
type Direction uint8

const (
	// VariableToFactor messages flow from a variable into a factor.
	VariableToFactor Direction = iota
	// FactorToVariable messages flow from a factor into a variable.
	FactorToVariable
)

// String returns "v2f" or "f2v".
func (d Direction) String() string {
	if d == VariableToFactor {
		return "v2f"
	}

	return "f2v"
}

// Group is the contiguous block of edges and edge-states owned by one kind.
type Group struct {
	Kind    core.Kind
	Factors []core.FactorRef
	EdgeLo  int // first edge of the group
	EdgeHi  int // one past the last edge
	StateLo int // first edge-state of the group
	StateHi int // one past the last edge-state
	Plan    kernel.Plan
}

// Wiring is the compiled, read-only form of a factor graph. Exported slices
// must not be modified; a Wiring is shared by every run that uses it.
type Wiring struct {
	// Variables is a snapshot of the graph's variables, indexed by VariableRef.
	Variables []core.Variable

	// Factors is a snapshot of the graph's factors, indexed by FactorRef.
	Factors []core.Factor

	VarCard      []int
	VarStart     []int // len = NumVariables()+1
	NumVarStates int

	EdgeVar       []core.VariableRef
	EdgeFactor    []core.FactorRef
	EdgePos       []int
	EdgeCard      []int
	EdgeStart     []int // len = NumEdges()+1
	NumEdgeStates int

	// FactorEdge[f] is the edge of scope position 0 of factor f; the factor's
	// edges are FactorEdge[f] .. FactorEdge[f]+arity-1.
	FactorEdge []int

	StateEdge     []int
	StateVarState []int

	Groups []Group

	varEdges [][]int
}

// NumVariables returns the number of variables.
func (w *Wiring) NumVariables() int { return len(w.VarCard) }

// NumFactors returns the number of factors.
func (w *Wiring) NumFactors() int { return len(w.Factors) }

// NumEdges returns the number of edges.
func (w *Wiring) NumEdges() int { return len(w.EdgeVar) }

// NumSlots returns the number of directed message slots (2 per edge).
func (w *Wiring) NumSlots() int { return 2 * len(w.EdgeVar) }

// SlotV2F returns the slot of the variable-to-factor message on edge e.
func SlotV2F(e int) int { return 2 * e }

// SlotF2V returns the slot of the factor-to-variable message on edge e.
func SlotF2V(e int) int { return 2*e + 1 }

// Slot decodes a slot index into its edge and direction.
func Slot(slot int) (edge int, dir Direction) {
	return slot / 2, Direction(slot % 2)
}

// EdgeOf returns the edge connecting factor f at scope position pos.
func (w *Wiring) EdgeOf(f core.FactorRef, pos int) (int, error) {
	if f < 0 || int(f) >= len(w.Factors) {
		return -1, ErrUnknownFactor
	}
	if pos < 0 || pos >= len(w.Factors[f].Scope) {
		return -1, ErrUnknownFactor
	}

	return w.FactorEdge[f] + pos, nil
}

// EdgesOf returns the edges incident to variable v in ascending edge order.
func (w *Wiring) EdgesOf(v core.VariableRef) ([]int, error) {
	if v < 0 || int(v) >= len(w.varEdges) {
		return nil, ErrUnknownVariable
	}

	return append([]int(nil), w.varEdges[v]...), nil
}

// StateRange returns the edge-state range [lo, hi) of edge e.
func (w *Wiring) StateRange(e int) (lo, hi int) {
	return w.EdgeStart[e], w.EdgeStart[e+1]
}

// VarRange returns the belief-state range [lo, hi) of variable v.
func (w *Wiring) VarRange(v core.VariableRef) (lo, hi int) {
	return w.VarStart[v], w.VarStart[v+1]
}

// Stats summarizes the compiled layout.
type Stats struct {
	Variables      int
	Factors        int
	Edges          int
	VariableStates int
	EdgeStates     int
	Groups         int
	PlanEntries    int
	ByKind         map[core.Kind]int
}

// Stats returns a summary of the layout sizes.
func (w *Wiring) Stats() Stats {
	st := Stats{
		Variables:      w.NumVariables(),
		Factors:        w.NumFactors(),
		Edges:          w.NumEdges(),
		VariableStates: w.NumVarStates,
		EdgeStates:     w.NumEdgeStates,
		Groups:         len(w.Groups),
		ByKind:         make(map[core.Kind]int, len(w.Groups)),
	}
	for _, g := range w.Groups {
		st.ByKind[g.Kind] = len(g.Factors)
		st.PlanEntries += g.Plan.Entries()
	}

	return st
}
