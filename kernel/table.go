// SPDX-License-Identifier: MIT
// Package: kernel
//
// table.go - the generic enumeration plan shared by Dense, Enumeration and
// any custom kernel that can flatten its factors.
//
// Layout (built once in NewTablePlan):
//
//	pot[c]          log-potential of configuration c (all instances concatenated)
//	entryConfig[e]  configuration owning entry e; one entry per (c, position)
//	entryState[e]   message index of (edge at that position, value in c)
//	entryOut[e]     output slot that entry e contributes to
//	outState[o]     message index written by output slot o
//
// Update:
//
//	in      = v2f[entryState]
//	score   = segsum(in, entryConfig) + pot
//	contrib = score[entryConfig] - in
//	f2v[outState] = reduce_T(contrib, entryOut)
//
// Complexity: O(Σ configs·arity) per Update, fully batched.

package kernel

import (
	"fmt"
	"math"

	"github.com/katalvlaran/loopy/backend"
	"github.com/katalvlaran/loopy/core"
)

// tablePlan is the compiled form of a group of flattened factors.
type tablePlan struct {
	pot         []float64
	entryConfig []int
	entryState  []int
	entryOut    []int
	outState    []int
	scratch     *scratchPool
}

// NewTablePlan compiles insts whose flattened forms are tables[i].
// Configurations with potential -Inf are dropped; an edge value that no
// remaining configuration supports receives -Inf.
func NewTablePlan(insts []Instance, tables []Table) (Plan, error) {
	if err := checkInstances("NewTablePlan", insts); err != nil {
		return nil, err
	}
	if len(insts) != len(tables) {
		return nil, fmt.Errorf("NewTablePlan: %d instances, %d tables: %w", len(insts), len(tables), ErrBadInstance)
	}

	tp := &tablePlan{}
	for i, in := range insts {
		tb := tables[i]
		if len(tb.Configs) != len(tb.LogPotentials) {
			return nil, fmt.Errorf("NewTablePlan: factor %d: %d configs, %d potentials: %w",
				in.Factor, len(tb.Configs), len(tb.LogPotentials), ErrBadInstance)
		}

		// Output slots of this instance: one per (position, value).
		outBase := len(tp.outState)
		posOut := make([]int, len(in.Cards))
		for p, card := range in.Cards {
			posOut[p] = len(tp.outState) - outBase
			for x := 0; x < card; x++ {
				tp.outState = append(tp.outState, in.StateStart[p]+x)
			}
		}

		for c, cfg := range tb.Configs {
			pot := tb.LogPotentials[c]
			if math.IsInf(pot, -1) {
				continue
			}
			if len(cfg) != len(in.Cards) {
				return nil, fmt.Errorf("NewTablePlan: factor %d config %d: %w", in.Factor, c, core.ErrShapeMismatch)
			}
			cIdx := len(tp.pot)
			tp.pot = append(tp.pot, pot)
			for p, x := range cfg {
				if x < 0 || x >= in.Cards[p] {
					return nil, fmt.Errorf("NewTablePlan: factor %d config %d: %w", in.Factor, c, core.ErrShapeMismatch)
				}
				tp.entryConfig = append(tp.entryConfig, cIdx)
				tp.entryState = append(tp.entryState, in.StateStart[p]+x)
				tp.entryOut = append(tp.entryOut, outBase+posOut[p]+x)
			}
		}
	}
	if err := tp.validate(numStates(insts)); err != nil {
		return nil, fmt.Errorf("NewTablePlan: %w: %w", ErrBadInstance, err)
	}
	tp.scratch = newScratchPool(len(tp.entryState), len(tp.pot), len(tp.entryState), len(tp.outState))

	return tp, nil
}

// validate checks the plan's index arrays against each other and, when
// n > 0, the message entries against the buffer length n.
func (tp *tablePlan) validate(n int) error {
	if err := backend.ValidateSegments(tp.entryConfig, len(tp.entryState), len(tp.pot)); err != nil {
		return err
	}
	if err := backend.ValidateSegments(tp.entryOut, len(tp.entryState), len(tp.outState)); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if err := backend.ValidateIndex(tp.entryState, n); err != nil {
		return err
	}

	return backend.ValidateIndex(tp.outState, n)
}

// Indices implements Indexed.
func (tp *tablePlan) Indices() (reads, writes []int) { return tp.entryState, tp.outState }

// Entries implements Plan.
func (tp *tablePlan) Entries() int { return len(tp.entryState) }

// Update implements Plan.
func (tp *tablePlan) Update(be backend.Backend, v2f, f2v []float64, temperature float64) error {
	bufs := tp.scratch.get()
	defer tp.scratch.put(bufs)
	in, score, contrib, out := (*bufs)[0], (*bufs)[1], (*bufs)[2], (*bufs)[3]

	be.Gather(in, v2f, tp.entryState)
	be.SegmentSum(score, in, tp.entryConfig)
	be.Add(score, score, tp.pot)
	be.Gather(contrib, score, tp.entryConfig)
	be.Sub(contrib, contrib, in)
	be.SegmentReduce(out, contrib, tp.entryOut, temperature)
	be.Scatter(f2v, out, tp.outState)

	return nil
}

// compileTables flattens every instance through flatten and builds the plan.
func compileTables(op string, insts []Instance, flatten func([]int, core.Params) (Table, error)) (Plan, error) {
	if err := checkInstances(op, insts); err != nil {
		return nil, err
	}
	tables := make([]Table, len(insts))
	for i, in := range insts {
		tb, err := flatten(in.Cards, in.Params)
		if err != nil {
			return nil, fmt.Errorf("%s: factor %d: %w", op, in.Factor, err)
		}
		tables[i] = tb
	}

	return NewTablePlan(insts, tables)
}

// Dense evaluates KindDense factors over their full joint table.
type Dense struct{}

// Kind implements Kernel.
func (Dense) Kind() core.Kind { return core.KindDense }

// Flatten implements Kernel: every joint configuration in row-major order.
func (Dense) Flatten(cards []int, p core.Params) (Table, error) {
	return flattenDense(cards, p.Table)
}

// Compile implements Kernel.
func (d Dense) Compile(insts []Instance) (Plan, error) {
	return compileTables("Dense.Compile", insts, d.Flatten)
}

// Enumeration evaluates KindEnumeration factors over their listed configurations.
type Enumeration struct{}

// Kind implements Kernel.
func (Enumeration) Kind() core.Kind { return core.KindEnumeration }

// Flatten implements Kernel. A nil potential table means all zeros.
func (Enumeration) Flatten(cards []int, p core.Params) (Table, error) {
	if len(p.Configs) == 0 {
		return Table{}, fmt.Errorf("Enumeration.Flatten: no configurations: %w", core.ErrShapeMismatch)
	}
	pot := p.Table
	if pot == nil {
		pot = make([]float64, len(p.Configs))
	}
	if len(pot) != len(p.Configs) {
		return Table{}, fmt.Errorf("Enumeration.Flatten: %d potentials for %d configs: %w", len(pot), len(p.Configs), core.ErrShapeMismatch)
	}
	tb := Table{Configs: make([][]int, len(p.Configs)), LogPotentials: append([]float64(nil), pot...)}
	for i, cfg := range p.Configs {
		if len(cfg) != len(cards) {
			return Table{}, fmt.Errorf("Enumeration.Flatten: config %d: %w", i, core.ErrShapeMismatch)
		}
		tb.Configs[i] = append([]int(nil), cfg...)
	}

	return tb, nil
}

// Compile implements Kernel.
func (e Enumeration) Compile(insts []Instance) (Plan, error) {
	return compileTables("Enumeration.Compile", insts, e.Flatten)
}

// flattenDense enumerates the row-major joint of cards (last position fastest).
func flattenDense(cards []int, table []float64) (Table, error) {
	size, ok := core.JointSize(cards, len(table))
	if !ok || size != len(table) {
		return Table{}, fmt.Errorf("flatten %v: table has %d entries: %w", cards, len(table), core.ErrShapeMismatch)
	}

	tb := Table{Configs: make([][]int, size), LogPotentials: append([]float64(nil), table...)}
	cfg := make([]int, len(cards))
	for i := 0; i < size; i++ {
		tb.Configs[i] = append([]int(nil), cfg...)
		for p := len(cards) - 1; p >= 0; p-- {
			cfg[p]++
			if cfg[p] < cards[p] {
				break
			}
			cfg[p] = 0
		}
	}

	return tb, nil
}
