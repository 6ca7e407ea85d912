// SPDX-License-Identifier: MIT
// Package: kernel
//
// pairwise.go - two-variable factors.
//
// With two positions the outgoing message to one side only needs the
// incoming message of the other side, so the plan stores one entry per
// (configuration, direction) and skips the score/subtract round trip:
//
//	f2v[own] = reduce_T over other of ( pot[own, other] + v2f[other] )

package kernel

import (
	"fmt"
	"math"

	"github.com/katalvlaran/loopy/backend"
	"github.com/katalvlaran/loopy/core"
)

// Pairwise evaluates KindPairwise factors.
type Pairwise struct{}

// Kind implements Kernel.
func (Pairwise) Kind() core.Kind { return core.KindPairwise }

// Flatten implements Kernel.
func (Pairwise) Flatten(cards []int, p core.Params) (Table, error) {
	if len(cards) != 2 {
		return Table{}, fmt.Errorf("Pairwise.Flatten: arity %d: %w", len(cards), core.ErrInvalidScope)
	}

	return flattenDense(cards, p.Table)
}

// Compile implements Kernel.
func (Pairwise) Compile(insts []Instance) (Plan, error) {
	if err := checkInstances("Pairwise.Compile", insts); err != nil {
		return nil, err
	}

	pp := &pairwisePlan{}
	for _, in := range insts {
		if len(in.Cards) != 2 {
			return nil, fmt.Errorf("Pairwise.Compile: factor %d arity %d: %w", in.Factor, len(in.Cards), ErrBadInstance)
		}
		ca, cb := in.Cards[0], in.Cards[1]
		if len(in.Params.Table) != ca*cb {
			return nil, fmt.Errorf("Pairwise.Compile: factor %d: %w", in.Factor, core.ErrShapeMismatch)
		}

		base := len(pp.outState)
		for p := 0; p < 2; p++ {
			for x := 0; x < in.Cards[p]; x++ {
				pp.outState = append(pp.outState, in.StateStart[p]+x)
			}
		}
		for a := 0; a < ca; a++ {
			for b := 0; b < cb; b++ {
				pot := in.Params.Table[a*cb+b]
				if math.IsInf(pot, -1) {
					continue
				}
				// toward position 0 (value a), reading position 1 (value b)
				pp.entryPot = append(pp.entryPot, pot)
				pp.entryOther = append(pp.entryOther, in.StateStart[1]+b)
				pp.entryOut = append(pp.entryOut, base+a)
				// toward position 1 (value b), reading position 0 (value a)
				pp.entryPot = append(pp.entryPot, pot)
				pp.entryOther = append(pp.entryOther, in.StateStart[0]+a)
				pp.entryOut = append(pp.entryOut, base+ca+b)
			}
		}
	}
	pp.scratch = newScratchPool(len(pp.entryPot), len(pp.outState))

	return pp, nil
}

type pairwisePlan struct {
	entryPot   []float64
	entryOther []int
	entryOut   []int
	outState   []int
	scratch    *scratchPool
}

// Entries implements Plan.
func (pp *pairwisePlan) Entries() int { return len(pp.entryPot) }

// Indices implements Indexed.
func (pp *pairwisePlan) Indices() (reads, writes []int) { return pp.entryOther, pp.outState }

// Update implements Plan.
func (pp *pairwisePlan) Update(be backend.Backend, v2f, f2v []float64, temperature float64) error {
	bufs := pp.scratch.get()
	defer pp.scratch.put(bufs)
	contrib, out := (*bufs)[0], (*bufs)[1]

	be.Gather(contrib, v2f, pp.entryOther)
	be.Add(contrib, contrib, pp.entryPot)
	be.SegmentReduce(out, contrib, pp.entryOut, temperature)
	be.Scatter(f2v, out, pp.outState)

	return nil
}
