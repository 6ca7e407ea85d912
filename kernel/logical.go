// SPDX-License-Identifier: MIT
// Package: kernel
//
// logical.go - OR / AND constraints over binary variables, child last.
//
// Messages are computed in closed form in O(arity) per factor instead of the
// O(2^arity) enumeration. With d_j = m1_j - m0_j the log-odds of parent j,
// s_j = softplus_T(d_j), S = Σ s_j and S_-j = Σ_{k≠j} s_k:
//
//	child(1) - child(0)   = T·log(exp(S/T) - 1)
//	parent_j(1)           = m_c1 + S_-j
//	parent_j(0)           = m_c0 ⊕ ( m_c1 + T·log(exp(S_-j/T) - 1) )
//
// with ⊕ the temperature log-add. Max-product (T = 0) uses s_j = max(0, d_j)
// and replaces T·log(exp(x/T) - 1) by x + min(0, max_{k} d_k), the
// correction that forbids the all-zero assignment of the remaining parents.
// Each output is expressed relative to the common per-edge offset, which the
// engine removes anyway when it normalizes.
//
// AND is OR with the two states of every variable exchanged (De Morgan);
// the exchange happens once in the compiled index arrays.

package kernel

import (
	"fmt"
	"math"

	"github.com/katalvlaran/loopy/backend"
	"github.com/katalvlaran/loopy/core"
)

// OR evaluates KindOR factors: child = OR(parents).
type OR struct{}

// Kind implements Kernel.
func (OR) Kind() core.Kind { return core.KindOR }

// Flatten implements Kernel: the 2^(arity-1) consistent configurations, potential 0.
func (OR) Flatten(cards []int, p core.Params) (Table, error) {
	return flattenLogical("OR.Flatten", cards, p, false)
}

// Compile implements Kernel.
func (OR) Compile(insts []Instance) (Plan, error) {
	return compileLogical("OR.Compile", insts, false)
}

// AND evaluates KindAND factors: child = AND(parents).
type AND struct{}

// Kind implements Kernel.
func (AND) Kind() core.Kind { return core.KindAND }

// Flatten implements Kernel.
func (AND) Flatten(cards []int, p core.Params) (Table, error) {
	return flattenLogical("AND.Flatten", cards, p, true)
}

// Compile implements Kernel.
func (AND) Compile(insts []Instance) (Plan, error) {
	return compileLogical("AND.Compile", insts, true)
}

// checkLogical validates a logical scope: ≥ 2 binary variables, no params.
func checkLogical(op string, cards []int, p core.Params) error {
	if len(cards) < 2 {
		return fmt.Errorf("%s: arity %d: %w", op, len(cards), core.ErrInvalidScope)
	}
	for i, c := range cards {
		if c != 2 {
			return fmt.Errorf("%s: position %d has %d states: %w", op, i, c, core.ErrShapeMismatch)
		}
	}
	if len(p.Table) != 0 || len(p.Configs) != 0 {
		return fmt.Errorf("%s: unexpected parameters: %w", op, core.ErrShapeMismatch)
	}

	return nil
}

// flattenLogical enumerates parent assignments in row-major order and sets
// the child accordingly. and=true computes AND instead of OR.
func flattenLogical(op string, cards []int, p core.Params, and bool) (Table, error) {
	if err := checkLogical(op, cards, p); err != nil {
		return Table{}, err
	}
	parents := len(cards) - 1
	size, ok := core.JointSize(cards[:parents], core.DefaultMaxTableSize)
	if !ok {
		return Table{}, fmt.Errorf("%s: %d parents: %w", op, parents, core.ErrTableTooLarge)
	}

	tb := Table{Configs: make([][]int, size), LogPotentials: make([]float64, size)}
	for i := 0; i < size; i++ {
		cfg := make([]int, parents+1)
		anyOn, allOn := false, true
		for j := 0; j < parents; j++ {
			bit := (i >> (parents - 1 - j)) & 1
			cfg[j] = bit
			anyOn = anyOn || bit == 1
			allOn = allOn && bit == 1
		}
		if (and && allOn) || (!and && anyOn) {
			cfg[parents] = 1
		}
		tb.Configs[i] = cfg
	}

	return tb, nil
}

// logicalPlan holds the compiled index arrays of a group of OR (or swapped AND) factors.
type logicalPlan struct {
	numFactors   int
	parentS0     []int // message index of parent state "0" (after the AND swap)
	parentS1     []int
	parentFactor []int // local factor of each parent
	parentC0     []int // child state "0" of the owning factor, per parent
	parentC1     []int
	childS0      []int
	childS1      []int
	scratch      *scratchPool
}

const (
	lpM0 = iota
	lpM1
	lpD
	lpS
	lpSex
	lpMC0
	lpMC1
	lpOut0
	lpOut1
	lpTmp
	lpMex
	lpNumParentBufs
)

const (
	lpSum = iota
	lpMaxD
	lpChild0
	lpChild1
	lpNumFactorBufs
)

func compileLogical(op string, insts []Instance, swap bool) (Plan, error) {
	if err := checkInstances(op, insts); err != nil {
		return nil, err
	}
	lo, hi := 0, 1
	if swap {
		lo, hi = 1, 0
	}

	lp := &logicalPlan{numFactors: len(insts)}
	for f, in := range insts {
		if err := checkLogical(op, in.Cards, in.Params); err != nil {
			return nil, fmt.Errorf("factor %d: %w", in.Factor, err)
		}
		child := len(in.Cards) - 1
		c0, c1 := in.StateStart[child]+lo, in.StateStart[child]+hi
		lp.childS0 = append(lp.childS0, c0)
		lp.childS1 = append(lp.childS1, c1)
		for j := 0; j < child; j++ {
			lp.parentS0 = append(lp.parentS0, in.StateStart[j]+lo)
			lp.parentS1 = append(lp.parentS1, in.StateStart[j]+hi)
			lp.parentFactor = append(lp.parentFactor, f)
			lp.parentC0 = append(lp.parentC0, c0)
			lp.parentC1 = append(lp.parentC1, c1)
		}
	}

	sizes := make([]int, 0, lpNumParentBufs+lpNumFactorBufs)
	for i := 0; i < lpNumParentBufs; i++ {
		sizes = append(sizes, len(lp.parentS0))
	}
	for i := 0; i < lpNumFactorBufs; i++ {
		sizes = append(sizes, lp.numFactors)
	}
	lp.scratch = newScratchPool(sizes...)

	return lp, nil
}

// Entries implements Plan.
func (lp *logicalPlan) Entries() int { return len(lp.parentS0) + len(lp.childS0) }

// Indices implements Indexed. Every touched entry is both read and written.
func (lp *logicalPlan) Indices() (reads, writes []int) {
	all := make([]int, 0, 2*(len(lp.parentS0)+len(lp.childS0)))
	all = append(all, lp.parentS0...)
	all = append(all, lp.parentS1...)
	all = append(all, lp.childS0...)
	all = append(all, lp.childS1...)

	return all, all
}

// Update implements Plan.
func (lp *logicalPlan) Update(be backend.Backend, v2f, f2v []float64, temperature float64) error {
	if temperature < 0 || math.IsNaN(temperature) {
		return fmt.Errorf("logical update: temperature %v: %w", temperature, ErrBadInstance)
	}
	bufs := lp.scratch.get()
	defer lp.scratch.put(bufs)
	pb := (*bufs)[:lpNumParentBufs]
	fb := (*bufs)[lpNumParentBufs:]
	nf := lp.numFactors

	be.Gather(pb[lpM0], v2f, lp.parentS0)
	be.Gather(pb[lpM1], v2f, lp.parentS1)
	be.Sub(pb[lpD], pb[lpM1], pb[lpM0])
	be.Map(pb[lpS], pb[lpD], func(d float64) float64 { return backend.Softplus(d, temperature) })
	be.SegmentSum(fb[lpSum], pb[lpS], lp.parentFactor)
	be.SegmentSumExclusive(pb[lpSex], pb[lpS], lp.parentFactor, nf)
	be.Gather(pb[lpMC0], v2f, lp.parentC0)
	be.Gather(pb[lpMC1], v2f, lp.parentC1)
	be.Fill(fb[lpChild0], 0)

	if temperature == 0 {
		be.SegmentReduce(fb[lpMaxD], pb[lpD], lp.parentFactor, 0)
		be.SegmentMaxExclusive(pb[lpMex], pb[lpD], lp.parentFactor, nf)
		be.Map2(fb[lpChild1], fb[lpSum], fb[lpMaxD], addMinZero)
		be.Map2(pb[lpTmp], pb[lpSex], pb[lpMex], addMinZero)
	} else {
		be.Map(fb[lpChild1], fb[lpSum], func(x float64) float64 { return backend.LogExpm1(x, temperature) })
		be.Map(pb[lpTmp], pb[lpSex], func(x float64) float64 { return backend.LogExpm1(x, temperature) })
	}

	be.Add(pb[lpOut1], pb[lpMC1], pb[lpSex])
	be.Add(pb[lpTmp], pb[lpTmp], pb[lpMC1])
	be.Map2(pb[lpOut0], pb[lpMC0], pb[lpTmp], func(a, b float64) float64 { return backend.LogAddExp(a, b, temperature) })

	be.Scatter(f2v, pb[lpOut0], lp.parentS0)
	be.Scatter(f2v, pb[lpOut1], lp.parentS1)
	be.Scatter(f2v, fb[lpChild0], lp.childS0)
	be.Scatter(f2v, fb[lpChild1], lp.childS1)

	return nil
}

// addMinZero returns x + min(0, m); -Inf when m is -Inf.
func addMinZero(x, m float64) float64 {
	return x + math.Min(0, m)
}
