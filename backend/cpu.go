// SPDX-License-Identifier: MIT
// Package: backend
//
// cpu.go - single-threaded reference implementation.
//
// Determinism & Performance:
//   - Fixed loop orders (flat 0..n-1); no goroutines, no hidden allocations
//     beyond the O(nseg) scratch of SegmentReduce / SegmentMaxExclusive.
//   - Contiguous-range reductions delegate to gonum/floats.

package backend

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CPU evaluates every primitive with plain loops on the calling goroutine.
// The zero value is ready to use and safe for concurrent use.
type CPU struct{}

// Name implements Backend.
func (CPU) Name() string { return "cpu" }

// Fill implements Backend.
func (CPU) Fill(dst []float64, v float64) {
	for i := range dst {
		dst[i] = v
	}
}

// Gather implements Backend.
func (CPU) Gather(dst, src []float64, idx []int) {
	mustSameLen(len(dst), len(idx))
	for i, j := range idx {
		dst[i] = src[j]
	}
}

// Scatter implements Backend.
func (CPU) Scatter(dst, src []float64, idx []int) {
	mustSameLen(len(src), len(idx))
	for i, j := range idx {
		dst[j] = src[i]
	}
}

// Add implements Backend.
func (CPU) Add(dst, a, b []float64) { floats.AddTo(dst, a, b) }

// Sub implements Backend.
func (CPU) Sub(dst, a, b []float64) { floats.SubTo(dst, a, b) }

// Map implements Backend.
func (CPU) Map(dst, src []float64, fn func(float64) float64) {
	mustSameLen(len(dst), len(src))
	for i, x := range src {
		dst[i] = fn(x)
	}
}

// Map2 implements Backend.
func (CPU) Map2(dst, a, b []float64, fn func(x, y float64) float64) {
	mustSameLen(len(dst), len(a))
	mustSameLen(len(dst), len(b))
	for i := range dst {
		dst[i] = fn(a[i], b[i])
	}
}

// SegmentSum implements Backend.
func (CPU) SegmentSum(dst, src []float64, seg []int) {
	mustSameLen(len(src), len(seg))
	for k := range dst {
		dst[k] = 0
	}
	for i, k := range seg {
		dst[k] += src[i]
	}
}

// SegmentSumExclusive implements Backend.
//
// Implementation:
//   - Forward pass: dst[i] = running prefix sum of its segment.
//   - Backward pass: dst[i] += running suffix sum of its segment.
func (CPU) SegmentSumExclusive(dst, src []float64, seg []int, nseg int) {
	mustSameLen(len(dst), len(src))
	mustSameLen(len(src), len(seg))
	acc := make([]float64, nseg)
	for i, k := range seg {
		dst[i] = acc[k]
		acc[k] += src[i]
	}
	for k := range acc {
		acc[k] = 0
	}
	for i := len(seg) - 1; i >= 0; i-- {
		k := seg[i]
		dst[i] += acc[k]
		acc[k] += src[i]
	}
}

// SegmentReduce implements Backend.
//
// Implementation:
//   - Pass 1: per-segment max (the result itself when temperature is 0).
//   - Pass 2: accumulate exp((x-max)/T) per segment.
//   - Pass 3: dst = max + T·log(acc); segments whose max is -Inf stay -Inf.
func (CPU) SegmentReduce(dst, src []float64, seg []int, temperature float64) {
	mustSameLen(len(src), len(seg))
	negInf := math.Inf(-1)
	for k := range dst {
		dst[k] = negInf
	}
	for i, k := range seg {
		if src[i] > dst[k] {
			dst[k] = src[i]
		}
	}
	if temperature == 0 {
		return
	}

	acc := make([]float64, len(dst))
	for i, k := range seg {
		if m := dst[k]; !math.IsInf(m, -1) {
			acc[k] += math.Exp((src[i] - m) / temperature)
		}
	}
	for k, m := range dst {
		if !math.IsInf(m, -1) {
			dst[k] = m + temperature*math.Log(acc[k])
		}
	}
}

// SegmentMaxExclusive implements Backend.
//
// Implementation:
//   - Track the best and second-best value per segment along with the index
//     of the best; an element that holds the best reads the second-best.
func (CPU) SegmentMaxExclusive(dst, src []float64, seg []int, nseg int) {
	mustSameLen(len(dst), len(src))
	mustSameLen(len(src), len(seg))
	negInf := math.Inf(-1)
	first := make([]float64, nseg)
	second := make([]float64, nseg)
	argFirst := make([]int, nseg)
	for k := 0; k < nseg; k++ {
		first[k], second[k], argFirst[k] = negInf, negInf, -1
	}
	for i, k := range seg {
		x := src[i]
		switch {
		case argFirst[k] < 0 || x > first[k]:
			second[k] = first[k]
			first[k], argFirst[k] = x, i
		case x > second[k]:
			second[k] = x
		}
	}
	for i, k := range seg {
		if argFirst[k] == i {
			dst[i] = second[k]
		} else {
			dst[i] = first[k]
		}
	}
}

// NormalizeRanges implements Backend.
func (CPU) NormalizeRanges(x []float64, off []int) float64 {
	var shift float64
	for k := 0; k+1 < len(off); k++ {
		r := x[off[k]:off[k+1]]
		if len(r) == 0 {
			continue
		}
		m := floats.Max(r)
		if m == 0 || math.IsInf(m, 0) || math.IsNaN(m) {
			continue
		}
		floats.AddConst(-m, r)
		if a := math.Abs(m); a > shift {
			shift = a
		}
	}

	return shift
}

// Blend implements Backend. alpha == 0 copies computed exactly.
func (CPU) Blend(dst, old, computed []float64, alpha float64) {
	mustSameLen(len(dst), len(old))
	mustSameLen(len(dst), len(computed))
	if alpha == 0 {
		copy(dst, computed)
		return
	}
	beta := 1 - alpha
	for i := range dst {
		dst[i] = alpha*old[i] + beta*computed[i]
	}
}

// Floor implements Backend.
func (CPU) Floor(x []float64) {
	for i, v := range x {
		if v < LogFloor {
			x[i] = LogFloor
		}
	}
}

// MaxAbsDiff implements Backend.
func (CPU) MaxAbsDiff(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}

	return floats.Distance(a, b, math.Inf(1))
}

// FirstNonFinite implements Backend.
func (CPU) FirstNonFinite(x []float64) int {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i
		}
	}

	return -1
}

// SoftmaxRanges implements Backend.
func (CPU) SoftmaxRanges(dst, src []float64, off []int) {
	mustSameLen(len(dst), len(src))
	for k := 0; k+1 < len(off); k++ {
		lo, hi := off[k], off[k+1]
		if lo == hi {
			continue
		}
		lse := floats.LogSumExp(src[lo:hi])
		for i := lo; i < hi; i++ {
			dst[i] = math.Exp(src[i] - lse)
		}
	}
}

// ArgmaxRanges implements Backend. floats.MaxIdx returns the first maximum.
func (CPU) ArgmaxRanges(dst []int, src []float64, off []int) {
	mustSameLen(len(dst)+1, len(off))
	for k := 0; k+1 < len(off); k++ {
		lo, hi := off[k], off[k+1]
		if lo == hi {
			dst[k] = -1
			continue
		}
		dst[k] = floats.MaxIdx(src[lo:hi])
	}
}

// mustSameLen panics with ErrDimensionMismatch when a != b.
func mustSameLen(a, b int) {
	if a != b {
		panic(ErrDimensionMismatch)
	}
}
