// SPDX-License-Identifier: MIT
// Package: backend
//
// Purpose:
//   - Define the numeric-array collaborator used by kernels and the engine:
//     gathers, scatters, segment reductions, broadcasts and distances over
//     flat float64 buffers.
//   - Keep every primitive batched: callers describe WHAT to combine through
//     index arrays computed once at compile time, never by branching per factor.
//
// Determinism:
//   - Implementations must iterate in index order so that repeated calls on the
//     same inputs produce bit-identical outputs.
//
// Conventions:
//   - dst is always the first argument and is fully overwritten unless stated.
//   - Length mismatches are programmer errors and panic (as gonum/floats does);
//     user-facing validation happens at compile time (see validators.go).

package backend

import "math"

// LogFloor is the smallest log value carried in messages. -Inf outputs are
// clamped to it so that later subtractions never produce NaN.
const LogFloor = -1e20

// Backend exposes the vectorized primitives required by the inference engine.
type Backend interface {
	// Name identifies the implementation in logs and traces.
	Name() string

	// Fill sets every dst[i] = v.
	Fill(dst []float64, v float64)

	// Gather sets dst[i] = src[idx[i]].
	Gather(dst, src []float64, idx []int)

	// Scatter sets dst[idx[i]] = src[i]; untouched dst entries keep their value.
	Scatter(dst, src []float64, idx []int)

	// Add sets dst[i] = a[i] + b[i].
	Add(dst, a, b []float64)

	// Sub sets dst[i] = a[i] - b[i].
	Sub(dst, a, b []float64)

	// Map sets dst[i] = fn(src[i]).
	Map(dst, src []float64, fn func(float64) float64)

	// Map2 sets dst[i] = fn(a[i], b[i]).
	Map2(dst, a, b []float64, fn func(x, y float64) float64)

	// SegmentSum sets dst[k] = Σ src[i] over seg[i] == k (empty ⇒ 0).
	SegmentSum(dst, src []float64, seg []int)

	// SegmentSumExclusive sets dst[i] = Σ src[j] over j ≠ i with seg[j] == seg[i],
	// accumulated from both sides so that no subtraction is involved.
	// nseg is the number of segments.
	SegmentSumExclusive(dst, src []float64, seg []int, nseg int)

	// SegmentReduce sets dst[k] to the temperature-scaled log-sum-exp
	// T·log Σ exp(src[i]/T) over seg[i] == k, or to the max when T == 0.
	// Empty segments yield -Inf.
	SegmentReduce(dst, src []float64, seg []int, temperature float64)

	// SegmentMaxExclusive sets dst[i] = max src[j] over j ≠ i with seg[j] == seg[i]
	// (-Inf when i is alone in its segment). nseg is the number of segments.
	SegmentMaxExclusive(dst, src []float64, seg []int, nseg int)

	// NormalizeRanges subtracts from every contiguous range x[off[k]:off[k+1]]
	// its maximum, and returns the largest absolute shift applied.
	NormalizeRanges(x []float64, off []int) float64

	// Blend sets dst[i] = alpha·old[i] + (1-alpha)·computed[i].
	Blend(dst, old, computed []float64, alpha float64)

	// Floor clamps every value below LogFloor (including -Inf) to LogFloor.
	Floor(x []float64)

	// MaxAbsDiff returns max |a[i] - b[i]| (0 for empty inputs).
	MaxAbsDiff(a, b []float64) float64

	// FirstNonFinite returns the first index holding NaN or ±Inf, or -1.
	FirstNonFinite(x []float64) int

	// SoftmaxRanges writes the normalized exponentials of every contiguous
	// range src[off[k]:off[k+1]] into dst.
	SoftmaxRanges(dst, src []float64, off []int)

	// ArgmaxRanges writes into dst[k] the index (relative to off[k]) of the
	// maximum of range k; ties resolve to the lowest index.
	ArgmaxRanges(dst []int, src []float64, off []int)
}

// Default returns the backend used when none is configured.
func Default() Backend { return CPU{} }

// Softplus returns T·log(1 + exp(x/T)) without overflow; T == 0 gives max(0, x).
func Softplus(x, temperature float64) float64 {
	if temperature == 0 {
		return math.Max(0, x)
	}
	z := x / temperature
	if z > softplusCutoff {
		return x + temperature*math.Log1p(math.Exp(-z))
	}

	return temperature * math.Log1p(math.Exp(z))
}

// LogExpm1 returns T·log(exp(x/T) - 1) for x > 0 and -Inf otherwise.
func LogExpm1(x, temperature float64) float64 {
	if x <= 0 || temperature <= 0 {
		return math.Inf(-1)
	}
	z := x / temperature
	if z > softplusCutoff {
		return x + temperature*math.Log1p(-math.Exp(-z))
	}

	return temperature * math.Log(math.Expm1(z))
}

// LogAddExp returns T·log(exp(a/T) + exp(b/T)); T == 0 gives max(a, b).
func LogAddExp(a, b, temperature float64) float64 {
	hi, lo := a, b
	if lo > hi {
		hi, lo = lo, hi
	}
	if temperature == 0 || math.IsInf(lo, -1) {
		return hi
	}

	return hi + Softplus(lo-hi, temperature)
}

// softplusCutoff is the exponent above which exp() is replaced by its asymptote.
const softplusCutoff = 30
