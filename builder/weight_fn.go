// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// weight_fn.go - coupling-strength generators for pairwise factors.
//
// A CouplingFn draws the strength J of one pairwise factor. Positive J favours
// agreement (ferromagnetic), negative J disagreement. Generators that need
// randomness fall back to DefaultCoupling when the RNG is nil so that a
// missing seed never panics.

package builder

import (
	"fmt"
	"math/rand"
)

// DefaultCoupling is the strength used when no CouplingFn is configured.
const DefaultCoupling = 1.0

// CouplingFn draws one coupling strength.
type CouplingFn func(rng *rand.Rand) float64

// DefaultCouplingFn always returns DefaultCoupling.
func DefaultCouplingFn(_ *rand.Rand) float64 {
	return DefaultCoupling
}

// ConstantCouplingFn always returns j.
func ConstantCouplingFn(j float64) CouplingFn {
	return func(_ *rand.Rand) float64 {
		return j
	}
}

// UniformCouplingFn draws J ~ U[min, max). Panics unless min ≤ max.
func UniformCouplingFn(min, max float64) CouplingFn {
	if max < min {
		panic(fmt.Sprintf("UniformCouplingFn: require min ≤ max, got min=%g, max=%g", min, max))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultCoupling
		}
		return min + rng.Float64()*(max-min)
	}
}

// NormalCouplingFn draws J ~ N(mean, stddev²). Panics if stddev < 0.
// This is the spin-glass setting used to stress loopy propagation.
func NormalCouplingFn(mean, stddev float64) CouplingFn {
	if stddev < 0 {
		panic(fmt.Sprintf("NormalCouplingFn: stddev must be ≥ 0, got %g", stddev))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultCoupling
		}
		return mean + stddev*rng.NormFloat64()
	}
}
