// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   - Options are functional (type BuilderOption func(*builderConfig)).
//   - Option constructors validate and PANIC on meaningless inputs;
//     constructors themselves never panic.
//   - Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import "math/rand"

// BuilderOption customizes the behavior of a constructor by mutating a
// builderConfig instance before graph construction begins.
type BuilderOption func(*builderConfig)

// WithNameScheme sets the deterministic variable naming function.
// Panics on nil.
func WithNameScheme(fn NameFn) BuilderOption {
	if fn == nil {
		panic("builder: WithNameScheme(nil)")
	}
	return func(c *builderConfig) {
		c.nameFn = fn
	}
}

// WithRand provides an explicit RNG for stochastic builders.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
// Seed 0 maps to a fixed default stream.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rngFromSeed(seed)
	}
}

// WithCouplingFn overrides the per-factor coupling generator. The function
// receives the (possibly nil) RNG. Panics on nil.
func WithCouplingFn(fn CouplingFn) BuilderOption {
	if fn == nil {
		panic("builder: WithCouplingFn(nil)")
	}
	return func(c *builderConfig) {
		c.couplingFn = fn
	}
}

// WithCoupling is shorthand for WithCouplingFn(ConstantCouplingFn(j)).
func WithCoupling(j float64) BuilderOption {
	return WithCouplingFn(ConstantCouplingFn(j))
}

// WithCardinality sets the domain size of generated variables (k ≥ 2).
func WithCardinality(k int) BuilderOption {
	if k < 2 {
		panic("builder: WithCardinality(k<2)")
	}
	return func(c *builderConfig) {
		c.card = k
	}
}

// WithAmplitude sets the evidence scale A (>0) used by the evidence generators.
func WithAmplitude(A float64) BuilderOption {
	if !(A > 0) {
		panic("builder: WithAmplitude(A<=0)")
	}
	return func(c *builderConfig) {
		c.amplitude = A
	}
}

// WithPartitionPrefix sets CompleteBipartite side names (left/right).
// Empty values mean "use defaults".
func WithPartitionPrefix(left, right string) BuilderOption {
	return func(c *builderConfig) {
		c.leftPrefix, c.rightPrefix = left, right
	}
}
