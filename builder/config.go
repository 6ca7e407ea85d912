// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Design:
//   - builderConfig is the single source of truth for all builder knobs.
//   - Defaults are deterministic and documented; no globals.
//   - newBuilderConfig applies options in-order (later overrides earlier).
//
// Deterministic defaults:
//   - nameFn      = nil                  (unnamed variables, labels "v<ref>")
//   - rng         = nil                  (pure/deterministic unless seeded)
//   - couplingFn  = DefaultCouplingFn    (constant DefaultCoupling)
//   - card        = 2                    (binary variables)
//   - amplitude   = 1.0                  (evidence noise scale)
//   - leftPrefix  = "L", rightPrefix = "R" (CompleteBipartite names)

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// nameFn maps a variable index to its name; nil leaves variables unnamed.
	nameFn NameFn
	// rng for stochastic choices; nil means "no randomness".
	rng *rand.Rand
	// couplingFn draws the strength of every pairwise factor.
	couplingFn CouplingFn
	// card is the domain size of every variable a constructor adds.
	card int
	// amplitude scales generated evidence.
	amplitude float64

	// CompleteBipartite name prefixes. Empty → defaults resolved below.
	leftPrefix  string
	rightPrefix string
}

// Deterministic defaults.
const (
	defaultCard        = 2
	defaultAmplitude   = 1.0
	defaultLeftPrefix  = "L"
	defaultRightPrefix = "R"
)

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order.
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		couplingFn:  DefaultCouplingFn,
		card:        defaultCard,
		amplitude:   defaultAmplitude,
		leftPrefix:  defaultLeftPrefix,
		rightPrefix: defaultRightPrefix,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.leftPrefix == "" {
		cfg.leftPrefix = defaultLeftPrefix
	}
	if cfg.rightPrefix == "" {
		cfg.rightPrefix = defaultRightPrefix
	}

	return cfg
}

// coupling draws one strength from the configured generator.
func (c builderConfig) coupling() float64 {
	return c.couplingFn(c.rng)
}
