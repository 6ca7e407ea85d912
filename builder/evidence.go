// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// evidence.go - random unary evidence for compiled wirings.
//
// Gumbel evidence (A·G with G = -log(-log U), U ~ U(0,1)) is the perturbation
// used by perturb-and-MAP style randomized tests: every state of every
// variable receives an independent draw.
//
// Determinism:
//   - Draws follow the flat variable-state layout of the wiring.
//   - GumbelBatch derives one independent stream per item from cfg.rng, so
//     item i does not depend on how many items are requested.

package builder

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/loopy/bp"
	"github.com/katalvlaran/loopy/wiring"
)

// GumbelEvidence returns evidence with independent Gumbel(0, A) log-weights,
// A from WithAmplitude (default 1). Requires WithSeed or WithRand.
//
// Complexity: O(NumVarStates).
func GumbelEvidence(w *wiring.Wiring, opts ...BuilderOption) (*bp.Evidence, error) {
	cfg := newBuilderConfig(opts...)
	if w == nil {
		return nil, fmt.Errorf("%s: nil wiring: %w", MethodGumbelEvidence, ErrConstructFailed)
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", MethodGumbelEvidence, ErrNeedRandSource)
	}

	return gumbelEvidence(w, cfg.rng, cfg.amplitude)
}

// GumbelBatch returns n independent Gumbel evidence sets for w, suitable
// for bp.RunBatch.
//
// Complexity: O(n · NumVarStates).
func GumbelBatch(w *wiring.Wiring, n int, opts ...BuilderOption) ([]*bp.Evidence, error) {
	cfg := newBuilderConfig(opts...)
	if w == nil {
		return nil, fmt.Errorf("GumbelBatch: nil wiring: %w", ErrConstructFailed)
	}
	if n < 1 {
		return nil, fmt.Errorf("GumbelBatch: n=%d: %w", n, ErrBadSize)
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("GumbelBatch: %w", ErrNeedRandSource)
	}

	out := make([]*bp.Evidence, n)
	for i := range out {
		ev, err := gumbelEvidence(w, deriveRNG(cfg.rng, uint64(i)), cfg.amplitude)
		if err != nil {
			return nil, fmt.Errorf("GumbelBatch: item %d: %w", i, err)
		}
		out[i] = ev
	}

	return out, nil
}

func gumbelEvidence(w *wiring.Wiring, rng *rand.Rand, amplitude float64) (*bp.Evidence, error) {
	ev := bp.NewEvidence(w)
	for _, v := range w.Variables {
		weights := make([]float64, v.Card)
		for i := range weights {
			weights[i] = amplitude * gumbel(rng)
		}
		if err := ev.Set(v.Ref, weights); err != nil {
			return nil, err
		}
	}

	return ev, nil
}

// gumbel draws one standard Gumbel variate.
func gumbel(rng *rand.Rand) float64 {
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}

	return -math.Log(-math.Log(u))
}
