// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Call sites attach context with %w ("Cycle: n=2 < min=3: builder: parameter too small").
//   - Option constructors (WithX) panic on programmer error; constructors never do.
//
// Priority when several validations fail:
//   - ErrTooFewVariables, then ErrInvalidProbability, then ErrNeedRandSource,
//     then whatever core returns while adding variables or factors.

package builder

import "errors"

// ErrTooFewVariables indicates that a size parameter (n, rows, cols, side)
// is smaller than the constructor's minimum.
var ErrTooFewVariables = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor or evidence
// generator requires a non-nil *rand.Rand (WithSeed/WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a construction request that cannot be
// carried out (nil graph, nil constructor, nil wiring).
var ErrConstructFailed = errors.New("builder: construction failed")

// ErrBadSize indicates an invalid batch size for the evidence generators.
var ErrBadSize = errors.New("builder: invalid size")
