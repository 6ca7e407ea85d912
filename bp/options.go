// SPDX-License-Identifier: MIT
// Package: bp
//
// options.go - run configuration.
//
// Contract:
//   - DefaultOptions returns a valid configuration.
//   - Validate never mutates; Run calls it before allocating anything.

package bp

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/loopy/backend"
)

// Mode selects the semiring of the factor update.
type Mode uint8

const (
	// SumProduct computes approximate marginals (reduce = log-sum-exp at Temperature).
	SumProduct Mode = iota
	// MaxProduct computes approximate MAP max-marginals (reduce = max).
	MaxProduct
)

// String returns "sum-product" or "max-product".
func (m Mode) String() string {
	switch m {
	case SumProduct:
		return "sum-product"
	case MaxProduct:
		return "max-product"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode resolves "sum"/"sum-product" and "max"/"max-product".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "sum", "sum-product", "":
		return SumProduct, nil
	case "max", "max-product":
		return MaxProduct, nil
	}

	return 0, fmt.Errorf("ParseMode(%q): %w", s, ErrInvalidOption)
}

// Defaults.
const (
	DefaultMaxIterations        = 200
	DefaultTolerance            = 1e-6
	DefaultDamping              = 0.5
	DefaultTemperature          = 1.0
	DefaultInstabilityThreshold = 1e8
)

// Options controls one inference run.
type Options struct {
	// MaxIterations bounds the number of synchronous sweeps. Must be > 0.
	MaxIterations int

	// Tolerance is the convergence threshold on max |new - old| over all
	// factor-to-variable message entries. Must be > 0.
	Tolerance float64

	// Damping α in [0, 1): new = α·old + (1-α)·computed. 0 disables damping.
	Damping float64

	// Mode selects sum-product or max-product.
	Mode Mode

	// Temperature T > 0 of sum-product; ignored by max-product.
	Temperature float64

	// WarmStart, when non-nil, seeds the factor-to-variable messages.
	WarmStart *Messages

	// InstabilityThreshold is the normalization shift above which an
	// InstabilityWarning is reported. Must be > 0.
	InstabilityThreshold float64

	// Backend executes the numeric primitives; nil selects backend.Default().
	Backend backend.Backend

	// Logger receives run diagnostics; nil selects zap.NewNop().
	Logger *zap.Logger
}

// DefaultOptions returns sum-product at T=1 with moderate damping.
func DefaultOptions() Options {
	return Options{
		MaxIterations:        DefaultMaxIterations,
		Tolerance:            DefaultTolerance,
		Damping:              DefaultDamping,
		Mode:                 SumProduct,
		Temperature:          DefaultTemperature,
		InstabilityThreshold: DefaultInstabilityThreshold,
	}
}

// Validate checks every field against its documented range.
func (o Options) Validate() error {
	if o.MaxIterations <= 0 {
		return fmt.Errorf("MaxIterations=%d must be > 0: %w", o.MaxIterations, ErrInvalidOption)
	}
	if !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 1) {
		return fmt.Errorf("Tolerance=%v must be finite and > 0: %w", o.Tolerance, ErrInvalidOption)
	}
	if !(o.Damping >= 0 && o.Damping < 1) {
		return fmt.Errorf("Damping=%v must be in [0,1): %w", o.Damping, ErrInvalidOption)
	}
	switch o.Mode {
	case SumProduct:
		if !(o.Temperature > 0) || math.IsInf(o.Temperature, 1) {
			return fmt.Errorf("Temperature=%v must be finite and > 0: %w", o.Temperature, ErrInvalidOption)
		}
	case MaxProduct:
	default:
		return fmt.Errorf("Mode=%d: %w", uint8(o.Mode), ErrInvalidOption)
	}
	if !(o.InstabilityThreshold > 0) {
		return fmt.Errorf("InstabilityThreshold=%v must be > 0: %w", o.InstabilityThreshold, ErrInvalidOption)
	}

	return nil
}

// temperature returns the kernel temperature: 0 for max-product.
func (o Options) temperature() float64 {
	if o.Mode == MaxProduct {
		return 0
	}

	return o.Temperature
}

func (o Options) backend() backend.Backend {
	if o.Backend == nil {
		return backend.Default()
	}

	return o.Backend
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}

	return o.Logger
}
