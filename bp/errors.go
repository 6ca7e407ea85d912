// SPDX-License-Identifier: MIT

package bp

import (
	"errors"

	"github.com/katalvlaran/loopy/core"
)

var (
	// ErrShapeMismatch indicates evidence or warm-start messages whose shape
	// disagrees with the wiring. It is core.ErrShapeMismatch.
	ErrShapeMismatch = core.ErrShapeMismatch

	// ErrInvalidEvidence indicates NaN or +Inf evidence, or a variable whose
	// every state is clamped out (-Inf).
	ErrInvalidEvidence = errors.New("bp: invalid evidence")

	// ErrInvalidOption indicates an Options value outside its documented range.
	ErrInvalidOption = errors.New("bp: invalid option")

	// ErrNonFinite indicates a NaN or +Inf message after an update; the run
	// is aborted.
	ErrNonFinite = errors.New("bp: non-finite message")

	// ErrPlanFailed indicates a factor plan that panicked on an out-of-range
	// index or mismatched buffer during an update.
	ErrPlanFailed = errors.New("bp: factor plan failed")

	// ErrNilWiring indicates a nil *wiring.Wiring.
	ErrNilWiring = errors.New("bp: nil wiring")
)
