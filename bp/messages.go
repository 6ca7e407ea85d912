// SPDX-License-Identifier: MIT

package bp

import (
	"fmt"

	"github.com/katalvlaran/loopy/wiring"
)

// Messages is the complete message state of a run: both directions of every
// edge, each in the edge-state layout of the wiring (EdgeStart).
type Messages struct {
	V2F []float64
	F2V []float64
}

// NewMessages returns all-zero (uniform) messages for w.
func NewMessages(w *wiring.Wiring) *Messages {
	return &Messages{
		V2F: make([]float64, w.NumEdgeStates),
		F2V: make([]float64, w.NumEdgeStates),
	}
}

// Clone returns a deep copy.
func (m *Messages) Clone() *Messages {
	if m == nil {
		return nil
	}

	return &Messages{
		V2F: append([]float64(nil), m.V2F...),
		F2V: append([]float64(nil), m.F2V...),
	}
}

// Check reports ErrShapeMismatch unless m fits w.
func (m *Messages) Check(w *wiring.Wiring) error {
	if m == nil {
		return fmt.Errorf("nil messages: %w", ErrShapeMismatch)
	}
	if len(m.F2V) != w.NumEdgeStates || len(m.V2F) != w.NumEdgeStates {
		return fmt.Errorf("messages have %d/%d states, wiring %d: %w", len(m.V2F), len(m.F2V), w.NumEdgeStates, ErrShapeMismatch)
	}

	return nil
}

// Slot returns the message vector of a slot (see wiring.SlotV2F / SlotF2V).
// The returned slice aliases m.
func (m *Messages) Slot(w *wiring.Wiring, slot int) []float64 {
	e, dir := wiring.Slot(slot)
	lo, hi := w.StateRange(e)
	if dir == wiring.VariableToFactor {
		return m.V2F[lo:hi]
	}

	return m.F2V[lo:hi]
}
