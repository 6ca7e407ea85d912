package bp

import "fmt"

// StopReason tells why a run terminated.
type StopReason uint8

const (
	// StopConverged: the last delta fell below Tolerance.
	StopConverged StopReason = iota
	// StopMaxIterations: MaxIterations sweeps ran without converging.
	StopMaxIterations
	// StopCanceled: the context was done at an iteration boundary.
	StopCanceled
)

// String returns the lower-case reason name.
func (r StopReason) String() string {
	switch r {
	case StopConverged:
		return "converged"
	case StopMaxIterations:
		return "max_iterations"
	case StopCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// InstabilityWarning reports a normalization shift above the configured
// threshold. Iteration continues.
type InstabilityWarning struct {
	Iteration int
	Direction string // "v2f" or "f2v"
	Shift     float64
}

// Error lets a warning be logged or wrapped like an error value.
func (w InstabilityWarning) Error() string {
	return fmt.Sprintf("bp: numeric instability at iteration %d (%s shift %.3g)", w.Iteration, w.Direction, w.Shift)
}

// Result is the outcome of one run.
type Result struct {
	// RunID identifies the run in logs and traces.
	RunID string

	// Messages is the final message state.
	Messages *Messages

	Converged  bool
	Iterations int
	Reason     StopReason

	// Delta is the convergence metric of the last sweep (0 when none ran).
	Delta float64

	// Deltas is the metric of every sweep, in order.
	Deltas []float64

	Warnings []InstabilityWarning
}
