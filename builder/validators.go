// Package builder provides validation helpers that enforce parameter
// contracts in the constructors. Each returns a sentinel wrapped with the
// constructor name.
package builder

import "fmt"

// validateMin ensures got ≥ min.
// Complexity: O(1).
func validateMin(method, param string, got, min int) error {
	if got < min {
		return fmt.Errorf("%s: %s=%d < min=%d: %w", method, param, got, min, ErrTooFewVariables)
	}

	return nil
}

// validateProbability ensures p ∈ [MinProbability, MaxProbability].
func validateProbability(method string, p float64) error {
	if !(p >= MinProbability && p <= MaxProbability) {
		return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", method, p, MinProbability, MaxProbability, ErrInvalidProbability)
	}

	return nil
}
