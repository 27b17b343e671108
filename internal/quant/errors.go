package quant

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when an input lies outside the domain of an
// engine operation (negative rates, probabilities outside [0,1], odds <= 1).
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateRate(name string, lambda float64) error {
	if !isFinite(lambda) || lambda < 0 {
		return invalidf("%s must be a finite non-negative rate, got %v", name, lambda)
	}
	return nil
}

func validateOdds(odds float64) error {
	if !isFinite(odds) || odds <= 1 {
		return invalidf("decimal odds must be greater than 1.0, got %v", odds)
	}
	return nil
}
