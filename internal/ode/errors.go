package ode

import (
	"errors"
	"fmt"
)

// Domain errors for integration.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive step size fell below the minimum.
	ErrStepTooSmall = errors.New("ode: adaptive step below minimum")

	// ErrTooManySteps indicates the step-count guard was exceeded.
	ErrTooManySteps = errors.New("ode: maximum step count exceeded")

	// ErrOutOfSpan indicates a solution query outside the integrated interval.
	ErrOutOfSpan = errors.New("ode: time outside solution span")

	// ErrDimensionMismatch indicates a state whose length disagrees with the system.
	ErrDimensionMismatch = errors.New("ode: dimension mismatch between state and system")

	// ErrEmptySpan indicates an integration request over a zero-length interval.
	ErrEmptySpan = errors.New("ode: integration span is empty")
)

// SolveError wraps an error with the time and step at which it occurred.
type SolveError struct {
	T       float64
	Step    int
	Wrapped error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.T, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
