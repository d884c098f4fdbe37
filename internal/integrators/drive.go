package integrators

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/hjbgrid/internal/ode"
)

// Options controls one adaptive integration run.
type Options struct {
	// Tolerance bounds the scaled local error of each accepted step.
	Tolerance float64
	// InitialStep is the magnitude of the first trial step.
	InitialStep float64
	// MinStep is the smallest step magnitude before the run aborts.
	MinStep float64
	// MaxSteps caps the number of step attempts.
	MaxSteps int
	// OnStep, if set, is invoked after every accepted step.
	OnStep func(t float64, x ode.State)
}

func (o Options) withDefaults(span float64) Options {
	if o.Tolerance <= 0 {
		o.Tolerance = 1e-8
	}
	if o.InitialStep <= 0 {
		o.InitialStep = span / 100
	}
	if o.MinStep <= 0 {
		o.MinStep = 1e-13 * span
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = 100000
	}
	return o
}

// Drive integrates sys from time `from` to time `to` with error-controlled
// Dormand-Prince stepping and returns the dense solution over the span.
// A backward span (to < from) is integrated with negative step sizes; the
// interval is never reversed and the right-hand side is never re-signed.
//
// Solver failures (tolerance not reachable above MinStep, step budget
// exhausted, NaN/Inf states) abort the run and are returned; nothing is
// retried.
func Drive(ctx context.Context, sys ode.System, x0 ode.State, from, to float64, opts Options) (*ode.Solution, ode.Stats, error) {
	var stats ode.Stats

	if len(x0) != sys.Dim() {
		return nil, stats, fmt.Errorf("%w (state %d, system %d)", ode.ErrDimensionMismatch, len(x0), sys.Dim())
	}
	if from == to {
		return nil, stats, ode.ErrEmptySpan
	}
	if !x0.IsValid() {
		return nil, stats, fmt.Errorf("%w (initial value)", ode.ErrInvalidState)
	}

	span := math.Abs(to - from)
	opts = opts.withDefaults(span)

	dir := 1.0
	if to < from {
		dir = -1
	}
	h := dir * math.Min(opts.InitialStep, span)

	r := NewRK45()
	sol := ode.NewSolution(len(x0))

	x := x0.Clone()
	t := from

	k0 := sys.Derive(x, t)
	stats.Evaluations++
	if err := sol.Append(t, x, k0); err != nil {
		return nil, stats, err
	}
	if opts.OnStep != nil {
		opts.OnStep(t, x)
	}

	eps := 1e-14 * (1 + span)
	step := 0

	for (to-t)*dir > eps {
		select {
		case <-ctx.Done():
			return sol, stats, &ode.SolveError{T: t, Step: step, Wrapped: ctx.Err()}
		default:
		}

		if step >= opts.MaxSteps {
			return sol, stats, &ode.SolveError{T: t, Step: step, Wrapped: ode.ErrTooManySteps}
		}
		step++

		final := false
		if (t+h-to)*dir > 0 {
			h = to - t
			final = true
		}

		xNew, _, k7, errRatio := r.attempt(sys, x, t, h, opts.Tolerance)
		stats.Evaluations += 7

		if errRatio > 1 {
			stats.Rejected++
			h = r.nextStep(h, errRatio)
			if math.Abs(h) < opts.MinStep {
				return sol, stats, &ode.SolveError{T: t, Step: step, Wrapped: ode.ErrStepTooSmall}
			}
			continue
		}

		if !xNew.IsValid() {
			return sol, stats, &ode.SolveError{T: t, Step: step, Wrapped: ode.ErrInvalidState}
		}

		if final {
			t = to
		} else {
			t += h
		}
		x = xNew
		stats.Accepted++
		stats.LastStep = h

		if err := sol.Append(t, x, k7); err != nil {
			return sol, stats, &ode.SolveError{T: t, Step: step, Wrapped: err}
		}
		if opts.OnStep != nil {
			opts.OnStep(t, x)
		}

		h = r.nextStep(h, errRatio)
		if math.Abs(h) < opts.MinStep {
			h = dir * opts.MinStep
		}
	}

	return sol, stats, nil
}
