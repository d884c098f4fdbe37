// Package report extracts display series from a solved value function and
// renders them as terminal charts or image files.
package report

import (
	"errors"
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/hjbgrid/internal/mesh"
	"github.com/san-kum/hjbgrid/internal/ode"
)

// ErrTooFewSamples indicates a report over fewer than two times.
var ErrTooFewSamples = errors.New("report: need at least 2 sample times")

// Series holds the two boundary trajectories v(lo, t) and v(hi, t) over a
// uniform sequence of report times.
type Series struct {
	Times []float64
	Lower []float64
	Upper []float64
	Lo    float64
	Hi    float64
}

// UniformTimes returns n evenly spaced times over [from, to] inclusive.
func UniformTimes(from, to float64, n int) []float64 {
	if n < 2 {
		return nil
	}
	ts := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range ts {
		ts[i] = from + float64(i)*step
	}
	ts[n-1] = to
	return ts
}

// Sample evaluates the dense solution at each time.
func Sample(sol *ode.Solution, times []float64) ([]ode.State, error) {
	out := make([]ode.State, len(times))
	for i, t := range times {
		v, err := sol.At(t)
		if err != nil {
			return nil, fmt.Errorf("report: sampling t=%g: %w", t, err)
		}
		out[i] = v
	}
	return out, nil
}

// BoundarySeries samples the first and last grid-point trajectories at n
// uniform times over the solution span.
func BoundarySeries(sol *ode.Solution, g mesh.Grid, n int) (Series, error) {
	if n < 2 {
		return Series{}, fmt.Errorf("%w (got %d)", ErrTooFewSamples, n)
	}

	from, to := sol.Span()
	times := UniformTimes(from, to, n)

	lower, err := sol.Component(0, times)
	if err != nil {
		return Series{}, err
	}
	upper, err := sol.Component(g.Len()-1, times)
	if err != nil {
		return Series{}, err
	}

	return Series{
		Times: times,
		Lower: lower,
		Upper: upper,
		Lo:    g.Lo(),
		Hi:    g.Hi(),
	}, nil
}

// Chart renders both trajectories as a terminal graph.
func (s Series) Chart(height int) string {
	if height <= 0 {
		height = 12
	}
	return asciigraph.PlotMany(
		[][]float64{s.Lower, s.Upper},
		asciigraph.Height(height),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("v(%g,t) and v(%g,t)", s.Lo, s.Hi)),
	)
}
