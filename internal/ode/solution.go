package ode

import (
	"fmt"
	"math"
	"sort"
)

type knot struct {
	t     float64
	x, dx State
}

// Solution is the dense output of one integration run: every accepted step
// is recorded as a (t, x, dx) knot and intermediate times are evaluated by
// cubic Hermite interpolation, so the solution is a continuous function of
// t over the integrated span, in either time direction.
type Solution struct {
	dim   int
	knots []knot
}

func NewSolution(dim int) *Solution {
	return &Solution{dim: dim}
}

// Append records an accepted step. Knot times must be strictly monotone in
// the direction set by the first two appends.
func (s *Solution) Append(t float64, x, dx State) error {
	if len(x) != s.dim || len(dx) != s.dim {
		return fmt.Errorf("%w (dim %d, got %d/%d)", ErrDimensionMismatch, s.dim, len(x), len(dx))
	}
	if n := len(s.knots); n > 0 {
		last := s.knots[n-1].t
		if t == last {
			return fmt.Errorf("ode: duplicate knot time %g", t)
		}
		if n > 1 {
			forward := s.knots[1].t > s.knots[0].t
			if forward != (t > last) {
				return fmt.Errorf("ode: knot time %g breaks monotone order", t)
			}
		}
	}
	s.knots = append(s.knots, knot{t: t, x: x.Clone(), dx: dx.Clone()})
	return nil
}

func (s *Solution) Len() int { return len(s.knots) }
func (s *Solution) Dim() int { return s.dim }

// Span returns the integrated interval as (lo, hi) with lo <= hi,
// regardless of integration direction.
func (s *Solution) Span() (float64, float64) {
	if len(s.knots) == 0 {
		return 0, 0
	}
	a := s.knots[0].t
	b := s.knots[len(s.knots)-1].t
	return math.Min(a, b), math.Max(a, b)
}

// At evaluates the solution at time t by cubic Hermite interpolation on the
// bracketing accepted step. Knot times are returned exactly.
func (s *Solution) At(t float64) (State, error) {
	n := len(s.knots)
	if n == 0 {
		return nil, ErrOutOfSpan
	}
	if n == 1 {
		if t == s.knots[0].t {
			return s.knots[0].x.Clone(), nil
		}
		return nil, fmt.Errorf("%w (t=%g)", ErrOutOfSpan, t)
	}

	lo, hi := s.Span()
	slack := 1e-12 * (1 + hi - lo)
	if t < lo-slack || t > hi+slack {
		return nil, fmt.Errorf("%w (t=%g, span [%g, %g])", ErrOutOfSpan, t, lo, hi)
	}
	t = math.Max(lo, math.Min(hi, t))

	forward := s.knots[1].t > s.knots[0].t
	// first index whose knot time is past t in integration order
	i := sort.Search(n, func(i int) bool {
		if forward {
			return s.knots[i].t >= t
		}
		return s.knots[i].t <= t
	})
	if i == 0 {
		i = 1
	}
	if i == n {
		i = n - 1
	}

	k0, k1 := s.knots[i-1], s.knots[i]
	h := k1.t - k0.t
	u := (t - k0.t) / h

	h00 := (1 + 2*u) * (1 - u) * (1 - u)
	h10 := u * (1 - u) * (1 - u)
	h01 := u * u * (3 - 2*u)
	h11 := u * u * (u - 1)

	out := make(State, s.dim)
	for j := 0; j < s.dim; j++ {
		out[j] = h00*k0.x[j] + h10*h*k0.dx[j] + h01*k1.x[j] + h11*h*k1.dx[j]
	}
	return out, nil
}

// Component samples a single state component at the given times.
func (s *Solution) Component(idx int, times []float64) ([]float64, error) {
	if idx < 0 || idx >= s.dim {
		return nil, fmt.Errorf("%w (component %d of %d)", ErrDimensionMismatch, idx, s.dim)
	}
	out := make([]float64, len(times))
	for i, t := range times {
		x, err := s.At(t)
		if err != nil {
			return nil, err
		}
		out[i] = x[idx]
	}
	return out, nil
}
