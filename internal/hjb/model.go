// Package hjb assembles the discretized linear Hamilton-Jacobi-Bellman
// value model
//
//	rho*v = r(x,t) + mu*dv/dx + (sigma^2/2)*d2v/dx2 + dv/dt
//
// on a 1-D grid. With A = rho*I - L, where L is the discrete generator,
// the terminal value solves A*vT = r(.,T) (stationarity at the horizon)
// and the interior evolves by dv/dt = A*v - r(.,t), integrated backward.
package hjb

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/hjbgrid/internal/mesh"
	"github.com/san-kum/hjbgrid/internal/ode"
	"github.com/san-kum/hjbgrid/internal/operator"
)

var (
	// ErrSingular indicates the terminal system rho*I - L could not be
	// solved reliably (exactly singular or severely ill-conditioned).
	ErrSingular = errors.New("hjb: terminal system is singular or ill-conditioned")

	// ErrNoPayoff indicates a model constructed without a payoff function.
	ErrNoPayoff = errors.New("hjb: payoff function is required")
)

// Payoff is the flow payoff r(x, t), evaluated pointwise on the grid.
type Payoff func(x, t float64) float64

// Params is the immutable parameter bundle of the value model.
type Params struct {
	Mu     float64
	Sigma  float64
	Rho    float64
	Grid   mesh.Grid
	Bounds mesh.BoundaryPair
}

// Model holds the assembled operators. The generator is time-invariant, so
// it is built once here and shared by the terminal solve and the
// right-hand side.
type Model struct {
	params Params
	payoff Payoff
	xs     []float64
	a      *mat.Dense // rho*I - L
}

func NewModel(p Params, r Payoff) (*Model, error) {
	if r == nil {
		return nil, ErrNoPayoff
	}

	l, err := operator.Generator(p.Grid, p.Bounds, p.Mu, p.Sigma)
	if err != nil {
		return nil, fmt.Errorf("hjb: assembling generator: %w", err)
	}

	n := p.Grid.Len()
	a := mat.NewDense(n, n, nil)
	a.Scale(-1, l)
	for i := 0; i < n; i++ {
		a.Set(i, i, a.At(i, i)+p.Rho)
	}

	return &Model{
		params: p,
		payoff: r,
		xs:     p.Grid.Points(),
		a:      a,
	}, nil
}

func (m *Model) Params() Params { return m.params }
func (m *Model) Dim() int       { return len(m.xs) }

// PayoffAt evaluates r(., t) over the grid.
func (m *Model) PayoffAt(t float64) ode.State {
	out := make(ode.State, len(m.xs))
	for i, x := range m.xs {
		out[i] = m.payoff(x, t)
	}
	return out
}

// TerminalValue solves (rho*I - L) v = r(., horizon) for the value at the
// horizon, where the time derivative is taken to vanish. A singular or
// ill-conditioned system is surfaced as ErrSingular, never as NaN output.
func (m *Model) TerminalValue(horizon float64) (ode.State, error) {
	n := len(m.xs)
	b := mat.NewVecDense(n, m.PayoffAt(horizon))

	var v mat.VecDense
	if err := v.SolveVec(m.a, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	out := ode.State(v.RawVector().Data)
	if !out.IsValid() {
		return nil, fmt.Errorf("%w: solve produced NaN/Inf", ErrSingular)
	}
	return out, nil
}

// Derive implements ode.System: dv/dt = (rho*I - L)*v - r(., t).
func (m *Model) Derive(v ode.State, t float64) ode.State {
	n := len(m.xs)
	out := make(ode.State, n)

	ov := mat.NewVecDense(n, out)
	ov.MulVec(m.a, mat.NewVecDense(n, v))
	for i, x := range m.xs {
		out[i] -= m.payoff(x, t)
	}
	return out
}
