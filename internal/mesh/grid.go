package mesh

import (
	"errors"
	"fmt"
)

// Domain errors for grid and boundary construction.
var (
	// ErrGridTooSmall indicates fewer than two grid points were requested.
	ErrGridTooSmall = errors.New("mesh: grid needs at least 2 points")

	// ErrBadInterval indicates a degenerate or reversed interval.
	ErrBadInterval = errors.New("mesh: interval upper bound must exceed lower bound")

	// ErrUnknownBoundary indicates an unrecognized boundary-condition variant.
	ErrUnknownBoundary = errors.New("mesh: unknown boundary condition")
)

// Boundary selects how discrete operators close a domain edge.
type Boundary int

const (
	// Reflecting is a zero-flux closure: the ghost node outside the domain
	// mirrors the boundary node, so the one-sided derivative at the edge
	// vanishes.
	Reflecting Boundary = iota

	// Absorbing pins the ghost node to zero (Dirichlet-type closure).
	Absorbing
)

func (b Boundary) String() string {
	switch b {
	case Reflecting:
		return "reflecting"
	case Absorbing:
		return "absorbing"
	default:
		return fmt.Sprintf("boundary(%d)", int(b))
	}
}

// Valid reports whether b is a known variant.
func (b Boundary) Valid() bool {
	return b == Reflecting || b == Absorbing
}

// BoundaryPair holds the closures for the two edges of a 1-D domain.
type BoundaryPair struct {
	Lower Boundary
	Upper Boundary
}

// ReflectingBarriers is the boundary pair used by the value model.
func ReflectingBarriers() BoundaryPair {
	return BoundaryPair{Lower: Reflecting, Upper: Reflecting}
}

// Valid reports whether both edges carry known variants.
func (p BoundaryPair) Valid() bool {
	return p.Lower.Valid() && p.Upper.Valid()
}

// Grid is an immutable uniform grid of n points over [lo, hi].
type Grid struct {
	lo, hi float64
	step   float64
	n      int
}

// NewUniform builds a uniform grid of n points spanning [lo, hi] inclusive.
func NewUniform(n int, lo, hi float64) (Grid, error) {
	if n < 2 {
		return Grid{}, fmt.Errorf("%w (got %d)", ErrGridTooSmall, n)
	}
	if hi <= lo {
		return Grid{}, fmt.Errorf("%w (got [%g, %g])", ErrBadInterval, lo, hi)
	}
	return Grid{
		lo:   lo,
		hi:   hi,
		step: (hi - lo) / float64(n-1),
		n:    n,
	}, nil
}

// Unit builds a uniform grid of n points over [0, 1].
func Unit(n int) (Grid, error) {
	return NewUniform(n, 0, 1)
}

func (g Grid) Len() int      { return g.n }
func (g Grid) Step() float64 { return g.step }
func (g Grid) Lo() float64   { return g.lo }
func (g Grid) Hi() float64   { return g.hi }

// Point returns the i-th grid point. The endpoints are exact.
func (g Grid) Point(i int) float64 {
	if i == g.n-1 {
		return g.hi
	}
	return g.lo + float64(i)*g.step
}

// Points returns a fresh slice of all grid points.
func (g Grid) Points() []float64 {
	xs := make([]float64, g.n)
	for i := range xs {
		xs[i] = g.Point(i)
	}
	return xs
}
