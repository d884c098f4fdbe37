// Package operator assembles finite-difference approximations of the 1-D
// differential operators d/dx and d2/dx2 as dense matrices over a uniform
// grid, with boundary rows adjusted for the requested closure.
package operator

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/hjbgrid/internal/mesh"
)

func check(g mesh.Grid, bc mesh.BoundaryPair) error {
	if g.Len() < 2 {
		return fmt.Errorf("%w (got %d)", mesh.ErrGridTooSmall, g.Len())
	}
	if !bc.Valid() {
		return fmt.Errorf("%w (%v, %v)", mesh.ErrUnknownBoundary, bc.Lower, bc.Upper)
	}
	return nil
}

// FirstDerivative builds the backward-difference approximation of d/dx,
// the upwind choice for non-positive drift: row i is (v_i - v_{i-1})/dx.
//
// At the lower edge the backward difference needs a ghost node. A
// reflecting closure mirrors the boundary node, so the row vanishes; an
// absorbing closure pins the ghost to zero, leaving 1/dx on the diagonal.
// The upper edge needs no ghost under a backward stencil.
func FirstDerivative(g mesh.Grid, bc mesh.BoundaryPair) (*mat.Dense, error) {
	if err := check(g, bc); err != nil {
		return nil, err
	}

	n, dx := g.Len(), g.Step()
	d := mat.NewDense(n, n, nil)

	for i := 1; i < n; i++ {
		d.Set(i, i-1, -1/dx)
		d.Set(i, i, 1/dx)
	}

	switch bc.Lower {
	case mesh.Reflecting:
		// row 0 stays zero: ghost mirrors the node
	case mesh.Absorbing:
		d.Set(0, 0, 1/dx)
	}

	return d, nil
}

// SecondDerivative builds the central-difference approximation of d2/dx2:
// interior row i is (v_{i-1} - 2 v_i + v_{i+1})/dx^2. Reflecting closures
// fold the ghost node back onto the boundary node so every row sums to
// zero; absorbing closures drop the ghost term.
func SecondDerivative(g mesh.Grid, bc mesh.BoundaryPair) (*mat.Dense, error) {
	if err := check(g, bc); err != nil {
		return nil, err
	}

	n, dx := g.Len(), g.Step()
	dx2 := dx * dx
	d := mat.NewDense(n, n, nil)

	for i := 1; i < n-1; i++ {
		d.Set(i, i-1, 1/dx2)
		d.Set(i, i, -2/dx2)
		d.Set(i, i+1, 1/dx2)
	}

	switch bc.Lower {
	case mesh.Reflecting:
		d.Set(0, 0, -1/dx2)
		d.Set(0, 1, 1/dx2)
	case mesh.Absorbing:
		d.Set(0, 0, -2/dx2)
		d.Set(0, 1, 1/dx2)
	}

	switch bc.Upper {
	case mesh.Reflecting:
		d.Set(n-1, n-2, 1/dx2)
		d.Set(n-1, n-1, -1/dx2)
	case mesh.Absorbing:
		d.Set(n-1, n-2, 1/dx2)
		d.Set(n-1, n-1, -2/dx2)
	}

	return d, nil
}

// Generator assembles the infinitesimal generator
//
//	L = mu * D1 + (sigma^2 / 2) * D2
//
// of the diffusion dX = mu dt + sigma dW over the grid. L is
// time-invariant; callers assemble it once and reuse it.
func Generator(g mesh.Grid, bc mesh.BoundaryPair, mu, sigma float64) (*mat.Dense, error) {
	d1, err := FirstDerivative(g, bc)
	if err != nil {
		return nil, err
	}
	d2, err := SecondDerivative(g, bc)
	if err != nil {
		return nil, err
	}

	n := g.Len()
	l := mat.NewDense(n, n, nil)
	d1.Scale(mu, d1)
	d2.Scale(sigma*sigma/2, d2)
	l.Add(d1, d2)
	return l, nil
}
