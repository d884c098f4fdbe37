package operator

import (
	"errors"
	"testing"

	"github.com/onsi/gomega"

	"github.com/san-kum/hjbgrid/internal/mesh"
)

func reflectingGrid(t *testing.T, n int) mesh.Grid {
	t.Helper()
	g, err := mesh.Unit(n)
	if err != nil {
		t.Fatalf("grid construction failed: %v", err)
	}
	return g
}

func TestFirstDerivative_Dimensions(t *testing.T) {
	g := reflectingGrid(t, 20)
	d, err := FirstDerivative(g, mesh.ReflectingBarriers())
	if err != nil {
		t.Fatalf("FirstDerivative failed: %v", err)
	}

	r, c := d.Dims()
	if r != 20 || c != 20 {
		t.Errorf("expected 20x20, got %dx%d", r, c)
	}
}

func TestFirstDerivative_ReflectingLowerRow(t *testing.T) {
	om := gomega.NewWithT(t)
	g := reflectingGrid(t, 10)
	d, err := FirstDerivative(g, mesh.ReflectingBarriers())
	om.Expect(err).NotTo(gomega.HaveOccurred())

	// zero-flux closure: the boundary row vanishes entirely
	for j := 0; j < 10; j++ {
		om.Expect(d.At(0, j)).To(gomega.BeZero())
	}

	// interior rows are the plain backward difference and sum to zero
	dx := g.Step()
	for i := 1; i < 10; i++ {
		om.Expect(d.At(i, i-1)).To(gomega.BeNumerically("~", -1/dx, 1e-12))
		om.Expect(d.At(i, i)).To(gomega.BeNumerically("~", 1/dx, 1e-12))
	}
}

func TestSecondDerivative_RowSums(t *testing.T) {
	om := gomega.NewWithT(t)
	g := reflectingGrid(t, 15)
	d, err := SecondDerivative(g, mesh.ReflectingBarriers())
	om.Expect(err).NotTo(gomega.HaveOccurred())

	// conservation: every row of a reflecting second-difference sums to zero
	for i := 0; i < 15; i++ {
		sum := 0.0
		for j := 0; j < 15; j++ {
			sum += d.At(i, j)
		}
		om.Expect(sum).To(gomega.BeNumerically("~", 0, 1e-8), "row %d", i)
	}
}

func TestSecondDerivative_ReflectingEdgeRows(t *testing.T) {
	om := gomega.NewWithT(t)
	g := reflectingGrid(t, 8)
	d, err := SecondDerivative(g, mesh.ReflectingBarriers())
	om.Expect(err).NotTo(gomega.HaveOccurred())

	dx2 := g.Step() * g.Step()
	om.Expect(d.At(0, 0)).To(gomega.BeNumerically("~", -1/dx2, 1e-9))
	om.Expect(d.At(0, 1)).To(gomega.BeNumerically("~", 1/dx2, 1e-9))
	om.Expect(d.At(7, 6)).To(gomega.BeNumerically("~", 1/dx2, 1e-9))
	om.Expect(d.At(7, 7)).To(gomega.BeNumerically("~", -1/dx2, 1e-9))
}

func TestSecondDerivative_AbsorbingEdgeRows(t *testing.T) {
	om := gomega.NewWithT(t)
	g := reflectingGrid(t, 8)
	bc := mesh.BoundaryPair{Lower: mesh.Absorbing, Upper: mesh.Absorbing}
	d, err := SecondDerivative(g, bc)
	om.Expect(err).NotTo(gomega.HaveOccurred())

	dx2 := g.Step() * g.Step()
	om.Expect(d.At(0, 0)).To(gomega.BeNumerically("~", -2/dx2, 1e-9))
	om.Expect(d.At(7, 7)).To(gomega.BeNumerically("~", -2/dx2, 1e-9))
}

func TestGenerator_Combination(t *testing.T) {
	om := gomega.NewWithT(t)
	g := reflectingGrid(t, 12)
	bc := mesh.ReflectingBarriers()

	mu, sigma := -0.1, 0.2
	l, err := Generator(g, bc, mu, sigma)
	om.Expect(err).NotTo(gomega.HaveOccurred())

	d1, _ := FirstDerivative(g, bc)
	d2, _ := SecondDerivative(g, bc)

	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			want := mu*d1.At(i, j) + sigma*sigma/2*d2.At(i, j)
			om.Expect(l.At(i, j)).To(gomega.BeNumerically("~", want, 1e-9), "entry (%d,%d)", i, j)
		}
	}
}

func TestOperators_RejectBadInput(t *testing.T) {
	g := reflectingGrid(t, 5)
	badBC := mesh.BoundaryPair{Lower: mesh.Boundary(42), Upper: mesh.Reflecting}

	if _, err := FirstDerivative(g, badBC); !errors.Is(err, mesh.ErrUnknownBoundary) {
		t.Errorf("expected ErrUnknownBoundary, got %v", err)
	}
	if _, err := SecondDerivative(g, badBC); !errors.Is(err, mesh.ErrUnknownBoundary) {
		t.Errorf("expected ErrUnknownBoundary, got %v", err)
	}
	if _, err := Generator(mesh.Grid{}, mesh.ReflectingBarriers(), 0, 0); !errors.Is(err, mesh.ErrGridTooSmall) {
		t.Errorf("expected ErrGridTooSmall, got %v", err)
	}
}
