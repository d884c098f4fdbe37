package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Render writes a line plot of the two boundary trajectories to path.
// The image format (png, svg, pdf, ...) is inferred from the extension.
func (s Series) Render(path string) error {
	if len(s.Times) < 2 {
		return fmt.Errorf("%w (got %d)", ErrTooFewSamples, len(s.Times))
	}

	p := plot.New()
	p.Title.Text = "boundary value trajectories"
	p.X.Label.Text = "t"
	p.Y.Label.Text = "v"

	lower := make(plotter.XYs, len(s.Times))
	upper := make(plotter.XYs, len(s.Times))
	for i, t := range s.Times {
		lower[i] = plotter.XY{X: t, Y: s.Lower[i]}
		upper[i] = plotter.XY{X: t, Y: s.Upper[i]}
	}

	err := plotutil.AddLines(p,
		fmt.Sprintf("v(%g,t)", s.Lo), lower,
		fmt.Sprintf("v(%g,t)", s.Hi), upper,
	)
	if err != nil {
		return fmt.Errorf("report: adding lines: %w", err)
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("report: saving plot: %w", err)
	}
	return nil
}
