// Package plotting renders datasets, fitted lines and convergence curves
// with gonum/plot. It is a read-only consumer: it borrows datasets and
// histories and never feeds anything back to the solvers.
package plotting

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ndrean/linreg/dataset"
	"github.com/ndrean/linreg/linear"
	"github.com/ndrean/linreg/pkg/errors"
)

// Fit is a named fitted line to overlay on a scatter plot.
type Fit struct {
	Name string
	Coef linear.Coefficients
}

var fitPalette = []color.RGBA{
	{R: 90, G: 180, B: 234, A: 255},
	{R: 0, G: 240, B: 108, A: 255},
	{R: 240, G: 100, B: 20, A: 255},
	{R: 200, G: 20, B: 240, A: 255},
}

// Scatter writes a PNG of the dataset's points with one regression line
// per fit drawn across the x range.
func Scatter(path, title string, ds dataset.Dataset, fits ...Fit) error {
	if ds.Len() == 0 {
		return errors.NewModelError("plotting.Scatter", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Legend.Top = true
	p.Legend.Left = true

	pts := make(plotter.XYs, ds.Len())
	for i := range pts {
		s := ds.Sample(i)
		pts[i].X = s.X
		pts[i].Y = s.Y
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "could not create scatter plot")
	}
	scatter.GlyphStyle.Shape = draw.CrossGlyph{}
	p.Add(scatter)
	p.Legend.Add("data", scatter)

	xMin, xMax, _, _ := scatter.DataRange()
	for i, fit := range fits {
		line, err := plotter.NewLine(plotter.XYs{
			{X: xMin, Y: fit.Coef.At(xMin)},
			{X: xMax, Y: fit.Coef.At(xMax)},
		})
		if err != nil {
			return errors.Wrap(err, "could not create regression line")
		}
		line.Color = fitPalette[i%len(fitPalette)]
		p.Add(line)
		p.Legend.Add(fit.Name, line)
	}

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

// Convergence writes a PNG of the cost curve from a gradient-descent
// history, with the iteration axis log-scaled. The iteration-0 snapshot is
// skipped since it has no logarithm.
func Convergence(path, title string, h linear.History) error {
	pts := make(plotter.XYs, 0, len(h))
	for _, st := range h {
		if st.Iteration < 1 {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(st.Iteration), Y: st.Cost})
	}
	if len(pts) == 0 {
		return errors.NewModelError("plotting.Convergence", "empty history", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "cost"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "could not create convergence line")
	}
	line.Color = fitPalette[0]
	p.Add(line)

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}
