package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/vtrim/internal/analysis"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrNoPoints          = errors.New("nothing to plot")
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

var formats = map[string]bool{
	".png": true, ".svg": true, ".pdf": true,
	".eps": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true,
}

// CheckFormat reports whether path has an image extension gonum/plot can
// write.
func CheckFormat(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !formats[ext] {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// SweepPlot writes trimmed tail angle against incidence to path and Cmα
// against incidence to path with a "-cma" suffix. It returns both paths.
func SweepPlot(points []analysis.SweepPoint, path string) ([]string, error) {
	if err := CheckFormat(path); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	trimPts := make(plotter.XYs, len(points))
	cmaPts := make(plotter.XYs, len(points))
	for i, p := range points {
		trimPts[i].X = p.IncidenceDeg
		trimPts[i].Y = p.Trim.TailAngleDeg
		cmaPts[i].X = p.IncidenceDeg
		cmaPts[i].Y = p.Stability.DerivativePerDeg
	}

	p1 := plot.New()
	p1.Title.Text = "Trimmed tail angle"
	p1.X.Label.Text = "incidence (deg)"
	p1.Y.Label.Text = "tail angle (deg)"
	p1.Add(plotter.NewGrid())
	if err := plotutil.AddLinePoints(p1, "trim", trimPts); err != nil {
		return nil, err
	}
	if err := p1.Save(plotWidth, plotHeight, path); err != nil {
		return nil, err
	}

	cmaPath := suffixed(path, "-cma")
	p2 := plot.New()
	p2.Title.Text = "Pitch stiffness"
	p2.X.Label.Text = "incidence (deg)"
	p2.Y.Label.Text = "Cma (1/deg)"
	p2.Add(plotter.NewGrid(), zeroLine())
	if err := plotutil.AddLinePoints(p2, "Cma", cmaPts); err != nil {
		return nil, err
	}
	if err := p2.Save(plotWidth, plotHeight, cmaPath); err != nil {
		return nil, err
	}

	return []string{path, cmaPath}, nil
}

// CurvePlot writes the moment curve f(α) at a fixed incidence.
func CurvePlot(curve []analysis.CurvePoint, incidenceDeg float64, path string) error {
	if err := CheckFormat(path); err != nil {
		return err
	}
	if len(curve) == 0 {
		return ErrNoPoints
	}

	pts := make(plotter.XYs, len(curve))
	for i, c := range curve {
		pts[i].X = c.AlphaDeg
		pts[i].Y = c.Moment
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Pitching moment, incidence %.2f deg", incidenceDeg)
	p.X.Label.Text = "tail angle (deg)"
	p.Y.Label.Text = "Cm"
	p.Add(plotter.NewGrid(), zeroLine())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	if err := plotutil.AddLines(p, line); err != nil {
		return err
	}

	return p.Save(plotWidth, plotHeight, path)
}

func zeroLine() *plotter.Function {
	f := plotter.NewFunction(func(float64) float64 { return 0 })
	f.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	return f
}

func suffixed(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
