package analysis

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/vtrim/internal/trim"
)

// SweepConfig describes an incidence sweep. Steps values evenly spaced
// from From to To inclusive; Workers <= 0 uses GOMAXPROCS.
type SweepConfig struct {
	From         float64
	To           float64
	Steps        int
	InitialGuess float64
	Perturbation float64
	Workers      int
}

// SweepPoint is the trim and stability outcome at one incidence.
type SweepPoint struct {
	IncidenceDeg float64        `json:"incidence_deg"`
	Trim         trim.Result    `json:"trim"`
	Stability    trim.Stability `json:"stability"`
}

// Sweep solves trim and stability at every incidence in cfg. Each point
// runs on a hook-free copy of solver; the model is shared read-only.
// Points come back in incidence order regardless of completion order.
func Sweep(ctx context.Context, model trim.Model, solver *trim.Solver, cfg SweepConfig) ([]SweepPoint, error) {
	if cfg.Steps < 1 {
		return nil, fmt.Errorf("sweep steps must be positive, got %d", cfg.Steps)
	}
	incidences := Linspace(cfg.From, cfg.To, cfg.Steps)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	points := make([]SweepPoint, len(incidences))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, inc := range incidences {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := solver.Bare().Solve(model, cfg.InitialGuess, inc)
			if err != nil {
				return fmt.Errorf("incidence %.3f: %w", inc, err)
			}
			stab, err := trim.EvaluateStability(model, res, inc, cfg.Perturbation)
			if err != nil {
				return fmt.Errorf("incidence %.3f: %w", inc, err)
			}

			points[i] = SweepPoint{IncidenceDeg: inc, Trim: *res, Stability: stab}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// NeutralIncidence interpolates the incidence at which the stability
// derivative first changes sign across a sweep.
func NeutralIncidence(points []SweepPoint) (float64, bool) {
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		da, db := a.Stability.DerivativePerDeg, b.Stability.DerivativePerDeg
		if da == 0 {
			return a.IncidenceDeg, true
		}
		if (da < 0) != (db < 0) && db != da {
			t := da / (da - db)
			return a.IncidenceDeg + t*(b.IncidenceDeg-a.IncidenceDeg), true
		}
	}
	if n := len(points); n > 0 && points[n-1].Stability.DerivativePerDeg == 0 {
		return points[n-1].IncidenceDeg, true
	}
	return 0, false
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}
