package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/vtrim/internal/aero"
	"github.com/san-kum/vtrim/internal/analysis"
	"github.com/san-kum/vtrim/internal/config"
	"github.com/san-kum/vtrim/internal/models"
	"github.com/san-kum/vtrim/internal/trim"
)

var (
	ErrUnknownParam     = errors.New("optim: unknown parameter")
	ErrUnknownObjective = errors.New("optim: unknown objective")
	ErrNotConverged     = errors.New("optim: trim did not converge")
)

var setters = map[string]func(c *config.Config, v float64){
	"dihedral":            func(c *config.Config, v float64) { c.Aircraft = c.Aircraft.WithDihedral(v) },
	"incidence":           func(c *config.Config, v float64) { c.Solver.Incidence = v },
	"guess":               func(c *config.Config, v float64) { c.Solver.InitialGuess = v },
	"cm_prop":             func(c *config.Config, v float64) { c.Aircraft.CmProp = v },
	"volume_longitudinal": func(c *config.Config, v float64) { c.Aircraft.VolumeLongitudinal = v },
	"volume_vertical":     func(c *config.Config, v float64) { c.Aircraft.VolumeVertical = v },
}

// ParamNames lists the parameters Apply understands.
func ParamNames() []string {
	names := make([]string, 0, len(setters))
	for k := range setters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Apply returns a copy of base with params written into it.
func Apply(base config.Config, params map[string]float64) (config.Config, error) {
	cfg := base
	for name, v := range params {
		set, ok := setters[name]
		if !ok {
			return cfg, fmt.Errorf("%w: %s", ErrUnknownParam, name)
		}
		set(&cfg, v)
	}
	return cfg, nil
}

// ParseRange parses "name=lo:hi:n" into a parameter name and n evenly
// spaced values.
func ParseRange(s string) (string, []float64, error) {
	name, bounds, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("optim: range %q: want name=lo:hi:n", s)
	}
	name = strings.TrimSpace(name)
	if _, known := setters[name]; !known {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}

	parts := strings.Split(bounds, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("optim: range %q: want name=lo:hi:n", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("optim: range %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("optim: range %q: %w", s, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("optim: range %q: count must be a positive integer", s)
	}
	return name, analysis.Linspace(lo, hi, n), nil
}

// Objective turns a converged trim and its stability into a score.
type Objective func(res *trim.Result, stab trim.Stability) float64

// Stiffest prefers the most negative Cmα.
func Stiffest(_ *trim.Result, stab trim.Stability) float64 {
	return stab.DerivativePerDeg
}

// TargetAngle prefers trims closest to targetDeg among stable designs.
func TargetAngle(targetDeg float64) Objective {
	return func(res *trim.Result, stab trim.Stability) float64 {
		if !stab.Stable {
			return math.NaN()
		}
		return math.Abs(res.TailAngleDeg - targetDeg)
	}
}

// ObjectiveByName resolves "cma" or "trim".
func ObjectiveByName(name string, targetDeg float64) (Objective, error) {
	switch name {
	case "cma":
		return Stiffest, nil
	case "trim":
		return TargetAngle(targetDeg), nil
	}
	return nil, fmt.Errorf("%w: %s (available: cma, trim)", ErrUnknownObjective, name)
}

// TrimEvaluator scores a design by trimming the V-tail model built from
// base with the candidate parameters applied. Non-converged trims are
// skipped.
func TrimEvaluator(base config.Config, table *aero.Table, objective Objective) EvaluateFunc {
	return func(_ context.Context, params map[string]float64) (float64, error) {
		cfg, err := Apply(base, params)
		if err != nil {
			return 0, err
		}
		if err := cfg.Validate(); err != nil {
			return 0, err
		}

		model := models.NewVTail(cfg.Aircraft, table)
		solver := trim.New(cfg.Solver.Tolerance, cfg.Solver.MaxIterations)
		solver.Step = cfg.Solver.Step
		solver.GradientFloor = cfg.Solver.GradientFloor
		solver.Nudge = cfg.Solver.Nudge

		res, err := solver.Solve(model, cfg.Solver.InitialGuess, cfg.Solver.Incidence)
		if err != nil {
			return 0, err
		}
		if !res.Converged {
			return 0, ErrNotConverged
		}
		stab, err := trim.EvaluateStability(model, res, cfg.Solver.Incidence, cfg.Solver.Perturbation)
		if err != nil {
			return 0, err
		}
		return objective(res, stab), nil
	}
}
