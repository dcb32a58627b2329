package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/san-kum/vtrim/internal/aero"
	"github.com/san-kum/vtrim/internal/config"
	"github.com/san-kum/vtrim/internal/log"
	"github.com/san-kum/vtrim/internal/metrics"
	"github.com/san-kum/vtrim/internal/models"
	"github.com/san-kum/vtrim/internal/trim"
)

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data") || cfg.DataFile == "" {
		cfg.DataFile = dataFile
	}
	if flags.Changed("incidence") {
		cfg.Solver.Incidence = incidence
	}
	if flags.Changed("guess") {
		cfg.Solver.InitialGuess = guess
	}
	if flags.Changed("tol") {
		cfg.Solver.Tolerance = tolerance
	}
	if flags.Changed("max-iter") {
		cfg.Solver.MaxIterations = maxIter
	}
	if flags.Changed("perturbation") {
		cfg.Solver.Perturbation = perturbation
	}
	if flags.Changed("from") {
		cfg.Sweep.From = sweepFrom
	}
	if flags.Changed("to") {
		cfg.Sweep.To = sweepTo
	}
	if flags.Changed("steps") {
		cfg.Sweep.Steps = sweepSteps
	}
	if flags.Changed("workers") {
		cfg.Sweep.Workers = sweepWorkers
	}
}

// loadTable reads the aerodynamic table and checks its ordering. An
// unordered table is only fatal with --strict.
func loadTable(path string) (*aero.Table, error) {
	table, err := aero.LoadFile(path)
	if err != nil {
		if errors.Is(err, aero.ErrDataUnavailable) {
			return nil, fmt.Errorf("cannot load aerodynamic database: %w", err)
		}
		return nil, fmt.Errorf("aerodynamic data file %q: %w", path, err)
	}

	lo, hi := table.Bounds()
	logger.Info("database loaded",
		slog.String("file", path),
		slog.Int("points", table.Len()),
		slog.Float64("min_angle", lo),
		slog.Float64("max_angle", hi))

	if err := table.CheckOrder(); err != nil {
		if strict {
			return nil, fmt.Errorf("aerodynamic data file %q: %w", path, err)
		}
		logger.Warn("table angles not non-decreasing; interpolation may be wrong", slog.Any("err", err))
	}
	return table, nil
}

// orderStatus describes table ordering for display. Repeated angles are
// allowed.
func orderStatus(table *aero.Table) string {
	if err := table.CheckOrder(); err != nil {
		return err.Error()
	}
	return "non-decreasing"
}

// setup resolves configuration and builds the moment model.
func setup(cmd *cobra.Command) (*config.Config, *models.VTail, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	table, err := loadTable(cfg.DataFile)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("configuration",
		slog.String("name", cfg.Name),
		slog.Float64("dihedral_deg", cfg.Aircraft.DihedralDeg()),
		slog.Float64("incidence", cfg.Solver.Incidence),
		slog.Float64("guess", cfg.Solver.InitialGuess))
	return cfg, models.NewVTail(cfg.Aircraft, table), nil
}

// newSolver builds a solver from sc with the default metrics and a
// debug iteration logger attached.
func newSolver(sc config.SolverConfig) *trim.Solver {
	s := trim.New(sc.Tolerance, sc.MaxIterations)
	s.Step = sc.Step
	s.GradientFloor = sc.GradientFloor
	s.Nudge = sc.Nudge
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	s.AddObserver(log.NewIterationLogger(logger))
	return s
}
