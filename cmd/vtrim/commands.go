package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/vtrim/internal/analysis"
	"github.com/san-kum/vtrim/internal/config"
	"github.com/san-kum/vtrim/internal/export"
	"github.com/san-kum/vtrim/internal/metrics"
	"github.com/san-kum/vtrim/internal/optim"
	"github.com/san-kum/vtrim/internal/storage"
	"github.com/san-kum/vtrim/internal/trim"
	"github.com/san-kum/vtrim/internal/viz"
)

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, model, err := setup(cmd)
	if err != nil {
		return err
	}

	solver := newSolver(cfg.Solver)
	tr := metrics.NewTrace()
	solver.AddObserver(tr)

	res, err := solver.Solve(model, cfg.Solver.InitialGuess, cfg.Solver.Incidence)
	if err != nil {
		return err
	}
	stab, err := trim.EvaluateStability(model, res, cfg.Solver.Incidence, cfg.Solver.Perturbation)
	if err != nil {
		return err
	}

	if !res.Converged {
		logger.Warn("trim did not converge",
			slog.Int("iterations", res.Iterations),
			slog.Float64("residual", res.ResidualMoment))
	}

	breakdown := model.Terms(res.TailAngleDeg, cfg.Solver.Incidence)
	report := viz.Report{
		Name:         cfg.Name,
		DataFile:     cfg.DataFile,
		Samples:      model.Table.Len(),
		IncidenceDeg: cfg.Solver.Incidence,
		Trim:         res,
		Stability:    stab,
		Breakdown:    &breakdown,
	}
	if plain {
		fmt.Print(viz.PlainReport(report))
	} else {
		fmt.Println(viz.RenderReport(report, viz.GetTheme(themeName)))
	}

	if trace && len(tr.Moments()) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(tr.Moments(),
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("|Cm| per newton iteration"),
		))
	}

	if !save {
		return nil
	}
	st := storage.New(runsDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(&storage.Run{Meta: storage.RunMetadata{
		Kind:      "solve",
		Preset:    cfg.Name,
		DataFile:  cfg.DataFile,
		Samples:   model.Table.Len(),
		Aircraft:  cfg.Aircraft,
		Solver:    cfg.Solver,
		Trim:      res,
		Stability: &stab,
	}})
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Printf("\nsaved: %s\n", runID)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, model, err := setup(cmd)
	if err != nil {
		return err
	}
	if plotPath != "" {
		if err := export.CheckFormat(plotPath); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	points, err := analysis.Sweep(ctx, model, newSolver(cfg.Solver), analysis.SweepConfig{
		From:         cfg.Sweep.From,
		To:           cfg.Sweep.To,
		Steps:        cfg.Sweep.Steps,
		InitialGuess: cfg.Solver.InitialGuess,
		Perturbation: cfg.Solver.Perturbation,
		Workers:      cfg.Sweep.Workers,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INCIDENCE\tTAIL ANGLE\tRESIDUAL\tITER\tCMA\tRESULT")
	for _, p := range points {
		verdict := "UNSTABLE"
		if p.Stability.Stable {
			verdict = "STABLE"
		}
		iters := fmt.Sprintf("%d", p.Trim.Iterations)
		if !p.Trim.Converged {
			iters += "*"
		}
		fmt.Fprintf(w, "%.3f\t%.5f\t%.3e\t%s\t%.5f\t%s\n",
			p.IncidenceDeg, p.Trim.TailAngleDeg, p.Trim.ResidualMoment,
			iters, p.Stability.DerivativePerDeg, verdict)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	neutral, found := analysis.NeutralIncidence(points)
	if found {
		fmt.Printf("\nneutral incidence: %.4f deg\n", neutral)
	} else {
		fmt.Println("\nno stability boundary in range")
	}

	if len(points) > 1 {
		angles := make([]float64, len(points))
		cma := make([]float64, len(points))
		for i, p := range points {
			angles[i] = p.Trim.TailAngleDeg
			cma[i] = p.Stability.DerivativePerDeg
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(angles,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("trimmed tail angle vs incidence"),
		))
		fmt.Println()
		fmt.Println(asciigraph.Plot(cma,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("Cma vs incidence"),
		))
	}

	if plotPath != "" {
		written, err := export.SweepPlot(points, plotPath)
		if err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		fmt.Printf("\nwrote %s\n", strings.Join(written, ", "))
	}

	if !save {
		return nil
	}
	st := storage.New(runsDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Kind:     "sweep",
		Preset:   cfg.Name,
		DataFile: cfg.DataFile,
		Samples:  model.Table.Len(),
		Aircraft: cfg.Aircraft,
		Solver:   cfg.Solver,
	}
	if found {
		meta.Neutral = &neutral
	}
	runID, err := st.Save(&storage.Run{Meta: meta, Sweep: points})
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Printf("saved: %s\n", runID)
	return nil
}

func runCurve(cmd *cobra.Command, args []string) error {
	cfg, model, err := setup(cmd)
	if err != nil {
		return err
	}
	if curvePoints < 2 {
		return fmt.Errorf("points must be at least 2, got %d", curvePoints)
	}

	curve := analysis.MomentCurve(model, cfg.Solver.Incidence, curveLo, curveHi, curvePoints)
	lo, hi := analysis.Extent(curve)

	fmt.Printf("moment curve at incidence %.3f deg, alpha %.1f..%.1f deg\n", cfg.Solver.Incidence, curveLo, curveHi)
	fmt.Printf("Cm range: %.5f .. %.5f\n\n", lo, hi)
	fmt.Println(asciigraph.Plot(analysis.Moments(curve),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("Cm vs tail angle"),
	))

	fmt.Println()
	roots := analysis.ZeroCrossings(curve)
	if len(roots) == 0 {
		fmt.Println("no trim point in range")
	}
	for _, r := range roots {
		fmt.Printf("trim near %.4f deg\n", r)
	}

	if plotPath != "" {
		if err := export.CurvePlot(curve, cfg.Solver.Incidence, plotPath); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		fmt.Printf("wrote %s\n", plotPath)
	}
	return nil
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	table, err := loadTable(cfg.DataFile)
	if err != nil {
		return err
	}

	samples := table.Samples()
	lo, hi := table.Bounds()
	fmt.Printf("file: %s\n", cfg.DataFile)
	fmt.Printf("points: %d\n", len(samples))
	fmt.Printf("angle range: %.3f .. %.3f deg\n", lo, hi)
	fmt.Printf("order: %s\n", orderStatus(table))

	coeffs := make([]float64, len(samples))
	for i, s := range samples {
		coeffs[i] = s.Coefficient
	}
	if len(coeffs) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(coeffs,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("tail cm_ac by sample"),
		))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(runsDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tPRESET\tTIME\tINCIDENCE\tTAIL ANGLE\tRESULT")

	for _, run := range runs {
		angle, result := "-", "-"
		if run.Trim != nil {
			angle = fmt.Sprintf("%.5f", run.Trim.TailAngleDeg)
		}
		if run.Stability != nil {
			result = "UNSTABLE"
			if run.Stability.Stable {
				result = "STABLE"
			}
		}
		if run.Kind == "sweep" {
			result = fmt.Sprintf("%d points", run.Points)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.3f\t%s\t%s\n",
			run.ID,
			run.Kind,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Solver.Incidence,
			angle,
			result,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(runsDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	if meta.Trim != nil && meta.Stability != nil {
		fmt.Println(viz.RenderReport(viz.Report{
			Name:         meta.Preset,
			DataFile:     meta.DataFile,
			Samples:      meta.Samples,
			IncidenceDeg: meta.Solver.Incidence,
			Trim:         meta.Trim,
			Stability:    *meta.Stability,
		}, viz.GetTheme(themeName)))
		return nil
	}

	points, err := st.LoadSweep(meta.ID)
	if err != nil {
		return err
	}
	fmt.Printf("run: %s (%s)\n", meta.ID, meta.Kind)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("data: %s (%d points)\n", meta.DataFile, meta.Samples)
	if meta.Neutral != nil {
		fmt.Printf("neutral incidence: %.4f deg\n", *meta.Neutral)
	}
	if len(points) > 1 {
		cma := make([]float64, len(points))
		for i, p := range points {
			cma[i] = p.Stability.DerivativePerDeg
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(cma,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("Cma vs incidence"),
		))
	}
	return nil
}

func loadRun(runID string) (*storage.Run, error) {
	st := storage.New(runsDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, err
	}
	points, err := st.LoadSweep(runID)
	if err != nil {
		return nil, err
	}
	return &storage.Run{Meta: *meta, Sweep: points}, nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, run)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(run.Sweep) == 0 {
		return fmt.Errorf("run %s has no sweep data", args[0])
	}
	return storage.ExportCSV(os.Stdout, run.Sweep)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIHEDRAL\tINCIDENCE\tGUESS\tSWEEP")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\t%.1f..%.1f/%d\n",
			name,
			p.Aircraft.DihedralDeg(),
			p.Solver.Incidence,
			p.Solver.InitialGuess,
			p.Sweep.From, p.Sweep.To, p.Sweep.Steps,
		)
	}
	return w.Flush()
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, model, err := setup(cmd)
	if err != nil {
		return err
	}

	m := viz.NewExplorer(viz.ExplorerConfig{
		Model:        model,
		Solver:       newSolver(cfg.Solver),
		IncidenceDeg: cfg.Solver.Incidence,
		GuessDeg:     cfg.Solver.InitialGuess,
		Perturbation: cfg.Solver.Perturbation,
		Step:         0.5,
		Theme:        viz.GetTheme(themeName),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runOptimize(cmd *cobra.Command, args []string) error {
	if len(searchParams) == 0 {
		return fmt.Errorf("at least one --param is required (available: %s)", strings.Join(optim.ParamNames(), ", "))
	}

	names := make([]string, 0, len(searchParams))
	ranges := make([][]float64, 0, len(searchParams))
	for _, arg := range searchParams {
		name, values, err := optim.ParseRange(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	obj, err := optim.ObjectiveByName(objective, targetAngle)
	if err != nil {
		return err
	}

	cfg, model, err := setup(cmd)
	if err != nil {
		return err
	}

	grid, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	logger.Info("grid search", slog.Int("points", grid.Size()), slog.String("objective", objective))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	best, skipped, err := grid.Search(ctx, optim.TrimEvaluator(*cfg, model.Table, obj))
	if err != nil {
		return err
	}

	fmt.Printf("evaluated %d designs, skipped %d\n", grid.Size()-skipped, skipped)
	fmt.Printf("best score (%s): %.6f\n", objective, best.Score)
	for _, name := range names {
		fmt.Printf("  %s = %.4f\n", name, best.Params[name])
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
