package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/vtrim/internal/config"
	"github.com/san-kum/vtrim/internal/log"
	"github.com/san-kum/vtrim/internal/viz"
)

var (
	dataFile   string
	configFile string
	preset     string
	runsDir    string
	logLevel   string
	logFile    string
	strict     bool

	incidence    float64
	guess        float64
	tolerance    float64
	maxIter      int
	perturbation float64

	sweepFrom    float64
	sweepTo      float64
	sweepSteps   int
	sweepWorkers int

	curveLo     float64
	curveHi     float64
	curvePoints int

	searchParams []string
	objective    string
	targetAngle  float64

	plain     bool
	save      bool
	trace     bool
	plotPath  string
	themeName string

	logger = log.Discard()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "vtrim",
		Short:         "v-tail trim and static stability analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := log.New(logLevel, logFile)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataFile, "data", config.DefaultDataFile, "aerodynamic table file (angle, coefficient pairs)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&runsDir, "runs", ".vtrim", "run store directory")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write JSON logs to a rotated file instead of stderr")
	pf.BoolVar(&strict, "strict", false, "fail when table angles are not finite and non-decreasing")
	pf.StringVar(&themeName, "theme", viz.ThemeCockpit.Name, "color theme")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "trim the aircraft and check static stability",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	addSolverFlags(solveCmd)
	solveCmd.Flags().BoolVar(&plain, "plain", false, "unstyled output")
	solveCmd.Flags().BoolVar(&save, "save", false, "save the run to the store")
	solveCmd.Flags().BoolVar(&trace, "trace", false, "plot |Cm| per newton iteration")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "trim and stability across a range of incidences",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSolverFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", -4, "first incidence (deg)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 4, "last incidence (deg)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 17, "number of incidences")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel solves (0 = GOMAXPROCS)")
	sweepCmd.Flags().BoolVar(&save, "save", false, "save the sweep to the store")
	sweepCmd.Flags().StringVar(&plotPath, "plot", "", "write trim and Cma plots (png, svg, pdf)")

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "plot the pitching moment against tail angle",
		Args:  cobra.NoArgs,
		RunE:  runCurve,
	}
	curveCmd.Flags().Float64Var(&incidence, "incidence", 0, "wing incidence (deg)")
	curveCmd.Flags().Float64Var(&curveLo, "lo", -20, "lowest tail angle (deg)")
	curveCmd.Flags().Float64Var(&curveHi, "hi", 20, "highest tail angle (deg)")
	curveCmd.Flags().IntVar(&curvePoints, "points", 81, "samples along the curve")
	curveCmd.Flags().StringVar(&plotPath, "plot", "", "write the curve plot (png, svg, pdf)")

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "inspect the aerodynamic table",
		Args:  cobra.NoArgs,
		RunE:  runTable,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a sweep to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactively vary incidence and initial guess",
		Args:  cobra.NoArgs,
		RunE:  runExplore,
	}
	addSolverFlags(exploreCmd)

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid search design parameters for stability or a target trim angle",
		Args:  cobra.NoArgs,
		RunE:  runOptimize,
	}
	addSolverFlags(optimizeCmd)
	optimizeCmd.Flags().StringArrayVar(&searchParams, "param", nil, "parameter range name=lo:hi:n (repeatable)")
	optimizeCmd.Flags().StringVar(&objective, "objective", "cma", "objective (cma, trim)")
	optimizeCmd.Flags().Float64Var(&targetAngle, "target", -5, "target tail angle for the trim objective (deg)")

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(solveCmd, sweepCmd, curveCmd, tableCmd, listCmd, showCmd,
		exportCmd, exportCSVCmd, presetsCmd, exploreCmd, optimizeCmd, initCmd)

	err := rootCmd.Execute()
	if err != nil {
		logger.Error("command failed", "err", err)
	}
	_ = logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&incidence, "incidence", 0, "wing incidence (deg)")
	cmd.Flags().Float64Var(&guess, "guess", config.DefaultGuess, "initial tail angle guess (deg)")
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "convergence tolerance on |Cm|")
	cmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "newton iteration limit")
	cmd.Flags().Float64Var(&perturbation, "perturbation", config.DefaultPerturbation, "incidence step for Cma (deg)")
}
