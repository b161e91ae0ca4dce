package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/solarsim/internal/config"
	"github.com/san-kum/solarsim/internal/sim"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	configFile string

	dt          float64
	steps       int
	integrator  string
	frameRate   int
	recordEvery int
	pace        bool
	metricsAddr string
	svgFile     string
	fullscreen  bool
	outFile     string
)

// main runs the root command, exiting with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		newLogger().Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "solarsim",
		Short:         "solar system gravity simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".solarsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml), overrides the preset")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a headless simulation and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	simFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "record-every", 1, "store one frame every n steps")
	runCmd.Flags().BoolVar(&pace, "pace", false, "pace steps at --fps instead of running flat out")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "write the final frame to this svg file")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run simulation with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	simFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "run simulation in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	simFlags(guiCmd)
	guiCmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "open fullscreen")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same preset",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	simFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot distance from the origin per body",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbit statistics per body",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export recorded trajectories to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-14s %d bodies, dt %.0fs, %d steps\n", name, len(p.Bodies), p.Timestep, p.Steps)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, compareCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportSVGCmd, presetsCmd)
	return rootCmd
}

// simFlags registers the flags shared by every command that builds a
// simulation. The variables are shared between commands, so only flags the
// user set are read back, through loadConfig.
func simFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultTimestep, "timestep in seconds")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of updates")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, fmt.Sprintf("integrator %v", sim.IntegratorNames()))
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "solarsim",
	})
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", logLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig resolves the config file or the named preset, then applies any
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	} else {
		name := config.DefaultPreset
		if len(args) > 0 {
			name = args[0]
		}
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Timestep = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfg.Name, err)
	}
	return cfg, nil
}
