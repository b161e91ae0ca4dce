package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/solarsim/internal/analysis"
	"github.com/san-kum/solarsim/internal/config"
	"github.com/san-kum/solarsim/internal/export"
	"github.com/san-kum/solarsim/internal/gui"
	"github.com/san-kum/solarsim/internal/metrics"
	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/render"
	"github.com/san-kum/solarsim/internal/sim"
	"github.com/san-kum/solarsim/internal/storage"
	"github.com/san-kum/solarsim/internal/viz"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var palette = []string{"#ffd700", "#a9a9a9", "#f5f5f5", "#4f9dde", "#d2691e", "#9acd32"}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger()

	s, err := cfg.Build(logger)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.NewRunner(s)
	runner.AddMetric(metrics.NewEnergy())
	runner.AddMetric(metrics.NewEnergyDrift())
	runner.AddMetric(metrics.NewMomentumDrift())
	runner.AddMetric(metrics.NewMaxDistance())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if metricsAddr != "" {
		exp := metrics.NewExporter()
		runner.AddObserver(exp)
		go func() {
			if err := exp.Serve(ctx, metricsAddr, logger); err != nil {
				logger.Error("metrics server failed", "err", err)
			}
		}()
	}

	rc := sim.RunConfig{Steps: cfg.Steps, RecordEvery: recordEvery}
	if pace {
		fps := cfg.FPS
		if fps <= 0 {
			fps = config.DefaultFPS
		}
		rc.Limiter = rate.NewLimiter(rate.Limit(fps), 1)
	}
	var snapshot *export.SVG
	if svgFile != "" {
		snapshot = export.NewSVG(int(render.DefaultWidth), int(render.DefaultHeight))
		rc.Surface = snapshot
	}

	logger.Info("running", "preset", cfg.Name, "bodies", len(s.Bodies()),
		"steps", cfg.Steps, "dt", cfg.Timestep, "integrator", cfg.Integrator)
	start := time.Now()

	result, runErr := runner.Run(ctx, rc)
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)
	if runErr != nil {
		logger.Warn("run stopped early", "steps", result.StepsTaken, "err", runErr)
	}

	runID, err := st.Save(storage.RunInfo{
		Preset:     cfg.Name,
		Timestep:   cfg.Timestep,
		Integrator: cfg.Integrator,
	}, result)
	if err != nil {
		return err
	}

	if snapshot != nil {
		if err := os.WriteFile(svgFile, []byte(snapshot.String()), 0644); err != nil {
			return err
		}
		logger.Info("wrote snapshot", "file", svgFile, "circles", snapshot.Len())
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d (%.1f days)\n", result.StepsTaken, s.Elapsed()/sim.Day)
	for _, b := range s.Bodies() {
		if step, ok := result.Completed[b.ID()]; ok {
			fmt.Printf("  %s orbit complete at step %d (%.1f days)\n", b.Name(), step, float64(step)*cfg.Timestep/sim.Day)
		}
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	cfg.FitProjection(viz.CanvasSize())

	// the alternate screen owns the terminal, so the simulation stays quiet
	s, err := cfg.Build(log.New(io.Discard))
	if err != nil {
		return err
	}
	return viz.RunLive(s, cfg.Name, cfg.FPS)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger()

	s, err := cfg.Build(logger)
	if err != nil {
		return err
	}
	gui.Run(s, cfg.Name, gui.Options{FPS: cfg.FPS, Fullscreen: fullscreen}, logger)
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	names := args[1:]
	if len(names) == 0 {
		names = sim.IntegratorNames()
	}

	fmt.Printf("comparing integrators on %s\n\n", args[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tENERGY DRIFT\tMOMENTUM DRIFT\tMAX R (AU)\tTIME")

	for _, name := range names {
		cfg, err := loadConfig(cmd, args[:1])
		if err != nil {
			return err
		}
		cfg.Integrator = name

		s, err := cfg.Build(log.New(io.Discard))
		if err != nil {
			return err
		}
		runner := sim.NewRunner(s)
		drift := metrics.NewEnergyDrift()
		momentum := metrics.NewMomentumDrift()
		maxDist := metrics.NewMaxDistance()
		runner.AddMetric(drift)
		runner.AddMetric(momentum)
		runner.AddMetric(maxDist)

		start := time.Now()
		result, err := runner.Run(cmd.Context(), sim.RunConfig{Steps: cfg.Steps, RecordEvery: cfg.Steps})
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		fmt.Fprintf(w, "%s\t%d\t%.3e\t%.3e\t%.3f\t%v\n",
			name, result.StepsTaken, drift.Value(), momentum.Value(), maxDist.Value(), time.Since(start))
	}

	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSTEPS\tDT\tINTEG\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0fs\t%s\t%.2e\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Timestep,
			run.Integrator,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

// loadRun reads a stored run and its tracks.
func loadRun(runID string) (*storage.RunMetadata, []storage.Track, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	tracks, err := st.LoadTracks(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(tracks) == 0 || len(tracks[0].Times) == 0 {
		return nil, nil, fmt.Errorf("run %s: no data", runID)
	}
	return meta, tracks, nil
}

func isStar(meta *storage.RunMetadata, i int) bool {
	return i < len(meta.Bodies) && meta.Bodies[i].Kind == physics.Star.String()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, tracks, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(tracks[0].Times))

	for i, tr := range tracks {
		if isStar(meta, i) {
			continue
		}
		data := analysis.Distances(tr.X, tr.Y)
		for j := range data {
			data[j] /= render.AU
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(tr.Name+" distance (AU)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, tracks, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("orbit analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMIN (AU)\tMAX (AU)\tMEAN (AU)\tECC\tPERIOD (d)\tREVS\tDIR\tTRAIL DONE")

	for i, tr := range tracks {
		if isStar(meta, i) {
			continue
		}
		stats, err := analysis.Orbit(tr.Times, tr.X, tr.Y)
		if err != nil {
			return fmt.Errorf("%s: %w", tr.Name, err)
		}

		period := "-"
		if stats.Period > 0 {
			period = fmt.Sprintf("%.1f", stats.Period/sim.Day)
		}
		dir := "ccw"
		if stats.Direction < 0 {
			dir = "cw"
		}
		done := "-"
		if i < len(meta.Bodies) && meta.Bodies[i].CompletedStep > 0 {
			done = fmt.Sprintf("step %d", meta.Bodies[i].CompletedStep)
		}

		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%s\t%.2f\t%s\t%s\n",
			tr.Name,
			stats.MinRadius/render.AU,
			stats.MaxRadius/render.AU,
			stats.MeanRadius/render.AU,
			stats.Eccentricity,
			period,
			stats.Revolutions,
			dir,
			done,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, tracks, err := loadRun(runID)
	if err != nil {
		return err
	}

	// colours come from the preset when the run still matches it
	strokes := palette
	if p := config.GetPreset(meta.Preset); p != nil && len(p.Bodies) == len(tracks) {
		strokes = make([]string, len(tracks))
		for i, b := range p.Bodies {
			strokes[i] = b.Color
		}
	}

	paths := make([]export.Path, 0, len(tracks))
	for i, tr := range tracks {
		paths = append(paths, export.Path{
			Name:   tr.Name,
			X:      tr.X,
			Y:      tr.Y,
			Stroke: strokes[i%len(strokes)],
		})
	}

	svg := export.TrajectoriesToSVG(paths, 1000, 1000)
	if svg == "" {
		return fmt.Errorf("run %s: nothing to draw", runID)
	}

	out := outFile
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
