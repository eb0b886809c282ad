package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/futuroptimist/strider/internal/analysis"
	"github.com/futuroptimist/strider/internal/config"
	"github.com/futuroptimist/strider/internal/drive"
	"github.com/futuroptimist/strider/internal/metrics"
	"github.com/futuroptimist/strider/internal/storage"
	"github.com/futuroptimist/strider/internal/terrain"
	"github.com/futuroptimist/strider/internal/viz"
	"github.com/futuroptimist/strider/internal/walker"
)

var (
	dataDir  string
	dt       float64
	duration float64
	speed    float64
	turn     float64
	seed     int64
	// Config file
	configFile string
	// Preset name
	preset string
	// Plot selection
	series string
	// Ensemble size
	numRuns int
	// Output toggles
	asJSON    bool
	showPlots bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "strider",
		Short: "avatar locomotion sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive picker when no command given
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".strider", "data directory")

	walkCmd := &cobra.Command{
		Use:   "walk [terrain]",
		Short: "run a walk and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWalk,
	}
	walkCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	walkCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	walkCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "forward speed")
	walkCmd.Flags().Float64Var(&turn, "turn", 0.0, "angular speed")
	walkCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	walkCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	walkCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	walkCmd.Flags().BoolVar(&asJSON, "json", false, "print the full run as JSON instead of saving")
	walkCmd.Flags().BoolVar(&showPlots, "plot", false, "print ASCII charts after the run")

	liveCmd := &cobra.Command{
		Use:   "live [terrain]",
		Short: "walk with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "forward speed")
	liveCmd.Flags().Float64Var(&turn, "turn", 0.0, "angular speed")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded walks",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded walk",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "", "single series to plot (default: offsets and weights)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export walk metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [out.csv]",
		Short: "copy a walk's frame table to a CSV file",
		Args:  cobra.ExactArgs(2),
		RunE:  exportCSV,
	}

	gaitCmd := &cobra.Command{
		Use:   "gait [run_id]",
		Short: "stride statistics for a recorded walk",
		Args:  cobra.ExactArgs(1),
		RunE:  gaitRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [terrain]",
		Short: "benchmark stepping throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchTerrain,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [terrain]",
		Short: "run many walks concurrently and compare",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of concurrent walks")
	ensembleCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	ensembleCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	ensembleCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "forward speed")
	ensembleCmd.Flags().Int64Var(&seed, "seed", 1, "seed of the first run")

	presetsCmd := &cobra.Command{
		Use:   "presets [terrain]",
		Short: "list available presets for a terrain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for terrain: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	terrainsCmd := &cobra.Command{
		Use:   "terrains",
		Short: "list built-in terrains",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range terrain.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(walkCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd,
		gaitCmd, benchCmd, ensembleCmd, presetsCmd, terrainsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig builds the effective config from preset, config file and
// flags, in rising precedence.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	terrainName := ""
	if len(args) > 0 {
		terrainName = args[0]
	}

	if preset != "" {
		if terrainName == "" {
			return nil, fmt.Errorf("presets need a terrain argument")
		}
		p := config.GetPreset(terrainName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)",
				preset, config.ListPresets(terrainName))
		}
		copied := *p
		cfg = &copied
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if terrainName != "" {
		cfg.Terrain.Name = terrainName
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("speed") {
		cfg.Drive = config.DriveConfig{Mode: "constant", Linear: speed, Angular: turn, MaxSpeed: cfg.Drive.MaxSpeed}
	} else if cmd.Flags().Changed("turn") {
		cfg.Drive.Mode = "constant"
		cfg.Drive.Angular = turn
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

func runWalk(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	w, err := cfg.BuildWalker()
	if err != nil {
		return err
	}
	defer w.Dispose()

	w.AddMetric(metrics.NewCadence())
	w.AddMetric(metrics.NewSettle())
	w.AddMetric(metrics.NewPelvisSway())
	w.AddMetric(metrics.NewBlendMass())

	fmt.Printf("walking %s terrain...\n", w.Field().Name())
	start := time.Now()

	result, err := w.Run(context.Background(), cfg.RunConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if asJSON {
		return storage.ExportJSONStdout(w.Field().Name(), cfg.Dt, cfg.Duration, result)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(w.Field().Name(), cfg.Dt, cfg.Duration, cfg.Seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("contacts: %d\n", len(result.Contacts))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	fmt.Println()
	fmt.Print(viz.GaitSummary(analysis.Gait(result.Contacts)))

	if showPlots {
		fmt.Println()
		fmt.Print(viz.PlotRun(result, 80, 10))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	terrainName := "flat"
	if len(args) > 0 {
		terrainName = args[0]
	}

	src := drive.NewConstant(speed, turn)
	build := func() (*walker.Walker, error) {
		field, err := terrain.NewField(terrainName)
		if err != nil {
			return nil, err
		}
		return walker.New(field, src, walker.Options{})
	}

	w, err := build()
	if err != nil {
		return err
	}
	return viz.RunLive(w, dt, build, src)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no walks found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTERRAIN\tTIME\tDURATION\tDT\tSTEPS\tCONTACTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Terrain,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			run.Contacts,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("terrain: %s\n", meta.Terrain)
	fmt.Printf("samples: %d\n\n", meta.Steps)

	names := []string{"left_offset", "right_offset", "pelvis_offset", "w_walk", "w_run"}
	if series != "" {
		names = []string{series}
	}

	for _, name := range names {
		data, ok := frames[name]
		if !ok || len(data) < 2 {
			if series != "" {
				return fmt.Errorf("series %q not in run (columns: frames.csv header)", name)
			}
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return printJSON(meta)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID, outPath := args[0], args[1]

	src, err := os.Open(storage.New(dataDir).FramesPath(runID))
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func gaitRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	contacts, err := st.LoadContacts(args[0])
	if err != nil {
		return err
	}
	fmt.Print(viz.GaitSummary(analysis.Gait(contacts)))
	return nil
}

func benchTerrain(cmd *cobra.Command, args []string) error {
	terrainName := "flat"
	if len(args) > 0 {
		terrainName = args[0]
	}

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.004, 0.016, 0.033}

	fmt.Printf("benchmarking %s\n\n", terrainName)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, stepDt := range dts {
			field, err := terrain.NewField(terrainName)
			if err != nil {
				return err
			}
			wk, err := walker.New(field, drive.NewConstant(1.2, 0.1), walker.Options{})
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := wk.Run(context.Background(), walker.Config{Dt: stepDt, Duration: dur})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			wk.Dispose()

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, stepDt, result.StepsTaken, elapsed, stepsPerSec)
		}
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	terrainName := "flat"
	if len(args) > 0 {
		terrainName = args[0]
	}

	build := func(memberSeed int64) (*walker.Walker, error) {
		field, err := terrain.NewField(terrainName)
		if err != nil {
			return nil, err
		}
		w, err := walker.New(field, drive.NewConstant(speed, 0), walker.Options{})
		if err != nil {
			return nil, err
		}
		w.AddMetric(metrics.NewCadence())
		w.AddMetric(metrics.NewSettle())
		return w, nil
	}

	ens := walker.NewEnsemble(build, numRuns, seed)

	fmt.Printf("running %d walks on %s...\n", numRuns, terrainName)
	start := time.Now()
	results, err := ens.Run(context.Background(), walker.Config{Dt: dt, Duration: duration, Seed: seed})
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTEPS\tCONTACTS\tCADENCE\tSETTLE")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.3f\t%.5f\n",
			i, r.StepsTaken, len(r.Contacts), r.Metrics["cadence"], r.Metrics["settle"])
	}
	return w.Flush()
}
