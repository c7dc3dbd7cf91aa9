package main

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/coilforce/internal/analysis"
	"github.com/san-kum/coilforce/internal/compute"
	"github.com/san-kum/coilforce/internal/config"
	"github.com/san-kum/coilforce/internal/dynamo"
	"github.com/san-kum/coilforce/internal/export"
	"github.com/san-kum/coilforce/internal/force"
	"github.com/san-kum/coilforce/internal/logging"
	"github.com/san-kum/coilforce/internal/storage"
	"github.com/san-kum/coilforce/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool
	summation  string

	// assembly overrides
	magnetFilaments int
	coilTurns       int
	coilLayers      int

	// current sweep
	current float64
	gap     float64
	samples int
	step    float64

	// height sweep
	hStart   int
	hStop    int
	hDivisor float64

	noSave     bool
	pairLimit  int
	outputPath string

	logger *slog.Logger
)

// main registers the coilforce commands and runs the root command, exiting
// with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "coilforce",
		Short:        "magnet and voice coil force model",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.Setup(os.Stderr, debug)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".coilforce", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&summation, "summation", compute.Default,
		"summation strategy ("+strings.Join(compute.Names(), ", ")+")")

	forceCmd := &cobra.Command{
		Use:   "force",
		Short: "compute the axial force for one current and gap",
		RunE:  runForce,
	}
	addAssemblyFlags(forceCmd)
	forceCmd.Flags().Float64Var(&current, "current", config.DefaultCurrent, "coil current (A)")
	forceCmd.Flags().Float64Var(&gap, "gap", config.DefaultGap, "air gap added to the center distance (m)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the coil current at a fixed gap",
		RunE:  runSweep,
	}
	addAssemblyFlags(sweepCmd)
	addCurrentFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&gap, "gap", config.DefaultGap, "air gap added to the center distance (m)")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "do not archive the run")

	heightCmd := &cobra.Command{
		Use:   "height",
		Short: "force constant against magnet height",
		RunE:  runHeight,
	}
	addAssemblyFlags(heightCmd)
	addCurrentFlags(heightCmd)
	addHeightFlags(heightCmd)
	heightCmd.Flags().BoolVar(&noSave, "no-save", false, "do not archive the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "height sweep with live visualization",
		RunE:  runLive,
	}
	addAssemblyFlags(liveCmd)
	addCurrentFlags(liveCmd)
	addHeightFlags(liveCmd)
	liveCmd.Flags().BoolVar(&noSave, "no-save", false, "do not archive the run")

	filamentsCmd := &cobra.Command{
		Use:   "filaments",
		Short: "show the filament discretization",
		RunE:  showFilaments,
	}
	addAssemblyFlags(filamentsCmd)
	filamentsCmd.Flags().Float64Var(&gap, "gap", config.DefaultGap, "air gap added to the center distance (m)")
	filamentsCmd.Flags().IntVar(&pairLimit, "limit", 10, "number of filament pairs to print")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default <run_id>.csv)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run samples and summary to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default <run_id>.json)")

	exportPlotCmd := &cobra.Command{
		Use:   "export-plot [run_id]",
		Short: "render run samples to a PNG, SVG or PDF plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPlot,
	}
	exportPlotCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default <run_id>.png)")

	rootCmd.AddCommand(forceCmd, sweepCmd, heightCmd, liveCmd, filamentsCmd, presetsCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportPlotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addAssemblyFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&magnetFilaments, "nm", dynamo.DefaultMagnetFilaments, "magnet filaments")
	cmd.Flags().IntVar(&coilTurns, "nz", dynamo.DefaultCoilTurns, "coil turns per layer")
	cmd.Flags().IntVar(&coilLayers, "nr", dynamo.DefaultCoilLayers, "coil layers")
}

func addCurrentFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&samples, "samples", analysis.DefaultCurrentSamples, "current samples per sweep")
	cmd.Flags().Float64Var(&step, "step", analysis.DefaultCurrentStep, "current step (A)")
}

func addHeightFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&hStart, "start", analysis.DefaultHeightStart, "first height step")
	cmd.Flags().IntVar(&hStop, "stop", analysis.DefaultHeightStop, "height step to stop before")
	cmd.Flags().Float64Var(&hDivisor, "divisor", analysis.DefaultHeightDivisor, "height steps per meter of gap")
}

// loadConfig resolves defaults, then the preset, then the config file, then
// any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		cfg, err = config.Overlay(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("summation") {
		cfg.Summation = summation
	}
	if flags.Changed("nm") {
		cfg.Assembly.MagnetFilaments = magnetFilaments
	}
	if flags.Changed("nz") {
		cfg.Assembly.CoilTurns = coilTurns
	}
	if flags.Changed("nr") {
		cfg.Assembly.CoilLayers = coilLayers
	}
	if flags.Changed("current") {
		cfg.Sweep.Current = current
	}
	if flags.Changed("gap") {
		cfg.Sweep.Gap = gap
	}
	if flags.Changed("samples") {
		cfg.Sweep.Samples = samples
	}
	if flags.Changed("step") {
		cfg.Sweep.Step = step
	}
	if flags.Changed("start") {
		cfg.Height.Start = hStart
	}
	if flags.Changed("stop") {
		cfg.Height.Stop = hStop
	}
	if flags.Changed("divisor") {
		cfg.Height.Divisor = hDivisor
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newIntegrator(cfg *config.Config) (*force.Integrator, error) {
	integ, err := force.New(cfg.ToAssembly(),
		force.WithSummation(cfg.Summation),
		force.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	for _, w := range integ.Discretizer().Warnings() {
		logger.Warn(w)
	}
	return integ, nil
}

func newAnalyzer(cfg *config.Config) (*analysis.Analyzer, error) {
	integ, err := newIntegrator(cfg)
	if err != nil {
		return nil, err
	}
	return analysis.New(integ, analysis.WithLogger(logger)), nil
}

// signalContext is cancelled on interrupt so long sweeps stop between
// force evaluations.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runForce(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := newIntegrator(cfg)
	if err != nil {
		return err
	}

	z := integ.Assembly().CenterDistance(cfg.Sweep.Gap)
	start := time.Now()
	raw, err := integ.Compute(cfg.Sweep.Current, z)
	if err != nil {
		return err
	}

	fmt.Printf("distance      : %.6g m\n", z)
	fmt.Printf("current       : %g A\n", cfg.Sweep.Current)
	fmt.Printf("evaluations   : %d\n", integ.Evaluations())
	fmt.Printf("force         : %.6f uN\n", -raw)
	fmt.Printf("raw sum       : %.6f uN\n", raw)
	fmt.Printf("execution time: %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	z := a.Integrator().Assembly().CenterDistance(cfg.Sweep.Gap)
	start := time.Now()
	res, err := a.CurrentSweep(ctx, z, cfg.CurrentSweep())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.Info("current sweep done", "z", z, "samples", len(res.Samples), "elapsed", elapsed)

	printSeries(res.Series(), "force (uN) vs current (A)")
	fmt.Printf("Minimum value : %f uN\n", res.Min)
	fmt.Printf("Maximum value : %f uN\n", res.Max)
	fmt.Printf("Linear equation : y = %fx\n", res.Slope)
	for _, name := range slices.Sorted(maps.Keys(res.Metrics)) {
		fmt.Printf("  %-14s %.6g\n", name, res.Metrics[name])
	}
	fmt.Printf("Execution time : %s\n", elapsed.Round(time.Millisecond))

	if noSave {
		return nil
	}
	summary := map[string]float64{
		"z":     res.Z,
		"gap":   cfg.Sweep.Gap,
		"slope": res.Slope,
		"min":   res.Min,
		"max":   res.Max,
	}
	for k, v := range res.Metrics {
		summary[k] = v
	}
	return saveRun("sweep", cfg, res.Series(), summary)
}

func runHeight(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	hcfg := cfg.HeightSweep()
	hcfg.OnPoint = func(p dynamo.HeightPoint, done, total int) {
		logger.Debug("height done", "height", p.Height, "coefficient", p.Coefficient, "progress", fmt.Sprintf("%d/%d", done, total))
	}

	start := time.Now()
	res, err := a.HeightSweep(ctx, hcfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.Info("height sweep done", "heights", len(res.Points), "elapsed", elapsed)

	return reportHeight(cfg, res, elapsed)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// keep log output off the TUI
	logger = logging.Discard()
	a, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	m := viz.NewModel(ctx, a, cfg.HeightSweep(), "coilforce height sweep")
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	cancel()

	fm := final.(viz.Model)
	if fm.Err() != nil {
		return fm.Err()
	}
	res := fm.Result()
	if len(res.Points) == 0 {
		fmt.Println("no heights completed")
		return nil
	}
	return reportHeight(cfg, res, time.Since(start))
}

func reportHeight(cfg *config.Config, res *dynamo.HeightSweepResult, elapsed time.Duration) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HEIGHT\tGAP (m)\tZ (m)\tCOEFF (uN/A)")
	for _, p := range res.Points {
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%.4f\n", p.Height, p.Gap, p.Z, p.Coefficient)
	}
	w.Flush()
	fmt.Println()

	printSeries(res.Series(), "force constant (uN/A) vs height")
	fmt.Printf("Execution time : %s\n", elapsed.Round(time.Millisecond))

	if noSave {
		return nil
	}
	coeffs := res.Coefficients()
	summary := map[string]float64{
		"start":   float64(cfg.Height.Start),
		"stop":    float64(cfg.Height.Stop),
		"divisor": cfg.Height.Divisor,
		"first":   coeffs[0],
		"last":    coeffs[len(coeffs)-1],
	}
	return saveRun("height", cfg, res.Series(), summary)
}

func showFilaments(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := newIntegrator(cfg)
	if err != nil {
		return err
	}
	disc := integ.Discretizer()
	asm := integ.Assembly()

	fmt.Printf("evaluations     : %d\n", disc.Count())
	fmt.Printf("filament current: %.6g A\n", asm.FilamentCurrent())
	fmt.Printf("coil layers     : %v\n", disc.Layers())
	fmt.Printf("center distance : %.6g m\n\n", asm.CenterDistance(cfg.Sweep.Gap))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NM\tNR\tNZ\tCOIL R (m)\tMAGNET R (m)\tOFFSET (m)")
	n := 0
	for p := range disc.Pairs() {
		if n >= pairLimit {
			break
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%.6g\t%.6g\t%.6g\n", p.NM, p.NR, p.NZ, p.CoilRadius, p.MagnetRadius, p.Offset)
		n++
	}
	w.Flush()
	if disc.Count() > n {
		fmt.Printf("... %d more\n", disc.Count()-n)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tNR\tNZ\tNM\tSAMPLES\tHEIGHTS\tSUMMATION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t[%d,%d)\t%s\n",
			name,
			p.Assembly.CoilLayers,
			p.Assembly.CoilTurns,
			p.Assembly.MagnetFilaments,
			p.Sweep.Samples,
			p.Height.Start,
			p.Height.Stop,
			p.Summation,
		)
	}
	return w.Flush()
}

func saveRun(kind string, cfg *config.Config, series dynamo.Series, summary map[string]float64) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.Run{
		Kind:      kind,
		Summation: cfg.Summation,
		Assembly:  cfg.ToAssembly(),
		Summary:   summary,
		Series:    series,
	})
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", runID)
	return nil
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
	fmt.Fprintln(w, "ID\tKIND\tTIME\tSAMPLES\tNM\tSUMMATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0f\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples,
			run.Assembly["Nm"],
			run.Summation,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%s, %s)\n\n", meta.ID, meta.Kind, meta.Timestamp.Format("2006-01-02 15:04:05"))
	printSeries(series, fmt.Sprintf("%s vs %s", meta.YLabel, meta.XLabel))
	for _, name := range slices.Sorted(maps.Keys(meta.Summary)) {
		fmt.Printf("  %-14s %.6g\n", name, meta.Summary[name])
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	series, err := storage.New(dataDir).LoadSeries(args[0])
	if err != nil {
		return err
	}
	path := outputOr(args[0] + ".csv")
	if err := export.CSVFile(path, series); err != nil {
		return err
	}
	fmt.Printf("exported: %s\n", path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	path := outputOr(args[0] + ".json")
	if err := export.JSONFile(path, series, meta.Summary); err != nil {
		return err
	}
	fmt.Printf("exported: %s\n", path)
	return nil
}

func exportPlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	path := outputOr(args[0] + ".png")
	title := fmt.Sprintf("%s (%s)", meta.Kind, filepath.Base(meta.ID))
	if err := export.SavePlot(path, title, series); err != nil {
		return err
	}
	fmt.Printf("exported: %s\n", path)
	return nil
}

func outputOr(def string) string {
	if outputPath != "" {
		return outputPath
	}
	return def
}

func printSeries(s dynamo.Series, caption string) {
	if s.Len() < 2 {
		return
	}
	graph := asciigraph.Plot(s.Y,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
}
