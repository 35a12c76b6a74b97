package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/astrosim/pulsarsed/internal/distribution"
	"github.com/astrosim/pulsarsed/internal/obsdata"
	"github.com/astrosim/pulsarsed/internal/params"
	"github.com/astrosim/pulsarsed/internal/pipeline"
	"github.com/astrosim/pulsarsed/internal/render"
	"github.com/astrosim/pulsarsed/internal/storage"
	"github.com/astrosim/pulsarsed/internal/synchrotron"
	"github.com/astrosim/pulsarsed/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	timeGrid   string
	kernelSrc  string
	overlay    string
	// Parameter overrides
	luminosity     float64
	slope          float64
	epsilonE       float64
	epsilonB       float64
	density        float64
	gammaMin       float64
	pericenterDist float64
	bondiRadius    float64
	alphaVisc      float64
	// Output controls
	outFile     string
	tableName   string
	tablePrefix string
	svgWidth    int
	svgHeight   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pulsarsed",
		Short: "pulsar-disk synchrotron flare model for Sgr A*",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pulsarsed", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute the flare model and save the run",
		RunE:  runModel,
	}
	addModelFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSONStdout(args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print a saved run table as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&tableName, "table", "spectrum", "table to export (distribution|spectrum)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a saved run to an SVG figure",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "flare.svg", "output file")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 720, "panel width in px")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "panel height in px")

	kernelCmd := &cobra.Command{
		Use:   "kernel",
		Short: "inspect or rebuild the synchrotron kernel table",
		RunE:  kernelTable,
	}
	kernelCmd.Flags().StringVar(&kernelSrc, "source", "table", "kernel source (table|integrate)")
	kernelCmd.Flags().StringVar(&tablePrefix, "from", "", "load the table from <prefix>_log10_x.txt and <prefix>_log10_f.txt")
	kernelCmd.Flags().StringVar(&outFile, "out", "", "write flat table files with this path prefix")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range params.ListPresets() {
				p, _ := params.GetPreset(name)
				fmt.Printf("%s: L=%.2g erg/s, p=%.2g, r_p=%.2g cm, gamma_min=%.2g\n",
					name, p.SpinDownL, p.ParticleSlope, p.PericenterDist, p.GammaMin)
			}
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "compute the model and step through it live",
		RunE:  runLive,
	}
	addModelFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, kernelCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "parameter preset (see presets command)")
	cmd.Flags().StringVar(&configFile, "config", "", "parameter file path (yaml)")
	cmd.Flags().StringVar(&timeGrid, "time-grid", "extended", "time grid mode (pericenter|extended)")
	cmd.Flags().StringVar(&kernelSrc, "kernel", "table", "kernel source (table|integrate)")
	cmd.Flags().StringVar(&overlay, "overlay", "sgr-a", "observational overlay (none|sgr-a)")
	cmd.Flags().Float64Var(&luminosity, "luminosity", params.DefaultSpinDownL, "spin-down luminosity (erg/s)")
	cmd.Flags().Float64Var(&slope, "slope", params.DefaultParticleSlope, "injected particle slope")
	cmd.Flags().Float64Var(&epsilonE, "epsilon-e", params.DefaultEpsilonE, "electron energy fraction")
	cmd.Flags().Float64Var(&epsilonB, "epsilon-b", params.DefaultEpsilonB, "magnetic energy fraction")
	cmd.Flags().Float64Var(&density, "density", params.DefaultBondiNumDen, "number density at the Bondi radius (cm^-3)")
	cmd.Flags().Float64Var(&gammaMin, "gamma-min", params.DefaultGammaMin, "minimum injected Lorentz factor")
	cmd.Flags().Float64Var(&pericenterDist, "pericenter-dist", params.DefaultPericenterDist, "pericenter distance (cm)")
	cmd.Flags().Float64Var(&bondiRadius, "bondi-radius", params.DefaultBondiRadius, "Bondi radius (cm)")
	cmd.Flags().Float64Var(&alphaVisc, "alpha", params.DefaultAlphaViscosity, "disk alpha viscosity")
}

// buildConfig resolves the run configuration. Flags win over the
// config file, the config file wins over the preset.
func buildConfig(cmd *cobra.Command) (pipeline.Config, error) {
	p := params.Default()

	if preset != "" {
		pp, ok := params.GetPreset(preset)
		if !ok {
			return pipeline.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, params.ListPresets())
		}
		p = pp
	}

	if configFile != "" {
		pp, err := params.Load(configFile)
		if err != nil {
			return pipeline.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		p = pp
	}

	flagOverrides := []struct {
		name  string
		dst   *float64
		value float64
	}{
		{"luminosity", &p.SpinDownL, luminosity},
		{"slope", &p.ParticleSlope, slope},
		{"epsilon-e", &p.EpsilonE, epsilonE},
		{"epsilon-b", &p.EpsilonB, epsilonB},
		{"density", &p.BondiNumDen, density},
		{"gamma-min", &p.GammaMin, gammaMin},
		{"pericenter-dist", &p.PericenterDist, pericenterDist},
		{"bondi-radius", &p.BondiRadius, bondiRadius},
		{"alpha", &p.AlphaViscosity, alphaVisc},
	}
	for _, f := range flagOverrides {
		if cmd.Flags().Changed(f.name) {
			*f.dst = f.value
		}
	}

	return pipeline.Config{
		Params:   p,
		TimeGrid: distribution.TimeGridMode(timeGrid),
		Kernel:   pipeline.KernelSource(kernelSrc),
		Overlay:  pipeline.Overlay(overlay),
	}, nil
}

func runModel(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Println("computing flare model...")
	start := time.Now()

	res, err := pipeline.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(res)
	if err != nil {
		return err
	}

	d := res.Derived
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("pericenter time: %.4e s = %.1f hr\n", d.PericenterTime, d.PericenterTime/3600)
	fmt.Printf("magnetic field: %.4g G\n", d.MagField)
	fmt.Printf("gamma_max: %.4g\n", d.GammaMax)
	fmt.Printf("particles at t_p: %.4g\n", res.Summary.TotalParticles)
	fmt.Printf("peak nu*L_nu: %.4g erg/s at %.4g Hz\n", res.Summary.PeakPower, res.Summary.PeakFreq)
	fmt.Println()

	panels, err := render.Figure(res)
	if err != nil {
		return err
	}
	for _, panel := range panels {
		fmt.Println(panel.Plot.Render(78, 14))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tGRID\tKERNEL\tL (erg/s)\tr_p (cm)\tPEAK (erg/s)")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2g\t%.2g\t%.3g\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TimeGrid,
			run.Kernel,
			run.Params.SpinDownL,
			run.Params.PericenterDist,
			run.Summary.PeakPower,
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

	_, dist, err := st.LoadDistribution(args[0])
	if err != nil {
		return err
	}
	_, power, err := st.LoadSpectrum(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("time steps: %d\n\n", len(meta.Times))

	for i := range power {
		label := fmt.Sprintf("t = %.3e s (t/t_p = %.2g)",
			meta.Times[i], meta.Times[i]/meta.Derived.PericenterTime)
		fmt.Println(render.AsciiPanel(dist[i], "particle distribution, "+label, 80, 10))
		fmt.Println()
		fmt.Println(render.AsciiPanel(power[i], "nu*L_nu, "+label, 80, 10))
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	var axisName string
	var axis []float64
	var rows [][]float64
	var err error
	switch tableName {
	case "distribution":
		axisName = "gamma"
		axis, rows, err = st.LoadDistribution(args[0])
	case "spectrum":
		axisName = "frequency"
		axis, rows, err = st.LoadSpectrum(args[0])
	default:
		return fmt.Errorf("unknown table %q (want distribution or spectrum)", tableName)
	}
	if err != nil {
		return err
	}

	header := []string{axisName}
	for i := range rows {
		header = append(header, fmt.Sprintf("t%d", i))
	}
	fmt.Println(strings.Join(header, ","))
	for j, x := range axis {
		record := []string{strconv.FormatFloat(x, 'e', 10, 64)}
		for i := range rows {
			record = append(record, strconv.FormatFloat(rows[i][j], 'e', 10, 64))
		}
		fmt.Println(strings.Join(record, ","))
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	// Recompute from the stored parameters; the model is cheap and
	// deterministic, and the figure needs the full result.
	res, err := pipeline.Run(context.Background(), pipeline.Config{
		Params:   meta.Params,
		TimeGrid: meta.TimeGrid,
		Kernel:   meta.Kernel,
		Overlay:  meta.Overlay,
	})
	if err != nil {
		return err
	}

	panels, err := render.Figure(res)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outFile, []byte(render.SVG(panels, svgWidth, svgHeight)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func kernelTable(cmd *cobra.Command, args []string) error {
	kernel, err := loadKernelCLI()
	if err != nil {
		return err
	}
	log10X, log10F := kernel.Table()

	if kernelSrc == "integrate" {
		// Report the worst deviation from the shipped table.
		shipped, err := kernelFromShippedTable()
		if err != nil {
			return err
		}
		_, shippedF := shipped.Table()
		worst := 0.0
		for i := range log10F {
			if d := math.Abs(log10F[i] - shippedF[i]); d > worst {
				worst = d
			}
		}
		fmt.Printf("max |log10 F| deviation from shipped table: %.3g\n", worst)
	}

	fmt.Printf("kernel table: %d points, log10 x in [%g, %g]\n", len(log10X), log10X[0], log10X[len(log10X)-1])

	peakIdx := 0
	for i := range log10F {
		if log10F[i] > log10F[peakIdx] {
			peakIdx = i
		}
	}
	fmt.Printf("peak: F(%.4g) = %.4g\n", math.Pow(10, log10X[peakIdx]), math.Pow(10, log10F[peakIdx]))
	fmt.Println()
	fmt.Println(render.AsciiPanel(pow10All(log10F), "log10 F(x)", 80, 12))

	if outFile != "" {
		if err := writeColumn(outFile+"_log10_x.txt", log10X); err != nil {
			return err
		}
		if err := writeColumn(outFile+"_log10_f.txt", log10F); err != nil {
			return err
		}
		fmt.Printf("wrote %s_log10_x.txt and %s_log10_f.txt\n", outFile, outFile)
	}
	return nil
}

func loadKernelCLI() (*synchrotron.Kernel, error) {
	if tablePrefix != "" {
		log10X, err := obsdata.LoadColumn(tablePrefix + "_log10_x.txt")
		if err != nil {
			return nil, err
		}
		log10F, err := obsdata.LoadColumn(tablePrefix + "_log10_f.txt")
		if err != nil {
			return nil, err
		}
		return synchrotron.FromTable(log10X, log10F)
	}
	if kernelSrc == "integrate" {
		fmt.Println("integrating kernel...")
		return synchrotron.Build(), nil
	}
	return kernelFromShippedTable()
}

func kernelFromShippedTable() (*synchrotron.Kernel, error) {
	log10X, log10F, err := obsdata.KernelTable()
	if err != nil {
		return nil, err
	}
	return synchrotron.FromTable(log10X, log10F)
}

func pow10All(log10V []float64) []float64 {
	out := make([]float64, len(log10V))
	for i, v := range log10V {
		out[i] = math.Pow(10, v)
	}
	return out
}

func writeColumn(path string, vals []float64) error {
	var sb strings.Builder
	for _, v := range vals {
		sb.WriteString(strconv.FormatFloat(v, 'e', 12, 64))
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	res, err := pipeline.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	return tui.Run(res)
}
