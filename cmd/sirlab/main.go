package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sirlab/internal/api"
	"sirlab/internal/config"
	"sirlab/internal/epi"
	"sirlab/internal/scenario"
	"sirlab/internal/solver"
	"sirlab/internal/storage"
	"sirlab/internal/viz"
)

var (
	dataDir    string
	population float64
	beta       float64
	gamma      float64
	infected   float64
	removed    float64
	days       float64
	points     int
	integrator string
	configFile string
	preset     string
	noSave     bool
	addr       string
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sirlab",
		Short: "compartmental epidemic and rumor simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sirlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving the run")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [gamma1] [gamma2] ...",
		Short: "compare removal rates on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareGammas,
	}
	addParamFlags(compareCmd)

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kind := range scenario.NewRegistry().Kinds() {
				fmt.Println(kind)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the simulation API over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "replay a simulation as a live curve",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(runCmd, compareCmd, modelsCmd, presetsCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, serveCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&population, "population", config.DefaultPopulation, "total population")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "contact rate")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "removal rate")
	cmd.Flags().Float64Var(&infected, "infected", config.DefaultInfected, "initially infected")
	cmd.Flags().Float64Var(&removed, "removed", 0, "initially removed")
	cmd.Flags().Float64Var(&days, "days", config.DefaultDays, "days to simulate")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "sample points")
	cmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator (euler, rk4, rk45)")
}

func buildRunner() (*scenario.Runner, error) {
	integ, err := scenario.NewRegistry().Integrator(integrator)
	if err != nil {
		return nil, err
	}
	return scenario.NewRunnerWith(solver.New(integ, solver.DefaultRTol, solver.DefaultATol)), nil
}

// flagParams merges preset, config file and CLI flags into a parameter
// set; explicit flags win over both.
func flagParams(cmd *cobra.Command, model string) (epi.Params, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		pc := config.GetPreset(model, preset)
		if pc == nil {
			return epi.Params{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = pc
	}

	if configFile != "" {
		fc, err := config.Load(configFile)
		if err != nil {
			return epi.Params{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fc
	}

	p := cfg.Params()
	if cmd.Flags().Changed("population") {
		p.Population = population
	}
	if cmd.Flags().Changed("beta") {
		p.Beta = beta
	}
	if cmd.Flags().Changed("gamma") {
		p.Gamma = gamma
	}
	if cmd.Flags().Changed("infected") {
		p.InitialInfected = infected
	}
	if cmd.Flags().Changed("removed") {
		p.InitialRemoved = removed
	}
	if cmd.Flags().Changed("days") {
		p.Days = days
	}
	if cmd.Flags().Changed("points") {
		p.Points = points
	}
	return p, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	model := args[0]

	p, err := flagParams(cmd, model)
	if err != nil {
		return err
	}

	runner, err := buildRunner()
	if err != nil {
		return err
	}
	out := runner.RunOne(cmd.Context(), scenario.Scenario{Name: model, Model: model, Params: p})
	if out.Err != nil {
		return out.Err
	}

	fmt.Println(viz.Title(model))
	fmt.Println()
	fmt.Println(viz.Plot(out.Trajectory, fmt.Sprintf("%s over %.0f days", model, out.Scenario.Params.Days)))
	fmt.Println()
	fmt.Println(viz.Legend())
	fmt.Println(viz.Summary(out.Trajectory))
	fmt.Println()
	fmt.Println(viz.StatCards(out.Metrics, out.Scenario.Params))

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(model, out.Scenario.Params, out.Trajectory, out.Metrics)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved run: %s\n", runID)
	return nil
}

func compareGammas(cmd *cobra.Command, args []string) error {
	model := args[0]

	gammas := make([]float64, 0, len(args)-1)
	for _, arg := range args[1:] {
		g, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid gamma %q: %w", arg, err)
		}
		gammas = append(gammas, g)
	}

	p, err := flagParams(cmd, model)
	if err != nil {
		return err
	}

	runner, err := buildRunner()
	if err != nil {
		return err
	}
	scenarios := make([]scenario.Scenario, 0, len(gammas))
	for _, g := range gammas {
		sp := p
		sp.Gamma = g
		scenarios = append(scenarios, scenario.Scenario{
			Name:   fmt.Sprintf("gamma=%g", g),
			Model:  model,
			Params: sp,
		})
	}

	outcomes := runner.Run(cmd.Context(), scenarios)

	series := make([][]float64, 0, len(outcomes))
	legends := make([]string, 0, len(outcomes))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tR0\tPEAK\tPEAK DAY\tATTACK RATE")
	for _, out := range outcomes {
		if out.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", out.Scenario.Name, out.Err)
			continue
		}
		series = append(series, out.Trajectory.Infected)
		legends = append(legends, out.Scenario.Name)
		fmt.Fprintf(w, "%s\t%.3f\t%.0f\t%.1f\t%.1f%%\n",
			out.Scenario.Name,
			out.Metrics.BasicReproduction,
			out.Metrics.PeakInfected,
			out.Metrics.PeakDay,
			out.Metrics.AttackRate*100,
		)
	}

	if len(series) > 0 {
		fmt.Println(viz.PlotInfected(series, legends, fmt.Sprintf("infected, %s", model)))
		fmt.Println()
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDAYS\tPEAK\tATTACK RATE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.0f\t%.1f%%\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Days,
			run.Metrics.PeakInfected,
			run.Metrics.AttackRate*100,
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
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", tr.Len())
	fmt.Println(viz.Plot(tr, fmt.Sprintf("%s over %.0f days", meta.Model, meta.Params.Days)))
	fmt.Println()
	fmt.Println(viz.Legend())
	fmt.Println(viz.StatCards(meta.Metrics, meta.Params))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, tr)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, tr)
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return api.NewServer(addr).Run(ctx)
}

func runLive(cmd *cobra.Command, args []string) error {
	model := args[0]

	p, err := flagParams(cmd, model)
	if err != nil {
		return err
	}

	runner, err := buildRunner()
	if err != nil {
		return err
	}
	out := runner.RunOne(cmd.Context(), scenario.Scenario{Name: model, Model: model, Params: p})
	if out.Err != nil {
		return out.Err
	}

	m := viz.NewLiveModel(model, out.Trajectory, out.Metrics, out.Scenario.Params, frameRate)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err = prog.Run()
	return err
}
