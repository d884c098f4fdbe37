package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/hjbgrid/internal/config"
	"github.com/san-kum/hjbgrid/internal/report"
	"github.com/san-kum/hjbgrid/internal/solver"
)

var (
	configFile string
	preset     string
	output     string
	samples    int
	noChart    bool
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("105"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hjbgrid",
		Short: "backward solver for a linear HJB value equation on a reflecting 1-D grid",
	}

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve the value equation and report the boundary trajectories",
		RunE:  runSolve,
	}
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use a named preset")
	solveCmd.Flags().StringVar(&output, "out", "", "write plot image (png/svg/pdf by extension)")
	solveCmd.Flags().IntVar(&samples, "samples", 0, "override number of report samples")
	solveCmd.Flags().BoolVar(&noChart, "no-chart", false, "suppress the terminal chart")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(solveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func resolveConfig() (*config.Config, error) {
	if configFile != "" && preset != "" {
		return nil, fmt.Errorf("--config and --preset are mutually exclusive")
	}
	if configFile != "" {
		return config.Load(configFile)
	}
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (try: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if samples > 0 {
		cfg.Report.Samples = samples
	}

	model, err := cfg.BuildModel()
	if err != nil {
		return err
	}

	res, err := solver.New(model).Run(cmd.Context(), cfg.BuildSolverConfig())
	if err != nil {
		return err
	}

	grid, err := cfg.BuildGrid()
	if err != nil {
		return err
	}
	series, err := report.BoundarySeries(res.Solution, grid, cfg.Report.Samples)
	if err != nil {
		return err
	}

	printSummary(cfg, res)

	if !noChart {
		fmt.Println()
		fmt.Println(series.Chart(cfg.Report.Height))
	}

	out := output
	if out == "" {
		out = cfg.Report.Output
	}
	if out != "" {
		if err := series.Render(out); err != nil {
			return err
		}
		fmt.Printf("\nplot written to %s\n", out)
	}

	return nil
}

func printSummary(cfg *config.Config, res *solver.Result) {
	fmt.Println(titleStyle.Render("hjbgrid solve"))

	row := func(label string, format string, args ...any) {
		fmt.Println(labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf(format, args...)))
	}

	row("grid", "%d points on [%g, %g]", cfg.Grid.Points, cfg.Grid.Lo, cfg.Grid.Hi)
	row("model", "mu=%g sigma=%g rho=%g", cfg.Model.Mu, cfg.Model.Sigma, cfg.Model.Rho)
	row("horizon", "%g", cfg.Model.Horizon)
	row("payoff", "%s", cfg.Model.Payoff)
	row("steps", "%d accepted, %d rejected", res.Stats.Accepted, res.Stats.Rejected)
	row("evaluations", "%d", res.Stats.Evaluations)
	row("v(lo, 0)", "%.6f", first(res))
	row("v(hi, 0)", "%.6f", last(res))
}

func first(res *solver.Result) float64 {
	v, err := res.Solution.At(0)
	if err != nil || len(v) == 0 {
		return 0
	}
	return v[0]
}

func last(res *solver.Result) float64 {
	v, err := res.Solution.At(0)
	if err != nil || len(v) == 0 {
		return 0
	}
	return v[len(v)-1]
}
