package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/logging"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string
	g          float64
	dt         float64
	steps      int
	integrator string
	workers    int
	// plot
	plotBody  int
	plotAxis  int
	plotOther int
	// serve
	addr     string
	stride   int
	interval int
	// bench
	benchWorkers []int

	logger *logging.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "nbodysim",
		Short:         "direct-summation gravitational n-body simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(os.Stderr, logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nbodysim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and store its trajectory",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a coordinate or a pair separation over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotBody, "body", 0, "body index")
	plotCmd.Flags().IntVar(&plotAxis, "axis", 0, "coordinate axis")
	plotCmd.Flags().IntVar(&plotOther, "sep", -1, "plot separation from this body instead of a coordinate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-14s %d bodies, %dD, %d steps, %s\n", name, len(p.Bodies), p.Dim, p.Steps, p.Integrator)
			}
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time a scenario across worker counts",
		Args:  cobra.NoArgs,
		RunE:  benchScenario,
	}
	addScenarioFlags(benchCmd)
	benchCmd.Flags().IntSliceVar(&benchWorkers, "workers-list", []int{1, 2, 4, 8}, "worker counts to compare")

	serveCmd := &cobra.Command{
		Use:   "serve [run_id]",
		Short: "replay a stored run, or a fresh scenario, over websocket",
		Args:  cobra.MaximumNArgs(1),
		RunE:  serveRun,
	}
	addScenarioFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().IntVar(&stride, "stride", 1, "send every n-th step")
	serveCmd.Flags().IntVar(&interval, "interval", 16, "milliseconds between frames")

	rootCmd.AddCommand(runCmd, listCmd, showCmd, exportJSONCmd, plotCmd, presetsCmd, benchCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a preset scenario")
	cmd.Flags().Float64Var(&g, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator (euler, symplectic, leapfrog)")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "goroutines for the force sweep")
}

// loadScenario resolves --preset or --config, then applies any flag the
// user set explicitly.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "" && configFile != "":
		return nil, fmt.Errorf("--preset and --config are mutually exclusive")
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.Name == "" {
			base := filepath.Base(configFile)
			cfg.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
	default:
		return nil, fmt.Errorf("a scenario is required: pass --preset or --config")
	}

	if cmd.Flags().Changed("g") {
		cfg.G = g
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	return cfg, nil
}
