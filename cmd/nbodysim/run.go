package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/metrics"
	"github.com/san-kum/nbodysim/internal/physics"
	"github.com/san-kum/nbodysim/internal/storage"
)

func simulate(ctx context.Context, cfg *config.Config) (*physics.System, *physics.Trajectory, time.Duration, error) {
	sys, err := cfg.Build()
	if err != nil {
		return nil, nil, 0, err
	}
	for _, m := range metrics.Defaults(cfg.G) {
		sys.AddMetric(m)
	}

	logger.Debugf("simulating %s: %v", cfg.Name, sys)
	start := time.Now()
	traj, err := sys.Simulate(ctx)
	elapsed := time.Since(start)
	if err != nil {
		return nil, nil, elapsed, err
	}
	logger.Debugf("%d steps in %v", traj.Steps(), elapsed)
	return sys, traj, elapsed, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Infof("running %s (%d bodies, %d steps, %s)", cfg.Name, len(cfg.Bodies), cfg.Steps, cfg.Integrator)
	sys, traj, elapsed, err := simulate(ctx, cfg)
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg.Name, sys.Params(), storage.Records(cfg.BodyNames(), sys.Bodies()), traj)
	if err != nil {
		return err
	}
	logger.Infof("stored run %s", runID)

	fields := []field{
		{"run id", runID},
		{"bodies", fmt.Sprint(sys.Len())},
		{"steps", fmt.Sprint(traj.Steps())},
		{"final time", fmt.Sprintf("%g", traj.Times[traj.Steps()])},
		{"elapsed", elapsed.String()},
	}
	fields = append(fields, metricFields(traj.Metrics)...)
	fmt.Println(renderPanel(cfg.Name, fields))
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "WORKERS\tSTEPS\tELAPSED\tSTEPS/S\n")

	for _, n := range benchWorkers {
		run := cfg.Clone()
		run.Workers = n
		_, traj, elapsed, err := simulate(cmd.Context(), run)
		if err != nil {
			return err
		}
		rate := float64(traj.Steps()) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, traj.Steps(), elapsed.Round(time.Microsecond), rate)
	}

	return w.Flush()
}
