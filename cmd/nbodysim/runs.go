package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/storage"
)

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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tBODIES\tSTEPS\tDT\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%g\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Bodies),
			run.Steps,
			run.Dt,
			run.Integrator,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fields := []field{
		{"scenario", meta.Scenario},
		{"timestamp", meta.Timestamp.Format("2006-01-02 15:04:05")},
		{"G", fmt.Sprintf("%g", meta.G)},
		{"dim", fmt.Sprint(meta.Dim)},
		{"steps", fmt.Sprint(meta.Steps)},
		{"dt", fmt.Sprintf("%g", meta.Dt)},
		{"integrator", meta.Integrator},
	}
	for _, b := range meta.Bodies {
		fields = append(fields, field{b.Name, fmt.Sprintf("m=%g r0=%v v0=%v", b.Mass, b.Position0, b.Velocity0)})
	}
	fields = append(fields, metricFields(meta.Metrics)...)
	fmt.Println(renderPanel(meta.ID, fields))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, traj)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	n := traj.NumBodies()
	if plotBody < 0 || plotBody >= n {
		return fmt.Errorf("body %d out of range [0, %d)", plotBody, n)
	}

	var data []float64
	var caption string
	if plotOther >= 0 {
		if plotOther >= n || plotOther == plotBody {
			return fmt.Errorf("invalid separation pair (%d, %d)", plotBody, plotOther)
		}
		data = traj.Separation(plotBody, plotOther)
		caption = fmt.Sprintf("|r%d - r%d| vs time", plotBody, plotOther)
	} else {
		if plotAxis < 0 || plotAxis >= meta.Dim {
			return fmt.Errorf("axis %d out of range [0, %d)", plotAxis, meta.Dim)
		}
		data = traj.Coordinate(plotBody, plotAxis)
		caption = fmt.Sprintf("body %d x%d vs time", plotBody, plotAxis)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(data))

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	return nil
}
