package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/nbodysim/internal/physics"
)

type ExportData struct {
	RunMetadata
	Times     []float64     `json:"times"`
	Positions [][][]float64 `json:"positions"`
}

// ExportJSON writes a run's metadata and per-body positions as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, traj *physics.Trajectory) error {
	data := ExportData{
		RunMetadata: *meta,
		Times:       traj.Times,
		Positions:   make([][][]float64, len(traj.Positions)),
	}

	for i, series := range traj.Positions {
		data.Positions[i] = make([][]float64, len(series))
		for n, p := range series {
			data.Positions[i][n] = p
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
