package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type BodyRecord struct {
	Name      string    `json:"name"`
	Mass      float64   `json:"mass"`
	Position0 []float64 `json:"position0"`
	Velocity0 []float64 `json:"velocity0"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	G          float64            `json:"g"`
	Dim        int                `json:"dim"`
	Steps      int                `json:"steps"`
	Dt         float64            `json:"dt"`
	Integrator string             `json:"integrator"`
	Bodies     []BodyRecord       `json:"bodies"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Records pairs display names with bodies' initial state.
func Records(names []string, bodies []*physics.Body) []BodyRecord {
	out := make([]BodyRecord, len(bodies))
	for i, b := range bodies {
		name := fmt.Sprintf("b%d", i)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		out[i] = BodyRecord{
			Name:      name,
			Mass:      b.Mass(),
			Position0: b.Position0(),
			Velocity0: b.Velocity0(),
		}
	}
	return out
}

func (s *Store) Save(scenario string, params physics.Params, bodies []BodyRecord, traj *physics.Trajectory) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", runName(scenario), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Scenario:   scenario,
		Timestamp:  now,
		G:          params.G,
		Dim:        params.Dim,
		Steps:      traj.Steps(),
		Dt:         params.Dt,
		Integrator: traj.Integrator,
		Bodies:     bodies,
		Metrics:    traj.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), params.Dim, traj); err != nil {
		return "", err
	}

	return runID, nil
}

// runName reduces a scenario name, which may be a file path, to a single
// directory component.
func runName(scenario string) string {
	name := filepath.Base(scenario)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "run"
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	if name == "" {
		return "run"
	}
	return name
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectory(path string, dim int, traj *physics.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"time"}
	for i := 0; i < traj.NumBodies(); i++ {
		for k := 0; k < dim; k++ {
			header = append(header, fmt.Sprintf("b%d_x%d", i, k))
		}
		for k := 0; k < dim; k++ {
			header = append(header, fmt.Sprintf("b%d_v%d", i, k))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for n, t := range traj.Times {
		row = row[:0]
		row = append(row, formatFloat(t))
		for i := range traj.Positions {
			for _, x := range traj.Positions[i][n] {
				row = append(row, formatFloat(x))
			}
			for _, v := range traj.Velocities[i][n] {
				row = append(row, formatFloat(v))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the metadata of every stored run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory rebuilds the stored trajectory of a run.
func (s *Store) LoadTrajectory(runID string) (*physics.Trajectory, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("run %s: empty trajectory file", runID)
	}

	nb, dim := len(meta.Bodies), meta.Dim
	width := 1 + nb*2*dim
	rows := records[1:]

	traj := &physics.Trajectory{
		Integrator: meta.Integrator,
		Times:      make([]float64, len(rows)),
		Masses:     make([]float64, nb),
		Positions:  make([][]dynamo.Vector, nb),
		Velocities: make([][]dynamo.Vector, nb),
		Metrics:    meta.Metrics,
	}
	for i, b := range meta.Bodies {
		traj.Masses[i] = b.Mass
		traj.Positions[i] = dynamo.NewVectors(len(rows), dim)
		traj.Velocities[i] = dynamo.NewVectors(len(rows), dim)
	}

	for n, record := range rows {
		if len(record) != width {
			return nil, fmt.Errorf("run %s: row %d has %d fields, want %d", runID, n+1, len(record), width)
		}
		vals := make([]float64, width)
		for c, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d: %w", runID, n+1, err)
			}
			vals[c] = v
		}

		traj.Times[n] = vals[0]
		off := 1
		for i := 0; i < nb; i++ {
			copy(traj.Positions[i][n], vals[off:off+dim])
			off += dim
			copy(traj.Velocities[i][n], vals[off:off+dim])
			off += dim
		}
	}

	return traj, nil
}
