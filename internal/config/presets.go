package config

import "sort"

var Presets = map[string]*Config{
	"quartet": {
		Name: "quartet", G: 2, Dim: 3, Steps: 30000, Dt: 0.01, Integrator: "euler", Workers: 1,
		Bodies: []BodyConfig{
			{Name: "a", Position: []float64{4, 4, 2}, Velocity: []float64{-1, 1, 0}, Mass: 5},
			{Name: "b", Position: []float64{-4, -4, -2}, Velocity: []float64{1, -1, 0}, Mass: 5},
			{Name: "c", Position: []float64{0, 0, 0}, Velocity: []float64{0, 0, 0}, Mass: 3},
			{Name: "probe", Position: []float64{-8, 0, -8}, Velocity: []float64{-1, -1, -1}, Mass: 0.00001},
		},
	},
	"binary": {
		Name: "binary", G: 1, Dim: 3, Steps: 2000, Dt: 0.01, Integrator: "euler", Workers: 1,
		Bodies: []BodyConfig{
			{Name: "a", Position: []float64{1, 0, 0}, Velocity: []float64{0, 0.5, 0}, Mass: 1},
			{Name: "b", Position: []float64{-1, 0, 0}, Velocity: []float64{0, -0.5, 0}, Mass: 1},
		},
	},
	"collapse": {
		Name: "collapse", G: 1, Dim: 3, Steps: 100, Dt: 0.01, Integrator: "euler", Workers: 1,
		Bodies: []BodyConfig{
			{Name: "a", Position: []float64{1, 0, 0}, Velocity: []float64{0, 0, 0}, Mass: 1},
			{Name: "b", Position: []float64{-1, 0, 0}, Velocity: []float64{0, 0, 0}, Mass: 1},
		},
	},
	"star-planet": {
		Name: "star-planet", G: 1, Dim: 3, Steps: 5000, Dt: 0.001, Integrator: "euler", Workers: 1,
		Bodies: []BodyConfig{
			{Name: "star", Position: []float64{0, 0, 0}, Velocity: []float64{0, -0.01, 0}, Mass: 1000},
			{Name: "planet", Position: []float64{10, 0, 0}, Velocity: []float64{0, 10, 0}, Mass: 1},
		},
	},
	"figure-eight": {
		Name: "figure-eight", G: 1, Dim: 2, Steps: 6326, Dt: 0.001, Integrator: "leapfrog", Workers: 1,
		Bodies: []BodyConfig{
			{Name: "a", Position: []float64{-0.97000436, 0.24308753}, Velocity: []float64{0.466203685, 0.43236573}, Mass: 1},
			{Name: "b", Position: []float64{0, 0}, Velocity: []float64{-0.93240737, -0.86473146}, Mass: 1},
			{Name: "c", Position: []float64{0.97000436, -0.24308753}, Velocity: []float64{0.466203685, 0.43236573}, Mass: 1},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
