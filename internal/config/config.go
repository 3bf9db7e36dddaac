package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/physics"
)

const (
	DefaultG       = 1.0
	DefaultDim     = 3
	DefaultSteps   = 1000
	DefaultDt      = 0.01
	DefaultWorkers = 1
)

// Config is a scenario file: simulation parameters plus the bodies.
type Config struct {
	Name       string       `yaml:"name,omitempty"`
	G          float64      `yaml:"g"`
	Dim        int          `yaml:"dim"`
	Steps      int          `yaml:"steps"`
	Dt         float64      `yaml:"dt"`
	Integrator string       `yaml:"integrator"`
	Workers    int          `yaml:"workers"`
	Bodies     []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Name     string    `yaml:"name,omitempty"`
	Position []float64 `yaml:"position,flow"`
	Velocity []float64 `yaml:"velocity,flow"`
	Mass     float64   `yaml:"mass"`
}

func DefaultConfig() *Config {
	return &Config{
		G:          DefaultG,
		Dim:        DefaultDim,
		Steps:      DefaultSteps,
		Dt:         DefaultDt,
		Integrator: integrators.Default,
		Workers:    DefaultWorkers,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a scenario over the defaults. Fields holding a value of the
// wrong YAML type are reported as dynamo.TypeKind errors.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, dynamo.Errorf(dynamo.TypeKind, "config.Parse", "%v", typeErr.Errors)
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() physics.Params {
	return physics.Params{
		G:          c.G,
		Dim:        c.Dim,
		Steps:      c.Steps,
		Dt:         c.Dt,
		Integrator: c.Integrator,
		Workers:    c.Workers,
	}
}

// Build constructs the bodies and the System described by the scenario.
func (c *Config) Build() (*physics.System, error) {
	bodies := make([]*physics.Body, len(c.Bodies))
	for i, bc := range c.Bodies {
		b, err := physics.NewBody(bc.Position, bc.Velocity, bc.Mass)
		if err != nil {
			return nil, fmt.Errorf("body %d (%s): %w", i, bc.label(i), err)
		}
		bodies[i] = b
	}
	return physics.NewSystem(c.Params(), bodies...)
}

// BodyNames returns a display name for every body.
func (c *Config) BodyNames() []string {
	names := make([]string, len(c.Bodies))
	for i, bc := range c.Bodies {
		names[i] = bc.label(i)
	}
	return names
}

func (b BodyConfig) label(i int) string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("b%d", i)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = make([]BodyConfig, len(c.Bodies))
	for i, b := range c.Bodies {
		out.Bodies[i] = BodyConfig{
			Name:     b.Name,
			Position: append([]float64(nil), b.Position...),
			Velocity: append([]float64(nil), b.Velocity...),
			Mass:     b.Mass,
		}
	}
	return &out
}
