package metrics

import (
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
)

// MinSeparation records the closest approach between any two bodies over
// the run. Close approaches are where explicit Euler loses accuracy.
type MinSeparation struct {
	name    string
	min     float64
	samples int
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{name: "min_separation", min: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return m.name }

func (m *MinSeparation) Observe(s dynamo.Snapshot) {
	d, _, _ := physics.MinSeparation(s.Positions)
	m.min = math.Min(m.min, d)
	m.samples++
}

// Value is +Inf until two bodies have been observed.
func (m *MinSeparation) Value() float64 { return m.min }

func (m *MinSeparation) Reset() {
	m.min = math.Inf(1)
	m.samples = 0
}

// Defaults returns the metrics attached to every CLI run.
func Defaults(g float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergyDrift(g),
		NewMomentumDrift(),
		NewMinSeparation(),
	}
}
