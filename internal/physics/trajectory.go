package physics

import "github.com/san-kum/nbodysim/internal/dynamo"

// Trajectory is the materialized output of one Simulate call. Row n of
// every per-body sequence belongs to Times[n].
type Trajectory struct {
	Integrator string
	Times      []float64
	Masses     []float64
	Positions  [][]dynamo.Vector
	Velocities [][]dynamo.Vector
	Metrics    map[string]float64
}

func newTrajectory(masses []float64, steps, dim int) *Trajectory {
	n := len(masses)
	t := &Trajectory{
		Times:      make([]float64, steps+1),
		Masses:     append([]float64(nil), masses...),
		Positions:  make([][]dynamo.Vector, n),
		Velocities: make([][]dynamo.Vector, n),
		Metrics:    make(map[string]float64),
	}
	for i := 0; i < n; i++ {
		t.Positions[i] = dynamo.NewVectors(steps+1, dim)
		t.Velocities[i] = dynamo.NewVectors(steps+1, dim)
	}
	return t
}

func (t *Trajectory) record(step int, pos, vel []dynamo.Vector) {
	for i := range pos {
		copy(t.Positions[i][step], pos[i])
		copy(t.Velocities[i][step], vel[i])
	}
}

// Steps is the number of integration steps taken, one less than len(Times).
func (t *Trajectory) Steps() int { return len(t.Times) - 1 }

func (t *Trajectory) NumBodies() int { return len(t.Positions) }

// Frame returns the positions of every body at step n.
func (t *Trajectory) Frame(n int) []dynamo.Vector {
	frame := make([]dynamo.Vector, len(t.Positions))
	for i := range t.Positions {
		frame[i] = t.Positions[i][n]
	}
	return frame
}

// Coordinate returns the time series of axis k of body i.
func (t *Trajectory) Coordinate(i, k int) []float64 {
	series := make([]float64, len(t.Times))
	for n, p := range t.Positions[i] {
		series[n] = p[k]
	}
	return series
}

// Separation returns |r_i - r_j| at every step.
func (t *Trajectory) Separation(i, j int) []float64 {
	series := make([]float64, len(t.Times))
	for n := range t.Times {
		series[n] = t.Positions[i][n].Sub(t.Positions[j][n]).Norm()
	}
	return series
}
