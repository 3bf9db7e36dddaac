package physics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

// parallelMinBodies is the smallest chunk of bodies handed to one worker.
const parallelMinBodies = 8

// Gravity is the direct-summation Newtonian force field. Every body feels
// every other body; there is no softening.
type Gravity struct {
	G       float64
	Masses  []float64
	Workers int

	errs []error
}

// NewGravity returns a force field for the given bodies' masses.
func NewGravity(g float64, masses []float64, workers int) *Gravity {
	return &Gravity{G: g, Masses: masses, Workers: workers}
}

// Forces writes into out[i] the sum over j != i of
// -(G*m_i*m_j/|r_i-r_j|^2) * (r_i-r_j)/|r_i-r_j|. Two bodies at the same
// point yield a degenerate-configuration error naming both.
func (g *Gravity) Forces(pos []dynamo.Vector, out []dynamo.Vector) error {
	n := len(pos)
	if len(g.errs) != n {
		g.errs = make([]error, n)
	}

	dynamo.ParallelFor(n, g.Workers, parallelMinBodies, func(start, end int) {
		if start >= end {
			return
		}
		diff := make(dynamo.Vector, len(pos[start]))
		for i := start; i < end; i++ {
			g.errs[i] = g.accumulate(i, pos, out[i], diff)
		}
	})

	for _, err := range g.errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Gravity) accumulate(i int, pos []dynamo.Vector, f, diff dynamo.Vector) error {
	for k := range f {
		f[k] = 0
	}

	for j := range pos {
		if j == i {
			continue
		}

		floats.SubTo(diff, pos[i], pos[j])
		norm := floats.Norm(diff, 2)
		if norm == 0 {
			return &dynamo.SimulationError{
				Bodies:  []int{i, j},
				Wrapped: dynamo.Errorf(dynamo.DegenerateKind, "physics.Gravity.Forces", "bodies %d and %d occupy the same position", i, j),
			}
		}

		mag := g.G * g.Masses[i] * g.Masses[j] / (norm * norm)
		for k := range f {
			f[k] -= mag * (diff[k] / norm)
		}
	}
	return nil
}
