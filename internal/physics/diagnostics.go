package physics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

// Momentum returns the total linear momentum sum(m_i * v_i).
func Momentum(masses []float64, vel []dynamo.Vector) dynamo.Vector {
	if len(vel) == 0 {
		return dynamo.Vector{}
	}
	p := make(dynamo.Vector, len(vel[0]))
	for i, v := range vel {
		floats.AddScaled(p, masses[i], v)
	}
	return p
}

func KineticEnergy(masses []float64, vel []dynamo.Vector) float64 {
	ke := 0.0
	for i, v := range vel {
		ke += 0.5 * masses[i] * floats.Dot(v, v)
	}
	return ke
}

// PotentialEnergy is the pairwise gravitational potential. Coincident pairs
// contribute -Inf.
func PotentialEnergy(g float64, masses []float64, pos []dynamo.Vector) float64 {
	pe := 0.0
	for i := range pos {
		for j := i + 1; j < len(pos); j++ {
			r := floats.Distance(pos[i], pos[j], 2)
			pe -= g * masses[i] * masses[j] / r
		}
	}
	return pe
}

func Energy(g float64, masses []float64, pos, vel []dynamo.Vector) float64 {
	return KineticEnergy(masses, vel) + PotentialEnergy(g, masses, pos)
}

// CenterOfMass returns the mass-weighted mean position. It is undefined when
// the masses sum to zero.
func CenterOfMass(masses []float64, pos []dynamo.Vector) dynamo.Vector {
	if len(pos) == 0 {
		return dynamo.Vector{}
	}
	c := make(dynamo.Vector, len(pos[0]))
	for i, p := range pos {
		floats.AddScaled(c, masses[i], p)
	}
	floats.Scale(1/floats.Sum(masses), c)
	return c
}

// MinSeparation returns the closest pair distance and the pair's indices.
// With fewer than two bodies it returns +Inf and (-1, -1).
func MinSeparation(pos []dynamo.Vector) (float64, int, int) {
	best, bi, bj := math.Inf(1), -1, -1
	for i := range pos {
		for j := i + 1; j < len(pos); j++ {
			if d := floats.Distance(pos[i], pos[j], 2); d < best {
				best, bi, bj = d, i, j
			}
		}
	}
	return best, bi, bj
}
