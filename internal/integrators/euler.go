package integrators

import "github.com/san-kum/nbodysim/internal/dynamo"

// Euler is explicit forward Euler. Velocities are kicked with the force at
// the current positions and positions drift with the velocity from before
// the kick.
type Euler struct {
	force []dynamo.Vector
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(f dynamo.ForceField, masses []float64, pos, vel []dynamo.Vector, dt float64, nextPos, nextVel []dynamo.Vector) error {
	e.force = ensureScratch(e.force, pos)
	if err := f.Forces(pos, e.force); err != nil {
		return err
	}

	for i := range pos {
		for k := range pos[i] {
			nextVel[i][k] = vel[i][k] + dt*e.force[i][k]/masses[i]
			nextPos[i][k] = pos[i][k] + dt*vel[i][k]
		}
	}
	return nil
}

// SymplecticEuler is semi-implicit Euler: the position drift uses the
// velocity after the kick.
type SymplecticEuler struct {
	force []dynamo.Vector
}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (s *SymplecticEuler) Name() string { return "symplectic" }

func (s *SymplecticEuler) Step(f dynamo.ForceField, masses []float64, pos, vel []dynamo.Vector, dt float64, nextPos, nextVel []dynamo.Vector) error {
	s.force = ensureScratch(s.force, pos)
	if err := f.Forces(pos, s.force); err != nil {
		return err
	}

	for i := range pos {
		for k := range pos[i] {
			nextVel[i][k] = vel[i][k] + dt*s.force[i][k]/masses[i]
			nextPos[i][k] = pos[i][k] + dt*nextVel[i][k]
		}
	}
	return nil
}

func ensureScratch(buf []dynamo.Vector, like []dynamo.Vector) []dynamo.Vector {
	dim := 0
	if len(like) > 0 {
		dim = len(like[0])
	}
	if len(buf) == len(like) && (len(buf) == 0 || len(buf[0]) == dim) {
		return buf
	}
	return dynamo.NewVectors(len(like), dim)
}
