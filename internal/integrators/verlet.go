package integrators

import "github.com/san-kum/nbodysim/internal/dynamo"

// Leapfrog is kick-drift-kick leapfrog. It evaluates the force field twice
// per step.
type Leapfrog struct {
	force   []dynamo.Vector
	halfVel []dynamo.Vector
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Name() string { return "leapfrog" }

func (l *Leapfrog) Step(f dynamo.ForceField, masses []float64, pos, vel []dynamo.Vector, dt float64, nextPos, nextVel []dynamo.Vector) error {
	l.force = ensureScratch(l.force, pos)
	l.halfVel = ensureScratch(l.halfVel, pos)

	if err := f.Forces(pos, l.force); err != nil {
		return err
	}

	halfDt := 0.5 * dt
	for i := range pos {
		for k := range pos[i] {
			l.halfVel[i][k] = vel[i][k] + halfDt*l.force[i][k]/masses[i]
			nextPos[i][k] = pos[i][k] + dt*l.halfVel[i][k]
		}
	}

	if err := f.Forces(nextPos, l.force); err != nil {
		return err
	}

	for i := range pos {
		for k := range pos[i] {
			nextVel[i][k] = l.halfVel[i][k] + halfDt*l.force[i][k]/masses[i]
		}
	}
	return nil
}
