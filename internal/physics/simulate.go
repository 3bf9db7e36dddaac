package physics

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
)

// Simulate integrates the system for Params.Steps steps of size Params.Dt
// and stores the resulting trajectory on the System.
//
// Every call restarts from the bodies' initial state. Within a step the
// force on every body is computed from that step's positions; the new
// state is written back only after all bodies have been advanced.
//
// Parameters are validated before anything is allocated. A body with zero
// mass, or two bodies meeting at one point, stop the run with a
// degenerate-configuration error.
//
// A failed or canceled run leaves no trajectory behind: T, R and V report
// nil and the current state is the initial state.
func (s *System) Simulate(ctx context.Context) (*Trajectory, error) {
	s.traj = nil
	traj, err := s.simulate(ctx)
	if err != nil {
		s.reset()
		return nil, err
	}
	s.traj = traj
	return traj, nil
}

func (s *System) reset() {
	dynamo.CopyVectors(s.pos, s.pos0)
	dynamo.CopyVectors(s.vel, s.vel0)
}

func (s *System) simulate(ctx context.Context) (*Trajectory, error) {
	if err := s.params.Validate(); err != nil {
		return nil, err
	}
	for i, m := range s.masses {
		if m == 0 {
			return nil, dynamo.Errorf(dynamo.DegenerateKind, "physics.System.Simulate", "body %d has zero mass", i)
		}
	}

	integ, err := integrators.New(s.params.Integrator)
	if err != nil {
		return nil, err
	}

	steps, dt := s.params.Steps, s.params.Dt
	field := NewGravity(s.params.G, s.masses, s.params.Workers)
	traj := newTrajectory(s.masses, steps, s.params.Dim)
	traj.Integrator = integ.Name()

	s.reset()
	nextPos := dynamo.NewVectors(len(s.pos), s.params.Dim)
	nextVel := dynamo.NewVectors(len(s.vel), s.params.Dim)

	for _, m := range s.metrics {
		m.Reset()
	}

	traj.record(0, s.pos, s.vel)
	s.observe(0, 0)

	for n := 0; n < steps; n++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		traj.Times[n+1] = dt + traj.Times[n]

		if err := integ.Step(field, s.masses, s.pos, s.vel, dt, nextPos, nextVel); err != nil {
			var simErr *dynamo.SimulationError
			if errors.As(err, &simErr) {
				simErr.Step = n
				simErr.Time = traj.Times[n]
				return nil, simErr
			}
			return nil, &dynamo.SimulationError{Step: n, Time: traj.Times[n], Wrapped: err}
		}

		s.pos, nextPos = nextPos, s.pos
		s.vel, nextVel = nextVel, s.vel

		traj.record(n+1, s.pos, s.vel)
		s.observe(n+1, traj.Times[n+1])
	}

	for _, m := range s.metrics {
		traj.Metrics[m.Name()] = m.Value()
	}

	return traj, nil
}

func (s *System) observe(step int, t float64) {
	if len(s.metrics) == 0 && len(s.observers) == 0 {
		return
	}
	snap := dynamo.Snapshot{
		Step:       step,
		Time:       t,
		Masses:     s.masses,
		Positions:  s.pos,
		Velocities: s.vel,
	}
	for _, m := range s.metrics {
		m.Observe(snap)
	}
	for _, o := range s.observers {
		o.OnStep(snap)
	}
}
