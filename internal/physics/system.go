package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
)

// Params are the simulation parameters shared by every body of a System.
type Params struct {
	G          float64
	Dim        int
	Steps      int
	Dt         float64
	Integrator string
	Workers    int
}

func DefaultParams() Params {
	return Params{
		G:          1.0,
		Dim:        3,
		Steps:      1000,
		Dt:         0.01,
		Integrator: integrators.Default,
		Workers:    1,
	}
}

// Validate checks the parameters Simulate depends on. It allocates nothing.
func (p Params) Validate() error {
	const op = "physics.Params.Validate"

	if math.IsNaN(p.G) || math.IsInf(p.G, 0) {
		return dynamo.Errorf(dynamo.TypeKind, op, "G must be a finite number")
	}
	if p.Steps < 0 {
		return dynamo.Errorf(dynamo.TypeKind, op, "Steps must be a non-negative integer, got %d", p.Steps)
	}
	if math.IsNaN(p.Dt) || math.IsInf(p.Dt, 0) {
		return dynamo.Errorf(dynamo.TypeKind, op, "Dt must be a finite number")
	}
	if p.Workers < 0 {
		return dynamo.Errorf(dynamo.ValueKind, op, "Workers must not be negative, got %d", p.Workers)
	}
	return nil
}

// System is a fixed set of bodies plus the parameters that drive their
// integration. Body state is copied into dense arrays indexed by body id at
// construction; the *Body values passed in are never modified.
//
// A System is not safe for concurrent use. Separate Systems share nothing.
type System struct {
	params Params
	bodies []*Body

	masses []float64
	pos0   []dynamo.Vector
	vel0   []dynamo.Vector
	pos    []dynamo.Vector
	vel    []dynamo.Vector

	metrics   []dynamo.Metric
	observers []dynamo.Observer

	traj *Trajectory
}

// NewSystem builds a System over bodies, indexed in argument order.
func NewSystem(params Params, bodies ...*Body) (*System, error) {
	const op = "physics.NewSystem"

	if params.Dim < 1 {
		return nil, dynamo.Errorf(dynamo.ShapeKind, op, "dimension must be at least 1, got %d", params.Dim)
	}
	for i, b := range bodies {
		if b == nil {
			return nil, dynamo.Errorf(dynamo.TypeKind, op, "body %d is not a Body", i)
		}
		if b.Dim() != params.Dim {
			return nil, dynamo.Errorf(dynamo.ShapeKind, op, "all bodies must have dimension %d, body %d has %d", params.Dim, i, b.Dim())
		}
	}

	n := len(bodies)
	s := &System{
		params: params,
		bodies: append([]*Body(nil), bodies...),
		masses: make([]float64, n),
		pos0:   dynamo.NewVectors(n, params.Dim),
		vel0:   dynamo.NewVectors(n, params.Dim),
		pos:    dynamo.NewVectors(n, params.Dim),
		vel:    dynamo.NewVectors(n, params.Dim),
	}
	for i, b := range bodies {
		s.masses[i] = b.mass
		copy(s.pos0[i], b.position0)
		copy(s.vel0[i], b.velocity0)
	}
	dynamo.CopyVectors(s.pos, s.pos0)
	dynamo.CopyVectors(s.vel, s.vel0)

	return s, nil
}

func (s *System) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *System) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *System) Len() int       { return len(s.bodies) }
func (s *System) Params() Params { return s.params }

// Body returns the i-th body as it was passed to NewSystem.
func (s *System) Body(i int) *Body { return s.bodies[i] }

func (s *System) Bodies() []*Body {
	return append([]*Body(nil), s.bodies...)
}

func (s *System) Masses() []float64 {
	return append([]float64(nil), s.masses...)
}

// Trajectory returns the result of the last successful Simulate, or nil.
// It shares storage with the System; use T, R and V for copies.
func (s *System) Trajectory() *Trajectory { return s.traj }

// T returns a copy of the time sequence of the last run, or nil before
// Simulate.
func (s *System) T() []float64 {
	if s.traj == nil {
		return nil
	}
	return append([]float64(nil), s.traj.Times...)
}

// R returns a copy of the per-body position sequences of the last run, or
// nil.
func (s *System) R() [][]dynamo.Vector {
	if s.traj == nil {
		return nil
	}
	return cloneSeries(s.traj.Positions)
}

// V returns a copy of the per-body velocity sequences of the last run, or
// nil.
func (s *System) V() [][]dynamo.Vector {
	if s.traj == nil {
		return nil
	}
	return cloneSeries(s.traj.Velocities)
}

func cloneSeries(series [][]dynamo.Vector) [][]dynamo.Vector {
	out := make([][]dynamo.Vector, len(series))
	for i, rows := range series {
		dim := 0
		if len(rows) > 0 {
			dim = len(rows[0])
		}
		out[i] = dynamo.NewVectors(len(rows), dim)
		dynamo.CopyVectors(out[i], rows)
	}
	return out
}

// Current returns copies of body i's current position and velocity.
func (s *System) Current(i int) (dynamo.Vector, dynamo.Vector) {
	return s.pos[i].Clone(), s.vel[i].Clone()
}

// Snapshot returns fresh bodies carrying the original initial state and the
// System's current state.
func (s *System) Snapshot() ([]*Body, error) {
	out := make([]*Body, len(s.bodies))
	for i, b := range s.bodies {
		c, err := NewBody(b.position0, b.velocity0, b.mass)
		if err != nil {
			return nil, err
		}
		if err := c.SetPositionT(s.pos[i]); err != nil {
			return nil, err
		}
		if err := c.SetVelocityT(s.vel[i]); err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func (s *System) Momentum() dynamo.Vector {
	return Momentum(s.masses, s.vel)
}

func (s *System) Energy() float64 {
	return Energy(s.params.G, s.masses, s.pos, s.vel)
}

func (s *System) String() string {
	return fmt.Sprintf("System in %d dimension with %d bodies", s.params.Dim, len(s.bodies))
}
