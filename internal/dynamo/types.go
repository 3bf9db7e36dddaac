package dynamo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vector is an ordered tuple of D coordinates.
type Vector []float64

func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

// IsValid reports whether every coordinate is a finite number.
func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, 2)
}

func (v Vector) Add(other Vector) Vector {
	result := make(Vector, len(v))
	floats.AddTo(result, v, other)
	return result
}

func (v Vector) Sub(other Vector) Vector {
	result := make(Vector, len(v))
	floats.SubTo(result, v, other)
	return result
}

func (v Vector) Scale(factor float64) Vector {
	result := make(Vector, len(v))
	floats.ScaleTo(result, factor, v)
	return result
}

// NewVectors allocates n zero vectors of dimension dim backed by one slice.
func NewVectors(n, dim int) []Vector {
	backing := make([]float64, n*dim)
	vs := make([]Vector, n)
	for i := range vs {
		vs[i] = Vector(backing[i*dim : (i+1)*dim : (i+1)*dim])
	}
	return vs
}

// CopyVectors copies src into dst element-wise. Both must have equal shape.
func CopyVectors(dst, src []Vector) {
	for i := range src {
		copy(dst[i], src[i])
	}
}

// ForceField computes the net force acting on every body for the given
// positions, writing the result into out.
type ForceField interface {
	Forces(pos []Vector, out []Vector) error
}

// Integrator advances every body by one step of size dt. It reads pos and
// vel and writes the new state into nextPos and nextVel; it never writes to
// pos or vel.
type Integrator interface {
	Name() string
	Step(f ForceField, masses []float64, pos, vel []Vector, dt float64, nextPos, nextVel []Vector) error
}

// Snapshot is a read-only view of the system at one time step. Its slices
// are owned by the simulation and are only valid for the duration of the
// callback that receives them.
type Snapshot struct {
	Step       int
	Time       float64
	Masses     []float64
	Positions  []Vector
	Velocities []Vector
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Snapshot)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(s Snapshot)

func (f ObserverFunc) OnStep(s Snapshot) { f(s) }
