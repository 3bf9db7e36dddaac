package physics

import (
	"fmt"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

// Body is one point mass. Its initial state is fixed at construction; its
// current state may be reassigned through the validated setters.
type Body struct {
	position0 dynamo.Vector
	velocity0 dynamo.Vector
	mass      float64
	dim       int

	positionT dynamo.Vector
	velocityT dynamo.Vector
}

// NewBody validates and stores the initial state of a point mass. The
// slices are copied.
func NewBody(position0, velocity0 []float64, mass float64) (*Body, error) {
	const op = "physics.NewBody"

	if position0 == nil {
		return nil, dynamo.Errorf(dynamo.TypeKind, op, "position0 must be a coordinate tuple")
	}
	if velocity0 == nil {
		return nil, dynamo.Errorf(dynamo.TypeKind, op, "velocity0 must be a coordinate tuple")
	}
	if len(position0) != len(velocity0) {
		return nil, dynamo.Errorf(dynamo.ShapeKind, op, "position0 and velocity0 must have same length (%d != %d)", len(position0), len(velocity0))
	}
	if !dynamo.Vector(position0).IsValid() {
		return nil, dynamo.Errorf(dynamo.TypeKind, op, "all values of position0 must be finite numbers")
	}
	if !dynamo.Vector(velocity0).IsValid() {
		return nil, dynamo.Errorf(dynamo.TypeKind, op, "all values of velocity0 must be finite numbers")
	}
	if !(dynamo.Vector{mass}).IsValid() {
		return nil, dynamo.Errorf(dynamo.TypeKind, op, "mass must be a finite number")
	}

	p := dynamo.Vector(position0).Clone()
	v := dynamo.Vector(velocity0).Clone()
	return &Body{
		position0: p,
		velocity0: v,
		mass:      mass,
		dim:       len(p),
		positionT: p.Clone(),
		velocityT: v.Clone(),
	}, nil
}

// MustBody is NewBody for literals known to be valid. It panics on error.
func MustBody(position0, velocity0 []float64, mass float64) *Body {
	b, err := NewBody(position0, velocity0, mass)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Body) Position0() dynamo.Vector { return b.position0.Clone() }
func (b *Body) Velocity0() dynamo.Vector { return b.velocity0.Clone() }
func (b *Body) Mass() float64            { return b.mass }
func (b *Body) Dim() int                 { return b.dim }
func (b *Body) PositionT() dynamo.Vector { return b.positionT.Clone() }
func (b *Body) VelocityT() dynamo.Vector { return b.velocityT.Clone() }

// SetPositionT replaces the current position. The length is not checked
// against Dim.
func (b *Body) SetPositionT(value []float64) error {
	v, err := checkState("physics.Body.SetPositionT", "position", value)
	if err != nil {
		return err
	}
	b.positionT = v
	return nil
}

// SetVelocityT replaces the current velocity. The length is not checked
// against Dim.
func (b *Body) SetVelocityT(value []float64) error {
	v, err := checkState("physics.Body.SetVelocityT", "velocity", value)
	if err != nil {
		return err
	}
	b.velocityT = v
	return nil
}

func checkState(op, field string, value []float64) (dynamo.Vector, error) {
	if value == nil {
		return nil, dynamo.Errorf(dynamo.TypeKind, op, "%s must be a coordinate tuple", field)
	}
	v := dynamo.Vector(value)
	if !v.IsValid() {
		return nil, dynamo.Errorf(dynamo.ValueKind, op, "all values of %s must be finite numbers", field)
	}
	return v.Clone(), nil
}

func (b *Body) String() string {
	return fmt.Sprintf("Body with mass %g and initial position %v and velocity %v", b.mass, []float64(b.position0), []float64(b.velocity0))
}
