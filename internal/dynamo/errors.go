package dynamo

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind int

const (
	// TypeKind marks an argument that is missing or not a usable number.
	TypeKind Kind = iota + 1
	// ShapeKind marks mismatched tuple lengths or dimensionality.
	ShapeKind
	// ValueKind marks a bad element in a state reassignment or an unknown option.
	ValueKind
	// DegenerateKind marks a physical configuration the force law cannot
	// evaluate: zero mass or two bodies at the same point.
	DegenerateKind
)

func (k Kind) String() string {
	switch k {
	case TypeKind:
		return "type"
	case ShapeKind:
		return "shape"
	case ValueKind:
		return "value"
	case DegenerateKind:
		return "degenerate configuration"
	default:
		return "unknown"
	}
}

// Domain errors for simulation operations. They match any [*Error] of the
// same kind under errors.Is.
var (
	ErrType       = &Error{Kind: TypeKind, Msg: "invalid type"}
	ErrShape      = &Error{Kind: ShapeKind, Msg: "shape mismatch"}
	ErrValue      = &Error{Kind: ValueKind, Msg: "invalid value"}
	ErrDegenerate = &Error{Kind: DegenerateKind, Msg: "degenerate configuration"}

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// Error is a classified validation failure.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
}

// Errorf builds an Error of kind k for operation op.
func Errorf(k Kind, op, format string, args ...any) *Error {
	return &Error{Kind: k, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("dynamo: %s error: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf reports the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Bodies  []int
	Wrapped error
}

func (e *SimulationError) Error() string {
	if len(e.Bodies) > 0 {
		return fmt.Sprintf("step %d (t=%.4f), bodies %v: %v", e.Step, e.Time, e.Bodies, e.Wrapped)
	}
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
