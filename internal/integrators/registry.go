package integrators

import (
	"sort"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

// Default is the scheme used when no integrator is named.
const Default = "euler"

var registry = map[string]func() dynamo.Integrator{
	"euler":      func() dynamo.Integrator { return NewEuler() },
	"symplectic": func() dynamo.Integrator { return NewSymplecticEuler() },
	"leapfrog":   func() dynamo.Integrator { return NewLeapfrog() },
}

// New returns a fresh integrator for name. An empty name selects Default.
func New(name string) (dynamo.Integrator, error) {
	if name == "" {
		name = Default
	}
	fn, ok := registry[name]
	if !ok {
		return nil, dynamo.Errorf(dynamo.ValueKind, "integrators.New", "unknown integrator %q (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
