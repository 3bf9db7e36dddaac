// Package dynamo provides the core primitives shared by the n-body engine.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [Vector]: a D-dimensional coordinate tuple
//   - [ForceField]: computes the net force on every body
//   - [Integrator]: advances positions and velocities by one step
//   - [Snapshot]: read-only view of the system at one time step
//   - [Metric] and [Observer]: per-step hooks run by a simulation
//
// # Errors
//
// Validation failures are reported as [*Error] values classified by [Kind].
// Use errors.Is against [ErrType], [ErrShape], [ErrValue] or [ErrDegenerate]
// to test the category:
//
//	_, err := physics.NewBody(nil, nil, 1)
//	if errors.Is(err, dynamo.ErrType) {
//	    ...
//	}
//
// Failures that happen mid-run are wrapped in [*SimulationError], which
// records the step and time at which the run stopped.
//
// # Thread Safety
//
// Nothing in this package holds shared mutable state. [ParallelFor] is the
// only helper that starts goroutines and it returns after all of them exit.
package dynamo
