// Package physics implements the direct-summation Newtonian n-body engine.
//
//   - [Body]: a validated point mass with initial and current state
//   - [System]: a fixed set of bodies plus [Params], advanced by
//     [System.Simulate]
//   - [Gravity]: the O(n²) pairwise force law
//   - [Trajectory]: times, positions and velocities of every step
//
// # Example
//
//	sun, _ := physics.NewBody([]float64{0, 0, 0}, []float64{0, 0, 0}, 1000)
//	probe, _ := physics.NewBody([]float64{10, 0, 0}, []float64{0, 10, 0}, 1)
//	p := physics.DefaultParams()
//	sys, _ := physics.NewSystem(p, sun, probe)
//	traj, err := sys.Simulate(ctx)
//
// # Integration
//
// The default scheme is explicit forward Euler: the velocity is kicked by
// the force at the current positions and the position drifts with the
// velocity from before the kick. Energy is not conserved under this
// scheme; total momentum is, because the pairwise forces cancel.
package physics
