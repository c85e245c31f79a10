// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: single-step numerical integrator
//   - [AdaptiveIntegrator]: integrator with error-controlled step size
//   - [Configurable]: systems whose parameters can be tuned at runtime
//
// # Example
//
//	dyn := physics.NewLotkaVolterra()
//	integ := integrators.NewRK45()
//	traj, err := sim.Integrate(ctx, dyn, integ, dyn.DefaultState(), sim.DefaultGrid(), dynamo.DefaultConfig())
//
// # Errors
//
// Solver failures are reported as [*SimulationError] values wrapping one of
// the sentinel errors, so callers can use errors.Is and errors.As.
package dynamo
