// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator], [AdaptiveIntegrator]: numerical stepper interfaces
//   - [Hamiltonian]: energy accessor for conservative systems
//
// # Example
//
//	dyn := physics.NewTwoMassSpring(p)
//	integ := integrators.NewRK45()
//	s := sim.New(dyn, integ)
//	traj, _ := s.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// States and systems are plain values; they may be shared read-only
// across goroutines. Integrator instances with scratch buffers are NOT
// safe for concurrent use; give each worker its own.
package dynamo
