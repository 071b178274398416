// Package physics models the vertical two-mass, two-spring chain:
// spring 1 fixed to the ceiling, mass 1 below it, spring 2 between the
// masses. Both masses move vertically under gravity and linear spring
// forces; there is no damping and no external drive.
//
// The package provides the validated [Params] value, the closed-form
// static [Equilibrium], and the [TwoMassSpring] state-space model used
// by the integrators.
package physics
