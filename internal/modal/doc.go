// Package modal provides the analytical counterpart to numerical
// integration: the mass/stiffness matrices of the two-mass chain, the
// closed-form generalized eigensolve for natural frequencies and mode
// shapes, and mode-superposition reconstruction of free-vibration
// trajectories from initial conditions.
//
// The eigenpairs satisfy (K - w^2 M) v = 0 and are M- and K-orthogonal,
// which is what lets [Fit] treat each mode independently.
package modal
