// Package analysis offers post-run diagnostics: spectral estimation of
// oscillation frequencies and pointwise comparison of trajectories, used
// to cross-validate the numerical integrator against the closed-form
// modal solution.
package analysis
