// Package epi provides core primitives for compartmental epidemic and
// diffusion simulations.
//
// The package defines the fundamental interfaces and types shared by the
// rest of the engine:
//
//   - [State]: (S, I, R) compartment vector
//   - [Params]: one immutable parameter set (population, rates, horizon)
//   - [System]: interface for model variants (dX/dt = f(X, t, params))
//   - [Integrator]: numerical stepping interface
//   - [Trajectory]: the sampled solution of one run
//
// # Thread Safety
//
// Systems are stateless and trajectories are immutable once returned, so
// concurrent runs never share mutable state: every run operates on its own
// Params and produces its own Trajectory.
package epi
