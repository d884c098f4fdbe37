// Package ode provides the core primitives for integrating first-order ODE
// systems dv/dt = f(v, t):
//
//   - [State]: vector representing the discretized solution
//   - [System]: interface for the right-hand side
//   - [Integrator], [AdaptiveIntegrator]: stepping interfaces
//   - [Solution]: dense, continuously evaluable output of a run
//
// Integration may run in either time direction; backward runs simply carry
// negative step sizes. Nothing in this package is safe for concurrent use.
package ode
