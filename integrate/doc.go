// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package integrate turns a user-supplied derivative function into a one-step
numerical update function (a Stepper) for a chosen integration scheme.

Deterministic schemes: forward Euler, midpoint, classical 4th-order
Runge-Kutta, and exponential Euler (which treats the linear part of the
derivative exactly, and so remains stable for stiff decay terms such as
synaptic conductance decay even when dt approaches tau).  The stochastic
scheme is Euler-Maruyama, with an independent standard-normal draw per state
variable per step, scaled by sqrt(dt) and the user-supplied diffusion
coefficient.

Steppers are pure functions of their inputs: they never mutate the state
they are given, and for the deterministic schemes identical inputs always
produce identical outputs.  The Euler-Maruyama steppers own a private seeded
random stream, so a given seed reproduces the same trajectory.

Coupled multi-variable systems use the Sys variants, which evaluate all
derivatives at the same time point before committing any new values, so
there are no read-after-write hazards across variables within one step.
*/
package integrate
