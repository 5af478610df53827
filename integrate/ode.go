// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"math"

	"github.com/goki/mat32"
)

// NewEuler returns a forward Euler stepper: x' = x + dt * f(x, t).
func NewEuler(f Fn, dt float32) Stepper {
	return func(x, t float32, args ...float32) float32 {
		return x + dt*f(x, t, args...)
	}
}

// NewMidpoint returns a midpoint (2nd-order Runge-Kutta) stepper:
// x' = x + dt * f(x + dt/2 * f(x,t), t + dt/2).
func NewMidpoint(f Fn, dt float32) Stepper {
	return func(x, t float32, args ...float32) float32 {
		k1 := f(x, t, args...)
		return x + dt*f(x+0.5*dt*k1, t+0.5*dt, args...)
	}
}

// NewRK4 returns a classical 4th-order Runge-Kutta stepper, combining four
// derivative evaluations at t, t+dt/2, t+dt/2, t+dt with weights
// 1/6, 1/3, 1/3, 1/6.
func NewRK4(f Fn, dt float32) Stepper {
	return func(x, t float32, args ...float32) float32 {
		k1 := f(x, t, args...)
		k2 := f(x+0.5*dt*k1, t+0.5*dt, args...)
		k3 := f(x+0.5*dt*k2, t+0.5*dt, args...)
		k4 := f(x+dt*k3, t+dt, args...)
		return x + dt/6*(k1+2*k2+2*k3+k4)
	}
}

// linProbe is the state perturbation used to recover the linear coefficient
// of the derivative by finite difference.  For a derivative that is linear
// in the state the recovered slope is exact up to float roundoff, whatever
// the probe size; it only needs to be large enough to stay clear of
// cancellation noise.
const linProbe = 1e-2

// NewExpEuler returns an exponential Euler stepper.  The linear-in-state
// coefficient a = df/dx is recovered from f itself by a finite difference,
// then x' = x + f(x,t) * (exp(a*dt) - 1) / a, which is exact for any
// derivative of the form -x/tau + b and falls back to forward Euler as the
// linear coefficient vanishes.
func NewExpEuler(f Fn, dt float32) Stepper {
	return func(x, t float32, args ...float32) float32 {
		d := float64(f(x, t, args...))
		h := linProbe * (1 + mat32.Abs(x))
		a := (float64(f(x+h, t, args...)) - d) / float64(h)
		if math.Abs(a) < 1e-12 {
			return x + dt*float32(d)
		}
		return x + float32(d*(math.Exp(a*float64(dt))-1)/a)
	}
}
