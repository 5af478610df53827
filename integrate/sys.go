// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

// axpy returns x + s*k as a new slice.
func axpy(x []float32, s float32, k []float32) []float32 {
	y := make([]float32, len(x))
	for i := range x {
		y[i] = x[i] + s*k[i]
	}
	return y
}

// NewSysEuler returns a forward Euler stepper for a coupled system.
// All derivatives are evaluated at the same time point before any new
// value is committed.
func NewSysEuler(f SysFn, dt float32) SysStepper {
	return func(x []float32, t float32, args ...float32) []float32 {
		dx := make([]float32, len(x))
		f(dx, x, t, args...)
		return axpy(x, dt, dx)
	}
}

// NewSysMidpoint returns a midpoint stepper for a coupled system.
func NewSysMidpoint(f SysFn, dt float32) SysStepper {
	return func(x []float32, t float32, args ...float32) []float32 {
		n := len(x)
		k1 := make([]float32, n)
		f(k1, x, t, args...)
		k2 := make([]float32, n)
		f(k2, axpy(x, 0.5*dt, k1), t+0.5*dt, args...)
		return axpy(x, dt, k2)
	}
}

// NewSysRK4 returns a classical 4th-order Runge-Kutta stepper for a coupled
// system.
func NewSysRK4(f SysFn, dt float32) SysStepper {
	return func(x []float32, t float32, args ...float32) []float32 {
		n := len(x)
		k1 := make([]float32, n)
		f(k1, x, t, args...)
		k2 := make([]float32, n)
		f(k2, axpy(x, 0.5*dt, k1), t+0.5*dt, args...)
		k3 := make([]float32, n)
		f(k3, axpy(x, 0.5*dt, k2), t+0.5*dt, args...)
		k4 := make([]float32, n)
		f(k4, axpy(x, dt, k3), t+dt, args...)
		y := make([]float32, n)
		for i := range x {
			y[i] = x[i] + dt/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
		}
		return y
	}
}
