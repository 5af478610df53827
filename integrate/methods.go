// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"errors"
	"fmt"

	"github.com/goki/ki/kit"
)

var (
	// ErrUnknownMethod indicates an unrecognized or unsupported
	// integration method name.
	ErrUnknownMethod = errors.New("integrate: unknown method")

	// ErrDimensionMismatch indicates a diffusion function whose output
	// shape does not match the state's shape.
	ErrDimensionMismatch = errors.New("integrate: dimension mismatch")
)

// Fn is the right-hand side of dx/dt = f(x, t, args...): it maps the current
// state value and time (plus any extra per-call arguments, e.g. an external
// drive) to the derivative of the state.
type Fn func(x, t float32, args ...float32) float32

// Stepper advances a state value by one fixed dt step: given x at time t it
// returns the value at t+dt.  dt is bound at construction.
type Stepper func(x, t float32, args ...float32) float32

// SysFn is the right-hand side of a coupled system: it writes the derivative
// of every state variable at (x, t) into dx.  It must read only x, never dx.
type SysFn func(dx, x []float32, t float32, args ...float32)

// SysStepper advances a coupled system by one dt step, returning a freshly
// allocated new state.  The input slice is never mutated.
type SysStepper func(x []float32, t float32, args ...float32) []float32

// Methods are the supported numerical integration schemes.
type Methods int32

const (
	// Euler is the forward Euler scheme: x' = x + dt * f(x, t).
	Euler Methods = iota

	// Midpoint evaluates the derivative at the half step.
	Midpoint

	// RK4 is the classical 4th-order Runge-Kutta scheme.
	RK4

	// ExpEuler integrates the linear part of the derivative exactly:
	// for f(x,t) = -x/tau + b it computes
	// x' = x*exp(-dt/tau) + b*tau*(1-exp(-dt/tau)).
	ExpEuler

	// EulerMaruyama is the stochastic Euler scheme; it needs a diffusion
	// function, so it is built with NewEulerMaruyama, not New.
	EulerMaruyama

	MethodsN
)

var KiT_Methods = kit.Enums.AddEnum(MethodsN, kit.NotBitFlag, nil)

var methodNames = [MethodsN]string{"euler", "midpoint", "rk4", "exponential_euler", "euler_maruyama"}

func (m Methods) String() string {
	if m < 0 || m >= MethodsN {
		return fmt.Sprintf("Methods(%d)", int32(m))
	}
	return methodNames[m]
}

// MethodByName returns the method for the given name, as used in model
// declarations (e.g. "euler", "rk4", "exponential_euler").
func MethodByName(name string) (Methods, error) {
	for m := Euler; m < MethodsN; m++ {
		if methodNames[m] == name {
			return m, nil
		}
	}
	return MethodsN, fmt.Errorf("%w: %q (have %v)", ErrUnknownMethod, name, methodNames)
}

// New returns a one-step update function for the given deterministic method,
// derivative function, and fixed time step dt.
func New(method Methods, f Fn, dt float32) (Stepper, error) {
	switch method {
	case Euler:
		return NewEuler(f, dt), nil
	case Midpoint:
		return NewMidpoint(f, dt), nil
	case RK4:
		return NewRK4(f, dt), nil
	case ExpEuler:
		return NewExpEuler(f, dt), nil
	case EulerMaruyama:
		return nil, fmt.Errorf("%w: euler_maruyama needs a diffusion function -- use NewEulerMaruyama", ErrUnknownMethod)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int32(method))
}

// NewSys returns a one-step update function for a coupled system of
// equations, for the given deterministic method and fixed time step dt.
// Exponential Euler is inherently per-variable and is not available here.
func NewSys(method Methods, f SysFn, dt float32) (SysStepper, error) {
	switch method {
	case Euler:
		return NewSysEuler(f, dt), nil
	case Midpoint:
		return NewSysMidpoint(f, dt), nil
	case RK4:
		return NewSysRK4(f, dt), nil
	case ExpEuler:
		return nil, fmt.Errorf("%w: exponential_euler is per-variable -- use NewExpEuler on each variable", ErrUnknownMethod)
	case EulerMaruyama:
		return nil, fmt.Errorf("%w: euler_maruyama needs a diffusion function -- use NewSysEulerMaruyama", ErrUnknownMethod)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int32(method))
}
