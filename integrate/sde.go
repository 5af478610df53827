// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"fmt"
	"math/rand"

	"github.com/goki/mat32"
)

// NewEulerMaruyama returns an Euler-Maruyama stepper for the scalar SDE
// dx = f(x,t)*dt + g(x,t)*dW:
// x' = x + dt*f(x,t) + g(x,t)*sqrt(dt)*z, z ~ N(0,1).
// The stepper owns a private random stream seeded with seed, so a given
// seed reproduces the same trajectory.
func NewEulerMaruyama(f, g Fn, dt float32, seed int64) Stepper {
	rnd := rand.New(rand.NewSource(seed))
	sqdt := mat32.Sqrt(dt)
	return func(x, t float32, args ...float32) float32 {
		z := float32(rnd.NormFloat64())
		return x + dt*f(x, t, args...) + g(x, t, args...)*sqdt*z
	}
}

// SysDiffFn is the diffusion term of a coupled system of SDEs: it returns
// the per-variable diffusion coefficients at (x, t).
type SysDiffFn func(x []float32, t float32, args ...float32) []float32

// NewSysEulerMaruyama returns an Euler-Maruyama stepper for a coupled system
// of n equations, drawing an independent standard-normal per variable per
// step.  The diffusion function is probed at construction; an output length
// other than n fails with ErrDimensionMismatch.
func NewSysEulerMaruyama(f SysFn, g SysDiffFn, n int, dt float32, seed int64) (SysStepper, error) {
	probe := g(make([]float32, n), 0)
	if len(probe) != n {
		return nil, fmt.Errorf("%w: diffusion output has %d values for a %d-variable state", ErrDimensionMismatch, len(probe), n)
	}
	rnd := rand.New(rand.NewSource(seed))
	sqdt := mat32.Sqrt(dt)
	return func(x []float32, t float32, args ...float32) []float32 {
		dx := make([]float32, n)
		f(dx, x, t, args...)
		gv := g(x, t, args...)
		y := make([]float32, n)
		for i := range x {
			y[i] = x[i] + dt*dx[i] + gv[i]*sqdt*float32(rnd.NormFloat64())
		}
		return y
	}, nil
}
