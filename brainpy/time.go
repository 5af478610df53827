// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brainpy

// Time contains the global clock state for running a network: all
// populations in a network share the same dt, fixed for the run.
type Time struct {

	// accumulated simulation time, in ms.
	T float32

	// total step count; increments continuously from whenever it was
	// last reset, across multiple Run calls.
	Step int

	// amount of time per step, in ms.
	Dt float32 `def:"0.1"`
}

// NewTime returns a new Time with the given dt (0 uses the default).
func NewTime(dt float32) *Time {
	tm := &Time{Dt: dt}
	if tm.Dt == 0 {
		tm.Defaults()
	}
	return tm
}

// Defaults sets default values.
func (tm *Time) Defaults() {
	tm.Dt = 0.1
}

// Reset resets the counters back to zero.
func (tm *Time) Reset() {
	tm.T = 0
	tm.Step = 0
	if tm.Dt == 0 {
		tm.Defaults()
	}
}

// StepInc increments the clock by one step.
func (tm *Time) StepInc() {
	tm.Step++
	tm.T += tm.Dt
}
