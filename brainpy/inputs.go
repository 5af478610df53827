// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brainpy

import (
	"fmt"

	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

// InputModes selects how an input waveform is applied to its target
// variable each step.
type InputModes int32

const (
	// Set overwrites the target variable with the waveform value ("=").
	Set InputModes = iota

	// Add increments the target variable by the waveform value ("+").
	Add

	InputModesN
)

var KiT_InputModes = kit.Enums.AddEnum(InputModesN, kit.NotBitFlag, nil)

var inputModeNames = [InputModesN]string{"=", "+"}

func (im InputModes) String() string {
	if im < 0 || im >= InputModesN {
		return fmt.Sprintf("InputModes(%d)", int32(im))
	}
	return inputModeNames[im]
}

// InputModeByName returns the mode for "=" or "+".
func InputModeByName(name string) (InputModes, error) {
	for im := Set; im < InputModesN; im++ {
		if inputModeNames[im] == name {
			return im, nil
		}
	}
	return InputModesN, fmt.Errorf("brainpy: unknown input mode %q (have %v)", name, inputModeNames)
}

// Input applies a precomputed per-step waveform to one state variable of
// one population during a Run.  The target variable is named directly
// ("Inp") or, for synapse connections, with a pre. / post. prefix
// ("pre.Sp") to address the connected neuron groups.  The waveform value
// for the current step is broadcast over all elements.
type Input struct {

	// name of the target population.
	Pop string

	// target variable, optionally pre. / post. prefixed.
	Var string

	// per-step values; length must equal the number of run steps.
	Waveform []float32

	// overwrite (=) or additive (+) application.
	Mode InputModes
}

// NumSteps returns the number of simulation steps covering the given
// duration at the given dt, rounded via ceiling.
func NumSteps(duration, dt float32) int {
	return int(mat32.Ceil(duration / dt))
}

// ConstantCurrent returns a waveform holding amp for the whole duration.
func ConstantCurrent(amp, duration, dt float32) []float32 {
	wave := make([]float32, NumSteps(duration, dt))
	for i := range wave {
		wave[i] = amp
	}
	return wave
}

// SpikeCurrent returns a waveform that is amp at the step containing each
// given time and 0 elsewhere.
func SpikeCurrent(times []float32, amp, duration, dt float32) []float32 {
	wave := make([]float32, NumSteps(duration, dt))
	for _, tv := range times {
		si := int(tv / dt)
		if si >= 0 && si < len(wave) {
			wave[si] = amp
		}
	}
	return wave
}

// RampCurrent returns a waveform ramping linearly from c0 to c1 over the
// duration.
func RampCurrent(c0, c1, duration, dt float32) []float32 {
	n := NumSteps(duration, dt)
	wave := make([]float32, n)
	for i := range wave {
		frac := float32(0)
		if n > 1 {
			frac = float32(i) / float32(n-1)
		}
		wave[i] = c0 + (c1-c0)*frac
	}
	return wave
}
