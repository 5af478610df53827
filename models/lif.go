// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package models

import (
	"fmt"

	"github.com/LuckyHFC/BrainPy/brainpy"
	"github.com/LuckyHFC/BrainPy/integrate"
	"github.com/emer/emergent/erand"
)

// NoiseParams contains parameters for per-step input noise, added to the
// integrated current when On.
type NoiseParams struct {
	erand.RndParams

	// whether to add noise at all.
	On bool `desc:"add noise to the input current each step"`
}

func (np *NoiseParams) Defaults() {
	np.Dist = erand.Gaussian
	np.Mean = 0
	np.Var = 1
}

// LIF is the leaky integrate-and-fire neuron model:
//
//	tau * dV/dt = -(V - Vrest) + R*I
//
// with spike emission at Vth, reset to Vreset, and an optional absolute
// refractory period during which the membrane holds at Vreset.
// The input current I is read from Inp and cleared every step, so synapse
// outputs and injected waveforms accumulate into one step's drive.
//
// State variables: V (membrane potential), Sp (1 on a spike step, else 0),
// SpT (time of last spike), Inp (input current).
type LIF struct {

	// resting potential, mV.
	Vrest float32 `def:"0" desc:"resting membrane potential"`

	// post-spike reset potential, mV.
	Vreset float32 `def:"-5" desc:"reset potential after a spike"`

	// spike threshold, mV.
	Vth float32 `def:"20" desc:"spike threshold"`

	// membrane resistance.
	R float32 `def:"1" desc:"membrane resistance"`

	// membrane time constant, ms.
	Tau float32 `def:"10" min:"0" desc:"membrane time constant"`

	// absolute refractory period, ms.
	TRef float32 `def:"0" min:"0" desc:"absolute refractory period"`

	// numerical integration scheme for the membrane equation.
	Method integrate.Methods `desc:"integration method for the membrane equation"`

	// input current noise.
	Noise NoiseParams `view:"inline" desc:"input current noise parameters"`

	vStep integrate.Stepper
}

// NewLIF returns a LIF model with default parameters.
func NewLIF() *LIF {
	lf := &LIF{}
	lf.Defaults()
	return lf
}

func (lf *LIF) Defaults() {
	lf.Vrest = 0
	lf.Vreset = -5
	lf.Vth = 20
	lf.R = 1
	lf.Tau = 10
	lf.TRef = 0
	lf.Method = integrate.ExpEuler
	lf.Noise.Defaults()
}

func (lf *LIF) Name() string {
	return "LIF"
}

func (lf *LIF) Schema() brainpy.Schema {
	return brainpy.Schema{
		{Name: "V", Init: lf.Vrest},
		{Name: "Sp"},
		{Name: "SpT", Init: -1e7},
		{Name: "Inp"},
	}
}

func (lf *LIF) Build(opts *brainpy.Options) error {
	if lf.Tau <= 0 {
		return fmt.Errorf("models: LIF.Tau must be positive, got %g", lf.Tau)
	}
	f := func(v, t float32, args ...float32) float32 {
		return (-(v - lf.Vrest) + lf.R*args[0]) / lf.Tau
	}
	st, err := integrate.New(lf.Method, f, opts.Dt)
	if err != nil {
		return err
	}
	lf.vStep = st
	return nil
}

func (lf *LIF) Update(st *brainpy.State, tm *brainpy.Time) {
	v := st.Values("V")
	sp := st.Values("Sp")
	spt := st.Values("SpT")
	inp := st.Values("Inp")
	for i := range v {
		sp[i] = 0
		if tm.T-spt[i] < lf.TRef {
			inp[i] = 0 // input during refractory is discarded
			continue
		}
		in := inp[i]
		if lf.Noise.On {
			in += float32(lf.Noise.Gen(-1))
		}
		nv := lf.vStep(v[i], tm.T, in)
		if nv >= lf.Vth {
			nv = lf.Vreset
			sp[i] = 1
			spt[i] = tm.T
		}
		v[i] = nv
		inp[i] = 0
	}
}
