// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package models

import (
	"fmt"
	"log"
	"runtime"

	"github.com/LuckyHFC/BrainPy/brainpy"
	"github.com/LuckyHFC/BrainPy/connect"
	"github.com/LuckyHFC/BrainPy/integrate"
)

// postCurrent aggregates per-synapse gating values onto postsynaptic
// neurons and injects the conductance-based current
// I = -gmax * g * (V - rev) into the postsynaptic Inp variable.
func postCurrent(g []float32, post *brainpy.State, cn *connect.Conns, gmax, rev float32, par bool) {
	var sum []float32
	if par {
		var err error
		sum, err = brainpy.ScatterSumPar(g, cn.PostIDs.Values, cn.PostN, runtime.NumCPU())
		if err != nil {
			log.Println(err)
			return
		}
	} else {
		sum = brainpy.PostCondBySyn(g, cn.Post2Syn())
	}
	v := post.Values("V")
	inp := post.Values("Inp")
	for j := range inp {
		inp[j] += -gmax * sum[j] * (v[j] - rev)
	}
}

// AMPA1 is the single-exponential AMPA synapse model:
//
//	ds/dt = -s / TauDecay
//
// with s incremented by 1 on each presynaptic spike.  The gating variable
// is read through the connection's conduction delay, so the postsynaptic
// current at time t reflects presynaptic spikes at t - delay.
//
// State variables: S (gating, delayed).
type AMPA1 struct {

	// maximum conductance.
	GMax float32 `def:"0.1" desc:"maximum synaptic conductance"`

	// reversal potential, mV.
	E float32 `def:"0" desc:"reversal potential"`

	// gating decay time constant, ms.
	TauDecay float32 `def:"2" min:"0" desc:"decay time constant of the gating variable"`

	// numerical integration scheme for the gating equation.
	Method integrate.Methods `desc:"integration method for the gating equation"`

	sStep integrate.Stepper
	par   bool
}

// NewAMPA1 returns an AMPA1 model with default parameters.
func NewAMPA1() *AMPA1 {
	am := &AMPA1{}
	am.Defaults()
	return am
}

func (am *AMPA1) Defaults() {
	am.GMax = 0.1
	am.E = 0
	am.TauDecay = 2
	am.Method = integrate.ExpEuler
}

func (am *AMPA1) Name() string {
	return "AMPA1"
}

func (am *AMPA1) Schema() brainpy.Schema {
	return brainpy.Schema{
		{Name: "S", Delayed: true},
	}
}

func (am *AMPA1) Requires() brainpy.Requirements {
	return brainpy.Requirements{Pre: []string{"Sp"}, Post: []string{"V", "Inp"}}
}

func (am *AMPA1) Build(opts *brainpy.Options) error {
	if am.TauDecay <= 0 {
		return fmt.Errorf("models: AMPA1.TauDecay must be positive, got %g", am.TauDecay)
	}
	f := func(s, t float32, args ...float32) float32 {
		return -s / am.TauDecay
	}
	st, err := integrate.New(am.Method, f, opts.Dt)
	if err != nil {
		return err
	}
	am.sStep = st
	am.par = opts.Backend == brainpy.Parallel
	return nil
}

func (am *AMPA1) Update(st *brainpy.SynState, tm *brainpy.Time, pre *brainpy.State, cn *connect.Conns) {
	s := st.Values("S")
	for k := range s {
		s[k] = am.sStep(s[k], tm.T)
	}
	sp := pre.Values("Sp")
	for i, syns := range cn.Pre2Syn() {
		if sp[i] > 0 {
			for _, k := range syns {
				s[k]++
			}
		}
	}
	st.PushDelayed("S", s)
}

func (am *AMPA1) Output(st *brainpy.SynState, post *brainpy.State, cn *connect.Conns) {
	postCurrent(st.Delayed("S"), post, cn, am.GMax, am.E, am.par)
}

// AMPA2 is the kinetic (Markov) AMPA synapse model:
//
//	ds/dt = Alpha * T(t) * (1 - s) - Beta * s
//
// where the transmitter concentration T(t) is TMax for TDur after each
// presynaptic spike and 0 otherwise.  s is clipped to [0, 1].
//
// State variables: S (gating, delayed), SpT (time of last presynaptic
// spike per synapse).
type AMPA2 struct {

	// maximum conductance.
	GMax float32 `def:"0.42" desc:"maximum synaptic conductance"`

	// reversal potential, mV.
	E float32 `def:"0" desc:"reversal potential"`

	// channel opening rate.
	Alpha float32 `def:"0.98" desc:"binding (opening) rate constant"`

	// channel closing rate.
	Beta float32 `def:"0.18" desc:"unbinding (closing) rate constant"`

	// transmitter concentration during a pulse.
	TMax float32 `def:"0.5" desc:"transmitter concentration while released"`

	// transmitter pulse duration after a presynaptic spike, ms.
	TDur float32 `def:"0.5" desc:"transmitter release duration after a spike"`

	// numerical integration scheme for the gating equation.
	Method integrate.Methods `desc:"integration method for the gating equation"`

	sStep integrate.Stepper
	par   bool
}

// NewAMPA2 returns an AMPA2 model with default parameters.
func NewAMPA2() *AMPA2 {
	am := &AMPA2{}
	am.Defaults()
	return am
}

func (am *AMPA2) Defaults() {
	am.GMax = 0.42
	am.E = 0
	am.Alpha = 0.98
	am.Beta = 0.18
	am.TMax = 0.5
	am.TDur = 0.5
	am.Method = integrate.ExpEuler
}

func (am *AMPA2) Name() string {
	return "AMPA2"
}

func (am *AMPA2) Schema() brainpy.Schema {
	return brainpy.Schema{
		{Name: "S", Delayed: true},
		{Name: "SpT", Init: -1e7},
	}
}

func (am *AMPA2) Requires() brainpy.Requirements {
	return brainpy.Requirements{Pre: []string{"Sp"}, Post: []string{"V", "Inp"}}
}

func (am *AMPA2) Build(opts *brainpy.Options) error {
	if am.TDur < 0 {
		return fmt.Errorf("models: AMPA2.TDur must be non-negative, got %g", am.TDur)
	}
	// linear in s for fixed T, so exponential Euler integrates it exactly
	f := func(s, t float32, args ...float32) float32 {
		return am.Alpha*args[0]*(1-s) - am.Beta*s
	}
	st, err := integrate.New(am.Method, f, opts.Dt)
	if err != nil {
		return err
	}
	am.sStep = st
	am.par = opts.Backend == brainpy.Parallel
	return nil
}

func (am *AMPA2) Update(st *brainpy.SynState, tm *brainpy.Time, pre *brainpy.State, cn *connect.Conns) {
	s := st.Values("S")
	spt := st.Values("SpT")
	sp := pre.Values("Sp")
	for i, syns := range cn.Pre2Syn() {
		if sp[i] > 0 {
			for _, k := range syns {
				spt[k] = tm.T
			}
		}
	}
	for k := range s {
		tt := float32(0)
		if tm.T-spt[k] < am.TDur {
			tt = am.TMax
		}
		ns := am.sStep(s[k], tm.T, tt)
		if ns < 0 {
			ns = 0
		} else if ns > 1 {
			ns = 1
		}
		s[k] = ns
	}
	st.PushDelayed("S", s)
}

func (am *AMPA2) Output(st *brainpy.SynState, post *brainpy.State, cn *connect.Conns) {
	postCurrent(st.Delayed("S"), post, cn, am.GMax, am.E, am.par)
}
