// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brainpy

import (
	"fmt"
	"strings"
)

// Population is one ensemble scheduled by a Network: a neuron group or a
// synapse connection.  The network drives each simulation step through the
// phase methods, in registration order within each phase.
type Population interface {

	// Name returns the population name; unique within a network.
	Name() string

	// N returns the number of elements; fixed for the population's
	// lifetime.
	N() int

	// Build finalizes construction once dt and backend are known.
	Build(opts *Options) error

	// InitState resets state to initial values and clears monitors.
	InitState()

	// TargetState resolves an input target variable ("Inp", "pre.Sp")
	// to its value array.
	TargetState(varNm string) ([]float32, error)

	// UpdateStep advances the population's state one step.
	UpdateStep(tm *Time)

	// OutputStep delivers this population's outputs (postsynaptic
	// currents); runs after every population's UpdateStep.
	OutputStep(tm *Time)

	// MonitorStep records watched variables, post-update.
	MonitorStep(tm *Time)

	// AdvanceDelay rotates delay ring cursors at end of step.
	AdvanceDelay()

	// SizeBytes reports allocated state memory.
	SizeBytes() int
}

// NeuGroup is a homogeneous ensemble of neurons updated by one
// NeuronModel.
type NeuGroup struct {

	// population name.
	Nm string

	// number of neurons; fixed at construction.
	Num int

	// the neuron model driving updates.
	Model NeuronModel

	// named state, one value per neuron per variable.
	ST *State

	// recorded time series for watched variables (nil if none).
	Mon *Monitor

	watchVars []string
}

// NewNeuGroup returns a neuron group of the given size for the given
// model, with state initialized from the model's schema.
func NewNeuGroup(name string, model NeuronModel, num int) (*NeuGroup, error) {
	if num <= 0 {
		return nil, fmt.Errorf("brainpy: NeuGroup %s: num must be positive, got %d", name, num)
	}
	ng := &NeuGroup{Nm: name, Num: num, Model: model}
	ng.ST = NewState(model.Schema(), num)
	return ng, nil
}

func (ng *NeuGroup) Name() string {
	return ng.Nm
}

func (ng *NeuGroup) N() int {
	return ng.Num
}

// Watch registers state variables to record at every step.
func (ng *NeuGroup) Watch(vars ...string) error {
	if ok, missing := ng.Model.Schema().Contains(vars...); !ok {
		return fmt.Errorf("%w: cannot monitor %q on %s, state has %v", ErrUnknownVariable, missing, ng.Nm, ng.Model.Schema().VarNames())
	}
	ng.watchVars = append(ng.watchVars, vars...)
	return nil
}

func (ng *NeuGroup) Build(opts *Options) error {
	if err := ng.Model.Build(opts); err != nil {
		return err
	}
	if len(ng.watchVars) > 0 && ng.Mon == nil {
		mon, err := NewMonitor(ng.Model.Schema(), ng.Num, ng.watchVars...)
		if err != nil {
			return err
		}
		ng.Mon = mon
	}
	return nil
}

func (ng *NeuGroup) InitState() {
	ng.ST.InitVals()
	if ng.Mon != nil {
		ng.Mon.Reset()
	}
}

func (ng *NeuGroup) TargetState(varNm string) ([]float32, error) {
	if strings.Contains(varNm, ".") {
		return nil, fmt.Errorf("%w: %s is a neuron group, target %q cannot be prefixed", ErrUnknownVariable, ng.Nm, varNm)
	}
	return ng.ST.ValuesTry(varNm)
}

func (ng *NeuGroup) UpdateStep(tm *Time) {
	ng.Model.Update(ng.ST, tm)
}

// OutputStep is a no-op: neuron groups produce spikes, which synapses read
// during their own update.
func (ng *NeuGroup) OutputStep(tm *Time) {
}

func (ng *NeuGroup) MonitorStep(tm *Time) {
	if ng.Mon != nil {
		ng.Mon.Record(ng.ST, tm)
	}
}

// AdvanceDelay is a no-op: neuron state has no delay rings.
func (ng *NeuGroup) AdvanceDelay() {
}

func (ng *NeuGroup) SizeBytes() int {
	return ng.ST.SizeBytes()
}
