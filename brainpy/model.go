// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brainpy

import (
	"fmt"

	"github.com/LuckyHFC/BrainPy/connect"
)

// NeuronModel is the capability a neuron ensemble model must provide:
// a declared state schema and a vectorized one-step update.  Models are
// resolved at construction time, not at call time.
type NeuronModel interface {

	// Name returns the model name, e.g. "LIF".
	Name() string

	// Schema declares the model's state variables and initial values.
	Schema() Schema

	// Build finalizes run-dependent machinery (integration steppers for
	// the configured dt, the reduction backend).  Called once by
	// Network.Build before the first step.
	Build(opts *Options) error

	// Update advances all neurons one step.  It owns st exclusively and
	// mutates it in place.
	Update(st *State, tm *Time)
}

// SynapseModel is the capability a synapse ensemble model must provide.
// Update reads presynaptic state (spikes, routed through pre2syn) and
// advances synapse state; Output aggregates per-synapse conductances onto
// postsynaptic neurons.  Presynaptic and postsynaptic state are read-only
// from the synapse's perspective, except for the declared additive
// injection path in Output (incrementing the postsynaptic input variable).
type SynapseModel interface {

	// Name returns the model name, e.g. "AMPA1".
	Name() string

	// Schema declares the model's state variables; variables marked
	// Delayed get a conduction-delay ring buffer.
	Schema() Schema

	// Requires declares the variable names the model reads from the
	// presynaptic and postsynaptic neuron state.  Checked once at
	// connection construction.
	Requires() Requirements

	// Build finalizes run-dependent machinery.
	Build(opts *Options) error

	// Update advances all synapses one step, reading presynaptic state.
	Update(st *SynState, tm *Time, pre *State, cn *connect.Conns)

	// Output delivers postsynaptic current by incrementing the declared
	// input variable in post.
	Output(st *SynState, post *State, cn *connect.Conns)
}

// Requirements declares the external state a synapse model reads: variable
// names that must exist in the presynaptic and postsynaptic neuron state.
type Requirements struct {

	// required presynaptic state variables, e.g. "Sp".
	Pre []string

	// required postsynaptic state variables, e.g. "V", "Inp".
	Post []string
}

// Validate checks the requirements against actual pre / post schemas,
// returning an ErrUnknownVariable listing the first missing name.
func (rq *Requirements) Validate(model string, pre, post Schema) error {
	if ok, missing := pre.Contains(rq.Pre...); !ok {
		return fmt.Errorf("%w: model %s requires pre variable %q, pre state has %v", ErrUnknownVariable, model, missing, pre.VarNames())
	}
	if ok, missing := post.Contains(rq.Post...); !ok {
		return fmt.Errorf("%w: model %s requires post variable %q, post state has %v", ErrUnknownVariable, model, missing, post.VarNames())
	}
	return nil
}
