// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package brainpy implements the core simulation machinery for networks of
spiking neuron models.

A Network is an ordered collection of populations -- NeuGroup neuron
ensembles and SynConn synapse connections -- sharing one global clock.
Each simulation step runs four phases across all populations in
registration order: input injection, update, output, monitor; then delay
ring buffers and the clock advance.  Because every output phase runs after
every update phase, postsynaptic input computed from spikes in step n is
consumed by neuron updates in step n+1, a one-step propagation floor on top
of any explicit conduction delay.

State is held in named-variable containers (State, SynState) backed by
etensor arrays; synapse state adds fixed-depth circular buffers per
variable for delayed access, implementing conduction delay.
*/
package brainpy
