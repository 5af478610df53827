// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
BrainPy is a simulation framework for networks of spiking neuron models,
implemented in the Go language (golang).

Neuron and synapse dynamics are declared as coupled ordinary or stochastic
differential equations, numerically integrated over time, with discrete spike
events propagated through sparse connectivity with per-synapse conduction
delays.

The repository is organized into the following sub-packages:

* brainpy: the core simulation machinery -- named state containers with delay
ring buffers, neuron group and synapse connection ensembles, the network
step scheduler, monitors, input waveforms, and the scatter-sum reduction
used to aggregate per-synapse conductances onto postsynaptic neurons.

* connect: connectivity builders that turn a connection rule (all-to-all,
one-to-one, fixed probability, explicit edge lists, dense matrices, or any
emergent prjn.Pattern) into sparse edge lists and the derived pre2syn /
post2syn adjacency maps.

* integrate: constructors that turn a derivative function into a one-step
update function for a chosen numerical scheme (Euler, midpoint, classical
RK4, exponential Euler, Euler-Maruyama).

* models: reference neuron and synapse models (LIF, AMPA) that exercise the
core and serve as templates for user models.

* examples: runnable programs -- examples/ampa is the starting point, wiring
two LIF groups through a delayed AMPA synapse connection.
*/
package brainpy
