// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package models provides standard neuron and synapse models for brainpy
networks: the leaky integrate-and-fire neuron and AMPA-type synapses.

Each model is a parameter struct with Defaults, pluggable into
brainpy.NeuGroup / brainpy.SynConn.  Integration method and noise are
per-model configuration; steppers are bound to the run dt at network
build.
*/
package models
