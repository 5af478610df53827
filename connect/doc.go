// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package connect builds the sparse connectivity between two populations.

A Rule (all-to-all, one-to-one, fixed probability, explicit edge lists,
dense matrices, or an adapter around any emergent prjn.Pattern) produces
parallel edge lists (PreIDs, PostIDs), one entry per synapse.  From these,
Conns derives the per-neuron adjacency maps Pre2Syn and Post2Syn that route
spike events between populations of different sizes: Pre2Syn[i] lists the
synapses for which neuron i is the presynaptic endpoint, Post2Syn[j] those
for which neuron j is the postsynaptic endpoint.

Connectivity is built once, when the synapse connection is constructed, and
is immutable thereafter.
*/
package connect
