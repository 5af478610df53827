// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connect

import (
	"errors"
	"fmt"

	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
)

var (
	// ErrInvalidRule indicates an unusable connection rule (e.g. a
	// probability outside [0,1], or mismatched explicit edge lists).
	ErrInvalidRule = errors.New("connect: invalid rule")

	// ErrShapeMismatch indicates population sizes that disagree with the
	// rule's requirements (e.g. a dense matrix of the wrong shape).
	ErrShapeMismatch = errors.New("connect: shape mismatch")

	// ErrEmptyConnection indicates a rule that produced zero edges, for
	// callers that disallow unconnected populations.
	ErrEmptyConnection = errors.New("connect: empty connection")

	// ErrIndexOutOfRange indicates an explicit edge endpoint outside the
	// population it refers to.
	ErrIndexOutOfRange = errors.New("connect: index out of range")
)

// Rule specifies how a presynaptic population of preN elements connects to a
// postsynaptic population of postN elements.  Connect returns one entry per
// synapse in each of the two parallel edge lists.
type Rule interface {
	// Name returns the rule name, for error messages and logs.
	Name() string

	// Connect returns the parallel edge lists for the given sizes.
	Connect(preN, postN int) (preIDs, postIDs []int32, err error)
}

// Conns holds the built connectivity between two populations: the parallel
// edge lists, per-endpoint adjacency maps, and fan statistics.
// It corresponds to the send/recv connection index structures that leabra
// projections maintain, in edge-list form.
type Conns struct {

	// presynaptic population size.
	PreN int

	// postsynaptic population size.
	PostN int

	// presynaptic neuron index for each synapse, in edge insertion order.
	PreIDs *etensor.Int32

	// postsynaptic neuron index for each synapse, parallel to PreIDs.
	PostIDs *etensor.Int32

	// min / max number of synapses per presynaptic neuron.
	FanOut minmax.F32

	// min / max number of synapses per postsynaptic neuron.
	FanIn minmax.F32

	// average number of synapses per presynaptic neuron.
	AvgFanOut float32

	// average number of synapses per postsynaptic neuron.
	AvgFanIn float32

	pre2syn  [][]int32
	post2syn [][]int32
}

// Build constructs the connectivity for the given rule and population sizes,
// deriving the adjacency maps and fan statistics.  Zero edges is not an
// error here -- callers that disallow it should check Empty.
func Build(rule Rule, preN, postN int) (*Conns, error) {
	if preN <= 0 || postN <= 0 {
		return nil, fmt.Errorf("%w: rule %s: population sizes must be positive, got pre: %d, post: %d", ErrShapeMismatch, rule.Name(), preN, postN)
	}
	pre, post, err := rule.Connect(preN, postN)
	if err != nil {
		return nil, err
	}
	if len(pre) != len(post) {
		return nil, fmt.Errorf("%w: rule %s: edge lists differ in length: %d != %d", ErrInvalidRule, rule.Name(), len(pre), len(post))
	}
	for k := range pre {
		if pre[k] < 0 || int(pre[k]) >= preN {
			return nil, fmt.Errorf("%w: rule %s: pre id %d at edge %d outside population of size %d", ErrIndexOutOfRange, rule.Name(), pre[k], k, preN)
		}
		if post[k] < 0 || int(post[k]) >= postN {
			return nil, fmt.Errorf("%w: rule %s: post id %d at edge %d outside population of size %d", ErrIndexOutOfRange, rule.Name(), post[k], k, postN)
		}
	}
	cn := &Conns{PreN: preN, PostN: postN}
	cn.PreIDs = etensor.NewInt32([]int{len(pre)}, nil, nil)
	cn.PostIDs = etensor.NewInt32([]int{len(post)}, nil, nil)
	copy(cn.PreIDs.Values, pre)
	copy(cn.PostIDs.Values, post)
	cn.buildMaps()
	return cn, nil
}

// NSyn returns the number of synapses (edges).
func (cn *Conns) NSyn() int {
	return cn.PreIDs.Len()
}

// Empty returns true if the connectivity has no edges.
func (cn *Conns) Empty() bool {
	return cn.NSyn() == 0
}

// Pre2Syn returns the adjacency map from presynaptic neuron index to the
// synapse indexes it sends through, in edge insertion order.
func (cn *Conns) Pre2Syn() [][]int32 {
	return cn.pre2syn
}

// Post2Syn returns the adjacency map from postsynaptic neuron index to the
// synapse indexes it receives through, in edge insertion order.
func (cn *Conns) Post2Syn() [][]int32 {
	return cn.post2syn
}

// IJ returns the edge lists in the i, j exchange format.
func (cn *Conns) IJ() (i, j []int32) {
	return cn.PreIDs.Values, cn.PostIDs.Values
}

// buildMaps groups synapse indexes by endpoint, preserving edge insertion
// order within each group, and computes the fan statistics.
func (cn *Conns) buildMaps() {
	ns := cn.NSyn()
	preCnt := make([]int32, cn.PreN)
	postCnt := make([]int32, cn.PostN)
	for k := 0; k < ns; k++ {
		preCnt[cn.PreIDs.Values[k]]++
		postCnt[cn.PostIDs.Values[k]]++
	}
	cn.pre2syn = make([][]int32, cn.PreN)
	for i, c := range preCnt {
		cn.pre2syn[i] = make([]int32, 0, c)
	}
	cn.post2syn = make([][]int32, cn.PostN)
	for j, c := range postCnt {
		cn.post2syn[j] = make([]int32, 0, c)
	}
	for k := 0; k < ns; k++ {
		i := cn.PreIDs.Values[k]
		j := cn.PostIDs.Values[k]
		cn.pre2syn[i] = append(cn.pre2syn[i], int32(k))
		cn.post2syn[j] = append(cn.post2syn[j], int32(k))
	}
	cn.FanOut, cn.AvgFanOut = fanStats(preCnt)
	cn.FanIn, cn.AvgFanIn = fanStats(postCnt)
}

func fanStats(cnt []int32) (mm minmax.F32, avg float32) {
	if len(cnt) == 0 {
		return
	}
	mm.Min = float32(cnt[0])
	mm.Max = float32(cnt[0])
	sum := float32(0)
	for _, c := range cnt {
		v := float32(c)
		if v < mm.Min {
			mm.Min = v
		}
		if v > mm.Max {
			mm.Max = v
		}
		sum += v
	}
	avg = sum / float32(len(cnt))
	return
}

// String satisfies fmt.Stringer, summarizing the built connectivity.
func (cn *Conns) String() string {
	return fmt.Sprintf("Conns: %d -> %d, NSyn: %d, FanOut: %g avg / %g max, FanIn: %g avg / %g max",
		cn.PreN, cn.PostN, cn.NSyn(), cn.AvgFanOut, cn.FanOut.Max, cn.AvgFanIn, cn.FanIn.Max)
}
