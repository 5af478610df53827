// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connect

import (
	"fmt"
	"math/rand"

	"github.com/emer/emergent/prjn"
	"github.com/emer/etable/etensor"
)

// All2All connects every presynaptic neuron to every postsynaptic neuron.
// Edges are emitted presynaptic-major: all edges from pre neuron 0 first.
type All2All struct {

	// include self-connections (i == j) when the two populations are the
	// same size, i.e., a recurrent connection onto the same group.
	SelfCon bool
}

// NewAll2All returns an All2All rule excluding self connections.
func NewAll2All() *All2All {
	return &All2All{}
}

func (al *All2All) Name() string {
	return "All2All"
}

func (al *All2All) Connect(preN, postN int) (preIDs, postIDs []int32, err error) {
	n := preN * postN
	if preN == postN && !al.SelfCon {
		n -= preN
	}
	preIDs = make([]int32, 0, n)
	postIDs = make([]int32, 0, n)
	for i := 0; i < preN; i++ {
		for j := 0; j < postN; j++ {
			if i == j && preN == postN && !al.SelfCon {
				continue
			}
			preIDs = append(preIDs, int32(i))
			postIDs = append(postIDs, int32(j))
		}
	}
	return
}

// One2One connects neuron i to neuron i.  Population sizes must agree.
type One2One struct {
}

// NewOne2One returns a One2One rule.
func NewOne2One() *One2One {
	return &One2One{}
}

func (ol *One2One) Name() string {
	return "One2One"
}

func (ol *One2One) Connect(preN, postN int) (preIDs, postIDs []int32, err error) {
	if preN != postN {
		return nil, nil, fmt.Errorf("%w: One2One requires equal population sizes, got pre: %d, post: %d", ErrShapeMismatch, preN, postN)
	}
	preIDs = make([]int32, preN)
	postIDs = make([]int32, postN)
	for i := 0; i < preN; i++ {
		preIDs[i] = int32(i)
		postIDs[i] = int32(i)
	}
	return
}

// FixedProb includes each ordered (pre, post) pair independently with
// probability P.  The draw sequence is fully determined by RndSeed, so a
// given rule always builds the same edges.
type FixedProb struct {

	// connection probability for each ordered pair.
	P float64

	// include self-connections when the population sizes are equal.
	SelfCon bool

	// seed for the rule's private random stream.
	RndSeed int64
}

// NewFixedProb returns a FixedProb rule with given probability and seed,
// excluding self connections.
func NewFixedProb(p float64, seed int64) *FixedProb {
	return &FixedProb{P: p, RndSeed: seed}
}

func (fp *FixedProb) Name() string {
	return "FixedProb"
}

func (fp *FixedProb) Connect(preN, postN int) (preIDs, postIDs []int32, err error) {
	if fp.P < 0 || fp.P > 1 {
		return nil, nil, fmt.Errorf("%w: FixedProb probability must be in [0,1], got %g", ErrInvalidRule, fp.P)
	}
	rnd := rand.New(rand.NewSource(fp.RndSeed))
	for i := 0; i < preN; i++ {
		for j := 0; j < postN; j++ {
			if i == j && preN == postN && !fp.SelfCon {
				continue
			}
			if rnd.Float64() < fp.P {
				preIDs = append(preIDs, int32(i))
				postIDs = append(postIDs, int32(j))
			}
		}
	}
	return
}

// IJConn is an explicit edge list: synapse k connects I[k] -> J[k].
// This is the i, j exchange format accepted directly as a rule.
type IJConn struct {

	// presynaptic neuron index per edge.
	I []int32

	// postsynaptic neuron index per edge.
	J []int32
}

// NewIJConn returns an explicit edge-list rule.
func NewIJConn(i, j []int32) *IJConn {
	return &IJConn{I: i, J: j}
}

func (ij *IJConn) Name() string {
	return "IJConn"
}

func (ij *IJConn) Connect(preN, postN int) (preIDs, postIDs []int32, err error) {
	if len(ij.I) != len(ij.J) {
		return nil, nil, fmt.Errorf("%w: IJConn i, j lists differ in length: %d != %d", ErrInvalidRule, len(ij.I), len(ij.J))
	}
	// endpoint range is validated in Build
	return ij.I, ij.J, nil
}

// MatConn extracts edges from a dense 2D connection matrix of shape
// (preN, postN): any entry > 0 becomes an edge, in row-major order.
type MatConn struct {

	// dense 0/1 (or weighted) connection matrix.
	Mat etensor.Tensor
}

// NewMatConn returns a dense-matrix rule.
func NewMatConn(mat etensor.Tensor) *MatConn {
	return &MatConn{Mat: mat}
}

func (mc *MatConn) Name() string {
	return "MatConn"
}

func (mc *MatConn) Connect(preN, postN int) (preIDs, postIDs []int32, err error) {
	if mc.Mat == nil {
		return nil, nil, fmt.Errorf("%w: MatConn matrix is nil", ErrInvalidRule)
	}
	if mc.Mat.NumDims() != 2 {
		return nil, nil, fmt.Errorf("%w: MatConn matrix must be 2D, got %dD", ErrShapeMismatch, mc.Mat.NumDims())
	}
	if mc.Mat.Dim(0) != preN || mc.Mat.Dim(1) != postN {
		return nil, nil, fmt.Errorf("%w: MatConn matrix shape is (%d, %d), want (%d, %d)", ErrShapeMismatch, mc.Mat.Dim(0), mc.Mat.Dim(1), preN, postN)
	}
	for i := 0; i < preN; i++ {
		for j := 0; j < postN; j++ {
			if mc.Mat.FloatVal1D(i*postN+j) > 0 {
				preIDs = append(preIDs, int32(i))
				postIDs = append(postIDs, int32(j))
			}
		}
	}
	return
}

// PatConn adapts any emergent prjn.Pattern (Full, OneToOne, UnifRnd, Circle,
// PoolTile, ...) as a connection rule, so the emergent pattern library can
// drive connectivity here.  Both populations are treated as 1D.
type PatConn struct {

	// the emergent projection pattern to adapt.
	Pat prjn.Pattern
}

// FromPattern returns a rule adapting the given emergent projection pattern.
func FromPattern(pat prjn.Pattern) *PatConn {
	return &PatConn{Pat: pat}
}

func (pc *PatConn) Name() string {
	return "PatConn:" + pc.Pat.Name()
}

func (pc *PatConn) Connect(preN, postN int) (preIDs, postIDs []int32, err error) {
	ssh := etensor.NewShape([]int{preN}, nil, nil)
	rsh := etensor.NewShape([]int{postN}, nil, nil)
	_, _, cons := pc.Pat.Connect(ssh, rsh, preN == postN)
	cbits := cons.Values
	// cons is recv-major; emit pre-major to match the other rules
	for si := 0; si < preN; si++ {
		for ri := 0; ri < postN; ri++ {
			if !cbits.Index(ri*preN + si) {
				continue
			}
			preIDs = append(preIDs, int32(si))
			postIDs = append(postIDs, int32(ri))
		}
	}
	return
}
