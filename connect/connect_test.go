// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connect

import (
	"errors"
	"testing"

	"github.com/emer/emergent/prjn"
	"github.com/emer/etable/etensor"
	"github.com/stretchr/testify/assert"
)

func TestAll2All(t *testing.T) {
	cn, err := Build(NewAll2All(), 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 6, cn.NSyn())
	assert.Equal(t, []int32{0, 0, 1, 1, 2, 2}, cn.PreIDs.Values)
	assert.Equal(t, []int32{0, 1, 0, 1, 0, 1}, cn.PostIDs.Values)
	assert.Equal(t, [][]int32{{0, 1}, {2, 3}, {4, 5}}, cn.Pre2Syn())
	assert.Equal(t, [][]int32{{0, 2, 4}, {1, 3, 5}}, cn.Post2Syn())
	assert.Equal(t, float32(2), cn.AvgFanOut)
	assert.Equal(t, float32(3), cn.AvgFanIn)
}

func TestAll2AllSelfCon(t *testing.T) {
	cn, err := Build(NewAll2All(), 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 6, cn.NSyn()) // 9 minus the 3 self loops
	for k := 0; k < cn.NSyn(); k++ {
		assert.NotEqual(t, cn.PreIDs.Values[k], cn.PostIDs.Values[k])
	}

	cn, err = Build(&All2All{SelfCon: true}, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 9, cn.NSyn())
}

func TestOne2One(t *testing.T) {
	cn, err := Build(NewOne2One(), 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 4, cn.NSyn())
	for i := 0; i < 4; i++ {
		assert.Equal(t, [][]int32{{0}, {1}, {2}, {3}}[i], cn.Pre2Syn()[i])
	}

	_, err = Build(NewOne2One(), 4, 5)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestFixedProb(t *testing.T) {
	a, err := Build(NewFixedProb(0.3, 42), 20, 30)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(NewFixedProb(0.3, 42), 20, 30)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, a.PreIDs.Values, b.PreIDs.Values)
	assert.Equal(t, a.PostIDs.Values, b.PostIDs.Values)

	all, err := Build(NewFixedProb(1, 1), 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 6, all.NSyn())

	none, err := Build(NewFixedProb(0, 1), 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, none.Empty())

	_, err = Build(NewFixedProb(1.5, 1), 3, 2)
	assert.True(t, errors.Is(err, ErrInvalidRule))
}

func TestIJConn(t *testing.T) {
	cn, err := Build(NewIJConn([]int32{0, 2, 0}, []int32{1, 0, 0}), 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 3, cn.NSyn())
	assert.Equal(t, [][]int32{{0, 2}, {}, {1}}, cn.Pre2Syn())

	_, err = Build(NewIJConn([]int32{0, 1}, []int32{0}), 3, 2)
	assert.True(t, errors.Is(err, ErrInvalidRule))

	_, err = Build(NewIJConn([]int32{0}, []int32{5}), 3, 2)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestMatConn(t *testing.T) {
	mat := etensor.NewFloat32([]int{2, 3}, nil, nil)
	mat.Values = []float32{1, 0, 1, 0, 1, 0}
	cn, err := Build(NewMatConn(mat), 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 3, cn.NSyn())
	assert.Equal(t, []int32{0, 0, 1}, cn.PreIDs.Values)
	assert.Equal(t, []int32{0, 2, 1}, cn.PostIDs.Values)

	_, err = Build(NewMatConn(mat), 3, 2)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestFromPattern(t *testing.T) {
	full := prjn.NewFull()
	full.SelfCon = true
	cn, err := Build(FromPattern(full), 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 6, cn.NSyn())
	assert.Equal(t, [][]int32{{0, 1}, {2, 3}, {4, 5}}, cn.Pre2Syn())
	assert.Equal(t, [][]int32{{0, 2, 4}, {1, 3, 5}}, cn.Post2Syn())
}

// every edge must appear in exactly one pre2syn group and one post2syn group
func TestAdjacencyPartition(t *testing.T) {
	cn, err := Build(NewFixedProb(0.25, 7), 17, 11)
	if err != nil {
		t.Fatal(err)
	}
	npre := 0
	for _, syns := range cn.Pre2Syn() {
		npre += len(syns)
	}
	npost := 0
	for _, syns := range cn.Post2Syn() {
		npost += len(syns)
	}
	assert.Equal(t, cn.NSyn(), npre)
	assert.Equal(t, cn.NSyn(), npost)

	seen := make(map[int32]bool, cn.NSyn())
	for _, syns := range cn.Pre2Syn() {
		for _, k := range syns {
			assert.False(t, seen[k])
			seen[k] = true
		}
	}
	assert.Equal(t, cn.NSyn(), len(seen))
}

func TestBuildBadSizes(t *testing.T) {
	_, err := Build(NewAll2All(), 0, 2)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
	_, err = Build(NewAll2All(), 3, -1)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}
