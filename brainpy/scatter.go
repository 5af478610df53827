// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brainpy

import (
	"errors"
	"fmt"
	"sync"

	"github.com/emer/etable/etensor"
)

var (
	// ErrDtypeMismatch indicates incompatible element types between a
	// value array and an index array.
	ErrDtypeMismatch = errors.New("brainpy: dtype mismatch")

	// ErrIndexOutOfRange indicates a destination id >= the destination
	// count.
	ErrIndexOutOfRange = errors.New("brainpy: index out of range")
)

// ScatterSum sums per-edge values into per-destination outputs:
// out[d] = sum of values[k] for every k with destIDs[k] == d; unreferenced
// destinations are 0.  A single-element values array is broadcast to all
// edges.  The reduction is associative and commutative, so the result is
// invariant under any permutation of edge order.
//
// This is the aggregation of many synapses onto one postsynaptic neuron:
// destIDs is typically Conns.PostIDs and destN the postsynaptic size.
func ScatterSum(values []float32, destIDs []int32, destN int) ([]float32, error) {
	if len(values) != 1 && len(values) != len(destIDs) {
		return nil, fmt.Errorf("%w: %d values for %d edges (must be 1 or equal)", ErrLengthMismatch, len(values), len(destIDs))
	}
	out := make([]float32, destN)
	for k, d := range destIDs {
		if d < 0 || int(d) >= destN {
			return nil, fmt.Errorf("%w: dest id %d at edge %d for %d destinations", ErrIndexOutOfRange, d, k, destN)
		}
		if len(values) == 1 {
			out[d] += values[0]
		} else {
			out[d] += values[k]
		}
	}
	return out, nil
}

// ScatterSumPar is ScatterSum sharded across nWorkers goroutines by
// destination range.  Each destination is summed in edge order by exactly
// one worker, so the sums are identical to the serial reduction.
func ScatterSumPar(values []float32, destIDs []int32, destN, nWorkers int) ([]float32, error) {
	if len(values) != 1 && len(values) != len(destIDs) {
		return nil, fmt.Errorf("%w: %d values for %d edges (must be 1 or equal)", ErrLengthMismatch, len(values), len(destIDs))
	}
	for k, d := range destIDs {
		if d < 0 || int(d) >= destN {
			return nil, fmt.Errorf("%w: dest id %d at edge %d for %d destinations", ErrIndexOutOfRange, d, k, destN)
		}
	}
	if destN == 0 {
		return []float32{}, nil
	}
	if nWorkers < 1 {
		nWorkers = 1
	}
	if nWorkers > destN {
		nWorkers = destN
	}
	out := make([]float32, destN)
	per := (destN + nWorkers - 1) / nWorkers
	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		lo := w * per
		hi := lo + per
		if hi > destN {
			hi = destN
		}
		wg.Add(1)
		go func(lo, hi int32) {
			defer wg.Done()
			for k, d := range destIDs {
				if d < lo || d >= hi {
					continue
				}
				if len(values) == 1 {
					out[d] += values[0]
				} else {
					out[d] += values[k]
				}
			}
		}(int32(lo), int32(hi))
	}
	wg.Wait()
	return out, nil
}

// ScatterSumTensor is the dtype-checked tensor entry point for ScatterSum.
// values must be FLOAT32 or FLOAT64 and destIDs INT32 or INT64; anything
// else fails with ErrDtypeMismatch naming the offending types.
func ScatterSumTensor(values, destIDs etensor.Tensor, destN int) (*etensor.Float32, error) {
	switch destIDs.DataType() {
	case etensor.INT32, etensor.INT64:
	default:
		return nil, fmt.Errorf("%w: dest ids must be INT32 or INT64, got %v", ErrDtypeMismatch, destIDs.DataType())
	}
	switch values.DataType() {
	case etensor.FLOAT32, etensor.FLOAT64:
	default:
		return nil, fmt.Errorf("%w: values must be FLOAT32 or FLOAT64, got %v", ErrDtypeMismatch, values.DataType())
	}
	vals := make([]float32, values.Len())
	for i := range vals {
		vals[i] = float32(values.FloatVal1D(i))
	}
	ids := make([]int32, destIDs.Len())
	for i := range ids {
		ids[i] = int32(destIDs.FloatVal1D(i))
	}
	sum, err := ScatterSum(vals, ids, destN)
	if err != nil {
		return nil, err
	}
	out := etensor.NewFloat32([]int{destN}, nil, nil)
	copy(out.Values, sum)
	return out, nil
}

// PostCondBySyn sums per-synapse conductances onto postsynaptic neurons
// through the post2syn adjacency map: out[j] = sum of vals over
// post2syn[j].  Equivalent to ScatterSum over PostIDs; adjacency indexes
// are already validated at connectivity build.
func PostCondBySyn(vals []float32, post2syn [][]int32) []float32 {
	out := make([]float32, len(post2syn))
	for j, syns := range post2syn {
		sum := float32(0)
		for _, k := range syns {
			sum += vals[k]
		}
		out[j] = sum
	}
	return out
}
