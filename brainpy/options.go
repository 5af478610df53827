// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brainpy

import (
	"errors"
	"fmt"

	"github.com/goki/ki/kit"
)

// ErrUnknownBackend indicates an unrecognized execution backend name.
var ErrUnknownBackend = errors.New("brainpy: unknown backend")

// Backends selects how order-independent reductions (scatter sums) are
// executed.  Generated steppers and model code are agnostic to the choice:
// every backend produces identical sums.
type Backends int32

const (
	// Serial executes reductions in a single-threaded loop.
	Serial Backends = iota

	// Parallel shards reductions across goroutines by destination, which
	// is deterministic because each destination is owned by one worker.
	Parallel

	BackendsN
)

var KiT_Backends = kit.Enums.AddEnum(BackendsN, kit.NotBitFlag, nil)

var backendNames = [BackendsN]string{"serial", "parallel"}

func (bk Backends) String() string {
	if bk < 0 || bk >= BackendsN {
		return fmt.Sprintf("Backends(%d)", int32(bk))
	}
	return backendNames[bk]
}

// BackendByName returns the backend for the given name.
func BackendByName(name string) (Backends, error) {
	for bk := Serial; bk < BackendsN; bk++ {
		if backendNames[bk] == name {
			return bk, nil
		}
	}
	return BackendsN, fmt.Errorf("%w: %q (have %v)", ErrUnknownBackend, name, backendNames)
}

// Options is the run configuration threaded through Network construction.
// There is no ambient global state: every population reads its dt and
// backend from here at Build time.
type Options struct {

	// time per simulation step, in ms.
	Dt float32 `def:"0.1"`

	// execution backend for reductions.
	Backend Backends
}

// Defaults sets default values.
func (op *Options) Defaults() {
	op.Dt = 0.1
	op.Backend = Serial
}

// Validate checks the configuration, failing fast at construction time.
func (op *Options) Validate() error {
	if op.Dt <= 0 {
		return fmt.Errorf("brainpy: Options.Dt must be positive, got %g", op.Dt)
	}
	if op.Backend < 0 || op.Backend >= BackendsN {
		return fmt.Errorf("%w: %d", ErrUnknownBackend, int32(op.Backend))
	}
	return nil
}
