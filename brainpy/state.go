// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brainpy

import (
	"errors"
	"fmt"
	"log"

	"github.com/emer/etable/etensor"
)

var (
	// ErrUnknownVariable indicates a state variable name that is not
	// registered in the container's schema.
	ErrUnknownVariable = errors.New("brainpy: unknown variable")

	// ErrDelayUnderflow indicates a strict delayed read before delayLen
	// steps have elapsed.  The non-strict accessors instead return the
	// variable's initial value until the buffer fills (see SynState).
	ErrDelayUnderflow = errors.New("brainpy: delay buffer not yet filled")

	// ErrLengthMismatch indicates a value array whose length disagrees
	// with the population size or the number of simulation steps.
	ErrLengthMismatch = errors.New("brainpy: length mismatch")
)

// VarSpec declares one named state variable: its initial value and whether
// the synapse delay machinery buffers it for delayed access.
type VarSpec struct {

	// variable name, e.g. "V", "Sp", "Inp", "S".
	Name string

	// initial value, set at construction and on InitState.
	Init float32

	// allocate a conduction-delay ring buffer for this variable
	// (synapse state only).
	Delayed bool
}

// Schema is the ordered list of state variables a model declares.
// It is fixed at construction: only values mutate afterwards.
type Schema []VarSpec

// NewSchema returns a schema of zero-initialized, non-delayed variables.
func NewSchema(names ...string) Schema {
	sc := make(Schema, len(names))
	for i, nm := range names {
		sc[i] = VarSpec{Name: nm}
	}
	return sc
}

// VarIdx returns the index of the given variable name, or -1 if absent.
func (sc Schema) VarIdx(name string) int {
	for i := range sc {
		if sc[i].Name == name {
			return i
		}
	}
	return -1
}

// VarNames returns the variable names in schema order.
func (sc Schema) VarNames() []string {
	nms := make([]string, len(sc))
	for i := range sc {
		nms[i] = sc[i].Name
	}
	return nms
}

// Contains reports whether all of the given names are in the schema.
// The first missing name is returned for error messages.
func (sc Schema) Contains(names ...string) (bool, string) {
	for _, nm := range names {
		if sc.VarIdx(nm) < 0 {
			return false, nm
		}
	}
	return true, ""
}

// State is a fixed-schema mapping from variable name to a value array of
// length Num, backed by one flat etensor.  The variable set never changes
// after construction; values are mutated in place every step.
type State struct {

	// declared variables, in order.
	Vars Schema

	// number of elements (neurons or synapses) per variable.
	Num int

	// flat values, shape [len(Vars), Num].
	Vals *etensor.Float32
}

// NewState returns a state container for the given schema and size,
// with every variable set to its declared initial value.
func NewState(sc Schema, num int) *State {
	st := &State{Vars: sc, Num: num}
	st.Vals = etensor.NewFloat32([]int{len(sc), num}, nil, []string{"Var", "Elem"})
	st.InitVals()
	return st
}

// InitVals resets every variable to its declared initial value.
func (st *State) InitVals() {
	for vi := range st.Vars {
		vals := st.Vals.Values[vi*st.Num : (vi+1)*st.Num]
		ini := st.Vars[vi].Init
		for i := range vals {
			vals[i] = ini
		}
	}
}

// Values returns the current value array for the given variable -- a slice
// aliasing the backing store, so element writes mutate state directly.
// Returns nil and logs for an unknown name; see ValuesTry for errors.
func (st *State) Values(name string) []float32 {
	vals, err := st.ValuesTry(name)
	if err != nil {
		log.Println(err)
		return nil
	}
	return vals
}

// ValuesTry returns the current value array for the given variable.
func (st *State) ValuesTry(name string) ([]float32, error) {
	vi := st.Vars.VarIdx(name)
	if vi < 0 {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownVariable, name, st.Vars.VarNames())
	}
	return st.Vals.Values[vi*st.Num : (vi+1)*st.Num], nil
}

// Set overwrites the given variable with vals, which must have length Num.
func (st *State) Set(name string, vals []float32) error {
	cur, err := st.ValuesTry(name)
	if err != nil {
		return err
	}
	if len(vals) != st.Num {
		return fmt.Errorf("%w: variable %q has %d elements, got %d values", ErrLengthMismatch, name, st.Num, len(vals))
	}
	copy(cur, vals)
	return nil
}

// SizeBytes returns the allocated state memory.
func (st *State) SizeBytes() int {
	return 4 * len(st.Vals.Values)
}

// SynState is synapse state: a State plus fixed-depth circular buffers
// implementing conduction delay for the variables declared Delayed.
//
// Each ring has DelayLen+1 slots of Num values.  PushDelayed writes the
// current slot; Delayed reads the slot written DelayLen advances ago;
// AdvanceDelay must be called exactly once per simulation step, after all
// updates for that step complete.  Before DelayLen steps have elapsed,
// Delayed returns the variable's initial value: ring slots are initialized
// to the declared init value, so the underflow policy falls out of buffer
// initialization.  This is a deliberate policy choice.
type SynState struct {
	State

	// conduction delay in steps; 0 means delayed reads see the current
	// pushed value.
	DelayLen int

	// ring buffers for delayed variables, shape [DelayLen+1, Num] each.
	Rings map[string]*etensor.Float32

	// current write slot; the read slot trails it by exactly DelayLen
	// (mod DelayLen+1).
	DelayIn int

	// number of AdvanceDelay calls since construction or InitState.
	Advances int
}

// NewSynState returns a synapse state container with a delay ring of the
// given depth for every variable declared Delayed in the schema.
func NewSynState(sc Schema, num, delayLen int) *SynState {
	ss := &SynState{State: State{Vars: sc, Num: num}, DelayLen: delayLen}
	ss.Vals = etensor.NewFloat32([]int{len(sc), num}, nil, []string{"Var", "Elem"})
	ss.Rings = make(map[string]*etensor.Float32)
	for _, vs := range sc {
		if vs.Delayed {
			ss.Rings[vs.Name] = etensor.NewFloat32([]int{delayLen + 1, num}, nil, []string{"Slot", "Elem"})
		}
	}
	ss.InitState()
	return ss
}

// InitState resets values, ring buffers, and delay cursors.
func (ss *SynState) InitState() {
	ss.InitVals()
	for nm, ring := range ss.Rings {
		vi := ss.Vars.VarIdx(nm)
		ini := ss.Vars[vi].Init
		for i := range ring.Values {
			ring.Values[i] = ini
		}
	}
	ss.DelayIn = 0
	ss.Advances = 0
}

// DelayOut returns the current read slot, trailing DelayIn by exactly
// DelayLen slots (mod DelayLen+1).
func (ss *SynState) DelayOut() int {
	return (ss.DelayIn + 1) % (ss.DelayLen + 1)
}

// PushDelayed writes vals into the given variable's ring at the current
// write slot.  The value becomes visible to Delayed after DelayLen
// AdvanceDelay calls.
func (ss *SynState) PushDelayed(name string, vals []float32) error {
	ring, ok := ss.Rings[name]
	if !ok {
		return fmt.Errorf("%w: %q is not a delayed variable", ErrUnknownVariable, name)
	}
	if len(vals) != ss.Num {
		return fmt.Errorf("%w: variable %q has %d elements, got %d values", ErrLengthMismatch, name, ss.Num, len(vals))
	}
	copy(ring.Values[ss.DelayIn*ss.Num:(ss.DelayIn+1)*ss.Num], vals)
	return nil
}

// Delayed returns the value array for the given variable as it was
// DelayLen steps ago (the underflow policy returns the initial value until
// the ring fills).  For a non-delayed variable it falls back to the
// current values, so models can ignore whether a delay was configured.
// Returns nil and logs for an unknown name.
func (ss *SynState) Delayed(name string) []float32 {
	vals, err := ss.DelayedTry(name)
	if err != nil {
		log.Println(err)
		return nil
	}
	return vals
}

// DelayedTry returns the delayed value array for the given variable.
func (ss *SynState) DelayedTry(name string) ([]float32, error) {
	ring, ok := ss.Rings[name]
	if !ok {
		return ss.ValuesTry(name)
	}
	out := ss.DelayOut()
	return ring.Values[out*ss.Num : (out+1)*ss.Num], nil
}

// DelayedStrict is DelayedTry with strict underflow semantics: reading
// before DelayLen steps have elapsed fails with ErrDelayUnderflow instead
// of returning initial values.
func (ss *SynState) DelayedStrict(name string) ([]float32, error) {
	if ss.Advances < ss.DelayLen {
		return nil, fmt.Errorf("%w: variable %q read after %d of %d steps", ErrDelayUnderflow, name, ss.Advances, ss.DelayLen)
	}
	return ss.DelayedTry(name)
}

// AdvanceDelay rotates the write cursor forward one slot.  Call exactly
// once per simulation step, after all updates for the step complete.
func (ss *SynState) AdvanceDelay() {
	ss.DelayIn = (ss.DelayIn + 1) % (ss.DelayLen + 1)
	ss.Advances++
}

// SizeBytes returns the allocated state memory including delay rings.
func (ss *SynState) SizeBytes() int {
	sz := ss.State.SizeBytes()
	for _, ring := range ss.Rings {
		sz += 4 * len(ring.Values)
	}
	return sz
}
