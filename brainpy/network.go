// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brainpy

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/goki/ki/kit"
)

var (
	// ErrUnknownPopulation indicates a population name not registered in
	// the network.
	ErrUnknownPopulation = errors.New("brainpy: unknown population")

	// ErrDuplicatePopulation indicates a second Add under an existing
	// name.
	ErrDuplicatePopulation = errors.New("brainpy: duplicate population")
)

// NetStates is the build / run lifecycle of a network.
type NetStates int32

const (
	// Unbuilt: populations registered, dt-dependent state not allocated.
	Unbuilt NetStates = iota

	// Built: all populations built, ready to run.
	Built

	// Running: inside a Run call.
	Running

	// Idle: at least one Run completed; the clock holds its final time
	// and a further Run continues from it.
	Idle

	NetStatesN
)

var KiT_NetStates = kit.Enums.AddEnum(NetStatesN, kit.NotBitFlag, nil)

// Network owns a set of populations and drives the simulation clock.
// Within each step the phases run in a fixed order over all populations:
// input injection, then updates, then outputs, then monitors, then delay
// advancement, then the clock tick.  Outputs delivered at step n are
// therefore consumed by updates at step n+1 at the earliest, which is the
// one-step propagation floor on top of configured conduction delays.
type Network struct {

	// network name, for reports.
	Nm string

	// simulation options; Dt is fixed once Build has run.
	Opts Options

	// the simulation clock, shared by all populations.
	Time Time

	// populations in registration order, which is also phase order.
	Pops []Population

	// populations by name.
	PopMap map[string]Population

	// lifecycle state.
	State NetStates
}

// NewNetwork returns an empty network with the given options.
// A nil opts uses defaults.
func NewNetwork(name string, opts *Options) (*Network, error) {
	nt := &Network{Nm: name, PopMap: make(map[string]Population)}
	if opts == nil {
		nt.Opts.Defaults()
	} else {
		nt.Opts = *opts
	}
	if err := nt.Opts.Validate(); err != nil {
		return nil, err
	}
	nt.Time = *NewTime(nt.Opts.Dt)
	return nt, nil
}

// Add registers populations; names must be unique within the network.
func (nt *Network) Add(pops ...Population) error {
	for _, pp := range pops {
		if _, ok := nt.PopMap[pp.Name()]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicatePopulation, pp.Name())
		}
		nt.Pops = append(nt.Pops, pp)
		nt.PopMap[pp.Name()] = pp
	}
	return nil
}

// PopByName returns the named population.  Returns nil and logs if not
// found; see PopByNameTry for errors.
func (nt *Network) PopByName(name string) Population {
	pp, err := nt.PopByNameTry(name)
	if err != nil {
		log.Println(err)
		return nil
	}
	return pp
}

// PopByNameTry returns the named population.
func (nt *Network) PopByNameTry(name string) (Population, error) {
	pp, ok := nt.PopMap[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPopulation, name)
	}
	return pp, nil
}

// Build finalizes every population for the configured dt: integration
// steppers, delay ring depths, monitors.  Run calls it automatically the
// first time, so explicit calls are only needed to inspect built state
// before running.
func (nt *Network) Build() error {
	for _, pp := range nt.Pops {
		if err := pp.Build(&nt.Opts); err != nil {
			return fmt.Errorf("brainpy: Network %s: building %s: %w", nt.Nm, pp.Name(), err)
		}
	}
	nt.State = Built
	return nil
}

// InitState resets the clock and every population's state and monitors,
// so the next Run starts from t=0 with initial values.
func (nt *Network) InitState() {
	nt.Time.Reset()
	for _, pp := range nt.Pops {
		pp.InitState()
	}
	if nt.State == Idle {
		nt.State = Built
	}
}

// resolvedInput is an Input bound to its target value slice.
type resolvedInput struct {
	vals []float32
	wave []float32
	mode InputModes
}

func (nt *Network) resolveInputs(inputs []Input, steps int) ([]resolvedInput, error) {
	rin := make([]resolvedInput, len(inputs))
	for i, in := range inputs {
		pp, err := nt.PopByNameTry(in.Pop)
		if err != nil {
			return nil, err
		}
		vals, err := pp.TargetState(in.Var)
		if err != nil {
			return nil, fmt.Errorf("brainpy: input target %s.%s: %w", in.Pop, in.Var, err)
		}
		if len(in.Waveform) != steps {
			return nil, fmt.Errorf("%w: input %s.%s waveform has %d values for %d steps", ErrLengthMismatch, in.Pop, in.Var, len(in.Waveform), steps)
		}
		rin[i] = resolvedInput{vals: vals, wave: in.Waveform, mode: in.Mode}
	}
	return rin, nil
}

// Run advances the simulation for the given duration, applying the given
// per-step input waveforms.  The clock continues from where the previous
// Run left off; use InitState to start over.  A panic inside a model
// update is recovered and returned as an error with the failing step.
// With report true, progress is logged at roughly 10% intervals along
// with elapsed wall time.
func (nt *Network) Run(duration float32, inputs []Input, report bool) (err error) {
	if nt.State == Unbuilt {
		if err = nt.Build(); err != nil {
			return err
		}
	}
	steps := NumSteps(duration, nt.Opts.Dt)
	rin, err := nt.resolveInputs(inputs, steps)
	if err != nil {
		return err
	}
	nt.State = Running
	defer func() {
		nt.State = Idle
		if r := recover(); r != nil {
			err = fmt.Errorf("brainpy: Network %s: panic at step %d (t=%g): %v", nt.Nm, nt.Time.Step, nt.Time.T, r)
		}
	}()
	start := time.Now()
	repEvery := steps / 10
	if repEvery < 1 {
		repEvery = 1
	}
	if report {
		log.Printf("%s: running %g for %d steps (dt=%g)", nt.Nm, duration, steps, nt.Opts.Dt)
	}
	for si := 0; si < steps; si++ {
		for _, ri := range rin {
			v := ri.wave[si]
			switch ri.mode {
			case Set:
				for i := range ri.vals {
					ri.vals[i] = v
				}
			case Add:
				for i := range ri.vals {
					ri.vals[i] += v
				}
			}
		}
		for _, pp := range nt.Pops {
			pp.UpdateStep(&nt.Time)
		}
		for _, pp := range nt.Pops {
			pp.OutputStep(&nt.Time)
		}
		for _, pp := range nt.Pops {
			pp.MonitorStep(&nt.Time)
		}
		for _, pp := range nt.Pops {
			pp.AdvanceDelay()
		}
		nt.Time.StepInc()
		if report && (si+1)%repEvery == 0 {
			log.Printf("%s: step %d / %d (t=%g), elapsed %v", nt.Nm, si+1, steps, nt.Time.T, time.Since(start).Round(time.Millisecond))
		}
	}
	if report {
		log.Printf("%s: done %d steps in %v", nt.Nm, steps, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// SizeBytes returns the total allocated state memory over all populations.
func (nt *Network) SizeBytes() int {
	sz := 0
	for _, pp := range nt.Pops {
		sz += pp.SizeBytes()
	}
	return sz
}

// SizeReport returns a human-readable summary of per-population and total
// state memory.
func (nt *Network) SizeReport() string {
	rpt := fmt.Sprintf("Network %s:\n", nt.Nm)
	for _, pp := range nt.Pops {
		rpt += fmt.Sprintf("\t%s: N: %d, State: %s\n", pp.Name(), pp.N(), datasize.ByteSize(pp.SizeBytes()).HumanReadable())
	}
	rpt += fmt.Sprintf("\tTotal: %s\n", datasize.ByteSize(nt.SizeBytes()).HumanReadable())
	return rpt
}
