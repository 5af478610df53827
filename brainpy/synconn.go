// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brainpy

import (
	"fmt"
	"strings"

	"github.com/LuckyHFC/BrainPy/connect"
	"github.com/goki/mat32"
)

// SynConn is an ensemble of synapses connecting a presynaptic to a
// postsynaptic neuron group, updated by one SynapseModel.  Connectivity is
// built eagerly at construction; delay rings and monitors are sized at
// network Build, once dt is known.
type SynConn struct {

	// population name.
	Nm string

	// number of synapses (edges); fixed at construction.
	Num int

	// the synapse model driving updates and output.
	Model SynapseModel

	// named state plus delay rings, one value per synapse per variable.
	ST *SynState

	// presynaptic neuron group.
	Pre *NeuGroup

	// postsynaptic neuron group.
	Post *NeuGroup

	// built connectivity: edge lists and adjacency maps.
	Conns *connect.Conns

	// conduction delay in time units (e.g. ms).
	Delay float32

	// delay in steps: ceil(Delay / dt), computed at Build.
	DelayLen int

	// recorded time series for watched variables (nil if none).
	Mon *Monitor

	watchVars []string
}

// NewSynConn returns a synapse connection between the given groups, with
// connectivity built by the given rule.  Rules that produce zero edges
// fail with ErrEmptyConnection; models whose state requirements the groups
// cannot satisfy fail with ErrUnknownVariable.
func NewSynConn(name string, model SynapseModel, pre, post *NeuGroup, rule connect.Rule, delay float32) (*SynConn, error) {
	if delay < 0 {
		return nil, fmt.Errorf("brainpy: SynConn %s: delay must be non-negative, got %g", name, delay)
	}
	cn, err := connect.Build(rule, pre.Num, post.Num)
	if err != nil {
		return nil, err
	}
	if cn.Empty() {
		return nil, fmt.Errorf("%w: rule %s produced no synapses between %s (%d) and %s (%d)", connect.ErrEmptyConnection, rule.Name(), pre.Nm, pre.Num, post.Nm, post.Num)
	}
	rq := model.Requires()
	if err := rq.Validate(model.Name(), pre.Model.Schema(), post.Model.Schema()); err != nil {
		return nil, err
	}
	sc := &SynConn{Nm: name, Num: cn.NSyn(), Model: model, Pre: pre, Post: post, Conns: cn, Delay: delay}
	return sc, nil
}

func (sc *SynConn) Name() string {
	return sc.Nm
}

func (sc *SynConn) N() int {
	return sc.Num
}

// Watch registers state variables to record at every step.
func (sc *SynConn) Watch(vars ...string) error {
	if ok, missing := sc.Model.Schema().Contains(vars...); !ok {
		return fmt.Errorf("%w: cannot monitor %q on %s, state has %v", ErrUnknownVariable, missing, sc.Nm, sc.Model.Schema().VarNames())
	}
	sc.watchVars = append(sc.watchVars, vars...)
	return nil
}

// Build computes the delay depth from dt and allocates synapse state and
// delay rings.  Rebuilding with a different dt re-allocates state.
func (sc *SynConn) Build(opts *Options) error {
	if err := sc.Model.Build(opts); err != nil {
		return err
	}
	sc.DelayLen = int(mat32.Ceil(sc.Delay / opts.Dt))
	sc.ST = NewSynState(sc.Model.Schema(), sc.Num, sc.DelayLen)
	if len(sc.watchVars) > 0 {
		mon, err := NewMonitor(sc.Model.Schema(), sc.Num, sc.watchVars...)
		if err != nil {
			return err
		}
		sc.Mon = mon
	}
	return nil
}

func (sc *SynConn) InitState() {
	sc.ST.InitState()
	if sc.Mon != nil {
		sc.Mon.Reset()
	}
}

// TargetState resolves input targets: a bare name addresses synapse state,
// a pre. or post. prefix addresses the connected neuron groups.
func (sc *SynConn) TargetState(varNm string) ([]float32, error) {
	switch {
	case strings.HasPrefix(varNm, "pre."):
		return sc.Pre.ST.ValuesTry(strings.TrimPrefix(varNm, "pre."))
	case strings.HasPrefix(varNm, "post."):
		return sc.Post.ST.ValuesTry(strings.TrimPrefix(varNm, "post."))
	}
	return sc.ST.ValuesTry(varNm)
}

func (sc *SynConn) UpdateStep(tm *Time) {
	sc.Model.Update(sc.ST, tm, sc.Pre.ST, sc.Conns)
}

func (sc *SynConn) OutputStep(tm *Time) {
	sc.Model.Output(sc.ST, sc.Post.ST, sc.Conns)
}

func (sc *SynConn) MonitorStep(tm *Time) {
	if sc.Mon != nil {
		sc.Mon.Record(&sc.ST.State, tm)
	}
}

func (sc *SynConn) AdvanceDelay() {
	sc.ST.AdvanceDelay()
}

func (sc *SynConn) SizeBytes() int {
	sz := sc.ST.SizeBytes()
	sz += 4 * (sc.Conns.PreIDs.Len() + sc.Conns.PostIDs.Len())
	return sz
}
