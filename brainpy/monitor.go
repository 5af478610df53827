// Copyright (c) 2021, The BrainPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brainpy

import (
	"fmt"
	"io"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// Monitor records named state variables at every simulation step into an
// etable.Table: one row per step, a scalar T column for the clock, and one
// [num]-cell tensor column per watched variable.  Rows hold the
// post-update value for each step.
type Monitor struct {

	// watched variable names.
	Vars []string

	// population size, the cell shape of each variable column.
	Num int

	// recorded time series, one row per elapsed step.
	Tbl *etable.Table
}

// NewMonitor returns a monitor for the given variables, which must all be
// in the schema.
func NewMonitor(sc Schema, num int, vars ...string) (*Monitor, error) {
	if ok, missing := sc.Contains(vars...); !ok {
		return nil, fmt.Errorf("%w: cannot monitor %q, state has %v", ErrUnknownVariable, missing, sc.VarNames())
	}
	mn := &Monitor{Vars: vars, Num: num, Tbl: &etable.Table{}}
	sch := etable.Schema{{Name: "T", Type: etensor.FLOAT32, CellShape: nil, DimNames: nil}}
	for _, nm := range vars {
		sch = append(sch, etable.Column{Name: nm, Type: etensor.FLOAT32, CellShape: []int{num}, DimNames: nil})
	}
	mn.Tbl.SetFromSchema(sch, 0)
	return mn, nil
}

// Record appends one row with the current values of all watched variables.
func (mn *Monitor) Record(st *State, tm *Time) {
	row := mn.Tbl.Rows
	mn.Tbl.AddRows(1)
	mn.Tbl.SetCellFloat("T", row, float64(tm.T))
	for _, nm := range mn.Vars {
		cell := etensor.NewFloat32([]int{mn.Num}, nil, nil)
		copy(cell.Values, st.Values(nm))
		mn.Tbl.SetCellTensor(nm, row, cell)
	}
}

// NumSteps returns the number of recorded steps.
func (mn *Monitor) NumSteps() int {
	return mn.Tbl.Rows
}

// Series returns the full recorded series for the given variable as a
// [steps, num] tensor.
func (mn *Monitor) Series(name string) (*etensor.Float32, error) {
	col := mn.Tbl.ColByName(name)
	fcol, ok := col.(*etensor.Float32)
	if !ok {
		return nil, fmt.Errorf("%w: no recorded series for %q", ErrUnknownVariable, name)
	}
	return fcol, nil
}

// Value returns the recorded value of the given variable for one element
// at one step.
func (mn *Monitor) Value(name string, step, idx int) (float32, error) {
	col, err := mn.Series(name)
	if err != nil {
		return 0, err
	}
	return col.Values[step*mn.Num+idx], nil
}

// Reset drops all recorded rows.
func (mn *Monitor) Reset() {
	mn.Tbl.SetNumRows(0)
}

// WriteTSV writes the recorded series in tab-separated form with headers,
// for external reporting and plotting.
func (mn *Monitor) WriteTSV(w io.Writer) {
	mn.Tbl.WriteCSVHeaders(w, etable.Tab)
	for row := 0; row < mn.Tbl.Rows; row++ {
		mn.Tbl.WriteCSVRow(w, row, etable.Tab)
	}
}
