// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/xyat21/planingfsi/inp"
)

// buildStrip builds a three-node pretensioned strip with both ends pinned and the
// middle node free
func buildStrip(tst *testing.T) *Structure {
	sim := testSim()
	sim.Bodies = []*inp.BodyData{{
		Name:         "hull",
		W:            100,
		Mass:         100 / 9.81,
		Iz:           1,
		MaxDraftStep: 1e-3,
		MaxTrimStep:  1e-3,
		RelaxDraft:   1,
		RelaxTrim:    1,
		TimeStep:     1e-3,
	}}
	sim.Subs = []*inp.SubData{{
		Name:       "strip",
		Kind:       "flexible",
		Body:       "hull",
		InterpKind: "linear",
		Pretension: -0.5,
		EA:         5e7,
	}}

	nodes := chainNodes(0, 0, 1, 0, 2, 0)
	msh := chainMesh("strip", nodes)
	msh.Verts[0].Fix = []bool{true, true}
	msh.Verts[2].Fix = []bool{true, true}
	sim.Msh = msh

	st, err := NewStructure(sim)
	if err != nil {
		tst.Fatalf("NewStructure failed:\n%v", err)
	}
	return st
}

func Test_flex01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flex01. pretensioned strip without loads is in equilibrium")

	st := buildStrip(tst)
	chk.IntAssert(st.nEqFree, 2) // middle node only

	err := st.UpdateFlexible(&Solution{Ramp: 1})
	if err != nil {
		tst.Errorf("UpdateFlexible failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "resFEM", 1e-10, st.ResFEM, 0)
	chk.Scalar(tst, "x middle", 1e-10, st.Nodes[1].X[0], 1)
	chk.Scalar(tst, "y middle", 1e-10, st.Nodes[1].X[1], 0)
}

func Test_flex02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flex02. transverse point load deflects against the pretension")

	st := buildStrip(tst)

	// transverse stiffness at the middle node comes from the geometric part only:
	// two elements with axial force 0.5 over length 1
	st.Nodes[1].FixedLoad[1] = 0.1
	err := st.UpdateFlexible(&Solution{Ramp: 1})
	if err != nil {
		tst.Errorf("UpdateFlexible failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "resFEM", 1e-9, st.ResFEM, 0.1)
	chk.Scalar(tst, "y middle", 1e-9, st.Nodes[1].X[1], 0.1)
	chk.Scalar(tst, "x middle", 1e-9, st.Nodes[1].X[0], 1)
}

func Test_flex03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flex03. displacement cap limits the FEM step")

	st := buildStrip(tst)
	st.Sim.Solver.MaxFEMDisp = 0.05

	st.Nodes[1].FixedLoad[1] = 0.1
	err := st.UpdateFlexible(&Solution{Ramp: 1})
	if err != nil {
		tst.Errorf("UpdateFlexible failed:\n%v", err)
		return
	}

	// the raw displacement of 0.1 is reported as residual but applied capped
	chk.Scalar(tst, "resFEM", 1e-9, st.ResFEM, 0.1)
	chk.Scalar(tst, "y middle capped", 1e-9, st.Nodes[1].X[1], 0.05)
}

func Test_flex04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flex04. FEM relaxation scales the applied step")

	st := buildStrip(tst)
	st.Sim.Solver.RelaxFEM = 0.5

	st.Nodes[1].FixedLoad[1] = 0.1
	err := st.UpdateFlexible(&Solution{Ramp: 1})
	if err != nil {
		tst.Errorf("UpdateFlexible failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "resFEM", 1e-9, st.ResFEM, 0.1)
	chk.Scalar(tst, "y middle relaxed", 1e-9, st.Nodes[1].X[1], 0.05)
}
