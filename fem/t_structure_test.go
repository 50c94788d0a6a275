// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"os"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/xyat21/planingfsi/inp"
)

// buildPlaning builds a complete system: one body free in draft carrying a rigid
// planing plate pressurised by the constant cushion
func buildPlaning(tst *testing.T) *Structure {
	sim := testSim()
	sim.Data.Pc = 500
	sim.Bodies = []*inp.BodyData{{
		Name:         "hull",
		W:            100,
		Mass:         100 / 9.81,
		Iz:           1,
		XCofG:        1,
		YCofG:        0.5,
		XCofR:        1,
		YCofR:        0.5,
		FreeInDraft:  true,
		MaxDraftStep: 0.1,
		MaxTrimStep:  0.1,
		RelaxDraft:   1,
		RelaxTrim:    1,
		TimeStep:     1e-3,
	}}
	sim.Subs = []*inp.SubData{{
		Name:                "plate",
		Kind:                "rigid",
		Body:                "hull",
		InterpKind:          "linear",
		CushionPressureType: "total",
	}}

	nodes := chainNodes(0, 0, 1, 0, 2, 0)
	sim.Msh = chainMesh("plate", nodes)

	st, err := NewStructure(sim)
	if err != nil {
		tst.Fatalf("NewStructure failed:\n%v", err)
	}
	return st
}

func Test_struct01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("struct01. cushion lift and global residual")

	st := buildPlaning(tst)
	sol := &Solution{Ramp: 1}

	err := st.UpdateFluidForces(sol)
	if err != nil {
		tst.Errorf("UpdateFluidForces failed:\n%v", err)
		return
	}

	b := st.Bodies[0]
	chk.Scalar(tst, "L", 1e-6, b.L, 1000)
	chk.Scalar(tst, "resL", 1e-6, b.ResL, 900.0/(100.0+1e-6))
	chk.Scalar(tst, "resM locked", 1e-17, b.ResM, 0)
	chk.Scalar(tst, "residual", 1e-6, st.Residual(), 900.0/(100.0+1e-6))
}

func Test_struct02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("struct02. lookups and interpolator wiring")

	st := buildPlaning(tst)

	if st.BodyByName("hull") == nil || st.BodyByName("keel") != nil {
		tst.Errorf("BodyByName lookup is broken")
		return
	}
	if st.SubByName("plate") == nil || st.SubByName("seal") != nil {
		tst.Errorf("SubByName lookup is broken")
		return
	}

	err := st.SetInterpolator("plate", &fakeIp{sMin: -1, sMax: 3, p: 100})
	if err != nil {
		tst.Errorf("SetInterpolator failed:\n%v", err)
		return
	}
	err = st.SetInterpolator("seal", nil)
	if err == nil {
		tst.Errorf("SetInterpolator must fail for an unknown substructure")
		return
	}

	// with a fluid model attached, the constant cushion no longer applies
	err = st.UpdateFluidForces(&Solution{Ramp: 1})
	if err != nil {
		tst.Errorf("UpdateFluidForces failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "L", 1e-6, st.Bodies[0].L, 200)
}

func Test_struct03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("struct03. results round trip through the output directory")

	st := buildPlaning(tst)
	err := os.MkdirAll(st.Sim.DirOut, 0777)
	if err != nil {
		tst.Errorf("cannot create output directory:\n%v", err)
		return
	}
	sol := &Solution{Ramp: 1}

	err = st.UpdateFluidForces(sol)
	if err != nil {
		tst.Errorf("UpdateFluidForces failed:\n%v", err)
		return
	}
	err = st.InitPositions()
	if err != nil {
		tst.Errorf("InitPositions failed:\n%v", err)
		return
	}
	err = st.WriteResults(sol)
	if err != nil {
		tst.Errorf("WriteResults failed:\n%v", err)
		return
	}

	b := st.Bodies[0]
	draft, lift := b.Draft, b.L
	y0 := st.Nodes[0].X[1]

	// scramble the state and load it back
	b.Draft, b.L = math.NaN(), math.NaN()
	st.Nodes[0].SetCoords(123, 456)
	err = st.LoadResponse(sol)
	if err != nil {
		tst.Errorf("LoadResponse failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "draft restored", 1e-15, b.Draft, draft)
	chk.Scalar(tst, "lift restored", 1e-15, b.L, lift)
	chk.Scalar(tst, "y0 restored", 1e-15, st.Nodes[0].X[1], y0)

	// replay mode goes through the same loader
	st.Sim.Data.ResultsFromFile = true
	b.Draft = math.NaN()
	err = st.CalculateResponse(sol)
	if err != nil {
		tst.Errorf("CalculateResponse failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "draft replayed", 1e-15, b.Draft, draft)
}
