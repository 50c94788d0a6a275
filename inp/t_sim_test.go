// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. read simulation file and fill defaults")

	sim, err := ReadSim("data/plate.sim", true)
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}

	chk.String(tst, sim.Key, "plate")
	chk.String(tst, sim.EncType, "json")
	chk.String(tst, sim.DirOut, "/tmp/planingfsi/plate")

	// explicit values survive
	chk.Scalar(tst, "pstag", 1e-15, sim.Data.Pstag, 4500)
	chk.Scalar(tst, "relaxfem", 1e-15, sim.Solver.RelaxFEM, 0.8)
	chk.IntAssert(sim.Solver.NmaxIt, 200)

	// defaults are filled in
	chk.IntAssert(sim.Solver.BroydenReset, 6)
	chk.Scalar(tst, "timestep", 1e-15, sim.Solver.TimeStep, 1e-3)
	chk.String(tst, sim.Data.CushionForceMethod, "integrated")

	// body: weight from load fraction and seal load fraction, inertia derived
	b := sim.Bodies[0]
	chk.Scalar(tst, "W", 1e-15, b.W, 8000*0.5)
	chk.Scalar(tst, "mass", 1e-11, b.Mass, 8000*0.5/9.81)
	chk.Scalar(tst, "Iz", 1e-11, b.Iz, 8000*0.5/9.81*2*2/12)
	chk.Scalar(tst, "relaxdraft", 1e-15, b.RelaxDraft, 0.5)
	if b.XCofR != b.XCofG || b.YCofR != b.YCofG {
		tst.Errorf("centre of rotation must default to the centre of gravity")
		return
	}

	// substructures: kind normalisation and defaults
	chk.String(tst, sim.Subs[2].Kind, "flexible")
	chk.Scalar(tst, "pretension", 1e-15, sim.Subs[2].Pretension, -0.5)
	chk.Scalar(tst, "ea", 1e-15, sim.Subs[2].EA, 1e7)

	seal := sim.Subs[1]
	chk.Scalar(tst, "baseptpct", 1e-15, seal.BasePtPct, 1)
	chk.Scalar(tst, "springconstant", 1e-15, seal.SpringConstant, 2000)
	chk.Scalar(tst, "relaxang", 1e-15, seal.RelaxAng, 0.5)
	if !math.IsInf(seal.MinimumAngle, -1) || !math.IsInf(seal.MaxAngleStep, 1) {
		tst.Errorf("angle bounds must default to infinity")
		return
	}
	chk.String(tst, seal.AttachedEnd, "start")

	// ramp function from the functions database
	chk.Scalar(tst, "ramp(0)", 1e-15, sim.Ramp.F(0, nil), 0.25)
	chk.Scalar(tst, "ramp(10)", 1e-15, sim.Ramp.F(10, nil), 0.25)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. mesh is read along with the simulation")

	sim, err := ReadSim("data/plate.sim", true)
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}
	msh := sim.Msh
	if msh == nil {
		tst.Errorf("mesh must be read from the sim file reference")
		return
	}
	chk.IntAssert(len(msh.Verts), 5)
	chk.IntAssert(len(msh.Chains), 3)

	// missing fix/f arrays are allocated
	if msh.Verts[0].Fix == nil || msh.Verts[0].F == nil {
		tst.Errorf("fix and f arrays must be allocated")
		return
	}
	if !msh.Verts[3].Fix[0] || !msh.Verts[3].Fix[1] {
		tst.Errorf("fixed DOFs must be read")
		return
	}
	chk.Scalar(tst, "fixed load", 1e-15, msh.Verts[4].F[1], -10)

	// chain lookup and ordered vertex ids
	c := msh.ChainByName("plate")
	if c == nil {
		tst.Errorf("cannot find chain")
		return
	}
	chk.Ints(tst, "plate verts", c.VertIds(), []int{0, 1, 2})
	if msh.ChainByName("wing") != nil {
		tst.Errorf("unknown chain must give nil")
		return
	}
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03. function database lookups")

	var funcs FuncsData
	f, err := funcs.Get("zero")
	if err != nil {
		tst.Errorf("Get(zero) failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "zero", 1e-17, f.F(123, nil), 0)

	_, err = funcs.Get("missing")
	if err == nil {
		tst.Errorf("Get must fail for an unknown function")
		return
	}
}
