// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/xyat21/planingfsi/ele"
	"github.com/xyat21/planingfsi/inp"
)

// FlexSub is a substructure whose truss element chain deforms elastically under the
// net pressure loading
type FlexSub struct {
	Substructure
}

// register substructure
func init() {
	subAllocators["flexible"] = func(dat *inp.SubData, sim *inp.Simulation) Sub {
		o := new(FlexSub)
		o.initSub(dat, sim, "truss")
		return o
	}
}

// LoadMesh builds the chain and sets the axial properties of the truss elements
func (o *FlexSub) LoadMesh(msh *inp.Mesh, nodes []*ele.Node) (err error) {
	err = o.Substructure.LoadMesh(msh, nodes)
	if err != nil {
		return
	}
	for _, e := range o.Els {
		e.SetAxialProps(-o.Dat.Pretension, o.Dat.EA)
	}
	return
}

// initLinSys numbers the free DOFs and allocates the global linear system. Must be
// called after all meshes are loaded and all fixed DOFs are set.
func (o *Structure) initLinSys() (err error) {
	nEq := 2 * len(o.Nodes)
	o.eqFree = make([]int, nEq)
	for i := range o.eqFree {
		o.eqFree[i] = -1
	}
	o.nEqFree = 0
	for _, nd := range o.Nodes {
		for i := 0; i < 2; i++ {
			if !nd.FixedDof[i] {
				o.eqFree[nd.Eq[i]] = o.nEqFree
				o.nEqFree++
			}
		}
	}
	if o.nEqFree == 0 {
		return
	}

	// count nonzeros: one 4x4 block per element
	nnz := 0
	for _, s := range o.FlexSubs {
		nnz += 16 * len(s.Els)
	}
	o.Kb = new(la.Triplet)
	o.Kb.Init(o.nEqFree, o.nEqFree, nnz)
	o.Fb = make([]float64, o.nEqFree)
	o.Wb = make([]float64, o.nEqFree)
	o.lis = la.GetSolver(o.Sim.LinSol.Name)
	return
}

// Clean cleans memory allocated by the linear solver
func (o *Structure) Clean() {
	if o.initLSol {
		o.lis.Clean()
	}
}

// assembleKF assembles the global stiffness matrix and force vector over the free DOFs
// from all flexible substructures plus the prescribed nodal loads
func (o *Structure) assembleKF() (err error) {
	o.Kb.Start()
	la.VecFill(o.Fb, 0)
	for _, s := range o.FlexSubs {
		for _, e := range s.Els {
			var K [][]float64
			var F []float64
			K, F, err = e.StiffnessAndForce()
			if err != nil {
				return chk.Err("substructure %q: %v", s.Name(), err)
			}
			eqs := e.Eqs()
			for i, I := range eqs {
				ri := o.eqFree[I]
				if ri < 0 {
					continue
				}
				o.Fb[ri] += F[i]
				for j, J := range eqs {
					if rj := o.eqFree[J]; rj >= 0 {
						o.Kb.Put(ri, rj, K[i][j])
					}
				}
			}
		}
	}
	for _, nd := range o.Nodes {
		for i := 0; i < 2; i++ {
			if r := o.eqFree[nd.Eq[i]]; r >= 0 {
				o.Fb[r] += nd.FixedLoad[i]
			}
		}
	}
	return
}

// UpdateFlexible refreshes the fluid loads on the flexible substructures, solves the
// global FEM system and moves the free nodes by the relaxed displacements. The FEM
// residual is the largest unrelaxed displacement.
func (o *Structure) UpdateFlexible(sol *Solution) (err error) {
	if len(o.FlexSubs) == 0 || o.nEqFree == 0 {
		return
	}

	for _, s := range o.FlexSubs {
		err = s.UpdateFluidForces(sol)
		if err != nil {
			return
		}
	}

	err = o.assembleKF()
	if err != nil {
		return
	}

	// solve
	if !o.initLSol {
		err = o.lis.InitR(o.Kb, o.Sim.LinSol.Symmetric, o.Sim.LinSol.Verbose, o.Sim.LinSol.Timing)
		if err != nil {
			return chk.Err("cannot initialise linear solver:\n%v", err)
		}
		o.initLSol = true
	}
	err = o.lis.Fact()
	if err != nil {
		return chk.Err("factorisation of the global stiffness matrix failed; check boundary conditions of flexible substructures:\n%v", err)
	}
	err = o.lis.SolveR(o.Wb, o.Fb, false)
	if err != nil {
		return chk.Err("cannot solve global FEM system:\n%v", err)
	}

	// residual and step limiting
	o.ResFEM = 0
	for _, w := range o.Wb {
		o.ResFEM = math.Max(o.ResFEM, math.Abs(w))
	}
	fac := o.Sim.Solver.RelaxFEM
	if m := o.ResFEM * fac; m > o.Sim.Solver.MaxFEMDisp {
		fac *= o.Sim.Solver.MaxFEMDisp / m
	}

	// move free nodes
	for _, nd := range o.Nodes {
		var dx, dy float64
		if r := o.eqFree[nd.Eq[0]]; r >= 0 {
			dx = o.Wb[r] * fac
		}
		if r := o.eqFree[nd.Eq[1]]; r >= 0 {
			dy = o.Wb[r] * fac
		}
		nd.Move(dx, dy)
	}

	for _, s := range o.FlexSubs {
		err = s.UpdateGeometry()
		if err != nil {
			return
		}
	}
	return
}
