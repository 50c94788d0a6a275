// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/xyat21/planingfsi/ele"
	"github.com/xyat21/planingfsi/inp"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// chainNodes builds a node chain with sequential ids from coordinate pairs
func chainNodes(xy ...float64) (nodes []*ele.Node) {
	for i := 0; i < len(xy); i += 2 {
		nodes = append(nodes, ele.NewNode(i/2, xy[i], xy[i+1]))
	}
	return
}

// chainMesh builds a single-chain mesh over sequential vertex ids
func chainMesh(name string, nodes []*ele.Node) *inp.Mesh {
	msh := new(inp.Mesh)
	for _, nd := range nodes {
		msh.Verts = append(msh.Verts, &inp.Vert{
			Id:  nd.Id,
			C:   []float64{nd.X[0], nd.X[1]},
			Fix: make([]bool, 2),
			F:   make([]float64, 2),
		})
	}
	chain := &inp.Chain{Name: name}
	for i := 0; i < len(nodes)-1; i++ {
		chain.Pairs = append(chain.Pairs, []int{i, i + 1})
	}
	msh.Chains = append(msh.Chains, chain)
	return msh
}

// testSim builds a minimal in-memory simulation for component tests
func testSim() *inp.Simulation {
	sim := &inp.Simulation{
		Data: inp.Data{
			Rho:                1000,
			Grav:               9.81,
			Pstag:              100,
			Lref:               1,
			CushionForceMethod: "integrated",
		},
		Solver: inp.SolverData{
			NmaxIt:       20,
			Tol:          1e-6,
			RelaxRigid:   1,
			TimeStep:     1e-3,
			JacFirstStep: 1e-5,
			BroydenReset: 6,
			RelaxFEM:     1,
			MaxFEMDisp:   1,
		},
		LinSol:  inp.LinSolData{Name: "umfpack"},
		EncType: "json",
		DirOut:  "/tmp/planingfsi/test",
	}
	return sim
}

// testBody builds a rigid body with both DOFs free and wide step limits
func testBody(sim *inp.Simulation) *RigidBody {
	dat := &inp.BodyData{
		Name:         "hull",
		W:            100,
		Mass:         100 / 9.81,
		Iz:           100 / 9.81 / 12,
		FreeInDraft:  true,
		FreeInTrim:   true,
		MaxDraftStep: math.Inf(1),
		MaxTrimStep:  math.Inf(1),
		MaxDraftAcc:  1000,
		MaxTrimAcc:   1000,
		RelaxDraft:   1,
		RelaxTrim:    1,
		TimeStep:     1e-3,
		Beta:         0.25,
		Gamma:        0.5,
	}
	return NewRigidBody(dat, sim)
}
