// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/xyat21/planingfsi/ele"
	"github.com/xyat21/planingfsi/inp"
)

// Structure is the complete structural system: the rigid bodies, their substructures
// and the global FEM system coupling the flexible ones
type Structure struct {

	// input
	Sim *inp.Simulation

	// components
	Bodies   []*RigidBody
	Subs     []Sub
	FlexSubs []*FlexSub
	Nodes    []*ele.Node

	// residual of the last outer iteration
	Res float64

	// global FEM system over the free DOFs
	eqFree   []int // DOF equation number => reduced index; -1 if fixed
	nEqFree  int
	Kb       *la.Triplet
	Fb, Wb   []float64
	lis      la.LinSol
	initLSol bool
	ResFEM   float64 // largest unrelaxed FEM displacement
}

// NewStructure builds the structural system from the simulation input: nodes from the
// mesh, rigid bodies, substructures attached to their bodies, and the global linear
// system
func NewStructure(sim *inp.Simulation) (o *Structure, err error) {
	o = &Structure{Sim: sim, Res: 1}

	if len(sim.Bodies) == 0 {
		return nil, chk.Err("at least one rigid body must be defined")
	}

	// nodes
	o.Nodes = make([]*ele.Node, len(sim.Msh.Verts))
	for i, v := range sim.Msh.Verts {
		nd := ele.NewNode(v.Id, v.C[0], v.C[1])
		nd.FixedDof[0], nd.FixedDof[1] = v.Fix[0], v.Fix[1]
		nd.FixedLoad[0], nd.FixedLoad[1] = v.F[0], v.F[1]
		o.Nodes[i] = nd
	}

	// rigid bodies
	for _, bdat := range sim.Bodies {
		o.Bodies = append(o.Bodies, NewRigidBody(bdat, sim))
	}

	// substructures
	for _, dat := range sim.Subs {
		var s Sub
		s, err = NewSub(dat, sim)
		if err != nil {
			return
		}
		b := o.BodyByName(dat.Body)
		if b == nil {
			b = o.Bodies[0]
		}
		b.AddSub(s)
		o.Subs = append(o.Subs, s)
		if fs, ok := s.(*FlexSub); ok {
			o.FlexSubs = append(o.FlexSubs, fs)
		}
		io.Pf("adding substructure %s of kind %s to rigid body %s\n", s.Name(), s.Kind(), b.Dat.Name)
	}

	// meshes and attachments
	for _, s := range o.Subs {
		err = s.LoadMesh(sim.Msh, o.Nodes)
		if err != nil {
			return
		}
	}
	for _, s := range o.Subs {
		err = s.SetAttachments(o.SubByName)
		if err != nil {
			return
		}
	}

	err = o.initLinSys()
	return
}

// BodyByName returns the rigid body with the given name or nil
func (o *Structure) BodyByName(name string) *RigidBody {
	for _, b := range o.Bodies {
		if b.Dat.Name == name {
			return b
		}
	}
	return nil
}

// SubByName returns the substructure with the given name or nil
func (o *Structure) SubByName(name string) Sub {
	for _, s := range o.Subs {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// SetInterpolator attaches a fluid-pressure model to the named substructure
func (o *Structure) SetInterpolator(name string, ip Interpolator) (err error) {
	s := o.SubByName(name)
	if s == nil {
		return chk.Err("cannot find substructure %q", name)
	}
	s.SetInterpolator(ip)
	return
}

// InitPositions moves all bodies from the mesh position to their initial draft and trim
func (o *Structure) InitPositions() (err error) {
	for _, b := range o.Bodies {
		err = b.InitPosition()
		if err != nil {
			return
		}
	}
	return
}

// UpdateFluidForces refreshes the fluid loading of all bodies
func (o *Structure) UpdateFluidForces(sol *Solution) (err error) {
	for _, b := range o.Bodies {
		err = b.UpdateFluidForces(sol)
		if err != nil {
			return
		}
	}
	return
}

// CalculateResponse advances the structural state by one outer iteration: the rigid
// bodies move first, then the flexible substructures deform and the hinged ones
// rotate. In replay mode the state is read back from a previous run instead.
func (o *Structure) CalculateResponse(sol *Solution) (err error) {
	if o.Sim.Data.ResultsFromFile {
		return o.LoadResponse(sol)
	}
	for _, b := range o.Bodies {
		err = b.UpdateMotion(sol)
		if err != nil {
			return
		}
	}
	return o.updateSubPositions(sol)
}

// updateSubPositions solves the global FEM system and rotates the hinged substructures
func (o *Structure) updateSubPositions(sol *Solution) (err error) {
	err = o.UpdateFlexible(sol)
	if err != nil {
		return
	}
	for _, s := range o.Subs {
		if r, ok := s.(Rotator); ok {
			io.Pf("updating position of substructure: %s\n", s.Name())
			err = r.UpdateAngle(sol)
			if err != nil {
				return
			}
		}
	}
	return
}

// Residual returns the largest residual over all components: the normalised rigid-body
// imbalances, the FEM displacement and the hinge rotation increments
func (o *Structure) Residual() (res float64) {
	for _, b := range o.Bodies {
		if b.Free() {
			res = math.Max(res, math.Abs(b.ResL))
			res = math.Max(res, math.Abs(b.ResM))
		}
	}
	res = math.Max(res, o.ResFEM)
	for _, s := range o.Subs {
		res = math.Max(res, math.Abs(s.Residual()))
	}
	return
}

// LoadResponse reads the structural state of the current iteration back from the
// output directory of a previous run
func (o *Structure) LoadResponse(sol *Solution) (err error) {
	for _, b := range o.Bodies {
		err = b.LoadMotion(sol.It)
		if err != nil {
			return
		}
	}
	for _, s := range o.Subs {
		err = s.LoadCoordinates(sol.It)
		if err != nil {
			return
		}
		err = s.UpdateGeometry()
		if err != nil {
			return
		}
	}
	return
}

// WriteResults writes the motion and coordinate records of the current iteration
func (o *Structure) WriteResults(sol *Solution) (err error) {
	for _, b := range o.Bodies {
		err = b.WriteMotion(sol.It)
		if err != nil {
			return
		}
	}
	for _, s := range o.Subs {
		err = s.WriteCoordinates(sol.It)
		if err != nil {
			return
		}
		if sp, ok := s.(*SpringSub); ok {
			err = sp.WriteDeformation(sol.It)
			if err != nil {
				return
			}
		}
	}
	return
}

// Run iterates the coupled system until the residual drops below the tolerance with
// the ramp fully released, or the maximum number of iterations is reached
func (o *Structure) Run() (err error) {
	sol := &Solution{Dt: o.Sim.Solver.TimeStep}
	for it := 0; it < o.Sim.Solver.NmaxIt; it++ {
		sol.It = it
		sol.T = float64(it) * sol.Dt
		sol.Ramp = o.Sim.Ramp.F(sol.T, nil)
		io.Pf("\n=== iteration %4d: t=%g ramp=%g ==========================\n", it, sol.T, sol.Ramp)

		err = o.UpdateFluidForces(sol)
		if err != nil {
			return
		}
		err = o.CalculateResponse(sol)
		if err != nil {
			return
		}
		err = o.WriteResults(sol)
		if err != nil {
			return
		}

		o.Res = o.Residual()
		io.Pf("residual = %g\n", o.Res)
		if o.Res < o.Sim.Solver.Tol && sol.Ramp >= 1 {
			io.Pf("converged after %d iterations\n", it+1)
			return
		}
	}
	return chk.Err("maximum number of iterations reached. residual = %g", o.Res)
}
