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

// MotionSolver computes the next rigid-body displacement increment (draft, trim) from
// the current force imbalance
type MotionSolver interface {
	Disp(sol *Solution) (dDraft, dTrim float64)
}

// motionAllocators holds all available motion strategies; method name => allocator
var motionAllocators = make(map[string]func(b *RigidBody) MotionSolver)

// RigidBody is a collection of substructures moving together with two degrees of
// freedom: draft (vertical sinkage, positive down) and trim (rotation about the
// centre of rotation, in degrees)
type RigidBody struct {

	// input
	Dat *inp.BodyData
	Sim *inp.Simulation

	// position state
	Draft, Trim    float64
	XCofG, YCofG   float64
	XCofR, YCofR   float64
	XCofG0, XCofR0 float64 // initial values, used by displacement strategies

	// force totals summed over the substructures
	D, L, M    float64
	Da, La, Ma float64

	// normalised equilibrium residuals
	ResL, ResM float64

	// relations
	Subs []Sub
	Nod  []*ele.Node // unique nodes over all substructures

	// motion state shared by the physical strategies
	v, a, vOld, aOld [2]float64

	solver MotionSolver
}

// NewRigidBody returns a new rigid body from its input data
func NewRigidBody(dat *inp.BodyData, sim *inp.Simulation) (o *RigidBody) {
	o = &RigidBody{Dat: dat, Sim: sim}
	o.XCofG, o.YCofG = dat.XCofG, dat.YCofG
	o.XCofR, o.YCofR = dat.XCofR, dat.YCofR
	o.XCofG0, o.XCofR0 = dat.XCofG, dat.XCofR
	o.ResL, o.ResM = 1, 1
	return
}

// AddSub attaches a substructure to this body
func (o *RigidBody) AddSub(s Sub) {
	o.Subs = append(o.Subs, s)
	s.SetBody(o)
}

// Free tells whether the body has any free degree of freedom
func (o *RigidBody) Free() bool {
	return o.Dat.FreeInDraft || o.Dat.FreeInTrim
}

// storeNodes collects the unique nodes over all substructures
func (o *RigidBody) storeNodes() {
	seen := make(map[int]bool)
	for _, s := range o.Subs {
		for _, nd := range s.Nodes() {
			if !seen[nd.Id] {
				seen[nd.Id] = true
				o.Nod = append(o.Nod, nd)
			}
		}
	}
}

// InitPosition moves the body from the mesh position to the initial draft and trim
func (o *RigidBody) InitPosition() (err error) {
	return o.SetPosition(o.Dat.InitialDraft, o.Dat.InitialTrim)
}

// SetPosition moves the body to an absolute draft and trim
func (o *RigidBody) SetPosition(draft, trim float64) (err error) {
	return o.UpdatePosition(draft-o.Draft, trim-o.Trim)
}

// UpdatePosition moves the body by the given increments: all nodes rotate about the
// centre of rotation by dTrim degrees and then translate down by dDraft. The centres
// of gravity and rotation follow.
func (o *RigidBody) UpdatePosition(dDraft, dTrim float64) (err error) {
	if o.Nod == nil {
		o.storeNodes()
	}

	for _, nd := range o.Nod {
		x, y := rotatePt(nd.X[0], nd.X[1], o.XCofR, o.YCofR, dTrim)
		nd.Move(x-nd.X[0], y-nd.X[1]-dDraft)
	}

	for _, s := range o.Subs {
		err = s.UpdateGeometry()
		if err != nil {
			return
		}
	}

	o.XCofG, o.YCofG = rotatePt(o.XCofG, o.YCofG, o.XCofR, o.YCofR, dTrim)
	o.YCofG -= dDraft
	o.YCofR -= dDraft

	o.Draft += dDraft
	o.Trim += dTrim

	o.PrintMotion()
	return
}

// UpdateMotion computes the next displacement increment with the configured strategy
// and applies it
func (o *RigidBody) UpdateMotion(sol *Solution) (err error) {
	var dDraft, dTrim float64
	if o.Free() {
		if o.solver == nil {
			allocator, ok := motionAllocators[o.Sim.Solver.MotionMethod]
			if !ok {
				return chk.Err("cannot find motion method %q", o.Sim.Solver.MotionMethod)
			}
			o.solver = allocator(o)
		}
		dDraft, dTrim = o.solver.Disp(sol)
		if math.IsNaN(dDraft) {
			dDraft = 0
		}
		if math.IsNaN(dTrim) {
			dTrim = 0
		}
	}
	return o.UpdatePosition(dDraft, dTrim)
}

// UpdateFluidForces sums the substructure force totals and refreshes the equilibrium
// residuals. With the assumed cushion force method the cushion lift is seeded
// analytically instead of integrated.
func (o *RigidBody) UpdateFluidForces(sol *Solution) (err error) {
	o.D, o.L, o.M = 0, 0, 0
	o.Da, o.La, o.Ma = 0, 0, 0
	if o.Sim.Data.CushionForceMethod == "assumed" {
		o.L = o.Sim.Data.Pc * o.Sim.Data.Lref * cosd(o.Trim)
	}
	for _, s := range o.Subs {
		err = s.UpdateFluidForces(sol)
		if err != nil {
			return
		}
		d, l, m, da, la, ma := s.Forces()
		o.D += d
		o.L += l
		o.M += m
		o.Da += da
		o.La += la
		o.Ma += ma
	}
	o.ResL = o.ResLift()
	o.ResM = o.ResMoment()
	return
}

// ResLift returns the normalised lift imbalance; 1 when the lift is NaN and 0 when
// the body is not free in draft
func (o *RigidBody) ResLift() float64 {
	if !o.Dat.FreeInDraft {
		return 0
	}
	if math.IsNaN(o.L) {
		return 1
	}
	dat := &o.Sim.Data
	return math.Abs((o.L - o.Dat.W) / (dat.Pstag*dat.Lref + 1e-6))
}

// ResMoment returns the normalised moment imbalance; 1 when the moment is NaN or when
// there is no moment arm at all, 0 when the body is not free in trim
func (o *RigidBody) ResMoment() float64 {
	if !o.Dat.FreeInTrim {
		return 0
	}
	if math.IsNaN(o.M) {
		return 1
	}
	if o.XCofG == o.XCofR && o.M == 0 {
		return 1
	}
	dat := &o.Sim.Data
	return math.Abs((o.M - o.Dat.W*(o.XCofG-o.XCofR)) / (dat.Pstag*dat.Lref*dat.Lref + 1e-6))
}

// momentTarget is the moment required for equilibrium about the centre of rotation
func (o *RigidBody) momentTarget() float64 {
	return o.Dat.W * (o.XCofG - o.XCofR)
}

// LimitDisp caps the displacement increment: the whole step is scaled uniformly by
// the worst per-DOF violation of the maximum step sizes, and non-free DOFs are zeroed
func (o *RigidBody) LimitDisp(dDraft, dTrim float64) (float64, float64) {
	disp := [2]float64{dDraft, dTrim}
	maxDisp := [2]float64{o.Dat.MaxDraftStep, o.Dat.MaxTrimStep}
	free := [2]bool{o.Dat.FreeInDraft, o.Dat.FreeInTrim}
	fac := 1.0
	for i := 0; i < 2; i++ {
		if disp[i] == 0 || !free[i] {
			continue
		}
		lim := math.Min(math.Abs(disp[i]), maxDisp[i]) * sign(disp[i])
		if pct := lim / disp[i]; pct < fac {
			fac = pct
		}
	}
	for i := 0; i < 2; i++ {
		disp[i] *= fac
		if !free[i] {
			disp[i] = 0
		}
	}
	return disp[0], disp[1]
}

// PrintMotion reports the current position and force state to the console
func (o *RigidBody) PrintMotion() {
	io.Pf("rigid body motion: %s\n", o.Dat.Name)
	io.Pf("  CofR: (%g, %g)\n", o.XCofR, o.YCofR)
	io.Pf("  CofG: (%g, %g)\n", o.XCofG, o.YCofG)
	io.Pf("  draft:      %13.8e\n", o.Draft)
	io.Pf("  trim angle: %13.8e\n", o.Trim)
	io.Pf("  lift force: %13.8e\n", o.L)
	io.Pf("  drag force: %13.8e\n", o.D)
	io.Pf("  moment:     %13.8e\n", o.M)
	io.Pf("  lift force air: %13.8e\n", o.La)
	io.Pf("  drag force air: %13.8e\n", o.Da)
	io.Pf("  moment air:     %13.8e\n", o.Ma)
	io.Pf("  lift res:   %13.8e\n", o.ResL)
	io.Pf("  moment res: %13.8e\n", o.ResM)
}
