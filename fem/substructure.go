// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"

	"github.com/xyat21/planingfsi/ele"
	"github.com/xyat21/planingfsi/inp"
)

// Sub defines what all substructures must compute
type Sub interface {

	// information and initialisation
	Name() string
	Kind() string
	SetBody(b *RigidBody)
	Body() *RigidBody
	SetInterpolator(ip Interpolator)
	Nodes() []*ele.Node
	LoadMesh(msh *inp.Mesh, nodes []*ele.Node) (err error)
	SetAttachments(byName func(string) Sub) (err error)

	// called for each iteration
	UpdateFluidForces(sol *Solution) (err error)
	UpdateGeometry() (err error)
	Residual() float64

	// results
	Forces() (D, L, M, Da, La, Ma float64)
	WriteCoordinates(it int) (err error)
	LoadCoordinates(it int) (err error)
}

// subAllocators holds all available substructures; kind => allocator
var subAllocators = make(map[string]func(dat *inp.SubData, sim *inp.Simulation) Sub)

// NewSub returns a new substructure from its kind; e.g. "rigid", "flexible", "torsionalSpring"
func NewSub(dat *inp.SubData, sim *inp.Simulation) (s Sub, err error) {
	allocator, ok := subAllocators[dat.Kind]
	if !ok {
		err = chk.Err("cannot find substructure kind %q", dat.Kind)
		return
	}
	s = allocator(dat, sim)
	return
}

// Substructure holds the chain of elements and nodes of one structural segment and
// implements the conversion of fluid/air pressure distributions into nodal loads and
// integrated force/moment totals
type Substructure struct {

	// input
	Dat *inp.SubData    // substructure data
	Sim *inp.Simulation // simulation data

	// relations
	body *RigidBody   // parent rigid body (non-owning)
	Ip   Interpolator // fluid-pressure model; may be nil

	// mesh
	Nod []*ele.Node   // ordered node chain
	Els []ele.Element // derived element chain; len == len(Nod)-1
	Geo *ChainGeom    // arc-length parameterisation

	// force totals
	D, L, M    float64 // drag, lift, moment about the body's centre of rotation
	Da, La, Ma float64 // air (cushion-only) drag, lift, moment

	// last-sampled pressure distributions (for diagnostics/plotting)
	FluidS, FluidP []float64 // fluid component: arc-length/pressure pairs
	AirS, AirP     []float64 // air component: arc-length/pressure pairs

	// scratchpad
	sMin, sMax float64 // wetted region bounds; valid while hasWetted
	hasWetted  bool
	elemKind   string // element kind to allocate: "truss" or "rigid"
}

// elemLoads holds the load samples computed for one element span
type elemLoads struct {
	s    []float64 // ascending arc-length samples
	pFl  []float64 // ramped hydrodynamic pressure
	tau  []float64 // shear stress
	pC   []float64 // cushion pressure
	pExt []float64 // external pressure: pFl + pC
	pTot []float64 // net pressure: pExt - internal
}

func (o *Substructure) initSub(dat *inp.SubData, sim *inp.Simulation, elemKind string) {
	o.Dat = dat
	o.Sim = sim
	o.elemKind = elemKind
}

// Name returns the substructure name
func (o *Substructure) Name() string { return o.Dat.Name }

// Kind returns the substructure kind
func (o *Substructure) Kind() string { return o.Dat.Kind }

// SetBody sets the parent rigid body
func (o *Substructure) SetBody(b *RigidBody) { o.body = b }

// Body returns the parent rigid body
func (o *Substructure) Body() *RigidBody { return o.body }

// SetInterpolator attaches the fluid-pressure model
func (o *Substructure) SetInterpolator(ip Interpolator) { o.Ip = ip }

// Nodes returns the ordered node chain
func (o *Substructure) Nodes() []*ele.Node { return o.Nod }

// Forces returns the accumulated force/moment totals
func (o *Substructure) Forces() (D, L, M, Da, La, Ma float64) {
	return o.D, o.L, o.M, o.Da, o.La, o.Ma
}

// Residual returns this substructure's contribution to the global residual
func (o *Substructure) Residual() float64 { return 0 }

// SetAttachments resolves references to other substructures (nothing to do here)
func (o *Substructure) SetAttachments(byName func(string) Sub) (err error) { return }

// LoadMesh builds the node chain, geometry and element chain from the mesh
func (o *Substructure) LoadMesh(msh *inp.Mesh, nodes []*ele.Node) (err error) {
	chain := msh.ChainByName(o.Dat.Name)
	if chain == nil {
		return chk.Err("cannot find chain for substructure %q in mesh file", o.Dat.Name)
	}

	// node chain
	ids := chain.VertIds()
	o.Nod = make([]*ele.Node, len(ids))
	for i, id := range ids {
		o.Nod[i] = nodes[id]
	}

	// geometry
	o.Geo, err = NewChainGeom(o.Nod, o.Dat.InterpKind, !o.Dat.NoExtrap)
	if err != nil {
		return chk.Err("substructure %q: %v", o.Dat.Name, err)
	}

	// element chain
	o.Els = make([]ele.Element, len(chain.Pairs))
	for i, p := range chain.Pairs {
		o.Els[i], err = ele.New(o.elemKind, nodes[p[0]], nodes[p[1]])
		if err != nil {
			return chk.Err("substructure %q: %v", o.Dat.Name, err)
		}
	}
	o.setElementProps()
	return
}

// setElementProps distributes the rest length uniformly over the element chain
func (o *Substructure) setElementProps() {
	l := o.Geo.ArcLength() / float64(len(o.Els))
	for _, e := range o.Els {
		e.SetRestLength(l)
	}
}

// fixAllDofs marks every DOF of the node chain as fixed (rigid chains)
func (o *Substructure) fixAllDofs() {
	for _, nd := range o.Nod {
		nd.FixedDof[0] = true
		nd.FixedDof[1] = true
	}
}

// UpdateGeometry recomputes element orientations and the arc-length parameterisation
// from the current node coordinates
func (o *Substructure) UpdateGeometry() (err error) {
	for _, e := range o.Els {
		e.UpdateGeometry()
	}
	return o.Geo.Update()
}

// UpdateFluidForces integrates the fluid/air pressure distributions into nodal loads
// and force/moment totals
func (o *Substructure) UpdateFluidForces(sol *Solution) (err error) {
	return o.integrateLoads(sol, false, nil)
}

// cushionPressure returns the cushion pressure at arc-length position s: the planing
// pressures outside the wetted region, or the constant total cushion pressure when no
// fluid model is attached
func (o *Substructure) cushionPressure(s float64) float64 {
	if o.Ip != nil {
		if !o.hasWetted {
			return 0
		}
		if s > o.sMax {
			return o.Ip.UpstreamPressure()
		}
		if s < o.sMin {
			return o.Ip.DownstreamPressure()
		}
		return 0
	}
	if o.Dat.CushionPressureType == "total" {
		return o.Sim.Data.Pc
	}
	return 0
}

// computeElemLoads samples the load distributions over the span of element i.
// constPs selects a constant internal pressure (torsional hinges) instead of the
// configured method.
func (o *Substructure) computeElemLoads(i int, sol *Solution, constPs bool) (l elemLoads) {
	dat := &o.Sim.Data
	s0, s1 := o.Geo.S[i], o.Geo.S[i+1]

	// fluid pressure and shear samples over the element span
	if o.Ip != nil {
		l.s, l.pFl, l.tau = o.Ip.GetLoadsInRange(s0, s1)
		if dat.PressureLimiter {
			for j := range l.pFl {
				l.pFl[j] = math.Min(l.pFl[j], dat.Pstag)
			}
		}
	} else {
		l.s = []float64{s0, s1}
		l.pFl = []float64{0, 0}
		l.tau = []float64{0, 0}
	}

	// retain fluid and air pressure samples for diagnostics/plotting
	pcEnd := o.cushionPressure(s1)
	hydro := !constPs && o.Dat.PsMethod == "hydrostatic"
	if i == 0 {
		o.FluidS = append(o.FluidS, l.s[0])
		o.FluidP = append(o.FluidP, l.pFl[0])
		o.AirS = append(o.AirS, s0)
		o.AirP = append(o.AirP, pcEnd-o.Dat.Ps)
	}
	o.FluidS = append(o.FluidS, l.s[1:]...)
	o.FluidP = append(o.FluidP, l.pFl[1:]...)
	o.AirS = append(o.AirS, s1)
	if hydro {
		_, y1 := o.Geo.Coords(s1)
		o.AirP = append(o.AirP, pcEnd-o.Dat.Ps+dat.Rho*dat.Grav*(y1-dat.HWL))
	} else {
		o.AirP = append(o.AirP, pcEnd-o.Dat.Ps)
	}

	// ramp attenuates the hydrodynamic component only
	for j := range l.pFl {
		l.pFl[j] *= sol.Ramp * sol.Ramp
	}

	// cushion, internal, external and net pressures per sample
	n := len(l.s)
	l.pC = make([]float64, n)
	l.pExt = make([]float64, n)
	l.pTot = make([]float64, n)
	for j := 0; j < n; j++ {
		l.pC[j] = o.cushionPressure(l.s[j])
		var pInt float64
		switch {
		case constPs:
			pInt = o.Dat.Ps
		case hydro:
			_, y := o.Geo.Coords(l.s[j])
			pInt = o.Dat.Ps - dat.Rho*dat.Grav*(y-dat.HWL)
		default:
			pInt = o.Dat.Ps * o.Dat.OverPressurePct
		}
		l.pExt[j] = l.pFl[j] + l.pC[j]
		l.pTot[j] = l.pExt[j] - pInt
	}
	return
}

// distribute splits the integral of a load distribution between the two element end
// nodes proportionally to the centroid of the distribution within the span
func distribute(s, vals []float64, sig float64) (q []float64) {
	q = make([]float64, 2)
	tot := num.Trapz(s, vals)
	if tot == 0 {
		return
	}
	sv := make([]float64, len(s))
	for j := range s {
		sv[j] = s[j] * vals[j]
	}
	pct := (num.Trapz(s, sv)/tot - s[0]) / (s[len(s)-1] - s[0])
	q[0] = sig * tot * (1 - pct)
	q[1] = sig * tot * pct
	return
}

// integrateForce integrates the surface traction -p·n + τ·t along the samples and
// returns the horizontal/vertical force integrals and the moment about point (xr,yr)
func (o *Substructure) integrateForce(s, p, tau []float64, xr, yr float64) (fxInt, fyInt, mInt float64) {
	n := len(s)
	fx := make([]float64, n)
	fy := make([]float64, n)
	mz := make([]float64, n)
	for j := 0; j < n; j++ {
		nx, ny := o.Geo.NormalVector(s[j])
		tx, ty := ny, -nx
		fx[j] = -p[j]*nx + tau[j]*tx
		fy[j] = -p[j]*ny + tau[j]*ty
		x, y := o.Geo.Coords(s[j])
		mz[j] = cross2(x-xr, y-yr, fx[j], fy[j])
	}
	fxInt = num.Trapz(s, fx)
	fyInt = num.Trapz(s, fy)
	mInt = num.Trapz(s, mz)
	return
}

// integrateLoads walks the element chain: it distributes the integrated net pressure
// and shear to the element nodes and accumulates the drag/lift/moment totals for the
// rigid-body computation. extra, if given, is called with the load samples of each
// element (used by torsional hinges to take moments about their base point).
func (o *Substructure) integrateLoads(sol *Solution, constPs bool, extra func(l *elemLoads)) (err error) {

	// reset
	o.FluidS = o.FluidS[:0]
	o.FluidP = o.FluidP[:0]
	o.AirS = o.AirS[:0]
	o.AirP = o.AirP[:0]
	o.D, o.L, o.M = 0, 0, 0
	o.Da, o.La, o.Ma = 0, 0, 0
	o.hasWetted = o.Ip != nil
	if o.hasWetted {
		o.sMin, o.sMax = o.Ip.MinMaxS()
	}
	if o.body == nil {
		return chk.Err("substructure %q is not attached to a rigid body", o.Dat.Name)
	}

	method := o.Sim.Data.CushionForceMethod
	for i, e := range o.Els {
		l := o.computeElemLoads(i, sol, constPs)

		// distribute net pressure and shear to the element nodes
		e.SetPressureAndShear(distribute(l.s, l.pTot, 1), distribute(l.s, l.tau, -1))

		// external force and moment for the rigid-body computation
		if method == "integrated" || method == "assumed" {
			integrand := l.pExt
			if method == "assumed" {
				integrand = l.pFl
			}
			fxInt, fyInt, mInt := o.integrateForce(l.s, integrand, l.tau, o.body.XCofR, o.body.YCofR)
			o.D -= fxInt
			o.L += fyInt
			o.M += mInt
		}

		// air (cushion-only) component
		fxInt, fyInt, mInt := o.integrateForce(l.s, l.pC, l.tau, o.body.XCofR, o.body.YCofR)
		o.Da -= fxInt
		o.La += fyInt
		o.Ma += mInt

		if extra != nil {
			extra(&l)
		}
	}

	// matched method takes the totals straight from the fluid solver
	if method == "matched" && o.Ip != nil {
		o.D, o.L, o.M = o.Ip.FluidTotals()
	}
	return
}

// RigidSub is a substructure with a fully fixed rigid element chain; it only transfers
// fluid loads to its parent body
type RigidSub struct {
	Substructure
}

// register substructure
func init() {
	subAllocators["rigid"] = func(dat *inp.SubData, sim *inp.Simulation) Sub {
		o := new(RigidSub)
		o.initSub(dat, sim, "rigid")
		return o
	}
}

// LoadMesh builds the chain and fixes all DOFs
func (o *RigidSub) LoadMesh(msh *inp.Mesh, nodes []*ele.Node) (err error) {
	err = o.Substructure.LoadMesh(msh, nodes)
	if err != nil {
		return
	}
	o.fixAllDofs()
	return
}
