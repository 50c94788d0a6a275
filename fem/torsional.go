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

// Rotator is implemented by substructures whose position update is a rotation
type Rotator interface {
	UpdateAngle(sol *Solution) (err error)
}

// SpringSub is a rigid substructure hinged at a base point and restrained by a
// torsional spring: the net pressure moment about the base point rotates the chain
// towards its equilibrium angle
type SpringSub struct {
	Substructure

	// current state
	Theta      float64 // accumulated rotation (degrees)
	Dt, Lt, Mt float64 // force/moment totals about the base point
	BasePt     [2]float64

	// attachment to another substructure (optional)
	attachedNode *ele.Node

	resid float64 // last angle increment
}

// register substructure
func init() {
	subAllocators["torsionalSpring"] = func(dat *inp.SubData, sim *inp.Simulation) Sub {
		o := new(SpringSub)
		o.initSub(dat, sim, "rigid")
		return o
	}
}

// LoadMesh builds the chain, fixes all DOFs, locates the base point and applies the
// initial rotation
func (o *SpringSub) LoadMesh(msh *inp.Mesh, nodes []*ele.Node) (err error) {
	err = o.Substructure.LoadMesh(msh, nodes)
	if err != nil {
		return
	}
	o.fixAllDofs()
	switch o.Dat.BasePtPct {
	case 1:
		o.BasePt[0], o.BasePt[1] = o.Nod[len(o.Nod)-1].X[0], o.Nod[len(o.Nod)-1].X[1]
	case 0:
		o.BasePt[0], o.BasePt[1] = o.Nod[0].X[0], o.Nod[0].X[1]
	default:
		o.BasePt[0], o.BasePt[1] = o.Geo.Coords(o.Dat.BasePtPct * o.Geo.ArcLength())
	}
	return o.SetAngle(o.Dat.InitialAngle)
}

// SetAttachments resolves the reference to the attached substructure: the node at the
// given end of the attached chain rotates together with this hinge
func (o *SpringSub) SetAttachments(byName func(string) Sub) (err error) {
	if o.Dat.AttachedSub == "" {
		return
	}
	att := byName(o.Dat.AttachedSub)
	if att == nil {
		return chk.Err("substructure %q: cannot find attached substructure %q", o.Dat.Name, o.Dat.AttachedSub)
	}
	nds := att.Nodes()
	if o.Dat.AttachedEnd == "start" {
		o.attachedNode = nds[0]
	} else {
		o.attachedNode = nds[len(nds)-1]
	}
	return
}

// UpdateFluidForces integrates the pressure loading and additionally takes moments
// about the base point, including the ramped tip load
func (o *SpringSub) UpdateFluidForces(sol *Solution) (err error) {
	o.Dt, o.Lt, o.Mt = 0, 0, 0
	err = o.integrateLoads(sol, true, func(l *elemLoads) {
		fxInt, fyInt, mInt := o.integrateForce(l.s, l.pTot, l.tau, o.BasePt[0], o.BasePt[1])
		o.Dt += fxInt
		o.Lt += fyInt
		o.Mt += mInt
	})
	if err != nil {
		return
	}

	// tip load
	tipX, tipY := o.Geo.Coords(o.Dat.TipLoadPct * o.Geo.ArcLength())
	tipF := o.Dat.TipLoad * sol.Ramp
	o.Lt += tipF
	o.Mt += cross2(tipX-o.BasePt[0], tipY-o.BasePt[1], 0, tipF)
	return
}

// UpdateAngle rotates the chain towards the equilibrium angle of the torsional spring
// under the current moment, relaxed and capped by the maximum angle step
func (o *SpringSub) UpdateAngle(sol *Solution) (err error) {
	var theta float64
	if !math.IsNaN(o.Mt) {
		theta = -o.Mt
	}
	if o.Dat.SpringConstant != 0 {
		theta /= o.Dat.SpringConstant
	}
	dTheta := (theta - o.Theta) * o.Dat.RelaxAng
	dTheta = math.Min(math.Abs(dTheta), o.Dat.MaxAngleStep) * sign(dTheta)
	return o.SetAngle(o.Theta + dTheta)
}

// SetAngle rotates the chain (and the attached node, if any) about the current
// position of the last node so that the accumulated rotation becomes ang, clipped at
// the minimum angle. The angle increment becomes this substructure's residual.
func (o *SpringSub) SetAngle(ang float64) (err error) {
	dTheta := math.Max(ang, o.Dat.MinimumAngle) - o.Theta

	nds := o.Nod
	if o.attachedNode != nil && !o.ownsNode(o.attachedNode) {
		nds = append(append([]*ele.Node{}, o.Nod...), o.attachedNode)
	}

	xc, yc := o.Nod[len(o.Nod)-1].X[0], o.Nod[len(o.Nod)-1].X[1]
	for _, nd := range nds {
		x, y := rotatePt(nd.X[0], nd.X[1], xc, yc, -dTheta)
		nd.SetCoords(x, y)
	}

	o.Theta += dTheta
	o.resid = dTheta
	err = o.UpdateGeometry()
	if err != nil {
		return
	}
	io.Pf("  deformation of substructure %s: %g\n", o.Dat.Name, o.Theta)
	return
}

// Residual returns the last angle increment
func (o *SpringSub) Residual() float64 { return o.resid }

func (o *SpringSub) ownsNode(nd *ele.Node) bool {
	for _, n := range o.Nod {
		if n == nd {
			return true
		}
	}
	return false
}
