// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Truss represents a small-strain truss element with 2 nodes, axial stiffness EA and an
// initial axial force (pretension). The stiffness matrix combines the elastic part, built
// on the unstretched length, with the geometric part from the current axial force.
type Truss struct {

	// basic data
	nod []*Node // connectivity
	eqs []int   // assembly map (element equations)

	// parameters and properties
	L0 float64 // unstretched length
	N0 float64 // initial axial force (== -pretension)
	EA float64 // axial stiffness

	// current geometry
	l    float64 // current length
	c, s float64 // direction cosines

	// loads
	qp []float64 // integrated normal load at the two nodes
	qs []float64 // integrated tangential (shear) load at the two nodes

	// scratchpad
	k [][]float64 // [4][4] stiffness
	f []float64   // [4] force
}

// register element
func init() {
	eallocators["truss"] = func(a, b *Node) Element {
		o := new(Truss)
		o.nod = []*Node{a, b}
		o.eqs = []int{a.Eq[0], a.Eq[1], b.Eq[0], b.Eq[1]}
		o.qp = make([]float64, 2)
		o.qs = make([]float64, 2)
		o.k = la.MatAlloc(4, 4)
		o.f = make([]float64, 4)
		o.UpdateGeometry()
		o.L0 = o.l
		return o
	}
}

// Nodes returns the two end nodes
func (o *Truss) Nodes() []*Node { return o.nod }

// Eqs returns the four global equation numbers
func (o *Truss) Eqs() []int { return o.eqs }

// Length returns the current length
func (o *Truss) Length() float64 { return o.l }

// SetRestLength sets the unstretched length
func (o *Truss) SetRestLength(l float64) { o.L0 = l }

// SetAxialProps sets the initial axial force and the axial stiffness
func (o *Truss) SetAxialProps(axialForce, ea float64) {
	o.N0 = axialForce
	o.EA = ea
}

// SetPressureAndShear sets the integrated normal/tangential nodal load pairs
func (o *Truss) SetPressureAndShear(qp, qs []float64) {
	copy(o.qp, qp)
	copy(o.qs, qs)
}

// UpdateGeometry recomputes length and orientation from the current node coordinates
func (o *Truss) UpdateGeometry() {
	o.l, o.c, o.s = geom(o.nod[0], o.nod[1])
}

// AxialForce returns the current axial force: initial force plus elastic contribution
// from the engineering strain
func (o *Truss) AxialForce() float64 {
	if o.L0 == 0 {
		return o.N0
	}
	return o.N0 + o.EA*(o.l-o.L0)/o.L0
}

// StiffnessAndForce returns the local 4x4 stiffness matrix and 4-vector force.
// The force vector collects the internal axial force and the applied nodal loads;
// pressure acts against the element normal (direction rotated -90°), shear along
// the element direction.
func (o *Truss) StiffnessAndForce() (K [][]float64, F []float64, err error) {
	if o.L0 <= 0 {
		err = chk.Err("truss element (nodes %d,%d) has zero unstretched length", o.nod[0].Id, o.nod[1].Id)
		return
	}
	if o.l <= 0 {
		err = chk.Err("truss element (nodes %d,%d) has zero current length", o.nod[0].Id, o.nod[1].Id)
		return
	}
	c, s := o.c, o.s

	// elastic stiffness
	α := o.EA / o.L0
	o.k[0][0] = +α * c * c
	o.k[0][1] = +α * c * s
	o.k[0][2] = -α * c * c
	o.k[0][3] = -α * c * s
	o.k[1][0] = +α * c * s
	o.k[1][1] = +α * s * s
	o.k[1][2] = -α * c * s
	o.k[1][3] = -α * s * s
	o.k[2][0] = -α * c * c
	o.k[2][1] = -α * c * s
	o.k[2][2] = +α * c * c
	o.k[2][3] = +α * c * s
	o.k[3][0] = -α * c * s
	o.k[3][1] = -α * s * s
	o.k[3][2] = +α * c * s
	o.k[3][3] = +α * s * s

	// geometric stiffness from the current axial force
	n := o.AxialForce()
	β := n / o.l
	o.k[0][0] += +β * s * s
	o.k[0][1] += -β * c * s
	o.k[0][2] += -β * s * s
	o.k[0][3] += +β * c * s
	o.k[1][0] += -β * c * s
	o.k[1][1] += +β * c * c
	o.k[1][2] += +β * c * s
	o.k[1][3] += -β * c * c
	o.k[2][0] += -β * s * s
	o.k[2][1] += +β * c * s
	o.k[2][2] += +β * s * s
	o.k[2][3] += -β * c * s
	o.k[3][0] += +β * c * s
	o.k[3][1] += -β * c * c
	o.k[3][2] += -β * c * s
	o.k[3][3] += +β * c * c

	// force: axial force pulls the end nodes towards each other when in tension
	o.f[0] = +n * c
	o.f[1] = +n * s
	o.f[2] = -n * c
	o.f[3] = -n * s

	// applied nodal loads: unit normal is the direction rotated -90° => (s, -c)
	nx, ny := s, -c
	for i := 0; i < 2; i++ {
		o.f[2*i] += -o.qp[i]*nx + o.qs[i]*c
		o.f[2*i+1] += -o.qp[i]*ny + o.qs[i]*s
	}
	return o.k, o.f, nil
}
