// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/la"
)

// Rigid represents a locked 2-node element. It contributes neither stiffness nor force to
// the global system; its nodes must be fully fixed (the owning substructure moves them
// directly). The element still carries geometry and the applied nodal loads so that the
// substructure can address them during pressure integration.
type Rigid struct {
	nod []*Node
	eqs []int
	L0  float64
	l   float64
	c   float64
	s   float64
	qp  []float64
	qs  []float64
	k   [][]float64
	f   []float64
}

// register element
func init() {
	eallocators["rigid"] = func(a, b *Node) Element {
		o := new(Rigid)
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
func (o *Rigid) Nodes() []*Node { return o.nod }

// Eqs returns the four global equation numbers
func (o *Rigid) Eqs() []int { return o.eqs }

// Length returns the current length
func (o *Rigid) Length() float64 { return o.l }

// SetRestLength sets the unstretched length
func (o *Rigid) SetRestLength(l float64) { o.L0 = l }

// SetAxialProps is ignored: the stiffness of a rigid element is locked
func (o *Rigid) SetAxialProps(axialForce, ea float64) {}

// SetPressureAndShear sets the integrated normal/tangential nodal load pairs
func (o *Rigid) SetPressureAndShear(qp, qs []float64) {
	copy(o.qp, qp)
	copy(o.qs, qs)
}

// UpdateGeometry recomputes length and orientation from the current node coordinates
func (o *Rigid) UpdateGeometry() {
	o.l, o.c, o.s = geom(o.nod[0], o.nod[1])
}

// StiffnessAndForce returns zero stiffness and force
func (o *Rigid) StiffnessAndForce() (K [][]float64, F []float64, err error) {
	la.MatFill(o.k, 0)
	la.VecFill(o.f, 0)
	return o.k, o.f, nil
}
