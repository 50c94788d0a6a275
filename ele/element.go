// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Element defines what all 2-node structural elements must compute
type Element interface {

	// information
	Nodes() []*Node // the two end nodes
	Eqs() []int     // the four global equation numbers: [ux0, uy0, ux1, uy1]
	Length() float64

	// properties
	SetRestLength(l float64)              // set unstretched length
	SetAxialProps(axialForce, ea float64) // set initial axial force and axial stiffness

	// loads (set by the substructure during pressure integration)
	SetPressureAndShear(qp, qs []float64) // integrated normal/tangential nodal load pairs

	// called for each iteration
	StiffnessAndForce() (K [][]float64, F []float64, err error) // local 4x4 stiffness and 4-vector force
	UpdateGeometry()                                            // recompute length/orientation from node coordinates
}

// eallocators holds all available elements; kind => allocator
var eallocators = make(map[string]func(a, b *Node) Element)

// New returns a new element from its kind; e.g. "truss" or "rigid"
func New(kind string, a, b *Node) (e Element, err error) {
	allocator, ok := eallocators[kind]
	if !ok {
		err = chk.Err("cannot find element kind %q", kind)
		return
	}
	e = allocator(a, b)
	return
}

// geom computes the current length and direction cosines of a 2-node element
func geom(a, b *Node) (l, c, s float64) {
	dx := b.X[0] - a.X[0]
	dy := b.X[1] - a.X[1]
	l = math.Hypot(dx, dy)
	if l > 0 {
		c = dx / l
		s = dy / l
	}
	return
}
