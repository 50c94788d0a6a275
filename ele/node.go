// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements the finite-element primitives: nodes and 2-node elements
package ele

// Node holds the position, boundary conditions and equation numbers of one structural node.
// Nodes are shared: two adjacent substructures may reference the same node at an attachment
// point, therefore coordinates must be mutated in place.
type Node struct {
	Id        int       // node id
	X         []float64 // current coordinates (size==2)
	FixedDof  []bool    // fixed-DOF flags (size==2)
	FixedLoad []float64 // fixed external load (size==2)
	Eq        []int     // global equation numbers (size==2)
}

// NewNode returns a new node. The global equation numbers are 2*id and 2*id+1
func NewNode(id int, x, y float64) *Node {
	return &Node{
		Id:        id,
		X:         []float64{x, y},
		FixedDof:  make([]bool, 2),
		FixedLoad: make([]float64, 2),
		Eq:        []int{2 * id, 2*id + 1},
	}
}

// SetCoords sets the coordinates of this node
func (o *Node) SetCoords(x, y float64) {
	o.X[0] = x
	o.X[1] = y
}

// Move increments the coordinates of this node
func (o *Node) Move(dx, dy float64) {
	o.X[0] += dx
	o.X[1] += dy
}
