// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_truss01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("truss01. horizontal truss stiffness")

	a := NewNode(0, 0, 0)
	b := NewNode(1, 2, 0)
	e, err := New("truss", a, b)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	e.SetAxialProps(0, 5e7)

	chk.Scalar(tst, "L", 1e-15, e.Length(), 2.0)
	chk.Ints(tst, "eqs", e.Eqs(), []int{0, 1, 2, 3})

	K, F, err := e.StiffnessAndForce()
	if err != nil {
		tst.Errorf("StiffnessAndForce failed:\n%v", err)
		return
	}

	// horizontal element: only x-x entries from the elastic part
	α := 5e7 / 2.0
	chk.Matrix(tst, "K", 1e-9, K, [][]float64{
		{+α, 0, -α, 0},
		{0, 0, 0, 0},
		{-α, 0, +α, 0},
		{0, 0, 0, 0},
	})
	chk.Vector(tst, "F", 1e-15, F, []float64{0, 0, 0, 0})
}

func Test_truss02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("truss02. pretension and nodal loads")

	a := NewNode(0, 0, 0)
	b := NewNode(1, 1, 0)
	e, err := New("truss", a, b)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	e.SetAxialProps(0.5, 5e7) // pretension == -0.5 => axial force 0.5

	// pressure pushes against the normal (0,-1) for a left-to-right horizontal element
	e.SetPressureAndShear([]float64{2, 2}, []float64{0, 0})

	_, F, err := e.StiffnessAndForce()
	if err != nil {
		tst.Errorf("StiffnessAndForce failed:\n%v", err)
		return
	}

	// axial force pulls node 0 towards node 1; pressure lifts both nodes
	chk.Vector(tst, "F", 1e-14, F, []float64{0.5, 2, -0.5, 2})
}

func Test_rigid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rigid01. locked element has no stiffness")

	a := NewNode(0, 0, 0)
	b := NewNode(1, 1, 1)
	e, err := New("rigid", a, b)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	e.SetAxialProps(123, 456) // ignored

	K, F, err := e.StiffnessAndForce()
	if err != nil {
		tst.Errorf("StiffnessAndForce failed:\n%v", err)
		return
	}
	for i := 0; i < 4; i++ {
		chk.Scalar(tst, "F", 1e-17, F[i], 0)
		for j := 0; j < 4; j++ {
			chk.Scalar(tst, "K", 1e-17, K[i][j], 0)
		}
	}
}
