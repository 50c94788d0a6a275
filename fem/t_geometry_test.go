// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_geom01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geom01. arc length and exact endpoints")

	nodes := chainNodes(0, 0, 3, 4, 6, 8)
	g, err := NewChainGeom(nodes, "linear", true)
	if err != nil {
		tst.Errorf("NewChainGeom failed:\n%v", err)
		return
	}

	chk.Scalar(tst, "arc length", 1e-15, g.ArcLength(), 10)

	// endpoints must match the node coordinates exactly
	x, y := g.Coords(0)
	if x != nodes[0].X[0] || y != nodes[0].X[1] {
		tst.Errorf("coordinates at s=0 must be the first node exactly. got (%v,%v)", x, y)
		return
	}
	x, y = g.Coords(g.ArcLength())
	if x != nodes[2].X[0] || y != nodes[2].X[1] {
		tst.Errorf("coordinates at s=L must be the last node exactly. got (%v,%v)", x, y)
		return
	}

	// midpoint of the first segment
	x, y = g.Coords(2.5)
	chk.Scalar(tst, "x(2.5)", 1e-14, x, 1.5)
	chk.Scalar(tst, "y(2.5)", 1e-14, y, 2.0)
}

func Test_geom02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geom02. boundary-slope extrapolation")

	nodes := chainNodes(0, 0, 1, 1, 2, 1)
	g, err := NewChainGeom(nodes, "linear", true)
	if err != nil {
		tst.Errorf("NewChainGeom failed:\n%v", err)
		return
	}
	L := g.ArcLength()

	// beyond the start: extend with the slope of the first segment
	x, y := g.Coords(-math.Sqrt2)
	chk.Scalar(tst, "x(-√2)", 1e-14, x, -1)
	chk.Scalar(tst, "y(-√2)", 1e-14, y, -1)

	// beyond the end: extend with the slope of the last segment
	x, y = g.Coords(L + 1)
	chk.Scalar(tst, "x(L+1)", 1e-14, x, 3)
	chk.Scalar(tst, "y(L+1)", 1e-14, y, 1)

	// the normal is continuous across the end of the domain
	nx0, ny0 := g.NormalVector(L - 1e-3)
	nx1, ny1 := g.NormalVector(L + 1e-3)
	chk.Scalar(tst, "nx continuity", 1e-6, nx1, nx0)
	chk.Scalar(tst, "ny continuity", 1e-6, ny1, ny0)

	// clamped variant holds the end value
	gc, err := NewChainGeom(nodes, "linear", false)
	if err != nil {
		tst.Errorf("NewChainGeom failed:\n%v", err)
		return
	}
	x, y = gc.Coords(L + 1)
	chk.Scalar(tst, "x clamped", 1e-14, x, 2)
	chk.Scalar(tst, "y clamped", 1e-14, y, 1)
}

func Test_geom03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geom03. quadratic y-interpolant and normals")

	// three nodes on a shallow parabola-like chain
	nodes := chainNodes(0, 0, 1, 0.1, 2, 0)
	g, err := NewChainGeom(nodes, "quadratic", true)
	if err != nil {
		tst.Errorf("NewChainGeom failed:\n%v", err)
		return
	}

	// interior nodes are interpolated exactly
	x, y := g.Coords(g.S[1])
	chk.Scalar(tst, "x node1", 1e-14, x, 1)
	chk.Scalar(tst, "y node1", 1e-14, y, 0.1)

	// parabola is symmetric: y halfway between s0 and s1 equals y halfway between s1 and s2
	ya := g.interp(g.ys, 0.5*(g.S[0]+g.S[1]), true)
	yb := g.interp(g.ys, 0.5*(g.S[1]+g.S[2]), true)
	chk.Scalar(tst, "parabola symmetry", 1e-12, ya, yb)

	// horizontal chain: normal points down
	flat := chainNodes(0, 0, 1, 0, 2, 0)
	gf, err := NewChainGeom(flat, "linear", true)
	if err != nil {
		tst.Errorf("NewChainGeom failed:\n%v", err)
		return
	}
	nx, ny := gf.NormalVector(1)
	chk.Scalar(tst, "nx", 1e-9, nx, 0)
	chk.Scalar(tst, "ny", 1e-9, ny, -1)
}

func Test_geom04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geom04. update follows node motion; coincident nodes fail")

	nodes := chainNodes(0, 0, 1, 0)
	g, err := NewChainGeom(nodes, "linear", true)
	if err != nil {
		tst.Errorf("NewChainGeom failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "arc length", 1e-15, g.ArcLength(), 1)

	nodes[1].Move(1, 0)
	err = g.Update()
	if err != nil {
		tst.Errorf("Update failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "arc length after move", 1e-15, g.ArcLength(), 2)

	nodes[1].SetCoords(0, 0)
	err = g.Update()
	if err == nil {
		tst.Errorf("Update must fail for coincident nodes")
		return
	}
}
