// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"

	"github.com/xyat21/planingfsi/ele"
)

// ChainGeom holds the arc-length parameterisation of an ordered node chain together with
// interpolants mapping arc-length to coordinates. The x-interpolant is always piecewise
// linear; the y-interpolant is quadratic when the chain has exactly three nodes and the
// quadratic kind is requested. Outside the sampled domain both interpolants extend using
// the slope of the nearest boundary segment, so that derivative-based queries remain
// continuous at the chain ends.
type ChainGeom struct {

	// configuration
	nodes  []*ele.Node
	kind   string // "linear" or "quadratic"
	extrap bool

	// samples (rebuilt by Update)
	S  []float64 // cumulative arc length per node; strictly increasing
	xs []float64 // x coordinate per node
	ys []float64 // y coordinate per node
}

// NewChainGeom returns a new chain geometry and computes the first parameterisation
func NewChainGeom(nodes []*ele.Node, kind string, extrap bool) (o *ChainGeom, err error) {
	if len(nodes) < 2 {
		err = chk.Err("chain geometry needs at least 2 nodes. %d is invalid", len(nodes))
		return
	}
	o = &ChainGeom{nodes: nodes, kind: kind, extrap: extrap}
	err = o.Update()
	return
}

// Update recomputes the arc-length array and interpolation samples from the current node
// coordinates. Must be called whenever node coordinates change.
func (o *ChainGeom) Update() (err error) {
	n := len(o.nodes)
	if len(o.S) != n {
		o.S = make([]float64, n)
		o.xs = make([]float64, n)
		o.ys = make([]float64, n)
	}
	o.xs[0] = o.nodes[0].X[0]
	o.ys[0] = o.nodes[0].X[1]
	o.S[0] = 0
	for i := 1; i < n; i++ {
		dx := o.nodes[i].X[0] - o.nodes[i-1].X[0]
		dy := o.nodes[i].X[1] - o.nodes[i-1].X[1]
		o.S[i] = o.S[i-1] + math.Hypot(dx, dy)
		if o.S[i] <= o.S[i-1] {
			return chk.Err("arc-length must be strictly increasing. coincident nodes %d and %d", o.nodes[i-1].Id, o.nodes[i].Id)
		}
		o.xs[i] = o.nodes[i].X[0]
		o.ys[i] = o.nodes[i].X[1]
	}
	return
}

// ArcLength returns the total arc length of the chain
func (o *ChainGeom) ArcLength() float64 {
	return o.S[len(o.S)-1]
}

// Coords returns the coordinates at arc-length position s
func (o *ChainGeom) Coords(s float64) (x, y float64) {
	x = o.interp(o.xs, s, false)
	y = o.interp(o.ys, s, o.quadratic())
	return
}

// NormalVector returns the unit normal at arc-length position s: the unit tangent,
// obtained by finite differences of the interpolants, rotated -90°
func (o *ChainGeom) NormalVector(s float64) (nx, ny float64) {
	h := 1e-6
	dxds, _ := num.DerivCentral(func(si float64, args ...interface{}) float64 {
		return o.interp(o.xs, si, false)
	}, s, h)
	dyds, _ := num.DerivCentral(func(si float64, args ...interface{}) float64 {
		return o.interp(o.ys, si, o.quadratic())
	}, s, h)
	d := math.Hypot(dxds, dyds)
	if d == 0 {
		return 0, -1
	}
	// tangent (dxds, dyds)/d rotated -90° => (dyds, -dxds)/d
	return dyds / d, -dxds / d
}

// quadratic tells whether the y-interpolant is a parabola: exactly three nodes and the
// quadratic kind requested (two nodes always degenerate to linear)
func (o *ChainGeom) quadratic() bool {
	return len(o.S) == 3 && o.kind == "quadratic"
}

// interp evaluates one interpolant at s with boundary-slope extrapolation
func (o *ChainGeom) interp(vals []float64, s float64, quad bool) float64 {
	n := len(o.S)

	// endpoints must be exact
	if s == o.S[0] {
		return vals[0]
	}
	if s == o.S[n-1] {
		return vals[n-1]
	}

	// extrapolation: extend with the slope of the boundary segment
	if o.extrap {
		if s < o.S[0] {
			m := (vals[1] - vals[0]) / (o.S[1] - o.S[0])
			return vals[0] + (s-o.S[0])*m
		}
		if s > o.S[n-1] {
			m := (vals[n-1] - vals[n-2]) / (o.S[n-1] - o.S[n-2])
			return vals[n-1] + (s-o.S[n-1])*m
		}
	} else {
		if s < o.S[0] {
			s = o.S[0]
		}
		if s > o.S[n-1] {
			s = o.S[n-1]
		}
	}

	// parabola through three samples (Lagrange form)
	if quad {
		s0, s1, s2 := o.S[0], o.S[1], o.S[2]
		l0 := (s - s1) * (s - s2) / ((s0 - s1) * (s0 - s2))
		l1 := (s - s0) * (s - s2) / ((s1 - s0) * (s1 - s2))
		l2 := (s - s0) * (s - s1) / ((s2 - s0) * (s2 - s1))
		return vals[0]*l0 + vals[1]*l1 + vals[2]*l2
	}

	// piecewise linear
	i := 0
	for i < n-2 && s > o.S[i+1] {
		i++
	}
	m := (vals[i+1] - vals[i]) / (o.S[i+1] - o.S[i])
	return vals[i] + (s-o.S[i])*m
}
