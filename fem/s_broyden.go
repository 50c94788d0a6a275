// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Broyden finds the equilibrium position with a quasi-Newton iteration on the force
// imbalance: the Jacobian is built once by finite-difference probe steps and then
// maintained by rank-one updates. After too many consecutive non-improving steps the
// Jacobian is rebuilt from scratch.
type Broyden struct {
	b *RigidBody

	J       [][]float64 // current Jacobian; nil while probing
	Jtmp    [][]float64 // Jacobian under construction
	Jfo     []float64   // imbalance at the probe base position
	Jit     int         // next column to probe
	x       []float64   // accumulated position (draft, trim)
	dispOld []float64   // last applied step; nil right after a probe cycle
	resOld  []float64   // imbalance at the previous step
	nStag   int         // consecutive non-improving steps
	inited  bool
}

// register solvers
func init() {
	motionAllocators["broyden"] = func(b *RigidBody) MotionSolver {
		return &Broyden{b: b}
	}
	motionAllocators["broyden-num"] = func(b *RigidBody) MotionSolver {
		o := &BroydenNum{b: b}
		if b.Dat.FreeInDraft {
			o.free = append(o.free, 0)
		}
		if b.Dat.FreeInTrim {
			o.free = append(o.free, 1)
		}
		return o
	}
}

// resFun returns the force imbalance driven to zero
func (o *Broyden) resFun() []float64 {
	return []float64{o.b.L - o.b.Dat.W, o.b.M - o.b.momentTarget()}
}

// Disp returns the next displacement increment
func (o *Broyden) Disp(sol *Solution) (dDraft, dTrim float64) {
	b := o.b
	if !o.inited {
		o.x = []float64{b.Draft, b.Trim}
		o.inited = true
	}
	if o.J == nil {
		d := o.resetJacobian()
		return d[0], d[1]
	}

	f := o.resFun()
	if o.dispOld != nil {
		dx := o.dispOld
		o.x[0] += dx[0]
		o.x[1] += dx[1]
		if normSq := dx[0]*dx[0] + dx[1]*dx[1]; normSq > 0 {
			// rank-one update: J += (df - J·dx) dxᵀ / |dx|²
			df := []float64{f[0] - o.resOld[0], f[1] - o.resOld[1]}
			for i := 0; i < 2; i++ {
				r := df[i] - o.J[i][0]*dx[0] - o.J[i][1]*dx[1]
				for j := 0; j < 2; j++ {
					o.J[i][j] += r * dx[j] / normSq
				}
			}
		}
	}

	// rebuild the Jacobian after too many consecutive non-improving steps
	if o.resOld != nil {
		if math.Abs(f[0]) > math.Abs(o.resOld[0]) || math.Abs(f[1]) > math.Abs(o.resOld[1]) {
			o.nStag++
		} else {
			o.nStag = 0
		}
		if o.nStag >= b.Sim.Solver.BroydenReset {
			io.PfRed("resetting Jacobian for motion\n")
			o.J = nil
			d := o.resetJacobian()
			return d[0], d[1]
		}
	}

	dx := o.solveMasked(f)
	dx[0] *= b.Dat.RelaxDraft
	dx[1] *= b.Dat.RelaxTrim
	dDraft, dTrim = b.LimitDisp(dx[0], dx[1])
	o.dispOld = []float64{dDraft, dTrim}
	o.resOld = f
	return
}

// resetJacobian builds the Jacobian column by column with finite-difference probe
// steps of size JacFirstStep, returning to the base position after the last probe
func (o *Broyden) resetJacobian() (disp []float64) {
	h := o.b.Sim.Solver.JacFirstStep
	if o.Jtmp == nil {
		o.Jit = 0
		o.Jtmp = la.MatAlloc(2, 2)
		o.nStag = 0
		o.Jfo = o.resFun()
		o.resOld = []float64{o.Jfo[0], o.Jfo[1]}
	} else {
		f := o.resFun()
		for i := 0; i < 2; i++ {
			o.Jtmp[i][o.Jit] = (f[i] - o.Jfo[i]) / o.dispOld[o.Jit]
		}
		o.Jit++
	}

	disp = make([]float64, 2)
	if o.Jit < 2 {
		disp[o.Jit] = h
	}
	if o.Jit > 0 {
		disp[o.Jit-1] = -h
	}
	o.dispOld = disp

	if o.Jit >= 2 {
		o.J = la.MatAlloc(2, 2)
		la.MatCopy(o.J, 1, o.Jtmp)
		o.Jtmp = nil
		o.dispOld = nil
	}
	return
}

// solveMasked solves the free-DOF subset of J·dx = -f
func (o *Broyden) solveMasked(f []float64) (dx []float64) {
	dx = make([]float64, 2)
	switch {
	case o.b.Dat.FreeInDraft && o.b.Dat.FreeInTrim:
		A := [][]float64{
			{-o.J[0][0], -o.J[0][1]},
			{-o.J[1][0], -o.J[1][1]},
		}
		Ai := la.MatAlloc(2, 2)
		_, err := la.MatInv(Ai, A, 1e-14)
		if err != nil {
			return
		}
		dx[0] = Ai[0][0]*f[0] + Ai[0][1]*f[1]
		dx[1] = Ai[1][0]*f[0] + Ai[1][1]*f[1]
	case o.b.Dat.FreeInDraft:
		if o.J[0][0] != 0 {
			dx[0] = -f[0] / o.J[0][0]
		}
	case o.b.Dat.FreeInTrim:
		if o.J[1][1] != 0 {
			dx[1] = -f[1] / o.J[1][1]
		}
	}
	return
}

// BroydenNum is the Broyden iteration on the normalised residuals, reduced to the
// free degrees of freedom only: the first Jacobian estimate is diagonal, from one
// probe step per free DOF
type BroydenNum struct {
	b    *RigidBody
	free []int // indices of free DOFs: 0=draft, 1=trim

	J       [][]float64
	fOld    []float64
	dispOld []float64
}

// resFun returns the signed normalised residuals at the free DOFs
func (o *BroydenNum) resFun() (f []float64) {
	b := o.b
	dat := &b.Sim.Data
	full := []float64{
		(b.L - b.Dat.W) / (dat.Pstag*dat.Lref + 1e-6),
		(b.M - b.momentTarget()) / (dat.Pstag*dat.Lref*dat.Lref + 1e-6),
	}
	f = make([]float64, len(o.free))
	for i, k := range o.free {
		f[i] = full[k]
	}
	return
}

// Disp returns the next displacement increment
func (o *BroydenNum) Disp(sol *Solution) (dDraft, dTrim float64) {
	b := o.b
	n := len(o.free)
	if n == 0 {
		return
	}
	h := b.Sim.Solver.JacFirstStep
	f := o.resFun()

	var dxr []float64
	switch {
	case o.dispOld == nil:
		// probe step
		dxr = make([]float64, n)
		for i := range dxr {
			dxr[i] = h
		}
	case o.J == nil:
		// diagonal Jacobian estimate from the probe
		o.J = la.MatAlloc(n, n)
		for i := 0; i < n; i++ {
			d := o.dispOld[i]
			if d == 0 {
				d = h
			}
			o.J[i][i] = (f[i] - o.fOld[i]) / d
			if o.J[i][i] == 0 {
				o.J[i][i] = 1
			}
		}
		dxr = o.solve(f)
	default:
		dx := o.dispOld
		normSq := 0.0
		for i := 0; i < n; i++ {
			normSq += dx[i] * dx[i]
		}
		if normSq > 0 {
			for i := 0; i < n; i++ {
				r := f[i] - o.fOld[i]
				for j := 0; j < n; j++ {
					r -= o.J[i][j] * dx[j]
				}
				for j := 0; j < n; j++ {
					o.J[i][j] += r * dx[j] / normSq
				}
			}
		}
		dxr = o.solve(f)
	}

	var disp [2]float64
	for i, k := range o.free {
		disp[k] = dxr[i]
	}
	disp[0] *= b.Dat.RelaxDraft
	disp[1] *= b.Dat.RelaxTrim
	dDraft, dTrim = b.LimitDisp(disp[0], disp[1])

	o.fOld = f
	applied := [2]float64{dDraft, dTrim}
	o.dispOld = make([]float64, n)
	for i, k := range o.free {
		o.dispOld[i] = applied[k]
	}
	return
}

// solve returns dx = -J⁻¹·f on the reduced system
func (o *BroydenNum) solve(f []float64) (dx []float64) {
	n := len(o.free)
	dx = make([]float64, n)
	if n == 1 {
		if o.J[0][0] != 0 {
			dx[0] = -f[0] / o.J[0][0]
		}
		return
	}
	Ai := la.MatAlloc(n, n)
	if _, err := la.MatInv(Ai, o.J, 1e-14); err != nil {
		return
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dx[i] -= Ai[i][j] * f[j]
		}
	}
	return
}
