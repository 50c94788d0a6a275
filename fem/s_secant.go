// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// Secant drives each free degree of freedom with an independent secant iteration on
// its force imbalance: lift minus weight for draft, moment minus the equilibrium
// moment for trim
type Secant struct {
	b       *RigidBody
	started bool
	fOld    [2]float64
	dispOld [2]float64
}

// register solver
func init() {
	motionAllocators["secant"] = func(b *RigidBody) MotionSolver {
		return &Secant{b: b}
	}
}

// Disp returns the next displacement increment
func (o *Secant) Disp(sol *Solution) (dDraft, dTrim float64) {
	b := o.b
	f := [2]float64{b.L - b.Dat.W, b.M - b.momentTarget()}
	free := [2]bool{b.Dat.FreeInDraft, b.Dat.FreeInTrim}
	relax := [2]float64{b.Dat.RelaxDraft, b.Dat.RelaxTrim}

	var disp [2]float64
	if !o.started {
		// probe step to establish the first secant
		for i := 0; i < 2; i++ {
			if free[i] {
				disp[i] = b.Sim.Solver.JacFirstStep
			}
		}
		o.started = true
	} else {
		for i := 0; i < 2; i++ {
			if !free[i] {
				continue
			}
			if df := f[i] - o.fOld[i]; df != 0 {
				disp[i] = -f[i] * o.dispOld[i] / df
			}
			disp[i] *= relax[i]
		}
	}

	o.fOld = f
	dDraft, dTrim = b.LimitDisp(disp[0], disp[1])
	o.dispOld = [2]float64{dDraft, dTrim}
	return
}
