// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
)

// NewmarkBeta integrates the rigid-body equations of motion with the Newmark-β
// scheme, with numerical damping applied to the velocity update
type NewmarkBeta struct {
	b *RigidBody
}

// register solver
func init() {
	motionAllocators["newmark-beta"] = func(b *RigidBody) MotionSolver {
		return &NewmarkBeta{b: b}
	}
}

// Disp returns the next displacement increment
func (o *NewmarkBeta) Disp(sol *Solution) (dDraft, dTrim float64) {
	b := o.b
	dt := b.Dat.TimeStep
	beta, gamma := b.Dat.Beta, b.Dat.Gamma

	fres := [2]float64{b.Dat.W - b.L, b.M - b.momentTarget()}
	inertia := [2]float64{b.Dat.Mass, b.Dat.Iz}
	maxAcc := [2]float64{b.Dat.MaxDraftAcc, b.Dat.MaxTrimAcc}
	relax := [2]float64{b.Dat.RelaxDraft, b.Dat.RelaxTrim}

	var disp [2]float64
	for i := 0; i < 2; i++ {
		a := fres[i] / inertia[i]
		b.a[i] = math.Min(math.Abs(a), maxAcc[i]) * sign(a)

		dv := ((1-gamma)*b.aOld[i] + gamma*b.a[i]) * dt * (1 - b.Dat.NumDamp)
		b.v[i] += dv

		disp[i] = (0.5*(1-2*beta)*b.aOld[i] + beta*b.a[i]) * dt
		disp[i] += b.vOld[i]
		disp[i] *= dt

		b.aOld[i] = b.a[i]
		b.vOld[i] = b.v[i]

		disp[i] *= relax[i] * sol.Ramp
	}
	return b.LimitDisp(disp[0], disp[1])
}
