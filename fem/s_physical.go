// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
)

// Physical integrates the damped rigid-body equations of motion with explicit time
// stepping: the step is the velocity times the time step, and the acceleration from
// the current force imbalance drives the next velocity
type Physical struct {
	b *RigidBody
}

// PhysicalNoMass is the massless variant: a predictor step proportional to the force
// imbalance over the damping, alternating with a corrector from the force change
type PhysicalNoMass struct {
	b             *RigidBody
	predictor     bool
	fOld, twoAgoF [2]float64
}

// register solvers
func init() {
	motionAllocators["physical"] = func(b *RigidBody) MotionSolver {
		return &Physical{b: b}
	}
	motionAllocators["physical-nomass"] = func(b *RigidBody) MotionSolver {
		return &PhysicalNoMass{b: b, predictor: true}
	}
}

// Disp returns the next displacement increment
func (o *Physical) Disp(sol *Solution) (dDraft, dTrim float64) {
	b := o.b
	dt := b.Dat.TimeStep

	d0, d1 := b.LimitDisp(dt*b.v[0], dt*b.v[1])
	disp := [2]float64{d0, d1}
	maxDisp := [2]float64{b.Dat.MaxDraftStep, b.Dat.MaxTrimStep}
	for i := 0; i < 2; i++ {
		// a capped step overrides the velocity
		if math.Abs(disp[i]) == maxDisp[i] {
			b.v[i] = disp[i] / dt
		}
	}
	for i := 0; i < 2; i++ {
		b.v[i] += dt * b.a[i]
	}

	fres := [2]float64{b.Dat.W - b.L, b.M - b.momentTarget()}
	damp := [2]float64{b.Dat.DraftDamping, b.Dat.TrimDamping}
	inertia := [2]float64{b.Dat.Mass, b.Dat.Iz}
	maxAcc := [2]float64{b.Dat.MaxDraftAcc, b.Dat.MaxTrimAcc}
	for i := 0; i < 2; i++ {
		a := (fres[i] - damp[i]*b.v[i]*sol.Ramp) / inertia[i]
		b.a[i] = math.Min(math.Abs(a), maxAcc[i]) * sign(a)
	}

	return disp[0] * sol.Ramp, disp[1] * sol.Ramp
}

// Disp returns the next displacement increment
func (o *PhysicalNoMass) Disp(sol *Solution) (dDraft, dTrim float64) {
	b := o.b
	dt := b.Dat.TimeStep
	damp := [2]float64{b.Dat.DraftDamping, b.Dat.TrimDamping}
	relax := [2]float64{b.Dat.RelaxDraft, b.Dat.RelaxTrim}

	F := [2]float64{b.Dat.W - b.L, b.M - b.Dat.W*(b.XCofG0-b.XCofR0)}

	var disp [2]float64
	if o.predictor {
		for i := 0; i < 2; i++ {
			disp[i] = F[i] / damp[i] * dt
		}
		o.predictor = false
	} else {
		for i := 0; i < 2; i++ {
			disp[i] = 0.5 * dt / damp[i] * (F[i] - o.twoAgoF[i])
		}
		o.predictor = true
	}

	for i := 0; i < 2; i++ {
		disp[i] *= relax[i] * sol.Ramp
	}
	dDraft, dTrim = b.LimitDisp(disp[0], disp[1])

	o.twoAgoF = o.fOld
	o.fOld = [2]float64{dDraft * damp[0] / dt, dTrim * damp[1] / dt}
	return
}
