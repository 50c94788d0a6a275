// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// Interpolator defines the fluid-pressure collaborator: an external model providing
// sampled pressure and shear stress as functions of arc length along a substructure,
// together with the wetted region bounds and the planing pressures at its ends.
type Interpolator interface {

	// GetLoadsInRange returns ascending arc-length samples spanning [s0,s1] with the
	// corresponding fluid pressures and shear stresses
	GetLoadsInRange(s0, s1 float64) (s, p, tau []float64)

	// MinMaxS returns the bounds of the wetted region in arc-length coordinates
	MinMaxS() (sMin, sMax float64)

	// UpstreamPressure and DownstreamPressure are the cushion pressures acting outside
	// the wetted region
	UpstreamPressure() float64
	DownstreamPressure() float64

	// FluidTotals returns the drag, lift and moment reported by the fluid solver
	// (used by the "matched" cushion force method)
	FluidTotals() (d, l, m float64)
}
