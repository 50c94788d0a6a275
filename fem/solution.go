// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the nonlinear structural equilibrium solver: rigid-body motion,
// flexible substructure assembly and torsional-hinge rotation under fluid loading
package fem

// Solution holds the state shared by all components during one outer iteration
type Solution struct {
	T    float64 // pseudo time
	Dt   float64 // time increment
	Ramp float64 // ramp factor attenuating hydrodynamic loads
	It   int     // outer iteration index
}
