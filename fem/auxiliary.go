// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
)

// all angles handled by these helpers are in degrees

// cosd returns the cosine of an angle given in degrees
func cosd(ang float64) float64 {
	return math.Cos(ang * math.Pi / 180.0)
}

// sind returns the sine of an angle given in degrees
func sind(ang float64) float64 {
	return math.Sin(ang * math.Pi / 180.0)
}

// rotatePt rotates point (x,y) about point (xc,yc) by ang degrees (counter-clockwise)
func rotatePt(x, y, xc, yc, ang float64) (xr, yr float64) {
	c, s := cosd(ang), sind(ang)
	dx, dy := x-xc, y-yc
	xr = xc + c*dx - s*dy
	yr = yc + s*dx + c*dy
	return
}

// cross2 returns the z-component of the cross product of two 2-vectors
func cross2(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}

// sign returns -1, 0 or +1
func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
