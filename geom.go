// seehuhn.de/go/bquad - partition vector paths for GPU rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package bquad

import (
	"math"

	"honnef.co/go/curve"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

func toPoint(v vec.Vec2) curve.Point {
	return curve.Pt(v.X, v.Y)
}

func fromPoint(p curve.Point) vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

// lerp returns the point a + t*(b-a).
func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// transform applies the affine map m to p.
func transform(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// quadParamAtX returns the parameter t at which the x-monotonic quadratic
// with x-coordinates x0, x1, x2 reaches x.  The result is clamped to [0, 1].
func quadParamAtX(x0, x1, x2, x float64) float64 {
	if x2 == x0 {
		return 0
	}
	// x(t) = a t² + b t + x0
	a := x0 - 2*x1 + x2
	b := 2 * (x1 - x0)
	c := x0 - x

	var t float64
	if math.Abs(a) < quadLinearThreshold*math.Abs(x2-x0) {
		t = -c / b
	} else {
		disc := max(b*b-4*a*c, 0)
		sq := math.Sqrt(disc)
		// numerically stable root selection
		var q float64
		if b >= 0 {
			q = -0.5 * (b + sq)
		} else {
			q = -0.5 * (b - sq)
		}
		t0 := q / a
		t1 := c / q
		if q == 0 {
			t1 = t0
		}
		t = t0
		if !(t0 >= -rootSlack && t0 <= 1+rootSlack) {
			t = t1
		} else if t1 >= -rootSlack && t1 <= 1+rootSlack {
			// both roots in range, pick the one closest to the chord estimate
			guess := (x - x0) / (x2 - x0)
			if math.Abs(t1-guess) < math.Abs(t0-guess) {
				t = t1
			}
		}
	}
	if math.IsNaN(t) {
		t = (x - x0) / (x2 - x0)
	}
	return min(max(t, 0), 1)
}

// quadArea returns the signed area contribution of the quadratic segment
// p0, c, p2, to be summed over a closed path.  Straight segments use the
// midpoint as c.
func quadArea(p0, c, p2 vec.Vec2) float64 {
	chord := p0.X*p2.Y - p2.X*p0.Y
	// area between the curve and its chord is 2/3 of the control triangle
	tri := (c.X-p0.X)*(p2.Y-p0.Y) - (p2.X-p0.X)*(c.Y-p0.Y)
	return 0.5*chord + tri/3
}

// Numerical tolerances for curve evaluation.
const (
	// quadLinearThreshold decides when the quadratic term of x(t) is
	// small enough to solve x(t) = x as a linear equation.
	quadLinearThreshold = 1e-9

	// rootSlack is the allowed overshoot of a root outside [0, 1].
	rootSlack = 1e-9
)
