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

package testcases

import (
	"seehuhn.de/go/geom/path"
)

var curveCases = []TestCase{
	{
		Name:   "circle",
		Path:   circle(32, 32, 24, false),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "ellipse",
		Path:   ellipse(32, 32, 28, 14),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "quad_arch",
		Path:   (&path.Data{}).MoveTo(pt(8, 52)).QuadTo(pt(32, -8), pt(56, 52)).Close(),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		// the control point lies to the right of both endpoints
		Name:   "quad_bulge_x",
		Path:   (&path.Data{}).MoveTo(pt(12, 8)).QuadTo(pt(76, 32), pt(12, 56)).Close(),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name: "s_curve",
		Path: (&path.Data{}).
			MoveTo(pt(6, 32)).
			QuadTo(pt(19, 4), pt(32, 32)).
			QuadTo(pt(45, 60), pt(58, 32)).
			LineTo(pt(58, 58)).
			LineTo(pt(6, 58)).
			Close(),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name: "cubic_loop",
		Path: (&path.Data{}).
			MoveTo(pt(8, 48)).
			CubeTo(pt(72, 0), pt(-8, 0), pt(56, 48)).
			Close(),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "rounded_rect",
		Path:   roundedRect(8, 12, 56, 52, 10),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "lens",
		Path:   lens(10, 32, 54, 32, 18),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
}

// circleK is the control point distance for approximating a quarter
// circle of radius 1 by a cubic Bézier curve.
const circleK = 0.5522847498

// circle approximates a circle by four cubic Bézier curves.  The circle is
// traversed clockwise in y-down coordinates, or counter-clockwise if ccw
// is set.
func circle(cx, cy, r float64, ccw bool) *path.Data {
	k := circleK * r
	if ccw {
		return (&path.Data{}).
			MoveTo(pt(cx+r, cy)).
			CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r)).
			CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy)).
			CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)).
			CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)).
			Close()
	}
	return (&path.Data{}).
		MoveTo(pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy+k), pt(cx+k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx-k, cy+r), pt(cx-r, cy+k), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy-k), pt(cx-k, cy-r), pt(cx, cy-r)).
		CubeTo(pt(cx+k, cy-r), pt(cx+r, cy-k), pt(cx+r, cy)).
		Close()
}

func ellipse(cx, cy, rx, ry float64) *path.Data {
	kx, ky := circleK*rx, circleK*ry
	return (&path.Data{}).
		MoveTo(pt(cx+rx, cy)).
		CubeTo(pt(cx+rx, cy+ky), pt(cx+kx, cy+ry), pt(cx, cy+ry)).
		CubeTo(pt(cx-kx, cy+ry), pt(cx-rx, cy+ky), pt(cx-rx, cy)).
		CubeTo(pt(cx-rx, cy-ky), pt(cx-kx, cy-ry), pt(cx, cy-ry)).
		CubeTo(pt(cx+kx, cy-ry), pt(cx+rx, cy-ky), pt(cx+rx, cy)).
		Close()
}

// roundedRect builds a rectangle whose corners are quarter circles made of
// quadratic Bézier curves.
func roundedRect(x1, y1, x2, y2, r float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1+r, y1)).
		LineTo(pt(x2-r, y1)).
		QuadTo(pt(x2, y1), pt(x2, y1+r)).
		LineTo(pt(x2, y2-r)).
		QuadTo(pt(x2, y2), pt(x2-r, y2)).
		LineTo(pt(x1+r, y2)).
		QuadTo(pt(x1, y2), pt(x1, y2-r)).
		LineTo(pt(x1, y1+r)).
		QuadTo(pt(x1, y1), pt(x1+r, y1)).
		Close()
}

// lens is bounded by two quadratic curves between the same endpoints.
func lens(x1, y1, x2, y2, h float64) *path.Data {
	mx, my := (x1+x2)/2, (y1+y2)/2
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt(mx, my-2*h), pt(x2, y2)).
		QuadTo(pt(mx, my+2*h), pt(x1, y1)).
		Close()
}
