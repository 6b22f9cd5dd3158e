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
	"seehuhn.de/go/geom/matrix"
)

// precisionCases probe the numerical robustness of the sweep: shapes
// with subpixel offsets, far from the origin, or with edges that are
// almost coincident.
var precisionCases = []TestCase{
	{
		Name:   "subpixel_offset",
		Path:   rectangle(20.25, 20.5, 43.75, 44.125),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "far_from_origin",
		Path:   rectangle(100016, 100016, 100048, 100048),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.Identity.Translate(-100000, -100000),
	},
	{
		Name:   "tiny_circle",
		Path:   circle(0, 0, 0.01, false),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.Scale(2000, 2000).Translate(32, 32),
	},
	{
		Name:   "near_coincident",
		Path:   concat(rectangle(8, 8, 56, 32), rectangle(8, 32+1e-7, 56, 56)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "sliver",
		Path:   polygon(pt(4, 32), pt(60, 31.99), pt(60, 32.01)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "shared_vertex_fan",
		Path:   concat(polygon(pt(32, 32), pt(56, 8), pt(56, 56)), polygon(pt(32, 32), pt(8, 56), pt(8, 8))),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
}
