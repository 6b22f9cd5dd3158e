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

var subpathCases = []TestCase{
	{
		Name: "two_triangles",
		Path: concat(
			polygon(pt(4, 44), pt(16, 20), pt(28, 44)),
			polygon(pt(36, 44), pt(48, 20), pt(60, 44))),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "overlapping_nonzero",
		Path:   concat(rectangle(10, 10, 40, 40), rectangle(24, 24, 54, 54)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "overlapping_evenodd",
		Path:   concat(rectangle(10, 10, 40, 40), rectangle(24, 24, 54, 54)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "ring_evenodd",
		Path:   concat(circle(32, 32, 26, false), circle(32, 32, 12, false)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "ring_nonzero",
		Path:   concat(circle(32, 32, 26, false), circle(32, 32, 12, true)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		// the squares share an edge, which must not leave a gap
		Name:   "touching_squares",
		Path:   concat(rectangle(8, 16, 32, 48), rectangle(32, 8, 56, 40)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name: "open_subpath",
		Path: (&path.Data{}).
			MoveTo(pt(8, 8)).
			LineTo(pt(56, 20)).
			LineTo(pt(20, 56)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name: "degenerate_subpaths",
		Path: concat(
			(&path.Data{}).MoveTo(pt(4, 4)),
			(&path.Data{}).MoveTo(pt(10, 10)).LineTo(pt(50, 10)),
			rectangle(16, 16, 48, 48),
			(&path.Data{}).MoveTo(pt(60, 60)).Close()),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "nested_squares",
		Path:   nestedSquares(32, 32, 4, 7),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
}

// nestedSquares builds n concentric squares whose half sizes differ by
// step.
func nestedSquares(cx, cy, step float64, n int) *path.Data {
	p := &path.Data{}
	for i := range n {
		d := step * float64(i+1)
		p = concat(p, rectangle(cx-d, cy-d, cx+d, cy+d))
	}
	return p
}
