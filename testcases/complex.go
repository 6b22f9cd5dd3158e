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
	"seehuhn.de/go/pdf/graphics"
)

var complexCases = []TestCase{
	{
		Name:   "letter_o",
		Path:   concat(ellipse(32, 32, 22, 27), ellipse(32, 32, 12, 18)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "glyph_like",
		Path:   glyphLike(),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "overlapping_circles",
		Path:   concat(circle(24, 26, 16, false), circle(40, 26, 16, false), circle(32, 40, 16, false)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "overlapping_circles_evenodd",
		Path:   concat(circle(24, 26, 16, false), circle(40, 26, 16, true), circle(32, 40, 16, false)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "stroked_glyph",
		Path:   glyphLike(),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 3, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound, MiterLimit: 10},
	},
}

// glyphLike is an outline mixing lines, quadratics and cubics, shaped
// roughly like a lowercase "a".
func glyphLike() *path.Data {
	bowl := (&path.Data{}).
		MoveTo(pt(44, 30)).
		CubeTo(pt(44, 24), pt(36, 22), pt(28, 24)).
		CubeTo(pt(16, 27), pt(14, 40), pt(18, 48)).
		QuadTo(pt(24, 58), pt(36, 54)).
		QuadTo(pt(42, 52), pt(44, 46)).
		Close()
	stem := (&path.Data{}).
		MoveTo(pt(40, 10)).
		QuadTo(pt(52, 10), pt(52, 24)).
		LineTo(pt(52, 56)).
		LineTo(pt(44, 56)).
		LineTo(pt(44, 24)).
		QuadTo(pt(44, 18), pt(36, 18)).
		QuadTo(pt(26, 18), pt(20, 24)).
		LineTo(pt(16, 18)).
		QuadTo(pt(26, 10), pt(40, 10)).
		Close()
	return concat(bowl, stem)
}
