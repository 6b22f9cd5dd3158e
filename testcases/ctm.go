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

// ctmCases are painted under a non-trivial transformation.  Partitioning
// happens in path space, tessellation levels depend on device space.
var ctmCases = []TestCase{
	{
		Name:   "scale_4x",
		Path:   circle(0, 0, 6, false),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.Scale(4, 4).Translate(32, 32),
	},
	{
		Name:   "scale_half",
		Path:   roundedRect(0, 0, 100, 80, 20),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.Scale(0.5, 0.5).Translate(7, 12),
	},
	{
		Name:   "rotate_30",
		Path:   rectangle(-16, -10, 16, 10),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.RotateDeg(30).Translate(32, 32),
	},
	{
		Name:   "rotate_90_star",
		Path:   star(0, 0, 26, 5, 2),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.RotateDeg(90).Translate(32, 32),
	},
	{
		Name:   "shear",
		Path:   ellipse(0, 0, 16, 10),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.Matrix{1, 0, 0.5, 1, 32, 32},
	},
	{
		Name:   "flip_y",
		Path:   lens(-24, 0, 24, 0, 14),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.Matrix{1, 0, 0, -1, 32, 32},
	},
}
