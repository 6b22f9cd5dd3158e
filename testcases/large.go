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

// largeCases contain many segments and are mainly used for benchmarks.
var largeCases = []TestCase{
	{
		Name:   "grid",
		Path:   rectangleGrid(8, 8, 256, 256, 4),
		Width:  256,
		Height: 256,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "many_circles",
		Path:   circleRow(12, 256),
		Width:  256,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "large_star",
		Path:   star(128, 128, 120, 31, 15),
		Width:  256,
		Height: 256,
		Op:     Fill{Rule: EvenOdd},
	},
}

// rectangleGrid builds a grid of rectangles.
func rectangleGrid(rows, cols, width, height int, gap float64) *path.Data {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			x1 := float64(col)*cellW + gap
			y1 := float64(row)*cellH + gap
			p = concat(p, rectangle(x1, y1, x1+cellW-2*gap, y1+cellH-2*gap))
		}
	}
	return p
}

// circleRow builds n overlapping circles along a horizontal line.
func circleRow(n int, width float64) *path.Data {
	step := width / float64(n+1)
	p := &path.Data{}
	for i := range n {
		p = concat(p, circle(step*float64(i+1), 32, 1.2*step, false))
	}
	return p
}
