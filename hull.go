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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// convexHull computes the convex hull of up to six points using Andrew's
// monotone chain algorithm.  The points are sorted in place.
func convexHull(pts []vec.Vec2) QuadHull {
	var h QuadHull
	if len(pts) == 0 {
		return h
	}

	h.Bounds = rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, p := range pts {
		h.Bounds.LLx = min(h.Bounds.LLx, p.X)
		h.Bounds.LLy = min(h.Bounds.LLy, p.Y)
		h.Bounds.URx = max(h.Bounds.URx, p.X)
		h.Bounds.URy = max(h.Bounds.URy, p.Y)
	}

	slices.SortFunc(pts, func(a, b vec.Vec2) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	pts = slices.Compact(pts)
	if len(pts) < 3 {
		h.N = copy(h.Points[:], pts)
		return h
	}

	var buf [12]vec.Vec2
	n := 0
	for _, p := range pts {
		for n >= 2 && cross(buf[n-2], buf[n-1], p) <= 0 {
			n--
		}
		buf[n] = p
		n++
	}
	lower := n + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for n >= lower && cross(buf[n-2], buf[n-1], p) <= 0 {
			n--
		}
		buf[n] = p
		n++
	}
	n-- // the first point is repeated at the end

	h.N = copy(h.Points[:], buf[:n])
	return h
}

// cross returns the z component of (b-a) × (c-a).
func cross(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// intersects reports whether the rectangles a and b overlap.  Touching
// rectangles count as overlapping.
func intersects(a, b rect.Rect) bool {
	return a.LLx <= b.URx && b.LLx <= a.URx && a.LLy <= b.URy && b.LLy <= a.URy
}

// isEmptyRect reports whether r covers no area.
func isEmptyRect(r rect.Rect) bool {
	return !(r.URx > r.LLx && r.URy > r.LLy)
}
