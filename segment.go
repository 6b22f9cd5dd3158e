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

	"honnef.co/go/curve"

	"seehuhn.de/go/geom/vec"
)

// segment is an x-monotonic edge of the path being partitioned, stored
// left to right.
type segment struct {
	p0, c, p2 vec.Vec2 // p0.X < p2.X; c is only meaningful if curved
	curved    bool
	winding   int // +1 if the path runs from p0 to p2, -1 otherwise
}

func (s *segment) quad() curve.QuadBez {
	return curve.QuadBez{P0: toPoint(s.p0), P1: toPoint(s.c), P2: toPoint(s.p2)}
}

// paramAt returns the curve parameter at which s reaches x.
func (s *segment) paramAt(x float64) float64 {
	if !s.curved {
		return (x - s.p0.X) / (s.p2.X - s.p0.X)
	}
	return quadParamAtX(s.p0.X, s.c.X, s.p2.X, x)
}

// pointAt returns the point of s with the given x coordinate.  The
// endpoints are returned exactly.
func (s *segment) pointAt(x float64) vec.Vec2 {
	switch {
	case x <= s.p0.X:
		return s.p0
	case x >= s.p2.X:
		return s.p2
	case !s.curved:
		t := (x - s.p0.X) / (s.p2.X - s.p0.X)
		return vec.Vec2{X: x, Y: s.p0.Y + t*(s.p2.Y-s.p0.Y)}
	}
	p := fromPoint(s.quad().Eval(s.paramAt(x)))
	p.X = x
	return p
}

// yAt returns the y coordinate of s at x.
func (s *segment) yAt(x float64) float64 {
	return s.pointAt(x).Y
}

// controlBetween returns the control point of the part of the curved
// segment s between x0 and x1.
func (s *segment) controlBetween(x0, x1 float64) vec.Vec2 {
	if x0 <= s.p0.X && x1 >= s.p2.X {
		return s.c
	}
	sub := s.quad().Subsegment(s.paramAt(x0), s.paramAt(x1))
	c := fromPoint(sub.P1)
	c.X = min(max(c.X, x0), x1)
	return c
}

// splitAt divides s at the point p, which must lie strictly inside the
// x-range of s.  Both halves keep the winding of s.
func (s *segment) splitAt(p vec.Vec2) (segment, segment) {
	left := segment{p0: s.p0, p2: p, curved: s.curved, winding: s.winding}
	right := segment{p0: p, p2: s.p2, curved: s.curved, winding: s.winding}
	if s.curved {
		t := s.paramAt(p.X)
		q := s.quad()
		c0 := fromPoint(q.Subsegment(0, t).P1)
		c1 := fromPoint(q.Subsegment(t, 1).P1)
		left.c = vec.Vec2{X: min(max(c0.X, s.p0.X), p.X), Y: c0.Y}
		right.c = vec.Vec2{X: min(max(c1.X, p.X), s.p2.X), Y: c1.Y}
	}
	return left, right
}

// splitPoint is a point at which a segment has to be divided.
type splitPoint struct {
	seg int
	pos vec.Vec2
}

// findSplits appends to dst the points at which the segments cross or
// touch each other.  Segments must be sorted by p0.X.
func findSplits(dst []splitPoint, segs []segment) []splitPoint {
	for i := range segs {
		a := &segs[i]
		for j := i + 1; j < len(segs); j++ {
			b := &segs[j]
			if b.p0.X >= a.p2.X {
				break
			}
			dst = intersectPair(dst, i, j, a, b)
		}
	}
	return dst
}

// intersectPair appends the split points for the pair of segments a and b
// with indices i and j.
func intersectPair(dst []splitPoint, i, j int, a, b *segment) []splitPoint {
	aMin, aMax := yRange(a)
	bMin, bMax := yRange(b)
	if aMax < bMin || bMax < aMin {
		return dst
	}

	xl := max(a.p0.X, b.p0.X)
	xr := min(a.p2.X, b.p2.X)
	eps := touchEpsilon * max(1, math.Abs(xl), math.Abs(xr), math.Abs(aMax), math.Abs(bMax))

	// endpoints touching the interior of the other segment
	dst = touchSplit(dst, i, a, b, eps)
	dst = touchSplit(dst, j, b, a, eps)

	f := func(x float64) float64 { return a.yAt(x) - b.yAt(x) }

	if !a.curved && !b.curved {
		fl, fr := f(xl), f(xr)
		if math.Abs(fl) > eps && math.Abs(fr) > eps && (fl < 0) != (fr < 0) {
			dst = crossSplit(dst, i, j, a, b, xl+(xr-xl)*fl/(fl-fr))
		}
		return dst
	}

	// Curves: look for sign changes of the y-difference on a grid and
	// refine them by bisection.
	prevX, prevF := xl, f(xl)
	for k := 1; k <= intersectSamples; k++ {
		x := xl + (xr-xl)*float64(k)/intersectSamples
		fx := f(x)
		if math.Abs(prevF) > eps && math.Abs(fx) > eps && (prevF < 0) != (fx < 0) {
			lo, hi, flo := prevX, x, prevF
			for range bisectSteps {
				mid := 0.5 * (lo + hi)
				fm := f(mid)
				if (fm < 0) == (flo < 0) {
					lo, flo = mid, fm
				} else {
					hi = mid
				}
			}
			dst = crossSplit(dst, i, j, a, b, 0.5*(lo+hi))
		}
		prevX, prevF = x, fx
	}
	return dst
}

// touchSplit records a split of b where an endpoint of a lies on the
// interior of b.
func touchSplit(dst []splitPoint, bIdx int, a, b *segment, eps float64) []splitPoint {
	for _, p := range [2]vec.Vec2{a.p0, a.p2} {
		if p.X <= b.p0.X || p.X >= b.p2.X {
			continue
		}
		if math.Abs(b.yAt(p.X)-p.Y) <= eps {
			dst = append(dst, splitPoint{seg: bIdx, pos: p})
		}
	}
	return dst
}

// crossSplit records a split of both segments at the crossing with x
// coordinate x.  Both halves receive the same point.
func crossSplit(dst []splitPoint, i, j int, a, b *segment, x float64) []splitPoint {
	p := vec.Vec2{X: x, Y: 0.5 * (a.yAt(x) + b.yAt(x))}
	if x > a.p0.X && x < a.p2.X {
		dst = append(dst, splitPoint{seg: i, pos: p})
	}
	if x > b.p0.X && x < b.p2.X {
		dst = append(dst, splitPoint{seg: j, pos: p})
	}
	return dst
}

// applySplits divides the segments at the given points and appends the
// pieces to dst.  Segments without split points are copied unchanged.
func applySplits(dst []segment, segs []segment, splits []splitPoint) []segment {
	slices.SortFunc(splits, func(a, b splitPoint) int {
		if c := cmp.Compare(a.seg, b.seg); c != 0 {
			return c
		}
		if c := cmp.Compare(a.pos.X, b.pos.X); c != 0 {
			return c
		}
		return cmp.Compare(a.pos.Y, b.pos.Y)
	})

	k := 0
	for i := range segs {
		rest := segs[i]
		for k < len(splits) && splits[k].seg == i {
			p := splits[k].pos
			k++
			if p.X <= rest.p0.X || p.X >= rest.p2.X {
				// duplicate or coincident with an endpoint
				continue
			}
			left, right := rest.splitAt(p)
			dst = append(dst, left)
			rest = right
		}
		dst = append(dst, rest)
	}
	return dst
}

// yRange returns the vertical extent of s.
func yRange(s *segment) (float64, float64) {
	lo, hi := min(s.p0.Y, s.p2.Y), max(s.p0.Y, s.p2.Y)
	if s.curved {
		lo, hi = min(lo, s.c.Y), max(hi, s.c.Y)
	}
	return lo, hi
}

// Numerical parameters of the intersection search.
const (
	// intersectSamples is the number of grid cells used to bracket
	// crossings between a curve and another segment.
	intersectSamples = 32

	// bisectSteps is the number of bisection steps used to refine a
	// bracketed crossing.
	bisectSteps = 52

	// touchEpsilon is the relative distance below which an endpoint is
	// considered to lie on another segment.
	touchEpsilon = 1e-9
)
