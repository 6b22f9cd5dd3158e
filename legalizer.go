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
	"honnef.co/go/curve"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Legalizer converts path construction calls into the flat representation
// consumed by the Partitioner.  Every curve it stores is a quadratic Bézier
// whose control point lies between its endpoints in x, so that each segment
// crosses a vertical sweep line at most once.
//
// Degenerate input is normalized rather than rejected: zero-length lines
// are dropped, quadratics with a control point on an endpoint become
// straight lines, and curves which return to their start point vanish.
//
// A Legalizer is not safe for concurrent use.
type Legalizer struct {
	// Tolerance is the maximum distance, in path units, between a cubic
	// Bézier curve and its quadratic approximation.  Must be positive.
	Tolerance float64

	endpoints     []Endpoint
	controlPoints []vec.Vec2
	subpaths      []Subpath

	current    vec.Vec2 // current point
	hasCurrent bool     // current is valid
	open       bool     // the last subpath accepts further segments
}

// NewLegalizer returns an empty Legalizer with the default tolerance.
func NewLegalizer() *Legalizer {
	return &Legalizer{
		Tolerance: defaultTolerance,
	}
}

// Reset clears all accumulated data, preserving buffer capacity.
func (l *Legalizer) Reset() {
	l.endpoints = l.endpoints[:0]
	l.controlPoints = l.controlPoints[:0]
	l.subpaths = l.subpaths[:0]
	l.current = vec.Vec2{}
	l.hasCurrent = false
	l.open = false
}

// Endpoints returns the legalized endpoints.
func (l *Legalizer) Endpoints() []Endpoint {
	return l.endpoints
}

// ControlPoints returns the control points referenced by the endpoints.
func (l *Legalizer) ControlPoints() []vec.Vec2 {
	return l.controlPoints
}

// Subpaths returns the endpoint ranges of all subpaths.
func (l *Legalizer) Subpaths() []Subpath {
	return l.subpaths
}

// MoveTo starts a new subpath at p.  An open subpath is left open.
func (l *Legalizer) MoveTo(p vec.Vec2) {
	if l.open {
		last := &l.subpaths[len(l.subpaths)-1]
		if last.Len() == 1 {
			// a subpath without segments is replaced
			l.endpoints[last.First].Position = p
			l.current = p
			return
		}
	}

	idx := uint32(len(l.subpaths))
	first := uint32(len(l.endpoints))
	l.subpaths = append(l.subpaths, Subpath{First: first, End: first + 1})
	l.endpoints = append(l.endpoints, Endpoint{
		Position:     p,
		ControlPoint: NoControlPoint,
		Subpath:      idx,
	})
	l.current = p
	l.hasCurrent = true
	l.open = true
}

// LineTo appends a straight segment from the current point to p.
func (l *Legalizer) LineTo(p vec.Vec2) {
	l.beginSegment(p)
	l.pushEndpoint(p, NoControlPoint)
}

// QuadraticCurveTo appends a quadratic Bézier segment from the current point
// through control point c to p.  If the curve is not monotonic in x, it is
// split at its x-extremum.
func (l *Legalizer) QuadraticCurveTo(c, p vec.Vec2) {
	l.beginSegment(p)
	p0 := l.current
	if p0 == p {
		// the curve goes out and comes back along the same track
		return
	}

	t, ok := xExtremum(p0.X, c.X, p.X)
	if !ok {
		l.pushCurve(c, p)
		return
	}

	// de Casteljau split at t; the tangent at the split point is vertical,
	// so both new control points share its x coordinate.
	m := fromPoint(curve.QuadBez{P0: toPoint(p0), P1: toPoint(c), P2: toPoint(p)}.Eval(t))
	c0 := lerp(p0, c, t)
	c1 := lerp(c, p, t)
	c0.X = m.X
	c1.X = m.X
	l.pushCurve(c0, m)
	l.pushCurve(c1, p)
}

// BezierCurveTo appends a cubic Bézier segment from the current point
// through control points c1 and c2 to p.  The cubic is approximated by
// quadratic segments within Tolerance.
func (l *Legalizer) BezierCurveTo(c1, c2, p vec.Vec2) {
	l.beginSegment(p)
	tol := l.Tolerance
	if !(tol > 0) {
		tol = defaultTolerance
	}

	cb := curve.CubicBez{
		P0: toPoint(l.current),
		P1: toPoint(c1),
		P2: toPoint(c2),
		P3: toPoint(p),
	}
	for seg := range cb.Quadratics(tol) {
		end := fromPoint(seg.Segment.P2)
		if seg.End >= 1 {
			end = p
		}
		l.QuadraticCurveTo(fromPoint(seg.Segment.P1), end)
	}
}

// ClosePath closes the current subpath.  The current point moves back to
// the start of the subpath.
func (l *Legalizer) ClosePath() {
	if !l.open {
		return
	}
	s := &l.subpaths[len(l.subpaths)-1]
	first := &l.endpoints[s.First]
	if s.Len() >= 2 {
		last := l.endpoints[s.End-1]
		if last.Position == first.Position {
			// fold the duplicate endpoint into the first one, so that the
			// closing segment keeps its control point
			first.ControlPoint = last.ControlPoint
			l.endpoints = l.endpoints[:len(l.endpoints)-1]
			s.End--
		}
	}
	s.Closed = true
	l.open = false
	l.current = first.Position
}

// AppendPath feeds all commands of p into the Legalizer.
func (l *Legalizer) AppendPath(p *path.Data) {
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			l.MoveTo(p.Coords[coordIdx])
			coordIdx++
		case path.CmdLineTo:
			l.LineTo(p.Coords[coordIdx])
			coordIdx++
		case path.CmdQuadTo:
			l.QuadraticCurveTo(p.Coords[coordIdx], p.Coords[coordIdx+1])
			coordIdx += 2
		case path.CmdCubeTo:
			l.BezierCurveTo(p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2])
			coordIdx += 3
		case path.CmdClose:
			l.ClosePath()
		}
	}
}

// beginSegment makes sure that a subpath is open before a segment ending
// at p is appended.  After ClosePath, the new subpath starts at the
// current point.
func (l *Legalizer) beginSegment(p vec.Vec2) {
	if l.open {
		return
	}
	if l.hasCurrent {
		l.MoveTo(l.current)
	} else {
		l.MoveTo(p)
	}
}

// pushCurve appends a monotonic quadratic segment, or a straight segment
// if the control point coincides with an endpoint.
func (l *Legalizer) pushCurve(c, p vec.Vec2) {
	if c == l.current || c == p {
		l.pushEndpoint(p, NoControlPoint)
		return
	}
	if p == l.current {
		return
	}
	idx := uint32(len(l.controlPoints))
	l.controlPoints = append(l.controlPoints, c)
	l.pushEndpoint(p, idx)
}

func (l *Legalizer) pushEndpoint(p vec.Vec2, controlPoint uint32) {
	if p == l.current {
		return
	}
	s := len(l.subpaths) - 1
	l.endpoints = append(l.endpoints, Endpoint{
		Position:     p,
		ControlPoint: controlPoint,
		Subpath:      uint32(s),
	})
	l.subpaths[s].End++
	l.current = p
}

// xExtremum returns the parameter of the x-extremum of the quadratic with
// x-coordinates a, b, c, if it lies strictly inside the curve.
func xExtremum(a, b, c float64) (float64, bool) {
	if b >= min(a, c) && b <= max(a, c) {
		return 0, false
	}
	denom := a - 2*b + c
	if denom == 0 {
		return 0, false
	}
	t := (a - b) / denom
	if !(t > 0 && t < 1) {
		return 0, false
	}
	return t, true
}

// Default values for legalizer parameters.
const (
	// defaultTolerance is the default accuracy of the cubic to quadratic
	// conversion, in path units.
	defaultTolerance = 0.1
)
