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
	"fmt"
	"slices"

	"honnef.co/go/curve"

	"seehuhn.de/go/geom/vec"
)

// Partitioner decomposes the filled area of legalized paths into B-quads.
//
// The partitioner sweeps a vertical line from left to right over the
// segments of a path.  Between two consecutive segment endpoints (or
// crossings), the segments met by the sweep line do not change and are
// ordered by y.  Each filled region between two neighbouring segments
// becomes a B-quad, which is extended to the right for as long as its upper
// and lower segment stay the same.
//
// A Partitioner is not safe for concurrent use.
type Partitioner struct {
	// FillRule decides which regions of a path are inside.
	FillRule FillRule

	endpoints     []Endpoint
	controlPoints []vec.Vec2
	subpaths      []Subpath

	bQuads    []BQuad
	bVertices []BVertex

	// reusable buffers for a single Partition call
	segs     []segment
	pieces   []segment
	splits   []splitPoint
	xs       []float64
	active   []activeSeg
	open     []rawQuad
	next     []rawQuad
	raw      []rawQuad
	breaks   [][]float64
	vertexOf map[vec.Vec2]uint32
	ctrlOf   map[ctrlKey]uint32
}

// NewPartitioner returns a Partitioner using the nonzero winding rule.
func NewPartitioner() *Partitioner {
	return &Partitioner{
		FillRule: NonZero,
	}
}

// Init prepares the partitioner for the given legalized data and clears all
// previous output.  The slices are borrowed and must not be modified until
// the partitioner is re-initialized.
func (p *Partitioner) Init(endpoints []Endpoint, controlPoints []vec.Vec2, subpaths []Subpath) error {
	p.endpoints = nil
	p.controlPoints = nil
	p.subpaths = nil
	p.bQuads = p.bQuads[:0]
	p.bVertices = p.bVertices[:0]

	for i, ep := range endpoints {
		if ep.ControlPoint != NoControlPoint && int(ep.ControlPoint) >= len(controlPoints) {
			Logger().Warn("rejected partitioner input", "endpoint", i, "controlPoint", ep.ControlPoint)
			return fmt.Errorf("endpoint %d: control point %d: %w", i, ep.ControlPoint, ErrInvalidInput)
		}
	}
	for i, s := range subpaths {
		if s.First > s.End || int(s.End) > len(endpoints) {
			Logger().Warn("rejected partitioner input", "subpath", i, "first", s.First, "end", s.End)
			return fmt.Errorf("subpath %d: endpoints [%d, %d): %w", i, s.First, s.End, ErrInvalidInput)
		}
	}

	p.endpoints = endpoints
	p.controlPoints = controlPoints
	p.subpaths = subpaths
	return nil
}

// BQuads returns the B-quads generated so far.
func (p *Partitioner) BQuads() []BQuad {
	return p.bQuads
}

// BVertices returns the vertex buffer referenced by the B-quads.
func (p *Partitioner) BVertices() []BVertex {
	return p.bVertices
}

// Partition decomposes the subpaths with indices in [first, last) into
// B-quads, tagging all new B-vertices with pathID.  The output is appended
// to the existing B-quads and B-vertices.
//
// B-vertices are shared only between the quads of a single call.  Geometry
// from separate calls never shares vertex indices, even when it touches, so
// a common edge of two calls counts as a boundary edge on both sides.
func (p *Partitioner) Partition(pathID, first, last uint32) error {
	if first > last || int(last) > len(p.subpaths) {
		Logger().Warn("rejected subpath range", "first", first, "last", last, "subpaths", len(p.subpaths))
		return fmt.Errorf("subpaths [%d, %d) of %d: %w", first, last, len(p.subpaths), ErrSubpathRange)
	}

	p.segs = p.segs[:0]
	for _, s := range p.subpaths[first:last] {
		p.collectSubpath(s)
	}
	nIn := len(p.segs)

	slices.SortStableFunc(p.segs, compareSegments)
	p.splits = findSplits(p.splits[:0], p.segs)
	p.pieces = applySplits(p.pieces[:0], p.segs, p.splits)
	p.segs, p.pieces = p.pieces, p.segs
	slices.SortStableFunc(p.segs, compareSegments)

	p.sweep()
	p.refine()

	quadsBefore := len(p.bQuads)
	verticesBefore := len(p.bVertices)
	p.emit(pathID)

	Logger().Debug("partitioned path",
		"path", pathID,
		"subpaths", last-first,
		"segments", nIn,
		"pieces", len(p.segs),
		"quads", len(p.bQuads)-quadsBefore,
		"vertices", len(p.bVertices)-verticesBefore)
	return nil
}

// collectSubpath appends the x-monotonic segments of s to p.segs.  Open
// subpaths are closed by a straight edge.
func (p *Partitioner) collectSubpath(s Subpath) {
	if s.Len() < 2 {
		return
	}
	for k := s.First; k < s.End; k++ {
		prev := k - 1
		if k == s.First {
			prev = s.End - 1
		}
		from := p.endpoints[prev].Position
		ep := p.endpoints[k]
		if ep.ControlPoint == NoControlPoint || (k == s.First && !s.Closed) {
			p.addLine(from, ep.Position)
		} else {
			p.addCurve(from, p.controlPoints[ep.ControlPoint], ep.Position)
		}
	}
}

func (p *Partitioner) addLine(from, to vec.Vec2) {
	if from.X == to.X {
		// vertical segments do not bound any region of the sweep
		return
	}
	s := segment{p0: from, p2: to, winding: 1}
	if from.X > to.X {
		s.p0, s.p2, s.winding = to, from, -1
	}
	p.segs = append(p.segs, s)
}

// addCurve appends the quadratic from, c, to.  Curves which are not
// monotonic in x are split at their extremum.
func (p *Partitioner) addCurve(from, c, to vec.Vec2) {
	if c == from || c == to {
		p.addLine(from, to)
		return
	}
	if t, ok := xExtremum(from.X, c.X, to.X); ok {
		q := curve.QuadBez{P0: toPoint(from), P1: toPoint(c), P2: toPoint(to)}
		m := fromPoint(q.Eval(t))
		c0 := lerp(from, c, t)
		c1 := lerp(c, to, t)
		c0.X, c1.X = m.X, m.X
		p.addCurve(from, c0, m)
		p.addCurve(m, c1, to)
		return
	}
	if from.X == to.X {
		return
	}
	s := segment{p0: from, c: c, p2: to, curved: true, winding: 1}
	if from.X > to.X {
		s.p0, s.p2, s.winding = to, from, -1
	}
	p.segs = append(p.segs, s)
}

// compareSegments orders segments by their left endpoint.
func compareSegments(a, b segment) int {
	if c := cmp.Compare(a.p0.X, b.p0.X); c != 0 {
		return c
	}
	return cmp.Compare(a.p0.Y, b.p0.Y)
}

// activeSeg is a segment crossing the current strip of the sweep.
type activeSeg struct {
	seg int
	y   float64 // y coordinate at the centre of the strip
}

// rawQuad is a B-quad in terms of segment indices, before vertices are
// assigned.
type rawQuad struct {
	upper, lower int
	x0, x1       float64
}

// sweep computes the raw quads of the segments in p.segs.
func (p *Partitioner) sweep() {
	p.raw = p.raw[:0]
	p.open = p.open[:0]

	p.xs = p.xs[:0]
	for i := range p.segs {
		p.xs = append(p.xs, p.segs[i].p0.X, p.segs[i].p2.X)
	}
	slices.Sort(p.xs)
	p.xs = slices.Compact(p.xs)

	p.active = p.active[:0]
	nextSeg := 0
	for k := 0; k+1 < len(p.xs); k++ {
		x0, x1 := p.xs[k], p.xs[k+1]
		xm := 0.5 * (x0 + x1)

		// Every segment endpoint is an event, so a segment either spans the
		// whole strip or is disjoint from it.
		keep := p.active[:0]
		for _, a := range p.active {
			if p.segs[a.seg].p2.X > x0 {
				keep = append(keep, a)
			}
		}
		p.active = keep
		for nextSeg < len(p.segs) && p.segs[nextSeg].p0.X <= x0 {
			p.active = append(p.active, activeSeg{seg: nextSeg})
			nextSeg++
		}
		for i := range p.active {
			p.active[i].y = p.segs[p.active[i].seg].yAt(xm)
		}
		slices.SortFunc(p.active, func(a, b activeSeg) int {
			if c := cmp.Compare(a.y, b.y); c != 0 {
				return c
			}
			if c := cmp.Compare(p.segs[a.seg].winding, p.segs[b.seg].winding); c != 0 {
				return c
			}
			return cmp.Compare(a.seg, b.seg)
		})

		// collect the filled regions of this strip
		p.next = p.next[:0]
		winding := 0
		for i := 0; i+1 < len(p.active); i++ {
			winding += p.segs[p.active[i].seg].winding
			if !p.FillRule.inside(winding) {
				continue
			}
			p.next = append(p.next, rawQuad{
				upper: p.active[i].seg,
				lower: p.active[i+1].seg,
				x0:    x0,
			})
		}

		// Quads whose boundary segments continue are extended, all others
		// are closed at x0.  Both lists are sorted by y, and a pair of
		// segments bounds at most one region per strip.
		for i := range p.next {
			for _, q := range p.open {
				if q.upper == p.next[i].upper && q.lower == p.next[i].lower {
					p.next[i].x0 = q.x0
					break
				}
			}
		}
		for _, q := range p.open {
			if !containsPair(p.next, q.upper, q.lower) {
				q.x1 = x0
				p.raw = append(p.raw, q)
			}
		}
		p.open, p.next = p.next, p.open
	}
	if n := len(p.xs); n > 0 {
		for _, q := range p.open {
			q.x1 = p.xs[n-1]
			p.raw = append(p.raw, q)
		}
	}
	p.open = p.open[:0]
}

func containsPair(qs []rawQuad, upper, lower int) bool {
	for _, q := range qs {
		if q.upper == upper && q.lower == lower {
			return true
		}
	}
	return false
}

// refine collects, for every segment, the x positions at which a quad on
// either side of the segment starts or ends.  Quads are later split at
// these positions, so that neighbouring quads share their edges exactly.
func (p *Partitioner) refine() {
	for len(p.breaks) < len(p.segs) {
		p.breaks = append(p.breaks, nil)
	}
	for i := range p.segs {
		p.breaks[i] = p.breaks[i][:0]
	}
	for _, q := range p.raw {
		p.breaks[q.upper] = insertSorted(p.breaks[q.upper], q.x0, q.x1)
		p.breaks[q.lower] = insertSorted(p.breaks[q.lower], q.x0, q.x1)
	}

	// Splitting a quad adds its split positions to the segment on the
	// other side, which may in turn split further quads.
	for changed := true; changed; {
		changed = false
		for _, q := range p.raw {
			for _, pair := range [2][2]int{{q.upper, q.lower}, {q.lower, q.upper}} {
				from, to := pair[0], pair[1]
				for _, x := range interior(p.breaks[from], q.x0, q.x1) {
					if _, found := slices.BinarySearch(p.breaks[to], x); !found {
						p.breaks[to] = insertSorted(p.breaks[to], x)
						changed = true
					}
				}
			}
		}
	}
}

// interior returns the elements of the sorted slice xs which lie strictly
// between x0 and x1.
func interior(xs []float64, x0, x1 float64) []float64 {
	i, _ := slices.BinarySearch(xs, x0)
	for i < len(xs) && xs[i] <= x0 {
		i++
	}
	j, _ := slices.BinarySearch(xs, x1)
	return xs[i:j]
}

func insertSorted(xs []float64, vals ...float64) []float64 {
	for _, x := range vals {
		i, found := slices.BinarySearch(xs, x)
		if !found {
			xs = slices.Insert(xs, i, x)
		}
	}
	return xs
}

// ctrlKey identifies the control point of a piece of a curved segment.
type ctrlKey struct {
	seg    int
	x0, x1 float64
}

// emit converts the raw quads into B-quads and B-vertices.
func (p *Partitioner) emit(pathID uint32) {
	if p.vertexOf == nil {
		p.vertexOf = make(map[vec.Vec2]uint32)
		p.ctrlOf = make(map[ctrlKey]uint32)
	}
	clear(p.vertexOf)
	clear(p.ctrlOf)

	for _, q := range p.raw {
		inner := interior(p.breaks[q.upper], q.x0, q.x1)
		xa := q.x0
		for k := 0; k <= len(inner); k++ {
			xb := q.x1
			if k < len(inner) {
				xb = inner[k]
			}
			p.bQuads = append(p.bQuads, BQuad{
				UpperLeft:    p.endpointVertex(pathID, q.upper, xa),
				UpperControl: p.controlVertex(pathID, q.upper, xa, xb),
				UpperRight:   p.endpointVertex(pathID, q.upper, xb),
				LowerLeft:    p.endpointVertex(pathID, q.lower, xa),
				LowerControl: p.controlVertex(pathID, q.lower, xa, xb),
				LowerRight:   p.endpointVertex(pathID, q.lower, xb),
			})
			xa = xb
		}
	}
}

// endpointVertex returns the index of the B-vertex of segment seg at x,
// creating it if needed.
func (p *Partitioner) endpointVertex(pathID uint32, seg int, x float64) uint32 {
	pos := p.segs[seg].pointAt(x)
	if idx, ok := p.vertexOf[pos]; ok {
		return idx
	}
	idx := uint32(len(p.bVertices))
	p.bVertices = append(p.bVertices, BVertex{
		Position: pos,
		PathID:   pathID,
		Kind:     BVertexEndpoint,
	})
	p.vertexOf[pos] = idx
	return idx
}

// controlVertex returns the index of the control point B-vertex of the
// piece of seg between x0 and x1, or NoControlPoint for straight segments.
func (p *Partitioner) controlVertex(pathID uint32, seg int, x0, x1 float64) uint32 {
	s := &p.segs[seg]
	if !s.curved {
		return NoControlPoint
	}
	key := ctrlKey{seg: seg, x0: x0, x1: x1}
	if idx, ok := p.ctrlOf[key]; ok {
		return idx
	}
	idx := uint32(len(p.bVertices))
	p.bVertices = append(p.bVertices, BVertex{
		Position: s.controlBetween(x0, x1),
		PathID:   pathID,
		Kind:     BVertexControlPoint,
	})
	p.ctrlOf[key] = idx
	return idx
}
