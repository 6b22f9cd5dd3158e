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

	"github.com/chewxy/math32"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Tessellator computes tessellation levels for B-quads and generates the
// vertex and index data needed to draw them.
//
// The methods must be called in the order Init, ComputeHull, ComputeDomain,
// TessLevels.  ComputeHull may be called again with a new transformation,
// which invalidates the domain.
//
// A Tessellator is not safe for concurrent use.
type Tessellator struct {
	// Flatness is the maximum distance, in device pixels, between a curved
	// edge and its tessellation.
	Flatness float64

	// MaxLevel is the largest tessellation level assigned to an edge.
	MaxLevel int

	// Clip is the visible part of device space.  Quads whose hull lies
	// outside of Clip are culled.  If Clip is empty, nothing is culled.
	Clip rect.Rect

	mode AntialiasingMode

	bQuads    []BQuad
	bVertices []BVertex

	ctm       matrix.Matrix
	hasHull   bool
	hasDomain bool

	hulls         []QuadHull
	domains       []QuadDomain
	levels        []QuadTessLevels
	vertices      []Vertex
	msaaIndices   []uint32
	edgeInstances []EdgeInstance

	chains []edgeChain // scratch, two entries per quad
	order  []int
	hullIn []vec.Vec2
}

// edgeChain records where the tessellated vertices of one quad edge are
// stored.
type edgeChain struct {
	edge  [3]uint32
	first uint32 // index of the leftmost vertex
	level int
}

// NewTessellator returns a Tessellator for the given antialiasing mode.
func NewTessellator(mode AntialiasingMode) *Tessellator {
	return &Tessellator{
		Flatness: defaultFlatness,
		MaxLevel: defaultMaxLevel,
		mode:     mode,
	}
}

// Mode returns the antialiasing mode chosen at construction.
func (t *Tessellator) Mode() AntialiasingMode {
	return t.mode
}

// Init prepares the tessellator for the given B-quads and clears all
// previous output.  The slices are borrowed and must not be modified until
// the tessellator is re-initialized.
func (t *Tessellator) Init(bQuads []BQuad, bVertices []BVertex) error {
	t.bQuads = nil
	t.bVertices = nil
	t.hasHull = false
	t.hasDomain = false
	t.hulls = t.hulls[:0]
	t.domains = t.domains[:0]
	t.levels = t.levels[:0]
	t.vertices = t.vertices[:0]
	t.msaaIndices = t.msaaIndices[:0]
	t.edgeInstances = t.edgeInstances[:0]

	n := uint32(len(bVertices))
	for i, q := range bQuads {
		for _, idx := range [...]uint32{q.UpperLeft, q.UpperRight, q.LowerLeft, q.LowerRight} {
			if idx >= n {
				Logger().Warn("rejected tessellator input", "quad", i, "vertex", idx)
				return fmt.Errorf("quad %d: vertex %d: %w", i, idx, ErrInvalidInput)
			}
		}
		for _, idx := range [...]uint32{q.UpperControl, q.LowerControl} {
			if idx != NoControlPoint && idx >= n {
				Logger().Warn("rejected tessellator input", "quad", i, "controlPoint", idx)
				return fmt.Errorf("quad %d: control point %d: %w", i, idx, ErrInvalidInput)
			}
		}
	}

	t.bQuads = bQuads
	t.bVertices = bVertices
	return nil
}

// Hulls returns the device-space convex hulls computed by ComputeHull.
func (t *Tessellator) Hulls() []QuadHull {
	return t.hulls
}

// Domains returns the device-space edges computed by ComputeDomain.
func (t *Tessellator) Domains() []QuadDomain {
	return t.domains
}

// Vertices returns the tessellated vertex buffer.
func (t *Tessellator) Vertices() []Vertex {
	return t.vertices
}

// MSAAIndices returns the triangle list for multisample rendering.  It is
// empty in ECAA mode.
func (t *Tessellator) MSAAIndices() []uint32 {
	return t.msaaIndices
}

// EdgeInstances returns the boundary edges for analytic antialiasing.  It
// is empty unless the mode is AntialiasingECAA.
func (t *Tessellator) EdgeInstances() []EdgeInstance {
	return t.edgeInstances
}

// ComputeHull maps all B-quads to device space using the transformation m
// and computes their convex hulls.
func (t *Tessellator) ComputeHull(m matrix.Matrix) {
	t.ctm = m
	t.hulls = slices.Grow(t.hulls[:0], len(t.bQuads))
	for i := range t.bQuads {
		q := &t.bQuads[i]
		pts := t.hullIn[:0]
		for _, idx := range [...]uint32{q.UpperLeft, q.UpperControl, q.UpperRight, q.LowerLeft, q.LowerControl, q.LowerRight} {
			if idx == NoControlPoint {
				continue
			}
			pts = append(pts, transform(m, t.bVertices[idx].Position))
		}
		t.hullIn = pts
		t.hulls = append(t.hulls, convexHull(pts))
	}
	t.hasHull = true
	t.hasDomain = false

	Logger().Debug("computed hulls", "quads", len(t.hulls))
}

// ComputeDomain maps the edges of all B-quads to device space and marks
// quads outside of the clip rectangle as culled.
func (t *Tessellator) ComputeDomain() error {
	if !t.hasHull {
		return fmt.Errorf("compute domain: %w", ErrNoHull)
	}

	clip := !isEmptyRect(t.Clip)
	culled := 0
	t.domains = slices.Grow(t.domains[:0], len(t.bQuads))
	for i := range t.bQuads {
		q := &t.bQuads[i]
		d := QuadDomain{
			Upper: t.deviceEdge(q.upper()),
			Lower: t.deviceEdge(q.lower()),
		}
		if clip && !intersects(t.hulls[i].Bounds, t.Clip) {
			d.Culled = true
			culled++
		}
		t.domains = append(t.domains, d)
	}
	t.hasDomain = true

	Logger().Debug("computed domains", "quads", len(t.domains), "culled", culled)
	return nil
}

// deviceEdge returns the device-space left point, control point and right
// point of an edge.
func (t *Tessellator) deviceEdge(e [3]uint32) [3]vec.Vec2 {
	p0, c, p2 := t.pathEdge(e)
	return [3]vec.Vec2{transform(t.ctm, p0), transform(t.ctm, c), transform(t.ctm, p2)}
}

// pathEdge returns the path-space left point, control point and right
// point of an edge.  Straight edges use their midpoint as control point.
func (t *Tessellator) pathEdge(e [3]uint32) (vec.Vec2, vec.Vec2, vec.Vec2) {
	p0 := t.bVertices[e[0]].Position
	p2 := t.bVertices[e[2]].Position
	if e[1] == NoControlPoint {
		return p0, lerp(p0, p2, 0.5), p2
	}
	return p0, t.bVertices[e[1]].Position, p2
}

// TessLevels computes the tessellation levels of all B-quads.  As a side
// effect, the vertex buffer and, depending on the antialiasing mode, the
// MSAA index buffer or the edge instance list are rebuilt.  Culled quads
// get vertices and levels but no triangles or edge instances.
func (t *Tessellator) TessLevels() ([]QuadTessLevels, error) {
	if !t.hasDomain {
		return nil, fmt.Errorf("tessellation levels: %w", ErrNoDomain)
	}

	t.levels = slices.Grow(t.levels[:0], len(t.bQuads))
	t.vertices = t.vertices[:0]
	t.msaaIndices = t.msaaIndices[:0]
	t.edgeInstances = t.edgeInstances[:0]
	t.chains = t.chains[:0]

	for i := range t.bQuads {
		q := &t.bQuads[i]
		d := &t.domains[i]

		// levels ignore culling: a visible neighbour may share the edge
		upper, lower := 1, 1
		if q.UpperControl != NoControlPoint {
			upper = t.edgeLevel(d.Upper)
		}
		if q.LowerControl != NoControlPoint {
			lower = t.edgeLevel(d.Lower)
		}
		t.levels = append(t.levels, QuadTessLevels{
			Outer: [4]float32{1, float32(upper), 1, float32(lower)},
			Inner: [2]float32{float32(max(upper, lower)), 1},
		})

		pathID := t.bVertices[q.UpperLeft].PathID
		u := t.appendChain(q.upper(), upper, pathID, SideUpper)
		l := t.appendChain(q.lower(), lower, pathID, SideLower)
		t.chains = append(t.chains, u, l)

		if t.mode != AntialiasingECAA && !d.Culled {
			t.appendStrip(u, l)
		}
	}
	if t.mode == AntialiasingECAA {
		t.findBoundaryEdges()
	}

	Logger().Debug("tessellated quads",
		"mode", t.mode,
		"quads", len(t.levels),
		"vertices", len(t.vertices),
		"indices", len(t.msaaIndices),
		"edges", len(t.edgeInstances))
	return t.levels, nil
}

// edgeLevel returns the number of straight pieces needed to approximate
// the device-space quadratic e within Flatness.
func (t *Tessellator) edgeLevel(e [3]vec.Vec2) int {
	maxLevel := t.MaxLevel
	if maxLevel < 1 {
		maxLevel = defaultMaxLevel
	}
	flatness := float32(t.Flatness)
	if !(flatness > 0) {
		flatness = defaultFlatness
	}

	ddx := float32(e[0].X - 2*e[1].X + e[2].X)
	ddy := float32(e[0].Y - 2*e[1].Y + e[2].Y)
	dev := math32.Hypot(ddx, ddy) / 4
	if !(dev > flatness) {
		return 1
	}
	n := math32.Ceil(math32.Sqrt(dev / flatness))
	if !(n < float32(maxLevel)) {
		return maxLevel
	}
	return int(n)
}

// appendChain appends level+1 vertices along the path-space edge e, from
// left to right, and returns where they were stored.
func (t *Tessellator) appendChain(e [3]uint32, level int, pathID uint32, side Side) edgeChain {
	ch := edgeChain{
		edge:  e,
		first: uint32(len(t.vertices)),
		level: level,
	}
	p0, c, p2 := t.pathEdge(e)
	for j := 0; j <= level; j++ {
		var p vec.Vec2
		switch j {
		case 0:
			p = p0
		case level:
			p = p2
		default:
			s := float64(j) / float64(level)
			p = lerp(lerp(p0, c, s), lerp(c, p2, s), s)
		}
		t.vertices = append(t.vertices, Vertex{
			X:      float32(p.X),
			Y:      float32(p.Y),
			PathID: pathID,
			Side:   side,
		})
	}
	return ch
}

// appendStrip triangulates the region between an upper and a lower chain.
// Both chains run left to right, so the triangulation advances on the
// chain whose next vertex is further to the left.
func (t *Tessellator) appendStrip(u, l edgeChain) {
	i, j := 0, 0
	for i < u.level || j < l.level {
		ui := u.first + uint32(i)
		lj := l.first + uint32(j)
		advanceUpper := j == l.level
		if i < u.level && j < l.level {
			advanceUpper = t.vertices[ui+1].X <= t.vertices[lj+1].X
		}
		if advanceUpper {
			t.msaaIndices = append(t.msaaIndices, ui, ui+1, lj)
			i++
		} else {
			t.msaaIndices = append(t.msaaIndices, ui, lj+1, lj)
			j++
		}
	}
}

// findBoundaryEdges emits an edge instance for every quad edge which is
// not shared with another quad.
func (t *Tessellator) findBoundaryEdges() {
	t.order = t.order[:0]
	for k := range t.chains {
		t.order = append(t.order, k)
	}
	slices.SortFunc(t.order, func(a, b int) int {
		if c := slices.Compare(t.chains[a].edge[:], t.chains[b].edge[:]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	boundary := make([]bool, len(t.chains))
	for start := 0; start < len(t.order); {
		end := start + 1
		for end < len(t.order) && t.chains[t.order[end]].edge == t.chains[t.order[start]].edge {
			end++
		}
		if end-start == 1 {
			boundary[t.order[start]] = true
		}
		start = end
	}

	for k, ch := range t.chains {
		if !boundary[k] || t.domains[k/2].Culled || t.isZeroLength(ch.edge) {
			continue
		}
		last := ch.first + uint32(ch.level)
		e := EdgeInstance{
			Quad: uint32(k / 2),
			Side: Side(k % 2),
		}
		if e.Side == SideUpper {
			e.From, e.To = ch.first, last
		} else {
			e.From, e.To = last, ch.first
		}
		t.edgeInstances = append(t.edgeInstances, e)
	}
}

// isZeroLength reports whether the edge e collapses to a single point.
func (t *Tessellator) isZeroLength(e [3]uint32) bool {
	if e[0] == e[2] {
		return true
	}
	return t.bVertices[e[0]].Position == t.bVertices[e[2]].Position
}

// Default values for tessellator parameters.
const (
	defaultFlatness = 0.25
	defaultMaxLevel = 64
)
