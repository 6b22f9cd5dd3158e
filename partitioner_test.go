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
	"errors"
	"maps"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/bquad/testcases"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestPartitionSquare(t *testing.T) {
	l := NewLegalizer()
	l.AppendPath((&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 0, Y: 10}).
		Close())

	p := partition(t, l, NonZero)

	quads := p.BQuads()
	if len(quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(quads))
	}
	if n := len(p.BVertices()); n != 4 {
		t.Errorf("got %d vertices, want 4", n)
	}
	q := quads[0]
	pos := func(i uint32) vec.Vec2 { return p.BVertices()[i].Position }
	got := [4]vec.Vec2{pos(q.UpperLeft), pos(q.UpperRight), pos(q.LowerLeft), pos(q.LowerRight)}
	want := [4]vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}}
	if got != want {
		t.Errorf("corners: got %v, want %v", got, want)
	}
	if q.UpperControl != NoControlPoint || q.LowerControl != NoControlPoint {
		t.Errorf("straight edges have control points: %+v", q)
	}
}

// The orientation of the path does not change the result.
func TestPartitionOrientation(t *testing.T) {
	tri := []vec.Vec2{{X: 10, Y: 50}, {X: 32, Y: 10}, {X: 54, Y: 50}}
	var results [2][]BQuad
	for k := range 2 {
		l := NewLegalizer()
		l.MoveTo(tri[0])
		if k == 0 {
			l.LineTo(tri[1])
			l.LineTo(tri[2])
		} else {
			l.LineTo(tri[2])
			l.LineTo(tri[1])
		}
		l.ClosePath()
		p := partition(t, l, NonZero)
		results[k] = slices.Clone(p.BQuads())
		checkArea(t, "triangle", p, 0.5*44*40)
	}
	if len(results[0]) != len(results[1]) {
		t.Errorf("got %d and %d quads", len(results[0]), len(results[1]))
	}
}

// For paths without self-intersections, the quads cover exactly the area
// enclosed by the path.
func TestPartitionArea(t *testing.T) {
	simple := map[string]bool{
		"fill/square":               true,
		"fill/triangle":             true,
		"fill/triangle_ccw":         true,
		"fill/diamond":              true,
		"fill/l_shape":              true,
		"fill/comb":                 true,
		"curve/circle":              true,
		"curve/ellipse":             true,
		"curve/quad_arch":           true,
		"curve/quad_bulge_x":        true,
		"curve/s_curve":             true,
		"curve/rounded_rect":        true,
		"curve/lens":                true,
		"subpath/ring_nonzero":      true,
		"subpath/touching_squares":  true,
		"precision/subpixel_offset": true,
		"precision/far_from_origin": true,
		"precision/tiny_circle":     true,
		"precision/sliver":          true,
	}

	l := NewLegalizer()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "/" + tc.Name
			if !simple[name] {
				continue
			}
			l.Reset()
			l.AppendPath(tc.Path)
			want := 0.0
			for _, a := range subpathAreas(l) {
				want += a
			}
			p := partition(t, l, NonZero)
			checkArea(t, name, p, math.Abs(want))
		}
	}
}

func TestPartitionSelfIntersecting(t *testing.T) {
	// bowtie: two triangles meeting at (32, 32)
	bowtie := []vec.Vec2{{X: 8, Y: 8}, {X: 56, Y: 56}, {X: 56, Y: 8}, {X: 8, Y: 56}}
	l := NewLegalizer()
	l.MoveTo(bowtie[0])
	for _, pt := range bowtie[1:] {
		l.LineTo(pt)
	}
	l.ClosePath()

	p := partition(t, l, NonZero)
	checkArea(t, "bowtie", p, 2*0.5*48*24)

	// The crossing is a vertex of the quads on both sides.
	found := false
	for _, v := range p.BVertices() {
		if math.Abs(v.Position.X-32) < 1e-9 && math.Abs(v.Position.Y-32) < 1e-9 {
			found = true
		}
	}
	if !found {
		t.Error("crossing point is not a B-vertex")
	}
}

func TestPartitionEvenOdd(t *testing.T) {
	l := NewLegalizer()
	outer := []vec.Vec2{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 30}, {X: 0, Y: 30}}
	inner := []vec.Vec2{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 10, Y: 20}}
	for _, poly := range [][]vec.Vec2{outer, inner} {
		l.MoveTo(poly[0])
		for _, pt := range poly[1:] {
			l.LineTo(pt)
		}
		l.ClosePath()
	}

	p := partition(t, l, EvenOdd)
	checkArea(t, "evenodd", p, 900-100)

	p = partition(t, l, NonZero)
	checkArea(t, "nonzero", p, 900)
}

// Open subpaths are filled as if they were closed.
func TestPartitionOpenSubpath(t *testing.T) {
	l := NewLegalizer()
	l.MoveTo(vec.Vec2{X: 0, Y: 0})
	l.LineTo(vec.Vec2{X: 10, Y: 0})
	l.LineTo(vec.Vec2{X: 10, Y: 10})

	p := partition(t, l, NonZero)
	checkArea(t, "open", p, 50)
}

// Neighbouring quads share their B-vertices: no two endpoint vertices have
// the same position.
func TestPartitionSharedVertices(t *testing.T) {
	l := NewLegalizer()
	p := NewPartitioner()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			op, ok := tc.Op.(testcases.Fill)
			if !ok {
				continue
			}
			l.Reset()
			l.AppendPath(tc.Path)
			p.FillRule = fillRule(op.Rule)
			err := p.Init(l.Endpoints(), l.ControlPoints(), l.Subpaths())
			if err != nil {
				t.Fatal(err)
			}
			err = p.Partition(0, 0, uint32(len(l.Subpaths())))
			if err != nil {
				t.Fatal(err)
			}

			seen := make(map[vec.Vec2]bool)
			for _, v := range p.BVertices() {
				if v.Kind != BVertexEndpoint {
					continue
				}
				if seen[v.Position] {
					t.Errorf("%s/%s: duplicate vertex at %v", category, tc.Name, v.Position)
				}
				seen[v.Position] = true
			}

			for i, q := range p.BQuads() {
				pos := func(i uint32) vec.Vec2 { return p.BVertices()[i].Position }
				if pos(q.UpperLeft).X != pos(q.LowerLeft).X || pos(q.UpperRight).X != pos(q.LowerRight).X {
					t.Errorf("%s/%s: quad %d has slanted sides", category, tc.Name, i)
				}
				if !(pos(q.UpperLeft).X < pos(q.UpperRight).X) {
					t.Errorf("%s/%s: quad %d has zero width", category, tc.Name, i)
				}
			}
		}
	}
}

// Partitioning the same input twice gives identical output, whether or
// not the partitioner is reused.
func TestPartitionDeterministic(t *testing.T) {
	tc := testcases.All["complex"][0]
	l := NewLegalizer()
	l.AppendPath(tc.Path)

	p1 := partition(t, l, NonZero)
	quads := slices.Clone(p1.BQuads())
	vertices := slices.Clone(p1.BVertices())

	err := p1.Init(l.Endpoints(), l.ControlPoints(), l.Subpaths())
	if err != nil {
		t.Fatal(err)
	}
	err = p1.Partition(0, 0, uint32(len(l.Subpaths())))
	if err != nil {
		t.Fatal(err)
	}

	p2 := NewPartitioner()
	err = p2.Init(l.Endpoints(), l.ControlPoints(), l.Subpaths())
	if err != nil {
		t.Fatal(err)
	}
	err = p2.Partition(0, 0, uint32(len(l.Subpaths())))
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []*Partitioner{p1, p2} {
		if d := cmp.Diff(quads, p.BQuads()); d != "" {
			t.Errorf("quads differ (-first +second):\n%s", d)
		}
		if d := cmp.Diff(vertices, p.BVertices()); d != "" {
			t.Errorf("vertices differ (-first +second):\n%s", d)
		}
	}
}

// Output of consecutive Partition calls accumulates, with vertices tagged
// by path ID.
func TestPartitionAppends(t *testing.T) {
	l := NewLegalizer()
	l.AppendPath(testcases.All["subpath"][0].Path)
	nSub := uint32(len(l.Subpaths()))
	if nSub < 2 {
		t.Fatalf("test path has %d subpaths", nSub)
	}

	p := NewPartitioner()
	err := p.Init(l.Endpoints(), l.ControlPoints(), l.Subpaths())
	if err != nil {
		t.Fatal(err)
	}
	err = p.Partition(7, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	nQuads, nVertices := len(p.BQuads()), len(p.BVertices())
	err = p.Partition(8, 1, nSub)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.BQuads()) <= nQuads || len(p.BVertices()) <= nVertices {
		t.Fatal("second call did not add any output")
	}

	for i, v := range p.BVertices() {
		want := uint32(7)
		if i >= nVertices {
			want = 8
		}
		if v.PathID != want {
			t.Errorf("vertex %d: got path ID %d, want %d", i, v.PathID, want)
		}
	}
	for i, q := range p.BQuads()[nQuads:] {
		if q.UpperLeft < uint32(nVertices) || q.LowerRight < uint32(nVertices) {
			t.Errorf("quad %d of second path refers to vertices of the first", i)
		}
	}
}

func TestPartitionErrors(t *testing.T) {
	eps := []Endpoint{
		{Position: vec.Vec2{X: 0, Y: 0}, ControlPoint: NoControlPoint},
		{Position: vec.Vec2{X: 10, Y: 0}, ControlPoint: NoControlPoint},
		{Position: vec.Vec2{X: 5, Y: 10}, ControlPoint: NoControlPoint},
	}
	sub := []Subpath{{First: 0, End: 3, Closed: true}}

	p := NewPartitioner()

	bad := slices.Clone(eps)
	bad[1].ControlPoint = 0
	err := p.Init(bad, nil, sub)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("control point out of range: got %v", err)
	}

	err = p.Init(eps, nil, []Subpath{{First: 0, End: 4}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("subpath out of range: got %v", err)
	}

	err = p.Init(eps, nil, sub)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range [][2]uint32{{0, 2}, {1, 0}} {
		err = p.Partition(0, r[0], r[1])
		if !errors.Is(err, ErrSubpathRange) {
			t.Errorf("range %v: got %v", r, err)
		}
	}
	if len(p.BQuads()) != 0 {
		t.Error("failed calls produced output")
	}

	// an empty range is valid
	err = p.Partition(0, 1, 1)
	if err != nil {
		t.Errorf("empty range: %v", err)
	}
	if len(p.BQuads()) != 0 {
		t.Error("empty range produced quads")
	}
}

// TestPartitionSeparateCalls checks that touching geometry from separate
// Partition calls does not share B-vertices, so that the common edge is a
// boundary edge of both paths.
func TestPartitionSeparateCalls(t *testing.T) {
	l := NewLegalizer()
	for _, y := range []float64{0, 10} {
		l.MoveTo(vec.Vec2{X: 0, Y: y})
		l.LineTo(vec.Vec2{X: 10, Y: y})
		l.LineTo(vec.Vec2{X: 10, Y: y + 10})
		l.LineTo(vec.Vec2{X: 0, Y: y + 10})
		l.ClosePath()
	}

	p := NewPartitioner()
	err := p.Init(l.Endpoints(), l.ControlPoints(), l.Subpaths())
	if err != nil {
		t.Fatal(err)
	}
	for i := range uint32(2) {
		err = p.Partition(i, i, i+1)
		if err != nil {
			t.Fatal(err)
		}
	}

	quads, vertices := p.BQuads(), p.BVertices()
	if len(quads) != 2 || len(vertices) != 8 {
		t.Fatalf("got %d quads and %d vertices, want 2 and 8", len(quads), len(vertices))
	}
	if quads[0].lower() == quads[1].upper() {
		t.Error("edge shared between separate calls")
	}

	tess := NewTessellator(AntialiasingECAA)
	tessellate(t, tess, quads, vertices, matrix.Identity)
	if n := len(tess.EdgeInstances()); n != 4 {
		t.Errorf("got %d edge instances, want 4", n)
	}
}

func partition(t *testing.T, l *Legalizer, rule FillRule) *Partitioner {
	t.Helper()
	p := NewPartitioner()
	p.FillRule = rule
	err := p.Init(l.Endpoints(), l.ControlPoints(), l.Subpaths())
	if err != nil {
		t.Fatal(err)
	}
	err = p.Partition(0, 0, uint32(len(l.Subpaths())))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// checkArea compares the total area of the quads generated by p with want.
func checkArea(t *testing.T, name string, p *Partitioner, want float64) {
	t.Helper()
	got := quadsArea(p.BQuads(), p.BVertices())
	if math.Abs(got-want) > 1e-6*max(1, want) {
		t.Errorf("%s: quads cover area %g, want %g", name, got, want)
	}
}

// quadsArea returns the total area of the given quads.
func quadsArea(quads []BQuad, vertices []BVertex) float64 {
	edge := func(from, ctrl, to uint32) float64 {
		p0, p2 := vertices[from].Position, vertices[to].Position
		c := lerp(p0, p2, 0.5)
		if ctrl != NoControlPoint {
			c = vertices[ctrl].Position
		}
		return quadArea(p0, c, p2)
	}

	total := 0.0
	for _, q := range quads {
		total += edge(q.UpperLeft, q.UpperControl, q.UpperRight)
		total += edge(q.UpperRight, NoControlPoint, q.LowerRight)
		total += edge(q.LowerRight, q.LowerControl, q.LowerLeft)
		total += edge(q.LowerLeft, NoControlPoint, q.UpperLeft)
	}
	return total
}

func fillRule(r testcases.FillRule) FillRule {
	if r == testcases.EvenOdd {
		return EvenOdd
	}
	return NonZero
}
