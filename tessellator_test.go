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
	"slices"
	"testing"

	"seehuhn.de/go/bquad/testcases"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// squareQuads returns the single B-quad of the square [0,10]x[0,10].
func squareQuads() ([]BQuad, []BVertex) {
	vertices := []BVertex{
		{Position: vec.Vec2{X: 0, Y: 0}},
		{Position: vec.Vec2{X: 10, Y: 0}},
		{Position: vec.Vec2{X: 0, Y: 10}},
		{Position: vec.Vec2{X: 10, Y: 10}},
	}
	quads := []BQuad{{
		UpperLeft:    0,
		UpperControl: NoControlPoint,
		UpperRight:   1,
		LowerLeft:    2,
		LowerControl: NoControlPoint,
		LowerRight:   3,
	}}
	return quads, vertices
}

// archQuads returns a B-quad with a curved upper edge.
func archQuads() ([]BQuad, []BVertex) {
	vertices := []BVertex{
		{Position: vec.Vec2{X: 0, Y: 40}},
		{Position: vec.Vec2{X: 20, Y: -40}, Kind: BVertexControlPoint},
		{Position: vec.Vec2{X: 40, Y: 40}},
	}
	quads := []BQuad{{
		UpperLeft:    0,
		UpperControl: 1,
		UpperRight:   2,
		LowerLeft:    0,
		LowerControl: NoControlPoint,
		LowerRight:   2,
	}}
	return quads, vertices
}

func TestTessellateSquare(t *testing.T) {
	quads, vertices := squareQuads()
	for _, mode := range []AntialiasingMode{AntialiasingNone, AntialiasingMSAA, AntialiasingECAA} {
		tess := NewTessellator(mode)
		levels := tessellate(t, tess, quads, vertices, matrix.Identity)

		want := QuadTessLevels{Outer: [4]float32{1, 1, 1, 1}, Inner: [2]float32{1, 1}}
		if len(levels) != 1 || levels[0] != want {
			t.Errorf("%s: got levels %v, want [%v]", mode, levels, want)
		}
		if n := len(tess.Vertices()); n != 4 {
			t.Errorf("%s: got %d vertices, want 4", mode, n)
		}

		if mode == AntialiasingECAA {
			if n := len(tess.MSAAIndices()); n != 0 {
				t.Errorf("%s: got %d indices, want 0", mode, n)
			}
			// the vertical sides get no edge instances
			var sides []Side
			for _, e := range tess.EdgeInstances() {
				sides = append(sides, e.Side)
			}
			if !slices.Equal(sides, []Side{SideUpper, SideLower}) {
				t.Errorf("%s: got edge sides %v, want [upper lower]", mode, sides)
			}
		} else {
			if n := len(tess.MSAAIndices()); n != 6 {
				t.Errorf("%s: got %d indices, want 6", mode, n)
			}
			if n := len(tess.EdgeInstances()); n != 0 {
				t.Errorf("%s: got %d edges, want 0", mode, n)
			}
		}
	}
}

// Tessellation levels grow with the device-space size of a curve.
func TestTessellateLevels(t *testing.T) {
	quads, vertices := archQuads()
	tess := NewTessellator(AntialiasingMSAA)

	small := tessellate(t, tess, quads, vertices, matrix.Identity)[0]
	if small.Outer[1] <= 1 {
		t.Errorf("curved edge got level %g", small.Outer[1])
	}
	if small.Outer[3] != 1 || small.Outer[0] != 1 || small.Outer[2] != 1 {
		t.Errorf("straight edges got levels %v", small.Outer)
	}
	if small.Inner[0] != small.Outer[1] {
		t.Errorf("inner level %g, want %g", small.Inner[0], small.Outer[1])
	}

	large := tessellate(t, tess, quads, vertices, matrix.Scale(16, 16))[0]
	if !(large.Outer[1] > small.Outer[1]) {
		t.Errorf("scaled edge: level %g, not more than %g", large.Outer[1], small.Outer[1])
	}

	tess.MaxLevel = 3
	capped := tessellate(t, tess, quads, vertices, matrix.Scale(16, 16))[0]
	if capped.Outer[1] != 3 {
		t.Errorf("capped level: got %g, want 3", capped.Outer[1])
	}

	// level n gives n+1 vertices on the curve and 2 on the chord
	n := int(capped.Outer[1])
	if got := len(tess.Vertices()); got != n+1+2 {
		t.Errorf("got %d vertices, want %d", got, n+1+2)
	}
	if got := len(tess.MSAAIndices()); got != 3*(n+1) {
		t.Errorf("got %d indices, want %d", got, 3*(n+1))
	}
}

// The tessellated curve points lie on the path-space curve.
func TestTessellateVertexPositions(t *testing.T) {
	quads, vertices := archQuads()
	tess := NewTessellator(AntialiasingNone)
	tess.MaxLevel = 4
	tessellate(t, tess, quads, vertices, matrix.Scale(10, 10))

	vv := tess.Vertices()
	want := []vec.Vec2{{X: 0, Y: 40}, {X: 10, Y: 10}, {X: 20, Y: 0}, {X: 30, Y: 10}, {X: 40, Y: 40}}
	for i, w := range want {
		v := vv[i]
		if v.X != float32(w.X) || v.Y != float32(w.Y) {
			t.Errorf("vertex %d: got (%g, %g), want %v", i, v.X, v.Y, w)
		}
		if v.Side != SideUpper {
			t.Errorf("vertex %d: got side %s", i, v.Side)
		}
	}
	for _, v := range vv[len(want):] {
		if v.Side != SideLower {
			t.Errorf("lower chain vertex has side %s", v.Side)
		}
	}
}

func TestTessellateOrder(t *testing.T) {
	quads, vertices := squareQuads()
	tess := NewTessellator(AntialiasingMSAA)

	_, err := tess.TessLevels()
	if !errors.Is(err, ErrNoDomain) {
		t.Errorf("levels before init: got %v", err)
	}

	err = tess.Init(quads, vertices)
	if err != nil {
		t.Fatal(err)
	}
	err = tess.ComputeDomain()
	if !errors.Is(err, ErrNoHull) {
		t.Errorf("domain before hull: got %v", err)
	}
	_, err = tess.TessLevels()
	if !errors.Is(err, ErrNoDomain) {
		t.Errorf("levels before domain: got %v", err)
	}

	tess.ComputeHull(matrix.Identity)
	err = tess.ComputeDomain()
	if err != nil {
		t.Fatal(err)
	}

	// a new transformation invalidates the domain
	tess.ComputeHull(matrix.Scale(2, 2))
	_, err = tess.TessLevels()
	if !errors.Is(err, ErrNoDomain) {
		t.Errorf("levels after new hull: got %v", err)
	}
}

func TestTessellateInvalidInput(t *testing.T) {
	quads, vertices := squareQuads()
	tess := NewTessellator(AntialiasingMSAA)

	bad := slices.Clone(quads)
	bad[0].LowerRight = 4
	err := tess.Init(bad, vertices)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("vertex out of range: got %v", err)
	}

	bad = slices.Clone(quads)
	bad[0].UpperControl = 17
	err = tess.Init(bad, vertices)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("control point out of range: got %v", err)
	}
}

func TestTessellateHull(t *testing.T) {
	quads, vertices := archQuads()
	tess := NewTessellator(AntialiasingMSAA)
	err := tess.Init(quads, vertices)
	if err != nil {
		t.Fatal(err)
	}
	tess.ComputeHull(matrix.Identity.Translate(100, 0))

	h := tess.Hulls()[0]
	if h.N != 3 {
		t.Fatalf("got %d hull points, want 3", h.N)
	}
	want := rect.Rect{LLx: 100, LLy: -40, URx: 140, URy: 40}
	if h.Bounds != want {
		t.Errorf("bounds: got %v, want %v", h.Bounds, want)
	}
	for i := range h.N {
		a, b, c := h.Points[i], h.Points[(i+1)%h.N], h.Points[(i+2)%h.N]
		if cross(a, b, c) <= 0 {
			t.Errorf("hull is not in positive order at point %d", i)
		}
	}
}

func TestTessellateCulling(t *testing.T) {
	quads, vertices := archQuads()
	tess := NewTessellator(AntialiasingMSAA)
	tess.Clip = rect.Rect{LLx: 0, LLy: 0, URx: 64, URy: 64}

	visible := tessellate(t, tess, quads, vertices, matrix.Identity)
	if tess.Domains()[0].Culled {
		t.Error("visible quad was culled")
	}
	if len(tess.MSAAIndices()) == 0 {
		t.Error("visible quad has no triangles")
	}
	want := visible[0]

	levels := tessellate(t, tess, quads, vertices, matrix.Identity.Translate(200, 0))
	if !tess.Domains()[0].Culled {
		t.Error("quad outside the clip rectangle was not culled")
	}
	if levels[0] != want {
		t.Errorf("culled quad got levels %v, want %v", levels[0], want)
	}
	if n := len(tess.MSAAIndices()); n != 0 {
		t.Errorf("culled quad has %d indices", n)
	}

	ecaa := NewTessellator(AntialiasingECAA)
	ecaa.Clip = tess.Clip
	tessellate(t, ecaa, quads, vertices, matrix.Identity.Translate(200, 0))
	if n := len(ecaa.EdgeInstances()); n != 0 {
		t.Errorf("culled quad has %d edge instances", n)
	}
}

// TestTessellateClippedSharedLevels checks that a curved edge between a
// culled quad and a visible quad gets the same level on both sides.
func TestTessellateClippedSharedLevels(t *testing.T) {
	l := NewLegalizer()
	l.MoveTo(vec.Vec2{X: -10, Y: -300})
	l.LineTo(vec.Vec2{X: 110, Y: -300})
	l.LineTo(vec.Vec2{X: 110, Y: 50})
	l.LineTo(vec.Vec2{X: -10, Y: 50})
	l.ClosePath()
	// a lens above the clip rectangle, bulging down towards it
	l.MoveTo(vec.Vec2{X: 0, Y: -200})
	l.LineTo(vec.Vec2{X: 100, Y: -200})
	l.QuadraticCurveTo(vec.Vec2{X: 50, Y: -50}, vec.Vec2{X: 0, Y: -200})
	l.ClosePath()
	p := partition(t, l, NonZero)

	for _, mode := range []AntialiasingMode{AntialiasingMSAA, AntialiasingECAA} {
		tess := NewTessellator(mode)
		tess.Clip = rect.Rect{LLx: 0, LLy: 0, URx: 64, URy: 64}
		levels := tessellate(t, tess, p.BQuads(), p.BVertices(), matrix.Identity)

		type use struct {
			level  float32
			culled bool
		}
		uses := make(map[[3]uint32][]use)
		quads := p.BQuads()
		for i, lv := range levels {
			culled := tess.Domains()[i].Culled
			uses[quads[i].upper()] = append(uses[quads[i].upper()], use{lv.Outer[1], culled})
			uses[quads[i].lower()] = append(uses[quads[i].lower()], use{lv.Outer[3], culled})
		}

		mixed := 0
		for e, uu := range uses {
			if len(uu) != 2 {
				continue
			}
			if uu[0].level != uu[1].level {
				t.Errorf("%s: edge %v has levels %g and %g", mode, e, uu[0].level, uu[1].level)
			}
			if uu[0].culled != uu[1].culled && e[1] != NoControlPoint {
				mixed++
				if uu[0].level <= 1 {
					t.Errorf("%s: curved edge %v has level %g", mode, e, uu[0].level)
				}
			}
		}
		if mixed == 0 {
			t.Errorf("%s: no curved edge between a culled and a visible quad", mode)
		}
	}
}

// In ECAA mode, every quad edge which is not shared with another quad
// becomes exactly one edge instance, and shared edges get none.
func TestTessellateBoundaryEdges(t *testing.T) {
	m := NewMesh(AntialiasingECAA)
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			op, ok := tc.Op.(testcases.Fill)
			if !ok {
				continue
			}
			name := category + "/" + tc.Name
			err := m.Fill(tc.Path, fillRule(op.Rule), tc.Transform())
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}

			quads := m.Partitioner.BQuads()
			vv := m.Partitioner.BVertices()
			count := make(map[[3]uint32]int)
			for i := range quads {
				count[quads[i].upper()]++
				count[quads[i].lower()]++
			}

			want := 0
			for e, n := range count {
				if n == 1 && vv[e[0]].Position != vv[e[2]].Position {
					want++
				}
			}

			edges := m.Tessellator.EdgeInstances()
			if len(edges) != want {
				t.Errorf("%s: got %d edges, want %d", name, len(edges), want)
			}
			seen := make(map[[2]uint32]bool)
			for _, e := range edges {
				key := [2]uint32{e.Quad, uint32(e.Side)}
				if seen[key] {
					t.Errorf("%s: duplicate edge %v", name, key)
				}
				seen[key] = true
				if int(e.Quad) >= len(quads) {
					t.Errorf("%s: edge refers to quad %d", name, e.Quad)
				}
			}
		}
	}
}

// Quads sharing an edge tessellate it with the same level.
func TestTessellateSharedLevels(t *testing.T) {
	m := NewMesh(AntialiasingMSAA)
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			op, ok := tc.Op.(testcases.Fill)
			if !ok {
				continue
			}
			name := category + "/" + tc.Name
			err := m.Fill(tc.Path, fillRule(op.Rule), tc.Transform())
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}

			levelOf := make(map[[3]uint32]float32)
			check := func(e [3]uint32, level float32) {
				if l, ok := levelOf[e]; ok && l != level {
					t.Errorf("%s: edge %v has levels %g and %g", name, e, l, level)
				}
				levelOf[e] = level
			}
			quads := m.Partitioner.BQuads()
			for i, lv := range m.Levels() {
				check(quads[i].upper(), lv.Outer[1])
				check(quads[i].lower(), lv.Outer[3])
			}
		}
	}
}

func tessellate(t *testing.T, tess *Tessellator, quads []BQuad, vertices []BVertex, m matrix.Matrix) []QuadTessLevels {
	t.Helper()
	err := tess.Init(quads, vertices)
	if err != nil {
		t.Fatal(err)
	}
	tess.ComputeHull(m)
	err = tess.ComputeDomain()
	if err != nil {
		t.Fatal(err)
	}
	levels, err := tess.TessLevels()
	if err != nil {
		t.Fatal(err)
	}
	return levels
}
