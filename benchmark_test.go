package bquad

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/bquad/testcases"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// BenchmarkMeshAll measures steady-state performance by reusing a single
// Mesh across all test cases.
func BenchmarkMeshAll(b *testing.B) {
	var cases []testcases.TestCase
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		cases = append(cases, testcases.All[category]...)
	}

	for _, mode := range []AntialiasingMode{AntialiasingMSAA, AntialiasingECAA} {
		b.Run(mode.String(), func(b *testing.B) {
			m := NewMesh(mode)
			b.ReportAllocs()
			for b.Loop() {
				for _, tc := range cases {
					switch op := tc.Op.(type) {
					case testcases.Fill:
						_ = m.Fill(tc.Path, fillRule(op.Rule), tc.Transform())
					case testcases.Stroke:
						s := m.Stroker
						s.Width = op.Width
						s.Cap = op.Cap
						s.Join = op.Join
						s.MiterLimit = op.MiterLimit
						s.Dash = op.Dash
						s.DashPhase = op.DashPhase
						_ = m.Stroke(tc.Path, tc.Transform())
					}
				}
			}
		})
	}
}

// BenchmarkPartitionO benchmarks the partitioner on an "O" shape made of
// two circles.
func BenchmarkPartitionO(b *testing.B) {
	for _, segments := range []int{4, 32, 256} {
		b.Run(fmt.Sprintf("%d", segments), func(b *testing.B) {
			l := NewLegalizer()
			l.AppendPath(makeOPath(100, 100, 90, 60, segments))
			p := NewPartitioner()

			b.ReportAllocs()
			for b.Loop() {
				err := p.Init(l.Endpoints(), l.ControlPoints(), l.Subpaths())
				if err != nil {
					b.Fatal(err)
				}
				err = p.Partition(0, 0, uint32(len(l.Subpaths())))
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkTessellate benchmarks the tessellator for increasing zoom
// levels.
func BenchmarkTessellate(b *testing.B) {
	l := NewLegalizer()
	l.AppendPath(makeOPath(100, 100, 90, 60, 32))
	p := NewPartitioner()
	err := p.Init(l.Endpoints(), l.ControlPoints(), l.Subpaths())
	if err != nil {
		b.Fatal(err)
	}
	err = p.Partition(0, 0, uint32(len(l.Subpaths())))
	if err != nil {
		b.Fatal(err)
	}

	for _, scale := range []float64{1, 10, 100} {
		b.Run(fmt.Sprintf("x%g", scale), func(b *testing.B) {
			tess := NewTessellator(AntialiasingMSAA)
			m := matrix.Scale(scale, scale)

			b.ReportAllocs()
			for b.Loop() {
				err := tess.Init(p.BQuads(), p.BVertices())
				if err != nil {
					b.Fatal(err)
				}
				tess.ComputeHull(m)
				err = tess.ComputeDomain()
				if err != nil {
					b.Fatal(err)
				}
				_, err = tess.TessLevels()
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// makeOPath creates an "O" shape: an outer circle and a reversed inner
// circle, each made of n quadratic Bézier curves.
func makeOPath(cx, cy, outerR, innerR float64, n int) *path.Data {
	p := &path.Data{}
	addCircle(p, cx, cy, outerR, n, false)
	addCircle(p, cx, cy, innerR, n, true)
	return p
}

func addCircle(p *path.Data, cx, cy, r float64, n int, reverse bool) {
	step := 2 * math.Pi / float64(n)
	if reverse {
		step = -step
	}
	// control points lie on the circle of radius r/cos(step/2)
	rc := r / math.Cos(step/2)
	at := func(angle, radius float64) vec.Vec2 {
		s, c := math.Sincos(angle)
		return vec.Vec2{X: cx + radius*c, Y: cy + radius*s}
	}
	p.MoveTo(at(0, r))
	for i := range n {
		a := float64(i) * step
		p.QuadTo(at(a+step/2, rc), at(a+step, r))
	}
	p.Close()
}
