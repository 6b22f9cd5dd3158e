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

// Command genpdf draws the B-quads of every test case into a PDF file, one
// file per test case.  Each quad is filled in a shade of grey and outlined
// in black, so that the partition can be inspected visually.
package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/bquad"
	"seehuhn.de/go/bquad/testcases"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
)

func main() {
	outDir := flag.String("o", "testdata/quads", "output directory")
	flag.Parse()

	bquad.InitEnvLogger()

	err := os.MkdirAll(*outDir, 0755)
	if err != nil {
		log.Fatal(err)
	}

	m := bquad.NewMesh(bquad.AntialiasingNone)
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			err := build(m, tc)
			if err != nil {
				log.Fatalf("%s: %v", name, err)
			}
			pdfPath := filepath.Join(*outDir, name+".pdf")
			err = drawQuads(m.Partitioner, tc, pdfPath)
			if err != nil {
				log.Fatalf("%s: %v", name, err)
			}
		}
	}
}

func build(m *bquad.Mesh, tc testcases.TestCase) error {
	switch op := tc.Op.(type) {
	case testcases.Fill:
		rule := bquad.NonZero
		if op.Rule == testcases.EvenOdd {
			rule = bquad.EvenOdd
		}
		return m.Fill(tc.Path, rule, tc.Transform())
	case testcases.Stroke:
		s := m.Stroker
		s.Width = op.Width
		s.Cap = op.Cap
		s.Join = op.Join
		s.MiterLimit = op.MiterLimit
		s.Dash = op.Dash
		s.DashPhase = op.DashPhase
		return m.Stroke(tc.Path, tc.Transform())
	default:
		return fmt.Errorf("unknown operation %T", tc.Op)
	}
}

func drawQuads(part *bquad.Partitioner, tc testcases.TestCase, pdfPath string) error {
	// 1 point = 1 device pixel
	paper := &pdf.Rectangle{
		URx: float64(tc.Width),
		URy: float64(tc.Height),
	}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left; test cases assume top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(tc.Height)})
	page.Transform(tc.Transform())

	vv := part.BVertices()
	pos := func(i uint32) vec.Vec2 { return vv[i].Position }

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(0.1)
	for i, q := range part.BQuads() {
		page.SetFillColor(color.DeviceGray(0.5 + 0.4*float64(i%5)/4))

		a := pos(q.UpperLeft)
		page.MoveTo(a.X, a.Y)
		curveTo(page, a, q.UpperControl, pos(q.UpperRight), pos)
		b := pos(q.LowerRight)
		page.LineTo(b.X, b.Y)
		curveTo(page, b, q.LowerControl, pos(q.LowerLeft), pos)
		page.ClosePath()
		page.FillAndStroke()
	}

	return page.Close()
}

// curveTo appends the edge from p0 to p2 to the current path.  Quadratic
// edges are converted to cubic Bézier curves, since PDF has no quadratic
// curves.
func curveTo(page *document.Page, p0 vec.Vec2, ctrl uint32, p2 vec.Vec2, pos func(uint32) vec.Vec2) {
	if ctrl == bquad.NoControlPoint {
		page.LineTo(p2.X, p2.Y)
		return
	}
	c := pos(ctrl)
	c1 := p0.Add(c.Sub(p0).Mul(2.0 / 3))
	c2 := p2.Add(c.Sub(p2).Mul(2.0 / 3))
	page.CurveTo(c1.X, c1.Y, c2.X, c2.Y, p2.X, p2.Y)
}
