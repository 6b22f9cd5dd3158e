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

// Command genpng renders the tessellated meshes of all test cases to PNG
// images.  Pixel values give the coverage of the triangle mesh, so the
// images can be compared against a conventional rendering of the path.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/bquad"
	"seehuhn.de/go/bquad/raster"
	"seehuhn.de/go/bquad/testcases"
	"seehuhn.de/go/geom/rect"
)

func main() {
	outDir := flag.String("o", "testdata/meshes", "output directory")
	flatness := flag.Float64("flatness", 0.25, "tessellation tolerance in device pixels")
	flag.Parse()

	bquad.InitEnvLogger()

	err := os.MkdirAll(*outDir, 0755)
	if err != nil {
		log.Fatal(err)
	}

	m := bquad.NewMesh(bquad.AntialiasingMSAA)
	m.Tessellator.Flatness = *flatness
	r := raster.NewRasteriser(rect.Rect{})
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			err := build(m, tc)
			if err != nil {
				log.Fatalf("%s: %v", name, err)
			}

			clip := rect.Rect{URx: float64(tc.Width), URy: float64(tc.Height)}
			r.Reset(clip)
			r.CTM = tc.Transform()
			img := image.NewAlpha(image.Rect(0, 0, tc.Width, tc.Height))
			r.FillTriangles(m.Points(), m.Tessellator.MSAAIndices(), raster.AlphaSink(img))

			err = writePNG(filepath.Join(*outDir, name+".png"), img)
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

func writePNG(fname string, img image.Image) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
