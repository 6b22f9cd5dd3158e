// Command export partitions and tessellates all test cases and writes
// summary statistics in JSON format.  The output is used to spot changes
// in the generated meshes between versions.
//
// Run from the bquad module root directory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/bquad"
	"seehuhn.de/go/bquad/testcases"
	"seehuhn.de/go/geom/vec"
)

func main() {
	out := flag.String("o", "testdata/meshes.json", "output file")
	modeName := flag.String("aa", "msaa", "antialiasing mode (none, msaa or ecaa)")
	flag.Parse()

	bquad.InitEnvLogger()

	mode, err := bquad.ParseAntialiasingMode(*modeName)
	if err != nil {
		log.Fatal(err)
	}

	var res struct {
		Mode      string      `json:"mode"`
		TestCases []meshStats `json:"testcases"`
	}
	res.Mode = mode.String()

	m := bquad.NewMesh(mode)
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			err := build(m, tc)
			if err != nil {
				log.Fatalf("%s: %v", name, err)
			}
			res.TestCases = append(res.TestCases, collect(name, m))
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	err = enc.Encode(res)
	if err != nil {
		f.Close()
		log.Fatal(err)
	}
	err = f.Close()
	if err != nil {
		log.Fatal(err)
	}
}

type meshStats struct {
	Name          string  `json:"name"`
	Endpoints     int     `json:"endpoints"`
	ControlPoints int     `json:"control_points"`
	Subpaths      int     `json:"subpaths"`
	BQuads        int     `json:"bquads"`
	BVertices     int     `json:"bvertices"`
	Vertices      int     `json:"vertices"`
	Triangles     int     `json:"triangles,omitempty"`
	Edges         int     `json:"edges,omitempty"`
	MaxLevel      float32 `json:"max_level"`
	Area          float64 `json:"area"`
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

func collect(name string, m *bquad.Mesh) meshStats {
	l := m.Legalizer
	t := m.Tessellator
	idx := t.MSAAIndices()
	stats := meshStats{
		Name:          name,
		Endpoints:     len(l.Endpoints()),
		ControlPoints: len(l.ControlPoints()),
		Subpaths:      len(l.Subpaths()),
		BQuads:        len(m.Partitioner.BQuads()),
		BVertices:     len(m.Partitioner.BVertices()),
		Vertices:      len(t.Vertices()),
		Triangles:     len(idx) / 3,
		Edges:         len(t.EdgeInstances()),
	}
	for _, lv := range m.Levels() {
		stats.MaxLevel = max(stats.MaxLevel, lv.Inner[0])
	}

	pts := m.Points()
	for i := 0; i+2 < len(idx); i += 3 {
		stats.Area += triangleArea(pts[idx[i]], pts[idx[i+1]], pts[idx[i+2]])
	}
	return stats
}

func triangleArea(a, b, c vec.Vec2) float64 {
	u := b.Sub(a)
	v := c.Sub(a)
	area := (u.X*v.Y - u.Y*v.X) / 2
	if area < 0 {
		area = -area
	}
	return area
}
