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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Mesh runs all stages for one path at a time, reusing the buffers of the
// stages between calls.
type Mesh struct {
	Legalizer   *Legalizer
	Partitioner *Partitioner
	Tessellator *Tessellator
	Stroker     *Stroker

	// Tolerance, if positive, is the accuracy of curve approximations in
	// device pixels.  It overrides the tolerance of the legalizer and the
	// flatness of the stroker, which are given in path units.
	Tolerance float64

	levels []QuadTessLevels
	points []vec.Vec2
}

// NewMesh returns a Mesh whose tessellator uses the given antialiasing
// mode.
func NewMesh(mode AntialiasingMode) *Mesh {
	return &Mesh{
		Legalizer:   NewLegalizer(),
		Partitioner: NewPartitioner(),
		Tessellator: NewTessellator(mode),
		Stroker:     NewStroker(),
	}
}

// Fill tessellates the interior of p, using the fill rule rule and the
// path to device transformation ctm.
func (m *Mesh) Fill(p *path.Data, rule FillRule, ctm matrix.Matrix) error {
	m.Legalizer.Reset()
	if m.Tolerance > 0 {
		m.Legalizer.Tolerance = m.Tolerance / ctmScale(ctm)
	}
	m.Legalizer.AppendPath(p)
	return m.run(rule, ctm)
}

// Stroke tessellates the outline of p, stroked with the parameters of
// m.Stroker.
func (m *Mesh) Stroke(p *path.Data, ctm matrix.Matrix) error {
	m.Legalizer.Reset()
	if m.Tolerance > 0 {
		m.Stroker.Flatness = m.Tolerance / ctmScale(ctm)
	}
	m.Stroker.Stroke(p, m.Legalizer)
	return m.run(NonZero, ctm)
}

func (m *Mesh) run(rule FillRule, ctm matrix.Matrix) error {
	l := m.Legalizer
	part := m.Partitioner
	part.FillRule = rule
	err := part.Init(l.Endpoints(), l.ControlPoints(), l.Subpaths())
	if err != nil {
		return err
	}
	err = part.Partition(0, 0, uint32(len(l.Subpaths())))
	if err != nil {
		return err
	}

	t := m.Tessellator
	err = t.Init(part.BQuads(), part.BVertices())
	if err != nil {
		return err
	}
	t.ComputeHull(ctm)
	err = t.ComputeDomain()
	if err != nil {
		return err
	}
	m.levels, err = t.TessLevels()
	return err
}

// Levels returns the tessellation levels computed by the last call to Fill
// or Stroke.
func (m *Mesh) Levels() []QuadTessLevels {
	return m.levels
}

// Points returns the positions of the tessellated vertices, in path
// coordinates.
func (m *Mesh) Points() []vec.Vec2 {
	vv := m.Tessellator.Vertices()
	m.points = m.points[:0]
	for _, v := range vv {
		m.points = append(m.points, vec.Vec2{X: float64(v.X), Y: float64(v.Y)})
	}
	return m.points
}

// ctmScale returns the largest factor by which m stretches the coordinate
// axes.
func ctmScale(m matrix.Matrix) float64 {
	s := max(math.Hypot(m[0], m[1]), math.Hypot(m[2], m[3]))
	if !(s > 0) {
		return 1
	}
	return s
}
