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

// Package bquad converts 2D vector paths into B-quads, convex cells bounded
// above and below by a single straight or quadratic edge, together with
// tessellation levels and antialiasing edge data for GPU rendering.
//
// The work is split into three stages which are used in this order:
//
//   - A [Legalizer] turns path construction calls into flat arrays of
//     endpoints, control points and subpaths.  Every curve is a quadratic
//     Bézier which is monotonic in x.
//   - A [Partitioner] sweeps the legalized subpaths of one path from left
//     to right and decomposes the filled area into B-quads.
//   - A [Tessellator] computes hulls and tessellation levels for the
//     B-quads under a device transformation and emits the vertex buffer,
//     the multisample index buffer and the antialiasing edge list.
//
// All three are single-owner builder objects.  Slices returned by their
// accessors are valid until the next mutating call on the same object.
//
// Coordinates use a y-down convention: the "upper" edge of a B-quad is the
// one with the smaller y coordinate.
package bquad

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// NoControlPoint marks a straight edge in place of a control point index.
const NoControlPoint = ^uint32(0)

// Endpoint is an on-curve point of a legalized path.
//
// If ControlPoint is NoControlPoint, the segment ending at this endpoint is
// a straight line.  Otherwise the segment is a quadratic Bézier curve
// through the given control point.  In a closed subpath the segment ending
// at the first endpoint starts at the last endpoint.
type Endpoint struct {
	Position     vec.Vec2
	ControlPoint uint32 // index into the control point array, or NoControlPoint
	Subpath      uint32 // index of the owning subpath
}

// Subpath is a contiguous range of endpoints.
type Subpath struct {
	First  uint32 // index of the first endpoint
	End    uint32 // one past the index of the last endpoint
	Closed bool
}

// Len returns the number of endpoints in the subpath.
func (s Subpath) Len() int {
	return int(s.End) - int(s.First)
}

// BVertexKind distinguishes on-curve and off-curve B-vertices.
type BVertexKind uint8

const (
	BVertexEndpoint BVertexKind = iota
	BVertexControlPoint
)

// BVertex is an entry of the vertex buffer shared by all B-quads.
type BVertex struct {
	Position vec.Vec2
	PathID   uint32
	Kind     BVertexKind
}

// BQuad is a cell of the partitioned path.  All fields are indices into the
// B-vertex buffer.  The upper and lower edges run from left to right; the
// control point indices are NoControlPoint for straight edges.
//
// If UpperLeft == UpperRight or LowerLeft == LowerRight, the quad degenerates
// to a triangle.
type BQuad struct {
	UpperLeft    uint32
	UpperControl uint32
	UpperRight   uint32
	LowerLeft    uint32
	LowerControl uint32
	LowerRight   uint32
}

// upper returns the vertex triple of the upper edge.
func (q *BQuad) upper() [3]uint32 {
	return [3]uint32{q.UpperLeft, q.UpperControl, q.UpperRight}
}

// lower returns the vertex triple of the lower edge.
func (q *BQuad) lower() [3]uint32 {
	return [3]uint32{q.LowerLeft, q.LowerControl, q.LowerRight}
}

// Side identifies the upper or lower edge of a B-quad.
type Side uint8

const (
	SideUpper Side = iota
	SideLower
)

func (s Side) String() string {
	switch s {
	case SideUpper:
		return "upper"
	case SideLower:
		return "lower"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// Vertex is an entry of the tessellated vertex buffer, in the layout
// consumed by the GPU.
type Vertex struct {
	X, Y   float32
	PathID uint32
	Side   Side
}

// QuadTessLevels holds the tessellation factors of one B-quad.
// The outer levels are ordered left, upper, right, lower.  The inner levels
// are horizontal and vertical.
type QuadTessLevels struct {
	Outer [4]float32
	Inner [2]float32
}

// EdgeInstance is a B-quad boundary edge which receives analytic
// antialiasing.  From and To index the end vertices of the edge's chain in
// the tessellated vertex buffer; the chain itself is the contiguous run of
// vertices between them.  Edges are oriented so that every B-quad is
// traversed clockwise in y-down space.
//
// Only upper and lower edges become edge instances.  The vertical left and
// right sides of B-quads, including vertical sides of the path itself, never
// receive analytic antialiasing.
type EdgeInstance struct {
	From, To uint32
	Quad     uint32
	Side     Side
}

// QuadHull is the convex hull of a B-quad in device space.
type QuadHull struct {
	Points [6]vec.Vec2 // hull vertices in mathematically positive order, first N are valid
	N      int
	Bounds rect.Rect
}

// QuadDomain holds the device-space edges of a B-quad, each given as left
// endpoint, control point and right endpoint.  Straight edges use the
// midpoint as control point.
type QuadDomain struct {
	Upper, Lower [3]vec.Vec2
	Culled       bool // the hull lies outside the tessellator's clip rectangle
}

// AntialiasingMode selects how the tessellator prepares antialiasing data.
type AntialiasingMode uint8

const (
	// AntialiasingNone emits triangles only.
	AntialiasingNone AntialiasingMode = iota

	// AntialiasingMSAA emits triangles for multisample rendering.
	AntialiasingMSAA

	// AntialiasingECAA emits boundary edges for analytic edge coverage.
	AntialiasingECAA
)

func (m AntialiasingMode) String() string {
	switch m {
	case AntialiasingNone:
		return "none"
	case AntialiasingMSAA:
		return "msaa"
	case AntialiasingECAA:
		return "ecaa"
	default:
		return fmt.Sprintf("AntialiasingMode(%d)", uint8(m))
	}
}

// ParseAntialiasingMode converts the output of AntialiasingMode.String back
// into an AntialiasingMode.
func ParseAntialiasingMode(s string) (AntialiasingMode, error) {
	for m := AntialiasingNone; m <= AntialiasingECAA; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown antialiasing mode %q", s)
}

// FillRule selects which regions of a path are inside.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) inside(winding int) bool {
	if r == EvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

var (
	// ErrInvalidInput is returned when an index in the input of a stage
	// points outside of the array it refers to.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSubpathRange is returned by Partitioner.Partition for an invalid
	// subpath range.
	ErrSubpathRange = errors.New("subpath range out of bounds")

	// ErrNoHull is returned by Tessellator.ComputeDomain if ComputeHull
	// has not been called since the last Init.
	ErrNoHull = errors.New("hull not computed")

	// ErrNoDomain is returned by Tessellator.TessLevels if ComputeDomain
	// has not been called since the last ComputeHull.
	ErrNoDomain = errors.New("domain not computed")
)
