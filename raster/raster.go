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

// Package raster computes exact-area pixel coverage for paths and triangle
// meshes.  It is used to check tessellated B-quads against the paths they
// were generated from, and to render previews.
package raster

import (
	"cmp"
	"image"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// EmitFunc receives the coverage of one pixel row, starting at column
// xMin.  The slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates, with y0 != y1.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (e *edge) top() float64    { return min(e.y0, e.y1) }
func (e *edge) bottom() float64 { return max(e.y0, e.y1) }

func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// Rasteriser converts paths and triangles to pixel coverage values using
// the nonzero winding rule.  Buffers are reused between calls.
type Rasteriser struct {
	// CTM maps path coordinates to device coordinates.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates.  The coordinates
	// should be integers.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	edges     []edge
	active    []int
	cover     []float32
	area      []float32
	crossings []float64

	devBox rect.Rect // bounding box of all edges
}

// NewRasteriser returns a Rasteriser with the identity transformation.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters, keeping buffer capacity.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.edges = r.edges[:0]
}

// FillPath computes the coverage of p.  Open subpaths are closed.
func (r *Rasteriser) FillPath(p *path.Data, emit EmitFunc) {
	r.edges = r.edges[:0]

	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			r.addEdge(cur, start)
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.addQuad(cur, p.Coords[k], p.Coords[k+1])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.addCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			r.addEdge(cur, start)
			cur = start
		}
	}
	r.addEdge(cur, start)

	r.sweep(emit)
}

// FillTriangles computes the coverage of the union of the given triangles.
// Each consecutive triple of indices selects one triangle from points.
// Overlapping triangles are counted once.
func (r *Rasteriser) FillTriangles(points []vec.Vec2, indices []uint32, emit EmitFunc) {
	r.edges = r.edges[:0]
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := points[indices[i]], points[indices[i+1]], points[indices[i+2]]
		a, b, c = r.device(a), r.device(b), r.device(c)
		orient := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
		switch {
		case orient > 0:
			r.addDeviceEdge(a, b)
			r.addDeviceEdge(b, c)
			r.addDeviceEdge(c, a)
		case orient < 0:
			r.addDeviceEdge(a, c)
			r.addDeviceEdge(c, b)
			r.addDeviceEdge(b, a)
		}
	}
	r.sweep(emit)
}

func (r *Rasteriser) device(p vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// scale returns the length of the image of v under the linear part of CTM.
func (r *Rasteriser) scale(v vec.Vec2) float64 {
	m := r.CTM
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}.Length()
}

func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	r.addDeviceEdge(r.device(a), r.device(b))
}

func (r *Rasteriser) addDeviceEdge(a, b vec.Vec2) {
	dy := b.Y - a.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	if len(r.edges) == 0 {
		r.devBox = rect.Rect{LLx: a.X, LLy: a.Y, URx: a.X, URy: a.Y}
	}
	r.devBox.LLx = min(r.devBox.LLx, a.X, b.X)
	r.devBox.LLy = min(r.devBox.LLy, a.Y, b.Y)
	r.devBox.URx = max(r.devBox.URx, a.X, b.X)
	r.devBox.URy = max(r.devBox.URy, a.Y, b.Y)
	r.edges = append(r.edges, edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / dy,
	})
}

func (r *Rasteriser) flatness() float64 {
	if r.Flatness > 0 {
		return r.Flatness
	}
	return defaultFlatness
}

// addQuad flattens a quadratic Bézier curve.
func (r *Rasteriser) addQuad(p0, p1, p2 vec.Vec2) {
	dev := r.scale(p0.Sub(p1.Mul(2)).Add(p2)) / 4
	n := 1
	if dev > r.flatness() {
		n = int(math.Ceil(math.Sqrt(dev / r.flatness())))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		next := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, next)
		prev = next
	}
}

// addCubic flattens a cubic Bézier curve, using Wang's formula for the
// number of pieces.
func (r *Rasteriser) addCubic(p0, p1, p2, p3 vec.Vec2) {
	dd := max(r.scale(p0.Sub(p1.Mul(2)).Add(p2)), r.scale(p1.Sub(p2.Mul(2)).Add(p3)))
	n := 1
	if x := math.Sqrt(0.75 * dd / r.flatness()); x > 1 {
		n = int(math.Ceil(x))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		next := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, next)
		prev = next
	}
}

// sweep accumulates the coverage of all edges row by row, using an active
// edge list.
//
// For every pixel, cover holds the signed height of the edge pieces inside
// the pixel and area the part of that height which lies to the right of
// the edge.  Summing cover from the left and adding area gives the signed
// area of the path inside the pixel.
func (r *Rasteriser) sweep(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.devBox.LLx)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.devBox.URx))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.devBox.LLy)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.devBox.URy))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.top(), b.top())
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yTop, yBot := float64(y), float64(y+1)
		for next < len(r.edges) && r.edges[next].top() < yBot {
			r.active = append(r.active, next)
			next++
		}
		keep := r.active[:0]
		for _, i := range r.active {
			if r.edges[i].bottom() > yTop {
				keep = append(keep, i)
			}
		}
		r.active = keep
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, i := range r.active {
			r.accumulate(&r.edges[i], yTop, yBot, xMin, xMax)
		}

		var acc float32
		for i := range r.cover {
			v := acc + r.area[i]
			acc += r.cover[i]
			r.cover[i] = min(float32(math.Abs(float64(v))), 1)
		}
		lo, hi := 0, width
		for lo < hi && r.cover[lo] == 0 {
			lo++
		}
		for hi > lo && r.cover[hi-1] == 0 {
			hi--
		}
		if lo < hi {
			emit(y, xMin+lo, r.cover[lo:hi])
		}
	}
}

// accumulate adds the part of e between yTop and yBot to the row buffers.
func (r *Rasteriser) accumulate(e *edge, yTop, yBot float64, xMin, xMax int) {
	yTop = max(yTop, e.top())
	yBot = min(yBot, e.bottom())
	if yBot <= yTop {
		return
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	// split the edge where it crosses pixel column boundaries
	xa, xb := e.xAt(yTop), e.xAt(yBot)
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := math.Floor(min(xa, xb)) + 1; x <= max(xa, xb); x++ {
		if y := e.y0 + (x-e.x0)/e.dxdy; y > yTop && y < yBot {
			r.crossings = append(r.crossings, y)
		}
	}
	slices.Sort(r.crossings)

	for k := 0; k+1 < len(r.crossings); k++ {
		y0, y1 := r.crossings[k], r.crossings[k+1]
		if y1 <= y0 {
			continue
		}
		h := sign * float32(y1-y0)
		xm := e.xAt(0.5 * (y0 + y1))
		px := int(math.Floor(xm))
		switch {
		case px < xMin:
			r.cover[0] += h
			r.area[0] += h
		case px < xMax:
			i := px - xMin
			r.cover[i] += h
			r.area[i] += h * float32(1-(xm-float64(px)))
		}
	}
}

// AlphaSink returns an EmitFunc which composites coverage onto dst.
func AlphaSink(dst *image.Alpha) EmitFunc {
	return func(y, xMin int, coverage []float32) {
		if y < dst.Rect.Min.Y || y >= dst.Rect.Max.Y {
			return
		}
		for i, c := range coverage {
			x := xMin + i
			if x < dst.Rect.Min.X || x >= dst.Rect.Max.X {
				continue
			}
			pix := &dst.Pix[dst.PixOffset(x, y)]
			a := float32(*pix) / 255
			a += c * (1 - a)
			*pix = uint8(min(a*255+0.5, 255))
		}
	}
}

const (
	// defaultFlatness is the default curve flattening tolerance in device
	// pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimum vertical extent of an edge.
	horizontalEdgeThreshold = 1e-10
)
