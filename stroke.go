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

	"honnef.co/go/curve"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroker converts the outline of a stroked path into closed polygons and
// feeds them into a Legalizer.  The polygons of one call must be filled
// together using the nonzero winding rule.
//
// A Stroker is not safe for concurrent use.
type Stroker struct {
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
	Dash       []float64
	DashPhase  float64

	// Flatness is the maximum distance, in path units, between a curve
	// and the polygon used to stroke it.
	Flatness float64

	lines    []strokeLine
	runs     []strokeRun
	dots     []strokeDot
	dashed   []strokeLine
	dashRuns []strokeRun
	outline  []vec.Vec2
}

// strokeLine is a piece of the flattened path.
type strokeLine struct {
	a, b   vec.Vec2
	t      vec.Vec2 // unit tangent from a to b
	length float64
}

func (l *strokeLine) at(s float64) vec.Vec2 {
	return l.a.Add(l.t.Mul(s))
}

// strokeRun is a range of consecutive lines forming one subpath or dash.
type strokeRun struct {
	start, end int
	closed     bool
}

// strokeDot is a subpath or dash without extent.  Oriented dots come from
// dashes and carry the tangent of the path at their position.
type strokeDot struct {
	p, t     vec.Vec2
	oriented bool
}

// NewStroker returns a Stroker with the PDF default line parameters.
func NewStroker() *Stroker {
	return &Stroker{
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: 10,
		Flatness:   defaultTolerance,
	}
}

// Stroke appends the outline of p, stroked with the current parameters, to
// dst.  Every polygon becomes a closed subpath.
func (s *Stroker) Stroke(p *path.Data, dst *Legalizer) {
	s.flatten(p)
	d := s.Width / 2
	if !(d > 0) {
		return
	}

	lines, runs := s.lines, s.runs
	if s.hasDash() {
		s.applyDash()
		lines, runs = s.dashed, s.dashRuns
	}

	for _, r := range runs {
		seg := lines[r.start:r.end]
		if r.closed {
			s.outline = s.offsetRing(s.outline[:0], seg, false, d)
			s.emit(dst)
			s.outline = s.offsetRing(s.outline[:0], seg, true, d)
			s.emit(dst)
			continue
		}
		s.outline = s.offsetSide(s.outline[:0], seg, false, d)
		s.outline = s.addCap(s.outline, seg[len(seg)-1].b, seg[len(seg)-1].t, d)
		s.outline = s.offsetSide(s.outline, seg, true, d)
		s.outline = s.addCap(s.outline, seg[0].a, seg[0].t.Mul(-1), d)
		s.emit(dst)
	}

	for _, dot := range s.dots {
		switch {
		case s.Cap == graphics.LineCapRound:
			start := vec.Vec2{X: 1}
			s.outline = append(s.outline[:0], dot.p.Add(start.Mul(d)))
			s.outline = s.addArc(s.outline, dot.p, d, start, -2*math.Pi)
			s.emit(dst)
		case s.Cap == graphics.LineCapSquare && dot.oriented:
			t := dot.t.Mul(d)
			n := normal(dot.t).Mul(d)
			s.outline = append(s.outline[:0],
				dot.p.Add(t).Add(n),
				dot.p.Add(t).Sub(n),
				dot.p.Sub(t).Sub(n),
				dot.p.Sub(t).Add(n))
			s.emit(dst)
		}
	}
}

// emit appends the current outline to dst as a closed subpath.
func (s *Stroker) emit(dst *Legalizer) {
	if len(s.outline) < 3 {
		return
	}
	dst.MoveTo(s.outline[0])
	for _, p := range s.outline[1:] {
		dst.LineTo(p)
	}
	dst.ClosePath()
}

// flatten converts p into runs of straight lines.  Subpaths without extent
// are recorded as dots.
func (s *Stroker) flatten(p *path.Data) {
	s.lines = s.lines[:0]
	s.runs = s.runs[:0]
	s.dots = s.dots[:0]

	var cur, start vec.Vec2
	runStart := 0
	active, drew := false, false
	finish := func(closed bool) {
		if !active {
			return
		}
		if len(s.lines) > runStart {
			s.runs = append(s.runs, strokeRun{start: runStart, end: len(s.lines), closed: closed})
		} else if drew {
			s.dots = append(s.dots, strokeDot{p: start})
		}
		active = false
	}
	begin := func() {
		if !active {
			start = cur
			runStart = len(s.lines)
			active, drew = true, false
		}
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			cur = p.Coords[k]
			k++
			begin()
		case path.CmdLineTo:
			begin()
			drew = true
			s.addLine(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			begin()
			drew = true
			s.flattenQuad(cur, p.Coords[k], p.Coords[k+1])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			begin()
			drew = true
			s.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if active {
				s.addLine(cur, start)
				drew = true
				finish(true)
				cur = start
			}
		}
	}
	finish(false)
}

func (s *Stroker) addLine(a, b vec.Vec2) {
	v := b.Sub(a)
	length := v.Length()
	if length < zeroLengthThreshold {
		return
	}
	s.lines = append(s.lines, strokeLine{a: a, b: b, t: v.Mul(1 / length), length: length})
}

func (s *Stroker) flatness() float64 {
	if s.Flatness > 0 {
		return s.Flatness
	}
	return defaultTolerance
}

// flattenQuad approximates a quadratic Bézier curve by lines.
func (s *Stroker) flattenQuad(p0, c, p2 vec.Vec2) {
	dev := p0.Sub(c.Mul(2)).Add(p2).Length() / 4
	n := pieces(dev, s.flatness())
	q := curve.QuadBez{P0: toPoint(p0), P1: toPoint(c), P2: toPoint(p2)}
	prev := p0
	for i := 1; i <= n; i++ {
		next := p2
		if i < n {
			next = fromPoint(q.Eval(float64(i) / float64(n)))
		}
		s.addLine(prev, next)
		prev = next
	}
}

// flattenCubic approximates a cubic Bézier curve by lines, using Wang's
// formula for the number of pieces.
func (s *Stroker) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	dd1 := p0.Sub(p1.Mul(2)).Add(p2).Length()
	dd2 := p1.Sub(p2.Mul(2)).Add(p3).Length()
	n := pieces(0.75*max(dd1, dd2), s.flatness())
	cb := curve.CubicBez{P0: toPoint(p0), P1: toPoint(p1), P2: toPoint(p2), P3: toPoint(p3)}
	prev := p0
	for i := 1; i <= n; i++ {
		next := p3
		if i < n {
			next = fromPoint(cb.Eval(float64(i) / float64(n)))
		}
		s.addLine(prev, next)
		prev = next
	}
}

// pieces returns the number of lines needed for a curve whose second
// differences scaled to a deviation dev are to stay within tol.
func pieces(dev, tol float64) int {
	if !(dev > tol) {
		return 1
	}
	return min(int(math.Ceil(math.Sqrt(dev/tol))), maxFlattenPieces)
}

// normal returns t rotated by 90 degrees.
func normal(t vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -t.Y, Y: t.X}
}

// offsetSide appends the offset curve on one side of an open run.  With
// reverse set, the run is traversed backwards, which gives the offset on
// the opposite side.
func (s *Stroker) offsetSide(out []vec.Vec2, lines []strokeLine, reverse bool, d float64) []vec.Vec2 {
	n := len(lines)
	line := func(i int) (vec.Vec2, vec.Vec2, vec.Vec2) {
		if reverse {
			l := &lines[n-1-i]
			return l.b, l.a, l.t.Mul(-1)
		}
		l := &lines[i]
		return l.a, l.b, l.t
	}

	a, _, t := line(0)
	out = append(out, a.Add(normal(t).Mul(d)))
	for i := 0; i+1 < n; i++ {
		_, b, t1 := line(i)
		_, _, t2 := line(i + 1)
		out = s.addJoin(out, b, t1, t2, d)
	}
	_, b, t := line(n - 1)
	return append(out, b.Add(normal(t).Mul(d)))
}

// offsetRing appends the closed offset polygon on one side of a closed run.
func (s *Stroker) offsetRing(out []vec.Vec2, lines []strokeLine, reverse bool, d float64) []vec.Vec2 {
	n := len(lines)
	for i := range n {
		var p, t1, t2 vec.Vec2
		if reverse {
			cur, next := &lines[n-1-i], &lines[(2*n-2-i)%n]
			p, t1, t2 = cur.a, cur.t.Mul(-1), next.t.Mul(-1)
		} else {
			cur, next := &lines[i], &lines[(i+1)%n]
			p, t1, t2 = cur.b, cur.t, next.t
		}
		out = s.addJoin(out, p, t1, t2, d)
	}
	return out
}

// addJoin appends the offset points around the corner p, where the
// direction changes from t1 to t2.
func (s *Stroker) addJoin(out []vec.Vec2, p, t1, t2 vec.Vec2, d float64) []vec.Vec2 {
	n1, n2 := normal(t1), normal(t2)
	out = append(out, p.Add(n1.Mul(d)))

	sin := t1.X*t2.Y - t1.Y*t2.X
	cos := t1.Dot(t2)
	switch {
	case math.Abs(sin) < collinearityThreshold && cos > 0:
		// no corner
	case n1.Dot(t2) > 0:
		// Inner side of the corner.  Passing through p keeps the polygon
		// on the stroked area.
		out = append(out, p)
	case cos < cuspCosineThreshold:
		if s.Join == graphics.LineJoinRound {
			out = s.addArc(out, p, d, n1, -math.Pi)
		}
	default:
		switch s.Join {
		case graphics.LineJoinRound:
			out = s.addArc(out, p, d, n1, math.Atan2(n1.X*n2.Y-n1.Y*n2.X, n1.Dot(n2)))
		case graphics.LineJoinMiter:
			cosHalf := math.Sqrt((1 + cos) / 2)
			if cosHalf > 0 && 1/cosHalf <= s.MiterLimit+miterEpsilon {
				bisector := n1.Add(n2)
				if l := bisector.Length(); l > zeroLengthThreshold {
					out = append(out, p.Add(bisector.Mul(d/(cosHalf*l))))
				}
			}
		}
	}
	return append(out, p.Add(n2.Mul(d)))
}

// addCap appends the cap at the end point p of a run.  The tangent t points
// away from the run.
func (s *Stroker) addCap(out []vec.Vec2, p, t vec.Vec2, d float64) []vec.Vec2 {
	n := normal(t)
	switch s.Cap {
	case graphics.LineCapSquare:
		e := p.Add(t.Mul(d))
		out = append(out, e.Add(n.Mul(d)), e.Sub(n.Mul(d)))
	case graphics.LineCapRound:
		out = s.addArc(out, p, d, n, -math.Pi)
	}
	return out
}

// addArc appends the interior points of a circular arc around center,
// starting in direction dir and sweeping the given angle.
func (s *Stroker) addArc(out []vec.Vec2, center vec.Vec2, radius float64, dir vec.Vec2, sweep float64) []vec.Vec2 {
	flat := s.flatness()
	if radius <= flat {
		return out
	}
	step := 2 * math.Acos(1-flat/radius)
	n := min(int(math.Ceil(math.Abs(sweep)/step)), maxFlattenPieces)
	for i := 1; i < n; i++ {
		sin, cos := math.Sincos(sweep * float64(i) / float64(n))
		r := vec.Vec2{
			X: dir.X*cos - dir.Y*sin,
			Y: dir.X*sin + dir.Y*cos,
		}
		out = append(out, center.Add(r.Mul(radius)))
	}
	return out
}

func (s *Stroker) hasDash() bool {
	total := 0.0
	for _, x := range s.Dash {
		if x < 0 {
			return false
		}
		total += x
	}
	return total > 0
}

// applyDash splits the flattened runs into dashes.  A dash at the start of
// a closed run is merged with the dash at its end.
func (s *Stroker) applyDash() {
	s.dashed = s.dashed[:0]
	s.dashRuns = s.dashRuns[:0]

	pattern := s.Dash
	cycle := 0.0
	for _, x := range pattern {
		cycle += x
	}
	if len(pattern)%2 == 1 {
		cycle *= 2
	}

	for _, r := range s.runs {
		idx := 0
		phase := math.Mod(s.DashPhase, cycle)
		if phase < 0 {
			phase += cycle
		}
		for phase > 0 && phase >= pattern[idx%len(pattern)] {
			phase -= pattern[idx%len(pattern)]
			idx++
		}
		remaining := pattern[idx%len(pattern)] - phase
		on := idx%2 == 0

		// firstRun is the index of the dash starting at the beginning of
		// the run, if any
		firstRun := -1
		atStart := on
		dashStart := len(s.dashed)
		finishDash := func(p, t vec.Vec2) {
			if len(s.dashed) > dashStart {
				if atStart {
					firstRun = len(s.dashRuns)
				}
				s.dashRuns = append(s.dashRuns, strokeRun{start: dashStart, end: len(s.dashed)})
			} else {
				s.dots = append(s.dots, strokeDot{p: p, t: t, oriented: true})
			}
			atStart = false
			dashStart = len(s.dashed)
		}

		for i := r.start; i < r.end; i++ {
			ln := &s.lines[i]
			pos := 0.0
			for {
				if remaining > ln.length-pos {
					if on {
						s.appendDashPiece(ln, pos, ln.length)
					}
					remaining -= ln.length - pos
					break
				}
				end := pos + remaining
				if on {
					s.appendDashPiece(ln, pos, end)
					finishDash(ln.at(end), ln.t)
				}
				pos = end
				idx++
				remaining = pattern[idx%len(pattern)]
				on = idx%2 == 0
			}
		}

		if !on || len(s.dashed) == dashStart {
			continue
		}
		if r.closed && firstRun >= 0 {
			first := s.dashRuns[firstRun]
			s.dashed = append(s.dashed, s.dashed[first.start:first.end]...)
			s.dashRuns[firstRun] = strokeRun{start: dashStart, end: len(s.dashed)}
			continue
		}
		s.dashRuns = append(s.dashRuns, strokeRun{start: dashStart, end: len(s.dashed)})
	}
}

// appendDashPiece appends the part of ln between the arc lengths from and
// to.
func (s *Stroker) appendDashPiece(ln *strokeLine, from, to float64) {
	if to-from < zeroLengthThreshold {
		return
	}
	s.dashed = append(s.dashed, strokeLine{
		a:      ln.at(from),
		b:      ln.at(to),
		t:      ln.t,
		length: to - from,
	})
}

// Numerical thresholds of the stroker.
const (
	zeroLengthThreshold   = 1e-10
	collinearityThreshold = 1e-9
	cuspCosineThreshold   = -1 + 1e-9
	miterEpsilon          = 1e-10
	maxFlattenPieces      = 1024
)
