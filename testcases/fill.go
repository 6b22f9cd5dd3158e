package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

var fillCases = []TestCase{
	{
		Name:   "square",
		Path:   rectangle(16, 16, 48, 48),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "triangle",
		Path:   polygon(pt(10, 50), pt(32, 10), pt(54, 50)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "triangle_ccw",
		Path:   polygon(pt(54, 50), pt(32, 10), pt(10, 50)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "diamond",
		Path:   polygon(pt(32, 4), pt(60, 32), pt(32, 60), pt(4, 32)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "l_shape",
		Path:   polygon(pt(8, 8), pt(24, 8), pt(24, 40), pt(56, 40), pt(56, 56), pt(8, 56)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "comb",
		Path:   comb(8, 8, 48, 48, 5),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "bowtie",
		Path:   polygon(pt(8, 8), pt(56, 56), pt(56, 8), pt(8, 56)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "star_nonzero",
		Path:   star(32, 32, 26, 5, 2),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "star_evenodd",
		Path:   star(32, 32, 26, 5, 2),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "heptagram",
		Path:   star(32, 32, 28, 7, 3),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
}

// star connects every step-th of n points on a circle.  For step > 1 the
// path intersects itself.
func star(cx, cy, r float64, n, step int) *path.Data {
	pts := make([]vec.Vec2, n)
	for i := range n {
		angle := float64(i*step)*2*math.Pi/float64(n) - math.Pi/2
		pts[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return polygon(pts...)
}

// comb builds a polygon with teeth pointing down, so that the sweep sees
// many regions start and end.
func comb(x, y, w, h float64, teeth int) *path.Data {
	tw := w / float64(2*teeth-1)
	pts := []vec.Vec2{pt(x, y), pt(x+w, y)}
	for i := teeth - 1; i >= 0; i-- {
		x0 := x + float64(2*i)*tw
		pts = append(pts, pt(x0+tw, y+h), pt(x0, y+h))
		if i > 0 {
			pts = append(pts, pt(x0, y+h/3), pt(x0-tw, y+h/3))
		}
	}
	return polygon(pts...)
}
