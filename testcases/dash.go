package testcases

import (
	"seehuhn.de/go/pdf/graphics"
)

var dashCases = []TestCase{
	{
		Name:   "dashed_line",
		Path:   line(6, 32, 58, 32),
		Width:  64,
		Height: 64,
		Op: Stroke{
			Width: 4, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10,
			Dash: []float64{8, 4},
		},
	},
	{
		Name:   "dashed_line_phase",
		Path:   line(6, 32, 58, 32),
		Width:  64,
		Height: 64,
		Op: Stroke{
			Width: 4, Cap: graphics.LineCapSquare, Join: graphics.LineJoinMiter, MiterLimit: 10,
			Dash: []float64{8, 6}, DashPhase: 5,
		},
	},
	{
		Name:   "odd_pattern",
		Path:   zigzag(),
		Width:  64,
		Height: 64,
		Op: Stroke{
			Width: 3, Cap: graphics.LineCapButt, Join: graphics.LineJoinBevel, MiterLimit: 10,
			Dash: []float64{10},
		},
	},
	{
		Name:   "dotted_circle",
		Path:   circle(32, 32, 22, false),
		Width:  64,
		Height: 64,
		Op: Stroke{
			Width: 5, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound, MiterLimit: 10,
			Dash: []float64{0, 9},
		},
	},
	{
		Name:   "dashed_square_wrap",
		Path:   rectangle(12, 12, 52, 52),
		Width:  64,
		Height: 64,
		Op: Stroke{
			Width: 4, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10,
			Dash: []float64{30, 10}, DashPhase: 15,
		},
	},
}
