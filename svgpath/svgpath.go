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

// Package svgpath reads SVG path data ("M 0 0 L 10 0 Z") into
// seehuhn.de/go/geom paths.
//
// Elliptical arc commands are not supported.
package svgpath

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// ErrUnsupported is returned for path data containing arc commands.
var ErrUnsupported = errors.New("unsupported path command")

// MustParse is like Parse but panics on error.
func MustParse(s string) *path.Data {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// numArgs gives the number of arguments of every command letter.
var numArgs = [...]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'Q': 4, 'T': 2, 'C': 6, 'S': 4,
	'A': 7, 'Z': 0,
}

// Parse converts SVG path data into a path.
func Parse(s string) (*path.Data, error) {
	p := &path.Data{}
	buf := []byte(s)

	i := skipSpace(buf)
	if i == len(buf) {
		return p, nil
	}
	if !isCommand(buf[i]) {
		return nil, fmt.Errorf("position %d: path data must start with a command", i+1)
	}

	var args [7]float64
	var cur, start, lastCtrl vec.Vec2
	prev := byte('Z')
	for {
		i += skipSpace(buf[i:])
		if i >= len(buf) {
			break
		}

		cmd := buf[i]
		if isCommand(cmd) {
			i++
		} else if prev == 'Z' || prev == 'z' {
			return nil, fmt.Errorf("position %d: unexpected %q", i+1, cmd)
		} else {
			// implicit repetition of the previous command
			cmd = prev
			switch cmd {
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			}
		}

		upper := cmd &^ 0x20
		if upper == 'A' {
			return nil, fmt.Errorf("position %d: arc command %q: %w", i, cmd, ErrUnsupported)
		}
		for k := range numArgs[upper] {
			i += skipSpace(buf[i:])
			x, n := strconv.ParseFloat(buf[i:])
			if n == 0 {
				return nil, fmt.Errorf("position %d: command %q needs %d numbers", i+1, cmd, numArgs[upper])
			}
			args[k] = x
			i += n
		}

		rel := cmd != upper
		abs := func(x, y float64) vec.Vec2 {
			v := vec.Vec2{X: x, Y: y}
			if rel {
				v = v.Add(cur)
			}
			return v
		}

		switch upper {
		case 'M':
			cur = abs(args[0], args[1])
			start = cur
			p.MoveTo(cur)
		case 'L':
			cur = abs(args[0], args[1])
			p.LineTo(cur)
		case 'H':
			x := args[0]
			if rel {
				x += cur.X
			}
			cur.X = x
			p.LineTo(cur)
		case 'V':
			y := args[0]
			if rel {
				y += cur.Y
			}
			cur.Y = y
			p.LineTo(cur)
		case 'Q':
			c := abs(args[0], args[1])
			end := abs(args[2], args[3])
			p.QuadTo(c, end)
			lastCtrl, cur = c, end
		case 'T':
			c := cur
			if pu := prev &^ 0x20; pu == 'Q' || pu == 'T' {
				c = cur.Mul(2).Sub(lastCtrl)
			}
			end := abs(args[0], args[1])
			p.QuadTo(c, end)
			lastCtrl, cur = c, end
		case 'C':
			c1 := abs(args[0], args[1])
			c2 := abs(args[2], args[3])
			end := abs(args[4], args[5])
			p.CubeTo(c1, c2, end)
			lastCtrl, cur = c2, end
		case 'S':
			c1 := cur
			if pu := prev &^ 0x20; pu == 'C' || pu == 'S' {
				c1 = cur.Mul(2).Sub(lastCtrl)
			}
			c2 := abs(args[0], args[1])
			end := abs(args[2], args[3])
			p.CubeTo(c1, c2, end)
			lastCtrl, cur = c2, end
		case 'Z':
			p.Close()
			cur = start
		default:
			return nil, fmt.Errorf("position %d: unknown command %q", i, cmd)
		}
		prev = cmd
	}
	return p, nil
}

func isCommand(c byte) bool {
	c &^= 0x20
	return c >= 'A' && c <= 'Z' && int(c) < len(numArgs) && (numArgs[c] > 0 || c == 'Z')
}

func skipSpace(buf []byte) int {
	i := 0
	for i < len(buf) {
		switch buf[i] {
		case ' ', ',', '\t', '\n', '\r', '\f':
			i++
		default:
			return i
		}
	}
	return i
}
