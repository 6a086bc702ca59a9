// seehuhn.de/go/powell - an interactive Powell lens diagram
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

package raster

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// clipPolygon clips a closed polygon against box, using the
// Sutherland-Hodgman algorithm. The result is appended to out[:0].
// The scratch slice is used for intermediate results and may be nil.
func clipPolygon(poly []vec.Vec2, box rect.Rect, out, scratch []vec.Vec2) ([]vec.Vec2, []vec.Vec2) {
	type edge struct {
		inside func(vec.Vec2) bool
		cross  func(a, b vec.Vec2) vec.Vec2
	}
	atX := func(a, b vec.Vec2, x float64) vec.Vec2 {
		t := (x - a.X) / (b.X - a.X)
		return vec.Vec2{X: x, Y: a.Y + t*(b.Y-a.Y)}
	}
	atY := func(a, b vec.Vec2, y float64) vec.Vec2 {
		t := (y - a.Y) / (b.Y - a.Y)
		return vec.Vec2{X: a.X + t*(b.X-a.X), Y: y}
	}
	edges := [4]edge{
		{func(p vec.Vec2) bool { return p.X >= box.LLx }, func(a, b vec.Vec2) vec.Vec2 { return atX(a, b, box.LLx) }},
		{func(p vec.Vec2) bool { return p.X <= box.URx }, func(a, b vec.Vec2) vec.Vec2 { return atX(a, b, box.URx) }},
		{func(p vec.Vec2) bool { return p.Y >= box.LLy }, func(a, b vec.Vec2) vec.Vec2 { return atY(a, b, box.LLy) }},
		{func(p vec.Vec2) bool { return p.Y <= box.URy }, func(a, b vec.Vec2) vec.Vec2 { return atY(a, b, box.URy) }},
	}

	in := append(scratch[:0], poly...)
	out = out[:0]
	for _, e := range edges {
		out = out[:0]
		for i, cur := range in {
			prev := in[(i+len(in)-1)%len(in)]
			curIn, prevIn := e.inside(cur), e.inside(prev)
			switch {
			case curIn && prevIn:
				out = append(out, cur)
			case curIn:
				out = append(out, e.cross(prev, cur), cur)
			case prevIn:
				out = append(out, e.cross(prev, cur))
			}
		}
		if len(out) == 0 {
			return out, in
		}
		in, out = out, in
	}
	return in, out
}

// signedArea returns twice the signed area of a closed polygon.
func signedArea(poly []vec.Vec2) float64 {
	var a float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a
}

func inside(p vec.Vec2, box rect.Rect) bool {
	return p.X >= box.LLx && p.X <= box.URx && p.Y >= box.LLy && p.Y <= box.URy
}
