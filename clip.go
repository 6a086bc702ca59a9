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

package powell

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// GuardMargin is how far outside the logical panel geometry is kept by
// the exporters. Near a fan angle of 180° the outermost rays and the
// uniform line reach coordinates of the order 1e16, which are cut back
// to the guard box before they are drawn.
const GuardMargin = 64

// GuardBounds is the logical panel area enlarged by GuardMargin.
var GuardBounds = rect.Rect{
	LLx: -GuardMargin, LLy: -GuardMargin,
	URx: LogicalWidth + GuardMargin, URy: LogicalHeight + GuardMargin,
}

// ClipSegment clips the segment from a to b against box, using the
// Liang-Barsky algorithm. It returns the visible part, or ok=false if the
// segment misses the box.
//
// End points cut by an edge of the box lie exactly on that edge. The
// other coordinate is interpolated from an end point inside the box where
// there is one, so that segments with one very distant end point keep
// their direction.
func ClipSegment(a, b vec.Vec2, box rect.Rect) (ca, cb vec.Vec2, ok bool) {
	t0, t1 := 0.0, 1.0
	e0, e1 := -1, -1
	d := b.Sub(a)

	// each edge gives p*t <= q
	edges := [4][2]float64{
		{-d.X, a.X - box.LLx},
		{d.X, box.URx - a.X},
		{-d.Y, a.Y - box.LLy},
		{d.Y, box.URy - a.Y},
	}
	for i, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return vec.Vec2{}, vec.Vec2{}, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return vec.Vec2{}, vec.Vec2{}, false
			}
			if r > t0 {
				t0, e0 = r, i
			}
		} else {
			if r < t0 {
				return vec.Vec2{}, vec.Vec2{}, false
			}
			if r < t1 {
				t1, e1 = r, i
			}
		}
	}

	ref := a
	if !contains(box, a) && contains(box, b) {
		ref = b
	}
	ca, cb = a, b
	if e0 >= 0 {
		ca = onEdge(ref, d, box, e0)
	}
	if e1 >= 0 {
		cb = onEdge(ref, d, box, e1)
	}
	return ca, cb, true
}

// onEdge returns the point where the line through ref with direction d
// meets the given edge of box. The edges are numbered left, right, bottom
// and top, as in ClipSegment.
func onEdge(ref, d vec.Vec2, box rect.Rect, edge int) vec.Vec2 {
	switch edge {
	case 0, 1:
		x := box.LLx
		if edge == 1 {
			x = box.URx
		}
		return vec.Vec2{X: x, Y: ref.Y + d.Y*(x-ref.X)/d.X}
	default:
		y := box.LLy
		if edge == 3 {
			y = box.URy
		}
		return vec.Vec2{X: ref.X + d.X*(y-ref.Y)/d.Y, Y: y}
	}
}

func contains(box rect.Rect, p vec.Vec2) bool {
	return p.X >= box.LLx && p.X <= box.URx && p.Y >= box.LLy && p.Y <= box.URy
}
