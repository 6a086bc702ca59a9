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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// polylines holds flattened subpaths in device coordinates.
// Closed subpaths end with a copy of their first point.
type polylines struct {
	pts     []vec.Vec2 // vertices of all subpaths, contiguous
	offsets []int      // start index of each subpath in pts
	closed  []bool     // whether each subpath is closed
}

func (pl *polylines) reset() {
	pl.pts = pl.pts[:0]
	pl.offsets = pl.offsets[:0]
	pl.closed = pl.closed[:0]
}

// count returns the number of subpaths.
func (pl *polylines) count() int {
	return len(pl.offsets)
}

// subpath returns the vertices of subpath i as a slice into pts.
func (pl *polylines) subpath(i int) []vec.Vec2 {
	start := pl.offsets[i]
	end := len(pl.pts)
	if i+1 < len(pl.offsets) {
		end = pl.offsets[i+1]
	}
	return pl.pts[start:end]
}

// finish ends the current subpath. Subpaths with fewer than two vertices
// have no extent and are dropped.
func (pl *polylines) finish(closed bool) {
	n := len(pl.offsets)
	if n == 0 {
		return
	}
	start := pl.offsets[n-1]
	if len(pl.pts)-start < 2 {
		pl.pts = pl.pts[:start]
		pl.offsets = pl.offsets[:n-1]
		pl.closed = pl.closed[:n-1]
		return
	}
	if closed {
		first := pl.pts[start]
		if pl.pts[len(pl.pts)-1] != first {
			pl.pts = append(pl.pts, first)
		}
		pl.closed[n-1] = true
	}
}

// flatten walks the path, maps it to device space and appends the
// resulting polylines. Curves are replaced by line segments which deviate
// from the curve by at most flatness pixels.
//
// Bézier curves are invariant under affine maps, so the control points
// can be transformed first and the tolerance applied in device space.
func (pl *polylines) flatten(p *path.Data, ctm matrix.Matrix, flatness float64) {
	var current vec.Vec2
	open := false
	lineTo := func(_, to vec.Vec2) {
		pl.pts = append(pl.pts, to)
	}

	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				pl.finish(false)
			}
			current = apply(ctm, pts[0])
			pl.offsets = append(pl.offsets, len(pl.pts))
			pl.closed = append(pl.closed, false)
			pl.pts = append(pl.pts, current)
			open = true

		case path.CmdLineTo:
			to := apply(ctm, pts[0])
			if open {
				pl.pts = append(pl.pts, to)
			}
			current = to

		case path.CmdCubeTo:
			c1 := apply(ctm, pts[0])
			c2 := apply(ctm, pts[1])
			to := apply(ctm, pts[2])
			if open {
				flattenCubic(current, c1, c2, to, flatness, lineTo)
			}
			current = to

		case path.CmdClose:
			if open {
				pl.finish(true)
				open = false
			}
		}
	}
	if open {
		pl.finish(false)
	}
}

// apply maps a point from user space to device space.
func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// scaleOf returns the factor by which m scales lengths, for matrices
// which scale uniformly.
func scaleOf(m matrix.Matrix) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// flattenCubic flattens a cubic Bézier and calls emit for each line segment.
// The number of segments follows Wang's formula.
func flattenCubic(p0, p1, p2, p3 vec.Vec2, flatness float64, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nFloat := math.Sqrt(3 * m / (4 * flatness)); nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		emit(prev, pt)
		prev = pt
	}
}
