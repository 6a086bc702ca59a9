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

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/powell"
)

const (
	// collinearityThreshold is the sine of the smallest angle between two
	// segments for which a join is drawn.
	collinearityThreshold = 1e-6

	// zeroLengthThreshold is the length below which a segment has no
	// usable direction.
	zeroLengthThreshold = 1e-9

	// miterLimit is the largest ratio of miter length to line width for
	// which a miter join is drawn. Sharper corners are bevelled.
	miterLimit = 10
)

// pen describes a stroke in device space.
type pen struct {
	d    float64 // half the line width
	cap  graphics.LineCapStyle
	join graphics.LineJoinStyle
	dash []float64 // dash pattern, scaled to device space
}

// outlines collects the polygons which together cover a stroke.
// Every polygon is stored with positive orientation, so that overlapping
// pieces do not cancel when they are filled together.
type outlines struct {
	pts     []vec.Vec2
	offsets []int
}

func (o *outlines) reset() {
	o.pts = o.pts[:0]
	o.offsets = o.offsets[:0]
}

func (o *outlines) count() int {
	return len(o.offsets)
}

func (o *outlines) polygon(i int) []vec.Vec2 {
	start := o.offsets[i]
	end := len(o.pts)
	if i+1 < len(o.offsets) {
		end = o.offsets[i+1]
	}
	return o.pts[start:end]
}

// begin starts a new polygon.
func (o *outlines) begin() {
	o.offsets = append(o.offsets, len(o.pts))
}

// end finishes the current polygon. Polygons with fewer than three
// vertices are discarded, and negatively oriented ones are reversed.
func (o *outlines) end() {
	n := len(o.offsets)
	poly := o.polygon(n - 1)
	if len(poly) < 3 {
		o.pts = o.pts[:o.offsets[n-1]]
		o.offsets = o.offsets[:n-1]
		return
	}
	if signedArea(poly) < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
}

func (o *outlines) add(pts ...vec.Vec2) {
	o.begin()
	o.pts = append(o.pts, pts...)
	o.end()
}

// strokeOutline converts the polylines into stroke outlines. Segments are first
// clipped against the guard box, so that very long lines never produce
// coordinates far outside the image.
func (c *Canvas) strokeOutline(pl *polylines, pn pen) {
	c.outline.reset()
	for i := range pl.count() {
		pts := pl.subpath(i)
		closed := pl.closed[i]
		if len(pn.dash) > 0 {
			c.strokeDashed(pts, pn)
		} else {
			c.strokeSolid(pts, closed, pn)
		}
	}
}

// strokeSolid strokes one undashed subpath.
func (c *Canvas) strokeSolid(pts []vec.Vec2, closed bool, pn pen) {
	nSeg := len(pts) - 1

	// tangent of the previous visible segment, for joins
	var prevT vec.Vec2
	havePrev := false
	var firstT vec.Vec2
	firstWhole := false

	drawn := false
	for j := range nSeg {
		a, b := pts[j], pts[j+1]
		d := b.Sub(a)
		length := d.Length()
		if length < zeroLengthThreshold {
			continue
		}
		t := d.Mul(1 / length)

		ca, cb, ok := powell.ClipSegment(a, b, c.guard)
		if !ok {
			havePrev = false
			continue
		}
		startCut, endCut := ca != a, cb != b
		if havePrev {
			c.addJoin(a, prevT, t, pn)
		}
		if !drawn {
			firstT = t
			firstWhole = !startCut
		}
		drawn = true

		capStart := !closed && j == 0 && !startCut
		capEnd := !closed && j == nSeg-1 && !endCut
		c.addPiece(ca, cb, t, capStart, capEnd, pn)

		prevT = t
		havePrev = !endCut
	}

	if closed && drawn && havePrev && firstWhole {
		c.addJoin(pts[0], prevT, firstT, pn)
	}

	if !drawn && pn.cap == graphics.LineCapRound && inside(pts[0], c.guard) {
		c.addDisc(pts[0], pn.d)
	}
}

// strokeDashed strokes one subpath with the dash pattern of pn. Every
// dash is stroked on its own, with caps at both ends.
func (c *Canvas) strokeDashed(pts []vec.Vec2, pn pen) {
	var total float64
	for _, l := range pn.dash {
		total += l
	}
	if total <= 0 {
		return
	}

	dist := 0.0
	for j := range len(pts) - 1 {
		a, b := pts[j], pts[j+1]
		d := b.Sub(a)
		length := d.Length()
		if length < zeroLengthThreshold {
			continue
		}
		t := d.Mul(1 / length)

		ca, cb, ok := powell.ClipSegment(a, b, c.guard)
		if ok {
			from := dist + ca.Sub(a).Length()
			to := dist + cb.Sub(a).Length()
			dashIntervals(pn.dash, total, from, to, func(u0, u1 float64) {
				pa := a.Add(t.Mul(u0 - dist))
				pb := a.Add(t.Mul(u1 - dist))
				c.addPiece(pa, pb, t, true, true, pn)
			})
		}
		dist += length
	}
}

// dashIntervals calls emit for every "on" interval of the dash pattern
// which intersects [from, to]. Distances are measured along the path.
func dashIntervals(dash []float64, total, from, to float64, emit func(u0, u1 float64)) {
	pos := math.Floor(from/total) * total
	for pos <= to {
		for k, l := range dash {
			if k%2 == 0 {
				u0 := max(pos, from)
				u1 := min(pos+l, to)
				switch {
				case u0 < u1:
					emit(u0, u1)
				case l == 0 && pos >= from:
					emit(pos, pos)
				}
			}
			pos += l
			if pos > to {
				return
			}
		}
	}
}

// addPiece adds the rectangle covering the segment from a to b, with unit
// tangent t, plus the requested caps.
func (c *Canvas) addPiece(a, b, t vec.Vec2, capStart, capEnd bool, pn pen) {
	d := pn.d
	n := vec.Vec2{X: -t.Y, Y: t.X}

	if pn.cap == graphics.LineCapSquare {
		if capStart {
			a = a.Sub(t.Mul(d))
		}
		if capEnd {
			b = b.Add(t.Mul(d))
		}
	}
	if a != b {
		c.outline.add(a.Add(n.Mul(d)), b.Add(n.Mul(d)), b.Sub(n.Mul(d)), a.Sub(n.Mul(d)))
	}

	if pn.cap == graphics.LineCapRound {
		if capStart {
			c.addDisc(a, d)
		}
		if capEnd {
			c.addDisc(b, d)
		}
	}
}

// addJoin fills the gap on the outer side of the corner at p, where the
// direction changes from t1 to t2.
func (c *Canvas) addJoin(p, t1, t2 vec.Vec2, pn pen) {
	cosTheta := t1.Dot(t2)
	sinTheta := t1.X*t2.Y - t1.Y*t2.X
	if sinTheta > -collinearityThreshold && sinTheta < collinearityThreshold && cosTheta > 0 {
		return
	}

	if pn.join == graphics.LineJoinRound {
		c.addDisc(p, pn.d)
		return
	}

	// the outer side is opposite to the direction of the turn
	side := 1.0
	if sinTheta > 0 {
		side = -1
	}
	n1 := vec.Vec2{X: -t1.Y, Y: t1.X}.Mul(side)
	n2 := vec.Vec2{X: -t2.Y, Y: t2.X}.Mul(side)
	o1 := p.Add(n1.Mul(pn.d))
	o2 := p.Add(n2.Mul(pn.d))

	if pn.join == graphics.LineJoinMiter {
		// miter length relative to the line width is 1/cos(θ/2)
		cosHalf := math.Sqrt((1 + cosTheta) / 2)
		bisector := n1.Add(n2)
		if l := bisector.Length(); cosHalf > 0 && 1/cosHalf <= miterLimit && l > zeroLengthThreshold {
			tip := p.Add(bisector.Mul(pn.d / (cosHalf * l)))
			c.outline.add(p, o1, tip, o2)
			return
		}
	}
	c.outline.add(p, o1, o2)
}

// addDisc adds a polygonal disc, with enough vertices to stay within the
// flatness tolerance of the true circle.
func (c *Canvas) addDisc(center vec.Vec2, radius float64) {
	n := 8
	if radius > c.Flatness {
		step := 2 * math.Acos(1-c.Flatness/radius)
		if step > 0 && !math.IsNaN(step) {
			n = max(int(math.Ceil(2*math.Pi/step)), n)
		}
	}
	c.outline.begin()
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		c.outline.pts = append(c.outline.pts, vec.Vec2{
			X: center.X + radius*math.Cos(phi),
			Y: center.Y + radius*math.Sin(phi),
		})
	}
	c.outline.end()
}
