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
	"image/color"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Primitive is one drawing instruction in logical panel coordinates.
// The concrete types are Line, Rect, Curve, Arc and Text.
//
// Primitives are values. They are built fresh for every frame and carry
// no identity beyond it.
type Primitive interface {
	isPrimitive()
}

// Anchor selects which point of a text string is placed at its position.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Style describes how a primitive is painted.
// A nil Stroke or Fill colour means the primitive is not stroked or filled.
type Style struct {
	Stroke  color.Color
	Fill    color.Color
	Width   float64                // stroke width in logical units
	Dash    []float64              // dash pattern (nil for solid)
	Opacity float64                // 0 means fully opaque
	Cap     graphics.LineCapStyle  // LineCapButt, LineCapRound, LineCapSquare
	Join    graphics.LineJoinStyle // LineJoinMiter, LineJoinRound, LineJoinBevel

	// Arrow terminates a Line with a filled arrowhead at its end point.
	Arrow bool

	FontSize float64
	Anchor   Anchor
}

// Alpha returns the effective opacity in [0, 1].
func (s Style) Alpha() float64 {
	if s.Opacity <= 0 {
		return 1
	}
	return min(s.Opacity, 1)
}

// Line is a straight segment from A to B.
type Line struct {
	A, B  vec.Vec2
	Style Style
}

// Rect is an axis-aligned rectangle with its top-left corner at X, Y.
type Rect struct {
	X, Y, W, H float64
	Style      Style
}

// Curve is an open polyline through Points.
type Curve struct {
	Points []vec.Vec2
	Style  Style
}

// Arc is a circular arc around Center. Angles are in radians and follow
// the panel orientation, i.e. positive angles turn clockwise on screen
// because the y axis points down.
type Arc struct {
	Center     vec.Vec2
	Radius     float64
	Start, End float64

	// Sweep is set when the arc spans more than half a circle, where the
	// two endpoints alone no longer tell which way round the arc goes.
	Sweep bool

	Style Style
}

// Text is a single-line label.
type Text struct {
	X, Y    float64
	Content string
	Style   Style
}

func (Line) isPrimitive()  {}
func (Rect) isPrimitive()  {}
func (Curve) isPrimitive() {}
func (Arc) isPrimitive()   {}
func (Text) isPrimitive()  {}

// Path returns the outline of the line.
func (l Line) Path() *path.Data {
	return (&path.Data{}).MoveTo(l.A).LineTo(l.B)
}

// arrowLength returns the length of an arrowhead for the given stroke width.
func arrowLength(width float64) float64 {
	return 4 + 2*max(width, 1)
}

// ArrowHead returns the closed triangle drawn at the end of an arrow
// line, with its tip at B. It returns nil for lines without an arrow and
// for zero-length lines, which have no direction.
func (l Line) ArrowHead() *path.Data {
	if !l.Style.Arrow {
		return nil
	}
	d := l.B.Sub(l.A)
	length := d.Length()
	if length == 0 || math.IsInf(length, 0) || math.IsNaN(length) {
		return nil
	}
	t := d.Mul(1 / length)
	n := vec.Vec2{X: -t.Y, Y: t.X}

	size := arrowLength(l.Style.Width)
	base := l.B.Sub(t.Mul(size))
	return (&path.Data{}).
		MoveTo(l.B).
		LineTo(base.Add(n.Mul(size / 2))).
		LineTo(base.Sub(n.Mul(size / 2))).
		Close()
}

// Path returns the closed outline of the rectangle.
func (r Rect) Path() *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: r.X, Y: r.Y}).
		LineTo(vec.Vec2{X: r.X + r.W, Y: r.Y}).
		LineTo(vec.Vec2{X: r.X + r.W, Y: r.Y + r.H}).
		LineTo(vec.Vec2{X: r.X, Y: r.Y + r.H}).
		Close()
}

// Path returns the polyline. Curves with fewer than two points give an
// empty path.
func (c Curve) Path() *path.Data {
	p := &path.Data{}
	if len(c.Points) < 2 {
		return p
	}
	p = p.MoveTo(c.Points[0])
	for _, pt := range c.Points[1:] {
		p = p.LineTo(pt)
	}
	return p
}

// Path approximates the arc by cubic Bézier curves of at most a quarter
// turn each. The control points sit at distance 4/3·tan(φ/4)·r along the
// tangents, where φ is the angle of the piece.
func (a Arc) Path() *path.Data {
	sweep := a.End - a.Start
	p := (&path.Data{}).MoveTo(a.pointAt(a.Start))
	if sweep == 0 || a.Radius <= 0 {
		return p
	}

	// the small slack keeps an exact quarter turn in one piece
	n := max(int(math.Ceil(math.Abs(sweep)/(math.Pi/2)-1e-9)), 1)
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4) * a.Radius

	for i := range n {
		t0 := a.Start + float64(i)*step
		t1 := t0 + step
		p0 := a.pointAt(t0)
		p3 := a.pointAt(t1)
		d0 := vec.Vec2{X: -math.Sin(t0), Y: math.Cos(t0)}
		d1 := vec.Vec2{X: -math.Sin(t1), Y: math.Cos(t1)}
		p = p.CubeTo(p0.Add(d0.Mul(k)), p3.Sub(d1.Mul(k)), p3)
	}
	return p
}

func (a Arc) pointAt(theta float64) vec.Vec2 {
	return vec.Vec2{
		X: a.Center.X + a.Radius*math.Cos(theta),
		Y: a.Center.Y + a.Radius*math.Sin(theta),
	}
}

// StartPoint returns the point where the arc begins.
func (a Arc) StartPoint() vec.Vec2 { return a.pointAt(a.Start) }

// EndPoint returns the point where the arc ends.
func (a Arc) EndPoint() vec.Vec2 { return a.pointAt(a.End) }
