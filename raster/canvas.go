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

// Package raster draws the diagram into RGBA images.
//
// Coverage is computed by golang.org/x/image/vector. Strokes are turned
// into filled outlines first, the same way for lines, rectangles, curves
// and arcs.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/powell"
)

// DefaultFlatness is the default curve flattening tolerance, in pixels.
const DefaultFlatness = 0.25

// guardMargin is how far outside the image geometry is still kept.
// It must exceed half the widest stroke in device pixels.
const guardMargin = 64

// Canvas draws primitives into an RGBA image.
// A Canvas implements the drawing side of one panel.
type Canvas struct {
	// CTM maps logical panel coordinates to pixel coordinates.
	CTM matrix.Matrix

	// Flatness is the maximum distance, in pixels, between a curve and
	// the line segments which replace it.
	Flatness float64

	// Background is the colour used by Clear.
	Background color.Color

	img   *image.RGBA
	rast  *vector.Rasterizer
	guard rect.Rect

	// reusable buffers
	lines   polylines
	outline outlines
	clipped []vec.Vec2
	scratch []vec.Vec2
	faces   map[float64]font.Face
}

// NewCanvas allocates a canvas of the given size in pixels. The logical
// panel is scaled to fit the canvas and centred.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		CTM:        powell.FitMatrix(float64(width), float64(height)),
		Flatness:   DefaultFlatness,
		Background: color.White,
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		rast:       vector.NewRasterizer(width, height),
		guard: rect.Rect{
			LLx: -guardMargin, LLy: -guardMargin,
			URx: float64(width) + guardMargin, URy: float64(height) + guardMargin,
		},
	}
	c.Clear()
	return c
}

// Image returns the image the canvas draws into.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear paints the whole image with the background colour.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)
}

// Render clears the canvas and draws prims in order.
func (c *Canvas) Render(prims []powell.Primitive) {
	c.Clear()
	for _, p := range prims {
		c.Draw(p)
	}
}

// Draw paints a single primitive on top of the current image.
func (c *Canvas) Draw(prim powell.Primitive) {
	switch p := prim.(type) {
	case powell.Line:
		c.stroke(p.Path(), p.Style)
		if head := p.ArrowHead(); head != nil {
			c.fill(head, p.Style.Stroke, p.Style.Alpha())
		}
	case powell.Rect:
		if p.Style.Fill != nil {
			c.fill(p.Path(), p.Style.Fill, p.Style.Alpha())
		}
		c.stroke(p.Path(), p.Style)
	case powell.Curve:
		c.stroke(p.Path(), p.Style)
	case powell.Arc:
		c.stroke(p.Path(), p.Style)
	case powell.Text:
		c.text(p)
	}
}

// fill paints the interior of the path, using the nonzero winding rule.
func (c *Canvas) fill(p *path.Data, col color.Color, alpha float64) {
	if col == nil {
		return
	}
	c.lines.reset()
	c.lines.flatten(p, c.CTM, c.Flatness)

	c.rast.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	empty := true
	for i := range c.lines.count() {
		c.clipped, c.scratch = clipPolygon(c.lines.subpath(i), c.guard, c.clipped, c.scratch)
		if len(c.clipped) < 3 {
			continue
		}
		addPolygon(c.rast, c.clipped)
		empty = false
	}
	if !empty {
		c.rast.Draw(c.img, c.img.Bounds(), paint(col, alpha), image.Point{})
	}
}

// stroke paints the outline of the path with the pen given by style.
func (c *Canvas) stroke(p *path.Data, style powell.Style) {
	if style.Stroke == nil || style.Width <= 0 {
		return
	}
	scale := scaleOf(c.CTM)
	pn := pen{
		d:    style.Width * scale / 2,
		cap:  style.Cap,
		join: style.Join,
	}
	if len(style.Dash) > 0 {
		pn.dash = make([]float64, len(style.Dash))
		for i, l := range style.Dash {
			pn.dash[i] = l * scale
		}
	}

	c.lines.reset()
	c.lines.flatten(p, c.CTM, c.Flatness)
	c.strokeOutline(&c.lines, pn)
	if c.outline.count() == 0 {
		return
	}

	c.rast.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	for i := range c.outline.count() {
		addPolygon(c.rast, c.outline.polygon(i))
	}
	c.rast.Draw(c.img, c.img.Bounds(), paint(style.Stroke, style.Alpha()), image.Point{})
}

// text draws a label. The font size of the style is given in logical
// units and scales with the CTM.
func (c *Canvas) text(t powell.Text) {
	col := t.Style.Fill
	if col == nil {
		col = t.Style.Stroke
	}
	if col == nil {
		col = color.Black
	}
	pos := apply(c.CTM, vec.Vec2{X: t.X, Y: t.Y})
	if !inside(pos, c.guard) {
		return
	}

	size := t.Style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	face := c.face(size * scaleOf(c.CTM))
	if face == nil {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  paint(col, t.Style.Alpha()),
		Face: face,
	}
	x := fixed.Int26_6(pos.X * 64)
	switch t.Style.Anchor {
	case powell.AnchorMiddle:
		x -= d.MeasureString(t.Content) / 2
	case powell.AnchorEnd:
		x -= d.MeasureString(t.Content)
	}
	d.Dot = fixed.Point26_6{X: x, Y: fixed.Int26_6(pos.Y * 64)}
	d.DrawString(t.Content)
}

func addPolygon(r *vector.Rasterizer, poly []vec.Vec2) {
	r.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()
}

// paint returns a uniform source image of the colour, with its alpha
// multiplied by alpha.
func paint(col color.Color, alpha float64) image.Image {
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	c.A = uint8(float64(c.A)*alpha + 0.5)
	return image.NewUniform(c)
}
