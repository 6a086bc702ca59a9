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

// Package pdfpage writes the diagram as a single-page PDF file.
//
// The three panels are placed side by side, one PDF unit per logical
// unit. PDF has no notion of a white background behind transparent ink,
// so opacities are flattened against white before the colours are set.
// Text labels are not written.
package pdfpage

import (
	stdcolor "image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/powell"
)

// PageWidth and PageHeight give the size of the page in PDF units.
const (
	PageWidth  = powell.NumPanels * powell.LogicalWidth
	PageHeight = powell.LogicalHeight
)

// WriteFile writes the frame to a new PDF file.
func WriteFile(fname string, frame *powell.Frame) error {
	paper := &pdf.Rectangle{URx: PageWidth, URy: PageHeight}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left, panels use top-left with y pointing down.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, PageHeight})

	for i, panel := range powell.Panels() {
		w := &panelWriter{
			page:   page,
			offset: vec.Vec2{X: float64(i) * powell.LogicalWidth},
		}
		for _, prim := range frame[panel] {
			w.draw(prim)
		}
	}
	return page.Close()
}

type panelWriter struct {
	page   *document.Page
	offset vec.Vec2
}

func (w *panelWriter) draw(prim powell.Primitive) {
	switch p := prim.(type) {
	case powell.Line:
		w.line(p)
	case powell.Rect:
		if p.Style.Fill != nil {
			w.setFill(p.Style.Fill, p.Style.Alpha())
			w.path(p.Path())
			w.page.Fill()
		}
		if w.setStroke(p.Style) {
			w.path(p.Path())
			w.page.Stroke()
		}
	case powell.Curve:
		if w.setStroke(p.Style) {
			w.path(p.Path())
			w.page.Stroke()
		}
	case powell.Arc:
		if w.setStroke(p.Style) {
			w.path(p.Path())
			w.page.Stroke()
		}
	}
}

// line strokes the visible part of a line. The dash phase is shifted by
// the length cut off at the start, so that dashes stay in place.
func (w *panelWriter) line(l powell.Line) {
	a, b, ok := powell.ClipSegment(l.A, l.B, powell.GuardBounds)
	if !ok || !w.setStroke(l.Style) {
		return
	}
	if len(l.Style.Dash) > 0 {
		w.page.SetLineDash(l.Style.Dash, a.Sub(l.A).Length())
	}
	if a != b {
		w.moveTo(a)
		w.lineTo(b)
		w.page.Stroke()
	}

	if !contains(l.B) {
		return
	}
	if head := l.ArrowHead(); head != nil {
		w.setFill(l.Style.Stroke, l.Style.Alpha())
		w.path(head)
		w.page.Fill()
	}
}

// setStroke sets the stroke parameters of the style. It returns false if
// the style does not stroke.
func (w *panelWriter) setStroke(s powell.Style) bool {
	if s.Stroke == nil || s.Width <= 0 {
		return false
	}
	w.page.SetStrokeColor(flatten(s.Stroke, s.Alpha()))
	w.page.SetLineWidth(s.Width)
	w.page.SetLineCap(s.Cap)
	w.page.SetLineJoin(s.Join)
	w.page.SetLineDash(s.Dash, 0)
	return true
}

func (w *panelWriter) setFill(col stdcolor.Color, alpha float64) {
	w.page.SetFillColor(flatten(col, alpha))
}

func (w *panelWriter) path(p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			w.moveTo(pts[0])
		case path.CmdLineTo:
			w.lineTo(pts[0])
		case path.CmdCubeTo:
			c1, c2, to := pts[0].Add(w.offset), pts[1].Add(w.offset), pts[2].Add(w.offset)
			w.page.CurveTo(c1.X, c1.Y, c2.X, c2.Y, to.X, to.Y)
		case path.CmdClose:
			w.page.ClosePath()
		}
	}
}

func (w *panelWriter) moveTo(p vec.Vec2) {
	p = p.Add(w.offset)
	w.page.MoveTo(p.X, p.Y)
}

func (w *panelWriter) lineTo(p vec.Vec2) {
	p = p.Add(w.offset)
	w.page.LineTo(p.X, p.Y)
}

func contains(p vec.Vec2) bool {
	b := powell.GuardBounds
	return p.X >= b.LLx && p.X <= b.URx && p.Y >= b.LLy && p.Y <= b.URy
}

// flatten returns the opaque colour which looks like col painted with the
// given opacity onto white paper.
func flatten(col stdcolor.Color, alpha float64) color.Color {
	r, g, b := blend(col, alpha)
	return color.DeviceRGB{r, g, b}
}

// blend composites col with opacity alpha over white and returns the
// result as RGB components in [0, 1]. The alpha channel of col is
// taken into account as well.
func blend(col stdcolor.Color, alpha float64) (r, g, b float64) {
	c := stdcolor.NRGBAModel.Convert(col).(stdcolor.NRGBA)
	a := alpha * float64(c.A) / 255
	over := func(v uint8) float64 {
		return 1 - a*(1-float64(v)/255)
	}
	return over(c.R), over(c.G), over(c.B)
}
