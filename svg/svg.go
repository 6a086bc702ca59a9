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

// Package svg writes the diagram as SVG.
//
// Every panel becomes a standalone SVG document with the logical panel
// size as its viewBox and preserveAspectRatio="xMidYMid meet", so that
// viewers scale it uniformly into any box. Alternatively, all panels can
// be written side by side into one document.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/powell"
)

// Document is a Surface which keeps the latest primitives of every panel
// and writes them as SVG.
type Document struct {
	powell.Frame

	// Width and Height set the size attributes of the outermost svg
	// element. If zero, the size is left to the viewer.
	Width, Height int
}

// WritePanel writes one panel as a standalone SVG document.
func (d *Document) WritePanel(w io.Writer, panel powell.Panel) error {
	out := &writer{w: w}
	out.start(powell.LogicalWidth, d.Width, d.Height, panel.Handle())
	for _, prim := range d.Frame[panel] {
		out.primitive(prim)
	}
	out.end()
	return out.err
}

// WriteAll writes all panels side by side into one SVG document.
func (d *Document) WriteAll(w io.Writer) error {
	out := &writer{w: w}
	out.start(powell.NumPanels*powell.LogicalWidth, d.Width, d.Height, "powell")
	for i, panel := range powell.Panels() {
		out.printf("<g id=%q transform=\"translate(%s 0)\">\n",
			panel.Handle(), num(float64(i*powell.LogicalWidth)))
		for _, prim := range d.Frame[panel] {
			out.primitive(prim)
		}
		out.printf("</g>\n")
	}
	out.end()
	return out.err
}

// writer emits SVG elements. After the first write error all further
// output is discarded and the error is kept in err.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, a ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, a...)
}

func (w *writer) start(viewWidth, width, height int, id string) {
	w.printf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	w.printf("<svg xmlns=\"http://www.w3.org/2000/svg\" id=%q", id)
	if width > 0 && height > 0 {
		w.printf(" width=\"%d\" height=\"%d\"", width, height)
	}
	w.printf(" viewBox=\"0 0 %d %d\" preserveAspectRatio=\"xMidYMid meet\">\n",
		viewWidth, powell.LogicalHeight)
}

func (w *writer) end() {
	w.printf("</svg>\n")
}

// primitive writes one primitive as a single line of output.
func (w *writer) primitive(prim powell.Primitive) {
	switch p := prim.(type) {
	case powell.Line:
		w.line(p)
	case powell.Rect:
		w.printf("<rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"%s/>\n",
			num(p.X), num(p.Y), num(p.W), num(p.H), attrs(p.Style))
	case powell.Curve:
		var pts []string
		for _, pt := range p.Points {
			pts = append(pts, num(pt.X)+","+num(pt.Y))
		}
		w.printf("<polyline points=\"%s\"%s/>\n", strings.Join(pts, " "), attrs(p.Style))
	case powell.Arc:
		w.arc(p)
	case powell.Text:
		w.text(p)
	}
}

// line writes the visible part of a line. Lines with an arrowhead are
// grouped with the head.
func (w *writer) line(l powell.Line) {
	a, b, ok := powell.ClipSegment(l.A, l.B, powell.GuardBounds)
	if !ok {
		// keep one element per primitive
		w.printf("<g/>\n")
		return
	}
	el := fmt.Sprintf("<line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\"%s/>",
		num(a.X), num(a.Y), num(b.X), num(b.Y), attrs(l.Style))

	head := l.ArrowHead()
	if head == nil || b != l.B {
		w.printf("%s\n", el)
		return
	}
	var d []string
	for cmd, pts := range head.Iter() {
		var letter string
		switch cmd {
		case path.CmdMoveTo:
			letter = "M"
		case path.CmdLineTo:
			letter = "L"
		case path.CmdCubeTo:
			letter = "C"
		case path.CmdClose:
			letter = "Z"
		}
		d = append(d, letter+coords(pts))
	}
	fill := powell.Style{Fill: l.Style.Stroke, Opacity: l.Style.Opacity}
	w.printf("<g>%s<path d=\"%s\"%s/></g>\n", el, strings.Join(d, " "), attrs(fill))
}

// arc writes an arc as an SVG elliptical arc command. Positive angles
// turn clockwise on screen, which is the SVG sweep direction 1.
func (w *writer) arc(a powell.Arc) {
	s, e := a.StartPoint(), a.EndPoint()
	large := 0
	if a.Sweep {
		large = 1
	}
	sweep := 1
	if a.End < a.Start {
		sweep = 0
	}
	style := a.Style
	style.Fill = nil
	w.printf("<path d=\"M%s %s A%s %s 0 %d %d %s %s\"%s/>\n",
		num(s.X), num(s.Y), num(a.Radius), num(a.Radius), large, sweep,
		num(e.X), num(e.Y), attrs(style))
}

func (w *writer) text(t powell.Text) {
	if g := powell.GuardBounds; t.X < g.LLx || t.X > g.URx || t.Y < g.LLy || t.Y > g.URy {
		w.printf("<g/>\n")
		return
	}
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(t.Content)); err != nil {
		w.err = err
		return
	}
	anchor := "start"
	switch t.Style.Anchor {
	case powell.AnchorMiddle:
		anchor = "middle"
	case powell.AnchorEnd:
		anchor = "end"
	}
	style := t.Style
	if style.Fill == nil {
		style.Fill = style.Stroke
	}
	style.Stroke = nil
	w.printf("<text x=\"%s\" y=\"%s\" font-family=\"sans-serif\" font-size=\"%s\" text-anchor=\"%s\"%s>%s</text>\n",
		num(t.X), num(t.Y), num(t.Style.FontSize), anchor, attrs(style), buf.String())
}

func coords(pts []vec.Vec2) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(num(p.X) + " " + num(p.Y))
	}
	return b.String()
}

// attrs returns the paint attributes of a style, with a leading space.
func attrs(s powell.Style) string {
	var b strings.Builder
	alpha := s.Alpha()

	if s.Fill != nil {
		col, a := hex(s.Fill)
		fmt.Fprintf(&b, " fill=%q", col)
		if a*alpha < 1 {
			fmt.Fprintf(&b, " fill-opacity=\"%s\"", num(a*alpha))
		}
	} else {
		b.WriteString(" fill=\"none\"")
	}

	if s.Stroke == nil || s.Width <= 0 {
		return b.String()
	}
	col, a := hex(s.Stroke)
	fmt.Fprintf(&b, " stroke=%q stroke-width=\"%s\"", col, num(s.Width))
	if a*alpha < 1 {
		fmt.Fprintf(&b, " stroke-opacity=\"%s\"", num(a*alpha))
	}
	switch s.Cap {
	case graphics.LineCapRound:
		b.WriteString(" stroke-linecap=\"round\"")
	case graphics.LineCapSquare:
		b.WriteString(" stroke-linecap=\"square\"")
	}
	switch s.Join {
	case graphics.LineJoinRound:
		b.WriteString(" stroke-linejoin=\"round\"")
	case graphics.LineJoinBevel:
		b.WriteString(" stroke-linejoin=\"bevel\"")
	}
	if len(s.Dash) > 0 {
		dash := make([]string, len(s.Dash))
		for i, l := range s.Dash {
			dash[i] = num(l)
		}
		fmt.Fprintf(&b, " stroke-dasharray=\"%s\"", strings.Join(dash, " "))
	}
	return b.String()
}

// hex returns a colour as #rrggbb, together with its alpha in [0, 1].
func hex(c color.Color) (string, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255
}

// num formats a coordinate with at most three decimals.
func num(x float64) string {
	x = math.Round(x*1000) / 1000
	if x == 0 {
		x = 0 // no "-0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
