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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"seehuhn.de/go/powell"
)

// PanelGap is the width in pixels of the strip between two panels in a
// composed image.
const PanelGap = 4

// GapColor is the colour of the strip between panels.
var GapColor = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}

// Scene is a Surface with one canvas per panel.
type Scene struct {
	canvases [powell.NumPanels]*Canvas
	composed *image.RGBA
}

// NewScene allocates the canvases for a diagram whose panels are
// panelWidth×panelHeight pixels each.
func NewScene(panelWidth, panelHeight int) *Scene {
	s := &Scene{}
	for i := range s.canvases {
		s.canvases[i] = NewCanvas(panelWidth, panelHeight)
	}
	return s
}

// Render implements the powell.Surface interface.
// Unknown panels are ignored.
func (s *Scene) Render(panel powell.Panel, prims []powell.Primitive) {
	if panel < 0 || panel >= powell.NumPanels {
		return
	}
	s.canvases[panel].Render(prims)
}

// Canvas returns the canvas of one panel.
func (s *Scene) Canvas(panel powell.Panel) *Canvas {
	return s.canvases[panel]
}

// Image returns the three panels side by side, left to right in drawing
// order. The returned image is reused by later calls.
func (s *Scene) Image() *image.RGBA {
	pb := s.canvases[0].Image().Bounds()
	w := powell.NumPanels*pb.Dx() + (powell.NumPanels-1)*PanelGap
	h := pb.Dy()
	if s.composed == nil || s.composed.Bounds() != image.Rect(0, 0, w, h) {
		s.composed = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	draw.Draw(s.composed, s.composed.Bounds(), image.NewUniform(GapColor), image.Point{}, draw.Src)
	for i, c := range s.canvases {
		x := i * (pb.Dx() + PanelGap)
		r := image.Rect(x, 0, x+pb.Dx(), h)
		draw.Draw(s.composed, r, c.Image(), image.Point{}, draw.Src)
	}
	return s.composed
}

// WritePNG encodes the composed image as PNG.
func (s *Scene) WritePNG(w io.Writer) error {
	return png.Encode(w, s.Image())
}

// SavePNG writes the composed image to a PNG file.
func (s *Scene) SavePNG(fname string) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return s.WritePNG(f)
}
