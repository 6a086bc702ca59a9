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
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/powell"
)

var (
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.RGBA{R: 0xff, A: 0xff}
)

func TestDashIntervals(t *testing.T) {
	dash := []float64{5, 5}
	tests := []struct {
		from, to float64
		want     [][2]float64
	}{
		{0, 20, [][2]float64{{0, 5}, {10, 15}}},
		{7, 23, [][2]float64{{10, 15}, {20, 23}}},
		{2, 4, [][2]float64{{2, 4}}},
		{6, 9, nil},
		{1003, 1012, [][2]float64{{1003, 1005}, {1010, 1012}}},
	}
	for _, tc := range tests {
		var got [][2]float64
		dashIntervals(dash, 10, tc.from, tc.to, func(u0, u1 float64) {
			got = append(got, [2]float64{u0, u1})
		})
		if len(got) != len(tc.want) {
			t.Errorf("[%g, %g]: got %v, want %v", tc.from, tc.to, got, tc.want)
			continue
		}
		for i := range got {
			if math.Abs(got[i][0]-tc.want[i][0]) > 1e-9 || math.Abs(got[i][1]-tc.want[i][1]) > 1e-9 {
				t.Errorf("[%g, %g]: got %v, want %v", tc.from, tc.to, got, tc.want)
				break
			}
		}
	}
}

func TestClipPolygon(t *testing.T) {
	box := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	square := []vec.Vec2{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}}

	clipped, _ := clipPolygon(square, box, nil, nil)
	if a := math.Abs(signedArea(clipped)) / 2; math.Abs(a-25) > 1e-9 {
		t.Errorf("clipped area = %g, want 25", a)
	}

	far := []vec.Vec2{{X: 20, Y: 20}, {X: 30, Y: 20}, {X: 30, Y: 30}}
	clipped, _ = clipPolygon(far, box, nil, nil)
	if len(clipped) != 0 {
		t.Errorf("polygon outside the box gave %v", clipped)
	}
}

func TestOutlineOrientation(t *testing.T) {
	var o outlines
	o.add(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 0, Y: 1}, vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 1, Y: 0})
	o.add(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 1, Y: 1})
	o.add(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 0}) // dropped

	if o.count() != 2 {
		t.Fatalf("got %d polygons, want 2", o.count())
	}
	for i := range o.count() {
		if a := signedArea(o.polygon(i)); a <= 0 {
			t.Errorf("polygon %d has signed area %g", i, a)
		}
	}
}

func TestFlattenArc(t *testing.T) {
	arc := powell.Arc{Center: vec.Vec2{X: 100, Y: 100}, Radius: 50, Start: 0, End: math.Pi}
	c := NewCanvas(300, 350)

	c.lines.reset()
	c.lines.flatten(arc.Path(), c.CTM, c.Flatness)
	if c.lines.count() != 1 {
		t.Fatalf("got %d subpaths, want 1", c.lines.count())
	}
	pts := c.lines.subpath(0)
	if len(pts) < 10 {
		t.Errorf("half circle flattened to only %d points", len(pts))
	}
	for _, p := range pts {
		r := p.Sub(arc.Center).Length()
		if math.Abs(r-arc.Radius) > 2*c.Flatness {
			t.Errorf("point %v is %g from the centre", p, r)
		}
	}
}

// Quadratic segments are converted to cubics while flattening, and the
// coordinates of the following segments stay aligned.
func TestFlattenQuadratic(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 50, Y: 10}).
		QuadTo(vec.Vec2{X: 100, Y: 10}, vec.Vec2{X: 100, Y: 60}).
		Close().
		MoveTo(vec.Vec2{X: 200, Y: 200}).
		LineTo(vec.Vec2{X: 250, Y: 200})
	c := NewCanvas(300, 350)

	c.lines.reset()
	c.lines.flatten(p, c.CTM, c.Flatness)
	if c.lines.count() != 2 {
		t.Fatalf("got %d subpaths, want 2", c.lines.count())
	}

	first := c.lines.subpath(0)
	if len(first) < 5 {
		t.Errorf("quadratic flattened to only %d points", len(first))
	}
	if first[0] != first[len(first)-1] {
		t.Errorf("closed subpath ends at %v", first[len(first)-1])
	}
	if first[len(first)-2] != (vec.Vec2{X: 100, Y: 60}) {
		t.Errorf("curve ends at %v", first[len(first)-2])
	}

	second := c.lines.subpath(1)
	want := []vec.Vec2{{X: 200, Y: 200}, {X: 250, Y: 200}}
	if len(second) != len(want) || second[0] != want[0] || second[1] != want[1] {
		t.Errorf("second subpath is %v, want %v", second, want)
	}
}

func TestStrokeLine(t *testing.T) {
	c := NewCanvas(300, 350)
	c.Draw(powell.Line{
		A: vec.Vec2{X: 10, Y: 100},
		B: vec.Vec2{X: 290, Y: 100},
		Style: powell.Style{
			Stroke: red,
			Width:  4,
			Cap:    graphics.LineCapButt,
		},
	})

	img := c.Image()
	if got := img.RGBAAt(150, 100); got != red {
		t.Errorf("pixel on the line is %v", got)
	}
	if got := img.RGBAAt(150, 110); got != white {
		t.Errorf("pixel beside the line is %v", got)
	}
	if got := img.RGBAAt(5, 100); got != white {
		t.Errorf("pixel before the butt cap is %v", got)
	}
}

func TestStrokeOpacity(t *testing.T) {
	c := NewCanvas(300, 350)
	c.Draw(powell.Line{
		A: vec.Vec2{X: 10, Y: 100},
		B: vec.Vec2{X: 290, Y: 100},
		Style: powell.Style{
			Stroke:  color.Black,
			Width:   10,
			Opacity: 0.5,
		},
	})
	got := c.Image().RGBAAt(150, 100)
	if got.R < 120 || got.R > 135 || got.R != got.G || got.G != got.B {
		t.Errorf("half transparent black on white gave %v", got)
	}
}

func TestFillRect(t *testing.T) {
	c := NewCanvas(300, 350)
	c.Draw(powell.Rect{
		X: 100, Y: 100, W: 50, H: 50,
		Style: powell.Style{Fill: red},
	})
	img := c.Image()
	if got := img.RGBAAt(125, 125); got != red {
		t.Errorf("inside: %v", got)
	}
	if got := img.RGBAAt(99, 125); got != white {
		t.Errorf("outside: %v", got)
	}
}

func TestArrowHead(t *testing.T) {
	c := NewCanvas(300, 350)
	c.Draw(powell.Line{
		A: vec.Vec2{X: 100, Y: 100},
		B: vec.Vec2{X: 200, Y: 100},
		Style: powell.Style{
			Stroke: red,
			Width:  1,
			Arrow:  true,
		},
	})
	// the head is 6 units long and 6 units wide at its base
	img := c.Image()
	if got := img.RGBAAt(195, 101); got != red {
		t.Errorf("inside the arrowhead: %v", got)
	}
	if got := img.RGBAAt(185, 103); got != white {
		t.Errorf("behind the arrowhead: %v", got)
	}
}

func TestScaledCanvas(t *testing.T) {
	// twice the logical size, so that everything is scaled by 2
	c := NewCanvas(600, 700)
	c.Draw(powell.Rect{
		X: 10, Y: 10, W: 10, H: 10,
		Style: powell.Style{Fill: red},
	})
	img := c.Image()
	if got := img.RGBAAt(39, 39); got != red {
		t.Errorf("inside: %v", got)
	}
	if got := img.RGBAAt(41, 41); got != white {
		t.Errorf("outside: %v", got)
	}
}

// hasColor reports whether any pixel in r is dominated by the blue
// component, as the fan rays are.
func hasColor(img *image.RGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if int(c.B) > int(c.R)+20 {
				return true
			}
		}
	}
	return false
}

func TestOutputPanelZeroAngle(t *testing.T) {
	p := powell.DefaultParameters()
	p.FanAngle = 0
	c := NewCanvas(300, 350)
	c.Render(powell.OutputPanel(p))

	img := c.Image()
	// away from the centre line there is nothing to see
	if hasColor(img, image.Rect(200, 0, 300, 140)) {
		t.Error("fan colour above the centre line")
	}
	if hasColor(img, image.Rect(200, 200, 300, 350)) {
		t.Error("fan colour below the centre line")
	}
	if !hasColor(img, image.Rect(100, 170, 200, 180)) {
		t.Error("collapsed fan not drawn")
	}
}

func TestOutputPanelWideAngle(t *testing.T) {
	p := powell.DefaultParameters()
	p.FanAngle = 45
	c := NewCanvas(300, 350)
	c.Render(powell.OutputPanel(p))

	img := c.Image()
	if !hasColor(img, image.Rect(245, 140, 255, 160)) {
		t.Error("uniform line missing")
	}
	if hasColor(img, image.Rect(245, 0, 255, 60)) {
		t.Error("uniform line too long")
	}
}

func TestOutputPanelStraightAngle(t *testing.T) {
	p := powell.DefaultParameters()
	p.FanAngle = 180
	c := NewCanvas(300, 350)
	c.Render(powell.OutputPanel(p))

	// the uniform line runs through the whole panel height
	img := c.Image()
	if !hasColor(img, image.Rect(245, 0, 255, 10)) {
		t.Error("uniform line missing at the top")
	}
	if !hasColor(img, image.Rect(245, 340, 255, 350)) {
		t.Error("uniform line missing at the bottom")
	}
}

func TestScene(t *testing.T) {
	s := NewScene(150, 175)
	ctrl, err := powell.NewController(powell.DefaultParameters(), s)
	if err != nil {
		t.Fatal(err)
	}
	ctrl.Refresh()

	img := s.Image()
	want := image.Rect(0, 0, 3*150+2*PanelGap, 175)
	if img.Bounds() != want {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), want)
	}
	if got := img.RGBAAt(150+PanelGap/2, 5); got != GapColor {
		t.Errorf("gap pixel = %v", got)
	}

	for _, panel := range powell.Panels() {
		c := s.Canvas(panel).Image()
		if c.Bounds() != image.Rect(0, 0, 150, 175) {
			t.Errorf("%s: canvas bounds %v", panel, c.Bounds())
		}
	}

	var buf bytes.Buffer
	if err := s.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}
	dec, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Bounds() != want {
		t.Errorf("decoded bounds = %v, want %v", dec.Bounds(), want)
	}
}

func TestSceneRerender(t *testing.T) {
	s := NewScene(300, 350)
	ctrl, err := powell.NewController(powell.DefaultParameters(), s)
	if err != nil {
		t.Fatal(err)
	}
	if err := ctrl.SetFanAngle(90); err != nil {
		t.Fatal(err)
	}
	out := s.Canvas(powell.Output).Image()
	if !hasColor(out, image.Rect(245, 20, 255, 40)) {
		t.Fatal("uniform line missing at 90°")
	}

	// a smaller angle must not leave the previous frame behind
	if err := ctrl.SetFanAngle(10); err != nil {
		t.Fatal(err)
	}
	if hasColor(out, image.Rect(245, 20, 255, 40)) {
		t.Error("old frame still visible")
	}
}
