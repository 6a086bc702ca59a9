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

package main

import (
	"bytes"
	"errors"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/powell"
	"seehuhn.de/go/powell/raster"
)

const (
	panelWidth  = powell.LogicalWidth
	panelHeight = powell.LogicalHeight

	windowWidth  = powell.NumPanels*panelWidth + (powell.NumPanels-1)*raster.PanelGap
	windowHeight = panelHeight + controlsHeight

	controlsHeight = 70

	// slider geometry
	sliderX      = 120
	sliderY      = panelHeight + 35
	sliderWidth  = windowWidth - 2*sliderX
	knobRadius   = 8
	sliderGrab   = 2 * knobRadius // vertical distance at which a click hits the slider
	readoutGap   = 16
	uiFontSize   = 14
)

var (
	trackColor = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	knobColor  = color.RGBA{R: 0x45, G: 0xb7, B: 0xd1, A: 0xff}
	background = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
)

// surface forwards panels to the scene and records which of them need to
// be uploaded to the GPU.
type surface struct {
	scene   *raster.Scene
	changed [powell.NumPanels]bool
}

func (s *surface) Render(panel powell.Panel, prims []powell.Primitive) {
	s.scene.Render(panel, prims)
	s.changed[panel] = true
}

type game struct {
	ctrl    *powell.Controller
	surface *surface
	panels  [powell.NumPanels]*ebiten.Image
	face    text.Face

	dragging bool
	lastErr  error
}

func newGame(p powell.Parameters) (*game, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}

	s := &surface{scene: raster.NewScene(panelWidth, panelHeight)}
	ctrl, err := powell.NewController(p, s)
	if err != nil {
		return nil, err
	}
	g := &game{
		ctrl:    ctrl,
		surface: s,
		face:    &text.GoTextFace{Source: src, Size: uiFontSize},
	}
	for i := range g.panels {
		g.panels[i] = ebiten.NewImage(panelWidth, panelHeight)
	}
	ctrl.Refresh()
	return g, nil
}

func (g *game) Update() error {
	g.updateSlider()

	step := 1.0
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		step = 10
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.setAngle(g.ctrl.FanAngle() - step)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.setAngle(g.ctrl.FanAngle() + step)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.saveDialog(); err != nil {
			g.lastErr = err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	// upload only the panels which were redrawn
	for i, changed := range g.surface.changed {
		if changed {
			g.panels[i].WritePixels(g.surface.scene.Canvas(powell.Panel(i)).Image().Pix)
			g.surface.changed[i] = false
		}
	}
	return nil
}

// updateSlider handles clicking and dragging on the slider.
func (g *game) updateSlider() {
	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		onTrack := mx >= sliderX-knobRadius && mx <= sliderX+sliderWidth+knobRadius &&
			my >= sliderY-sliderGrab && my <= sliderY+sliderGrab
		if onTrack {
			g.dragging = true
		}
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging {
		g.setAngle(sliderAngle(mx))
	}
}

// setAngle changes the fan angle. The diagram is only recomputed if the
// value actually changes.
func (g *game) setAngle(deg float64) {
	if deg == g.ctrl.FanAngle() {
		return
	}
	if err := g.ctrl.SetFanAngle(deg); err != nil {
		g.lastErr = err
	}
}

// sliderAngle maps a horizontal mouse position to a whole number of
// degrees, like a range input with step 1.
func sliderAngle(mx int) float64 {
	t := float64(mx-sliderX) / sliderWidth
	t = max(0, min(1, t))
	return math.Round(powell.MinFanAngle + t*(powell.MaxFanAngle-powell.MinFanAngle))
}

// knobX returns the horizontal position of the slider knob.
func knobX(deg float64) float32 {
	t := (deg - powell.MinFanAngle) / (powell.MaxFanAngle - powell.MinFanAngle)
	return float32(sliderX + t*sliderWidth)
}

func (g *game) saveDialog() error {
	fname, err := zenity.SelectFileSave(
		zenity.Title("Save Diagram"),
		zenity.Filename("powell.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.surface.scene.SavePNG(fname)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for i, img := range g.panels {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(i*(panelWidth+raster.PanelGap)), 0)
		screen.DrawImage(img, op)
	}

	vector.StrokeLine(screen, sliderX, sliderY, sliderX+sliderWidth, sliderY, 4, trackColor, true)
	kx := knobX(g.ctrl.FanAngle())
	vector.DrawFilledCircle(screen, kx, sliderY, knobRadius, knobColor, true)

	g.label(screen, "Fan angle:", sliderX-readoutGap, sliderY, text.AlignEnd)
	g.label(screen, g.ctrl.Readout(), sliderX+sliderWidth+readoutGap, sliderY, text.AlignStart)

	if g.lastErr != nil {
		g.label(screen, "Error: "+g.lastErr.Error(), 12, windowHeight-12, text.AlignStart)
	}
}

// label draws s vertically centred on y. The horizontal alignment
// decides whether x is the start or the end of the text.
func (g *game) label(screen *ebiten.Image, s string, x, y float64, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(powell.TextColor)
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, g.face, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}
