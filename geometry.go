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
	"slices"
	"strconv"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Layout of the panels, in logical units.
const (
	centerY = 175

	beamStartX = 50
	beamEndX   = 250

	lensX        = 150
	lensWidth    = 40
	lensHeight   = 80
	lensSegments = 20
	lensBulge    = 10 // amplitude of the aspheric face
	fanRayLength = 100

	fanStartX = 50
	fanEndX   = 250

	arrowStub       = 15 // length of the arrow stubs on the output line
	angleRadius     = 35
	angleLabelGap   = 18
	labelOffset     = 10
	outputLabelGap  = 15
	labelFontSize   = 14
	readoutFontSize = 12
)

// Opacity floors: the dimmest edge ray still has this opacity.
const (
	BeamOpacityFloor   = 0.3
	OutputOpacityFloor = 0.5
)

// MinOpacity is the smallest opacity RayOpacity returns. A Style opacity
// of 0 means fully opaque, so rays must never reach 0.
const MinOpacity = 1.0 / 255

// Colours of the diagram.
var (
	BeamColor = color.RGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}
	LensColor = color.RGBA{R: 0x4e, G: 0xcd, B: 0xc4, A: 0xff}
	FanColor  = color.RGBA{R: 0x45, G: 0xb7, B: 0xd1, A: 0xff}
	TextColor = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	LensFill  = color.NRGBA{R: 0x4e, G: 0xcd, B: 0xc4, A: 0x33}
)

var (
	strokeStyle = Style{Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter}
	labelStyle  = Style{Fill: TextColor, FontSize: labelFontSize, Anchor: AnchorMiddle}
	beamDash    = []float64{5, 5}
)

const rayWidth = 1.5

// BuildPanel returns the primitive list of one panel.
// The parameters must have passed Validate.
func BuildPanel(panel Panel, p Parameters) []Primitive {
	switch panel {
	case Input:
		return InputPanel(p)
	case Lens:
		return LensPanel(p)
	case Output:
		return OutputPanel(p)
	default:
		return nil
	}
}

// NormalizedPosition maps ray index i to [-1, 1], with 0 at the centre
// ray and ±1 at the outermost rays.
func NormalizedPosition(i int, p Parameters) float64 {
	mid := p.mid()
	return (float64(i) - mid) / mid
}

// RefractionAngle returns the deflection of ray i behind the lens, in
// radians. The outermost rays are deflected by half the fan angle.
func RefractionAngle(i int, p Parameters) float64 {
	return NormalizedPosition(i, p) * p.halfFanRadians()
}

// RayOpacity returns the opacity of ray i. The weight 1-|pos| is 1 at
// the centre and 0 at the edges, and is mapped linearly onto [floor, 1].
// The floor must lie in (0, 1]; smaller values are raised to MinOpacity.
func RayOpacity(i int, p Parameters, floor float64) float64 {
	floor = max(floor, MinOpacity)
	weight := 1 - math.Abs(NormalizedPosition(i, p))
	return floor + (1-floor)*weight
}

// RayHeight returns the y coordinate of ray i within the input beam.
func RayHeight(i int, p Parameters) float64 {
	return centerY - p.BeamWidth/2 + p.BeamWidth/float64(p.RayCount-1)*float64(i)
}

// OutputHalfLength returns half the length of the uniform line.
func OutputHalfLength(p Parameters) float64 {
	return p.OutputDistance * math.Tan(p.halfFanRadians())
}

// OutputEndpoint returns where fan ray i meets the uniform line.
// The points are spaced evenly along the line by index, not by angle.
func OutputEndpoint(i int, p Parameters) vec.Vec2 {
	h := OutputHalfLength(p)
	y1 := centerY - h
	y2 := centerY + h
	t := float64(i) / float64(p.RayCount-1)
	return vec.Vec2{X: fanEndX, Y: y1 + t*(y2-y1)}
}

// ArrowIndices returns the rays of the output fan which get an arrow:
// the first and last ray and those at about a quarter, half and three
// quarters of the fan. Duplicates, which occur for small ray counts, are
// removed.
func ArrowIndices(p Parameters) []int {
	n := p.RayCount
	idx := []int{0, n / 4, n / 2, 3 * n / 4, n - 1}
	return slices.Compact(idx)
}

// FanOrigin is the point in the output panel from which all fan rays start.
var FanOrigin = vec.Vec2{X: fanStartX, Y: centerY}

// InputPanel returns the primitives of the Gaussian input beam.
func InputPanel(p Parameters) []Primitive {
	prims := make([]Primitive, 0, p.RayCount+3)

	outline := strokeStyle
	outline.Stroke = BeamColor
	outline.Width = 2
	outline.Dash = beamDash
	prims = append(prims, Rect{
		X: beamStartX, Y: centerY - p.BeamWidth/2,
		W: beamEndX - beamStartX, H: p.BeamWidth,
		Style: outline,
	})

	for i := range p.RayCount {
		y := RayHeight(i, p)
		prims = append(prims, ray(beamStartX, y, beamEndX, y, BeamColor,
			RayOpacity(i, p, BeamOpacityFloor)))
	}

	arrow := strokeStyle
	arrow.Stroke = BeamColor
	arrow.Width = 3
	arrow.Arrow = true
	prims = append(prims, Line{
		A:     vec.Vec2{X: beamEndX - 20, Y: centerY},
		B:     vec.Vec2{X: beamEndX, Y: centerY},
		Style: arrow,
	})

	prims = append(prims, Text{
		X: (beamStartX + beamEndX) / 2, Y: centerY - p.BeamWidth/2 - labelOffset,
		Content: "Gaussian Beam",
		Style:   labelStyle,
	})
	return prims
}

// LensPanel returns the primitives of the lens with its incoming and
// refracted rays.
func LensPanel(p Parameters) []Primitive {
	prims := make([]Primitive, 0, 2*p.RayCount+3)

	left := float64(lensX - lensWidth/2)
	right := float64(lensX + lensWidth/2)
	top := float64(centerY - lensHeight/2)

	body := strokeStyle
	body.Stroke = LensColor
	body.Fill = LensFill
	body.Width = 2
	prims = append(prims, Rect{X: left, Y: top, W: lensWidth, H: lensHeight, Style: body})

	face := strokeStyle
	face.Stroke = LensColor
	face.Width = 3
	face.Join = graphics.LineJoinRound
	prims = append(prims, Curve{Points: LensProfile(), Style: face})

	for i := range p.RayCount {
		y := RayHeight(i, p)
		prims = append(prims, ray(beamStartX, y, left, y, BeamColor,
			RayOpacity(i, p, BeamOpacityFloor)))
	}

	for i := range p.RayCount {
		y := RayHeight(i, p)
		angle := RefractionAngle(i, p)
		end := vec.Vec2{
			X: right + fanRayLength*math.Cos(angle),
			Y: y + fanRayLength*math.Sin(angle),
		}
		prims = append(prims, ray(right, y, end.X, end.Y, FanColor,
			RayOpacity(i, p, BeamOpacityFloor)))
	}

	prims = append(prims, Text{
		X: lensX, Y: top - labelOffset,
		Content: "Powell Lens",
		Style:   labelStyle,
	})
	return prims
}

// LensProfile returns the points of the aspheric right face of the lens.
// The face bulges outwards following a half sine, with the maximum at
// mid-height.
func LensProfile() []vec.Vec2 {
	pts := make([]vec.Vec2, lensSegments+1)
	for i := range pts {
		pts[i] = vec.Vec2{
			X: lensX + lensWidth/2 + lensBulge*math.Sin(math.Pi*float64(i)/lensSegments),
			Y: centerY - lensHeight/2 + lensHeight/float64(lensSegments)*float64(i),
		}
	}
	return pts
}

// OutputPanel returns the primitives of the output fan and the uniform line.
func OutputPanel(p Parameters) []Primitive {
	prims := make([]Primitive, 0, p.RayCount+10)

	top := OutputEndpoint(0, p)
	bottom := OutputEndpoint(p.RayCount-1, p)

	uniform := strokeStyle
	uniform.Stroke = FanColor
	uniform.Width = 6
	uniform.Opacity = 0.7
	prims = append(prims, Line{A: top, B: bottom, Style: uniform})

	for i := range p.RayCount {
		end := OutputEndpoint(i, p)
		prims = append(prims, ray(fanStartX, centerY, end.X, end.Y, FanColor,
			RayOpacity(i, p, OutputOpacityFloor)))
	}

	stub := strokeStyle
	stub.Stroke = FanColor
	stub.Width = 2
	stub.Arrow = true
	for _, i := range ArrowIndices(p) {
		end := OutputEndpoint(i, p)
		prims = append(prims, Line{
			A:     vec.Vec2{X: end.X - arrowStub, Y: end.Y},
			B:     end,
			Style: stub,
		})
	}

	prims = append(prims, Text{
		X: (fanStartX + fanEndX) / 2, Y: top.Y - outputLabelGap,
		Content: "Uniform Line",
		Style:   labelStyle,
	})

	half := p.halfFanRadians()
	indicator := strokeStyle
	indicator.Stroke = TextColor
	indicator.Width = 2
	prims = append(prims, Arc{
		Center: FanOrigin,
		Radius: angleRadius,
		Start:  -half,
		End:    half,
		Sweep:  p.FanAngle > 180,
		Style:  indicator,
	})

	readout := labelStyle
	readout.FontSize = readoutFontSize
	prims = append(prims, Text{
		X: fanStartX + angleRadius + angleLabelGap, Y: centerY + 5,
		Content: FormatAngle(p.FanAngle),
		Style:   readout,
	})
	return prims
}

// FormatAngle formats an angle in degrees for display, e.g. "45°".
func FormatAngle(deg float64) string {
	return strconv.FormatFloat(deg, 'f', -1, 64) + "°"
}

func ray(x1, y1, x2, y2 float64, col color.Color, opacity float64) Line {
	s := strokeStyle
	s.Stroke = col
	s.Width = rayWidth
	s.Opacity = opacity
	return Line{A: vec.Vec2{X: x1, Y: y1}, B: vec.Vec2{X: x2, Y: y2}, Style: s}
}
