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
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// Panel identifies one of the three drawing surfaces.
type Panel int

const (
	Input Panel = iota
	Lens
	Output

	// NumPanels is the number of panels in the diagram.
	NumPanels = 3
)

// Size of the logical coordinate space of every panel.
const (
	LogicalWidth  = 300
	LogicalHeight = 350
)

// LogicalBounds is the logical coordinate space of a panel.
var LogicalBounds = rect.Rect{URx: LogicalWidth, URy: LogicalHeight}

// Panels returns all panels in drawing order.
func Panels() []Panel {
	return []Panel{Input, Lens, Output}
}

func (p Panel) String() string {
	switch p {
	case Input:
		return "input"
	case Lens:
		return "lens"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("Panel(%d)", int(p))
	}
}

// Handle returns the identifier the hosting page uses for the panel's
// drawing surface.
func (p Panel) Handle() string {
	return p.String() + "Panel"
}

// FitMatrix returns the transformation from logical panel coordinates to
// a device box of size width×height. The scale is uniform and the panel
// is centred in the box, so that nothing is cropped.
func FitMatrix(width, height float64) matrix.Matrix {
	s := min(width/LogicalWidth, height/LogicalHeight)
	tx := (width - LogicalWidth*s) / 2
	ty := (height - LogicalHeight*s) / 2
	return matrix.Scale(s, s).Translate(tx, ty)
}

// Surface receives the primitive lists of the diagram.
//
// Render must discard everything previously drawn on the panel and then
// draw prims in order, so that later primitives appear on top.
type Surface interface {
	Render(panel Panel, prims []Primitive)
}

// Frame is a Surface which keeps the most recent primitive list of every
// panel in memory.
type Frame [NumPanels][]Primitive

// Render implements the Surface interface.
func (f *Frame) Render(panel Panel, prims []Primitive) {
	f[panel] = prims
}

// Build returns the complete frame for the given parameters.
func Build(p Parameters) *Frame {
	f := &Frame{}
	for _, panel := range Panels() {
		f.Render(panel, BuildPanel(panel, p))
	}
	return f
}
