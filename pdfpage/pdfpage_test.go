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

package pdfpage

import (
	"bytes"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/powell"
)

func TestBlend(t *testing.T) {
	tests := []struct {
		name    string
		col     color.Color
		alpha   float64
		r, g, b float64
	}{
		{"opaque black", color.Black, 1, 0, 0, 0},
		{"invisible black", color.Black, 0, 1, 1, 1},
		{"half black", color.Black, 0.5, 0.5, 0.5, 0.5},
		{"white", color.White, 0.3, 1, 1, 1},
		{"red", color.RGBA{R: 0xff, A: 0xff}, 0.5, 1, 0.5, 0.5},
		{"colour alpha", color.NRGBA{A: 0x80}, 1, 1 - 128.0/255, 1 - 128.0/255, 1 - 128.0/255},
		{"both alphas", color.NRGBA{A: 0xff / 5}, 0.5, 0.9, 0.9, 0.9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b := blend(tc.col, tc.alpha)
			if math.Abs(r-tc.r) > 1e-9 || math.Abs(g-tc.g) > 1e-9 || math.Abs(b-tc.b) > 1e-9 {
				t.Errorf("got (%g, %g, %g), want (%g, %g, %g)", r, g, b, tc.r, tc.g, tc.b)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	for _, angle := range []float64{0, 45, 180} {
		p := powell.DefaultParameters()
		p.FanAngle = angle
		fname := filepath.Join(t.TempDir(), "diagram.pdf")

		if err := WriteFile(fname, powell.Build(p)); err != nil {
			t.Fatalf("%g°: %v", angle, err)
		}
		data, err := os.ReadFile(fname)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			t.Errorf("%g°: missing PDF header", angle)
		}
		if !bytes.Contains(data, []byte("%%EOF")) {
			t.Errorf("%g°: missing end of file marker", angle)
		}
	}
}

func TestWriteFileBadPath(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "missing", "diagram.pdf")
	if err := WriteFile(fname, powell.Build(powell.DefaultParameters())); err == nil {
		t.Error("writing into a missing directory succeeded")
	}
}
