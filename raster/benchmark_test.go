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
	"fmt"
	"maps"
	"slices"
	"testing"

	"seehuhn.de/go/powell"
	"seehuhn.de/go/powell/testcases"
)

// BenchmarkSetFanAngle measures one slider step: recomputing and
// rasterising all three panels.
func BenchmarkSetFanAngle(b *testing.B) {
	sizes := []int{1, 2, 4}

	for _, scale := range sizes {
		w, h := scale*powell.LogicalWidth, scale*powell.LogicalHeight
		b.Run(fmt.Sprintf("%dx%d", w, h), func(b *testing.B) {
			s := NewScene(w, h)
			ctrl, err := powell.NewController(powell.DefaultParameters(), s)
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			b.ReportAllocs()

			angle := 0.0
			for b.Loop() {
				if err := ctrl.SetFanAngle(angle); err != nil {
					b.Fatal(err)
				}
				angle += 7
				if angle > powell.MaxFanAngle {
					angle = 0
				}
			}
		})
	}
}

// BenchmarkRenderAll measures steady-state performance by reusing one
// scene per panel size across all scenarios.
func BenchmarkRenderAll(b *testing.B) {
	var cases []testcases.TestCase
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		cases = append(cases, testcases.All[category]...)
	}

	scenes := make(map[[2]int]*Scene)
	for _, tc := range cases {
		key := [2]int{tc.Width, tc.Height}
		if scenes[key] == nil {
			scenes[key] = NewScene(tc.Width, tc.Height)
		}
	}

	b.ResetTimer()
	for b.Loop() {
		for _, tc := range cases {
			s := scenes[[2]int{tc.Width, tc.Height}]
			p := tc.Parameters()
			for _, panel := range powell.Panels() {
				s.Render(panel, powell.BuildPanel(panel, p))
			}
		}
	}
}
