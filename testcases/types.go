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

package testcases

import "seehuhn.de/go/powell"

// TestCase defines a single diagram to render.
type TestCase struct {
	Name     string  // lowercase a-z, 0-9 and _ only
	FanAngle float64 // full fan angle in degrees
	RayCount int     // number of rays (0 means the default)
	Width    int     // panel width in pixels
	Height   int     // panel height in pixels
}

// Parameters returns the diagram parameters of the test case.
func (tc TestCase) Parameters() powell.Parameters {
	p := powell.DefaultParameters()
	p.FanAngle = tc.FanAngle
	if tc.RayCount != 0 {
		p.RayCount = tc.RayCount
	}
	return p
}
