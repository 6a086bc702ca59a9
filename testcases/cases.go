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

// angleCases sweep the fan angle over the slider range.
var angleCases = []TestCase{
	{Name: "collapsed", FanAngle: 0, Width: 300, Height: 350},
	{Name: "narrow", FanAngle: 15, Width: 300, Height: 350},
	{Name: "default", FanAngle: 45, Width: 300, Height: 350},
	{Name: "right", FanAngle: 90, Width: 300, Height: 350},
	{Name: "wide", FanAngle: 135, Width: 300, Height: 350},

	// the outermost rays are parallel to the uniform line
	{Name: "straight", FanAngle: 180, Width: 300, Height: 350},
}

// rayCases vary the number of rays. With two or three rays several
// arrow stubs coincide.
var rayCases = []TestCase{
	{Name: "two", FanAngle: 45, RayCount: 2, Width: 300, Height: 350},
	{Name: "three", FanAngle: 45, RayCount: 3, Width: 300, Height: 350},
	{Name: "fifteen", FanAngle: 60, RayCount: 15, Width: 300, Height: 350},
	{Name: "thirty_one", FanAngle: 60, RayCount: 31, Width: 300, Height: 350},
}

// sizeCases render into boxes whose aspect ratio differs from the
// logical panel, so that the panel is letterboxed.
var sizeCases = []TestCase{
	{Name: "small", FanAngle: 45, Width: 150, Height: 175},
	{Name: "large", FanAngle: 45, Width: 600, Height: 700},
	{Name: "wide_box", FanAngle: 45, Width: 500, Height: 350},
	{Name: "tall_box", FanAngle: 45, Width: 300, Height: 600},
	{Name: "tiny", FanAngle: 90, Width: 30, Height: 35},
}
