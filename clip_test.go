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
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestClipSegment(t *testing.T) {
	box := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	tests := []struct {
		name   string
		a, b   vec.Vec2
		ca, cb vec.Vec2
		ok     bool
	}{
		{"inside", vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 9, Y: 9},
			vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 9, Y: 9}, true},
		{"left", vec.Vec2{X: -10, Y: 5}, vec.Vec2{X: 10, Y: 5},
			vec.Vec2{X: 0, Y: 5}, vec.Vec2{X: 10, Y: 5}, true},
		{"both", vec.Vec2{X: -10, Y: 5}, vec.Vec2{X: 30, Y: 5},
			vec.Vec2{X: 0, Y: 5}, vec.Vec2{X: 10, Y: 5}, true},
		{"vertical", vec.Vec2{X: 5, Y: 20}, vec.Vec2{X: 5, Y: -20},
			vec.Vec2{X: 5, Y: 10}, vec.Vec2{X: 5, Y: 0}, true},
		{"diagonal", vec.Vec2{X: 5, Y: 5}, vec.Vec2{X: 15, Y: 10},
			vec.Vec2{X: 5, Y: 5}, vec.Vec2{X: 10, Y: 7.5}, true},
		{"above", vec.Vec2{X: -5, Y: -1}, vec.Vec2{X: 15, Y: -1},
			vec.Vec2{}, vec.Vec2{}, false},
		{"beside", vec.Vec2{X: 11, Y: 0}, vec.Vec2{X: 11, Y: 10},
			vec.Vec2{}, vec.Vec2{}, false},
		{"diagonal miss", vec.Vec2{X: 8, Y: -5}, vec.Vec2{X: 15, Y: 2},
			vec.Vec2{}, vec.Vec2{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ca, cb, ok := ClipSegment(tc.a, tc.b, box)
			if ok != tc.ok {
				t.Fatalf("ok = %t, want %t", ok, tc.ok)
			}
			if !ok {
				return
			}
			if ca.Sub(tc.ca).Length() > epsilon || cb.Sub(tc.cb).Length() > epsilon {
				t.Errorf("got %v .. %v, want %v .. %v", ca, cb, tc.ca, tc.cb)
			}
		})
	}
}

// At 180° the uniform line is of the order 1e18 units long. Clipping must
// still give end points on the guard box.
func TestClipSegmentHuge(t *testing.T) {
	h := OutputHalfLength(withAngle(180))
	a := vec.Vec2{X: fanEndX, Y: centerY - h}
	b := vec.Vec2{X: fanEndX, Y: centerY + h}

	top, bottom, ok := ClipSegment(a, b, GuardBounds)
	if !ok {
		t.Fatal("segment through the panel was rejected")
	}
	wantTop := vec.Vec2{X: fanEndX, Y: GuardBounds.LLy}
	wantBottom := vec.Vec2{X: fanEndX, Y: GuardBounds.URy}
	if top != wantTop || bottom != wantBottom {
		t.Errorf("clipped to %v .. %v, want %v .. %v", top, bottom, wantTop, wantBottom)
	}
}

// An edge ray at 180° starts inside the panel and ends far outside.
// The visible part must keep the direction of the ray.
func TestClipSegmentDirection(t *testing.T) {
	p := withAngle(180)
	end := OutputEndpoint(0, p)

	start, cut, ok := ClipSegment(FanOrigin, end, GuardBounds)
	if !ok {
		t.Fatal("ray was rejected")
	}
	if start != FanOrigin {
		t.Errorf("start moved to %v", start)
	}
	if cut.Y != GuardBounds.LLy {
		t.Errorf("cut at y=%g, want %g", cut.Y, GuardBounds.LLy)
	}
	if math.Abs(cut.X-FanOrigin.X) > 1e-6 {
		t.Errorf("cut at x=%g, want about %g", cut.X, FanOrigin.X)
	}
}
