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
	"math"
)

// Controller owns the diagram parameters and redraws all panels on a
// Surface whenever the fan angle changes.
//
// A Controller is not safe for concurrent use. It is meant to be driven
// from a single event loop.
type Controller struct {
	params  Parameters
	surface Surface
}

// NewController returns a Controller drawing on s.
// Nothing is drawn until Refresh or SetFanAngle is called.
// The fan angle of p is clamped to [MinFanAngle, MaxFanAngle].
func NewController(p Parameters, s Surface) (*Controller, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.FanAngle = clampAngle(p.FanAngle)
	return &Controller{params: p, surface: s}, nil
}

// Parameters returns a copy of the current parameters.
func (c *Controller) Parameters() Parameters {
	return c.params
}

// FanAngle returns the current fan angle in degrees.
func (c *Controller) FanAngle() float64 {
	return c.params.FanAngle
}

// SetFanAngle changes the fan angle and redraws all three panels.
//
// Values outside [MinFanAngle, MaxFanAngle] are clamped to the nearest
// bound. NaN and infinite values are rejected with ErrInvalidAngle, in
// which case nothing is changed or drawn.
func (c *Controller) SetFanAngle(deg float64) error {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAngle, deg)
	}
	c.params.FanAngle = clampAngle(deg)
	c.Refresh()
	return nil
}

// Step changes the fan angle by delta degrees.
func (c *Controller) Step(delta float64) error {
	return c.SetFanAngle(c.params.FanAngle + delta)
}

// Refresh recomputes all panels from the current parameters and hands
// them to the surface.
func (c *Controller) Refresh() {
	for _, panel := range Panels() {
		c.surface.Render(panel, BuildPanel(panel, c.params))
	}
}

// Readout returns the text shown next to the slider, e.g. "45°".
func (c *Controller) Readout() string {
	return FormatAngle(c.params.FanAngle)
}

func clampAngle(deg float64) float64 {
	return max(MinFanAngle, min(MaxFanAngle, deg))
}
