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
	"errors"
	"fmt"
	"math"
)

// Errors reported by parameter validation and the Controller.
var (
	// ErrInvalidAngle is returned for fan angles which are NaN or infinite.
	ErrInvalidAngle = errors.New("powell: invalid fan angle")

	// ErrTooFewRays is returned when fewer than two rays are requested.
	// Rays are distributed over RayCount-1 gaps, so at least two are needed.
	ErrTooFewRays = errors.New("powell: ray count must be at least 2")

	// ErrInvalidParameter is returned for non-positive or non-finite
	// distances and widths.
	ErrInvalidParameter = errors.New("powell: invalid parameter")
)

// Range of fan angles accepted by the Controller, in degrees.
const (
	MinFanAngle = 0
	MaxFanAngle = 180
)

// Parameters holds the values the diagram is computed from.
// Only FanAngle changes at run time; the other fields are fixed when the
// Controller is created.
type Parameters struct {
	// FanAngle is the full angular spread of the output fan, in degrees.
	FanAngle float64

	// OutputDistance is the distance from the fan origin to the uniform
	// line, in logical units.
	OutputDistance float64

	// BeamWidth is the height of the input beam, in logical units.
	BeamWidth float64

	// RayCount is the number of rays drawn per panel. Must be at least 2.
	RayCount int
}

// DefaultParameters returns the parameters the diagram starts with.
func DefaultParameters() Parameters {
	return Parameters{
		FanAngle:       45,
		OutputDistance: 200,
		BeamWidth:      20,
		RayCount:       15,
	}
}

// Validate checks that p can be used to build the diagram.
// FanAngle is only checked for being finite: the geometry functions accept
// any angle, and range restriction is the Controller's job.
func (p Parameters) Validate() error {
	if math.IsNaN(p.FanAngle) || math.IsInf(p.FanAngle, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAngle, p.FanAngle)
	}
	if p.RayCount < 2 {
		return fmt.Errorf("%w (got %d)", ErrTooFewRays, p.RayCount)
	}
	if !isPositive(p.OutputDistance) {
		return fmt.Errorf("%w: output distance %v", ErrInvalidParameter, p.OutputDistance)
	}
	if !isPositive(p.BeamWidth) {
		return fmt.Errorf("%w: beam width %v", ErrInvalidParameter, p.BeamWidth)
	}
	return nil
}

func isPositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

// halfFanRadians returns half the fan angle, in radians.
func (p Parameters) halfFanRadians() float64 {
	return p.FanAngle * math.Pi / 180 / 2
}

// mid returns the fractional index of the centre ray.
func (p Parameters) mid() float64 {
	return float64(p.RayCount-1) / 2
}
