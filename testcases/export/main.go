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

// Command export writes the scenario table, together with the computed
// geometry of every scenario, to testdata/scenarios.json. The file can be
// used to compare the diagram with other implementations.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/powell"
	"seehuhn.de/go/powell/testcases"
)

func main() {
	var out struct {
		Scenarios []jsonScenario `json:"scenarios"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			out.Scenarios = append(out.Scenarios, toJSON(category, tc))
		}
	}

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/scenarios.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonScenario struct {
	Name           string      `json:"name"`
	Width          int         `json:"width"`
	Height         int         `json:"height"`
	FanAngle       float64     `json:"fan_angle"`
	RayCount       int         `json:"ray_count"`
	Readout        string      `json:"readout"`
	HalfLength     float64     `json:"half_length"`
	Rays           []jsonRay   `json:"rays"`
	ArrowIndices   []int       `json:"arrow_indices"`
	ArcLargeSweep  bool        `json:"arc_large_sweep"`
	PanelHandles   []string    `json:"panels"`
	PrimitiveCount map[int]int `json:"primitive_count"`
}

type jsonRay struct {
	Height         float64    `json:"height"`
	Position       float64    `json:"position"`
	Refraction     float64    `json:"refraction"`
	BeamOpacity    float64    `json:"beam_opacity"`
	OutputOpacity  float64    `json:"output_opacity"`
	OutputEndpoint [2]float64 `json:"output_endpoint"`
}

func toJSON(category string, tc testcases.TestCase) jsonScenario {
	p := tc.Parameters()
	js := jsonScenario{
		Name:           category + "_" + tc.Name,
		Width:          tc.Width,
		Height:         tc.Height,
		FanAngle:       p.FanAngle,
		RayCount:       p.RayCount,
		Readout:        powell.FormatAngle(p.FanAngle),
		HalfLength:     powell.OutputHalfLength(p),
		ArrowIndices:   powell.ArrowIndices(p),
		ArcLargeSweep:  p.FanAngle > 180,
		PrimitiveCount: make(map[int]int),
	}

	for i := range p.RayCount {
		end := powell.OutputEndpoint(i, p)
		js.Rays = append(js.Rays, jsonRay{
			Height:         powell.RayHeight(i, p),
			Position:       powell.NormalizedPosition(i, p),
			Refraction:     powell.RefractionAngle(i, p),
			BeamOpacity:    powell.RayOpacity(i, p, powell.BeamOpacityFloor),
			OutputOpacity:  powell.RayOpacity(i, p, powell.OutputOpacityFloor),
			OutputEndpoint: [2]float64{end.X, end.Y},
		})
	}

	frame := powell.Build(p)
	for _, panel := range powell.Panels() {
		js.PanelHandles = append(js.PanelHandles, panel.Handle())
		js.PrimitiveCount[int(panel)] = len(frame[panel])
	}
	return js
}
