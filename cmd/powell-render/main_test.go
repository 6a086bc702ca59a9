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

package main

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/powell"
)

func TestRender(t *testing.T) {
	p := powell.DefaultParameters()
	dir := t.TempDir()

	tests := []struct {
		format string
		prefix string
	}{
		{"png", "\x89PNG"},
		{"svg", "<?xml"},
		{"pdf", "%PDF-"},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			fname := filepath.Join(dir, "out."+tc.format)
			if err := render(p, 150, 175, tc.format, fname); err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(fname)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, []byte(tc.prefix)) {
				t.Errorf("output starts with %q", data[:min(len(data), 8)])
			}
		})
	}
}

func TestRenderPNGSize(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "out.png")
	if err := render(powell.DefaultParameters(), 100, 120, "png", fname); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Height != 120 || cfg.Width <= 300 {
		t.Errorf("got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	p := powell.DefaultParameters()

	if err := render(p, 300, 350, "gif", filepath.Join(dir, "x.gif")); err == nil {
		t.Error("unknown format accepted")
	}
	if err := render(p, 0, 350, "png", filepath.Join(dir, "x.png")); err == nil {
		t.Error("zero width accepted")
	}

	bad := p
	bad.FanAngle = math.NaN()
	err := render(bad, 300, 350, "png", filepath.Join(dir, "x.png"))
	if !errors.Is(err, powell.ErrInvalidAngle) {
		t.Errorf("NaN angle: got %v", err)
	}

	bad = p
	bad.RayCount = 1
	err = render(bad, 300, 350, "svg", filepath.Join(dir, "x.svg"))
	if !errors.Is(err, powell.ErrTooFewRays) {
		t.Errorf("one ray: got %v", err)
	}
}

func TestRenderAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scenarios")
	if err := renderAll(dir, "svg"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"angle_straight.svg", "rays_two.svg", "size_tiny.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error(err)
		}
	}
}
