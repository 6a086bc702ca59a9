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

// Command powell-render draws the Powell lens diagram into a PNG, SVG or
// PDF file.
//
// Usage:
//
//	powell-render -angle 60 -format svg -out powell.svg
//	powell-render -all -format png -out scenarios/
//
// With -all, every scenario of the test case table is written into the
// directory given by -out.
package main

import (
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/powell"
	"seehuhn.de/go/powell/pdfpage"
	"seehuhn.de/go/powell/raster"
	"seehuhn.de/go/powell/svg"
	"seehuhn.de/go/powell/testcases"
)

func main() {
	defaults := powell.DefaultParameters()
	angle := flag.Float64("angle", defaults.FanAngle, "Fan angle in degrees (0-180)")
	rays := flag.Int("rays", defaults.RayCount, "Number of rays")
	width := flag.Int("width", powell.LogicalWidth, "Panel width in pixels")
	height := flag.Int("height", powell.LogicalHeight, "Panel height in pixels")
	format := flag.String("format", "png", "Output format: png, svg or pdf")
	out := flag.String("out", "", "Output file, or output directory with -all")
	all := flag.Bool("all", false, "Render all test scenarios")
	flag.Parse()

	if *all {
		dir := *out
		if dir == "" {
			dir = "scenarios"
		}
		if err := renderAll(dir, *format); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := defaults
	p.FanAngle = *angle
	p.RayCount = *rays

	fname := *out
	if fname == "" {
		fname = "powell." + *format
	}
	if err := render(p, *width, *height, *format, fname); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s → %s\n", powell.FormatAngle(p.FanAngle), fname)
}

// renderAll writes every scenario into dir.
func renderAll(dir, format string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			fname := filepath.Join(dir, name+"."+format)
			if err := render(tc.Parameters(), tc.Width, tc.Height, format, fname); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			fmt.Printf("  %s → %s\n", name, fname)
		}
	}
	return nil
}

// render draws the diagram for p and writes it to fname. The width and
// height give the size of one panel and are ignored for PDF output.
func render(p powell.Parameters, width, height int, format, fname string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid panel size %dx%d", width, height)
	}

	switch format {
	case "png":
		scene := raster.NewScene(width, height)
		if err := draw(p, scene); err != nil {
			return err
		}
		return scene.SavePNG(fname)

	case "svg":
		doc := &svg.Document{
			Width:  powell.NumPanels * width,
			Height: height,
		}
		if err := draw(p, doc); err != nil {
			return err
		}
		return writeFile(fname, doc.WriteAll)

	case "pdf":
		frame := &powell.Frame{}
		if err := draw(p, frame); err != nil {
			return err
		}
		return pdfpage.WriteFile(fname, frame)

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// draw renders all panels of the diagram onto s.
func draw(p powell.Parameters, s powell.Surface) error {
	ctrl, err := powell.NewController(p, s)
	if err != nil {
		return err
	}
	ctrl.Refresh()
	return nil
}

func writeFile(fname string, write func(io.Writer) error) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
