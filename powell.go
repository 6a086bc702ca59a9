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

// Package powell computes an educational diagram of a Powell lens, which
// turns a Gaussian laser beam into a line of uniform intensity.
//
// The diagram has three panels: the input beam, the lens and the output
// fan. All of them are computed from a single Parameters value by pure
// functions which return lists of drawing primitives in a 300×350
// logical coordinate space. A Controller owns the parameters and sends
// fresh primitive lists to a Surface whenever the fan angle changes.
//
// The subpackages raster, svg and pdfpage draw primitive lists into
// images, SVG documents and PDF files.
package powell
