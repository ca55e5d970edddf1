// seehuhn.de/go/diagram - piecewise-linear diagrams on 2D surfaces
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

// Command genref generates reference images for the diagram tests.
// Every test case is rendered to PNG with the bitmap surface; SVG and PDF
// renderings are written alongside for visual comparison.
// Run from the module root directory.
package main

import (
	"bytes"
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/diagram/surface/bitmap"
	"seehuhn.de/go/diagram/surface/pdfsurf"
	"seehuhn.de/go/diagram/surface/svgsurf"
	"seehuhn.de/go/diagram/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			base := filepath.Join(refDir, name)
			if err := generatePNG(tc, base+".png"); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := generateSVG(tc, base+".svg"); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := generatePDF(tc, base+".pdf"); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePNG(tc testcases.TestCase, fname string) error {
	w, h := int(math.Ceil(tc.Width)), int(math.Ceil(tc.Height))
	s := bitmap.New(w, h)
	if _, err := tc.Render(s); err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	if err := s.WritePNG(buf); err != nil {
		return err
	}
	return os.WriteFile(fname, buf.Bytes(), 0644)
}

func generateSVG(tc testcases.TestCase, fname string) error {
	buf := &bytes.Buffer{}
	s := svgsurf.New(buf, int(math.Ceil(tc.Width)), int(math.Ceil(tc.Height)))
	if _, err := tc.Render(s); err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return err
	}
	return os.WriteFile(fname, buf.Bytes(), 0644)
}

func generatePDF(tc testcases.TestCase, fname string) error {
	s, err := pdfsurf.Create(fname, tc.Width, tc.Height)
	if err != nil {
		return err
	}
	_, err = tc.Render(s)
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}
