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

package testcases

import (
	"fmt"
	"maps"
	"slices"

	"seehuhn.de/go/diagram"
	"seehuhn.de/go/diagram/merge"
	"seehuhn.de/go/diagram/surface"
)

// TestCase defines a single diagram rendering test.
type TestCase struct {
	Name    string                         // lowercase a-z and _ only
	Width   float64                        // canvas width in pixels
	Height  float64                        // canvas height in pixels
	Domains map[string]diagram.ValueDomain // set before configuration
	Config  merge.Patch                    // diagram configuration
	Lines   []Line                         // drawn in order, after the axes
}

// Line is one data series drawn into the plot area.
type Line struct {
	Series string      // line series identifier
	Config merge.Patch // merged into the series configuration, may be nil
	Grid   bool        // draw the series grid before the line
	Color  string      // overrides the series colour if not empty
	X, Y   []float64   // model coordinates, equal length
}

// Render draws the test case onto s, which must be at least
// Width x Height pixels in size.
func (tc *TestCase) Render(s surface.Surface) (*diagram.Diagram, error) {
	d := diagram.New(s, 0, 0, tc.Width, tc.Height)
	for _, id := range slices.Sorted(maps.Keys(tc.Domains)) {
		if err := d.SetDomain(id, tc.Domains[id]); err != nil {
			return nil, err
		}
	}
	if err := d.Configure(tc.Config); err != nil {
		return nil, err
	}
	if err := d.Draw(); err != nil {
		return nil, err
	}

	for i, l := range tc.Lines {
		ls, err := d.LineSeries(l.Series, l.Config)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if l.Grid {
			if err := ls.DrawGrid(); err != nil {
				return nil, fmt.Errorf("line %d: %w", i, err)
			}
		}
		if l.Color == "" {
			err = ls.DrawXY(l.X, l.Y)
		} else {
			c, perr := surface.ParseColor(l.Color)
			if perr != nil {
				return nil, fmt.Errorf("line %d: %w", i, perr)
			}
			err = ls.DrawXYColor(l.X, l.Y, c)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
	}
	return d, nil
}

// sampled evaluates f at the simulation times 1, 2, ..., n minutes.
func sampled(n int, f func(t float64) float64) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := range n {
		t := float64(i + 1)
		xs[i] = t
		ys[i] = f(t)
	}
	return xs, ys
}
