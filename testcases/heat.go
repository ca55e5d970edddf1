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
	"math"

	"seehuhn.de/go/diagram"
	"seehuhn.de/go/diagram/merge"
)

// The heat strain cases show the time series of a two hour simulated
// exposure, one sample per minute.  The curves are smooth approximations
// of typical simulation output.

const minutes = 120

var lineColors = []string{
	"rgb(255,0,0)",
	"rgb(0,255,0)",
	"rgb(0,0,255)",
	"rgb(0,255,255)",
	"rgb(255,0,255)",
}

var timeDomain = diagram.ValueDomain{
	Start:    0,
	Segments: []diagram.Segment{{Step: 10, Count: 12}},
}

// approach rises from a to b with time constant tau.
func approach(a, b, tau float64) func(float64) float64 {
	return func(t float64) float64 {
		return a + (b-a)*(1-math.Exp(-t/tau))
	}
}

func line(series string, grid bool, color string, f func(float64) float64) Line {
	xs, ys := sampled(minutes, f)
	return Line{Series: series, Grid: grid, Color: color, X: xs, Y: ys}
}

var temperatureCases = []TestCase{
	coreTemperatures(),
	clothingTemperature(),
}

func coreTemperatures() TestCase {
	skin := line("skin", false, "", approach(34.6, 36.1, 20))
	skin.Config = merge.Patch{"y-domain": "y-skin", "color": lineColors[3]}
	return TestCase{
		Name:   "core",
		Width:  600,
		Height: 300,
		Domains: map[string]diagram.ValueDomain{
			"x":      timeDomain,
			"y":      {Start: 35, Segments: []diagram.Segment{{Step: 0.5, Count: 8}}},
			"y-skin": {Start: 34, Segments: []diagram.Segment{{Step: 0.5, Count: 8}}},
		},
		Config: merge.Patch{
			"title":          map[string]any{"text": "Core and skin temperature [°C]"},
			"primary-left":   map[string]any{},
			"primary-right":  map[string]any{"domain": "y-skin"},
			"primary-bottom": map[string]any{},
		},
		Lines: []Line{
			line("core", true, lineColors[0], approach(37.0, 38.2, 30)),
			line("core", false, lineColors[1], approach(36.9, 37.9, 40)),
			line("core", false, lineColors[2], approach(36.95, 37.85, 45)),
			skin,
		},
	}
}

func clothingTemperature() TestCase {
	tcl := func(t float64) float64 {
		return 33.5 + 1.4*(1-math.Exp(-t/25)) + 0.3*math.Sin(t/9)
	}
	l := line("clothing", true, lineColors[0], tcl)
	y, err := diagram.DataDomain(l.Y, 8)
	if err != nil {
		panic(err)
	}
	return TestCase{
		Name:   "clothing",
		Width:  600,
		Height: 300,
		Domains: map[string]diagram.ValueDomain{
			"x": timeDomain,
			"y": y,
		},
		Config: merge.Patch{
			"title":          map[string]any{"text": "Clothing temperature [°C]"},
			"primary-left":   map[string]any{},
			"primary-bottom": map[string]any{},
		},
		Lines: []Line{l},
	}
}

var sweatCases = []TestCase{
	sweatRates(),
	sweatTotal(),
}

func sweatRates() TestCase {
	required := func(t float64) float64 {
		return 280 + 20*math.Sin(t/15)
	}
	maximum := func(float64) float64 { return 400 }
	return TestCase{
		Name:   "rate",
		Width:  600,
		Height: 300,
		Domains: map[string]diagram.ValueDomain{
			"x": timeDomain,
			"y": {Start: 0, Segments: []diagram.Segment{{Step: 100, Count: 5}}},
		},
		Config: merge.Patch{
			"title":          map[string]any{"text": "Sweat rates [W/m²]"},
			"primary-left":   map[string]any{},
			"primary-bottom": map[string]any{},
		},
		Lines: []Line{
			line("rates", true, lineColors[0], approach(0, 250, 15)),
			line("rates", false, lineColors[1], approach(0, 200, 20)),
			line("rates", false, lineColors[2], required),
			line("rates", false, lineColors[3], maximum),
		},
	}
}

func sweatTotal() TestCase {
	total := func(t float64) float64 {
		return 55 * (t - 15*(1-math.Exp(-t/15)))
	}
	l := line("total", true, "", total)
	l.Config = merge.Patch{"color": lineColors[0]}
	return TestCase{
		Name:   "total",
		Width:  600,
		Height: 300,
		Domains: map[string]diagram.ValueDomain{
			"x": timeDomain,
			"y": {Start: 0, Segments: []diagram.Segment{{Step: 1000, Count: 8}}},
		},
		Config: merge.Patch{
			"title":          map[string]any{"text": "Accumulated sweat [g]"},
			"primary-left":   map[string]any{},
			"primary-bottom": map[string]any{},
		},
		Lines: []Line{l},
	}
}
