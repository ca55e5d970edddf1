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

var layoutCases = []TestCase{
	{
		Name:   "all_slots",
		Width:  600,
		Height: 400,
		Domains: map[string]diagram.ValueDomain{
			"x": {Start: 0, Segments: []diagram.Segment{
				{Step: 10, Count: 6, Proportion: 50},
				{Step: 30, Count: 2, Proportion: 50},
			}},
		},
		Config: merge.Patch{
			"title":            map[string]any{"text": "All axis slots"},
			"primary-left":     map[string]any{},
			"secondary-left":   map[string]any{},
			"primary-right":    map[string]any{},
			"secondary-right":  map[string]any{},
			"primary-top":      map[string]any{},
			"secondary-top":    map[string]any{},
			"primary-bottom":   map[string]any{},
			"secondary-bottom": map[string]any{},
		},
		Lines: []Line{
			{
				Series: "diagonal",
				Grid:   true,
				X:      []float64{0, 60, 120},
				Y:      []float64{0, 50, 100},
			},
		},
	},
	{
		Name:   "untitled",
		Width:  300,
		Height: 200,
		Config: merge.Patch{
			"margin":         0,
			"primary-left":   map[string]any{"color": "blue"},
			"primary-bottom": map[string]any{"reversed": true},
		},
		Lines: []Line{
			{
				Series: "dashed",
				Config: merge.Patch{"dash": []any{6, 3}, "width": 2, "color": "#804000"},
				X:      []float64{0, 20, 40, 60, 80, 100},
				Y:      []float64{10, 90, 20, 80, 30, 70},
			},
		},
	},
	{
		Name:   "gaps",
		Width:  400,
		Height: 250,
		Config: merge.Patch{
			"title":          map[string]any{"text": "Missing samples", "size": 16},
			"primary-left":   map[string]any{},
			"primary-bottom": map[string]any{},
		},
		Lines: []Line{
			{
				Series: "gaps",
				Grid:   true,
				X:      []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
				Y:      []float64{5, 15, math.NaN(), 35, 45, 150, 65, 75, -20, 95, 100},
			},
		},
	},
}
