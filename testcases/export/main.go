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

// Command export writes the diagram test cases as input files for the
// diagram command: a JSON description and a CSV data file per test case.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"seehuhn.de/go/diagram"
	"seehuhn.de/go/diagram/testcases"
)

const outDir = "testdata/cases"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := export(name, tc); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

type jsonDescription struct {
	Width   float64                        `json:"width"`
	Height  float64                        `json:"height"`
	Domains map[string]diagram.ValueDomain `json:"domains,omitempty"`
	Config  map[string]any                 `json:"config,omitempty"`
	Lines   []jsonLine                     `json:"lines"`
}

type jsonLine struct {
	Series string         `json:"series"`
	Config map[string]any `json:"config,omitempty"`
	Grid   bool           `json:"grid,omitempty"`
	Color  string         `json:"color,omitempty"`
	X      string         `json:"x"`
	Y      string         `json:"y"`
}

func export(name string, tc testcases.TestCase) error {
	desc := jsonDescription{
		Width:   tc.Width,
		Height:  tc.Height,
		Domains: tc.Domains,
		Config:  tc.Config,
	}
	var header []string
	var columns [][]float64
	for i, l := range tc.Lines {
		x := fmt.Sprintf("x%d", i)
		y := fmt.Sprintf("y%d", i)
		desc.Lines = append(desc.Lines, jsonLine{
			Series: l.Series,
			Config: l.Config,
			Grid:   l.Grid,
			Color:  l.Color,
			X:      x,
			Y:      y,
		})
		header = append(header, x, y)
		columns = append(columns, l.X, l.Y)
	}

	f, err := os.Create(filepath.Join(outDir, name+".json"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	err = enc.Encode(desc)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	return writeCSV(filepath.Join(outDir, name+".csv"), header, columns)
}

// writeCSV writes the columns side by side.  Missing and NaN values are
// written as empty cells.
func writeCSV(fname string, header []string, columns [][]float64) error {
	rows := 0
	for _, c := range columns {
		rows = max(rows, len(c))
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Write(header)
	record := make([]string, len(columns))
	for i := range rows {
		for j, c := range columns {
			record[j] = ""
			if i < len(c) && !math.IsNaN(c[i]) {
				record[j] = strconv.FormatFloat(c[i], 'g', -1, 64)
			}
		}
		w.Write(record)
	}
	w.Flush()
	err = w.Error()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
