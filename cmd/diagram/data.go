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

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// errNoData is returned for data files without a header row.
var errNoData = errors.New("no data")

// table holds numeric data columns, addressed by the names in the first
// row of the input.  Cells which are empty or not numbers are NaN.
type table struct {
	names   []string
	columns map[string][]float64
}

// column returns the data of the named column.
func (t *table) column(name string) ([]float64, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q (have %s)", name, strings.Join(t.names, ", "))
	}
	return col, nil
}

// loadTable reads a data file.  Files ending in .xlsx, .xlsm or .xltx are
// read as Excel workbooks, using the given sheet or the first sheet if
// sheet is empty; everything else is read as CSV.
func loadTable(fname, sheet string) (*table, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".xlsx", ".xlsm", ".xltx":
		rows, err = readExcel(fname, sheet)
	default:
		rows, err = readCSV(fname)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	t, err := newTable(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return t, nil
}

func readExcel(fname, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errNoData
		}
		sheet = sheets[0]
	}
	return f.GetRows(sheet)
}

func readCSV(fname string) ([][]string, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func newTable(rows [][]string) (*table, error) {
	if len(rows) == 0 {
		return nil, errNoData
	}
	t := &table{columns: make(map[string][]float64)}
	header := rows[0]
	data := rows[1:]
	for j, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := t.columns[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		col := make([]float64, len(data))
		for i, row := range data {
			col[i] = math.NaN()
			if j < len(row) {
				if x, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64); err == nil {
					col[i] = x
				}
			}
		}
		t.names = append(t.names, name)
		t.columns[name] = col
	}
	return t, nil
}
