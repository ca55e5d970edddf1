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
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"seehuhn.de/go/diagram"
	"seehuhn.de/go/diagram/surface"
	"seehuhn.de/go/diagram/surface/bitmap"
	"seehuhn.de/go/diagram/surface/pdfsurf"
	"seehuhn.de/go/diagram/surface/svgsurf"
)

// description is the JSON input of the render command.
type description struct {
	Width   float64                        `json:"width"`
	Height  float64                        `json:"height"`
	Domains map[string]diagram.ValueDomain `json:"domains,omitempty"`

	// AutoDomains maps domain identifiers to data columns.  The domain
	// is chosen to cover the data in the column.
	AutoDomains map[string]string `json:"auto-domains,omitempty"`

	Config map[string]any `json:"config,omitempty"`
	Lines  []lineDesc     `json:"lines"`
}

type lineDesc struct {
	Series string         `json:"series"`
	Config map[string]any `json:"config,omitempty"`
	Grid   bool           `json:"grid,omitempty"`
	Color  string         `json:"color,omitempty"`
	X      string         `json:"x"`
	Y      string         `json:"y"`

	// Axis optionally names an axis slot, like "secondary-right".  The
	// series then uses the value domain shown by this axis.
	Axis string `json:"axis,omitempty"`
}

// autoSteps is the maximal number of ticks in automatic domains.
const autoSteps = 10

func readDescription(fname string) (*description, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	desc := &description{Width: 600, Height: 300}
	if err := dec.Decode(desc); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return desc, nil
}

type renderOptions struct {
	width, height float64 // override the description if positive
	extent        bool
	log           *slog.Logger
}

// renderFile draws the diagram into outPath.  The output format is
// chosen by the file name extension: .png, .svg or .pdf.
func renderFile(desc *description, tab *table, outPath string, opt renderOptions) error {
	if opt.width > 0 {
		desc.Width = opt.width
	}
	if opt.height > 0 {
		desc.Height = opt.height
	}
	if !(desc.Width > 0 && desc.Height > 0) {
		return fmt.Errorf("invalid diagram size %gx%g", desc.Width, desc.Height)
	}
	w, h := int(math.Ceil(desc.Width)), int(math.Ceil(desc.Height))

	switch ext := strings.ToLower(filepath.Ext(outPath)); ext {
	case ".png":
		s := bitmap.New(w, h)
		if err := drawDiagram(s, desc, tab, opt); err != nil {
			return err
		}
		buf := &bytes.Buffer{}
		if err := s.WritePNG(buf); err != nil {
			return err
		}
		return os.WriteFile(outPath, buf.Bytes(), 0644)

	case ".svg":
		buf := &bytes.Buffer{}
		s := svgsurf.New(buf, w, h)
		if err := drawDiagram(s, desc, tab, opt); err != nil {
			return err
		}
		if err := s.Close(); err != nil {
			return err
		}
		return os.WriteFile(outPath, buf.Bytes(), 0644)

	case ".pdf":
		s, err := pdfsurf.Create(outPath, desc.Width, desc.Height)
		if err != nil {
			return err
		}
		err = drawDiagram(s, desc, tab, opt)
		if cerr := s.Close(); err == nil {
			err = cerr
		}
		return err

	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}

func drawDiagram(s surface.Surface, desc *description, tab *table, opt renderOptions) error {
	d := diagram.New(s, 0, 0, desc.Width, desc.Height, diagram.WithLogger(opt.log))

	for _, id := range slices.Sorted(maps.Keys(desc.Domains)) {
		if err := d.SetDomain(id, desc.Domains[id]); err != nil {
			return err
		}
	}
	for _, id := range slices.Sorted(maps.Keys(desc.AutoDomains)) {
		col, err := tab.column(desc.AutoDomains[id])
		if err != nil {
			return fmt.Errorf("domain %q: %w", id, err)
		}
		dom, err := diagram.DataDomain(col, autoSteps)
		if err != nil {
			return fmt.Errorf("domain %q: %w", id, err)
		}
		if err := d.SetDomain(id, dom); err != nil {
			return err
		}
	}

	if err := d.Configure(desc.Config); err != nil {
		return err
	}
	if err := d.Draw(); err != nil {
		return err
	}
	if opt.extent {
		if err := d.DrawExtent(); err != nil {
			return err
		}
	}

	for i, l := range desc.Lines {
		if err := drawLine(d, tab, l); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}
	opt.log.Info("diagram drawn", "lines", len(desc.Lines), "domains", d.DomainIDs())
	return nil
}

func drawLine(d *diagram.Diagram, tab *table, l lineDesc) error {
	if l.Series == "" {
		l.Series = l.Y
	}
	patch := l.Config
	if l.Axis != "" {
		slot, ok := diagram.ParseSlot(l.Axis)
		if !ok {
			return fmt.Errorf("line %q: unknown axis %q", l.Series, l.Axis)
		}
		a := d.Axis(slot)
		if a == nil {
			return fmt.Errorf("line %q: axis %q is not configured", l.Series, l.Axis)
		}
		key := "x-domain"
		if slot.Vertical() {
			key = "y-domain"
		}
		patch = maps.Clone(patch)
		if patch == nil {
			patch = map[string]any{}
		}
		patch[key] = a.DomainID()
	}
	ls, err := d.LineSeries(l.Series, patch)
	if err != nil {
		return err
	}
	xs, err := tab.column(l.X)
	if err != nil {
		return err
	}
	ys, err := tab.column(l.Y)
	if err != nil {
		return err
	}
	if l.Grid {
		if err := ls.DrawGrid(); err != nil {
			return err
		}
	}
	if l.Color == "" {
		return ls.DrawXY(xs, ys)
	}
	c, err := surface.ParseColor(l.Color)
	if err != nil {
		return err
	}
	return ls.DrawXYColor(xs, ys, c)
}
