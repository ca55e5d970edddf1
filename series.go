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

package diagram

import (
	"fmt"
	"image/color"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/diagram/merge"
	"seehuhn.de/go/diagram/surface"
)

// Sample is one value of a time series, in model units.
type Sample struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// LineSeries draws polylines and grids into the plot area of a diagram.
// The x and y coordinates of the data are mapped through two value
// domains of the diagram, which are looked up at every draw.
type LineSeries struct {
	id  string
	d   *Diagram
	cfg *SeriesConfig

	color     color.NRGBA
	gridColor color.NRGBA
	cap       surface.LineCap
	join      surface.LineJoin
}

// ID returns the identifier of the series.
func (ls *LineSeries) ID() string {
	return ls.id
}

// Config returns a copy of the current configuration of the series.
func (ls *LineSeries) Config() SeriesConfig {
	c := *ls.cfg
	c.Dash = append([]float64(nil), c.Dash...)
	return c
}

// Configure merges patch into the configuration of the series.  On error,
// the previous configuration is kept.
func (ls *LineSeries) Configure(patch merge.Patch) error {
	cfg, err := merge.Apply(ls.cfg, defaultSeries, patch)
	if err != nil {
		return fmt.Errorf("series %q: %w", ls.id, err)
	}
	col, err := parseColor("color", cfg.Color)
	if err != nil {
		return fmt.Errorf("series %q: %w", ls.id, err)
	}
	grid, err := parseColor("grid-color", cfg.GridColor)
	if err != nil {
		return fmt.Errorf("series %q: %w", ls.id, err)
	}
	lc, err := surface.ParseLineCap(cfg.LineCap)
	if err != nil {
		return fmt.Errorf("series %q: line-cap: %w", ls.id, err)
	}
	lj, err := surface.ParseLineJoin(cfg.LineJoin)
	if err != nil {
		return fmt.Errorf("series %q: line-join: %w", ls.id, err)
	}
	ls.cfg = cfg
	ls.color = col
	ls.gridColor = grid
	ls.cap = lc
	ls.join = lj
	return nil
}

func (ls *LineSeries) mappers() (mx, my *Mapper, err error) {
	mx, my, err = ls.d.PlotMappers(ls.cfg.XDomain, ls.cfg.YDomain)
	if err != nil && err != ErrNotConfigured {
		err = fmt.Errorf("series %q: %w", ls.id, err)
	}
	return mx, my, err
}

// DrawGrid draws vertical lines at all step boundaries of the x domain
// and horizontal lines at all step boundaries of the y domain, except
// for the boundaries at the start of the domains.
func (ls *LineSeries) DrawGrid() error {
	mx, my, err := ls.mappers()
	if err != nil {
		return err
	}
	xs := mx.TickPixels()
	ys := my.TickPixels()
	x0, xn := xs[0], xs[len(xs)-1]
	y0, yn := ys[0], ys[len(ys)-1]

	s := ls.d.plot.Context()
	s.Save()
	defer s.Restore()
	s.SetStrokeColor(ls.gridColor)
	s.SetLineWidth(1)
	s.SetLineDash(nil)
	s.SetLineCap(surface.CapButt)
	s.SetLineJoin(surface.JoinMiter)
	s.BeginPath()
	for _, x := range xs[1:] {
		s.MoveTo(x, y0)
		s.LineTo(x, yn)
	}
	for _, y := range ys[1:] {
		s.MoveTo(x0, y)
		s.LineTo(xn, y)
	}
	s.Stroke()
	ls.d.stateDrawn()
	return nil
}

// Draw draws a polyline through the given points.
func (ls *LineSeries) Draw(points []vec.Vec2) error {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return ls.DrawXYColor(xs, ys, nil)
}

// DrawSamples draws a polyline through the samples of a time series,
// using Time as the x coordinate.
func (ls *LineSeries) DrawSamples(samples []Sample) error {
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i], ys[i] = s.Time, s.Value
	}
	return ls.DrawXYColor(xs, ys, nil)
}

// DrawXY draws a polyline through the points (xs[i], ys[i]).
func (ls *LineSeries) DrawXY(xs, ys []float64) error {
	return ls.DrawXYColor(xs, ys, nil)
}

// DrawXYColor is like DrawXY, but uses the colour c instead of the
// configured colour if c is not nil.
//
// Points which are NaN or lie outside the value domains are not drawn.
// The line is interrupted at such points and continues at the next
// point which can be shown.
func (ls *LineSeries) DrawXYColor(xs, ys []float64, c color.Color) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("series %q: %d x values but %d y values", ls.id, len(xs), len(ys))
	}
	mx, my, err := ls.mappers()
	if err != nil {
		return err
	}

	s := ls.d.plot.Context()
	s.Save()
	defer s.Restore()
	if c != nil {
		s.SetStrokeColor(c)
	} else {
		s.SetStrokeColor(ls.color)
	}
	s.SetLineWidth(ls.cfg.Width)
	s.SetLineDash(ls.cfg.Dash)
	s.SetLineDashOffset(ls.cfg.DashOffset)
	s.SetLineCap(ls.cap)
	s.SetLineJoin(ls.join)
	s.BeginPath()

	penDown := false
	for i := range xs {
		px := mx.ModelToPixel(xs[i])
		py := my.ModelToPixel(ys[i])
		if math.IsNaN(px) || math.IsNaN(py) {
			penDown = false
			continue
		}
		if penDown {
			s.LineTo(px, py)
		} else {
			s.MoveTo(px, py)
			penDown = true
		}
	}
	s.Stroke()
	ls.d.stateDrawn()
	return nil
}
