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

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/diagram/surface"
	"seehuhn.de/go/diagram/viewport"
)

// tickLength is the length of axis tick marks in pixels.
const tickLength = 5

// Axis draws one configured axis slot of a diagram.  Axes are created by
// Diagram.Configure and are replaced on every reconfiguration.
type Axis struct {
	slot     Slot
	domainID string
	reversed bool
	color    color.NRGBA
	fontSize float64

	port   *viewport.Viewport
	mapper *Mapper
}

func newAxis(slot Slot, cfg *AxisConfig, r rect.Rect, d ValueDomain, fontSize float64) (*Axis, error) {
	col, err := parseColor(slot.String()+".color", cfg.Color)
	if err != nil {
		return nil, err
	}
	a := &Axis{
		slot:     slot,
		domainID: cfg.Domain,
		reversed: cfg.Reversed,
		color:    col,
		fontSize: fontSize,
	}

	if slot.Vertical() {
		a.mapper, err = NewMapper(d, r.URy-r.LLy, 0)
	} else {
		a.mapper, err = NewMapper(d, 0, r.URx-r.LLx)
	}
	if err != nil {
		if de, ok := err.(*DomainError); ok {
			de.ID = cfg.Domain
		}
		return nil, fmt.Errorf("%s: %w", slot, err)
	}
	return a, nil
}

// Slot returns the slot the axis is shown in.
func (a *Axis) Slot() Slot {
	return a.slot
}

// DomainID returns the identifier of the value domain shown by the axis.
func (a *Axis) DomainID() string {
	return a.domainID
}

// Mapper returns the mapping between model values and pixel positions
// along the axis, in the coordinates of the axis viewport.
func (a *Axis) Mapper() *Mapper {
	return a.mapper
}

// Viewport returns the area of the axis.
func (a *Axis) Viewport() *viewport.Viewport {
	return a.port
}

// Draw draws the axis line, one tick mark per step boundary and the tick
// labels.
//
// Horizontal axes have their base line at the top edge of the viewport,
// with ticks and labels below.  Vertical axes have their base line at the
// right edge, with ticks and labels to the left.  Reversed axes mirror
// this, which puts the base line next to the plot area for axes above or
// to the right of it.
func (a *Axis) Draw() {
	s := a.port.Context()
	s.Save()
	defer s.Restore()

	w, h := a.port.Size()
	pix := a.mapper.TickPixels()
	labels := a.mapper.TickLabels()
	_, p0 := a.mapper.Start()
	_, pn := a.mapper.End()

	s.SetStrokeColor(a.color)
	s.SetFillColor(a.color)
	s.SetLineWidth(1)
	s.SetLineDash(nil)
	s.SetFontSize(a.fontSize)
	s.BeginPath()

	if a.slot.Vertical() {
		t0, ts := w, -float64(tickLength)
		align := surface.AlignEnd
		if a.reversed {
			t0, ts = 0, tickLength
			align = surface.AlignStart
		}
		s.MoveTo(t0, p0)
		s.LineTo(t0, pn)
		for _, p := range pix {
			s.MoveTo(t0, p)
			s.LineTo(t0+ts, p)
		}
		s.Stroke()

		s.SetTextAlign(align, surface.BaselineMiddle)
		for i, p := range pix {
			s.FillText(labels[i], t0+ts, p)
		}
		return
	}

	t0, ts := 0.0, float64(tickLength)
	baseline := surface.BaselineTop
	if a.reversed {
		t0, ts = h, -tickLength
		baseline = surface.BaselineBottom
	}
	s.MoveTo(p0, t0)
	s.LineTo(pn, t0)
	for _, p := range pix {
		s.MoveTo(p, t0)
		s.LineTo(p, t0+ts)
	}
	s.Stroke()

	s.SetTextAlign(surface.AlignCenter, baseline)
	for i, p := range pix {
		s.FillText(labels[i], p, t0+ts)
	}
}

// title draws the diagram title centred in its viewport.
type title struct {
	text     string
	color    color.NRGBA
	fontSize float64
	port     *viewport.Viewport
}

func (t *title) Draw() {
	s := t.port.Context()
	s.Save()
	defer s.Restore()

	w, h := t.port.Size()
	s.SetFillColor(t.color)
	s.SetFontSize(t.fontSize)
	s.SetTextAlign(surface.AlignCenter, surface.BaselineMiddle)
	s.FillText(t.text, w/2, h/2)
}
