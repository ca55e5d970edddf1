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

// Package record implements a drawing surface which keeps a log of all
// drawing operations in device coordinates.  It is used to inspect the
// output of diagrams in tests and to debug layouts.
package record

import (
	"fmt"
	"image/color"
	"io"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/diagram/surface"
)

// Kind identifies the type of a recorded operation.
type Kind int

const (
	KindStroke Kind = iota
	KindText
	KindClear
)

func (k Kind) String() string {
	switch k {
	case KindStroke:
		return "stroke"
	case KindText:
		return "text"
	case KindClear:
		return "clear"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Op is one recorded drawing operation.
type Op struct {
	Kind Kind

	// Points holds the device coordinates of a stroked subpath, or the
	// anchor of a text operation.
	Points []vec.Vec2
	Closed bool

	Color      color.NRGBA
	Width      float64
	Dash       []float64
	DashOffset float64
	Cap        surface.LineCap
	Join       surface.LineJoin

	Text     string
	Size     float64 // font size in device units
	Align    surface.Align
	Baseline surface.Baseline

	// Rect is the device space area of a clear operation.
	Rect rect.Rect
}

// Surface records drawing operations.
type Surface struct {
	surface.Base
	Ops []Op
}

var _ surface.Surface = (*Surface)(nil)

// New returns an empty recording surface of the given size.
func New(w, h float64) *Surface {
	return &Surface{Base: surface.NewBase(w, h)}
}

// Stroke records one operation for every subpath of the current path.
func (s *Surface) Stroke() {
	width := s.DeviceLineWidth()
	dash := s.DeviceDash()
	offset := s.DeviceDashOffset()
	s.Subpaths(func(pts []vec.Vec2, closed bool) {
		s.Ops = append(s.Ops, Op{
			Kind:       KindStroke,
			Points:     slices.Clone(pts),
			Closed:     closed,
			Color:      s.StrokeColor,
			Width:      width,
			Dash:       dash,
			DashOffset: offset,
			Cap:        s.Cap,
			Join:       s.Join,
		})
	})
}

func (s *Surface) FillText(text string, x, y float64) {
	s.Ops = append(s.Ops, Op{
		Kind:     KindText,
		Points:   []vec.Vec2{s.Device(x, y)},
		Color:    s.FillColor,
		Text:     text,
		Size:     s.DeviceFontSize(),
		Align:    s.Align,
		Baseline: s.Baseline,
	})
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	x0, y0, x1, y1 := s.DeviceRect(x, y, w, h)
	s.Ops = append(s.Ops, Op{
		Kind: KindClear,
		Rect: rect.Rect{LLx: x0, LLy: y0, URx: x1, URy: y1},
	})
}

// Reset discards all recorded operations.
func (s *Surface) Reset() {
	s.Ops = s.Ops[:0]
}

// Filter returns the recorded operations of the given kind.
func (s *Surface) Filter(k Kind) []Op {
	var res []Op
	for _, op := range s.Ops {
		if op.Kind == k {
			res = append(res, op)
		}
	}
	return res
}

// Texts returns the strings of all text operations, in drawing order.
func (s *Surface) Texts() []string {
	var res []string
	for _, op := range s.Ops {
		if op.Kind == KindText {
			res = append(res, op.Text)
		}
	}
	return res
}

// Dump writes a human-readable listing of the recorded operations to w.
func (s *Surface) Dump(w io.Writer) error {
	for i, op := range s.Ops {
		var err error
		switch op.Kind {
		case KindStroke:
			_, err = fmt.Fprintf(w, "%4d stroke %s w=%g closed=%t %v\n",
				i, surface.FormatColor(op.Color), op.Width, op.Closed, op.Points)
		case KindText:
			_, err = fmt.Fprintf(w, "%4d text %q at %v %s/%s\n",
				i, op.Text, op.Points[0], op.Align, op.Baseline)
		case KindClear:
			_, err = fmt.Fprintf(w, "%4d clear %v\n", i, op.Rect)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
