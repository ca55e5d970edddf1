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

package surface

import (
	"image/color"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// State is the graphics state which Save and Restore operate on.
type State struct {
	CTM         matrix.Matrix
	StrokeColor color.NRGBA
	FillColor   color.NRGBA
	LineWidth   float64
	Dash        []float64
	DashOffset  float64
	Cap         LineCap
	Join        LineJoin
	FontSize    float64 // in user space units
	Align       Align
	Baseline    Baseline
}

// DefaultState returns the initial graphics state of a surface:
// identity transformation, black stroke and fill, unit line width and
// 10 unit text.
func DefaultState() State {
	return State{
		CTM:         matrix.Identity,
		StrokeColor: color.NRGBA{A: 255},
		FillColor:   color.NRGBA{A: 255},
		LineWidth:   1,
		FontSize:    10,
	}
}

// Base implements the state handling and path construction parts of
// [Surface].  Backends embed a Base and add Stroke, FillText and
// ClearRect.
//
// The path is stored in device coordinates.
type Base struct {
	State
	Path path.Data

	W, H  float64
	saved []State
}

// NewBase returns a Base for a surface of the given device size.
func NewBase(w, h float64) Base {
	return Base{State: DefaultState(), W: w, H: h}
}

func (b *Base) Size() (w, h float64) {
	return b.W, b.H
}

func (b *Base) Save() {
	s := b.State
	s.Dash = slices.Clone(s.Dash)
	b.saved = append(b.saved, s)
}

func (b *Base) Restore() {
	n := len(b.saved)
	if n == 0 {
		return
	}
	b.State = b.saved[n-1]
	b.saved = b.saved[:n-1]
}

func (b *Base) Transform() matrix.Matrix {
	return b.CTM
}

func (b *Base) SetTransform(m matrix.Matrix) {
	b.CTM = m
}

// Device maps a user space point to device space.
func (b *Base) Device(x, y float64) vec.Vec2 {
	m := b.CTM
	return vec.Vec2{
		X: m[0]*x + m[2]*y + m[4],
		Y: m[1]*x + m[3]*y + m[5],
	}
}

// Scale returns the factor by which the current transformation changes
// lengths on average.
func (b *Base) Scale() float64 {
	m := b.CTM
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// DeviceLineWidth returns the current line width in device units.
func (b *Base) DeviceLineWidth() float64 {
	return b.LineWidth * b.Scale()
}

// DeviceDash returns the current dash pattern in device units, or nil for
// solid lines.
func (b *Base) DeviceDash() []float64 {
	if len(b.Dash) == 0 {
		return nil
	}
	s := b.Scale()
	res := make([]float64, len(b.Dash))
	for i, d := range b.Dash {
		res[i] = d * s
	}
	return res
}

// DeviceDashOffset returns the current dash offset in device units.
func (b *Base) DeviceDashOffset() float64 {
	return b.DashOffset * b.Scale()
}

func (b *Base) BeginPath() {
	b.Path.Cmds = b.Path.Cmds[:0]
	b.Path.Coords = b.Path.Coords[:0]
}

func (b *Base) MoveTo(x, y float64) {
	b.Path.MoveTo(b.Device(x, y))
}

func (b *Base) LineTo(x, y float64) {
	if len(b.Path.Cmds) == 0 {
		b.Path.MoveTo(b.Device(x, y))
		return
	}
	b.Path.LineTo(b.Device(x, y))
}

func (b *Base) Rect(x, y, w, h float64) {
	b.Path.MoveTo(b.Device(x, y))
	b.Path.LineTo(b.Device(x+w, y))
	b.Path.LineTo(b.Device(x+w, y+h))
	b.Path.LineTo(b.Device(x, y+h))
	b.Path.Close()
}

func (b *Base) SetStrokeColor(c color.Color) {
	b.StrokeColor = color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (b *Base) SetFillColor(c color.Color) {
	b.FillColor = color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (b *Base) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		b.LineWidth = w
	}
}

func (b *Base) SetLineDash(dash []float64) {
	for _, d := range dash {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return
		}
	}
	b.Dash = slices.Clone(dash)
}

func (b *Base) SetLineDashOffset(offset float64) {
	if !math.IsNaN(offset) && !math.IsInf(offset, 0) {
		b.DashOffset = offset
	}
}

func (b *Base) SetLineCap(c LineCap) {
	b.Cap = c
}

func (b *Base) SetLineJoin(j LineJoin) {
	b.Join = j
}

func (b *Base) SetFontSize(size float64) {
	if size > 0 && !math.IsInf(size, 0) {
		b.FontSize = size
	}
}

// DeviceFontSize returns the current font size in device units.
func (b *Base) DeviceFontSize() float64 {
	return b.FontSize * b.Scale()
}

func (b *Base) SetTextAlign(a Align, bl Baseline) {
	b.Align = a
	b.Baseline = bl
}

// DeviceRect returns the device space bounding box of a user space
// rectangle, as (x0, y0, x1, y1) with x0 <= x1 and y0 <= y1.
func (b *Base) DeviceRect(x, y, w, h float64) (x0, y0, x1, y1 float64) {
	corners := [4]vec.Vec2{
		b.Device(x, y),
		b.Device(x+w, y),
		b.Device(x+w, y+h),
		b.Device(x, y+h),
	}
	x0, y0 = corners[0].X, corners[0].Y
	x1, y1 = x0, y0
	for _, c := range corners[1:] {
		x0 = min(x0, c.X)
		y0 = min(y0, c.Y)
		x1 = max(x1, c.X)
		y1 = max(y1, c.Y)
	}
	return x0, y0, x1, y1
}

// Subpaths calls yield for every subpath of the current path, in device
// coordinates.  The closed flag reports whether the subpath ends with a
// ClosePath command.  The slice is only valid during the call.
func (b *Base) Subpaths(yield func(pts []vec.Vec2, closed bool)) {
	var cur []vec.Vec2
	var buf []vec.Vec2
	flush := func(closed bool) {
		if len(cur) > 0 {
			yield(cur, closed)
		}
		cur = nil
	}
	i := 0
	for _, cmd := range b.Path.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			flush(false)
			buf = append(buf[:0], b.Path.Coords[i])
			cur = buf
			i++
		case path.CmdLineTo:
			buf = append(buf, b.Path.Coords[i])
			cur = buf
			i++
		case path.CmdQuadTo:
			buf = append(buf, b.Path.Coords[i+1])
			cur = buf
			i += 2
		case path.CmdCubeTo:
			buf = append(buf, b.Path.Coords[i+2])
			cur = buf
			i += 3
		case path.CmdClose:
			if len(buf) > 0 {
				start := buf[0]
				flush(true)
				buf = append(buf[:0], start)
			}
		}
	}
	flush(false)
}
