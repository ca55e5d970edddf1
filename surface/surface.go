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

// Package surface defines the immediate-mode drawing interface used by
// diagrams, together with helpers shared by the concrete backends.
//
// Coordinates passed to path construction and text calls are user space
// coordinates.  They are mapped to device space through the current
// transformation at the time of the call, so changing the transformation
// does not affect path segments which were already added.  Device space
// has its origin in the top-left corner with the y-axis pointing down.
package surface

import (
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics"
)

// Surface is a 2D drawing surface.
//
// Implementations are not safe for concurrent use.
type Surface interface {
	// Size returns the width and height of the surface in device units.
	Size() (w, h float64)

	// Save pushes the current graphics state onto a stack.
	Save()

	// Restore pops the most recently saved graphics state.  Calling
	// Restore without a matching Save has no effect.
	Restore()

	// Transform returns the current transformation from user space to
	// device space.
	Transform() matrix.Matrix

	// SetTransform replaces the current transformation.
	SetTransform(m matrix.Matrix)

	// BeginPath discards the current path.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)

	// Rect adds a closed rectangular subpath.
	Rect(x, y, w, h float64)

	// Stroke draws the current path using the current stroke colour,
	// line width and dash pattern.  The path is kept.
	Stroke()

	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)

	// SetLineWidth sets the line width in user space units.
	SetLineWidth(w float64)

	// SetLineDash sets alternating on/off lengths in user space units.
	// An empty pattern gives solid lines.
	SetLineDash(dash []float64)

	// SetLineDashOffset sets how far into the dash pattern lines start,
	// in user space units.
	SetLineDashOffset(offset float64)

	// SetLineCap sets the shape of the ends of open subpaths.
	SetLineCap(c LineCap)

	// SetLineJoin sets the shape of corners between path segments.
	SetLineJoin(j LineJoin)

	// SetFontSize sets the height of text in user space units.
	SetFontSize(size float64)

	// SetTextAlign sets how FillText positions text relative to the
	// anchor point.
	SetTextAlign(a Align, b Baseline)

	// FillText draws s using the current fill colour, anchored at (x, y).
	FillText(s string, x, y float64)

	// ClearRect erases the given rectangle to the background.
	ClearRect(x, y, w, h float64)
}

// Align describes the horizontal placement of text relative to its anchor.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "Align(?)"
	}
}

// Baseline describes the vertical placement of text relative to its anchor.
type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

func (b Baseline) String() string {
	switch b {
	case BaselineAlphabetic:
		return "alphabetic"
	case BaselineTop:
		return "top"
	case BaselineMiddle:
		return "middle"
	case BaselineBottom:
		return "bottom"
	default:
		return "Baseline(?)"
	}
}

// LineCap is the shape used at the ends of stroked open subpaths.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

var capNames = []string{"butt", "round", "square"}

func (c LineCap) String() string {
	if c >= 0 && int(c) < len(capNames) {
		return capNames[c]
	}
	return "LineCap(?)"
}

// ParseLineCap converts "butt", "round" or "square" to a LineCap.
func ParseLineCap(s string) (LineCap, error) {
	for i, name := range capNames {
		if s == name {
			return LineCap(i), nil
		}
	}
	return CapButt, fmt.Errorf("invalid line cap %q", s)
}

// Style returns the equivalent PDF line cap style.
func (c LineCap) Style() graphics.LineCapStyle {
	switch c {
	case CapRound:
		return graphics.LineCapRound
	case CapSquare:
		return graphics.LineCapSquare
	default:
		return graphics.LineCapButt
	}
}

// LineJoin is the shape used at corners of stroked paths.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

var joinNames = []string{"miter", "round", "bevel"}

func (j LineJoin) String() string {
	if j >= 0 && int(j) < len(joinNames) {
		return joinNames[j]
	}
	return "LineJoin(?)"
}

// ParseLineJoin converts "miter", "round" or "bevel" to a LineJoin.
func ParseLineJoin(s string) (LineJoin, error) {
	for i, name := range joinNames {
		if s == name {
			return LineJoin(i), nil
		}
	}
	return JoinMiter, fmt.Errorf("invalid line join %q", s)
}

// Style returns the equivalent PDF line join style.
func (j LineJoin) Style() graphics.LineJoinStyle {
	switch j {
	case JoinRound:
		return graphics.LineJoinRound
	case JoinBevel:
		return graphics.LineJoinBevel
	default:
		return graphics.LineJoinMiter
	}
}

// TextOffset returns the offset from the anchor point passed to FillText
// to the start of the baseline of the text, for text of the given
// advance width and font ascent and descent.  Backends use this to
// implement SetTextAlign.
func TextOffset(a Align, b Baseline, width, ascent, descent float64) (dx, dy float64) {
	switch a {
	case AlignCenter:
		dx = -width / 2
	case AlignEnd:
		dx = -width
	}
	switch b {
	case BaselineTop:
		dy = ascent
	case BaselineMiddle:
		dy = (ascent - descent) / 2
	case BaselineBottom:
		dy = -descent
	}
	return dx, dy
}
