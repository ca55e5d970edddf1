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
	"seehuhn.de/go/geom/rect"
)

// Layout describes how the area of a diagram is divided between the
// title, the axes and the plot area.
//
// All rectangles use the coordinates of the diagram, with the origin in
// the top-left corner and y growing downwards.  Consequently LLy is the
// top edge and URy the bottom edge of each rectangle.
type Layout struct {
	Title    rect.Rect
	HasTitle bool

	Axes    [numSlots]rect.Rect
	HasAxis [numSlots]bool

	Plot rect.Rect
}

// ComputeLayout divides the area of a diagram by successive erosion.
// The title takes a strip at the top, then axes are reserved from the
// outside inwards on each side: the secondary slot first, then the
// primary slot.  The remaining area is used for the plot.  There is a
// margin on the left, right and top of the diagram, but not at the bottom.
//
// If no space is left for the plot area, a *LayoutError is returned.
func ComputeLayout(cfg *Config) (*Layout, error) {
	// Index 0 is the outer edge, 1 is after the secondary slot and 2
	// after the primary slot.
	var xl, xr, yt, yb [3]float64
	for i := range 3 {
		xl[i] = cfg.Margin
		xr[i] = cfg.Width - cfg.Margin
		yt[i] = cfg.Margin
		yb[i] = cfg.Height
	}

	res := &Layout{}
	if t := cfg.Title; t != nil {
		res.HasTitle = true
		res.Title = rect.Rect{LLx: xl[0], LLy: yt[0], URx: xr[0], URy: yt[0] + t.Size}
		for i := range yt {
			yt[i] += t.Size + cfg.Margin
		}
	}

	reserve := func(outer, inner Slot, edge *[3]float64, sign float64) {
		if a := cfg.Axis(outer); a != nil {
			edge[1] += sign * a.Size
			edge[2] += sign * a.Size
		}
		if a := cfg.Axis(inner); a != nil {
			edge[2] += sign * a.Size
		}
	}
	reserve(SecondaryLeft, PrimaryLeft, &xl, 1)
	reserve(SecondaryRight, PrimaryRight, &xr, -1)
	reserve(SecondaryTop, PrimaryTop, &yt, 1)
	reserve(SecondaryBottom, PrimaryBottom, &yb, -1)

	if xl[2] >= xr[2] {
		return nil, &LayoutError{
			Dimension: "width",
			Available: cfg.Width,
			Reserved:  xl[2] + (cfg.Width - xr[2]),
		}
	}
	if yt[2] >= yb[2] {
		return nil, &LayoutError{
			Dimension: "height",
			Available: cfg.Height,
			Reserved:  yt[2] + (cfg.Height - yb[2]),
		}
	}

	res.Plot = rect.Rect{LLx: xl[2], LLy: yt[2], URx: xr[2], URy: yb[2]}

	set := func(s Slot, r rect.Rect) {
		if cfg.Axis(s) != nil {
			res.HasAxis[s] = true
			res.Axes[s] = r
		}
	}
	set(SecondaryLeft, rect.Rect{LLx: xl[0], LLy: yt[2], URx: xl[1], URy: yb[2]})
	set(PrimaryLeft, rect.Rect{LLx: xl[1], LLy: yt[2], URx: xl[2], URy: yb[2]})
	set(SecondaryRight, rect.Rect{LLx: xr[1], LLy: yt[2], URx: xr[0], URy: yb[2]})
	set(PrimaryRight, rect.Rect{LLx: xr[2], LLy: yt[2], URx: xr[1], URy: yb[2]})
	set(SecondaryTop, rect.Rect{LLx: xl[2], LLy: yt[0], URx: xr[2], URy: yt[1]})
	set(PrimaryTop, rect.Rect{LLx: xl[2], LLy: yt[1], URx: xr[2], URy: yt[2]})
	set(SecondaryBottom, rect.Rect{LLx: xl[2], LLy: yb[1], URx: xr[2], URy: yb[0]})
	set(PrimaryBottom, rect.Rect{LLx: xl[2], LLy: yb[2], URx: xr[2], URy: yb[1]})

	return res, nil
}
