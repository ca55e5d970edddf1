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

// Package raster converts polygonal outlines and stroked polylines into
// anti-aliased per-pixel coverage values.
//
// Coverage is computed exactly for the polygon obtained after flattening:
// for every pixel the rasteriser accumulates the signed area covered by
// the outline, and the nonzero winding rule turns this into a value
// between 0 (outside) and 1 (inside).
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Emitter receives the coverage of one scanline: coverage[i] belongs to
// pixel (xMin+i, y).  The slice is only valid during the call.
type Emitter func(y, xMin int, coverage []float32)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (e *edge) top() float64    { return min(e.y0, e.y1) }
func (e *edge) bottom() float64 { return max(e.y0, e.y1) }

// Rasteriser computes pixel coverage for filled and stroked paths.
// Buffers are kept between calls, so a single Rasteriser should be reused
// for all drawing on one image.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.  Must be non-singular.
	CTM matrix.Matrix

	// Clip limits the output to an integer-aligned device rectangle.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// or arc and the polygon used to approximate it.
	Flatness float64

	// Width is the line width in user space units.
	Width float64

	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64

	// Dash holds alternating on/off lengths in user space units.  Nil
	// gives solid lines.
	Dash      []float64
	DashPhase float64

	edges  []edge
	active []int
	cover  []float32
	area   []float32

	bboxValid                  bool
	bxMin, bxMax, byMin, byMax float64

	// stroke outlines, see stroke.go
	poly      []vec.Vec2
	polyStart []int
	line      []vec.Vec2
}

const (
	defaultFlatness   = 0.25
	defaultMiterLimit = 10.0

	// edges with a smaller vertical extent do not contribute coverage
	horizontalEps = 1e-10
)

// New returns a Rasteriser for the given clip rectangle with identity CTM,
// unit line width, butt caps and miter joins.
func New(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Internal buffers keep their capacity.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.Dash = nil
	r.DashPhase = 0
}

func (r *Rasteriser) toDevice(p vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// deviceLength returns the length of the user space vector v after
// mapping through the linear part of the CTM.
func (r *Rasteriser) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}.Length()
}

// FillNonZero fills p using the nonzero winding rule.  Open subpaths are
// closed implicitly.
func (r *Rasteriser) FillNonZero(p *path.Data, emit Emitter) {
	r.startEdges()
	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
	if cur != start {
		r.addEdge(cur, start)
	}
	r.scan(emit)
}

// flattenQuad approximates a quadratic Bézier curve by line segments.
func (r *Rasteriser) flattenQuad(p0, p1, p2 vec.Vec2) {
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's bound for the number of segments.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)),
	)
	n := max(1, int(math.Ceil(math.Sqrt(3*d/(4*r.Flatness)))))
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

func (r *Rasteriser) startEdges() {
	r.edges = r.edges[:0]
	r.bboxValid = false
}

// addEdge records the segment from a to b, given in user space.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	a = r.toDevice(a)
	b = r.toDevice(b)
	dy := b.Y - a.Y
	if math.Abs(dy) < horizontalEps {
		return
	}
	r.edges = append(r.edges, edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / dy,
	})

	if !r.bboxValid {
		r.bxMin, r.bxMax = a.X, a.X
		r.byMin, r.byMax = a.Y, a.Y
		r.bboxValid = true
	}
	r.bxMin = min(r.bxMin, a.X, b.X)
	r.bxMax = max(r.bxMax, a.X, b.X)
	r.byMin = min(r.byMin, a.Y, b.Y)
	r.byMax = max(r.byMax, a.Y, b.Y)
}

// scan integrates the collected edges scanline by scanline and passes
// the nonzero coverage to emit.
func (r *Rasteriser) scan(emit Emitter) {
	if len(r.edges) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.bxMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bxMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.byMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.byMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.top(), b.top())
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		yTop, yBot := float64(y), float64(y+1)

		for next < len(r.edges) && r.edges[next].top() < yBot {
			r.active = append(r.active, next)
			next++
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.bottom() <= yTop {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			if accumulate(e, y, r.cover, r.area, xMin) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateNonZero(r.cover, r.area)
		lo, hi := 0, width
		for lo < hi && r.cover[lo] == 0 {
			lo++
		}
		for hi > lo && r.cover[hi-1] == 0 {
			hi--
		}
		if lo < hi {
			emit(y, xMin+lo, r.cover[lo:hi])
		}
	}
}

// accumulate adds the contribution of e within scanline y to the cover
// and area buffers, which start at device column xMin.
//
// For every pixel crossed by the edge, cover receives the signed vertical
// extent of the crossing and area receives the part of it lying to the
// right of the edge within the pixel.  Crossings left of the buffer are
// folded into column 0; crossings right of it cannot affect any pixel in
// the buffer.  The return value reports whether anything was added.
func accumulate(e *edge, y int, cover, area []float32, xMin int) bool {
	yTop := max(float64(y), e.top())
	yBot := min(float64(y+1), e.bottom())
	if yBot <= yTop {
		return false
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}
	xMax := xMin + len(cover)

	add := func(pix int, yLo, yHi, xMid float64) {
		c := sign * float32(yHi-yLo)
		switch {
		case pix < xMin:
			cover[0] += c
			area[0] += c
		case pix < xMax:
			i := pix - xMin
			cover[i] += c
			area[i] += c * float32(1-(xMid-float64(pix)))
		}
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	pa := int(math.Floor(min(xa, xb)))
	pb := int(math.Floor(max(xa, xb)))
	if pb < xMin {
		add(pb, yTop, yBot, 0)
		return true
	}
	if pa >= xMax {
		return false
	}
	if pa == pb {
		add(pa, yTop, yBot, (xa+xb)/2)
		return true
	}

	// the edge crosses several pixel columns within this scanline
	dydx := 1 / e.dxdy
	for pix := pa; pix <= pb; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		lo := max(min(ya, yb), yTop)
		hi := min(max(ya, yb), yBot)
		if hi <= lo {
			continue
		}
		xMid := e.x0 + e.dxdy*((lo+hi)/2-e.y0)
		add(pix, lo, hi, xMid)
	}
	return true
}

// integrateNonZero turns the accumulated buffers into coverage values,
// stored in cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}
