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

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// grid collects emitted coverage into a w×h buffer.
type grid struct {
	w, h int
	pix  []float32
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, pix: make([]float32, w*h)}
}

func (g *grid) emit(y, xMin int, coverage []float32) {
	copy(g.pix[y*g.w+xMin:], coverage)
}

func (g *grid) at(x, y int) float32 {
	return g.pix[y*g.w+x]
}

func (g *grid) sum() float64 {
	var s float64
	for _, c := range g.pix {
		s += float64(c)
	}
	return s
}

func (g *grid) clip() rect.Rect {
	return rect.Rect{URx: float64(g.w), URy: float64(g.h)}
}

func polyline(pts ...vec.Vec2) *path.Data {
	p := &path.Data{}
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	return p
}

// TestTriangleCoverage checks exact coverage values for a triangle whose
// diagonal edge is y = x/10.  Pixel x must have coverage (2x+1)/20.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	g := newGrid(10, 1)
	r := New(g.clip())
	r.FillNonZero(triangle, g.emit)

	for x := range 10 {
		want := float32(2*x+1) / 20
		if got := g.at(x, 0); math.Abs(float64(got-want)) > 1e-6 {
			t.Errorf("pixel %d: got %.4f, want %.4f", x, got, want)
		}
	}
}

func TestFillCoverage(t *testing.T) {
	cases := []struct {
		name string
		path *path.Data
		want []float32 // coverage of row 0
	}{
		{
			name: "aligned",
			path: polyline(vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 3, Y: 0}, vec.Vec2{X: 3, Y: 1}, vec.Vec2{X: 1, Y: 1}),
			want: []float32{0, 1, 1, 0, 0},
		},
		{
			name: "half pixel",
			path: polyline(vec.Vec2{X: 0.5, Y: 0}, vec.Vec2{X: 1.5, Y: 0}, vec.Vec2{X: 1.5, Y: 1}, vec.Vec2{X: 0.5, Y: 1}),
			want: []float32{0.5, 0.5, 0, 0, 0},
		},
		{
			name: "left of clip",
			path: polyline(vec.Vec2{X: -5, Y: 0}, vec.Vec2{X: 3, Y: 0}, vec.Vec2{X: 3, Y: 1}, vec.Vec2{X: -5, Y: 1}),
			want: []float32{1, 1, 1, 0, 0},
		},
		{
			name: "right of clip",
			path: polyline(vec.Vec2{X: 3, Y: 0}, vec.Vec2{X: 9, Y: 0}, vec.Vec2{X: 9, Y: 1}, vec.Vec2{X: 3, Y: 1}),
			want: []float32{0, 0, 0, 1, 1},
		},
		{
			name: "overlapping squares",
			path: func() *path.Data {
				p := polyline(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 2, Y: 0}, vec.Vec2{X: 2, Y: 1}, vec.Vec2{X: 0, Y: 1})
				p.MoveTo(vec.Vec2{X: 1, Y: 0})
				p.LineTo(vec.Vec2{X: 3, Y: 0})
				p.LineTo(vec.Vec2{X: 3, Y: 1})
				p.LineTo(vec.Vec2{X: 1, Y: 1})
				return p
			}(),
			want: []float32{1, 1, 1, 0, 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(5, 1)
			r := New(g.clip())
			r.FillNonZero(tc.path, g.emit)
			for x, want := range tc.want {
				if got := g.at(x, 0); math.Abs(float64(got-want)) > 1e-6 {
					t.Errorf("pixel %d: got %.4f, want %.4f", x, got, want)
				}
			}
		})
	}
}

func TestStrokeCaps(t *testing.T) {
	cases := []struct {
		cap        graphics.LineCapStyle
		xMin, xMax int // covered columns, inclusive
	}{
		{graphics.LineCapButt, 2, 7},
		{graphics.LineCapSquare, 1, 8},
	}
	for _, tc := range cases {
		t.Run(tc.cap.String(), func(t *testing.T) {
			g := newGrid(10, 10)
			r := New(g.clip())
			r.Width = 2
			r.Cap = tc.cap
			r.Stroke(polyline(vec.Vec2{X: 2, Y: 5}, vec.Vec2{X: 8, Y: 5}), g.emit)

			for y := range 10 {
				for x := range 10 {
					want := float32(0)
					if (y == 4 || y == 5) && x >= tc.xMin && x <= tc.xMax {
						want = 1
					}
					if got := g.at(x, y); math.Abs(float64(got-want)) > 1e-6 {
						t.Errorf("pixel (%d,%d): got %.4f, want %.4f", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestStrokeRoundCap(t *testing.T) {
	g := newGrid(20, 20)
	r := New(g.clip())
	r.Width = 4
	r.Cap = graphics.LineCapRound
	r.Stroke(polyline(vec.Vec2{X: 10, Y: 10}), g.emit)

	// a single point with round caps gives a disk of radius 2, drawn as
	// an inscribed polygon
	got, want := g.sum(), 4*math.Pi
	if got > want || got < 0.85*want {
		t.Errorf("disk area: got %.3f, want close to %.3f", got, want)
	}
	if c := g.at(9, 9); c != 1 {
		t.Errorf("centre pixel: got %.4f, want 1", c)
	}
}

// TestStrokeMiterJoin checks that overlapping segment and join polygons
// are painted only once.
func TestStrokeMiterJoin(t *testing.T) {
	g := newGrid(16, 16)
	r := New(g.clip())
	r.Width = 2
	r.Join = graphics.LineJoinMiter
	r.Stroke(polyline(vec.Vec2{X: 2, Y: 10}, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 10, Y: 2}), g.emit)

	if got := g.sum(); math.Abs(got-32) > 1e-3 {
		t.Errorf("stroked area: got %.4f, want 32", got)
	}
	if got := g.at(10, 10); got != 1 {
		t.Errorf("miter corner pixel: got %.4f, want 1", got)
	}
}

func TestStrokeBevelJoin(t *testing.T) {
	g := newGrid(16, 16)
	r := New(g.clip())
	r.Width = 2
	r.Join = graphics.LineJoinBevel
	r.Stroke(polyline(vec.Vec2{X: 2, Y: 10}, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 10, Y: 2}), g.emit)

	// the bevel cuts the corner pixel in half
	if got := g.sum(); math.Abs(got-31.5) > 1e-3 {
		t.Errorf("stroked area: got %.4f, want 31.5", got)
	}
}

func TestStrokeDash(t *testing.T) {
	g := newGrid(10, 10)
	r := New(g.clip())
	r.Width = 2
	r.Dash = []float64{2, 2}
	r.Stroke(polyline(vec.Vec2{X: 0, Y: 5}, vec.Vec2{X: 8, Y: 5}), g.emit)

	want := []float32{1, 1, 0, 0, 1, 1, 0, 0, 0, 0}
	for x, w := range want {
		if got := g.at(x, 5); math.Abs(float64(got-w)) > 1e-6 {
			t.Errorf("pixel %d: got %.4f, want %.4f", x, got, w)
		}
	}

	// a phase of 2 swaps the on and off parts
	g = newGrid(10, 10)
	r.DashPhase = 2
	r.Stroke(polyline(vec.Vec2{X: 0, Y: 5}, vec.Vec2{X: 8, Y: 5}), g.emit)
	want = []float32{0, 0, 1, 1, 0, 0, 1, 1, 0, 0}
	for x, w := range want {
		if got := g.at(x, 5); math.Abs(float64(got-w)) > 1e-6 {
			t.Errorf("phase 2, pixel %d: got %.4f, want %.4f", x, got, w)
		}
	}
}

func TestReset(t *testing.T) {
	r := New(rect.Rect{URx: 4, URy: 4})
	r.Width = 7
	r.Dash = []float64{1}
	r.Reset(rect.Rect{URx: 8, URy: 8})
	if r.Width != 1 || r.Dash != nil || r.Clip.URx != 8 {
		t.Errorf("Reset left %+v", r)
	}
}

func BenchmarkStrokePolyline(b *testing.B) {
	pts := make([]vec.Vec2, 1000)
	for i := range pts {
		x := float64(i) * 0.6
		pts[i] = vec.Vec2{X: x, Y: 150 + 100*math.Sin(x/20)}
	}
	p := polyline(pts...)

	r := New(rect.Rect{URx: 600, URy: 300})
	emit := func(y, xMin int, coverage []float32) {}
	for b.Loop() {
		r.Stroke(p, emit)
	}
}
