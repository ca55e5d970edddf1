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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

const (
	zeroLength = 1e-10

	// joins between segments this close to parallel are omitted
	collinearEps = 1e-9
)

// Stroke draws the outline of p using Width, Cap, Join, MiterLimit, Dash
// and DashPhase.  Curves are flattened first.
//
// Every segment, join and cap becomes a separate polygon.  All polygons
// are given the same orientation and are filled together, so that under
// the nonzero rule overlapping parts are painted only once.
func (r *Rasteriser) Stroke(p *path.Data, emit Emitter) {
	r.startEdges()
	r.polylines(p, func(pts []vec.Vec2, closed bool) {
		if len(r.Dash) > 0 {
			r.dashed(pts, closed)
			return
		}
		r.strokePolyline(pts, closed, vec.Vec2{X: 1})
	})
	r.scan(emit)
}

// polylines flattens p and calls yield for every subpath, with repeated
// points removed.  The slice passed to yield is only valid during the
// call.
func (r *Rasteriser) polylines(p *path.Data, yield func(pts []vec.Vec2, closed bool)) {
	r.line = r.line[:0]
	push := func(pt vec.Vec2) {
		if n := len(r.line); n > 0 && r.line[n-1].Sub(pt).Length() < zeroLength {
			return
		}
		r.line = append(r.line, pt)
	}
	flush := func(closed bool) {
		if len(r.line) > 0 {
			if closed && len(r.line) > 1 && r.line[0].Sub(r.line[len(r.line)-1]).Length() < zeroLength {
				r.line = r.line[:len(r.line)-1]
			}
			yield(r.line, closed)
		}
		r.line = r.line[:0]
	}

	var cur vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			flush(false)
			cur = p.Coords[k]
			push(cur)
			k++
		case path.CmdLineTo:
			if len(r.line) == 0 {
				push(cur)
			}
			cur = p.Coords[k]
			push(cur)
			k++
		case path.CmdQuadTo:
			if len(r.line) == 0 {
				push(cur)
			}
			p0, p1, p2 := cur, p.Coords[k], p.Coords[k+1]
			n := r.segmentsFor(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				s := 1 - t
				push(p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t)))
			}
			cur = p2
			k += 2
		case path.CmdCubeTo:
			if len(r.line) == 0 {
				push(cur)
			}
			p0, p1, p2, p3 := cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2]
			dev := max(
				r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
				r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)),
			)
			n := max(1, int(math.Ceil(math.Sqrt(3*dev/(4*r.Flatness)))))
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				s := 1 - t
				push(p0.Mul(s * s * s).
					Add(p1.Mul(3 * s * s * t)).
					Add(p2.Mul(3 * s * t * t)).
					Add(p3.Mul(t * t * t)))
			}
			cur = p3
			k += 3
		case path.CmdClose:
			start := cur
			if len(r.line) > 0 {
				start = r.line[0]
			}
			flush(true)
			cur = start
		}
	}
	flush(false)
}

// segmentsFor returns the number of line segments needed for a curve
// whose deviation vector (in user space) is dev.
func (r *Rasteriser) segmentsFor(dev vec.Vec2) int {
	d := r.deviceLength(dev)
	if d <= r.Flatness {
		return 1
	}
	return int(math.Ceil(math.Sqrt(d / r.Flatness)))
}

// strokePolyline adds the outline polygons for one polyline.  dir is used
// to orient square caps of polylines which consist of a single point.
func (r *Rasteriser) strokePolyline(pts []vec.Vec2, closed bool, dir vec.Vec2) {
	d := r.Width / 2
	if d <= 0 {
		return
	}
	pts = dedup(pts)

	if len(pts) == 1 {
		switch r.Cap {
		case graphics.LineCapRound:
			r.startPoly()
			r.arc(pts[0], d, vec.Vec2{X: 1}, 2*math.Pi)
			r.endPoly()
		case graphics.LineCapSquare:
			t := dir.Mul(d)
			n := vec.Vec2{X: -t.Y, Y: t.X}
			r.startPoly()
			r.poly = append(r.poly,
				pts[0].Add(t).Add(n),
				pts[0].Add(t).Sub(n),
				pts[0].Sub(t).Sub(n),
				pts[0].Sub(t).Add(n))
			r.endPoly()
		}
		return
	}

	n := len(pts)
	numSegs := n - 1
	if closed && n > 2 {
		numSegs = n
	} else {
		closed = false
	}

	tangent := func(i int) vec.Vec2 {
		a, b := pts[i], pts[(i+1)%n]
		v := b.Sub(a)
		return v.Mul(1 / v.Length())
	}

	for i := range numSegs {
		a, b := pts[i], pts[(i+1)%n]
		t := tangent(i)
		nn := vec.Vec2{X: -t.Y * d, Y: t.X * d}
		r.startPoly()
		r.poly = append(r.poly, a.Add(nn), b.Add(nn), b.Sub(nn), a.Sub(nn))
		r.endPoly()
	}

	for i := 1; i < numSegs; i++ {
		r.join(pts[i], tangent(i-1), tangent(i), d)
	}
	if closed {
		r.join(pts[0], tangent(n-1), tangent(0), d)
		return
	}

	r.cap(pts[0], tangent(0).Mul(-1), d)
	r.cap(pts[n-1], tangent(n-2), d)
}

// join adds the polygon connecting two segments which meet at p, with
// unit tangents t1 (incoming) and t2 (outgoing).
func (r *Rasteriser) join(p, t1, t2 vec.Vec2, d float64) {
	cross := t1.X*t2.Y - t1.Y*t2.X
	dot := t1.Dot(t2)
	if math.Abs(cross) < collinearEps && dot > 0 {
		return
	}

	// the join is on the outside of the turn
	side := 1.0
	if cross > 0 {
		side = -1
	}
	n1 := vec.Vec2{X: -t1.Y, Y: t1.X}.Mul(side)
	n2 := vec.Vec2{X: -t2.Y, Y: t2.X}.Mul(side)
	a := p.Add(n1.Mul(d))
	b := p.Add(n2.Mul(d))

	switch r.Join {
	case graphics.LineJoinRound:
		sweep := math.Atan2(n1.X*n2.Y-n1.Y*n2.X, n1.Dot(n2))
		r.startPoly()
		r.poly = append(r.poly, p)
		r.arc(p, d, n1, sweep)
		r.endPoly()
		return

	case graphics.LineJoinMiter:
		// sinHalf is the sine of half the angle between the segments
		sinHalf := math.Sqrt(max(0, (1+dot)/2))
		if sinHalf*r.MiterLimit >= 1 && sinHalf > 0 {
			bis := n1.Add(n2)
			bis = bis.Mul(d / (sinHalf * bis.Length()))
			r.startPoly()
			r.poly = append(r.poly, p, a, p.Add(bis), b)
			r.endPoly()
			return
		}
	}

	r.startPoly()
	r.poly = append(r.poly, p, a, b)
	r.endPoly()
}

// cap adds the line cap at the end point p of an open polyline; t is the
// unit vector pointing away from the line.
func (r *Rasteriser) cap(p, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}.Mul(d)
	switch r.Cap {
	case graphics.LineCapSquare:
		e := t.Mul(d)
		r.startPoly()
		r.poly = append(r.poly, p.Add(n), p.Add(n).Add(e), p.Sub(n).Add(e), p.Sub(n))
		r.endPoly()
	case graphics.LineCapRound:
		r.startPoly()
		r.arc(p, d, vec.Vec2{X: -t.Y, Y: t.X}, -math.Pi)
		r.endPoly()
	}
}

// arc appends points on the circle around c with radius rad, starting in
// the unit direction start and turning by sweep radians.
func (r *Rasteriser) arc(c vec.Vec2, rad float64, start vec.Vec2, sweep float64) {
	devRad := max(r.deviceLength(vec.Vec2{X: rad}), r.deviceLength(vec.Vec2{Y: rad}))
	n := 1
	if devRad > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRad)
		if step > 0 && !math.IsNaN(step) {
			n = int(math.Ceil(math.Abs(sweep) / step))
		}
	}
	n = max(n, 4)
	for i := 0; i <= n; i++ {
		s, co := math.Sincos(sweep * float64(i) / float64(n))
		dir := vec.Vec2{
			X: start.X*co - start.Y*s,
			Y: start.X*s + start.Y*co,
		}
		r.poly = append(r.poly, c.Add(dir.Mul(rad)))
	}
}

// dedup returns pts without consecutive repeated points.  The input is
// returned unchanged if there are no repetitions.
func dedup(pts []vec.Vec2) []vec.Vec2 {
	for i := 1; i < len(pts); i++ {
		if pts[i].Sub(pts[i-1]).Length() >= zeroLength {
			continue
		}
		res := append([]vec.Vec2(nil), pts[:i]...)
		for _, p := range pts[i:] {
			if p.Sub(res[len(res)-1]).Length() >= zeroLength {
				res = append(res, p)
			}
		}
		return res
	}
	return pts
}

func (r *Rasteriser) startPoly() {
	r.poly = r.poly[:0]
}

// endPoly turns the polygon collected in r.poly into edges, using
// positive orientation in user space.
func (r *Rasteriser) endPoly() {
	pts := r.poly
	n := len(pts)
	if n < 3 {
		return
	}
	var area float64
	for i := range n {
		a, b := pts[i], pts[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	if area == 0 {
		return
	}
	for i := range n {
		a, b := pts[i], pts[(i+1)%n]
		if area > 0 {
			r.addEdge(a, b)
		} else {
			r.addEdge(b, a)
		}
	}
}

// dashed splits a polyline according to the dash pattern and strokes the
// "on" pieces.
func (r *Rasteriser) dashed(pts []vec.Vec2, closed bool) {
	pattern := r.Dash
	var total float64
	for _, x := range pattern {
		total += x
	}
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
		total *= 2
	}
	if total <= 0 {
		r.strokePolyline(pts, closed, vec.Vec2{X: 1})
		return
	}

	// position within the pattern
	phase := math.Mod(r.DashPhase, total)
	if phase < 0 {
		phase += total
	}
	idx := 0
	for phase >= pattern[idx] {
		phase -= pattern[idx]
		idx = (idx + 1) % len(pattern)
	}
	left := pattern[idx] - phase

	n := len(pts)
	numSegs := n - 1
	if closed && n > 2 {
		numSegs = n
	}
	if numSegs == 0 {
		if idx%2 == 0 {
			r.strokePolyline(pts, false, vec.Vec2{X: 1})
		}
		return
	}

	var piece []vec.Vec2
	var dir vec.Vec2
	on := idx%2 == 0
	if on {
		piece = append(piece, pts[0])
	}
	for i := range numSegs {
		a, b := pts[i], pts[(i+1)%n]
		segLen := b.Sub(a).Length()
		dir = b.Sub(a).Mul(1 / segLen)
		pos := 0.0
		for segLen-pos > left {
			pos += left
			q := a.Add(dir.Mul(pos))
			if on {
				piece = append(piece, q)
				r.strokePolyline(piece, false, dir)
				piece = piece[:0]
			} else {
				piece = append(piece[:0], q)
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			left = pattern[idx]
		}
		left -= segLen - pos
		if on {
			piece = append(piece, b)
		}
	}
	if on && len(piece) > 0 {
		r.strokePolyline(piece, false, dir)
	}
}
