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

// Package affine implements 2D affine transformations in the convention
// used by drawing surfaces.
//
// A Transform stores the six coefficients (xx, yx, xy, yy, tx, ty) of the
// augmented matrix
//
//	| xx xy tx |
//	| yx yy ty |
//	|  0  0  1 |
//
// so that a point (x, y) maps to (xx*x + xy*y + tx, yx*x + yy*y + ty).
// The coefficient order is the same as for [matrix.Matrix], and a Transform
// can be converted to and from a matrix.Matrix without copying.
//
// The builder methods Translate, Scale and RotateDeg act in the local
// coordinate system, like the transformation calls of an immediate-mode
// canvas: the new operation is applied to points first, and the receiver
// afterwards.
package affine

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Transform is a 2D affine transformation.
type Transform matrix.Matrix

// Identity returns the transformation which maps every point to itself.
func Identity() Transform {
	return Transform{1, 0, 0, 1, 0, 0}
}

// New returns the transformation with the given coefficients.
func New(xx, yx, xy, yy, tx, ty float64) Transform {
	return Transform{xx, yx, xy, yy, tx, ty}
}

// FromMatrix converts a matrix.Matrix into a Transform.
func FromMatrix(m matrix.Matrix) Transform {
	return Transform(m)
}

// Matrix returns the coefficients as a matrix.Matrix.
func (t Transform) Matrix() matrix.Matrix {
	return matrix.Matrix(t)
}

// Multiply returns the composition of t and o.  The result maps p to
// t(o(p)), that is o is applied first.
func (t Transform) Multiply(o Transform) Transform {
	return Transform{
		t[0]*o[0] + t[2]*o[1],
		t[1]*o[0] + t[3]*o[1],
		t[0]*o[2] + t[2]*o[3],
		t[1]*o[2] + t[3]*o[3],
		t[0]*o[4] + t[2]*o[5] + t[4],
		t[1]*o[4] + t[3]*o[5] + t[5],
	}
}

// Translate returns the transformation which first shifts points by
// (dx, dy) and then applies t.
func (t Transform) Translate(dx, dy float64) Transform {
	t[4] += t[0]*dx + t[2]*dy
	t[5] += t[1]*dx + t[3]*dy
	return t
}

// Scale returns the transformation which first scales points by sx and sy
// along the coordinate axes and then applies t.
func (t Transform) Scale(sx, sy float64) Transform {
	t[0] *= sx
	t[1] *= sx
	t[2] *= sy
	t[3] *= sy
	return t
}

// RotateDeg returns the transformation which first rotates points by the
// given angle and then applies t.  Positive angles turn the positive x-axis
// towards the positive y-axis, which is clockwise on a y-down surface.
//
// Multiples of 90 degrees are handled exactly.
func (t Transform) RotateDeg(deg float64) Transform {
	if q := deg / 90; q == math.Trunc(q) && math.Abs(q) < 1<<52 {
		return t.RotateQuarterTurns(int(math.Mod(q, 4)))
	}
	s, c := math.Sincos(deg * math.Pi / 180)
	return t.Multiply(Transform{c, s, -s, c, 0, 0})
}

// RotateQuarterTurns returns the transformation which first rotates points
// by n quarter turns and then applies t.  The coefficients of the rotation
// are exactly 0, 1 or -1.  Any integer n is accepted and reduced modulo 4.
func (t Transform) RotateQuarterTurns(n int) Transform {
	return t.Multiply(quarterTurn(n))
}

func quarterTurn(n int) Transform {
	switch ((n % 4) + 4) % 4 {
	case 1:
		return Transform{0, 1, -1, 0, 0, 0}
	case 2:
		return Transform{-1, 0, 0, -1, 0, 0}
	case 3:
		return Transform{0, -1, 1, 0, 0, 0}
	default:
		return Identity()
	}
}

// Determinant returns the determinant of the linear part of t.
func (t Transform) Determinant() float64 {
	return t[0]*t[3] - t[1]*t[2]
}

// Invert returns the inverse transformation.
//
// If t is singular, the result has non-finite coefficients.
func (t Transform) Invert() Transform {
	inv := 1 / t.Determinant()
	return Transform{
		inv * t[3],
		-inv * t[1],
		-inv * t[2],
		inv * t[0],
		inv * (t[2]*t[5] - t[3]*t[4]),
		inv * (t[1]*t[4] - t[0]*t[5]),
	}
}

// IsFinite reports whether all coefficients are finite.
func (t Transform) IsFinite() bool {
	for _, x := range t {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// TransformPoint maps the point p through t.
func (t Transform) TransformPoint(p vec.Vec2) vec.Vec2 {
	q := t.TransformVector(p)
	q.X += t[4]
	q.Y += t[5]
	return q
}

// TransformVector maps the vector v through the linear part of t,
// ignoring the translation.
func (t Transform) TransformVector(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: t[0]*v.X + t[2]*v.Y,
		Y: t[1]*v.X + t[3]*v.Y,
	}
}

// InverseTransformPoint maps p through the inverse of t.
func (t Transform) InverseTransformPoint(p vec.Vec2) vec.Vec2 {
	return t.Invert().TransformPoint(p)
}

// TransformRect returns the smallest axis-aligned rectangle containing the
// image of r.
func (t Transform) TransformRect(r rect.Rect) rect.Rect {
	corners := [4]vec.Vec2{
		{X: r.LLx, Y: r.LLy},
		{X: r.URx, Y: r.LLy},
		{X: r.URx, Y: r.URy},
		{X: r.LLx, Y: r.URy},
	}
	var res rect.Rect
	for i, c := range corners {
		p := t.TransformPoint(c)
		if i == 0 {
			res = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
			continue
		}
		res.LLx = min(res.LLx, p.X)
		res.LLy = min(res.LLy, p.Y)
		res.URx = max(res.URx, p.X)
		res.URy = max(res.URy, p.Y)
	}
	return res
}

// Equal reports whether all coefficients of t and o differ by at most eps.
func (t Transform) Equal(o Transform, eps float64) bool {
	for i := range t {
		if math.Abs(t[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

func (t Transform) String() string {
	return fmt.Sprintf("[%g %g %g %g %g %g]", t[0], t[1], t[2], t[3], t[4], t[5])
}

// Target is the part of a drawing surface which holds the current
// transformation.
type Target interface {
	Transform() matrix.Matrix
	SetTransform(m matrix.Matrix)
}

// ApplyToSurface replaces the current transformation of s by t.
func (t Transform) ApplyToSurface(s Target) {
	s.SetTransform(matrix.Matrix(t))
}

// ConcatOnSurface combines t with the current transformation of s, so that
// subsequent drawing coordinates are mapped through t first.
func (t Transform) ConcatOnSurface(s Target) {
	cur := Transform(s.Transform())
	s.SetTransform(matrix.Matrix(cur.Multiply(t)))
}

// FitRect returns a transformation which maps the model rectangle into the
// parent rectangle, centred, using the same absolute scale factor on both
// axes.  The orientation of each axis is preserved: a model rectangle with
// LLy > URy, for example, is mapped with the y-axis flipped.
//
// If the model rectangle is degenerate, the result has non-finite
// coefficients.
func FitRect(parent, model rect.Rect) Transform {
	mw := model.URx - model.LLx
	mh := model.URy - model.LLy
	pw := parent.URx - parent.LLx
	ph := parent.URy - parent.LLy
	s := min(math.Abs(pw/mw), math.Abs(ph/mh))
	sx := math.Copysign(s, pw/mw)
	sy := math.Copysign(s, ph/mh)

	// centre of the model maps to the centre of the parent
	cx := (parent.LLx + parent.URx) / 2
	cy := (parent.LLy + parent.URy) / 2
	mx := (model.LLx + model.URx) / 2
	my := (model.LLy + model.URy) / 2
	return Transform{sx, 0, 0, sy, cx - sx*mx, cy - sy*my}
}
