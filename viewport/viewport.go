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

// Package viewport implements nested rectangular regions of a drawing
// surface.
//
// All viewports spawned from one root share a [Tree].  Each viewport
// knows its position relative to its parent and caches its position on
// the root surface; the cache is refreshed whenever a viewport is
// reconfigured.  Parents are stored before their children, so the
// structure can never contain a cycle.
package viewport

import (
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/diagram/affine"
	"seehuhn.de/go/diagram/surface"
)

// NodeID identifies a viewport within its tree.  The root has ID 0.
type NodeID int

const noParent NodeID = -1

type node struct {
	parent NodeID
	pos    vec.Vec2 // top-left corner in parent coordinates
	size   vec.Vec2
	abs    vec.Vec2 // top-left corner in surface coordinates
}

// Tree holds all viewports which share a drawing surface.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	surf  surface.Surface
	nodes []node
}

// Viewport is a handle for one rectangular region in a Tree.
type Viewport struct {
	tree *Tree
	id   NodeID
}

// New creates a tree and returns its root viewport, placed at (x, y) on s
// with the given width and height.
func New(s surface.Surface, x, y, w, h float64) *Viewport {
	t := &Tree{surf: s}
	t.nodes = append(t.nodes, node{
		parent: noParent,
		pos:    vec.Vec2{X: x, Y: y},
		size:   vec.Vec2{X: w, Y: h},
		abs:    vec.Vec2{X: x, Y: y},
	})
	return &Viewport{tree: t, id: 0}
}

// Spawn creates a child viewport at (x, y) relative to v.
func (v *Viewport) Spawn(x, y, w, h float64) *Viewport {
	t := v.tree
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		parent: v.id,
		pos:    vec.Vec2{X: x, Y: y},
		size:   vec.Vec2{X: w, Y: h},
	})
	t.nodes[id].abs = t.absolute(id)
	return &Viewport{tree: t, id: id}
}

// Configure moves and resizes v within its parent.  The root position of
// v and of all its descendants is updated.
func (v *Viewport) Configure(x, y, w, h float64) {
	t := v.tree
	n := &t.nodes[v.id]
	n.pos = vec.Vec2{X: x, Y: y}
	n.size = vec.Vec2{X: w, Y: h}
	n.abs = t.absolute(v.id)

	// descendants always have larger IDs than their ancestors
	for i := int(v.id) + 1; i < len(t.nodes); i++ {
		c := &t.nodes[i]
		c.abs = t.nodes[c.parent].abs.Add(c.pos)
	}
}

// absolute computes the root position of a node by walking up the tree.
func (t *Tree) absolute(id NodeID) vec.Vec2 {
	var res vec.Vec2
	for id != noParent {
		n := &t.nodes[id]
		res = res.Add(n.pos)
		id = n.parent
	}
	return res
}

// ID returns the identifier of v within its tree.
func (v *Viewport) ID() NodeID {
	return v.id
}

// Parent returns the parent viewport, or nil for the root.
func (v *Viewport) Parent() *Viewport {
	p := v.tree.nodes[v.id].parent
	if p == noParent {
		return nil
	}
	return &Viewport{tree: v.tree, id: p}
}

// Surface returns the drawing surface of the tree.
func (v *Viewport) Surface() surface.Surface {
	return v.tree.surf
}

// Position returns the top-left corner of v in parent coordinates.
func (v *Viewport) Position() vec.Vec2 {
	return v.tree.nodes[v.id].pos
}

// RootPosition returns the top-left corner of v in surface coordinates.
func (v *Viewport) RootPosition() vec.Vec2 {
	return v.tree.nodes[v.id].abs
}

// Size returns the width and height of v.
func (v *Viewport) Size() (w, h float64) {
	n := &v.tree.nodes[v.id]
	return n.size.X, n.size.Y
}

// Bounds returns the area of v in surface coordinates.
func (v *Viewport) Bounds() rect.Rect {
	n := &v.tree.nodes[v.id]
	return rect.Rect{
		LLx: n.abs.X,
		LLy: n.abs.Y,
		URx: n.abs.X + n.size.X,
		URy: n.abs.Y + n.size.Y,
	}
}

// Transform returns the transformation from the local coordinates of v,
// rotated by n quarter turns, to surface coordinates.
//
// After n quarter turns the local origin is at the corner of v which the
// rotation moves to the top-left: the top-right corner for n=1, the
// bottom-right corner for n=2 and the bottom-left corner for n=3.
func (v *Viewport) Transform(n int) affine.Transform {
	nd := &v.tree.nodes[v.id]
	x, y := nd.abs.X, nd.abs.Y
	switch ((n % 4) + 4) % 4 {
	case 1:
		x += nd.size.X
	case 2:
		x += nd.size.X
		y += nd.size.Y
	case 3:
		y += nd.size.Y
	}
	return affine.Identity().Translate(x, y).RotateQuarterTurns(n)
}

// Context sets the transformation of the surface so that (0, 0) is the
// top-left corner of v, and returns the surface.
func (v *Viewport) Context() surface.Surface {
	return v.ContextQuarterTurns(0)
}

// ContextQuarterTurns is like Context, but additionally rotates the
// coordinate system by n quarter turns as described for Transform.
func (v *Viewport) ContextQuarterTurns(n int) surface.Surface {
	s := v.tree.surf
	v.Transform(n).ApplyToSurface(s)
	return s
}

// Clear erases the area of v.
func (v *Viewport) Clear() {
	s := v.Context()
	w, h := v.Size()
	s.ClearRect(0, 0, w, h)
}

var (
	extentRootColor  = color.NRGBA{R: 255, A: 255}
	extentLocalColor = color.NRGBA{A: 255}
)

// DrawExtent outlines v twice, once using surface coordinates (red) and
// once using local coordinates (black).  This shows whether the cached
// root position agrees with the transformation used for drawing.
func (v *Viewport) DrawExtent() {
	s := v.tree.surf
	s.Save()
	defer s.Restore()

	w, h := v.Size()
	b := v.Bounds()
	affine.Identity().ApplyToSurface(s)
	s.SetStrokeColor(extentRootColor)
	s.BeginPath()
	s.Rect(b.LLx, b.LLy, w, h)
	s.Stroke()

	v.Context()
	s.SetStrokeColor(extentLocalColor)
	s.BeginPath()
	s.Rect(0, 0, w, h)
	s.Stroke()
}

func (v *Viewport) String() string {
	n := &v.tree.nodes[v.id]
	return fmt.Sprintf("viewport %d: %gx%g at (%g,%g), root (%g,%g)",
		v.id, n.size.X, n.size.Y, n.pos.X, n.pos.Y, n.abs.X, n.abs.Y)
}
