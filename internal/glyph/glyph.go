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

// Package glyph lays out strings in the Go Regular font and returns their
// outlines as paths, for backends which cannot embed fonts.
package glyph

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Font returns the parsed Go Regular font.
var Font = sync.OnceValues(func() (*sfnt.Font, error) {
	return sfnt.Parse(goregular.TTF)
})

func toFixed(x float64) fixed.Int26_6 {
	return fixed.Int26_6(x*64 + 0.5)
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// Metrics returns the ascent and descent of the font at the given size.
// Both values are positive.
func Metrics(size float64) (ascent, descent float64, err error) {
	f, err := Font()
	if err != nil {
		return 0, 0, err
	}
	var buf sfnt.Buffer
	m, err := f.Metrics(&buf, toFixed(size), font.HintingNone)
	if err != nil {
		return 0, 0, err
	}
	return fromFixed(m.Ascent), fromFixed(m.Descent), nil
}

// Layout holds the outline of a string.
type Layout struct {
	// Outline is the glyph outline with the start of the baseline at the
	// origin and y growing downwards.
	Outline path.Data

	// Width is the advance width of the string.
	Width float64
}

// Shape lays out s at the given font size.  Kerning is applied where the
// font provides it.
func Shape(s string, size float64) (*Layout, error) {
	f, err := Font()
	if err != nil {
		return nil, err
	}
	var buf sfnt.Buffer
	ppem := toFixed(size)

	res := &Layout{}
	var x fixed.Int26_6
	var prev sfnt.GlyphIndex
	for i, r := range []rune(s) {
		gid, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			if k, err := f.Kern(&buf, prev, gid, ppem, font.HintingNone); err == nil {
				x += k
			}
		}

		segs, err := f.LoadGlyph(&buf, gid, ppem, nil)
		if err != nil {
			return nil, err
		}
		res.addSegments(segs, fromFixed(x))

		adv, err := f.GlyphAdvance(&buf, gid, ppem, font.HintingNone)
		if err != nil {
			return nil, err
		}
		x += adv
		prev = gid
	}
	res.Width = fromFixed(x)
	return res, nil
}

func (l *Layout) addSegments(segs sfnt.Segments, dx float64) {
	pt := func(p fixed.Point26_6) vec.Vec2 {
		return vec.Vec2{X: fromFixed(p.X) + dx, Y: fromFixed(p.Y)}
	}
	p := &l.Outline
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p.Cmds = append(p.Cmds, path.CmdQuadTo)
			p.Coords = append(p.Coords, pt(seg.Args[0]), pt(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			p.Cmds = append(p.Cmds, path.CmdCubeTo)
			p.Coords = append(p.Coords, pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]))
		}
	}
	if open {
		p.Close()
	}
}
