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

// Package svgsurf implements a drawing surface which writes SVG.
//
// Paths are written in device coordinates.  Text is written as SVG text
// elements in the Go font family, positioned at the device space anchor.
package svgsurf

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/diagram/surface"
)

// Surface writes drawing operations as SVG elements.  Call Close to
// finish the document.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	surface.Base

	// Background is the colour used by ClearRect.
	Background color.Color

	w      *errWriter
	canvas *svg.SVG
}

var _ surface.Surface = (*Surface)(nil)

// errWriter remembers the first write error, since svgo ignores errors.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// New starts an SVG document of the given size on w.
func New(w io.Writer, width, height int) *Surface {
	ew := &errWriter{w: w}
	s := &Surface{
		Base:       surface.NewBase(float64(width), float64(height)),
		Background: color.White,
		w:          ew,
		canvas:     svg.New(ew),
	}
	s.canvas.Start(width, height, `font-family="Go,sans-serif"`)
	return s
}

// Close ends the SVG document and reports the first write error.
func (s *Surface) Close() error {
	s.canvas.End()
	return s.w.err
}

func (s *Surface) Stroke() {
	d := pathData(&s.Path)
	if d == "" {
		return
	}
	style := cssPaint("stroke", s.StrokeColor) + ";fill:none" +
		";stroke-width:" + formatFloat(s.DeviceLineWidth())
	if dash := s.DeviceDash(); len(dash) > 0 {
		style += ";stroke-dasharray:"
		for i, x := range dash {
			if i > 0 {
				style += ","
			}
			style += formatFloat(x)
		}
		if off := s.DeviceDashOffset(); off != 0 {
			style += ";stroke-dashoffset:" + formatFloat(off)
		}
	}
	if s.Cap != surface.CapButt {
		style += ";stroke-linecap:" + s.Cap.String()
	}
	if s.Join != surface.JoinMiter {
		style += ";stroke-linejoin:" + s.Join.String()
	}
	s.canvas.Path(d, style)
}

func (s *Surface) FillText(text string, x, y float64) {
	p := s.Device(x, y)
	attrs := []string{
		"font-size:" + formatFloat(s.DeviceFontSize()) + "px;" + cssPaint("fill", s.FillColor),
	}
	switch s.Align {
	case surface.AlignCenter:
		attrs = append(attrs, `text-anchor="middle"`)
	case surface.AlignEnd:
		attrs = append(attrs, `text-anchor="end"`)
	}
	switch s.Baseline {
	case surface.BaselineTop:
		attrs = append(attrs, `dominant-baseline="hanging"`)
	case surface.BaselineMiddle:
		attrs = append(attrs, `dominant-baseline="middle"`)
	case surface.BaselineBottom:
		attrs = append(attrs, `dominant-baseline="text-after-edge"`)
	}

	s.canvas.Gtransform(fmt.Sprintf("translate(%s,%s)", formatFloat(p.X), formatFloat(p.Y)))
	s.canvas.Text(0, 0, text, attrs...)
	s.canvas.Gend()
}

// ClearRect paints the device space bounding box of the rectangle with
// the background colour.  The box is rounded to whole pixels.
func (s *Surface) ClearRect(x, y, w, h float64) {
	x0, y0, x1, y1 := s.DeviceRect(x, y, w, h)
	ix0, iy0 := int(math.Round(x0)), int(math.Round(y0))
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))
	s.canvas.Rect(ix0, iy0, ix1-ix0, iy1-iy0, cssPaint("fill", s.Background))
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}

// pathData converts a device space path to SVG path syntax.
func pathData(p *path.Data) string {
	var buf []byte
	pt := func(i int) {
		q := p.Coords[i]
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, q.X, 'g', 6, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, q.Y, 'g', 6, 64)
	}
	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			buf = append(buf, 'M')
			pt(i)
			i++
		case path.CmdLineTo:
			buf = append(buf, 'L')
			pt(i)
			i++
		case path.CmdQuadTo:
			buf = append(buf, 'Q')
			pt(i)
			pt(i + 1)
			i += 2
		case path.CmdCubeTo:
			buf = append(buf, 'C')
			pt(i)
			pt(i + 1)
			pt(i + 2)
			i += 3
		case path.CmdClose:
			buf = append(buf, 'Z')
		}
	}
	return string(buf)
}

// cssPaint formats c as a CSS paint property, with a separate opacity
// property for translucent colours.
func cssPaint(prop string, c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return prop + ":none"
	}
	css := fmt.Sprintf("%s:#%02x%02x%02x", prop, n.R, n.G, n.B)
	if n.A != 0xff {
		css += fmt.Sprintf(";%s-opacity:%.4g", prop, float64(n.A)/255)
	}
	return css
}
