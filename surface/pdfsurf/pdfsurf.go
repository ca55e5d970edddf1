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

// Package pdfsurf implements a drawing surface which writes a single page
// PDF file.
//
// Device space is mapped to the page with the origin in the top-left
// corner, one device unit per PDF point.  Text is converted to filled
// glyph outlines of the Go Regular font, so that no font needs to be
// embedded.  Colours are written in the DeviceRGB colour space; alpha is
// ignored.
package pdfsurf

import (
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/diagram/internal/glyph"
	"seehuhn.de/go/diagram/surface"
)

// Surface draws onto a PDF page.  Call Close to write the file.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	surface.Base

	// Background is the colour used by ClearRect.
	Background color.Color

	page *document.Page
}

var _ surface.Surface = (*Surface)(nil)

// Create starts a new PDF file with a single page of the given size in
// points.  The page is filled with white.
func Create(fileName string, w, h float64) (*Surface, error) {
	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(fileName, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}

	s := &Surface{
		Base:       surface.NewBase(w, h),
		Background: color.White,
		page:       page,
	}

	// PDF origin is bottom-left; device space has y pointing down.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})

	page.SetFillColor(toPDF(s.Background))
	page.Rectangle(0, 0, w, h)
	page.Fill()
	return s, nil
}

// Close finishes the page and closes the file.
func (s *Surface) Close() error {
	return s.page.Close()
}

func toPDF(c color.Color) pdfcolor.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return pdfcolor.DeviceRGB{float64(n.R) / 255, float64(n.G) / 255, float64(n.B) / 255}
}

func (s *Surface) Stroke() {
	if len(s.Path.Cmds) == 0 {
		return
	}
	page := s.page
	page.SetStrokeColor(toPDF(s.StrokeColor))
	page.SetLineWidth(s.DeviceLineWidth())
	page.SetLineCap(s.Cap.Style())
	page.SetLineJoin(s.Join.Style())
	page.SetLineDash(s.DeviceDash(), s.DeviceDashOffset())
	s.emit(&s.Path, vec.Vec2{})
	page.Stroke()
}

// emit adds p, shifted by off, to the current PDF path.
func (s *Surface) emit(p *path.Data, off vec.Vec2) {
	page := s.page
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X+off.X, pts[0].Y+off.Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X+off.X, pts[0].Y+off.Y)
		case path.CmdCubeTo:
			page.CurveTo(
				pts[0].X+off.X, pts[0].Y+off.Y,
				pts[1].X+off.X, pts[1].Y+off.Y,
				pts[2].X+off.X, pts[2].Y+off.Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
}

// FillText fills the glyph outlines of text.  Text which cannot be laid
// out is skipped.
func (s *Surface) FillText(text string, x, y float64) {
	size := s.DeviceFontSize()
	l, err := glyph.Shape(text, size)
	if err != nil || len(l.Outline.Cmds) == 0 {
		return
	}
	ascent, descent, err := glyph.Metrics(size)
	if err != nil {
		return
	}
	dx, dy := surface.TextOffset(s.Align, s.Baseline, l.Width, ascent, descent)
	p := s.Device(x, y)

	s.page.SetFillColor(toPDF(s.FillColor))
	s.emit(&l.Outline, vec.Vec2{X: p.X + dx, Y: p.Y + dy})
	s.page.Fill()
}

// ClearRect paints the device space bounding box of the rectangle with
// the background colour.
func (s *Surface) ClearRect(x, y, w, h float64) {
	x0, y0, x1, y1 := s.DeviceRect(x, y, w, h)
	s.page.SetFillColor(toPDF(s.Background))
	s.page.Rectangle(x0, y0, x1-x0, y1-y0)
	s.page.Fill()
}
