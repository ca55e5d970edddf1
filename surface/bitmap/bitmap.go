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

// Package bitmap implements a drawing surface on an in-memory RGBA image.
//
// Strokes are rasterised with exact area coverage anti-aliasing.  Text is
// rendered in the Go Regular font; only the anchor point of a text is
// transformed, the glyphs are always upright.
package bitmap

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/diagram/internal/glyph"
	"seehuhn.de/go/diagram/internal/raster"
	"seehuhn.de/go/diagram/surface"
)

// Surface draws onto an *image.RGBA.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	surface.Base

	// Image holds the pixels drawn so far.
	Image *image.RGBA

	// Background is the colour used by ClearRect.
	Background color.Color

	r     *raster.Rasteriser
	faces map[fixed.Int26_6]font.Face
}

var _ surface.Surface = (*Surface)(nil)

// New returns a w×h surface filled with white.
func New(w, h int) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	s := &Surface{
		Base:       surface.NewBase(float64(w), float64(h)),
		Image:      img,
		Background: color.White,
		r:          raster.New(rect.Rect{URx: float64(w), URy: float64(h)}),
		faces:      make(map[fixed.Int26_6]font.Face),
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)
	return s
}

// Stroke rasterises the current path with the current line width, dash
// pattern, cap and join.
func (s *Surface) Stroke() {
	w, h := s.Size()
	s.r.Reset(rect.Rect{URx: w, URy: h})
	s.r.Width = s.DeviceLineWidth()
	s.r.Dash = s.DeviceDash()
	s.r.DashPhase = s.DeviceDashOffset()
	s.r.Cap = s.Cap.Style()
	s.r.Join = s.Join.Style()
	s.r.Stroke(&s.Path, s.blender(s.StrokeColor))
}

// blender returns an Emitter which composites c onto the image, weighted
// by the coverage.
func (s *Surface) blender(c color.NRGBA) raster.Emitter {
	img := s.Image
	return func(y, xMin int, coverage []float32) {
		row := img.Pix[y*img.Stride+4*xMin:]
		for i, cov := range coverage {
			if cov <= 0 {
				continue
			}
			a := float32(c.A) / 255 * min(cov, 1)
			px := row[4*i : 4*i+4 : 4*i+4]
			px[0] = blend(c.R, px[0], a)
			px[1] = blend(c.G, px[1], a)
			px[2] = blend(c.B, px[2], a)
			px[3] = blend(255, px[3], a)
		}
	}
}

// blend composites a colour channel with alpha a over a premultiplied
// destination channel.
func blend(src, dst uint8, a float32) uint8 {
	v := float32(src)*a + float32(dst)*(1-a)
	return uint8(v + 0.5)
}

func (s *Surface) face(size float64) (font.Face, error) {
	key := fixed.Int26_6(math.Round(size * 64))
	if f, ok := s.faces[key]; ok {
		return f, nil
	}
	f, err := glyph.Font()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(key) / 64,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	s.faces[key] = face
	return face, nil
}

// FillText draws text using the current fill colour and font size.  Text
// which cannot be rendered is skipped.
func (s *Surface) FillText(text string, x, y float64) {
	face, err := s.face(s.DeviceFontSize())
	if err != nil {
		return
	}
	m := face.Metrics()
	width := font.MeasureString(face, text)
	dx, dy := surface.TextOffset(s.Align, s.Baseline,
		float64(width)/64, float64(m.Ascent)/64, float64(m.Descent)/64)

	p := s.Device(x, y)
	d := font.Drawer{
		Dst:  s.Image,
		Src:  image.NewUniform(s.FillColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round((p.X + dx) * 64)),
			Y: fixed.Int26_6(math.Round((p.Y + dy) * 64)),
		},
	}
	d.DrawString(text)
}

// ClearRect fills the device space bounding box of the rectangle with the
// background colour.  The box is rounded to whole pixels.
func (s *Surface) ClearRect(x, y, w, h float64) {
	x0, y0, x1, y1 := s.DeviceRect(x, y, w, h)
	r := image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x1)), int(math.Round(y1)),
	)
	draw.Draw(s.Image, r, image.NewUniform(s.Background), image.Point{}, draw.Src)
}

// WritePNG encodes the image as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.Image)
}
