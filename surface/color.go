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

package surface

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrColor is returned (wrapped) by ParseColor for malformed colour strings.
var ErrColor = errors.New("invalid colour")

var namedColors = map[string]color.NRGBA{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"lime":        {0, 255, 0, 255},
	"blue":        {0, 0, 255, 255},
	"cyan":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a CSS-style colour: a colour name, #rgb, #rrggbb,
// rgb(r,g,b) or rgba(r,g,b,a) with components 0-255 and alpha 0-1.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		switch len(hex) {
		case 3:
			v, err := strconv.ParseUint(hex, 16, 16)
			if err != nil {
				break
			}
			r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
			return color.NRGBA{r * 17, g * 17, b * 17, 255}, nil
		case 6:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				break
			}
			return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
		}
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
	}

	var args string
	var hasAlpha bool
	if a, ok := strings.CutPrefix(s, "rgba("); ok {
		args, hasAlpha = a, true
	} else if a, ok := strings.CutPrefix(s, "rgb("); ok {
		args = a
	} else {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	args, ok := strings.CutSuffix(args, ")")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	parts := strings.Split(args, ",")
	want := 3
	if hasAlpha {
		want = 4
	}
	if len(parts) != want {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
	}

	var comp [3]uint8
	for i := range 3 {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
		}
		comp[i] = uint8(v)
	}
	alpha := uint8(255)
	if hasAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
		}
		alpha = uint8(a*255 + 0.5)
	}
	return color.NRGBA{comp[0], comp[1], comp[2], alpha}, nil
}

// FormatColor returns the rgb() or rgba() notation of c.
func FormatColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", c.R, c.G, c.B, float64(c.A)/255)
}
