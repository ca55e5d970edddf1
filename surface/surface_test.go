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
	"image/color"
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"rgb(0,255,0)", color.NRGBA{0, 255, 0, 255}},
		{"rgb( 128 , 128 , 128 )", color.NRGBA{128, 128, 128, 255}},
		{"rgba(255,0,0,0.5)", color.NRGBA{255, 0, 0, 128}},
		{"#ff00ff", color.NRGBA{255, 0, 255, 255}},
		{"#0f0", color.NRGBA{0, 255, 0, 255}},
		{"Black", color.NRGBA{0, 0, 0, 255}},
		{"grey", color.NRGBA{128, 128, 128, 255}},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	bad := []string{"", "rgb(1,2)", "rgb(1,2,300)", "#12345", "#gggggg", "hsl(0,0,0)", "rgb(1,2,3"}
	for _, s := range bad {
		if _, err := ParseColor(s); !errors.Is(err, ErrColor) {
			t.Errorf("ParseColor(%q): got %v, want ErrColor", s, err)
		}
	}
}

func TestFormatColor(t *testing.T) {
	if got := FormatColor(color.NRGBA{1, 2, 3, 255}); got != "rgb(1,2,3)" {
		t.Errorf("got %q", got)
	}
	if got := FormatColor(color.NRGBA{1, 2, 3, 0}); got != "rgba(1,2,3,0)" {
		t.Errorf("got %q", got)
	}
}

func TestSaveRestore(t *testing.T) {
	b := NewBase(100, 50)
	b.SetLineDash([]float64{2, 3})
	b.Save()
	b.SetTransform(matrix.Matrix{1, 0, 0, 1, 10, 20})
	b.SetLineWidth(4)
	b.Dash[0] = 99
	b.SetTextAlign(AlignEnd, BaselineMiddle)
	b.Restore()

	if b.CTM != matrix.Identity {
		t.Errorf("CTM not restored: %v", b.CTM)
	}
	if b.LineWidth != 1 {
		t.Errorf("width not restored: %g", b.LineWidth)
	}
	if b.Dash[0] != 2 {
		t.Errorf("dash pattern shared with saved state: %v", b.Dash)
	}
	if b.Align != AlignStart || b.Baseline != BaselineAlphabetic {
		t.Errorf("text alignment not restored")
	}

	// unbalanced Restore is ignored
	b.Restore()
	if b.LineWidth != 1 {
		t.Errorf("unbalanced Restore changed state")
	}
}

func TestPathUsesTransformAtCallTime(t *testing.T) {
	b := NewBase(100, 100)
	b.SetTransform(matrix.Matrix{1, 0, 0, 1, 10, 0})
	b.MoveTo(0, 0)
	b.SetTransform(matrix.Matrix{1, 0, 0, 1, 0, 10})
	b.LineTo(5, 5)
	b.Rect(0, 0, 2, 2)

	var got [][]vec.Vec2
	var closed []bool
	b.Subpaths(func(pts []vec.Vec2, c bool) {
		got = append(got, append([]vec.Vec2(nil), pts...))
		closed = append(closed, c)
	})
	if len(got) != 2 {
		t.Fatalf("got %d subpaths, want 2", len(got))
	}
	want0 := []vec.Vec2{{X: 10, Y: 0}, {X: 5, Y: 15}}
	for i, p := range want0 {
		if got[0][i] != p {
			t.Errorf("point %d: got %v, want %v", i, got[0][i], p)
		}
	}
	if closed[0] || !closed[1] {
		t.Errorf("closed flags = %v", closed)
	}
	if len(got[1]) != 4 || got[1][2] != (vec.Vec2{X: 2, Y: 12}) {
		t.Errorf("rectangle subpath = %v", got[1])
	}
}

func TestDeviceRect(t *testing.T) {
	b := NewBase(100, 100)
	b.SetTransform(matrix.Matrix{0, 1, -1, 0, 50, 0})
	x0, y0, x1, y1 := b.DeviceRect(0, 0, 10, 20)
	if x0 != 30 || y0 != 0 || x1 != 50 || y1 != 10 {
		t.Errorf("got (%g,%g,%g,%g)", x0, y0, x1, y1)
	}
}

func TestLineCapJoinNames(t *testing.T) {
	for _, c := range []LineCap{CapButt, CapRound, CapSquare} {
		got, err := ParseLineCap(c.String())
		if err != nil || got != c {
			t.Errorf("ParseLineCap(%q) = %v, %v", c.String(), got, err)
		}
	}
	for _, j := range []LineJoin{JoinMiter, JoinRound, JoinBevel} {
		got, err := ParseLineJoin(j.String())
		if err != nil || got != j {
			t.Errorf("ParseLineJoin(%q) = %v, %v", j.String(), got, err)
		}
	}
	if _, err := ParseLineCap("flat"); err == nil {
		t.Error("invalid cap accepted")
	}
	if _, err := ParseLineJoin(""); err == nil {
		t.Error("invalid join accepted")
	}
}

func TestDashOffsetScaled(t *testing.T) {
	b := NewBase(100, 100)
	b.SetTransform(matrix.Matrix{3, 0, 0, 3, 0, 0})
	b.SetLineDashOffset(2)
	b.SetLineDashOffset(math.NaN())
	b.Save()
	b.SetLineCap(CapRound)
	b.Restore()
	if got := b.DeviceDashOffset(); got != 6 {
		t.Errorf("DeviceDashOffset() = %g, want 6", got)
	}
	if b.Cap != CapButt {
		t.Errorf("Cap = %v after Restore, want butt", b.Cap)
	}
}
