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

package diagram

import (
	"errors"
	"math"
	"slices"
	"testing"
)

var twoSegments = ValueDomain{
	Start: 0,
	Segments: []Segment{
		{Step: 10, Count: 5},
		{Step: 20, Count: 3},
	},
}

func TestMapperEndpoints(t *testing.T) {
	m, err := NewMapper(twoSegments, 0, 400)
	if err != nil {
		t.Fatal(err)
	}

	if p := m.ModelToPixel(0); p != 0 {
		t.Errorf("ModelToPixel(0) = %g, want 0", p)
	}
	if p := m.ModelToPixel(110); p != 400 {
		t.Errorf("ModelToPixel(110) = %g, want 400", p)
	}
	if p := m.ModelToPixel(50); p != 200 {
		t.Errorf("ModelToPixel(50) = %g, want 200", p)
	}

	last := math.Inf(-1)
	for v := 0.0; v <= 110; v += 0.25 {
		p := m.ModelToPixel(v)
		if math.IsNaN(p) || p < last {
			t.Fatalf("not monotonic at %g: %g after %g", v, p, last)
		}
		last = p
	}
}

func TestMapperOutside(t *testing.T) {
	m, err := NewMapper(twoSegments, 0, 400)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []float64{-1e-9, -5, 110.0001, 1000, math.NaN()} {
		if p := m.ModelToPixel(v); !math.IsNaN(p) {
			t.Errorf("ModelToPixel(%g) = %g, want NaN", v, p)
		}
	}
	for _, p := range []float64{-1, 401} {
		if v := m.PixelToModel(p); !math.IsNaN(v) {
			t.Errorf("PixelToModel(%g) = %g, want NaN", p, v)
		}
	}
}

func TestMapperRoundTrip(t *testing.T) {
	d := ValueDomain{
		Start: 20,
		Segments: []Segment{
			{Step: 2, Count: 5, Proportion: 70},
			{Step: 5, Count: 2, Proportion: 30},
		},
	}
	m, err := NewMapper(d, 300, 0)
	if err != nil {
		t.Fatal(err)
	}
	for v := 20.0; v <= 40; v += 0.5 {
		p := m.ModelToPixel(v)
		back := m.PixelToModel(p)
		if math.Abs(back-v) > 1e-9 {
			t.Errorf("PixelToModel(ModelToPixel(%g)) = %g", v, back)
		}
	}
	if p := m.ModelToPixel(30); p != 90 {
		t.Errorf("ModelToPixel(30) = %g, want 90", p)
	}
}

func TestSegmentWidths(t *testing.T) {
	cases := []struct {
		segments int
		span     float64
	}{
		{1, 400},
		{2, 400},
		{3, 400},
		{3, 401},
		{7, 333},
		{6, 100},
	}
	for _, tc := range cases {
		d := ValueDomain{}
		for range tc.segments {
			d.Segments = append(d.Segments, Segment{Step: 1, Count: 4})
		}
		m, err := NewMapper(d, 0, tc.span)
		if err != nil {
			t.Fatal(err)
		}
		var sum float64
		for _, w := range m.SegmentWidths() {
			if w != math.Trunc(w) {
				t.Errorf("%d segments: non-integer width %g", tc.segments, w)
			}
			sum += w
		}
		slack := tc.span - sum
		if slack < 0 || slack > float64(tc.segments-1) {
			t.Errorf("%d segments over %g pixels: widths sum to %g",
				tc.segments, tc.span, sum)
		}
	}
}

func TestSegmentWidthsProportions(t *testing.T) {
	d := ValueDomain{Segments: []Segment{
		{Step: 1, Count: 1, Proportion: 33},
		{Step: 1, Count: 1, Proportion: 33},
		{Step: 1, Count: 1, Proportion: 34},
	}}
	m, err := NewMapper(d, 10, 110)
	if err != nil {
		t.Fatal(err)
	}
	got := m.SegmentWidths()
	want := []float64{33, 33, 34}
	if !slices.Equal(got, want) {
		t.Errorf("SegmentWidths() = %v, want %v", got, want)
	}
}

func TestSegmentWidthsTruncation(t *testing.T) {
	equal := ValueDomain{Segments: []Segment{
		{Step: 1, Count: 1},
		{Step: 1, Count: 1},
		{Step: 1, Count: 1},
	}}
	partial := ValueDomain{Segments: []Segment{
		{Step: 1, Count: 1, Proportion: 30},
		{Step: 1, Count: 1, Proportion: 30},
	}}
	cases := []struct {
		d      ValueDomain
		p0, pn float64
		want   []float64
	}{
		{equal, 0, 200, []float64{66, 66, 68}},
		{equal, 200, 0, []float64{-66, -66, -68}},
		{equal, 10, 310.5, []float64{100, 100, 100}},
		{partial, 0, 101, []float64{30, 30}},
	}
	for _, tc := range cases {
		m, err := NewMapper(tc.d, tc.p0, tc.pn)
		if err != nil {
			t.Fatal(err)
		}
		if got := m.SegmentWidths(); !slices.Equal(got, tc.want) {
			t.Errorf("[%g, %g]: SegmentWidths() = %v, want %v", tc.p0, tc.pn, got, tc.want)
		}
	}
}

func TestModelsToPixels(t *testing.T) {
	m, err := NewMapper(twoSegments, 0, 400)
	if err != nil {
		t.Fatal(err)
	}
	nan := math.NaN()
	cases := []struct {
		in   []float64
		want []float64
	}{
		{nil, []float64{}},
		{[]float64{}, []float64{}},
		{[]float64{0, 50, 110}, []float64{0, 200, 400}},
		{[]float64{10, -1, 30, 200, nan, 70}, []float64{40, nan, 120, nan, nan, 200 + 20*200.0/60}},
	}
	for _, tc := range cases {
		got := m.ModelsToPixels(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("ModelsToPixels(%v) has %d elements, want %d", tc.in, len(got), len(tc.want))
			continue
		}
		for i := range got {
			if math.IsNaN(tc.want[i]) != math.IsNaN(got[i]) ||
				!math.IsNaN(got[i]) && math.Abs(got[i]-tc.want[i]) > 1e-9 {
				t.Errorf("ModelsToPixels(%v)[%d] = %g, want %g", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}

func TestTicks(t *testing.T) {
	m, err := NewMapper(twoSegments, 0, 400)
	if err != nil {
		t.Fatal(err)
	}
	values := m.TickValues()
	wantValues := []float64{0, 10, 20, 30, 40, 50, 70, 90, 110}
	if !slices.Equal(values, wantValues) {
		t.Errorf("TickValues() = %v, want %v", values, wantValues)
	}

	pixels := m.TickPixels()
	if len(pixels) != len(values) {
		t.Fatalf("%d tick pixels for %d values", len(pixels), len(values))
	}
	for i, v := range values {
		if p := m.ModelToPixel(v); math.Abs(p-pixels[i]) > 1e-9 {
			t.Errorf("tick %d: pixel %g, ModelToPixel gives %g", i, pixels[i], p)
		}
	}

	labels := m.TickLabels()
	wantLabels := []string{"0", "10", "20", "30", "40", "50", "70", "90", "110"}
	if !slices.Equal(labels, wantLabels) {
		t.Errorf("TickLabels() = %q, want %q", labels, wantLabels)
	}
}

func TestTickLabelsRounding(t *testing.T) {
	d := ValueDomain{Start: 36, Segments: []Segment{{Step: 0.1, Count: 20}}}
	m, err := NewMapper(d, 0, 200)
	if err != nil {
		t.Fatal(err)
	}
	labels := m.TickLabels()
	if labels[3] != "36.3" || labels[20] != "38" {
		t.Errorf("unexpected labels %q", labels)
	}
}

func TestDecreasingDomain(t *testing.T) {
	d := ValueDomain{Start: 100, Segments: []Segment{{Step: -10, Count: 10}}}
	m, err := NewMapper(d, 0, 200)
	if err != nil {
		t.Fatal(err)
	}
	if p := m.ModelToPixel(100); p != 0 {
		t.Errorf("ModelToPixel(100) = %g", p)
	}
	if p := m.ModelToPixel(25); p != 150 {
		t.Errorf("ModelToPixel(25) = %g", p)
	}
	if p := m.ModelToPixel(-1); !math.IsNaN(p) {
		t.Errorf("ModelToPixel(-1) = %g", p)
	}
}

func TestDomainValidate(t *testing.T) {
	cases := []ValueDomain{
		{},
		{Segments: []Segment{{Step: 1, Count: 0}}},
		{Segments: []Segment{{Step: 0, Count: 3}}},
		{Segments: []Segment{{Step: math.NaN(), Count: 3}}},
		{Start: math.Inf(1), Segments: []Segment{{Step: 1, Count: 3}}},
		{Segments: []Segment{{Step: 1, Count: 3, Proportion: -1}}},
	}
	for i, d := range cases {
		_, err := NewMapper(d, 0, 100)
		var de *DomainError
		if !errors.As(err, &de) {
			t.Errorf("case %d: got %v, want DomainError", i, err)
		}
	}
}

func TestAutoDomain(t *testing.T) {
	cases := []struct {
		lo, hi float64
		steps  int
	}{
		{36.4, 38.9, 10},
		{0, 1, 5},
		{-3, 117, 8},
		{5, 5, 10},
		{0.0012, 0.0049, 6},
	}
	for _, tc := range cases {
		d, err := AutoDomain(tc.lo, tc.hi, tc.steps)
		if err != nil {
			t.Fatal(err)
		}
		if err := d.Validate(); err != nil {
			t.Errorf("AutoDomain(%g, %g): %v", tc.lo, tc.hi, err)
			continue
		}
		if d.Start > tc.lo || d.End() < tc.hi {
			t.Errorf("AutoDomain(%g, %g) = [%g, %g]", tc.lo, tc.hi, d.Start, d.End())
		}
		if n := d.Segments[0].Count; n > tc.steps {
			t.Errorf("AutoDomain(%g, %g): %d steps, max %d", tc.lo, tc.hi, n, tc.steps)
		}
	}
}

func TestDataDomain(t *testing.T) {
	d, err := DataDomain([]float64{3, math.NaN(), 17, 9}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if d.Start > 3 || d.End() < 17 {
		t.Errorf("DataDomain = [%g, %g]", d.Start, d.End())
	}

	_, err = DataDomain([]float64{math.NaN()}, 10)
	var de *DomainError
	if !errors.As(err, &de) {
		t.Errorf("DataDomain(NaN) = %v", err)
	}
}

func BenchmarkModelToPixel(b *testing.B) {
	d := ValueDomain{Start: 0, Segments: []Segment{
		{Step: 1, Count: 10}, {Step: 5, Count: 10}, {Step: 25, Count: 10},
	}}
	m, err := NewMapper(d, 0, 600)
	if err != nil {
		b.Fatal(err)
	}
	xs := make([]float64, 1000)
	for i := range xs {
		xs[i] = float64(i) * 0.31
	}
	for b.Loop() {
		for _, x := range xs {
			m.ModelToPixel(x)
		}
	}
}
