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

package merge

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

type axis struct {
	Size     int    `diagram:"size"`
	Domain   string `diagram:"domain"`
	Reversed bool   `diagram:"reversed"`
}

type title struct {
	Text string  `diagram:"text"`
	Size float64 `diagram:"size"`
}

type segment struct {
	Step  float64 `diagram:"step"`
	Count int     `diagram:"count"`
}

type config struct {
	Margin   int       `diagram:"margin"`
	Title    *title    `diagram:"title,optional"`
	Left     *axis     `diagram:"left,optional"`
	Top      *axis     `diagram:"top,optional"`
	Segments []segment `diagram:"segments"`
	Dash     []float64 `diagram:"dash"`
	Internal string
}

var schema = &config{
	Margin:   5,
	Title:    &title{Text: "Diagram title", Size: 20},
	Left:     &axis{Size: 30, Domain: "y"},
	Top:      &axis{Size: 20, Domain: "x", Reversed: true},
	Segments: []segment{{Step: 10, Count: 10}},
	Dash:     []float64{4, 2, 1},
	Internal: "kept",
}

func TestDefaults(t *testing.T) {
	cfg, err := Defaults(schema)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Margin != 5 || cfg.Internal != "kept" {
		t.Errorf("scalar defaults not copied: %+v", cfg)
	}
	if cfg.Title != nil || cfg.Left != nil || cfg.Top != nil {
		t.Errorf("optional fields must be absent by default: %+v", cfg)
	}
	if len(cfg.Segments) != 1 || cfg.Segments[0].Count != 10 {
		t.Errorf("segments = %v", cfg.Segments)
	}

	// the result must not share memory with the schema
	cfg.Segments[0].Count = 99
	if schema.Segments[0].Count != 10 {
		t.Error("Defaults shares slices with the schema")
	}
}

func TestApply(t *testing.T) {
	cfg, _ := Defaults(schema)

	patch := Patch{
		"title": Patch{"text": "Temperatures"},
		"left":  Patch{},
		"other": 12,
	}
	got, err := Apply(cfg, schema, patch)
	if err != nil {
		t.Fatal(err)
	}

	if got.Title == nil || got.Title.Text != "Temperatures" || got.Title.Size != 20 {
		t.Errorf("title = %+v", got.Title)
	}
	if got.Left == nil || *got.Left != (axis{Size: 30, Domain: "y"}) {
		t.Errorf("empty object must materialise the defaults, got %+v", got.Left)
	}
	if got.Top != nil {
		t.Errorf("top axis appeared without being mentioned")
	}
	if got.Margin != 5 {
		t.Errorf("margin = %d", got.Margin)
	}

	// the input is left alone
	if cfg.Title != nil {
		t.Error("Apply modified its input")
	}

	// later patches refine earlier ones
	got2, err := Apply(got, schema, Patch{"title": Patch{"size": 25}})
	if err != nil {
		t.Fatal(err)
	}
	if got2.Title.Text != "Temperatures" || got2.Title.Size != 25 {
		t.Errorf("title after second patch = %+v", got2.Title)
	}
	if schema.Title.Size != 20 {
		t.Error("Apply modified the schema")
	}
}

func TestApplyIdempotent(t *testing.T) {
	cfg, _ := Defaults(schema)
	patch := Patch{"margin": 3, "top": Patch{"size": 25}}
	a, err := Apply(cfg, schema, patch)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Apply(a, schema, patch)
	if err != nil {
		t.Fatal(err)
	}
	if b.Margin != a.Margin || *b.Top != *a.Top {
		t.Errorf("second application changed the result: %+v vs %+v", a, b)
	}
}

func TestApplySlices(t *testing.T) {
	cfg, _ := Defaults(schema)
	got, err := Apply(cfg, schema, Patch{
		"segments": []any{Patch{"count": 6}, Patch{"step": 30}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []segment{{Step: 10, Count: 6}, {Step: 30}}
	if !slices.Equal(got.Segments, want) {
		t.Errorf("segments = %v, want %v", got.Segments, want)
	}
}

func TestApplyScalarSlices(t *testing.T) {
	cases := []struct {
		name  string
		start []float64
		patch []any
		want  []float64
	}{
		{"clear", []float64{6, 3}, []any{}, []float64{}},
		{"shorter", []float64{6, 3}, []any{2.0}, []float64{2}},
		{"longer", []float64{6}, []any{1.0, 2.0, 3.0}, []float64{1, 2, 3}},
		{"from schema", nil, []any{5.0}, []float64{5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, _ := Defaults(schema)
			if tc.start != nil {
				cfg.Dash = tc.start
			}
			got, err := Apply(cfg, schema, Patch{"dash": tc.patch})
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got.Dash, tc.want) {
				t.Errorf("dash = %v, want %v", got.Dash, tc.want)
			}
		})
	}

	cfg, _ := Defaults(schema)
	_, err := Apply(cfg, schema, Patch{"dash": []any{1.0, "x"}})
	var se *ShapeError
	if !errors.As(err, &se) || se.Path != "dash[1]" {
		t.Errorf("error = %v, want shape error at dash[1]", err)
	}
	if !slices.Equal(cfg.Dash, []float64{4, 2, 1}) {
		t.Errorf("dash changed on error: %v", cfg.Dash)
	}
}

func TestShapeErrors(t *testing.T) {
	cases := []struct {
		name  string
		patch Patch
		path  string
	}{
		{"scalar for object", Patch{"title": "hello"}, "title"},
		{"object for scalar", Patch{"margin": Patch{}}, "margin"},
		{"array for scalar", Patch{"left": Patch{"size": []any{1}}}, "left.size"},
		{"object for array", Patch{"segments": Patch{}}, "segments"},
		{"string for number", Patch{"title": Patch{"size": "big"}}, "title.size"},
		{"fraction for integer", Patch{"margin": 2.5}, "margin"},
		{"number for boolean", Patch{"top": Patch{"reversed": 1}}, "top.reversed"},
		{"nested array element", Patch{"segments": []any{7}}, "segments[0]"},
	}

	cfg, _ := Defaults(schema)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(cfg, schema, tc.patch)
			if got != nil {
				t.Error("result returned despite error")
			}
			if !errors.Is(err, ErrShape) {
				t.Fatalf("got %v, want shape error", err)
			}
			var se *ShapeError
			if !errors.As(err, &se) || se.Path != tc.path {
				t.Errorf("error path = %q, want %q", se.Path, tc.path)
			}
		})
	}
	if cfg.Title != nil || cfg.Margin != 5 {
		t.Error("failed Apply modified its input")
	}
}

func TestJSONPatch(t *testing.T) {
	var patch Patch
	err := json.Unmarshal([]byte(`{"margin": 8, "left": {"size": 40, "reversed": true}}`), &patch)
	if err != nil {
		t.Fatal(err)
	}
	cfg, _ := Defaults(schema)
	got, err := Apply(cfg, schema, patch)
	if err != nil {
		t.Fatal(err)
	}
	if got.Margin != 8 || got.Left.Size != 40 || !got.Left.Reversed || got.Left.Domain != "y" {
		t.Errorf("got %+v / %+v", got, got.Left)
	}
}

func TestUnknownKeys(t *testing.T) {
	patch := Patch{
		"margin":   1,
		"colour":   "red",
		"title":    Patch{"txt": "x", "text": "y"},
		"segments": []any{Patch{"prop": 50}},
	}
	got := UnknownKeys(schema, patch)
	want := []string{"colour", "segments[0].prop", "title.txt"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
