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
	"fmt"
	"image/color"

	"seehuhn.de/go/diagram/surface"
)

// Slot names one of the eight places around the plot area where an axis
// can be shown.  Secondary slots are further from the plot area than the
// primary slot on the same side.
type Slot int

const (
	PrimaryLeft Slot = iota
	SecondaryLeft
	PrimaryRight
	SecondaryRight
	PrimaryTop
	SecondaryTop
	PrimaryBottom
	SecondaryBottom

	numSlots
)

// AllSlots lists every axis slot in layout order.
var AllSlots = [numSlots]Slot{
	PrimaryLeft, SecondaryLeft, PrimaryRight, SecondaryRight,
	PrimaryTop, SecondaryTop, PrimaryBottom, SecondaryBottom,
}

var slotNames = [numSlots]string{
	"primary-left", "secondary-left", "primary-right", "secondary-right",
	"primary-top", "secondary-top", "primary-bottom", "secondary-bottom",
}

func (s Slot) String() string {
	if s < 0 || s >= numSlots {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// ParseSlot converts a configuration key like "primary-left" to a Slot.
func ParseSlot(name string) (Slot, bool) {
	for s, n := range slotNames {
		if n == name {
			return Slot(s), true
		}
	}
	return 0, false
}

// Vertical reports whether axes in this slot run vertically, i.e. whether
// the slot is on the left or right of the plot area.
func (s Slot) Vertical() bool {
	return s <= SecondaryRight
}

// Config is the configuration of a diagram.
//
// Width and Height are taken from the placement of the diagram and
// cannot be changed by a configuration patch.
type Config struct {
	Width  float64
	Height float64

	Margin     float64      `diagram:"margin"`
	TextHeight float64      `diagram:"text-height"`
	Title      *TitleConfig `diagram:"title,optional"`

	PrimaryLeft     *AxisConfig `diagram:"primary-left,optional"`
	SecondaryLeft   *AxisConfig `diagram:"secondary-left,optional"`
	PrimaryRight    *AxisConfig `diagram:"primary-right,optional"`
	SecondaryRight  *AxisConfig `diagram:"secondary-right,optional"`
	PrimaryTop      *AxisConfig `diagram:"primary-top,optional"`
	SecondaryTop    *AxisConfig `diagram:"secondary-top,optional"`
	PrimaryBottom   *AxisConfig `diagram:"primary-bottom,optional"`
	SecondaryBottom *AxisConfig `diagram:"secondary-bottom,optional"`
}

// TitleConfig configures the diagram title.
type TitleConfig struct {
	Text  string  `diagram:"text"`
	Size  float64 `diagram:"size"`
	Color string  `diagram:"color"`
}

// AxisConfig configures one axis slot.
type AxisConfig struct {
	Size     float64 `diagram:"size"`
	Domain   string  `diagram:"domain"`
	Reversed bool    `diagram:"reversed"`
	Color    string  `diagram:"color"`
}

// Axis returns the configuration of the given slot, or nil if the slot is
// not used.
func (c *Config) Axis(s Slot) *AxisConfig {
	return *c.axisField(s)
}

func (c *Config) axisField(s Slot) **AxisConfig {
	switch s {
	case PrimaryLeft:
		return &c.PrimaryLeft
	case SecondaryLeft:
		return &c.SecondaryLeft
	case PrimaryRight:
		return &c.PrimaryRight
	case SecondaryRight:
		return &c.SecondaryRight
	case PrimaryTop:
		return &c.PrimaryTop
	case SecondaryTop:
		return &c.SecondaryTop
	case PrimaryBottom:
		return &c.PrimaryBottom
	case SecondaryBottom:
		return &c.SecondaryBottom
	}
	panic(fmt.Sprintf("diagram: invalid axis slot %d", int(s)))
}

func axisDefaults(domain string, reversed bool, size float64) *AxisConfig {
	return &AxisConfig{Size: size, Domain: domain, Reversed: reversed, Color: "black"}
}

// defaultConfig holds the defaults for all configuration fields.  Optional
// entries are only used once a patch mentions them.
var defaultConfig = &Config{
	Margin:     5,
	TextHeight: 20,
	Title:      &TitleConfig{Text: "Diagram title", Size: 20, Color: "black"},

	PrimaryLeft:     axisDefaults("y", false, 30),
	SecondaryLeft:   axisDefaults("y", false, 30),
	PrimaryRight:    axisDefaults("y", true, 30),
	SecondaryRight:  axisDefaults("y", true, 30),
	PrimaryTop:      axisDefaults("x", true, 20),
	SecondaryTop:    axisDefaults("x", true, 20),
	PrimaryBottom:   axisDefaults("x", false, 20),
	SecondaryBottom: axisDefaults("x", false, 20),
}

// SeriesConfig configures a line series.
type SeriesConfig struct {
	XDomain   string  `diagram:"x-domain"`
	YDomain   string  `diagram:"y-domain"`
	Color     string  `diagram:"color"`
	GridColor string  `diagram:"grid-color"`
	Width     float64 `diagram:"width"`
	// Dash is replaced as a whole by a patch, so that {"dash": []}
	// makes the line solid again.
	Dash       []float64 `diagram:"dash"`
	DashOffset float64   `diagram:"dash-offset"`
	LineCap    string    `diagram:"line-cap"`
	LineJoin   string    `diagram:"line-join"`
}

var defaultSeries = &SeriesConfig{
	XDomain:   "x",
	YDomain:   "y",
	Color:     "rgb(0,255,0)",
	GridColor: "rgb(128,128,128)",
	Width:     1,
	LineCap:   "butt",
	LineJoin:  "miter",
}

func parseColor(field, s string) (color.NRGBA, error) {
	c, err := surface.ParseColor(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%s: %w", field, err)
	}
	return c, nil
}
