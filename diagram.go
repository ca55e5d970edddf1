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

// Package diagram draws line diagrams with piecewise-linear axes.
//
// A Diagram occupies a rectangle of a drawing surface.  It is divided
// into a title strip, up to eight axis strips and a plot area; see
// [ComputeLayout].  Axes and line series convert model values to pixels
// through named value domains.  The domains "x" and "y" exist in every
// diagram.
//
// Typical use:
//
//	d := diagram.New(surf, 0, 0, 600, 300)
//	err := d.Configure(merge.Patch{
//		"title":          map[string]any{"text": "Temperatures"},
//		"primary-left":   map[string]any{},
//		"primary-bottom": map[string]any{},
//	})
//	...
//	err = d.Draw()
//	line, err := d.LineSeries("t_core", nil)
//	err = line.DrawGrid()
//	err = line.DrawSamples(samples)
//
// A Diagram and the surface it draws on are not safe for concurrent use.
package diagram

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/diagram/merge"
	"seehuhn.de/go/diagram/surface"
	"seehuhn.de/go/diagram/viewport"
)

// state is the life cycle state of a diagram.  Configure merges and lays
// out in one step, so a merged but not yet laid out configuration is
// never visible.
type state int

const (
	stateUnconfigured state = iota
	stateLaidOut
	stateDrawable
)

func (s state) String() string {
	switch s {
	case stateUnconfigured:
		return "unconfigured"
	case stateLaidOut:
		return "laid out"
	case stateDrawable:
		return "drawable"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Diagram is a line diagram on a rectangular part of a drawing surface.
type Diagram struct {
	log   *slog.Logger
	state state

	root      *viewport.Viewport
	titlePort *viewport.Viewport
	axisPorts [numSlots]*viewport.Viewport
	plot      *viewport.Viewport

	cfg    *Config
	layout *Layout
	title  *title
	axes   [numSlots]*Axis

	domains map[string]ValueDomain
	series  map[string]*LineSeries
	mappers map[mapperKey]*Mapper
}

type mapperKey struct {
	id       string
	vertical bool
}

// Option configures optional properties of a Diagram.
type Option func(*Diagram)

// WithLogger sets a logger which receives debug messages about layout
// and state changes.  By default, nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(d *Diagram) {
		if l != nil {
			d.log = l
		}
	}
}

// New creates a diagram which occupies the rectangle with top-left corner
// (x, y), width w and height h on s.  The diagram must be configured
// before it can be drawn.
func New(s surface.Surface, x, y, w, h float64, opts ...Option) *Diagram {
	d := &Diagram{
		log:  slog.New(slog.DiscardHandler),
		root: viewport.New(s, x, y, w, h),
		domains: map[string]ValueDomain{
			"x": DefaultDomain.Clone(),
			"y": DefaultDomain.Clone(),
		},
		series:  make(map[string]*LineSeries),
		mappers: make(map[mapperKey]*Mapper),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Configure merges patch into the configuration of the diagram and
// recomputes the layout.  Configure can be called repeatedly; each call
// starts from the configuration left by the previous one.
//
// If the patch does not fit the configuration schema, a
// *merge.ShapeError is returned.  If the decorations do not leave room
// for the plot area, a *LayoutError is returned.  In both cases the
// diagram is left unchanged.
func (d *Diagram) Configure(patch merge.Patch) error {
	cur := d.cfg
	if cur == nil {
		var err error
		cur, err = merge.Defaults(defaultConfig)
		if err != nil {
			return err
		}
	}
	w, h := d.root.Size()
	cur.Width, cur.Height = w, h

	for _, key := range merge.UnknownKeys(defaultConfig, patch) {
		d.log.Debug("ignoring unknown configuration key", "key", key)
	}

	cfg, err := merge.Apply(cur, defaultConfig, patch)
	if err != nil {
		return err
	}
	cfg.Width, cfg.Height = w, h

	layout, err := ComputeLayout(cfg)
	if err != nil {
		return err
	}

	var t *title
	if cfg.Title != nil {
		col, err := parseColor("title.color", cfg.Title.Color)
		if err != nil {
			return err
		}
		t = &title{
			text:     cfg.Title.Text,
			color:    col,
			fontSize: 0.75 * cfg.Title.Size,
		}
	}

	var axes [numSlots]*Axis
	for _, s := range AllSlots {
		ac := cfg.Axis(s)
		if ac == nil {
			continue
		}
		dom, ok := d.domains[ac.Domain]
		if !ok {
			return fmt.Errorf("%s: %w", s, &DomainError{ID: ac.Domain, Reason: "unknown domain"})
		}
		axes[s], err = newAxis(s, ac, layout.Axes[s], dom, cfg.TextHeight/2)
		if err != nil {
			return err
		}
	}

	// Nothing below can fail.
	d.cfg = cfg
	d.layout = layout
	d.plot = place(d.root, d.plot, layout.Plot)
	if t != nil {
		d.titlePort = place(d.root, d.titlePort, layout.Title)
		t.port = d.titlePort
	}
	d.title = t
	for _, s := range AllSlots {
		if axes[s] != nil {
			d.axisPorts[s] = place(d.root, d.axisPorts[s], layout.Axes[s])
			axes[s].port = d.axisPorts[s]
		}
	}
	d.axes = axes
	clear(d.mappers)

	d.log.Debug("diagram layout",
		"plot", layout.Plot,
		"title", layout.HasTitle,
		"axes", d.slotsInUse())
	if d.state != stateLaidOut {
		d.log.Debug("diagram state", "from", d.state, "to", stateLaidOut)
	}
	d.state = stateLaidOut
	return nil
}

// place configures the viewport v to cover r, spawning it from root if
// it does not exist yet.
func place(root, v *viewport.Viewport, r rect.Rect) *viewport.Viewport {
	x, y := r.LLx, r.LLy
	w, h := r.URx-r.LLx, r.URy-r.LLy
	if v == nil {
		return root.Spawn(x, y, w, h)
	}
	v.Configure(x, y, w, h)
	return v
}

func (d *Diagram) slotsInUse() []string {
	var res []string
	for _, s := range AllSlots {
		if d.axes[s] != nil {
			res = append(res, s.String())
		}
	}
	return res
}

func (d *Diagram) stateDrawn() {
	if d.state == stateLaidOut {
		d.log.Debug("diagram state", "from", d.state, "to", stateDrawable)
		d.state = stateDrawable
	}
}

// Config returns a copy of the current configuration.  Before the first
// call to Configure, the zero Config is returned.
func (d *Diagram) Config() Config {
	if d.cfg == nil {
		return Config{}
	}
	res, err := merge.Clone(d.cfg)
	if err != nil {
		return *d.cfg
	}
	return *res
}

// Layout returns the current layout, or nil before the first call to
// Configure.
func (d *Diagram) Layout() *Layout {
	if d.layout == nil {
		return nil
	}
	l := *d.layout
	return &l
}

// Root returns the viewport covering the whole diagram.
func (d *Diagram) Root() *viewport.Viewport {
	return d.root
}

// PlotArea returns the viewport of the plot area, or nil before the
// first call to Configure.
func (d *Diagram) PlotArea() *viewport.Viewport {
	return d.plot
}

// Axis returns the axis shown in slot s, or nil if the slot is not in
// use.
func (d *Diagram) Axis(s Slot) *Axis {
	if s < 0 || s >= numSlots {
		return nil
	}
	return d.axes[s]
}

// Draw draws the title and all axes.
func (d *Diagram) Draw() error {
	if d.state < stateLaidOut {
		return ErrNotConfigured
	}
	if d.title != nil {
		d.title.Draw()
	}
	for _, a := range d.axes {
		if a != nil {
			a.Draw()
		}
	}
	d.stateDrawn()
	return nil
}

// Clear erases the area of the diagram.
func (d *Diagram) Clear() {
	d.root.Clear()
}

// DrawExtent outlines the diagram and all of its parts, for debugging
// layouts.  See viewport.Viewport.DrawExtent.
func (d *Diagram) DrawExtent() error {
	if d.state < stateLaidOut {
		return ErrNotConfigured
	}
	d.root.DrawExtent()
	if d.title != nil {
		d.titlePort.DrawExtent()
	}
	for _, a := range d.axes {
		if a != nil {
			a.port.DrawExtent()
		}
	}
	d.plot.DrawExtent()
	return nil
}

// Domain returns the value domain with the given identifier.
func (d *Diagram) Domain(id string) (ValueDomain, bool) {
	dom, ok := d.domains[id]
	if !ok {
		return ValueDomain{}, false
	}
	return dom.Clone(), true
}

// DomainIDs returns the identifiers of all value domains, in sorted order.
func (d *Diagram) DomainIDs() []string {
	return slices.Sorted(maps.Keys(d.domains))
}

// SetDomain defines or replaces the value domain with the given
// identifier.  Axes showing the domain are updated.  If dom is invalid, a
// *DomainError is returned and nothing is changed.
func (d *Diagram) SetDomain(id string, dom ValueDomain) error {
	if err := dom.Validate(); err != nil {
		err.(*DomainError).ID = id
		return err
	}
	dom = dom.Clone()

	var updated [numSlots]*Axis
	for s, a := range d.axes {
		if a == nil || a.domainID != id {
			continue
		}
		na, err := newAxis(a.slot, d.cfg.Axis(a.slot), d.layout.Axes[s], dom, a.fontSize)
		if err != nil {
			return err
		}
		na.port = a.port
		updated[s] = na
	}

	d.domains[id] = dom
	for s, a := range updated {
		if a != nil {
			d.axes[s] = a
		}
	}
	for k := range d.mappers {
		if k.id == id {
			delete(d.mappers, k)
		}
	}
	d.log.Debug("value domain", "id", id, "start", dom.Start, "end", dom.End(), "segments", len(dom.Segments))
	return nil
}

// ConfigureDomain merges a patch with keys "start" and "segments" into
// the domain with the given identifier, creating it from DefaultDomain
// if necessary.  The list of segments is always replaced as a whole.
func (d *Diagram) ConfigureDomain(id string, patch merge.Patch) error {
	cur, ok := d.domains[id]
	if !ok {
		cur = DefaultDomain
	}
	cur = cur.Clone()
	if _, ok := patch["segments"]; ok {
		cur.Segments = nil
	}
	schema := &ValueDomain{Start: DefaultDomain.Start, Segments: []Segment{{Step: 10, Count: 1}}}
	dom, err := merge.Apply(&cur, schema, patch)
	if err != nil {
		return fmt.Errorf("domain %q: %w", id, err)
	}
	return d.SetDomain(id, *dom)
}

// plotMapper returns the mapper for the domain id across the plot area.
// Vertical mappers run from the bottom of the plot area to the top.
func (d *Diagram) plotMapper(id string, vertical bool) (*Mapper, error) {
	key := mapperKey{id: id, vertical: vertical}
	if m, ok := d.mappers[key]; ok {
		return m, nil
	}
	dom, ok := d.domains[id]
	if !ok {
		return nil, &DomainError{ID: id, Reason: "unknown domain"}
	}
	w, h := d.plot.Size()
	var m *Mapper
	var err error
	if vertical {
		m, err = NewMapper(dom, h, 0)
	} else {
		m, err = NewMapper(dom, 0, w)
	}
	if err != nil {
		return nil, err
	}
	d.mappers[key] = m
	return m, nil
}

// PlotMappers returns the mappers used by line series for the given x
// and y domains, in plot area coordinates.
func (d *Diagram) PlotMappers(xDomain, yDomain string) (mx, my *Mapper, err error) {
	if d.state < stateLaidOut {
		return nil, nil, ErrNotConfigured
	}
	mx, err = d.plotMapper(xDomain, false)
	if err != nil {
		return nil, nil, err
	}
	my, err = d.plotMapper(yDomain, true)
	if err != nil {
		return nil, nil, err
	}
	return mx, my, nil
}

// LineSeries returns the line series with the given identifier, creating
// it if needed.  If patch is not nil, it is merged into the series
// configuration.  A new series uses the domains "x" and "y".
func (d *Diagram) LineSeries(id string, patch merge.Patch) (*LineSeries, error) {
	ls, ok := d.series[id]
	if !ok {
		cfg, err := merge.Defaults(defaultSeries)
		if err != nil {
			return nil, err
		}
		ls = &LineSeries{id: id, d: d, cfg: cfg}
		if err := ls.Configure(nil); err != nil {
			return nil, err
		}
	}
	if patch != nil {
		if err := ls.Configure(patch); err != nil {
			return nil, err
		}
	}
	d.series[id] = ls
	return ls, nil
}

// Series returns the line series with the given identifier, or nil.
func (d *Diagram) Series(id string) *LineSeries {
	return d.series[id]
}
