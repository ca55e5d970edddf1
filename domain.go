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
	"math"
	"slices"
	"strconv"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
)

// Segment is one linear piece of a ValueDomain.
type Segment struct {
	Step  float64 `diagram:"step" json:"step"`
	Count int     `diagram:"count" json:"count"`

	// Proportion is the percentage of the pixel range used by this
	// segment.  Zero means an equal share of 100/len(segments).
	Proportion float64 `diagram:"proportion" json:"proportion,omitempty"`
}

// ValueDomain describes a piecewise-linear axis.  The domain starts at
// Start, and each segment advances the value by Count steps of size Step.
type ValueDomain struct {
	Start    float64   `diagram:"start" json:"start"`
	Segments []Segment `diagram:"segments" json:"segments"`
}

// DefaultDomain is the domain used for "x" and "y" until it is replaced.
var DefaultDomain = ValueDomain{
	Start:    0,
	Segments: []Segment{{Step: 10, Count: 10}},
}

// End returns the last value of the domain.
func (d ValueDomain) End() float64 {
	m := d.Start
	for _, s := range d.Segments {
		m += s.Step * float64(s.Count)
	}
	return m
}

// Clone returns a copy of d which does not share memory with d.
func (d ValueDomain) Clone() ValueDomain {
	d.Segments = slices.Clone(d.Segments)
	return d
}

// Validate checks that d can be used to build a Mapper.
func (d ValueDomain) Validate() error {
	if len(d.Segments) == 0 {
		return &DomainError{Reason: "no segments"}
	}
	if math.IsNaN(d.Start) || math.IsInf(d.Start, 0) {
		return &DomainError{Reason: "start value is not finite"}
	}
	for i, s := range d.Segments {
		switch {
		case s.Count <= 0:
			return &DomainError{Reason: "segment " + strconv.Itoa(i) + ": count must be positive"}
		case s.Step == 0 || math.IsNaN(s.Step) || math.IsInf(s.Step, 0):
			return &DomainError{Reason: "segment " + strconv.Itoa(i) + ": step must be finite and non-zero"}
		case s.Proportion < 0 || math.IsNaN(s.Proportion):
			return &DomainError{Reason: "segment " + strconv.Itoa(i) + ": negative proportion"}
		}
	}
	return nil
}

// segmentMap is the linear map for one segment of a Mapper.
type segmentMap struct {
	mLow, mHigh float64 // model range, mLow <= mHigh
	m0, m1      float64 // model values at the segment ends
	p0, p1      float64 // pixel positions of the segment ends
	step        float64
	count       int
}

// pixel interpolates between the segment ends, so that both ends are
// mapped exactly.
func (s *segmentMap) pixel(v float64) float64 {
	return s.p0 + (v-s.m0)/(s.m1-s.m0)*(s.p1-s.p0)
}

// Mapper converts between model values of a ValueDomain and pixel
// offsets along one axis.  A Mapper is immutable.
type Mapper struct {
	domain ValueDomain
	p0, pn float64
	segs   []segmentMap
}

// NewMapper maps the domain d onto the pixel range from p0 to pn.  The
// range may run backwards, e.g. from the height of a viewport to 0 for a
// y-axis with values growing upwards.
//
// Each segment is trunc((pn-p0)*P/100) pixels wide, where P is its
// proportion.  The widths are added up from p0.  If the proportions sum
// to 100, the last segment ends at p0 + trunc(pn-p0), so that all of the
// truncation slack ends up in the last segment.
func NewMapper(d ValueDomain, p0, pn float64) (*Mapper, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d = d.Clone()

	n := len(d.Segments)
	mp := &Mapper{
		domain: d,
		p0:     p0,
		pn:     pn,
		segs:   make([]segmentMap, n),
	}

	span := pn - p0
	m := d.Start
	pix := p0
	cum := 0.0
	for i, s := range d.Segments {
		prop := s.Proportion
		if prop == 0 {
			prop = 100 / float64(n)
		}
		cum += prop

		next := pix + math.Trunc(span*prop/100)
		if i == n-1 && math.Abs(cum-100) < 1e-9 {
			next = p0 + math.Trunc(span)
		}
		mEnd := m + s.Step*float64(s.Count)

		sm := segmentMap{
			mLow:  min(m, mEnd),
			mHigh: max(m, mEnd),
			m0:    m,
			m1:    mEnd,
			p0:    pix,
			p1:    next,
			step:  s.Step,
			count: s.Count,
		}
		mp.segs[i] = sm

		m = mEnd
		pix = next
	}
	return mp, nil
}

// Domain returns the value domain of the mapper.
func (mp *Mapper) Domain() ValueDomain {
	return mp.domain.Clone()
}

// Range returns the pixel range the mapper was built for.
func (mp *Mapper) Range() (p0, pn float64) {
	return mp.p0, mp.pn
}

// Start returns the first model value and its pixel position.
func (mp *Mapper) Start() (model, pixel float64) {
	s := &mp.segs[0]
	return s.m0, s.p0
}

// End returns the last model value and its pixel position.  The pixel
// position can differ from the end of the configured pixel range by the
// truncation of segment widths.
func (mp *Mapper) End() (model, pixel float64) {
	s := &mp.segs[len(mp.segs)-1]
	return s.m1, s.p1
}

// ModelToPixel returns the pixel position of the model value v.  If v is
// outside the domain, NaN is returned.
func (mp *Mapper) ModelToPixel(v float64) float64 {
	for i := range mp.segs {
		s := &mp.segs[i]
		if v >= s.mLow && v <= s.mHigh {
			return s.pixel(v)
		}
	}
	return math.NaN()
}

// ModelsToPixels applies ModelToPixel to every element of vs.
func (mp *Mapper) ModelsToPixels(vs []float64) []float64 {
	res := make([]float64, len(vs))
	for i, v := range vs {
		res[i] = mp.ModelToPixel(v)
	}
	return res
}

// PixelToModel returns the model value at pixel position p.  If p is
// outside the pixel range of the mapper, NaN is returned.
func (mp *Mapper) PixelToModel(p float64) float64 {
	for i := range mp.segs {
		s := &mp.segs[i]
		lo, hi := min(s.p0, s.p1), max(s.p0, s.p1)
		if p < lo || p > hi {
			continue
		}
		if s.p0 == s.p1 {
			return s.m0
		}
		return s.m0 + (p-s.p0)/(s.p1-s.p0)*(s.m1-s.m0)
	}
	return math.NaN()
}

// SegmentWidths returns the number of pixels used by each segment.  The
// widths are negative if the pixel range runs backwards.
func (mp *Mapper) SegmentWidths() []float64 {
	res := make([]float64, len(mp.segs))
	for i, s := range mp.segs {
		res[i] = s.p1 - s.p0
	}
	return res
}

// TickPixels returns the pixel positions of all step boundaries, in
// domain order.
func (mp *Mapper) TickPixels() []float64 {
	var res []float64
	for _, s := range mp.segs {
		for k := range s.count {
			res = append(res, s.pixel(s.m0+float64(k)*s.step))
		}
	}
	return append(res, mp.segs[len(mp.segs)-1].p1)
}

// TickValues returns the model values of all step boundaries, matching
// TickPixels.
func (mp *Mapper) TickValues() []float64 {
	var res []float64
	for _, s := range mp.segs {
		for k := range s.count {
			res = append(res, s.m0+float64(k)*s.step)
		}
	}
	return append(res, mp.segs[len(mp.segs)-1].m1)
}

// TickLabels returns formatted labels for TickValues.  Every value is
// rounded to the precision of the step size of its segment, so that
// accumulated floating point errors do not show up in the labels.
func (mp *Mapper) TickLabels() []string {
	var res []string
	var last float64
	for _, s := range mp.segs {
		for k := range s.count {
			res = append(res, formatTick(s.m0+float64(k)*s.step, s.step))
		}
		last = s.step
	}
	return append(res, formatTick(mp.segs[len(mp.segs)-1].m1, last))
}

// stepDecimals returns the number of decimal places needed to represent
// multiples of step.
func stepDecimals(step float64) int {
	step = math.Abs(step)
	for d := 0; d < 12; d++ {
		x := step * math.Pow10(d)
		if math.Abs(x-math.Round(x)) < 1e-9*max(x, 1) {
			return d
		}
	}
	return 12
}

func formatTick(v, step float64) string {
	p := math.Pow10(stepDecimals(step))
	v = math.Round(v*p) / p
	if v == 0 {
		v = 0 // avoid "-0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// AutoDomain returns a single-segment domain with "nice" step boundaries
// which covers the interval [lo, hi] using at most maxSteps steps.
func AutoDomain(lo, hi float64, maxSteps int) (ValueDomain, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return ValueDomain{}, &DomainError{Reason: "data range is not finite"}
	}
	if maxSteps < 1 {
		maxSteps = 10
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		d := math.Max(math.Abs(lo), 1)
		lo, hi = lo-d/2, hi+d/2
	}

	o := scale.TickOptions{Max: maxSteps + 1}
	ls := scale.Linear{Min: lo, Max: hi}
	ls.Nice(o)
	major, _ := ls.Ticks(o)
	if len(major) < 2 {
		return ValueDomain{
			Start:    ls.Min,
			Segments: []Segment{{Step: ls.Max - ls.Min, Count: 1}},
		}, nil
	}

	step := major[1] - major[0]
	count := int(math.Round((ls.Max - ls.Min) / step))
	return ValueDomain{
		Start:    ls.Min,
		Segments: []Segment{{Step: step, Count: max(count, 1)}},
	}, nil
}

// DataDomain returns an automatic domain covering all non-NaN values in
// values.
func DataDomain(values []float64, maxSteps int) (ValueDomain, error) {
	var clean []float64
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return ValueDomain{}, &DomainError{Reason: "no data values"}
	}
	lo, hi := stats.Bounds(clean)
	return AutoDomain(lo, hi, maxSteps)
}
