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
	"fmt"
)

var (
	// ErrNotConfigured is returned when drawing is attempted before the
	// first successful call to Configure.
	ErrNotConfigured = errors.New("diagram not configured")

	// ErrLayoutOverflow is matched by all layout errors.
	ErrLayoutOverflow = errors.New("decorations exceed the drawing area")
)

// LayoutError reports that the configured decorations do not leave room
// for the plot area.
type LayoutError struct {
	Dimension string  // "width" or "height"
	Available float64 // size of the drawing area in this dimension
	Reserved  float64 // space taken by margins and decorations
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout: %g of %g pixels %s reserved, no room for the plot area",
		e.Reserved, e.Available, e.Dimension)
}

func (e *LayoutError) Unwrap() error {
	return ErrLayoutOverflow
}

// DomainError reports an invalid or unknown value domain.
type DomainError struct {
	ID     string
	Reason string
}

func (e *DomainError) Error() string {
	if e.ID == "" {
		return "value domain: " + e.Reason
	}
	return fmt.Sprintf("value domain %q: %s", e.ID, e.Reason)
}
