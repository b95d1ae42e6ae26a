// seehuhn.de/go/whiteboard - an interactive freehand whiteboard engine
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

package geometry

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Rect is an axis-aligned rectangle in canvas coordinates.
// MinY is the top edge, since y grows downwards.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Empty is the degenerate rectangle returned for an empty point list.
// It contains nothing, and extending it by a point yields that point.
var Empty = Rect{
	MinX: math.Inf(1),
	MinY: math.Inf(1),
	MaxX: math.Inf(-1),
	MaxY: math.Inf(-1),
}

// Bounds returns the axis-aligned bounding box of the points.
// For an empty slice the result is [Empty].
func Bounds(points []vec.Vec2) Rect {
	r := Empty
	for _, p := range points {
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	return r
}

// IsEmpty reports whether the rectangle has inverted bounds.
// Rectangles of zero width or height are not empty.
func (r Rect) IsEmpty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Dx returns the width of the rectangle.
func (r Rect) Dx() float64 {
	return r.MaxX - r.MinX
}

// Dy returns the height of the rectangle.
func (r Rect) Dy() float64 {
	return r.MaxY - r.MinY
}

// Center returns the centre point of the rectangle.
func (r Rect) Center() vec.Vec2 {
	return vec.Vec2{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Translate returns the rectangle shifted by d.
func (r Rect) Translate(d vec.Vec2) Rect {
	return Rect{
		MinX: r.MinX + d.X,
		MinY: r.MinY + d.Y,
		MaxX: r.MaxX + d.X,
		MaxY: r.MaxY + d.Y,
	}
}

// Inset returns the rectangle grown by pad on every side.
// A negative pad shrinks it.
func (r Rect) Inset(pad float64) Rect {
	return Rect{
		MinX: r.MinX - pad,
		MinY: r.MinY - pad,
		MaxX: r.MaxX + pad,
		MaxY: r.MaxY + pad,
	}
}

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p vec.Vec2) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Overlaps reports whether r and s share at least one point.
func (r Rect) Overlaps(s Rect) bool {
	if r.IsEmpty() || s.IsEmpty() {
		return false
	}
	return r.MinX <= s.MaxX && s.MinX <= r.MaxX &&
		r.MinY <= s.MaxY && s.MinY <= r.MaxY
}

// SegmentBounds returns the bounding box of the segment from a to b.
func SegmentBounds(a, b vec.Vec2) Rect {
	return Rect{
		MinX: min(a.X, b.X),
		MinY: min(a.Y, b.Y),
		MaxX: max(a.X, b.X),
		MaxY: max(a.Y, b.Y),
	}
}

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		MinX: min(r.MinX, s.MinX),
		MinY: min(r.MinY, s.MinY),
		MaxX: max(r.MaxX, s.MaxX),
		MaxY: max(r.MaxY, s.MaxY),
	}
}
