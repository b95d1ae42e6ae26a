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

package element

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/geometry"
)

// Update is a change to a single element.  The set of updates is closed;
// the concrete types are the ones declared in this package.
type Update interface {
	apply(e *Element)
}

// Move places the anchor at (X, Y).
type Move struct {
	X, Y float64
}

func (u Move) apply(e *Element) {
	e.X = u.X
	e.Y = u.Y
}

// Resize replaces the geometry of an element.  The element takes ownership
// of Points, so the slice must not be shared with any other element.
type Resize struct {
	X, Y         float64
	Points       []vec.Vec2
	FlipX, FlipY float64
}

func (u Resize) apply(e *Element) {
	e.X = u.X
	e.Y = u.Y
	if len(u.Points) > 0 {
		e.Points = u.Points
	}
	e.FlipX = u.FlipX
	e.FlipY = u.FlipY
	e.Refresh()
}

// Rotate sets the rotation angle.  The angle is normalised to [0, 2π).
type Rotate struct {
	Angle float64
}

func (u Rotate) apply(e *Element) {
	e.Angle = geometry.NormalizeAngle(u.Angle)
}

// SetStyle changes line width and colour.  Zero values are left unchanged.
type SetStyle struct {
	LineWidth   float64
	StrokeColor string
}

func (u SetStyle) apply(e *Element) {
	if u.LineWidth > 0 {
		e.LineWidth = u.LineWidth
	}
	if u.StrokeColor != "" {
		e.StrokeColor = u.StrokeColor
	}
}

// AppendPoint adds a point, given relative to the anchor, to a stroke
// which is being drawn.
type AppendPoint struct {
	P vec.Vec2
}

func (u AppendPoint) apply(e *Element) {
	e.Points = append(e.Points, u.P)
}

// Finish completes a stroke after drawing.  A single point is widened to
// two nearly coincident points so that the stroke renders as a dot.
type Finish struct{}

// dotOffset separates the two points of a widened single-point stroke.
const dotOffset = 0.01

func (Finish) apply(e *Element) {
	if len(e.Points) == 0 {
		e.Points = []vec.Vec2{{}}
	}
	if len(e.Points) == 1 {
		p := e.Points[0]
		e.Points = append(e.Points, vec.Vec2{X: p.X + dotOffset, Y: p.Y + dotOffset})
	}
	e.Refresh()
}

// MarkDeleted sets the soft-delete flag.
type MarkDeleted struct{}

func (MarkDeleted) apply(e *Element) {
	e.IsDelete = true
}

// Unmark clears the soft-delete flag, for example when an eraser gesture
// is aborted.
type Unmark struct{}

func (Unmark) apply(e *Element) {
	e.IsDelete = false
}
