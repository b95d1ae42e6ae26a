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

// Package transform moves, rotates and resizes a selected element.
//
// Every pointer move recomputes the result from a copy of the element taken
// when the gesture started, so that rounding errors and intermediate scale
// factors never accumulate.
package transform

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/geometry"
	"seehuhn.de/go/whiteboard/selection"
)

// Gesture is a move, rotate or resize operation in progress.
type Gesture struct {
	// Handle is the handle grabbed at the start of the gesture.
	Handle selection.Handle

	// Start is the canvas position where the gesture started.
	Start vec.Vec2

	orig *element.Element
}

// Begin starts a gesture on e.  It fails for nil or locked elements, for
// elements without points, and for HandleNone.
func Begin(e *element.Element, h selection.Handle, start vec.Vec2) (*Gesture, bool) {
	if e == nil || e.Locked || len(e.Points) == 0 || h == selection.HandleNone {
		return nil, false
	}
	g := &Gesture{
		Handle: h,
		Start:  start,
		orig:   e.Clone(),
	}
	return g, true
}

// Original returns the copy of the element taken at the start of the
// gesture.  The caller must not modify it.
func (g *Gesture) Original() *element.Element {
	return g.orig
}

// Apply updates target for the pointer at canvas position p.  It returns
// the handle which is under the pointer after the update: this differs from
// g.Handle once the pointer has dragged a resize handle across the opposite
// edge.
func (g *Gesture) Apply(s *element.Store, target *element.Element, p vec.Vec2) selection.Handle {
	if g == nil || target == nil {
		return selection.HandleNone
	}
	switch {
	case g.Handle == selection.HandleMove:
		s.Update(target, Move(g.orig, g.Start, p))
	case g.Handle == selection.HandleRotate:
		s.Update(target, Rotate(g.orig, g.Start, p))
	case g.Handle.IsResize():
		u, h, ok := Resize(g.orig, g.Handle, g.Start, p)
		if !ok {
			return g.Handle
		}
		s.Update(target, u)
		return h
	}
	return g.Handle
}

// Changed reports whether target differs from the state at the start of the
// gesture.
func (g *Gesture) Changed(target *element.Element) bool {
	if g == nil || target == nil {
		return false
	}
	o := g.orig
	if o.X != target.X || o.Y != target.Y || o.Angle != target.Angle ||
		o.FlipX != target.FlipX || o.FlipY != target.FlipY ||
		len(o.Points) != len(target.Points) {
		return true
	}
	for i := range o.Points {
		if o.Points[i] != target.Points[i] {
			return true
		}
	}
	return false
}

// Move returns the update which shifts orig by the pointer motion from
// start to cur.
func Move(orig *element.Element, start, cur vec.Vec2) element.Move {
	return element.Move{
		X: orig.X + cur.X - start.X,
		Y: orig.Y + cur.Y - start.Y,
	}
}

// Rotate returns the update which turns orig about its centre by the angle
// swept by the pointer from start to cur.
func Rotate(orig *element.Element, start, cur vec.Vec2) element.Rotate {
	c := orig.Center()
	change := math.Atan2(cur.Y-c.Y, cur.X-c.X) - math.Atan2(start.Y-c.Y, start.X-c.X)
	return element.Rotate{Angle: geometry.NormalizeAngle(orig.Angle + change)}
}
