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

// Package element holds the whiteboard's drawable elements and the ordered
// store which owns them.
//
// An element keeps its geometry in three parts: the anchor (X, Y) in canvas
// coordinates, the points relative to the anchor, and a rotation angle plus
// mirror multipliers which are applied about the centre of the bounding box
// of the points.
package element

import (
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/geometry"
)

// Kind identifies the type of an element.
type Kind string

// KindPen is a freehand pen stroke, the only element kind.
const KindPen Kind = "pen"

// Style holds the stroke defaults applied to new elements.
type Style struct {
	LineWidth   float64
	StrokeColor string
}

// DefaultStyle is the style of a fresh or cleared board.
var DefaultStyle = Style{LineWidth: 5, StrokeColor: "#000000"}

// Element is a single freehand stroke.
type Element struct {
	ID   string `json:"id"`
	Type Kind   `json:"type"`

	// X and Y give the anchor, the canvas position of Points[0].
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Width and Height are the extents of the point bounds.  The sign is
	// the sign of the corresponding flip multiplier.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Angle is the rotation about the centre, in radians in [0, 2π).
	Angle float64 `json:"angle"`

	// Points are the sampled stroke positions relative to the anchor,
	// in drawing order.
	Points []vec.Vec2 `json:"points"`

	LineWidth   float64 `json:"lineWidth"`
	StrokeColor string  `json:"strokeColor"`

	// FlipX and FlipY are ±1.  The zero value means 1.
	FlipX float64 `json:"flipX"`
	FlipY float64 `json:"flipY"`

	IsDelete bool `json:"isDelete"`
	Locked   bool `json:"locked"`
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	c := *e
	c.Points = slices.Clone(e.Points)
	return &c
}

// Flip returns the effective mirror multipliers of e.
func (e *Element) Flip() (fx, fy float64) {
	fx, fy = 1, 1
	if e.FlipX < 0 {
		fx = -1
	}
	if e.FlipY < 0 {
		fy = -1
	}
	return fx, fy
}

// Anchor returns the anchor position.
func (e *Element) Anchor() vec.Vec2 {
	return vec.Vec2{X: e.X, Y: e.Y}
}

// LocalBounds returns the bounding box of the points, relative to the
// anchor.  The result is [geometry.Empty] if there are no points.
func (e *Element) LocalBounds() geometry.Rect {
	return geometry.Bounds(e.Points)
}

// Bounds returns the unrotated bounding box in canvas coordinates.
func (e *Element) Bounds() geometry.Rect {
	return e.LocalBounds().Translate(e.Anchor())
}

// Center returns the centre of [Element.Bounds].  Rotation and mirroring
// act about this point.
func (e *Element) Center() vec.Vec2 {
	return e.Bounds().Center()
}

// ToCanvas maps a point given relative to the anchor to the position where
// it is drawn on the canvas.
func (e *Element) ToCanvas(p vec.Vec2) vec.Vec2 {
	c := e.Center()
	fx, fy := e.Flip()
	q := vec.Vec2{
		X: c.X + fx*(e.X+p.X-c.X),
		Y: c.Y + fy*(e.Y+p.Y-c.Y),
	}
	return geometry.RotatePoint(q, c, e.Angle)
}

// FromCanvas maps a canvas position into the unrotated, unmirrored frame
// of e, in canvas units.  Comparing the result against [Element.Bounds] or
// against Points offset by the anchor tests whether q lies on the element.
func (e *Element) FromCanvas(q vec.Vec2) vec.Vec2 {
	c := e.Center()
	p := geometry.RotatePoint(q, c, -e.Angle)
	fx, fy := e.Flip()
	return vec.Vec2{
		X: c.X + fx*(p.X-c.X),
		Y: c.Y + fy*(p.Y-c.Y),
	}
}

// CanvasPoints returns the points of e as drawn on the canvas.
func (e *Element) CanvasPoints() []vec.Vec2 {
	res := make([]vec.Vec2, len(e.Points))
	for i, p := range e.Points {
		res[i] = e.ToCanvas(p)
	}
	return res
}

// CanvasBounds returns the bounding box of [Element.CanvasPoints].
func (e *Element) CanvasBounds() geometry.Rect {
	if e.Angle == 0 {
		return e.Bounds()
	}
	return geometry.Bounds(e.CanvasPoints())
}

// Refresh recomputes Width and Height from the points.
func (e *Element) Refresh() {
	r := e.LocalBounds()
	if r.IsEmpty() {
		e.Width, e.Height = 0, 0
		return
	}
	fx, fy := e.Flip()
	e.Width = fx * r.Dx()
	e.Height = fy * r.Dy()
}
