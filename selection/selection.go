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

// Package selection finds the element under a pointer and the handle of
// the selection box under a pointer.
package selection

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/geometry"
)

// Screen-space sizes, in CSS pixels.  They are divided by the zoom factor
// to obtain logical units, so that they look the same at every zoom level.
const (
	// HitTolerance is the width of the band around a stroke which still
	// counts as a hit.
	HitTolerance = 5

	// HandleSize is the side length of a handle square.
	HandleSize = 8

	// HandlePadding is the gap between the element bounds and the
	// selection box.
	HandlePadding = 4

	// RotateOffset is the distance of the rotate handle's centre above the
	// selection box.
	RotateOffset = 16
)

// Visible returns the elements whose unrotated bounds overlap view.
// Deleted elements are skipped.  The test ignores rotation.
func Visible(elems []*element.Element, view geometry.Rect) []*element.Element {
	var res []*element.Element
	for _, e := range elems {
		if e.IsDelete {
			continue
		}
		if e.Bounds().Overlaps(view) {
			res = append(res, e)
		}
	}
	return res
}

// PointOnElement returns the first element in elems which has a stroke
// passing within the hit tolerance of p, or nil.  If selected is among the
// elements and p lies within its bounds, selected is returned right away.
//
// Locked and deleted elements are never hit.
func PointOnElement(elems []*element.Element, zoom float64, p vec.Vec2, selected *element.Element) *element.Element {
	if zoom <= 0 {
		return nil
	}
	tol := HitTolerance / zoom
	for _, e := range elems {
		if e.Locked || e.IsDelete || len(e.Points) == 0 {
			continue
		}

		q := e.FromCanvas(p)
		if !e.Bounds().Inset(tol).Contains(q) {
			continue
		}
		if e == selected {
			return e
		}
		if nearStroke(e, q, tol) {
			return e
		}
	}
	return nil
}

// nearStroke reports whether q, given in the unrotated frame of e, is
// close to one of the stroke segments.
func nearStroke(e *element.Element, q vec.Vec2, tol float64) bool {
	anchor := e.Anchor()
	if len(e.Points) == 1 {
		return geometry.Distance(q, anchor.Add(e.Points[0])) < tol
	}
	for i := 1; i < len(e.Points); i++ {
		a := anchor.Add(e.Points[i-1])
		b := anchor.Add(e.Points[i])
		if geometry.Distance(q, a) < tol ||
			geometry.Distance(q, b) < tol ||
			geometry.SegmentDistanceApprox(q, a, b) < tol {
			return true
		}
	}
	return false
}

// Box returns the selection box of e: its unrotated bounds grown by the
// handle padding.
func Box(e *element.Element, zoom float64) geometry.Rect {
	return e.Bounds().Inset(HandlePadding / zoom)
}

// HandleRects returns the nine handle squares of e, in the unrotated frame
// of the element.  The squares are centred on the corners and edge midpoints
// of the selection box; the rotate handle sits above the top edge.
func HandleRects(e *element.Element, zoom float64) map[Handle]geometry.Rect {
	box := Box(e, zoom)
	c := box.Center()
	s := HandleSize / zoom

	square := func(x, y float64) geometry.Rect {
		return geometry.Rect{MinX: x - s/2, MinY: y - s/2, MaxX: x + s/2, MaxY: y + s/2}
	}
	return map[Handle]geometry.Rect{
		HandleRotate:      square(c.X, box.MinY-RotateOffset/zoom),
		HandleLeftTop:     square(box.MinX, box.MinY),
		HandleTop:         square(c.X, box.MinY),
		HandleRightTop:    square(box.MaxX, box.MinY),
		HandleRight:       square(box.MaxX, c.Y),
		HandleRightBottom: square(box.MaxX, box.MaxY),
		HandleBottom:      square(c.X, box.MaxY),
		HandleLeftBottom:  square(box.MinX, box.MaxY),
		HandleLeft:        square(box.MinX, c.Y),
	}
}

// handleOrder is the lookup order of HandleAt.  Corners win over edges,
// which matters for very small elements where the squares overlap.
var handleOrder = []Handle{
	HandleRotate,
	HandleLeftTop, HandleRightTop, HandleRightBottom, HandleLeftBottom,
	HandleTop, HandleRight, HandleBottom, HandleLeft,
}

// HandleAt returns the handle of the selection box of e which contains p.
// If p is inside the selection box but on no handle, HandleMove is
// returned.  Locked elements have no handles.
func HandleAt(p vec.Vec2, e *element.Element, zoom float64) Handle {
	if e == nil || e.Locked || zoom <= 0 || len(e.Points) == 0 {
		return HandleNone
	}

	// Handles are drawn in the rotated frame, but not mirrored.
	q := geometry.RotatePoint(p, e.Center(), -e.Angle)

	rects := HandleRects(e, zoom)
	for _, h := range handleOrder {
		if rects[h].Contains(q) {
			return h
		}
	}
	if Box(e, zoom).Contains(q) {
		return HandleMove
	}
	return HandleNone
}
