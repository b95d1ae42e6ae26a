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

// Package eraser removes the strokes crossed by an eraser gesture.
//
// Erasing happens in two phases.  While the pointer moves, CheckCrossElements
// marks every element which the latest eraser segment crosses.  When the
// gesture ends, Compact removes the marked elements from the store.
package eraser

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/geometry"
)

// DotRadius is the distance within which the eraser removes strokes that
// are too small to be crossed.
const DotRadius = 5

// CheckCrossElements marks the elements crossed by the eraser segment from
// start to end and returns the number of newly marked elements.
// Marking is idempotent: elements which are already marked are skipped.
func CheckCrossElements(s *element.Store, start, end vec.Vec2, elems []*element.Element) int {
	eraserBox := geometry.SegmentBounds(start, end)

	n := 0
	for _, e := range elems {
		if e.IsDelete || e.Locked || len(e.Points) == 0 {
			continue
		}
		pts := e.CanvasPoints()
		box := geometry.Bounds(pts)
		if !box.Inset(DotRadius).Overlaps(eraserBox) {
			continue
		}
		if crosses(e, pts, box, start, end) {
			s.Update(e, element.MarkDeleted{})
			n++
		}
	}
	return n
}

func crosses(e *element.Element, pts []vec.Vec2, box geometry.Rect, start, end vec.Vec2) bool {
	if max(box.Dx(), box.Dy()) < DotRadius || len(pts) <= 2 {
		return geometry.Distance(end, e.Anchor()) < DotRadius
	}
	for i := 1; i < len(pts); i++ {
		if geometry.SegmentsIntersect(start, end, pts[i-1], pts[i]) {
			return true
		}
	}
	return false
}

// Compact removes all marked elements from the store and returns their
// number.
func Compact(s *element.Store) int {
	return s.CompactDeleted()
}
