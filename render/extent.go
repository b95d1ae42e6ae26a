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

package render

import (
	"math"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/geometry"
	"seehuhn.de/go/whiteboard/viewport"
)

// Extent returns the canvas area covered by the drawable elements, including
// their line width.  The boolean is false if nothing would be drawn.
func Extent(elems []*element.Element) (geometry.Rect, bool) {
	r := geometry.Empty
	for _, e := range elems {
		if e.IsDelete || len(e.Points) < 2 {
			continue
		}
		r = r.Union(e.CanvasBounds().Inset(e.LineWidth))
	}
	return r, !r.IsEmpty()
}

// FitView returns a view which shows box with the given margin around it.
// One logical unit becomes scale device units.  The view size is rounded
// up to whole device units.
func FitView(box geometry.Rect, margin, scale float64) viewport.View {
	if !(scale > 0) {
		scale = 1
	}
	w := math.Ceil((box.Dx()+2*margin)*scale) / scale
	h := math.Ceil((box.Dy()+2*margin)*scale) / scale
	v := viewport.New(w, h)
	v.DPR = scale
	v.ScrollX = margin - box.MinX
	v.ScrollY = margin - box.MinY
	return v
}
