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

package selection

import (
	"math"
)

// Handle identifies a hotspot on the selection box of an element.
type Handle int

// The handles of a selected element.  The eight resize handles are listed
// clockwise, starting at the top edge.
const (
	HandleNone Handle = iota
	HandleMove
	HandleRotate
	HandleTop
	HandleRightTop
	HandleRight
	HandleRightBottom
	HandleBottom
	HandleLeftBottom
	HandleLeft
	HandleLeftTop
)

// ResizeHandles lists the eight resize handles in clockwise order.
var ResizeHandles = []Handle{
	HandleTop, HandleRightTop, HandleRight, HandleRightBottom,
	HandleBottom, HandleLeftBottom, HandleLeft, HandleLeftTop,
}

func (h Handle) String() string {
	switch h {
	case HandleNone:
		return "NONE"
	case HandleMove:
		return "MOVE"
	case HandleRotate:
		return "ROTATE"
	case HandleTop:
		return "TOP"
	case HandleRightTop:
		return "RIGHT_TOP"
	case HandleRight:
		return "RIGHT"
	case HandleRightBottom:
		return "RIGHT_BOTTOM"
	case HandleBottom:
		return "BOTTOM"
	case HandleLeftBottom:
		return "LEFT_BOTTOM"
	case HandleLeft:
		return "LEFT"
	case HandleLeftTop:
		return "LEFT_TOP"
	default:
		return "Handle(?)"
	}
}

// IsResize reports whether h is one of the eight resize handles.
func (h Handle) IsResize() bool {
	return h >= HandleTop && h <= HandleLeftTop
}

// Horizontal returns -1 if h drags the left edge, +1 if it drags the right
// edge, and 0 otherwise.
func (h Handle) Horizontal() int {
	switch h {
	case HandleLeft, HandleLeftTop, HandleLeftBottom:
		return -1
	case HandleRight, HandleRightTop, HandleRightBottom:
		return 1
	}
	return 0
}

// Vertical returns -1 if h drags the top edge, +1 if it drags the bottom
// edge, and 0 otherwise.
func (h Handle) Vertical() int {
	switch h {
	case HandleTop, HandleLeftTop, HandleRightTop:
		return -1
	case HandleBottom, HandleLeftBottom, HandleRightBottom:
		return 1
	}
	return 0
}

// fromSides is the inverse of Horizontal and Vertical.
func fromSides(hx, hy int) Handle {
	switch {
	case hx < 0 && hy < 0:
		return HandleLeftTop
	case hx < 0 && hy > 0:
		return HandleLeftBottom
	case hx < 0:
		return HandleLeft
	case hx > 0 && hy < 0:
		return HandleRightTop
	case hx > 0 && hy > 0:
		return HandleRightBottom
	case hx > 0:
		return HandleRight
	case hy < 0:
		return HandleTop
	case hy > 0:
		return HandleBottom
	}
	return HandleNone
}

// MirrorX swaps left and right.  Other handles are returned unchanged.
func (h Handle) MirrorX() Handle {
	if !h.IsResize() || h.Horizontal() == 0 {
		return h
	}
	return fromSides(-h.Horizontal(), h.Vertical())
}

// MirrorY swaps top and bottom.  Other handles are returned unchanged.
func (h Handle) MirrorY() Handle {
	if !h.IsResize() || h.Vertical() == 0 {
		return h
	}
	return fromSides(h.Horizontal(), -h.Vertical())
}

// resizeCursors repeats every four octants.
var resizeCursors = [4]string{"ns-resize", "nesw-resize", "ew-resize", "nwse-resize"}

// Cursor returns the CSS cursor name for hovering h on an element which is
// rotated by angle.  Resize cursors follow the rotation in steps of 45°.
func (h Handle) Cursor(angle float64) string {
	switch {
	case h == HandleMove:
		return "move"
	case h == HandleRotate:
		return "grab"
	case !h.IsResize():
		return "default"
	}
	octant := int(h - HandleTop)
	steps := int(math.Round(angle / (math.Pi / 4)))
	idx := ((octant+steps)%8 + 8) % 8
	return resizeCursors[idx%4]
}
