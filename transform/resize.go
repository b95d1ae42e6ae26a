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

package transform

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/geometry"
	"seehuhn.de/go/whiteboard/selection"
)

// MinExtent is the smallest width or height a resize produces.
const MinExtent = 0.01

// axisResize is the result of resizing along one axis, in the unrotated
// frame of the original element.
type axisResize struct {
	lo, hi  float64 // new box edges
	scale   float64 // factor applied to the point coordinates, > 0
	flipped bool    // the pointer crossed the fixed edge
}

// resizeAxis computes the new extent of the box [lo, hi] when the edge on
// side dir (-1 for lo, +1 for hi) is dragged by proj units along the axis.
// The opposite edge stays fixed.
func resizeAxis(lo, hi float64, dir int, proj float64) (axisResize, bool) {
	old := hi - lo
	if !(old > 0) {
		return axisResize{}, false
	}

	// "move" is the projected motion, signed so that it shrinks the box.
	move := -proj * float64(dir)
	ext := old - move

	flipped := ext < 0
	size := max(math.Abs(ext), MinExtent)

	fixed := lo
	if dir < 0 {
		fixed = hi
	}
	moving := fixed + float64(dir)*size
	if flipped {
		moving = fixed - float64(dir)*size
	}

	return axisResize{
		lo:      min(fixed, moving),
		hi:      max(fixed, moving),
		scale:   size / old,
		flipped: flipped,
	}, true
}

// Resize returns the update for dragging resize handle h of orig from start
// to cur.  The edge or corner opposite h keeps its position on the canvas,
// for every rotation angle.
//
// When the pointer crosses the fixed edge, the element is mirrored on that
// axis instead of getting a negative extent, and the returned handle is the
// mirror image of h, so that it stays under the pointer.
//
// The boolean result is false if nothing can be resized, for example when
// the element has zero extent along every axis that h drags.
func Resize(orig *element.Element, h selection.Handle, start, cur vec.Vec2) (element.Resize, selection.Handle, bool) {
	hx, hy := h.Horizontal(), h.Vertical()
	local := orig.LocalBounds()
	if (hx == 0 && hy == 0) || local.IsEmpty() {
		return element.Resize{}, h, false
	}

	// Project the pointer motion onto the rotated axes of the element.
	sin, cos := math.Sincos(orig.Angle)
	d := cur.Sub(start)
	projX := d.X*cos + d.Y*sin
	projY := -d.X*sin + d.Y*cos

	box := orig.Bounds()
	newBox := box
	scaleX, scaleY := 1.0, 1.0
	fx, fy := orig.Flip()
	eff := h
	ok := false

	if hx != 0 {
		if r, good := resizeAxis(box.MinX, box.MaxX, hx, projX); good {
			newBox.MinX, newBox.MaxX = r.lo, r.hi
			scaleX = r.scale
			if r.flipped {
				fx = -fx
				eff = eff.MirrorX()
			}
			ok = true
		}
	}
	if hy != 0 {
		if r, good := resizeAxis(box.MinY, box.MaxY, hy, projY); good {
			newBox.MinY, newBox.MaxY = r.lo, r.hi
			scaleY = r.scale
			if r.flipped {
				fy = -fy
				eff = eff.MirrorY()
			}
			ok = true
		}
	}
	if !ok {
		return element.Resize{}, h, false
	}

	points := make([]vec.Vec2, len(orig.Points))
	for i, p := range orig.Points {
		points[i] = vec.Vec2{X: p.X * scaleX, Y: p.Y * scaleY}
	}

	// Position of the new anchor inside the new box, still in the unrotated
	// frame of the original element.
	anchor := vec.Vec2{
		X: newBox.MinX - local.MinX*scaleX,
		Y: newBox.MinY - local.MinY*scaleY,
	}

	// The new element rotates about its own centre.  Find where the centre
	// of the new box ends up on the canvas and keep the anchor's offset from
	// the centre.
	oldCenter := box.Center()
	newCenter := newBox.Center()
	canvasCenter := geometry.RotatePoint(newCenter, oldCenter, orig.Angle)
	anchor = canvasCenter.Add(anchor.Sub(newCenter))

	u := element.Resize{
		X:      anchor.X,
		Y:      anchor.Y,
		Points: points,
		FlipX:  fx,
		FlipY:  fy,
	}
	return u, eff, true
}
