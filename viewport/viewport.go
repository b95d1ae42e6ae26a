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

// Package viewport maps between device ("client") coordinates and the
// logical canvas in which elements are stored.
//
// A client position is first shifted by the position of the drawing surface
// (OffsetX, OffsetY), then divided by the zoom factor, which gives the
// "viewport point".  Subtracting the pan offsets (ScrollX, ScrollY) gives the
// logical "canvas point":
//
//	canvas = (client - offset)/zoom - scroll
//
// The device pixel ratio only affects the backing store of the drawing
// surface, so it enters rendering but not pointer mapping.
package viewport

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/geometry"
)

// Zoom limits and the wheel step clamp.
const (
	MinZoom = 0.1
	MaxZoom = 10

	// MaxWheelStep is the largest wheel delta honoured by a single event.
	MaxWheelStep = 10
)

// View is the pan and zoom state of one drawing surface.
type View struct {
	ScrollX, ScrollY float64 // pan offsets in logical units
	Zoom             float64 // logical to CSS pixel scale, > 0
	OffsetX, OffsetY float64 // position of the surface in client coordinates
	DPR              float64 // device pixels per CSS pixel
	Width, Height    float64 // surface size in CSS pixels
}

// New returns a view of the given size with no pan and zoom 1.
func New(width, height float64) View {
	return View{
		Zoom:   1,
		DPR:    1,
		Width:  width,
		Height: height,
	}
}

// Reset restores the pan offsets and zoom to their initial values.
// Surface geometry is kept.
func (v *View) Reset() {
	v.ScrollX = 0
	v.ScrollY = 0
	v.Zoom = 1
}

// CanvasPoint maps a client position to logical canvas coordinates.
func (v View) CanvasPoint(clientX, clientY float64) vec.Vec2 {
	p := v.ViewportPoint(clientX, clientY)
	return vec.Vec2{X: p.X - v.ScrollX, Y: p.Y - v.ScrollY}
}

// ViewportPoint maps a client position to logical units without applying
// the pan offsets.  Differences between two viewport points are the raw
// deltas used for panning.
func (v View) ViewportPoint(clientX, clientY float64) vec.Vec2 {
	return vec.Vec2{
		X: (clientX - v.OffsetX) / v.Zoom,
		Y: (clientY - v.OffsetY) / v.Zoom,
	}
}

// ClientPoint is the inverse of CanvasPoint.
func (v View) ClientPoint(p vec.Vec2) (clientX, clientY float64) {
	clientX = (p.X+v.ScrollX)*v.Zoom + v.OffsetX
	clientY = (p.Y+v.ScrollY)*v.Zoom + v.OffsetY
	return clientX, clientY
}

// Pan shifts the view by a delta given in logical units, as obtained from
// two viewport points.
func (v *View) Pan(dx, dy float64) {
	v.ScrollX += dx
	v.ScrollY += dy
}

// ZoomAt changes the zoom factor while keeping the logical point under the
// client position (clientX, clientY) in place.  The new zoom is clamped to
// [MinZoom, MaxZoom]; invalid values leave the view unchanged.
func (v *View) ZoomAt(newZoom, clientX, clientY float64) {
	if math.IsNaN(newZoom) || newZoom <= 0 {
		return
	}
	newZoom = min(max(newZoom, MinZoom), MaxZoom)
	oldZoom := v.Zoom

	cx := clientX - v.OffsetX
	cy := clientY - v.OffsetY
	v.ScrollX = zoomScroll(v.ScrollX, cx, oldZoom, newZoom)
	v.ScrollY = zoomScroll(v.ScrollY, cy, oldZoom, newZoom)
	v.Zoom = newZoom
}

// zoomScroll recomputes one pan offset for a zoom change about the surface
// position c.
func zoomScroll(scroll, c, oldZoom, newZoom float64) float64 {
	base := scroll + (c - c/oldZoom)
	offset := -(c - c/newZoom)
	return base + offset
}

// WheelZoom returns the zoom factor requested by a wheel event with the
// given vertical delta.  The delta is clamped to ±MaxWheelStep, so that
// a single event never jumps by more than a tenth.
func (v View) WheelZoom(delta float64) float64 {
	delta = min(max(delta, -MaxWheelStep), MaxWheelStep)
	return min(max(v.Zoom-delta/100, MinZoom), MaxZoom)
}

// VisibleRect returns the part of the logical canvas shown on the surface.
func (v View) VisibleRect() geometry.Rect {
	w := v.Width / v.Zoom
	h := v.Height / v.Zoom
	return geometry.Rect{
		MinX: -v.ScrollX,
		MinY: -v.ScrollY,
		MaxX: w - v.ScrollX,
		MaxY: h - v.ScrollY,
	}
}

// DeviceScale is the factor from logical units to device pixels.
func (v View) DeviceScale() float64 {
	dpr := v.DPR
	if dpr <= 0 {
		dpr = 1
	}
	return dpr * v.Zoom
}
