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

// Package render draws the elements of a whiteboard and the decoration of
// the selected element onto an immediate-mode painter.
//
// The renderer does not know how pixels are produced.  Everything it draws
// goes through the [Painter] interface, which has the shape of a 2D canvas
// API: a transformation stack, fill and stroke of paths, and a little bit
// of state.
package render

import (
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/geometry"
	"seehuhn.de/go/whiteboard/selection"
	"seehuhn.de/go/whiteboard/viewport"
)

// Painter is an immediate-mode drawing surface.
//
// Transformations modify user space like the corresponding methods of an
// HTML canvas.  Line widths and dash lengths are given in user space.
type Painter interface {
	Save()
	Restore()
	Scale(sx, sy float64)
	Translate(dx, dy float64)
	Rotate(angle float64)

	// ClearRect resets the given rectangle, in user space, to the
	// background.
	ClearRect(x, y, w, h float64)

	FillPath(p *path.Data)
	StrokePath(p *path.Data)

	SetLineDash(dash []float64)
	SetLineWidth(w float64)
	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
}

// Outliner turns the sampled points of a stroke into a closed path which
// is filled to draw the stroke.
type Outliner interface {
	Outline(points []vec.Vec2, width float64) *path.Data
}

// SelectionColor is the default colour of the selection decoration.
var SelectionColor = color.NRGBA{R: 0x22, G: 0x8b, B: 0xe6, A: 0xff}

// dashLength is the length of the dashes of the selection box, in CSS
// pixels.
const dashLength = 4

// Renderer draws frames.  A Renderer caches stroke outlines between frames
// and must not be used concurrently.
type Renderer struct {
	Outliner Outliner

	// Selection is the colour of the selection box and handles.
	Selection color.Color

	cache map[string]*outline
	frame uint64
}

type outline struct {
	first *vec.Vec2 // identifies the point slice
	n     int
	width float64
	path  *path.Data
	frame uint64
}

// NewRenderer returns a renderer which uses o to compute stroke outlines.
func NewRenderer(o Outliner) *Renderer {
	return &Renderer{
		Outliner:  o,
		Selection: SelectionColor,
		cache:     make(map[string]*outline),
	}
}

// Frame clears the surface and draws all visible, non-deleted elements.
// If selected is not nil, its selection box and handles are drawn on top.
// The return value is the number of elements drawn.
func (r *Renderer) Frame(p Painter, v viewport.View, elems []*element.Element, selected *element.Element) int {
	if p == nil {
		return 0
	}
	r.frame++

	p.ClearRect(0, 0, v.Width*v.DPR, v.Height*v.DPR)

	n := 0
	for _, e := range selection.Visible(elems, v.VisibleRect()) {
		if r.drawElement(p, v, e) {
			n++
		}
	}
	if selected != nil && !selected.IsDelete && len(selected.Points) > 0 {
		r.drawSelection(p, v, selected)
	}

	for id, o := range r.cache {
		if o.frame != r.frame {
			delete(r.cache, id)
		}
	}
	return n
}

func (r *Renderer) drawElement(p Painter, v viewport.View, e *element.Element) bool {
	if len(e.Points) < 2 {
		return false
	}
	col, err := ParseColor(e.StrokeColor)
	if err != nil {
		col = color.NRGBA{A: 0xff}
	}

	c := e.Center()
	fx, fy := e.Flip()
	s := v.DeviceScale()

	p.Save()
	p.Scale(s, s)
	p.Translate(c.X+v.ScrollX, c.Y+v.ScrollY)
	p.Rotate(e.Angle)
	p.Scale(fx, fy)
	p.Translate(e.X-c.X, e.Y-c.Y)

	o := r.outline(e)
	p.SetFillColor(col)
	p.FillPath(o)
	p.SetStrokeColor(col)
	p.SetLineDash(nil)
	p.SetLineWidth(1 / s) // one device pixel
	p.StrokePath(o)

	p.Restore()
	return true
}

// outline returns the outline of e, from the cache if the points and the
// line width are unchanged.
func (r *Renderer) outline(e *element.Element) *path.Data {
	if r.cache == nil {
		r.cache = make(map[string]*outline)
	}
	o := r.cache[e.ID]
	if o != nil && o.first == &e.Points[0] && o.n == len(e.Points) && o.width == e.LineWidth {
		o.frame = r.frame
		return o.path
	}
	o = &outline{
		first: &e.Points[0],
		n:     len(e.Points),
		width: e.LineWidth,
		path:  r.Outliner.Outline(e.Points, e.LineWidth),
		frame: r.frame,
	}
	r.cache[e.ID] = o
	return o.path
}

// drawSelection draws the dashed selection box and the handles of e.  The
// decoration follows the rotation of e but not its mirroring.
func (r *Renderer) drawSelection(p Painter, v viewport.View, e *element.Element) {
	zoom := v.Zoom
	c := e.Center()
	s := v.DeviceScale()

	p.Save()
	p.Scale(s, s)
	p.Translate(c.X+v.ScrollX, c.Y+v.ScrollY)
	p.Rotate(e.Angle)
	p.Translate(-c.X, -c.Y)

	p.SetLineWidth(1 / zoom)
	p.SetStrokeColor(r.Selection)

	box := selection.Box(e, zoom)
	p.SetLineDash([]float64{dashLength / zoom, dashLength / zoom})
	p.StrokePath(RectPath(box))
	p.SetLineDash(nil)

	rects := selection.HandleRects(e, zoom)
	rot := rects[selection.HandleRotate]
	stem := (&path.Data{}).
		MoveTo(vec.Vec2{X: rot.Center().X, Y: rot.MaxY}).
		LineTo(vec.Vec2{X: rot.Center().X, Y: box.MinY})
	p.StrokePath(stem)

	p.SetFillColor(color.White)
	for _, h := range append([]selection.Handle{selection.HandleRotate}, selection.ResizeHandles...) {
		sq := RectPath(rects[h])
		p.FillPath(sq)
		p.StrokePath(sq)
	}

	p.Restore()
}

// RectPath returns a closed path around r.
func RectPath(r geometry.Rect) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: r.MinX, Y: r.MinY}).
		LineTo(vec.Vec2{X: r.MaxX, Y: r.MinY}).
		LineTo(vec.Vec2{X: r.MaxX, Y: r.MaxY}).
		LineTo(vec.Vec2{X: r.MinX, Y: r.MaxY}).
		Close()
}
