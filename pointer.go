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

package whiteboard

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/eraser"
	"seehuhn.de/go/whiteboard/metrics"
	"seehuhn.de/go/whiteboard/selection"
	"seehuhn.de/go/whiteboard/transform"
)

// PointerDown starts a gesture with the active tool at the given client
// position.
func (b *Board) PointerDown(clientX, clientY float64) {
	metrics.Events.WithLabelValues("down").Inc()
	if b.ctx.Busy() {
		b.PointerCancel()
	}
	b.gate.Cancel()

	p := b.ctx.View.CanvasPoint(clientX, clientY)
	b.tool = b.ctx.ActiveTool()
	b.hover = nil
	switch b.tool {
	case ToolPen:
		b.selected = nil
		b.drawing = b.store.Create(element.KindPen, p, b.ctx.Style)
		b.ctx.IsDrawing = true
	case ToolSelect:
		b.startTransform(p)
	case ToolEraser:
		b.ctx.IsDrawing = true
		b.last = p
		b.erase(p)
	case ToolPan:
		b.ctx.IsMoveOrScale = true
		b.last = b.ctx.View.ViewportPoint(clientX, clientY)
		b.ctx.Cursor = "grabbing"
	}
}

func (b *Board) startTransform(p vec.Vec2) {
	zoom := b.ctx.View.Zoom
	h := selection.HandleAt(p, b.selected, zoom)
	if h == selection.HandleNone {
		b.selected = selection.PointOnElement(b.visible(), zoom, p, b.selected)
		if b.selected != nil {
			h = selection.HandleMove
		}
	}
	g, ok := transform.Begin(b.selected, h, p)
	if !ok {
		b.ctx.Cursor = idleCursor(ToolSelect)
		return
	}
	b.gesture = g
	b.ctx.IsElementOption = true
	b.ctx.Handle = h
	b.ctx.Cursor = h.Cursor(b.selected.Angle)
}

// PointerMove records a pointer move.  The move is applied at the next
// frame tick, or when the gesture ends; a later move replaces an earlier
// one which is still waiting.
func (b *Board) PointerMove(clientX, clientY float64) {
	metrics.Events.WithLabelValues("move").Inc()
	b.gate.Schedule(func() {
		b.move(clientX, clientY)
	})
}

func (b *Board) move(clientX, clientY float64) {
	p := b.ctx.View.CanvasPoint(clientX, clientY)
	switch {
	case b.ctx.IsDrawing && b.drawing != nil:
		b.store.Update(b.drawing, element.AppendPoint{P: p.Sub(b.drawing.Anchor())})
	case b.ctx.IsDrawing && b.tool == ToolEraser:
		b.erase(p)
	case b.ctx.IsMoveOrScale:
		q := b.ctx.View.ViewportPoint(clientX, clientY)
		b.ctx.View.Pan(q.X-b.last.X, q.Y-b.last.Y)
		b.last = q
	case b.ctx.IsElementOption && b.gesture != nil:
		h := b.gesture.Apply(b.store, b.selected, p)
		b.ctx.Handle = h
		b.ctx.Cursor = h.Cursor(b.selected.Angle)
	default:
		b.updateHover(p)
	}
}

// erase marks the elements crossed by the eraser moving to p.
func (b *Board) erase(p vec.Vec2) {
	elems := b.visible() // only unmarked elements
	eraser.CheckCrossElements(b.store, b.last, p, elems)
	for _, e := range elems {
		if e.IsDelete {
			b.erased = append(b.erased, e)
		}
	}
	b.last = p
}

// updateHover sets the cursor for a pointer which moves without a gesture.
func (b *Board) updateHover(p vec.Vec2) {
	tool := b.ctx.ActiveTool()
	b.hover = nil
	if tool != ToolSelect {
		b.ctx.Cursor = idleCursor(tool)
		return
	}

	zoom := b.ctx.View.Zoom
	if h := selection.HandleAt(p, b.selected, zoom); h != selection.HandleNone {
		b.ctx.Handle = h
		b.ctx.Cursor = h.Cursor(b.selected.Angle)
		return
	}
	b.ctx.Handle = selection.HandleNone
	b.hover = selection.PointOnElement(b.visible(), zoom, p, b.selected)
	if b.hover != nil {
		b.ctx.Cursor = "move"
	} else {
		b.ctx.Cursor = idleCursor(tool)
	}
}

// PointerUp applies a waiting move and completes the gesture.
func (b *Board) PointerUp(clientX, clientY float64) {
	metrics.Events.WithLabelValues("up").Inc()
	b.gate.Flush()

	switch {
	case b.ctx.IsDrawing && b.drawing != nil:
		b.store.Update(b.drawing, element.Finish{})
		b.drawing = nil
		b.commit()
	case b.ctx.IsDrawing && b.tool == ToolEraser:
		b.erased = b.erased[:0]
		if n := eraser.Compact(b.store); n > 0 {
			metrics.ElementsErased.Add(float64(n))
			if b.selected != nil && !b.store.Contains(b.selected) {
				b.selected = nil
			}
			b.commit()
		}
	case b.ctx.IsElementOption && b.gesture != nil:
		if b.gesture.Changed(b.selected) {
			b.commit()
		}
		b.gesture = nil
	}

	b.ctx.endGesture()
	b.tool = ""
	b.updateHover(b.ctx.View.CanvasPoint(clientX, clientY))
}

// PointerCancel aborts the gesture in progress.  A waiting move is
// dropped, and the elements are returned to their state before the
// gesture.
func (b *Board) PointerCancel() {
	metrics.Events.WithLabelValues("cancel").Inc()
	b.gate.Cancel()
	b.abort()
	b.ctx.Cursor = idleCursor(b.ctx.ActiveTool())
}

func (b *Board) abort() {
	if b.drawing != nil {
		b.store.Remove(b.drawing)
		b.drawing = nil
	}
	for _, e := range b.erased {
		b.store.Update(e, element.Unmark{})
	}
	b.erased = b.erased[:0]
	if b.gesture != nil {
		o := b.gesture.Original()
		b.store.Update(b.selected, element.Resize{
			X:      o.X,
			Y:      o.Y,
			Points: o.Clone().Points,
			FlipX:  o.FlipX,
			FlipY:  o.FlipY,
		})
		b.store.Update(b.selected, element.Rotate{Angle: o.Angle})
		b.gesture = nil
	}
	b.ctx.endGesture()
	b.tool = ""
}

// Wheel zooms about the pointer.  Positive deltas zoom out.
func (b *Board) Wheel(clientX, clientY, deltaY float64) {
	metrics.Events.WithLabelValues("wheel").Inc()
	v := &b.ctx.View
	v.ZoomAt(v.WheelZoom(deltaY), clientX, clientY)
}

// KeyDown handles a key press.  Key names follow the DOM KeyboardEvent.key
// convention.
func (b *Board) KeyDown(key string) {
	metrics.Events.WithLabelValues("keydown").Inc()
	switch key {
	case " ", "Space":
		if !b.ctx.SpacePan && !b.ctx.Busy() {
			b.ctx.SpacePan = true
			b.ctx.Cursor = idleCursor(ToolPan)
		}
	case "Delete", "Backspace":
		b.Delete()
	case "Escape":
		if b.ctx.Busy() {
			b.PointerCancel()
		} else {
			b.selected = nil
		}
	}
}

// KeyUp handles a key release.
func (b *Board) KeyUp(key string) {
	metrics.Events.WithLabelValues("keyup").Inc()
	switch key {
	case " ", "Space":
		b.ctx.SpacePan = false
		if !b.ctx.Busy() {
			b.ctx.Cursor = idleCursor(b.ctx.Tool)
		}
	}
}

func (b *Board) visible() []*element.Element {
	return selection.Visible(b.store.Elements(), b.ctx.View.VisibleRect())
}
