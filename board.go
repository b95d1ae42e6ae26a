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
	"context"

	"github.com/hashicorp/go-hclog"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/freehand"
	"seehuhn.de/go/whiteboard/history"
	"seehuhn.de/go/whiteboard/metrics"
	"seehuhn.de/go/whiteboard/render"
	"seehuhn.de/go/whiteboard/transform"
	"seehuhn.de/go/whiteboard/viewport"
)

// Options configure a Board.
type Options struct {
	// Width and Height give the size of the drawing surface in CSS pixels.
	Width, Height float64

	// DPR is the device pixel ratio.  Zero means 1.
	DPR float64

	// Style holds the pen defaults.  The zero value means
	// element.DefaultStyle.
	Style element.Style

	// History records snapshots after every completed gesture.  If nil,
	// the board keeps no history.
	History *history.Manager

	// Outliner turns strokes into fillable outlines.  The default is
	// freehand.Outliner.
	Outliner render.Outliner

	Logger hclog.Logger
}

// Board is a whiteboard with its elements, view state and history.
type Board struct {
	ctx   Context
	store *element.Store

	selected *element.Element
	hover    *element.Element

	tool    Tool // tool of the gesture in progress
	drawing *element.Element
	gesture *transform.Gesture
	erased  []*element.Element
	last    vec.Vec2 // previous eraser or pan position

	gate     FrameGate
	history  *history.Manager
	renderer *render.Renderer
	log      hclog.Logger
}

// New returns an empty board.
func New(opt *Options) *Board {
	if opt == nil {
		opt = &Options{}
	}
	b := &Board{
		ctx:     NewContext(opt.Width, opt.Height),
		store:   element.NewStore(),
		history: opt.History,
		log:     opt.Logger,
	}
	if opt.DPR > 0 {
		b.ctx.View.DPR = opt.DPR
	}
	if opt.Style.LineWidth > 0 {
		b.ctx.Style.LineWidth = opt.Style.LineWidth
	}
	if opt.Style.StrokeColor != "" {
		b.ctx.Style.StrokeColor = opt.Style.StrokeColor
	}
	outliner := opt.Outliner
	if outliner == nil {
		outliner = freehand.Outliner{}
	}
	b.renderer = render.NewRenderer(outliner)
	if b.log == nil {
		b.log = hclog.NewNullLogger()
	}
	b.log = b.log.Named("board")
	return b
}

// Context returns a copy of the view and interaction state.
func (b *Board) Context() Context {
	return b.ctx
}

// View returns the pan and zoom state.
func (b *Board) View() viewport.View {
	return b.ctx.View
}

// SetSurface updates the position and size of the drawing surface.
func (b *Board) SetSurface(offsetX, offsetY, width, height, dpr float64) {
	v := &b.ctx.View
	v.OffsetX, v.OffsetY = offsetX, offsetY
	v.Width, v.Height = width, height
	if dpr > 0 {
		v.DPR = dpr
	}
}

// Elements returns the elements in drawing order.  The slice must not be
// modified and is only valid until the next call of a Board method.
func (b *Board) Elements() []*element.Element {
	return b.store.Elements()
}

// Element returns the element with the given id.
func (b *Board) Element(id string) (*element.Element, bool) {
	return b.store.FindByID(id)
}

// Selected returns the selected element, or nil.
func (b *Board) Selected() *element.Element {
	return b.selected
}

// Hover returns the element under the pointer, if the select tool is active
// and no gesture is in progress.
func (b *Board) Hover() *element.Element {
	return b.hover
}

// Cursor returns the CSS cursor for the current pointer position.
func (b *Board) Cursor() string {
	return b.ctx.Cursor
}

// History returns the history manager, or nil.
func (b *Board) History() *history.Manager {
	return b.history
}

// SetTool changes the tool.  A gesture in progress is cancelled, and the
// selection is dropped unless the new tool is the select tool.
func (b *Board) SetTool(t Tool) {
	if b.ctx.Busy() {
		b.PointerCancel()
	}
	b.log.Debug("set tool", "tool", t)
	b.ctx.Tool = t
	if t != ToolSelect {
		b.selected = nil
	}
	b.hover = nil
	b.ctx.Cursor = idleCursor(b.ctx.ActiveTool())
}

// SetLineWidth changes the line width of new strokes and of the selected
// element.  Values which are not positive are ignored.
func (b *Board) SetLineWidth(w float64) bool {
	if !(w > 0) {
		return false
	}
	b.ctx.Style.LineWidth = w
	b.styleSelection(element.SetStyle{LineWidth: w})
	return true
}

// SetStrokeColor changes the colour of new strokes and of the selected
// element.  The colour is stored in "#rrggbb" form.
func (b *Board) SetStrokeColor(c string) error {
	col, err := render.ParseColor(c)
	if err != nil {
		return err
	}
	c = render.FormatColor(col)
	b.ctx.Style.StrokeColor = c
	b.styleSelection(element.SetStyle{StrokeColor: c})
	return nil
}

func (b *Board) styleSelection(u element.SetStyle) {
	if b.selected == nil || b.selected.Locked {
		return
	}
	b.store.Update(b.selected, u)
	b.commit()
}

// Delete removes the selected element.
func (b *Board) Delete() bool {
	e := b.selected
	if e == nil || e.Locked || b.ctx.Busy() {
		return false
	}
	b.store.Remove(e)
	b.selected = nil
	b.hover = nil
	b.commit()
	return true
}

// Clear removes all elements and restores the pen and view defaults.
func (b *Board) Clear() {
	b.gate.Cancel()
	b.abort()
	b.store.Clear()
	b.selected = nil
	b.hover = nil
	b.ctx.Reset()
	b.ctx.Cursor = idleCursor(b.ctx.ActiveTool())
	b.log.Debug("board cleared")
	b.commit()
}

// Undo restores the previous snapshot.  It reports whether anything
// changed.
func (b *Board) Undo(ctx context.Context) bool {
	if b.history == nil {
		return false
	}
	if b.ctx.Busy() {
		b.PointerCancel()
	}
	elems, ok := b.history.Undo(ctx)
	if !ok {
		b.log.Debug("nothing to undo", "cursor", b.history.Cursor())
		return false
	}
	b.Restore(elems)
	return true
}

// Redo re-applies the snapshot undone last.
func (b *Board) Redo(ctx context.Context) bool {
	if b.history == nil {
		return false
	}
	if b.ctx.Busy() {
		b.PointerCancel()
	}
	elems, ok := b.history.Redo(ctx)
	if !ok {
		b.log.Debug("nothing to redo", "cursor", b.history.Cursor())
		return false
	}
	b.Restore(elems)
	return true
}

// Restore replaces the board content by elems, without recording a
// snapshot.  The selection is kept if the selected element is still
// present.
func (b *Board) Restore(elems []element.Element) {
	var id string
	if b.selected != nil {
		id = b.selected.ID
	}
	b.store.Restore(elems)
	b.selected = nil
	b.hover = nil
	if id != "" {
		if e, ok := b.store.FindByID(id); ok {
			b.selected = e
		}
	}
	metrics.Elements.Set(float64(len(elems)))
}

// Tick runs the pointer move which is waiting for the next frame.
func (b *Board) Tick() bool {
	return b.gate.Tick()
}

// Render draws a frame and returns the number of elements drawn.
func (b *Board) Render(p render.Painter) int {
	if p == nil {
		return 0
	}
	n := b.renderer.Frame(p, b.ctx.View, b.store.Elements(), b.selected)
	metrics.FramesRendered.Inc()
	return n
}

// commit records the current elements in the history.
func (b *Board) commit() {
	snap := b.store.Snapshot()
	metrics.Elements.Set(float64(len(snap)))
	if b.history == nil {
		return
	}
	b.history.Commit(snap)
}
