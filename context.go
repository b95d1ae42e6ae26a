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

// Package whiteboard is the interaction controller of a freehand
// whiteboard.
//
// A [Board] receives pointer, wheel and keyboard input in client
// coordinates, turns it into pen strokes, selection gestures, erasing and
// panning, and records the result in an undo history.  Frames are drawn
// through a [render.Painter].
//
// A Board is driven from a single goroutine.  Pointer moves are coalesced
// by a [FrameGate]: only the latest move is applied when the next frame
// tick runs.
package whiteboard

import (
	"github.com/pkg/errors"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/selection"
	"seehuhn.de/go/whiteboard/viewport"
)

// Tool is the active input mode.
type Tool string

// These are the tools of a board.
const (
	ToolPen    Tool = "pen"
	ToolSelect Tool = "select"
	ToolEraser Tool = "eraser"
	ToolPan    Tool = "pan"
)

// ParseTool converts a tool name to a Tool.
func ParseTool(s string) (Tool, error) {
	switch t := Tool(s); t {
	case ToolPen, ToolSelect, ToolEraser, ToolPan:
		return t, nil
	}
	return "", errors.Errorf("unknown tool %q", s)
}

// Context is the view and interaction state of a board.
type Context struct {
	View  viewport.View
	Tool  Tool
	Style element.Style

	// IsDrawing is set while a pen stroke or an eraser gesture is in
	// progress.
	IsDrawing bool

	// IsMoveOrScale is set while the view is being panned.
	IsMoveOrScale bool

	// IsElementOption is set while the selected element is moved, resized
	// or rotated.  Handle is the handle under the pointer.
	IsElementOption bool
	Handle          selection.Handle

	// SpacePan is set while the space bar is held.  It selects the pan
	// tool temporarily.
	SpacePan bool

	// Cursor is the CSS cursor for the current pointer position.
	Cursor string
}

// NewContext returns the context of a fresh board with a drawing surface of
// the given size in CSS pixels.
func NewContext(width, height float64) Context {
	return Context{
		View:   viewport.New(width, height),
		Tool:   ToolPen,
		Style:  element.DefaultStyle,
		Cursor: "crosshair",
	}
}

// ActiveTool returns the tool which a new gesture uses.
func (c *Context) ActiveTool() Tool {
	if c.SpacePan {
		return ToolPan
	}
	return c.Tool
}

// Busy reports whether a gesture is in progress.
func (c *Context) Busy() bool {
	return c.IsDrawing || c.IsMoveOrScale || c.IsElementOption
}

// Reset restores the pen defaults and the view to their initial values.
// The tool and the surface geometry are kept.
func (c *Context) Reset() {
	c.View.Reset()
	c.Style = element.DefaultStyle
	c.endGesture()
}

func (c *Context) endGesture() {
	c.IsDrawing = false
	c.IsMoveOrScale = false
	c.IsElementOption = false
	c.Handle = selection.HandleNone
}

// idleCursor is the cursor shown for tool t when the pointer is not over
// anything of interest.
func idleCursor(t Tool) string {
	switch t {
	case ToolPen, ToolEraser:
		return "crosshair"
	case ToolPan:
		return "grab"
	}
	return "default"
}
