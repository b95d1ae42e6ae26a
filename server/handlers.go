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

package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"math"

	"github.com/gofiber/fiber/v3"
	"github.com/pkg/errors"

	"seehuhn.de/go/whiteboard"
	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/pdfexport"
	"seehuhn.de/go/whiteboard/raster"
)

// maxFrameSide limits the size of rendered frames, in device pixels.
const maxFrameSide = 8192

// Event is one input event of a POST /events batch.  Positions are client
// coordinates.
type Event struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
	Key  string  `json:"key"`
}

// State summarises the board after a request.
type State struct {
	Tool          string  `json:"tool"`
	LineWidth     float64 `json:"lineWidth"`
	StrokeColor   string  `json:"strokeColor"`
	Zoom          float64 `json:"zoom"`
	ScrollX       float64 `json:"scrollX"`
	ScrollY       float64 `json:"scrollY"`
	Selected      string  `json:"selected,omitempty"`
	Cursor        string  `json:"cursor"`
	Elements      int     `json:"elements"`
	HistoryCursor int     `json:"historyCursor"`
	CanUndo       bool    `json:"canUndo"`
	CanRedo       bool    `json:"canRedo"`
}

func (s *Server) state() *State {
	b := s.board
	ctx := b.Context()
	st := &State{
		Tool:          string(ctx.Tool),
		LineWidth:     ctx.Style.LineWidth,
		StrokeColor:   ctx.Style.StrokeColor,
		Zoom:          ctx.View.Zoom,
		ScrollX:       ctx.View.ScrollX,
		ScrollY:       ctx.View.ScrollY,
		Cursor:        b.Cursor(),
		Elements:      len(b.Elements()),
		HistoryCursor: -1,
	}
	if e := b.Selected(); e != nil {
		st.Selected = e.ID
	}
	if h := b.History(); h != nil {
		st.HistoryCursor = h.Cursor()
		st.CanUndo = h.CanUndo()
		st.CanRedo = h.CanRedo()
	}
	return st
}

func (s *Server) getState(c fiber.Ctx) error {
	return c.JSON(s.state())
}

func (s *Server) postEvents(c fiber.Ctx) error {
	var events []Event
	if err := json.Unmarshal(c.Body(), &events); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON payload")
	}

	apply := make([]func(), 0, len(events))
	for i, ev := range events {
		fn, err := s.eventFunc(ev)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, errors.Wrapf(err, "event %d", i).Error())
		}
		apply = append(apply, fn)
	}
	for _, fn := range apply {
		fn()
	}
	s.board.Tick()

	return c.JSON(s.state())
}

func (s *Server) eventFunc(ev Event) (func(), error) {
	b := s.board
	switch ev.Kind {
	case "down":
		return func() { b.PointerDown(ev.X, ev.Y) }, nil
	case "move":
		return func() { b.PointerMove(ev.X, ev.Y) }, nil
	case "up":
		return func() { b.PointerUp(ev.X, ev.Y) }, nil
	case "cancel":
		return b.PointerCancel, nil
	case "wheel":
		return func() { b.Wheel(ev.X, ev.Y, ev.DY) }, nil
	case "keydown":
		return func() { b.KeyDown(ev.Key) }, nil
	case "keyup":
		return func() { b.KeyUp(ev.Key) }, nil
	}
	return nil, errors.Errorf("unknown event kind %q", ev.Kind)
}

type toolRequest struct {
	Tool        string  `json:"tool"`
	LineWidth   float64 `json:"lineWidth"`
	StrokeColor string  `json:"strokeColor"`
}

func (s *Server) putTool(c fiber.Ctx) error {
	var req toolRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON payload")
	}

	var tool whiteboard.Tool
	if req.Tool != "" {
		var err error
		tool, err = whiteboard.ParseTool(req.Tool)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	if req.LineWidth < 0 || math.IsNaN(req.LineWidth) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid line width")
	}
	if req.StrokeColor != "" {
		if err := s.board.SetStrokeColor(req.StrokeColor); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	if req.LineWidth > 0 {
		s.board.SetLineWidth(req.LineWidth)
	}
	if tool != "" {
		s.board.SetTool(tool)
	}
	return c.JSON(s.state())
}

func (s *Server) postUndo(c fiber.Ctx) error {
	s.board.Undo(c.Context())
	return c.JSON(s.state())
}

func (s *Server) postRedo(c fiber.Ctx) error {
	s.board.Redo(c.Context())
	return c.JSON(s.state())
}

func (s *Server) postClear(c fiber.Ctx) error {
	s.board.Clear()
	return c.JSON(s.state())
}

func (s *Server) deleteSelection(c fiber.Ctx) error {
	if !s.board.Delete() {
		return fiber.NewError(fiber.StatusNotFound, "nothing selected")
	}
	return c.JSON(s.state())
}

func (s *Server) getElements(c fiber.Ctx) error {
	res := make([]*element.Element, 0, len(s.board.Elements()))
	for _, e := range s.board.Elements() {
		if !e.IsDelete {
			res = append(res, e)
		}
	}
	return c.JSON(res)
}

func (s *Server) getElement(c fiber.Ctx) error {
	e, ok := s.board.Element(c.Params("id"))
	if !ok || e.IsDelete {
		return fiber.ErrNotFound
	}
	return c.JSON(e)
}

// getFrame renders the current view.  The optional query parameter width
// scales the image down to a thumbnail.
func (s *Server) getFrame(c fiber.Ctx) error {
	width := fiber.Query[int](c, "width", 0)
	if width < 0 || width > maxFrameSide {
		return fiber.NewError(fiber.StatusBadRequest, "invalid width")
	}

	v := s.board.View()
	w := int(math.Ceil(v.Width * v.DPR))
	h := int(math.Ceil(v.Height * v.DPR))
	if w <= 0 || h <= 0 || w > maxFrameSide || h > maxFrameSide {
		return fiber.NewError(fiber.StatusConflict, "no drawing surface")
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	canvas := raster.NewCanvas(img)
	canvas.Background = s.pdf.Background
	s.board.Render(canvas)

	var out image.Image = img
	if width > 0 && width < w {
		out = raster.Thumbnail(img, width)
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, out); err != nil {
		return errors.Wrap(err, "encode frame")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}

func (s *Server) getPDF(c fiber.Ctx) error {
	buf := &bytes.Buffer{}
	n, err := pdfexport.Write(buf, s.board.Elements(), s.pdf)
	if err != nil {
		return errors.Wrap(err, "export PDF")
	}
	s.log.Debug("exported PDF", "elements", n, "bytes", buf.Len())
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="whiteboard.pdf"`)
	return c.Send(buf.Bytes())
}
