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

// Package pdfexport writes whiteboard drawings as vector PDF files.
//
// The package implements the painter interface of the renderer on top of
// a gofpdf document, so that a frame drawn into a PDF page looks exactly
// like the same frame drawn on screen.
package pdfexport

import (
	"image/color"
	"math"
	"slices"

	"github.com/jung-kurt/gofpdf"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/render"
)

// Painter draws onto the current page of a gofpdf document.
// Coordinates are in the unit of the document, with the origin in the
// top left corner of the page and y growing downwards.
type Painter struct {
	pdf *gofpdf.Fpdf

	// Background is the colour used by ClearRect.  If it is nil, ClearRect
	// does nothing, since PDF pages start out blank.
	Background color.Color

	state painterState
	saved []painterState
}

type painterState struct {
	fill, stroke color.NRGBA
	lineWidth    float64
	dash         []float64
}

var _ render.Painter = (*Painter)(nil)

// NewPainter returns a painter for the current page of pdf.  The caller
// must call Close before the document is written.
func NewPainter(pdf *gofpdf.Fpdf) *Painter {
	p := &Painter{
		pdf: pdf,
		state: painterState{
			fill:      color.NRGBA{A: 0xff},
			stroke:    color.NRGBA{A: 0xff},
			lineWidth: 1,
		},
	}
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	pdf.TransformBegin()
	p.apply()
	return p
}

// Close ends all open transformations.
func (p *Painter) Close() {
	for range p.saved {
		p.pdf.TransformEnd()
	}
	p.saved = nil
	p.pdf.TransformEnd()
}

// apply sends the whole graphics state to the document.
func (p *Painter) apply() {
	s := &p.state
	p.pdf.SetFillColor(int(s.fill.R), int(s.fill.G), int(s.fill.B))
	p.pdf.SetDrawColor(int(s.stroke.R), int(s.stroke.G), int(s.stroke.B))
	p.pdf.SetLineWidth(s.lineWidth)
	p.pdf.SetDashPattern(s.dash, 0)
}

// Save pushes the transformation and the graphics state.
func (p *Painter) Save() {
	p.pdf.TransformBegin()
	p.saved = append(p.saved, p.state)
}

// Restore pops the state saved by the matching call to Save.  Unbalanced
// calls are ignored.
func (p *Painter) Restore() {
	n := len(p.saved)
	if n == 0 {
		return
	}
	p.pdf.TransformEnd()
	p.state = p.saved[n-1]
	p.saved = p.saved[:n-1]
	p.apply()
}

func (p *Painter) Scale(sx, sy float64) {
	if sx == 0 || sy == 0 {
		return
	}
	p.pdf.TransformScale(sx*100, sy*100, 0, 0)
}

func (p *Painter) Translate(dx, dy float64) {
	p.pdf.TransformTranslate(dx, dy)
}

func (p *Painter) Rotate(angle float64) {
	p.pdf.TransformRotate(-angle*180/math.Pi, 0, 0)
}

// ClearRect paints the rectangle with the background colour.
func (p *Painter) ClearRect(x, y, w, h float64) {
	if p.Background == nil {
		return
	}
	bg := color.NRGBAModel.Convert(p.Background).(color.NRGBA)
	p.pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	p.pdf.SetAlpha(float64(bg.A)/255, "Normal")
	p.pdf.Rect(x, y, w, h, "F")
	f := p.state.fill
	p.pdf.SetFillColor(int(f.R), int(f.G), int(f.B))
}

func (p *Painter) FillPath(d *path.Data) {
	if d == nil {
		return
	}
	p.pdf.SetAlpha(float64(p.state.fill.A)/255, "Normal")
	convertPath(d, p.pdf)
	p.pdf.DrawPath("F")
}

func (p *Painter) StrokePath(d *path.Data) {
	if d == nil {
		return
	}
	p.pdf.SetAlpha(float64(p.state.stroke.A)/255, "Normal")
	convertPath(d, p.pdf)
	p.pdf.DrawPath("D")
}

func (p *Painter) SetLineDash(dash []float64) {
	p.state.dash = slices.Clone(dash)
	p.pdf.SetDashPattern(p.state.dash, 0)
}

// SetLineWidth sets the stroke width.  Non-positive widths are ignored.
func (p *Painter) SetLineWidth(w float64) {
	if w > 0 {
		p.state.lineWidth = w
		p.pdf.SetLineWidth(w)
	}
}

func (p *Painter) SetFillColor(c color.Color) {
	p.state.fill = color.NRGBAModel.Convert(c).(color.NRGBA)
	f := p.state.fill
	p.pdf.SetFillColor(int(f.R), int(f.G), int(f.B))
}

func (p *Painter) SetStrokeColor(c color.Color) {
	p.state.stroke = color.NRGBAModel.Convert(c).(color.NRGBA)
	s := p.state.stroke
	p.pdf.SetDrawColor(int(s.R), int(s.G), int(s.B))
}

// convertPath adds the segments of d to the current PDF path.
// Quadratic segments become cubic ones, since the PDF "v" operator which
// gofpdf uses for CurveTo is not a quadratic curve.
func convertPath(d *path.Data, pdf *gofpdf.Fpdf) {
	var start, cur vec.Vec2
	k := 0
	for _, cmd := range d.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = d.Coords[k]
			start = cur
			pdf.MoveTo(cur.X, cur.Y)
			k++
		case path.CmdLineTo:
			cur = d.Coords[k]
			pdf.LineTo(cur.X, cur.Y)
			k++
		case path.CmdQuadTo:
			c, q := d.Coords[k], d.Coords[k+1]
			c1 := cur.Add(c.Sub(cur).Mul(2.0 / 3))
			c2 := q.Add(c.Sub(q).Mul(2.0 / 3))
			pdf.CurveBezierCubicTo(c1.X, c1.Y, c2.X, c2.Y, q.X, q.Y)
			cur = q
			k += 2
		case path.CmdCubeTo:
			c1, c2, q := d.Coords[k], d.Coords[k+1], d.Coords[k+2]
			pdf.CurveBezierCubicTo(c1.X, c1.Y, c2.X, c2.Y, q.X, q.Y)
			cur = q
			k += 3
		case path.CmdClose:
			pdf.ClosePath()
			cur = start
		}
	}
}
