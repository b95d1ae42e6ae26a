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

package raster

import (
	"image"
	"image/color"
	"slices"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/whiteboard/render"
)

// Canvas is a painter which draws onto an RGBA image using source-over
// compositing.  Device coordinates are image pixels.
type Canvas struct {
	Image *image.RGBA

	// Background is the colour used by ClearRect.  The zero value clears
	// to transparent.
	Background color.Color

	r     *Rasteriser
	ts    *render.TransformStack
	state canvasState
	saved []canvasState
}

type canvasState struct {
	fill, stroke color.NRGBA
	lineWidth    float64
	dash         []float64
	cap          graphics.LineCapStyle
	join         graphics.LineJoinStyle
}

var defaultState = canvasState{
	fill:      color.NRGBA{A: 0xff},
	stroke:    color.NRGBA{A: 0xff},
	lineWidth: 1,
	cap:       graphics.LineCapRound,
	join:      graphics.LineJoinRound,
}

var _ render.Painter = (*Canvas)(nil)

// NewCanvas returns a painter for img.
func NewCanvas(img *image.RGBA) *Canvas {
	b := img.Bounds()
	clip := rect.Rect{
		LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
		URx: float64(b.Max.X), URy: float64(b.Max.Y),
	}
	return &Canvas{
		Image: img,
		r:     NewRasteriser(clip),
		ts:    render.NewTransformStack(),
		state: defaultState,
	}
}

// Save pushes the transformation and the graphics state.
func (c *Canvas) Save() {
	c.ts.Push()
	c.saved = append(c.saved, c.state)
}

// Restore pops the state saved by the matching call to Save.  Unbalanced
// calls are ignored.
func (c *Canvas) Restore() {
	n := len(c.saved)
	if n == 0 || !c.ts.Pop() {
		return
	}
	c.state = c.saved[n-1]
	c.saved = c.saved[:n-1]
}

func (c *Canvas) Scale(sx, sy float64) { c.ts.Scale(sx, sy) }
func (c *Canvas) Translate(dx, dy float64) { c.ts.Translate(dx, dy) }
func (c *Canvas) Rotate(angle float64) { c.ts.Rotate(angle) }

// SetFillColor sets the colour used by FillPath.
func (c *Canvas) SetFillColor(col color.Color) {
	c.state.fill = color.NRGBAModel.Convert(col).(color.NRGBA)
}

// SetStrokeColor sets the colour used by StrokePath.
func (c *Canvas) SetStrokeColor(col color.Color) {
	c.state.stroke = color.NRGBAModel.Convert(col).(color.NRGBA)
}

// SetLineWidth sets the stroke width in user space.  Non-positive widths
// are ignored.
func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 {
		c.state.lineWidth = w
	}
}

// SetLineDash sets the dash pattern.  Nil or empty gives solid lines.
func (c *Canvas) SetLineDash(dash []float64) {
	c.state.dash = slices.Clone(dash)
}

// SetLineCap sets the style of line ends.
func (c *Canvas) SetLineCap(style graphics.LineCapStyle) {
	c.state.cap = style
}

// SetLineJoin sets the style of line corners.
func (c *Canvas) SetLineJoin(style graphics.LineJoinStyle) {
	c.state.join = style
}

// ClearRect replaces the given rectangle, in user space, by the
// background colour.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: x, Y: y}).
		LineTo(vec.Vec2{X: x + w, Y: y}).
		LineTo(vec.Vec2{X: x + w, Y: y + h}).
		LineTo(vec.Vec2{X: x, Y: y + h}).
		Close()

	var bg color.NRGBA
	if c.Background != nil {
		bg = color.NRGBAModel.Convert(c.Background).(color.NRGBA)
	}
	c.r.CTM = c.ts.CTM
	c.r.FillNonZero(p, c.compositor(bg, true))
}

// FillPath fills p with the fill colour, using the nonzero winding rule.
func (c *Canvas) FillPath(p *path.Data) {
	if p == nil {
		return
	}
	c.r.CTM = c.ts.CTM
	c.r.FillNonZero(p, c.compositor(c.state.fill, false))
}

// StrokePath strokes p with the stroke colour and the current line style.
func (c *Canvas) StrokePath(p *path.Data) {
	if p == nil {
		return
	}
	r := c.r
	r.CTM = c.ts.CTM
	r.Width = c.state.lineWidth
	r.Cap = c.state.cap
	r.Join = c.state.join
	r.Dash = c.state.dash
	r.DashPhase = 0
	r.Stroke(p, c.compositor(c.state.stroke, false))
}

// compositor returns a coverage callback which blends col into the image.
// If replace is set, covered pixels are replaced by col instead of being
// composited on top.
func (c *Canvas) compositor(col color.NRGBA, replace bool) func(y, xMin int, coverage []float32) {
	ca := float32(col.A) / 255
	cr := float32(col.R) * ca
	cg := float32(col.G) * ca
	cb := float32(col.B) * ca
	img := c.Image
	return func(y, xMin int, coverage []float32) {
		off := img.PixOffset(xMin, y)
		for i, cov := range coverage {
			a := cov * ca
			k := 1 - a
			if replace {
				k = 1 - cov
			} else if a <= 0 {
				continue
			}
			px := img.Pix[off+4*i : off+4*i+4 : off+4*i+4]
			px[0] = uint8(cr*cov + float32(px[0])*k + 0.5)
			px[1] = uint8(cg*cov + float32(px[1])*k + 0.5)
			px[2] = uint8(cb*cov + float32(px[2])*k + 0.5)
			px[3] = uint8(255*a + float32(px[3])*k + 0.5)
		}
	}
}

// Thumbnail scales img to the given width, keeping the aspect ratio.
func Thumbnail(img image.Image, width int) *image.RGBA {
	b := img.Bounds()
	if width <= 0 || b.Dx() == 0 {
		width = b.Dx()
	}
	height := max(1, b.Dy()*width/max(1, b.Dx()))
	dst := image.NewRGBA(image.Rect(0, 0, max(1, width), height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
