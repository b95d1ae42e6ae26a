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
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/freehand"
	"seehuhn.de/go/whiteboard/render"
	"seehuhn.de/go/whiteboard/viewport"
)

func box(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

// total returns an emit callback which sums all coverage values, and a
// pointer to the sum.
func total() (func(y, xMin int, coverage []float32), *float64) {
	sum := new(float64)
	return func(y, xMin int, coverage []float32) {
		for _, c := range coverage {
			*sum += float64(c)
		}
	}, sum
}

// grid returns an emit callback which stores coverage in a w×h buffer.
func grid(w, h int) (func(y, xMin int, coverage []float32), []float32) {
	buf := make([]float32, w*h)
	return func(y, xMin int, coverage []float32) {
		copy(buf[y*w+xMin:], coverage)
	}, buf
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	trianglePath := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 1})

	coverage := make([]float32, 10)
	emit := func(y, xMin int, cov []float32) {
		if y == 0 {
			copy(coverage[xMin:], cov)
		}
	}
	r.FillNonZero(trianglePath, emit)

	const epsilon = 1e-6
	for x := range 10 {
		expected := float32(2*x+1) / 20.0
		if math.Abs(float64(coverage[x]-expected)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, coverage[x])
		}
	}
}

func TestRectangleArea(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 20, URy: 20})
	emit, sum := total()
	r.FillNonZero(box(1.5, 2.25, 7.5, 6.75), emit)
	if math.Abs(*sum-27) > 1e-3 {
		t.Errorf("area: got %g, want 27", *sum)
	}

	// partial pixels at the edges
	emit, buf := grid(20, 20)
	r.FillNonZero(box(1.5, 2.25, 7.5, 6.75), emit)
	cases := []struct {
		x, y int
		want float32
	}{
		{1, 4, 0.5},
		{4, 2, 0.75},
		{4, 6, 0.75},
		{1, 2, 0.375},
		{4, 4, 1},
		{0, 4, 0},
		{8, 4, 0},
	}
	for _, c := range cases {
		if got := buf[c.y*20+c.x]; math.Abs(float64(got-c.want)) > 1e-5 {
			t.Errorf("pixel (%d, %d): got %g, want %g", c.x, c.y, got, c.want)
		}
	}
}

func TestFillRules(t *testing.T) {
	// two nested squares with the same orientation
	p := box(2, 2, 18, 18)
	inner := box(6, 6, 14, 14)
	p.Cmds = append(p.Cmds, inner.Cmds...)
	p.Coords = append(p.Coords, inner.Coords...)

	r := NewRasteriser(rect.Rect{URx: 20, URy: 20})

	emit, sum := total()
	r.FillNonZero(p, emit)
	if math.Abs(*sum-256) > 1e-3 {
		t.Errorf("nonzero: got %g, want 256", *sum)
	}

	emit, sum = total()
	r.FillEvenOdd(p, emit)
	if math.Abs(*sum-192) > 1e-3 {
		t.Errorf("even-odd: got %g, want 192", *sum)
	}
}

func TestClip(t *testing.T) {
	r := NewRasteriser(rect.Rect{LLx: 5, LLy: 5, URx: 10, URy: 10})
	emit, sum := total()
	r.FillNonZero(box(0, 0, 20, 20), emit)
	if math.Abs(*sum-25) > 1e-3 {
		t.Errorf("clipped area: got %g, want 25", *sum)
	}

	emit, sum = total()
	r.FillNonZero(box(12, 12, 20, 20), emit)
	if *sum != 0 {
		t.Errorf("outside the clip: got %g, want 0", *sum)
	}
}

func TestCTM(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 20, URy: 20})
	r.CTM = matrix.Matrix{2, 0, 0, 2, 3, 1}

	emit, buf := grid(20, 20)
	r.FillNonZero(box(1, 1, 2, 2), emit)

	sum := float32(0)
	for _, c := range buf {
		sum += c
	}
	if math.Abs(float64(sum-4)) > 1e-4 {
		t.Errorf("area: got %g, want 4", sum)
	}
	if buf[3*20+5] != 1 || buf[4*20+6] != 1 {
		t.Error("square not at (5, 3)-(7, 5)")
	}
}

func TestStrokeArea(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 5}).
		LineTo(vec.Vec2{X: 12, Y: 5})

	cases := []struct {
		cap      graphics.LineCapStyle
		min, max float64
	}{
		{graphics.LineCapButt, 20 - 1e-3, 20 + 1e-3},
		{graphics.LineCapSquare, 24 - 1e-3, 24 + 1e-3},
		// round caps are polygons inscribed in the circle
		{graphics.LineCapRound, 22.5, 20 + math.Pi},
	}
	r := NewRasteriser(rect.Rect{URx: 20, URy: 10})
	for _, c := range cases {
		r.Width = 2
		r.Cap = c.cap
		emit, sum := total()
		r.Stroke(line, emit)
		if *sum < c.min || *sum > c.max {
			t.Errorf("cap %d: area %g not in [%g, %g]", c.cap, *sum, c.min, c.max)
		}
	}
}

func TestStrokeJoins(t *testing.T) {
	// a right angle: the miter adds a full corner square, the bevel half
	// of it
	corner := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 10}).
		LineTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 10, Y: 2})

	r := NewRasteriser(rect.Rect{URx: 20, URy: 20})
	r.Width = 2

	r.Join = graphics.LineJoinMiter
	emit, miter := total()
	r.Stroke(corner, emit)

	r.Join = graphics.LineJoinBevel
	emit, bevel := total()
	r.Stroke(corner, emit)

	// two 8×2 rectangles overlapping in one pixel
	if math.Abs(*miter-32) > 1e-3 {
		t.Errorf("miter: got %g, want 32", *miter)
	}
	if math.Abs(*bevel-31.5) > 1e-3 {
		t.Errorf("bevel: got %g, want 31.5", *bevel)
	}
}

func TestStrokeClosed(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 20, URy: 20})
	r.Width = 2
	emit, sum := total()
	r.Stroke(box(4, 4, 14, 14), emit)

	// outer square 12×12 minus inner square 8×8
	if math.Abs(*sum-80) > 1e-3 {
		t.Errorf("area: got %g, want 80", *sum)
	}
}

func TestDash(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 5}).
		LineTo(vec.Vec2{X: 20, Y: 5})

	r := NewRasteriser(rect.Rect{URx: 20, URy: 10})
	r.Width = 2
	r.Dash = []float64{5, 5}

	for _, phase := range []float64{0, 5} {
		r.DashPhase = phase
		emit, buf := grid(20, 10)
		r.Stroke(line, emit)

		sum := float32(0)
		for _, c := range buf {
			sum += c
		}
		if math.Abs(float64(sum-20)) > 1e-3 {
			t.Errorf("phase %g: area %g, want 20", phase, sum)
		}

		on, off := 2, 7
		if phase == 5 {
			on, off = off, on
		}
		if buf[4*20+on] != 1 || buf[4*20+off] != 0 {
			t.Errorf("phase %g: wrong dash positions", phase)
		}
	}

	// a negative entry disables dashing
	r.Dash = []float64{5, -1}
	r.DashPhase = 0
	emit, sum := total()
	r.Stroke(line, emit)
	if math.Abs(*sum-40) > 1e-3 {
		t.Errorf("invalid pattern: area %g, want 40", *sum)
	}
}

func TestZeroLengthStroke(t *testing.T) {
	dot := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 5}).
		LineTo(vec.Vec2{X: 5, Y: 5})

	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	r.Width = 4

	emit, sum := total()
	r.Stroke(dot, emit)
	if *sum != 0 {
		t.Errorf("butt cap: got %g, want 0", *sum)
	}

	r.Cap = graphics.LineCapRound
	emit, sum = total()
	r.Stroke(dot, emit)
	if *sum < 3 || *sum > 4*math.Pi {
		t.Errorf("round cap: got %g", *sum)
	}
}

func pixel(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestCanvasFill(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	c := NewCanvas(img)
	c.Background = color.White
	c.ClearRect(0, 0, 10, 10)

	if got := pixel(img, 9, 9); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("background: got %v", got)
	}

	c.SetFillColor(color.NRGBA{R: 255, A: 255})
	c.FillPath(box(2, 2, 6, 6))
	if got := pixel(img, 3, 3); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inside: got %v", got)
	}
	if got := pixel(img, 8, 8); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("outside: got %v", got)
	}

	// half transparent blue over white
	c.SetFillColor(color.NRGBA{B: 255, A: 128})
	c.FillPath(box(7, 7, 10, 10))
	got := pixel(img, 8, 8)
	if !near(got.R, 127) || !near(got.G, 127) || got.B < 254 || got.A != 255 {
		t.Errorf("blend: got %v", got)
	}

	// ClearRect replaces instead of blending
	c.Background = nil
	c.ClearRect(0, 0, 10, 10)
	if got := pixel(img, 3, 3); got != (color.RGBA{}) {
		t.Errorf("cleared: got %v", got)
	}
}

func TestCanvasState(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	c := NewCanvas(img)

	green := color.NRGBA{G: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	c.Save()
	c.Scale(2, 2)
	c.SetFillColor(green)
	c.FillPath(box(0, 0, 1, 1))
	c.Restore()

	// scale and colour are back to the defaults
	c.FillPath(box(0, 0, 1, 1))
	c.SetFillColor(blue)
	c.Translate(5, 5)
	c.FillPath(box(0, 0, 1, 1))

	if got := pixel(img, 0, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("(0, 0): got %v, want black", got)
	}
	if got := pixel(img, 1, 1); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("(1, 1): got %v, want green", got)
	}
	if got := pixel(img, 5, 5); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("(5, 5): got %v, want blue", got)
	}

	// extra calls to Restore are ignored
	c.Restore()
	c.Restore()
}

func TestCanvasStroke(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	c := NewCanvas(img)
	c.SetStrokeColor(color.Black)
	c.SetLineWidth(2)
	c.SetLineWidth(-1) // ignored

	c.StrokePath((&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 10}).
		LineTo(vec.Vec2{X: 18, Y: 10}))

	if got := pixel(img, 10, 9); got.A != 255 {
		t.Errorf("on the line: alpha %d", got.A)
	}
	if got := pixel(img, 10, 12); got.A != 0 {
		t.Errorf("off the line: alpha %d", got.A)
	}

	c.SetLineDash([]float64{4, 4})
	c.StrokePath((&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 15}).
		LineTo(vec.Vec2{X: 16, Y: 15}))
	if pixel(img, 2, 15).A != 255 || pixel(img, 6, 15).A != 0 {
		t.Error("dashed line drawn wrong")
	}
}

func TestRenderFrame(t *testing.T) {
	s := element.NewStore()
	e := s.Create(element.KindPen, vec.Vec2{X: 10, Y: 20}, element.DefaultStyle)
	for x := 5.0; x <= 60; x += 5 {
		s.Update(e, element.AppendPoint{P: vec.Vec2{X: x}})
	}
	s.Update(e, element.Finish{})

	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	c := NewCanvas(img)
	c.Background = color.White

	v := viewport.New(100, 50)
	n := render.NewRenderer(freehand.Outliner{}).Frame(c, v, s.Elements(), nil)
	if n != 1 {
		t.Fatalf("drew %d elements, want 1", n)
	}

	if got := pixel(img, 40, 20); got.R > 64 {
		t.Errorf("stroke not drawn: %v", got)
	}
	if got := pixel(img, 40, 40); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background: got %v", got)
	}
}

func TestThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for i := range img.Pix {
		if i%4 == 0 || i%4 == 3 {
			img.Pix[i] = 255
		}
	}

	th := Thumbnail(img, 20)
	if b := th.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Fatalf("size: got %v", b)
	}
	if got := th.RGBAAt(10, 5); got.R < 254 || got.G > 1 || got.A < 254 {
		t.Errorf("colour: got %v", got)
	}

	if b := Thumbnail(img, 0).Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("width 0: got %v", b)
	}
}

// BenchmarkStroke measures the stroker on a long freehand outline.
func BenchmarkStroke(b *testing.B) {
	p := &path.Data{}
	p.MoveTo(vec.Vec2{X: 10, Y: 100})
	for i := 1; i <= 200; i++ {
		x := 10 + float64(i)*4
		p.LineTo(vec.Vec2{X: x, Y: 100 + 60*math.Sin(x/40)})
	}

	r := NewRasteriser(rect.Rect{URx: 1000, URy: 200})
	emit := func(y, xMin int, coverage []float32) {}

	b.ReportAllocs()
	for b.Loop() {
		r.Width = 5
		r.Cap = graphics.LineCapRound
		r.Join = graphics.LineJoinRound
		r.Stroke(p, emit)
	}
}

func BenchmarkRasteriserO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			center := float64(size) / 2
			oPath := makeOPath(center, center, float64(size)*0.45, float64(size)*0.30)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.FillEvenOdd(oPath, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorO benchmarks x/image/vector drawing the same "O" shape.
func BenchmarkVectorO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			center := float32(size) / 2
			outerR := float32(size) * 0.45
			innerR := float32(size) * 0.30

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				addCircleToVector(r, center, center, outerR, false)
				addCircleToVector(r, center, center, innerR, true)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// circleKappa is the control point distance for a quarter circle made of
// a cubic Bézier curve.
const circleKappa = 0.5522847498

// makeOPath creates an "O" shape: the outer circle counter-clockwise, the
// inner one clockwise.
func makeOPath(cx, cy, outerR, innerR float64) *path.Data {
	p := &path.Data{}
	addCircle(p, cx, cy, outerR, false)
	addCircle(p, cx, cy, innerR, true)
	return p
}

func addCircle(p *path.Data, cx, cy, r float64, clockwise bool) {
	kr := circleKappa * r
	s := 1.0
	if clockwise {
		s = -1
	}
	pt := func(x, y float64) vec.Vec2 { return vec.Vec2{X: cx + s*x, Y: cy + y} }

	p.MoveTo(pt(0, -r))
	p.CubeTo(pt(kr, -r), pt(r, -kr), pt(r, 0))
	p.CubeTo(pt(r, kr), pt(kr, r), pt(0, r))
	p.CubeTo(pt(-kr, r), pt(-r, kr), pt(-r, 0))
	p.CubeTo(pt(-r, -kr), pt(-kr, -r), pt(0, -r))
	p.Close()
}

func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	kr := float32(circleKappa) * radius
	s := float32(1)
	if clockwise {
		s = -1
	}

	r.MoveTo(cx, cy-radius)
	r.CubeTo(cx+s*kr, cy-radius, cx+s*radius, cy-kr, cx+s*radius, cy)
	r.CubeTo(cx+s*radius, cy+kr, cx+s*kr, cy+radius, cx, cy+radius)
	r.CubeTo(cx-s*kr, cy+radius, cx-s*radius, cy+kr, cx-s*radius, cy)
	r.CubeTo(cx-s*radius, cy-kr, cx-s*kr, cy-radius, cx, cy-radius)
	r.ClosePath()
}
