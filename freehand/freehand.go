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

// Package freehand turns the sampled points of a pen stroke into a closed
// outline which can be filled.
//
// The width of the outline varies with a pressure value which is simulated
// from the pointer speed: fast motion gives thin lines.  The input points
// are smoothed before the outline is computed, and both ends of the stroke
// get round caps.
package freehand

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/geometry"
)

// Options controls the shape of the outline.
type Options struct {
	// Size is the diameter of the stroke at pressure 0.5.
	Size float64

	// Thinning is the effect of pressure on the stroke width, in [-1, 1].
	// Zero gives a constant width.
	Thinning float64

	// Smoothing is the minimum distance between outline points, as a
	// fraction of Size.
	Smoothing float64

	// Streamline controls how much the input points are pulled towards
	// the previous point, in [0, 1].
	Streamline float64

	// Easing maps the pressure-dependent radius factor.  If nil, the
	// identity is used.
	Easing func(float64) float64

	// SimulatePressure derives the pressure from the distance between
	// consecutive points.
	SimulatePressure bool

	// Last indicates that the stroke is complete, so that the final input
	// point is used unchanged.
	Last bool
}

// DefaultOptions returns the options used for pen strokes of the given
// line width.
func DefaultOptions(lineWidth float64) *Options {
	return &Options{
		Size:             lineWidth,
		Thinning:         0.6,
		Smoothing:        0.5,
		Streamline:       0.5,
		Easing:           easeOutSine,
		SimulatePressure: true,
		Last:             true,
	}
}

func easeOutSine(t float64) float64 {
	return math.Sin(t * math.Pi / 2)
}

const (
	pressureRate = 0.275

	// slightly more than a half turn, so that caps overlap the sides
	fixedPi = math.Pi + 0.0001

	startPressure   = 0.25
	defaultPressure = 0.5
)

// Outliner adapts the package to the stroke outliner interface of the
// renderer.
type Outliner struct{}

// Outline returns the closed outline path for a stroke drawn with the
// given line width.
func (Outliner) Outline(points []vec.Vec2, width float64) *path.Data {
	return Path(Outline(points, DefaultOptions(width)))
}

type strokePoint struct {
	point         vec.Vec2
	pressure      float64
	vector        vec.Vec2 // unit vector to the previous point
	distance      float64
	runningLength float64
}

// Outline computes the outline polygon of the stroke through points.
// The result is empty if there are no points or the size is not positive.
func Outline(points []vec.Vec2, opt *Options) []vec.Vec2 {
	if opt == nil {
		opt = DefaultOptions(16)
	}
	return outlinePoints(strokePoints(points, opt), opt)
}

func strokePoints(points []vec.Vec2, opt *Options) []strokePoint {
	if len(points) == 0 {
		return nil
	}

	t := 0.15 + (1-opt.Streamline)*0.85

	pts := points
	switch len(pts) {
	case 1:
		pts = []vec.Vec2{pts[0], pts[0].Add(vec.Vec2{X: 1, Y: 1})}
	case 2:
		// interpolate, so that the streamline has something to work on
		first, last := pts[0], pts[1]
		pts = []vec.Vec2{first}
		for i := 1; i < 5; i++ {
			pts = append(pts, lerp(first, last, float64(i)/4))
		}
	}

	res := []strokePoint{{
		point:    pts[0],
		pressure: startPressure,
		vector:   vec.Vec2{X: 1, Y: 1},
	}}

	reachedMinLength := false
	runningLength := 0.0
	prev := res[0]
	last := len(pts) - 1
	for i := 1; i < len(pts); i++ {
		var p vec.Vec2
		if opt.Last && i == last {
			p = pts[i]
		} else {
			p = lerp(prev.point, pts[i], t)
		}
		if p == prev.point {
			continue
		}

		d := geometry.Distance(p, prev.point)
		runningLength += d
		if i < last && !reachedMinLength {
			if runningLength < opt.Size {
				continue
			}
			reachedMinLength = true
		}

		prev = strokePoint{
			point:         p,
			pressure:      defaultPressure,
			vector:        unit(prev.point.Sub(p)),
			distance:      d,
			runningLength: runningLength,
		}
		res = append(res, prev)
	}

	if len(res) > 1 {
		res[0].vector = res[1].vector
	} else {
		res[0].vector = vec.Vec2{}
	}
	return res
}

func (o *Options) radius(pressure float64) float64 {
	ease := o.Easing
	if ease == nil {
		ease = func(t float64) float64 { return t }
	}
	return o.Size * ease(0.5-o.Thinning*(0.5-pressure))
}

func (o *Options) simulate(prev float64, sp strokePoint) float64 {
	s := min(1, sp.distance/o.Size)
	r := min(1, 1-s)
	return min(1, prev+(r-prev)*(s*pressureRate))
}

func outlinePoints(points []strokePoint, opt *Options) []vec.Vec2 {
	size := opt.Size
	if len(points) == 0 || !(size > 0) {
		return nil
	}

	n := len(points)
	totalLength := points[n-1].runningLength
	minDistance := (size * opt.Smoothing) * (size * opt.Smoothing)

	prevPressure := points[0].pressure
	for _, sp := range points[:min(n, 10)] {
		pressure := sp.pressure
		if opt.SimulatePressure {
			pressure = opt.simulate(prevPressure, sp)
		}
		prevPressure = (prevPressure + pressure) / 2
	}

	radius := opt.radius(points[n-1].pressure)
	firstRadius := math.NaN()
	prevVector := points[0].vector
	pl := points[0].point
	pr := pl
	tl, tr := pl, pr
	prevSharp := false

	var left, right []vec.Vec2
	for i, sp := range points {
		if i < n-1 && totalLength-sp.runningLength < 3 {
			continue
		}

		if opt.Thinning != 0 {
			pressure := sp.pressure
			if opt.SimulatePressure {
				pressure = opt.simulate(prevPressure, sp)
			}
			radius = opt.radius(pressure)
			prevPressure = pressure
		} else {
			radius = size / 2
		}
		if math.IsNaN(firstRadius) {
			firstRadius = radius
		}
		radius = max(0.01, radius)

		nextVector := sp.vector
		nextDot := 1.0
		if i < n-1 {
			nextVector = points[i+1].vector
			nextDot = sp.vector.Dot(nextVector)
		}
		prevDot := sp.vector.Dot(prevVector)

		sharp := prevDot < 0 && !prevSharp
		nextSharp := nextDot < 0
		if sharp || nextSharp {
			// turn around the point with a half circle
			offset := perp(prevVector).Mul(radius)
			for t := 0.0; t <= 1; t += 1.0 / 13 {
				tl = geometry.RotatePoint(sp.point.Sub(offset), sp.point, fixedPi*t)
				left = append(left, tl)
				tr = geometry.RotatePoint(sp.point.Add(offset), sp.point, -fixedPi*t)
				right = append(right, tr)
			}
			pl, pr = tl, tr
			if nextSharp {
				prevSharp = true
			}
			continue
		}
		prevSharp = false

		if i == n-1 {
			offset := perp(sp.vector).Mul(radius)
			left = append(left, sp.point.Sub(offset))
			right = append(right, sp.point.Add(offset))
			continue
		}

		offset := perp(lerp(nextVector, sp.vector, nextDot)).Mul(radius)
		tl = sp.point.Sub(offset)
		if i <= 1 || dist2(pl, tl) > minDistance {
			left = append(left, tl)
			pl = tl
		}
		tr = sp.point.Add(offset)
		if i <= 1 || dist2(pr, tr) > minDistance {
			right = append(right, tr)
			pr = tr
		}
		prevVector = sp.vector
	}

	first := points[0].point
	if n == 1 {
		// a dot
		r := firstRadius
		if math.IsNaN(r) {
			r = radius
		}
		lastPoint := first.Add(vec.Vec2{X: 1, Y: 1})
		start := first.Add(unit(perp(first.Sub(lastPoint))).Mul(-r))
		var dot []vec.Vec2
		for t := 1.0 / 13; t <= 1; t += 1.0 / 13 {
			dot = append(dot, geometry.RotatePoint(start, first, fixedPi*2*t))
		}
		return dot
	}
	if len(left) == 0 || len(right) == 0 {
		return nil
	}

	var startCap []vec.Vec2
	for t := 1.0 / 13; t <= 1; t += 1.0 / 13 {
		startCap = append(startCap, geometry.RotatePoint(right[0], first, fixedPi*t))
	}

	lastPoint := points[n-1].point
	direction := perp(points[n-1].vector.Mul(-1))
	capStart := lastPoint.Add(direction.Mul(radius))
	var endCap []vec.Vec2
	for t := 1.0 / 29; t < 1; t += 1.0 / 29 {
		endCap = append(endCap, geometry.RotatePoint(capStart, lastPoint, fixedPi*3*t))
	}

	res := make([]vec.Vec2, 0, len(left)+len(endCap)+len(right)+len(startCap))
	res = append(res, left...)
	res = append(res, endCap...)
	for i := len(right) - 1; i >= 0; i-- {
		res = append(res, right[i])
	}
	res = append(res, startCap...)
	return res
}

// Path converts an outline polygon into a closed path.  The outline points
// become the control points of quadratic curves which pass through the
// midpoints between consecutive outline points.
func Path(outline []vec.Vec2) *path.Data {
	p := &path.Data{}
	if len(outline) == 0 {
		return p
	}
	first := outline[0]
	p.MoveTo(first)
	for i, q := range outline {
		next := first
		if i+1 < len(outline) {
			next = outline[i+1]
		}
		p.QuadTo(q, lerp(q, next, 0.5))
	}
	p.LineTo(first)
	p.Close()
	return p
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// perp returns v turned by a quarter turn.
func perp(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: v.Y, Y: -v.X}
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

func dist2(a, b vec.Vec2) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
