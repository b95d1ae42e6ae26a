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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// polyline is a flattened subpath in user space.  For closed subpaths the
// last point equals the first one.
type polyline struct {
	pts    []vec.Vec2
	closed bool
}

// Stroke rasterises the outline of p using Width, Cap, Join, MiterLimit,
// Dash and DashPhase.  The emit callback receives coverage row by row; its
// slice argument is only valid during the call.
//
// The outline is assembled from one polygon per segment, join and cap,
// all with the same orientation.  Filling them together with the nonzero
// rule paints overlapping parts only once.
func (r *Rasteriser) Stroke(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	if !(r.Width > 0) {
		return
	}
	r.flatten(p)
	lines := r.lines
	if len(r.Dash) > 0 {
		lines = r.applyDash(lines)
	}

	r.pieces = r.pieces[:0]
	r.pieceEnds = r.pieceEnds[:0]
	for _, l := range lines {
		r.strokePolyline(l, r.Width/2)
	}

	r.startEdges()
	start := 0
	for _, end := range r.pieceEnds {
		poly := r.pieces[start:end]
		start = end
		if len(poly) < 3 {
			continue
		}
		if signedArea(poly) < 0 {
			for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
				poly[i], poly[j] = poly[j], poly[i]
			}
		}
		for i := range poly {
			r.addEdge(poly[i], poly[(i+1)%len(poly)])
		}
	}
	r.fill(integrateNonZero, emit)
}

// flatten converts p into polylines, stored in r.lines.
func (r *Rasteriser) flatten(p *path.Data) {
	r.lines = r.lines[:0]
	last := func() *polyline { return &r.lines[len(r.lines)-1] }
	r.walk(p,
		func(q vec.Vec2) {
			r.lines = append(r.lines, polyline{pts: []vec.Vec2{q}})
		},
		func(a, b vec.Vec2) {
			if len(r.lines) == 0 || last().closed {
				// drawing continues after a close, from the subpath start
				r.lines = append(r.lines, polyline{pts: []vec.Vec2{a}})
			}
			l := last()
			if b.Sub(l.pts[len(l.pts)-1]).Length() < zeroLengthThreshold {
				return
			}
			l.pts = append(l.pts, b)
		},
		func() {
			if len(r.lines) > 0 {
				last().closed = true
			}
		})
}

// applyDash splits the polylines into dashes.
func (r *Rasteriser) applyDash(lines []polyline) []polyline {
	pattern := r.Dash
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
	}
	total := 0.0
	for _, d := range pattern {
		if d < 0 {
			return lines
		}
		total += d
	}
	if !(total > 0) {
		return lines
	}
	phase := math.Mod(r.DashPhase, total)
	if phase < 0 {
		phase += total
	}

	r.dashed = r.dashed[:0]
	for _, l := range lines {
		idx := 0
		ph := phase
		for ph >= pattern[idx] && ph > 0 {
			ph -= pattern[idx]
			idx = (idx + 1) % len(pattern)
		}
		rem := pattern[idx] - ph
		on := idx%2 == 0

		startedOn := on
		first := len(r.dashed)
		toggled := false

		var cur []vec.Vec2
		if on {
			cur = []vec.Vec2{l.pts[0]}
		}
		for i := 1; i < len(l.pts); i++ {
			a, b := l.pts[i-1], l.pts[i]
			segLen := b.Sub(a).Length()
			pos := 0.0
			for segLen-pos > rem {
				pos += rem
				q := a.Add(b.Sub(a).Mul(pos / segLen))
				if on {
					r.dashed = append(r.dashed, polyline{pts: append(cur, q)})
					cur = nil
				} else {
					cur = []vec.Vec2{q}
				}
				on = !on
				toggled = true
				idx = (idx + 1) % len(pattern)
				rem = pattern[idx]
			}
			rem -= segLen - pos
			if on {
				cur = append(cur, b)
			}
		}

		switch {
		case !on || len(cur) == 0:
			// nothing pending
		case !toggled:
			r.dashed = append(r.dashed, polyline{pts: cur, closed: l.closed})
		case l.closed && startedOn && len(r.dashed) > first:
			// the last dash continues into the first one
			r.dashed[first].pts = append(cur, r.dashed[first].pts[1:]...)
		default:
			r.dashed = append(r.dashed, polyline{pts: cur})
		}
	}
	return r.dashed
}

// strokePolyline adds the outline pieces of l to r.pieces.
// d is half the stroke width.
func (r *Rasteriser) strokePolyline(l polyline, d float64) {
	pts := l.pts[:0:0]
	for _, p := range l.pts {
		if len(pts) == 0 || p.Sub(pts[len(pts)-1]).Length() >= zeroLengthThreshold {
			pts = append(pts, p)
		}
	}
	n := len(pts)
	if n == 0 {
		return
	}
	if n == 1 {
		// zero length subpaths have no direction, only round caps show
		if r.Cap == graphics.LineCapRound {
			r.circle(pts[0], d)
		}
		return
	}

	for i := 1; i < n; i++ {
		r.segment(pts[i-1], pts[i], d)
	}
	for i := 1; i < n-1; i++ {
		r.join(pts[i-1], pts[i], pts[i+1], d)
	}
	if l.closed && n > 2 {
		r.join(pts[n-2], pts[0], pts[1], d)
		return
	}
	r.cap(pts[0], unit(pts[0].Sub(pts[1])), d)
	r.cap(pts[n-1], unit(pts[n-1].Sub(pts[n-2])), d)
}

func (r *Rasteriser) piece(pts ...vec.Vec2) {
	r.pieces = append(r.pieces, pts...)
	r.pieceEnds = append(r.pieceEnds, len(r.pieces))
}

// segment adds the rectangle covering the segment a-b.
func (r *Rasteriser) segment(a, b vec.Vec2, d float64) {
	n := normal(unit(b.Sub(a))).Mul(d)
	r.piece(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

// join adds the corner piece at p, where the path turns from a-p to p-b.
func (r *Rasteriser) join(a, p, b vec.Vec2, d float64) {
	t1 := unit(p.Sub(a))
	t2 := unit(b.Sub(p))
	sin := t1.X*t2.Y - t1.Y*t2.X
	cos := t1.Dot(t2)
	if math.Abs(sin) < collinearityThreshold && cos > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.circle(p, d)
		return
	}
	if math.Abs(sin) < collinearityThreshold {
		// the path reverses, a bevel has no area
		return
	}

	// the outer side of the corner is opposite to the turn
	s := -1.0
	if sin < 0 {
		s = 1
	}
	n1 := normal(t1).Mul(s * d)
	n2 := normal(t2).Mul(s * d)

	if r.Join == graphics.LineJoinMiter {
		sinHalf := math.Sqrt((1 + cos) / 2)
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+1e-10 {
			tip := p.Add(unit(n1.Add(n2)).Mul(d / sinHalf))
			r.piece(p, p.Add(n1), tip, p.Add(n2))
			return
		}
	}
	r.piece(p, p.Add(n1), p.Add(n2))
}

// cap adds the end piece at p.  dir is the unit vector pointing away from
// the line.
func (r *Rasteriser) cap(p, dir vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.circle(p, d)
	case graphics.LineCapSquare:
		n := normal(dir).Mul(d)
		ext := dir.Mul(d)
		r.piece(p.Add(n), p.Add(n).Add(ext), p.Sub(n).Add(ext), p.Sub(n))
	}
}

// circle adds a polygon approximating the circle around c.  The number of
// vertices depends on the radius in device space.
func (r *Rasteriser) circle(c vec.Vec2, radius float64) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())

	n := 8
	if devRadius > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		n = max(n, int(math.Ceil(2*math.Pi/step)))
	}
	start := len(r.pieces)
	for i := range n {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		r.pieces = append(r.pieces, vec.Vec2{X: c.X + radius*cos, Y: c.Y + radius*sin})
	}
	if len(r.pieces) > start {
		r.pieceEnds = append(r.pieceEnds, len(r.pieces))
	}
}

// normal returns t turned by 90 degrees counter-clockwise.
func normal(t vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -t.Y, Y: t.X}
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// signedArea returns twice the signed area of the polygon.
func signedArea(poly []vec.Vec2) float64 {
	a := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a
}
