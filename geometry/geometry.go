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

// Package geometry implements the stateless planar geometry used by the
// whiteboard: rotation about a pivot, bounding boxes, cross products and
// segment intersection.
//
// All coordinates use the canvas convention where y grows downwards.
// A positive angle therefore turns clockwise on screen.
package geometry

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// RotatePoint rotates p about pivot by angle radians.
func RotatePoint(p, pivot vec.Vec2, angle float64) vec.Vec2 {
	if angle == 0 {
		return p
	}
	sin, cos := math.Sincos(angle)
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return vec.Vec2{
		X: dx*cos - dy*sin + pivot.X,
		Y: dx*sin + dy*cos + pivot.Y,
	}
}

// NormalizeAngle maps an angle in radians to the interval [0, 2π).
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		// math.Mod of a tiny negative value can round up to 2π.
		a = 0
	}
	return a
}

// Cross returns the z component of the cross product v1 × v2.
// The sign gives the rotational orientation from v1 to v2.
func Cross(v1, v2 vec.Vec2) float64 {
	return v1.X*v2.Y - v1.Y*v2.X
}

// SegmentsIntersect reports whether the segments AB and CD cross.
//
// The test is strict: C and D must lie on opposite sides of the line AB,
// and A and B must lie on opposite sides of the line CD.  Segments that
// only touch, share an endpoint, or are collinear do not intersect.
func SegmentsIntersect(a, b, c, d vec.Vec2) bool {
	ab := b.Sub(a)
	if Cross(ab, c.Sub(a))*Cross(ab, d.Sub(a)) >= 0 {
		return false
	}
	cd := d.Sub(c)
	return Cross(cd, a.Sub(c))*Cross(cd, b.Sub(c)) < 0
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q vec.Vec2) float64 {
	return q.Sub(p).Length()
}

// SegmentDistanceApprox returns |PA| + |PB| - |AB|.
//
// The value is zero on the segment and grows with the distance from it.
// For short segments it approximates twice the distance to the segment's
// midpoint, which makes it tolerant of the densely sampled points of a
// freehand stroke.
func SegmentDistanceApprox(p, a, b vec.Vec2) float64 {
	return Distance(p, a) + Distance(p, b) - Distance(a, b)
}
