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

package render

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// TransformStack tracks the current transformation matrix of a painter
// together with the matrices saved by Push.
//
// Operations follow the convention of immediate-mode canvases: each call
// modifies user space, so that the most recent operation is applied to a
// point first.
type TransformStack struct {
	// CTM maps user space to device space.
	CTM matrix.Matrix

	saved []matrix.Matrix
}

// NewTransformStack returns a stack holding the identity transformation.
func NewTransformStack() *TransformStack {
	return &TransformStack{CTM: matrix.Identity}
}

// Reset drops all saved matrices and restores the identity.
func (s *TransformStack) Reset() {
	s.CTM = matrix.Identity
	s.saved = s.saved[:0]
}

// Push saves the current matrix.
func (s *TransformStack) Push() {
	s.saved = append(s.saved, s.CTM)
}

// Pop restores the most recently saved matrix.  It reports false, and leaves
// the matrix unchanged, if nothing was saved.
func (s *TransformStack) Pop() bool {
	n := len(s.saved)
	if n == 0 {
		return false
	}
	s.CTM = s.saved[n-1]
	s.saved = s.saved[:n-1]
	return true
}

// Depth returns the number of saved matrices.
func (s *TransformStack) Depth() int {
	return len(s.saved)
}

// Concat prepends m to the current transformation: user space points are
// mapped by m first and then by the previous CTM.
func (s *TransformStack) Concat(m matrix.Matrix) {
	s.CTM = compose(m, s.CTM)
}

// Scale scales user space by (sx, sy).
func (s *TransformStack) Scale(sx, sy float64) {
	s.Concat(matrix.Matrix{sx, 0, 0, sy, 0, 0})
}

// Translate moves the user space origin to (dx, dy).
func (s *TransformStack) Translate(dx, dy float64) {
	s.Concat(matrix.Matrix{1, 0, 0, 1, dx, dy})
}

// Rotate turns user space by angle radians.  With the y axis pointing
// down, positive angles turn clockwise on screen.
func (s *TransformStack) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	s.Concat(matrix.Matrix{cos, sin, -sin, cos, 0, 0})
}

// Apply maps a user space point to device space.
func (s *TransformStack) Apply(p vec.Vec2) vec.Vec2 {
	return apply(s.CTM, p)
}

// LineScale returns the factor by which the current transformation scales
// lengths, averaged over all directions.
func (s *TransformStack) LineScale() float64 {
	m := s.CTM
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// compose returns the matrix which applies a first and then b.
func compose(a, b matrix.Matrix) matrix.Matrix {
	return matrix.Matrix{
		a[0]*b[0] + a[1]*b[2],
		a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2],
		a[2]*b[1] + a[3]*b[3],
		a[4]*b[0] + a[5]*b[2] + b[4],
		a[4]*b[1] + a[5]*b[3] + b[5],
	}
}

func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
