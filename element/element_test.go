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

package element

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

func stroke(s *Store, x, y float64, pts ...vec.Vec2) *Element {
	e := s.Create(KindPen, vec.Vec2{X: x, Y: y}, DefaultStyle)
	for _, p := range pts {
		s.Update(e, AppendPoint{P: p})
	}
	s.Update(e, Finish{})
	return e
}

func TestCreate(t *testing.T) {
	s := NewStore()
	a := s.Create(KindPen, vec.Vec2{X: 3, Y: 4}, Style{LineWidth: 2, StrokeColor: "#ff0000"})
	b := s.Create(KindPen, vec.Vec2{}, DefaultStyle)

	require.Equal(t, 2, s.Len())
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, KindPen, a.Type)
	assert.Equal(t, []vec.Vec2{{}}, a.Points)
	assert.Equal(t, 0.0, a.Width)
	assert.Equal(t, 0.0, a.Height)
	assert.Equal(t, 2.0, a.LineWidth)
	assert.Equal(t, "#ff0000", a.StrokeColor)

	got, ok := s.FindByID(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = s.FindByID("missing")
	assert.False(t, ok)
}

func TestFinishWidensSinglePoint(t *testing.T) {
	s := NewStore()
	e := stroke(s, 10, 10)
	require.Len(t, e.Points, 2)
	assert.Equal(t, vec.Vec2{}, e.Points[0])
	assert.InDelta(t, dotOffset, e.Width, 1e-12)
	assert.InDelta(t, dotOffset, e.Height, 1e-12)
}

func TestExtentsFollowPoints(t *testing.T) {
	s := NewStore()
	e := stroke(s, 0, 0, vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 10, Y: -4})
	assert.Equal(t, 10.0, e.Width)
	assert.Equal(t, 4.0, e.Height)

	s.Update(e, Resize{
		X:      e.X,
		Y:      e.Y,
		Points: []vec.Vec2{{}, {X: 20, Y: 0}, {X: 20, Y: -4}},
		FlipX:  -1,
		FlipY:  1,
	})
	assert.Equal(t, -20.0, e.Width, "width carries the flip sign")
	assert.Equal(t, 4.0, e.Height)
}

func TestUpdateVariants(t *testing.T) {
	s := NewStore()
	e := stroke(s, 0, 0, vec.Vec2{X: 1, Y: 1})

	s.Update(e, Move{X: 7, Y: -3})
	assert.Equal(t, vec.Vec2{X: 7, Y: -3}, e.Anchor())

	s.Update(e, Rotate{Angle: -math.Pi / 2})
	assert.InDelta(t, 3*math.Pi/2, e.Angle, 1e-12)

	s.Update(e, SetStyle{StrokeColor: "#00ff00"})
	assert.Equal(t, "#00ff00", e.StrokeColor)
	assert.Equal(t, DefaultStyle.LineWidth, e.LineWidth)

	s.Update(e, MarkDeleted{})
	assert.True(t, e.IsDelete)
	s.Update(e, Unmark{})
	assert.False(t, e.IsDelete)

	s.Update(nil, MarkDeleted{}) // no-op
}

func TestCompactDeleted(t *testing.T) {
	s := NewStore()
	a := stroke(s, 0, 0, vec.Vec2{X: 1})
	b := stroke(s, 5, 5, vec.Vec2{X: 1})
	c := stroke(s, 9, 9, vec.Vec2{X: 1})
	s.Update(b, MarkDeleted{})
	s.Update(b, MarkDeleted{})

	assert.Len(t, s.Snapshot(), 2, "snapshots omit deleted elements")
	assert.Equal(t, 1, s.CompactDeleted())
	assert.Equal(t, []*Element{a, c}, s.Elements())
	assert.Equal(t, 0, s.CompactDeleted())
}

func TestSnapshotIsDeep(t *testing.T) {
	s := NewStore()
	e := stroke(s, 0, 0, vec.Vec2{X: 1, Y: 2})
	snap := s.Snapshot()

	e.Points[1] = vec.Vec2{X: 100, Y: 100}
	assert.Equal(t, vec.Vec2{X: 1, Y: 2}, snap[0].Points[1])

	s.Restore(snap)
	got, ok := s.FindByID(e.ID)
	require.True(t, ok)
	assert.NotSame(t, e, got)
	assert.Equal(t, vec.Vec2{X: 1, Y: 2}, got.Points[1])

	got.Points[1] = vec.Vec2{}
	assert.Equal(t, vec.Vec2{X: 1, Y: 2}, snap[0].Points[1], "restore copies")
}

func TestCanvasMapping(t *testing.T) {
	s := NewStore()
	e := stroke(s, 100, 50, vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 10, Y: 20})

	// unrotated and unmirrored, points are simply offset by the anchor
	assert.Equal(t, vec.Vec2{X: 110, Y: 70}, e.ToCanvas(vec.Vec2{X: 10, Y: 20}))

	s.Update(e, Rotate{Angle: 1.1})
	e.FlipX = -1
	for _, p := range e.Points {
		q := e.FromCanvas(e.ToCanvas(p))
		assert.InDelta(t, e.X+p.X, q.X, 1e-9)
		assert.InDelta(t, e.Y+p.Y, q.Y, 1e-9)
	}

	// mirroring and rotating about the centre keeps the centre in place
	c := e.Center()
	q := e.ToCanvas(c.Sub(e.Anchor()))
	assert.InDelta(t, c.X, q.X, 1e-9)
	assert.InDelta(t, c.Y, q.Y, 1e-9)
}

func TestRemoveAndClear(t *testing.T) {
	s := NewStore()
	a := stroke(s, 0, 0)
	b := stroke(s, 1, 1)
	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	assert.False(t, s.Contains(a))
	assert.True(t, s.Contains(b))
	s.Clear()
	assert.Equal(t, 0, s.Len())
}
