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

package freehand

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard/geometry"
)

func line(n int, dx, dy float64) []vec.Vec2 {
	pts := make([]vec.Vec2, n)
	for i := range pts {
		pts[i] = vec.Vec2{X: float64(i) * dx, Y: float64(i) * dy}
	}
	return pts
}

func TestOutlineEmpty(t *testing.T) {
	if got := Outline(nil, DefaultOptions(5)); len(got) != 0 {
		t.Errorf("no points: got %d outline points", len(got))
	}
	if got := Outline(line(10, 1, 0), DefaultOptions(0)); len(got) != 0 {
		t.Errorf("zero size: got %d outline points", len(got))
	}
}

func TestOutlineEnclosesStroke(t *testing.T) {
	const size = 8
	pts := line(50, 2, 0)
	outline := Outline(pts, DefaultOptions(size))
	if len(outline) < 10 {
		t.Fatalf("outline has only %d points", len(outline))
	}

	box := geometry.Bounds(outline)
	input := geometry.Bounds(pts)
	if box.MinX > input.MinX || box.MaxX < input.MaxX {
		t.Errorf("outline %v does not cover the stroke %v", box, input)
	}
	// the outline is at most one stroke width away from the centre line
	if box.MinY < -size || box.MaxY > size {
		t.Errorf("outline too wide: %v", box)
	}
	if box.Dy() < size/4 {
		t.Errorf("outline too thin: %v", box)
	}
	for _, p := range outline {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("NaN in outline")
		}
	}
}

func TestOutlineDot(t *testing.T) {
	// a finished single-point stroke, as produced by the element store
	pts := []vec.Vec2{{}, {X: 0.01, Y: 0.01}}
	outline := Outline(pts, DefaultOptions(10))
	if len(outline) == 0 {
		t.Fatal("a dot has no outline")
	}
	box := geometry.Bounds(outline)
	if box.Dx() < 1 || box.Dy() < 1 {
		t.Errorf("dot outline too small: %v", box)
	}
	if box.Dx() > 20 || box.Dy() > 20 {
		t.Errorf("dot outline too large: %v", box)
	}
}

func TestOutlineTurnAround(t *testing.T) {
	// out and straight back again
	var pts []vec.Vec2
	for i := 0; i <= 20; i++ {
		pts = append(pts, vec.Vec2{X: float64(i) * 3})
	}
	for i := 19; i >= 0; i-- {
		pts = append(pts, vec.Vec2{X: float64(i) * 3})
	}
	outline := Outline(pts, DefaultOptions(6))
	box := geometry.Bounds(outline)
	if box.MaxX < 58 {
		t.Errorf("turning point cut off: %v", box)
	}
}

func TestStreamline(t *testing.T) {
	pts := []vec.Vec2{{}, {X: 100}, {X: 100, Y: 100}}
	opt := DefaultOptions(1)

	sp := strokePoints(pts, opt)
	if len(sp) == 0 {
		t.Fatal("no stroke points")
	}
	if sp[len(sp)-1].point != pts[2] {
		t.Errorf("last point %v, want %v", sp[len(sp)-1].point, pts[2])
	}

	opt.Last = false
	sp = strokePoints(pts, opt)
	if sp[len(sp)-1].point == pts[2] {
		t.Error("unfinished stroke reached the last input point")
	}
}

func TestPath(t *testing.T) {
	outline := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	p := Path(outline)

	wantCmds := []path.Command{
		path.CmdMoveTo,
		path.CmdQuadTo, path.CmdQuadTo, path.CmdQuadTo, path.CmdQuadTo,
		path.CmdLineTo,
		path.CmdClose,
	}
	if len(p.Cmds) != len(wantCmds) {
		t.Fatalf("got %d commands, want %d", len(p.Cmds), len(wantCmds))
	}
	for i, c := range wantCmds {
		if p.Cmds[i] != c {
			t.Errorf("command %d: got %v, want %v", i, p.Cmds[i], c)
		}
	}
	if len(p.Coords) != 1+2*len(outline)+1 {
		t.Fatalf("got %d coordinates", len(p.Coords))
	}

	// the last curve ends halfway back to the start
	if got, want := p.Coords[len(p.Coords)-2], (vec.Vec2{X: 0, Y: 5}); got != want {
		t.Errorf("last curve ends at %v, want %v", got, want)
	}
	if got := Path(nil); len(got.Cmds) != 0 {
		t.Errorf("empty outline gives %d commands", len(got.Cmds))
	}
}

func TestOutliner(t *testing.T) {
	var o Outliner
	p := o.Outline(line(20, 1, 1), 5)
	if len(p.Cmds) == 0 || p.Cmds[0] != path.CmdMoveTo || p.Cmds[len(p.Cmds)-1] != path.CmdClose {
		t.Errorf("unexpected path structure %v", p.Cmds)
	}
}
