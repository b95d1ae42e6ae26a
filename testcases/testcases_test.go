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

package testcases

import (
	"context"
	"image"
	"math"
	"regexp"
	"testing"

	"seehuhn.de/go/whiteboard"
	"seehuhn.de/go/whiteboard/raster"
)

var validName = regexp.MustCompile(`^[a-z_]+$`)

func TestScenarios(t *testing.T) {
	ctx := context.Background()
	seen := make(map[string]bool)
	for category, cases := range All {
		for _, sc := range cases {
			name := category + "_" + sc.Name
			if !validName.MatchString(sc.Name) {
				t.Errorf("%s: invalid name", name)
			}
			if seen[name] {
				t.Errorf("%s: duplicate name", name)
			}
			seen[name] = true

			t.Run(name, func(t *testing.T) {
				b, err := NewBoard(ctx, sc)
				if err != nil {
					t.Fatal(err)
				}
				if err := Run(ctx, b, sc); err != nil {
					t.Fatal(err)
				}
				if got := live(b); got != sc.Want {
					t.Errorf("got %d elements, want %d", got, sc.Want)
				}
				if ctx := b.Context(); ctx.Busy() {
					t.Error("gesture still in progress")
				}

				img := image.NewRGBA(image.Rect(0, 0, int(sc.Width), int(sc.Height)))
				if n := b.Render(raster.NewCanvas(img)); n > sc.Want {
					t.Errorf("rendered %d elements, want at most %d", n, sc.Want)
				}

				if check := checks[name]; check != nil {
					check(t, b)
				}
			})
		}
	}
}

func live(b *whiteboard.Board) int {
	n := 0
	for _, e := range b.Elements() {
		if !e.IsDelete {
			n++
		}
	}
	return n
}

const eps = 1e-9

var checks = map[string]func(*testing.T, *whiteboard.Board){
	"select_move": func(t *testing.T, b *whiteboard.Board) {
		e := b.Elements()[0]
		if math.Abs(e.X-250) > eps || math.Abs(e.Y-250) > eps {
			t.Errorf("anchor (%g, %g), want (250, 250)", e.X, e.Y)
		}
	},
	"select_resize_right": func(t *testing.T, b *whiteboard.Board) {
		box := b.Elements()[0].Bounds()
		if math.Abs(box.MinX-100) > eps || math.Abs(box.MaxX-400) > eps {
			t.Errorf("bounds x [%g, %g], want [100, 400]", box.MinX, box.MaxX)
		}
	},
	"select_resize_corner": func(t *testing.T, b *whiteboard.Board) {
		box := b.Elements()[0].Bounds()
		if math.Abs(box.MaxX-500) > eps || math.Abs(box.MaxY-400) > eps {
			t.Errorf("bounds max (%g, %g), want (500, 400)", box.MaxX, box.MaxY)
		}
		if math.Abs(box.MinX-100) > eps || math.Abs(box.MinY-100) > eps {
			t.Errorf("bounds min (%g, %g), want (100, 100)", box.MinX, box.MinY)
		}
	},
	"select_resize_flip": func(t *testing.T, b *whiteboard.Board) {
		e := b.Elements()[0]
		if e.Width >= 0 {
			t.Errorf("width %g, want negative", e.Width)
		}
		box := e.Bounds()
		if math.Abs(box.MaxX-100) > eps {
			t.Errorf("fixed edge moved to %g", box.MaxX)
		}
	},
	"select_rotate": func(t *testing.T, b *whiteboard.Board) {
		if a := b.Elements()[0].Angle; math.Abs(a-3*math.Pi/4) > 1e-9 {
			t.Errorf("angle %g, want 3π/4", a)
		}
	},
	"select_restyle": func(t *testing.T, b *whiteboard.Board) {
		e := b.Elements()[0]
		if e.StrokeColor != "#2f9e44" || e.LineWidth != 10 {
			t.Errorf("style %s/%g", e.StrokeColor, e.LineWidth)
		}
	},
	"view_pan": func(t *testing.T, b *whiteboard.Board) {
		v := b.View()
		if v.ScrollX != -100 || v.ScrollY != -50 {
			t.Errorf("scroll (%g, %g), want (-100, -50)", v.ScrollX, v.ScrollY)
		}
	},
	"history_branch": func(t *testing.T, b *whiteboard.Board) {
		if keys := b.History().Keys(); len(keys) != 2 {
			t.Errorf("%d snapshots, want 2", len(keys))
		}
	},
}
