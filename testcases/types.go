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

// Package testcases holds scripted whiteboard sessions.  Each scenario is a
// list of input steps which is replayed on a fresh board; the scenarios are
// used by the package tests and by the export tool.
package testcases

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard"
	"seehuhn.de/go/whiteboard/history"
	"seehuhn.de/go/whiteboard/snapshot"
)

// Scenario is a scripted session.
type Scenario struct {
	Name   string  // lowercase a-z and _ only
	Width  float64 // surface width in CSS pixels
	Height float64 // surface height in CSS pixels
	Steps  []Step

	// Want is the number of elements on the board after the last step.
	Want int
}

// Step is one input action.
type Step interface {
	isStep()
}

// Down, Move and Up are pointer events in client coordinates.  Every Move
// is followed by a frame tick.
type Down struct{ X, Y float64 }
type Move struct{ X, Y float64 }
type Up struct{ X, Y float64 }

// Cancel aborts the gesture in progress.
type Cancel struct{}

// Wheel is a vertical wheel event at (X, Y).
type Wheel struct{ X, Y, DY float64 }

// Key presses or releases a key.
type Key struct {
	Key     string
	Release bool
}

// Tool switches the active tool.
type Tool struct{ Tool whiteboard.Tool }

// Style sets the pen defaults.  Zero values are left unchanged.
type Style struct {
	LineWidth float64
	Color     string
}

type Undo struct{}
type Redo struct{}
type Clear struct{}
type Delete struct{}

func (Down) isStep()   {}
func (Move) isStep()   {}
func (Up) isStep()     {}
func (Cancel) isStep() {}
func (Wheel) isStep()  {}
func (Key) isStep()    {}
func (Tool) isStep()   {}
func (Style) isStep()  {}
func (Undo) isStep()   {}
func (Redo) isStep()   {}
func (Clear) isStep()  {}
func (Delete) isStep() {}

// NewBoard returns an empty board for sc.  The board has an in-memory
// history which records every commit immediately.
func NewBoard(ctx context.Context, sc Scenario) (*whiteboard.Board, error) {
	h := history.New(snapshot.NewMemory(), &history.Options{Debounce: -1})
	if _, err := h.Load(ctx); err != nil {
		return nil, err
	}
	return whiteboard.New(&whiteboard.Options{
		Width:   sc.Width,
		Height:  sc.Height,
		History: h,
	}), nil
}

// Run replays the steps of sc on b.
func Run(ctx context.Context, b *whiteboard.Board, sc Scenario) error {
	for i, step := range sc.Steps {
		switch s := step.(type) {
		case Down:
			b.PointerDown(s.X, s.Y)
		case Move:
			b.PointerMove(s.X, s.Y)
			b.Tick()
		case Up:
			b.PointerUp(s.X, s.Y)
		case Cancel:
			b.PointerCancel()
		case Wheel:
			b.Wheel(s.X, s.Y, s.DY)
		case Key:
			if s.Release {
				b.KeyUp(s.Key)
			} else {
				b.KeyDown(s.Key)
			}
		case Tool:
			b.SetTool(s.Tool)
		case Style:
			if s.LineWidth > 0 {
				b.SetLineWidth(s.LineWidth)
			}
			if s.Color != "" {
				if err := b.SetStrokeColor(s.Color); err != nil {
					return errors.Wrapf(err, "%s: step %d", sc.Name, i)
				}
			}
		case Undo:
			b.Undo(ctx)
		case Redo:
			b.Redo(ctx)
		case Clear:
			b.Clear()
		case Delete:
			b.Delete()
		default:
			return errors.Errorf("%s: step %d: unknown step %T", sc.Name, i, step)
		}
	}
	return nil
}

// gesture returns a pointer gesture through pts.
func gesture(pts ...vec.Vec2) []Step {
	steps := make([]Step, 0, len(pts)+1)
	steps = append(steps, Down{pts[0].X, pts[0].Y})
	for _, p := range pts[1:] {
		steps = append(steps, Move{p.X, p.Y})
	}
	last := pts[len(pts)-1]
	return append(steps, Up{last.X, last.Y})
}

// click returns a pointer press and release at (x, y).
func click(x, y float64) []Step {
	return []Step{Down{x, y}, Up{x, y}}
}

// wave samples a sine wave starting at (x, y).
func wave(x, y, length, amp float64, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		t := float64(i) / float64(n)
		pts[i] = vec.Vec2{
			X: x + t*length,
			Y: y + amp*math.Sin(2*math.Pi*t),
		}
	}
	return pts
}

// arc samples a circular arc about (cx, cy) from angle a0 to a1.
func arc(cx, cy, r, a0, a1 float64, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		pts[i] = vec.Vec2{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}

func line(x0, y0, x1, y1 float64) []vec.Vec2 {
	return []vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y1}}
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// concat joins step lists.
func concat(parts ...[]Step) []Step {
	var res []Step
	for _, p := range parts {
		res = append(res, p...)
	}
	return res
}
