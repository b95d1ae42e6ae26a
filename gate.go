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

package whiteboard

// FrameGate runs a scheduled function at most once per frame tick.
//
// Scheduling replaces any function which is still waiting, so that only the
// latest request of a frame is applied.  The zero value is ready to use.
type FrameGate struct {
	pending func()
}

// Schedule arranges for fn to run at the next tick.
func (g *FrameGate) Schedule(fn func()) {
	g.pending = fn
}

// Tick runs the waiting function, if any.  It reports whether a function
// was run.
func (g *FrameGate) Tick() bool {
	fn := g.pending
	if fn == nil {
		return false
	}
	g.pending = nil
	fn()
	return true
}

// Flush runs the waiting function immediately, without waiting for the
// next tick.
func (g *FrameGate) Flush() bool {
	return g.Tick()
}

// Cancel drops the waiting function without running it.
func (g *FrameGate) Cancel() bool {
	ok := g.pending != nil
	g.pending = nil
	return ok
}

// Pending reports whether a function is waiting.
func (g *FrameGate) Pending() bool {
	return g.pending != nil
}
