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

var historyCases = []Scenario{
	{
		Name:   "undo_redo",
		Width:  800,
		Height: 600,
		Steps: concat(
			gesture(wave(100, 100, 500, 30, 30)...),
			gesture(wave(100, 250, 500, 30, 30)...),
			gesture(wave(100, 400, 500, 30, 30)...),
			[]Step{Undo{}, Undo{}, Redo{}},
		),
		Want: 2,
	},
	{
		Name:   "branch",
		Width:  800,
		Height: 600,
		Steps: concat(
			gesture(wave(100, 100, 500, 30, 30)...),
			gesture(wave(100, 250, 500, 30, 30)...),
			[]Step{Undo{}},
			gesture(line(100, 450, 600, 500)...),
			[]Step{Redo{}},
		),
		Want: 2,
	},
	{
		Name:   "clear_undo",
		Width:  800,
		Height: 600,
		Steps: concat(
			gesture(wave(100, 100, 500, 30, 30)...),
			gesture(wave(100, 250, 500, 30, 30)...),
			[]Step{Clear{}, Undo{}},
		),
		Want: 2,
	},
	{
		Name:   "undo_all",
		Width:  800,
		Height: 600,
		Steps:  concat(gesture(wave(100, 100, 500, 30, 30)...), []Step{Undo{}, Undo{}}),
		Want:   0,
	},
}
