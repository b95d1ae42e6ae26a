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

import "seehuhn.de/go/whiteboard"

var eraserTool = []Step{Tool{whiteboard.ToolEraser}}

var eraserCases = []Scenario{
	{
		Name:   "cross",
		Width:  800,
		Height: 600,
		Steps: concat(
			gesture(wave(100, 100, 300, 20, 40)...),
			gesture(wave(100, 200, 300, 20, 40)...),
			gesture(wave(100, 300, 300, 20, 40)...),
			eraserTool,
			gesture(pt(252, 50), pt(252, 150), pt(252, 250)),
		),
		Want: 1,
	},
	{
		Name:   "dot",
		Width:  800,
		Height: 600,
		Steps:  concat(click(400, 400), eraserTool, click(402, 401)),
		Want:   0,
	},
	{
		Name:   "miss",
		Width:  800,
		Height: 600,
		Steps:  concat(gesture(wave(100, 100, 300, 20, 40)...), eraserTool, gesture(pt(500, 500), pt(600, 550))),
		Want:   1,
	},
	{
		Name:   "cancelled",
		Width:  800,
		Height: 600,
		Steps: concat(
			gesture(wave(100, 100, 300, 20, 40)...),
			eraserTool,
			[]Step{Down{252, 50}, Move{252, 150}, Cancel{}},
		),
		Want: 1,
	},
}
