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

var viewCases = []Scenario{
	{
		Name:   "pan",
		Width:  800,
		Height: 600,
		Steps: concat(
			gesture(wave(300, 300, 200, 30, 20)...),
			[]Step{Tool{whiteboard.ToolPan}},
			gesture(pt(400, 300), pt(350, 280), pt(300, 250)),
			[]Step{Tool{whiteboard.ToolPen}},
			gesture(wave(300, 300, 200, 30, 20)...),
		),
		Want: 2,
	},
	{
		Name:   "space_pan",
		Width:  800,
		Height: 600,
		Steps: concat(
			[]Step{Key{Key: " "}},
			gesture(pt(400, 300), pt(450, 350)),
			[]Step{Key{Key: " ", Release: true}},
			gesture(wave(300, 300, 200, 30, 20)...),
		),
		Want: 1,
	},
	{
		Name:   "zoom",
		Width:  800,
		Height: 600,
		Steps: concat(
			[]Step{Wheel{200, 200, -10}, Wheel{200, 200, -10}, Wheel{200, 200, -10}, Wheel{200, 200, -10}},
			gesture(wave(100, 200, 300, 40, 30)...),
			[]Step{Wheel{600, 400, 10}, Wheel{600, 400, 10}, Wheel{600, 400, 10}},
			gesture(wave(400, 400, 300, 40, 30)...),
		),
		Want: 2,
	},
}
