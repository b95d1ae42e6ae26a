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

import "math"

var penCases = []Scenario{
	{
		Name:   "wave",
		Width:  800,
		Height: 600,
		Steps:  gesture(wave(100, 300, 600, 80, 60)...),
		Want:   1,
	},
	{
		Name:   "dot",
		Width:  800,
		Height: 600,
		Steps:  click(400, 300),
		Want:   1,
	},
	{
		Name:   "styles",
		Width:  800,
		Height: 600,
		Steps: concat(
			[]Step{Style{LineWidth: 12, Color: "#e03131"}},
			gesture(wave(100, 150, 600, 40, 40)...),
			[]Step{Style{LineWidth: 2, Color: "#1971c2"}},
			gesture(arc(400, 380, 150, 0, 2*math.Pi, 72)...),
			[]Step{Style{Color: "darkgreen"}},
			gesture(line(150, 550, 650, 450)...),
		),
		Want: 3,
	},
	{
		Name:   "cancelled",
		Width:  800,
		Height: 600,
		Steps: []Step{
			Down{100, 100},
			Move{200, 150},
			Move{300, 100},
			Cancel{},
		},
		Want: 0,
	},
	{
		Name:   "zoomed",
		Width:  800,
		Height: 600,
		Steps: concat(
			[]Step{Wheel{400, 300, -10}, Wheel{400, 300, -10}, Wheel{400, 300, -10}},
			gesture(arc(400, 300, 100, math.Pi, 3*math.Pi, 60)...),
		),
		Want: 1,
	},
}
