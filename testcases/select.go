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
	"math"

	"seehuhn.de/go/whiteboard"
)

// hook is an L-shaped stroke with bounds [100, 300] x [100, 200].
var hook = gesture(pt(100, 100), pt(200, 100), pt(300, 100), pt(300, 200))

var selectTool = []Step{Tool{whiteboard.ToolSelect}}

var selectCases = []Scenario{
	{
		Name:   "move",
		Width:  800,
		Height: 600,
		Steps:  concat(hook, selectTool, gesture(pt(200, 100), pt(260, 160), pt(350, 250))),
		Want:   1,
	},
	{
		Name:   "resize_right",
		Width:  800,
		Height: 600,
		Steps:  concat(hook, selectTool, click(200, 100), gesture(pt(304, 150), pt(404, 150))),
		Want:   1,
	},
	{
		Name:   "resize_corner",
		Width:  800,
		Height: 600,
		Steps:  concat(hook, selectTool, click(200, 100), gesture(pt(304, 204), pt(504, 404))),
		Want:   1,
	},
	{
		Name:   "resize_flip",
		Width:  800,
		Height: 600,
		Steps:  concat(hook, selectTool, click(200, 100), gesture(pt(304, 150), pt(150, 150), pt(40, 150))),
		Want:   1,
	},
	{
		Name:   "rotate",
		Width:  800,
		Height: 600,
		Steps: concat(hook, selectTool, click(200, 100),
			gesture(arc(200, 150, 70, -math.Pi/2, math.Pi/4, 12)...)),
		Want: 1,
	},
	{
		Name:   "rotate_resize",
		Width:  800,
		Height: 600,
		Steps: concat(hook, selectTool, click(200, 100),
			gesture(arc(200, 150, 70, -math.Pi/2, 0, 8)...),
			// after a quarter turn the right handle sits below the centre
			gesture(pt(200, 254), pt(200, 354))),
		Want: 1,
	},
	{
		Name:   "delete",
		Width:  800,
		Height: 600,
		Steps: concat(hook, gesture(wave(100, 400, 500, 30, 30)...),
			selectTool, click(200, 100), []Step{Delete{}}),
		Want: 1,
	},
	{
		Name:   "restyle",
		Width:  800,
		Height: 600,
		Steps: concat(hook, selectTool, click(200, 100),
			[]Step{Style{LineWidth: 10, Color: "#2f9e44"}}),
		Want: 1,
	},
}
