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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 5.0, c.Pen.LineWidth)
	assert.Equal(t, "#000000", c.Pen.StrokeColor)
	assert.Equal(t, 300*time.Millisecond, c.History.Debounce.Duration)
}

func TestParse(t *testing.T) {
	c, err := Parse(`
listen = "127.0.0.1:9000"
log_level = "debug"

[canvas]
width = 640
dpr = 2

[pen]
stroke_color = "#ff0000"

[history]
debounce = "1s"
`)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", c.Listen)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 640.0, c.Canvas.Width)
	assert.Equal(t, 800.0, c.Canvas.Height, "default kept")
	assert.Equal(t, 2.0, c.Canvas.DPR)
	assert.Equal(t, "#ff0000", c.Style().StrokeColor)
	assert.Equal(t, 5.0, c.Style().LineWidth)
	assert.Equal(t, time.Second, c.History.Debounce.Duration)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"undecoded": "colour = \"red\"\n",
		"syntax":    "listen = \n",
		"duration":  "[history]\ndebounce = \"soon\"\n",
		"range":     "[canvas]\nwidth = -1\n",
		"dpr":       "[canvas]\ndpr = 0\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(text)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "board.toml")
	require.NoError(t, os.WriteFile(fileName, []byte("database = \"/tmp/x.db\"\n"), 0o644))

	c, err := LoadFile(fileName)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", c.Database)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
