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

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/whiteboard"
	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/history"
	"seehuhn.de/go/whiteboard/metrics"
	"seehuhn.de/go/whiteboard/snapshot"
)

// stroke draws a horizontal line.  Both moves fall into the same frame, so
// only the second one is applied.
const stroke = `[
	{"kind": "down", "x": 100, "y": 100},
	{"kind": "move", "x": 150, "y": 120},
	{"kind": "move", "x": 200, "y": 100},
	{"kind": "up", "x": 200, "y": 100}
]`

func newServer(t *testing.T) *Server {
	t.Helper()
	m := history.New(snapshot.NewMemory(), &history.Options{Debounce: -1})
	_, err := m.Load(context.Background())
	require.NoError(t, err)
	board := whiteboard.New(&whiteboard.Options{Width: 400, Height: 300, History: m})

	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg))
	return New(board, &Options{Gatherer: reg})
}

func request(t *testing.T, s *Server, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, data
}

func requestState(t *testing.T, s *Server, method, target, body string) *State {
	t.Helper()
	resp, data := request(t, s, method, target, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	st := &State{}
	require.NoError(t, json.Unmarshal(data, st))
	return st
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	resp, data := request(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "ok"}`, string(data))
}

func TestEvents(t *testing.T) {
	s := newServer(t)

	st := requestState(t, s, http.MethodPost, "/events", stroke)
	assert.Equal(t, 1, st.Elements)
	assert.Equal(t, "pen", st.Tool)
	assert.Equal(t, 0, st.HistoryCursor)
	assert.True(t, st.CanUndo)
	assert.False(t, st.CanRedo)

	st = requestState(t, s, http.MethodPost, "/events", `[{"kind": "wheel", "x": 0, "y": 0, "dy": -10}]`)
	assert.InDelta(t, 1.1, st.Zoom, 1e-12)
}

func TestEventsInvalid(t *testing.T) {
	s := newServer(t)

	resp, data := request(t, s, http.MethodPost, "/events", `[{"kind": "down"}, {"kind": "jump"}]`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(data), "jump")
	ctx := s.board.Context()
	assert.False(t, ctx.Busy(), "partial batch was applied")

	resp, _ = request(t, s, http.MethodPost, "/events", `{"kind":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTool(t *testing.T) {
	s := newServer(t)

	st := requestState(t, s, http.MethodPut, "/tool", `{"tool": "select", "strokeColor": "red", "lineWidth": 3}`)
	assert.Equal(t, "select", st.Tool)
	assert.Equal(t, "#ff0000", st.StrokeColor)
	assert.Equal(t, 3.0, st.LineWidth)

	for _, body := range []string{`{"tool": "lasso"}`, `{"strokeColor": "#1234"}`, `{"lineWidth": -1}`} {
		resp, _ := request(t, s, http.MethodPut, "/tool", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestElements(t *testing.T) {
	s := newServer(t)
	requestState(t, s, http.MethodPost, "/events", stroke)

	resp, data := request(t, s, http.MethodGet, "/elements", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var elems []element.Element
	require.NoError(t, json.Unmarshal(data, &elems))
	require.Len(t, elems, 1)
	assert.Equal(t, 100.0, elems[0].X)
	assert.Equal(t, []vec.Vec2{{}, {X: 100}}, elems[0].Points)

	resp, data = request(t, s, http.MethodGet, "/elements/"+elems[0].ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var e element.Element
	require.NoError(t, json.Unmarshal(data, &e))
	assert.Equal(t, elems[0].ID, e.ID)

	resp, data = request(t, s, http.MethodGet, "/elements/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(data), `"error"`)
}

func TestSelectionAndHistory(t *testing.T) {
	s := newServer(t)
	requestState(t, s, http.MethodPost, "/events", stroke)
	requestState(t, s, http.MethodPut, "/tool", `{"tool": "select"}`)

	st := requestState(t, s, http.MethodPost, "/events", `[
		{"kind": "down", "x": 150, "y": 100},
		{"kind": "up", "x": 150, "y": 100}
	]`)
	require.NotEmpty(t, st.Selected)

	st = requestState(t, s, http.MethodDelete, "/selection", "")
	assert.Equal(t, 0, st.Elements)
	assert.Empty(t, st.Selected)
	resp, _ := request(t, s, http.MethodDelete, "/selection", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	st = requestState(t, s, http.MethodPost, "/undo", "")
	assert.Equal(t, 1, st.Elements)
	assert.True(t, st.CanRedo)
	st = requestState(t, s, http.MethodPost, "/redo", "")
	assert.Equal(t, 0, st.Elements)

	requestState(t, s, http.MethodPost, "/events", `[{"kind": "wheel", "x": 0, "y": 0, "dy": -10}]`)
	st = requestState(t, s, http.MethodPost, "/clear", "")
	assert.Equal(t, 1.0, st.Zoom)
	assert.Equal(t, element.DefaultStyle.StrokeColor, st.StrokeColor)
}

func TestFrame(t *testing.T) {
	s := newServer(t)
	requestState(t, s, http.MethodPost, "/events", stroke)

	resp, data := request(t, s, http.MethodGet, "/frame.png", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())

	// the stroke is drawn in black on white
	r, g, b, _ := img.At(150, 100).RGBA()
	assert.Less(t, r+g+b, uint32(3*0x8000))
	r, g, b, _ = img.At(10, 250).RGBA()
	assert.Equal(t, uint32(3*0xffff), r+g+b)

	resp, data = request(t, s, http.MethodGet, "/frame.png?width=100", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	img, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 75, img.Bounds().Dy())

	resp, _ = request(t, s, http.MethodGet, "/frame.png?width=-5", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPDF(t *testing.T) {
	s := newServer(t)
	requestState(t, s, http.MethodPost, "/events", stroke)

	resp, data := request(t, s, http.MethodGet, "/export.pdf", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestMetrics(t *testing.T) {
	s := newServer(t)
	requestState(t, s, http.MethodPost, "/events", stroke)
	request(t, s, http.MethodGet, "/frame.png", "")

	resp, data := request(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "whiteboard_frames_rendered_total")
	assert.Contains(t, string(data), `whiteboard_events_total{kind="down"}`)
}
