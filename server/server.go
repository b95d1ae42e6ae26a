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

// Package server exposes a whiteboard over HTTP.
//
// Input events are posted as JSON batches; frames can be fetched as PNG
// images and the whole board as a PDF document.  All handlers share one
// Board, and access to it is serialised by the server.
package server

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"seehuhn.de/go/whiteboard"
	"seehuhn.de/go/whiteboard/pdfexport"
)

// Options configure a Server.
type Options struct {
	Logger hclog.Logger

	// Gatherer provides the metrics served on /metrics.  The default is
	// prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// AccessLog enables the request log middleware.
	AccessLog bool

	// PDF holds the settings for /export.pdf.  If nil,
	// pdfexport.DefaultOptions is used.
	PDF *pdfexport.Options

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP front end of a single board.
type Server struct {
	app *fiber.App
	log hclog.Logger
	pdf *pdfexport.Options

	mu    sync.Mutex
	board *whiteboard.Board
}

// New returns a server for board.
func New(board *whiteboard.Board, opt *Options) *Server {
	if opt == nil {
		opt = &Options{}
	}
	s := &Server{
		board: board,
		log:   opt.Logger,
		pdf:   opt.PDF,
	}
	if s.log == nil {
		s.log = hclog.NewNullLogger()
	}
	s.log = s.log.Named("server")
	if s.pdf == nil {
		s.pdf = pdfexport.DefaultOptions()
	}
	gatherer := opt.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "whiteboard",
		ReadTimeout:  opt.ReadTimeout,
		WriteTimeout: opt.WriteTimeout,
		ErrorHandler: s.handleError,
	})

	s.app.Use(recover.New())
	if opt.AccessLog {
		s.app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}

	s.app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	s.app.Get("/state", s.locked(s.getState))
	s.app.Post("/events", s.locked(s.postEvents))
	s.app.Put("/tool", s.locked(s.putTool))
	s.app.Post("/undo", s.locked(s.postUndo))
	s.app.Post("/redo", s.locked(s.postRedo))
	s.app.Post("/clear", s.locked(s.postClear))
	s.app.Delete("/selection", s.locked(s.deleteSelection))

	s.app.Get("/elements", s.locked(s.getElements))
	s.app.Get("/elements/:id", s.locked(s.getElement))

	s.app.Get("/frame.png", s.locked(s.getFrame))
	s.app.Get("/export.pdf", s.locked(s.getPDF))

	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP requests on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.log.Info("listening", "addr", addr)
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops the server, waiting for active requests until ctx is
// done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// locked wraps h so that it runs with exclusive access to the board.
func (s *Server) locked(h fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return h(c)
	}
}

func (s *Server) handleError(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	if code >= 500 {
		s.log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
