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

// Command boardd serves a persistent whiteboard over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"

	"seehuhn.de/go/whiteboard"
	"seehuhn.de/go/whiteboard/config"
	"seehuhn.de/go/whiteboard/history"
	"seehuhn.de/go/whiteboard/metrics"
	"seehuhn.de/go/whiteboard/server"
	"seehuhn.de/go/whiteboard/snapshot"
)

var (
	flagConf      = flag.String("config", "", "config file location")
	flagTest      = flag.Bool("t", false, "test for valid config; exits with 0 on success, else 1")
	flagAccessLog = flag.Bool("access-log", false, "log every HTTP request")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *flagConf != "" {
		var err error
		cfg, err = config.LoadFile(*flagConf)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *flagTest {
		os.Exit(0)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "boardd",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger hclog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := snapshot.OpenSQLite(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	hist := history.New(store, &history.Options{
		Debounce: cfg.History.Debounce.Duration,
		Logger:   logger,
	})
	elems, err := hist.Load(ctx)
	if err != nil {
		return err
	}

	board := whiteboard.New(&whiteboard.Options{
		Width:   cfg.Canvas.Width,
		Height:  cfg.Canvas.Height,
		DPR:     cfg.Canvas.DPR,
		Style:   cfg.Style(),
		History: hist,
		Logger:  logger,
	})
	board.Restore(elems)
	logger.Info("board loaded", "elements", len(elems), "snapshots", len(hist.Keys()))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	srv := server.New(board, &server.Options{
		Logger:       logger,
		AccessLog:    *flagAccessLog,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Listen(cfg.Listen)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", "error", err)
	}
	hist.Flush()
	return nil
}
