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

// Package metrics holds the Prometheus collectors of the whiteboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FramesRendered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "whiteboard_frames_rendered_total",
		Help: "Number of frames drawn",
	})

	SnapshotsCommitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "whiteboard_snapshots_committed_total",
		Help: "Number of history snapshots written to the store",
	})

	HistoryStoreErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "whiteboard_history_store_errors_total",
		Help: "Failed snapshot store operations",
	}, []string{"op"})

	ElementsErased = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "whiteboard_elements_erased_total",
		Help: "Number of elements removed by the eraser",
	})

	Elements = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "whiteboard_elements",
		Help: "Number of elements on the board",
	})

	Events = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "whiteboard_events_total",
		Help: "Input events applied to the board",
	}, []string{"kind"})
)

// Collectors returns all collectors of the package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		FramesRendered,
		SnapshotsCommitted,
		HistoryStoreErrors,
		ElementsErased,
		Elements,
		Events,
	}
}

// Register adds all collectors to r.  Collectors which are already
// registered are skipped, so that Register can be called more than once.
func Register(r prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := r.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}
