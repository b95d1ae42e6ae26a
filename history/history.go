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

package history

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/metrics"
)

// DefaultDebounce is the default quiet period before a commit is written.
const DefaultDebounce = 300 * time.Millisecond

// Timer is a pending call scheduled by Options.AfterFunc.
type Timer interface {
	Stop() bool
}

// Options configure a Manager.
type Options struct {
	// Debounce is the quiet period after the last Commit before the
	// snapshot is written.  Zero means DefaultDebounce, a negative value
	// writes every commit immediately.
	Debounce time.Duration

	Logger hclog.Logger

	// AfterFunc schedules f to run after d.  The default is time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Timer
}

// Manager maintains the undo history of one board.
//
// Store operations are serialised: commits reach the store in the order
// in which they were made, and Undo and Redo see the result of all earlier
// commits.
type Manager struct {
	store     Store
	log       hclog.Logger
	debounce  time.Duration
	afterFunc func(time.Duration, func()) Timer

	// io serialises store access; it is acquired before mu.
	io sync.Mutex

	mu      sync.Mutex
	keys    []int64
	cursor  int
	pending []element.Element
	waiting bool
	timer   Timer
	gen     uint64
}

// New returns a manager for the snapshots in store.  Call Load to read
// the existing keys.
func New(store Store, opt *Options) *Manager {
	if opt == nil {
		opt = &Options{}
	}
	m := &Manager{
		store:     store,
		log:       opt.Logger,
		debounce:  opt.Debounce,
		afterFunc: opt.AfterFunc,
		cursor:    -1,
	}
	if m.log == nil {
		m.log = hclog.NewNullLogger()
	}
	m.log = m.log.Named("history")
	if m.debounce == 0 {
		m.debounce = DefaultDebounce
	}
	if m.afterFunc == nil {
		m.afterFunc = func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		}
	}
	return m
}

// Load reads the key list from the store and moves the cursor to the
// newest snapshot, which is returned.  For an empty store the result is
// nil.
func (m *Manager) Load(ctx context.Context) ([]element.Element, error) {
	m.io.Lock()
	defer m.io.Unlock()

	keys, err := m.store.Keys(ctx)
	if err != nil {
		m.fail("keys", err)
		return nil, err
	}

	var elems []element.Element
	if len(keys) > 0 {
		elems, err = m.store.Get(ctx, keys[len(keys)-1])
		if err != nil {
			m.fail("get", err)
			return nil, err
		}
	}

	m.mu.Lock()
	m.keys = keys
	m.cursor = len(keys) - 1
	m.mu.Unlock()

	m.log.Debug("history loaded", "snapshots", len(keys))
	return elems, nil
}

// Commit schedules elems to be written as a new snapshot.  A later Commit
// within the debounce interval replaces the pending one.  The slice is
// owned by the manager after the call.
func (m *Manager) Commit(elems []element.Element) {
	if m.debounce < 0 {
		m.write(context.Background(), elems)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}
	m.gen++
	gen := m.gen
	m.pending = elems
	m.waiting = true
	m.timer = m.afterFunc(m.debounce, func() { m.fire(gen) })
}

// fire writes the pending snapshot, unless it has been replaced, flushed
// or cancelled since the timer was started.
func (m *Manager) fire(gen uint64) {
	m.mu.Lock()
	if !m.waiting || gen != m.gen {
		m.mu.Unlock()
		return
	}
	elems := m.takePending()
	m.mu.Unlock()

	m.write(context.Background(), elems)
}

// takePending must be called with mu held.
func (m *Manager) takePending() []element.Element {
	elems := m.pending
	m.pending = nil
	m.waiting = false
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	return elems
}

// Flush writes a pending snapshot now.
func (m *Manager) Flush() {
	m.mu.Lock()
	if !m.waiting {
		m.mu.Unlock()
		return
	}
	elems := m.takePending()
	m.mu.Unlock()

	m.write(context.Background(), elems)
}

// Cancel drops a pending snapshot without writing it.
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.takePending()
}

// Pending reports whether a commit is waiting to be written.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waiting
}

// write stores elems as the snapshot after the cursor.  Snapshots after the
// cursor are discarded first.  On failure the cursor is left unchanged.
func (m *Manager) write(ctx context.Context, elems []element.Element) {
	m.io.Lock()
	defer m.io.Unlock()

	m.mu.Lock()
	stale := slices.Clone(m.keys[m.cursor+1:])
	m.mu.Unlock()

	if len(stale) > 0 {
		if err := m.store.Delete(ctx, stale); err != nil {
			m.fail("delete", err)
			return
		}
		m.mu.Lock()
		m.keys = m.keys[:m.cursor+1]
		m.mu.Unlock()
		m.log.Debug("discarded redo branch", "snapshots", len(stale))
	}

	key, err := m.store.Append(ctx, elems)
	if err != nil {
		m.fail("append", err)
		return
	}
	keys, err := m.store.Keys(ctx)
	if err != nil {
		m.fail("keys", err)
		keys = append(m.Keys(), key)
	}

	m.mu.Lock()
	m.keys = keys
	m.cursor = len(keys) - 1
	m.mu.Unlock()

	metrics.SnapshotsCommitted.Inc()
	m.log.Debug("snapshot committed", "key", key, "elements", len(elems))
}

// Undo moves the cursor one snapshot back and returns the snapshot now
// current.  When the cursor moves before the first snapshot, the result is
// an empty board.  The boolean is false if there is nothing to undo or the
// snapshot could not be read.
func (m *Manager) Undo(ctx context.Context) ([]element.Element, bool) {
	m.Flush()
	return m.step(ctx, -1)
}

// Redo moves the cursor one snapshot forward and returns that snapshot.
func (m *Manager) Redo(ctx context.Context) ([]element.Element, bool) {
	m.Flush()
	return m.step(ctx, +1)
}

func (m *Manager) step(ctx context.Context, dir int) ([]element.Element, bool) {
	m.io.Lock()
	defer m.io.Unlock()

	m.mu.Lock()
	target := m.cursor + dir
	if target < -1 || target >= len(m.keys) {
		m.mu.Unlock()
		return nil, false
	}
	var key int64
	if target >= 0 {
		key = m.keys[target]
	}
	m.mu.Unlock()

	var elems []element.Element
	if target >= 0 {
		var err error
		elems, err = m.store.Get(ctx, key)
		if err != nil {
			m.fail("get", err)
			return nil, false
		}
	}

	m.mu.Lock()
	m.cursor = target
	m.mu.Unlock()
	return elems, true
}

// Cursor returns the index of the current snapshot in Keys, or -1 if the
// board is at the start of the history.
func (m *Manager) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// Keys returns a copy of the snapshot keys, oldest first.
func (m *Manager) Keys() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.keys)
}

func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor > -1 || m.waiting
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor < len(m.keys)-1 && !m.waiting
}

func (m *Manager) fail(op string, err error) {
	metrics.HistoryStoreErrors.WithLabelValues(op).Inc()
	m.log.Error("snapshot store failed", "op", op, "error", err)
}
