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

// Package snapshot provides stores for whiteboard history snapshots.
//
// Snapshots are kept as JSON documents, so that a stored snapshot never
// shares memory with the live board.
package snapshot

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/pkg/errors"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/history"
)

// Memory is a snapshot store which keeps everything in memory.
// It is safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	last int64
	keys []int64
	data map[int64][]byte
}

var _ history.Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[int64][]byte)}
}

func (m *Memory) Append(ctx context.Context, elems []element.Element) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	body, err := encode(elems)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.last++
	m.keys = append(m.keys, m.last)
	m.data[m.last] = body
	return m.last, nil
}

func (m *Memory) Get(ctx context.Context, key int64) ([]element.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	body, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return nil, errors.Wrapf(history.ErrNotFound, "key %d", key)
	}
	return decode(body)
}

func (m *Memory) Keys(ctx context.Context) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.keys), nil
}

func (m *Memory) Delete(ctx context.Context, keys []int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	m.keys = slices.DeleteFunc(m.keys, func(k int64) bool {
		return slices.Contains(keys, k)
	})
	return nil
}

func encode(elems []element.Element) ([]byte, error) {
	if elems == nil {
		elems = []element.Element{}
	}
	body, err := json.Marshal(elems)
	if err != nil {
		return nil, errors.Wrap(err, "encode snapshot")
	}
	return body, nil
}

func decode(body []byte) ([]element.Element, error) {
	var elems []element.Element
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	return elems, nil
}
