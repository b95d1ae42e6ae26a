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

// Package history records snapshots of the whiteboard for undo and redo.
//
// A [Manager] keeps the ordered list of snapshot keys of a [Store] and a
// cursor which points at the snapshot currently shown.  Commits are
// debounced: a burst of commits within the debounce interval writes only
// the last one.
package history

import (
	"context"

	"github.com/pkg/errors"

	"seehuhn.de/go/whiteboard/element"
)

// ErrNotFound is returned by Store.Get for keys which are not in the store.
var ErrNotFound = errors.New("snapshot not found")

// Store is an ordered key-value store for snapshots.  Keys are assigned
// by Append and increase with every call.
type Store interface {
	// Append stores a snapshot and returns its key.
	Append(ctx context.Context, elems []element.Element) (int64, error)

	// Get returns the snapshot stored under key.
	Get(ctx context.Context, key int64) ([]element.Element, error)

	// Keys returns all keys in insertion order.
	Keys(ctx context.Context) ([]int64, error)

	// Delete removes the snapshots with the given keys.  Missing keys are
	// ignored.
	Delete(ctx context.Context, keys []int64) error
}
