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

package element

import (
	"slices"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"
)

// Store is the ordered collection of elements.  The order is the z-order:
// later elements are drawn on top of earlier ones.
//
// A Store is not safe for concurrent use.
type Store struct {
	elems []*Element
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Create appends a new element of the given kind with its anchor at origin
// and returns it.  The element starts with zero extent and the single
// point (0, 0).
func (s *Store) Create(kind Kind, origin vec.Vec2, style Style) *Element {
	e := &Element{
		ID:          uuid.NewString(),
		Type:        kind,
		X:           origin.X,
		Y:           origin.Y,
		Points:      []vec.Vec2{{}},
		LineWidth:   style.LineWidth,
		StrokeColor: style.StrokeColor,
		FlipX:       1,
		FlipY:       1,
	}
	s.elems = append(s.elems, e)
	return e
}

// Update applies u to e.  A nil element is ignored.
func (s *Store) Update(e *Element, u Update) {
	if e == nil || u == nil {
		return
	}
	u.apply(e)
}

// Elements returns the elements in z-order.  The slice is shared with the
// store and is only valid until the next structural change.
func (s *Store) Elements() []*Element {
	return s.elems
}

// Len returns the number of elements, including soft-deleted ones.
func (s *Store) Len() int {
	return len(s.elems)
}

// FindByID returns the element with the given id.
func (s *Store) FindByID(id string) (*Element, bool) {
	for _, e := range s.elems {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Contains reports whether e is held by the store.
func (s *Store) Contains(e *Element) bool {
	return e != nil && slices.Contains(s.elems, e)
}

// Remove deletes e from the store immediately.
func (s *Store) Remove(e *Element) bool {
	i := slices.Index(s.elems, e)
	if i < 0 {
		return false
	}
	s.elems = slices.Delete(s.elems, i, i+1)
	return true
}

// CompactDeleted removes all elements with the IsDelete flag and returns
// how many were removed.
func (s *Store) CompactDeleted() int {
	n := len(s.elems)
	s.elems = slices.DeleteFunc(s.elems, func(e *Element) bool {
		return e.IsDelete
	})
	return n - len(s.elems)
}

// Clear removes all elements.
func (s *Store) Clear() {
	clear(s.elems)
	s.elems = s.elems[:0]
}

// Snapshot returns deep copies of all elements which are not marked as
// deleted.
func (s *Store) Snapshot() []Element {
	res := make([]Element, 0, len(s.elems))
	for _, e := range s.elems {
		if e.IsDelete {
			continue
		}
		res = append(res, *e.Clone())
	}
	return res
}

// Restore replaces the store content by deep copies of elems.
func (s *Store) Restore(elems []Element) {
	s.Clear()
	for i := range elems {
		s.elems = append(s.elems, elems[i].Clone())
	}
}
