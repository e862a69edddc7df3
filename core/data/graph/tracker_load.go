// Copyright (C) 2024 The RefPack Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package graph

import "github.com/refpack/refpack/core/data/binary"

// slotFixup remembers one pointer slot together with the typed deferred
// assignment that writes a resolved target into it.
type slotFixup struct {
	slot   interface{}
	assign func(target interface{}) error
}

// inTracker performs pointer book-keeping while loading. It records the
// identity of each freshly constructed unit in traversal order, so the
// position in the table is the unit's object-id, and defers every
// pointer write until the identity map has been read back.
type inTracker struct {
	// objs is indexed by object-id. Index 0 is reserved and resolves to
	// a nil pointer.
	objs  []interface{}
	slots []slotFixup
	err   error
}

func newInTracker() *inTracker {
	return &inTracker{objs: []interface{}{nil}}
}

// Visit implements Visitor.
func (t *inTracker) Visit(vals ...interface{}) { trackWalk(t, vals...) }

// Error implements Visitor.
func (t *inTracker) Error() error { return t.err }

// SetError implements Visitor.
func (t *inTracker) SetError(err error) {
	if t.err == nil {
		t.err = err
	}
}

// trackIdentity appends the freshly constructed unit to the object
// table; its index is the object-id the saving side assigned to the
// unit at the same traversal position.
func (t *inTracker) trackIdentity(unit interface{}) {
	t.objs = append(t.objs, unit)
}

// trackPointer records the slot's identity and deferred assignment,
// then tracks the slot itself, mirroring the saving side so ids stay
// aligned.
func (t *inTracker) trackPointer(ref PtrRef) {
	t.slots = append(t.slots, slotFixup{slot: ref.slot, assign: ref.assign})
	t.trackIdentity(ref.slot)
}

// finalize reads the identity map from r and performs every deferred
// pointer assignment. It fails if the map length differs from the
// number of recorded slots, or if an id is out of range of the object
// table.
func (t *inTracker) finalize(r binary.Reader) error {
	n := r.Count()
	if err := r.Error(); err != nil {
		return err
	}
	if int(n) != len(t.slots) {
		return ErrCountMismatch{Stream: int(n), Traversal: len(t.slots)}
	}
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = r.Uint32()
	}
	if err := r.Error(); err != nil {
		return err
	}
	for i, fix := range t.slots {
		id := ids[i]
		if int(id) >= len(t.objs) {
			return ErrIDOutOfRange{ID: id, Objects: len(t.objs)}
		}
		if err := fix.assign(t.objs[id]); err != nil {
			return err
		}
	}
	return nil
}
