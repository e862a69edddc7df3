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

// outTracker performs pointer book-keeping while saving. It associates
// the identity of each traversed unit with an object-id and records the
// target of every pointer occurrence, in traversal order.
type outTracker struct {
	// ids maps a unit's identity to the object-id it received most
	// recently. The nil identity is seeded with the reserved id 0.
	ids  map[interface{}]uint32
	next uint32
	// occurrences holds the target identity of every traversed pointer,
	// in traversal order.
	occurrences []interface{}
	err         error
}

func newOutTracker() *outTracker {
	t := &outTracker{ids: map[interface{}]uint32{}}
	t.ids[nil] = t.next
	t.next++
	return t
}

// Visit implements Visitor.
func (t *outTracker) Visit(vals ...interface{}) { trackWalk(t, vals...) }

// Error implements Visitor.
func (t *outTracker) Error() error { return t.err }

// SetError implements Visitor.
func (t *outTracker) SetError(err error) {
	if t.err == nil {
		t.err = err
	}
}

// trackIdentity assigns the next object-id to unit. Revisiting an
// identity overwrites the earlier assignment, so pointers resolve
// against the id the identity received most recently. Kept for stream
// compatibility; do not change to first-visit-wins.
func (t *outTracker) trackIdentity(unit interface{}) {
	t.ids[unit] = t.next
	t.next++
}

// trackPointer appends the pointer's current target to the occurrence
// list, and tracks the slot itself; a pointer field still occupies a
// position in the graph and may be the target of another pointer.
func (t *outTracker) trackPointer(ref PtrRef) {
	t.occurrences = append(t.occurrences, ref.target)
	t.trackIdentity(ref.slot)
}

// finalize resolves every pointer occurrence to an object-id and writes
// the count-prefixed id sequence to w. It fails without writing if any
// occurrence targets an identity that was never traversed.
func (t *outTracker) finalize(w binary.Writer) error {
	ids := make([]uint32, 0, len(t.occurrences))
	for _, target := range t.occurrences {
		id, ok := t.ids[target]
		if !ok {
			return ErrTargetNotTracked{Target: target}
		}
		ids = append(ids, id)
	}
	w.Count(uint32(len(ids)))
	for _, id := range ids {
		w.Uint32(id)
	}
	return w.Error()
}
