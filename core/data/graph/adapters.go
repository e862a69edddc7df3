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

import "github.com/pkg/errors"

// SelfRef exposes the identity of the composite currently being
// traversed. The recursive visit into a composite's members never shows
// an observer the composite itself, so a type that wants to be the
// target of pointers must visit Self in its Traverse method. Encoding
// visitors ignore it; tracking visitors record the referent's identity
// against the next object-id.
type SelfRef struct {
	target interface{}
}

// Self returns a SelfRef for the composite obj.
func Self[T any](obj *T) SelfRef {
	return SelfRef{target: obj}
}

// PtrRef exposes a mutable pointer slot to the traversal. Encoding
// visitors ignore it; raw pointers carry no portable value of their own.
// The saving tracker records the slot's current target, the loading
// tracker records the slot's own identity together with a deferred
// assignment that is run once the identity map has been read back.
type PtrRef struct {
	// slot identifies the storage location holding the pointer.
	slot interface{}
	// target identifies the pointed-at unit; nil for a nil pointer.
	target interface{}
	// assign writes a resolved target into the slot.
	assign func(target interface{}) error
}

// Ptr returns a PtrRef for the pointer held in slot.
func Ptr[T any](slot **T) PtrRef {
	ref := PtrRef{slot: slot}
	if *slot != nil {
		ref.target = *slot
	}
	ref.assign = func(target interface{}) error {
		if target == nil {
			*slot = nil
			return nil
		}
		t, ok := target.(*T)
		if !ok {
			return errors.Errorf("pointer slot of type %T resolved to incompatible object of type %T", slot, target)
		}
		*slot = t
		return nil
	}
	return ref
}

// Ref is a pointer field that registers itself with tracking visitors
// automatically, sparing the owning type an explicit Ptr wrapper at the
// traversal site.
type Ref[T any] struct {
	P *T
}

// RefTo returns a Ref holding p.
func RefTo[T any](p *T) Ref[T] {
	return Ref[T]{P: p}
}

// Get returns the held pointer.
func (r *Ref[T]) Get() *T { return r.P }

// Set replaces the held pointer.
func (r *Ref[T]) Set(p *T) { r.P = p }

// Traverse presents the pointer slot to the visitor.
func (r *Ref[T]) Traverse(v Visitor) {
	v.Visit(Ptr(&r.P))
}
