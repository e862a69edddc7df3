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

// Package graph serializes object graphs linked by raw pointers.
//
// Pointer identity is preserved across a save and load, including shared
// targets and cycles, by running the user's traversal through two
// recipients at once: the encoding visitor performs the byte-level work
// while a tracking visitor assigns a dense object-id to every traversed
// unit in traversal order. Pointers are resolved against those ids
// through an identity map appended to the stream after the payload.
//
// Composite types implement Traversable, listing their fields once. The
// same Traverse method drives saving and loading. A composite that wants
// its own identity to be referenceable visits Self; pointer fields are
// visited through Ptr or held in a Ref.
//
// Identity of raw byte buffers ([]byte) is not tracked. The bytes are
// encoded, but a pointer cannot target them.
package graph

// Visitor is the recipient of a traversal. Traversal code presents each
// field to the Visitor in a fixed order; the same order must be produced
// when saving and when loading.
type Visitor interface {
	// Visit presents a sequence of values to the recipient. Values must be
	// pointers to scalars ([*]bool, integers, floats, *string), []byte
	// buffers, Named or Sized wrappers, adapter values (SelfRef, PtrRef)
	// or Traversable composites.
	Visit(vals ...interface{})
	// Error returns the error which stopped the traversal, or nil.
	Error() error
	// SetError sets the error state; all further visits become no-ops.
	SetError(error)
}

// Traversable is the interface implemented by composite types that
// describe their own fields to a Visitor.
type Traversable interface {
	Traverse(v Visitor)
}

// Named associates a label with a value. The binary visitors unwrap it
// transparently; the label gives structured encoders a key to attach.
type Named struct {
	Name  string
	Value interface{}
}

// N returns a Named wrapper around value.
func N(name string, value interface{}) Named {
	return Named{Name: name, Value: value}
}

// Sized carries an element count for a container about to be traversed.
// On save the count is written; on load it is read into Count.
type Sized struct {
	Count *uint32
}

// Size returns a Sized wrapper around count.
func Size(count *uint32) Sized {
	return Sized{Count: count}
}
