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

// tracker is the shape shared by the two tracking visitors. Tracking
// visitors perform no I/O; they only observe the traversal to build or
// consume the identity map.
type tracker interface {
	Visitor
	// trackIdentity records the identity of one traversed unit against
	// the next object-id.
	trackIdentity(unit interface{})
	// trackPointer records one pointer occurrence.
	trackPointer(ref PtrRef)
}

// trackWalk dispatches one traversal step for a tracking visitor. The
// walk mirrors the encoding visitors so that ids are assigned in the
// exact order units are encoded or decoded.
func trackWalk(t tracker, vals ...interface{}) {
	for _, val := range vals {
		if t.Error() != nil {
			return
		}
		switch v := val.(type) {
		case Named:
			trackWalk(t, v.Value)
		case Sized:
			// The count occupies a position in the traversal even when it
			// addresses a temporary; tracking it keeps both sides aligned.
			t.trackIdentity(v.Count)
		case SelfRef:
			t.trackIdentity(v.target)
		case PtrRef:
			t.trackPointer(v)
		case *bool, *int8, *uint8, *int16, *uint16,
			*int32, *uint32, *int64, *uint64,
			*float32, *float64, *string:
			t.trackIdentity(v)
		case []byte:
			// Raw buffers are not identity-tracked.
		case Traversable:
			v.Traverse(t)
		default:
			t.SetError(errors.Errorf("cannot track value of type %T", val))
		}
	}
}
