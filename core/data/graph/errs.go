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

import (
	"fmt"

	"github.com/refpack/refpack/core/fault"
)

const (
	// ErrAfterComplete is the error set when a visit is attempted after
	// Complete has run. This is a programming error, not a recoverable
	// condition.
	ErrAfterComplete = fault.Const("visit attempted after Complete")
)

// ErrTargetNotTracked is the error returned when completing a save and a
// pointer occurrence targets an identity that was never traversed.
type ErrTargetNotTracked struct {
	Target interface{}
}

func (e ErrTargetNotTracked) Error() string {
	return fmt.Sprintf("pointer target %p was not found in the serialization traversal", e.Target)
}

// ErrCountMismatch is the error returned when the identity map read from
// the stream holds a different number of entries than the traversal
// produced pointer slots. The saved and loaded traversal shapes differ.
type ErrCountMismatch struct {
	Stream    int
	Traversal int
}

func (e ErrCountMismatch) Error() string {
	return fmt.Sprintf("identity map holds %d entries but the traversal produced %d pointer slots", e.Stream, e.Traversal)
}

// ErrIDOutOfRange is the error returned when an object-id read from the
// stream exceeds the number of units constructed by the traversal.
type ErrIDOutOfRange struct {
	ID      uint32
	Objects int
}

func (e ErrIDOutOfRange) Error() string {
	return fmt.Sprintf("object-id %d exceeds the %d units constructed by the traversal", e.ID, e.Objects)
}
