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
	"context"

	"github.com/pkg/errors"

	"github.com/refpack/refpack/core/data/binary"
	"github.com/refpack/refpack/core/log"
)

// Saver wraps an encoding visitor and a tracking visitor for one save
// traversal. Every visit is forwarded to the engine first, then to the
// tracker, so the engine always performs the authoritative byte-level
// work and the tracker does no I/O of its own.
//
// A Saver lives for exactly one traversal. Callers driving a Saver by
// hand must arrange for Complete to run on every exit path:
//
//	s := graph.NewSaver(w)
//	defer s.Complete()
//	s.Visit(&root)
type Saver struct {
	engine    *Encoder
	tracker   *outTracker
	completed bool
	err       error
}

// NewSaver returns a Saver encoding the traversal to w.
func NewSaver(w binary.Writer) *Saver {
	return &Saver{engine: NewEncoder(w), tracker: newOutTracker()}
}

// Visit forwards vals to the engine and the tracker. Visiting after
// Complete fails with ErrAfterComplete.
func (s *Saver) Visit(vals ...interface{}) {
	if s.completed {
		s.SetError(ErrAfterComplete)
		return
	}
	if s.Error() != nil {
		return
	}
	s.engine.Visit(vals...)
	s.tracker.Visit(vals...)
}

// Error returns the error which stopped the traversal, or nil.
func (s *Saver) Error() error {
	if s.err != nil {
		return s.err
	}
	if err := s.engine.Error(); err != nil {
		return err
	}
	return s.tracker.Error()
}

// SetError stops the traversal with err.
func (s *Saver) SetError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Complete emits the identity map into the engine's stream. It runs at
// most once; further calls are no-ops.
func (s *Saver) Complete() error {
	if s.completed {
		return nil
	}
	s.completed = true
	if err := s.Error(); err != nil {
		return err
	}
	return s.tracker.finalize(s.engine.Writer())
}

// Save traverses root through a Saver and completes it, guaranteeing
// the identity map is emitted exactly once on every exit path.
func Save(ctx context.Context, w binary.Writer, root Traversable) (err error) {
	s := NewSaver(w)
	defer func() {
		cerr := s.Complete()
		if err == nil {
			err = cerr
		}
		if err != nil {
			err = errors.Wrap(err, "saving object graph")
			return
		}
		log.D(ctx, "graph: saved %d units, %d pointer occurrences",
			s.tracker.next-1, len(s.tracker.occurrences))
	}()
	s.Visit(root)
	return s.Error()
}
