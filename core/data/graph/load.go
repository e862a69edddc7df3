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

// Loader wraps a decoding visitor and a tracking visitor for one load
// traversal. Every visit is forwarded to the engine first, then to the
// tracker; pointer writes are deferred until Complete has read the
// identity map back from the stream.
//
// A Loader lives for exactly one traversal. Callers driving a Loader by
// hand must arrange for Complete to run on every exit path:
//
//	l := graph.NewLoader(r)
//	defer l.Complete()
//	l.Visit(&root)
type Loader struct {
	engine    *Decoder
	tracker   *inTracker
	completed bool
	err       error
}

// NewLoader returns a Loader decoding the traversal from r.
func NewLoader(r binary.Reader) *Loader {
	return &Loader{engine: NewDecoder(r), tracker: newInTracker()}
}

// Visit forwards vals to the engine and the tracker. Visiting after
// Complete fails with ErrAfterComplete.
func (l *Loader) Visit(vals ...interface{}) {
	if l.completed {
		l.SetError(ErrAfterComplete)
		return
	}
	if l.Error() != nil {
		return
	}
	l.engine.Visit(vals...)
	l.tracker.Visit(vals...)
}

// Error returns the error which stopped the traversal, or nil.
func (l *Loader) Error() error {
	if l.err != nil {
		return l.err
	}
	if err := l.engine.Error(); err != nil {
		return err
	}
	return l.tracker.Error()
}

// SetError stops the traversal with err.
func (l *Loader) SetError(err error) {
	if l.err == nil {
		l.err = err
	}
}

// Complete reads the identity map from the engine's stream and performs
// all deferred pointer assignments. It runs at most once; further calls
// are no-ops.
func (l *Loader) Complete() error {
	if l.completed {
		return nil
	}
	l.completed = true
	if err := l.Error(); err != nil {
		return err
	}
	return l.tracker.finalize(l.engine.Reader())
}

// Load traverses root through a Loader and completes it, guaranteeing
// the identity map is consumed and pointers resolved exactly once on
// every exit path.
func Load(ctx context.Context, r binary.Reader, root Traversable) (err error) {
	l := NewLoader(r)
	defer func() {
		cerr := l.Complete()
		if err == nil {
			err = cerr
		}
		if err != nil {
			err = errors.Wrap(err, "loading object graph")
			return
		}
		log.D(ctx, "graph: loaded %d units, %d pointer slots",
			len(l.tracker.objs)-1, len(l.tracker.slots))
	}()
	l.Visit(root)
	return l.Error()
}
