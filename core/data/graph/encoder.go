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
	"github.com/pkg/errors"

	"github.com/refpack/refpack/core/data/binary"
)

// Encoder is the encoding visitor for saving. It forwards every scalar
// to a binary.Writer and recurses into composites. Adapter values are
// inert to it; only tracking visitors give them meaning.
type Encoder struct {
	w binary.Writer
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w binary.Writer) *Encoder {
	return &Encoder{w: w}
}

// Writer returns the underlying binary.Writer.
func (e *Encoder) Writer() binary.Writer { return e.w }

// Visit encodes each value in vals.
func (e *Encoder) Visit(vals ...interface{}) {
	for _, val := range vals {
		if e.w.Error() != nil {
			return
		}
		switch v := val.(type) {
		case Named:
			e.Visit(v.Value)
		case Sized:
			e.w.Count(*v.Count)
		case SelfRef, PtrRef:
			// Identity adapters carry no portable value.
		case *bool:
			e.w.Bool(*v)
		case *int8:
			e.w.Int8(*v)
		case *uint8:
			e.w.Uint8(*v)
		case *int16:
			e.w.Int16(*v)
		case *uint16:
			e.w.Uint16(*v)
		case *int32:
			e.w.Int32(*v)
		case *uint32:
			e.w.Uint32(*v)
		case *int64:
			e.w.Int64(*v)
		case *uint64:
			e.w.Uint64(*v)
		case *float32:
			e.w.Float32(*v)
		case *float64:
			e.w.Float64(*v)
		case *string:
			e.w.String(*v)
		case []byte:
			e.w.Data(v)
		case Traversable:
			v.Traverse(e)
		default:
			e.SetError(errors.Errorf("cannot encode value of type %T", val))
		}
	}
}

// Error returns the error which stopped encoding, or nil.
func (e *Encoder) Error() error { return e.w.Error() }

// SetError stops encoding with err.
func (e *Encoder) SetError(err error) { e.w.SetError(err) }
