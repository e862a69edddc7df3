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

// Decoder is the encoding visitor for loading. It fills each visited
// scalar from a binary.Reader and recurses into composites. Adapter
// values are inert to it.
type Decoder struct {
	r binary.Reader
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r binary.Reader) *Decoder {
	return &Decoder{r: r}
}

// Reader returns the underlying binary.Reader.
func (d *Decoder) Reader() binary.Reader { return d.r }

// Visit decodes into each value in vals.
func (d *Decoder) Visit(vals ...interface{}) {
	for _, val := range vals {
		if d.r.Error() != nil {
			return
		}
		switch v := val.(type) {
		case Named:
			d.Visit(v.Value)
		case Sized:
			*v.Count = d.r.Count()
		case SelfRef, PtrRef:
			// Identity adapters carry no portable value.
		case *bool:
			*v = d.r.Bool()
		case *int8:
			*v = d.r.Int8()
		case *uint8:
			*v = d.r.Uint8()
		case *int16:
			*v = d.r.Int16()
		case *uint16:
			*v = d.r.Uint16()
		case *int32:
			*v = d.r.Int32()
		case *uint32:
			*v = d.r.Uint32()
		case *int64:
			*v = d.r.Int64()
		case *uint64:
			*v = d.r.Uint64()
		case *float32:
			*v = d.r.Float32()
		case *float64:
			*v = d.r.Float64()
		case *string:
			*v = d.r.String()
		case []byte:
			d.r.Data(v)
		case Traversable:
			v.Traverse(d)
		default:
			d.SetError(errors.Errorf("cannot decode into value of type %T", val))
		}
	}
}

// Error returns the error which stopped decoding, or nil.
func (d *Decoder) Error() error { return d.r.Error() }

// SetError stops decoding with err.
func (d *Decoder) SetError(err error) { d.r.SetError(err) }
