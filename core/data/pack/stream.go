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

package pack

import (
	"context"
	eb "encoding/binary"
	"io"

	"github.com/refpack/refpack/core/data/endian"
	"github.com/refpack/refpack/core/data/graph"
)

type config struct {
	byteOrder eb.ByteOrder
}

// Option configures a Save.
type Option func(*config)

// WithByteOrder sets the byte order the payload is encoded with.
// The default is little-endian.
func WithByteOrder(byteOrder eb.ByteOrder) Option {
	return func(c *config) { c.byteOrder = byteOrder }
}

// Save writes root as a framed refpack stream to the supplied writer:
// header, payload, identity map, digest.
func Save(ctx context.Context, to io.Writer, root graph.Traversable, opts ...Option) error {
	cfg := config{byteOrder: eb.LittleEndian}
	for _, opt := range opts {
		opt(&cfg)
	}
	pw, err := NewWriter(to, cfg.byteOrder)
	if err != nil {
		return err
	}
	w := endian.Writer(pw, cfg.byteOrder)
	if err := graph.Save(ctx, w, root); err != nil {
		return err
	}
	return pw.Finish()
}

// Load reads a framed refpack stream from the supplied reader into
// root, resolving all pointers and checking the stream digest.
func Load(ctx context.Context, from io.Reader, root graph.Traversable) error {
	pr, err := NewReader(from)
	if err != nil {
		return err
	}
	r := endian.Reader(pr, pr.ByteOrder())
	if err := graph.Load(ctx, r, root); err != nil {
		return err
	}
	return pr.Verify()
}
