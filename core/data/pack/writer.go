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
	eb "encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Writer frames a refpack stream. It writes the header on construction,
// hashes every body byte written through it, and appends the digest on
// Finish.
type Writer struct {
	to       io.Writer
	hash     *xxhash.Digest
	finished bool
}

// NewWriter constructs a Writer framing the supplied stream, writing the
// magic and header for the given byte order.
func NewWriter(to io.Writer, byteOrder eb.ByteOrder) (*Writer, error) {
	w := &Writer{to: to, hash: xxhash.New()}
	flag, err := orderFlag(byteOrder)
	if err != nil {
		return nil, err
	}
	header := append(append([]byte{}, magic...), version, flag)
	if _, err := w.Write(header); err != nil {
		return nil, err
	}
	return w, nil
}

// Write writes body bytes, feeding them through the stream digest.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.to.Write(p)
	w.hash.Write(p[:n])
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Finish appends the trailing digest. It runs at most once; further
// calls are no-ops.
func (w *Writer) Finish() error {
	if w.finished {
		return nil
	}
	w.finished = true
	var digest [digestSize]byte
	eb.BigEndian.PutUint64(digest[:], w.hash.Sum64())
	if _, err := w.to.Write(digest[:]); err != nil {
		return err
	}
	return nil
}

func orderFlag(byteOrder eb.ByteOrder) (byte, error) {
	switch byteOrder {
	case eb.LittleEndian:
		return orderLittleEndian, nil
	case eb.BigEndian:
		return orderBigEndian, nil
	default:
		return 0, ErrIncorrectByteOrder
	}
}
