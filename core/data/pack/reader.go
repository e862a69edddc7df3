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
	"bytes"
	eb "encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Reader unframes a refpack stream. It consumes and checks the header
// on construction, hashes every body byte read through it, and checks
// the trailing digest on Verify.
type Reader struct {
	from      io.Reader
	hash      *xxhash.Digest
	version   uint8
	byteOrder eb.ByteOrder
}

// NewReader constructs a Reader unframing the supplied stream, reading
// and validating the magic and header.
func NewReader(from io.Reader) (*Reader, error) {
	r := &Reader{from: from, hash: xxhash.New()}
	header := make([]byte, len(magic)+2)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if !bytes.Equal(header[:len(magic)], magic) {
		return nil, ErrIncorrectMagic
	}
	r.version = header[len(magic)]
	if r.version != version {
		return nil, ErrUnsupportedVersion{Version: r.version}
	}
	switch header[len(magic)+1] {
	case orderLittleEndian:
		r.byteOrder = eb.LittleEndian
	case orderBigEndian:
		r.byteOrder = eb.BigEndian
	default:
		return nil, ErrIncorrectByteOrder
	}
	return r, nil
}

// Read reads body bytes, feeding them through the stream digest.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.from.Read(p)
	r.hash.Write(p[:n])
	return n, err
}

// Version returns the stream's format version.
func (r *Reader) Version() uint8 { return r.version }

// ByteOrder returns the byte order the stream's payload was encoded
// with.
func (r *Reader) ByteOrder() eb.ByteOrder { return r.byteOrder }

// Verify reads the trailing digest and checks it against the bytes read
// so far. It must be called once the whole body has been consumed.
func (r *Reader) Verify() error {
	var digest [digestSize]byte
	if _, err := io.ReadFull(r.from, digest[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrTruncated
		}
		return err
	}
	want := eb.BigEndian.Uint64(digest[:])
	if got := r.hash.Sum64(); got != want {
		return ErrDigestMismatch{Got: got, Want: want}
	}
	return nil
}

// Drain consumes the remainder of the body and verifies the trailing
// digest, returning the number of body bytes consumed. It is used by
// tools that inspect a stream without decoding its payload.
func (r *Reader) Drain() (int64, error) {
	body, err := io.ReadAll(r.from)
	if err != nil {
		return 0, err
	}
	if len(body) < digestSize {
		return 0, ErrTruncated
	}
	payload := body[:len(body)-digestSize]
	r.hash.Write(payload)
	want := eb.BigEndian.Uint64(body[len(body)-digestSize:])
	if got := r.hash.Sum64(); got != want {
		return int64(len(payload)), ErrDigestMismatch{Got: got, Want: want}
	}
	return int64(len(payload)), nil
}
