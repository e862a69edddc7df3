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

// Package endian implements the binary.Reader and binary.Writer contracts
// over io streams with a fixed byte order.
package endian

import (
	"bytes"
	eb "encoding/binary"
	"io"
	"math"

	"github.com/refpack/refpack/core/data/binary"
)

// Reader creates a binary.Reader that reads from the provided io.Reader,
// with the specified byte order.
func Reader(r io.Reader, byteOrder eb.ByteOrder) binary.Reader {
	return &reader{reader: r, byteOrder: byteOrder}
}

// Writer creates a binary.Writer that writes to the supplied stream, with
// the specified byte order.
func Writer(w io.Writer, byteOrder eb.ByteOrder) binary.Writer {
	return &writer{writer: w, byteOrder: byteOrder}
}

type reader struct {
	reader    io.Reader
	tmp       [8]byte
	byteOrder eb.ByteOrder
	err       error
}

type writer struct {
	writer    io.Writer
	tmp       [8]byte
	byteOrder eb.ByteOrder
	err       error
}

func (r *reader) read(n int) []byte {
	if r.err != nil {
		return nil
	}
	b := r.tmp[:n]
	if _, err := io.ReadFull(r.reader, b); err != nil {
		r.err = err
		return nil
	}
	return b
}

func (w *writer) write(b []byte) {
	if w.err != nil {
		return
	}
	n, err := w.writer.Write(b)
	if err != nil {
		w.err = err
	} else if n != len(b) {
		w.err = io.ErrShortWrite
	}
}

func (r *reader) Data(p []byte) {
	if r.err != nil {
		return
	}
	if _, err := io.ReadFull(r.reader, p); err != nil {
		r.err = err
	}
}

func (w *writer) Data(data []byte) {
	w.write(data)
}

func (r *reader) Bool() bool {
	return r.Uint8() != 0
}

func (w *writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

func (r *reader) Int8() int8 {
	return int8(r.Uint8())
}

func (w *writer) Int8(v int8) {
	w.Uint8(uint8(v))
}

func (r *reader) Uint8() uint8 {
	if b := r.read(1); b != nil {
		return b[0]
	}
	return 0
}

func (w *writer) Uint8(v uint8) {
	w.tmp[0] = v
	w.write(w.tmp[:1])
}

func (r *reader) Int16() int16 {
	return int16(r.Uint16())
}

func (w *writer) Int16(v int16) {
	w.Uint16(uint16(v))
}

func (r *reader) Uint16() uint16 {
	if b := r.read(2); b != nil {
		return r.byteOrder.Uint16(b)
	}
	return 0
}

func (w *writer) Uint16(v uint16) {
	w.byteOrder.PutUint16(w.tmp[:2], v)
	w.write(w.tmp[:2])
}

func (r *reader) Int32() int32 {
	return int32(r.Uint32())
}

func (w *writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

func (r *reader) Uint32() uint32 {
	if b := r.read(4); b != nil {
		return r.byteOrder.Uint32(b)
	}
	return 0
}

func (w *writer) Uint32(v uint32) {
	w.byteOrder.PutUint32(w.tmp[:4], v)
	w.write(w.tmp[:4])
}

func (r *reader) Int64() int64 {
	return int64(r.Uint64())
}

func (w *writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

func (r *reader) Uint64() uint64 {
	if b := r.read(8); b != nil {
		return r.byteOrder.Uint64(b)
	}
	return 0
}

func (w *writer) Uint64(v uint64) {
	w.byteOrder.PutUint64(w.tmp[:8], v)
	w.write(w.tmp[:8])
}

func (r *reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

func (w *writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

func (r *reader) Float64() float64 {
	return math.Float64frombits(r.Uint64())
}

func (w *writer) Float64(v float64) {
	w.Uint64(math.Float64bits(v))
}

func (r *reader) String() string {
	n := r.Count()
	if r.err != nil || n == 0 {
		return ""
	}
	// The count is untrusted; grow the buffer as bytes actually arrive
	// so a corrupt count cannot force a huge up-front allocation.
	var s bytes.Buffer
	if _, err := io.CopyN(&s, r.reader, int64(n)); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		r.err = err
		return ""
	}
	return s.String()
}

func (w *writer) String(v string) {
	w.Count(uint32(len(v)))
	w.write([]byte(v))
}

func (r *reader) Count() uint32 {
	return r.Uint32()
}

func (w *writer) Count(v uint32) {
	w.Uint32(v)
}

func (r *reader) Error() error {
	return r.err
}

func (w *writer) Error() error {
	return w.err
}

func (r *reader) SetError(err error) {
	if r.err != nil {
		return
	}
	r.err = err
}

func (w *writer) SetError(err error) {
	if w.err != nil {
		return
	}
	w.err = err
}
