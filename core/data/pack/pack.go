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

// Package pack frames a saved object graph in a self-describing stream.
//
// A refpack stream is:
//
//	magic       "RefPack\r\n"
//	version     1 byte
//	byte order  1 byte (0 little-endian, 1 big-endian)
//	payload     the engine's primary payload
//	identities  the trailing identity map
//	digest      8 byte xxhash of everything preceding it
package pack

import (
	"fmt"

	"github.com/refpack/refpack/core/fault"
)

const (
	// ErrIncorrectMagic is the error returned when the stream header is
	// not matched.
	ErrIncorrectMagic = fault.Const("Incorrect refpack magic header")

	// ErrIncorrectByteOrder is the error returned when the header holds
	// an unknown byte order flag.
	ErrIncorrectByteOrder = fault.Const("Unknown byte order flag in refpack header")

	// ErrTruncated is the error returned when a stream ends before its
	// trailing digest.
	ErrTruncated = fault.Const("Truncated refpack stream")

	version = 1

	orderLittleEndian = 0
	orderBigEndian    = 1

	digestSize = 8
)

var magic = []byte("RefPack\r\n")

// ErrUnsupportedVersion is the error returned when the header version is
// one this package cannot handle.
type ErrUnsupportedVersion struct {
	Version uint8
}

func (e ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("Unsupported refpack version %d", e.Version)
}

// ErrDigestMismatch is the error returned when the trailing digest does
// not match the bytes read.
type ErrDigestMismatch struct {
	Got, Want uint64
}

func (e ErrDigestMismatch) Error() string {
	return fmt.Sprintf("Stream digest %016x does not match computed digest %016x", e.Want, e.Got)
}
