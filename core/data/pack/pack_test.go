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

package pack_test

import (
	"bytes"
	"context"
	eb "encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refpack/refpack/core/data/graph"
	"github.com/refpack/refpack/core/data/pack"
)

// entry is a referenceable unit used by the pack tests.
type entry struct {
	value uint32
	next  *entry
}

func (e *entry) Traverse(v graph.Visitor) {
	v.Visit(graph.Self(e), &e.value, graph.Ptr(&e.next))
}

// table holds two entries plus a pointer into them.
type table struct {
	first, second entry
	head          *entry
}

func (t *table) Traverse(v graph.Visitor) {
	v.Visit(&t.first, &t.second, graph.Ptr(&t.head))
}

func sample() *table {
	in := &table{
		first:  entry{value: 10},
		second: entry{value: 20},
	}
	in.first.next = &in.second
	in.second.next = &in.first
	in.head = &in.second
	return in
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}

	require.NoError(t, pack.Save(ctx, buf, sample()))

	out := &table{}
	require.NoError(t, pack.Load(ctx, buf, out))

	assert.Equal(t, uint32(10), out.first.value)
	assert.Equal(t, uint32(20), out.second.value)
	assert.Same(t, &out.second, out.first.next)
	assert.Same(t, &out.first, out.second.next)
	assert.Same(t, &out.second, out.head)
}

func TestSaveLoadBigEndian(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}

	require.NoError(t, pack.Save(ctx, buf, sample(), pack.WithByteOrder(eb.BigEndian)))

	out := &table{}
	require.NoError(t, pack.Load(ctx, buf, out))
	assert.Equal(t, uint32(10), out.first.value)
	assert.Same(t, &out.second, out.head)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	ctx := context.Background()
	buf := bytes.NewBufferString("NotAPack\r\nmore bytes than the header needs")

	err := pack.Load(ctx, buf, &table{})
	assert.ErrorIs(t, err, pack.ErrIncorrectMagic)
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	require.NoError(t, pack.Save(ctx, buf, sample()))

	raw := buf.Bytes()
	raw[len("RefPack\r\n")] = 99 // bump the version byte

	err := pack.Load(ctx, bytes.NewReader(raw), &table{})
	var unsupported pack.ErrUnsupportedVersion
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, uint8(99), unsupported.Version)
}

func TestLoadDetectsCorruption(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	require.NoError(t, pack.Save(ctx, buf, sample()))

	// Flip a bit inside a value field of the payload. The graph still
	// decodes, but the digest no longer matches.
	raw := buf.Bytes()
	raw[len("RefPack\r\n")+2] ^= 0x01

	err := pack.Load(ctx, bytes.NewReader(raw), &table{})
	var mismatch pack.ErrDigestMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestLoadDetectsTruncation(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	require.NoError(t, pack.Save(ctx, buf, sample()))

	raw := buf.Bytes()
	raw = raw[:len(raw)-4] // cut into the digest

	err := pack.Load(ctx, bytes.NewReader(raw), &table{})
	assert.ErrorIs(t, err, pack.ErrTruncated)
}

func TestReaderHeaderFields(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	require.NoError(t, pack.Save(ctx, buf, sample(), pack.WithByteOrder(eb.BigEndian)))

	r, err := pack.NewReader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), r.Version())
	assert.Equal(t, eb.ByteOrder(eb.BigEndian), r.ByteOrder())

	n, err := r.Drain()
	require.NoError(t, err)
	assert.Positive(t, n)
}

func TestDrainReportsCorruption(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	require.NoError(t, pack.Save(ctx, buf, sample()))

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xff // corrupt the digest itself

	r, err := pack.NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	_, err = r.Drain()
	var mismatch pack.ErrDigestMismatch
	require.ErrorAs(t, err, &mismatch)
}
