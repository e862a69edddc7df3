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

package graph_test

import (
	"bytes"
	"context"
	eb "encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refpack/refpack/core/data/endian"
	"github.com/refpack/refpack/core/data/graph"
)

// node is a referenceable unit in a linked structure.
type node struct {
	id   uint32
	next *node
}

func (n *node) Traverse(v graph.Visitor) {
	v.Visit(graph.Self(n), &n.id, graph.Ptr(&n.next))
}

// ring holds three nodes by value plus one external pointer into them.
type ring struct {
	a, b, c node
	p       *node
}

func (r *ring) Traverse(v graph.Visitor) {
	v.Visit(&r.a, &r.b, &r.c, graph.Ptr(&r.p))
}

func roundTrip(t *testing.T, in, out graph.Traversable) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	require.NoError(t, graph.Save(ctx, endian.Writer(buf, eb.LittleEndian), in))
	require.NoError(t, graph.Load(ctx, endian.Reader(buf, eb.LittleEndian), out))
}

func TestThreeCycleWithExternalPointer(t *testing.T) {
	in := &ring{
		a: node{id: 1},
		b: node{id: 2},
		c: node{id: 3},
	}
	in.a.next = &in.b
	in.b.next = &in.c
	in.c.next = &in.a
	in.p = &in.b

	out := &ring{}
	roundTrip(t, in, out)

	assert.Equal(t, uint32(1), out.a.id)
	assert.Equal(t, uint32(2), out.b.id)
	assert.Equal(t, uint32(3), out.c.id)

	// The full cycle is reconstructed over the loaded nodes.
	assert.Same(t, &out.b, out.a.next)
	assert.Same(t, &out.c, out.b.next)
	assert.Same(t, &out.a, out.c.next)

	// The external pointer resolves to the loaded b, not a copy.
	assert.Same(t, &out.b, out.p)
}

func TestSelfCycle(t *testing.T) {
	in := &ring{a: node{id: 7}}
	in.a.next = &in.a

	out := &ring{}
	roundTrip(t, in, out)

	assert.Same(t, &out.a, out.a.next)
}

func TestSharedLeafFanIn(t *testing.T) {
	type doc struct {
		leaf   node
		p1, p2 *node
	}
	traverse := func(d *doc, v graph.Visitor) {
		v.Visit(&d.leaf, graph.Ptr(&d.p1), graph.Ptr(&d.p2))
	}

	in := &doc{leaf: node{id: 99}}
	in.p1 = &in.leaf
	in.p2 = &in.leaf

	out := &doc{}
	roundTrip(t,
		traversableFunc(func(v graph.Visitor) { traverse(in, v) }),
		traversableFunc(func(v graph.Visitor) { traverse(out, v) }))

	// Two pointers into one leaf load as two pointers to the same
	// loaded leaf instance.
	require.NotNil(t, out.p1)
	assert.Same(t, &out.leaf, out.p1)
	assert.Same(t, out.p1, out.p2)
}

func TestNilPointer(t *testing.T) {
	in := &ring{a: node{id: 4}}
	out := &ring{b: node{id: 9}}
	out.p = &out.b // stale pointer, must be overwritten with nil

	roundTrip(t, in, out)

	assert.Nil(t, out.a.next)
	assert.Nil(t, out.p)
}

func TestPointerToPrimitiveField(t *testing.T) {
	type rec struct {
		x, y uint64
		p    *uint64
	}
	traverse := func(r *rec, v graph.Visitor) {
		v.Visit(&r.x, &r.y, graph.Ptr(&r.p))
	}

	in := &rec{x: 10, y: 20}
	in.p = &in.y
	out := &rec{}
	roundTrip(t,
		traversableFunc(func(v graph.Visitor) { traverse(in, v) }),
		traversableFunc(func(v graph.Visitor) { traverse(out, v) }))

	assert.Equal(t, uint64(20), out.y)
	assert.Same(t, &out.y, out.p)
}

func TestRefField(t *testing.T) {
	type pair struct {
		first  node
		second graph.Ref[node]
	}
	traverse := func(p *pair, v graph.Visitor) {
		v.Visit(&p.first, &p.second)
	}

	in := &pair{first: node{id: 5}}
	in.second.Set(&in.first)
	out := &pair{}
	roundTrip(t,
		traversableFunc(func(v graph.Visitor) { traverse(in, v) }),
		traversableFunc(func(v graph.Visitor) { traverse(out, v) }))

	assert.Same(t, &out.first, out.second.Get())
}

func TestNamedAndSizedWrappers(t *testing.T) {
	type list struct {
		items []*node
		head  *node
	}
	traverse := func(l *list, v graph.Visitor) {
		count := uint32(len(l.items))
		v.Visit(graph.Size(&count))
		if len(l.items) != int(count) {
			l.items = make([]*node, count)
			for i := range l.items {
				l.items[i] = &node{}
			}
		}
		for i := range l.items {
			v.Visit(graph.N("item", l.items[i]))
		}
		v.Visit(graph.Ptr(&l.head))
	}

	in := &list{items: []*node{{id: 1}, {id: 2}, {id: 3}}}
	in.items[0].next = in.items[2]
	in.head = in.items[1]

	out := &list{}
	roundTrip(t,
		traversableFunc(func(v graph.Visitor) { traverse(in, v) }),
		traversableFunc(func(v graph.Visitor) { traverse(out, v) }))

	require.Len(t, out.items, 3)
	assert.Equal(t, uint32(2), out.items[1].id)
	assert.Same(t, out.items[2], out.items[0].next)
	assert.Same(t, out.items[1], out.head)
}

func TestRawBytesNotTracked(t *testing.T) {
	type blob struct {
		data []byte
		n    node
		p    *node
	}
	traverse := func(b *blob, v graph.Visitor) {
		v.Visit(b.data, &b.n, graph.Ptr(&b.p))
	}

	in := &blob{data: []byte{1, 2, 3, 4}, n: node{id: 11}}
	in.p = &in.n
	out := &blob{data: make([]byte, 4)}
	roundTrip(t,
		traversableFunc(func(v graph.Visitor) { traverse(in, v) }),
		traversableFunc(func(v graph.Visitor) { traverse(out, v) }))

	assert.Equal(t, []byte{1, 2, 3, 4}, out.data)
	assert.Same(t, &out.n, out.p)
}

// traversableFunc adapts a closure to graph.Traversable.
type traversableFunc func(v graph.Visitor)

func (f traversableFunc) Traverse(v graph.Visitor) { f(v) }
