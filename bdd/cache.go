// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package bdd

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// The operation caches are direct-mapped: each entry of the table holds the
// last result computed for the operands that hashed to its slot. A lookup
// that collides simply recomputes, so eviction can cost time but never
// correctness. Empty slots are marked with a = -1.

// cacheData is a unit of information stored in the operation caches.
type cacheData struct {
	a, b, c Node
	res     Node
}

type cache struct {
	table []cacheData
}

// caches groups the three operation caches used by the recursive
// combinators, following the same split as the apply/not/ite operations.
type caches struct {
	applycache cache // Cache for Apply results, tagged by operator
	notcache   cache // Cache for negation results
	itecache   cache // Cache for if-then-else results
	opHit      int   // entries found in one of the operation caches
	opMiss     int   // entries not found
}

func (b *BDD) cacheinit(size int) {
	b.applycache.init(size)
	b.notcache.init(size)
	b.itecache.init(size)
}

func (bc *cache) init(size int) {
	bc.table = make([]cacheData, size)
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

// slot hashes an operation triple to an index in the table. We reuse the
// operand encoding as the hash input, in the manner of a hash-consed
// expression store, with the operator in the top byte to separate Apply
// entries computed with different operators.
func (bc *cache) slot(op Operator, a, b, c Node) *cacheData {
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(op))
	binary.LittleEndian.PutUint32(buf[4:], uint32(a))
	binary.LittleEndian.PutUint32(buf[8:], uint32(b))
	binary.LittleEndian.PutUint32(buf[12:], uint32(c))
	return &bc.table[xxhash.Sum64(buf[:])%uint64(len(bc.table))]
}

// matchapply returns the cached result of apply(op, left, right), or -1.
func (b *BDD) matchapply(op Operator, left, right Node) Node {
	e := b.applycache.slot(op, left, right, Node(op))
	if e.a == left && e.b == right && e.c == Node(op) {
		b.opHit++
		return e.res
	}
	b.opMiss++
	return -1
}

func (b *BDD) setapply(op Operator, left, right, res Node) Node {
	e := b.applycache.slot(op, left, right, Node(op))
	*e = cacheData{a: left, b: right, c: Node(op), res: res}
	return res
}

func (b *BDD) matchnot(n Node) Node {
	e := b.notcache.slot(opNot, n, -1, -1)
	if e.a == n {
		b.opHit++
		return e.res
	}
	b.opMiss++
	return -1
}

func (b *BDD) setnot(n, res Node) Node {
	e := b.notcache.slot(opNot, n, -1, -1)
	*e = cacheData{a: n, b: -1, c: -1, res: res}
	return res
}

func (b *BDD) matchite(f, g, h Node) Node {
	e := b.itecache.slot(opIte, f, g, h)
	if e.a == f && e.b == g && e.c == h {
		b.opHit++
		return e.res
	}
	b.opMiss++
	return -1
}

func (b *BDD) setite(f, g, h, res Node) Node {
	e := b.itecache.slot(opIte, f, g, h)
	*e = cacheData{a: f, b: g, c: h, res: res}
	return res
}
