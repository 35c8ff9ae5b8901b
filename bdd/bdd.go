// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package bdd

import (
	"fmt"
	"math"
)

// Node is a reference to a vertex of a BDD. It is the atomic unit of
// interaction with the diagram: an index in the node table, with the
// convention that 1 (respectively 0) is the address of the constant function
// True (respectively False).
type Node int32

const (
	// False is the terminal node for the constant false function.
	False Node = 0
	// True is the terminal node for the constant true function.
	True Node = 1
)

// termLevel is the level of the two terminal nodes. It compares greater than
// any variable level, so the recursion in apply and ite never descends into a
// terminal.
const termLevel int32 = math.MaxInt32

// vertex is the record stored for each node in the table. The number of
// root-to-terminal paths is memoized at interning time: both children always
// exist when a vertex is created, so the count is a constant-time sum.
type vertex struct {
	level int32 // Order of the variable in the BDD
	low   Node  // Reference to the false branch
	high  Node  // Reference to the true branch
	paths int64 // Number of paths to a terminal, saturating
}

// triple is the key of the unicity table.
type triple struct {
	level int32
	low   Node
	high  Node
}

// BDD is an append-only store of shared, reduced, ordered decision diagram
// nodes. The zero value is not usable; create diagrams with New.
//
// A BDD is logically immutable from the point of view of its public
// operations: combinations grow the node table and the operation caches, but
// the meaning of an already returned Node never changes and no node is ever
// reclaimed. The structure is not safe for concurrent use.
type BDD struct {
	nodes    []vertex        // List of all the BDD nodes. Constants are kept at index 0 and 1
	unique   map[triple]Node // Unicity table, associates each triple to a single node
	varnum   int32           // Number of declared variables
	varset   []Node          // Node of each variable, in level order
	caches   // Operation caches
	produced int // Total number of nodes ever interned
}

// New returns an empty BDD with no variables. Options can be used to tune
// the initial table and cache sizes.
func New(options ...Option) *BDD {
	c := makeconfigs()
	for _, f := range options {
		f(c)
	}
	b := &BDD{
		nodes:  make([]vertex, 2, c.nodesize),
		unique: make(map[triple]Node, c.nodesize),
	}
	b.nodes[False] = vertex{level: termLevel, low: False, high: False, paths: 1}
	b.nodes[True] = vertex{level: termLevel, low: True, high: True, paths: 1}
	b.cacheinit(c.cachesize)
	return b
}

// NewVar declares a fresh decision variable and returns its node. Variables
// are ordered by creation; the order cannot be changed afterwards.
func (b *BDD) NewVar() Node {
	level := b.varnum
	b.varnum++
	n := b.makenode(level, False, True)
	b.varset = append(b.varset, n)
	return n
}

// Var returns the node of the i'th declared variable.
func (b *BDD) Var(i int) Node {
	if i < 0 || i >= int(b.varnum) {
		panic(fmt.Sprintf("bdd: unknown variable %d in call to Var", i))
	}
	return b.varset[i]
}

// VarNum returns the number of declared variables.
func (b *BDD) VarNum() int {
	return int(b.varnum)
}

// Size returns the number of interned nodes, terminals included.
func (b *BDD) Size() int {
	return len(b.nodes)
}

// Level returns the variable index tested by node n. Terminals report a
// level one past the last declared variable.
func (b *BDD) Level(n Node) int {
	if b.checknode(n) < 2 {
		return int(b.varnum)
	}
	return int(b.nodes[n].level)
}

// Low returns the false branch of node n.
func (b *BDD) Low(n Node) Node {
	return b.nodes[b.checknode(n)].low
}

// High returns the true branch of node n.
func (b *BDD) High(n Node) Node {
	return b.nodes[b.checknode(n)].high
}

// IsZero reports whether n is the constant false function.
func (b *BDD) IsZero(n Node) bool {
	return b.checknode(n) == False
}

// IsOne reports whether n is the constant true function.
func (b *BDD) IsOne(n Node) bool {
	return b.checknode(n) == True
}

// IsConst reports whether n is one of the two terminal nodes.
func (b *BDD) IsConst(n Node) bool {
	return b.checknode(n) < 2
}

// From returns the terminal node for a boolean constant.
func (b *BDD) From(v bool) Node {
	if v {
		return True
	}
	return False
}

// PathCount returns the number of root-to-terminal paths through node n. The
// count is memoized when the node is interned and saturates at MaxInt64. It
// is a size heuristic only and has no bearing on the Boolean semantics.
func (b *BDD) PathCount(n Node) int64 {
	return b.nodes[b.checknode(n)].paths
}

// makenode interns the triple (level, low, high) and returns its node. The
// two canonicalization rules live here: a redundant test collapses to its
// child, and an existing identical triple is reused.
func (b *BDD) makenode(level int32, low, high Node) Node {
	if low == high {
		return low
	}
	k := triple{level, low, high}
	if n, ok := b.unique[k]; ok {
		return n
	}
	n := Node(len(b.nodes))
	b.nodes = append(b.nodes, vertex{
		level: level,
		low:   low,
		high:  high,
		paths: satadd(b.nodes[low].paths, b.nodes[high].paths),
	})
	b.unique[k] = n
	b.produced++
	return n
}

// satadd adds two path counts, saturating instead of overflowing.
func satadd(a, c int64) int64 {
	if a > math.MaxInt64-c {
		return math.MaxInt64
	}
	return a + c
}

// checknode panics when n is outside the node table. Passing an invalid node
// is a programming error, not a reportable condition.
func (b *BDD) checknode(n Node) Node {
	if n < 0 || int(n) >= len(b.nodes) {
		panic(fmt.Sprintf("bdd: invalid node %d", n))
	}
	return n
}

// level is the internal accessor used by the recursive operations.
func (b *BDD) level(n Node) int32 {
	return b.nodes[n].level
}

func (b *BDD) low(n Node) Node {
	return b.nodes[n].low
}

func (b *BDD) high(n Node) Node {
	return b.nodes[n].high
}
