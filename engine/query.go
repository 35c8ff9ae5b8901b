// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package engine

import (
	"fmt"

	"github.com/hdl-tools/bitprobe/bdd"
	"github.com/hdl-tools/bitprobe/ir"
	"github.com/hdl-tools/bitprobe/logger"
)

// BDDEngine is the BDD-backed implementation of the Engine capability. The
// zero value is not usable; create engines with New, then call Populate
// before issuing any query.
//
// Query methods are logically read-only: they may grow the caches of the
// underlying decision diagram but never change the answer to a previously
// asked question. The engine is not safe for concurrent use.
type BDDEngine struct {
	pathLimit int64
	filter    func(ir.NodeID) bool

	m         *model
	knownMask map[ir.NodeID]ir.Bits
	knownVal  map[ir.NodeID]ir.Bits
}

var _ Engine = (*BDDEngine)(nil)

// New returns an unpopulated engine configured with the given options.
func New(options ...Option) *BDDEngine {
	c := &configs{}
	for _, f := range options {
		f(c)
	}
	return &BDDEngine{pathLimit: c.pathLimit, filter: c.filter}
}

// Populate builds the model for f and recomputes the known-bit state to a
// fixpoint. It reports whether the known-bit state changed relative to any
// previous populate call; an engine used in an iterative pass pipeline can
// use this to detect that re-running reached a fixpoint.
func (e *BDDEngine) Populate(f *ir.Function) (bool, error) {
	if f == nil {
		return false, fmt.Errorf("engine: cannot populate from a nil function")
	}
	e.m = buildModel(f, e.pathLimit, e.filter)
	changed := e.recomputeKnownBits()
	log := logger.Logger()
	log.Debug().
		Str("function", f.Name()).
		Int("nodes", f.NumNodes()).
		Int("bddSize", e.m.b.Size()).
		Bool("changed", changed).
		Msg("populated bdd query engine")
	return changed, nil
}

// recomputeKnownBits rebuilds the whole known-bit table from the model and
// reports whether it differs from the previous one. A modeled bit is known
// exactly when its expression is one of the two terminals; this is a
// constant-time structural test thanks to canonicalization.
func (e *BDDEngine) recomputeKnownBits() bool {
	b := e.m.b
	mask := make(map[ir.NodeID]ir.Bits, e.m.fn.NumNodes())
	val := make(map[ir.NodeID]ir.Bits, e.m.fn.NumNodes())
	e.m.fn.Nodes(func(n *ir.Node) {
		w := n.Width()
		km := ir.NewBits(w)
		kv := ir.NewBits(w)
		for i := 0; i < w; i++ {
			x, ok := e.m.bitExpr(n.ID(), i)
			if !ok || !b.IsConst(x) {
				continue
			}
			km.SetBit(i, true)
			kv.SetBit(i, b.IsOne(x))
		}
		mask[n.ID()] = km
		val[n.ID()] = kv
	})
	changed := len(mask) != len(e.knownMask)
	if !changed {
		for id, km := range mask {
			old, ok := e.knownMask[id]
			if !ok || !old.Equal(km) || !e.knownVal[id].Equal(val[id]) {
				changed = true
				break
			}
		}
	}
	e.knownMask = mask
	e.knownVal = val
	return changed
}

func (e *BDDEngine) ensurePopulated() {
	if e.m == nil {
		panic("engine: query issued before Populate")
	}
}

// location validates a tree bit location and returns the expression of the
// addressed bit together with whether the bit was modeled.
func (e *BDDEngine) location(loc TreeBitLocation) (bdd.Node, bool) {
	e.ensurePopulated()
	if len(loc.Path) != 0 {
		panic(fmt.Sprintf("engine: structural path %v on the bit-vector node n%d", loc.Path, loc.Node))
	}
	n := e.m.fn.Node(loc.Node)
	if loc.Bit < 0 || loc.Bit >= n.Width() {
		panic(fmt.Sprintf("engine: bit %d out of range for node n%d of width %d", loc.Bit, loc.Node, n.Width()))
	}
	return e.m.bitExpr(loc.Node, loc.Bit)
}

// IsTracked reports whether at least one output bit of the node was
// modeled.
func (e *BDDEngine) IsTracked(id ir.NodeID) bool {
	e.ensurePopulated()
	e.m.fn.Node(id)
	return e.m.isModeled(id)
}

// KnownBits returns the per-bit known/unknown state of the node's output.
func (e *BDDEngine) KnownBits(id ir.NodeID) Ternary {
	return e.knownBits(id, bdd.True)
}

func (e *BDDEngine) knownBits(id ir.NodeID, assumption bdd.Node) Ternary {
	e.ensurePopulated()
	e.m.fn.Node(id)
	if assumption == bdd.True {
		return FromKnownBits(e.knownMask[id], e.knownVal[id])
	}
	// Under an assumption the memoized table does not apply: test each
	// modeled bit against the conjoined context.
	b := e.m.b
	t := NewTernary(e.m.fn.Node(id).Width())
	for i := 0; i < t.Width(); i++ {
		x, ok := e.m.bitExpr(id, i)
		if !ok {
			continue
		}
		switch {
		case b.IsZero(b.And(assumption, b.Not(x))):
			t.Set(i, true)
		case b.IsZero(b.And(assumption, x)):
			t.Set(i, false)
		}
	}
	return t
}

// Implies reports whether bit a being 1 forces bit b to be 1.
func (e *BDDEngine) Implies(a, b TreeBitLocation) bool {
	return e.implies(a, b, bdd.True)
}

func (e *BDDEngine) implies(a, c TreeBitLocation, assumption bdd.Node) bool {
	x, okx := e.location(a)
	y, oky := e.location(c)
	if !okx || !oky {
		return false
	}
	// A implies B  <=>  !(A && !B)
	b := e.m.b
	return b.IsZero(b.And(assumption, x, b.Not(y)))
}

// KnownEquals reports whether bits a and b are provably equal: their XOR
// reduces to the constant-0 terminal, a semantic proof over all still-free
// variables rather than a coincidence of currently-known values.
func (e *BDDEngine) KnownEquals(a, b TreeBitLocation) bool {
	return e.knownEquals(a, b, bdd.True)
}

func (e *BDDEngine) knownEquals(a, c TreeBitLocation, assumption bdd.Node) bool {
	x, okx := e.location(a)
	y, oky := e.location(c)
	if !okx || !oky {
		return false
	}
	b := e.m.b
	return b.IsZero(b.And(assumption, b.Xor(x, y)))
}

// KnownNotEquals reports whether bits a and b provably differ: their XOR
// reduces to the constant-1 terminal.
func (e *BDDEngine) KnownNotEquals(a, b TreeBitLocation) bool {
	return e.knownNotEquals(a, b, bdd.True)
}

func (e *BDDEngine) knownNotEquals(a, c TreeBitLocation, assumption bdd.Node) bool {
	x, okx := e.location(a)
	y, oky := e.location(c)
	if !okx || !oky {
		return false
	}
	b := e.m.b
	return b.IsZero(b.And(assumption, b.Not(b.Xor(x, y))))
}

// AtMostOneTrue reports whether at most one of the given bits can be 1,
// proven by checking that every pairwise conjunction reduces to constant 0.
func (e *BDDEngine) AtMostOneTrue(bits ...TreeBitLocation) bool {
	return e.atMostOneTrue(bits, bdd.True)
}

func (e *BDDEngine) atMostOneTrue(bits []TreeBitLocation, assumption bdd.Node) bool {
	e.ensurePopulated()
	b := e.m.b
	exprs := make([]bdd.Node, len(bits))
	for i, loc := range bits {
		x, ok := e.location(loc)
		if !ok {
			return false
		}
		exprs[i] = x
	}
	for i := 0; i < len(exprs); i++ {
		for j := i + 1; j < len(exprs); j++ {
			if !b.IsZero(b.And(assumption, exprs[i], exprs[j])) {
				return false
			}
		}
	}
	return true
}

// AtLeastOneTrue reports whether the disjunction of the given bits is a
// tautology.
func (e *BDDEngine) AtLeastOneTrue(bits ...TreeBitLocation) bool {
	return e.atLeastOneTrue(bits, bdd.True)
}

func (e *BDDEngine) atLeastOneTrue(bits []TreeBitLocation, assumption bdd.Node) bool {
	e.ensurePopulated()
	b := e.m.b
	any := bdd.False
	for _, loc := range bits {
		x, ok := e.location(loc)
		if !ok {
			return false
		}
		any = b.Apply(any, x, bdd.OPor)
	}
	return b.IsZero(b.And(assumption, b.Not(any)))
}

// ImpliedNodeValue assumes every predicate bit holds its paired value and
// reports the concrete value this forces for the node, if every output bit
// is forced.
func (e *BDDEngine) ImpliedNodeValue(preds []BitPredicate, id ir.NodeID) (ir.Bits, bool) {
	return e.impliedNodeValue(preds, id, bdd.True)
}

func (e *BDDEngine) impliedNodeValue(preds []BitPredicate, id ir.NodeID, assumption bdd.Node) (ir.Bits, bool) {
	t := e.impliedNodeTernary(preds, id, assumption)
	return t.Value()
}

// ImpliedNodeTernary is ImpliedNodeValue without the full-determination
// requirement: bits the predicates do not force are reported unknown.
func (e *BDDEngine) ImpliedNodeTernary(preds []BitPredicate, id ir.NodeID) Ternary {
	return e.impliedNodeTernary(preds, id, bdd.True)
}

func (e *BDDEngine) impliedNodeTernary(preds []BitPredicate, id ir.NodeID, assumption bdd.Node) Ternary {
	e.ensurePopulated()
	b := e.m.b
	// One-time assumption: the conjunction of (bit == expected) for every
	// predicate. Predicates range over the total expression table, so a
	// fact about an unmodeled bit constrains its free variable and can
	// force any expression built over the same variable. A contradictory
	// conjunction is legal; it forces every bit (to 1, since that test
	// comes first).
	pred := assumption
	for _, p := range preds {
		x, _ := e.location(p.Loc)
		if !p.Value {
			x = b.Not(x)
		}
		pred = b.And(pred, x)
	}
	w := e.m.fn.Node(id).Width()
	t := NewTernary(w)
	for i := 0; i < w; i++ {
		x := e.m.expr(id, i)
		switch {
		case b.IsZero(b.And(pred, b.Not(x))):
			t.Set(i, true)
		case b.IsZero(b.And(pred, x)):
			t.Set(i, false)
		}
	}
	return t
}
