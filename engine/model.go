// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package engine

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/hdl-tools/bitprobe/bdd"
	"github.com/hdl-tools/bitprobe/ir"
	"github.com/hdl-tools/bitprobe/logger"
)

// model maps every output bit of every node of one function to a decision
// diagram expression. Bits that could not, or should not, be modeled are
// backed by a fresh decision variable: the variable keeps downstream
// modeling sound (it constrains nothing) while the modeled mask records
// that the bit must be reported unknown.
//
// Variable order is fixed by the arena order of the function, then by bit
// index, and never changes afterwards.
type model struct {
	b       *bdd.BDD
	fn      *ir.Function
	exprs   [][]bdd.Node     // per node, per bit expression, total
	modeled []*bitset.BitSet // per node, bits with a derived expression

	truncated int // bits dropped by the path limit
	skipped   int // nodes excluded by the filter or by operation kind
}

// expensiveOp reports whether an operation kind is categorically excluded
// from modeling because its BDD size explodes combinatorially relative to
// the information gained.
func expensiveOp(op ir.Op) bool {
	switch op {
	case ir.OpAdd, ir.OpSub, ir.OpUMul, ir.OpUDiv, ir.OpUMod,
		ir.OpULt, ir.OpULe, ir.OpUGt, ir.OpUGe, ir.OpShll, ir.OpShrl:
		return true
	}
	return false
}

// buildModel traverses the function in arena (topological) order and builds
// the per-bit expressions honoring the node filter and the path limit.
func buildModel(fn *ir.Function, pathLimit int64, filter func(ir.NodeID) bool) *model {
	m := &model{
		b:       bdd.New(),
		fn:      fn,
		exprs:   make([][]bdd.Node, fn.NumNodes()),
		modeled: make([]*bitset.BitSet, fn.NumNodes()),
	}
	fn.Nodes(func(n *ir.Node) {
		w := n.Width()
		m.modeled[n.ID()] = bitset.New(uint(w))
		switch {
		case n.Op() == ir.OpLiteral:
			bits := make([]bdd.Node, w)
			for i := 0; i < w; i++ {
				bits[i] = m.b.From(n.Value().Bit(i))
			}
			m.exprs[n.ID()] = bits
			m.markAll(n.ID(), w)
		case n.Op() == ir.OpParam:
			m.exprs[n.ID()] = m.freshVars(w)
			m.markAll(n.ID(), w)
		case filter != nil && !filter(n.ID()), expensiveOp(n.Op()):
			m.exprs[n.ID()] = m.freshVars(w)
			m.skipped++
		default:
			bits := m.buildBits(n)
			for i := 0; i < w; i++ {
				if pathLimit > 0 && m.b.PathCount(bits[i]) > pathLimit {
					// Too many paths: drop the expression and fall back to a
					// fresh variable so the bit reads as unknown downstream.
					bits[i] = m.b.NewVar()
					m.truncated++
					continue
				}
				m.modeled[n.ID()].Set(uint(i))
			}
			m.exprs[n.ID()] = bits
		}
	})
	if m.truncated > 0 || m.skipped > 0 {
		log := logger.Logger()
		log.Debug().
			Str("function", fn.Name()).
			Int("truncatedBits", m.truncated).
			Int("skippedNodes", m.skipped).
			Msg("model built with reduced precision")
	}
	return m
}

func (m *model) markAll(id ir.NodeID, w int) {
	for i := 0; i < w; i++ {
		m.modeled[id].Set(uint(i))
	}
}

func (m *model) freshVars(w int) []bdd.Node {
	bits := make([]bdd.Node, w)
	for i := range bits {
		bits[i] = m.b.NewVar()
	}
	return bits
}

// expr returns the expression of one bit; it is total over in-range bits.
func (m *model) expr(id ir.NodeID, bit int) bdd.Node {
	return m.exprs[id][bit]
}

// bitExpr returns the expression of one bit, and whether the bit was
// actually modeled. Unmodeled bits must be reported unknown.
func (m *model) bitExpr(id ir.NodeID, bit int) (bdd.Node, bool) {
	return m.exprs[id][bit], m.modeled[id].Test(uint(bit))
}

// isModeled reports whether at least one bit of the node was modeled.
func (m *model) isModeled(id ir.NodeID) bool {
	return m.modeled[id].Any()
}

// buildBits combines the operand expressions of n according to its bitwise
// semantics. Operand expressions always exist: unmodeled operands are free
// variables, which is sound for every combination below.
func (m *model) buildBits(n *ir.Node) []bdd.Node {
	b := m.b
	ops := n.Operands()
	w := n.Width()
	out := make([]bdd.Node, w)
	switch n.Op() {
	case ir.OpNot:
		for i := 0; i < w; i++ {
			out[i] = b.Not(m.expr(ops[0], i))
		}
	case ir.OpAnd, ir.OpNand:
		for i := 0; i < w; i++ {
			acc := bdd.True
			for _, o := range ops {
				acc = b.Apply(acc, m.expr(o, i), bdd.OPand)
			}
			out[i] = acc
		}
		if n.Op() == ir.OpNand {
			m.negate(out)
		}
	case ir.OpOr, ir.OpNor:
		for i := 0; i < w; i++ {
			acc := bdd.False
			for _, o := range ops {
				acc = b.Apply(acc, m.expr(o, i), bdd.OPor)
			}
			out[i] = acc
		}
		if n.Op() == ir.OpNor {
			m.negate(out)
		}
	case ir.OpXor:
		for i := 0; i < w; i++ {
			acc := bdd.False
			for _, o := range ops {
				acc = b.Apply(acc, m.expr(o, i), bdd.OPxor)
			}
			out[i] = acc
		}
	case ir.OpAndReduce:
		acc := bdd.True
		for i := 0; i < m.fn.Node(ops[0]).Width(); i++ {
			acc = b.Apply(acc, m.expr(ops[0], i), bdd.OPand)
		}
		out[0] = acc
	case ir.OpOrReduce:
		acc := bdd.False
		for i := 0; i < m.fn.Node(ops[0]).Width(); i++ {
			acc = b.Apply(acc, m.expr(ops[0], i), bdd.OPor)
		}
		out[0] = acc
	case ir.OpXorReduce:
		acc := bdd.False
		for i := 0; i < m.fn.Node(ops[0]).Width(); i++ {
			acc = b.Apply(acc, m.expr(ops[0], i), bdd.OPxor)
		}
		out[0] = acc
	case ir.OpConcat:
		// The first operand holds the most significant bits: walk the
		// operand list backwards so bit 0 of the last operand lands at bit
		// 0 of the result. Pure reindexing, no combination cost.
		at := 0
		for k := len(ops) - 1; k >= 0; k-- {
			ow := m.fn.Node(ops[k]).Width()
			for i := 0; i < ow; i++ {
				out[at] = m.expr(ops[k], i)
				at++
			}
		}
	case ir.OpBitSlice:
		for i := 0; i < w; i++ {
			out[i] = m.expr(ops[0], n.SliceStart()+i)
		}
	case ir.OpZeroExt:
		ow := m.fn.Node(ops[0]).Width()
		for i := 0; i < w; i++ {
			if i < ow {
				out[i] = m.expr(ops[0], i)
			} else {
				out[i] = bdd.False
			}
		}
	case ir.OpSignExt:
		ow := m.fn.Node(ops[0]).Width()
		msb := m.expr(ops[0], ow-1)
		for i := 0; i < w; i++ {
			if i < ow {
				out[i] = m.expr(ops[0], i)
			} else {
				out[i] = msb
			}
		}
	case ir.OpEq:
		out[0] = m.equality(ops[0], ops[1])
	case ir.OpNe:
		out[0] = b.Not(m.equality(ops[0], ops[1]))
	case ir.OpSel:
		sel := ops[0]
		cases := ops[1:]
		var def []bdd.Node
		if n.SelHasDefault() {
			cases = ops[1 : len(ops)-1]
			def = m.exprs[ops[len(ops)-1]]
		}
		// Fold the cases back to front over the default (or the last case
		// when the cases cover the whole selector range).
		last := len(cases) - 1
		acc := make([]bdd.Node, w)
		if def != nil {
			copy(acc, def[:w])
		} else {
			copy(acc, m.exprs[cases[last]][:w])
			last--
		}
		for j := last; j >= 0; j-- {
			hit := m.selectorEquals(sel, j)
			for i := 0; i < w; i++ {
				acc[i] = b.Ite(hit, m.expr(cases[j], i), acc[i])
			}
		}
		copy(out, acc)
	case ir.OpOneHotSel:
		sel := ops[0]
		cases := ops[1:]
		for i := 0; i < w; i++ {
			acc := bdd.False
			for j, c := range cases {
				gated := b.Apply(m.expr(sel, j), m.expr(c, i), bdd.OPand)
				acc = b.Apply(acc, gated, bdd.OPor)
			}
			out[i] = acc
		}
	default:
		// expensiveOp kinds and sources are handled by the caller; reaching
		// here means the closed operation set grew without a handler.
		panic("engine: unhandled operation " + n.Op().String())
	}
	return out
}

func (m *model) negate(bits []bdd.Node) {
	for i := range bits {
		bits[i] = m.b.Not(bits[i])
	}
}

// equality builds the single-bit comparison of two equal-width operands as
// the conjunction of the per-bit XNORs.
func (m *model) equality(a, c ir.NodeID) bdd.Node {
	b := m.b
	acc := bdd.True
	for i := 0; i < m.fn.Node(a).Width(); i++ {
		same := b.Not(b.Apply(m.expr(a, i), m.expr(c, i), bdd.OPxor))
		acc = b.Apply(acc, same, bdd.OPand)
	}
	return acc
}

// selectorEquals builds the test "selector == value" for a constant value.
func (m *model) selectorEquals(sel ir.NodeID, value int) bdd.Node {
	b := m.b
	acc := bdd.True
	for k := 0; k < m.fn.Node(sel).Width(); k++ {
		bit := m.expr(sel, k)
		if value&(1<<uint(k)) == 0 {
			bit = b.Not(bit)
		}
		acc = b.Apply(acc, bit, bdd.OPand)
	}
	return acc
}
