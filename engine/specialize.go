// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package engine

import (
	"fmt"

	"github.com/hdl-tools/bitprobe/bdd"
	"github.com/hdl-tools/bitprobe/ir"
)

// SpecializeGiven returns a derived engine that assumes, on top of this
// engine's model, the known bits of every given ternary. The derived engine
// shares the model without copying it; its lifetime is independent of the
// base engine and discarding it leaves the base untouched. A contradictory
// set of givens is legal and makes every query on the derived engine
// vacuously true.
func (e *BDDEngine) SpecializeGiven(givens map[ir.NodeID]Ternary) Engine {
	e.ensurePopulated()
	return &assumingEngine{base: e, assumption: e.givensAssumption(bdd.True, givens)}
}

// SpecializeGivenPredicate returns a derived engine that assumes the named
// select arms are the taken ones.
func (e *BDDEngine) SpecializeGivenPredicate(states []PredicateState) Engine {
	e.ensurePopulated()
	return &assumingEngine{base: e, assumption: e.predicateAssumption(bdd.True, states)}
}

// givensAssumption conjoins onto base one (bit == value) term per known bit
// of every given. Terms range over the total expression table: a fact about
// an unmodeled bit constrains its free variable, which also constrains
// every modeled expression built over that variable.
func (e *BDDEngine) givensAssumption(base bdd.Node, givens map[ir.NodeID]Ternary) bdd.Node {
	b := e.m.b
	assumption := base
	for id, t := range givens {
		n := e.m.fn.Node(id)
		if t.Width() != n.Width() {
			panic(fmt.Sprintf("engine: given of width %d for node n%d of width %d", t.Width(), id, n.Width()))
		}
		for i := 0; i < t.Width(); i++ {
			known, value := t.Get(i)
			if !known {
				continue
			}
			x := e.m.expr(id, i)
			if !value {
				x = b.Not(x)
			}
			assumption = b.And(assumption, x)
		}
	}
	return assumption
}

// predicateAssumption conjoins onto base the "arm taken" condition of every
// predicate state: selector equality for OpSel, a set selector bit for
// OpOneHotSel.
func (e *BDDEngine) predicateAssumption(base bdd.Node, states []PredicateState) bdd.Node {
	b := e.m.b
	assumption := base
	for _, s := range states {
		n := e.m.fn.Node(s.Sel)
		switch n.Op() {
		case ir.OpSel:
			sel := n.Operands()[0]
			arms := len(n.Operands()) - 1
			if n.SelHasDefault() {
				arms--
			}
			if s.Arm < 0 || s.Arm >= arms {
				panic(fmt.Sprintf("engine: arm %d out of range for select n%d with %d cases", s.Arm, s.Sel, arms))
			}
			assumption = b.And(assumption, e.m.selectorEquals(sel, s.Arm))
		case ir.OpOneHotSel:
			sel := n.Operands()[0]
			if s.Arm < 0 || s.Arm >= e.m.fn.Node(sel).Width() {
				panic(fmt.Sprintf("engine: arm %d out of range for one_hot_sel n%d", s.Arm, s.Sel))
			}
			assumption = b.And(assumption, e.m.expr(sel, s.Arm))
		default:
			panic(fmt.Sprintf("engine: predicate state on n%d which is a %s, not a select", s.Sel, n.Op()))
		}
	}
	return assumption
}

// assumingEngine forwards every query to the base engine with an extra
// conjoined assumption. It holds no state of its own beyond the assumption
// node, which is created at specialization time and immutable afterwards.
type assumingEngine struct {
	base       *BDDEngine
	assumption bdd.Node
}

var _ Engine = (*assumingEngine)(nil)

// Populate always fails: a specialized engine is bound to the snapshot its
// base engine was populated from.
func (a *assumingEngine) Populate(f *ir.Function) (bool, error) {
	return false, fmt.Errorf("engine: cannot populate a specialized engine")
}

func (a *assumingEngine) IsTracked(id ir.NodeID) bool {
	return a.base.IsTracked(id)
}

func (a *assumingEngine) KnownBits(id ir.NodeID) Ternary {
	return a.base.knownBits(id, a.assumption)
}

func (a *assumingEngine) Implies(x, y TreeBitLocation) bool {
	return a.base.implies(x, y, a.assumption)
}

func (a *assumingEngine) KnownEquals(x, y TreeBitLocation) bool {
	return a.base.knownEquals(x, y, a.assumption)
}

func (a *assumingEngine) KnownNotEquals(x, y TreeBitLocation) bool {
	return a.base.knownNotEquals(x, y, a.assumption)
}

func (a *assumingEngine) AtMostOneTrue(bits ...TreeBitLocation) bool {
	return a.base.atMostOneTrue(bits, a.assumption)
}

func (a *assumingEngine) AtLeastOneTrue(bits ...TreeBitLocation) bool {
	return a.base.atLeastOneTrue(bits, a.assumption)
}

func (a *assumingEngine) ImpliedNodeValue(preds []BitPredicate, id ir.NodeID) (ir.Bits, bool) {
	return a.base.impliedNodeValue(preds, id, a.assumption)
}

func (a *assumingEngine) ImpliedNodeTernary(preds []BitPredicate, id ir.NodeID) Ternary {
	return a.base.impliedNodeTernary(preds, id, a.assumption)
}

// SpecializeGiven layers further facts on top of this engine's assumption;
// the result still shares the base model.
func (a *assumingEngine) SpecializeGiven(givens map[ir.NodeID]Ternary) Engine {
	return &assumingEngine{base: a.base, assumption: a.base.givensAssumption(a.assumption, givens)}
}

func (a *assumingEngine) SpecializeGivenPredicate(states []PredicateState) Engine {
	return &assumingEngine{base: a.base, assumption: a.base.predicateAssumption(a.assumption, states)}
}
