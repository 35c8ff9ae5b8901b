// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package engine

import (
	"fmt"

	"github.com/hdl-tools/bitprobe/ir"
)

// TreeBitLocation addresses one bit of one node's output. Path is the
// structural path into an aggregate-typed result; every node in this IR
// produces a plain bit vector, so a non-empty path is a usage error and is
// rejected when the location is used in a query.
type TreeBitLocation struct {
	Node ir.NodeID
	Path []int
	Bit  int
}

// BitLocation returns the location of bit index bit of the given node.
func BitLocation(node ir.NodeID, bit int) TreeBitLocation {
	return TreeBitLocation{Node: node, Bit: bit}
}

func (l TreeBitLocation) String() string {
	return fmt.Sprintf("n%d[%d]", l.Node, l.Bit)
}

// BitPredicate pairs a bit location with the value it is assumed to hold in
// an ImpliedNodeValue or ImpliedNodeTernary query.
type BitPredicate struct {
	Loc   TreeBitLocation
	Value bool
}

// PredicateState names one arm of a select node: "the case with index Arm
// is the selected one". For OpSel this asserts that the selector equals
// Arm; for OpOneHotSel it asserts that selector bit Arm is set.
type PredicateState struct {
	Sel ir.NodeID
	Arm int
}

// Engine is the query capability implemented by the BDD engine and by its
// specialized derivations. All query methods panic when called before a
// successful Populate, and whenever a location is malformed (bit index out
// of the node's width, non-empty structural path); malformed queries are
// programmer errors, not reportable conditions.
type Engine interface {
	// Populate builds the model for a function body and recomputes the
	// known-bit state to a fixpoint. It reports whether the known-bit state
	// changed relative to the previous populate call. Specialized engines
	// cannot be populated and return an error.
	Populate(f *ir.Function) (bool, error)

	// IsTracked reports whether at least one output bit of the node was
	// modeled.
	IsTracked(id ir.NodeID) bool

	// KnownBits returns the per-bit known/unknown state of the node's
	// output.
	KnownBits(id ir.NodeID) Ternary

	// Implies reports whether bit a being 1 forces bit b to be 1.
	Implies(a, b TreeBitLocation) bool

	// KnownEquals reports whether bits a and b are provably equal under
	// every assignment of the free variables.
	KnownEquals(a, b TreeBitLocation) bool

	// KnownNotEquals reports whether bits a and b provably differ under
	// every assignment of the free variables.
	KnownNotEquals(a, b TreeBitLocation) bool

	// AtMostOneTrue reports whether at most one of the given bits can be 1,
	// proven pairwise. It is vacuously true for the empty and the singleton
	// set.
	AtMostOneTrue(bits ...TreeBitLocation) bool

	// AtLeastOneTrue reports whether the disjunction of the given bits is a
	// tautology.
	AtLeastOneTrue(bits ...TreeBitLocation) bool

	// ImpliedNodeValue assumes every predicate bit holds its paired value
	// and reports the concrete value this forces for the node, if every
	// output bit is forced.
	ImpliedNodeValue(preds []BitPredicate, id ir.NodeID) (ir.Bits, bool)

	// ImpliedNodeTernary is ImpliedNodeValue without the full-determination
	// requirement: bits the predicates do not force are reported unknown.
	ImpliedNodeTernary(preds []BitPredicate, id ir.NodeID) Ternary

	// SpecializeGiven returns a derived engine that assumes the known bits
	// of every given ternary, sharing this engine's model.
	SpecializeGiven(givens map[ir.NodeID]Ternary) Engine

	// SpecializeGivenPredicate returns a derived engine that assumes the
	// named select arms are the taken ones, sharing this engine's model.
	SpecializeGivenPredicate(states []PredicateState) Engine
}

// IsKnown reports whether the bit at the given location is provably
// constant.
func IsKnown(e Engine, loc TreeBitLocation) bool {
	known, _ := e.KnownBits(loc.Node).Get(loc.Bit)
	return known
}

// KnownValue returns the provably constant value of the bit at the given
// location, if there is one.
func KnownValue(e Engine, loc TreeBitLocation) (bool, bool) {
	known, value := e.KnownBits(loc.Node).Get(loc.Bit)
	return value, known
}

// IsFullyKnown reports whether every output bit of the node is provably
// constant.
func IsFullyKnown(e Engine, id ir.NodeID) bool {
	return e.KnownBits(id).IsFullyKnown()
}

// IsAllZeros reports whether every output bit of the node is provably 0.
func IsAllZeros(e Engine, id ir.NodeID) bool {
	t := e.KnownBits(id)
	for i := 0; i < t.Width(); i++ {
		known, value := t.Get(i)
		if !known || value {
			return false
		}
	}
	return true
}

// IsAllOnes reports whether every output bit of the node is provably 1.
func IsAllOnes(e Engine, id ir.NodeID) bool {
	t := e.KnownBits(id)
	for i := 0; i < t.Width(); i++ {
		known, value := t.Get(i)
		if !known || !value {
			return false
		}
	}
	return true
}
