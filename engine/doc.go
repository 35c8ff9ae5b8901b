// Copyright (c) 2026 the bitprobe authors
//
// MIT License

/*
Package engine implements a query engine that proves bit-level facts about
the nodes of an ir.Function using Binary Decision Diagrams.

The engine gives sharp answers about bit values and relationships between
bit values (relative to plain ternary abstract evaluation): whether a bit is
provably constant, whether one bit implies another, whether two bits are
semantically equal, whether a set of bits is mutually exclusive or covering.
The price is that BDDs can be slow in general and exponentially slow for
some operations such as arithmetic and comparisons, so those operations are
excluded from modeling and a per-expression path-count ceiling bounds the
size of what is kept.

Usage follows a strict populate-then-query protocol:

	e := engine.New(engine.PathLimit(1024))
	changed, err := e.Populate(f)
	...
	if e.Implies(engine.BitLocation(a, 0), engine.BitLocation(b, 0)) { ... }

Populate builds one BDD expression per output bit of every node of the
function and derives the known-bit table from it; queries are then answered
by Boolean combination of the stored expressions. Queries never change the
answer to a previously asked question; they only grow internal memoization
state. A populated engine is valid for the exact function snapshot it was
given and must be re-populated (or discarded) when the IR is mutated.

Unmodeled bits, whether excluded by the node filter, by operation kind, or
truncated by the path limit, are always reported unknown. Precision loss is
a first-class outcome, never an error.

SpecializeGiven and SpecializeGivenPredicate layer extra assumed facts over
a populated engine: the derived engine shares the base model, conjoins its
assumption into every query, and can be discarded independently. A
contradictory assumption is legal and makes every query vacuously true.
*/
package engine
