// Copyright (c) 2026 the bitprobe authors
//
// MIT License

/*
Package bdd implements reduced ordered Binary Decision Diagrams (BDD), the
data structure used by the analysis engine to represent one Boolean
expression per bit of a modeled IR node.

Each vertex in the diagram is a triple (level, low, high) where level is the
index of a decision variable and low/high are the branches taken when the
variable is false/true. Vertices are interned in a unicity table so that
structurally identical subgraphs share a single index: two nodes denote the
same Boolean function exactly when they are the same integer. The two
constant functions are always kept at index 0 (False) and 1 (True), which
makes tautology and unsatisfiability checks a simple identity comparison.

Variables are created with NewVar and are ordered by creation; the order is
fixed for the lifetime of the diagram and there is no dynamic reordering.

Binary combinations are computed with Apply using the classical recursive
descent over levels, memoized in fixed-size operation caches. The caches are
internal state only: they grow and evict as a side effect of queries but can
never change the result of a combination. Nodes are never garbage collected;
the store is append-only, so a Node stays valid for the lifetime of the BDD.

Every vertex also carries the number of paths from itself to a terminal,
computed when the vertex is interned. Path counts are a size heuristic used
by callers to truncate expressions that grow too large; they play no part in
the Boolean semantics.
*/
package bdd
