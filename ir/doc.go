// Copyright (c) 2026 the bitprobe authors
//
// MIT License

/*
Package ir defines the dataflow intermediate representation consumed by the
analysis engine: functions made of bit-vector-valued nodes addressed by
stable integer identities.

A Function is an arena: nodes are created through the builder methods and
never move or change afterwards. Builder methods can only reference nodes
that already exist, so the arena order is a topological order (operands
always precede their users) and the engine can process a function in a
single forward sweep. Node identities are dense indices in creation order;
they double as the variable-ordering key of the decision diagrams built over
the function.

The operation set is a closed enumeration. Analyses dispatch on Op with
exhaustive switches; there is no open-ended extension point.
*/
package ir
