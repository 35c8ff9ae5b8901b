// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package bdd

// Operator describes the binary operations available in a call to Apply.
type Operator int32

const (
	OPand Operator = iota // Boolean conjunction
	OPxor                 // Exclusive or
	OPor                  // Disjunction
	opNot                 // Negation. Not valid in Apply, used to tag cache entries
	opIte                 // If-then-else. Same
)

var opnames = [5]string{
	OPand: "and",
	OPxor: "xor",
	OPor:  "or",
	opNot: "not",
	opIte: "ite",
}

func (op Operator) String() string {
	return opnames[op]
}

// opres gives the result of applying an operator to two terminal operands.
var opres = [3][2][2]Node{
	//                          00    01                   10    11
	OPand: {0: [2]Node{0: 0, 1: 0}, 1: [2]Node{0: 0, 1: 1}}, // 0001
	OPxor: {0: [2]Node{0: 0, 1: 1}, 1: [2]Node{0: 1, 1: 0}}, // 0110
	OPor:  {0: [2]Node{0: 0, 1: 1}, 1: [2]Node{0: 1, 1: 1}}, // 0111
}
