// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package ir

// Op identifies the operation computed by a node. The set is closed: every
// analysis in this module dispatches on it with an exhaustive switch.
type Op uint8

const (
	OpParam Op = iota // external input, no operands
	OpLiteral         // constant, no operands

	OpNot  // bitwise negation
	OpAnd  // n-ary bitwise conjunction
	OpOr   // n-ary bitwise disjunction
	OpXor  // n-ary bitwise exclusive or
	OpNand // negation of OpAnd
	OpNor  // negation of OpOr

	OpAndReduce // 1-bit conjunction of all operand bits
	OpOrReduce  // 1-bit disjunction of all operand bits
	OpXorReduce // 1-bit parity of all operand bits

	OpConcat   // bit concatenation, first operand most significant
	OpBitSlice // contiguous bit extraction
	OpZeroExt  // zero extension to a wider vector
	OpSignExt  // sign extension to a wider vector

	OpEq // 1-bit equality comparison
	OpNe // 1-bit disequality comparison

	OpSel       // case select driven by a selector value
	OpOneHotSel // disjunction of cases gated by selector bits

	OpAdd  // addition
	OpSub  // subtraction
	OpUMul // unsigned multiplication
	OpUDiv // unsigned division
	OpUMod // unsigned remainder
	OpULt  // unsigned less-than
	OpULe  // unsigned less-or-equal
	OpUGt  // unsigned greater-than
	OpUGe  // unsigned greater-or-equal
	OpShll // left shift by a variable amount
	OpShrl // logical right shift by a variable amount
)

var opnames = [...]string{
	OpParam:     "param",
	OpLiteral:   "literal",
	OpNot:       "not",
	OpAnd:       "and",
	OpOr:        "or",
	OpXor:       "xor",
	OpNand:      "nand",
	OpNor:       "nor",
	OpAndReduce: "and_reduce",
	OpOrReduce:  "or_reduce",
	OpXorReduce: "xor_reduce",
	OpConcat:    "concat",
	OpBitSlice:  "bit_slice",
	OpZeroExt:   "zero_ext",
	OpSignExt:   "sign_ext",
	OpEq:        "eq",
	OpNe:        "ne",
	OpSel:       "sel",
	OpOneHotSel: "one_hot_sel",
	OpAdd:       "add",
	OpSub:       "sub",
	OpUMul:      "umul",
	OpUDiv:      "udiv",
	OpUMod:      "umod",
	OpULt:       "ult",
	OpULe:       "ule",
	OpUGt:       "ugt",
	OpUGe:       "uge",
	OpShll:      "shll",
	OpShrl:      "shrl",
}

func (op Op) String() string {
	return opnames[op]
}
