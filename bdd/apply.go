// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package bdd

import "fmt"

// Not returns the negation of the expression corresponding to node n. It
// negates a BDD by exchanging all references to the zero-terminal with
// references to the one-terminal and vice versa.
func (b *BDD) Not(n Node) Node {
	b.checknode(n)
	return b.not(n)
}

func (b *BDD) not(n Node) Node {
	if n == False {
		return True
	}
	if n == True {
		return False
	}
	if res := b.matchnot(n); res >= 0 {
		return res
	}
	low := b.not(b.low(n))
	high := b.not(b.high(n))
	return b.setnot(n, b.makenode(b.level(n), low, high))
}

// Apply performs the basic bdd operations with two operands. Left and right
// are the operands and op is the requested operation, one of:
//
//	Identifier    Description        Truth table
//
//	OPand         logical and        [0,0,0,1]
//	OPxor         logical xor        [0,1,1,0]
//	OPor          logical or         [0,1,1,1]
func (b *BDD) Apply(left, right Node, op Operator) Node {
	b.checknode(left)
	b.checknode(right)
	if op > OPor {
		panic(fmt.Sprintf("bdd: unauthorized operation (%s) in Apply", op))
	}
	return b.apply(left, right, op)
}

func (b *BDD) apply(left, right Node, op Operator) Node {
	// terminal shortcuts that do not need a node lookup
	switch op {
	case OPand:
		if left == right {
			return left
		}
		if left == False || right == False {
			return False
		}
		if left == True {
			return right
		}
		if right == True {
			return left
		}
	case OPor:
		if left == right {
			return left
		}
		if left == True || right == True {
			return True
		}
		if left == False {
			return right
		}
		if right == False {
			return left
		}
	case OPxor:
		if left == right {
			return False
		}
		if left == False {
			return right
		}
		if right == False {
			return left
		}
		if left == True {
			return b.not(right)
		}
		if right == True {
			return b.not(left)
		}
	}

	// remaining cases where the two operands are constants
	if left < 2 && right < 2 {
		return opres[op][left][right]
	}
	if res := b.matchapply(op, left, right); res >= 0 {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var res Node
	switch {
	case leftlvl == rightlvl:
		low := b.apply(b.low(left), b.low(right), op)
		high := b.apply(b.high(left), b.high(right), op)
		res = b.makenode(leftlvl, low, high)
	case leftlvl < rightlvl:
		low := b.apply(b.low(left), right, op)
		high := b.apply(b.high(left), right, op)
		res = b.makenode(leftlvl, low, high)
	default:
		low := b.apply(left, b.low(right), op)
		high := b.apply(left, b.high(right), op)
		res = b.makenode(rightlvl, low, high)
	}
	return b.setapply(op, left, right, res)
}

// And returns the conjunction of a sequence of nodes, True when the sequence
// is empty.
func (b *BDD) And(n ...Node) Node {
	res := True
	for _, v := range n {
		res = b.Apply(res, v, OPand)
	}
	return res
}

// Or returns the disjunction of a sequence of nodes, False when the sequence
// is empty.
func (b *BDD) Or(n ...Node) Node {
	res := False
	for _, v := range n {
		res = b.Apply(res, v, OPor)
	}
	return res
}

// Xor returns the exclusive or of two nodes.
func (b *BDD) Xor(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPxor)
}

// Ite, short for if-then-else operator, computes the BDD for the expression
// [(f & g) | (!f & h)] more efficiently than doing the three operations
// separately.
func (b *BDD) Ite(f, g, h Node) Node {
	b.checknode(f)
	b.checknode(g)
	b.checknode(h)
	return b.ite(f, g, h)
}

// ite_low returns n.low if p is the smallest of the three levels, otherwise
// the recursion must not descend into n and it returns n unchanged.
func (b *BDD) ite_low(p, q, r int32, n Node) Node {
	if p > q || p > r {
		return n
	}
	return b.low(n)
}

func (b *BDD) ite_high(p, q, r int32, n Node) Node {
	if p > q || p > r {
		return n
	}
	return b.high(n)
}

// min3 returns the smallest value between p, q and r.
func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r { // p <= q && p <= r
			return p
		}
		return r // r < p <= q
	}
	if q <= r { // q < p && q <= r
		return q
	}
	return r // r < q < p
}

func (b *BDD) ite(f, g, h Node) Node {
	switch {
	case f == True:
		return g
	case f == False:
		return h
	case g == h:
		return g
	case g == True && h == False:
		return f
	case g == False && h == True:
		return b.not(f)
	}
	if res := b.matchite(f, g, h); res >= 0 {
		return res
	}
	p := b.level(f)
	q := b.level(g)
	r := b.level(h)
	low := b.ite(b.ite_low(p, q, r, f), b.ite_low(q, p, r, g), b.ite_low(r, p, q, h))
	high := b.ite(b.ite_high(p, q, r, f), b.ite_high(q, p, r, g), b.ite_high(r, p, q, h))
	res := b.makenode(min3(p, q, r), low, high)
	return b.setite(f, g, h, res)
}
