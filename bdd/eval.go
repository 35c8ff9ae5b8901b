// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package bdd

import "fmt"

// Eval computes the value of the expression rooted at n under a complete
// assignment of the declared variables, where assignment[i] is the value of
// the i'th variable. This is the reference truth-table semantics of the
// diagram: it involves no interning or caching and is mainly useful for
// testing and cross-checking query results on small examples.
func (b *BDD) Eval(n Node, assignment []bool) bool {
	b.checknode(n)
	if len(assignment) < int(b.varnum) {
		panic(fmt.Sprintf("bdd: assignment of length %d for %d variables", len(assignment), b.varnum))
	}
	for n > 1 {
		if assignment[b.level(n)] {
			n = b.high(n)
		} else {
			n = b.low(n)
		}
	}
	return n == True
}
