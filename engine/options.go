// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package engine

import "github.com/hdl-tools/bitprobe/ir"

// configs stores the construction parameters of a BDDEngine.
type configs struct {
	pathLimit int64
	filter    func(ir.NodeID) bool
}

// Option is a configuration option for New.
type Option func(*configs)

// PathLimit is a configuration option (function). Used as a parameter in New
// it sets the maximum number of root-to-terminal paths allowed in the BDD
// expression of one bit before the expression is truncated and the bit
// treated as unknown. The default (0) means no limit. Truncation trades
// precision for bounded model size; it never affects soundness.
func PathLimit(limit int64) Option {
	return func(c *configs) {
		if limit > 0 {
			c.pathLimit = limit
		}
	}
}

// NodeFilter is a configuration option (function). Used as a parameter in
// New it installs a predicate consulted for every node during Populate:
// nodes for which the predicate returns false are not modeled and all their
// output bits are treated as unknown, regardless of operation kind.
func NodeFilter(filter func(ir.NodeID) bool) Option {
	return func(c *configs) {
		c.filter = filter
	}
}
