// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package bdd

// _DEFAULTCACHESIZE is the default number of entries in each operation
// cache. A cache size of 10 000 works well even for large examples.
const _DEFAULTCACHESIZE int = 10000

// _DEFAULTNODESIZE is the default initial capacity of the node table. The
// table grows without bound; the initial value only avoids early copies.
const _DEFAULTNODESIZE int = 1 << 10

// configs stores the values of the different parameters of a BDD.
type configs struct {
	nodesize  int // initial capacity of the node table
	cachesize int // number of entries in each operation cache
}

func makeconfigs() *configs {
	return &configs{
		nodesize:  _DEFAULTNODESIZE,
		cachesize: _DEFAULTCACHESIZE,
	}
}

// Option is a configuration option for New.
type Option func(*configs)

// Nodesize is a configuration option (function). Used as a parameter in New
// it sets a preferred initial capacity for the node table. The table can
// grow during computation; the initial value has no effect on results.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size > 2 {
			c.nodesize = size
		}
	}
}

// Cachesize is a configuration option (function). Used as a parameter in New
// it sets the number of entries in each operation cache. The caches are
// direct-mapped and never resized, so the value bounds the memory spent on
// memoization.
func Cachesize(size int) Option {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}
