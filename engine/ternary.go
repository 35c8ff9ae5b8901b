// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package engine

import (
	"fmt"
	"strings"

	"github.com/hdl-tools/bitprobe/ir"
)

// Ternary is the per-bit known/unknown state of one node's output: a pair
// of parallel bit vectors where known marks the bits with a provably
// constant value and value holds that constant. Value bits are normalized
// to 0 where the bit is not known, so two Ternary values describing the
// same state compare equal.
type Ternary struct {
	known ir.Bits
	value ir.Bits
}

// NewTernary returns an all-unknown ternary vector of the given width.
func NewTernary(width int) Ternary {
	return Ternary{known: ir.NewBits(width), value: ir.NewBits(width)}
}

// FromKnownBits builds a ternary vector from a known mask and a value
// vector of the same width.
func FromKnownBits(known, value ir.Bits) Ternary {
	if known.Width() != value.Width() {
		panic(fmt.Sprintf("engine: known mask width %d does not match value width %d", known.Width(), value.Width()))
	}
	t := Ternary{known: known.Clone(), value: ir.NewBits(value.Width())}
	for i := 0; i < known.Width(); i++ {
		if known.Bit(i) {
			t.value.SetBit(i, value.Bit(i))
		}
	}
	return t
}

// FromValue builds a fully-known ternary vector holding the given value.
func FromValue(value ir.Bits) Ternary {
	t := NewTernary(value.Width())
	for i := 0; i < value.Width(); i++ {
		t.Set(i, value.Bit(i))
	}
	return t
}

// Width returns the number of bits in the vector.
func (t Ternary) Width() int {
	return t.known.Width()
}

// Get returns whether bit i is known and, if so, its value.
func (t Ternary) Get(i int) (known, value bool) {
	return t.known.Bit(i), t.value.Bit(i)
}

// Set marks bit i as known with the given value.
func (t Ternary) Set(i int, value bool) {
	t.known.SetBit(i, true)
	t.value.SetBit(i, value)
}

// IsFullyKnown reports whether every bit of the vector is known.
func (t Ternary) IsFullyKnown() bool {
	for i := 0; i < t.Width(); i++ {
		if !t.known.Bit(i) {
			return false
		}
	}
	return true
}

// Value returns the concrete value of the vector if every bit is known.
func (t Ternary) Value() (ir.Bits, bool) {
	if !t.IsFullyKnown() {
		return ir.Bits{}, false
	}
	return t.value.Clone(), true
}

// Equal reports whether two ternary vectors have the same width and the
// same per-bit state.
func (t Ternary) Equal(o Ternary) bool {
	return t.known.Equal(o.known) && t.value.Equal(o.value)
}

// String formats the vector most significant bit first, with X for unknown
// bits, e.g. "0b1X0".
func (t Ternary) String() string {
	var sb strings.Builder
	sb.WriteString("0b")
	for i := t.Width() - 1; i >= 0; i-- {
		switch {
		case !t.known.Bit(i):
			sb.WriteByte('X')
		case t.value.Bit(i):
			sb.WriteByte('1')
		default:
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
