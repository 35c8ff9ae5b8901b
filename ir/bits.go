// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package ir

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Bits is a fixed-width bit-vector value. Bit 0 is the least significant
// bit. The zero value has width zero; widths are fixed at construction.
type Bits struct {
	width int
	set   *bitset.BitSet
}

// NewBits returns an all-zero bit-vector of the given width.
func NewBits(width int) Bits {
	if width < 0 {
		panic(fmt.Sprintf("ir: negative bit-vector width %d", width))
	}
	return Bits{width: width, set: bitset.New(uint(width))}
}

// BitsFromUint64 returns a bit-vector of the given width holding the low
// width bits of v.
func BitsFromUint64(width int, v uint64) Bits {
	b := NewBits(width)
	for i := 0; i < width && i < 64; i++ {
		b.set.SetTo(uint(i), v&(1<<uint(i)) != 0)
	}
	return b
}

// Width returns the number of bits in the vector.
func (b Bits) Width() int {
	return b.width
}

// Bit returns the value of bit i.
func (b Bits) Bit(i int) bool {
	b.checkbit(i)
	return b.set.Test(uint(i))
}

// SetBit sets the value of bit i.
func (b Bits) SetBit(i int, v bool) {
	b.checkbit(i)
	b.set.SetTo(uint(i), v)
}

// Uint64 returns the value of the vector as an unsigned integer. Vectors
// wider than 64 bits are truncated.
func (b Bits) Uint64() uint64 {
	var v uint64
	for i := 0; i < b.width && i < 64; i++ {
		if b.set.Test(uint(i)) {
			v |= 1 << uint(i)
		}
	}
	return v
}

// Equal reports whether two vectors have the same width and the same value.
func (b Bits) Equal(o Bits) bool {
	if b.width != o.width {
		return false
	}
	if b.set == nil || o.set == nil {
		return b.width == 0
	}
	return b.set.Equal(o.set)
}

// Clone returns an independent copy of the vector.
func (b Bits) Clone() Bits {
	c := NewBits(b.width)
	if b.set != nil {
		c.set = b.set.Clone()
	}
	return c
}

// String formats the vector in binary, most significant bit first.
func (b Bits) String() string {
	var sb strings.Builder
	sb.WriteString("0b")
	for i := b.width - 1; i >= 0; i-- {
		if b.set.Test(uint(i)) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (b Bits) checkbit(i int) {
	if i < 0 || i >= b.width {
		panic(fmt.Sprintf("ir: bit index %d out of range for width %d", i, b.width))
	}
}
