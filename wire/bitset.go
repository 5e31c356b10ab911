package wire

import (
	"math/bits"

	"github.com/wippyai/tide/errors"
)

// BitSet is a growable set of bit indices.
type BitSet []uint64

// Set marks bit i.
func (s *BitSet) Set(i int) {
	w := i / 64
	for len(*s) <= w {
		*s = append(*s, 0)
	}
	(*s)[w] |= 1 << (uint(i) % 64)
}

// Clear unmarks bit i.
func (s BitSet) Clear(i int) {
	if w := i / 64; w < len(s) {
		s[w] &^= 1 << (uint(i) % 64)
	}
}

// Test reports whether bit i is set.
func (s BitSet) Test(i int) bool {
	w := i / 64
	return w < len(s) && s[w]&(1<<(uint(i)%64)) != 0
}

// Len returns the index of the highest set bit plus one.
func (s BitSet) Len() int {
	for w := len(s) - 1; w >= 0; w-- {
		if s[w] != 0 {
			return w*64 + bits.Len64(s[w])
		}
	}
	return 0
}

// FixedBitSetSize returns the byte size of a fixed bit set of length bits.
func FixedBitSetSize(length int) int {
	return (length + 7) / 8
}

// WriteFixedBitSet appends s as ceil(length/8) bytes, bit i in byte i/8 at bit i%8.
func (b *Buffer) WriteFixedBitSet(s BitSet, length int) error {
	if n := s.Len(); n > length {
		return errors.Overflow(errors.PhaseEncode, nil, n, "fixed bit set")
	}
	out := make([]byte, FixedBitSetSize(length))
	for i := 0; i < length; i++ {
		if s.Test(i) {
			out[i/8] |= 1 << (uint(i) % 8)
		}
	}
	b.data = append(b.data, out...)
	return nil
}

// ReadFixedBitSet reads a fixed bit set of length bits.
func (b *Buffer) ReadFixedBitSet(length int) (BitSet, error) {
	p, err := b.ReadN(FixedBitSetSize(length))
	if err != nil {
		return nil, err
	}
	var s BitSet
	for i := 0; i < len(p)*8; i++ {
		if p[i/8]&(1<<(uint(i)%8)) != 0 {
			s.Set(i)
		}
	}
	return s, nil
}
