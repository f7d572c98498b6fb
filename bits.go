package bitview

import (
	"fmt"
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Integer is the set of machine integers that a View can wrap.
//
// Every operation works on the raw two's-complement bit pattern of the
// value, so signed and unsigned types of the same width behave alike.
type Integer interface {
	constraints.Integer
}

// widthOf returns the number of bits in T.
func widthOf[T Integer]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// lowMask returns a word with the low n bits set, for n in [0, 64].
func lowMask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(n) - 1
}

// rawBits returns the bit pattern of v as an unsigned word, with every bit
// at or above width cleared. Sign extension from the conversion is dropped.
func rawBits[T Integer](v T, width int) uint64 {
	return uint64(v) & lowMask(width)
}

// firstBits keeps bits [0,n) of p.
func firstBits(p uint64, n int) uint64 {
	return p & lowMask(n)
}

// lastBits moves bits [width-n,width) of p down to [0,n).
func lastBits(p uint64, width, n int) uint64 {
	if n == 0 {
		return 0
	}
	return firstBits(p, width) >> uint(width-n)
}

// rangedBits extracts bits [from,to) of p, right-aligned so that bit from
// becomes bit 0. Bit order is always LSB-first.
func rangedBits(p uint64, from, to int) uint64 {
	size := to - from
	if size == 0 {
		return 0
	}
	if size == 64 {
		return p
	}
	return (p & (lowMask(size) << uint(from))) >> uint(from)
}

// splicedBits replaces bits [from,to) of the width-bit word p with the low
// to-from bits of v. Bits of v beyond the range size are discarded, so the
// flanks on either side of the range always survive untouched.
func splicedBits(p uint64, width, from, to int, v uint64) uint64 {
	size := to - from
	if size == 0 {
		return p
	}
	v &= lowMask(size)
	if size == width {
		return v
	}
	right := firstBits(p, from)
	left := lastBits(p, width, width-to)
	if to < 64 {
		left <<= uint(to)
	} else {
		left = 0
	}
	return left | right | v<<uint(from)
}

func onesCountRange(p uint64, from, to int) int {
	return bits.OnesCount64(rangedBits(p, from, to))
}

func checkIndex(i, width int) error {
	if i < 0 || i >= width {
		return fmt.Errorf("%w: bit %d of a %d-bit value", ErrBitIndexOutOfRange, i, width)
	}
	return nil
}

func checkCount(n, width int) error {
	if n < 0 || n > width {
		return fmt.Errorf("%w: %d bits of a %d-bit value", ErrBitIndexOutOfRange, n, width)
	}
	return nil
}

func checkRange(r Range, width int) error {
	if r.Start < 0 || r.Start > r.End || r.End > width {
		return fmt.Errorf("%w: range %v of a %d-bit value", ErrBitIndexOutOfRange, r, width)
	}
	return nil
}
