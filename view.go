// Package bitview reads and writes arbitrary bit ranges of fixed-width
// integers, with range-scoped arithmetic and bitwise transforms.
package bitview

// View is a read-only accessor over a copy of an integer value.
//
// Views are cheap to construct and are meant to be created at the call
// site and thrown away; they never alias the value they were built from.
type View[T Integer] struct {
	value T
}

// Of returns a View over a copy of v.
func Of[T Integer](v T) View[T] {
	return View[T]{value: v}
}

// Value returns the wrapped value.
func (v View[T]) Value() T {
	return v.value
}

// Width returns the bit width of T.
func (v View[T]) Width() int {
	return widthOf[T]()
}

func (v View[T]) raw() uint64 {
	return rawBits(v.value, widthOf[T]())
}

// Bit reports whether bit i is set.
func (v View[T]) Bit(i int) (bool, error) {
	if err := checkIndex(i, v.Width()); err != nil {
		return false, err
	}
	return (v.raw()>>uint(i))&1 == 1, nil
}

// First returns the n least-significant bits of the value, in place, with
// every higher bit cleared.
func (v View[T]) First(n int) (T, error) {
	width := v.Width()
	if err := checkCount(n, width); err != nil {
		return 0, err
	}
	if n == width {
		return v.value, nil
	}
	return T(firstBits(v.raw(), n)), nil
}

// Last returns the n most-significant bits of the value shifted down so
// that they start at bit 0.
func (v View[T]) Last(n int) (T, error) {
	width := v.Width()
	if err := checkCount(n, width); err != nil {
		return 0, err
	}
	if n == width {
		return v.value, nil
	}
	return T(lastBits(v.raw(), width, n)), nil
}

// Get returns the bits in r, right-aligned so that bit r.Start of the value
// becomes bit 0 of the result. An empty range reads as zero and a range
// covering the full width returns the value unchanged.
func (v View[T]) Get(r Range) (T, error) {
	width := v.Width()
	if err := checkRange(r, width); err != nil {
		return 0, err
	}
	if r.Size() == width {
		return v.value, nil
	}
	return T(rangedBits(v.raw(), r.Start, r.End)), nil
}

// Compare reports whether the bits in r equal match, ignoring every
// position that is set in wildcard.
func (v View[T]) Compare(r Range, match, wildcard T) (bool, error) {
	got, err := v.Get(r)
	if err != nil {
		return false, err
	}
	diff := got ^ match
	return wildcard&diff == diff, nil
}

// OnesCount returns the number of set bits in r.
func (v View[T]) OnesCount(r Range) (int, error) {
	if err := checkRange(r, v.Width()); err != nil {
		return 0, err
	}
	return onesCountRange(v.raw(), r.Start, r.End), nil
}
