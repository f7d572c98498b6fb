package bitview

import (
	"fmt"
)

// MutView is a mutable accessor over an integer's storage.
//
// Writes land in the referenced storage immediately, and every read goes
// through the current stored value, so a MutView holds no state of its
// own. A MutView must not be shared between goroutines without external
// synchronization.
type MutView[T Integer] struct {
	p *T
}

// Mut returns a MutView over the integer that p points to.
func Mut[T Integer](p *T) MutView[T] {
	return MutView[T]{p: p}
}

// View returns a read-only View of the current stored value.
func (m MutView[T]) View() View[T] {
	return Of(*m.p)
}

// Value returns the current stored value.
func (m MutView[T]) Value() T {
	return *m.p
}

// Width returns the bit width of T.
func (m MutView[T]) Width() int {
	return widthOf[T]()
}

// Bit reports whether bit i is set. See View.Bit.
func (m MutView[T]) Bit(i int) (bool, error) {
	return m.View().Bit(i)
}

// First returns the n least-significant bits. See View.First.
func (m MutView[T]) First(n int) (T, error) {
	return m.View().First(n)
}

// Last returns the n most-significant bits. See View.Last.
func (m MutView[T]) Last(n int) (T, error) {
	return m.View().Last(n)
}

// Get returns the bits in r. See View.Get.
func (m MutView[T]) Get(r Range) (T, error) {
	return m.View().Get(r)
}

// Compare matches the bits in r against match. See View.Compare.
func (m MutView[T]) Compare(r Range, match, wildcard T) (bool, error) {
	return m.View().Compare(r, match, wildcard)
}

// OnesCount returns the number of set bits in r.
func (m MutView[T]) OnesCount(r Range) (int, error) {
	return m.View().OnesCount(r)
}

// SetBit sets bit i to 1 if bit is true and to 0 otherwise.
func (m MutView[T]) SetBit(i int, bit bool) error {
	if err := checkIndex(i, m.Width()); err != nil {
		return err
	}
	one := T(1) << uint(i)
	*m.p &^= one
	if bit {
		*m.p |= one
	}
	return nil
}

// ClearBit clears bit i.
func (m MutView[T]) ClearBit(i int) error {
	if err := checkIndex(i, m.Width()); err != nil {
		return err
	}
	*m.p &^= T(1) << uint(i)
	return nil
}

// ToggleBit flips bit i.
func (m MutView[T]) ToggleBit(i int) error {
	if err := checkIndex(i, m.Width()); err != nil {
		return err
	}
	*m.p ^= T(1) << uint(i)
	return nil
}

// SetRange writes the low r.Size() bits of value into r, preserving every
// bit outside of r. Higher bits of value are dropped rather than spilling
// into the neighbouring bits. An empty range is a no-op.
func (m MutView[T]) SetRange(r Range, value T) error {
	width := m.Width()
	if err := checkRange(r, width); err != nil {
		return err
	}
	if r.Empty() {
		return nil
	}
	if r.Size() == width {
		*m.p = value
		return nil
	}
	p := rawBits(*m.p, width)
	*m.p = T(splicedBits(p, width, r.Start, r.End, rawBits(value, width)))
	return nil
}

// Transform reads the bits in r, combines them with operand using fn at
// the native width of T, and writes the result back into r. Any part of the
// result that does not fit in r is discarded.
func (m MutView[T]) Transform(r Range, operand T, fn func(a, b T) T) error {
	v, err := m.Get(r)
	if err != nil {
		return err
	}
	if r.Empty() {
		return nil
	}
	return m.SetRange(r, fn(v, operand))
}

// Apply runs op over r. The operand is ignored for unary operations.
func (m MutView[T]) Apply(op Op, r Range, operand T) error {
	fn := binaryFunc[T](op, r.Size())
	if fn == nil {
		return fmt.Errorf("%w: %d", ErrUnknownOp, int(op))
	}
	return m.Transform(r, operand, fn)
}

func (m MutView[T]) Add(r Range, operand T) error { return m.Apply(OpAdd, r, operand) }
func (m MutView[T]) Sub(r Range, operand T) error { return m.Apply(OpSub, r, operand) }
func (m MutView[T]) Mul(r Range, operand T) error { return m.Apply(OpMul, r, operand) }

// Div divides the bits in r by operand. A zero operand panics with the
// runtime's integer divide by zero error.
func (m MutView[T]) Div(r Range, operand T) error { return m.Apply(OpDiv, r, operand) }

func (m MutView[T]) And(r Range, operand T) error { return m.Apply(OpAnd, r, operand) }
func (m MutView[T]) Or(r Range, operand T) error  { return m.Apply(OpOr, r, operand) }
func (m MutView[T]) Xor(r Range, operand T) error { return m.Apply(OpXor, r, operand) }

// Not complements the bits in r.
func (m MutView[T]) Not(r Range) error { return m.Apply(OpNot, r, 0) }

// Lsh shifts the bits in r left by operand. Bits shifted past the top of r
// are lost; an operand that is negative or at least r.Size() clears r.
func (m MutView[T]) Lsh(r Range, operand T) error { return m.Apply(OpLsh, r, operand) }

// Rsh shifts the bits in r right by operand, with the same saturation as Lsh.
func (m MutView[T]) Rsh(r Range, operand T) error { return m.Apply(OpRsh, r, operand) }
