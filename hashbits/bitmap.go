package hashbits

import (
	"github.com/ipld/go-bitview"
)

// Slot resolves index against a sparse bitmap, where each set bit marks an
// occupied entry and entries are stored densely in bit order. It returns the
// dense position that index maps to and whether that entry is present; when
// it is absent, pos is where it would be inserted.
func Slot[T bitview.Integer](bitmap T, index int) (pos int, present bool, err error) {
	v := bitview.Of(bitmap)
	if present, err = v.Bit(index); err != nil {
		return 0, false, err
	}
	pos, err = v.OnesCount(bitview.Span(0, index))
	return pos, present, err
}

// Mark sets bit index of the bitmap and returns the dense position of the
// entry, as Slot would report it afterwards.
func Mark[T bitview.Integer](bitmap *T, index int) (int, error) {
	if err := bitview.Mut(bitmap).SetBit(index, true); err != nil {
		return 0, err
	}
	pos, _, err := Slot(*bitmap, index)
	return pos, err
}

// Unmark clears bit index of the bitmap.
func Unmark[T bitview.Integer](bitmap *T, index int) error {
	return bitview.Mut(bitmap).ClearBit(index)
}
