package bitview

import (
	"errors"
)

// ErrBitIndexOutOfRange is returned whenever a bit index, bit count or
// range does not fit within the width of the wrapped integer, or when a
// range's start lies past its end. Indices are never clamped.
var ErrBitIndexOutOfRange = errors.New("bit index out of range")

// ErrUnknownOp is returned by MutView.Apply for an Op outside the known set.
var ErrUnknownOp = errors.New("unknown bit operation")
