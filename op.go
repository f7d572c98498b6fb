package bitview

import (
	"strings"
)

// Op names one of the range-scoped transforms a MutView can apply.
type Op int

const (
	OpUnknown Op = iota // An unknown operation.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpAnd
	OpOr
	OpXor
	OpNot // Complement; the only unary operation.
	OpLsh
	OpRsh
	maxOpVal Op = iota - 1
)

var opNames = [...]string{
	OpUnknown: "<unknown>",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpDiv:     "div",
	OpAnd:     "and",
	OpOr:      "or",
	OpXor:     "xor",
	OpNot:     "not",
	OpLsh:     "lsh",
	OpRsh:     "rsh",
}

// IsValid reports whether op names a known operator.
func (op Op) IsValid() bool {
	return op > OpUnknown && op <= maxOpVal
}

// Unary reports whether op ignores its operand.
func (op Op) Unary() bool {
	return op == OpNot
}

// String returns the lowercase name of op, as accepted by ParseOp.
func (op Op) String() string {
	if !op.IsValid() {
		return opNames[OpUnknown]
	}
	return opNames[op]
}

// ParseOp returns the Op named by s, or OpUnknown if s is not recognized.
func ParseOp(s string) Op {
	s = strings.ToLower(s)
	for op := OpAdd; op <= maxOpVal; op++ {
		if opNames[op] == s {
			return op
		}
	}
	return OpUnknown
}

// binaryFunc returns the native-width operator behind op. size is the width
// of the range being transformed and bounds the shift amount.
func binaryFunc[T Integer](op Op, size int) func(a, b T) T {
	switch op {
	case OpAdd:
		return func(a, b T) T { return a + b }
	case OpSub:
		return func(a, b T) T { return a - b }
	case OpMul:
		return func(a, b T) T { return a * b }
	case OpDiv:
		// Division by zero panics, exactly like the native operator.
		return func(a, b T) T { return a / b }
	case OpAnd:
		return func(a, b T) T { return a & b }
	case OpOr:
		return func(a, b T) T { return a | b }
	case OpXor:
		return func(a, b T) T { return a ^ b }
	case OpNot:
		return func(a, _ T) T { return ^a }
	case OpLsh:
		return func(a, b T) T {
			if !shiftInRange(b, size) {
				return 0
			}
			return a << uint(b)
		}
	case OpRsh:
		return func(a, b T) T {
			if !shiftInRange(b, size) {
				return 0
			}
			return a >> uint(b)
		}
	default:
		return nil
	}
}

// shiftInRange reports whether b is a usable shift amount for a size-bit
// range. Negative amounts and amounts of size or more saturate to zero.
func shiftInRange[T Integer](b T, size int) bool {
	return b >= 0 && uint64(b) < uint64(size)
}
