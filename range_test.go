package bitview

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestParseRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Range
	}{
		{"4..8", Span(4, 8)},
		{"0:32", Span(0, 32)},
		{"5", Span(5, 6)},
		{"7..7", Span(7, 7)},
		{"8..4", Span(8, 4)},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			got, err := ParseRange(test.in)
			qt.Assert(t, err, qt.IsNil)
			qt.Assert(t, got, qt.Equals, test.want)
		})
	}

	for _, in := range []string{"", "a..b", "4..", ":8", "1.5"} {
		_, err := ParseRange(in)
		qt.Assert(t, err, qt.ErrorMatches, `parse range ".*": .*`)
	}
}

func TestRangeBasics(t *testing.T) {
	t.Parallel()

	r := Span(20, 24)
	qt.Assert(t, r.Size(), qt.Equals, 4)
	qt.Assert(t, r.Empty(), qt.IsFalse)
	qt.Assert(t, r.String(), qt.Equals, "[20,24)")
	qt.Assert(t, Span(3, 3).Empty(), qt.IsTrue)
	qt.Assert(t, Range{}.Size(), qt.Equals, 0)
}

func TestOpNames(t *testing.T) {
	t.Parallel()

	for op := OpAdd; op <= maxOpVal; op++ {
		qt.Assert(t, op.IsValid(), qt.IsTrue)
		qt.Assert(t, ParseOp(op.String()), qt.Equals, op)
	}
	qt.Assert(t, ParseOp("XOR"), qt.Equals, OpXor)
	qt.Assert(t, ParseOp("rotate"), qt.Equals, OpUnknown)
	qt.Assert(t, OpUnknown.IsValid(), qt.IsFalse)
	qt.Assert(t, Op(42).String(), qt.Equals, "<unknown>")
	qt.Assert(t, OpNot.Unary(), qt.IsTrue)
	qt.Assert(t, OpAdd.Unary(), qt.IsFalse)
}
