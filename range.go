package bitview

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a half-open span of bit positions [Start, End), counted from the
// least-significant bit. A Range with Start == End is empty.
type Range struct {
	Start, End int
}

// Span returns the range [start, end).
func Span(start, end int) Range {
	return Range{Start: start, End: end}
}

// Size returns the number of bits covered by r.
func (r Range) Size() int {
	return r.End - r.Start
}

// Empty reports whether r covers no bits.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// String formats r as a half-open interval, "[start,end)".
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// ParseRange parses "s..e", "s:e" or a lone bit index "i", which selects
// the single bit [i,i+1). Bounds are not checked against any width.
func ParseRange(s string) (Range, error) {
	sep, n := strings.Index(s, ".."), 2
	if sep < 0 {
		sep, n = strings.Index(s, ":"), 1
	}
	if sep < 0 {
		i, err := strconv.Atoi(s)
		if err != nil {
			return Range{}, fmt.Errorf("parse range %q: %w", s, err)
		}
		return Span(i, i+1), nil
	}
	start, err := strconv.Atoi(s[:sep])
	if err != nil {
		return Range{}, fmt.Errorf("parse range %q: %w", s, err)
	}
	end, err := strconv.Atoi(s[sep+n:])
	if err != nil {
		return Range{}, fmt.Errorf("parse range %q: %w", s, err)
	}
	return Span(start, end), nil
}
