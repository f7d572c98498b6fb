package hashbits

import (
	"crypto/sha256"
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"
	"github.com/ipld/go-bitview"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
)

func identity(t *testing.T, b []byte) Digest {
	h, err := New(multicodec.Identity)
	qt.Assert(t, err, qt.IsNil)
	return h.Sum(b)
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, code := range []multicodec.Code{multicodec.Identity, multicodec.Sha2_256, Murmur3_128} {
		h, err := New(code)
		qt.Assert(t, err, qt.IsNil)
		qt.Assert(t, h.Code(), qt.Equals, code)
	}

	_, err := New(multicodec.Code(0x300000))
	qt.Assert(t, err, qt.ErrorIs, ErrUnsupportedHash)
}

func TestSum(t *testing.T) {
	t.Parallel()

	key := []byte("foo")

	d := identity(t, key)
	qt.Assert(t, d.Bytes(), qt.DeepEquals, key)
	qt.Assert(t, d.Len(), qt.Equals, 24)

	h, err := New(multicodec.Sha2_256)
	qt.Assert(t, err, qt.IsNil)
	want := sha256.Sum256(key)
	qt.Assert(t, h.Sum(key).Bytes(), qt.DeepEquals, want[:])

	qt.Assert(t, Default, qt.Equals, Murmur3_128)
	h, err = New(Default)
	qt.Assert(t, err, qt.IsNil)
	d = h.Sum(key)
	mh, err := d.Multihash()
	qt.Assert(t, err, qt.IsNil)
	decoded, err := multihash.Decode(mh)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, decoded.Code, qt.Equals, uint64(0x22))
	qt.Assert(t, d.Len(), qt.Equals, 128)
	qt.Assert(t, h.Sum(key).Bytes(), qt.DeepEquals, d.Bytes())
	qt.Assert(t, h.Sum([]byte("bar")).Bytes(), qt.Not(qt.DeepEquals), d.Bytes())
}

func TestMultihash(t *testing.T) {
	t.Parallel()

	h, err := New(multicodec.Sha2_256)
	qt.Assert(t, err, qt.IsNil)
	d := h.Sum([]byte("foo"))

	mh, err := d.Multihash()
	qt.Assert(t, err, qt.IsNil)
	decoded, err := multihash.Decode(mh)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, decoded.Code, qt.Equals, uint64(multicodec.Sha2_256))
	qt.Assert(t, decoded.Length, qt.Equals, 32)
	qt.Assert(t, decoded.Digest, qt.DeepEquals, d.Bytes())
}

func TestChunk(t *testing.T) {
	t.Parallel()

	d := identity(t, []byte{
		0b00001111, 0b01010101, 0, 0, 0, 0, 0, 0xf0,
		0x0f, 0xaa,
	})

	tests := []struct {
		from, to int
		want     uint64
	}{
		{0, 4, 0x0f},
		{4, 8, 0x00},
		{0, 8, 0x0f},
		{8, 16, 0x55},
		{8, 9, 1},
		{9, 10, 0},
		{3, 5, 0b01},
		{0, 16, 0x550f},
		{60, 64, 0xf},
		{60, 68, 0xff},
		{56, 72, 0x0ff0},
		{64, 80, 0xaa0f},
		{16, 80, 0xaa0ff00000000000},
		{5, 5, 0},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d-%d", test.from, test.to), func(t *testing.T) {
			got, err := d.Chunk(test.from, test.to)
			qt.Assert(t, err, qt.IsNil)
			qt.Assert(t, got, qt.Equals, test.want)
		})
	}

	for _, r := range [][2]int{{0, 81}, {-1, 4}, {8, 4}, {0, 65}} {
		_, err := d.Chunk(r[0], r[1])
		qt.Assert(t, err, qt.ErrorIs, bitview.ErrBitIndexOutOfRange)
	}
}

func TestDigestBytesIsolated(t *testing.T) {
	t.Parallel()

	d := identity(t, []byte{0x0f, 0xf0})
	b := d.Bytes()
	b[0] = 0xff

	qt.Assert(t, d.Bytes(), qt.DeepEquals, []byte{0x0f, 0xf0})
	chunk, err := d.Chunk(0, 8)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, chunk, qt.Equals, uint64(0x0f))
}

func TestDigestBit(t *testing.T) {
	t.Parallel()

	d := identity(t, []byte{0b00001111, 0b01010101})
	qt.Assert(t, d.Len(), qt.Equals, 16)

	for i, want := range []bool{true, true, true, true, false, false, false, false, true, false, true, false, true, false, true, false} {
		got, err := d.Bit(i)
		qt.Assert(t, err, qt.IsNil)
		qt.Assert(t, got, qt.Equals, want, qt.Commentf("bit %d", i))
	}
	_, err := d.Bit(16)
	qt.Assert(t, err, qt.ErrorIs, bitview.ErrBitIndexOutOfRange)
}

func TestCursor(t *testing.T) {
	t.Parallel()

	d := identity(t, []byte{0x21, 0x43, 0x65})
	c, err := d.Cursor(4)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, c.BitWidth(), qt.Equals, 4)
	qt.Assert(t, c.MaxDepth(), qt.Equals, 6)

	var got []uint64
	for {
		index, err := c.Next()
		if err != nil {
			qt.Assert(t, err, qt.ErrorIs, ErrExhausted)
			break
		}
		got = append(got, index)
	}
	if diff := cmp.Diff([]uint64{1, 2, 3, 4, 5, 6}, got); diff != "" {
		t.Fatalf("unexpected indices (-want +got):\n%s", diff)
	}
	qt.Assert(t, c.Depth(), qt.Equals, 6)

	index, err := c.Index(2)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, index, qt.Equals, uint64(3))

	// A width that does not divide the digest leaves a partial tail unread.
	c, err = d.Cursor(5)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, c.MaxDepth(), qt.Equals, 4)
	_, err = c.Index(4)
	qt.Assert(t, err, qt.ErrorIs, ErrExhausted)

	for _, width := range []int{0, -3, 65} {
		_, err := d.Cursor(width)
		qt.Assert(t, err, qt.ErrorIs, bitview.ErrBitIndexOutOfRange)
	}
}

func TestSlot(t *testing.T) {
	t.Parallel()

	var bitmap uint32
	for _, index := range []int{7, 2, 30} {
		_, err := Mark(&bitmap, index)
		qt.Assert(t, err, qt.IsNil)
	}
	qt.Assert(t, bitmap, qt.Equals, uint32(1<<2|1<<7|1<<30))

	tests := []struct {
		index   int
		pos     int
		present bool
	}{
		{0, 0, false},
		{2, 0, true},
		{3, 1, false},
		{7, 1, true},
		{8, 2, false},
		{30, 2, true},
		{31, 3, false},
	}
	for _, test := range tests {
		pos, present, err := Slot(bitmap, test.index)
		qt.Assert(t, err, qt.IsNil)
		qt.Assert(t, pos, qt.Equals, test.pos, qt.Commentf("index %d", test.index))
		qt.Assert(t, present, qt.Equals, test.present, qt.Commentf("index %d", test.index))
	}

	pos, err := Mark(&bitmap, 5)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, pos, qt.Equals, 1)
	qt.Assert(t, Unmark(&bitmap, 5), qt.IsNil)
	qt.Assert(t, bitmap, qt.Equals, uint32(1<<2|1<<7|1<<30))

	_, _, err = Slot(bitmap, 32)
	qt.Assert(t, err, qt.ErrorIs, bitview.ErrBitIndexOutOfRange)
	_, err = Mark(&bitmap, 32)
	qt.Assert(t, err, qt.ErrorIs, bitview.ErrBitIndexOutOfRange)
}

// TestTrieWalk indexes a handful of keys the way a trie level would, and
// checks that every key lands in the slot its hash chunk points at.
func TestTrieWalk(t *testing.T) {
	t.Parallel()

	h, err := New(Default)
	qt.Assert(t, err, qt.IsNil)

	var bitmap uint64
	slots := map[uint64]string{}
	for _, key := range []string{"foo", "bar", "baz", "qux", "quux"} {
		c, err := h.Sum([]byte(key)).Cursor(6)
		qt.Assert(t, err, qt.IsNil)
		index, err := c.Next()
		qt.Assert(t, err, qt.IsNil)
		qt.Assert(t, index < 64, qt.IsTrue)
		if _, ok := slots[index]; ok {
			continue
		}
		slots[index] = key
		_, err = Mark(&bitmap, int(index))
		qt.Assert(t, err, qt.IsNil)
	}

	count, err := bitview.Of(bitmap).OnesCount(bitview.Span(0, 64))
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, count, qt.Equals, len(slots))
	for index := range slots {
		_, present, err := Slot(bitmap, int(index))
		qt.Assert(t, err, qt.IsNil)
		qt.Assert(t, present, qt.IsTrue)
	}
}
