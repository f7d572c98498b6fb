package hashbits

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ipld/go-bitview"
	"github.com/multiformats/go-multicodec"
)

// ErrExhausted is returned when a Cursor runs past the end of its digest.
var ErrExhausted = errors.New("digest exhausted")

const wordBits = 64

// Digest is a hash output addressed bit by bit. Bit i of the digest is bit
// i%8 of byte i/8, so bit 0 is the least-significant bit of the first byte.
type Digest struct {
	code  multicodec.Code
	raw   []byte
	words []uint64
}

func newDigest(code multicodec.Code, raw []byte) Digest {
	words := make([]uint64, (len(raw)+7)/8)
	var buf [8]byte
	for i := range words {
		n := copy(buf[:], raw[i*8:])
		for j := n; j < len(buf); j++ {
			buf[j] = 0
		}
		words[i] = binary.LittleEndian.Uint64(buf[:])
	}
	return Digest{code: code, raw: raw, words: words}
}

// Code returns the multicodec code of the algorithm that produced d.
func (d Digest) Code() multicodec.Code {
	return d.code
}

// Bytes returns a copy of the raw digest bytes.
func (d Digest) Bytes() []byte {
	return append([]byte(nil), d.raw...)
}

// Len returns the digest length in bits.
func (d Digest) Len() int {
	return len(d.raw) * 8
}

// Bit reports whether digest bit i is set.
func (d Digest) Bit(i int) (bool, error) {
	if i < 0 || i >= d.Len() {
		return false, fmt.Errorf("%w: bit %d of a %d-bit digest", bitview.ErrBitIndexOutOfRange, i, d.Len())
	}
	return bitview.Of(d.words[i/wordBits]).Bit(i % wordBits)
}

// Chunk returns digest bits [from,to) as an integer, with bit from as its
// least-significant bit. At most 64 bits can be read at once; the chunk may
// straddle two words.
func (d Digest) Chunk(from, to int) (uint64, error) {
	if from < 0 || from > to || to > d.Len() || to-from > wordBits {
		return 0, fmt.Errorf("%w: chunk [%d,%d) of a %d-bit digest", bitview.ErrBitIndexOutOfRange, from, to, d.Len())
	}
	if from == to {
		return 0, nil
	}
	w, off := from/wordBits, from%wordBits
	size := to - from
	if off+size <= wordBits {
		return bitview.Of(d.words[w]).Get(bitview.Span(off, off+size))
	}

	// The chunk crosses into the next word: the tail of word w supplies the
	// low bits and the head of word w+1 the rest.
	lowSize := wordBits - off
	low, err := bitview.Of(d.words[w]).Get(bitview.Span(off, wordBits))
	if err != nil {
		return 0, err
	}
	high, err := bitview.Of(d.words[w+1]).First(size - lowSize)
	if err != nil {
		return 0, err
	}
	var chunk uint64
	m := bitview.Mut(&chunk)
	if err := m.SetRange(bitview.Span(0, lowSize), low); err != nil {
		return 0, err
	}
	if err := m.SetRange(bitview.Span(lowSize, size), high); err != nil {
		return 0, err
	}
	return chunk, nil
}

// Cursor returns a Cursor that reads d in bitWidth-sized chunks.
func (d Digest) Cursor(bitWidth int) (*Cursor, error) {
	if bitWidth < 1 || bitWidth > wordBits {
		return nil, fmt.Errorf("%w: bit width %d", bitview.ErrBitIndexOutOfRange, bitWidth)
	}
	return &Cursor{digest: d, bitWidth: bitWidth}, nil
}

// Cursor yields one trie index per depth from a Digest.
type Cursor struct {
	digest   Digest
	bitWidth int
	depth    int
}

// BitWidth returns the number of bits consumed per depth.
func (c *Cursor) BitWidth() int {
	return c.bitWidth
}

// Depth returns the depth that the next call to Next will read.
func (c *Cursor) Depth() int {
	return c.depth
}

// MaxDepth returns the number of whole chunks available in the digest.
func (c *Cursor) MaxDepth() int {
	return c.digest.Len() / c.bitWidth
}

// Index returns the chunk used at depth, without moving the cursor.
func (c *Cursor) Index(depth int) (uint64, error) {
	if depth < 0 || depth >= c.MaxDepth() {
		return 0, fmt.Errorf("%w: depth %d with %d-bit chunks", ErrExhausted, depth, c.bitWidth)
	}
	from := depth * c.bitWidth
	return c.digest.Chunk(from, from+c.bitWidth)
}

// Next returns the chunk at the current depth and descends one level.
func (c *Cursor) Next() (uint64, error) {
	index, err := c.Index(c.depth)
	if err != nil {
		return 0, err
	}
	c.depth++
	return index, nil
}
