// Package hashbits walks hash digests in fixed-width bit chunks, the way a
// hash array mapped trie consumes a key's hash one level at a time.
package hashbits

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"

	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
	"github.com/twmb/murmur3"
)

// Murmur3_128 is the multicodec code 0x22 for the 128-bit x64 murmur3
// hash, which go-multicodec lists as Murmur3X64_64.
const Murmur3_128 = multicodec.Code(0x22)

// Default is the hash algorithm used when none is chosen.
const Default = Murmur3_128

// ErrUnsupportedHash is returned for a multicodec code that names no
// supported hash algorithm.
var ErrUnsupportedHash = errors.New("unsupported hash algorithm")

// Hasher turns keys into digests with a fixed algorithm.
type Hasher struct {
	code multicodec.Code
}

// New returns a Hasher for the algorithm named by code. Identity, Sha2_256
// and Murmur3_128 are supported.
func New(code multicodec.Code) (*Hasher, error) {
	switch code {
	case multicodec.Identity, multicodec.Sha2_256, Murmur3_128:
		return &Hasher{code: code}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedHash, code)
	}
}

// Code returns the multicodec code of the Hasher's algorithm.
func (h *Hasher) Code() multicodec.Code {
	return h.code
}

// Sum hashes key.
func (h *Hasher) Sum(key []byte) Digest {
	var hasher hash.Hash
	switch h.code {
	case multicodec.Identity:
		return newDigest(h.code, append([]byte(nil), key...))
	case multicodec.Sha2_256:
		hasher = sha256.New()
	case Murmur3_128:
		hasher = murmur3.New128()
	default:
		// New rejects every other code.
		panic(fmt.Sprintf("unsupported hash algorithm: %s", h.code))
	}
	hasher.Write(key)
	return newDigest(h.code, hasher.Sum(nil))
}

// Multihash returns the digest wrapped in a self-describing multihash.
func (d Digest) Multihash() (multihash.Multihash, error) {
	return multihash.Encode(d.raw, uint64(d.code))
}
