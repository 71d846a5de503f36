// Package sampling provides the cryptographically secure randomness source
// used by the polynomial samplers (spec.md §4.2) and the distributions built
// on top of it.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/zeebo/blake3"
)

// Source is a pluggable source of uniformly random bytes. Every sampler in
// this module consumes one, so swapping the backend (e.g. for deterministic
// tests) never touches sampler code.
type Source interface {
	io.Reader
}

// KeyedPRNG is a deterministic, seekable-from-seed random source built on
// blake3's keyed hashing in XOF mode. Two PRNGs seeded with the same key
// produce byte-identical streams, which is what lets per-thread samplers
// avoid colliding (spec.md §5: "samplers must never produce duplicate
// streams across threads") by deriving one keyed stream per thread from a
// shared master key plus a thread index.
type KeyedPRNG struct {
	xof *blake3.Hasher
	rd  io.Reader
}

// NewKeyedPRNG returns a PRNG keyed on the given 32-byte key. If key is nil
// or empty, a fresh random key is drawn from crypto/rand.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
	}

	k := make([]byte, 32)
	copy(k, key)

	h, err := blake3.NewKeyed(k)
	if err != nil {
		return nil, err
	}

	return &KeyedPRNG{xof: h, rd: h.Digest()}, nil
}

// Read implements io.Reader by draining the XOF stream.
func (p *KeyedPRNG) Read(b []byte) (int, error) {
	return p.rd.Read(b)
}

// Reset rewinds the stream to its start, reproducing the same sequence of
// bytes from the beginning.
func (p *KeyedPRNG) Reset() {
	p.rd = p.xof.Digest()
}

// DeriveThreadSource returns an independent keyed stream for worker
// threadIdx, derived from the same master key, so concurrent samplers never
// share or duplicate a stream.
func (p *KeyedPRNG) DeriveThreadSource(threadIdx int) (*KeyedPRNG, error) {
	var idx [8]byte
	binary.LittleEndian.PutUint64(idx[:], uint64(threadIdx))

	var master [32]byte
	if _, err := p.xof.Digest().Read(master[:]); err != nil {
		return nil, err
	}

	h := blake3.New()
	_, _ = h.Write(master[:])
	_, _ = h.Write(idx[:])
	sum := h.Sum(nil)

	return NewKeyedPRNG(sum)
}
