package stream

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/salsa20/salsa"
)

// SeedSize is the number of bytes required to key an XSalsa20 stream: a
// 32-byte key followed by a 24-byte nonce.
const SeedSize = 32 + 24

// XSalsa20 is a stream-cipher keystream keyed from a 56-byte seed. It is
// byte-aligned and invariant to call chunking: reading N bytes in one
// call and reading the same N bytes split across several calls yields
// identical output. This lets the reseeding generator and the
// byte-stream/block-source adapters hand the same logical stream back
// and forth across arbitrary buffer sizes.
type XSalsa20 struct {
	subKey      [32]byte // HSalsa20(key, nonce[:16]), computed once at construction
	nonceSuffix [8]byte  // nonce[16:24], the inner salsa20 nonce
	counter     uint64   // 8-byte little-endian counter, salsa20 block-indexed
	offset      int      // byte offset within the current 64-byte block
	block       [64]byte
}

// NewXSalsa20 keys a stream from seed, which must be exactly SeedSize
// bytes: the first 32 bytes are the key, the last 24 are the nonce.
func NewXSalsa20(seed []byte) (*XSalsa20, error) {
	if len(seed) != SeedSize {
		return nil, errors.Errorf("xsalsa20: seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	var key [32]byte
	var hNonce [16]byte
	copy(key[:], seed[:32])
	copy(hNonce[:], seed[32:48])

	x := &XSalsa20{}
	salsa.HSalsa20(&x.subKey, &hNonce, &key, &salsa.Sigma)
	copy(x.nonceSuffix[:], seed[48:56])
	return x, nil
}

// BlockingRead zeroes dest then applies the keystream, advancing the
// internal counter/offset so a subsequent call continues the same logical
// stream regardless of how this call's length relates to the 64-byte
// salsa20 block size.
func (x *XSalsa20) BlockingRead(dest []byte) error {
	for i := range dest {
		dest[i] = 0
	}
	n := 0
	for n < len(dest) {
		if x.offset == 0 {
			x.fillBlock()
		}
		avail := 64 - x.offset
		want := len(dest) - n
		take := avail
		if want < take {
			take = want
		}
		for i := 0; i < take; i++ {
			dest[n+i] = x.block[x.offset+i]
		}
		n += take
		x.offset += take
		if x.offset == 64 {
			x.offset = 0
			x.counter++
		}
	}
	return nil
}

// fillBlock produces one 64-byte salsa20 keystream block at the current
// counter value: the inner nonce is the seed's trailing 8 bytes followed
// by the little-endian block counter, keyed by the HSalsa20 subkey derived
// once at construction.
func (x *XSalsa20) fillBlock() {
	var innerNonce [16]byte
	copy(innerNonce[:8], x.nonceSuffix[:])
	putUint64LE(innerNonce[8:16], x.counter)

	var zero [64]byte
	salsa.XORKeyStream(x.block[:], zero[:], &innerNonce, &x.subKey)
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}
