package stream

import "github.com/pkg/errors"

// SeedableCipher is any stream cipher that can be (re)constructed from a
// fixed-size seed read off a ByteStream. XSalsa20 is the only
// implementation in this package, but reseeding is written against the
// interface so a future cipher swap doesn't touch this file.
type SeedableCipher interface {
	ByteStream
}

// CipherFactory builds a fresh SeedableCipher from exactly SeedSize bytes.
type CipherFactory func(seed []byte) (SeedableCipher, error)

// Reseeding wraps a seedable cipher and a seed source, rekeying the inner
// cipher from fresh seed bytes every reseedEvery bytes of output.
type Reseeding struct {
	seedSource  ByteStream
	seedSize    int
	reseedEvery int64
	newCipher   CipherFactory
	inner       SeedableCipher // nil before the first reseed
	untilReseed int64          // bytes remaining in the inner cipher's budget
	seedScratch []byte
}

// NewReseeding constructs a generator that reseeds every reseedEvery bytes
// from seedSource, which must produce seedSize bytes per reseed.
func NewReseeding(seedSource ByteStream, seedSize int, reseedEvery int64, newCipher CipherFactory) *Reseeding {
	return &Reseeding{
		seedSource:  seedSource,
		seedSize:    seedSize,
		reseedEvery: reseedEvery,
		newCipher:   newCipher,
		untilReseed: 0, // forces a reseed before the very first byte
		seedScratch: make([]byte, seedSize),
	}
}

// BlockingRead services dest, reseeding as many times as necessary. The
// loop always reseeds first and reads second whenever the budget is
// exhausted, including the zero-budget case on the very first call: a
// naive "read zero bytes then recurse" formulation can spin forever when
// bytes_until_reseed lands on exactly zero mid-loop.
func (r *Reseeding) BlockingRead(dest []byte) error {
	n := 0
	for int64(len(dest)-n) > r.untilReseed {
		if r.untilReseed > 0 {
			if err := r.inner.BlockingRead(dest[n : n+int(r.untilReseed)]); err != nil {
				return errors.Wrap(err, "reseeding: inner cipher read before reseed")
			}
			n += int(r.untilReseed)
			r.untilReseed = 0
		}
		if err := r.reseed(); err != nil {
			return err
		}
	}
	if remaining := len(dest) - n; remaining > 0 {
		if err := r.inner.BlockingRead(dest[n:]); err != nil {
			return errors.Wrap(err, "reseeding: inner cipher read")
		}
		r.untilReseed -= int64(remaining)
	}
	return nil
}

func (r *Reseeding) reseed() error {
	if err := r.seedSource.BlockingRead(r.seedScratch); err != nil {
		return errors.Wrap(err, "reseeding: seed source exhausted")
	}
	inner, err := r.newCipher(r.seedScratch)
	if err != nil {
		return errors.Wrap(err, "reseeding: constructing inner cipher")
	}
	r.inner = inner
	r.untilReseed = r.reseedEvery
	return nil
}

// Clone returns a new generator with a cloned seed source and fresh state;
// clones do not share keystream position.
func (r *Reseeding) Clone(clonedSeedSource ByteStream) *Reseeding {
	return NewReseeding(clonedSeedSource, r.seedSize, r.reseedEvery, r.newCipher)
}
