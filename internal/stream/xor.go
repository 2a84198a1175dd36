package stream

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/templexxx/xorsimd"
)

// XOR combines two byte streams bitwise. Both sub-reads are computed in
// parallel (stream1 into a scratch buffer on a second goroutine, stream2
// directly into dest on the calling goroutine) because both operands may
// be computation-heavy, a reseeding cipher in particular. Both reads run
// to completion and either side's error becomes the composite's error.
type XOR struct {
	stream1, stream2 ByteStream
}

// NewXOR returns a ByteStream that is the bitwise XOR of a and b.
func NewXOR(a, b ByteStream) *XOR {
	return &XOR{stream1: a, stream2: b}
}

// BlockingRead fills dest with stream1(dest) XOR stream2(dest).
func (x *XOR) BlockingRead(dest []byte) error {
	scratch := make([]byte, len(dest))

	var wg sync.WaitGroup
	var err1 error
	wg.Add(1)
	go func() {
		defer wg.Done()
		err1 = x.stream1.BlockingRead(scratch)
	}()

	err2 := x.stream2.BlockingRead(dest)
	wg.Wait()

	if err1 != nil {
		return errors.Wrap(err1, "xor: stream1 read")
	}
	if err2 != nil {
		return errors.Wrap(err2, "xor: stream2 read")
	}

	xorsimd.Bytes(dest, dest, scratch)
	return nil
}
