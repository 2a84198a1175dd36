package stream

import (
	"bytes"
	"testing"
)

// repeatingStream fills every read with a fixed repeating byte pattern,
// independent of how the read is chunked, useful for predicting XOR
// output exactly in a test.
type repeatingStream struct {
	pattern []byte
	pos     int
}

func newRepeatingStream(pattern []byte) *repeatingStream {
	return &repeatingStream{pattern: pattern}
}

func (r *repeatingStream) BlockingRead(dest []byte) error {
	for i := range dest {
		dest[i] = r.pattern[r.pos%len(r.pattern)]
		r.pos++
	}
	return nil
}

func TestXORSelfCancellation(t *testing.T) {
	a := newRepeatingStream([]byte{0xAA, 0x55, 0x3C})
	b := newRepeatingStream([]byte{0xAA, 0x55, 0x3C})
	x := NewXOR(a, b)

	out := make([]byte, 1<<20)
	if err := x.BlockingRead(out); err != nil {
		t.Fatalf("BlockingRead: %v", err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("byte %d: XOR of a stream with itself must be zero, got %#x", i, v)
		}
	}
}

func TestXORMatchesBytewiseXOR(t *testing.T) {
	a := newRepeatingStream([]byte{0x0F, 0xF0, 0x12, 0x34})
	b := newRepeatingStream([]byte{0x01, 0x02, 0x03})
	x := NewXOR(a, b)

	n := 4096
	out := make([]byte, n)
	if err := x.BlockingRead(out); err != nil {
		t.Fatalf("BlockingRead: %v", err)
	}

	wantA := make([]byte, n)
	wantB := make([]byte, n)
	refA := newRepeatingStream([]byte{0x0F, 0xF0, 0x12, 0x34})
	refB := newRepeatingStream([]byte{0x01, 0x02, 0x03})
	if err := refA.BlockingRead(wantA); err != nil {
		t.Fatal(err)
	}
	if err := refB.BlockingRead(wantB); err != nil {
		t.Fatal(err)
	}
	want := make([]byte, n)
	for i := range want {
		want[i] = wantA[i] ^ wantB[i]
	}
	if !bytes.Equal(out, want) {
		t.Fatal("XOR output must equal the bytewise XOR of the two operand streams")
	}
}

func TestXORPropagatesEitherSideError(t *testing.T) {
	failing := ByteStreamFunc(func(dest []byte) error { return ErrEndOfStream })
	ok := newRepeatingStream([]byte{0x01})

	x1 := NewXOR(failing, ok)
	if err := x1.BlockingRead(make([]byte, 16)); err == nil {
		t.Fatal("expected stream1's error to propagate")
	}

	x2 := NewXOR(ok, failing)
	if err := x2.BlockingRead(make([]byte, 16)); err == nil {
		t.Fatal("expected stream2's error to propagate")
	}
}
