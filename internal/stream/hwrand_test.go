package stream

import "testing"

func TestHWRandOrZeroForceDisableYieldsZero(t *testing.T) {
	h := NewHWRandOrZero(true)
	out := make([]byte, 64)
	for i := range out {
		out[i] = 0xFF
	}
	if err := h.BlockingRead(out); err != nil {
		t.Fatalf("BlockingRead: %v", err)
	}
	for i, b := range out {
		if b != 0 {
			t.Fatalf("byte %d: expected zero with forceDisable, got %#x", i, b)
		}
	}
}

func TestHWRandOrZeroIsSafeAsXOROperand(t *testing.T) {
	h := NewHWRandOrZero(true)
	entropy := newRepeatingStream([]byte{0x12, 0x34, 0x56})
	x := NewXOR(h, entropy)

	want := make([]byte, 32)
	if err := newRepeatingStream([]byte{0x12, 0x34, 0x56}).BlockingRead(want); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, 32)
	if err := x.BlockingRead(got); err != nil {
		t.Fatalf("BlockingRead: %v", err)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("byte %d: XOR with a zeroed operand must pass the other operand through unmixed", i)
		}
	}
}
