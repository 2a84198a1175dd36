package stream

import "testing"

func TestOSEntropyFillsDest(t *testing.T) {
	e := NewOSEntropy()
	out := make([]byte, 256)
	if err := e.BlockingRead(out); err != nil {
		t.Fatalf("BlockingRead: %v", err)
	}
	allZero := true
	for _, b := range out {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatal("256 bytes of OS entropy were all zero")
	}
}
