package writer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xtaci/shredder/internal/shrederr"
)

func TestMemSinkAcceptsUpToCapacity(t *testing.T) {
	s := NewMemSink(10)
	n, err := s.WriteAll([][]byte{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if n != 6 {
		t.Fatalf("expected 6 bytes accepted, got %d", n)
	}
}

func TestMemSinkReportsFullOnOverflow(t *testing.T) {
	s := NewMemSink(5)
	n, err := s.WriteAll([][]byte{{1, 2, 3}, {4, 5, 6, 7}})
	if !errors.Is(err, shrederr.ErrDestinationFull) {
		t.Fatalf("expected ErrDestinationFull, got %v", err)
	}
	if n != 5 {
		t.Fatalf("expected exactly 5 bytes accepted before overflow, got %d", n)
	}
	if !bytes.Equal(s.Bytes(), []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("unexpected sink contents: %v", s.Bytes())
	}
}

func TestMemSinkZeroCapacityRejectsImmediately(t *testing.T) {
	s := NewMemSink(0)
	n, err := s.WriteAll([][]byte{{1}})
	if !errors.Is(err, shrederr.ErrDestinationFull) {
		t.Fatalf("expected ErrDestinationFull, got %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 bytes accepted, got %d", n)
	}
}
