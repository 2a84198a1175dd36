package monitor

import (
	"os"
	"testing"
	"time"
)

type fakeCounter struct {
	total int64
}

func (f *fakeCounter) BytesWritten() int64 { return f.total }

func TestRollingRateZeroElapsedIsSafe(t *testing.T) {
	r := newRollingRate(3)
	got := r.sample(100, 0)
	if got != 0 {
		t.Fatalf("expected 0 MB/s for zero elapsed time, got %f", got)
	}
}

func TestRollingRateAveragesOverWindow(t *testing.T) {
	r := newRollingRate(2)
	// 1 MiB/s, then 3 MiB/s: average should settle to 2 MiB/s once the
	// window fills.
	r.sample(1<<20, time.Second)
	got := r.sample(1<<20+3<<20, time.Second)
	if got < 1.9 || got > 2.1 {
		t.Fatalf("expected the rolling average to be close to 2 MB/s, got %f", got)
	}
}

func TestMonitorTickDoesNotPanicWithoutDepths(t *testing.T) {
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("opening %s: %v", os.DevNull, err)
	}
	defer devNull.Close()

	counter := &fakeCounter{}
	m := New(counter)
	m.out = devNull
	m.tick(time.Second)
	counter.total = 1024
	m.tick(time.Second)
}

func TestMonitorWithDepthIncludesAllSamplers(t *testing.T) {
	counter := &fakeCounter{}
	m := New(counter).
		WithDepth("seed", func() int { return 3 }).
		WithDepth("random", func() int { return 7 })
	if len(m.depths) != 2 {
		t.Fatalf("expected 2 registered depth samplers, got %d", len(m.depths))
	}
}

func TestMonitorStopEndsRunLoop(t *testing.T) {
	counter := &fakeCounter{}
	m := New(counter)
	go m.Run()
	// Give Run a moment to enter its select loop before stopping it.
	time.Sleep(10 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return: the monitor goroutine did not exit")
	}
}
