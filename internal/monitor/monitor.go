// Package monitor implements the throughput monitor: a passive, read-only
// observer that samples the writer's byte counter and the producers'
// buffer depths once per tick and renders a one-line status to standard
// output.
package monitor

import (
	"fmt"
	"os"
	"time"
)

// ByteCounter is satisfied by *writer.BlockWriter; kept as an interface so
// this package does not need to import writer.
type ByteCounter interface {
	BytesWritten() int64
}

// DepthSampler reports a producer's current, advisory buffer occupancy.
// Backed directly by pool.Producer.NumProductsInBuffer, a non-consuming
// read of the buffered channel's length.
type DepthSampler func() int

// Monitor samples a writer's byte counter and any number of named depth
// samplers at a fixed tick interval, rendering a single overwritten status
// line. It performs no mutation of the pipeline.
type Monitor struct {
	writer  ByteCounter
	depths  []namedDepth
	out     *os.File
	rate    *rollingRate
	stop    chan struct{}
	stopped chan struct{}
}

type namedDepth struct {
	label   string
	sampler DepthSampler
}

// New constructs a monitor against writer's byte counter, rendering to
// os.Stdout.
func New(writer ByteCounter) *Monitor {
	return &Monitor{
		writer:  writer,
		out:     os.Stdout,
		rate:    newRollingRate(5),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// WithDepth registers a named buffer-depth sampler (e.g. "seed", "random")
// to include in the rendered status line.
func (m *Monitor) WithDepth(label string, sampler DepthSampler) *Monitor {
	m.depths = append(m.depths, namedDepth{label: label, sampler: sampler})
	return m
}

// Run ticks once per second until Stop is called, rendering the status
// line on each tick. Intended to be run in its own goroutine.
func (m *Monitor) Run() {
	defer close(m.stopped)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.tick(now.Sub(last))
			last = now
		}
	}
}

func (m *Monitor) tick(elapsed time.Duration) {
	total := m.writer.BytesWritten()
	mbPerSec := m.rate.sample(total, elapsed)

	line := fmt.Sprintf("\rwritten: %12d bytes  rate: %8.2f MB/s", total, mbPerSec)
	for _, d := range m.depths {
		line += fmt.Sprintf("  %s-buffer: %d", d.label, d.sampler())
	}
	fmt.Fprint(m.out, line)
}

// Stop ends the monitor goroutine and waits for it to exit.
func (m *Monitor) Stop() {
	close(m.stop)
	<-m.stopped
}

// rollingRate computes a simple moving average of bytes/sec over the last
// n samples, so the displayed rate doesn't jitter tick-to-tick the way an
// instantaneous delta/elapsed would.
type rollingRate struct {
	window    []float64
	size      int
	pos       int
	filled    bool
	prevTotal int64
}

func newRollingRate(size int) *rollingRate {
	return &rollingRate{window: make([]float64, size), size: size}
}

func (r *rollingRate) sample(total int64, elapsed time.Duration) float64 {
	delta := total - r.prevTotal
	r.prevTotal = total
	secs := elapsed.Seconds()
	var mbPerSec float64
	if secs > 0 {
		mbPerSec = float64(delta) / secs / (1 << 20)
	}
	r.window[r.pos] = mbPerSec
	r.pos = (r.pos + 1) % r.size
	if r.pos == 0 {
		r.filled = true
	}

	n := r.pos
	if r.filled {
		n = r.size
	}
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += r.window[i]
	}
	return sum / float64(n)
}
