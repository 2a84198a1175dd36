package writer

import (
	"log"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/xtaci/shredder/internal/pool"
	"github.com/xtaci/shredder/internal/shrederr"
)

// BlockWriter owns one dedicated goroutine that drains a receiver of
// blocks and vectored-writes them to a Sink, tracking total bytes
// accepted. Dropping a BlockWriter does not forcibly stop its goroutine:
// termination is driven by the sink reporting full, or by the upstream
// producer closing (which fails the next receive).
type BlockWriter struct {
	sink         Sink
	bytesWritten int64 // atomic, relaxed: throughput metric, not correctness
	finished     int32 // atomic bool
	done         chan struct{}
}

// New spawns the writer goroutine immediately.
func New(receiver pool.Receiver[[]byte], sink Sink) *BlockWriter {
	w := &BlockWriter{
		sink: sink,
		done: make(chan struct{}),
	}
	go w.run(receiver)
	return w
}

func (w *BlockWriter) run(r pool.Receiver[[]byte]) {
	defer close(w.done)
	defer atomic.StoreInt32(&w.finished, 1)

	for {
		first, ok := r.Receive()
		if !ok {
			log.Println("writer: upstream producer closed, stopping")
			return
		}

		batch := [][]byte{first}
	drainMore:
		for {
			v, gotValue, closed := r.TryReceive()
			switch {
			case closed:
				break drainMore
			case gotValue:
				batch = append(batch, v)
			default:
				break drainMore
			}
		}

		n, err := w.sink.WriteAll(batch)
		atomic.AddInt64(&w.bytesWritten, n)
		if err != nil {
			if errors.Is(err, shrederr.ErrDestinationFull) {
				return
			}
			log.Printf("writer: fatal write error: %+v", err)
			return
		}
	}
}

// BytesWritten reads the running total of bytes actually accepted by the
// sink (relaxed ordering; a throughput metric, not a correctness signal).
func (w *BlockWriter) BytesWritten() int64 {
	return atomic.LoadInt64(&w.bytesWritten)
}

// IsFinished reports whether the writer goroutine has exited.
func (w *BlockWriter) IsFinished() bool {
	return atomic.LoadInt32(&w.finished) != 0
}

// Join blocks until the writer goroutine has exited.
func (w *BlockWriter) Join() {
	<-w.done
}
