// Package pool implements the bounded, multi-worker, multi-consumer
// producer that is the central concurrency primitive of the pipeline: a
// thread pool of independently-stateful workers feeding a bounded channel
// that any number of receivers can fan out from.
package pool

import (
	"log"
	"sync"

	"github.com/xtaci/shredder/internal/cancel"
)

// ProduceFunc is one worker's production closure. A factory is called once
// per worker so each worker's closure owns independent state (its own
// cipher instance, most importantly), see Factory.
type ProduceFunc[T any] func() (T, error)

// Factory returns a fresh, independent ProduceFunc each time it is called.
// Producer calls it exactly once per worker at construction time.
type Factory[T any] func() ProduceFunc[T]

// Producer is a thread pool of num_workers goroutines, each running its
// own ProduceFunc and sending results on one shared bounded channel.
// A blocked send is the pipeline's backpressure mechanism.
type Producer[T any] struct {
	ch        chan T
	cancel    cancel.Token
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New spawns numWorkers goroutines immediately; the returned Producer is
// already running.
func New[T any](numWorkers, bufferCapacity int, factory Factory[T]) *Producer[T] {
	p := &Producer[T]{
		ch:     make(chan T, bufferCapacity),
		cancel: cancel.New(),
	}
	for i := 0; i < numWorkers; i++ {
		produce := factory()
		p.wg.Add(1)
		go p.runWorker(produce)
	}
	return p
}

func (p *Producer[T]) runWorker(produce ProduceFunc[T]) {
	defer p.wg.Done()
	for !p.cancel.Cancelled() {
		v, err := produce()
		if err != nil {
			// Fatal to this worker and, under the current design, to the
			// whole pipeline: we cancel so sibling workers and the
			// shutdown drain converge, but the product already obtained
			// (none, here, the error came back instead of a value) is
			// never silently dropped; an error never carries a value.
			// Once every worker has stopped, the channel is closed so
			// receivers observe end-of-stream instead of blocking forever.
			log.Printf("pool: worker production failed, cancelling pipeline: %v", err)
			p.cancel.Cancel()
			go func() {
				p.wg.Wait()
				p.closeOnce.Do(func() { close(p.ch) })
			}()
			return
		}
		// A blocked send here is backpressure: intended, not a bug. Close
		// (below) relieves it by draining while the cancel flag is set, so
		// a worker that produced its last value just before cancellation
		// still observes the flag in bounded time instead of blocking
		// forever on a send nobody will ever receive.
		p.ch <- v
	}
}

// Receiver is a cheap, clonable handle onto a Producer's channel. Multiple
// receivers partition the stream: each product is delivered to exactly one
// receiver call, with no ordering guarantee across receivers.
type Receiver[T any] struct {
	ch <-chan T
}

// MakeReceiver returns a new receiver handle sharing this producer's
// channel.
func (p *Producer[T]) MakeReceiver() Receiver[T] {
	return Receiver[T]{ch: p.ch}
}

// Receive blocks for the next product. ok is false only once the channel
// has drained after the producer was closed or all its workers stopped
// following a production error (a benign end-of-stream to
// an observer, but typically fatal to a consumer that expected the
// pipeline to keep running).
func (r Receiver[T]) Receive() (v T, ok bool) {
	v, ok = <-r.ch
	return
}

// TryReceive is a non-blocking receive, used by the block writer's batch
// drain: gotValue is true only if a product was immediately available;
// closed is true only once the channel has been closed by
// Producer.Close, distinct from merely-empty-right-now.
func (r Receiver[T]) TryReceive() (v T, gotValue, closed bool) {
	select {
	case val, open := <-r.ch:
		if !open {
			return v, false, true
		}
		return val, true, false
	default:
		return v, false, false
	}
}

// NumProductsInBuffer returns the current channel length. Advisory only:
// the real value may change immediately after the call returns.
func (p *Producer[T]) NumProductsInBuffer() int {
	return len(p.ch)
}

// Close performs the two-phase shutdown: set the cancellation flag, then
// actively relieve backpressure by draining the channel while workers
// join, so a worker blocked in a send unblocks and re-checks the flag
// instead of running forever. Finally the channel is closed so that any
// receiver blocked in Receive wakes up with ok=false.
func (p *Producer[T]) Close() {
	p.cancel.Cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

drain:
	for {
		select {
		case <-p.ch:
			// discard, this is what unblocks a worker stuck mid-send
		case <-done:
			break drain
		}
	}
	p.closeOnce.Do(func() { close(p.ch) })
}
