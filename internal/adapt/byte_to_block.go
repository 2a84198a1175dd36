package adapt

import "github.com/xtaci/shredder/internal/stream"

// ByteStreamAsBlockProducer turns a byte stream into a BlockSource of
// fixed blockSize blocks by allocating a fresh buffer and calling
// BlockingRead into it. This is the default way random data enters the
// writer path: plugged into pool.New as a worker's produce function so
// fixed-size blocks are generated in parallel and buffered.
type ByteStreamAsBlockProducer struct {
	wrapped   stream.ByteStream
	blockSize int
}

// NewByteStreamAsBlockProducer wraps a byte stream to emit blockSize
// blocks.
func NewByteStreamAsBlockProducer(wrapped stream.ByteStream, blockSize int) *ByteStreamAsBlockProducer {
	return &ByteStreamAsBlockProducer{wrapped: wrapped, blockSize: blockSize}
}

// BlockingRead implements stream.BlockSource.
func (b *ByteStreamAsBlockProducer) BlockingRead() ([]byte, error) {
	block := make([]byte, b.blockSize)
	if err := b.wrapped.BlockingRead(block); err != nil {
		return nil, err
	}
	return block, nil
}

// ProduceFunc returns a closure suitable as a pool.Factory's per-worker
// ProduceFunc, so each worker calling this repeatedly pulls blockSize
// blocks off the wrapped stream.
func (b *ByteStreamAsBlockProducer) ProduceFunc() func() ([]byte, error) {
	return b.BlockingRead
}
