// Package adapt provides the two block/byte adapter directions: a block
// source consumed as an arbitrary-length byte stream, and a byte stream
// turned into a fixed-size block producer.
package adapt

import (
	"github.com/xtaci/shredder/internal/stream"
)

// BlockSourceAsByteStream buffers whole blocks pulled from a BlockSource
// and serves them out as an arbitrary-length byte stream. It maintains an
// ordered list of owned blocks plus a cursor into the head block;
// invariants: if the queue is non-empty, cursor < head block length, and
// totalBytes always equals the sum of remaining bytes across the queue.
//
// There is no guarantee this byte stream sees every block the underlying
// source emits when other receivers share the same producer: products are
// split across receivers.
type BlockSourceAsByteStream struct {
	source     stream.BlockSource
	blocks     [][]byte
	cursor     int
	totalBytes int
}

// NewBlockSourceAsByteStream wraps source as a ByteStream.
func NewBlockSourceAsByteStream(source stream.BlockSource) *BlockSourceAsByteStream {
	return &BlockSourceAsByteStream{source: source}
}

// BlockingRead fills dest, pulling additional blocks from the source as
// needed.
func (b *BlockSourceAsByteStream) BlockingRead(dest []byte) error {
	for b.totalBytes < len(dest) {
		blk, err := b.source.BlockingRead()
		if err != nil {
			return err
		}
		b.blocks = append(b.blocks, blk)
		b.totalBytes += len(blk)
	}

	n := 0
	for n < len(dest) {
		head := b.blocks[0]
		avail := len(head) - b.cursor
		want := len(dest) - n
		take := avail
		if want < take {
			take = want
		}
		copy(dest[n:n+take], head[b.cursor:b.cursor+take])
		n += take
		b.cursor += take
		b.totalBytes -= take
		if b.cursor == len(head) {
			b.blocks = b.blocks[1:]
			b.cursor = 0
		}
	}
	return nil
}
