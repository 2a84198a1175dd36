// Package stream defines the two narrow capability contracts that cross
// component boundaries for random-byte flow, plus the primitive and
// composite byte streams built on top of them.
package stream

import "io"

// ByteStream fills dest entirely or fails. A successful call always
// returns exactly len(dest) bytes; partial fills are not a success. The
// only expected failure is io.EOF, and only for sources that can actually
// be exhausted (the primitive sources in this package never return it).
type ByteStream interface {
	BlockingRead(dest []byte) error
}

// BlockSource returns one whole block of the source's own chosen size per
// call.
type BlockSource interface {
	BlockingRead() ([]byte, error)
}

// ByteStreamFunc adapts a plain function to ByteStream.
type ByteStreamFunc func(dest []byte) error

// BlockingRead implements ByteStream.
func (f ByteStreamFunc) BlockingRead(dest []byte) error { return f(dest) }

// ErrEndOfStream is returned by BlockingRead when, and only when, the
// underlying source is genuinely exhausted. None of the primitive streams
// in this package ever return it; it exists for test fakes and any future
// file-backed source.
var ErrEndOfStream = io.EOF
