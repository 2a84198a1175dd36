//go:build !unix

package writer

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/xtaci/shredder/internal/shrederr"
)

// FileSink is the portable fallback for platforms without vectored write
// support: it writes blocks sequentially. Correct, just not as fast as
// the unix.Writev path.
type FileSink struct {
	f *os.File
}

// NewFileSink wraps an already-open, already-seeked file/device.
func NewFileSink(f *os.File) *FileSink {
	return &FileSink{f: f}
}

// WriteAll implements Sink.
func (s *FileSink) WriteAll(blocks [][]byte) (int64, error) {
	var total int64
	for _, b := range blocks {
		n, err := s.f.Write(b)
		total += int64(n)
		if err != nil {
			if isNoSpace(err) {
				return total, shrederr.ErrDestinationFull
			}
			return total, errors.Wrap(err, "writer: write")
		}
	}
	return total, nil
}

// isNoSpace recognises a "no space left" condition without syscall.ENOSPC,
// which is not defined on every GOOS this build tag covers.
func isNoSpace(err error) bool {
	return strings.Contains(err.Error(), "no space left")
}
