//go:build unix

package writer

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/xtaci/shredder/internal/shrederr"
)

// FileSink writes to a regular file or block device node. On unix it
// vectored-writes a batch with a single unix.Writev syscall, amortising
// the per-call syscall overhead.
type FileSink struct {
	f *os.File
}

// NewFileSink wraps an already-open, already-seeked file/device.
func NewFileSink(f *os.File) *FileSink {
	return &FileSink{f: f}
}

// WriteAll implements Sink.
func (s *FileSink) WriteAll(blocks [][]byte) (int64, error) {
	fd := int(s.f.Fd())
	var total int64
	// trimWritten rewrites leading entries in place as partial writes land,
	// so work on a copy and leave the caller's slice untouched.
	iov := make([][]byte, len(blocks))
	copy(iov, blocks)

	for len(iov) > 0 {
		n, err := unix.Writev(fd, iov)
		total += int64(n)
		if err != nil {
			if errors.Is(err, unix.ENOSPC) {
				return total, shrederr.ErrDestinationFull
			}
			return total, errors.Wrap(err, "writer: writev")
		}
		if n == 0 {
			return total, errors.Wrap(io.ErrShortWrite, "writer: writev made no progress")
		}
		iov = trimWritten(iov, int(n))
	}
	return total, nil
}

// trimWritten drops the first n bytes across the leading iovecs in place,
// for the (rare) case unix.Writev accepts fewer bytes than offered.
func trimWritten(iov [][]byte, n int) [][]byte {
	for n > 0 && len(iov) > 0 {
		if n < len(iov[0]) {
			iov[0] = iov[0][n:]
			return iov
		}
		n -= len(iov[0])
		iov = iov[1:]
	}
	return iov
}
