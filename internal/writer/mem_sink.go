package writer

import "github.com/xtaci/shredder/internal/shrederr"

// MemSink is a fixed-capacity in-memory Sink used by tests: it behaves
// exactly like a destination of a fixed size, reporting
// ErrDestinationFull once capacity bytes have been accepted.
type MemSink struct {
	buf      []byte
	capacity int
}

// NewMemSink returns a sink that accepts exactly capacity bytes before
// reporting full.
func NewMemSink(capacity int) *MemSink {
	return &MemSink{capacity: capacity}
}

// WriteAll implements Sink.
func (m *MemSink) WriteAll(blocks [][]byte) (int64, error) {
	var total int64
	for _, b := range blocks {
		room := m.capacity - len(m.buf)
		if room <= 0 {
			return total, shrederr.ErrDestinationFull
		}
		take := len(b)
		if take > room {
			take = room
		}
		m.buf = append(m.buf, b[:take]...)
		total += int64(take)
		if take < len(b) {
			return total, shrederr.ErrDestinationFull
		}
	}
	return total, nil
}

// Bytes returns everything accepted so far. For tests only.
func (m *MemSink) Bytes() []byte {
	return m.buf
}
