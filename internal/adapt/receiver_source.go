package adapt

import (
	"github.com/xtaci/shredder/internal/pool"
	"github.com/xtaci/shredder/internal/shrederr"
)

// ReceiverBlockSource adapts a pool.Receiver[[]byte] to stream.BlockSource,
// so a producer's fan-out channel, wrapped in a BlockSourceAsByteStream,
// can serve as the seed source for a downstream reseeding generator.
type ReceiverBlockSource struct {
	r pool.Receiver[[]byte]
}

// NewReceiverBlockSource wraps r.
func NewReceiverBlockSource(r pool.Receiver[[]byte]) ReceiverBlockSource {
	return ReceiverBlockSource{r: r}
}

// BlockingRead implements stream.BlockSource.
func (s ReceiverBlockSource) BlockingRead() ([]byte, error) {
	v, ok := s.r.Receive()
	if !ok {
		return nil, shrederr.ErrUpstreamClosed
	}
	return v, nil
}
