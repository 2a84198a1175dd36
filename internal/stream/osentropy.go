package stream

import "crypto/rand"

// OSEntropy delegates to the platform's secure RNG (crypto/rand.Reader).
// It never fails under normal operating conditions.
type OSEntropy struct{}

// NewOSEntropy returns a ByteStream backed by the OS CSPRNG.
func NewOSEntropy() OSEntropy { return OSEntropy{} }

// BlockingRead fills dest with OS-entropy bytes.
func (OSEntropy) BlockingRead(dest []byte) error {
	_, err := rand.Read(dest)
	return err
}
