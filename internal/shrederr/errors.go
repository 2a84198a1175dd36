// Package shrederr holds the sentinel errors shared across component
// boundaries, so callers can distinguish expected termination conditions
// from fatal ones with errors.Is instead of string matching.
package shrederr

import "errors"

// ErrDestinationFull is the writer's canonical terminal condition: the
// destination sink reported "no space left". This is normal termination,
// not a fatal error.
var ErrDestinationFull = errors.New("shredder: destination full")

// ErrUpstreamClosed indicates a receiver's channel was closed by its
// producer outside of an orderly shutdown, meaning the upstream pipeline
// died unexpectedly. Fatal to a writer; benign to a monitor observer.
var ErrUpstreamClosed = errors.New("shredder: upstream producer closed unexpectedly")
