// Package cancel implements the shared cooperative-cancellation flag used
// by the pipeline's producers: each producer's workers read it, and it is
// set by the producer's Close or by a worker whose production failed.
package cancel

import "sync/atomic"

// Token is a clonable handle onto one shared cancellation flag. The zero
// value is not usable; construct with New.
type Token struct {
	flag *int32
}

// New returns a fresh, not-yet-cancelled token.
func New() Token {
	var f int32
	return Token{flag: &f}
}

// Cancel sets the flag. Idempotent, safe to call from any goroutine,
// any number of times.
func (t Token) Cancel() {
	atomic.StoreInt32(t.flag, 1)
}

// Cancelled reports whether Cancel has been called on this token or any
// clone of it.
func (t Token) Cancelled() bool {
	return atomic.LoadInt32(t.flag) != 0
}

// Clone returns a handle sharing the same underlying flag. Cheap: it is a
// pointer copy, not a new flag.
func (t Token) Clone() Token {
	return Token{flag: t.flag}
}
