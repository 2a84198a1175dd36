// Package keyderiv stretches freshly-read OS entropy through PBKDF2 before
// it is handed to the reseeding generator as a cipher seed.
package keyderiv

import (
	"crypto/sha1"

	"golang.org/x/crypto/pbkdf2"
)

// salt has no secrecy requirement (PBKDF2 here is a diffusion step, not a
// password-based key exchange), but a fixed, distinguishing value is
// conventional.
const salt = "shredder-seed-stretch"

const iterations = 4096

// Stretch derives outLen bytes from raw via PBKDF2-HMAC-SHA1.
func Stretch(raw []byte, outLen int) []byte {
	return pbkdf2.Key(raw, []byte(salt), iterations, outLen, sha1.New)
}
