// Package sizeutil parses the human-readable <SIZE> argument used by the
// CLI's --skip-bytes/--blocksize flags.
package sizeutil

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// unitMultiplier maps a one-character suffix to its power-of-1024
// multiplier.
var unitMultiplier = map[byte]float64{
	'K': 1 << 10, 'k': 1 << 10,
	'M': 1 << 20, 'm': 1 << 20,
	'G': 1 << 30, 'g': 1 << 30,
	'T': 1 << 40, 't': 1 << 40,
}

// Parse converts a decimal number, optionally followed by a single
// K/k/M/m/G/g/T/t suffix, into a byte count. With a suffix the mantissa
// may be a float; without one, only a non-negative integer is accepted
// (a fractional input with no suffix is an error).
func Parse(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("sizeutil: empty size")
	}

	last := s[len(s)-1]
	mult, hasSuffix := unitMultiplier[last]
	mantissa := s
	if hasSuffix {
		mantissa = s[:len(s)-1]
	}
	if mantissa == "" {
		return 0, errors.Errorf("sizeutil: %q has a suffix but no digits", s)
	}

	if !hasSuffix {
		n, err := strconv.ParseInt(mantissa, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "sizeutil: %q is not an integer byte count", s)
		}
		if n < 0 {
			return 0, errors.Errorf("sizeutil: %q is negative", s)
		}
		return n, nil
	}

	f, err := strconv.ParseFloat(mantissa, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "sizeutil: %q is not a valid number", s)
	}
	if f < 0 {
		return 0, errors.Errorf("sizeutil: %q is negative", s)
	}
	return int64(math.Floor(f * mult)), nil
}

// MustParse is Parse for call sites (tests, constant defaults) that know
// the input is well-formed.
func MustParse(s string) int64 {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}
