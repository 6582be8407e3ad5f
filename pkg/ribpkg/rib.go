// Package ribpkg validates and generates RIB account references.
//
// A RIB is exactly 24 characters: a 2-letter country code followed by
// 22 digits.
package ribpkg

import (
	"fmt"
	"io"
)

// Length is the fixed RIB length.
const Length = 24

const digitCount = Length - 2

// Valid reports whether rib is 2 ASCII letters followed by 22 digits.
func Valid(rib string) bool {
	if len(rib) != Length {
		return false
	}

	for i := 0; i < 2; i++ {
		c := rib[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}

	for i := 2; i < Length; i++ {
		if rib[i] < '0' || rib[i] > '9' {
			return false
		}
	}

	return true
}

// Generate returns a new RIB with the given 2-letter country code,
// drawing digits from src. Passing a seeded reader keeps tests deterministic.
func Generate(countryCode string, src io.Reader) (string, error) {
	if len(countryCode) != 2 {
		return "", fmt.Errorf("country code must be 2 letters, got %q", countryCode)
	}

	buf := make([]byte, digitCount)
	if _, err := io.ReadFull(src, buf); err != nil {
		return "", err
	}

	rib := make([]byte, Length)
	rib[0], rib[1] = countryCode[0], countryCode[1]

	for i, b := range buf {
		rib[2+i] = '0' + b%10
	}

	return string(rib), nil
}
