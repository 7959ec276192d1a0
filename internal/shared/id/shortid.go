// Package id generates the opaque, prefixed identifiers exposed by the API
// (for example "tkt_4fZk2P9aLm0Q"). Numeric primary keys never leave the
// server.
package id

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// bytes at or above this are rejected so every symbol is equally likely
	unbiasedLimit = 256 - 256%len(alphabet)

	DefaultLength = 12
)

const (
	PrefixCompany = "cmp"
	PrefixUser    = "usr"
	PrefixTicket  = "tkt"
)

var ErrMalformedSID = errors.New("malformed id")

// Generate returns a random base62 string of the given length, or
// DefaultLength when length is not positive.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= unbiasedLimit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// NewSID returns "prefix_<random>".
func NewSID(prefix string) (string, error) {
	short, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + short, nil
}

// ValidatePrefix reports ErrMalformedSID unless sid is "<prefix>_<something>".
func ValidatePrefix(sid, prefix string) error {
	got, rest, ok := strings.Cut(sid, "_")
	if !ok || rest == "" {
		return fmt.Errorf("%w: %q", ErrMalformedSID, sid)
	}
	if got != prefix {
		return fmt.Errorf("%w: want prefix %q, got %q", ErrMalformedSID, prefix, got)
	}
	return nil
}
