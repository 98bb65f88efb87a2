package domain

import (
	"crypto/rand"
	"fmt"
	"time"
)

// idAlphabet is Crockford base32: case-insensitive-safe, excludes I, L, O, U.
const idAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// IDLength is the length of every generated identifier.
const IDLength = 26

// NewID returns a new ULID-style identifier: 48 bits of millisecond
// wall-clock timestamp followed by 80 bits of cryptographically random
// data, the whole 128-bit value encoded most-significant-first in
// Crockford base32. Identifiers generated more than a millisecond apart
// sort lexicographically in generation order; identifiers generated
// within the same millisecond are unordered but collision-resistant.
//
// The resulting 26-character string is usable as a TEXT primary key in
// the relational engine and as a document _id in the document engine.
func NewID() string {
	var entropy [10]byte
	if _, err := rand.Read(entropy[:]); err != nil {
		// crypto/rand failing means the platform's entropy source is
		// broken; minting predictable primary keys is not an option.
		panic(fmt.Sprintf("domain: reading random entropy: %v", err))
	}
	return newIDAt(time.Now(), entropy)
}

func newIDAt(t time.Time, entropy [10]byte) string {
	var id [IDLength]byte

	// 48-bit millisecond timestamp, 10 characters.
	ms := uint64(t.UnixMilli()) & 0xFFFFFFFFFFFF
	for i := 9; i >= 0; i-- {
		id[i] = idAlphabet[ms&0x1F]
		ms >>= 5
	}

	// 80 random bits, 16 characters of 5 bits each.
	var acc uint32
	var bits uint
	j := 10
	for _, b := range entropy {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			id[j] = idAlphabet[(acc>>bits)&0x1F]
			j++
		}
	}

	return string(id[:])
}

// ValidID reports whether s is a well-formed identifier: exactly 26
// characters drawn from the Crockford base32 alphabet.
func ValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !validIDChar(s[i]) {
			return false
		}
	}
	return true
}

func validIDChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'A' && c <= 'Z':
		return c != 'I' && c != 'L' && c != 'O' && c != 'U'
	}
	return false
}

// Now returns the current UTC time truncated to millisecond precision,
// the finest timestamp granularity representable by both storage engines.
// All entity timestamps are minted through this function so that a value
// read back from either engine compares equal to the value written.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
