// Package id generates identifiers for runs and log correlation.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ulidLength is the encoded size: 128 bits in 5-bit groups, 2 padding bits.
const ulidLength = 26

// NewULID generates a ULID: 48-bit millisecond timestamp followed by 80
// random bits, Crockford base32 encoded into 26 characters. IDs sort
// lexicographically by creation time.
func NewULID() string {
	return newULID(time.Now())
}

func newULID(now time.Time) string {
	var raw [16]byte
	binary.BigEndian.PutUint64(raw[:8], uint64(now.UnixMilli())<<16)
	if _, err := rand.Read(raw[6:]); err != nil {
		// Degraded entropy keeps the ID unique enough for log correlation.
		binary.BigEndian.PutUint64(raw[8:], uint64(now.UnixNano()))
	}

	// 130 output bits for 128 input bits: the first character carries the
	// two leading zero bits.
	var out [ulidLength]byte
	for i := range ulidLength {
		bit := i*5 - 2
		var v byte
		for b := range 5 {
			pos := bit + b
			if pos < 0 {
				continue
			}
			v = v<<1 | (raw[pos/8]>>(7-pos%8))&1
		}
		out[i] = crockfordBase32[v&0x1F]
	}
	return string(out[:])
}
