// Package packet implements the HTLV packet envelope: a fixed-order
// header, a body carrying raw/compressed/encrypted bytes, and a 32-byte
// BLAKE3 digest binding the two together (spec.md §4.7).
//
// The envelope is a thin framing layer above the item codec: it never
// decodes the body as an HTLV item itself, and it never invokes a
// compression or encryption backend. It only transports the strategy
// selection in reserved flag bits, per spec.md §6's collaborator
// interfaces.
package packet

import (
	"fmt"

	"github.com/htlvproto/htlv/errs"
	"github.com/htlvproto/htlv/varint"
)

// compressionStrategyMask covers bits 0-1 of FlowFlags, the only bits the
// codec interprets. Every other bit is opaque and preserved bit-for-bit.
const compressionStrategyMask uint32 = 0b11

// CompressionStrategy identifies the body's compression algorithm, carried
// in the low two bits of Header.FlowFlags. The numeric values are
// wire-exact (spec.md §6).
type CompressionStrategy uint8

const (
	CompressionNone CompressionStrategy = 0
	CompressionZstd CompressionStrategy = 1
	// compressionReserved was an earlier strategy, retired; decoders must
	// reject it rather than guess at a replacement.
	compressionReserved CompressionStrategy = 2
	CompressionBrotli   CompressionStrategy = 3
)

// String implements fmt.Stringer.
func (s CompressionStrategy) String() string {
	switch s {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case compressionReserved:
		return "Reserved"
	case CompressionBrotli:
		return "Brotli"
	default:
		return fmt.Sprintf("CompressionStrategy(%d)", uint8(s))
	}
}

// BodyType identifies which Body variant a packet carries. The
// numeric values are wire-exact (spec.md §4.7).
type BodyType uint8

const (
	BodyRaw BodyType = iota
	BodyCompressed
	BodyEncrypted
)

// String implements fmt.Stringer.
func (t BodyType) String() string {
	switch t {
	case BodyRaw:
		return "Raw"
	case BodyCompressed:
		return "Compressed"
	case BodyEncrypted:
		return "Encrypted"
	default:
		return fmt.Sprintf("BodyType(%d)", uint8(t))
	}
}

// Header is the fixed-order metadata block at the front of a packet:
// schema-id, timestamp and shard-id as varints, a 32-bit little-endian
// flow-flags word, and a single body-type byte.
type Header struct {
	SchemaID  uint64
	Timestamp uint64
	ShardID   uint64
	FlowFlags uint32
	BodyType  BodyType
}

// CompressionStrategy reads bits 0-1 of FlowFlags without disturbing the
// remaining bits.
func (h Header) CompressionStrategy() CompressionStrategy {
	return CompressionStrategy(h.FlowFlags & compressionStrategyMask)
}

// SetCompressionStrategy writes s into bits 0-1 of FlowFlags, leaving
// every other bit untouched (spec.md P7).
func (h *Header) SetCompressionStrategy(s CompressionStrategy) {
	h.FlowFlags = (h.FlowFlags &^ compressionStrategyMask) | (uint32(s) & compressionStrategyMask)
}

// Encode appends the wire form of h to dst and returns the extended slice.
func (h Header) Encode(dst []byte) []byte {
	dst = varint.Encode(dst, h.SchemaID)
	dst = varint.Encode(dst, h.Timestamp)
	dst = varint.Encode(dst, h.ShardID)
	dst = append(dst, byte(h.FlowFlags), byte(h.FlowFlags>>8), byte(h.FlowFlags>>16), byte(h.FlowFlags>>24))
	dst = append(dst, byte(h.BodyType))

	return dst
}

// DecodeHeader reads a Header from the front of src, returning the header
// and the number of bytes consumed.
func DecodeHeader(src []byte) (Header, int, error) {
	var h Header
	pos := 0

	schemaID, n, err := varint.Decode(src[pos:])
	if err != nil {
		return Header{}, 0, err
	}
	pos += n
	h.SchemaID = schemaID

	timestamp, n, err := varint.Decode(src[pos:])
	if err != nil {
		return Header{}, 0, err
	}
	pos += n
	h.Timestamp = timestamp

	shardID, n, err := varint.Decode(src[pos:])
	if err != nil {
		return Header{}, 0, err
	}
	pos += n
	h.ShardID = shardID

	if len(src)-pos < 4 {
		return Header{}, 0, fmt.Errorf("%w: incomplete flow-flags field", errs.ErrTruncatedPacket)
	}
	h.FlowFlags = uint32(src[pos]) | uint32(src[pos+1])<<8 | uint32(src[pos+2])<<16 | uint32(src[pos+3])<<24
	pos += 4

	if len(src)-pos < 1 {
		return Header{}, 0, fmt.Errorf("%w: incomplete body-type field", errs.ErrTruncatedPacket)
	}
	h.BodyType = BodyType(src[pos])
	pos++

	if h.BodyType > BodyEncrypted {
		return Header{}, 0, fmt.Errorf("%w: %d", errs.ErrUnknownBodyType, h.BodyType)
	}

	if h.CompressionStrategy() == compressionReserved {
		return Header{}, 0, fmt.Errorf("%w: value 2", errs.ErrUnknownStrategy)
	}

	return h, pos, nil
}
