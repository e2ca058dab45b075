// Package htlv provides a self-describing, schema-aware binary
// serialization codec: Hierarchical Tag-Type-Length-Value.
//
// HTLV encodes a rich value model — primitives, byte strings, homogeneous
// arrays, heterogeneous objects, and arbitrarily deep nesting — onto a
// compact byte stream. Decoding runs through an iterative state machine
// with bounded stack usage rather than recursion, takes a zero-copy fast
// path for runs of fixed-width array elements, and transparently shards
// oversized byte/string values across multiple wire items.
//
// # Core Features
//
//   - A 16-variant value model (Null, Bool, ten numeric types, Bytes,
//     String, Array, Object) with a stable one-byte wire tag per variant
//   - An iterative, non-recursive decoder bounded to 32 levels of nesting
//   - A four-stage batch pipeline (Prefetch, Decode, Dispatch, Verify) that
//     zero-copies runs of fixed-width array elements when alignment permits
//   - Transparent sharding of Bytes/String values over 1024 bytes across a
//     header item plus a run of same-tag shard items
//   - A packet envelope binding a header, a body, and a BLAKE3 digest
//
// # Basic Usage
//
// Encoding and decoding a single item:
//
//	import "github.com/htlvproto/htlv"
//	import "github.com/htlvproto/htlv/value"
//
//	item := value.NewItem(42, value.String("hello, htlv"))
//	wire, err := htlv.Encode(item)
//
//	got, n, err := htlv.Decode(wire)
//
// Building and parsing a packet envelope:
//
//	header := packet.Header{SchemaID: 1, Timestamp: uint64(time.Now().Unix())}
//	header.SetCompressionStrategy(packet.CompressionZstd)
//	p := htlv.BuildPacket(header, packet.Raw(wire))
//
//	parsed, err := htlv.ParsePacket(p.Encode())
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec
// and packet packages, matching the most common use cases. For
// configurable encode/decode (shard threshold, nesting depth cap, forcing
// the scalar batch path), construct a codec.Encoder or codec.Decoder
// directly.
package htlv

import (
	"github.com/htlvproto/htlv/codec"
	"github.com/htlvproto/htlv/packet"
	"github.com/htlvproto/htlv/value"
)

// Encode serialises item to its HTLV wire form, sharding any Bytes/String
// payload that exceeds the reference threshold (codec.LargeFieldThreshold).
func Encode(item value.Item) ([]byte, error) {
	return codec.Encode(item)
}

// Decode deserialises exactly one logical root item from data, returning
// the item and the number of bytes consumed from the front of data.
func Decode(data []byte) (value.Item, int, error) {
	return codec.Decode(data)
}

// BuildPacket assembles a packet envelope from header and body, computing
// body-type and the BLAKE3 digest over the encoded header and body.
func BuildPacket(header packet.Header, body packet.Body) packet.Packet {
	return packet.BuildPacket(header, body)
}

// ParsePacket decodes a packet envelope from data and verifies its
// digest, returning errs.ErrIntegrity on mismatch.
func ParsePacket(data []byte) (packet.Packet, error) {
	return packet.ParsePacket(data)
}
