package codec

import (
	"fmt"
	"math"

	"github.com/htlvproto/htlv/endian"
	"github.com/htlvproto/htlv/errs"
	"github.com/htlvproto/htlv/internal/options"
	"github.com/htlvproto/htlv/internal/pool"
	"github.com/htlvproto/htlv/value"
	"github.com/htlvproto/htlv/varint"
)

// LargeFieldThreshold is the reference byte threshold (spec.md §3/§4.2)
// above which a Bytes/String value is split into a header item plus a run
// of shard items instead of being emitted as a single item.
const LargeFieldThreshold = 1024

// largeFieldHeaderLen is the fixed payload size of a sharding header item:
// an 8-byte little-endian total-length (spec invariant I5).
const largeFieldHeaderLen = 8

// Encode serialises item to its wire form, sharding any Bytes/String
// payload that exceeds LargeFieldThreshold. It is equivalent to
// NewEncoder().Encode(item).
func Encode(item value.Item) ([]byte, error) {
	return NewEncoder().Encode(item)
}

// Encoder serialises items using a configurable large-field threshold
// (see EncoderConfig). The zero value is not usable; construct with
// NewEncoder or NewEncoderWithConfig.
type Encoder struct {
	shardThreshold int
}

// NewEncoder returns an Encoder using the reference LargeFieldThreshold.
func NewEncoder() *Encoder {
	return &Encoder{shardThreshold: LargeFieldThreshold}
}

// NewEncoderWithConfig returns an Encoder configured by opts (see
// EncoderConfig).
func NewEncoderWithConfig(opts ...options.Option[*EncoderConfig]) (*Encoder, error) {
	cfg := defaultEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Encoder{shardThreshold: cfg.shardThreshold}, nil
}

// Encode serialises item to its wire form using e's configured
// large-field threshold.
func (e *Encoder) Encode(item value.Item) ([]byte, error) {
	var buf []byte
	return e.appendItem(buf, item)
}

// appendItem writes one item's wire form to dst and returns the extended
// slice, recursing into composites and expanding oversized Bytes/String
// values into a sharded run.
func (e *Encoder) appendItem(dst []byte, item value.Item) ([]byte, error) {
	v := item.Value

	switch v.Kind {
	case value.TypeNull:
		return appendHeader(dst, item.Tag, v.Kind, 0), nil

	case value.TypeBool:
		b := byte(0)
		if v.AsBool() {
			b = 1
		}
		dst = appendHeader(dst, item.Tag, v.Kind, 1)
		return append(dst, b), nil

	case value.TypeU8:
		dst = appendHeader(dst, item.Tag, v.Kind, 1)
		return append(dst, v.AsU8()), nil
	case value.TypeI8:
		dst = appendHeader(dst, item.Tag, v.Kind, 1)
		return append(dst, byte(v.AsI8())), nil

	case value.TypeU16:
		dst = appendHeader(dst, item.Tag, v.Kind, 2)
		return endian.GetLittleEndianEngine().AppendUint16(dst, v.AsU16()), nil
	case value.TypeI16:
		dst = appendHeader(dst, item.Tag, v.Kind, 2)
		return endian.GetLittleEndianEngine().AppendUint16(dst, uint16(v.AsI16())), nil

	case value.TypeU32:
		dst = appendHeader(dst, item.Tag, v.Kind, 4)
		return endian.GetLittleEndianEngine().AppendUint32(dst, v.AsU32()), nil
	case value.TypeI32:
		dst = appendHeader(dst, item.Tag, v.Kind, 4)
		return endian.GetLittleEndianEngine().AppendUint32(dst, uint32(v.AsI32())), nil

	case value.TypeU64:
		dst = appendHeader(dst, item.Tag, v.Kind, 8)
		return endian.GetLittleEndianEngine().AppendUint64(dst, v.AsU64()), nil
	case value.TypeI64:
		dst = appendHeader(dst, item.Tag, v.Kind, 8)
		return endian.GetLittleEndianEngine().AppendUint64(dst, uint64(v.AsI64())), nil

	case value.TypeF32:
		dst = appendHeader(dst, item.Tag, v.Kind, 4)
		return endian.GetLittleEndianEngine().AppendUint32(dst, math.Float32bits(v.AsF32())), nil
	case value.TypeF64:
		dst = appendHeader(dst, item.Tag, v.Kind, 8)
		return endian.GetLittleEndianEngine().AppendUint64(dst, math.Float64bits(v.AsF64())), nil

	case value.TypeBytes, value.TypeString:
		return e.appendLargeFieldAware(dst, item.Tag, v.Kind, payloadBytes(v))

	case value.TypeArray, value.TypeObject:
		return e.appendComposite(dst, item.Tag, v)

	default:
		return nil, fmt.Errorf("%w: unknown value kind %d", errs.ErrUnknownType, v.Kind)
	}
}

func payloadBytes(v value.Value) []byte {
	if v.Kind == value.TypeString {
		return []byte(v.AsString())
	}
	return v.AsBytes()
}

// appendLargeFieldAware writes a Bytes/String value, sharding it across a
// header item and a run of shard items when it exceeds e's configured
// shard threshold (spec.md §4.2's large-field sharding rule).
func (e *Encoder) appendLargeFieldAware(dst []byte, tag uint64, kind value.Type, payload []byte) ([]byte, error) {
	if len(payload) <= e.shardThreshold {
		dst = appendHeader(dst, tag, kind, uint64(len(payload)))
		return append(dst, payload...), nil
	}

	dst = appendHeader(dst, tag, kind, largeFieldHeaderLen)
	dst = endian.GetLittleEndianEngine().AppendUint64(dst, uint64(len(payload)))

	for off := 0; off < len(payload); off += e.shardThreshold {
		end := off + e.shardThreshold
		if end > len(payload) {
			end = len(payload)
		}

		shard := payload[off:end]
		dst = appendHeader(dst, tag, kind, uint64(len(shard)))
		dst = append(dst, shard...)
	}

	return dst, nil
}

// appendComposite encodes an Array or Object by recursively encoding each
// child into a pooled scratch buffer, then emitting the composite's own
// header with the accumulated child byte count as its length. The
// composite's length is only known once its children are encoded, so a
// buffer per nesting level is unavoidable; pooling keeps the repeated
// allocation cost down for deeply nested or wide value trees.
func (e *Encoder) appendComposite(dst []byte, tag uint64, v value.Value) ([]byte, error) {
	body := pool.GetItemBuffer()
	defer pool.PutItemBuffer(body)

	for _, child := range v.Items() {
		var err error
		body.B, err = e.appendItem(body.B, child)
		if err != nil {
			return nil, err
		}
	}

	dst = appendHeader(dst, tag, v.Kind, uint64(body.Len()))
	return append(dst, body.Bytes()...), nil
}

// appendHeader writes tag-varint || type-byte || length-varint.
func appendHeader(dst []byte, tag uint64, kind value.Type, length uint64) []byte {
	dst = varint.Encode(dst, tag)
	dst = append(dst, byte(kind))
	dst = varint.Encode(dst, length)

	return dst
}
