package packet

import (
	"fmt"

	"github.com/htlvproto/htlv/errs"
	"lukechampine.com/blake3"
)

// DigestSize is the fixed length in bytes of the envelope's integrity
// digest (spec.md §4.7).
const DigestSize = 32

// Packet is a complete HTLV envelope: header, body, and the digest
// binding them together.
type Packet struct {
	Header Header
	Body   Body
	Digest [DigestSize]byte
}

// BuildPacket sets header.BodyType from body's variant, computes the
// BLAKE3 digest over encode(header)||encode(body), and returns the
// assembled Packet.
func BuildPacket(header Header, body Body) Packet {
	header.BodyType = body.Type

	return Packet{
		Header: header,
		Body:   body,
		Digest: computeDigest(header, body),
	}
}

// Encode returns the wire form of p: header-bytes || body-bytes ||
// 32-byte digest.
func (p Packet) Encode() []byte {
	dst := p.Header.Encode(nil)
	dst = p.Body.Encode(dst)
	dst = append(dst, p.Digest[:]...)

	return dst
}

// ParsePacket decodes a Packet from data and verifies its digest. A
// digest mismatch is reported as errs.ErrIntegrity rather than as a
// partially-parsed result (spec.md §7's propagation policy: no partial
// result is ever returned on a fatal error).
func ParsePacket(data []byte) (Packet, error) {
	header, headerLen, err := DecodeHeader(data)
	if err != nil {
		return Packet{}, err
	}

	remaining := data[headerLen:]
	if len(remaining) < DigestSize {
		return Packet{}, fmt.Errorf("%w: missing digest", errs.ErrTruncatedPacket)
	}

	bodyLen := len(remaining) - DigestSize
	bodyBytes := remaining[:bodyLen]
	var digest [DigestSize]byte
	copy(digest[:], remaining[bodyLen:])

	body := Body{Type: header.BodyType, Bytes: bodyBytes}

	want := computeDigest(header, body)
	if want != digest {
		return Packet{}, fmt.Errorf("%w", errs.ErrIntegrity)
	}

	return Packet{Header: header, Body: body, Digest: digest}, nil
}

// computeDigest hashes encode(header)||encode(body) with BLAKE3,
// matching the reference packet implementation's hasher.update sequence.
func computeDigest(header Header, body Body) [DigestSize]byte {
	hasher := blake3.New(DigestSize, nil)
	hasher.Write(header.Encode(nil))
	hasher.Write(body.Encode(nil))

	var out [DigestSize]byte
	copy(out[:], hasher.Sum(nil))

	return out
}
