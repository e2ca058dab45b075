package packet

// Body carries the packet payload under one of three variants: raw bytes,
// already-compressed bytes, or already-encrypted bytes. The envelope
// itself never compresses or encrypts anything — it only transports the
// bytes its caller already produced, plus a record of which variant they
// are (spec.md §1's compression/encryption backends remain external
// collaborators).
type Body struct {
	Type  BodyType
	Bytes []byte
}

// Raw wraps uncompressed, unencrypted bytes.
func Raw(b []byte) Body { return Body{Type: BodyRaw, Bytes: b} }

// Compressed wraps bytes already compressed by a collaborator codec (see
// package compress). The envelope does not validate that they are
// actually compressed.
func Compressed(b []byte) Body { return Body{Type: BodyCompressed, Bytes: b} }

// Encrypted wraps bytes already encrypted by a collaborator backend.
func Encrypted(b []byte) Body { return Body{Type: BodyEncrypted, Bytes: b} }

// Encode returns the wire form of the body: its raw bytes, unchanged. The
// variant itself is carried in the enclosing Header.BodyType, not
// re-encoded here.
func (b Body) Encode(dst []byte) []byte {
	return append(dst, b.Bytes...)
}
