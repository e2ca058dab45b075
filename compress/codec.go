// Package compress provides compression codecs for packet bodies.
//
// The codec core never invokes this package directly: §4.8 of the wire
// format carries only the two-bit compression-strategy field in the flow
// flags and leaves choosing and running a codec to the caller. This
// package exists for callers that do want to act on those bits: it mirrors
// the strategy values byte-for-byte and supplies a Codec per strategy.
package compress

import "fmt"

// Strategy identifies a packet body compression algorithm. The numeric
// values are wire-exact: they occupy bits 0-1 of the packet flow-flags
// field and must never be renumbered.
type Strategy uint8

const (
	// StrategyNone indicates the body is carried uncompressed.
	StrategyNone Strategy = 0
	// StrategyZstd indicates the body is Zstandard-compressed.
	StrategyZstd Strategy = 1
	// strategyReserved is the value of an earlier, retired algorithm,
	// now reserved by the wire format. A packet carrying it is rejected,
	// not silently passed through as None.
	strategyReserved Strategy = 2
	// StrategyBrotli indicates the body is Brotli-compressed.
	StrategyBrotli Strategy = 3
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "None"
	case StrategyZstd:
		return "Zstd"
	case strategyReserved:
		return "Reserved"
	case StrategyBrotli:
		return "Brotli"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// IsReserved reports whether s is the wire format's reserved strategy
// value. Callers must reject packets carrying it rather than guess at a
// fallback.
func (s Strategy) IsReserved() bool {
	return s == strategyReserved
}

// Compressor compresses a byte slice, returning a newly allocated result.
// The input slice is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice previously produced by the
// matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// ForStrategy returns the built-in Codec for s.
func ForStrategy(s Strategy) (Codec, error) {
	switch s {
	case StrategyNone:
		return NewNoOpCodec(), nil
	case StrategyZstd:
		return NewZstdCodec(), nil
	case StrategyBrotli:
		return NewBrotliCodec(), nil
	default:
		return nil, fmt.Errorf("compress: unsupported strategy %s", s)
	}
}
