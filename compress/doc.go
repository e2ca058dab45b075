// Package compress provides the body compression codecs referenced by a
// packet's compression-strategy bits.
//
// The wire format (see package packet) reserves two bits of the flow-flags
// field for a Strategy: None, Zstd, a reserved value, and Brotli. The
// codec core treats those bits as opaque — it never compresses or
// decompresses a body itself. This package is for callers that parse a
// packet and then want to act on the strategy it declares:
//
//	strategy := compress.Strategy(pkt.Header.CompressionStrategy())
//	codec, err := compress.ForStrategy(strategy)
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Decompress(pkt.Body.Bytes)
//
// None is a zero-copy passthrough. Zstd favors compression ratio at
// moderate speed (klauspost/compress/zstd, pooled encoder/decoder). Brotli
// trades additional CPU for a typically smaller result on text-heavy
// payloads (andybalholm/brotli). The reserved strategy value has no codec;
// ForStrategy returns an error for it, and callers must treat it as an
// unsupported packet rather than fall back to None.
package compress
