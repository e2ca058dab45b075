package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// BrotliCodec implements Codec for StrategyBrotli.
type BrotliCodec struct {
	level int
}

var _ Codec = BrotliCodec{}

// NewBrotliCodec returns a Brotli codec at brotli's default quality level.
func NewBrotliCodec() BrotliCodec {
	return BrotliCodec{level: brotli.DefaultCompression}
}

func (c BrotliCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := brotli.NewWriterLevel(&buf, c.level)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compress: brotli write: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: brotli close: %w", err)
	}

	return buf.Bytes(), nil
}

func (c BrotliCodec) Decompress(data []byte) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(data))

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("compress: brotli decompress: %w", err)
	}

	return out, nil
}
