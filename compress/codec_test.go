package compress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func payload() []byte {
	return bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)
}

func TestNoOpCodec_RoundTrip(t *testing.T) {
	c := NewNoOpCodec()
	data := payload()

	compressed, err := c.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, compressed)

	out, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestZstdCodec_RoundTrip(t *testing.T) {
	c := NewZstdCodec()
	data := payload()

	compressed, err := c.Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data))

	out, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestZstdCodec_EmptyInput(t *testing.T) {
	c := NewZstdCodec()

	out, err := c.Decompress(nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestZstdCodec_InvalidData(t *testing.T) {
	c := NewZstdCodec()

	_, err := c.Decompress([]byte("not zstd data"))
	require.Error(t, err)
}

func TestBrotliCodec_RoundTrip(t *testing.T) {
	c := NewBrotliCodec()
	data := payload()

	compressed, err := c.Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data))

	out, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestForStrategy(t *testing.T) {
	for _, s := range []Strategy{StrategyNone, StrategyZstd, StrategyBrotli} {
		codec, err := ForStrategy(s)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}
}

func TestForStrategy_Reserved(t *testing.T) {
	_, err := ForStrategy(strategyReserved)
	require.Error(t, err)
}

func TestStrategy_String(t *testing.T) {
	require.Equal(t, "Zstd", StrategyZstd.String())
	require.True(t, strings.Contains(Strategy(99).String(), "Strategy"))
}

func TestStrategy_IsReserved(t *testing.T) {
	require.True(t, strategyReserved.IsReserved())
	require.False(t, StrategyNone.IsReserved())
}

// TestAllCodecs_Codec_Interface exercises every concrete codec through the Codec
// interface, confirming Compress followed by Decompress reproduces the
// original bytes regardless of which strategy produced it.
func TestAllCodecs_Codec_Interface(t *testing.T) {
	data := payload()
	codecs := map[string]Codec{
		"none":   NewNoOpCodec(),
		"zstd":   NewZstdCodec(),
		"brotli": NewBrotliCodec(),
	}

	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			compressed, err := c.Compress(data)
			require.NoError(t, err)

			out, err := c.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, data, out)
		})
	}
}
