package codec

import (
	"testing"

	"github.com/htlvproto/htlv/errs"
	"github.com/htlvproto/htlv/value"
	"github.com/stretchr/testify/require"
)

func TestEncoder_WithShardThresholdShardsEarlier(t *testing.T) {
	enc, err := NewEncoderWithConfig(WithShardThreshold(8))
	require.NoError(t, err)

	wire, err := enc.Encode(value.NewItem(1, value.Bytes(make([]byte, 9))))
	require.NoError(t, err)

	dec, err := NewDecoderWithConfig(wire, WithMinLargeFieldTotal(8))
	require.NoError(t, err)

	item, n, err := dec.Decode()
	require.NoError(t, err)
	require.Equal(t, len(wire), n)
	require.Len(t, item.Value.AsBytes(), 9)
}

func TestEncoder_WithShardThresholdRejectsNonPositive(t *testing.T) {
	_, err := NewEncoderWithConfig(WithShardThreshold(0))
	require.Error(t, err)
}

func TestDecoder_WithMaxDepthTighterThanDefault(t *testing.T) {
	// Build three levels of nested arrays; with maxDepth=2 the third push
	// must fail.
	inner := value.NewItem(0, value.Array(nil))
	mid := value.NewItem(0, value.Array([]value.Item{inner}))
	outer := value.NewItem(0, value.Array([]value.Item{mid}))

	wire, err := Encode(outer)
	require.NoError(t, err)

	dec, err := NewDecoderWithConfig(wire, WithMaxDepth(2))
	require.NoError(t, err)

	_, _, err = dec.Decode()
	require.ErrorIs(t, err, errs.ErrDepthExceeded)
}

func TestDecoder_WithMaxDepthRejectsNonPositive(t *testing.T) {
	_, err := NewDecoderWithConfig(nil, WithMaxDepth(0))
	require.Error(t, err)
}

func TestDecoder_WithMinLargeFieldTotalRejectsZero(t *testing.T) {
	_, err := NewDecoderWithConfig(nil, WithMinLargeFieldTotal(0))
	require.Error(t, err)
}

func TestDecoder_WithSIMDDisabledMatchesDefaultResult(t *testing.T) {
	values := []value.Item{
		value.NewItem(0, value.U32(1)),
		value.NewItem(0, value.U32(2)),
		value.NewItem(0, value.U32(3)),
	}
	wire, err := Encode(value.NewItem(7, value.Array(values)))
	require.NoError(t, err)

	normal, _, err := Decode(wire)
	require.NoError(t, err)

	dec, err := NewDecoderWithConfig(wire, WithSIMDDisabled())
	require.NoError(t, err)

	forced, _, err := dec.Decode()
	require.NoError(t, err)

	require.True(t, normal.Value.Equal(forced.Value))
}
