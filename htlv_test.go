package htlv_test

import (
	"testing"

	"github.com/htlvproto/htlv"
	"github.com/htlvproto/htlv/packet"
	"github.com/htlvproto/htlv/value"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	item := value.NewItem(42, value.String("hello, htlv"))

	wire, err := htlv.Encode(item)
	require.NoError(t, err)

	got, n, err := htlv.Decode(wire)
	require.NoError(t, err)
	require.Equal(t, len(wire), n)
	require.True(t, item.Value.Equal(got.Value))
	require.Equal(t, item.Tag, got.Tag)
}

func TestBuildAndParsePacket(t *testing.T) {
	item := value.NewItem(1, value.U32(7))
	wire, err := htlv.Encode(item)
	require.NoError(t, err)

	header := packet.Header{SchemaID: 1, Timestamp: 1700000000, ShardID: 3}
	header.SetCompressionStrategy(packet.CompressionZstd)

	p := htlv.BuildPacket(header, packet.Raw(wire))
	encoded := p.Encode()

	parsed, err := htlv.ParsePacket(encoded)
	require.NoError(t, err)

	got, n, err := htlv.Decode(parsed.Body.Bytes)
	require.NoError(t, err)
	require.Equal(t, len(parsed.Body.Bytes), n)
	require.True(t, item.Value.Equal(got.Value))
}
