package varint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 2, 127, 128, 129, 16383, 16384,
		1 << 21, 1<<21 - 1, 1 << 28, 1 << 35, 1 << 42, 1 << 49, 1 << 56, 1 << 63,
		math.MaxUint64, math.MaxUint64 - 1, math.MaxInt64,
	}

	for _, v := range values {
		enc := Encode(nil, v)
		require.GreaterOrEqual(t, len(enc), 1)
		require.LessOrEqual(t, len(enc), MaxLen)
		require.Equal(t, Len(v), len(enc))

		got, n, err := Decode(enc)
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(enc), n)
	}
}

func TestEncode_ZeroIsSingleByte(t *testing.T) {
	require.Equal(t, []byte{0x00}, Encode(nil, 0))
}

func TestEncode_Appends(t *testing.T) {
	dst := []byte{0xAA}
	out := Encode(dst, 300)
	require.Equal(t, byte(0xAA), out[0])
	require.Len(t, out, 1+2)
}

func TestDecode_Truncated(t *testing.T) {
	_, _, err := Decode([]byte{0x80})
	require.Error(t, err)

	_, _, err = Decode(nil)
	require.Error(t, err)
}

func TestDecode_OverflowTooManyBytes(t *testing.T) {
	// 11 bytes, all with continuation bit set: never terminates within MaxLen.
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0x80
	}

	_, _, err := Decode(buf)
	require.Error(t, err)
}

func TestDecode_OverflowFinalByteTooLarge(t *testing.T) {
	// 10 bytes: 9 continuation bytes of 0xFF then a final byte > 1, which
	// would require more than 64 bits to represent.
	buf := make([]byte, 10)
	for i := 0; i < 9; i++ {
		buf[i] = 0xFF
	}
	buf[9] = 0x02

	_, _, err := Decode(buf)
	require.Error(t, err)
}

func TestDecode_MaxUint64Boundary(t *testing.T) {
	enc := Encode(nil, math.MaxUint64)
	require.Len(t, enc, MaxLen)

	v, n, err := Decode(enc)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), v)
	require.Equal(t, MaxLen, n)
}
