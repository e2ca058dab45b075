package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeTagAssignments(t *testing.T) {
	// Wire-exact tag assignments from the codec specification §6.
	cases := []struct {
		typ  Type
		want uint8
	}{
		{TypeNull, 0}, {TypeBool, 1}, {TypeU8, 2}, {TypeU16, 3}, {TypeU32, 4},
		{TypeU64, 5}, {TypeI8, 6}, {TypeI16, 7}, {TypeI32, 8}, {TypeI64, 9},
		{TypeF32, 10}, {TypeF64, 11}, {TypeBytes, 12}, {TypeString, 13},
		{TypeArray, 14}, {TypeObject, 15},
	}
	for _, c := range cases {
		require.Equal(t, c.want, uint8(c.typ), c.typ.String())
	}
}

func TestSize(t *testing.T) {
	require.Equal(t, 0, TypeNull.Size())
	require.Equal(t, 1, TypeBool.Size())
	require.Equal(t, 1, TypeU8.Size())
	require.Equal(t, 2, TypeU16.Size())
	require.Equal(t, 4, TypeU32.Size())
	require.Equal(t, 8, TypeU64.Size())
	require.Equal(t, 4, TypeF32.Size())
	require.Equal(t, 8, TypeF64.Size())
}

func TestIsBatchEligible(t *testing.T) {
	require.True(t, TypeU32.IsBatchEligible())
	require.True(t, TypeF64.IsBatchEligible())
	require.False(t, TypeU8.IsBatchEligible())
	require.False(t, TypeBool.IsBatchEligible())
	require.False(t, TypeBytes.IsBatchEligible())
}

func TestConstructorsAndAccessors(t *testing.T) {
	require.Equal(t, uint32(42), U32(42).AsU32())
	require.Equal(t, int64(-7), I64(-7).AsI64())
	require.InDelta(t, 3.25, float64(F32(3.25).AsF32()), 0)
	require.Equal(t, "hi", String("hi").AsString())
	require.Equal(t, []byte{1, 2, 3}, Bytes([]byte{1, 2, 3}).AsBytes())
}

func TestAccessorPanicsOnWrongKind(t *testing.T) {
	require.Panics(t, func() { U32(1).AsU64() })
	require.Panics(t, func() { Bool(true).Items() })
}

func TestEqual(t *testing.T) {
	a := Array([]Item{NewItem(0, U32(1)), NewItem(0, U32(2))})
	b := Array([]Item{NewItem(0, U32(1)), NewItem(0, U32(2))})
	c := Array([]Item{NewItem(0, U32(1)), NewItem(0, U32(3))})

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.True(t, Null().Equal(Null()))
	require.False(t, U8(1).Equal(U16(1)))
}
