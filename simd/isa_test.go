package simd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBestISA_Stable(t *testing.T) {
	// Detection runs once at init; repeated calls must agree.
	require.Equal(t, BestISA(), BestISA())
}

func TestIsAccelerated_ConsistentWithBestISA(t *testing.T) {
	require.Equal(t, BestISA() != None, IsAccelerated())
}

func TestISA_String(t *testing.T) {
	require.Equal(t, "none", None.String())
	require.Equal(t, "avx512", AVX512.String())
	require.Equal(t, "avx2", AVX2.String())
	require.Equal(t, "sse4.1", SSE41.String())
	require.Equal(t, "neon", NEON.String())
}
