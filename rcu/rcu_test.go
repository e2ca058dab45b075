package rcu

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue_LoadReflectsLatestStore(t *testing.T) {
	v := New(10)
	require.Equal(t, 10, *v.Load())

	v.Store(20)
	require.Equal(t, 20, *v.Load())
}

func TestValue_PreviousLoadStaysValidAfterStore(t *testing.T) {
	v := New(10)
	old := v.Load()

	v.Store(20)

	require.Equal(t, 10, *old)
	require.Equal(t, 20, *v.Load())
}

func TestFingerprint_DistinguishesSupersededVersions(t *testing.T) {
	v := New([]byte("version-1"))
	first := Fingerprint(*v.Load())

	v.Store([]byte("version-2"))
	second := Fingerprint(*v.Load())

	require.NotEqual(t, first, second)
	require.Equal(t, Fingerprint([]byte("version-1")), first)
}

func TestValue_RetirementRingBounded(t *testing.T) {
	v := New(0)
	for i := 1; i <= defaultRetireAfter+10; i++ {
		v.Store(i)
		require.LessOrEqual(t, v.Pending(), defaultRetireAfter)
	}
}

func TestValue_ConcurrentReadsDuringUpdates(t *testing.T) {
	v := New(100)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got := *v.Load()
				require.True(t, got == 100 || got == 200 || got == 300)
			}
		}()
	}

	v.Store(200)
	v.Store(300)
	wg.Wait()

	require.Equal(t, 300, *v.Load())
}
