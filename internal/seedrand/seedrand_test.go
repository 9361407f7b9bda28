package seedrand_test

import (
	"testing"

	"github.com/Seednode/amongus/internal/seedrand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat64(t *testing.T) {
	t.Run("matches_seedrandom_reference_stream", func(t *testing.T) {
		src := seedrand.New("hello.")
		assert.Equal(t, 0.9282578795792454, src.Float64())
		assert.Equal(t, 0.3752569768646784, src.Float64())
	})

	t.Run("same_seed_same_stream", func(t *testing.T) {
		a := seedrand.New("room1|1|words")
		b := seedrand.New("room1|1|words")
		for range 100 {
			require.Equal(t, a.Float64(), b.Float64())
		}
	})

	t.Run("different_seed_different_stream", func(t *testing.T) {
		a := seedrand.New("room1|1|words")
		b := seedrand.New("room1|2|words")
		assert.NotEqual(t, a.Float64(), b.Float64())
	})

	t.Run("stays_in_unit_interval", func(t *testing.T) {
		for _, seed := range []string{"", "x", "englishclub|10|words", "ünïcødé 🎲"} {
			src := seedrand.New(seed)
			for range 500 {
				v := src.Float64()
				require.GreaterOrEqual(t, v, 0.0)
				require.Less(t, v, 1.0)
			}
		}
	})
}

func TestIntn(t *testing.T) {
	src := seedrand.New("bounds")
	for range 1000 {
		v := src.Intn(15)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 15)
	}

	assert.Equal(t, 0, src.Intn(0))
}

func TestLongSeed(t *testing.T) {
	long := make([]byte, 600)
	for i := range long {
		long[i] = byte('a' + i%26)
	}

	a := seedrand.New(string(long))
	b := seedrand.New(string(long))
	assert.Equal(t, a.Float64(), b.Float64())
}
