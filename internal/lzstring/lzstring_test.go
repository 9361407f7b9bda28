package lzstring_test

import (
	"strings"
	"testing"

	"github.com/Seednode/amongus/internal/lzstring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressToEncodedURIComponent(t *testing.T) {
	assert.Equal(t, "BIUwNmD2A0AEDukBOYAmQ", lzstring.CompressToEncodedURIComponent("Hello, world"))
	assert.Equal(t,
		"N4IgTg9hC2IFzitAjCANIgrgOwCb2QwEtoAHCAZwBcIwBhCHKgjSagUzHgG0QBDADZEAxu3QgARhAkgAugF8gA",
		lzstring.CompressToEncodedURIComponent(`{"room":"room1","round":1,"impostorCount":1,"roster":["alice","bob"]}`),
	)
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"a",
		"hello hello hello",
		`{"room":"englishclub","round":3,"impostorCount":2,"roster":["ann","ben","cat"]}`,
		"ünïcødé 🎲 emoji 🎲🎲",
		strings.Repeat("abababababababababab", 30),
	}

	for _, in := range inputs {
		out := lzstring.CompressToEncodedURIComponent(in)
		assert.NotContains(t, out, "/")
		assert.NotContains(t, out, "=")

		got, err := lzstring.DecompressFromEncodedURIComponent(out)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestDecompressSpacesAsPlus(t *testing.T) {
	in := strings.Repeat("room code with plenty of text ", 5)
	out := lzstring.CompressToEncodedURIComponent(in)

	got, err := lzstring.DecompressFromEncodedURIComponent(strings.ReplaceAll(out, "+", " "))
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestDecompressRejectsGarbage(t *testing.T) {
	_, err := lzstring.DecompressFromEncodedURIComponent("")
	assert.ErrorIs(t, err, lzstring.ErrCorrupt)

	_, err = lzstring.DecompressFromEncodedURIComponent("not/valid=")
	assert.ErrorIs(t, err, lzstring.ErrInvalidInput)
}

// chainPayload encodes the literal 'a' followed by n codes that each refer
// to the entry being defined, so every step decodes one unit longer than the
// last. With terminate set the stream ends with the end-of-stream code.
func chainPayload(n int, terminate bool) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+-$"

	var bits []int
	write := func(v, width int) {
		for i := 0; i < width; i++ {
			bits = append(bits, (v>>i)&1)
		}
	}

	write(0, 2)
	write('a', 8)

	dictLen, enlargeIn, numBits := 4, 4, 3
	for range n {
		write(dictLen, numBits)
		dictLen++
		enlargeIn--
		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}
	if terminate {
		write(2, numBits)
	}

	var sb strings.Builder
	for i := 0; i < len(bits); i += 6 {
		v := 0
		for j := 0; j < 6; j++ {
			v <<= 1
			if i+j < len(bits) {
				v |= bits[i+j]
			}
		}
		sb.WriteByte(alphabet[v])
	}

	return sb.String()
}

func TestDecompressSelfReferentialChain(t *testing.T) {
	got, err := lzstring.DecompressFromEncodedURIComponent(chainPayload(50, true))
	require.NoError(t, err)
	// 1 + 2 + ... + 51
	assert.Equal(t, strings.Repeat("a", 51*52/2), got)
}

func TestDecompressBoundsOutput(t *testing.T) {
	payload := chainPayload(2000, false)
	require.Less(t, len(payload), 4<<10)

	_, err := lzstring.DecompressFromEncodedURIComponent(payload)
	assert.ErrorIs(t, err, lzstring.ErrTooLarge)
}

func TestDecompressAtLimit(t *testing.T) {
	at := strings.Repeat("a", lzstring.MaxDecodedUnits)

	got, err := lzstring.DecompressFromEncodedURIComponent(lzstring.CompressToEncodedURIComponent(at))
	require.NoError(t, err)
	assert.Equal(t, at, got)

	_, err = lzstring.DecompressFromEncodedURIComponent(lzstring.CompressToEncodedURIComponent(at + "a"))
	assert.ErrorIs(t, err, lzstring.ErrTooLarge)
}
