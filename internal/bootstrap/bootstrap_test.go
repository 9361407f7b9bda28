package bootstrap_test

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/Seednode/amongus/internal/assign"
	"github.com/Seednode/amongus/internal/bootstrap"
	"github.com/Seednode/amongus/internal/lzstring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	got, err := bootstrap.Encode(bootstrap.Snapshot{
		Room:          "room1",
		Round:         1,
		ImpostorCount: 1,
		Roster:        []string{"alice", "bob"},
	})
	require.NoError(t, err)

	// same bytes the browser client produces for this snapshot
	assert.Equal(t, "N4IgTg9hC2IFzitAjCANIgrgOwCb2QwEtoAHCAZwBcIwBhCHKgjSagUzHgG0QBDADZEAxu3QgARhAkgAugF8gA", got)
}

func TestDecode(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		in := bootstrap.Snapshot{Room: "englishclub", Round: 4, ImpostorCount: 2, Roster: []string{"ann", "ben", "cat"}}
		payload, err := bootstrap.Encode(in)
		require.NoError(t, err)

		got, err := bootstrap.Decode(payload)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})

	t.Run("normalizes_and_clamps", func(t *testing.T) {
		payload := lzstring.CompressToEncodedURIComponent(
			`{"room":" Room1 ","round":40,"impostorCount":0,"roster":[" Alice ","ALICE","","Bob  Smith"]}`,
		)

		got, err := bootstrap.Decode(payload)
		require.NoError(t, err)
		assert.Equal(t, bootstrap.Snapshot{
			Room:          "room1",
			Round:         10,
			ImpostorCount: 1,
			Roster:        []string{"alice", "bob smith"},
		}, got)
	})

	t.Run("empty_roster_encodes_as_list", func(t *testing.T) {
		payload, err := bootstrap.Encode(bootstrap.Snapshot{Room: "r", Round: 1, ImpostorCount: 1})
		require.NoError(t, err)

		got, err := bootstrap.Decode(payload)
		require.NoError(t, err)
		assert.Empty(t, got.Roster)
	})

	t.Run("keeps_at_most_twenty_players", func(t *testing.T) {
		names := make([]string, 0, 25)
		for i := range 25 {
			names = append(names, fmt.Sprintf("Player %d", i))
		}

		payload, err := bootstrap.Encode(bootstrap.Snapshot{Room: "r", Round: 1, ImpostorCount: 1, Roster: names})
		require.NoError(t, err)

		got, err := bootstrap.Decode(payload)
		require.NoError(t, err)
		require.Len(t, got.Roster, assign.MaxPlayers)
		assert.Equal(t, "player 0", got.Roster[0])
		assert.Equal(t, "player 19", got.Roster[19])
	})

	t.Run("rejects_long_payload", func(t *testing.T) {
		_, err := bootstrap.Decode(strings.Repeat("A", bootstrap.MaxPayloadLen+1))
		assert.ErrorIs(t, err, bootstrap.ErrMalformed)
	})

	t.Run("rejects_payload_that_expands_too_far", func(t *testing.T) {
		payload := lzstring.CompressToEncodedURIComponent(
			`{"room":"x","round":1,"impostorCount":1,"roster":["` + strings.Repeat("a", lzstring.MaxDecodedUnits) + `"]}`,
		)
		require.LessOrEqual(t, len(payload), bootstrap.MaxPayloadLen)

		_, err := bootstrap.Decode(payload)
		assert.ErrorIs(t, err, bootstrap.ErrMalformed)
		assert.ErrorIs(t, err, lzstring.ErrTooLarge)
	})

	t.Run("rejects_malformed", func(t *testing.T) {
		for _, payload := range []string{
			"",
			"%%%",
			lzstring.CompressToEncodedURIComponent("not json"),
			lzstring.CompressToEncodedURIComponent(`{"room":"x"}`),
			lzstring.CompressToEncodedURIComponent(`{"room":"x","roster":"alice"}`),
			lzstring.CompressToEncodedURIComponent(`{"room":"x","roster":[1,2]}`),
		} {
			_, err := bootstrap.Decode(payload)
			assert.ErrorIs(t, err, bootstrap.ErrMalformed, payload)
		}
	})
}

func TestLinks(t *testing.T) {
	base, err := url.Parse("https://example.com/game/")
	require.NoError(t, err)

	player := bootstrap.PlayerLink(base, "room 1")
	assert.Equal(t, "https://example.com/game/?mode=player&room=room+1", player)

	snap := bootstrap.Snapshot{Room: "room 1", Round: 2, ImpostorCount: 1, Roster: []string{"ann", "ben"}}
	init, err := bootstrap.InitLink(base, snap)
	require.NoError(t, err)

	u, err := url.Parse(init)
	require.NoError(t, err)
	assert.Equal(t, bootstrap.ModePlayer, u.Query().Get(bootstrap.ParamMode))
	assert.Equal(t, "room 1", u.Query().Get(bootstrap.ParamRoom))

	got, err := bootstrap.Decode(u.Query().Get(bootstrap.ParamBootstrap))
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	assert.Equal(t, "/game/?mode=player&room=room+1", bootstrap.StripBootstrap(u))
}

func TestParse(t *testing.T) {
	assert.Equal(t, 1, bootstrap.ParseRound(""))
	assert.Equal(t, 1, bootstrap.ParseRound("abc"))
	assert.Equal(t, 5, bootstrap.ParseRound("5"))
	assert.Equal(t, 10, bootstrap.ParseRound("11"))

	assert.Equal(t, 1, bootstrap.ParseImpostors(""))
	assert.Equal(t, 2, bootstrap.ParseImpostors("2"))
	assert.Equal(t, 2, bootstrap.ParseImpostors("3"))
}
