/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package assign derives every player's secret role and word for a round
// from nothing but the roster, the room seed and the round number. Each
// device recomputes the same result independently.
package assign

import (
	"strconv"

	"github.com/Seednode/amongus/internal/seedrand"
)

// Assignment is one player's secret for a round.
type Assignment struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
	Word string `json:"word"`
}

// WordSource draws words for one (seed, round) pair. A fresh source must be
// created for every computation.
type WordSource struct {
	rng *seedrand.Source
}

// NewWordSource seeds a word stream with "seed|round|words".
func NewWordSource(seed string, round int) *WordSource {
	return &WordSource{rng: seedrand.New(seed + "|" + strconv.Itoa(round) + "|words")}
}

// Pick consumes one draw and returns a word from the role's pool in theme.
func (w *WordSource) Pick(role Role, theme Theme) string {
	pool := theme.Pool(role)
	if len(pool) == 0 {
		return ""
	}

	return pool[w.rng.Intn(len(pool))]
}

// All computes the assignments for roster in ascending rank order. The roster
// is truncated to MaxPlayers first; words are drawn in the returned order.
func All(roster []string, seed string, round, impostorCount int) []Assignment {
	ranked := RankRoster(roster, seed, round)
	impostors := impostorSet(ranked, impostorCount)

	theme := ThemeFor(round)
	words := NewWordSource(seed, round)

	out := make([]Assignment, 0, len(ranked))
	for _, r := range ranked {
		role := Crew
		if _, ok := impostors[r.Name]; ok {
			role = Impostor
		}

		out = append(out, Assignment{
			Name: r.Name,
			Role: role,
			Word: words.Pick(role, theme),
		})
	}

	return out
}

// Find returns the assignment for name, compared after normalization.
func Find(assignments []Assignment, name string) (Assignment, bool) {
	name = Normalize(name)

	for _, a := range assignments {
		if Normalize(a.Name) == name {
			return a, true
		}
	}

	return Assignment{}, false
}
