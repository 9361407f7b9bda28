/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package assign

import "sort"

// Role is the secret side a player is on for a round.
type Role string

const (
	Crew     Role = "CREW"
	Impostor Role = "IMPOSTOR"
)

const (
	// MaxPlayers is the largest roster that takes part in a round.
	MaxPlayers = 20

	MinImpostors = 1
	MaxImpostors = 2
)

// Ranked is a roster entry paired with its digest rank.
type Ranked struct {
	Name string
	Rank uint64
}

// ClampRound forces a round number into [1, Rounds].
func ClampRound(round int) int {
	return min(max(round, 1), Rounds)
}

// ClampImpostors forces a requested impostor count into [1, 2]; zero and
// negative requests mean one.
func ClampImpostors(count int) int {
	return min(max(count, MinImpostors), MaxImpostors)
}

// Truncate returns at most the first MaxPlayers entries of roster.
func Truncate(roster []string) []string {
	if len(roster) > MaxPlayers {
		return roster[:MaxPlayers]
	}

	return roster
}

// ImpostorsFor is the number of impostors a roster of n players gets.
func ImpostorsFor(n, requested int) int {
	switch {
	case n < 2:
		return 0
	case n == 2:
		return 1
	default:
		return ClampImpostors(requested)
	}
}

// RankRoster truncates roster and orders it by ascending digest rank. Equal
// ranks keep roster order.
func RankRoster(roster []string, seed string, round int) []Ranked {
	roster = Truncate(roster)

	ranked := make([]Ranked, len(roster))
	for i, name := range roster {
		ranked[i] = Ranked{Name: name, Rank: Rank(name, seed, round)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rank < ranked[j].Rank
	})

	return ranked
}

// SelectImpostors returns the names of the lowest-ranked players that are
// impostors for this seed and round.
func SelectImpostors(roster []string, seed string, round, impostorCount int) map[string]struct{} {
	return impostorSet(RankRoster(roster, seed, round), impostorCount)
}

func impostorSet(ranked []Ranked, impostorCount int) map[string]struct{} {
	k := ImpostorsFor(len(ranked), impostorCount)

	set := make(map[string]struct{}, k)
	for _, r := range ranked[:k] {
		set[r.Name] = struct{}{}
	}

	return set
}
