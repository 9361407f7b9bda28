/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package roster holds the admin's ordered list of unique player names.
package roster

import (
	"errors"
	"slices"

	"github.com/Seednode/amongus/internal/assign"
)

var (
	ErrEmptyName = errors.New("player name is empty")
	ErrDuplicate = errors.New("player is already on the roster")
	ErrFull      = errors.New("roster is full")
)

// Roster is a list of normalized, unique names in the order they were added.
type Roster struct {
	names []string
}

// New builds a roster from names, normalizing them and keeping the first
// MaxPlayers unique entries.
func New(names []string) *Roster {
	r := &Roster{}
	for _, name := range names {
		_, _ = r.Add(name)
	}

	return r
}

// Add normalizes name and appends it, returning the stored form.
func (r *Roster) Add(name string) (string, error) {
	n := assign.Normalize(name)

	switch {
	case n == "":
		return "", ErrEmptyName
	case slices.Contains(r.names, n):
		return n, ErrDuplicate
	case len(r.names) >= assign.MaxPlayers:
		return n, ErrFull
	}

	r.names = append(r.names, n)

	return n, nil
}

// Remove drops name, reporting whether it was present.
func (r *Roster) Remove(name string) bool {
	n := assign.Normalize(name)

	i := slices.Index(r.names, n)
	if i < 0 {
		return false
	}

	r.names = slices.Delete(r.names, i, i+1)

	return true
}

func (r *Roster) Clear() {
	r.names = nil
}

func (r *Roster) Len() int {
	return len(r.names)
}

// Names returns a copy of the roster in insertion order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)

	return out
}

// TooFew reports a roster that cannot play a round.
func (r *Roster) TooFew() bool {
	return len(r.names) < 2
}

// TooMany reports a roster past the player cap.
func (r *Roster) TooMany() bool {
	return len(r.names) > assign.MaxPlayers
}
