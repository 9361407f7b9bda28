/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package device keeps the roster and settings a player's device received
// from a bootstrap link, and reveals that player's word from them.
package device

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Seednode/amongus/internal/assign"
	"github.com/Seednode/amongus/internal/bootstrap"
)

var (
	ErrUninitialized = errors.New("device has no roster for this room yet")
	ErrNameRequired  = errors.New("name is required")
	ErrNotFound      = errors.New("name not found in roster")
)

// Store is a device-local key-value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Settings are the per-room options stored next to the roster.
type Settings struct {
	ImpostorCount int `json:"impostorCount"`
}

// Reveal is what a player is shown: never their role.
type Reveal struct {
	Round int    `json:"round"`
	Theme string `json:"theme"`
	Word  string `json:"word"`
}

func RosterKey(room string) string   { return "roster_" + room }
func SettingsKey(room string) string { return "settings_" + room }

// State reads and writes per-room device state through a Store.
type State struct {
	store Store
}

func New(store Store) *State {
	return &State{store: store}
}

// Save persists a decoded snapshot for room.
func (s *State) Save(room string, snap bootstrap.Snapshot) error {
	roster := snap.Roster
	if roster == nil {
		roster = []string{}
	}

	r, err := json.Marshal(roster)
	if err != nil {
		return err
	}

	st, err := json.Marshal(Settings{ImpostorCount: assign.ClampImpostors(snap.ImpostorCount)})
	if err != nil {
		return err
	}

	if err := s.store.Set(RosterKey(room), string(r)); err != nil {
		return fmt.Errorf("saving roster: %w", err)
	}

	if err := s.store.Set(SettingsKey(room), string(st)); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	return nil
}

// Bootstrap decodes payload and saves it for room. A payload that cannot be
// decoded leaves the device untouched.
func (s *State) Bootstrap(room, payload string) (bootstrap.Snapshot, error) {
	snap, err := bootstrap.Decode(payload)
	if err != nil {
		return bootstrap.Snapshot{}, err
	}

	return snap, s.Save(room, snap)
}

// Roster returns the stored roster for room; missing or unreadable state is
// an empty roster.
func (s *State) Roster(room string) []string {
	raw, ok := s.store.Get(RosterKey(room))
	if !ok {
		return []string{}
	}

	var roster []string
	if err := json.Unmarshal([]byte(raw), &roster); err != nil {
		return []string{}
	}

	return roster
}

// Settings returns the stored settings for room with the impostor count
// clamped to [1, 2].
func (s *State) Settings(room string) Settings {
	var st Settings

	if raw, ok := s.store.Get(SettingsKey(room)); ok {
		_ = json.Unmarshal([]byte(raw), &st)
	}

	st.ImpostorCount = assign.ClampImpostors(st.ImpostorCount)

	return st
}

// Lookup recomputes the round from stored state and returns name's word.
func (s *State) Lookup(room, name string, round int) (Reveal, error) {
	if assign.Normalize(name) == "" {
		return Reveal{}, ErrNameRequired
	}

	roster := s.Roster(room)
	if len(roster) < 2 {
		return Reveal{}, ErrUninitialized
	}

	round = assign.ClampRound(round)

	me, ok := assign.Find(assign.All(roster, room, round, s.Settings(room).ImpostorCount), name)
	if !ok {
		return Reveal{}, ErrNotFound
	}

	return Reveal{
		Round: round,
		Theme: assign.ThemeFor(round).Label,
		Word:  me.Word,
	}, nil
}
