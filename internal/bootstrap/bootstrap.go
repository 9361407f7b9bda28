/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package bootstrap carries an admin's roster and settings to a player's
// device inside a one-time link.
package bootstrap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Seednode/amongus/internal/assign"
	"github.com/Seednode/amongus/internal/lzstring"
)

// Query parameter names shared by every link.
const (
	ParamMode      = "mode"
	ParamRoom      = "room"
	ParamBootstrap = "bootstrap"

	ModeAdmin  = "admin"
	ModePlayer = "player"

	// MaxPayloadLen is the longest bootstrap value Decode will look at.
	MaxPayloadLen = 8 << 10
)

var ErrMalformed = errors.New("bootstrap: malformed payload")

// Snapshot is the admin state handed to a player device once.
type Snapshot struct {
	Room          string   `json:"room"`
	Round         int      `json:"round"`
	ImpostorCount int      `json:"impostorCount"`
	Roster        []string `json:"roster"`
}

// Encode renders s as compact JSON compressed for use in a query string.
func Encode(s Snapshot) (string, error) {
	if s.Roster == nil {
		s.Roster = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}

	return lzstring.CompressToEncodedURIComponent(string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))), nil
}

// Decode parses a payload made by Encode or by the browser client. The roster
// is normalized and de-duplicated, and the round and impostor count clamped.
func Decode(payload string) (Snapshot, error) {
	if len(payload) > MaxPayloadLen {
		return Snapshot{}, fmt.Errorf("%w: payload too long (%d bytes)", ErrMalformed, len(payload))
	}

	raw, err := lzstring.DecompressFromEncodedURIComponent(payload)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var wire struct {
		Room          string          `json:"room"`
		Round         int             `json:"round"`
		ImpostorCount int             `json:"impostorCount"`
		Roster        json.RawMessage `json:"roster"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	trimmed := bytes.TrimSpace(wire.Roster)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return Snapshot{}, fmt.Errorf("%w: roster is not a list", ErrMalformed)
	}

	var names []string
	if err := json.Unmarshal(trimmed, &names); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return Snapshot{
		Room:          assign.Normalize(wire.Room),
		Round:         assign.ClampRound(wire.Round),
		ImpostorCount: assign.ClampImpostors(wire.ImpostorCount),
		Roster:        CleanRoster(names),
	}, nil
}

// CleanRoster normalizes names, dropping blanks and repeats, and keeps at
// most assign.MaxPlayers of them.
func CleanRoster(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, min(len(names), assign.MaxPlayers))

	for _, name := range names {
		if len(out) == assign.MaxPlayers {
			break
		}

		n := assign.Normalize(name)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}

	return out
}

// PlayerLink is the reusable link a player opens every round.
func PlayerLink(base *url.URL, room string) string {
	u := *base

	q := url.Values{}
	q.Set(ParamMode, ModePlayer)
	q.Set(ParamRoom, room)
	u.RawQuery = q.Encode()

	return u.String()
}

// InitLink is PlayerLink plus the encoded snapshot, opened once per device.
func InitLink(base *url.URL, s Snapshot) (string, error) {
	payload, err := Encode(s)
	if err != nil {
		return "", err
	}

	u := *base

	q := url.Values{}
	q.Set(ParamMode, ModePlayer)
	q.Set(ParamRoom, s.Room)
	q.Set(ParamBootstrap, payload)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// StripBootstrap returns u's path and query without the bootstrap parameter.
func StripBootstrap(u *url.URL) string {
	q := u.Query()
	q.Del(ParamBootstrap)

	out := url.URL{Path: u.Path, RawQuery: q.Encode()}

	return out.String()
}

// ParseRound reads a round from a query or form value, clamped to [1, 10];
// anything unparsable is round 1.
func ParseRound(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}

	return assign.ClampRound(n)
}

// ParseImpostors reads an impostor count, clamped to [1, 2].
func ParseImpostors(s string) int {
	n, _ := strconv.Atoi(s)

	return assign.ClampImpostors(n)
}
