/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package assign

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// rankDigits is the number of leading hex digits folded into a rank.
const rankDigits = 12

// Digest returns the hex-encoded SHA-256 of "name|seed|round", with name normalized.
func Digest(name, seed string, round int) string {
	sum := sha256.Sum256([]byte(Normalize(name) + "|" + seed + "|" + strconv.Itoa(round)))

	return hex.EncodeToString(sum[:])
}

// Rank parses the first 12 hex digits of the player's digest, giving a
// value in [0, 16^12).
func Rank(name, seed string, round int) uint64 {
	v, err := strconv.ParseUint(Digest(name, seed, round)[:rankDigits], 16, 64)
	if err != nil {
		// unreachable: Digest only emits hex
		return 0
	}

	return v
}
