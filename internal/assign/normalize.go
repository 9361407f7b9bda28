/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package assign

import "strings"

// Normalize trims, lowercases and collapses internal whitespace runs to a
// single space, so "Alice ", "alice" and "ALICE" name the same player.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
