/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package seedrand is a string-seeded ARC4 stream of floats in [0, 1). Its
// output matches the seedrandom JavaScript library for the same seed, so a
// browser and a server derive the same sequence.
package seedrand

import "unicode/utf16"

const (
	width  = 256
	mask   = width - 1
	chunks = 6

	startDenom   = float64(1 << 48) // width^chunks
	significance = float64(1 << 52)
	overflow     = float64(1 << 53)
)

// Source is a seeded generator. It is not safe for concurrent use.
type Source struct {
	i, j int
	s    [width]int
}

// New seeds a Source from the UTF-16 code units of seed.
func New(seed string) *Source {
	key := mixKey(seed)

	src := &Source{}
	for i := range src.s {
		src.s[i] = i
	}

	j := 0
	for i := range width {
		t := src.s[i]
		j = mask & (j + key[i%len(key)] + t)
		src.s[i] = src.s[j]
		src.s[j] = t
	}

	// RC4-drop[256]
	for range width {
		src.next()
	}

	return src
}

func mixKey(seed string) []int {
	var key []int

	smear := 0
	for j, c := range utf16.Encode([]rune(seed)) {
		k := mask & j

		prev := 0
		if k < len(key) {
			prev = key[k]
		}
		smear ^= prev * 19

		v := mask & (smear + int(c))
		if k < len(key) {
			key[k] = v
		} else {
			key = append(key, v)
		}
	}

	if len(key) == 0 {
		key = []int{0}
	}

	return key
}

func (src *Source) next() int {
	src.i = mask & (src.i + 1)
	t := src.s[src.i]
	src.j = mask & (src.j + t)
	src.s[src.i] = src.s[src.j]
	src.s[src.j] = t

	return src.s[mask&(src.s[src.i]+src.s[src.j])]
}

// bytes reads count stream bytes as one big-endian integer.
func (src *Source) bytes(count int) uint64 {
	var r uint64
	for range count {
		r = r*width + uint64(src.next())
	}

	return r
}

// Float64 returns the next value in [0, 1) carrying 52 bits of the stream.
func (src *Source) Float64() float64 {
	n := float64(src.bytes(chunks))
	d := startDenom
	x := uint64(0)

	for n < significance {
		n = float64(n+float64(x)) * width
		d *= width
		x = src.bytes(1)
	}

	for n >= overflow {
		n /= 2
		d /= 2
		x >>= 1
	}

	return (n + float64(x)) / d
}

// Intn returns a value in [0, n) as floor(Float64() * n).
func (src *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}

	return min(int(src.Float64()*float64(n)), n-1)
}
