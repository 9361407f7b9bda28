/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package lzstring implements the URL-safe flavour of the lz-string
// compression format, so links produced in a browser can be decoded here and
// the other way round.
package lzstring

import (
	"errors"
	"strings"
	"unicode/utf16"
)

const (
	uriSafeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+-$"
	uriBitsPerChar  = 6

	// MaxDecodedUnits bounds the UTF-16 units a single payload may expand to.
	MaxDecodedUnits = 64 << 10
)

var (
	ErrCorrupt      = errors.New("lzstring: corrupt input")
	ErrInvalidInput = errors.New("lzstring: invalid character in input")
	ErrTooLarge     = errors.New("lzstring: decoded output too large")
)

var uriSafeValues = func() map[byte]int {
	m := make(map[byte]int, len(uriSafeAlphabet))
	for i := 0; i < len(uriSafeAlphabet); i++ {
		m[uriSafeAlphabet[i]] = i
	}

	return m
}()

// CompressToEncodedURIComponent compresses s into characters that need no
// escaping inside a query string.
func CompressToEncodedURIComponent(s string) string {
	return compress(utf16.Encode([]rune(s)), uriBitsPerChar, func(v int) byte {
		return uriSafeAlphabet[v]
	})
}

// DecompressFromEncodedURIComponent reverses CompressToEncodedURIComponent.
// Spaces are read as '+', which form decoding may have produced.
func DecompressFromEncodedURIComponent(s string) (string, error) {
	if s == "" {
		return "", ErrCorrupt
	}

	s = strings.ReplaceAll(s, " ", "+")

	values := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		v, ok := uriSafeValues[s[i]]
		if !ok {
			return "", ErrInvalidInput
		}
		values[i] = v
	}

	units, err := decompress(values, 32)
	if err != nil {
		return "", err
	}

	return string(utf16.Decode(units)), nil
}

// unit keys a dictionary entry by its UTF-16 code units.
func unitKey(units ...uint16) string {
	b := make([]byte, 0, 2*len(units))
	for _, u := range units {
		b = append(b, byte(u>>8), byte(u))
	}

	return string(b)
}

func firstUnit(key string) uint16 {
	return uint16(key[0])<<8 | uint16(key[1])
}

type bitWriter struct {
	out          []byte
	val          int
	position     int
	bitsPerChar  int
	charFromBits func(int) byte
}

func (w *bitWriter) writeBit(bit int) {
	w.val = w.val<<1 | bit
	if w.position == w.bitsPerChar-1 {
		w.position = 0
		w.out = append(w.out, w.charFromBits(w.val))
		w.val = 0
	} else {
		w.position++
	}
}

// writeBits emits the low n bits of value, least significant first.
func (w *bitWriter) writeBits(value, n int) {
	for range n {
		w.writeBit(value & 1)
		value >>= 1
	}
}

func (w *bitWriter) flush() {
	for {
		w.val <<= 1
		if w.position == w.bitsPerChar-1 {
			w.out = append(w.out, w.charFromBits(w.val))
			return
		}
		w.position++
	}
}

type compressor struct {
	w          *bitWriter
	dictionary map[string]int
	toCreate   map[string]bool
	dictSize   int
	numBits    int
	enlargeIn  int
}

func (c *compressor) shrink() {
	c.enlargeIn--
	if c.enlargeIn == 0 {
		c.enlargeIn = 1 << c.numBits
		c.numBits++
	}
}

// emit writes the code for the phrase w.
func (c *compressor) emit(w string) {
	if !c.toCreate[w] {
		c.w.writeBits(c.dictionary[w], c.numBits)
		return
	}

	if first := firstUnit(w); first < 256 {
		c.w.writeBits(0, c.numBits)
		c.w.writeBits(int(first), 8)
	} else {
		c.w.writeBits(1, c.numBits)
		c.w.writeBits(int(first), 16)
	}

	c.shrink()
	delete(c.toCreate, w)
}

func compress(input []uint16, bitsPerChar int, charFromBits func(int) byte) string {
	c := &compressor{
		w: &bitWriter{
			bitsPerChar:  bitsPerChar,
			charFromBits: charFromBits,
		},
		dictionary: make(map[string]int),
		toCreate:   make(map[string]bool),
		dictSize:   3,
		numBits:    2,
		enlargeIn:  2,
	}

	w := ""
	for _, u := range input {
		ch := unitKey(u)
		if _, ok := c.dictionary[ch]; !ok {
			c.dictionary[ch] = c.dictSize
			c.dictSize++
			c.toCreate[ch] = true
		}

		wc := w + ch
		if _, ok := c.dictionary[wc]; ok {
			w = wc
			continue
		}

		c.emit(w)
		c.shrink()

		c.dictionary[wc] = c.dictSize
		c.dictSize++
		w = ch
	}

	if w != "" {
		c.emit(w)
		c.shrink()
	}

	// end of stream
	c.w.writeBits(2, c.numBits)
	c.w.flush()

	return string(c.w.out)
}

type bitReader struct {
	values     []int
	val        int
	position   int
	index      int
	resetValue int
}

func (r *bitReader) readBits(n int) int {
	bits := 0
	for power := 0; power < n; power++ {
		bit := r.val & r.position
		r.position >>= 1
		if r.position == 0 {
			if r.index >= len(r.values) {
				// reading past the end yields zero bits
				r.val = 0
			} else {
				r.val = r.values[r.index]
			}
			r.position = r.resetValue
			r.index++
		}
		if bit > 0 {
			bits |= 1 << power
		}
	}

	return bits
}

func decompress(values []int, resetValue int) ([]uint16, error) {
	r := &bitReader{
		values:     values,
		val:        values[0],
		position:   resetValue,
		index:      1,
		resetValue: resetValue,
	}

	dictionary := [][]uint16{{0}, {1}, {2}}
	enlargeIn := 4
	numBits := 3

	next := r.readBits(2)

	var c []uint16
	switch next {
	case 0:
		v := r.readBits(8)
		c = []uint16{uint16(v)}
	case 1:
		v := r.readBits(16)
		c = []uint16{uint16(v)}
	case 2:
		return nil, nil
	default:
		return nil, ErrCorrupt
	}

	dictionary = append(dictionary, c)
	w := c
	result := append([]uint16(nil), c...)

	for {
		if r.index > len(values) {
			return nil, ErrCorrupt
		}

		code := r.readBits(numBits)

		switch code {
		case 0, 1:
			size := 8
			if code == 1 {
				size = 16
			}
			v := r.readBits(size)
			dictionary = append(dictionary, []uint16{uint16(v)})
			code = len(dictionary) - 1
			enlargeIn--
		case 2:
			return result, nil
		}

		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}

		var entry []uint16
		switch {
		case code < len(dictionary):
			entry = dictionary[code]
		case code == len(dictionary):
			entry = append(append([]uint16(nil), w...), w[0])
		default:
			return nil, ErrCorrupt
		}
		if len(result)+len(entry) > MaxDecodedUnits {
			return nil, ErrTooLarge
		}
		result = append(result, entry...)

		phrase := append(append([]uint16(nil), w...), entry[0])
		dictionary = append(dictionary, phrase)
		enlargeIn--

		w = entry

		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}
}
