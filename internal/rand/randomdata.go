// Package rand generates random test data: byte sequences, letter strings and sets of entries.
package rand

import (
	"math/rand/v2"
	"strings"
)

const letters = "abcdefghijklmnopqrstuvwxyz0123456789"

// Bytes returns a random slice of bytes
func Bytes(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(rand.UintN(256))
	}
	return buf
}

// LetterString returns a random string picked in the [0-9]|[a-z] range
func LetterString(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(letters[rand.IntN(len(letters))])
	}
	return b.String()
}

// Path returns a random slash-separated path, with up to depth segments
func Path(depth int) string {
	segments := 1 + rand.IntN(max(depth, 1))
	parts := make([]string, segments)
	for i := range parts {
		parts[i] = LetterString(1 + rand.IntN(8))
	}
	return "/" + strings.Join(parts, "/")
}

// Entries returns n entries at distinct random paths, with letter content of at most maxSize bytes.
//
// Content may be empty.
func Entries(n, maxSize int) map[string]string {
	entries := make(map[string]string, n)
	for len(entries) < n {
		entries[Path(4)] = LetterString(rand.IntN(maxSize + 1))
	}
	return entries
}

// Shuffled returns the keys of a set of entries, in random order
func Shuffled(entries map[string]string) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	rand.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	return keys
}
