package cafs

import (
	"encoding/hex"
	"fmt"
)

const (
	// KeySize for blake2b algo
	KeySize = 64

	// ShortKeySize for xxh3 (128 bits) algo
	ShortKeySize = 16

	// abbreviated length of a key, for display
	shortHexLen = 12
)

// NewKey creates a new key from a digest
func NewKey(data []byte) (Key, error) {
	if len(data) != KeySize && len(data) != ShortKeySize {
		return "", &BadKeySize{Key: data}
	}
	return Key(hex.EncodeToString(data)), nil
}

// MustNewKey creates a new key from a digest but panics if there is an error
func MustNewKey(data []byte) Key {
	k, e := NewKey(data)
	if e != nil {
		panic(e.Error())
	}
	return k
}

// ParseKey builds a key from its hex representation
func ParseKey(s string) (Key, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("invalid key %q: %w", s, err)
	}
	return NewKey(data)
}

// Key identifies some content by its digest, in hex form.
//
// The zero value is not a valid key.
type Key string

func (k Key) String() string {
	return string(k)
}

// Short returns an abbreviated form of the key
func (k Key) Short() string {
	if len(k) <= shortHexLen {
		return string(k)
	}
	return string(k[:shortHexLen])
}

// IsZero tells if the key is unset
func (k Key) IsZero() bool {
	return k == ""
}

// Bytes returns the raw digest
func (k Key) Bytes() []byte {
	b, _ := hex.DecodeString(string(k))
	return b
}

// BadKeySize is an error that's returned when the key to create has an invalid size.
type BadKeySize struct {
	Key []byte
}

func (b *BadKeySize) Error() string {
	return fmt.Sprintf("%x has invalid size of %d, expected %d or %d", b.Key, len(b.Key), KeySize, ShortKeySize)
}
