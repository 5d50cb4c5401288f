// Package content defines the flavors of content an area may hold.
//
// A flavor is a Codec: it turns content into the canonical bytes used for
// storage and hashing, and back. Flavors sharing the same canonical bytes
// produce the same content keys.
package content

import "bytes"

// Codec converts content of kind C to and from its canonical bytes.
//
// Encode must return a buffer the caller may retain, and Decode must return a
// value which does not alias the input buffer.
type Codec[C any] interface {
	Name() string
	Encode(C) []byte
	Decode([]byte) C
}

const (
	// BytesFlavor names the byte sequence flavor
	BytesFlavor = "bytes"

	// StringFlavor names the string flavor
	StringFlavor = "string"
)

var (
	_ Codec[[]byte] = Bytes{}
	_ Codec[string] = String{}
)

// Bytes is the byte sequence flavor
type Bytes struct{}

// Name of the flavor
func (Bytes) Name() string { return BytesFlavor }

// Encode clones the input, so later changes by the caller are not seen
func (Bytes) Encode(c []byte) []byte { return bytes.Clone(nonNil(c)) }

// Decode clones the stored bytes
func (Bytes) Decode(b []byte) []byte { return bytes.Clone(nonNil(b)) }

// String is the string flavor, encoded as its raw (UTF-8) bytes
type String struct{}

// Name of the flavor
func (String) Name() string { return StringFlavor }

// Encode a string
func (String) Encode(c string) []byte { return []byte(c) }

// Decode a string
func (String) Decode(b []byte) string { return string(b) }

// bytes.Clone keeps nil as nil: empty content must stay distinguishable from no content
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
