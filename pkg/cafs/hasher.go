package cafs

import (
	"encoding/binary"
	"fmt"
	"hash"
	"iter"
	"maps"
	"slices"
	"strings"

	blake2b "github.com/minio/blake2b-simd"
	"github.com/zeebo/xxh3"

	"github.com/oneconcern/memvcs/pkg/convert"
)

// Algorithm selects the hash function used to compute content keys
type Algorithm uint8

const (
	// Blake2b is the blake2b-512 cryptographic hash. This is the default.
	Blake2b Algorithm = iota

	// XXH3 is the 128 bits variant of the xxh3 non-cryptographic hash
	XXH3
)

var algorithmNames = map[Algorithm]string{
	Blake2b: "blake2b",
	XXH3:    "xxh3",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("algorithm(%d)", uint8(a))
}

// Size of the digest produced by this algorithm
func (a Algorithm) Size() int {
	if a == XXH3 {
		return ShortKeySize
	}
	return KeySize
}

// New hash for this algorithm
func (a Algorithm) New() hash.Hash {
	if a == XXH3 {
		return &xxh3Digest{h: xxh3.New()}
	}
	return blake2b.New512()
}

// MarshalText implements encoding.TextMarshaler
func (a Algorithm) MarshalText() ([]byte, error) {
	name, ok := algorithmNames[a]
	if !ok {
		return nil, fmt.Errorf("unknown hash algorithm %d", uint8(a))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Algorithm) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for algo, known := range algorithmNames {
		if known == name {
			*a = algo
			return nil
		}
	}
	return fmt.Errorf("unknown hash algorithm %q", string(text))
}

// xxh3Digest exposes the 128 bits xxh3 sum as a hash.Hash
type xxh3Digest struct {
	h *xxh3.Hasher
}

func (d *xxh3Digest) Write(p []byte) (int, error) { return d.h.Write(p) }
func (d *xxh3Digest) Reset()                      { d.h.Reset() }
func (d *xxh3Digest) Size() int                   { return ShortKeySize }
func (d *xxh3Digest) BlockSize() int              { return 64 }

func (d *xxh3Digest) Sum(b []byte) []byte {
	sum := d.h.Sum128()
	b = binary.BigEndian.AppendUint64(b, sum.Hi)
	return binary.BigEndian.AppendUint64(b, sum.Lo)
}

// HasherOption configures a Hasher
type HasherOption func(*Hasher)

// WithAlgorithm selects the hash function. It defaults to Blake2b.
func WithAlgorithm(algo Algorithm) HasherOption {
	return func(h *Hasher) {
		h.algo = algo
	}
}

// Hasher computes the key of a whole set of (path, content) entries.
//
// Entries are hashed in lexicographic path order, each as
//
//	uvarint(len(path)) | path | uvarint(len(content)) | content
//
// so that no two distinct sets may produce the same stream. The key of an
// empty set is the hash of the empty stream.
type Hasher struct {
	algo Algorithm
}

// NewHasher builds a hasher
func NewHasher(opts ...HasherOption) *Hasher {
	h := &Hasher{algo: Blake2b}
	for _, apply := range opts {
		apply(h)
	}
	return h
}

// Algorithm used by this hasher
func (h *Hasher) Algorithm() Algorithm {
	return h.algo
}

type pathContent struct {
	path    string
	content []byte
}

// Sum computes the key for a sequence of entries.
//
// Paths are expected to be unique. The sequence does not need to be sorted.
func (h *Hasher) Sum(entries iter.Seq2[string, []byte]) Key {
	var all []pathContent
	for pth, data := range entries {
		all = append(all, pathContent{path: pth, content: data})
	}

	byPath := func(a, b pathContent) int { return strings.Compare(a.path, b.path) }
	if !slices.IsSortedFunc(all, byPath) {
		slices.SortFunc(all, byPath)
	}

	digest := h.algo.New()
	var prefix [binary.MaxVarintLen64]byte
	for _, e := range all {
		n := binary.PutUvarint(prefix[:], uint64(len(e.path)))
		_, _ = digest.Write(prefix[:n])
		_, _ = digest.Write(convert.StringToBytes(e.path))
		n = binary.PutUvarint(prefix[:], uint64(len(e.content)))
		_, _ = digest.Write(prefix[:n])
		_, _ = digest.Write(e.content)
	}
	return MustNewKey(digest.Sum(nil))
}

// SumMap computes the key for a map of entries
func (h *Hasher) SumMap(entries map[string][]byte) Key {
	return h.Sum(maps.All(entries))
}

// Empty returns the key of the empty set of entries
func (h *Hasher) Empty() Key {
	return h.Sum(func(func(string, []byte) bool) {})
}
