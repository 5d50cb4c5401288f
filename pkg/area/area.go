// Package area implements the mutable working set of a repository: a mapping
// from path to content which is turned into a commit.
//
// An Area is owned by a single caller and is not safe for concurrent
// mutation. The content kind (bytes or string) is a type parameter, with the
// corresponding content.Codec producing the canonical bytes that are stored.
package area

import (
	"iter"

	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/oneconcern/memvcs/pkg/content"
	"github.com/oneconcern/memvcs/pkg/convert"
)

// Area maps paths to content
type Area[C any] struct {
	codec content.Codec[C]
	tree  *iradix.Tree
	size  int64
}

// New empty area holding content of kind C
func New[C any](codec content.Codec[C]) *Area[C] {
	return &Area[C]{
		codec: codec,
		tree:  iradix.New(),
	}
}

// NewBytes builds an area for byte sequences
func NewBytes() *Area[[]byte] {
	return New[[]byte](content.Bytes{})
}

// NewStrings builds an area for strings
func NewStrings() *Area[string] {
	return New[string](content.String{})
}

// FromSnapshot builds an area initialized with the content of a snapshot.
//
// The snapshot is not affected by subsequent changes to the area.
func FromSnapshot[C any](codec content.Codec[C], s Snapshot) *Area[C] {
	a := New(codec)
	if s.tree != nil {
		a.tree = s.tree
		a.size = s.size
	}
	return a
}

// Codec used by this area
func (a *Area[C]) Codec() content.Codec[C] {
	return a.codec
}

// Put inserts or replaces the content at some path
func (a *Area[C]) Put(pth string, c C) {
	data := a.codec.Encode(c)
	tree, old, replaced := a.tree.Insert([]byte(pth), data)
	if replaced {
		a.size -= int64(len(old.([]byte)))
	}
	a.size += int64(len(data))
	a.tree = tree
}

// Get returns the content at some path.
//
// The boolean is false when there is no entry at this path, which is
// distinct from an entry with empty content.
func (a *Area[C]) Get(pth string) (C, bool) {
	v, ok := a.tree.Get(convert.StringToBytes(pth))
	if !ok {
		var zero C
		return zero, false
	}
	return a.codec.Decode(v.([]byte)), true
}

// Has tells if there is an entry at some path
func (a *Area[C]) Has(pth string) bool {
	_, ok := a.tree.Get(convert.StringToBytes(pth))
	return ok
}

// Remove the entry at some path. Removing a missing path does nothing.
func (a *Area[C]) Remove(pth string) {
	tree, old, removed := a.tree.Delete(convert.StringToBytes(pth))
	if !removed {
		return
	}
	a.size -= int64(len(old.([]byte)))
	a.tree = tree
}

// Clear removes all entries
func (a *Area[C]) Clear() {
	a.tree = iradix.New()
	a.size = 0
}

// Len returns the number of entries
func (a *Area[C]) Len() int {
	return a.tree.Len()
}

// Size returns the total size of the encoded content, in bytes
func (a *Area[C]) Size() int64 {
	return a.size
}

// All iterates over (path, content) pairs, in lexicographic path order.
//
// The sequence may be iterated several times. It reflects the area at the
// moment iteration starts.
func (a *Area[C]) All() iter.Seq2[string, C] {
	return func(yield func(string, C) bool) {
		for pth, data := range a.Snapshot().raw() {
			if !yield(pth, a.codec.Decode(data)) {
				return
			}
		}
	}
}

// Paths returns all paths, sorted
func (a *Area[C]) Paths() []string {
	paths := make([]string, 0, a.Len())
	for pth := range a.Snapshot().raw() {
		paths = append(paths, pth)
	}
	return paths
}

// Snapshot returns an immutable view of the current content
func (a *Area[C]) Snapshot() Snapshot {
	return Snapshot{tree: a.tree, size: a.size}
}

// Clone returns an independent copy of this area
func (a *Area[C]) Clone() *Area[C] {
	return FromSnapshot(a.codec, a.Snapshot())
}
