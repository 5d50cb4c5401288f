package area

import (
	"bytes"
	"iter"

	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/oneconcern/memvcs/pkg/convert"
)

// Snapshot is an immutable view of the content of an area, in canonical bytes.
//
// Snapshots share structure with the area they were taken from: taking one is
// O(1), and later changes to the area do not affect it.
type Snapshot struct {
	tree *iradix.Tree
	size int64
}

// EmptySnapshot returns a snapshot without entries
func EmptySnapshot() Snapshot {
	return Snapshot{tree: iradix.New()}
}

// Len returns the number of entries
func (s Snapshot) Len() int {
	if s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// Size returns the total size of the content, in bytes
func (s Snapshot) Size() int64 {
	return s.size
}

// Get returns a copy of the content at some path
func (s Snapshot) Get(pth string) ([]byte, bool) {
	if s.tree == nil {
		return nil, false
	}
	v, ok := s.tree.Get(convert.StringToBytes(pth))
	if !ok {
		return nil, false
	}
	return bytes.Clone(v.([]byte)), true
}

// Entries iterates over all (path, content) pairs in lexicographic path order.
//
// Content is copied: the snapshot may be shared by several areas and commits.
func (s Snapshot) Entries() iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		for pth, data := range s.raw() {
			if !yield(pth, bytes.Clone(data)) {
				return
			}
		}
	}
}

// raw iterates over the stored content, which must not be modified
func (s Snapshot) raw() iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		if s.tree == nil {
			return
		}
		it := s.tree.Root().Iterator()
		for k, v, ok := it.Next(); ok; k, v, ok = it.Next() {
			if !yield(string(k), v.([]byte)) {
				return
			}
		}
	}
}

// Equal tells if two snapshots hold the same entries
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Len() != other.Len() || s.size != other.size {
		return false
	}
	for pth, data := range s.raw() {
		v, ok := other.tree.Get(convert.StringToBytes(pth))
		if !ok || !bytes.Equal(data, v.([]byte)) {
			return false
		}
	}
	return true
}
