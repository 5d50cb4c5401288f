package area

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/memvcs/pkg/content"
)

func TestArea_PutGetRemove(t *testing.T) {
	t.Parallel()

	a := NewStrings()
	a.Put("/", "Hello World")
	a.Put("/empty", "")

	c, ok := a.Get("/")
	require.True(t, ok)
	assert.Equal(t, "Hello World", c)

	c, ok = a.Get("/empty")
	require.True(t, ok, "empty content is an entry")
	assert.Equal(t, "", c)

	_, ok = a.Get("/missing")
	assert.False(t, ok)
	assert.False(t, a.Has("/missing"))
	assert.True(t, a.Has("/empty"))

	a.Put("/", "Bye")
	c, _ = a.Get("/")
	assert.Equal(t, "Bye", c)
	assert.Equal(t, 2, a.Len())
	assert.EqualValues(t, len("Bye"), a.Size())

	a.Remove("/missing")
	assert.Equal(t, 2, a.Len())

	a.Remove("/")
	assert.Equal(t, 1, a.Len())
	assert.EqualValues(t, 0, a.Size())

	a.Clear()
	assert.Equal(t, 0, a.Len())
}

func TestArea_EmptyPath(t *testing.T) {
	t.Parallel()

	a := NewStrings()
	a.Put("", "root")
	a.Put("a", "x")
	c, ok := a.Get("")
	require.True(t, ok)
	assert.Equal(t, "root", c)
	assert.Equal(t, []string{"", "a"}, a.Paths())
}

func TestArea_Enumeration(t *testing.T) {
	t.Parallel()

	a := NewStrings()
	a.Put("c", "3")
	a.Put("a", "1")
	a.Put("b", "2")

	assert.Equal(t, []string{"a", "b", "c"}, a.Paths())

	first := maps.Collect(a.All())
	second := maps.Collect(a.All())
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, first)
	assert.Equal(t, first, second, "enumeration is restartable")

	var seen []string
	for pth := range a.All() {
		seen = append(seen, pth)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestArea_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	a := NewBytes()
	payload := []byte("Hello World")
	a.Put("/", payload)
	snap := a.Snapshot()

	payload[0] = 'J'
	a.Put("/other", []byte("x"))
	a.Remove("/")

	data, ok := snap.Get("/")
	require.True(t, ok)
	assert.Equal(t, "Hello World", string(data))
	assert.Equal(t, 1, snap.Len())
	assert.EqualValues(t, len("Hello World"), snap.Size())

	data[0] = 'M'
	again, _ := snap.Get("/")
	assert.Equal(t, "Hello World", string(again), "snapshot content is copied out")

	got, _ := a.Get("/other")
	got[0] = 'y'
	stored, _ := a.Get("/other")
	assert.Equal(t, "x", string(stored))
}

func TestFromSnapshot(t *testing.T) {
	t.Parallel()

	a := NewStrings()
	a.Put("a", "1")
	snap := a.Snapshot()

	b := FromSnapshot[string](content.String{}, snap)
	b.Put("b", "2")
	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 1, a.Len())

	bytesView := FromSnapshot[[]byte](content.Bytes{}, snap)
	v, ok := bytesView.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("1"), v)

	empty := FromSnapshot[string](content.String{}, Snapshot{})
	assert.Equal(t, 0, empty.Len())
	empty.Put("x", "y")
	assert.Equal(t, 1, empty.Len())
}

func TestArea_Clone(t *testing.T) {
	t.Parallel()

	a := NewStrings()
	a.Put("a", "1")
	b := a.Clone()
	b.Put("a", "2")

	v, _ := a.Get("a")
	assert.Equal(t, "1", v)
	assert.Equal(t, content.StringFlavor, b.Codec().Name())
}

func TestSnapshot_Equal(t *testing.T) {
	t.Parallel()

	a := NewStrings()
	a.Put("a", "1")
	a.Put("b", "2")

	b := NewBytes()
	b.Put("b", []byte("2"))
	b.Put("a", []byte("1"))

	assert.True(t, a.Snapshot().Equal(b.Snapshot()))
	b.Put("a", []byte("3"))
	assert.False(t, a.Snapshot().Equal(b.Snapshot()))
	assert.True(t, EmptySnapshot().Equal(Snapshot{}))
}

func TestSnapshot_EntriesAreCopies(t *testing.T) {
	t.Parallel()

	a := NewBytes()
	a.Put("/", []byte("Hello World"))
	s := a.Snapshot()
	shared := FromSnapshot[[]byte](content.Bytes{}, s)

	for _, data := range s.Entries() {
		data[0] = 'J'
	}
	for _, data := range shared.Snapshot().Entries() {
		data[0] = 'Y'
	}

	data, ok := s.Get("/")
	require.True(t, ok)
	assert.Equal(t, "Hello World", string(data))
	assert.True(t, s.Equal(a.Snapshot()))
	assert.True(t, s.Equal(shared.Snapshot()))
}
