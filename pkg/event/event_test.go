package event

import (
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string
}

func TestEnvelope(t *testing.T) {
	e := New("sample", sample{Name: "x"})

	_, err := ksuid.Parse(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "sample", e.Kind())
	assert.False(t, e.Time.IsZero())

	var h Holder = e
	payload, ok := h.Value().(sample)
	require.True(t, ok)
	assert.Equal(t, "x", payload.Name)
}

func TestEnvelope_Sortable(t *testing.T) {
	first := New("n", 1)
	second := New("n", 2)

	k1, err := ksuid.Parse(first.ID)
	require.NoError(t, err)
	k2, err := ksuid.Parse(second.ID)
	require.NoError(t, err)
	assert.False(t, k2.Time().Before(k1.Time()))
	assert.NotEqual(t, first.ID, second.ID)
}
