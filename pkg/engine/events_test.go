package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oneconcern/memvcs/pkg/event"
)

func TestSubscribe(t *testing.T) {
	t.Parallel()
	repo := NewStrings(Name("events"), Logger(zap.NewNop()))

	var received []event.Envelope[CommitEvent]
	unsubscribe := repo.Subscribe(func(e event.Envelope[CommitEvent]) {
		// handlers run outside of the repository lock
		_, ok := repo.GetBranchTip(e.Payload.Branch)
		assert.True(t, ok)
		received = append(received, e)
	})

	a := repo.CreateArea()
	a.Put("/", "one")
	first, err := repo.CommitToBranch(a, "master", "one")
	require.NoError(t, err)
	_, err = repo.CommitToBranch(a, "master", "again")
	require.NoError(t, err)

	require.Len(t, received, 2)
	assert.Equal(t, CommitCreated, received[0].Kind())
	assert.Equal(t, "events", received[0].Payload.Repo)
	assert.Equal(t, "master", received[0].Payload.Branch)
	assert.Equal(t, first.ID().String(), received[0].Payload.Commit.ID)
	assert.False(t, received[0].Payload.Deduplicated)
	assert.True(t, received[1].Payload.Deduplicated)
	assert.NotEqual(t, received[0].ID, received[1].ID)

	unsubscribe()
	a.Put("/", "two")
	_, err = repo.CommitToBranch(a, "master", "two")
	require.NoError(t, err)
	assert.Len(t, received, 2)
}

func TestSubscribe_NoEventOnFailure(t *testing.T) {
	t.Parallel()
	repo := NewStrings(Logger(zap.NewNop()))

	var calls int
	defer repo.Subscribe(func(event.Envelope[CommitEvent]) { calls++ })()

	a := repo.CreateArea()
	a.Put("/", "x")
	_, err := repo.Merge(a, "master", "no branch yet", repo.Hasher().Empty())
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestSubscribe_Order(t *testing.T) {
	t.Parallel()
	repo := NewStrings(Logger(zap.NewNop()))

	var order []string
	repo.Subscribe(func(event.Envelope[CommitEvent]) { order = append(order, "first") })
	repo.Subscribe(func(event.Envelope[CommitEvent]) { order = append(order, "second") })

	_, err := repo.Commit(repo.CreateArea(), "empty", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}
