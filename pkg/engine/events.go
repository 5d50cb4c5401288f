package engine

import (
	"slices"

	"github.com/oneconcern/memvcs/pkg/event"
	"github.com/oneconcern/memvcs/pkg/model"
)

// CommitCreated is the kind of events published when a commit request succeeds
const CommitCreated = "commit.created"

// CommitEvent is the payload of events published by a repository
type CommitEvent struct {
	Repo         string                 `json:"repo,omitempty" yaml:"repo,omitempty"`
	Branch       string                 `json:"branch,omitempty" yaml:"branch,omitempty"`
	Commit       model.CommitDescriptor `json:"commit" yaml:"commit"`
	Deduplicated bool                   `json:"deduplicated,omitempty" yaml:"deduplicated,omitempty"`
}

// Subscribe registers a handler called after each successful commit request.
//
// Handlers run synchronously, once the repository lock is released: they may
// query the repository. The returned function unsubscribes the handler.
func (r *Repository[C]) Subscribe(handler event.Handler[CommitEvent]) (unsubscribe func()) {
	r.smx.Lock()
	defer r.smx.Unlock()
	r.nextSub++
	id := r.nextSub
	r.subscribers[id] = handler

	return func() {
		r.smx.Lock()
		defer r.smx.Unlock()
		delete(r.subscribers, id)
	}
}

func (r *Repository[C]) publish(branch string, commit model.Commit, deduplicated bool) {
	r.smx.RLock()
	if len(r.subscribers) == 0 {
		r.smx.RUnlock()
		return
	}
	ids := make([]int, 0, len(r.subscribers))
	for id := range r.subscribers {
		ids = append(ids, id)
	}
	handlers := make([]event.Handler[CommitEvent], 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		handlers = append(handlers, r.subscribers[id])
	}
	r.smx.RUnlock()

	e := event.New(CommitCreated, CommitEvent{
		Repo:         r.name,
		Branch:       branch,
		Commit:       commit.Descriptor(),
		Deduplicated: deduplicated,
	})
	for _, handle := range handlers {
		handle(e)
	}
}
