// Package engine implements an in-memory repository: an append-only graph of
// immutable, content-addressed commits, with named branches pointing into it.
//
// A Repository is safe for concurrent use. Areas handed to it are not
// retained: the repository keeps an immutable snapshot of their content.
package engine

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oneconcern/memvcs/pkg/area"
	"github.com/oneconcern/memvcs/pkg/cafs"
	"github.com/oneconcern/memvcs/pkg/content"
	"github.com/oneconcern/memvcs/pkg/event"
	"github.com/oneconcern/memvcs/pkg/model"
)

type record struct {
	commit   model.Commit
	snapshot area.Snapshot
}

type branchRef struct {
	id      cafs.Key
	updated time.Time
}

// Repository owns commits and branches, for areas holding content of kind C
type Repository[C any] struct {
	name   string
	codec  content.Codec[C]
	hasher *cafs.Hasher
	clock  func() time.Time
	l      *zap.Logger
	m      *M

	// mx guards the commit graph and the branch table
	mx        sync.RWMutex
	commits   map[cafs.Key]*record
	order     []cafs.Key
	branches  map[string]branchRef
	lastStamp time.Time

	smx         sync.RWMutex
	subscribers map[int]event.Handler[CommitEvent]
	nextSub     int
}

// New builds an empty repository
func New[C any](codec content.Codec[C], opts ...Option) *Repository[C] {
	s := defaultSettings()
	for _, apply := range opts {
		apply(&s)
	}

	logger := s.l.With(zap.String("flavor", codec.Name()))
	if s.name != "" {
		logger = logger.With(zap.String("repo", s.name))
	}

	return &Repository[C]{
		name:        s.name,
		codec:       codec,
		hasher:      s.hasher,
		clock:       s.clock,
		l:           logger,
		m:           newMetrics(s),
		commits:     make(map[cafs.Key]*record),
		branches:    make(map[string]branchRef),
		subscribers: make(map[int]event.Handler[CommitEvent]),
	}
}

// NewBytes builds a repository for byte sequences
func NewBytes(opts ...Option) *Repository[[]byte] {
	return New[[]byte](content.Bytes{}, opts...)
}

// NewStrings builds a repository for strings
func NewStrings(opts ...Option) *Repository[string] {
	return New[string](content.String{}, opts...)
}

// Name of the repository
func (r *Repository[C]) Name() string {
	return r.name
}

// Hasher used to compute commit ids
func (r *Repository[C]) Hasher() *cafs.Hasher {
	return r.hasher
}

// Metrics collected by this repository
func (r *Repository[C]) Metrics() *M {
	return r.m
}

// CreateArea returns a new empty area for this repository's kind of content
func (r *Repository[C]) CreateArea() *area.Area[C] {
	return area.New(r.codec)
}

// ContentID computes the id a commit of this area would get
func (r *Repository[C]) ContentID(a *area.Area[C]) cafs.Key {
	return r.hasher.Sum(a.Snapshot().Entries())
}

// GetCommit looks up a commit by id
func (r *Repository[C]) GetCommit(id cafs.Key) (model.Commit, bool) {
	r.mx.RLock()
	defer r.mx.RUnlock()
	rec, ok := r.commits[id]
	if !ok {
		return model.Commit{}, false
	}
	return rec.commit, true
}

// Checkout returns a new area holding the content of a commit
func (r *Repository[C]) Checkout(id cafs.Key) (*area.Area[C], bool) {
	r.mx.RLock()
	rec, ok := r.commits[id]
	r.mx.RUnlock()
	if !ok {
		return nil, false
	}
	return area.FromSnapshot(r.codec, rec.snapshot), true
}

// Len returns the number of commits in the repository
func (r *Repository[C]) Len() int {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return len(r.order)
}

// Commits returns all commits, in the order they were registered
func (r *Repository[C]) Commits() []model.Commit {
	r.mx.RLock()
	defer r.mx.RUnlock()
	commits := make([]model.Commit, 0, len(r.order))
	for _, id := range r.order {
		commits = append(commits, r.commits[id].commit)
	}
	return commits
}

// Has tells if a commit exists
func (r *Repository[C]) Has(id cafs.Key) bool {
	r.mx.RLock()
	defer r.mx.RUnlock()
	_, ok := r.commits[id]
	return ok
}

// dedupParents removes repeated parents, retaining the first occurrence
func dedupParents(parents []cafs.Key) []cafs.Key {
	result := make([]cafs.Key, 0, len(parents))
	for _, p := range parents {
		if p.IsZero() || slices.Contains(result, p) {
			continue
		}
		result = append(result, p)
	}
	return result
}
