package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/oneconcern/memvcs/pkg/area"
	"github.com/oneconcern/memvcs/pkg/cafs"
	"github.com/oneconcern/memvcs/pkg/engine/status"
	"github.com/oneconcern/memvcs/pkg/model"
)

// parentMode tells how parents are resolved when creating a commit
type parentMode uint8

const (
	// parents are exactly the ones provided
	explicitParents parentMode = iota
	// with no explicit parent, the branch tip (if any) is the parent
	tipWhenOmitted
	// the branch tip is the first parent, and must exist
	tipFirst
)

type commitRequest struct {
	message string
	branch  string
	parents []cafs.Key
	mode    parentMode
	commitSettings
}

// Commit freezes the content of an area into a commit, with some explicit parents.
//
// An empty list of parents makes a root commit. Several parents make a merge
// commit. No branch is updated.
//
// Every parent must already exist, or ErrDanglingParent is returned and the
// repository is left unchanged. If a commit with the same content already
// exists, it is returned as is.
func (r *Repository[C]) Commit(a *area.Area[C], message string, parents []cafs.Key, opts ...CommitOption) (model.Commit, error) {
	req := commitRequest{
		message: message,
		parents: parents,
		mode:    explicitParents,
	}
	for _, apply := range opts {
		apply(&req.commitSettings)
	}
	if !req.parent.IsZero() {
		req.parents = append([]cafs.Key{req.parent}, req.parents...)
	}
	return r.create(a, req)
}

// CommitToBranch freezes the content of an area into a commit, then points the branch to it.
//
// The parent is the one set with the Parent option, or else the current tip of
// the branch. The first commit to a branch creates it.
func (r *Repository[C]) CommitToBranch(a *area.Area[C], branch, message string, opts ...CommitOption) (model.Commit, error) {
	if err := validBranch(branch); err != nil {
		return model.Commit{}, err
	}
	req := commitRequest{
		message: message,
		branch:  branch,
		mode:    tipWhenOmitted,
	}
	for _, apply := range opts {
		apply(&req.commitSettings)
	}
	if !req.parent.IsZero() {
		req.parents = []cafs.Key{req.parent}
	}
	return r.create(a, req)
}

// Merge commits an area on a branch, with the current tip of the branch and another commit as parents.
//
// The branch must exist. Parents are fixed: the Parent option is rejected.
func (r *Repository[C]) Merge(a *area.Area[C], branch, message string, other cafs.Key, opts ...CommitOption) (model.Commit, error) {
	if err := validBranch(branch); err != nil {
		return model.Commit{}, err
	}
	if other.IsZero() {
		return model.Commit{}, status.ErrCommitNotFound.WrapMessage("no commit to merge into %q", branch)
	}
	req := commitRequest{
		message: message,
		branch:  branch,
		parents: []cafs.Key{other},
		mode:    tipFirst,
	}
	for _, apply := range opts {
		apply(&req.commitSettings)
	}
	if !req.parent.IsZero() {
		return model.Commit{}, status.ErrUnsupportedOption.WrapMessage("merge into %q sets its own parents", branch)
	}
	return r.create(a, req)
}

func (r *Repository[C]) create(a *area.Area[C], req commitRequest) (model.Commit, error) {
	if a == nil {
		return model.Commit{}, status.ErrNilArea
	}

	// the snapshot is immutable: the area may change as soon as we return
	snapshot := a.Snapshot()
	id := r.hasher.Sum(snapshot.Entries())

	r.mx.Lock()
	parents, err := r.resolveParentsLocked(req)
	if err != nil {
		r.mx.Unlock()
		return model.Commit{}, err
	}

	rec, exists := r.commits[id]
	if !exists {
		commit := model.NewCommit(id, r.stampLocked(),
			model.Message(req.message),
			model.Parents(parents),
			model.CommitContributor(req.contributor),
		)
		rec = &record{commit: commit, snapshot: snapshot}
		r.commits[id] = rec
		r.order = append(r.order, id)
	}
	if req.branch != "" {
		r.branches[req.branch] = branchRef{id: id, updated: r.clock().UTC()}
	}
	count := len(r.order)
	r.mx.Unlock()

	r.m.Size.Set(float64(count))
	if exists {
		r.m.Deduplicated.Inc()
	} else {
		r.m.Commits.Inc()
	}
	if req.branch != "" {
		r.m.BranchMoves.Inc()
	}

	r.l.Debug("commit",
		zap.Stringer("id", rec.commit.ID()),
		zap.String("branch", req.branch),
		zap.Int("parents", len(parents)),
		zap.Int("entries", snapshot.Len()),
		zap.Bool("deduplicated", exists),
	)
	r.publish(req.branch, rec.commit, exists)

	return rec.commit, nil
}

// resolveParentsLocked computes the parents of a new commit and checks they exist.
// Caller must hold the write lock.
func (r *Repository[C]) resolveParentsLocked(req commitRequest) ([]cafs.Key, error) {
	parents := req.parents
	tip, hasTip := r.branches[req.branch]

	switch req.mode {
	case tipWhenOmitted:
		if len(dedupParents(parents)) == 0 && hasTip {
			parents = []cafs.Key{tip.id}
		}
	case tipFirst:
		if !hasTip {
			return nil, status.ErrBranchNotFound.WrapMessage("%q", req.branch)
		}
		parents = append([]cafs.Key{tip.id}, parents...)
	}
	parents = dedupParents(parents)

	for _, p := range parents {
		if _, ok := r.commits[p]; !ok {
			r.m.DanglingParent.Inc()
			return nil, status.ErrDanglingParent.WrapWithLog(r.l, status.ErrCommitNotFound.WrapMessage("%s", p),
				zap.Stringer("parent", p), zap.String("branch", req.branch))
		}
	}
	return parents, nil
}

// stampLocked returns a timestamp never earlier than the previous one.
// Caller must hold the write lock.
func (r *Repository[C]) stampLocked() time.Time {
	now := r.clock().UTC()
	if now.Before(r.lastStamp) {
		now = r.lastStamp
	}
	r.lastStamp = now
	return now
}
