package engine

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/oneconcern/memvcs/pkg/cafs"
	"github.com/oneconcern/memvcs/pkg/engine/status"
	"github.com/oneconcern/memvcs/pkg/model"
)

func validBranch(name string) error {
	if err := model.ValidateBranchName(name); err != nil {
		return status.ErrInvalidBranchName.Wrap(err)
	}
	return nil
}

// GetBranchTip returns the commit a branch points to.
//
// The boolean is false when the branch does not exist yet.
func (r *Repository[C]) GetBranchTip(branch string) (model.Commit, bool) {
	r.mx.RLock()
	defer r.mx.RUnlock()
	ref, ok := r.branches[branch]
	if !ok {
		return model.Commit{}, false
	}
	return r.commits[ref.id].commit, true
}

// SetBranchTip points a branch to an existing commit, creating the branch if needed
func (r *Repository[C]) SetBranchTip(branch string, id cafs.Key) error {
	if err := validBranch(branch); err != nil {
		return err
	}

	r.mx.Lock()
	if _, ok := r.commits[id]; !ok {
		r.mx.Unlock()
		return status.ErrCommitNotFound.WrapMessage("%q", id)
	}
	r.branches[branch] = branchRef{id: id, updated: r.clock().UTC()}
	r.mx.Unlock()

	r.m.BranchMoves.Inc()
	r.l.Debug("branch moved", zap.String("branch", branch), zap.Stringer("id", id))
	return nil
}

// ListBranches returns the names of all branches, sorted
func (r *Repository[C]) ListBranches() []string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	names := make([]string, 0, len(r.branches))
	for name := range r.branches {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Branches describes all branches, sorted by name
func (r *Repository[C]) Branches() []model.BranchDescriptor {
	r.mx.RLock()
	defer r.mx.RUnlock()
	descriptors := make([]model.BranchDescriptor, 0, len(r.branches))
	for name, ref := range r.branches {
		descriptors = append(descriptors, model.BranchDescriptor{
			Name:      name,
			CommitID:  ref.id.String(),
			Timestamp: ref.updated,
		})
	}
	slices.SortFunc(descriptors, func(a, b model.BranchDescriptor) int {
		return strings.Compare(a.Name, b.Name)
	})
	return descriptors
}
