package engine

import (
	"iter"

	"github.com/oneconcern/memvcs/pkg/cafs"
	"github.com/oneconcern/memvcs/pkg/model"
)

// Log iterates over the first-parent history of a commit, starting with the commit itself.
//
// The sequence is empty when the commit does not exist.
func (r *Repository[C]) Log(id cafs.Key) iter.Seq[model.Commit] {
	return func(yield func(model.Commit) bool) {
		next := id
		for !next.IsZero() {
			commit, ok := r.GetCommit(next)
			if !ok || !yield(commit) {
				return
			}
			next, _ = commit.Parent()
		}
	}
}

// IsAncestor tells if a commit is reachable from another one, following all parents.
//
// A commit is its own ancestor.
func (r *Repository[C]) IsAncestor(ancestor, descendant cafs.Key) bool {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if _, ok := r.commits[ancestor]; !ok {
		return false
	}

	visited := make(map[cafs.Key]struct{})
	queue := []cafs.Key{descendant}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == ancestor {
			return true
		}
		if _, seen := visited[current]; seen {
			continue
		}
		visited[current] = struct{}{}

		rec, ok := r.commits[current]
		if !ok {
			continue
		}
		queue = append(queue, rec.commit.Parents()...)
	}
	return false
}
