package cmd

import (
	"fmt"
	"strings"

	"github.com/oneconcern/memvcs/pkg/area"
	"github.com/oneconcern/memvcs/pkg/cafs"
	"github.com/oneconcern/memvcs/pkg/engine"
	"github.com/oneconcern/memvcs/pkg/engine/status"
	"github.com/oneconcern/memvcs/pkg/model"
)

// Step operations
const (
	opPut      = "put"
	opRemove   = "remove"
	opReset    = "reset"
	opCommit   = "commit"
	opMerge    = "merge"
	opBranch   = "branch"
	opCheckout = "checkout"
)

// script describes the work to replay against a fresh repository
type script struct {
	Flavor string `json:"flavor,omitempty" yaml:"flavor,omitempty"`
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Steps  []step `json:"steps" yaml:"steps"`
}

// step is a single operation of a script.
//
// References designate commits, either by branch name or by a unique prefix of their id.
type step struct {
	Op      string `json:"op" yaml:"op"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
	Branch  string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Ref     string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Author  string `json:"author,omitempty" yaml:"author,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
}

// runResult is the state of the repository once a script has run
type runResult struct {
	Branch   string                   `json:"branch" yaml:"branch"`
	Log      []model.CommitDescriptor `json:"log" yaml:"log"`
	Branches []model.BranchDescriptor `json:"branches" yaml:"branches"`
	Entries  int                      `json:"entries" yaml:"entries"`
	Size     int64                    `json:"size" yaml:"size"`
	Metrics  map[string]float64       `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

type runner[C any] struct {
	repo    *engine.Repository[C]
	convert func(string) C
	area    *area.Area[C]
	current string
}

func runScript[C any](repo *engine.Repository[C], convert func(string) C, s script, defaultBranch string) (runResult, error) {
	r := &runner[C]{
		repo:    repo,
		convert: convert,
		area:    repo.CreateArea(),
		current: s.Branch,
	}
	if r.current == "" {
		r.current = defaultBranch
	}

	for i, st := range s.Steps {
		if err := r.apply(st); err != nil {
			return runResult{}, fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
	}
	return r.result(), nil
}

func (r *runner[C]) apply(st step) error {
	switch strings.ToLower(st.Op) {
	case opPut:
		r.area.Put(st.Path, r.convert(st.Content))

	case opRemove:
		r.area.Remove(st.Path)

	case opReset:
		r.area.Clear()

	case opCommit:
		var opts []engine.CommitOption
		if st.Ref != "" {
			parent, err := r.resolve(st.Ref)
			if err != nil {
				return err
			}
			opts = append(opts, engine.Parent(parent))
		}
		_, err := r.repo.CommitToBranch(r.area, r.branch(st), st.Message, append(opts, r.contributor(st)...)...)
		return err

	case opMerge:
		other, err := r.resolve(st.Ref)
		if err != nil {
			return err
		}
		_, err = r.repo.Merge(r.area, r.branch(st), st.Message, other, r.contributor(st)...)
		return err

	case opBranch:
		if st.Branch == "" {
			return status.ErrInvalidBranchName.WrapMessage("a branch is required")
		}
		ref := st.Ref
		if ref == "" {
			ref = r.current
		}
		id, err := r.resolve(ref)
		if err != nil {
			return err
		}
		return r.repo.SetBranchTip(st.Branch, id)

	case opCheckout:
		id, err := r.resolve(st.Ref)
		if err != nil {
			return err
		}
		a, ok := r.repo.Checkout(id)
		if !ok {
			return status.ErrCommitNotFound.WrapMessage("%q", st.Ref)
		}
		r.area = a
		if _, isBranch := r.repo.GetBranchTip(st.Ref); isBranch {
			r.current = st.Ref
		}

	default:
		return fmt.Errorf("unknown operation %q", st.Op)
	}
	return nil
}

func (r *runner[C]) branch(st step) string {
	if st.Branch != "" {
		return st.Branch
	}
	return r.current
}

func (r *runner[C]) contributor(st step) []engine.CommitOption {
	if st.Author == "" && st.Email == "" {
		return nil
	}
	return []engine.CommitOption{engine.Contributor(model.Contributor{Name: st.Author, Email: st.Email})}
}

// resolve a branch name or a unique prefix of a commit id
func (r *runner[C]) resolve(ref string) (cafs.Key, error) {
	if ref == "" {
		return "", status.ErrCommitNotFound.WrapMessage("a reference is required")
	}
	if tip, ok := r.repo.GetBranchTip(ref); ok {
		return tip.ID(), nil
	}

	var found cafs.Key
	prefix := strings.ToLower(ref)
	for _, c := range r.repo.Commits() {
		if !strings.HasPrefix(c.ID().String(), prefix) {
			continue
		}
		if !found.IsZero() && found != c.ID() {
			return "", fmt.Errorf("ambiguous reference %q", ref)
		}
		found = c.ID()
	}
	if found.IsZero() {
		return "", status.ErrCommitNotFound.WrapMessage("%q", ref)
	}
	return found, nil
}

func (r *runner[C]) result() runResult {
	res := runResult{
		Branch:   r.current,
		Branches: r.repo.Branches(),
		Entries:  r.area.Len(),
		Size:     r.area.Size(),
		Log:      []model.CommitDescriptor{},
	}
	if tip, ok := r.repo.GetBranchTip(r.current); ok {
		for c := range r.repo.Log(tip.ID()) {
			res.Log = append(res.Log, c.Descriptor())
		}
	}
	return res
}
