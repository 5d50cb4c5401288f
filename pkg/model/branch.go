package model

import (
	"fmt"
	"time"
	"unicode"
)

// DefaultBranch to use when none are specified
const DefaultBranch = "master"

// BranchDescriptor describes where a branch points to
type BranchDescriptor struct {
	Name      string    `json:"name" yaml:"name"`
	CommitID  string    `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	_         struct{}
}

// ValidateBranchName checks that a name may be used for a branch.
//
// Names are case-sensitive. Spaces and control characters are not allowed.
func ValidateBranchName(name string) error {
	if name == "" {
		return NameIsRequired
	}
	for _, c := range name {
		if unicode.IsSpace(c) || unicode.IsControl(c) {
			return fmt.Errorf("%w: branch name %q contains unsupported character %q", InvalidName, name, string(c))
		}
	}
	return nil
}
