// Package status exports errors produced by the engine package.
package status

import (
	"github.com/oneconcern/memvcs/pkg/errors"
)

var (
	// ErrDanglingParent indicates that a commit refers to a parent which is not in the repository
	ErrDanglingParent = errors.New("dangling parent")

	// ErrBranchNotFound indicates an operation requires a branch which does not exist yet
	ErrBranchNotFound = errors.New("branch not found")

	// ErrCommitNotFound indicates a commit was not found
	ErrCommitNotFound = errors.New("commit not found")

	// ErrInvalidBranchName indicates a branch name may not be used
	ErrInvalidBranchName = errors.New("invalid branch name")

	// ErrUnsupportedOption indicates a commit option which does not apply to the operation
	ErrUnsupportedOption = errors.New("unsupported commit option")

	// ErrNilArea indicates a commit was attempted without an area
	ErrNilArea = errors.New("an area is required to commit")
)
