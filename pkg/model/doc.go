// Package model describes the base objects manipulated by memvcs.
//
// The object model for memvcs is composed of:
//
//	Commits:
//	  A commit is an immutable snapshot of an area, identified by the hash of its content.
//	  A commit links to zero (root commit), one or several (merge commit) parents.
//
//	Branches:
//	  A branch is a named, movable pointer to a commit, analogous to a branch in git.
//
//	Contributors:
//	  The optional author of a commit.
package model
