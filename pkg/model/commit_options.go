package model

import (
	"slices"

	"github.com/oneconcern/memvcs/pkg/cafs"
)

// CommitOption is a functor to build a commit with some options
type CommitOption func(*Commit)

// Message defines the message of the commit
func Message(m string) CommitOption {
	return func(c *Commit) {
		c.message = m
	}
}

// Parents defines the parents of the commit
func Parents(p []cafs.Key) CommitOption {
	return func(c *Commit) {
		if len(p) == 0 {
			c.parents = nil
			return
		}
		c.parents = slices.Clone(p)
	}
}

// CommitContributor defines the contributor of the commit
func CommitContributor(contributor Contributor) CommitOption {
	return func(c *Commit) {
		c.contributor = contributor
	}
}
