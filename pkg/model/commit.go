package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/oneconcern/memvcs/pkg/cafs"
)

// Contributor who created the object
type Contributor struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	_     struct{}
}

func (c Contributor) String() string {
	if c.Email == "" {
		return c.Name
	}
	if c.Name == "" {
		return c.Email
	}
	return fmt.Sprintf("%s <%s>", c.Name, c.Email)
}

// IsZero tells if the contributor is unset
func (c Contributor) IsZero() bool {
	return c.Name == "" && c.Email == ""
}

// Commit is an immutable snapshot of an area, linked to its parents.
//
// The ID is the content key of the area. Commits are values: accessors never
// expose internal state that could be altered.
type Commit struct {
	id          cafs.Key
	message     string
	parents     []cafs.Key
	timestamp   time.Time
	contributor Contributor
}

// NewCommit builds a commit for some content key
func NewCommit(id cafs.Key, timestamp time.Time, opts ...CommitOption) Commit {
	c := Commit{
		id:        id,
		timestamp: timestamp.UTC(),
	}
	for _, apply := range opts {
		apply(&c)
	}
	return c
}

// ID of the commit, i.e. the content key of its area
func (c Commit) ID() cafs.Key { return c.id }

// Message of the commit
func (c Commit) Message() string { return c.message }

// Timestamp of the commit
func (c Commit) Timestamp() time.Time { return c.timestamp }

// Contributor of the commit, if any
func (c Commit) Contributor() Contributor { return c.contributor }

// Parents of the commit, in order
func (c Commit) Parents() []cafs.Key {
	return slices.Clone(c.parents)
}

// Parent returns the first parent, if any
func (c Commit) Parent() (cafs.Key, bool) {
	if len(c.parents) == 0 {
		return "", false
	}
	return c.parents[0], true
}

// IsZero tells if this is the zero value
func (c Commit) IsZero() bool { return c.id.IsZero() }

// IsRoot tells if the commit has no parent
func (c Commit) IsRoot() bool { return len(c.parents) == 0 }

// IsMerge tells if the commit has several parents
func (c Commit) IsMerge() bool { return len(c.parents) > 1 }

// Equal compares all fields of two commits
func (c Commit) Equal(other Commit) bool {
	return c.id == other.id &&
		c.message == other.message &&
		c.timestamp.Equal(other.timestamp) &&
		c.contributor == other.contributor &&
		slices.Equal(c.parents, other.parents)
}

func (c Commit) String() string {
	return fmt.Sprintf("%s %s", c.id.Short(), c.message)
}

// CommitDescriptor is the serializable form of a commit
type CommitDescriptor struct {
	ID          string       `json:"id" yaml:"id"`
	Message     string       `json:"message" yaml:"message"`
	Parents     []string     `json:"parents,omitempty" yaml:"parents,omitempty"`
	Timestamp   time.Time    `json:"timestamp" yaml:"timestamp"`
	Contributor *Contributor `json:"contributor,omitempty" yaml:"contributor,omitempty"`
}

// Descriptor returns the serializable form of a commit
func (c Commit) Descriptor() CommitDescriptor {
	d := CommitDescriptor{
		ID:        c.id.String(),
		Message:   c.message,
		Timestamp: c.timestamp,
	}
	for _, p := range c.parents {
		d.Parents = append(d.Parents, p.String())
	}
	if !c.contributor.IsZero() {
		contributor := c.contributor
		d.Contributor = &contributor
	}
	return d
}

// CommitFromDescriptor rebuilds a commit from its serializable form
func CommitFromDescriptor(d CommitDescriptor) (Commit, error) {
	if d.ID == "" {
		return Commit{}, IDIsRequired
	}
	id, err := cafs.ParseKey(d.ID)
	if err != nil {
		return Commit{}, err
	}
	parents := make([]cafs.Key, 0, len(d.Parents))
	for _, p := range d.Parents {
		k, err := cafs.ParseKey(p)
		if err != nil {
			return Commit{}, fmt.Errorf("invalid parent: %w", err)
		}
		parents = append(parents, k)
	}

	opts := []CommitOption{Message(d.Message), Parents(parents)}
	if d.Contributor != nil {
		opts = append(opts, CommitContributor(*d.Contributor))
	}
	return NewCommit(id, d.Timestamp, opts...), nil
}
