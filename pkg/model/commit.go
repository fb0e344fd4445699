package model

import (
	"time"

	"github.com/oneconcern/datagit/pkg/value"
)

// Commit is an immutable snapshot of a value, linked to its parents
type Commit struct {
	Oid        Oid         `json:"oid" yaml:"oid"`
	Value      value.Value `json:"value" yaml:"-"`
	ValueRef   string      `json:"valueRef" yaml:"valueRef"`
	Parents    []Oid       `json:"parents,omitempty" yaml:"parents,omitempty"`
	Author     Contributor `json:"author" yaml:"author"`
	Committer  Contributor `json:"committer" yaml:"committer"`
	Message    string      `json:"message,omitempty" yaml:"message,omitempty"`
	Timestamp  time.Time   `json:"timestamp" yaml:"timestamp"`
	Generation uint64      `json:"generation" yaml:"generation"`

	// Store identifies the commit store this commit was read from
	Store string `json:"store" yaml:"store"`
	_     struct{}
}

// IsRoot tells if this commit has no parent
func (c *Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// IsMerge tells if this commit has several parents
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// Parent returns the sole parent of a linear commit
func (c *Commit) Parent() (Oid, bool) {
	if len(c.Parents) != 1 {
		return ZeroOid, false
	}
	return c.Parents[0], true
}

// HasParent tells if oid is a direct parent of this commit
func (c *Commit) HasParent(oid Oid) bool {
	for _, p := range c.Parents {
		if p == oid {
			return true
		}
	}
	return false
}

// Describe summarizes a commit for display
func (c *Commit) Describe() CommitDescriptor {
	parents := make([]string, 0, len(c.Parents))
	for _, p := range c.Parents {
		parents = append(parents, p.String())
	}
	return CommitDescriptor{
		Oid:       c.Oid.String(),
		Parents:   parents,
		Author:    c.Author.String(),
		Committer: c.Committer.String(),
		Message:   c.Message,
		Timestamp: c.Timestamp,
		Value:     c.Value.Interface(),
	}
}

// CommitDescriptor is a display-friendly rendition of a commit
type CommitDescriptor struct {
	Oid       string      `json:"oid" yaml:"oid"`
	Parents   []string    `json:"parents,omitempty" yaml:"parents,omitempty"`
	Author    string      `json:"author" yaml:"author"`
	Committer string      `json:"committer" yaml:"committer"`
	Message   string      `json:"message,omitempty" yaml:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp" yaml:"timestamp"`
	Value     interface{} `json:"value" yaml:"value"`
}
