package core

import (
	"time"

	"go.uber.org/zap"

	"github.com/oneconcern/datagit/pkg/metrics"
	"github.com/oneconcern/datagit/pkg/model"
)

// DefaultMaxRetries is the number of times an update is retried after a concurrent modification
const DefaultMaxRetries = 3

// Option configures a Repository
type Option func(*Repository)

// Logger injects a logging facility into core operations
func Logger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.l = l
		}
	}
}

// Metrics records core operations
func Metrics(m *metrics.Metrics) Option {
	return func(r *Repository) {
		r.metrics = m
	}
}

// DefaultAuthor is the author of commits which do not specify one
func DefaultAuthor(c model.Contributor) Option {
	return func(r *Repository) {
		r.author = c
	}
}

// DefaultCommitter is the committer of commits which do not specify one.
// It defaults to the author.
func DefaultCommitter(c model.Contributor) Option {
	return func(r *Repository) {
		r.committer = c
	}
}

// MaxRetries tunes how many times Update retries after a concurrent modification
func MaxRetries(n int) Option {
	return func(r *Repository) {
		if n < 0 {
			n = 0
		}
		r.maxRetries = n
	}
}

// CommitOption sets options for a commit
type CommitOption func(*commitSettings)

type commitSettings struct {
	parents       []model.Oid
	parentCommits []*model.Commit
	hasParents    bool
	author        model.Contributor
	committer     model.Contributor
	message       string
	timestamp     time.Time
	expect        *model.Oid
}

// Parents sets explicit parent commits. By default, the parent is the current head of the key.
func Parents(commits ...*model.Commit) CommitOption {
	return func(s *commitSettings) {
		s.parentCommits = append(s.parentCommits, commits...)
		s.hasParents = true
	}
}

// ParentOids sets explicit parents by oid
func ParentOids(oids ...model.Oid) CommitOption {
	return func(s *commitSettings) {
		s.parents = append(s.parents, oids...)
		s.hasParents = true
	}
}

// Author of a commit
func Author(c model.Contributor) CommitOption {
	return func(s *commitSettings) {
		s.author = c
	}
}

// Committer of a commit. It defaults to the author.
func Committer(c model.Contributor) CommitOption {
	return func(s *commitSettings) {
		s.committer = c
	}
}

// Message of a commit
func Message(m string) CommitOption {
	return func(s *commitSettings) {
		s.message = m
	}
}

// Timestamp of a commit. It defaults to the current time.
func Timestamp(t time.Time) CommitOption {
	return func(s *commitSettings) {
		s.timestamp = t
	}
}

// ExpectHead makes a commit fail with status.ErrConcurrentModification unless
// the head of the key is this oid. model.ZeroOid expects a key with no history.
func ExpectHead(oid model.Oid) CommitOption {
	return func(s *commitSettings) {
		o := oid
		s.expect = &o
	}
}

// MergeOption sets options for a merge
type MergeOption func(*mergeSettings)

type mergeSettings struct {
	author    model.Contributor
	committer model.Contributor
	message   string
}

// MergeAuthor is the author of the merge commit
func MergeAuthor(c model.Contributor) MergeOption {
	return func(s *mergeSettings) {
		s.author = c
	}
}

// MergeCommitter is the committer of the merge commit. It defaults to the author.
func MergeCommitter(c model.Contributor) MergeOption {
	return func(s *mergeSettings) {
		s.committer = c
	}
}

// MergeMessage overrides the generated message of the merge commit
func MergeMessage(m string) MergeOption {
	return func(s *mergeSettings) {
		s.message = m
	}
}
