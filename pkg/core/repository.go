// Copyright © 2018 One Concern

package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/oneconcern/datagit/pkg/core/status"
	"github.com/oneconcern/datagit/pkg/diff"
	"github.com/oneconcern/datagit/pkg/errors"
	"github.com/oneconcern/datagit/pkg/history"
	"github.com/oneconcern/datagit/pkg/merge"
	"github.com/oneconcern/datagit/pkg/metrics"
	"github.com/oneconcern/datagit/pkg/model"
	"github.com/oneconcern/datagit/pkg/store"
	"github.com/oneconcern/datagit/pkg/value"
)

// Repository commits, reads and merges structured values on a commit store
type Repository struct {
	store      store.CommitStore
	walker     *history.Walker
	merger     *merge.Orchestrator
	l          *zap.Logger
	metrics    *metrics.Metrics
	author     model.Contributor
	committer  model.Contributor
	maxRetries int
}

// New repository on a commit store
func New(s store.CommitStore, opts ...Option) *Repository {
	r := &Repository{
		store:      s,
		walker:     history.NewWalker(s),
		l:          zap.NewNop(),
		maxRetries: DefaultMaxRetries,
	}
	for _, apply := range opts {
		apply(r)
	}
	r.merger = merge.New(s, merge.WithLogger(r.l), merge.WithMetrics(r.metrics))
	return r
}

// Store of this repository
func (r *Repository) Store() store.CommitStore {
	return r.store
}

func (r *Repository) String() string {
	return fmt.Sprintf("repository(%s)", r.store.ID())
}

func (r *Repository) signatures(author, committer model.Contributor) (model.Contributor, model.Contributor, error) {
	if author.IsZero() {
		author = r.author
	}
	if author.IsZero() {
		return author, committer, status.ErrMissingAuthor
	}
	if committer.IsZero() {
		committer = r.committer
	}
	if committer.IsZero() {
		committer = author
	}
	return author, committer, nil
}

func (r *Repository) checkStore(c *model.Commit) error {
	if c == nil {
		return status.ErrKeyNotFound.Wrapf("no commit")
	}
	if c.Store != r.store.ID() {
		return status.ErrDifferentStore.Wrapf("commit %s comes from store %q", c.Oid.Short(), c.Store)
	}
	return nil
}

func (r *Repository) head(ctx context.Context, key string) (model.Oid, bool, error) {
	if err := model.ValidateKey(key); err != nil {
		return model.ZeroOid, false, err
	}
	return r.store.HeadOid(ctx, key)
}

func (r *Repository) buildRequest(ctx context.Context, key string, v value.Value, opts []CommitOption) (store.CommitRequest, error) {
	var s commitSettings
	for _, apply := range opts {
		apply(&s)
	}

	author, committer, err := r.signatures(s.author, s.committer)
	if err != nil {
		return store.CommitRequest{}, err
	}
	req := store.CommitRequest{
		Value:     v,
		Author:    author,
		Committer: committer,
		Message:   s.message,
		Timestamp: s.timestamp,
		Expect:    s.expect,
	}

	if !s.hasParents {
		head, ok, erh := r.head(ctx, key)
		if erh != nil {
			return req, erh
		}
		if ok {
			req.Parents = []model.Oid{head}
		}
		if req.Expect == nil {
			req.Expect = store.ExpectHead(head, ok)
		}
		return req, nil
	}

	for _, c := range s.parentCommits {
		if err = r.checkStore(c); err != nil {
			return req, err
		}
		req.Parents = append(req.Parents, c.Oid)
	}
	req.Parents = append(req.Parents, s.parents...)
	return req, nil
}

func (r *Repository) commit(ctx context.Context, op, key string, v value.Value, opts []CommitOption) (*model.Commit, error) {
	req, err := r.buildRequest(ctx, key, v, opts)
	if err != nil {
		return nil, err
	}
	c, err := r.store.CreateCommit(ctx, key, req)
	if err != nil {
		return nil, err
	}
	r.metrics.Commit(op)
	r.l.Debug(op, zap.String("key", key), zap.String("oid", c.Oid.String()))
	return c, nil
}

// Commit a value to a key.
//
// By default, the parent of the new commit is the head of the key, and the
// commit fails with status.ErrConcurrentModification if that head moved
// meanwhile. With explicit parents, no check is carried out unless ExpectHead is set.
func (r *Repository) Commit(ctx context.Context, key string, v value.Value, opts ...CommitOption) (*model.Commit, error) {
	return r.commit(ctx, "commit", key, v, opts)
}

// Get the commit stepsBack commits before the head of a key, following the topological log
func (r *Repository) Get(ctx context.Context, key string, stepsBack int) (*model.Commit, error) {
	if stepsBack < 0 {
		return nil, status.ErrIndexOutOfRange.Wrapf("negative index %d", stepsBack)
	}
	it, err := r.Log(ctx, key, model.Topological)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	for i := 0; it.Next(); i++ {
		if i == stepsBack {
			return it.Commit(), nil
		}
	}
	if err = it.Err(); err != nil {
		return nil, err
	}
	return nil, status.ErrIndexOutOfRange.Wrapf("%q has fewer than %d commits", key, stepsBack+1)
}

// Head commit of a key
func (r *Repository) Head(ctx context.Context, key string) (*model.Commit, error) {
	oid, ok, err := r.head(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, status.ErrKeyNotFound.Wrapf("%q", key)
	}
	return r.store.ReadCommit(ctx, oid)
}

// Show the value of a key, stepsBack commits before its head
func (r *Repository) Show(ctx context.Context, key string, stepsBack int) (value.Value, error) {
	c, err := r.Get(ctx, key, stepsBack)
	if err != nil {
		return value.Null(), err
	}
	return c.Value, nil
}

// Log walks the history of a key from its head
func (r *Repository) Log(ctx context.Context, key string, order model.LogOrder) (*history.Iterator, error) {
	c, err := r.Head(ctx, key)
	if err != nil {
		return nil, err
	}
	return r.walker.Log(ctx, c, order), nil
}

// LogCommit walks the history of a commit
func (r *Repository) LogCommit(ctx context.Context, c *model.Commit, order model.LogOrder) (*history.Iterator, error) {
	if err := r.checkStore(c); err != nil {
		return nil, err
	}
	return r.walker.Log(ctx, c, order), nil
}

// Merge the head of sourceKey into destKey.
//
// Conflicts and disjoint histories are reported by the outcome status.
func (r *Repository) Merge(ctx context.Context, sourceKey, destKey string, opts ...MergeOption) (*merge.Outcome, error) {
	if sourceKey == destKey {
		return nil, status.ErrSelfMerge.Wrapf("%q", sourceKey)
	}
	source, err := r.Head(ctx, sourceKey)
	if err != nil {
		return nil, err
	}
	return r.mergeInto(ctx, source, destKey, false, opts)
}

// MergeCommit merges a commit into destKey.
//
// Merging the head of destKey into destKey fails with status.ErrSelfMerge.
func (r *Repository) MergeCommit(ctx context.Context, source *model.Commit, destKey string, opts ...MergeOption) (*merge.Outcome, error) {
	if err := r.checkStore(source); err != nil {
		return nil, err
	}
	return r.mergeInto(ctx, source, destKey, true, opts)
}

func (r *Repository) mergeInto(ctx context.Context, source *model.Commit, destKey string, byCommit bool, opts []MergeOption) (*merge.Outcome, error) {
	var s mergeSettings
	for _, apply := range opts {
		apply(&s)
	}
	author, committer, err := r.signatures(s.author, s.committer)
	if err != nil {
		return nil, err
	}

	dest, err := r.Head(ctx, destKey)
	if err != nil {
		return nil, err
	}
	if byCommit && dest.Oid == source.Oid {
		return nil, status.ErrSelfMerge.Wrapf("%s is the head of %q", source.Oid.Short(), destKey)
	}

	return r.merger.Merge(ctx, destKey, source, dest, merge.Request{
		Author:    author,
		Committer: committer,
		Message:   s.message,
	})
}

// Fork creates newKey, sharing the history of fromKey
func (r *Repository) Fork(ctx context.Context, newKey, fromKey string) (*model.Commit, error) {
	c, err := r.Head(ctx, fromKey)
	if err != nil {
		return nil, err
	}
	return r.ForkCommit(ctx, newKey, c)
}

// ForkCommit creates newKey with c as its head
func (r *Repository) ForkCommit(ctx context.Context, newKey string, c *model.Commit) (*model.Commit, error) {
	if err := r.checkStore(c); err != nil {
		return nil, err
	}
	if err := r.store.SetReference(ctx, newKey, c.Oid, &model.ZeroOid); err != nil {
		if errors.Is(err, status.ErrConcurrentModification) {
			return nil, status.ErrKeyExists.Wrapf("cannot fork to %q", newKey)
		}
		return nil, err
	}
	r.l.Debug("fork", zap.String("key", newKey), zap.String("oid", c.Oid.String()))
	return c, nil
}

// Checkout commits the value at the head of sourceKey onto destKey.
//
// The new commit has the head of sourceKey as its only parent.
func (r *Repository) Checkout(ctx context.Context, sourceKey, destKey string, opts ...CommitOption) (*model.Commit, error) {
	source, err := r.Head(ctx, sourceKey)
	if err != nil {
		return nil, err
	}
	head, ok, err := r.head(ctx, destKey)
	if err != nil {
		return nil, err
	}

	defaults := []CommitOption{
		Message(fmt.Sprintf("Checkout %s from %s", destKey, sourceKey)),
		Parents(source),
		func(s *commitSettings) { s.expect = store.ExpectHead(head, ok) },
	}
	return r.commit(ctx, "checkout", destKey, source.Value, append(defaults, opts...))
}

// Remove a key. Its commits remain reachable from other keys.
func (r *Repository) Remove(ctx context.Context, key string) error {
	if err := r.store.DeleteReference(ctx, key); err != nil {
		return err
	}
	r.l.Debug("remove", zap.String("key", key))
	return nil
}

// Committed tells if a key has a history
func (r *Repository) Committed(ctx context.Context, key string) (bool, error) {
	_, ok, err := r.head(ctx, key)
	return ok, err
}

// Keys with a history, sorted
func (r *Repository) Keys(ctx context.Context) ([]string, error) {
	return r.store.Keys(ctx)
}

// Update reads the head of a key, computes a new value and commits it.
//
// When the head moves before the new value is committed, the update is retried
// from the new head, up to the configured number of retries.
// A key with no history is updated from a null value.
func (r *Repository) Update(ctx context.Context, key string, fn func(value.Value) (value.Value, error), opts ...CommitOption) (*model.Commit, error) {
	for attempt := 0; ; attempt++ {
		c, err := r.update(ctx, key, fn, opts)
		if err == nil || !errors.Is(err, status.ErrConcurrentModification) || attempt >= r.maxRetries {
			return c, err
		}
		r.metrics.Retry()
		r.l.Info("update retried", zap.String("key", key), zap.Int("attempt", attempt+1), zap.Error(err))
	}
}

func (r *Repository) update(ctx context.Context, key string, fn func(value.Value) (value.Value, error), opts []CommitOption) (*model.Commit, error) {
	oid, ok, err := r.head(ctx, key)
	if err != nil {
		return nil, err
	}

	base := value.Null()
	var parents []model.Oid
	if ok {
		head, erc := r.store.ReadCommit(ctx, oid)
		if erc != nil {
			return nil, erc
		}
		base = head.Value
		parents = append(parents, oid)
	}

	v, err := fn(base)
	if err != nil {
		return nil, err
	}

	defaults := []CommitOption{
		ParentOids(parents...),
		func(s *commitSettings) { s.expect = store.ExpectHead(oid, ok) },
	}
	return r.commit(ctx, "update", key, v, append(defaults, opts...))
}

// DiffKeys computes the difference between the heads of two keys
func (r *Repository) DiffKeys(ctx context.Context, fromKey, toKey string) (diff.Diff, error) {
	from, err := r.Head(ctx, fromKey)
	if err != nil {
		return diff.None(), err
	}
	to, err := r.Head(ctx, toKey)
	if err != nil {
		return diff.None(), err
	}
	return diff.Compute(from.Value, to.Value), nil
}

// Diff computes the difference between two values
func Diff(a, b value.Value) diff.Diff {
	return diff.Compute(a, b)
}

// Conflict detects conflicting edits between two diffs from the same base
func Conflict(d1, d2 diff.Diff) *diff.Conflict {
	return diff.Detect(d1, d2)
}
