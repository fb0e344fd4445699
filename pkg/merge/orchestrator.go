// Package merge reconciles two lines of history.
//
// Merging a source head into a destination key is one of:
//   - a no-op, when both heads are the same commit
//   - a fast-forward, when the destination is a linear ancestor of the source
//   - a three-way merge of both values against their shared ancestor
//
// Disjoint histories and conflicting edits are reported as outcomes, not errors.
package merge

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oneconcern/datagit/pkg/diff"
	"github.com/oneconcern/datagit/pkg/history"
	"github.com/oneconcern/datagit/pkg/metrics"
	"github.com/oneconcern/datagit/pkg/model"
	"github.com/oneconcern/datagit/pkg/store"
)

// Store is the part of the commit store used by merges
type Store interface {
	history.CommitReader
	CreateCommit(context.Context, string, store.CommitRequest) (*model.Commit, error)
	SetReference(ctx context.Context, key string, oid model.Oid, expect *model.Oid) error
}

// Orchestrator merges heads and issues the resulting commits
type Orchestrator struct {
	store   Store
	walker  *history.Walker
	l       *zap.Logger
	metrics *metrics.Metrics
}

// New merge orchestrator on a commit store
func New(s Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:  s,
		walker: history.NewWalker(s),
		l:      zap.NewNop(),
	}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// MessageFor is the message of a merge commit
func MessageFor(source, dest, shared model.Oid) string {
	return fmt.Sprintf("Auto-merge of %s and %s from shared parent %s", source.Short(), dest.Short(), shared.Short())
}

// Merge the source head into the destination key, whose head is dest.
//
// Moving the destination key is guarded by dest being still its head:
// a concurrent update of the key fails with status.ErrConcurrentModification.
func (o *Orchestrator) Merge(ctx context.Context, destKey string, source, dest *model.Commit, req Request) (*Outcome, error) {
	start := time.Now()
	out, err := o.merge(ctx, destKey, source, dest, req)
	if err != nil {
		return nil, err
	}

	conflicts := 0
	if out.Conflict != nil {
		conflicts = len(out.Conflict.Leaves())
	}
	o.metrics.Merge(out.Status.String(), conflicts, time.Since(start))

	fields := []zap.Field{
		zap.String("key", destKey),
		zap.String("source", source.Oid.String()),
		zap.String("dest", dest.Oid.String()),
		zap.Stringer("status", out.Status),
	}
	if out.Shared != nil {
		fields = append(fields, zap.String("shared", out.Shared.Oid.String()))
	}
	if out.Commit != nil {
		fields = append(fields, zap.String("oid", out.Commit.Oid.String()))
	}
	o.l.Info("merge", fields...)
	return out, nil
}

func (o *Orchestrator) merge(ctx context.Context, destKey string, source, dest *model.Commit, req Request) (*Outcome, error) {
	out := &Outcome{
		Source:      source,
		Destination: dest,
	}

	if source.Oid == dest.Oid {
		out.Status = SameCommit
		out.Commit = dest
		return out, nil
	}

	linear, err := o.isLinearAncestor(ctx, dest.Oid, source)
	if err != nil {
		return nil, err
	}
	if linear {
		if err = o.store.SetReference(ctx, destKey, source.Oid, &dest.Oid); err != nil {
			return nil, err
		}
		out.Status = FastForward
		out.Commit = source
		return out, nil
	}

	shared, err := o.walker.SharedAncestor(ctx, source, dest)
	if err != nil {
		return nil, err
	}
	if shared == nil {
		out.Status = NoSharedAncestor
		return out, nil
	}
	out.Shared = shared

	fromSource := diff.Compute(shared.Value, source.Value)
	fromDest := diff.Compute(shared.Value, dest.Value)

	if conflict := diff.Detect(fromSource, fromDest); conflict != nil {
		out.Status = ConflictDetected
		out.Conflict = conflict
		return out, nil
	}

	merged, err := diff.Apply(shared.Value, fromSource)
	if err != nil {
		return nil, err
	}
	merged, err = diff.Apply(merged, diff.Subtract(fromDest, fromSource))
	if err != nil {
		return nil, err
	}

	out.Message = req.Message
	if out.Message == "" {
		out.Message = MessageFor(source.Oid, dest.Oid, shared.Oid)
	}

	c, err := o.store.CreateCommit(ctx, destKey, store.CommitRequest{
		Value:     merged,
		Parents:   []model.Oid{source.Oid, dest.Oid},
		Author:    req.Author,
		Committer: req.committer(),
		Message:   out.Message,
		Timestamp: req.Timestamp,
		Expect:    &dest.Oid,
	})
	if err != nil {
		return nil, err
	}
	out.Status = AutoMerged
	out.Commit = c
	return out, nil
}

// isLinearAncestor tells if target lies on the linear history leading to c
func (o *Orchestrator) isLinearAncestor(ctx context.Context, target model.Oid, c *model.Commit) (bool, error) {
	it := o.walker.Ancestors(ctx, c)
	defer it.Close()

	for it.Next() {
		if it.Commit().Oid == target {
			return true, nil
		}
	}
	return false, it.Err()
}
