// Package history walks the commit graph: linear ancestry, shared ancestors and ordered logs.
package history

import (
	"context"

	"github.com/oneconcern/datagit/pkg/model"
)

// CommitReader fetches commits by oid
type CommitReader interface {
	ReadCommit(context.Context, model.Oid) (*model.Commit, error)
}

// Walker walks the history of commits read from a store.
//
// A Walker holds no iteration state: every call starts a fresh walk.
type Walker struct {
	store CommitReader
}

// NewWalker builds a history walker on a commit store
func NewWalker(store CommitReader) *Walker {
	return &Walker{store: store}
}

// Ancestors yields a commit, then its parent for as long as the history is linear.
//
// A commit with no parent or several parents is yielded, but not descended.
func (w *Walker) Ancestors(ctx context.Context, c *model.Commit) *Iterator {
	var (
		current = c
		pending *model.Oid
	)
	return newIterator(func() (*model.Commit, error) {
		if pending != nil {
			next, err := w.store.ReadCommit(ctx, *pending)
			if err != nil {
				return nil, err
			}
			current, pending = next, nil
		}
		if current == nil {
			return nil, nil
		}
		yield := current
		current = nil
		if parent, linear := yield.Parent(); linear {
			pending = &parent
		}
		return yield, nil
	})
}

// Log yields every commit reachable from c through all parents, once each.
//
//   - Topological: children before parents, most recent first among unrelated commits
//   - Time: most recent commit first
//   - Reverse: parents before children. This order materializes the whole history on first use.
func (w *Walker) Log(ctx context.Context, c *model.Commit, order model.LogOrder) *Iterator {
	if order == model.Reverse {
		return w.reverse(ctx, c)
	}

	q := newQueue(order)
	seen := map[model.Oid]struct{}{c.Oid: {}}
	q.push(c)
	var last *model.Commit

	return newIterator(func() (*model.Commit, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// parents of the last yielded commit are only read when walking on
		if last != nil {
			for _, p := range last.Parents {
				if _, ok := seen[p]; ok {
					continue
				}
				seen[p] = struct{}{}
				parent, err := w.store.ReadCommit(ctx, p)
				if err != nil {
					return nil, err
				}
				q.push(parent)
			}
			last = nil
		}
		if q.Len() == 0 {
			return nil, nil
		}
		last = q.pop()
		return last, nil
	})
}

func (w *Walker) reverse(ctx context.Context, c *model.Commit) *Iterator {
	var (
		commits []*model.Commit
		loaded  bool
	)
	return newIterator(func() (*model.Commit, error) {
		if !loaded {
			all, err := Collect(w.Log(ctx, c, model.Topological), 0)
			if err != nil {
				return nil, err
			}
			commits, loaded = all, true
		}
		if len(commits) == 0 {
			return nil, nil
		}
		last := commits[len(commits)-1]
		commits = commits[:len(commits)-1]
		return last, nil
	})
}

// SharedAncestor finds the first commit in the topological walk of c1 which is
// reachable from c2. It returns nil when both histories are disjoint.
func (w *Walker) SharedAncestor(ctx context.Context, c1, c2 *model.Commit) (*model.Commit, error) {
	reachable := make(map[model.Oid]struct{})
	it2 := w.Log(ctx, c2, model.Topological)
	for it2.Next() {
		reachable[it2.Commit().Oid] = struct{}{}
	}
	if err := it2.Err(); err != nil {
		return nil, err
	}

	it1 := w.Log(ctx, c1, model.Topological)
	defer it1.Close()
	for it1.Next() {
		if _, ok := reachable[it1.Commit().Oid]; ok {
			return it1.Commit(), nil
		}
	}
	return nil, it1.Err()
}
