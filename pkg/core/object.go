package core

import (
	"context"

	"github.com/oneconcern/datagit/pkg/core/status"
	"github.com/oneconcern/datagit/pkg/history"
	"github.com/oneconcern/datagit/pkg/merge"
	"github.com/oneconcern/datagit/pkg/model"
	"github.com/oneconcern/datagit/pkg/value"
)

// Object is a working copy of the value of a key.
//
// Edits apply to the working copy, which is persisted by Commit. With
// autocommit enabled, every successful edit is committed right away.
//
// An Object is not safe for concurrent use. Commits are guarded by the head the
// object was read from: a concurrent commit to the key makes the next Commit fail with
// status.ErrConcurrentModification until Refresh is called.
type Object struct {
	repo       *Repository
	key        string
	autocommit bool
	head       *model.Commit
	value      value.Value
	dirty      bool
}

// Object reads the head of a key into a working copy.
// A key with no history starts with a null value.
func (r *Repository) Object(ctx context.Context, key string, autocommit bool) (*Object, error) {
	o := &Object{
		repo:       r,
		key:        key,
		autocommit: autocommit,
	}
	if err := o.Refresh(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// Key of this object
func (o *Object) Key() string { return o.key }

// Value of the working copy
func (o *Object) Value() value.Value { return o.value }

// Head is the commit the working copy was read from, nil for a new key
func (o *Object) Head() *model.Commit { return o.head }

// Dirty tells if the working copy has uncommitted edits
func (o *Object) Dirty() bool { return o.dirty }

// Autocommit tells if edits are committed right away
func (o *Object) Autocommit() bool { return o.autocommit }

// Refresh discards edits and reads the head of the key again
func (o *Object) Refresh(ctx context.Context) error {
	oid, ok, err := o.repo.head(ctx, o.key)
	if err != nil {
		return err
	}
	o.head, o.value, o.dirty = nil, value.Null(), false
	if !ok {
		return nil
	}
	head, err := o.repo.store.ReadCommit(ctx, oid)
	if err != nil {
		return err
	}
	o.head, o.value = head, head.Value
	return nil
}

func (o *Object) edit(ctx context.Context, v value.Value, err error) error {
	if err != nil {
		return err
	}
	o.value, o.dirty = v, true
	if !o.autocommit {
		return nil
	}
	_, err = o.Commit(ctx)
	return err
}

// Set an entry of a map value
func (o *Object) Set(ctx context.Context, key string, v value.Value) error {
	updated, err := o.value.With(key, v)
	return o.edit(ctx, updated, err)
}

// Delete an entry of a map value
func (o *Object) Delete(ctx context.Context, key string) error {
	updated, err := o.value.Without(key)
	return o.edit(ctx, updated, err)
}

// Append items to a list value
func (o *Object) Append(ctx context.Context, items ...value.Value) error {
	updated, err := o.value.Append(items...)
	return o.edit(ctx, updated, err)
}

// Replace the whole value
func (o *Object) Replace(ctx context.Context, v value.Value) error {
	return o.edit(ctx, v, nil)
}

// Commit the working copy on top of the head it was read from
func (o *Object) Commit(ctx context.Context, opts ...CommitOption) (*model.Commit, error) {
	var defaults []CommitOption
	if o.head != nil {
		defaults = append(defaults, Parents(o.head), ExpectHead(o.head.Oid))
	} else {
		defaults = append(defaults, ParentOids(), ExpectHead(model.ZeroOid))
	}

	c, err := o.repo.commit(ctx, "commit", o.key, o.value, append(defaults, opts...))
	if err != nil {
		return nil, err
	}
	o.head, o.value, o.dirty = c, c.Value, false
	return c, nil
}

// Merge the head of another object into this one, then refresh this object on success.
//
// Uncommitted edits of this object must be committed or refreshed away first.
func (o *Object) Merge(ctx context.Context, other *Object, opts ...MergeOption) (*merge.Outcome, error) {
	if other.repo.store.ID() != o.repo.store.ID() {
		return nil, status.ErrDifferentStore.Wrapf("cannot merge %q into %q", other.key, o.key)
	}
	if o.dirty {
		return nil, status.ErrUncommittedEdits.Wrapf("cannot merge %q into %q", other.key, o.key)
	}
	out, err := o.repo.Merge(ctx, other.key, o.key, opts...)
	if err != nil {
		return nil, err
	}
	if out.Status.Merged() {
		if err = o.Refresh(ctx); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Fork the head of this object to a new key
func (o *Object) Fork(ctx context.Context, newKey string) (*Object, error) {
	if o.head == nil {
		return nil, status.ErrKeyNotFound.Wrapf("%q has no commit to fork", o.key)
	}
	if _, err := o.repo.ForkCommit(ctx, newKey, o.head); err != nil {
		return nil, err
	}
	return &Object{
		repo:       o.repo,
		key:        newKey,
		autocommit: o.autocommit,
		head:       o.head,
		value:      o.head.Value,
	}, nil
}

// Log walks the history of the head of this object
func (o *Object) Log(ctx context.Context, order model.LogOrder) (*history.Iterator, error) {
	if o.head == nil {
		return nil, status.ErrKeyNotFound.Wrapf("%q", o.key)
	}
	return o.repo.LogCommit(ctx, o.head, order)
}
