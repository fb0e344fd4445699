// Package store defines the commit store consumed by datagit.
//
// A commit store keeps immutable commits and the values they snapshot,
// and one movable reference per key pointing to the head commit of that key.
package store

import (
	"context"
	"time"

	"github.com/oneconcern/datagit/pkg/model"
	"github.com/oneconcern/datagit/pkg/value"
)

// BlobRef is the content address of a stored value
type BlobRef string

// CommitRequest holds everything needed to create a commit
type CommitRequest struct {
	Value     value.Value
	Parents   []model.Oid
	Author    model.Contributor
	Committer model.Contributor
	Message   string

	// Timestamp defaults to the current time
	Timestamp time.Time

	// Expect guards the update of the head reference of the key:
	//   - nil: no check
	//   - a pointer to model.ZeroOid: the key must have no history yet
	//   - any other oid: the current head of the key must be this oid
	Expect *model.Oid
}

// ExpectHead builds an expected head precondition.
// A missing head is expressed with ok == false.
func ExpectHead(head model.Oid, ok bool) *model.Oid {
	if !ok {
		return &model.ZeroOid
	}
	h := head
	return &h
}

// A CommitStore manages persistence for commits, values and key references.
//
// Commits and values are immutable and content addressed. Updating a key
// reference is an atomic compare-and-set when an expected head is provided,
// failing with status.ErrConcurrentModification otherwise.
type CommitStore interface {
	// ID uniquely identifies this store
	ID() string

	WriteValue(context.Context, value.Value) (BlobRef, error)
	ReadValue(context.Context, BlobRef) (value.Value, error)

	// CreateCommit stores a new commit and moves the head of the key to it
	CreateCommit(context.Context, string, CommitRequest) (*model.Commit, error)

	HeadOid(context.Context, string) (model.Oid, bool, error)
	ReadCommit(context.Context, model.Oid) (*model.Commit, error)
	Parents(context.Context, model.Oid) ([]model.Oid, error)

	SetReference(ctx context.Context, key string, oid model.Oid, expect *model.Oid) error
	DeleteReference(context.Context, string) error
	Keys(context.Context) ([]string, error)

	Close() error
}
