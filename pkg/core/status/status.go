// Package status exports errors produced by the core package.
package status

import (
	"github.com/oneconcern/datagit/pkg/errors"
	storestatus "github.com/oneconcern/datagit/pkg/store/status"
)

var (
	// ErrKeyNotFound indicates that a key has no commit
	ErrKeyNotFound = storestatus.ErrKeyNotFound

	// ErrConcurrentModification indicates that the head of a key moved while it was being updated
	ErrConcurrentModification = storestatus.ErrConcurrentModification

	// ErrIndexOutOfRange indicates that a key has fewer commits than requested
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrSelfMerge indicates an attempt to merge a key or a commit with itself
	ErrSelfMerge = errors.New("cannot merge with itself")

	// ErrDifferentStore indicates that a commit comes from another commit store
	ErrDifferentStore = errors.New("commit belongs to a different store")

	// ErrKeyExists indicates that the target of a fork already has a history
	ErrKeyExists = errors.New("key exists already")

	// ErrMissingAuthor indicates that no author was given, and none is configured
	ErrMissingAuthor = errors.New("missing author")

	// ErrUncommittedEdits indicates that an object holds edits which a merge would discard
	ErrUncommittedEdits = errors.New("object has uncommitted edits")
)
