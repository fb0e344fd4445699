// Package status declares error constants returned by
// implementations of the CommitStore interface.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between pkg/store and one
// of its implementions.
package status

import "github.com/oneconcern/datagit/pkg/errors"

var (
	// ErrKeyNotFound indicates that a key has no history
	ErrKeyNotFound = errors.New("key not found")

	// ErrCommitNotFound indicates that no commit exists with this oid
	ErrCommitNotFound = errors.New("commit not found")

	// ErrValueNotFound indicates that no value is stored under this reference
	ErrValueNotFound = errors.New("value not found")

	// ErrConcurrentModification indicates that the head of a key moved since it was read
	ErrConcurrentModification = errors.New("concurrent modification of key")

	// ErrValueTooBig indicates that an encoded value exceeds the configured limit
	ErrValueTooBig = errors.New("value too big")

	// ErrCorruptedStore indicates that a stored record could not be decoded
	ErrCorruptedStore = errors.New("corrupted store record")

	// ErrStoreClosed indicates that the store has been closed
	ErrStoreClosed = errors.New("store is closed")
)
