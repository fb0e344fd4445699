package merge

import (
	"github.com/oneconcern/datagit/pkg/diff"
	"github.com/oneconcern/datagit/pkg/model"
)

// Status is the terminal state of a merge
type Status uint8

const (
	// SameCommit means both heads are the same commit: nothing to do
	SameCommit Status = iota
	// FastForward means the destination head was moved to the source head
	FastForward
	// AutoMerged means a merge commit was created
	AutoMerged
	// NoSharedAncestor means both histories are disjoint
	NoSharedAncestor
	// ConflictDetected means both sides edited the same paths incompatibly
	ConflictDetected
)

func (s Status) String() string {
	switch s {
	case SameCommit:
		return "SameCommit"
	case FastForward:
		return "FastForward"
	case AutoMerged:
		return "AutoMerged"
	case NoSharedAncestor:
		return "NoSharedAncestor"
	case ConflictDetected:
		return "ConflictDetected"
	default:
		return "Unknown"
	}
}

// Merged tells if the destination now holds the changes of the source
func (s Status) Merged() bool {
	return s == SameCommit || s == FastForward || s == AutoMerged
}

// Outcome describes the result of a merge
type Outcome struct {
	Status      Status
	Source      *model.Commit
	Destination *model.Commit

	// Shared is the shared ancestor, when a three-way merge was attempted
	Shared *model.Commit

	// Commit is the head of the destination after the merge
	Commit *model.Commit

	// Conflict is set when Status is ConflictDetected
	Conflict *diff.Conflict

	Message string
}
