// Copyright © 2018 One Concern

// Package model describes the base objects manipulated by datagit.
//
// The object model for datagit is composed of:
//
//  Keys:
//    A key names an independent line of history, analogous to a git branch.
//    Keys are hierarchical, using "/" as a separator.
//
//  Commits:
//    A commit is an immutable snapshot of the value held by a key, linked to
//    its parent commits. Commits are identified by the digest of their content (Oid).
//
//  Contributors:
//    The author and committer of a commit.
package model
