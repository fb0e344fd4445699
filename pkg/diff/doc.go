// Copyright © 2018 One Concern

// Package diff computes structural patches between values, applies them,
// and detects conflicting patches computed against the same base.
//
// A Diff is one of NoChange, Replace or Composite. A Composite describes the
// entries appended, updated (with a nested Diff) and removed in a list or a map.
// List entries are addressed by position, map entries by key.
package diff
