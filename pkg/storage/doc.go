// Copyright © 2018 One Concern

// Package storage provides interface to handle backend storage objects.
//
// datagit keeps the encoded snapshots of values as content-addressed objects
// in such a store. This package supports the following backends:
//   - local file system (localfs), on any afero.Fs
package storage
