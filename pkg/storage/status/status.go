// Copyright © 2018 One Concern

// Package status holds the errors returned by blob stores.
//
// They live apart from pkg/storage so that backends and their callers
// can match on them without importing one another.
package status

import "github.com/oneconcern/datagit/pkg/errors"

var (
	// ErrBlobNotFound is returned when reading a path that holds no blob
	ErrBlobNotFound = errors.New("blob not found")

	// ErrBlobExists is returned by exclusive writes to a path already holding a blob
	ErrBlobExists = errors.New("blob exists already")

	// ErrBlobTooLarge is returned when a blob exceeds the size allowed in memory
	ErrBlobTooLarge = errors.New("blob too large")

	// ErrInvalidPath is returned for paths reserved by a backend
	ErrInvalidPath = errors.New("invalid blob path")
)
