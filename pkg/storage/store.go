// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"

	"github.com/oneconcern/datagit/pkg/storage/status"
)

const (
	// NoOverWrite fails a Put when the object exists already
	NoOverWrite = true
	// OverWrite replaces an existing object on Put
	OverWrite = false
)

// Store implementations know how to write entries to a K/V model.Store.
//
// Typically this is something file system-like.
// Implementations of this interface are assumed to be fairly simple.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader, bool) error
	Delete(context.Context, string) error
	Keys(context.Context) ([]string, error)
	Clear(context.Context) error
}

// PipeIO copies a reader to a writer, using the WriterTo of the reader when available
func PipeIO(writer io.Writer, reader io.Reader) (int64, error) {
	if wt, ok := reader.(io.WriterTo); ok {
		return wt.WriteTo(writer)
	}
	return io.Copy(writer, reader)
}

// ReadAll fetches an object into memory, refusing objects larger than maxSize bytes.
//
// A maxSize of 0 or less means no limit.
func ReadAll(ctx context.Context, store Store, key string, maxSize int64) ([]byte, error) {
	reader, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if maxSize <= 0 {
		return io.ReadAll(reader)
	}

	object, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(object)) > maxSize {
		return nil, status.ErrBlobTooLarge.Wrapf("object %q exceeds %d bytes", key, maxSize)
	}
	return object, nil
}
