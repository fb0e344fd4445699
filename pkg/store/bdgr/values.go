package bdgr

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"github.com/oneconcern/datagit/pkg/errors"
	"github.com/oneconcern/datagit/pkg/model"
	"github.com/oneconcern/datagit/pkg/storage"
	storagestatus "github.com/oneconcern/datagit/pkg/storage/status"
	"github.com/oneconcern/datagit/pkg/store"
	"github.com/oneconcern/datagit/pkg/store/status"
	"github.com/oneconcern/datagit/pkg/value"
)

// blobPath fans objects out in subdirectories, git-style
func blobPath(ref store.BlobRef) string {
	r := string(ref)
	if len(r) < 3 {
		return r
	}
	return r[:2] + "/" + r[2:]
}

// WriteValue stores the canonical encoding of a value. Equal values share the same reference.
func (s *Store) WriteValue(ctx context.Context, v value.Value) (store.BlobRef, error) {
	if err := s.check(ctx); err != nil {
		return "", err
	}

	data, err := value.Encode(v)
	if err != nil {
		return "", err
	}
	if s.maxValueSize > 0 && int64(len(data)) > s.maxValueSize {
		return "", status.ErrValueTooBig.Wrapf("encoded value is %d bytes, limit is %d", len(data), s.maxValueSize)
	}

	ref := store.BlobRef(model.NewOid(data).String())
	path := blobPath(ref)

	has, err := s.blobs.Has(ctx, path)
	if err != nil {
		return "", err
	}
	if has {
		return ref, nil
	}

	err = s.blobs.Put(ctx, path, bytes.NewReader(data), storage.NoOverWrite)
	if err != nil && !errors.Is(err, storagestatus.ErrBlobExists) {
		return "", err
	}
	s.l.Debug("value written", zap.String("ref", string(ref)), zap.Int("size", len(data)))
	return ref, nil
}

// ReadValue fetches a value by reference
func (s *Store) ReadValue(ctx context.Context, ref store.BlobRef) (value.Value, error) {
	if err := s.check(ctx); err != nil {
		return value.Value{}, err
	}

	path := blobPath(ref)
	has, err := s.blobs.Has(ctx, path)
	if err != nil {
		return value.Value{}, err
	}
	if !has {
		return value.Value{}, status.ErrValueNotFound.Wrapf("ref %s", ref)
	}

	data, err := storage.ReadAll(ctx, s.blobs, path, s.maxValueSize)
	if err != nil {
		if errors.Is(err, storagestatus.ErrBlobTooLarge) {
			return value.Value{}, status.ErrValueTooBig.Wrap(err)
		}
		return value.Value{}, err
	}

	v, err := value.Parse(data)
	if err != nil {
		return value.Value{}, status.ErrCorruptedStore.Wrap(err)
	}
	return v, nil
}
