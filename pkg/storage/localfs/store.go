// Copyright © 2018 One Concern

// Package localfs keeps blobs as files on an afero file system.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/oneconcern/datagit/pkg/storage"
	"github.com/oneconcern/datagit/pkg/storage/status"
)

// DefaultPath is the root of blobs when no file system is given
var DefaultPath = filepath.Join(".datagit", "values")

// stagingDir holds blobs being written by a staged store
const stagingDir = ".staging"

// Blobs is a storage.Store of files under the root of a file system.
//
// A staged store writes every blob under a temporary name first, then renames
// it into place, so that readers never see a partial blob.
type Blobs struct {
	fs     afero.Fs
	staged bool
}

// New blob store writing files in place
func New(fs afero.Fs) storage.Store {
	return &Blobs{fs: orDefault(fs)}
}

// NewAtomic blob store staging writes before renaming them into place
func NewAtomic(fs afero.Fs) (storage.Store, error) {
	b := &Blobs{fs: orDefault(fs), staged: true}
	if err := b.fs.MkdirAll(stagingDir, 0700); err != nil {
		return nil, fmt.Errorf("creating staging area: %w", err)
	}
	return b, nil
}

func orDefault(fs afero.Fs) afero.Fs {
	if fs != nil {
		return fs
	}
	return afero.NewBasePathFs(afero.NewOsFs(), DefaultPath)
}

// reserved tells if a blob path falls in the staging area of a staged store
func (b *Blobs) reserved(p string) bool {
	if !b.staged {
		return false
	}
	first := strings.SplitN(strings.TrimLeft(filepath.ToSlash(p), "/"), "/", 2)[0]
	return first == stagingDir
}

func (b *Blobs) check(p string) error {
	if b.reserved(p) {
		return status.ErrInvalidPath.Wrapf("%q is in the staging area", p)
	}
	return nil
}

func (b *Blobs) isFile(p string) (bool, error) {
	fi, err := b.fs.Stat(p)
	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, err
	default:
		return !fi.IsDir(), nil
	}
}

// Has tells if a blob exists at this path
func (b *Blobs) Has(_ context.Context, p string) (bool, error) {
	if err := b.check(p); err != nil {
		return false, err
	}
	return b.isFile(p)
}

// Get opens the blob at this path
func (b *Blobs) Get(_ context.Context, p string) (io.ReadCloser, error) {
	if err := b.check(p); err != nil {
		return nil, err
	}
	found, err := b.isFile(p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, status.ErrBlobNotFound.Wrapf("%q", p)
	}
	return b.fs.Open(p)
}

func (b *Blobs) ensureParent(p string) error {
	if dir := path.Dir(filepath.ToSlash(p)); dir != "." && dir != "/" {
		if err := b.fs.MkdirAll(filepath.FromSlash(dir), 0700); err != nil {
			return fmt.Errorf("creating directory for %q: %w", p, err)
		}
	}
	return nil
}

func (b *Blobs) write(p string, source io.Reader, exclusive bool) error {
	if err := b.ensureParent(p); err != nil {
		return err
	}
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC | os.O_SYNC
	if exclusive {
		flag |= os.O_EXCL
	}
	f, err := b.fs.OpenFile(p, flag, 0600)
	if err != nil {
		if os.IsExist(err) {
			return status.ErrBlobExists.Wrap(err)
		}
		return fmt.Errorf("creating blob %q: %w", p, err)
	}
	if _, err = storage.PipeIO(f, source); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing blob %q: %w", p, err)
	}
	return f.Close()
}

// Put writes a blob. With exclusive set, an existing blob is never replaced.
func (b *Blobs) Put(_ context.Context, p string, source io.Reader, exclusive bool) error {
	if err := b.check(p); err != nil {
		return err
	}
	if exclusive {
		found, err := b.isFile(p)
		if err != nil {
			return err
		}
		if found {
			return status.ErrBlobExists.Wrapf("%q", p)
		}
	}
	if !b.staged {
		return b.write(p, source, exclusive)
	}

	tmp := filepath.Join(stagingDir, uuid.NewString())
	if err := b.write(tmp, source, true); err != nil {
		return err
	}
	if err := b.ensureParent(p); err != nil {
		_ = b.fs.Remove(tmp)
		return err
	}
	if err := b.fs.Rename(tmp, p); err != nil {
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("moving blob %q into place: %w", p, err)
	}
	return nil
}

// Delete the blob at this path. Deleting a missing blob is not an error.
func (b *Blobs) Delete(_ context.Context, p string) error {
	if err := b.check(p); err != nil {
		return err
	}
	if err := b.fs.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting blob %q: %w", p, err)
	}
	return nil
}

// Keys lists the paths of all blobs, sorted
func (b *Blobs) Keys(_ context.Context) ([]string, error) {
	var keys []string
	err := afero.Walk(b.fs, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if p != "." && b.reserved(p) {
				return filepath.SkipDir
			}
			return nil
		}
		keys = append(keys, strings.TrimPrefix(filepath.ToSlash(p), "/"))
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Clear removes all blobs
func (b *Blobs) Clear(_ context.Context) error {
	entries, err := afero.ReadDir(b.fs, ".")
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := b.fs.RemoveAll(e.Name()); err != nil {
			return err
		}
	}
	if b.staged {
		return b.fs.MkdirAll(stagingDir, 0700)
	}
	return nil
}

func (b *Blobs) String() string {
	name := "localfs"
	if b.staged {
		name += "-atomic"
	}
	if base, ok := b.fs.(*afero.BasePathFs); ok {
		if root, err := base.RealPath(""); err == nil {
			return name + "@" + root
		}
	}
	return name
}
