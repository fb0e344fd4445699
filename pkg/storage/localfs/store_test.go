// Copyright © 2018 One Concern

package localfs

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/oneconcern/datagit/pkg/errors"
	"github.com/oneconcern/datagit/pkg/storage"
	"github.com/oneconcern/datagit/pkg/storage/status"
)

func TestHas(t *testing.T) {
	bs := setupStore(t)

	has, err := bs.Has(context.Background(), "sixteentons")
	require.NoError(t, err)
	require.True(t, has)

	has, err = bs.Has(context.Background(), "values/seventeentons")
	require.NoError(t, err)
	require.True(t, has)

	has, err = bs.Has(context.Background(), "fifteentons")
	require.NoError(t, err)
	require.False(t, has)
}

func TestGet(t *testing.T) {
	bs := setupStore(t)

	rdr, err := bs.Get(context.Background(), "sixteentons")
	require.NoError(t, err)
	b, err := io.ReadAll(rdr)
	require.NoError(t, err)
	require.NoError(t, rdr.Close())
	assert.Equal(t, "this is the text", string(b))

	_, err = bs.Get(context.Background(), "fifteentons")
	assert.True(t, errors.Is(err, status.ErrBlobNotFound))
}

func TestKeys(t *testing.T) {
	bs := setupStore(t)

	keys, err := bs.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"sixteentons", "values/seventeentons"}, keys)
}

func TestDelete(t *testing.T) {
	bs := setupStore(t)

	require.NoError(t, bs.Delete(context.Background(), "values/seventeentons"))
	require.NoError(t, bs.Delete(context.Background(), "missing"))
	k, _ := bs.Keys(context.Background())
	assert.Len(t, k, 1)
}

func TestClear(t *testing.T) {
	bs := setupStore(t)

	require.NoError(t, bs.Clear(context.Background()))
	k, _ := bs.Keys(context.Background())
	require.Empty(t, k)
}

func TestPut(t *testing.T) {
	bs := setupStore(t)

	err := bs.Put(context.Background(), "eighteentons", bytes.NewBufferString("here we go once again"), storage.NoOverWrite)
	require.NoError(t, err)

	b, err := storage.ReadAll(context.Background(), bs, "eighteentons", 0)
	require.NoError(t, err)
	assert.Equal(t, "here we go once again", string(b))

	err = bs.Put(context.Background(), "eighteentons", bytes.NewBufferString("again"), storage.NoOverWrite)
	assert.True(t, errors.Is(err, status.ErrBlobExists))

	require.NoError(t, bs.Put(context.Background(), "eighteentons", bytes.NewBufferString("again"), storage.OverWrite))
	b, err = storage.ReadAll(context.Background(), bs, "eighteentons", 0)
	require.NoError(t, err)
	assert.Equal(t, "again", string(b))

	_, err = storage.ReadAll(context.Background(), bs, "sixteentons", 4)
	assert.True(t, errors.Is(err, status.ErrBlobTooLarge))

	k, _ := bs.Keys(context.Background())
	assert.Len(t, k, 3)
}

func TestAtomicPut(t *testing.T) {
	fs := afero.NewMemMapFs()
	bs, err := NewAtomic(fs)
	require.NoError(t, err)
	ctx := context.Background()

	var wg errgroup.Group
	for i := 0; i < 10; i++ {
		i := i
		wg.Go(func() error {
			return bs.Put(ctx, "objects/"+strconv.Itoa(i%3), bytes.NewBufferString("same content"), storage.OverWrite)
		})
	}
	require.NoError(t, wg.Wait())

	keys, err := bs.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"objects/0", "objects/1", "objects/2"}, keys)

	_, err = bs.Has(ctx, stagingDir+"/x")
	assert.True(t, errors.Is(err, status.ErrInvalidPath))

	err = bs.Put(ctx, "objects/0", bytes.NewBufferString("other"), storage.NoOverWrite)
	assert.True(t, errors.Is(err, status.ErrBlobExists))

	require.NoError(t, bs.Clear(ctx))
	keys, err = bs.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Equal(t, "localfs-atomic", bs.String())
}

func setupStore(t testing.TB) storage.Store {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "sixteentons", []byte("this is the text"), 0600))
	require.NoError(t, afero.WriteFile(fs, "values/seventeentons", []byte("this is the text for another thing"), 0600))

	return New(fs)
}
