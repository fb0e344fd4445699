// Package bdgr implements a store.CommitStore on badger.
//
// Commits and key references live in badger. Values are encoded
// canonically and kept as content-addressed objects in a storage.Store.
package bdgr

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/oneconcern/datagit/pkg/storage"
	"github.com/oneconcern/datagit/pkg/store"
	"github.com/oneconcern/datagit/pkg/store/status"
)

var _ store.CommitStore = &Store{}

// Store is a badger-backed commit store
type Store struct {
	settings

	db     *badger.DB
	id     string
	closed atomic.Bool
	close  sync.Once
}

// Open a commit store in a directory.
//
// Values are kept under the "values" subdirectory unless another blob store is provided.
func Open(dir string, opts ...Option) (*Store, error) {
	s := defaultSettings()
	for _, apply := range opts {
		apply(&s)
	}

	bopts := badger.DefaultOptions(commitsDir(dir)).
		WithInMemory(s.inMemory).
		WithLogger(badgerLogger{l: s.l.Sugar()})
	if s.inMemory {
		bopts = bopts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}

	if s.blobs == nil {
		blobs, erb := defaultBlobs(dir, s.inMemory)
		if erb != nil {
			return nil, multierr.Append(erb, db.Close())
		}
		s.blobs = blobs
	}

	st, err := newStore(db, s)
	if err != nil {
		return nil, multierr.Append(err, db.Close())
	}
	st.ownsDB = true
	return st, nil
}

// New commit store on an already opened badger database.
//
// The database is not closed when closing the store.
func New(db *badger.DB, opts ...Option) (*Store, error) {
	s := defaultSettings()
	for _, apply := range opts {
		apply(&s)
	}
	if s.blobs == nil {
		blobs, err := defaultBlobs("", true)
		if err != nil {
			return nil, err
		}
		s.blobs = blobs
	}
	return newStore(db, s)
}

func newStore(db *badger.DB, s settings) (*Store, error) {
	if s.instrument {
		s.blobs = storage.Instrument(s.l, s.blobs)
	}
	st := &Store{
		settings: s,
		db:       db,
	}
	id, err := st.ensureID()
	if err != nil {
		return nil, err
	}
	st.id = id
	st.l = st.l.With(zap.String("store", id))
	return st, nil
}

// ensureID reads the identity of this store, or assigns one on first use
func (s *Store) ensureID() (string, error) {
	var id string
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(storeIDKey)
		switch err {
		case nil:
			b, erv := item.ValueCopy(nil)
			if erv != nil {
				return erv
			}
			id = string(b)
			return nil
		case badger.ErrKeyNotFound:
			id = uuid.NewString()
			return txn.Set(storeIDKey, []byte(id))
		default:
			return err
		}
	})
	return id, err
}

// ID uniquely identifies this store
func (s *Store) ID() string {
	return s.id
}

func (s *Store) String() string {
	return "badger@" + s.id + "+" + s.blobs.String()
}

// Close the store. Closing twice is a no-op.
func (s *Store) Close() error {
	var err error

	s.close.Do(func() {
		s.closed.Store(true)
		if s.ownsDB {
			err = s.db.Close()
		}
	})

	return err
}

func (s *Store) check(ctx context.Context) error {
	if s.closed.Load() {
		return status.ErrStoreClosed
	}
	return ctx.Err()
}

func (s *Store) now() time.Time {
	return s.clock().UTC().Round(0)
}
