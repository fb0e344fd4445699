package bdgr

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/oneconcern/datagit/pkg/errors"
	"github.com/oneconcern/datagit/pkg/model"
	"github.com/oneconcern/datagit/pkg/store/status"
)

// checkOverlap refuses a new key when it is a path prefix of an existing key, or the reverse
func checkOverlap(txn *badger.Txn, key string) error {
	var candidates []string
	for i := range key {
		if key[i] != model.KeySeparator[0] {
			continue
		}
		parent := key[:i]
		_, err := txn.Get(refKey(parent))
		switch {
		case err == nil:
			candidates = append(candidates, parent)
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
	}

	prefix := refKey(key + model.KeySeparator)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	it.Seek(prefix)
	if it.ValidForPrefix(prefix) {
		candidates = append(candidates, keyFromRef(it.Item().KeyCopy(nil)))
	}
	return model.ValidateNewKey(key, candidates)
}

// SetReference moves the head of a key to an existing commit, guarded by an expected head
func (s *Store) SetReference(ctx context.Context, key string, oid model.Oid, expect *model.Oid) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if err := model.ValidateKey(key); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := readRecord(txn, oid); err != nil {
			return err
		}
		head, exists, err := readHead(txn, key)
		if err != nil {
			return err
		}
		if err = checkExpected(key, head, exists, expect); err != nil {
			return err
		}
		if !exists {
			if err = checkOverlap(txn, key); err != nil {
				return err
			}
		}
		return txn.Set(refKey(key), oid[:])
	})
	if err != nil {
		return mapTxnError(key, err)
	}

	s.l.Debug("reference set", zap.String("key", key), zap.String("oid", oid.String()))
	return nil
}

// DeleteReference removes a key. Its commits remain reachable from other keys.
func (s *Store) DeleteReference(ctx context.Context, key string) error {
	if err := s.check(ctx); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(refKey(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return status.ErrKeyNotFound.Wrapf("%q", key)
			}
			return err
		}
		return txn.Delete(refKey(key))
	})
	if err != nil {
		return mapTxnError(key, err)
	}

	s.l.Debug("reference deleted", zap.String("key", key))
	return nil
}

// Keys lists all keys with a history, sorted
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := refPref[:]
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, keyFromRef(it.Item().Key()))
		}
		return nil
	})
	return keys, err
}
