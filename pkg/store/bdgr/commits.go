package bdgr

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/oneconcern/datagit/pkg/errors"
	"github.com/oneconcern/datagit/pkg/model"
	"github.com/oneconcern/datagit/pkg/store"
	"github.com/oneconcern/datagit/pkg/store/status"
	"github.com/oneconcern/datagit/pkg/value"
)

// sorted keys make the encoding of a record, hence its oid, deterministic
var recordCodec = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
}.Froze()

// commitRecord is the persisted form of a commit
type commitRecord struct {
	ValueRef   store.BlobRef     `json:"value"`
	Parents    []model.Oid       `json:"parents"`
	Author     model.Contributor `json:"author"`
	Committer  model.Contributor `json:"committer"`
	Message    string            `json:"message"`
	Timestamp  time.Time         `json:"timestamp"`
	Generation uint64            `json:"generation"`
}

func mapCommitError(oid model.Oid, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, badger.ErrKeyNotFound) {
		return status.ErrCommitNotFound.Wrapf("%s", oid)
	}
	return err
}

func mapTxnError(key string, err error) error {
	if errors.Is(err, badger.ErrConflict) {
		return status.ErrConcurrentModification.Wrapf("key %q", key)
	}
	return err
}

func readRecord(txn *badger.Txn, oid model.Oid) (commitRecord, error) {
	var rec commitRecord
	item, err := txn.Get(commitKey(oid))
	if err != nil {
		return rec, mapCommitError(oid, err)
	}
	err = item.Value(func(val []byte) error {
		return recordCodec.Unmarshal(val, &rec)
	})
	if err != nil {
		return rec, status.ErrCorruptedStore.Wrap(err)
	}
	return rec, nil
}

func readHead(txn *badger.Txn, key string) (model.Oid, bool, error) {
	var oid model.Oid
	item, err := txn.Get(refKey(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return oid, false, nil
		}
		return oid, false, err
	}
	err = item.Value(func(val []byte) error {
		if len(val) != model.OidSize {
			return status.ErrCorruptedStore.Wrapf("reference of %q has %d bytes", key, len(val))
		}
		copy(oid[:], val)
		return nil
	})
	return oid, err == nil, err
}

// checkExpected verifies the compare-and-set precondition on a key reference
func checkExpected(key string, head model.Oid, exists bool, expect *model.Oid) error {
	if expect == nil {
		return nil
	}
	if expect.IsZero() {
		if exists {
			return status.ErrConcurrentModification.Wrapf("key %q was expected to have no history, head is %s", key, head.Short())
		}
		return nil
	}
	if !exists {
		return status.ErrConcurrentModification.Wrapf("key %q was expected at %s, but has no history", key, expect.Short())
	}
	if head != *expect {
		return status.ErrConcurrentModification.Wrapf("key %q was expected at %s, head is %s", key, expect.Short(), head.Short())
	}
	return nil
}

// CreateCommit stores a new commit and moves the head of the key to it.
//
// The value is written first, then the commit and the reference are updated in
// a single transaction which fails with status.ErrConcurrentModification when
// the expected head does not match, or when a concurrent transaction moved the key.
func (s *Store) CreateCommit(ctx context.Context, key string, req store.CommitRequest) (*model.Commit, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if err := model.ValidateKey(key); err != nil {
		return nil, err
	}

	ref, err := s.WriteValue(ctx, req.Value)
	if err != nil {
		return nil, err
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = s.now()
	} else {
		ts = ts.UTC().Round(0)
	}

	rec := commitRecord{
		ValueRef:  ref,
		Parents:   append([]model.Oid(nil), req.Parents...),
		Author:    req.Author,
		Committer: req.Committer,
		Message:   req.Message,
		Timestamp: ts,
	}

	var oid model.Oid
	err = s.db.Update(func(txn *badger.Txn) error {
		head, exists, erh := readHead(txn, key)
		if erh != nil {
			return erh
		}
		if erc := checkExpected(key, head, exists, req.Expect); erc != nil {
			return erc
		}
		if !exists {
			if ero := checkOverlap(txn, key); ero != nil {
				return ero
			}
		}

		rec.Generation = 1
		for _, p := range rec.Parents {
			parent, erp := readRecord(txn, p)
			if erp != nil {
				return erp
			}
			if parent.Generation+1 > rec.Generation {
				rec.Generation = parent.Generation + 1
			}
		}

		data, erm := recordCodec.Marshal(rec)
		if erm != nil {
			return erm
		}
		oid = model.NewOid(data)

		if ers := txn.Set(commitKey(oid), data); ers != nil {
			return ers
		}
		return txn.Set(refKey(key), oid[:])
	})
	if err != nil {
		return nil, mapTxnError(key, err)
	}

	s.l.Debug("commit created",
		zap.String("key", key),
		zap.String("oid", oid.String()),
		zap.Int("parents", len(rec.Parents)),
	)
	return s.toCommit(oid, rec, req.Value), nil
}

// HeadOid returns the oid of the head commit of a key, if any
func (s *Store) HeadOid(ctx context.Context, key string) (model.Oid, bool, error) {
	if err := s.check(ctx); err != nil {
		return model.Oid{}, false, err
	}
	var (
		oid    model.Oid
		exists bool
	)
	err := s.db.View(func(txn *badger.Txn) error {
		var erh error
		oid, exists, erh = readHead(txn, key)
		return erh
	})
	return oid, exists, err
}

// ReadCommit fetches a commit and its value
func (s *Store) ReadCommit(ctx context.Context, oid model.Oid) (*model.Commit, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	var rec commitRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = readRecord(txn, oid)
		return err
	})
	if err != nil {
		return nil, err
	}

	v, err := s.ReadValue(ctx, rec.ValueRef)
	if err != nil {
		return nil, err
	}
	return s.toCommit(oid, rec, v), nil
}

// Parents of a commit
func (s *Store) Parents(ctx context.Context, oid model.Oid) ([]model.Oid, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	var rec commitRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = readRecord(txn, oid)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec.Parents, nil
}

func (s *Store) toCommit(oid model.Oid, rec commitRecord, v value.Value) *model.Commit {
	return &model.Commit{
		Oid:        oid,
		Value:      v,
		ValueRef:   string(rec.ValueRef),
		Parents:    rec.Parents,
		Author:     rec.Author,
		Committer:  rec.Committer,
		Message:    rec.Message,
		Timestamp:  rec.Timestamp,
		Generation: rec.Generation,
		Store:      s.id,
	}
}
