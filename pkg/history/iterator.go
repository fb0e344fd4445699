package history

import (
	"github.com/oneconcern/datagit/pkg/model"
)

// Iterator lazily yields commits.
//
//	it := walker.Log(ctx, head, model.Topological)
//	defer it.Close()
//	for it.Next() {
//		c := it.Commit()
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
//
// Stopping early never computes the rest of the walk.
type Iterator struct {
	next    func() (*model.Commit, error)
	current *model.Commit
	err     error
	done    bool
}

func newIterator(next func() (*model.Commit, error)) *Iterator {
	return &Iterator{next: next}
}

// Next advances to the next commit, and tells if there is one
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	c, err := it.next()
	if err != nil || c == nil {
		it.err = err
		it.Close()
		return false
	}
	it.current = c
	return true
}

// Commit is the current commit
func (it *Iterator) Commit() *model.Commit {
	return it.current
}

// Err is the error which interrupted the walk, if any
func (it *Iterator) Err() error {
	return it.err
}

// Close stops the walk
func (it *Iterator) Close() {
	it.done = true
	it.current = nil
	it.next = nil
}

// Collect drains an iterator, up to limit commits (0 means no limit)
func Collect(it *Iterator, limit int) ([]*model.Commit, error) {
	defer it.Close()

	var commits []*model.Commit
	for (limit <= 0 || len(commits) < limit) && it.Next() {
		commits = append(commits, it.Commit())
	}
	return commits, it.Err()
}
