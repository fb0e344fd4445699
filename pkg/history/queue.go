package history

import (
	"bytes"
	"container/heap"

	"github.com/oneconcern/datagit/pkg/model"
)

// commitQueue is a max-heap of commits
type commitQueue struct {
	commits []*model.Commit
	before  func(a, b *model.Commit) bool
}

func newQueue(order model.LogOrder) *commitQueue {
	q := &commitQueue{before: byGeneration}
	if order == model.Time {
		q.before = byTime
	}
	return q
}

// byGeneration puts children before their parents
func byGeneration(a, b *model.Commit) bool {
	if a.Generation != b.Generation {
		return a.Generation > b.Generation
	}
	return byTime(a, b)
}

// byTime puts the most recent commits first
func byTime(a, b *model.Commit) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	if a.Generation != b.Generation {
		return a.Generation > b.Generation
	}
	return bytes.Compare(a.Oid[:], b.Oid[:]) > 0
}

func (q *commitQueue) Len() int           { return len(q.commits) }
func (q *commitQueue) Less(i, j int) bool { return q.before(q.commits[i], q.commits[j]) }
func (q *commitQueue) Swap(i, j int)      { q.commits[i], q.commits[j] = q.commits[j], q.commits[i] }

func (q *commitQueue) Push(x interface{}) {
	q.commits = append(q.commits, x.(*model.Commit))
}

func (q *commitQueue) Pop() interface{} {
	n := len(q.commits)
	c := q.commits[n-1]
	q.commits[n-1] = nil
	q.commits = q.commits[:n-1]
	return c
}

func (q *commitQueue) push(c *model.Commit) { heap.Push(q, c) }
func (q *commitQueue) pop() *model.Commit  { return heap.Pop(q).(*model.Commit) }
