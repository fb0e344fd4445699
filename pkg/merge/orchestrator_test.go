package merge

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/oneconcern/datagit/pkg/diff"
	"github.com/oneconcern/datagit/pkg/errors"
	"github.com/oneconcern/datagit/pkg/metrics"
	"github.com/oneconcern/datagit/pkg/model"
	"github.com/oneconcern/datagit/pkg/storage/localfs"
	"github.com/oneconcern/datagit/pkg/store"
	"github.com/oneconcern/datagit/pkg/store/bdgr"
	"github.com/oneconcern/datagit/pkg/store/status"
	"github.com/oneconcern/datagit/pkg/value"
)

var (
	jane = model.NewContributor("jane", "jane@example.com")
	john = model.NewContributor("john", "john@example.com")
)

type fixture struct {
	t       testing.TB
	ctx     context.Context
	store   *bdgr.Store
	metrics *metrics.Metrics
	o       *Orchestrator
}

func newFixture(t testing.TB) *fixture {
	t.Helper()

	s, err := bdgr.Open("", bdgr.InMemory(true), bdgr.WithBlobs(localfs.New(afero.NewMemMapFs())))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	m := metrics.MustNew(prometheus.NewRegistry())
	return &fixture{
		t:       t,
		ctx:     context.Background(),
		store:   s,
		metrics: m,
		o:       New(s, WithLogger(zaptest.NewLogger(t)), WithMetrics(m)),
	}
}

func (f *fixture) commit(key string, v interface{}, parents ...*model.Commit) *model.Commit {
	f.t.Helper()

	req := store.CommitRequest{Value: value.MustFrom(v), Author: jane, Committer: jane}
	for _, p := range parents {
		req.Parents = append(req.Parents, p.Oid)
	}
	c, err := f.store.CreateCommit(f.ctx, key, req)
	require.NoError(f.t, err)
	return c
}

func (f *fixture) fork(key string, from *model.Commit) {
	f.t.Helper()
	require.NoError(f.t, f.store.SetReference(f.ctx, key, from.Oid, &model.ZeroOid))
}

func (f *fixture) head(key string) *model.Commit {
	f.t.Helper()
	oid, ok, err := f.store.HeadOid(f.ctx, key)
	require.NoError(f.t, err)
	require.True(f.t, ok)
	c, err := f.store.ReadCommit(f.ctx, oid)
	require.NoError(f.t, err)
	return c
}

type obj = map[string]interface{}
type arr = []interface{}

func TestSameCommit(t *testing.T) {
	f := newFixture(t)
	c := f.commit("roses", obj{"roses": "red"})

	out, err := f.o.Merge(f.ctx, "roses", c, c, Request{Author: jane})
	require.NoError(t, err)
	assert.Equal(t, SameCommit, out.Status)
	assert.Equal(t, c.Oid, out.Commit.Oid)
	assert.Equal(t, c.Oid, f.head("roses").Oid)
}

func TestFastForward(t *testing.T) {
	f := newFixture(t)
	root := f.commit("source", obj{"roses": "red"})
	f.fork("dest", root)
	next := f.commit("source", obj{"roses": "red", "violets": "blue"}, root)
	last := f.commit("source", obj{"roses": "pink", "violets": "blue"}, next)

	out, err := f.o.Merge(f.ctx, "dest", last, root, Request{Author: jane})
	require.NoError(t, err)
	assert.Equal(t, FastForward, out.Status)
	assert.True(t, out.Status.Merged())

	head := f.head("dest")
	assert.Equal(t, last.Oid, head.Oid, "no new commit on fast-forward")
	assert.True(t, value.Equal(last.Value, head.Value))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Merges.WithLabelValues("FastForward")))
}

func TestAutoMerge(t *testing.T) {
	f := newFixture(t)
	root := f.commit("violets", obj{"roses": "red"})
	f.fork("lilacs", root)

	violets := f.commit("violets", obj{"roses": "red", "violets": "blue"}, root)
	lilacs := f.commit("lilacs", obj{"roses": "red", "lilacs": "purple"}, root)

	out, err := f.o.Merge(f.ctx, "lilacs", violets, lilacs, Request{Author: jane, Committer: john})
	require.NoError(t, err)
	require.Equal(t, AutoMerged, out.Status)
	require.NotNil(t, out.Commit)
	require.NotNil(t, out.Shared)
	assert.Equal(t, root.Oid, out.Shared.Oid)

	assert.Equal(t, `{"lilacs":"purple","roses":"red","violets":"blue"}`, out.Commit.Value.String())
	assert.Equal(t, []model.Oid{violets.Oid, lilacs.Oid}, out.Commit.Parents)
	assert.Equal(t, jane, out.Commit.Author)
	assert.Equal(t, john, out.Commit.Committer)
	assert.Equal(t, MessageFor(violets.Oid, lilacs.Oid, root.Oid), out.Commit.Message)
	assert.Contains(t, out.Commit.Message, root.Oid.Short())

	head := f.head("lilacs")
	assert.Equal(t, out.Commit.Oid, head.Oid)
	assert.Equal(t, violets.Oid, f.head("violets").Oid, "the source is left untouched")
}

func TestAutoMergeCommutes(t *testing.T) {
	f := newFixture(t)
	root := f.commit("a", obj{"roses": "red", "list": []interface{}{1, 2}})
	f.fork("b", root)
	a := f.commit("a", obj{"roses": "red", "list": []interface{}{1, 2, 3}, "violets": "blue"}, root)
	b := f.commit("b", obj{"roses": "pink", "list": []interface{}{1, 2}}, root)

	f.fork("a2", a)
	f.fork("b2", b)

	ab, err := f.o.Merge(f.ctx, "b2", a, b, Request{Author: jane})
	require.NoError(t, err)
	ba, err := f.o.Merge(f.ctx, "a2", b, a, Request{Author: jane})
	require.NoError(t, err)

	require.Equal(t, AutoMerged, ab.Status)
	require.Equal(t, AutoMerged, ba.Status)
	assert.True(t, value.Equal(ab.Commit.Value, ba.Commit.Value))
	assert.NotEqual(t, ab.Commit.Oid, ba.Commit.Oid)
}

func TestConflict(t *testing.T) {
	f := newFixture(t)
	root := f.commit("pink", obj{"roses": "red"})
	f.fork("orange", root)

	pink := f.commit("pink", obj{"roses": "pink"}, root)
	orange := f.commit("orange", obj{"roses": "orange"}, root)

	out, err := f.o.Merge(f.ctx, "orange", pink, orange, Request{Author: jane})
	require.NoError(t, err)
	require.Equal(t, ConflictDetected, out.Status)
	assert.False(t, out.Status.Merged())
	assert.Nil(t, out.Commit)
	require.NotNil(t, out.Conflict)

	leaf := out.Conflict.Updated[diff.Key("roses")]
	require.NotNil(t, leaf)
	require.NotNil(t, leaf.Pair)
	assert.True(t, value.Equal(value.String("pink"), leaf.Pair.This.Value))
	assert.True(t, value.Equal(value.String("orange"), leaf.Pair.Other.Value))

	assert.Equal(t, orange.Oid, f.head("orange").Oid, "no commit on conflict")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Conflicts))
}

func TestIdenticalEditsMerge(t *testing.T) {
	f := newFixture(t)
	root := f.commit("a", obj{"roses": "red", "tulips": "yellow"})
	f.fork("b", root)

	a := f.commit("a", obj{"roses": "pink", "violets": "blue"}, root)
	b := f.commit("b", obj{"roses": "pink", "violets": "blue", "lilacs": "purple"}, root)

	out, err := f.o.Merge(f.ctx, "b", a, b, Request{Author: jane})
	require.NoError(t, err)
	require.Equal(t, AutoMerged, out.Status, "the same edit on both sides does not conflict")
	assert.Equal(t, `{"lilacs":"purple","roses":"pink","violets":"blue"}`, out.Commit.Value.String())
}

func TestIdenticalListAppendsMerge(t *testing.T) {
	f := newFixture(t)
	root := f.commit("a", obj{"l": arr{1}})
	f.fork("b", root)

	a := f.commit("a", obj{"l": arr{1, 2}}, root)
	b := f.commit("b", obj{"l": arr{1, 2}}, root)

	out, err := f.o.Merge(f.ctx, "b", a, b, Request{Author: jane})
	require.NoError(t, err)
	require.Equal(t, AutoMerged, out.Status)
	assert.Equal(t, `{"l":[1,2]}`, out.Commit.Value.String(), "an item appended on both sides lands once")

	root = f.commit("c", arr{1})
	f.fork("d", root)
	c := f.commit("c", arr{1, 2}, root)
	d := f.commit("d", arr{1, 2, 3}, root)

	out, err = f.o.Merge(f.ctx, "d", c, d, Request{Author: jane})
	require.NoError(t, err)
	require.Equal(t, AutoMerged, out.Status)
	assert.Equal(t, `[1,2,3]`, out.Commit.Value.String())
}

func TestNoSharedAncestor(t *testing.T) {
	f := newFixture(t)
	a := f.commit("a", obj{"roses": "red"})
	b := f.commit("b", obj{"roses": "red"})

	out, err := f.o.Merge(f.ctx, "b", a, b, Request{Author: jane})
	require.NoError(t, err)
	assert.Equal(t, NoSharedAncestor, out.Status)
	assert.Nil(t, out.Commit)
	assert.Equal(t, b.Oid, f.head("b").Oid)
}

func TestMergeAfterMerge(t *testing.T) {
	f := newFixture(t)
	root := f.commit("main", obj{"n": 0})
	f.fork("topic", root)

	topic := f.commit("topic", obj{"n": 0, "topic": 1}, root)
	main := f.commit("main", obj{"n": 1}, root)
	out, err := f.o.Merge(f.ctx, "main", topic, main, Request{Author: jane})
	require.NoError(t, err)
	require.Equal(t, AutoMerged, out.Status)

	// topic moves on from its old head, main holds a merge commit: not a linear history
	topic2 := f.commit("topic", obj{"n": 0, "topic": 2}, topic)
	out, err = f.o.Merge(f.ctx, "main", topic2, out.Commit, Request{Author: jane})
	require.NoError(t, err)
	require.Equal(t, AutoMerged, out.Status)
	assert.Equal(t, topic.Oid, out.Shared.Oid)
	assert.Equal(t, `{"n":1,"topic":2}`, out.Commit.Value.String())

	// a merge commit ends the linear probe but is still yielded by it
	merged := out.Commit
	f.fork("follower", merged)
	ahead := f.commit("follower", obj{"n": 2, "topic": 2}, merged)
	out, err = f.o.Merge(f.ctx, "main", ahead, merged, Request{Author: jane})
	require.NoError(t, err)
	assert.Equal(t, FastForward, out.Status)
}

func TestConcurrentModification(t *testing.T) {
	f := newFixture(t)
	root := f.commit("a", obj{"roses": "red"})
	f.fork("b", root)
	a := f.commit("a", obj{"roses": "red", "violets": "blue"}, root)
	b := f.commit("b", obj{"roses": "red", "lilacs": "purple"}, root)

	// b moves after its head was read
	f.commit("b", obj{"roses": "red", "lilacs": "white"}, b)

	_, err := f.o.Merge(f.ctx, "b", a, b, Request{Author: jane})
	assert.True(t, errors.Is(err, status.ErrConcurrentModification))

	f.fork("c", root)
	f.commit("c", obj{"roses": "white"}, root)
	_, err = f.o.Merge(f.ctx, "c", a, root, Request{Author: jane})
	assert.True(t, errors.Is(err, status.ErrConcurrentModification), "fast-forward is guarded too")
}
