// Copyright © 2018 One Concern

package value

import (
	"math"
	"testing"

	"github.com/oneconcern/datagit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	a := MustFrom(map[string]interface{}{
		"roses": "red",
		"list":  []interface{}{1, 2.5, true, nil},
	})
	b := MustFrom(map[string]interface{}{
		"list":  []interface{}{1.0, 2.5, true, nil},
		"roses": "red",
	})

	assert.True(t, Equal(a, b))
	assert.True(t, a.Equal(b))
	assert.False(t, Equal(a, Map(nil)))
	assert.False(t, Equal(List(), Map(nil)), "empty containers of different kinds differ")
	assert.True(t, Equal(List(), List()))
	assert.True(t, Equal(Null(), Value{}))
	assert.False(t, Equal(Int(1), String("1")))
}

func TestImmutable(t *testing.T) {
	items := []Value{String("foo")}
	l := List(items...)
	items[0] = String("bar")

	first, ok := l.Index(0)
	require.True(t, ok)
	assert.Equal(t, "foo", first.String()[1:4])

	got := l.Items()
	got[0] = String("baz")
	first, _ = l.Index(0)
	s, _ := first.AsString()
	assert.Equal(t, "foo", s)

	m := Map(map[string]Value{"a": Int(1)})
	entries := m.Entries()
	entries["b"] = Int(2)
	assert.Equal(t, 1, m.Len())
}

func TestCanonicalJSON(t *testing.T) {
	v := MustFrom(map[string]interface{}{
		"zeta":  1,
		"alpha": []string{"x", "y"},
		"mid":   map[string]bool{"ok": true},
	})

	b, err := Encode(v)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":["x","y"],"mid":{"ok":true},"zeta":1}`, string(b))

	back, err := Parse(b)
	require.NoError(t, err)
	assert.True(t, Equal(v, back))

	var w Value
	require.NoError(t, w.UnmarshalJSON([]byte(`[null, 1.5, "s"]`)))
	assert.Equal(t, KindList, w.Kind())
	assert.Equal(t, 3, w.Len())
}

func TestNotEncodable(t *testing.T) {
	_, err := FromInterface(math.NaN())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEncodable))

	_, err = FromInterface(map[int]string{1: "x"})
	assert.True(t, errors.Is(err, ErrNotEncodable))

	_, err = FromInterface(struct{}{})
	assert.True(t, errors.Is(err, ErrNotEncodable))

	inf := List(Number(math.Inf(1)))
	assert.False(t, inf.Encodable())
	_, err = inf.MarshalJSON()
	assert.True(t, errors.Is(err, ErrNotEncodable))

	_, err = Parse([]byte(`{"broken":`))
	assert.True(t, errors.Is(err, ErrNotEncodable))
}

func TestEdits(t *testing.T) {
	m := Map(map[string]Value{"roses": String("red")})

	m2, err := m.With("violets", String("blue"))
	require.NoError(t, err)
	assert.Equal(t, []string{"roses", "violets"}, m2.Keys())
	assert.Equal(t, 1, m.Len())

	m3, err := m2.Without("roses")
	require.NoError(t, err)
	assert.Equal(t, []string{"violets"}, m3.Keys())

	m4, err := m3.Without("missing")
	require.NoError(t, err)
	assert.True(t, Equal(m3, m4))

	_, err = m.Append(Int(1))
	assert.True(t, errors.Is(err, ErrKindMismatch))

	l := List(String("foo"))
	l, err = l.Append(String("bar"), String("baz"))
	require.NoError(t, err)
	assert.Equal(t, `["foo","bar","baz"]`, l.String())

	l, err = l.RemoveIndex(1)
	require.NoError(t, err)
	assert.Equal(t, `["foo","baz"]`, l.String())

	l, err = l.InsertIndex(10, Int(3))
	require.NoError(t, err)
	assert.Equal(t, `["foo","baz",3]`, l.String())

	l, err = l.SetIndex(0, Null())
	require.NoError(t, err)
	assert.Equal(t, `[null,"baz",3]`, l.String())

	_, err = l.SetIndex(3, Null())
	assert.True(t, errors.Is(err, ErrKindMismatch))
}
