package diff

import (
	"testing"

	"github.com/oneconcern/datagit/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDisjointEdits(t *testing.T) {
	base := v(obj{"roses": "red"})
	d1 := Compute(base, v(obj{"roses": "red", "violets": "blue"}))
	d2 := Compute(base, v(obj{"roses": "red", "lilacs": "purple"}))

	assert.Nil(t, Detect(d1, d2))
	assert.Nil(t, Detect(d2, d1))
}

func TestDetectUpdateUpdate(t *testing.T) {
	base := v(obj{"roses": "red"})
	d1 := Compute(base, v(obj{"roses": "pink"}))
	d2 := Compute(base, v(obj{"roses": "orange"}))

	c := Detect(d1, d2)
	require.NotNil(t, c)
	assert.Nil(t, c.Pair)
	assert.Empty(t, c.Appended)
	assert.Empty(t, c.Removed)
	require.Len(t, c.Updated, 1)

	leaf := c.Updated[Key("roses")]
	require.NotNil(t, leaf)
	require.NotNil(t, leaf.Pair)
	assert.True(t, value.Equal(v("pink"), leaf.Pair.This.Value))
	assert.True(t, value.Equal(v("orange"), leaf.Pair.Other.Value))

	assert.Equal(t, map[string]interface{}{
		"update": map[string]interface{}{
			"roses": map[string]interface{}{
				"this":  map[string]interface{}{"replace": "pink"},
				"other": map[string]interface{}{"replace": "orange"},
			},
		},
	}, c.Interface())
}

func TestDetectIdenticalEditsDoNotConflict(t *testing.T) {
	base := v(obj{"roses": "red", "list": arr{1, 2, 3}})
	target := v(obj{"roses": "pink", "violets": "blue", "list": arr{1, 2}})

	d1 := Compute(base, target)
	d2 := Compute(base, target)
	assert.Nil(t, Detect(d1, d2), "the same edit applied on both sides is not a conflict")

	assert.Nil(t, Detect(ReplaceWith(v(1)), ReplaceWith(v(1))))
	assert.NotNil(t, Detect(ReplaceWith(v(1)), ReplaceWith(v(2))))
}

func TestDetectNoChange(t *testing.T) {
	d := Compute(v(1), v(2))
	assert.Nil(t, Detect(None(), d))
	assert.Nil(t, Detect(d, None()))
}

func TestDetectUpdateVersusRemove(t *testing.T) {
	base := v(obj{"roses": "red", "violets": "blue"})
	d1 := Compute(base, v(obj{"roses": "pink", "violets": "blue"}))
	d2 := Compute(base, v(obj{"violets": "blue"}))

	c := Detect(d1, d2)
	require.NotNil(t, c)

	updated := c.Updated[Key("roses")]
	require.NotNil(t, updated)
	require.NotNil(t, updated.Pair)
	assert.False(t, updated.Pair.This.Absent)
	assert.True(t, updated.Pair.Other.Absent)

	removed := c.Removed[Key("roses")]
	require.NotNil(t, removed)
	assert.True(t, removed.This.Absent)
	assert.False(t, removed.Other.Absent)
	assert.True(t, value.Equal(v("red"), removed.Other.Value))

	leaves := c.Leaves()
	require.Len(t, leaves, 2)
	assert.Equal(t, OpUpdate, leaves[0].Op)
	assert.Equal(t, OpRemove, leaves[1].Op)
	assert.Equal(t, []Step{Key("roses")}, leaves[0].Path)
}

func TestDetectListAppends(t *testing.T) {
	base := v(arr{"foo"})
	d1 := Compute(base, v(arr{"foo", "bar"}))
	d2 := Compute(base, v(arr{"foo", "baz"}))

	c := Detect(d1, d2)
	require.NotNil(t, c)
	require.Contains(t, c.Appended, Index(1))
	assert.True(t, value.Equal(v("bar"), c.Appended[Index(1)].This.Value))
}

func TestDetectNested(t *testing.T) {
	base := v(obj{"nested": obj{"a": 1, "b": 1}})
	d1 := Compute(base, v(obj{"nested": obj{"a": 2, "b": 1}}))
	d2 := Compute(base, v(obj{"nested": obj{"a": 1, "b": 2}}))
	assert.Nil(t, Detect(d1, d2))

	d3 := Compute(base, v(obj{"nested": obj{"a": 3, "b": 1}}))
	c := Detect(d1, d3)
	require.NotNil(t, c)
	leaves := c.Leaves()
	require.Len(t, leaves, 1)
	assert.Equal(t, []Step{Key("nested"), Key("a")}, leaves[0].Path)
}

func TestDetectContainerMismatch(t *testing.T) {
	base := v(obj{"k": arr{1}})
	d1 := Compute(base, v(obj{"k": arr{1, 2}}))
	d2 := Compute(base, v(obj{"k": obj{"x": 1}}))

	c := Detect(d1, d2)
	require.NotNil(t, c)
	leaf := c.Updated[Key("k")]
	require.NotNil(t, leaf.Pair)
	assert.Equal(t, OpUpdate, leaf.Pair.This.Op)
	assert.Equal(t, OpReplace, leaf.Pair.Other.Op)
}

func TestDetectSymmetry(t *testing.T) {
	all := fixtures()
	for _, base := range all {
		for _, x := range all {
			for _, y := range all {
				dx, dy := Compute(base, x), Compute(base, y)
				c1, c2 := Detect(dx, dy), Detect(dy, dx)
				require.Equalf(t, c1 == nil, c2 == nil, "base %s, x %s, y %s", base, x, y)
				if c1 == nil {
					continue
				}

				l1, l2 := c1.Leaves(), c2.Leaves()
				require.Len(t, l2, len(l1))
				for i := range l1 {
					assert.Equal(t, l1[i].Path, l2[i].Path)
					assert.Equal(t, l1[i].Pair.This, l2[i].Pair.Other)
					assert.Equal(t, l1[i].Pair.Other, l2[i].Pair.This)
				}
			}
		}
	}
}

func TestFoldDisjointEditsCommutes(t *testing.T) {
	base := v(obj{"roses": "red", "list": arr{1, 2}})
	x := v(obj{"roses": "red", "violets": "blue", "list": arr{1, 2}})
	y := v(obj{"roses": "red", "list": arr{1, 5, 7}})

	dx, dy := Compute(base, x), Compute(base, y)
	require.Nil(t, Detect(dx, dy))

	xy, yx := fold(t, base, dx, dy), fold(t, base, dy, dx)
	assert.True(t, value.Equal(xy, yx))
	assert.Equal(t, `{"list":[1,5,7],"roses":"red","violets":"blue"}`, xy.String())
}
