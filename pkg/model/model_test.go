package model

import (
	"testing"

	"github.com/oneconcern/datagit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOid(t *testing.T) {
	o := NewOid([]byte("roses are red"))
	assert.False(t, o.IsZero())
	assert.True(t, ZeroOid.IsZero())
	assert.Len(t, o.String(), 64)
	assert.Len(t, o.Short(), ShortOidSize)
	assert.Equal(t, o, NewOid([]byte("roses are red")))
	assert.NotEqual(t, o, NewOid([]byte("violets are blue")))

	parsed, err := ParseOid(o.String())
	require.NoError(t, err)
	assert.Equal(t, o, parsed)

	_, err = ParseOid("abc")
	assert.True(t, errors.Is(err, ErrInvalidOid))
	_, err = ParseOid(string(make([]byte, 64)))
	assert.True(t, errors.Is(err, ErrInvalidOid))

	text, err := o.MarshalText()
	require.NoError(t, err)
	var back Oid
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, o, back)
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"a", "roses", "a/b", "a.b", "flowers/roses.red", "x-y_z"} {
		assert.NoErrorf(t, ValidateKey(key), "key %q should be valid", key)
	}

	for _, key := range []string{"", ".a", "/a", "a.", "a/", "a//b", "a/../b", "a\x00b"} {
		err := ValidateKey(key)
		assert.Truef(t, errors.Is(err, ErrInvalidKey), "key %q should be invalid", key)
	}
}

func TestValidateNewKey(t *testing.T) {
	existing := []string{"flowers/roses", "trees"}

	assert.NoError(t, ValidateNewKey("flowers/violets", existing))
	assert.NoError(t, ValidateNewKey("trees", existing))
	assert.NoError(t, ValidateNewKey("treeline", existing))

	assert.True(t, errors.Is(ValidateNewKey("flowers", existing), ErrInvalidKey))
	assert.True(t, errors.Is(ValidateNewKey("trees/oak", existing), ErrInvalidKey))
	assert.True(t, errors.Is(ValidateNewKey("flowers/roses/red", existing), ErrInvalidKey))
}

func TestLogOrder(t *testing.T) {
	for _, o := range []LogOrder{Topological, Time, Reverse} {
		parsed, err := ParseLogOrder(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, parsed)
	}

	o, err := ParseLogOrder("")
	require.NoError(t, err)
	assert.Equal(t, Topological, o)

	_, err = ParseLogOrder("sideways")
	assert.True(t, errors.Is(err, ErrInvalidOrder))
}

func TestContributor(t *testing.T) {
	assert.Equal(t, "jane <jane@example.com>", NewContributor("jane", "jane@example.com").String())
	assert.Equal(t, "jane", NewContributor("jane", "").String())
	assert.Equal(t, "jane@example.com", NewContributor("", "jane@example.com").String())
	assert.True(t, Contributor{}.IsZero())
}
