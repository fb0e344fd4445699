package model

import (
	"strings"

	"github.com/oneconcern/datagit/pkg/errors"
)

// KeySeparator separates the levels of a hierarchical key
const KeySeparator = "/"

// ErrInvalidKey is returned for malformed keys, or keys overlapping an existing key
var ErrInvalidKey = errors.New("invalid key")

// ValidateKey checks the syntax of a key
func ValidateKey(key string) error {
	switch {
	case key == "":
		return ErrInvalidKey.Wrapf("key cannot be empty")
	case strings.HasPrefix(key, ".") || strings.HasPrefix(key, "/"):
		return ErrInvalidKey.Wrapf("key %q cannot start with a separator", key)
	case strings.HasSuffix(key, ".") || strings.HasSuffix(key, "/"):
		return ErrInvalidKey.Wrapf("key %q cannot end with a separator", key)
	case strings.Contains(key, "//"):
		return ErrInvalidKey.Wrapf("key %q cannot have empty levels", key)
	case strings.Contains(key, ".."):
		return ErrInvalidKey.Wrapf("key %q cannot contain %q", key, "..")
	case strings.ContainsRune(key, 0):
		return ErrInvalidKey.Wrapf("key %q cannot contain NUL", key)
	}
	return nil
}

// KeysOverlap tells if one key is a path prefix of the other, which cannot
// coexist in the hierarchical reference namespace.
func KeysOverlap(a, b string) bool {
	if a == b {
		return false
	}
	return strings.HasPrefix(a, b+KeySeparator) || strings.HasPrefix(b, a+KeySeparator)
}

// ValidateNewKey checks the syntax of a key and that it does not overlap any existing key
func ValidateNewKey(key string, existing []string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	for _, other := range existing {
		if KeysOverlap(key, other) {
			return ErrInvalidKey.Wrapf("key %q overlaps existing key %q", key, other)
		}
	}
	return nil
}
