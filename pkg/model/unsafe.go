package model

import (
	"unsafe"
)

// UnsafeStringToBytes converts strings to []byte without memcopy.
//
// The returned slice must not be modified.
func UnsafeStringToBytes(s string) []byte {
	/* #nosec */
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
