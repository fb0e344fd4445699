package model

import (
	"encoding/hex"

	blake2b "github.com/minio/blake2b-simd"

	"github.com/oneconcern/datagit/pkg/errors"
)

const (
	// OidSize is the size of a commit or value digest
	OidSize = 32

	// ShortOidSize is the length of the abbreviated hex form of an oid
	ShortOidSize = 10
)

// ErrInvalidOid is returned when parsing a malformed oid
var ErrInvalidOid = errors.New("invalid oid")

// Oid is a blake2b-256 content digest
type Oid [OidSize]byte

// ZeroOid is the empty oid. As an expected head, it means "no history yet".
var ZeroOid Oid

// NewOid computes the oid of some content
func NewOid(data []byte) Oid {
	return Oid(blake2b.Sum256(data))
}

// ParseOid reads the hex representation of an oid
func ParseOid(s string) (Oid, error) {
	var o Oid
	if len(s) != 2*OidSize {
		return o, ErrInvalidOid.Wrapf("expected %d hex characters, got %d", 2*OidSize, len(s))
	}
	if _, err := hex.Decode(o[:], UnsafeStringToBytes(s)); err != nil {
		return o, ErrInvalidOid.Wrap(err)
	}
	return o, nil
}

// MustParseOid parses an oid or panics
func MustParseOid(s string) Oid {
	o, err := ParseOid(s)
	if err != nil {
		panic(err.Error())
	}
	return o
}

func (o Oid) String() string {
	return hex.EncodeToString(o[:])
}

// Short is the abbreviated hex form of an oid
func (o Oid) Short() string {
	return o.String()[:ShortOidSize]
}

// IsZero tells if this is the empty oid
func (o Oid) IsZero() bool {
	return o == ZeroOid
}

// MarshalText renders an oid as hex
func (o Oid) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses an hex oid
func (o *Oid) UnmarshalText(text []byte) error {
	parsed, err := ParseOid(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
