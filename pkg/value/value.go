// Copyright © 2018 One Concern

// Package value defines the structured values stored under datagit keys.
//
// A Value is an immutable tagged union of null, boolean, number, string,
// list and map. Constructors copy their inputs and accessors return copies,
// so a Value may be shared freely once built.
package value

import (
	"math"
	"sort"
	"strconv"

	"github.com/samber/lo"
)

// Kind is the tag of a Value
type Kind uint8

const (
	// KindNull is the kind of the null value (also the zero Value)
	KindNull Kind = iota
	// KindBool is the kind of booleans
	KindBool
	// KindNumber is the kind of numbers
	KindNumber
	// KindString is the kind of strings
	KindString
	// KindList is the kind of ordered lists
	KindList
	// KindMap is the kind of string-keyed maps
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// IsContainer tells if this kind holds nested values
func (k Kind) IsContainer() bool {
	return k == KindList || k == KindMap
}

// Value is a structured value. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	list []Value
	m    map[string]Value
}

// Null value
func Null() Value { return Value{} }

// Bool value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number value
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int builds a number from an integer
func Int(n int) Value { return Number(float64(n)) }

// String value
func String(s string) Value { return Value{kind: KindString, s: s} }

// List builds a list, copying the items
func List(items ...Value) Value {
	l := make([]Value, len(items))
	copy(l, items)
	return Value{kind: KindList, list: l}
}

// Map builds a map, copying the entries
func Map(entries map[string]Value) Value {
	m := make(map[string]Value, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return Value{kind: KindMap, m: m}
}

// Kind of this value
func (v Value) Kind() Kind { return v.kind }

// IsNull tells if this value is null
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held, and whether the value is a boolean
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number held, and whether the value is a number
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string held, and whether the value is a string
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Len is the number of items in a list or entries in a map, 0 otherwise
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	default:
		return 0
	}
}

// Index returns the i-th item of a list
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Value{}, false
	}
	return v.list[i], true
}

// Get returns the entry of a map
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	e, ok := v.m[key]
	return e, ok
}

// Items returns a copy of the items of a list
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	l := make([]Value, len(v.list))
	copy(l, v.list)
	return l
}

// Entries returns a copy of the entries of a map
func (v Value) Entries() map[string]Value {
	if v.kind != KindMap {
		return nil
	}
	m := make(map[string]Value, len(v.m))
	for k, e := range v.m {
		m[k] = e
	}
	return m
}

// Keys returns the sorted keys of a map
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := lo.Keys(v.m)
	sort.Strings(keys)
	return keys
}

// Encodable tells if the value can be serialized: numbers must be finite.
func (v Value) Encodable() bool {
	switch v.kind {
	case KindNumber:
		return !math.IsNaN(v.n) && !math.IsInf(v.n, 0)
	case KindList:
		return lo.EveryBy(v.list, Value.Encodable)
	case KindMap:
		for _, e := range v.m {
			if !e.Encodable() {
				return false
			}
		}
	}
	return true
}

// Equal reports deep structural equality
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.m) != len(b.m) {
			return false
		}
		for k, av := range a.m {
			bv, ok := b.m[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Equal reports deep structural equality with another value
func (v Value) Equal(other Value) bool {
	return Equal(v, other)
}

func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<" + v.kind.String() + ": " + err.Error() + ">"
	}
	return string(b)
}
