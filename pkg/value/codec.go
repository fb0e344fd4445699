// Copyright © 2018 One Concern

package value

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/oneconcern/datagit/pkg/errors"
)

var (
	// ErrNotEncodable is returned when a value cannot be serialized
	ErrNotEncodable = errors.New("value is not encodable")

	// ErrKindMismatch is returned when an edit does not apply to the kind of a value
	ErrKindMismatch = errors.New("value kind mismatch")
)

// canonical json: sorted map keys, so that equal values produce equal bytes
var canonical = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// MarshalJSON produces the canonical encoding of this value
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Encodable() {
		return nil, ErrNotEncodable.Wrapf("non-finite number in %s", v.kind)
	}
	return canonical.Marshal(v.Interface())
}

// UnmarshalJSON decodes any json document into a value
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Parse a json document into a value
func Parse(data []byte) (Value, error) {
	var raw interface{}
	if err := canonical.Unmarshal(data, &raw); err != nil {
		return Value{}, ErrNotEncodable.Wrap(err)
	}
	return FromInterface(raw)
}

// Encode a value with its canonical encoding
func Encode(v Value) ([]byte, error) {
	return v.MarshalJSON()
}

// Interface converts a value to plain go types:
// nil, bool, float64, string, []interface{} and map[string]interface{}.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindList:
		l := make([]interface{}, len(v.list))
		for i, e := range v.list {
			l[i] = e.Interface()
		}
		return l
	case KindMap:
		m := make(map[string]interface{}, len(v.m))
		for k, e := range v.m {
			m[k] = e.Interface()
		}
		return m
	default:
		return nil
	}
}

// FromInterface converts plain go values into a Value.
//
// Supported: nil, bool, all integer and float types, json.Number, string,
// Value, slices and arrays of supported values, maps keyed by strings.
// Anything else, as well as NaN or infinite numbers, is not encodable.
func FromInterface(in interface{}) (Value, error) {
	switch x := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return number(x)
	case float32:
		return number(float64(x))
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, ErrNotEncodable.Wrap(err)
		}
		return number(f)
	case []interface{}:
		l := make([]Value, len(x))
		for i, e := range x {
			ev, err := FromInterface(e)
			if err != nil {
				return Value{}, err
			}
			l[i] = ev
		}
		return Value{kind: KindList, list: l}, nil
	case map[string]interface{}:
		m := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := FromInterface(e)
			if err != nil {
				return Value{}, err
			}
			m[k] = ev
		}
		return Value{kind: KindMap, m: m}, nil
	default:
		return fromReflect(reflect.ValueOf(in))
	}
}

func number(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, ErrNotEncodable.Wrapf("%v is not a finite number", f)
	}
	return Number(f), nil
}

func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16:
		return Number(float64(rv.Int())), nil
	case reflect.Uint8, reflect.Uint16:
		return Number(float64(rv.Uint())), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null(), nil
		}
		l := make([]Value, rv.Len())
		for i := range l {
			ev, err := FromInterface(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			l[i] = ev
		}
		return Value{kind: KindList, list: l}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, ErrNotEncodable.Wrapf("map keys must be strings, got %s", rv.Type().Key())
		}
		if rv.IsNil() {
			return Null(), nil
		}
		m := make(map[string]Value, rv.Len())
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			ev, err := FromInterface(rv.MapIndex(k).Interface())
			if err != nil {
				return Value{}, err
			}
			m[k.String()] = ev
		}
		return Value{kind: KindMap, m: m}, nil
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromInterface(rv.Elem().Interface())
	case reflect.Invalid:
		return Null(), nil
	default:
		return Value{}, ErrNotEncodable.Wrapf("unsupported type %s", rv.Type())
	}
}

// MustFrom converts plain go values into a Value, or panics
func MustFrom(in interface{}) Value {
	v, err := FromInterface(in)
	if err != nil {
		panic(err)
	}
	return v
}
