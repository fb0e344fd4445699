package diff

import (
	"github.com/oneconcern/datagit/pkg/value"
	"github.com/samber/lo"
)

// Kind of a Diff
type Kind uint8

const (
	// NoChange means both values compared equal
	NoChange Kind = iota
	// Replace substitutes the whole value
	Replace
	// Composite holds per-entry changes to a list or a map
	Composite
)

func (k Kind) String() string {
	switch k {
	case NoChange:
		return "nochange"
	case Replace:
		return "replace"
	case Composite:
		return "composite"
	default:
		return "unknown"
	}
}

// Diff is a structural patch. The zero Diff is NoChange.
type Diff struct {
	Kind Kind

	// Value is the replacement of a Replace diff
	Value value.Value

	// Container is the kind of value a Composite diff applies to (list or map)
	Container value.Kind
	Appended  map[Step]value.Value
	Updated   map[Step]Diff
	Removed   map[Step]value.Value
}

// None is the NoChange diff
func None() Diff { return Diff{} }

// ReplaceWith builds a Replace diff
func ReplaceWith(v value.Value) Diff { return Diff{Kind: Replace, Value: v} }

// NewComposite builds an empty Composite diff over a container kind
func NewComposite(container value.Kind) Diff {
	return Diff{
		Kind:      Composite,
		Container: container,
		Appended:  make(map[Step]value.Value),
		Updated:   make(map[Step]Diff),
		Removed:   make(map[Step]value.Value),
	}
}

// IsNoChange tells if this diff does nothing
func (d Diff) IsNoChange() bool {
	return d.Kind == NoChange
}

// Empty tells if a composite carries no entry
func (d Diff) Empty() bool {
	return len(d.Appended) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0
}

// Steps returns all the steps touched by a composite, sorted
func (d Diff) Steps() []Step {
	steps := lo.Uniq(append(append(lo.Keys(d.Appended), lo.Keys(d.Removed)...), lo.Keys(d.Updated)...))
	return sortSteps(steps)
}

// Equal reports whether two diffs describe the same patch
func (d Diff) Equal(other Diff) bool {
	if d.Kind != other.Kind {
		return false
	}
	switch d.Kind {
	case Replace:
		return value.Equal(d.Value, other.Value)
	case Composite:
		if d.Container != other.Container ||
			len(d.Appended) != len(other.Appended) ||
			len(d.Updated) != len(other.Updated) ||
			len(d.Removed) != len(other.Removed) {
			return false
		}
		for s, v := range d.Appended {
			if ov, ok := other.Appended[s]; !ok || !value.Equal(v, ov) {
				return false
			}
		}
		for s, v := range d.Removed {
			if ov, ok := other.Removed[s]; !ok || !value.Equal(v, ov) {
				return false
			}
		}
		for s, nd := range d.Updated {
			if od, ok := other.Updated[s]; !ok || !nd.Equal(od) {
				return false
			}
		}
	}
	return true
}

// Compute the diff transforming a into b.
func Compute(a, b value.Value) Diff {
	if value.Equal(a, b) {
		return None()
	}
	if a.Kind() != b.Kind() || !a.Kind().IsContainer() {
		return ReplaceWith(b)
	}

	d := NewComposite(a.Kind())
	if a.Kind() == value.KindList {
		computeList(d, a, b)
	} else {
		computeMap(d, a, b)
	}

	if d.Empty() {
		return None()
	}
	return d
}

func computeList(d Diff, a, b value.Value) {
	la, lb := a.Len(), b.Len()
	for i := 0; i < la && i < lb; i++ {
		ea, _ := a.Index(i)
		eb, _ := b.Index(i)
		if nested := Compute(ea, eb); !nested.IsNoChange() {
			d.Updated[Index(i)] = nested
		}
	}
	for i := la; i < lb; i++ {
		d.Appended[Index(i)], _ = b.Index(i)
	}
	for i := lb; i < la; i++ {
		d.Removed[Index(i)], _ = a.Index(i)
	}
}

func computeMap(d Diff, a, b value.Value) {
	for _, k := range a.Keys() {
		ea, _ := a.Get(k)
		eb, inB := b.Get(k)
		if !inB {
			d.Removed[Key(k)] = ea
			continue
		}
		if nested := Compute(ea, eb); !nested.IsNoChange() {
			d.Updated[Key(k)] = nested
		}
	}
	for _, k := range b.Keys() {
		if _, inA := a.Get(k); !inA {
			d.Appended[Key(k)], _ = b.Get(k)
		}
	}
}
